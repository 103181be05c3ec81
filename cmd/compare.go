package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/theirongolddev/crease/internal/cli"
	"github.com/theirongolddev/crease/internal/config"
	"github.com/theirongolddev/crease/internal/series"
	"github.com/theirongolddev/crease/internal/simapi"

	"github.com/spf13/cobra"
)

var flagCompareModels string

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run the same series under each prediction model",
	Long:  "Simulates the configured fixture once per model and prints the outcomes side by side.",
	RunE:  runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&flagCompareModels, "models", "", "Comma-separated models to compare (default: full catalog)")
	compareCmd.Flags().IntVarP(&flagMatches, "matches", "n", 0, "Series length (default from config)")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	models, err := compareModels(client)
	if err != nil {
		return err
	}

	team1, team2 := cfg.Teams.Team1Name, cfg.Teams.Team2Name
	matches := cfg.Playback.NumMatches
	if flagMatches > 0 {
		matches = flagMatches
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s  v  %s · best of %d", team1, team2, matches)))
	fmt.Println()

	rows := make([][]string, 0, len(models))
	for _, model := range models {
		if !flagQuiet {
			fmt.Printf("  Simulating with %s...\n", model)
		}

		outcome, err := runModelSeries(client, cfg, model, matches)
		if err != nil {
			rows = append(rows, []string{model, fmt.Sprintf("error: %v", err), "-", "-"})
			continue
		}

		scoreline := series.Compute(outcome.history, team1, team2, matches).Scoreline
		if outcome.official != nil && outcome.official.Scoreline != "" {
			scoreline = outcome.official.Scoreline
		}

		averages := series.AverageScores(outcome.history)
		rows = append(rows, []string{
			model,
			scoreline,
			cli.FormatAverage(averages[team1]),
			cli.FormatAverage(averages[team2]),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Model Comparison",
		Headers: []string{"Model", "Result", team1 + " avg", team2 + " avg"},
		Rows:    rows,
	}))
	return nil
}

// compareModels resolves the list of models to run: the --models flag when
// given, otherwise the service's full catalog.
func compareModels(client *simapi.Client) ([]string, error) {
	if flagCompareModels != "" {
		var models []string
		for _, m := range strings.Split(flagCompareModels, ",") {
			if m = strings.TrimSpace(m); m != "" {
				models = append(models, m)
			}
		}
		if len(models) == 0 {
			return nil, fmt.Errorf("no models given")
		}
		return models, nil
	}

	ctx, cancel := lookupCtx()
	defer cancel()
	list, err := client.Models(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching model catalog: %w", err)
	}
	if len(list.Models) == 0 {
		return nil, fmt.Errorf("service reports no models")
	}
	return list.Models, nil
}

// runModelSeries plays one full series headless, with no per-ball delay.
func runModelSeries(client *simapi.Client, cfg config.Config, model string, matches int) (streamOutcome, error) {
	body, err := client.OpenSeriesStream(context.Background(), simapi.SeriesRequest{
		Team1Name:    cfg.Teams.Team1Name,
		Team1Players: cfg.Teams.Team1Players,
		Team2Name:    cfg.Teams.Team2Name,
		Team2Players: cfg.Teams.Team2Players,
		NumMatches:   matches,
		Model:        model,
	})
	if err != nil {
		return streamOutcome{}, err
	}
	defer func() { _ = body.Close() }()

	return drainStream(body, 0, false)
}
