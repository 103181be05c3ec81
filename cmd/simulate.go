package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/theirongolddev/crease/internal/cli"
	"github.com/theirongolddev/crease/internal/config"
	"github.com/theirongolddev/crease/internal/feed"
	"github.com/theirongolddev/crease/internal/series"
	"github.com/theirongolddev/crease/internal/simapi"

	"github.com/spf13/cobra"
)

var (
	flagMatches int
	flagSingle  bool
	flagTeam1   string
	flagTeam2   string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a simulation and print it ball by ball",
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVarP(&flagMatches, "matches", "n", 0, "Series length (default from config)")
	simulateCmd.Flags().BoolVar(&flagSingle, "single", false, "Simulate one custom match instead of a series")
	simulateCmd.Flags().StringVar(&flagTeam1, "team1", "", "First team name (default from config)")
	simulateCmd.Flags().StringVar(&flagTeam2, "team2", "", "Second team name (default from config)")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	team1, team2 := cfg.Teams.Team1Name, cfg.Teams.Team2Name
	if flagTeam1 != "" {
		team1 = flagTeam1
	}
	if flagTeam2 != "" {
		team2 = flagTeam2
	}
	matches := cfg.Playback.NumMatches
	if flagMatches > 0 {
		matches = flagMatches
	}
	if flagSingle {
		matches = 1
	}

	ctx := context.Background()

	var body io.ReadCloser
	if flagSingle {
		body, err = client.OpenMatchStream(ctx, simapi.MatchRequest{
			Team1Name:    team1,
			Team1Players: cfg.Teams.Team1Players,
			Team2Name:    team2,
			Team2Players: cfg.Teams.Team2Players,
			Model:        modelName(cfg),
		})
	} else {
		body, err = client.OpenSeriesStream(ctx, simapi.SeriesRequest{
			Team1Name:    team1,
			Team1Players: cfg.Teams.Team1Players,
			Team2Name:    team2,
			Team2Players: cfg.Teams.Team2Players,
			NumMatches:   matches,
			Model:        modelName(cfg),
		})
	}
	if err != nil {
		return err
	}
	defer func() { _ = body.Close() }()

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s  v  %s", team1, team2)))
	fmt.Println()

	outcome, err := drainStream(body, ballDelay(cfg), true)
	if err != nil {
		return fmt.Errorf("stream failed: %w", err)
	}

	printStanding(outcome, team1, team2, matches)

	if outcome.dropped > 0 && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  %d malformed lines skipped\n", outcome.dropped)
	}
	return nil
}

// streamOutcome is what is left of a stream once it has been drained: the
// accumulated match history and the service's own summary, if it sent one.
type streamOutcome struct {
	history  []feed.MatchResult
	official *feed.SeriesResult
	dropped  int
}

// drainStream consumes one simulation stream, optionally printing and
// pacing each ball.
func drainStream(body io.Reader, delay time.Duration, print bool) (streamOutcome, error) {
	dec := feed.NewDecoder(body)
	if !flagQuiet {
		dec.Warnf = func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, "  "+format+"\n", args...)
		}
	}

	var out streamOutcome
	for {
		frame, err := dec.Next()
		if errors.Is(err, io.EOF) {
			out.dropped = dec.Dropped()
			return out, nil
		}
		if err != nil {
			out.dropped = dec.Dropped()
			return out, err
		}

		switch f := frame.(type) {
		case feed.BallFrame:
			if print {
				if delay > 0 {
					time.Sleep(delay)
				}
				printBall(f)
			}

		case feed.MatchUpdateFrame:
			out.history = upsertResult(out.history, f.Result)

		case feed.MatchCompleteFrame:
			out.history = upsertResult(out.history, f.Result)
			if print {
				printResult(f.Result)
			}

		case feed.SeriesCompleteFrame:
			summary := f.Summary
			out.official = &summary
		}
	}
}

// upsertResult replaces the entry for the same match number, preserving
// its position, or appends a new one.
func upsertResult(history []feed.MatchResult, m feed.MatchResult) []feed.MatchResult {
	for i := range history {
		if history[i].MatchNo == m.MatchNo {
			history[i] = m
			return history
		}
	}
	return append(history, m)
}

// scorecardTeams returns the scorecard keys in stable sorted order.
func scorecardTeams(scorecard map[string]feed.TeamInnings) []string {
	teams := make([]string, 0, len(scorecard))
	for team := range scorecard {
		teams = append(teams, team)
	}
	sort.Strings(teams)
	return teams
}

func printBall(f feed.BallFrame) {
	d := f.Detail

	outcome := d.RunsScored.String()
	if d.IsWicket {
		outcome = "W"
	}

	line := fmt.Sprintf("  m%d %5s  %-20s %-3s  %s %s",
		f.MatchNo,
		cli.FormatOverBall(d.Over, d.Ball),
		d.Striker.Name,
		outcome,
		d.BatTeam,
		cli.FormatScore(d.TotalRuns, d.Wickets))
	if d.Target != nil && *d.Target > 0 {
		line += fmt.Sprintf("  (target %d)", *d.Target)
	}
	fmt.Println(line)
}

func printResult(m feed.MatchResult) {
	fmt.Println()
	switch m.Winner {
	case feed.TieWinner:
		fmt.Printf("  Match %d tied\n", m.MatchNo)
	case "":
		fmt.Printf("  Match %d\n", m.MatchNo)
	default:
		fmt.Printf("  Match %d: %s won by %s\n", m.MatchNo, m.Winner, m.Margin)
	}

	for _, team := range scorecardTeams(m.Scorecard) {
		innings := m.Scorecard[team]

		rows := make([][]string, 0, len(innings.Batting)+len(innings.Bowling)+1)
		for _, b := range innings.Batting {
			if b.Balls == 0 && b.Runs == 0 && !b.Out {
				continue
			}
			rows = append(rows, []string{b.Name, cli.FormatBatterLine(b.Runs, b.Balls, b.Out)})
		}
		if len(innings.Bowling) > 0 {
			rows = append(rows, []string{"---"})
			for _, b := range innings.Bowling {
				rows = append(rows, []string{b.Name, cli.FormatBowlerLine(b.Wickets, b.Runs, b.Overs)})
			}
		}

		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   fmt.Sprintf("%s  %s (%.1f ov)", team, cli.FormatScore(innings.Runs, innings.Wickets), innings.Overs),
			Headers: []string{"Player", "Figures"},
			Rows:    rows,
		}))
	}
	fmt.Println()
}

// printStanding prints the final series result plus the player roll-ups.
func printStanding(out streamOutcome, team1, team2 string, matches int) {
	scoreline := series.Compute(out.history, team1, team2, matches).Scoreline
	if out.official != nil && out.official.Scoreline != "" {
		scoreline = out.official.Scoreline
	}
	// Single matches get a plain result line, not a series scoreline.
	if matches == 1 && len(out.history) == 1 {
		switch m := out.history[0]; m.Winner {
		case feed.TieWinner:
			scoreline = "Match tied"
		case "":
		default:
			scoreline = fmt.Sprintf("%s won by %s", m.Winner, m.Margin)
		}
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(scoreline))
	fmt.Println()

	batters := series.TopBatters(out.history, 5)
	if len(batters) > 0 {
		rows := make([][]string, 0, len(batters))
		for _, b := range batters {
			rows = append(rows, []string{
				b.Name,
				fmt.Sprintf("%d", b.Runs),
				cli.FormatAverage(b.Average()),
				cli.FormatStrikeRate(b.StrikeRate()),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Top Batters",
			Headers: []string{"Name", "Runs", "Avg", "SR"},
			Rows:    rows,
		}))
		fmt.Println()
	}

	bowlers := series.TopBowlers(out.history, 5)
	if len(bowlers) > 0 {
		rows := make([][]string, 0, len(bowlers))
		for _, b := range bowlers {
			rows = append(rows, []string{
				b.Name,
				fmt.Sprintf("%d", b.Wickets),
				fmt.Sprintf("%d", b.Runs),
				cli.FormatEconomy(b.Economy()),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Top Bowlers",
			Headers: []string{"Name", "Wkts", "Runs", "Econ"},
			Rows:    rows,
		}))
	}
}
