package cmd

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/crease/internal/cli"
	"github.com/theirongolddev/crease/internal/config"
	"github.com/theirongolddev/crease/internal/simapi"

	"github.com/spf13/cobra"
)

var (
	flagLbSortBy     string
	flagLbLimit      int
	flagLbOffset     int
	flagLbMinInnings int
)

var leaderboardCmd = &cobra.Command{
	Use:       "leaderboard <batting|bowling>",
	Short:     "Show the career leaderboards",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"batting", "bowling"},
	RunE:      runLeaderboard,
}

func init() {
	leaderboardCmd.Flags().StringVar(&flagLbSortBy, "sort-by", "", "Sort column (service default if unset)")
	leaderboardCmd.Flags().IntVar(&flagLbLimit, "limit", 10, "Rows to show")
	leaderboardCmd.Flags().IntVar(&flagLbOffset, "offset", 0, "Rows to skip")
	leaderboardCmd.Flags().IntVar(&flagLbMinInnings, "min-innings", 0, "Minimum innings to qualify")
	rootCmd.AddCommand(leaderboardCmd)
}

func runLeaderboard(_ *cobra.Command, args []string) error {
	kind := args[0]
	if kind != "batting" && kind != "bowling" {
		return fmt.Errorf("leaderboard type must be batting or bowling, got %q", kind)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	query := simapi.LeaderboardQuery{
		SortBy:     flagLbSortBy,
		Limit:      flagLbLimit,
		Offset:     flagLbOffset,
		MinInnings: flagLbMinInnings,
	}
	key := fmt.Sprintf("%s/%s/%d/%d/%d", kind, query.SortBy, query.Limit, query.Offset, query.MinInnings)

	var page simapi.LeaderboardPage
	err = cachedJSON("leaderboard", key, func() (simapi.LeaderboardPage, error) {
		ctx, cancel := lookupCtx()
		defer cancel()
		got, err := client.Leaderboard(ctx, kind, query)
		if err != nil {
			return simapi.LeaderboardPage{}, err
		}
		return *got, nil
	}, &page)
	if err != nil {
		return fmt.Errorf("fetching %s leaderboard: %w", kind, err)
	}

	if len(page.Entries) == 0 {
		fmt.Println("\n  The leaderboard is empty.")
		return nil
	}

	title := "BATTING LEADERBOARD"
	if kind == "bowling" {
		title = "BOWLING LEADERBOARD"
	}
	if page.SortBy != "" {
		title += "  by " + page.SortBy
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(title))
	fmt.Println()

	var headers []string
	rows := make([][]string, 0, len(page.Entries))
	if kind == "batting" {
		headers = []string{"#", "Name", "Inns", "Runs", "Avg", "SR"}
		for _, e := range page.Entries {
			rows = append(rows, []string{
				strconv.Itoa(e.Rank),
				e.Name,
				strconv.Itoa(e.Innings),
				strconv.Itoa(e.Runs),
				cli.FormatAverage(e.Average),
				cli.FormatStrikeRate(e.StrikeRate),
			})
		}
	} else {
		headers = []string{"#", "Name", "Inns", "Wkts", "Avg", "Econ"}
		for _, e := range page.Entries {
			rows = append(rows, []string{
				strconv.Itoa(e.Rank),
				e.Name,
				strconv.Itoa(e.Innings),
				strconv.Itoa(e.Wickets),
				cli.FormatAverage(e.Average),
				cli.FormatEconomy(e.Economy),
			})
		}
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: headers,
		Rows:    rows,
	}))

	if page.Total > len(page.Entries)+query.Offset {
		fmt.Println()
		fmt.Printf("  Showing %d-%d of %d. Use --offset to page.\n",
			query.Offset+1, query.Offset+len(page.Entries), page.Total)
	}
	return nil
}
