package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/crease/internal/cli"
	"github.com/theirongolddev/crease/internal/config"
	"github.com/theirongolddev/crease/internal/simapi"

	"github.com/spf13/cobra"
)

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "Look up players in the simulation database",
}

var playersSearchCmd = &cobra.Command{
	Use:   "search <name>",
	Short: "Search players by name",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlayersSearch,
}

var playersShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a player's career statistics",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlayersShow,
}

var playersBowlingOrderCmd = &cobra.Command{
	Use:   "bowling-order <player>...",
	Short: "Generate a bowling rotation for a roster",
	Long:  "Checks which of the given players may bowl and asks the service for a 20-over rotation.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlayersBowlingOrder,
}

func init() {
	playersCmd.AddCommand(playersSearchCmd)
	playersCmd.AddCommand(playersShowCmd)
	playersCmd.AddCommand(playersBowlingOrderCmd)
	rootCmd.AddCommand(playersCmd)
}

func runPlayersSearch(_ *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")

	var players []simapi.Player
	err = cachedJSON("players/search", strings.ToLower(query), func() ([]simapi.Player, error) {
		ctx, cancel := lookupCtx()
		defer cancel()
		return client.SearchPlayers(ctx, query)
	}, &players)
	if err != nil {
		return fmt.Errorf("searching players: %w", err)
	}

	if len(players) == 0 {
		fmt.Printf("\n  No players matched %q.\n", query)
		return nil
	}

	fmt.Println()
	rows := make([][]string, 0, len(players))
	for _, p := range players {
		rows = append(rows, []string{strconv.Itoa(p.ID), p.Name, p.Team})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Players matching %q", query),
		Headers: []string{"ID", "Name", "Team"},
		Rows:    rows,
	}))

	fmt.Println()
	fmt.Println("  Run `crease players show <id>` for career statistics.")
	return nil
}

func runPlayersShow(_ *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("player id must be a number, got %q", args[0])
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	var profile simapi.PlayerProfile
	err = cachedJSON("players/profile", args[0], func() (simapi.PlayerProfile, error) {
		ctx, cancel := lookupCtx()
		defer cancel()
		got, err := client.Player(ctx, id)
		if err != nil {
			return simapi.PlayerProfile{}, err
		}
		return *got, nil
	}, &profile)
	if err != nil {
		return fmt.Errorf("fetching player %d: %w", id, err)
	}

	title := profile.Name
	if profile.Team != "" {
		title += " · " + profile.Team
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(title))
	fmt.Println()

	bat := profile.Batting
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Batting",
		Headers: []string{"", ""},
		Rows: [][]string{
			{"Matches", fmt.Sprintf("%d (%d innings)", bat.Matches, bat.Innings)},
			{"Runs", fmt.Sprintf("%d (HS %d)", bat.Runs, bat.HighScore)},
			{"Average", cli.FormatAverage(bat.Average)},
			{"Strike rate", cli.FormatStrikeRate(bat.StrikeRate)},
			{"50s / 100s", fmt.Sprintf("%d / %d", bat.Fifties, bat.Hundreds)},
		},
	}))

	bowl := profile.Bowling
	if bowl.Innings > 0 {
		fmt.Println()
		rows := [][]string{
			{"Matches", fmt.Sprintf("%d (%d innings)", bowl.Matches, bowl.Innings)},
			{"Wickets", strconv.Itoa(bowl.Wickets)},
			{"Economy", cli.FormatEconomy(bowl.Economy)},
			{"Average", cli.FormatAverage(bowl.Average)},
		}
		if bowl.Best != "" {
			rows = append(rows, []string{"Best", bowl.Best})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Bowling",
			Headers: []string{"", ""},
			Rows:    rows,
		}))
	}

	return nil
}

func runPlayersBowlingOrder(_ *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	req := simapi.BowlersRequest{Players: args, Model: modelName(cfg)}

	ctx, cancel := lookupCtx()
	defer cancel()

	eligible, err := client.EligibleBowlers(ctx, req)
	if err != nil {
		return fmt.Errorf("checking eligible bowlers: %w", err)
	}
	if len(eligible) == 0 {
		fmt.Println("\n  None of these players may bowl.")
		return nil
	}

	order, err := client.GenerateBowlingOrder(ctx, req)
	if err != nil {
		return fmt.Errorf("generating bowling order: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Eligible bowlers: %s\n", strings.Join(eligible, ", "))
	fmt.Println()

	rows := make([][]string, 0, len(order))
	for i, bowler := range order {
		rows = append(rows, []string{fmt.Sprintf("Over %d", i+1), bowler})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Bowling Order",
		Headers: []string{"", "Bowler"},
		Rows:    rows,
	}))

	return nil
}
