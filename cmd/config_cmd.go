package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/theirongolddev/crease/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE: func(_ *cobra.Command, _ []string) error {
		fmt.Println(config.ConfigPath())
		return nil
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the config file in $EDITOR",
	RunE:  runConfigEdit,
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigEdit(_ *cobra.Command, _ []string) error {
	// Seed the file with the current defaults so there is something to edit
	if !config.Exists() {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return err
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	cmd := exec.Command(editor, config.ConfigPath())
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [Server]")
	if url := config.ServerURL(cfg); url != "" {
		fmt.Printf("    Base URL: %s\n", url)
	} else {
		fmt.Println("    Base URL: not configured")
	}
	if model := config.Model(cfg); model != "" {
		fmt.Printf("    Model:    %s\n", model)
	} else {
		fmt.Println("    Model:    service default")
	}
	fmt.Println()

	fmt.Println("  [Playback]")
	fmt.Printf("    Ball delay:    %s\n", cfg.Delay())
	fmt.Printf("    Series length: %d\n", cfg.Playback.NumMatches)
	fmt.Println()

	fmt.Println("  [Teams]")
	fmt.Printf("    Team 1: %s%s\n", cfg.Teams.Team1Name, rosterNote(cfg.Teams.Team1Players))
	fmt.Printf("    Team 2: %s%s\n", cfg.Teams.Team2Name, rosterNote(cfg.Teams.Team2Players))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Printf("  Cache file: %s\n", config.CachePath())
	fmt.Println()

	fmt.Println("  Edit the config file directly, or set fixtures in the TUI setup form.")
	return nil
}

func rosterNote(players []string) string {
	if len(players) == 0 {
		return "  (service default eleven)"
	}
	return fmt.Sprintf("  (%d players: %s)", len(players), strings.Join(players, ", "))
}
