package cmd

import (
	"fmt"

	"github.com/theirongolddev/crease/internal/config"
	"github.com/theirongolddev/crease/internal/playback"
	"github.com/theirongolddev/crease/internal/tui"
	"github.com/theirongolddev/crease/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive match viewer",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	ctrl := playback.NewController(ballDelay(cfg))
	app := tui.NewApp(cfg, client, ctrl)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
