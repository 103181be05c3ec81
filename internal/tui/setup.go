package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/crease/internal/config"
	"github.com/theirongolddev/crease/internal/playback"
	"github.com/theirongolddev/crease/internal/simapi"
	"github.com/theirongolddev/crease/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// setupValues backs the fixture setup form.
type setupValues struct {
	teamA   string
	teamB   string
	matches int
	model   string
	delayMs int
}

func (v setupValues) delay() time.Duration {
	if v.delayMs < 0 {
		return 0
	}
	return time.Duration(v.delayMs) * time.Millisecond
}

// toRequest turns the form values into a playback config and the series
// request sent to the service. Rosters come from the config file; empty
// rosters let the service pick its default elevens.
func (v setupValues) toRequest(cfg config.Config) (playback.Config, simapi.SeriesRequest) {
	pc := playback.Config{
		TeamA:   v.teamA,
		TeamB:   v.teamB,
		Matches: v.matches,
	}
	req := simapi.SeriesRequest{
		Team1Name:    v.teamA,
		Team1Players: cfg.Teams.Team1Players,
		Team2Name:    v.teamB,
		Team2Players: cfg.Teams.Team2Players,
		NumMatches:   v.matches,
		Model:        v.model,
	}
	return pc, req
}

// newSetupForm builds the fixture form, prefilled from config. The model
// select lists the service catalog when it loaded; otherwise only the
// configured model and the service default remain selectable.
func newSetupForm(cfg config.Config, models *simapi.ModelList, vals *setupValues) *huh.Form {
	vals.teamA = cfg.Teams.Team1Name
	vals.teamB = cfg.Teams.Team2Name
	vals.matches = cfg.Playback.NumMatches
	vals.model = config.Model(cfg)
	vals.delayMs = cfg.Playback.DelayMs

	matchOptions := []huh.Option[int]{
		huh.NewOption("1 match", 1),
		huh.NewOption("3 matches", 3),
		huh.NewOption("5 matches", 5),
		huh.NewOption("7 matches", 7),
	}

	modelOptions := []huh.Option[string]{
		huh.NewOption("service default", ""),
	}
	if models != nil {
		for _, m := range models.Models {
			label := m
			if m == models.Default {
				label += " (default)"
			}
			modelOptions = append(modelOptions, huh.NewOption(label, m))
		}
	} else if vals.model != "" {
		modelOptions = append(modelOptions, huh.NewOption(vals.model, vals.model))
	}

	delayOptions := []huh.Option[int]{
		huh.NewOption("live (no delay)", 0),
		huh.NewOption("200ms per ball", 200),
		huh.NewOption("500ms per ball", 500),
		huh.NewOption("1s per ball", 1000),
		huh.NewOption("2s per ball", 2000),
	}

	nonEmpty := func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("required")
		}
		return nil
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Team 1").
				Value(&vals.teamA).
				Validate(nonEmpty),
			huh.NewInput().
				Title("Team 2").
				Value(&vals.teamB).
				Validate(nonEmpty),
			huh.NewSelect[int]().
				Title("Series length").
				Options(matchOptions...).
				Value(&vals.matches),
			huh.NewSelect[string]().
				Title("Prediction model").
				Options(modelOptions...).
				Value(&vals.model),
			huh.NewSelect[int]().
				Title("Playback speed").
				Options(delayOptions...).
				Value(&vals.delayMs),
		),
	).WithTheme(huh.ThemeBase16())
}

// renderSetup draws the form under a small banner.
func (a App) renderSetup() string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	subStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  ◈ crease"))
	b.WriteString(subStyle.Render(" · set up the fixture"))
	if a.modelsErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange)
		b.WriteString("\n")
		b.WriteString(warnStyle.Render("  model catalog unavailable, using defaults"))
	}
	b.WriteString("\n\n")
	b.WriteString(a.setupForm.View())

	return b.String()
}

// saveSetupConfig persists the chosen fixture as the new defaults
// (best-effort, ignore errors).
func (a *App) saveSetupConfig() {
	cfg, _ := config.Load()

	cfg.Teams.Team1Name = a.setupVals.teamA
	cfg.Teams.Team2Name = a.setupVals.teamB
	cfg.Playback.NumMatches = a.setupVals.matches
	cfg.Playback.DelayMs = a.setupVals.delayMs
	cfg.Server.Model = a.setupVals.model

	_ = config.Save(cfg)
	a.cfg = cfg
}
