package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/crease/internal/cli"
	"github.com/theirongolddev/crease/internal/playback"
	"github.com/theirongolddev/crease/internal/tui/components"
	"github.com/theirongolddev/crease/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// recentOverCount is how many over groups the Live tab lists.
const recentOverCount = 6

func (a App) renderLiveTab(cw int) string {
	t := theme.Active
	snap := a.snap
	var b strings.Builder

	dimStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	switch snap.Status {
	case playback.StatusIdle:
		return "\n" + dimStyle.Render("  No session running. Press n to set up a fixture.")
	case playback.StatusError:
		errStyle := lipgloss.NewStyle().Foreground(t.Red)
		b.WriteString("\n")
		b.WriteString(errStyle.Render(fmt.Sprintf("  Stream failed: %v", snap.Err)))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("  Press r to retry or n for a new fixture."))
		return b.String()
	}

	if snap.Current == nil {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("  Waiting for the first ball..."))
		return b.String()
	}

	ball := snap.Current
	d := ball.Detail

	// Row 1: metric cards for the state of play
	matchSub := fmt.Sprintf("innings %d", ball.Innings)
	if a.lastCfg.Matches > 0 {
		matchSub = fmt.Sprintf("match %d of %d · innings %d", ball.MatchNo, a.lastCfg.Matches, ball.Innings)
	}
	metrics := []components.Metric{
		{
			Label: d.BatTeam,
			Value: cli.FormatScore(d.TotalRuns, d.Wickets),
			Sub:   fmt.Sprintf("over %s · %s", cli.FormatOverBall(d.Over, d.Ball), matchSub),
		},
		{
			Label: "Striker",
			Value: truncStr(d.Striker.Name, 20),
			Sub:   cli.FormatBatterLine(d.Striker.Runs, d.Striker.Balls, d.Striker.Out),
		},
		{
			Label: "Non-striker",
			Value: truncStr(d.NonStriker.Name, 20),
			Sub:   cli.FormatBatterLine(d.NonStriker.Runs, d.NonStriker.Balls, d.NonStriker.Out),
		},
		{
			Label: "Bowler",
			Value: truncStr(d.Bowler.Name, 20),
			Sub:   cli.FormatBowlerLine(d.Bowler.Wickets, d.Bowler.RunsGiven, d.Bowler.Overs),
		},
	}
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	// Row 2: the chase, second innings only
	if d.Target != nil && *d.Target > 0 {
		barW := cw - 40
		if barW < 10 {
			barW = 10
		}
		b.WriteString(" ")
		b.WriteString(components.ChaseBar(d.TotalRuns, *d.Target, 16, barW))
		b.WriteString("\n")
	}

	// Row 3: recent overs + this innings' runs per over
	recent := a.renderRecentOvers(snap.Overs, components.CardInnerWidth(cw))

	runs, wkts := inningsOverRuns(snap.Overs, ball.MatchNo, ball.Innings)
	chartH := 8
	if a.isCompactLayout() {
		chartH = 6
	}
	chart := components.Manhattan(runs, wkts, components.CardInnerWidth(cw), chartH)

	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Recent Overs", recent, cw))
		b.WriteString("\n")
		if chart != "" {
			b.WriteString(components.ContentCard("Runs per Over", chart, cw))
		}
	} else {
		halves := components.LayoutRow(cw, 2)
		recentCard := components.ContentCard("Recent Overs",
			a.renderRecentOvers(snap.Overs, components.CardInnerWidth(halves[0])), halves[0])
		chartCard := ""
		if chart != "" {
			chartCard = components.ContentCard("Runs per Over",
				components.Manhattan(runs, wkts, components.CardInnerWidth(halves[1]), chartH), halves[1])
		}
		b.WriteString(components.CardRow([]string{recentCard, chartCard}))
	}
	b.WriteString("\n")

	if snap.Status == playback.StatusComplete {
		doneStyle := lipgloss.NewStyle().Foreground(t.Green).Bold(true)
		b.WriteString("\n ")
		b.WriteString(doneStyle.Render(snap.Scoreline()))
	}

	return b.String()
}

// renderRecentOvers lists the newest over groups, one line per over, with
// the wicket balls picked out in red.
func (a App) renderRecentOvers(overs []playback.OverGroup, innerW int) string {
	t := theme.Active

	if len(overs) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Render("no overs yet")
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	ballStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	wktStyle := lipgloss.NewStyle().Foreground(t.Red).Bold(true)
	scoreStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	start := len(overs) - recentOverCount
	if start < 0 {
		start = 0
	}

	var b strings.Builder
	for i := len(overs) - 1; i >= start; i-- {
		g := overs[i]

		var balls []string
		for _, outcome := range g.Balls {
			if outcome == playback.WicketMarker {
				balls = append(balls, wktStyle.Render(outcome))
			} else {
				balls = append(balls, ballStyle.Render(outcome))
			}
		}

		line := labelStyle.Render(fmt.Sprintf("i%d ov%-3d", g.Innings, g.Over+1)) +
			labelStyle.Render(fmt.Sprintf(" %-14s", truncStr(g.Bowler, 14))) +
			" " + strings.Join(balls, " ") +
			scoreStyle.Render("  "+cli.FormatScore(g.Runs, g.Wickets))

		b.WriteString(truncateToWidth(line, innerW))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// inningsOverRuns derives per-over run counts and wicket flags for one
// innings from the running totals carried on each over group.
func inningsOverRuns(overs []playback.OverGroup, matchNo, innings int) ([]int, []bool) {
	var runs []int
	var wkts []bool
	prevRuns, prevWkts := 0, 0

	for _, g := range overs {
		if g.MatchNo != matchNo || g.Innings != innings {
			continue
		}
		runs = append(runs, g.Runs-prevRuns)
		wkts = append(wkts, g.Wickets > prevWkts)
		prevRuns, prevWkts = g.Runs, g.Wickets
	}
	return runs, wkts
}

// truncateToWidth trims a styled line to the given printable width.
func truncateToWidth(line string, w int) string {
	if lipgloss.Width(line) <= w {
		return line
	}
	return lipgloss.NewStyle().MaxWidth(w).Render(line)
}
