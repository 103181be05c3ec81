package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/crease/internal/cli"
	"github.com/theirongolddev/crease/internal/feed"
	"github.com/theirongolddev/crease/internal/playback"
	"github.com/theirongolddev/crease/internal/series"
	"github.com/theirongolddev/crease/internal/tui/components"
	"github.com/theirongolddev/crease/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const topPlayerCount = 5

func (a App) renderSeriesTab(cw int) string {
	t := theme.Active
	snap := a.snap
	var b strings.Builder

	dimStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	if snap.TeamA == "" {
		return "\n" + dimStyle.Render("  No session running. Press n to set up a fixture.")
	}

	// Row 1: standings
	tiesSub := ""
	if snap.Summary.Ties > 0 {
		tiesSub = fmt.Sprintf("%d tied", snap.Summary.Ties)
	}
	playedSub := ""
	if a.lastCfg.Matches > 0 {
		playedSub = fmt.Sprintf("of %d", a.lastCfg.Matches)
	}
	metrics := []components.Metric{
		{Label: "Series", Value: snap.Scoreline(), Sub: tiesSub},
		{Label: snap.TeamA, Value: fmt.Sprintf("%d", snap.Summary.WinsA), Sub: "wins"},
		{Label: snap.TeamB, Value: fmt.Sprintf("%d", snap.Summary.WinsB), Sub: "wins"},
		{Label: "Played", Value: fmt.Sprintf("%d", snap.Summary.Played), Sub: playedSub},
	}
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	// Row 2: per-match results
	b.WriteString(components.ContentCard("Results",
		renderResults(snap.History, components.CardInnerWidth(cw)), cw))
	b.WriteString("\n")

	// Row 3: player roll-ups across the series so far
	batters := series.TopBatters(snap.History, topPlayerCount)
	bowlers := series.TopBowlers(snap.History, topPlayerCount)
	if len(batters) == 0 && len(bowlers) == 0 {
		return b.String()
	}

	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Top Batters",
			renderTopBatters(batters, components.CardInnerWidth(cw)), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Top Bowlers",
			renderTopBowlers(bowlers, components.CardInnerWidth(cw)), cw))
	} else {
		halves := components.LayoutRow(cw, 2)
		batCard := components.ContentCard("Top Batters",
			renderTopBatters(batters, components.CardInnerWidth(halves[0])), halves[0])
		bowlCard := components.ContentCard("Top Bowlers",
			renderTopBowlers(bowlers, components.CardInnerWidth(halves[1])), halves[1])
		b.WriteString(components.CardRow([]string{batCard, bowlCard}))
	}
	b.WriteString("\n")

	// Row 4: average completed-innings scores
	if avgLine := renderAverageScores(a.snap); avgLine != "" {
		b.WriteString(" ")
		b.WriteString(dimStyle.Render(avgLine))
	}

	return b.String()
}

func renderResults(history []feed.MatchResult, innerW int) string {
	t := theme.Active

	if len(history) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Render("no results yet")
	}

	numStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	winStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	tieStyle := lipgloss.NewStyle().Foreground(t.Yellow)
	scoreStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	for _, m := range history {
		line := numStyle.Render(fmt.Sprintf("Match %-2d ", m.MatchNo))
		switch {
		case m.Winner == feed.TieWinner:
			line += tieStyle.Render("Match tied")
		case m.Winner != "":
			line += winStyle.Render(fmt.Sprintf("%s won by %s", m.Winner, m.Margin))
		default:
			line += scoreStyle.Render("in progress")
		}

		var scores []string
		for _, team := range sortedScorecardTeams(m.Scorecard) {
			innings := m.Scorecard[team]
			scores = append(scores, fmt.Sprintf("%s %s", truncStr(team, 12),
				cli.FormatScore(innings.Runs, innings.Wickets)))
		}
		if len(scores) > 0 {
			line += scoreStyle.Render("  " + strings.Join(scores, " · "))
		}

		b.WriteString(truncateToWidth(line, innerW))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func sortedScorecardTeams(scorecard map[string]feed.TeamInnings) []string {
	return orderedTeams(scorecard, "", "")
}

func renderTopBatters(batters []series.BatterTotals, innerW int) string {
	t := theme.Active
	if len(batters) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Render("no batting data yet")
	}

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	figStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	nameW := innerW - 24
	if nameW < 10 {
		nameW = 10
	}
	if nameW > 22 {
		nameW = 22
	}

	var b strings.Builder
	for _, bt := range batters {
		b.WriteString(nameStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(bt.Name, nameW))))
		b.WriteString(figStyle.Render(fmt.Sprintf(" %4d runs  avg %-5s sr %s",
			bt.Runs,
			cli.FormatAverage(bt.Average()),
			cli.FormatStrikeRate(bt.StrikeRate()))))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderTopBowlers(bowlers []series.BowlerTotals, innerW int) string {
	t := theme.Active
	if len(bowlers) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Render("no bowling data yet")
	}

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	figStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	nameW := innerW - 24
	if nameW < 10 {
		nameW = 10
	}
	if nameW > 22 {
		nameW = 22
	}

	var b strings.Builder
	for _, bw := range bowlers {
		b.WriteString(nameStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(bw.Name, nameW))))
		b.WriteString(figStyle.Render(fmt.Sprintf(" %2d wkts  %3d runs  econ %s",
			bw.Wickets,
			bw.Runs,
			cli.FormatEconomy(bw.Economy()))))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderAverageScores builds the one-line mean innings score footer.
func renderAverageScores(snap playback.Snapshot) string {
	avgs := series.AverageScores(snap.History)
	if len(avgs) == 0 {
		return ""
	}

	var parts []string
	for _, team := range []string{snap.TeamA, snap.TeamB} {
		if avg, ok := avgs[team]; ok {
			parts = append(parts, fmt.Sprintf("%s avg %.1f", team, avg))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "Average innings score: " + strings.Join(parts, " · ")
}
