package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/theirongolddev/crease/internal/cli"
	"github.com/theirongolddev/crease/internal/feed"
	"github.com/theirongolddev/crease/internal/tui/components"
	"github.com/theirongolddev/crease/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderScorecardTab(cw int) string {
	t := theme.Active
	snap := a.snap

	dimStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	m, ok := a.scorecardMatch()
	if !ok {
		return "\n" + dimStyle.Render("  No scorecard yet. It arrives with the first match update.")
	}

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)

	var b strings.Builder
	b.WriteString("\n ")
	b.WriteString(titleStyle.Render(fmt.Sprintf("Match %d", m.MatchNo)))
	switch {
	case m.Winner == feed.TieWinner:
		b.WriteString(dimStyle.Render("  ·  Match tied"))
	case m.Winner != "":
		b.WriteString(dimStyle.Render(fmt.Sprintf("  ·  %s won by %s", m.Winner, m.Margin)))
	default:
		b.WriteString(dimStyle.Render("  ·  in progress"))
	}
	b.WriteString("\n")

	// Stable team order: configured teams first, then anything else
	teams := orderedTeams(m.Scorecard, snap.TeamA, snap.TeamB)

	inningsTitle := func(team string) string {
		innings := m.Scorecard[team]
		return fmt.Sprintf("%s  %s (%.1f ov)", team,
			cli.FormatScore(innings.Runs, innings.Wickets),
			innings.Overs)
	}

	if a.isCompactLayout() {
		for _, team := range teams {
			b.WriteString(components.ContentCard(inningsTitle(team),
				renderInnings(m.Scorecard[team], components.CardInnerWidth(cw)), cw))
			b.WriteString("\n")
		}
	} else {
		widths := components.LayoutRow(cw, len(teams))
		var cards []string
		for i, team := range teams {
			body := renderInnings(m.Scorecard[team], components.CardInnerWidth(widths[i]))
			cards = append(cards, components.ContentCard(inningsTitle(team), body, widths[i]))
		}
		b.WriteString(components.CardRow(cards))
		b.WriteString("\n")
	}

	return b.String()
}

// scorecardMatch picks the match to show: the one in progress when a ball
// is live, otherwise the newest result carrying a scorecard.
func (a App) scorecardMatch() (feed.MatchResult, bool) {
	history := a.snap.History

	if a.snap.Current != nil {
		for _, m := range history {
			if m.MatchNo == a.snap.Current.MatchNo && len(m.Scorecard) > 0 {
				return m, true
			}
		}
	}
	for i := len(history) - 1; i >= 0; i-- {
		if len(history[i].Scorecard) > 0 {
			return history[i], true
		}
	}
	return feed.MatchResult{}, false
}

func orderedTeams(scorecard map[string]feed.TeamInnings, teamA, teamB string) []string {
	var teams []string
	if _, ok := scorecard[teamA]; ok {
		teams = append(teams, teamA)
	}
	if _, ok := scorecard[teamB]; ok {
		teams = append(teams, teamB)
	}

	var rest []string
	for team := range scorecard {
		if team != teamA && team != teamB {
			rest = append(rest, team)
		}
	}
	sort.Strings(rest)
	return append(teams, rest...)
}

// renderInnings lays out one team's batting and bowling columns.
func renderInnings(innings feed.TeamInnings, innerW int) string {
	t := theme.Active

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	figStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	outStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	headStyle := lipgloss.NewStyle().Foreground(t.Accent)

	nameW := innerW - 16
	if nameW < 10 {
		nameW = 10
	}
	if nameW > 24 {
		nameW = 24
	}

	var b strings.Builder
	for _, line := range innings.Batting {
		// Skip batters who never faced a ball
		if line.Balls == 0 && line.Runs == 0 && !line.Out {
			continue
		}
		name := truncStr(line.Name, nameW)
		fig := cli.FormatBatterLine(line.Runs, line.Balls, line.Out)
		b.WriteString(nameStyle.Render(fmt.Sprintf("%-*s", nameW, name)))
		b.WriteString(figStyle.Render(fmt.Sprintf(" %10s", fig)))
		if line.Out && line.OutBy != "" {
			b.WriteString(outStyle.Render("  b " + truncStr(line.OutBy, 12)))
		}
		b.WriteString("\n")
	}

	if len(innings.Bowling) > 0 {
		b.WriteString("\n")
		b.WriteString(headStyle.Render("Bowling"))
		b.WriteString("\n")
		for _, line := range innings.Bowling {
			name := truncStr(line.Name, nameW)
			fig := cli.FormatBowlerLine(line.Wickets, line.Runs, line.Overs)
			b.WriteString(nameStyle.Render(fmt.Sprintf("%-*s", nameW, name)))
			b.WriteString(figStyle.Render(fmt.Sprintf(" %12s", fig)))
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
