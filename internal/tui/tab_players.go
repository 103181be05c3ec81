package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/crease/internal/cli"
	"github.com/theirongolddev/crease/internal/simapi"
	"github.com/theirongolddev/crease/internal/tui/components"
	"github.com/theirongolddev/crease/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderPlayersTab(cw, contentH int) string {
	t := theme.Active
	ps := a.players
	var b strings.Builder

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	errStyle := lipgloss.NewStyle().Foreground(t.Red)

	// Search line
	b.WriteString("\n ")
	switch {
	case ps.searching:
		b.WriteString(mutedStyle.Render("Search: "))
		b.WriteString(ps.searchInput.View())
	case ps.query != "":
		b.WriteString(mutedStyle.Render(fmt.Sprintf("Search: %s", ps.query)))
		b.WriteString(dimStyle.Render("   / new search · esc clear"))
	default:
		b.WriteString(dimStyle.Render("Press / to search the player database"))
	}
	b.WriteString("\n")

	if ps.loading {
		b.WriteString(" ")
		b.WriteString(a.spinner.View())
		b.WriteString(mutedStyle.Render(" fetching..."))
		b.WriteString("\n")
	}
	if ps.err != nil {
		b.WriteString(" ")
		b.WriteString(errStyle.Render(fmt.Sprintf("lookup failed: %v", ps.err)))
		b.WriteString("\n")
	}

	if len(ps.results) == 0 {
		if ps.query != "" && !ps.loading && ps.err == nil {
			b.WriteString("\n ")
			b.WriteString(dimStyle.Render("No players matched."))
		}
		return b.String()
	}

	listH := contentH - 5
	if listH < 3 {
		listH = 3
	}
	list := renderPlayerList(ps, listH, components.CardInnerWidth(cw))

	if ps.profile == nil || a.isCompactLayout() {
		b.WriteString(components.ContentCard(
			fmt.Sprintf("Players (%d)", len(ps.results)), list, cw))
		b.WriteString("\n")
		if ps.profile != nil {
			b.WriteString(renderProfileCard(*ps.profile, cw))
		} else {
			b.WriteString(" ")
			b.WriteString(dimStyle.Render("enter to load career stats"))
		}
		return b.String()
	}

	halves := components.LayoutRow(cw, 2)
	listCard := components.ContentCard(
		fmt.Sprintf("Players (%d)", len(ps.results)),
		renderPlayerList(ps, listH, components.CardInnerWidth(halves[0])), halves[0])
	profileCard := renderProfileCard(*ps.profile, halves[1])
	b.WriteString(components.CardRow([]string{listCard, profileCard}))
	return b.String()
}

func renderPlayerList(ps playersState, maxRows, innerW int) string {
	t := theme.Active

	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	teamStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	selStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.SurfaceHover).
		Bold(true)

	// Keep the cursor visible by sliding the window over the results
	start := 0
	if ps.cursor >= maxRows {
		start = ps.cursor - maxRows + 1
	}
	end := start + maxRows
	if end > len(ps.results) {
		end = len(ps.results)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		p := ps.results[i]
		line := fmt.Sprintf("%-24s", truncStr(p.Name, 24))
		if p.Team != "" {
			line += " " + teamStyle.Render(truncStr(p.Team, 16))
		}
		if i == ps.cursor {
			b.WriteString(selStyle.Render("▸ " + line))
		} else {
			b.WriteString(rowStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderProfileCard(p simapi.PlayerProfile, outerW int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	headStyle := lipgloss.NewStyle().Foreground(t.Accent)

	row := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-12s", label)) + valueStyle.Render(value) + "\n"
	}

	var b strings.Builder
	b.WriteString(headStyle.Render("Batting"))
	b.WriteString("\n")
	b.WriteString(row("Matches", fmt.Sprintf("%d (%d inns)", p.Batting.Matches, p.Batting.Innings)))
	b.WriteString(row("Runs", fmt.Sprintf("%s  HS %d", cli.FormatNumber(int64(p.Batting.Runs)), p.Batting.HighScore)))
	b.WriteString(row("Average", cli.FormatAverage(p.Batting.Average)))
	b.WriteString(row("Strike rate", cli.FormatStrikeRate(p.Batting.StrikeRate)))
	b.WriteString(row("50s / 100s", fmt.Sprintf("%d / %d", p.Batting.Fifties, p.Batting.Hundreds)))

	if p.Bowling.Innings > 0 {
		b.WriteString("\n")
		b.WriteString(headStyle.Render("Bowling"))
		b.WriteString("\n")
		b.WriteString(row("Wickets", fmt.Sprintf("%d in %d inns", p.Bowling.Wickets, p.Bowling.Innings)))
		b.WriteString(row("Economy", cli.FormatEconomy(p.Bowling.Economy)))
		b.WriteString(row("Average", cli.FormatAverage(p.Bowling.Average)))
		if p.Bowling.Best != "" {
			b.WriteString(row("Best", p.Bowling.Best))
		}
	}

	title := p.Name
	if p.Team != "" {
		title += "  ·  " + p.Team
	}
	return components.ContentCard(title, strings.TrimRight(b.String(), "\n"), outerW)
}
