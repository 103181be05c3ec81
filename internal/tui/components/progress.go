package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/crease/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a block-character progress bar with percentage.
func ProgressBar(pct float64, width int) string {
	t := theme.Active
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}

	var barColor lipgloss.Color
	switch {
	case pct >= 1:
		barColor = t.Green
	case pct >= 0.5:
		barColor = t.Accent
	default:
		barColor = t.Cyan
	}

	filledStyle := lipgloss.NewStyle().Foreground(barColor)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	pctStyle := lipgloss.NewStyle().Foreground(barColor).Bold(true)

	var b strings.Builder
	b.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))

	return b.String() + " " + pctStyle.Render(fmt.Sprintf("%.0f%%", pct*100))
}

// ChaseBar renders the second-innings chase as a labeled progress bar:
// runs scored against the target, with the runs still needed on the right.
func ChaseBar(current, target, labelW, barWidth int) string {
	t := theme.Active

	if target <= 0 {
		return ""
	}
	pct := float64(current) / float64(target)
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}

	fill := string(t.Accent)
	need := target - current
	needLabel := fmt.Sprintf("need %d", need)
	if need <= 0 {
		fill = string(t.Green)
		needLabel = "target reached"
	}

	bar := progress.New(
		progress.WithSolidFill(fill),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	needStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, fmt.Sprintf("Chase %d/%d", current, target))) +
		" " +
		bar.ViewAs(pct) +
		" " +
		needStyle.Render(needLabel)
}
