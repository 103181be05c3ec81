package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/crease/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// StatusInfo feeds the bottom status bar.
type StatusInfo struct {
	State   string // "streaming", "paused", "complete", ...
	Speed   string // per-ball delay label
	Dropped int    // malformed stream lines skipped so far
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, info StatusInfo) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " [space]pause  [s]tep  [?]help  [q]uit"

	var rightParts []string
	if info.Dropped > 0 {
		warn := lipgloss.NewStyle().Foreground(t.Orange)
		rightParts = append(rightParts, warn.Render(fmt.Sprintf("%d dropped", info.Dropped)))
	}
	if info.Speed != "" {
		rightParts = append(rightParts, info.Speed)
	}
	if info.State != "" {
		rightParts = append(rightParts, info.State)
	}
	right := strings.Join(rightParts, "  ") + " "

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return style.Render(left + strings.Repeat(" ", padding) + right)
}
