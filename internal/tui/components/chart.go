package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/crease/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var barBlocks = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color)

	var buf strings.Builder
	buf.Grow(len(values) * 4) // UTF-8 block chars are up to 3 bytes
	for _, v := range values {
		idx := 1 + int(v/peak*float64(len(barBlocks)-2))
		if idx >= len(barBlocks) {
			idx = len(barBlocks) - 1
		}
		if idx < 1 {
			idx = 1
		}
		buf.WriteRune(barBlocks[idx])
	}

	return style.Render(buf.String())
}

// Manhattan renders a runs-per-over bar chart, the classic innings worm.
// Overs in which a wicket fell are drawn in red. Falls back to a sparkline
// when the area is too small for full bars.
func Manhattan(runs []int, wickets []bool, width, height int) string {
	if len(runs) == 0 {
		return ""
	}

	t := theme.Active

	maxVal := 1
	for _, r := range runs {
		if r > maxVal {
			maxVal = r
		}
	}

	yLabelW := len(strconv.Itoa(maxVal))
	if yLabelW < 2 {
		yLabelW = 2
	}

	barW, gap := 2, 1
	chartW := width - yLabelW - 1
	if len(runs)*(barW+gap)-gap > chartW {
		barW = 1
	}

	tooSmall := width < 15 || height < 3 || len(runs)*(barW+gap)-gap > chartW
	if tooSmall {
		vals := make([]float64, len(runs))
		for i, r := range runs {
			vals[i] = float64(r)
		}
		return Sparkline(vals, t.Blue)
	}

	axisLen := len(runs)*(barW+gap) - gap
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	runStyle := lipgloss.NewStyle().Foreground(t.Blue)
	wktStyle := lipgloss.NewStyle().Foreground(t.Red)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder

	for row := height; row >= 1; row-- {
		rowTop := float64(maxVal) * float64(row) / float64(height)
		rowBottom := float64(maxVal) * float64(row-1) / float64(height)

		label := ""
		if row == height {
			label = strconv.Itoa(maxVal)
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, label)))
		b.WriteString(axisStyle.Render("│"))

		for i, r := range runs {
			if i > 0 {
				b.WriteString(strings.Repeat(" ", gap))
			}

			style := runStyle
			if i < len(wickets) && wickets[i] {
				style = wktStyle
			}

			v := float64(r)
			switch {
			case v >= rowTop:
				b.WriteString(style.Render(strings.Repeat("█", barW)))
			case v > rowBottom:
				frac := (v - rowBottom) / (rowTop - rowBottom)
				idx := int(frac * 8)
				if idx < 1 {
					idx = 1
				}
				if idx > 8 {
					idx = 8
				}
				b.WriteString(style.Render(strings.Repeat(string(barBlocks[idx]), barW)))
			case row == 1 && r == 0:
				// Mark maidens and wicket-only overs so the over still shows
				b.WriteString(dimStyle.Render(strings.Repeat("▁", barW)))
			default:
				b.WriteString(strings.Repeat(" ", barW))
			}
		}
		b.WriteString("\n")
	}

	// X-axis with over numbers
	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axisStyle.Render("└"))
	b.WriteString(axisStyle.Render(strings.Repeat("─", axisLen)))
	b.WriteString("\n")

	buf := make([]byte, axisLen)
	for i := range buf {
		buf[i] = ' '
	}
	lastEnd := -1
	for i := 0; i < len(runs); i++ {
		if i%5 != 0 && i != len(runs)-1 {
			continue
		}
		lbl := strconv.Itoa(i + 1)
		pos := i * (barW + gap)
		end := pos + len(lbl)
		if pos <= lastEnd || end > axisLen {
			continue
		}
		copy(buf[pos:end], lbl)
		lastEnd = end
	}
	b.WriteString(strings.Repeat(" ", yLabelW+1))
	b.WriteString(axisStyle.Render(strings.TrimRight(string(buf), " ")))

	return b.String()
}
