package components

import (
	"strings"
	"testing"

	"github.com/theirongolddev/crease/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
	theme.SetActive("flexoki-dark")
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	tests := []struct {
		total, n int
	}{
		{100, 4},
		{101, 4},
		{80, 3},
		{7, 2},
	}
	for _, tt := range tests {
		widths := LayoutRow(tt.total, tt.n)
		if len(widths) != tt.n {
			t.Fatalf("LayoutRow(%d, %d) returned %d widths", tt.total, tt.n, len(widths))
		}
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != tt.total {
			t.Errorf("LayoutRow(%d, %d) sums to %d", tt.total, tt.n, sum)
		}
	}
}

func TestCardRowHeightMatchesTallest(t *testing.T) {
	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := len(strings.Split(shortCard, "\n"))
	tallLines := len(strings.Split(tallCard, "\n"))
	if shortLines >= tallLines {
		t.Fatal("test setup: short card should be shorter than tall card")
	}

	joined := CardRow([]string{tallCard, shortCard})
	if got := len(strings.Split(joined, "\n")); got != tallLines {
		t.Errorf("joined height = %d, want %d (tallest card)", got, tallLines)
	}
}

func TestCardInnerWidthFloor(t *testing.T) {
	if got := CardInnerWidth(40); got != 36 {
		t.Errorf("CardInnerWidth(40) = %d, want 36", got)
	}
	if got := CardInnerWidth(5); got != 10 {
		t.Errorf("CardInnerWidth(5) = %d, want floor 10", got)
	}
}

func TestTabIdxByKey(t *testing.T) {
	for i, tab := range Tabs {
		if got := TabIdxByKey(tab.Key); got != i {
			t.Errorf("TabIdxByKey(%q) = %d, want %d", tab.Key, got, i)
		}
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Errorf("TabIdxByKey('z') = %d, want -1", got)
	}
}

func TestManhattanFallsBackWhenTiny(t *testing.T) {
	runs := []int{4, 12, 6}
	out := Manhattan(runs, []bool{false, true, false}, 10, 2)
	if strings.Contains(out, "\n") {
		t.Errorf("tiny area should render a one-line sparkline, got %q", out)
	}
}

func TestManhattanRowCount(t *testing.T) {
	runs := []int{4, 12, 6, 0}
	out := Manhattan(runs, []bool{false, true, false, false}, 60, 6)
	// 6 chart rows + axis row + label row
	if got := len(strings.Split(out, "\n")); got != 8 {
		t.Errorf("chart lines = %d, want 8", got)
	}
}

func TestChaseBarTargetReached(t *testing.T) {
	out := ChaseBar(165, 160, 16, 20)
	if !strings.Contains(out, "target reached") {
		t.Errorf("chase at/after target should say so, got %q", out)
	}
	out = ChaseBar(100, 160, 16, 20)
	if !strings.Contains(out, "need 60") {
		t.Errorf("chase in progress should show runs needed, got %q", out)
	}
}
