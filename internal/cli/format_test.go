package cli

import "testing"

func TestFormatScore(t *testing.T) {
	tests := []struct {
		runs, wickets int
		want          string
	}{
		{187, 6, "187/6"},
		{0, 0, "0/0"},
		{143, 10, "143"},
	}
	for _, tt := range tests {
		if got := FormatScore(tt.runs, tt.wickets); got != tt.want {
			t.Errorf("FormatScore(%d, %d) = %q, want %q", tt.runs, tt.wickets, got, tt.want)
		}
	}
}

func TestFormatOvers(t *testing.T) {
	tests := []struct {
		balls int
		want  string
	}{
		{0, "0.0"},
		{5, "0.5"},
		{6, "1.0"},
		{22, "3.4"},
		{120, "20.0"},
		{-3, "0.0"},
	}
	for _, tt := range tests {
		if got := FormatOvers(tt.balls); got != tt.want {
			t.Errorf("FormatOvers(%d) = %q, want %q", tt.balls, got, tt.want)
		}
	}
}

func TestFormatBatterLine(t *testing.T) {
	if got := FormatBatterLine(72, 48, true); got != "72 (48)" {
		t.Errorf("out batter = %q", got)
	}
	if got := FormatBatterLine(31, 20, false); got != "31* (20)" {
		t.Errorf("not-out batter = %q", got)
	}
}

func TestFormatBowlerLine(t *testing.T) {
	if got := FormatBowlerLine(3, 21, 4); got != "3/21 (4.0)" {
		t.Errorf("bowler line = %q", got)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4008, "-4,008"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.n); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatDelayLabel(t *testing.T) {
	tests := []struct {
		ms   int
		want string
	}{
		{0, "live"},
		{250, "250ms/ball"},
		{1500, "1.5s/ball"},
	}
	for _, tt := range tests {
		if got := FormatDelayLabel(tt.ms); got != tt.want {
			t.Errorf("FormatDelayLabel(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}
