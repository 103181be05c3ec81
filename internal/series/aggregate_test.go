package series

import (
	"testing"

	"github.com/theirongolddev/crease/internal/feed"
)

func result(matchNo int, winner string) feed.MatchResult {
	return feed.MatchResult{MatchNo: matchNo, Winner: winner, Margin: "10 runs"}
}

func TestCompute_Scorelines(t *testing.T) {
	tests := []struct {
		name    string
		winners []string
		total   int
		want    string
	}{
		{"no matches", nil, 5, "Level 0-0"},
		{"level one all", []string{"India", "Australia"}, 0, "Level 1-1"},
		{"leader mid series", []string{"India", "India", "Australia"}, 5, "India lead 2-1"},
		{"series decided", []string{"India", "India", "Australia"}, 3, "India win the series 2-1"},
		{"trailing team named second", []string{"Australia", "Australia"}, 5, "Australia lead 2-0"},
		{"one tie", []string{"India", "Tie"}, 0, "India lead 1-0 (1 tie)"},
		{"two ties level", []string{"Tie", "Tie", "India", "Australia"}, 0, "Level 1-1 (2 ties)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var history []feed.MatchResult
			for i, w := range tt.winners {
				history = append(history, result(i+1, w))
			}

			s := Compute(history, "India", "Australia", tt.total)
			if s.Scoreline != tt.want {
				t.Errorf("Scoreline = %q, want %q", s.Scoreline, tt.want)
			}
		})
	}
}

func TestCompute_CountsExactNameMatchesOnly(t *testing.T) {
	history := []feed.MatchResult{
		result(1, "India"),
		result(2, "india"),        // case mismatch does not count
		result(3, "West Indies"),  // unknown winner ignored
		result(4, feed.TieWinner), // sentinel counts as tie
	}

	s := Compute(history, "India", "Australia", 0)
	if s.WinsA != 1 || s.WinsB != 0 || s.Ties != 1 {
		t.Errorf("wins = %d/%d ties = %d, want 1/0 and 1", s.WinsA, s.WinsB, s.Ties)
	}
	if s.Played != 4 {
		t.Errorf("Played = %d, want 4", s.Played)
	}
}

func scorecardResult(matchNo int, winner string, cards map[string]feed.TeamInnings) feed.MatchResult {
	return feed.MatchResult{MatchNo: matchNo, Winner: winner, Margin: "x", Scorecard: cards}
}

func TestTopBatters(t *testing.T) {
	history := []feed.MatchResult{
		scorecardResult(1, "India", map[string]feed.TeamInnings{
			"India": {Runs: 180, Batting: []feed.BattingLine{
				{Name: "Kohli", Runs: 72, Balls: 48, Out: true},
				{Name: "Sharma", Runs: 40, Balls: 30, Out: true},
			}},
		}),
		scorecardResult(2, "India", map[string]feed.TeamInnings{
			"India": {Runs: 165, Batting: []feed.BattingLine{
				{Name: "Kohli", Runs: 31, Balls: 20, Out: false},
				{Name: "Sharma", Runs: 63, Balls: 41, Out: true},
			}},
		}),
	}

	top := TopBatters(history, 5)
	if len(top) != 2 {
		t.Fatalf("got %d batters, want 2", len(top))
	}
	if top[0].Name != "Kohli" || top[0].Runs != 103 {
		t.Errorf("top batter = %s with %d, want Kohli with 103", top[0].Name, top[0].Runs)
	}
	// One not-out innings: average divides by dismissals, not innings.
	if got := top[0].Average(); got != 103 {
		t.Errorf("Kohli average = %.1f, want 103.0", got)
	}
	if got := top[1].StrikeRate(); got < 145 || got > 146 {
		t.Errorf("Sharma strike rate = %.1f, want ~145.1", got)
	}
}

func TestTopBowlers_WicketsThenRunsConceded(t *testing.T) {
	history := []feed.MatchResult{
		scorecardResult(1, "India", map[string]feed.TeamInnings{
			"Australia": {Runs: 150, Bowling: []feed.BowlingLine{
				{Name: "Bumrah", Overs: 4, Runs: 21, Wickets: 3},
				{Name: "Shami", Overs: 4, Runs: 35, Wickets: 3},
				{Name: "Jadeja", Overs: 4, Runs: 18, Wickets: 1},
			}},
		}),
	}

	top := TopBowlers(history, 2)
	if len(top) != 2 {
		t.Fatalf("got %d bowlers, want 2", len(top))
	}
	// Equal wickets: fewer runs conceded ranks higher.
	if top[0].Name != "Bumrah" || top[1].Name != "Shami" {
		t.Errorf("order = %s, %s; want Bumrah, Shami", top[0].Name, top[1].Name)
	}
	if eco := top[0].Economy(); eco != 5.25 {
		t.Errorf("Bumrah economy = %.2f, want 5.25", eco)
	}
}

func TestAverageScores(t *testing.T) {
	history := []feed.MatchResult{
		scorecardResult(1, "India", map[string]feed.TeamInnings{
			"India":     {Runs: 180},
			"Australia": {Runs: 160},
		}),
		scorecardResult(2, "Australia", map[string]feed.TeamInnings{
			"India":     {Runs: 140},
			"Australia": {Runs: 170},
		}),
	}

	avgs := AverageScores(history)
	if avgs["India"] != 160 {
		t.Errorf("India avg = %.1f, want 160.0", avgs["India"])
	}
	if avgs["Australia"] != 165 {
		t.Errorf("Australia avg = %.1f, want 165.0", avgs["Australia"])
	}
}
