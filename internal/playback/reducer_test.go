package playback

import (
	"testing"

	"github.com/theirongolddev/crease/internal/feed"
)

func ball(matchNo, innings, over, ballNo, runs int, wicket bool) feed.BallFrame {
	return feed.BallFrame{
		MatchNo: matchNo,
		Innings: innings,
		Detail: feed.BallDetail{
			Over:       over,
			Ball:       ballNo,
			RunsScored: feed.RunValue{Runs: runs},
			IsWicket:   wicket,
			BatTeam:    "India",
			Bowler:     feed.PlayerState{Name: "Starc"},
		},
	}
}

func newView() *viewState {
	return &viewState{teamA: "India", teamB: "Australia"}
}

func TestApplyBall_GroupsByMatchInningsOver(t *testing.T) {
	v := newView()
	v.applyBall(ball(1, 1, 0, 1, 4, false))
	v.applyBall(ball(1, 1, 0, 2, 0, true))
	v.applyBall(ball(1, 1, 1, 1, 6, false))
	v.applyBall(ball(1, 2, 1, 1, 2, false)) // same over number, new innings

	if len(v.overs) != 3 {
		t.Fatalf("got %d over groups, want 3", len(v.overs))
	}

	first := v.overs[0]
	if first.Over != 0 || len(first.Balls) != 2 {
		t.Errorf("first group = over %d with %d balls, want over 0 with 2", first.Over, len(first.Balls))
	}
	if first.Balls[0] != "4" || first.Balls[1] != WicketMarker {
		t.Errorf("first group balls = %v, want [4 W]", first.Balls)
	}
	if first.Bowler != "Starc" {
		t.Errorf("Bowler = %q, want Starc", first.Bowler)
	}
	if v.overs[2].Innings != 2 {
		t.Errorf("third group innings = %d, want 2", v.overs[2].Innings)
	}
}

func TestApplyBall_NeverMergesAcrossMatches(t *testing.T) {
	v := newView()
	// Match 1, over 3 of innings 1.
	v.applyBall(ball(1, 1, 3, 1, 1, false))
	v.applyBall(ball(1, 1, 3, 2, 2, false))
	// Match 2, same innings and over numbers.
	v.applyBall(ball(2, 1, 3, 1, 6, false))

	// The previous match's overs are cleared, not merged into.
	if len(v.overs) != 1 {
		t.Fatalf("got %d over groups after new match, want 1", len(v.overs))
	}
	g := v.overs[0]
	if g.MatchNo != 2 || len(g.Balls) != 1 || g.Balls[0] != "6" {
		t.Errorf("group = match %d balls %v, want match 2 [6]", g.MatchNo, g.Balls)
	}
}

func TestApplyBall_SnapshotLastWriteWins(t *testing.T) {
	v := newView()

	b1 := ball(1, 1, 0, 1, 4, false)
	b1.Detail.TotalRuns = 4
	b1.Detail.Wickets = 0
	v.applyBall(b1)

	b2 := ball(1, 1, 0, 2, 0, true)
	b2.Detail.TotalRuns = 4
	b2.Detail.Wickets = 1
	v.applyBall(b2)

	g := v.overs[0]
	if g.Runs != 4 || g.Wickets != 1 {
		t.Errorf("snapshot = %d/%d, want 4/1", g.Runs, g.Wickets)
	}
	if v.current == nil || v.current.Detail.Ball != 2 {
		t.Error("current ball not replaced by latest delivery")
	}
}

func TestApplyResult_UpsertByMatchNumber(t *testing.T) {
	v := newView()
	v.applyResult(feed.MatchResult{MatchNo: 1, Winner: "India", Margin: "20 runs"})
	v.applyResult(feed.MatchResult{MatchNo: 2, Winner: "Australia", Margin: "5 wickets"})
	// Retransmission for match 1 with updated content.
	v.applyResult(feed.MatchResult{MatchNo: 1, Winner: "India", Margin: "21 runs"})

	if len(v.history) != 2 {
		t.Fatalf("history length = %d, want 2", len(v.history))
	}
	// Replaced in place: match 1 keeps its original position.
	if v.history[0].MatchNo != 1 || v.history[0].Margin != "21 runs" {
		t.Errorf("history[0] = %+v, want match 1 with updated margin", v.history[0])
	}
	if v.history[1].MatchNo != 2 {
		t.Errorf("history[1].MatchNo = %d, want 2", v.history[1].MatchNo)
	}
}

func TestApplyResult_RepeatedFrameIsIdempotent(t *testing.T) {
	v := newView()
	r := feed.MatchResult{MatchNo: 1, Winner: "India", Margin: "20 runs"}
	v.applyResult(r)
	v.applyResult(r)
	v.applyResult(r)

	if len(v.history) != 1 {
		t.Fatalf("history length = %d, want 1", len(v.history))
	}
}

func TestApplyResult_RecomputesAggregate(t *testing.T) {
	v := newView()
	v.applyResult(feed.MatchResult{MatchNo: 1, Winner: "India", Margin: "20 runs"})
	v.applyResult(feed.MatchResult{MatchNo: 2, Winner: "Australia", Margin: "3 wickets"})

	// No series_complete ever arrives; the aggregate stands on its own.
	if v.summary.Scoreline != "Level 1-1" {
		t.Errorf("Scoreline = %q, want Level 1-1", v.summary.Scoreline)
	}
}

func TestApplyComplete_SynthesizesSummary(t *testing.T) {
	v := newView()
	v.applyComplete(feed.MatchResult{MatchNo: 1, Winner: "India", Margin: "8 wickets"})

	if v.official == nil || v.official.Scoreline != "India won by 8 wickets" {
		t.Errorf("official = %+v, want synthesized scoreline", v.official)
	}
	if len(v.history) != 1 {
		t.Errorf("history length = %d, want 1", len(v.history))
	}
}

func TestApplyComplete_Tie(t *testing.T) {
	v := newView()
	v.applyComplete(feed.MatchResult{MatchNo: 1, Winner: feed.TieWinner})

	if v.official == nil || v.official.Scoreline != "Match tied" {
		t.Errorf("official = %+v, want Match tied", v.official)
	}
}

func TestApplySeries_SupersedesAggregate(t *testing.T) {
	v := newView()
	v.applyResult(feed.MatchResult{MatchNo: 1, Winner: "India", Margin: "20 runs"})
	v.applySeries(feed.SeriesResult{Scoreline: "India win the series 2-1"})

	snap := Snapshot{Summary: v.summary, Official: v.official}
	if snap.Scoreline() != "India win the series 2-1" {
		t.Errorf("Scoreline() = %q, want the official one", snap.Scoreline())
	}

	// History keeps upserting normally afterwards.
	v.applyResult(feed.MatchResult{MatchNo: 2, Winner: "Australia", Margin: "3 wickets"})
	if len(v.history) != 2 {
		t.Errorf("history length = %d, want 2", len(v.history))
	}
}

// The concrete two-ball scenario: a boundary and a wicket in over 0, then a
// match result.
func TestScenario_TwoBallsAndAResult(t *testing.T) {
	v := newView()
	v.applyBall(ball(1, 1, 0, 1, 4, false))
	v.applyBall(ball(1, 1, 0, 2, 0, true))
	v.applyResult(feed.MatchResult{MatchNo: 1, Winner: "India", Margin: "20 runs"})

	if len(v.overs) != 1 {
		t.Fatalf("got %d over groups, want 1", len(v.overs))
	}
	g := v.overs[0]
	if g.MatchNo != 1 || g.Over != 0 {
		t.Errorf("group key = match %d over %d, want 1/0", g.MatchNo, g.Over)
	}
	if len(g.Balls) != 2 || g.Balls[0] != "4" || g.Balls[1] != "W" {
		t.Errorf("balls = %v, want [4 W]", g.Balls)
	}
	if len(v.history) != 1 || v.history[0].Winner != "India" || v.history[0].Margin != "20 runs" {
		t.Errorf("history = %+v", v.history)
	}
}
