package playback

import (
	"fmt"

	"github.com/theirongolddev/crease/internal/feed"
	"github.com/theirongolddev/crease/internal/series"
)

// WicketMarker is the over-group outcome symbol for a dismissal.
const WicketMarker = "W"

// applyBall makes the ball current and folds it into the over groups.
func (v *viewState) applyBall(b feed.BallFrame) {
	// Fresh match: drop the previous match's overs entirely so nothing can
	// merge across the boundary.
	if v.current != nil && v.current.MatchNo != b.MatchNo {
		v.overs = nil
	}

	ball := b
	v.current = &ball

	outcome := b.Detail.RunsScored.String()
	if b.Detail.IsWicket {
		outcome = WicketMarker
	}

	key := overKey{matchNo: b.MatchNo, innings: b.Innings, over: b.Detail.Over}
	if n := len(v.overs); n > 0 && v.overs[n-1].key() == key {
		g := &v.overs[n-1]
		g.Balls = append(g.Balls, outcome)
		// Running snapshot: last ball wins.
		g.Runs = b.Detail.TotalRuns
		g.Wickets = b.Detail.Wickets
		return
	}

	v.overs = append(v.overs, OverGroup{
		MatchNo: b.MatchNo,
		Innings: b.Innings,
		Over:    b.Detail.Over,
		Team:    b.Detail.BatTeam,
		Bowler:  b.Detail.Bowler.Name,
		Balls:   []string{outcome},
		Runs:    b.Detail.TotalRuns,
		Wickets: b.Detail.Wickets,
	})
}

// applyResult upserts the match into the history by match number and
// recomputes the series aggregate. A repeat for the same match number
// replaces the earlier record in place, so retransmissions never grow the
// list or move the entry.
func (v *viewState) applyResult(r feed.MatchResult) {
	replaced := false
	for i := range v.history {
		if v.history[i].MatchNo == r.MatchNo {
			v.history[i] = r
			replaced = true
			break
		}
	}
	if !replaced {
		v.history = append(v.history, r)
	}

	v.summary = series.Compute(v.history, v.teamA, v.teamB, v.totalMatches)
}

// applyComplete handles the terminal frame of a standalone match: the
// normal history upsert plus a synthesized one-line summary, since these
// streams never send a series_complete.
func (v *viewState) applyComplete(r feed.MatchResult) {
	v.applyResult(r)

	scoreline := fmt.Sprintf("%s won by %s", r.Winner, r.Margin)
	if r.Winner == feed.TieWinner {
		scoreline = "Match tied"
	}
	v.official = &feed.SeriesResult{Scoreline: scoreline}
}

// applySeries stores the authoritative summary. The history keeps
// accumulating normally afterwards.
func (v *viewState) applySeries(s feed.SeriesResult) {
	summary := s
	v.official = &summary
}
