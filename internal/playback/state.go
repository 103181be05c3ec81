package playback

import (
	"github.com/theirongolddev/crease/internal/feed"
	"github.com/theirongolddev/crease/internal/series"
)

// Status is the coarse lifecycle of a session.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusComplete
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusComplete:
		return "complete"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// OverGroup bundles the consecutive balls of one over. The key includes the
// match number: over 3 of match 2 never merges with over 3 of match 1.
type OverGroup struct {
	MatchNo int
	Innings int
	Over    int
	Team    string
	Bowler  string // from the first ball of the over
	Balls   []string
	Runs    int // running score after the latest ball
	Wickets int
}

type overKey struct {
	matchNo int
	innings int
	over    int
}

func (g OverGroup) key() overKey {
	return overKey{matchNo: g.MatchNo, innings: g.Innings, over: g.Over}
}

// Snapshot is a copy of the session's committed view model, safe to read
// while the session keeps running.
type Snapshot struct {
	Status  Status
	Err     error
	TeamA   string
	TeamB   string
	Current *feed.BallFrame
	Overs   []OverGroup
	History []feed.MatchResult
	Summary series.Summary

	// Official is the service-sent summary. Non-nil once a terminal frame
	// has arrived; preferred over Summary for display.
	Official *feed.SeriesResult

	Dropped int
}

// Scoreline returns the display scoreline: the official one when present,
// the client-computed aggregate otherwise.
func (s Snapshot) Scoreline() string {
	if s.Official != nil && s.Official.Scoreline != "" {
		return s.Official.Scoreline
	}
	return s.Summary.Scoreline
}

// viewState is the mutable state owned by the active session. All writes
// happen under the controller's mutex on the single consuming goroutine.
type viewState struct {
	status       Status
	err          error
	teamA        string
	teamB        string
	totalMatches int
	current      *feed.BallFrame
	overs        []OverGroup
	history      []feed.MatchResult
	summary      series.Summary
	official     *feed.SeriesResult
	dropped      int
}
