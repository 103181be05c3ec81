// Package feed decodes the newline-delimited JSON event stream produced by
// the simulation service into typed frames.
package feed

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownType marks a line whose "type" discriminator is not one of the
// known frame kinds. Callers drop these lines and keep reading.
var ErrUnknownType = errors.New("feed: unknown frame type")

// Frame is one decoded unit of the event stream. The set of implementations
// is closed: BallFrame, MatchUpdateFrame, MatchCompleteFrame and
// SeriesCompleteFrame.
type Frame interface {
	frame()
}

func (BallFrame) frame()           {}
func (MatchUpdateFrame) frame()    {}
func (MatchCompleteFrame) frame()  {}
func (SeriesCompleteFrame) frame() {}

// BallFrame describes a single delivery of the match in progress.
type BallFrame struct {
	MatchNo int        `json:"match_no"`
	Innings int        `json:"innings"`
	Detail  BallDetail `json:"detail"`
}

// BallDetail carries the delivery payload: the three players involved with
// their running figures, the team totals, and the outcome of the ball.
type BallDetail struct {
	Striker    PlayerState `json:"striker"`
	NonStriker PlayerState `json:"non_striker"`
	Bowler     PlayerState `json:"bowler"`
	TotalRuns  int         `json:"total_runs"`
	Wickets    int         `json:"wickets"`
	BatTeam    string      `json:"bat_team"`
	Target     *int        `json:"target,omitempty"`
	Over       int         `json:"over"`
	Ball       int         `json:"ball"`
	RunsScored RunValue    `json:"runs_scored"`
	IsWicket   bool        `json:"is_wicket"`
}

// PlayerState holds a player's running figures at the time of a ball.
type PlayerState struct {
	Name      string  `json:"name"`
	Runs      int     `json:"runs"`
	Balls     int     `json:"balls"`
	Wickets   int     `json:"wickets"`
	RunsGiven int     `json:"runs_given"`
	Overs     float64 `json:"overs"`
	Out       bool    `json:"out"`
	OutBy     string  `json:"out_by,omitempty"`
}

// RunValue is the polymorphic runs_scored field. The service emits a plain
// number for runs off the bat and a string label for extras ("Wd", "Nb").
type RunValue struct {
	Runs  int
	Label string // set only for extras
}

// UnmarshalJSON accepts a JSON number or a string.
func (r *RunValue) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		r.Runs = n
		r.Label = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		s = strings.TrimSpace(s)
		// Some streams quote plain numbers too.
		if n, err := strconv.Atoi(s); err == nil {
			r.Runs = n
			r.Label = ""
			return nil
		}
		r.Label = s
		return nil
	}

	return fmt.Errorf("feed: runs_scored is neither number nor string: %s", data)
}

// String renders the outcome the way a scorebook would: the run count, or
// the extras label when set.
func (r RunValue) String() string {
	if r.Label != "" {
		return r.Label
	}
	return strconv.Itoa(r.Runs)
}

// MatchUpdateFrame reports partial progress for one match of a series.
type MatchUpdateFrame struct {
	Result MatchResult
}

// MatchCompleteFrame reports the terminal result of a standalone match.
// Streams that emit it never also emit a SeriesCompleteFrame.
type MatchCompleteFrame struct {
	Result MatchResult
}

// MatchResult is the finalized (or latest known) outcome of one match.
type MatchResult struct {
	MatchNo   int                    `json:"match_no"`
	Winner    string                 `json:"winner"`
	Margin    string                 `json:"margin"`
	Scorecard map[string]TeamInnings `json:"scorecard,omitempty"`
}

// TieWinner is the sentinel winner value the service uses for a tied match.
const TieWinner = "Tie"

// TeamInnings is one team's side of a scorecard.
type TeamInnings struct {
	Runs    int           `json:"runs"`
	Wickets int           `json:"wickets"`
	Overs   float64       `json:"overs"`
	Batting []BattingLine `json:"batting,omitempty"`
	Bowling []BowlingLine `json:"bowling,omitempty"`
}

// BattingLine is one batter's scorecard entry.
type BattingLine struct {
	Name  string `json:"name"`
	Runs  int    `json:"runs"`
	Balls int    `json:"balls"`
	Out   bool   `json:"out"`
	OutBy string `json:"out_by,omitempty"`
}

// BowlingLine is one bowler's scorecard entry.
type BowlingLine struct {
	Name    string  `json:"name"`
	Overs   float64 `json:"overs"`
	Runs    int     `json:"runs"`
	Wickets int     `json:"wickets"`
}

// SeriesCompleteFrame carries the service's authoritative series summary.
// Once received it supersedes the client-computed aggregate for display.
type SeriesCompleteFrame struct {
	Summary SeriesResult
}

// SeriesResult is the parsed form of the polymorphic summary payload.
type SeriesResult struct {
	Scoreline string
	Wins      map[string]int
	Ties      int
}

// rawFrame is the envelope every line shares. Payload fields are left raw
// so each frame kind can parse only what it needs.
type rawFrame struct {
	Type    string          `json:"type"`
	MatchNo int             `json:"match_no"`
	Innings int             `json:"innings"`
	Detail  json.RawMessage `json:"detail"`
	Winner  string          `json:"winner"`
	Margin  string          `json:"margin"`
	Score   json.RawMessage `json:"scorecard"`
	Summary json.RawMessage `json:"summary"`
}

// ParseFrame parses one stream line into a typed frame.
// Returns ErrUnknownType (wrapped) for discriminators it does not know.
func ParseFrame(line []byte) (Frame, error) {
	var raw rawFrame
	if err := json.Unmarshal(line, &raw); err != nil {
		return nil, fmt.Errorf("feed: parsing frame: %w", err)
	}

	switch raw.Type {
	case "ball":
		var detail BallDetail
		if len(raw.Detail) > 0 {
			if err := json.Unmarshal(raw.Detail, &detail); err != nil {
				return nil, fmt.Errorf("feed: parsing ball detail: %w", err)
			}
		}
		return BallFrame{MatchNo: raw.MatchNo, Innings: raw.Innings, Detail: detail}, nil

	case "match_update":
		return MatchUpdateFrame{Result: raw.matchResult()}, nil

	case "match_complete":
		return MatchCompleteFrame{Result: raw.matchResult()}, nil

	case "series_complete":
		summary, err := parseSeriesResult(raw.Summary)
		if err != nil {
			return nil, err
		}
		return SeriesCompleteFrame{Summary: summary}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownType, raw.Type)
}

func (r rawFrame) matchResult() MatchResult {
	result := MatchResult{
		MatchNo: r.MatchNo,
		Winner:  r.Winner,
		Margin:  r.Margin,
	}
	if len(r.Score) > 0 {
		// Scorecard is optional on partial updates; a bad one is not fatal.
		_ = json.Unmarshal(r.Score, &result.Scorecard)
	}
	return result
}

// parseSeriesResult defensively parses the polymorphic summary field.
// Handles a plain string ("India win the series 2-1"), an object wrapping a
// scoreline ({"scoreline": "..."}), and a win-count map
// ({"India": 2, "Australia": 1, "Tie": 0}).
func parseSeriesResult(raw json.RawMessage) (SeriesResult, error) {
	if len(raw) == 0 {
		return SeriesResult{}, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return SeriesResult{Scoreline: s}, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return SeriesResult{}, fmt.Errorf("feed: parsing series summary: %w", err)
	}

	var result SeriesResult
	if sl, ok := obj["scoreline"]; ok {
		_ = json.Unmarshal(sl, &result.Scoreline)
		delete(obj, "scoreline")
	}

	for key, val := range obj {
		var n int
		if err := json.Unmarshal(val, &n); err != nil {
			continue
		}
		if key == TieWinner {
			result.Ties = n
			continue
		}
		if result.Wins == nil {
			result.Wins = make(map[string]int)
		}
		result.Wins[key] = n
	}

	return result, nil
}
