// Package series computes derived standings and player roll-ups from the
// accumulated match history of a playback session.
package series

import (
	"fmt"
	"sort"

	"github.com/theirongolddev/crease/internal/feed"
)

// Summary is the client-computed series standing. It is a pure function of
// the match history plus the two configured team names, recomputed in full
// whenever the history changes. When the service later sends its own
// authoritative summary, that one is preferred for display, but this
// aggregate stays correct on its own because single-match streams never
// send one.
type Summary struct {
	TeamA     string
	TeamB     string
	WinsA     int
	WinsB     int
	Ties      int
	Played    int
	Scoreline string
}

// Compute builds a Summary from the history. totalMatches is the number of
// matches the series was configured with; pass 0 when unknown. Winners are
// matched by exact team name; the "Tie" sentinel counts as a tie; any other
// winner string is ignored.
func Compute(history []feed.MatchResult, teamA, teamB string, totalMatches int) Summary {
	s := Summary{TeamA: teamA, TeamB: teamB, Played: len(history)}

	for _, m := range history {
		switch m.Winner {
		case teamA:
			s.WinsA++
		case teamB:
			s.WinsB++
		case feed.TieWinner:
			s.Ties++
		}
	}

	s.Scoreline = scoreline(s, totalMatches)
	return s
}

func scoreline(s Summary, totalMatches int) string {
	var line string
	switch {
	case s.WinsA == s.WinsB:
		line = fmt.Sprintf("Level %d-%d", s.WinsA, s.WinsB)
	case s.WinsA > s.WinsB:
		line = leaderLine(s.TeamA, s.WinsA, s.WinsB, s.Played, totalMatches)
	default:
		line = leaderLine(s.TeamB, s.WinsB, s.WinsA, s.Played, totalMatches)
	}

	if s.Ties > 0 {
		if s.Ties == 1 {
			line += " (1 tie)"
		} else {
			line += fmt.Sprintf(" (%d ties)", s.Ties)
		}
	}
	return line
}

func leaderLine(leader string, won, lost, played, totalMatches int) string {
	if totalMatches > 0 && played >= totalMatches {
		return fmt.Sprintf("%s win the series %d-%d", leader, won, lost)
	}
	return fmt.Sprintf("%s lead %d-%d", leader, won, lost)
}

// BatterTotals is one batter's roll-up across every scorecard in the
// history.
type BatterTotals struct {
	Name    string
	Runs    int
	Balls   int
	Innings int
	Outs    int
}

// Average returns runs per dismissal. Not-out innings keep the divisor
// down, so an undefeated batter's average equals their total.
func (b BatterTotals) Average() float64 {
	if b.Outs == 0 {
		return float64(b.Runs)
	}
	return float64(b.Runs) / float64(b.Outs)
}

// StrikeRate returns runs per 100 balls.
func (b BatterTotals) StrikeRate() float64 {
	if b.Balls == 0 {
		return 0
	}
	return float64(b.Runs) / float64(b.Balls) * 100
}

// BowlerTotals is one bowler's roll-up across every scorecard in the
// history.
type BowlerTotals struct {
	Name    string
	Overs   float64
	Runs    int
	Wickets int
}

// Economy returns runs conceded per over.
func (b BowlerTotals) Economy() float64 {
	if b.Overs == 0 {
		return 0
	}
	return float64(b.Runs) / b.Overs
}

// TopBatters returns up to n batters ranked by total runs descending, ties
// broken by strike rate descending.
func TopBatters(history []feed.MatchResult, n int) []BatterTotals {
	byName := make(map[string]*BatterTotals)

	for _, m := range history {
		for _, innings := range m.Scorecard {
			for _, line := range innings.Batting {
				bt, ok := byName[line.Name]
				if !ok {
					bt = &BatterTotals{Name: line.Name}
					byName[line.Name] = bt
				}
				bt.Runs += line.Runs
				bt.Balls += line.Balls
				bt.Innings++
				if line.Out {
					bt.Outs++
				}
			}
		}
	}

	batters := make([]BatterTotals, 0, len(byName))
	for _, bt := range byName {
		batters = append(batters, *bt)
	}
	sort.Slice(batters, func(i, j int) bool {
		if batters[i].Runs != batters[j].Runs {
			return batters[i].Runs > batters[j].Runs
		}
		return batters[i].StrikeRate() > batters[j].StrikeRate()
	})

	if n > 0 && len(batters) > n {
		batters = batters[:n]
	}
	return batters
}

// TopBowlers returns up to n bowlers ranked by wickets descending, ties
// broken by runs conceded ascending.
func TopBowlers(history []feed.MatchResult, n int) []BowlerTotals {
	byName := make(map[string]*BowlerTotals)

	for _, m := range history {
		for _, innings := range m.Scorecard {
			for _, line := range innings.Bowling {
				bt, ok := byName[line.Name]
				if !ok {
					bt = &BowlerTotals{Name: line.Name}
					byName[line.Name] = bt
				}
				bt.Overs += line.Overs
				bt.Runs += line.Runs
				bt.Wickets += line.Wickets
			}
		}
	}

	bowlers := make([]BowlerTotals, 0, len(byName))
	for _, bt := range byName {
		bowlers = append(bowlers, *bt)
	}
	sort.Slice(bowlers, func(i, j int) bool {
		if bowlers[i].Wickets != bowlers[j].Wickets {
			return bowlers[i].Wickets > bowlers[j].Wickets
		}
		return bowlers[i].Runs < bowlers[j].Runs
	})

	if n > 0 && len(bowlers) > n {
		bowlers = bowlers[:n]
	}
	return bowlers
}

// AverageScores returns each team's mean completed-innings score across the
// history, keyed by team name.
func AverageScores(history []feed.MatchResult) map[string]float64 {
	totals := make(map[string]int)
	counts := make(map[string]int)

	for _, m := range history {
		for team, innings := range m.Scorecard {
			totals[team] += innings.Runs
			counts[team]++
		}
	}

	avgs := make(map[string]float64, len(totals))
	for team, total := range totals {
		avgs[team] = float64(total) / float64(counts[team])
	}
	return avgs
}
