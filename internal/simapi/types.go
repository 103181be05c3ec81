package simapi

// SeriesRequest starts a multi-match series simulation stream.
type SeriesRequest struct {
	Team1Name         string   `json:"team1_name"`
	Team1Players      []string `json:"team1_players"`
	Team2Name         string   `json:"team2_name"`
	Team2Players      []string `json:"team2_players"`
	NumMatches        int      `json:"num_matches"`
	Team1BowlingOrder []string `json:"team1_bowling_order,omitempty"`
	Team2BowlingOrder []string `json:"team2_bowling_order,omitempty"`
	Model             string   `json:"model,omitempty"`
}

// MatchRequest starts a single custom match simulation stream.
type MatchRequest struct {
	Team1Name         string   `json:"team1_name"`
	Team1Players      []string `json:"team1_players"`
	Team2Name         string   `json:"team2_name"`
	Team2Players      []string `json:"team2_players"`
	Team1BowlingOrder []string `json:"team1_bowling_order,omitempty"`
	Team2BowlingOrder []string `json:"team2_bowling_order,omitempty"`
	Model             string   `json:"model,omitempty"`
}

// ModelList is the catalog of prediction models the service offers.
type ModelList struct {
	Default string   `json:"default"`
	Models  []string `json:"models"`
}

// Player is a search result entry.
type Player struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Team string `json:"team,omitempty"`
}

// PlayerProfile is the full per-player statistics record.
type PlayerProfile struct {
	ID      int          `json:"id"`
	Name    string       `json:"name"`
	Team    string       `json:"team,omitempty"`
	Batting BattingStats `json:"batting"`
	Bowling BowlingStats `json:"bowling"`
}

// BattingStats holds a player's career batting figures.
type BattingStats struct {
	Matches    int     `json:"matches"`
	Innings    int     `json:"innings"`
	Runs       int     `json:"runs"`
	HighScore  int     `json:"high_score"`
	Average    float64 `json:"average"`
	StrikeRate float64 `json:"strike_rate"`
	Fifties    int     `json:"fifties"`
	Hundreds   int     `json:"hundreds"`
}

// BowlingStats holds a player's career bowling figures.
type BowlingStats struct {
	Matches int     `json:"matches"`
	Innings int     `json:"innings"`
	Wickets int     `json:"wickets"`
	Runs    int     `json:"runs"`
	Economy float64 `json:"economy"`
	Average float64 `json:"average"`
	Best    string  `json:"best,omitempty"`
}

// LeaderboardQuery selects and pages a leaderboard listing.
type LeaderboardQuery struct {
	SortBy     string
	Limit      int
	Offset     int
	MinInnings int
}

// LeaderboardPage is one page of a leaderboard.
type LeaderboardPage struct {
	SortBy  string             `json:"sort_by"`
	Entries []LeaderboardEntry `json:"leaderboard"`
	Total   int                `json:"total"`
}

// LeaderboardEntry is one row of a leaderboard. Batting and bowling boards
// share the shape; fields irrelevant to the board type are zero.
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	Name       string  `json:"name"`
	Innings    int     `json:"innings"`
	Runs       int     `json:"runs"`
	Wickets    int     `json:"wickets"`
	Average    float64 `json:"average"`
	StrikeRate float64 `json:"strike_rate"`
	Economy    float64 `json:"economy"`
}

// BowlersRequest asks which of a roster's players may bowl, or for a
// generated bowling order.
type BowlersRequest struct {
	Players []string `json:"players"`
	Model   string   `json:"model,omitempty"`
}

type bowlingOrderResponse struct {
	BowlingOrder []string `json:"bowling_order"`
}

type eligibleBowlersResponse struct {
	Bowlers []string `json:"bowlers"`
}
