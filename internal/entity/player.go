package entity

// Player is the profile bound to a single live connection. It exists from
// registration until the connection drops and is never persisted.
type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// LeaderboardEntry is one row of the cumulative leaderboard.
type LeaderboardEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int64  `json:"score"`
}
