package model

// GameSummary is a lightweight per-round record for listings and roster history.
type GameSummary struct {
	RoundDate   int64       `json:"round_date"`
	RoundLength float64     `json:"round_length"`
	MapName     string      `json:"map_name"`
	WinningTeam Team        `json:"winning_team"`
	Marines     TeamSummary `json:"marines"`
	Aliens      TeamSummary `json:"aliens"`
}

// TeamSummary lists the display names that played a side; Commander is empty
// when nobody commanded.
type TeamSummary struct {
	Players   []string `json:"players"`
	Commander string   `json:"commander,omitempty"`
}

// Has reports whether name played on this side.
func (t TeamSummary) Has(name string) bool {
	for _, p := range t.Players {
		if p == name {
			return true
		}
	}
	return false
}
