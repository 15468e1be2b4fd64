package stats

import "time"

// MatchStatInput is the upsert request body for one player-gameweek.
type MatchStatInput struct {
	PlayerID      string    `json:"player_id"`
	Gameweek      int       `json:"gameweek"`
	Season        int       `json:"season"`
	MatchDate     time.Time `json:"match_date"`
	OpponentTeam  string    `json:"opponent_team"`
	MinutesPlayed int       `json:"minutes_played"`
	Goals         int       `json:"goals"`
	Assists       int       `json:"assists"`
	CleanSheet    bool      `json:"clean_sheet"`
	YellowCards   int       `json:"yellow_cards"`
	RedCards      int       `json:"red_cards"`
	Rating        float64   `json:"rating"`
	TotalPoints   int       `json:"total_points"`
}
