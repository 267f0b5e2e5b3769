// Package provider defines canonical data types that all providers normalize
// into. These structs are the contract between provider handlers and the
// season builder: providers output these, the builder turns them into
// standings input.
//
// Adding a new provider means implementing functions that return these types.
// Nothing downstream changes.
package provider

import "time"

// Team is the canonical franchise shape.
type Team struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	FullName   string `json:"full_name"`
	ShortCode  string `json:"short_code,omitempty"`
	City       string `json:"city,omitempty"`
	Conference string `json:"conference"`
	Division   string `json:"division"`
}

// Game is one completed game between two teams, from the neutral point of
// view of the scoreboard.
type Game struct {
	ID         int       `json:"id"`
	Season     int       `json:"season"`
	Date       time.Time `json:"date"`
	HomeTeamID int       `json:"home_team_id"`
	AwayTeamID int       `json:"away_team_id"`
	HomeScore  int       `json:"home_score"`
	AwayScore  int       `json:"away_score"`
	Postseason bool      `json:"postseason,omitempty"`
}

// Season is a complete canonical dataset: what the builder needs to rank one
// season. It is also the on-disk format of offline season files.
type Season struct {
	Season int    `json:"season"`
	Teams  []Team `json:"teams"`
	Games  []Game `json:"games"`
}
