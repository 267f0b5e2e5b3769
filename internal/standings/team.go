// Package standings computes day-by-day league ranks and conference seeds
// from completed games, applying the official multi-criteria tie-breaking
// procedure. Everything in this package is a pure function of its input: no
// I/O, no logging, no shared state between runs.
package standings

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateFormat is the layout of the date keys in rank/seed histories.
const DateFormat = "2006-01-02T15:04:05"

var (
	ErrEmptyTeamSet      = errors.New("no teams supplied")
	ErrEmptyGameHistory  = errors.New("no games played by any team")
	ErrMissingOpponent   = errors.New("opponent not in team set")
	ErrDuplicateTeam     = errors.New("duplicate team id")
	ErrUnsortedGames     = errors.New("games not in ascending date order")
	ErrUnknownConference = errors.New("unknown conference")
)

// Conference is one of the two league conferences.
type Conference string

const (
	East Conference = "east"
	West Conference = "west"
)

// ParseConference accepts the spellings used by upstream providers
// ("East", "eastern", " west ").
func ParseConference(s string) (Conference, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "east", "eastern":
		return East, nil
	case "west", "western":
		return West, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownConference)
}

// Other returns the opposite conference.
func (c Conference) Other() Conference {
	if c == East {
		return West
	}
	return East
}

// Outcome of a game from the owning team's point of view.
type Outcome string

const (
	Win  Outcome = "W"
	Loss Outcome = "L"
)

// Game is one completed game in a team's season. The opponent is referenced
// by team ID and resolved through the run's registry.
type Game struct {
	ID            string    `json:"id"`
	Number        int       `json:"game_num"`
	Date          time.Time `json:"date"`
	OpponentID    int       `json:"opponent_id"`
	Home          bool      `json:"home"`
	TeamScore     int       `json:"team_score"`
	OpponentScore int       `json:"opponent_score"`
	Outcome       Outcome   `json:"outcome"`
}

// Team is a franchise and its games, sorted ascending by date.
type Team struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	Conference Conference `json:"conference"`
	Division   string     `json:"division"`
	Games      []Game     `json:"games"`
}

// RankedTeam augments a Team with the scoped records that drive its rank.
// Records only change through apply, called by a Run in date order.
type RankedTeam struct {
	Team *Team

	overall    Record
	byOpponent map[int]Record
	conference Record
	division   Record
	pointDiff  int
}

func newRankedTeam(t *Team) *RankedTeam {
	return &RankedTeam{Team: t, byOpponent: make(map[int]Record)}
}

// apply folds one game into the records. opp is the opponent's Team.
func (rt *RankedTeam) apply(g Game, opp *Team) {
	delta := -1
	if g.Outcome == Win {
		delta = 1
	}
	rt.overall.IncrementBy(delta)

	vs := rt.byOpponent[g.OpponentID]
	vs.IncrementBy(delta)
	rt.byOpponent[g.OpponentID] = vs

	if opp.Conference == rt.Team.Conference {
		rt.conference.IncrementBy(delta)
	}
	if opp.Division == rt.Team.Division {
		rt.division.IncrementBy(delta)
	}
	rt.pointDiff += g.TeamScore - g.OpponentScore
}

func (rt *RankedTeam) Overall() Record    { return rt.overall }
func (rt *RankedTeam) Conference() Record { return rt.conference }
func (rt *RankedTeam) Division() Record   { return rt.division }

// RecordVs returns the team's record against one opponent.
func (rt *RankedTeam) RecordVs(opponentID int) Record {
	return rt.byOpponent[opponentID]
}

func (rt *RankedTeam) OverallPct() float64    { return rt.overall.Pct() }
func (rt *RankedTeam) ConferencePct() float64 { return rt.conference.Pct() }
func (rt *RankedTeam) DivisionPct() float64   { return rt.division.Pct() }

// PointDifferential is total points scored less total points allowed.
func (rt *RankedTeam) PointDifferential() int {
	return rt.pointDiff
}

func (rt *RankedTeam) String() string {
	return fmt.Sprintf("%s: %d-%d (%.3f)", rt.Team.Name, rt.overall.Wins, rt.overall.Losses, rt.OverallPct())
}
