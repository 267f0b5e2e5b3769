package season

import (
	"fmt"
	"time"

	"github.com/albapepper/scoracle-standings/internal/standings"
)

// PlayoffStatus of a team given its current conference seed.
const (
	StatusPlayoff = "playoff"
	StatusPlayIn  = "play_in"
	StatusOut     = "out"
)

// Result is the complete standings view of one season.
type Result struct {
	Season     int          `json:"season"`
	Format     string       `json:"format"`
	Dates      []string     `json:"dates"`
	ComputedAt time.Time    `json:"computed_at"`
	Teams      []TeamResult `json:"teams"`
}

// TeamResult is one team's row, ordered in Result by current league rank.
type TeamResult struct {
	ID                   int            `json:"id"`
	Name                 string         `json:"name"`
	Slug                 string         `json:"slug"`
	PrimaryColour        string         `json:"primary_colour"`
	SecondaryColour      string         `json:"secondary_colour"`
	Conference           string         `json:"conference"`
	Division             string         `json:"division"`
	LeagueRank           int            `json:"league_rank"`
	ConferenceSeed       int            `json:"conference_seed"`
	PlayoffStatus        string         `json:"playoff_status"`
	Wins                 int            `json:"wins"`
	Losses               int            `json:"losses"`
	Last10               string         `json:"last_10"`
	CurrentStreak        int            `json:"current_streak"`
	LeagueRankByDate     map[string]int `json:"league_rank_by_date"`
	ConferenceSeedByDate map[string]int `json:"conference_seed_by_date"`
	Games                []GameResult   `json:"games"`
}

// GameResult is a game from the team's side, with the running record after
// it.
type GameResult struct {
	ID               string `json:"id"`
	Number           int    `json:"game_num"`
	Date             string `json:"date"`
	Matchup          string `json:"matchup"`
	TeamScore        int    `json:"team_score"`
	OpponentScore    int    `json:"opponent_score"`
	Outcome          string `json:"outcome"`
	CumulativeWins   int    `json:"cumulative_wins"`
	CumulativeLosses int    `json:"cumulative_losses"`
}

// Compute simulates ds under format and assembles the result view.
func Compute(ds *Dataset, format standings.PlayoffFormat) (*Result, error) {
	h, err := standings.Simulate(ds.Teams, format)
	if err != nil {
		return nil, fmt.Errorf("simulate season %d: %w", ds.Season, err)
	}

	byID := make(map[int]*standings.Team, len(ds.Teams))
	for i := range ds.Teams {
		byID[ds.Teams[i].ID] = &ds.Teams[i]
	}

	res := &Result{
		Season:     ds.Season,
		Format:     format.String(),
		Dates:      h.Dates,
		ComputedAt: time.Now().UTC(),
		Teams:      make([]TeamResult, 0, len(h.Final)),
	}
	for _, id := range h.Final {
		th, _ := h.Team(id)
		res.Teams = append(res.Teams, teamResult(byID[id], th, ds.Info, byID, format))
	}
	return res, nil
}

func teamResult(t *standings.Team, th *standings.TeamHistory, info map[int]TeamInfo, byID map[int]*standings.Team, format standings.PlayoffFormat) TeamResult {
	ti := info[t.ID]
	tr := TeamResult{
		ID:                   t.ID,
		Name:                 t.Name,
		Slug:                 ti.Slug,
		PrimaryColour:        ti.Colours.Primary,
		SecondaryColour:      ti.Colours.Secondary,
		Conference:           string(t.Conference),
		Division:             t.Division,
		LeagueRank:           th.LeagueRank,
		ConferenceSeed:       th.ConferenceSeed,
		PlayoffStatus:        playoffStatus(th.ConferenceSeed, format),
		Wins:                 th.Record.Wins,
		Losses:               th.Record.Losses,
		Last10:               lastN(t.Games, 10),
		CurrentStreak:        streak(t.Games),
		LeagueRankByDate:     th.LeagueRankByDate,
		ConferenceSeedByDate: th.ConferenceSeedByDate,
		Games:                make([]GameResult, len(t.Games)),
	}
	if tr.Slug == "" {
		tr.Slug = fmt.Sprintf("T%d", t.ID)
	}

	var wins, losses int
	for i, g := range t.Games {
		if g.Outcome == standings.Win {
			wins++
		} else {
			losses++
		}
		tr.Games[i] = GameResult{
			ID:               g.ID,
			Number:           g.Number,
			Date:             g.Date.Format(standings.DateFormat),
			Matchup:          matchup(g, info[g.OpponentID], byID[g.OpponentID]),
			TeamScore:        g.TeamScore,
			OpponentScore:    g.OpponentScore,
			Outcome:          string(g.Outcome),
			CumulativeWins:   wins,
			CumulativeLosses: losses,
		}
	}
	return tr
}

func playoffStatus(seed int, format standings.PlayoffFormat) string {
	switch {
	case seed <= format.PlayoffSlots():
		return StatusPlayoff
	case seed <= format.PlayoffSlots()+format.PlayInSlots():
		return StatusPlayIn
	}
	return StatusOut
}

func matchup(g standings.Game, opp TeamInfo, oppTeam *standings.Team) string {
	name := opp.Slug
	if name == "" && oppTeam != nil {
		name = oppTeam.Name
	}
	if g.Home {
		return "vs. " + name
	}
	return "@ " + name
}

// lastN is the W-L record over the final n games.
func lastN(games []standings.Game, n int) string {
	if len(games) > n {
		games = games[len(games)-n:]
	}
	var w, l int
	for _, g := range games {
		if g.Outcome == standings.Win {
			w++
		} else {
			l++
		}
	}
	return fmt.Sprintf("%d-%d", w, l)
}

// streak is positive for a run of wins, negative for losses, 0 before the
// first game.
func streak(games []standings.Game) int {
	if len(games) == 0 {
		return 0
	}
	last := games[len(games)-1].Outcome
	n := 0
	for i := len(games) - 1; i >= 0 && games[i].Outcome == last; i-- {
		n++
	}
	if last == standings.Loss {
		return -n
	}
	return n
}
