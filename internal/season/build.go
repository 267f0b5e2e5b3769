// Package season assembles standings input from canonical provider data and
// turns simulation histories into the JSON-ready view served by the API.
package season

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/albapepper/scoracle-standings/internal/provider"
	"github.com/albapepper/scoracle-standings/internal/standings"
)

var (
	ErrUnknownTeam = errors.New("game references unknown team")
	ErrTiedScore   = errors.New("completed game has equal scores")
	ErrNoGames     = errors.New("season has no completed games")
)

// Source is anything that can supply a season's teams and games.
type Source interface {
	GetTeams(ctx context.Context) ([]provider.Team, error)
	GetGames(ctx context.Context, season int) ([]provider.Game, error)
}

// Fetch pulls a complete canonical season from src.
func Fetch(ctx context.Context, src Source, year int) (*provider.Season, error) {
	teams, err := src.GetTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch teams: %w", err)
	}
	games, err := src.GetGames(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("fetch games: %w", err)
	}
	return &provider.Season{Season: year, Teams: teams, Games: games}, nil
}

// TeamInfo is the presentation data that does not take part in ranking.
type TeamInfo struct {
	FullName string
	Slug     string
	Colours  Colours
}

// Dataset is a season ready to simulate.
type Dataset struct {
	Season int
	Teams  []standings.Team
	Info   map[int]TeamInfo
}

// Build converts a canonical season into per-team game logs. Only franchises
// that played at least one game are included; every game appears once in
// each participant's log, from that participant's point of view.
func Build(s *provider.Season) (*Dataset, error) {
	if len(s.Games) == 0 {
		return nil, fmt.Errorf("season %d: %w", s.Season, ErrNoGames)
	}

	byID := make(map[int]provider.Team, len(s.Teams))
	for _, t := range s.Teams {
		byID[t.ID] = t
	}

	games := make([]provider.Game, len(s.Games))
	copy(games, s.Games)
	provider.SortGames(games)

	playing := make(map[int]bool)
	for _, g := range games {
		for _, id := range []int{g.HomeTeamID, g.AwayTeamID} {
			if _, ok := byID[id]; !ok {
				return nil, fmt.Errorf("game %d: team %d: %w", g.ID, id, ErrUnknownTeam)
			}
			playing[id] = true
		}
		if g.HomeScore == g.AwayScore {
			return nil, fmt.Errorf("game %d: %d-%d: %w", g.ID, g.HomeScore, g.AwayScore, ErrTiedScore)
		}
	}

	ds := &Dataset{Season: s.Season, Info: make(map[int]TeamInfo, len(playing))}
	index := make(map[int]int, len(playing))
	for _, t := range s.Teams {
		if !playing[t.ID] {
			continue
		}
		conf, err := standings.ParseConference(t.Conference)
		if err != nil {
			return nil, fmt.Errorf("team %d (%s): %w", t.ID, t.Name, err)
		}
		name := t.FullName
		if name == "" {
			name = t.Name
		}
		index[t.ID] = len(ds.Teams)
		ds.Teams = append(ds.Teams, standings.Team{
			ID:         t.ID,
			Name:       name,
			Conference: conf,
			Division:   t.Division,
		})
		ds.Info[t.ID] = TeamInfo{FullName: name, Slug: t.ShortCode, Colours: ColoursFor(name)}
	}

	for _, g := range games {
		home := &ds.Teams[index[g.HomeTeamID]]
		away := &ds.Teams[index[g.AwayTeamID]]
		id := strconv.Itoa(g.ID)
		date := standings.Day(g.Date)

		home.Games = append(home.Games, standings.Game{
			ID:            id,
			Number:        len(home.Games) + 1,
			Date:          date,
			OpponentID:    away.ID,
			Home:          true,
			TeamScore:     g.HomeScore,
			OpponentScore: g.AwayScore,
			Outcome:       outcome(g.HomeScore, g.AwayScore),
		})
		away.Games = append(away.Games, standings.Game{
			ID:            id,
			Number:        len(away.Games) + 1,
			Date:          date,
			OpponentID:    home.ID,
			TeamScore:     g.AwayScore,
			OpponentScore: g.HomeScore,
			Outcome:       outcome(g.AwayScore, g.HomeScore),
		})
	}
	return ds, nil
}

func outcome(own, opp int) standings.Outcome {
	if own > opp {
		return standings.Win
	}
	return standings.Loss
}
