package bdl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/albapepper/scoracle-standings/internal/provider"
)

// NBAHandler fetches and normalizes NBA data from BallDontLie.
type NBAHandler struct {
	client *Client
	logger *slog.Logger
}

// NewNBAHandler creates an NBA handler on top of client.
func NewNBAHandler(client *Client, logger *slog.Logger) *NBAHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &NBAHandler{client: client, logger: logger}
}

// --------------------------------------------------------------------------
// Teams
// --------------------------------------------------------------------------

type bdlTeamRaw struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	FullName     string `json:"full_name"`
	Abbreviation string `json:"abbreviation"`
	City         string `json:"city"`
	Conference   string `json:"conference"`
	Division     string `json:"division"`
}

// GetTeams fetches every franchise BDL knows about, including defunct ones
// with no conference.
func (h *NBAHandler) GetTeams(ctx context.Context) ([]provider.Team, error) {
	resp, err := h.client.get(ctx, "/teams", nil)
	if err != nil {
		return nil, fmt.Errorf("fetch NBA teams: %w", err)
	}

	var raw []bdlTeamRaw
	if err := json.Unmarshal(resp.Data, &raw); err != nil {
		return nil, fmt.Errorf("decode NBA teams: %w", err)
	}

	teams := make([]provider.Team, len(raw))
	for i, t := range raw {
		teams[i] = normalizeNBATeam(t)
	}
	return teams, nil
}

func normalizeNBATeam(raw bdlTeamRaw) provider.Team {
	full := raw.FullName
	if full == "" {
		full = strings.TrimSpace(raw.City + " " + raw.Name)
	}
	return provider.Team{
		ID:         raw.ID,
		Name:       raw.Name,
		FullName:   full,
		ShortCode:  raw.Abbreviation,
		City:       raw.City,
		Conference: strings.TrimSpace(raw.Conference),
		Division:   strings.TrimSpace(raw.Division),
	}
}

// --------------------------------------------------------------------------
// Games (cursor-paginated)
// --------------------------------------------------------------------------

type bdlGameRaw struct {
	ID               int        `json:"id"`
	Date             string     `json:"date"`
	Season           int        `json:"season"`
	Status           string     `json:"status"`
	Postseason       bool       `json:"postseason"`
	HomeTeamScore    int        `json:"home_team_score"`
	VisitorTeamScore int        `json:"visitor_team_score"`
	HomeTeam         bdlTeamRaw `json:"home_team"`
	VisitorTeam      bdlTeamRaw `json:"visitor_team"`
}

const statusFinal = "Final"

// GetGames returns the completed regular-season games of season (the year
// the season started), sorted by date then game ID.
func (h *NBAHandler) GetGames(ctx context.Context, season int) ([]provider.Game, error) {
	params := url.Values{
		"seasons[]":  {strconv.Itoa(season)},
		"postseason": {"false"},
	}

	var games []provider.Game
	skipped := 0
	err := h.client.paginate(ctx, "/games", params, func(data json.RawMessage) error {
		var raw []bdlGameRaw
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("decode NBA games: %w", err)
		}
		for _, r := range raw {
			g, ok, err := normalizeNBAGame(r)
			if err != nil {
				return fmt.Errorf("game %d: %w", r.ID, err)
			}
			if !ok {
				skipped++
				continue
			}
			games = append(games, g)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch NBA games for %d: %w", season, err)
	}

	provider.SortGames(games)
	h.logger.Info("NBA games fetched", "season", season, "final", len(games), "skipped", skipped)
	return games, nil
}

// normalizeNBAGame converts a raw game. ok is false for games that are not
// finished regular-season games.
func normalizeNBAGame(raw bdlGameRaw) (provider.Game, bool, error) {
	if raw.Postseason || !strings.EqualFold(raw.Status, statusFinal) {
		return provider.Game{}, false, nil
	}
	date, err := parseGameDate(raw.Date)
	if err != nil {
		return provider.Game{}, false, err
	}
	return provider.Game{
		ID:         raw.ID,
		Season:     raw.Season,
		Date:       date,
		HomeTeamID: raw.HomeTeam.ID,
		AwayTeamID: raw.VisitorTeam.ID,
		HomeScore:  raw.HomeTeamScore,
		AwayScore:  raw.VisitorTeamScore,
	}, true, nil
}

// parseGameDate accepts both the plain date and the older timestamp form BDL
// has returned over time.
func parseGameDate(s string) (time.Time, error) {
	for _, layout := range []string{time.DateOnly, time.RFC3339, "2006-01-02T15:04:05.000Z"} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}
