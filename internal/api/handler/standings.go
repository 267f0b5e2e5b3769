package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/scoracle-standings/internal/api/respond"
	"github.com/albapepper/scoracle-standings/internal/cache"
	"github.com/albapepper/scoracle-standings/internal/config"
	"github.com/albapepper/scoracle-standings/internal/season"
	"github.com/albapepper/scoracle-standings/internal/seed"
	"github.com/albapepper/scoracle-standings/internal/standings"
)

// parseSeasonRequest validates the {season} path parameter and the format
// query parameter, writing the error response itself when they are invalid.
func (h *Handler) parseSeasonRequest(w http.ResponseWriter, r *http.Request) (int, standings.PlayoffFormat, bool) {
	year, err := strconv.Atoi(chi.URLParam(r, "season"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_SEASON", "season must be a year, e.g. 2023")
		return 0, 0, false
	}
	if !h.cfg.ValidSeason(year) {
		respond.WriteError(w, http.StatusNotFound, "SEASON_NOT_FOUND",
			fmt.Sprintf("season %d is outside %d-%d", year, config.Seasons.FirstSeason, h.cfg.CurrentSeason))
		return 0, 0, false
	}

	format := h.cfg.FormatFor(year)
	if q := r.URL.Query().Get("format"); q != "" {
		format, err = standings.ParsePlayoffFormat(q)
		if err != nil {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_FORMAT", "format must be modern or legacy")
			return 0, 0, false
		}
	}
	return year, format, true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, year int, err error) {
	if errors.Is(err, seed.ErrComputeFailed) {
		respond.WriteErrorDetail(w, http.StatusBadGateway, "UPSTREAM_FAILED",
			fmt.Sprintf("Standings for %d could not be computed", year), err.Error())
		return
	}
	respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Unexpected error")
}

// GetStandings returns a season's day-by-day standings.
// @Summary Get season standings
// @Description Returns every team's league rank and conference seed for every day of the season, with final records, last-10, streaks and game logs. Served from cache, then the snapshot store, computed on a miss.
// @Tags standings
// @Produce json
// @Param season path int true "Season start year" example(2023)
// @Param format query string false "Playoff format" Enums(modern, legacy)
// @Success 200 {object} season.Result
// @Success 304 "Not modified"
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /api/v1/standings/{season} [get]
func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	year, format, ok := h.parseSeasonRequest(w, r)
	if !ok {
		return
	}

	rendered, err := h.standings.Standings(r.Context(), year, format)
	if err != nil {
		h.writeServiceError(w, year, err)
		return
	}

	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), rendered.ETag) {
		respond.WriteNotModified(w, rendered.ETag)
		return
	}
	respond.WriteJSON(w, rendered.Data, rendered.ETag, rendered.TTL, rendered.Origin)
}

// GetTeamStandings returns one team's row from a season's standings.
// @Summary Get one team's season standings
// @Description Returns a single team's standings history. The team is matched by numeric ID or by slug (abbreviation), case-insensitively.
// @Tags standings
// @Produce json
// @Param season path int true "Season start year" example(2023)
// @Param team path string true "Team ID or slug" example(BOS)
// @Param format query string false "Playoff format" Enums(modern, legacy)
// @Success 200 {object} season.TeamResult
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /api/v1/standings/{season}/teams/{team} [get]
func (h *Handler) GetTeamStandings(w http.ResponseWriter, r *http.Request) {
	year, format, ok := h.parseSeasonRequest(w, r)
	if !ok {
		return
	}

	rendered, err := h.standings.Standings(r.Context(), year, format)
	if err != nil {
		h.writeServiceError(w, year, err)
		return
	}

	var res season.Result
	if err := json.Unmarshal(rendered.Data, &res); err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Stored standings are unreadable")
		return
	}

	want := chi.URLParam(r, "team")
	id, idErr := strconv.Atoi(want)
	for _, t := range res.Teams {
		if (idErr == nil && t.ID == id) || strings.EqualFold(t.Slug, want) {
			respond.WriteJSONObject(w, http.StatusOK, t)
			return
		}
	}
	respond.WriteError(w, http.StatusNotFound, "TEAM_NOT_FOUND", fmt.Sprintf("No team %q in season %d", want, year))
}

// SeasonInfo describes one season the API can serve.
type SeasonInfo struct {
	Season        int    `json:"season"`
	Label         string `json:"label"`
	DefaultFormat string `json:"default_format"`
	PlayoffSlots  int    `json:"playoff_slots"`
	PlayInSlots   int    `json:"play_in_slots"`
}

// GetSeasons lists the seasons the API serves, newest first.
// @Summary List seasons
// @Description Returns every season in the served range with its default playoff format.
// @Tags standings
// @Produce json
// @Success 200 {array} SeasonInfo
// @Router /api/v1/seasons [get]
func (h *Handler) GetSeasons(w http.ResponseWriter, r *http.Request) {
	out := make([]SeasonInfo, 0, h.cfg.CurrentSeason-config.Seasons.FirstSeason+1)
	for year := h.cfg.CurrentSeason; year >= config.Seasons.FirstSeason; year-- {
		f := h.cfg.FormatFor(year)
		out = append(out, SeasonInfo{
			Season:        year,
			Label:         fmt.Sprintf("%d-%02d", year, (year+1)%100),
			DefaultFormat: f.String(),
			PlayoffSlots:  f.PlayoffSlots(),
			PlayInSlots:   f.PlayInSlots(),
		})
	}
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(cache.TTLMeta.Seconds())))
	respond.WriteJSONObject(w, http.StatusOK, out)
}
