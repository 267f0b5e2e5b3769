package standings

import (
	"fmt"
	"time"
)

// Run owns the mutable record state of one simulation. Games must be applied
// in non-decreasing date order; separate runs never share state.
type Run struct {
	format PlayoffFormat
	teams  []*RankedTeam
	byID   map[int]*RankedTeam
	next   []int // per team: index of the first game not yet applied
	first  time.Time
	last   time.Time
}

// NewRun validates the input and returns a run with empty records.
func NewRun(teams []Team, format PlayoffFormat) (*Run, error) {
	if len(teams) == 0 {
		return nil, ErrEmptyTeamSet
	}

	r := &Run{
		format: format,
		teams:  make([]*RankedTeam, len(teams)),
		byID:   make(map[int]*RankedTeam, len(teams)),
		next:   make([]int, len(teams)),
	}
	for i := range teams {
		t := &teams[i]
		if t.Conference != East && t.Conference != West {
			return nil, fmt.Errorf("team %d: %q: %w", t.ID, t.Conference, ErrUnknownConference)
		}
		if _, dup := r.byID[t.ID]; dup {
			return nil, fmt.Errorf("team %d: %w", t.ID, ErrDuplicateTeam)
		}
		r.teams[i] = newRankedTeam(t)
		r.byID[t.ID] = r.teams[i]
	}

	played := false
	for _, rt := range r.teams {
		games := rt.Team.Games
		for i, g := range games {
			if _, ok := r.byID[g.OpponentID]; !ok {
				return nil, fmt.Errorf("team %d game %s: opponent %d: %w", rt.Team.ID, g.ID, g.OpponentID, ErrMissingOpponent)
			}
			if i > 0 && g.Date.Before(games[i-1].Date) {
				return nil, fmt.Errorf("team %d game %s: %w", rt.Team.ID, g.ID, ErrUnsortedGames)
			}
		}
		if len(games) == 0 {
			continue
		}
		first, last := Day(games[0].Date), Day(games[len(games)-1].Date)
		if !played || first.Before(r.first) {
			r.first = first
		}
		if !played || last.After(r.last) {
			r.last = last
		}
		played = true
	}
	if !played {
		return nil, ErrEmptyGameHistory
	}
	return r, nil
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// First and Last bound the season: the days of the earliest and latest game.
func (r *Run) First() time.Time { return r.first }
func (r *Run) Last() time.Time  { return r.last }

// Team returns the tracked team with the given ID, or nil.
func (r *Run) Team(id int) *RankedTeam {
	return r.byID[id]
}

// Teams returns the tracked teams in input order.
func (r *Run) Teams() []*RankedTeam {
	return r.teams
}

// Advance applies every not yet applied game dated on or before day and
// returns how many team-games were applied.
func (r *Run) Advance(day time.Time) int {
	day = Day(day)
	applied := 0
	for i, rt := range r.teams {
		games := rt.Team.Games
		for r.next[i] < len(games) {
			g := games[r.next[i]]
			if Day(g.Date).After(day) {
				break
			}
			rt.apply(g, r.byID[g.OpponentID].Team)
			r.next[i]++
			applied++
		}
	}
	return applied
}

// Rank orders the teams by their current records.
func (r *Run) Rank() []*RankedTeam {
	return RankTeams(r.teams, r.format)
}

// Placement is a team's league-wide rank and conference seed, both 1-based.
type Placement struct {
	LeagueRank     int `json:"league_rank"`
	ConferenceSeed int `json:"conference_seed"`
}

// Placements derives rank and seed for every team from one global order.
// Seeds are positions among same-conference teams of that same order.
func Placements(ranked []*RankedTeam) map[int]Placement {
	out := make(map[int]Placement, len(ranked))
	seeds := make(map[Conference]int, 2)
	for i, rt := range ranked {
		seeds[rt.Team.Conference]++
		out[rt.Team.ID] = Placement{LeagueRank: i + 1, ConferenceSeed: seeds[rt.Team.Conference]}
	}
	return out
}

// TeamHistory is one team's placement on every day of the season.
type TeamHistory struct {
	TeamID               int            `json:"team_id"`
	LeagueRank           int            `json:"league_rank"`
	ConferenceSeed       int            `json:"conference_seed"`
	Record               Record         `json:"record"`
	LeagueRankByDate     map[string]int `json:"league_rank_by_date"`
	ConferenceSeedByDate map[string]int `json:"conference_seed_by_date"`
}

// History is the output of Simulate.
type History struct {
	Format PlayoffFormat `json:"-"`
	// Dates lists the date keys in chronological order.
	Dates []string `json:"dates"`
	// Final lists team IDs in the order of the last day's ranking.
	Final []int `json:"final"`
	// Teams is in input order.
	Teams []TeamHistory `json:"teams"`

	index map[int]int
}

// Team returns the history of one team.
func (h *History) Team(id int) (*TeamHistory, bool) {
	i, ok := h.index[id]
	if !ok {
		return nil, false
	}
	return &h.Teams[i], true
}

// Simulate replays the season one calendar day at a time, from the first to
// the last game day inclusive, ranking all teams after each day's games.
func Simulate(teams []Team, format PlayoffFormat) (*History, error) {
	run, err := NewRun(teams, format)
	if err != nil {
		return nil, err
	}

	days := int(run.Last().Sub(run.First()).Hours()/24) + 1
	h := &History{
		Format: format,
		Dates:  make([]string, 0, days),
		Teams:  make([]TeamHistory, len(teams)),
		index:  make(map[int]int, len(teams)),
	}
	for i, t := range teams {
		h.Teams[i] = TeamHistory{
			TeamID:               t.ID,
			LeagueRankByDate:     make(map[string]int, days),
			ConferenceSeedByDate: make(map[string]int, days),
		}
		h.index[t.ID] = i
	}

	var ranked []*RankedTeam
	for day := run.First(); !day.After(run.Last()); day = day.AddDate(0, 0, 1) {
		run.Advance(day)
		ranked = run.Rank()

		key := day.Format(DateFormat)
		h.Dates = append(h.Dates, key)
		for id, p := range Placements(ranked) {
			th := &h.Teams[h.index[id]]
			th.LeagueRankByDate[key] = p.LeagueRank
			th.ConferenceSeedByDate[key] = p.ConferenceSeed
			th.LeagueRank = p.LeagueRank
			th.ConferenceSeed = p.ConferenceSeed
		}
	}

	h.Final = make([]int, len(ranked))
	for i, rt := range ranked {
		h.Final[i] = rt.Team.ID
		h.Teams[h.index[rt.Team.ID]].Record = rt.Overall()
	}
	return h, nil
}
