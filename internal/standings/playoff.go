package standings

import (
	"fmt"
	"strings"
)

// PlayoffFormat selects how many teams per conference qualify directly.
type PlayoffFormat int

const (
	// Legacy: 8 playoff teams per conference, no play-in tournament.
	Legacy PlayoffFormat = iota
	// Modern: 6 playoff teams per conference plus 4 play-in teams.
	Modern
)

const (
	legacyPlayoffTeams = 8
	modernPlayoffTeams = 6
	modernPlayInTeams  = 4

	// FirstPlayInSeason is the first season (by starting year) played with
	// the play-in tournament.
	FirstPlayInSeason = 2020
)

// FormatForSeason returns the format in force for a season starting in year.
func FormatForSeason(year int) PlayoffFormat {
	if year >= FirstPlayInSeason {
		return Modern
	}
	return Legacy
}

// ParsePlayoffFormat parses "modern" or "legacy".
func ParsePlayoffFormat(s string) (PlayoffFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "modern", "play-in", "playin":
		return Modern, nil
	case "legacy":
		return Legacy, nil
	}
	return 0, fmt.Errorf("unknown playoff format %q", s)
}

func (f PlayoffFormat) String() string {
	if f == Modern {
		return "modern"
	}
	return "legacy"
}

// PlayoffSlots is the number of direct playoff places per conference.
func (f PlayoffFormat) PlayoffSlots() int {
	if f == Modern {
		return modernPlayoffTeams
	}
	return legacyPlayoffTeams
}

// PlayInSlots is the number of play-in places per conference after the
// direct playoff places.
func (f PlayoffFormat) PlayInSlots() int {
	if f == Modern {
		return modernPlayInTeams
	}
	return 0
}

// eligibleTeams walks the grouped global order and collects the teams of conf
// that hold, or are tied for, a playoff place. A tie group straddling the
// cut-off is included whole.
func eligibleTeams(grouped []Entry[*RankedTeam], conf Conference, format PlayoffFormat) []*RankedTeam {
	slots := format.PlayoffSlots()
	var eligible []*RankedTeam
	for _, e := range grouped {
		if len(eligible) >= slots {
			break
		}
		for _, t := range e.Items() {
			if t.Team.Conference == conf {
				eligible = append(eligible, t)
			}
		}
	}
	return eligible
}

// pctVsTeams is team's win percentage over the cumulative record against
// opponents, skipping the team itself. No games gives .500.
func pctVsTeams(team *RankedTeam, opponents []*RankedTeam) float64 {
	var total Record
	for _, o := range opponents {
		if o == team {
			continue
		}
		total = total.Add(team.RecordVs(o.Team.ID))
	}
	return total.Pct()
}

// playoffPcts holds, per tied team, the win percentage against
// playoff-eligible teams of its own and of the other conference.
type playoffPcts struct {
	own   map[*RankedTeam]float64
	other map[*RankedTeam]float64
}

func computePlayoffPcts(tied []*RankedTeam, grouped []Entry[*RankedTeam], format PlayoffFormat) playoffPcts {
	byConf := map[Conference][]*RankedTeam{
		East: eligibleTeams(grouped, East, format),
		West: eligibleTeams(grouped, West, format),
	}
	p := playoffPcts{
		own:   make(map[*RankedTeam]float64, len(tied)),
		other: make(map[*RankedTeam]float64, len(tied)),
	}
	for _, t := range tied {
		p.own[t] = pctVsTeams(t, byConf[t.Team.Conference])
		p.other[t] = pctVsTeams(t, byConf[t.Team.Conference.Other()])
	}
	return p
}
