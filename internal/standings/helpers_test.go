package standings

import (
	"fmt"
	"testing"
	"time"
)

var seasonStart = time.Date(2022, time.October, 18, 0, 0, 0, 0, time.UTC)

type teamSpec struct {
	id   int
	conf Conference
	div  string
}

// result is one completed game, dayOffset days after seasonStart.
type result struct {
	day        int
	home, away int
	homeScore  int
	awayScore  int
}

// buildSeason creates teams with paired game logs for every result.
func buildSeason(specs []teamSpec, results []result) []Team {
	teams := make([]Team, len(specs))
	idx := make(map[int]int, len(specs))
	for i, s := range specs {
		teams[i] = Team{ID: s.id, Name: fmt.Sprintf("Team %d", s.id), Conference: s.conf, Division: s.div}
		idx[s.id] = i
	}
	for n, r := range results {
		date := seasonStart.AddDate(0, 0, r.day)
		id := fmt.Sprintf("g%03d", n)
		home, away := &teams[idx[r.home]], &teams[idx[r.away]]
		home.Games = append(home.Games, Game{
			ID: id, Number: len(home.Games) + 1, Date: date, OpponentID: r.away, Home: true,
			TeamScore: r.homeScore, OpponentScore: r.awayScore, Outcome: outcomeOf(r.homeScore, r.awayScore),
		})
		away.Games = append(away.Games, Game{
			ID: id, Number: len(away.Games) + 1, Date: date, OpponentID: r.home,
			TeamScore: r.awayScore, OpponentScore: r.homeScore, Outcome: outcomeOf(r.awayScore, r.homeScore),
		})
	}
	return teams
}

func outcomeOf(team, opp int) Outcome {
	if team > opp {
		return Win
	}
	return Loss
}

// ranked returns a bare tracked team for tests that set records directly.
func ranked(id int, conf Conference, div string) *RankedTeam {
	return newRankedTeam(&Team{ID: id, Name: fmt.Sprintf("Team %d", id), Conference: conf, Division: div})
}

// setVs records a head-to-head result for both sides.
func setVs(a, b *RankedTeam, aWins, bWins int) {
	a.byOpponent[b.Team.ID] = Record{Wins: aWins, Losses: bWins}
	b.byOpponent[a.Team.ID] = Record{Wins: bWins, Losses: aWins}
}

func ids(teams []*RankedTeam) []int {
	out := make([]int, len(teams))
	for i, t := range teams {
		out[i] = t.Team.ID
	}
	return out
}

func assertOrder(t *testing.T, got []*RankedTeam, want ...int) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("order = %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("order = %v, want %v", g, want)
		}
	}
}
