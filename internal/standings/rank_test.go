package standings

import "testing"

func TestRankTeamsDistinctPctSkipsTieBreaks(t *testing.T) {
	teams := []*RankedTeam{
		ranked(1, East, "Atlantic"),
		ranked(2, West, "Pacific"),
		ranked(3, East, "Central"),
	}
	teams[0].overall = Record{Wins: 2, Losses: 5}
	teams[1].overall = Record{Wins: 6, Losses: 1}
	teams[2].overall = Record{Wins: 4, Losses: 3}

	noLeaders := func([]*RankedTeam, []Entry[*RankedTeam], PlayoffFormat) Leaders {
		t.Fatal("division leaders computed without any tie")
		return nil
	}
	assertOrder(t, rankTeams(teams, Modern, noLeaders), 2, 3, 1)
}

func TestRankTeamsResolvesLeadersOncePerCall(t *testing.T) {
	teams := []*RankedTeam{
		ranked(1, East, "Atlantic"),
		ranked(2, East, "Atlantic"),
		ranked(3, West, "Pacific"),
	}
	setVs(teams[0], teams[1], 0, 1)

	calls := 0
	count := func(ts []*RankedTeam, g []Entry[*RankedTeam], f PlayoffFormat) Leaders {
		calls++
		return DivisionLeaders(ts, g, f)
	}
	assertOrder(t, rankTeams(teams, Modern, count), 2, 3, 1)
	if calls != 1 {
		t.Errorf("leader resolution ran %d times, want 1", calls)
	}
}

func TestDivisionLeaders(t *testing.T) {
	a := ranked(1, East, "Atlantic")
	b := ranked(2, East, "Atlantic")
	c := ranked(3, East, "Atlantic")
	d := ranked(4, West, "Pacific")
	a.overall = Record{Wins: 3, Losses: 2}
	b.overall = Record{Wins: 3, Losses: 2}
	c.overall = Record{Wins: 1, Losses: 4}
	d.overall = Record{Wins: 0, Losses: 5}
	setVs(a, b, 0, 2)

	teams := []*RankedTeam{a, b, c, d}
	grouped := GroupBy(teams, (*RankedTeam).OverallPct)
	leaders := DivisionLeaders(teams, grouped, Modern)

	if leaders["Atlantic"] != b {
		t.Errorf("Atlantic leader = %v, want %v", leaders["Atlantic"], b)
	}
	if leaders["Pacific"] != d {
		t.Errorf("Pacific leader = %v, want %v", leaders["Pacific"], d)
	}
}

func TestRankTeamsStrictTotalOrder(t *testing.T) {
	var teams []*RankedTeam
	for i := 0; i < 30; i++ {
		conf, div := East, "Atlantic"
		if i%2 == 1 {
			conf, div = West, "Pacific"
		}
		rt := ranked(i+1, conf, div)
		rt.overall = Record{Wins: i % 3, Losses: 2}
		teams = append(teams, rt)
	}

	got := RankTeams(teams, Modern)
	if len(got) != len(teams) {
		t.Fatalf("ranked %d teams, want %d", len(got), len(teams))
	}
	seen := make(map[int]bool, len(got))
	for i, rt := range got {
		if seen[rt.Team.ID] {
			t.Fatalf("team %d ranked twice", rt.Team.ID)
		}
		seen[rt.Team.ID] = true
		if i > 0 && got[i-1].OverallPct() < rt.OverallPct() {
			t.Errorf("position %d: %.3f ranked above %.3f", i, got[i-1].OverallPct(), rt.OverallPct())
		}
	}
}
