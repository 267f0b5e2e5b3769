package standings

import "testing"

func TestBreakTwoWayTie(t *testing.T) {
	t.Run("head-to-head decides", func(t *testing.T) {
		a := ranked(1, East, "Atlantic")
		b := ranked(2, East, "Central")
		a.overall = Record{Wins: 5, Losses: 3}
		b.overall = Record{Wins: 5, Losses: 3}
		setVs(a, b, 1, 0)

		grouped := []Entry[*RankedTeam]{Group(Single(a), Single(b))}
		assertOrder(t, BreakTwoWayTie(a, b, grouped, Modern, Leaders{}), 1, 2)
		assertOrder(t, BreakTwoWayTie(b, a, grouped, Modern, Leaders{}), 1, 2)
	})

	t.Run("division leader after even head-to-head", func(t *testing.T) {
		a := ranked(1, East, "Central")
		b := ranked(2, East, "Atlantic")
		setVs(a, b, 1, 1)
		leaders := Leaders{"Atlantic": b}

		grouped := []Entry[*RankedTeam]{Group(Single(a), Single(b))}
		assertOrder(t, BreakTwoWayTie(a, b, grouped, Modern, leaders), 2, 1)
	})

	t.Run("division record only within a division", func(t *testing.T) {
		a := ranked(1, West, "Pacific")
		b := ranked(2, West, "Pacific")
		setVs(a, b, 2, 2)
		a.division = Record{Wins: 2, Losses: 2}
		b.division = Record{Wins: 3, Losses: 1}
		// Conference record points the other way; division comes first.
		a.conference = Record{Wins: 6, Losses: 2}
		b.conference = Record{Wins: 4, Losses: 4}

		grouped := []Entry[*RankedTeam]{Group(Single(a), Single(b))}
		assertOrder(t, BreakTwoWayTie(a, b, grouped, Modern, nil), 2, 1)

		b.Team.Division = "Northwest"
		assertOrder(t, BreakTwoWayTie(a, b, grouped, Modern, nil), 1, 2)
	})

	t.Run("conference record across divisions", func(t *testing.T) {
		a := ranked(1, East, "Atlantic")
		b := ranked(2, East, "Central")
		a.conference = Record{Wins: 3, Losses: 5}
		b.conference = Record{Wins: 5, Losses: 3}

		grouped := []Entry[*RankedTeam]{Group(Single(a), Single(b))}
		assertOrder(t, BreakTwoWayTie(a, b, grouped, Modern, nil), 2, 1)
	})

	t.Run("record against other-conference playoff teams", func(t *testing.T) {
		west := ranked(10, West, "Pacific")
		west.overall = Record{Wins: 9, Losses: 1}
		a := ranked(1, East, "Atlantic")
		b := ranked(2, East, "Central")
		setVs(a, west, 0, 1)
		setVs(b, west, 1, 0)

		grouped := []Entry[*RankedTeam]{Single(west), Group(Single(a), Single(b))}
		assertOrder(t, BreakTwoWayTie(a, b, grouped, Modern, nil), 2, 1)
	})

	t.Run("point differential last", func(t *testing.T) {
		a := ranked(1, East, "Atlantic")
		b := ranked(2, West, "Pacific")
		a.pointDiff = -4
		b.pointDiff = 11

		grouped := []Entry[*RankedTeam]{Group(Single(a), Single(b))}
		assertOrder(t, BreakTwoWayTie(a, b, grouped, Legacy, nil), 2, 1)
		assertOrder(t, BreakTwoWayTie(b, a, grouped, Legacy, nil), 2, 1)
	})
}

func TestBreakTiesPlayoffRecord(t *testing.T) {
	// Leader sits alone at the top; a and b are tied below it and split
	// only by how they did against it.
	top := ranked(10, East, "Atlantic")
	a := ranked(1, East, "Central")
	b := ranked(2, East, "Southeast")
	top.overall = Record{Wins: 9, Losses: 1}
	setVs(a, top, 0, 2)
	setVs(b, top, 1, 1)

	grouped := []Entry[*RankedTeam]{Single(top), Group(Single(a), Single(b))}
	assertOrder(t, BreakTies([]*RankedTeam{a, b}, grouped, Modern, nil), 2, 1)
}

func TestBreakTiesMultiWay(t *testing.T) {
	t.Run("leader first then head-to-head in the remainder", func(t *testing.T) {
		a := ranked(1, East, "Atlantic")
		b := ranked(2, East, "Central")
		c := ranked(3, East, "Central")
		setVs(a, b, 0, 2)
		setVs(a, c, 1, 1)
		setVs(b, c, 2, 0)
		leaders := Leaders{"Atlantic": a, "Central": ranked(4, East, "Central")}

		grouped := []Entry[*RankedTeam]{Group(Single(c), Single(b), Single(a))}
		assertOrder(t, BreakTies([]*RankedTeam{c, b, a}, grouped, Modern, leaders), 1, 2, 3)
	})

	t.Run("record within the tied group", func(t *testing.T) {
		a := ranked(1, West, "Pacific")
		b := ranked(2, West, "Southwest")
		c := ranked(3, West, "Northwest")
		setVs(a, b, 2, 0)
		setVs(a, c, 1, 1)
		setVs(b, c, 1, 1)

		grouped := []Entry[*RankedTeam]{Group(Single(b), Single(c), Single(a))}
		assertOrder(t, BreakTies([]*RankedTeam{b, c, a}, grouped, Modern, nil), 1, 3, 2)
	})

	t.Run("division record when all share a division", func(t *testing.T) {
		a := ranked(1, East, "Atlantic")
		b := ranked(2, East, "Atlantic")
		c := ranked(3, East, "Atlantic")
		a.division = Record{Wins: 2, Losses: 2}
		b.division = Record{Wins: 3, Losses: 1}
		c.division = Record{Wins: 4, Losses: 0}
		// Conference record points the other way; division comes first.
		a.conference = Record{Wins: 8, Losses: 0}

		grouped := []Entry[*RankedTeam]{Group(Single(a), Single(b), Single(c))}
		assertOrder(t, BreakTies([]*RankedTeam{a, b, c}, grouped, Modern, nil), 3, 2, 1)

		// Split divisions: division record is skipped, so b and c stay in
		// input order even though c has the better division record.
		c.Team.Division = "Central"
		assertOrder(t, BreakTies([]*RankedTeam{a, b, c}, grouped, Modern, nil), 1, 2, 3)
	})

	t.Run("conference record", func(t *testing.T) {
		a := ranked(1, West, "Pacific")
		b := ranked(2, West, "Southwest")
		c := ranked(3, West, "Northwest")
		a.conference = Record{Wins: 4, Losses: 4}
		b.conference = Record{Wins: 6, Losses: 2}
		c.conference = Record{Wins: 5, Losses: 3}

		grouped := []Entry[*RankedTeam]{Group(Single(a), Single(b), Single(c))}
		assertOrder(t, BreakTies([]*RankedTeam{a, b, c}, grouped, Modern, nil), 2, 3, 1)
	})

	t.Run("record against own-conference playoff teams", func(t *testing.T) {
		top := ranked(10, East, "Southeast")
		top.overall = Record{Wins: 9, Losses: 1}
		a := ranked(1, East, "Atlantic")
		b := ranked(2, East, "Central")
		c := ranked(3, East, "Atlantic")
		setVs(a, top, 0, 2)
		setVs(b, top, 2, 0)
		setVs(c, top, 1, 1)

		grouped := []Entry[*RankedTeam]{Single(top), Group(Single(a), Single(b), Single(c))}
		assertOrder(t, BreakTies([]*RankedTeam{a, b, c}, grouped, Modern, nil), 2, 3, 1)
	})

	t.Run("record against other-conference playoff teams", func(t *testing.T) {
		west := ranked(10, West, "Pacific")
		west.overall = Record{Wins: 9, Losses: 1}
		a := ranked(1, East, "Atlantic")
		b := ranked(2, East, "Central")
		c := ranked(3, East, "Southeast")
		setVs(a, west, 0, 2)
		setVs(b, west, 2, 0)
		setVs(c, west, 1, 1)

		grouped := []Entry[*RankedTeam]{Single(west), Group(Single(a), Single(b), Single(c))}
		assertOrder(t, BreakTies([]*RankedTeam{a, b, c}, grouped, Modern, nil), 2, 3, 1)
	})

	t.Run("point differential then head-to-head in the remaining pair", func(t *testing.T) {
		a := ranked(1, East, "Atlantic")
		b := ranked(2, East, "Central")
		c := ranked(3, East, "Southeast")
		// A cycle: every team is 1-1 inside the group.
		setVs(a, b, 1, 0)
		setVs(b, c, 1, 0)
		setVs(c, a, 1, 0)
		a.pointDiff = 5
		b.pointDiff = 5
		c.pointDiff = 9

		grouped := []Entry[*RankedTeam]{Group(Single(b), Single(a), Single(c))}
		assertOrder(t, BreakTies([]*RankedTeam{b, a, c}, grouped, Modern, nil), 3, 1, 2)
	})

	t.Run("exhausted criteria keep input order", func(t *testing.T) {
		a := ranked(1, East, "Atlantic")
		b := ranked(2, West, "Pacific")
		c := ranked(3, East, "Central")
		grouped := []Entry[*RankedTeam]{Group(Single(a), Single(b), Single(c))}

		assertOrder(t, BreakTies([]*RankedTeam{a, b, c}, grouped, Modern, nil), 1, 2, 3)
		assertOrder(t, BreakTies([]*RankedTeam{c, b, a}, grouped, Modern, nil), 3, 2, 1)
	})

	t.Run("input slice is not reordered", func(t *testing.T) {
		a := ranked(1, East, "Atlantic")
		b := ranked(2, East, "Atlantic")
		a.pointDiff = 1
		b.pointDiff = 9
		in := []*RankedTeam{a, b}
		grouped := []Entry[*RankedTeam]{Group(Single(a), Single(b))}

		assertOrder(t, BreakTies(in, grouped, Modern, nil), 2, 1)
		assertOrder(t, in, 1, 2)
	})
}
