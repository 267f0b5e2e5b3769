package standings

// criterion is one tie-break rule. A group is only split by a criterion that
// applies to it and whose key is not uniform across the group.
type criterion struct {
	applies func(group []*RankedTeam) bool
	key     func(t *RankedTeam) float64
}

func always([]*RankedTeam) bool { return true }

func sameDivision(group []*RankedTeam) bool {
	for _, t := range group[1:] {
		if t.Team.Division != group[0].Team.Division {
			return false
		}
	}
	return true
}

func uniform(group []*RankedTeam, key func(*RankedTeam) float64) bool {
	first := key(group[0])
	for _, t := range group[1:] {
		if key(t) != first {
			return false
		}
	}
	return true
}

// resolver carries what the criteria need beyond the teams' own records.
// leaders is nil while division leaders themselves are being resolved.
type resolver struct {
	leaders Leaders
	playoff playoffPcts
}

// pctWithinGroup is each team's win percentage in games against the other
// members of group. For two teams this is the head-to-head percentage.
func pctWithinGroup(group []*RankedTeam) map[*RankedTeam]float64 {
	pcts := make(map[*RankedTeam]float64, len(group))
	for _, t := range group {
		pcts[t] = pctVsTeams(t, group)
	}
	return pcts
}

func (r *resolver) leaderCriterion() criterion {
	return criterion{
		applies: func([]*RankedTeam) bool { return r.leaders != nil },
		key: func(t *RankedTeam) float64 {
			if r.leaders.isLeader(t) {
				return 1
			}
			return 0
		},
	}
}

func withinGroupCriterion(pcts map[*RankedTeam]float64) criterion {
	return criterion{
		applies: always,
		key:     func(t *RankedTeam) float64 { return pcts[t] },
	}
}

// commonCriteria are criteria 3 to 7, shared by two-way and multi-way ties.
func (r *resolver) commonCriteria() []criterion {
	return []criterion{
		// Division record, only when all tied teams share a division.
		{
			applies: sameDivision,
			key:     (*RankedTeam).DivisionPct,
		},
		{
			applies: always,
			key:     (*RankedTeam).ConferencePct,
		},
		// Record against playoff-eligible teams, own conference then other.
		{
			applies: always,
			key:     func(t *RankedTeam) float64 { return r.playoff.own[t] },
		},
		{
			applies: always,
			key:     func(t *RankedTeam) float64 { return r.playoff.other[t] },
		},
		{
			applies: always,
			key:     func(t *RankedTeam) float64 { return float64(t.PointDifferential()) },
		},
	}
}

// criteriaFor returns the ordered rules for a tie group. Two-way ties check
// head-to-head before division leadership; larger ties check leadership
// first.
func (r *resolver) criteriaFor(group []*RankedTeam) []criterion {
	within := withinGroupCriterion(pctWithinGroup(group))
	if len(group) == 2 {
		return append([]criterion{within, r.leaderCriterion()}, r.commonCriteria()...)
	}
	return append([]criterion{r.leaderCriterion(), within}, r.commonCriteria()...)
}

// resolve orders a tie group. The first discriminating criterion splits the
// group and every resulting sub-group is resolved again from the top of its
// own criteria list. When nothing discriminates the group keeps its input
// order.
func (r *resolver) resolve(group []*RankedTeam) []Entry[*RankedTeam] {
	if len(group) < 2 {
		return Singles(group)
	}
	for _, c := range r.criteriaFor(group) {
		if !c.applies(group) || uniform(group, c.key) {
			continue
		}
		parts := GroupBy(group, c.key)
		for i, p := range parts {
			if p.IsGroup() {
				parts[i] = Group(r.resolve(p.Items())...)
			}
		}
		return parts
	}
	return Singles(group)
}

// BreakTwoWayTie orders exactly two tied teams.
func BreakTwoWayTie(a, b *RankedTeam, grouped []Entry[*RankedTeam], format PlayoffFormat, leaders Leaders) []*RankedTeam {
	return BreakTies([]*RankedTeam{a, b}, grouped, format, leaders)
}

// BreakTies orders a group of teams tied on overall winning percentage.
// grouped is the pre-tie-break global order, used to find playoff-eligible
// teams. Pass nil leaders to leave out the division-leader criterion. The
// result always contains exactly the input teams.
func BreakTies(tied []*RankedTeam, grouped []Entry[*RankedTeam], format PlayoffFormat, leaders Leaders) []*RankedTeam {
	r := &resolver{
		leaders: leaders,
		playoff: computePlayoffPcts(tied, grouped, format),
	}
	group := make([]*RankedTeam, len(tied))
	copy(group, tied)
	return Flatten(r.resolve(group))
}
