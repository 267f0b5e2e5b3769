package standings

// Leaders maps a division name to its leading team.
type Leaders map[string]*RankedTeam

func (l Leaders) isLeader(t *RankedTeam) bool {
	return l[t.Team.Division] == t
}

// DivisionLeaders returns the leading team of every division. Ties for the
// lead are broken with the standard criteria minus the division-leader
// criterion, which would otherwise depend on its own result.
func DivisionLeaders(teams []*RankedTeam, grouped []Entry[*RankedTeam], format PlayoffFormat) Leaders {
	var divisions []string
	members := make(map[string][]*RankedTeam)
	for _, t := range teams {
		d := t.Team.Division
		if _, ok := members[d]; !ok {
			divisions = append(divisions, d)
		}
		members[d] = append(members[d], t)
	}

	leaders := make(Leaders, len(divisions))
	for _, d := range divisions {
		top := GroupBy(members[d], (*RankedTeam).OverallPct)[0]
		if top.IsGroup() {
			leaders[d] = BreakTies(top.Items(), grouped, format, nil)[0]
		} else {
			leaders[d] = top.Item()
		}
	}
	return leaders
}
