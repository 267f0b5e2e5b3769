package standings

type leaderFunc func(teams []*RankedTeam, grouped []Entry[*RankedTeam], format PlayoffFormat) Leaders

// RankTeams returns every team in one strict total order: by overall winning
// percentage, with ties broken by the official criteria.
func RankTeams(teams []*RankedTeam, format PlayoffFormat) []*RankedTeam {
	return rankTeams(teams, format, DivisionLeaders)
}

func rankTeams(teams []*RankedTeam, format PlayoffFormat, resolveLeaders leaderFunc) []*RankedTeam {
	grouped := GroupBy(teams, (*RankedTeam).OverallPct)
	if len(grouped) == len(teams) {
		return Flatten(grouped)
	}

	leaders := resolveLeaders(teams, grouped, format)

	ranked := make([]*RankedTeam, 0, len(teams))
	for _, e := range grouped {
		if e.IsGroup() {
			ranked = append(ranked, BreakTies(e.Items(), grouped, format, leaders)...)
		} else {
			ranked = append(ranked, e.Item())
		}
	}
	return ranked
}
