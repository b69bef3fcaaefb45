package game

import "sort"

// assignTeams partitions a roster for the given game type. It is a pure
// function of (gameType, roster order): chaos clears every assignment,
// team mode alternates A/B over players sorted by join time. Prior
// assignments are never preserved; teams are recomputed from scratch on
// every roster or gameType change.
func assignTeams(players []*Player, gt GameType) {
	if gt != GameTypeTeam {
		for _, p := range players {
			p.Team = TeamNone
		}
		return
	}
	sorted := make([]*Player, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].JoinedAt != sorted[j].JoinedAt {
			return sorted[i].JoinedAt < sorted[j].JoinedAt
		}
		return sorted[i].joinSeq < sorted[j].joinSeq
	})
	for i, p := range sorted {
		if i%2 == 0 {
			p.Team = TeamA
		} else {
			p.Team = TeamB
		}
	}
}
