package standings

import (
	"sort"

	"league-table-lab/internal/domain"
)

// Rank orders standings into a positioned table for one scope. The sort is a
// composite of successive stable sorts applied in reverse priority order, so
// the final pass dominates: points desc, then goal difference desc, then
// goals for desc, then team name asc. Ties receive consecutive positions.
//
// Entries are copied before positions are assigned; a cached table is never
// mutated by ranking.
func Rank(standings map[string]*domain.StandingsEntry, scope domain.Scope) []*domain.StandingsEntry {
	entries := make([]*domain.StandingsEntry, 0, len(standings))
	for _, e := range standings {
		entryCopy := *e
		entries = append(entries, &entryCopy)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TeamName < entries[j].TeamName
	})
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Block(scope).GoalsFor > entries[j].Block(scope).GoalsFor
	})
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Block(scope).GoalDifference > entries[j].Block(scope).GoalDifference
	})
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Block(scope).Points > entries[j].Block(scope).Points
	})

	for i := range entries {
		entries[i].Position = i + 1
	}
	return entries
}
