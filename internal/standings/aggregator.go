package standings

import (
	"errors"

	"league-table-lab/internal/domain"
)

// ErrNoTable is returned when a window holds no matches. A league with no
// played fixtures has no standings, not a table of zeros; callers must treat
// this as a valid "no data yet" state and it is never cached.
var ErrNoTable = errors.New("no table: no matches in window")

// Aggregate folds a chronologically ordered match sequence into per-team
// standings. The roster seeds zero-valued entries so teams with byes or
// unplayed fixtures still appear. Matches must already be ordered by date
// then home team name; iteration order is what makes form sequences
// reproducible.
func Aggregate(matches []*domain.Match, roster []domain.Team, filter domain.TeamFilter) (map[string]*domain.StandingsEntry, error) {
	if len(matches) == 0 {
		return nil, ErrNoTable
	}

	standings := make(map[string]*domain.StandingsEntry)
	for _, t := range roster {
		if filter.Contains(t.Slug) {
			standings[t.Slug] = domain.NewStandingsEntry(t.Name, t.Slug)
		}
	}

	ensure := func(name, slug string) *domain.StandingsEntry {
		e, exists := standings[slug]
		if !exists {
			e = domain.NewStandingsEntry(name, slug)
			standings[slug] = e
		}
		return e
	}

	for _, m := range matches {
		home := ensure(m.HomeTeam, m.HomeSlug)
		away := ensure(m.AwayTeam, m.AwaySlug)

		home.Home.RecordResult(m.HomeScore, m.AwayScore)
		away.Away.RecordResult(m.AwayScore, m.HomeScore)

		// The totals form queue is kept in match order across both scopes.
		home.Totals.AppendForm(domain.OutcomeFor(m.HomeScore, m.AwayScore))
		away.Totals.AppendForm(domain.OutcomeFor(m.AwayScore, m.HomeScore))
	}

	for _, e := range standings {
		e.RecomputeTotals()
	}

	return standings, nil
}
