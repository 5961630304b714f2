package domain

import "time"

// Table is a cached standings snapshot for one league, team filter, and
// resolved match-date window. Tables are append-only: a new window produces a
// new Table, never an edit, and entries are retained indefinitely.
// Corresponds to tables table in PostgreSQL.
type Table struct {
	TableID   string                     // identity over (league, filter, untilDate, fromDate)
	League    string                     // league slug
	Season    int                        // season year
	Filter    TeamFilter                 // sorted team filter; empty = whole league
	FromDate  time.Time                  // resolved first match date, not the raw request
	UntilDate time.Time                  // resolved last match date, not the raw request
	CreatedAt time.Time                  // snapshot creation timestamp
	Standings map[string]*StandingsEntry // keyed by team slug
}

// Entry returns the standings entry for a team slug, or nil.
func (t *Table) Entry(slug string) *StandingsEntry {
	if t == nil {
		return nil
	}
	return t.Standings[slug]
}
