package domain

import "time"

// Match is an immutable record of one played fixture.
// Corresponds to matches table in PostgreSQL.
type Match struct {
	MatchID   string    // SHA-256 identity, hex (see internal/idhash)
	League    string    // league slug, e.g. "premier-league"
	Season    int       // season identified by its starting calendar year
	Date      time.Time // kickoff date, normalized to UTC midnight
	HomeTeam  string    // display name
	HomeSlug  string    // normalized slug
	AwayTeam  string    // display name
	AwaySlug  string    // normalized slug
	HomeScore int       // non-negative
	AwayScore int       // non-negative
	CreatedAt time.Time // record creation timestamp
}

// Involves reports whether the team with the given slug played in this match.
func (m *Match) Involves(slug string) bool {
	return m.HomeSlug == slug || m.AwaySlug == slug
}

// DayOf truncates a timestamp to UTC midnight. Match dates carry date-only
// precision for ranking and identity purposes.
func DayOf(t time.Time) time.Time {
	y, mo, d := t.UTC().Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}
