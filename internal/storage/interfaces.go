package storage

import (
	"context"
	"time"

	"league-table-lab/internal/domain"
)

// MatchStore provides access to match storage. Range queries are always
// returned in deterministic order: kickoff date ascending, then home team
// name ascending, so repeated aggregation over the same window reproduces the
// same form sequences.
type MatchStore interface {
	// Insert adds a new match. Returns ErrDuplicateKey if match_id exists.
	Insert(ctx context.Context, m *domain.Match) error

	// GetByID retrieves a match by its identity. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, matchID string) (*domain.Match, error)

	// GetByRange retrieves matches for a league/season within [from, until]
	// (inclusive, date precision), restricted to the team filter.
	GetByRange(ctx context.Context, league string, season int, filter domain.TeamFilter, from, until time.Time) ([]*domain.Match, error)

	// FirstOnOrAfter returns the earliest match dated at or after date under
	// the filter. Returns ErrNotFound if no such match exists.
	FirstOnOrAfter(ctx context.Context, league string, season int, filter domain.TeamFilter, date time.Time) (*domain.Match, error)

	// LastOnOrBefore returns the latest match dated at or before date under
	// the filter. Returns ErrNotFound if no such match exists.
	LastOnOrBefore(ctx context.Context, league string, season int, filter domain.TeamFilter, date time.Time) (*domain.Match, error)

	// MatchDates returns the distinct match dates for a league/season under
	// the filter, ascending.
	MatchDates(ctx context.Context, league string, season int, filter domain.TeamFilter) ([]time.Time, error)

	// GetByTeam retrieves up to limit matches involving the team, dated at or
	// before until, newest first. Scope restricts the side: ScopeHome only as
	// home, ScopeAway only as away, ScopeTotals either.
	GetByTeam(ctx context.Context, league, teamSlug string, scope domain.Scope, until time.Time, limit int) ([]*domain.Match, error)
}

// TableStore provides access to cached standings tables. Tables are
// append-only and never evicted; concurrent writers racing to populate the
// same identity rely on Insert being rejected with ErrDuplicateKey rather
// than corrupting the existing snapshot.
type TableStore interface {
	// Insert adds a new table. Returns ErrDuplicateKey if table_id exists.
	Insert(ctx context.Context, t *domain.Table) error

	// GetByID retrieves a table by its identity. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, tableID string) (*domain.Table, error)
}

// RosterStore tracks which teams are registered for a league and season, so
// that teams with no played fixtures still appear in tables with zero stats.
type RosterStore interface {
	// Add registers a team for a league/season. Adding a team that is
	// already registered is a no-op.
	Add(ctx context.Context, league string, season int, team domain.Team) error

	// GetRoster returns all registered teams, sorted by name.
	GetRoster(ctx context.Context, league string, season int) ([]domain.Team, error)
}

// SeriesStore persists charting samples produced by the series builders so
// chart data can be re-read without re-aggregation.
type SeriesStore interface {
	// InsertBulk adds sample points in one batch.
	InsertBulk(ctx context.Context, points []*domain.SeriesPoint) error

	// GetByTeam retrieves samples of one kind for a team, ordered by sample
	// date ascending.
	GetByTeam(ctx context.Context, league string, season int, filterKey, kind, teamSlug string) ([]*domain.SeriesPoint, error)
}
