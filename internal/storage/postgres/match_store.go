package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"league-table-lab/internal/domain"
	"league-table-lab/internal/storage"
)

// MatchStore implements storage.MatchStore using PostgreSQL.
type MatchStore struct {
	pool *Pool
}

// NewMatchStore creates a new MatchStore.
func NewMatchStore(pool *Pool) *MatchStore {
	return &MatchStore{pool: pool}
}

// Compile-time interface check.
var _ storage.MatchStore = (*MatchStore)(nil)

const matchColumns = `match_id, league, season, date, home_team, home_slug, away_team, away_slug, home_score, away_score, created_at`

// Insert adds a new match. Returns ErrDuplicateKey if match_id exists.
func (s *MatchStore) Insert(ctx context.Context, m *domain.Match) error {
	if m == nil || m.MatchID == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO matches (
			match_id, league, season, date, home_team, home_slug, away_team, away_slug, home_score, away_score
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := s.pool.Exec(ctx, query,
		m.MatchID,
		m.League,
		m.Season,
		domain.DayOf(m.Date),
		m.HomeTeam,
		m.HomeSlug,
		m.AwayTeam,
		m.AwaySlug,
		m.HomeScore,
		m.AwayScore,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

// GetByID retrieves a match by its identity. Returns ErrNotFound if not exists.
func (s *MatchStore) GetByID(ctx context.Context, matchID string) (*domain.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE match_id = $1`

	row := s.pool.QueryRow(ctx, query, matchID)
	m, err := scanMatch(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get match by id: %w", err)
	}
	return m, nil
}

// GetByRange retrieves matches within [from, until] under the filter,
// ordered by date then home team name.
func (s *MatchStore) GetByRange(ctx context.Context, league string, season int, filter domain.TeamFilter, from, until time.Time) ([]*domain.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE league = $1 AND season = $2 AND date >= $3 AND date <= $4
	`
	args := []any{league, season, domain.DayOf(from), domain.DayOf(until)}

	if !filter.Empty() {
		query += ` AND home_slug = ANY($5) AND away_slug = ANY($5)`
		args = append(args, []string(filter))
	}
	query += ` ORDER BY date ASC, home_team ASC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get matches by range: %w", err)
	}
	defer rows.Close()

	return scanMatches(rows)
}

// FirstOnOrAfter returns the earliest match dated at or after date under the filter.
func (s *MatchStore) FirstOnOrAfter(ctx context.Context, league string, season int, filter domain.TeamFilter, date time.Time) (*domain.Match, error) {
	return s.boundary(ctx, league, season, filter, date, true)
}

// LastOnOrBefore returns the latest match dated at or before date under the filter.
func (s *MatchStore) LastOnOrBefore(ctx context.Context, league string, season int, filter domain.TeamFilter, date time.Time) (*domain.Match, error) {
	return s.boundary(ctx, league, season, filter, date, false)
}

// boundary runs the directed nearest-match query behind window snapping.
func (s *MatchStore) boundary(ctx context.Context, league string, season int, filter domain.TeamFilter, date time.Time, ascending bool) (*domain.Match, error) {
	cmp, order := "<=", "DESC"
	if ascending {
		cmp, order = ">=", "ASC"
	}

	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE league = $1 AND season = $2 AND date ` + cmp + ` $3
	`
	args := []any{league, season, domain.DayOf(date)}

	if !filter.Empty() {
		query += ` AND home_slug = ANY($4) AND away_slug = ANY($4)`
		args = append(args, []string(filter))
	}
	query += ` ORDER BY date ` + order + `, home_team ` + order + ` LIMIT 1`

	row := s.pool.QueryRow(ctx, query, args...)
	m, err := scanMatch(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("nearest match query: %w", err)
	}
	return m, nil
}

// MatchDates returns the distinct match dates under the filter, ascending.
func (s *MatchStore) MatchDates(ctx context.Context, league string, season int, filter domain.TeamFilter) ([]time.Time, error) {
	query := `
		SELECT DISTINCT date
		FROM matches
		WHERE league = $1 AND season = $2
	`
	args := []any{league, season}

	if !filter.Empty() {
		query += ` AND home_slug = ANY($3) AND away_slug = ANY($3)`
		args = append(args, []string(filter))
	}
	query += ` ORDER BY date ASC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get match dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan match date: %w", err)
		}
		dates = append(dates, domain.DayOf(d))
	}
	return dates, rows.Err()
}

// GetByTeam retrieves up to limit matches involving the team, dated at or
// before until, newest first. Scope restricts the side the team played on.
func (s *MatchStore) GetByTeam(ctx context.Context, league, teamSlug string, scope domain.Scope, until time.Time, limit int) ([]*domain.Match, error) {
	var side string
	switch scope {
	case domain.ScopeHome:
		side = `home_slug = $3`
	case domain.ScopeAway:
		side = `away_slug = $3`
	default:
		side = `(home_slug = $3 OR away_slug = $3)`
	}

	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE league = $1 AND date <= $2 AND ` + side + `
		ORDER BY date DESC, home_team DESC
		LIMIT $4
	`

	rows, err := s.pool.Query(ctx, query, league, domain.DayOf(until), teamSlug, limit)
	if err != nil {
		return nil, fmt.Errorf("get matches by team: %w", err)
	}
	defer rows.Close()

	return scanMatches(rows)
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanMatch scans a single match row.
func scanMatch(row rowScanner) (*domain.Match, error) {
	var m domain.Match
	err := row.Scan(
		&m.MatchID,
		&m.League,
		&m.Season,
		&m.Date,
		&m.HomeTeam,
		&m.HomeSlug,
		&m.AwayTeam,
		&m.AwaySlug,
		&m.HomeScore,
		&m.AwayScore,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Date = domain.DayOf(m.Date)
	return &m, nil
}

// scanMatches scans multiple rows into a slice of Match.
func scanMatches(rows pgx.Rows) ([]*domain.Match, error) {
	var matches []*domain.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate match rows: %w", err)
	}
	return matches, nil
}
