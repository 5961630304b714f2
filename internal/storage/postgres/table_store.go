package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"league-table-lab/internal/domain"
	"league-table-lab/internal/storage"
)

// TableStore implements storage.TableStore using PostgreSQL. Standings are
// stored as a JSONB document keyed by team slug; the table row itself
// carries the identity and window columns.
type TableStore struct {
	pool *Pool
}

// NewTableStore creates a new TableStore.
func NewTableStore(pool *Pool) *TableStore {
	return &TableStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TableStore = (*TableStore)(nil)

// Insert adds a new table. Returns ErrDuplicateKey if table_id exists;
// racing writers for the same identity rely on this to stay idempotent.
func (s *TableStore) Insert(ctx context.Context, t *domain.Table) error {
	if t == nil || t.TableID == "" {
		return storage.ErrInvalidInput
	}

	standings, err := json.Marshal(t.Standings)
	if err != nil {
		return fmt.Errorf("marshal standings: %w", err)
	}

	query := `
		INSERT INTO tables (
			table_id, league, season, team_filter, from_date, until_date, created_at, standings
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = s.pool.Exec(ctx, query,
		t.TableID,
		t.League,
		t.Season,
		t.Filter.Key(),
		domain.DayOf(t.FromDate),
		domain.DayOf(t.UntilDate),
		t.CreatedAt,
		standings,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert table: %w", err)
	}
	return nil
}

// GetByID retrieves a table by its identity. Returns ErrNotFound if not exists.
func (s *TableStore) GetByID(ctx context.Context, tableID string) (*domain.Table, error) {
	query := `
		SELECT table_id, league, season, team_filter, from_date, until_date, created_at, standings
		FROM tables
		WHERE table_id = $1
	`

	var (
		t         domain.Table
		filterKey string
		standings []byte
	)
	err := s.pool.QueryRow(ctx, query, tableID).Scan(
		&t.TableID,
		&t.League,
		&t.Season,
		&filterKey,
		&t.FromDate,
		&t.UntilDate,
		&t.CreatedAt,
		&standings,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get table by id: %w", err)
	}

	if filterKey != "" {
		t.Filter = domain.NewTeamFilter(strings.Split(filterKey, ",")...)
	}
	t.FromDate = domain.DayOf(t.FromDate)
	t.UntilDate = domain.DayOf(t.UntilDate)

	if err := json.Unmarshal(standings, &t.Standings); err != nil {
		return nil, fmt.Errorf("unmarshal standings for %s: %w", tableID, err)
	}
	return &t, nil
}
