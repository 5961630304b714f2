package postgres

import (
	"context"
	"fmt"

	"league-table-lab/internal/domain"
	"league-table-lab/internal/storage"
)

// RosterStore implements storage.RosterStore using PostgreSQL.
type RosterStore struct {
	pool *Pool
}

// NewRosterStore creates a new RosterStore.
func NewRosterStore(pool *Pool) *RosterStore {
	return &RosterStore{pool: pool}
}

// Compile-time interface check.
var _ storage.RosterStore = (*RosterStore)(nil)

// Add registers a team for a league/season. Re-adding is a no-op.
func (s *RosterStore) Add(ctx context.Context, league string, season int, team domain.Team) error {
	if league == "" || team.Slug == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO rosters (league, season, team_slug, team_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (league, season, team_slug) DO NOTHING
	`

	if _, err := s.pool.Exec(ctx, query, league, season, team.Slug, team.Name); err != nil {
		return fmt.Errorf("add roster entry: %w", err)
	}
	return nil
}

// GetRoster returns all registered teams, sorted by name.
func (s *RosterStore) GetRoster(ctx context.Context, league string, season int) ([]domain.Team, error) {
	query := `
		SELECT team_name, team_slug
		FROM rosters
		WHERE league = $1 AND season = $2
		ORDER BY team_name ASC
	`

	rows, err := s.pool.Query(ctx, query, league, season)
	if err != nil {
		return nil, fmt.Errorf("get roster: %w", err)
	}
	defer rows.Close()

	var teams []domain.Team
	for rows.Next() {
		var t domain.Team
		if err := rows.Scan(&t.Name, &t.Slug); err != nil {
			return nil, fmt.Errorf("scan roster row: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}
