package clickhouse

import (
	"context"
	"fmt"
	"time"

	"league-table-lab/internal/domain"
	"league-table-lab/internal/storage"
)

// SeriesStore implements storage.SeriesStore using ClickHouse. The backing
// table is a ReplacingMergeTree keyed by the full sample identity, so
// rebuilding a series simply overwrites the same samples.
type SeriesStore struct {
	conn *Conn
}

// NewSeriesStore creates a new SeriesStore.
func NewSeriesStore(conn *Conn) *SeriesStore {
	return &SeriesStore{conn: conn}
}

// Compile-time interface check.
var _ storage.SeriesStore = (*SeriesStore)(nil)

// InsertBulk adds sample points in one batch.
func (s *SeriesStore) InsertBulk(ctx context.Context, points []*domain.SeriesPoint) error {
	if len(points) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO series_points (
			league, season, filter_key, kind, team_slug, sample_date, value
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, p := range points {
		err = batch.Append(
			p.League, int32(p.Season), p.FilterKey, p.Kind, p.TeamSlug,
			p.SampleDate, int32(p.Value),
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

// GetByTeam retrieves samples of one kind for a team, ordered by sample date
// ascending.
func (s *SeriesStore) GetByTeam(ctx context.Context, league string, season int, filterKey, kind, teamSlug string) ([]*domain.SeriesPoint, error) {
	query := `
		SELECT league, season, filter_key, kind, team_slug, sample_date, value
		FROM series_points FINAL
		WHERE league = ? AND season = ? AND filter_key = ? AND kind = ? AND team_slug = ?
		ORDER BY sample_date ASC
	`

	rows, err := s.conn.Query(ctx, query, league, int32(season), filterKey, kind, teamSlug)
	if err != nil {
		return nil, fmt.Errorf("query series by team: %w", err)
	}
	defer rows.Close()

	var points []*domain.SeriesPoint
	for rows.Next() {
		var (
			p      domain.SeriesPoint
			season int32
			value  int32
			date   time.Time
		)
		if err := rows.Scan(&p.League, &season, &p.FilterKey, &p.Kind, &p.TeamSlug, &date, &value); err != nil {
			return nil, fmt.Errorf("scan series point: %w", err)
		}
		p.Season = int(season)
		p.Value = int(value)
		p.SampleDate = domain.DayOf(date)
		points = append(points, &p)
	}
	return points, rows.Err()
}
