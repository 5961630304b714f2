package memory

import (
	"context"
	"sort"
	"sync"

	"league-table-lab/internal/domain"
	"league-table-lab/internal/storage"
)

// SeriesStore is an in-memory implementation of storage.SeriesStore.
type SeriesStore struct {
	mu   sync.RWMutex
	data []*domain.SeriesPoint
}

// NewSeriesStore creates a new in-memory series store.
func NewSeriesStore() *SeriesStore {
	return &SeriesStore{}
}

// Verify interface compliance at compile time.
var _ storage.SeriesStore = (*SeriesStore)(nil)

// InsertBulk adds sample points in one batch.
func (s *SeriesStore) InsertBulk(_ context.Context, points []*domain.SeriesPoint) error {
	if len(points) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range points {
		pointCopy := *p
		s.data = append(s.data, &pointCopy)
	}
	return nil
}

// GetByTeam retrieves samples of one kind for a team, ordered by sample date
// ascending.
func (s *SeriesStore) GetByTeam(_ context.Context, league string, season int, filterKey, kind, teamSlug string) ([]*domain.SeriesPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.SeriesPoint
	for _, p := range s.data {
		if p.League != league || p.Season != season {
			continue
		}
		if p.FilterKey != filterKey || p.Kind != kind || p.TeamSlug != teamSlug {
			continue
		}
		pointCopy := *p
		result = append(result, &pointCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].SampleDate.Before(result[j].SampleDate)
	})
	return result, nil
}
