package memory

import (
	"context"
	"sync"

	"league-table-lab/internal/domain"
	"league-table-lab/internal/storage"
)

// TableStore is an in-memory implementation of storage.TableStore.
type TableStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Table // keyed by table_id
}

// NewTableStore creates a new in-memory table store.
func NewTableStore() *TableStore {
	return &TableStore{
		data: make(map[string]*domain.Table),
	}
}

// Verify interface compliance at compile time.
var _ storage.TableStore = (*TableStore)(nil)

// Insert adds a new table. Returns ErrDuplicateKey if table_id exists.
func (s *TableStore) Insert(_ context.Context, t *domain.Table) error {
	if t == nil || t.TableID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[t.TableID]; exists {
		return storage.ErrDuplicateKey
	}

	s.data[t.TableID] = copyTable(t)
	return nil
}

// GetByID retrieves a table by its identity. Returns ErrNotFound if not exists.
func (s *TableStore) GetByID(_ context.Context, tableID string) (*domain.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, exists := s.data[tableID]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return copyTable(t), nil
}

// Len returns the number of cached tables.
func (s *TableStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// copyTable deep-copies a table so callers cannot mutate the cached snapshot.
func copyTable(t *domain.Table) *domain.Table {
	tableCopy := *t
	tableCopy.Filter = append(domain.TeamFilter(nil), t.Filter...)
	tableCopy.Standings = make(map[string]*domain.StandingsEntry, len(t.Standings))
	for slug, e := range t.Standings {
		entryCopy := *e
		entryCopy.Home.RecentForm = append([]string(nil), e.Home.RecentForm...)
		entryCopy.Away.RecentForm = append([]string(nil), e.Away.RecentForm...)
		entryCopy.Totals.RecentForm = append([]string(nil), e.Totals.RecentForm...)
		tableCopy.Standings[slug] = &entryCopy
	}
	return &tableCopy
}
