package memory

import (
	"context"
	"sort"
	"sync"

	"league-table-lab/internal/domain"
	"league-table-lab/internal/storage"
)

// RosterStore is an in-memory implementation of storage.RosterStore.
type RosterStore struct {
	mu   sync.RWMutex
	data map[rosterKey]map[string]domain.Team // (league, season) -> slug -> team
}

type rosterKey struct {
	league string
	season int
}

// NewRosterStore creates a new in-memory roster store.
func NewRosterStore() *RosterStore {
	return &RosterStore{
		data: make(map[rosterKey]map[string]domain.Team),
	}
}

// Verify interface compliance at compile time.
var _ storage.RosterStore = (*RosterStore)(nil)

// Add registers a team for a league/season. Re-adding is a no-op.
func (s *RosterStore) Add(_ context.Context, league string, season int, team domain.Team) error {
	if league == "" || team.Slug == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := rosterKey{league: league, season: season}
	roster, exists := s.data[key]
	if !exists {
		roster = make(map[string]domain.Team)
		s.data[key] = roster
	}
	if _, exists := roster[team.Slug]; !exists {
		roster[team.Slug] = team
	}
	return nil
}

// GetRoster returns all registered teams, sorted by name.
func (s *RosterStore) GetRoster(_ context.Context, league string, season int) ([]domain.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	roster := s.data[rosterKey{league: league, season: season}]
	result := make([]domain.Team, 0, len(roster))
	for _, t := range roster {
		result = append(result, t)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}
