package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"league-table-lab/internal/domain"
	"league-table-lab/internal/storage"
)

// MatchStore is an in-memory implementation of storage.MatchStore.
type MatchStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Match // keyed by match_id
}

// NewMatchStore creates a new in-memory match store.
func NewMatchStore() *MatchStore {
	return &MatchStore{
		data: make(map[string]*domain.Match),
	}
}

// Verify interface compliance at compile time.
var _ storage.MatchStore = (*MatchStore)(nil)

// Insert adds a new match. Returns ErrDuplicateKey if match_id exists.
func (s *MatchStore) Insert(_ context.Context, m *domain.Match) error {
	if m == nil || m.MatchID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[m.MatchID]; exists {
		return storage.ErrDuplicateKey
	}

	// Store a copy to prevent external mutation
	matchCopy := *m
	s.data[m.MatchID] = &matchCopy
	return nil
}

// GetByID retrieves a match by its identity. Returns ErrNotFound if not exists.
func (s *MatchStore) GetByID(_ context.Context, matchID string) (*domain.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, exists := s.data[matchID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	matchCopy := *m
	return &matchCopy, nil
}

// GetByRange retrieves matches for a league/season within [from, until],
// restricted to the team filter, ordered by date then home team name.
func (s *MatchStore) GetByRange(_ context.Context, league string, season int, filter domain.TeamFilter, from, until time.Time) ([]*domain.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	from = domain.DayOf(from)
	until = domain.DayOf(until)

	var result []*domain.Match
	for _, m := range s.data {
		if m.League != league || m.Season != season {
			continue
		}
		if m.Date.Before(from) || m.Date.After(until) {
			continue
		}
		if !filter.Admits(m) {
			continue
		}
		matchCopy := *m
		result = append(result, &matchCopy)
	}

	sortChronological(result)
	return result, nil
}

// FirstOnOrAfter returns the earliest match dated at or after date under the filter.
func (s *MatchStore) FirstOnOrAfter(ctx context.Context, league string, season int, filter domain.TeamFilter, date time.Time) (*domain.Match, error) {
	matches, err := s.GetByRange(ctx, league, season, filter, date, maxDate)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, storage.ErrNotFound
	}
	return matches[0], nil
}

// LastOnOrBefore returns the latest match dated at or before date under the filter.
func (s *MatchStore) LastOnOrBefore(ctx context.Context, league string, season int, filter domain.TeamFilter, date time.Time) (*domain.Match, error) {
	matches, err := s.GetByRange(ctx, league, season, filter, minDate, date)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, storage.ErrNotFound
	}
	return matches[len(matches)-1], nil
}

// MatchDates returns the distinct match dates for a league/season under the
// filter, ascending.
func (s *MatchStore) MatchDates(ctx context.Context, league string, season int, filter domain.TeamFilter) ([]time.Time, error) {
	matches, err := s.GetByRange(ctx, league, season, filter, minDate, maxDate)
	if err != nil {
		return nil, err
	}

	var dates []time.Time
	for _, m := range matches {
		if len(dates) == 0 || !dates[len(dates)-1].Equal(m.Date) {
			dates = append(dates, m.Date)
		}
	}
	return dates, nil
}

// GetByTeam retrieves up to limit matches involving the team, dated at or
// before until, newest first.
func (s *MatchStore) GetByTeam(_ context.Context, league, teamSlug string, scope domain.Scope, until time.Time, limit int) ([]*domain.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	until = domain.DayOf(until)

	var result []*domain.Match
	for _, m := range s.data {
		if m.League != league || m.Date.After(until) {
			continue
		}
		if !sideMatches(m, teamSlug, scope) {
			continue
		}
		matchCopy := *m
		result = append(result, &matchCopy)
	}

	sortChronological(result)

	// Newest first, capped at limit
	reverse(result)
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// sideMatches reports whether the team played in the match on the side the
// scope demands.
func sideMatches(m *domain.Match, teamSlug string, scope domain.Scope) bool {
	switch scope {
	case domain.ScopeHome:
		return m.HomeSlug == teamSlug
	case domain.ScopeAway:
		return m.AwaySlug == teamSlug
	default:
		return m.Involves(teamSlug)
	}
}

// sortChronological orders matches by date ascending, then home team name,
// the canonical deterministic iteration order.
func sortChronological(matches []*domain.Match) {
	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].Date.Equal(matches[j].Date) {
			return matches[i].Date.Before(matches[j].Date)
		}
		return matches[i].HomeTeam < matches[j].HomeTeam
	})
}

func reverse(matches []*domain.Match) {
	for i, j := 0, len(matches)-1; i < j; i, j = i+1, j-1 {
		matches[i], matches[j] = matches[j], matches[i]
	}
}

// Sentinel range bounds for open-ended scans.
var (
	minDate = time.Date(1800, 1, 1, 0, 0, 0, 0, time.UTC)
	maxDate = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
)
