// Package form derives a team's most-recent-N outcome sequence.
package form

import (
	"context"
	"errors"
	"fmt"
	"time"

	"league-table-lab/internal/domain"
	"league-table-lab/internal/standings"
	"league-table-lab/internal/storage"
)

// Service answers recent-form queries. RecentForm queries match records
// directly and is the default path; FormAsOf re-derives a whole league table
// through the cache so the form is consistent with that snapshot, at the
// cost of a full aggregation on cache miss.
type Service struct {
	matches storage.MatchStore
	tables  *standings.Service
}

// NewService creates a new form service.
func NewService(matches storage.MatchStore, tables *standings.Service) *Service {
	return &Service{matches: matches, tables: tables}
}

// RecentForm returns the team's last windowSize outcomes at or before asOf,
// oldest first. A team with fewer prior matches gets a shorter sequence, not
// one padded to the window. windowSize <= 0 uses the standard window of 5.
func (s *Service) RecentForm(ctx context.Context, league, teamSlug string, scope domain.Scope, asOf time.Time, windowSize int) ([]string, error) {
	if windowSize <= 0 {
		windowSize = domain.FormWindow
	}

	matches, err := s.matches.GetByTeam(ctx, league, teamSlug, scope, asOf, windowSize)
	if err != nil {
		return nil, fmt.Errorf("recent form %s/%s: %w", league, teamSlug, err)
	}

	// Matches arrive newest first; emit oldest first.
	outcomes := make([]string, len(matches))
	for i, m := range matches {
		gf, ga := m.HomeScore, m.AwayScore
		if m.AwaySlug == teamSlug {
			gf, ga = ga, gf
		}
		outcomes[len(matches)-1-i] = domain.OutcomeFor(gf, ga)
	}
	return outcomes, nil
}

// FormAsOf reads the team's totals form out of the league table as of a
// date, so the sequence is exactly consistent with that table snapshot. A
// league with no matches yet, or a team absent from the table, yields an
// empty sequence.
func (s *Service) FormAsOf(ctx context.Context, league string, season int, teamSlug string, asOf time.Time) ([]string, error) {
	table, err := s.tables.TableAsOf(ctx, league, season, nil, asOf)
	if err != nil {
		if errors.Is(err, standings.ErrNoTable) {
			return nil, nil
		}
		return nil, fmt.Errorf("form as of %s: %w", asOf.Format("2006-01-02"), err)
	}

	entry := table.Entry(teamSlug)
	if entry == nil {
		return nil, nil
	}
	return append([]string(nil), entry.Totals.RecentForm...), nil
}
