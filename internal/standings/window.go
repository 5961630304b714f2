// Package standings implements the aggregation and caching engine: canonical
// date-window resolution, folding ordered match results into per-team
// statistics, tie-break ranking, and content-addressed table memoization.
package standings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"league-table-lab/internal/domain"
	"league-table-lab/internal/storage"
)

// Window is a resolved canonical date range: the actual first and last match
// dates a caller's raw request snaps to. Window dates, not raw caller input,
// form the cache identity of a table.
type Window struct {
	From  time.Time
	Until time.Time
}

// ResolveWindow snaps a caller-supplied [from, until] onto the nearest actual
// match dates under the filter. Either bound may be nil: an open from
// defaults to the season start, an open until defaults to now (resolved at
// call time). If no match falls inside the requested range, both bounds fall
// back to the raw caller dates, yielding a degenerate but non-crashing
// window.
func ResolveWindow(ctx context.Context, matches storage.MatchStore, league string, season int, filter domain.TeamFilter, from, until *time.Time, startMonth time.Month, now time.Time) (Window, error) {
	rawFrom := domain.SeasonStart(season, startMonth)
	if from != nil {
		rawFrom = domain.DayOf(*from)
	}
	rawUntil := domain.DayOf(now)
	if until != nil {
		rawUntil = domain.DayOf(*until)
	}

	win := Window{From: rawFrom, Until: rawUntil}

	first, err := matches.FirstOnOrAfter(ctx, league, season, filter, rawFrom)
	switch {
	case err == nil:
		// Snap only when the match also lies inside the requested range;
		// a match beyond until belongs to a different window.
		if !first.Date.After(rawUntil) {
			win.From = first.Date
		}
	case errors.Is(err, storage.ErrNotFound):
		// keep raw bound
	default:
		return Window{}, fmt.Errorf("resolve window from: %w", err)
	}

	last, err := matches.LastOnOrBefore(ctx, league, season, filter, rawUntil)
	switch {
	case err == nil:
		if !last.Date.Before(rawFrom) {
			win.Until = last.Date
		}
	case errors.Is(err, storage.ErrNotFound):
		// keep raw bound
	default:
		return Window{}, fmt.Errorf("resolve window until: %w", err)
	}

	return win, nil
}
