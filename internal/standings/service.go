package standings

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"league-table-lab/internal/domain"
	"league-table-lab/internal/idhash"
	"league-table-lab/internal/observability"
	"league-table-lab/internal/storage"
)

// RankedTable is a cached table plus its positioned ordering for one scope.
type RankedTable struct {
	Table   *domain.Table
	Scope   domain.Scope
	Entries []*domain.StandingsEntry
}

// Service answers table requests through the content-addressed cache:
// resolve the canonical window, look the table up by identity, aggregate on
// miss, persist insert-once, rank on the way out.
type Service struct {
	matches storage.MatchStore
	tables  storage.TableStore
	rosters storage.RosterStore

	startMonth time.Month
	metrics    *observability.Metrics
	logger     *log.Logger
	now        func() time.Time
}

// ServiceOptions contains configuration for creating a Service.
type ServiceOptions struct {
	Matches storage.MatchStore
	Tables  storage.TableStore
	Rosters storage.RosterStore

	SeasonStartMonth time.Month             // default August
	Metrics          *observability.Metrics // optional
	Logger           *log.Logger            // optional
	Now              func() time.Time       // optional, for tests
}

// NewService creates a new standings service.
func NewService(opts ServiceOptions) *Service {
	startMonth := opts.SeasonStartMonth
	if startMonth == 0 {
		startMonth = domain.DefaultSeasonStartMonth
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Service{
		matches:    opts.Matches,
		tables:     opts.Tables,
		rosters:    opts.Rosters,
		startMonth: startMonth,
		metrics:    opts.Metrics,
		logger:     logger,
		now:        now,
	}
}

// SeasonStartMonth returns the configured league-year start month.
func (s *Service) SeasonStartMonth() time.Month { return s.startMonth }

// SeasonOf maps a date onto a season year using the configured start month.
func (s *Service) SeasonOf(date time.Time) int {
	return domain.SeasonOf(date, s.startMonth)
}

// GetTable returns the ranked standings for a league, season, scope, and
// team filter over [from, until]. Nil bounds are open (season start / now).
// Returns ErrNoTable when the resolved window holds no matches.
func (s *Service) GetTable(ctx context.Context, league string, season int, scope domain.Scope, filter domain.TeamFilter, from, until *time.Time) (*RankedTable, error) {
	table, err := s.tableFor(ctx, league, season, filter, from, until)
	if err != nil {
		return nil, err
	}

	return &RankedTable{
		Table:   table,
		Scope:   scope,
		Entries: Rank(table.Standings, scope),
	}, nil
}

// TableAsOf returns the raw cached table (unranked) as of a date. The form
// service uses this for table-consistent form reads.
func (s *Service) TableAsOf(ctx context.Context, league string, season int, filter domain.TeamFilter, asOf time.Time) (*domain.Table, error) {
	return s.tableFor(ctx, league, season, filter, nil, &asOf)
}

// tableFor resolves the window, then returns the cached table for its
// identity, computing and persisting it on miss.
func (s *Service) tableFor(ctx context.Context, league string, season int, filter domain.TeamFilter, from, until *time.Time) (*domain.Table, error) {
	win, err := ResolveWindow(ctx, s.matches, league, season, filter, from, until, s.startMonth, s.now())
	if err != nil {
		return nil, err
	}

	tableID := idhash.ComputeTableID(league, filter, win.From, win.Until)

	table, err := s.tables.GetByID(ctx, tableID)
	switch {
	case err == nil:
		if s.metrics != nil {
			s.metrics.TableCacheHits.Inc()
		}
		return table, nil
	case errors.Is(err, storage.ErrNotFound):
		if s.metrics != nil {
			s.metrics.TableCacheMisses.Inc()
		}
	default:
		return nil, fmt.Errorf("table cache lookup %s: %w", tableID, err)
	}

	table, err = s.compute(ctx, tableID, league, season, filter, win)
	if err != nil {
		return nil, err
	}

	if err := s.tables.Insert(ctx, table); err != nil {
		if !errors.Is(err, storage.ErrDuplicateKey) {
			return nil, fmt.Errorf("persist table %s: %w", tableID, err)
		}
		// A concurrent identical request won the race; both computed the
		// same content, so the losing write is a no-op.
	} else if s.metrics != nil {
		s.metrics.TablesComputed.Inc()
	}

	return table, nil
}

// compute aggregates the matches inside a resolved window into a new table.
func (s *Service) compute(ctx context.Context, tableID, league string, season int, filter domain.TeamFilter, win Window) (*domain.Table, error) {
	matches, err := s.matches.GetByRange(ctx, league, season, filter, win.From, win.Until)
	if err != nil {
		return nil, fmt.Errorf("load matches for table %s: %w", tableID, err)
	}

	roster, err := s.rosters.GetRoster(ctx, league, season)
	if err != nil {
		return nil, fmt.Errorf("load roster %s/%d: %w", league, season, err)
	}

	start := time.Now()
	entries, err := Aggregate(matches, roster, filter)
	if err != nil {
		if errors.Is(err, ErrNoTable) && s.metrics != nil {
			s.metrics.NoTableResults.Inc()
		}
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.AggregationDuration.Observe(time.Since(start).Seconds())
	}

	s.logger.Printf("computed table %s: league=%s season=%d window=%s..%s matches=%d",
		tableID, league, season,
		win.From.Format("2006-01-02"), win.Until.Format("2006-01-02"), len(matches))

	return &domain.Table{
		TableID:   tableID,
		League:    league,
		Season:    season,
		Filter:    filter,
		FromDate:  win.From,
		UntilDate: win.Until,
		CreatedAt: s.now().UTC(),
		Standings: entries,
	}, nil
}

// Fixtures returns the ordered match list for a league/season under the
// filter. Month (1-12) restricts to one calendar month of the season; zero
// means the whole season.
func (s *Service) Fixtures(ctx context.Context, league string, season int, filter domain.TeamFilter, month time.Month) ([]*domain.Match, error) {
	from := domain.SeasonStart(season, s.startMonth)
	until := from.AddDate(1, 0, -1)

	if month != 0 {
		year := season
		if month < s.startMonth {
			year = season + 1
		}
		from = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		until = from.AddDate(0, 1, -1)
	}

	return s.matches.GetByRange(ctx, league, season, filter, from, until)
}

// MatchDates exposes the distinct filtered match dates, ascending. The
// position series samples at exactly these dates.
func (s *Service) MatchDates(ctx context.Context, league string, season int, filter domain.TeamFilter) ([]time.Time, error) {
	return s.matches.MatchDates(ctx, league, season, filter)
}
