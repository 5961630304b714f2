// Package series builds position-over-time and points-over-time views by
// repeated re-aggregation through the table cache.
package series

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"league-table-lab/internal/domain"
	"league-table-lab/internal/observability"
	"league-table-lab/internal/standings"
	"league-table-lab/internal/storage"
)

// defaultPointsTick is the sampling interval of the points series when the
// builder is not configured with one.
const defaultPointsTick = 7 * 24 * time.Hour

// Matrix is a charting-ready series: a header row of team slugs, then one
// row of values per sample date, columns aligned with the header. A zero
// value means the team had not appeared in the table yet.
type Matrix struct {
	Header []string    `json:"header"`
	Dates  []time.Time `json:"dates"`
	Rows   [][]int     `json:"rows"`
}

// Builder derives series by repeated table-cache requests. Every sample a
// builder takes warms the cache for that date, so rebuilding a series is
// cheap after the first pass. Samples are mirrored into the series store
// when one is configured.
type Builder struct {
	tables  *standings.Service
	store   storage.SeriesStore // optional sink
	metrics *observability.Metrics
	logger  *log.Logger
	tick    time.Duration
}

// BuilderOptions contains configuration for creating a Builder.
type BuilderOptions struct {
	Tables  *standings.Service
	Store   storage.SeriesStore    // optional
	Metrics *observability.Metrics // optional
	Logger  *log.Logger            // optional
	Tick    time.Duration          // points sampling interval, default 7 days
}

// NewBuilder creates a new series builder.
func NewBuilder(opts BuilderOptions) *Builder {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	tick := opts.Tick
	if tick <= 0 {
		tick = defaultPointsTick
	}
	return &Builder{
		tables:  opts.Tables,
		store:   opts.Store,
		metrics: opts.Metrics,
		logger:  logger,
		tick:    tick,
	}
}

// PositionSeries samples every distinct match date in the filtered result
// set, recording each team's totals position as of that date.
func (b *Builder) PositionSeries(ctx context.Context, league string, season int, filter domain.TeamFilter) (*Matrix, error) {
	dates, err := b.tables.MatchDates(ctx, league, season, filter)
	if err != nil {
		return nil, fmt.Errorf("position series dates: %w", err)
	}

	return b.build(ctx, league, season, filter, domain.SeriesKindPosition, dates, func(e *domain.StandingsEntry) int {
		return e.Position
	})
}

// PointsSeries samples at fixed ticks from the first match date of the
// season to the last, recording each team's totals points.
func (b *Builder) PointsSeries(ctx context.Context, league string, season int, filter domain.TeamFilter) (*Matrix, error) {
	dates, err := b.tables.MatchDates(ctx, league, season, filter)
	if err != nil {
		return nil, fmt.Errorf("points series dates: %w", err)
	}

	var ticks []time.Time
	if len(dates) > 0 {
		first, last := dates[0], dates[len(dates)-1]
		for t := first; !t.After(last); t = t.Add(b.tick) {
			ticks = append(ticks, t)
		}
	}

	return b.build(ctx, league, season, filter, domain.SeriesKindPoints, ticks, func(e *domain.StandingsEntry) int {
		return e.Totals.Points
	})
}

// build runs one table request per sample date and assembles the matrix.
func (b *Builder) build(ctx context.Context, league string, season int, filter domain.TeamFilter, kind string, dates []time.Time, value func(*domain.StandingsEntry) int) (*Matrix, error) {
	start := time.Now()

	matrix := &Matrix{}
	var points []*domain.SeriesPoint

	for _, date := range dates {
		sampleDate := date
		ranked, err := b.tables.GetTable(ctx, league, season, domain.ScopeTotals, filter, nil, &sampleDate)
		if err != nil {
			if errors.Is(err, standings.ErrNoTable) {
				continue
			}
			return nil, fmt.Errorf("%s series sample %s: %w", kind, date.Format("2006-01-02"), err)
		}

		if matrix.Header == nil {
			matrix.Header = headerFor(filter, ranked)
		}

		bySlug := make(map[string]*domain.StandingsEntry, len(ranked.Entries))
		for _, e := range ranked.Entries {
			bySlug[e.TeamSlug] = e
		}

		row := make([]int, len(matrix.Header))
		for i, slug := range matrix.Header {
			if e, ok := bySlug[slug]; ok {
				row[i] = value(e)
				points = append(points, &domain.SeriesPoint{
					League:     league,
					Season:     season,
					FilterKey:  filter.Key(),
					Kind:       kind,
					TeamSlug:   slug,
					SampleDate: date,
					Value:      value(e),
				})
			}
		}
		matrix.Dates = append(matrix.Dates, date)
		matrix.Rows = append(matrix.Rows, row)
	}

	if b.store != nil && len(points) > 0 {
		if err := b.store.InsertBulk(ctx, points); err != nil {
			// The matrix is still good; the sink is an optimization.
			b.logger.Printf("series sink insert failed: %v", err)
		}
	}

	if b.metrics != nil {
		b.metrics.SeriesBuildDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	}
	return matrix, nil
}

// headerFor fixes the column order: the filter's sorted slugs when a filter
// is present, otherwise every team in the first sampled table, sorted.
func headerFor(filter domain.TeamFilter, ranked *standings.RankedTable) []string {
	if !filter.Empty() {
		return append([]string(nil), filter...)
	}
	slugs := make([]string, 0, len(ranked.Entries))
	for _, e := range ranked.Entries {
		slugs = append(slugs, e.TeamSlug)
	}
	sort.Strings(slugs)
	return slugs
}

// TeamSeries reads previously persisted samples for one team from the series
// store, oldest first.
func (b *Builder) TeamSeries(ctx context.Context, league string, season int, filter domain.TeamFilter, kind, teamSlug string) ([]*domain.SeriesPoint, error) {
	if b.store == nil {
		return nil, nil
	}
	return b.store.GetByTeam(ctx, league, season, filter.Key(), kind, teamSlug)
}
