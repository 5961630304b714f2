package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"league-table-lab/internal/domain"
	"league-table-lab/internal/observability"
	"league-table-lab/internal/storage"
)

// Report summarizes one ingestion batch. Duplicates and invalid records are
// counted, never surfaced as batch failure, and stored records are never
// rolled back.
type Report struct {
	Received   int
	Stored     int
	Duplicates int
	Invalid    int
}

// Ingester writes raw scraped results into match storage and keeps the
// season roster in step with the teams it sees.
type Ingester struct {
	matches    storage.MatchStore
	rosters    storage.RosterStore
	startMonth time.Month
	metrics    *observability.Metrics
	logger     *log.Logger
}

// IngesterOptions contains configuration for creating an Ingester.
type IngesterOptions struct {
	Matches          storage.MatchStore
	Rosters          storage.RosterStore
	SeasonStartMonth time.Month             // default August
	Metrics          *observability.Metrics // optional
	Logger           *log.Logger            // optional
}

// NewIngester creates a new ingester.
func NewIngester(opts IngesterOptions) *Ingester {
	startMonth := opts.SeasonStartMonth
	if startMonth == 0 {
		startMonth = domain.DefaultSeasonStartMonth
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Ingester{
		matches:    opts.Matches,
		rosters:    opts.Rosters,
		startMonth: startMonth,
		metrics:    opts.Metrics,
		logger:     logger,
	}
}

// IngestRecords stores a batch of raw results, best effort. Malformed and
// duplicate records are counted and skipped; only storage unavailability
// aborts the batch, returning the partial report alongside the error.
func (i *Ingester) IngestRecords(ctx context.Context, records []RawResult) (Report, error) {
	var report Report

	for _, r := range records {
		report.Received++

		if err := ctx.Err(); err != nil {
			return report, err
		}

		if err := i.ingestOne(ctx, r, &report); err != nil {
			return report, err
		}
	}

	i.logger.Printf("ingest batch done: received=%d stored=%d duplicates=%d invalid=%d",
		report.Received, report.Stored, report.Duplicates, report.Invalid)
	return report, nil
}

// RunStream consumes a live result feed until the source closes or the
// context is cancelled.
func (i *Ingester) RunStream(ctx context.Context, results <-chan RawResult) (Report, error) {
	var report Report

	for {
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		case r, ok := <-results:
			if !ok {
				i.logger.Printf("ingest stream closed: received=%d stored=%d duplicates=%d invalid=%d",
					report.Received, report.Stored, report.Duplicates, report.Invalid)
				return report, nil
			}
			report.Received++
			if err := i.ingestOne(ctx, r, &report); err != nil {
				return report, err
			}
		}
	}
}

// ingestOne converts, stores, and counts a single record.
func (i *Ingester) ingestOne(ctx context.Context, r RawResult, report *Report) error {
	m, err := r.ToMatch(i.startMonth)
	if err != nil {
		report.Invalid++
		if i.metrics != nil {
			i.metrics.ResultsInvalid.Inc()
		}
		i.logger.Printf("skipping invalid record %s vs %s: %v", r.HomeTeam, r.AwayTeam, err)
		return nil
	}

	switch err := i.matches.Insert(ctx, m); {
	case err == nil:
		report.Stored++
		if i.metrics != nil {
			i.metrics.ResultsIngested.Inc()
		}
	case errors.Is(err, storage.ErrDuplicateKey):
		// Re-ingesting the same fixture is idempotent by design.
		report.Duplicates++
		if i.metrics != nil {
			i.metrics.ResultsDuplicate.Inc()
		}
		return nil
	default:
		return fmt.Errorf("insert match %s: %w", m.MatchID, err)
	}

	for _, team := range []domain.Team{
		{Name: m.HomeTeam, Slug: m.HomeSlug},
		{Name: m.AwayTeam, Slug: m.AwaySlug},
	} {
		if err := i.rosters.Add(ctx, m.League, m.Season, team); err != nil {
			return fmt.Errorf("register team %s: %w", team.Slug, err)
		}
	}
	return nil
}
