// Package main ingests scraped match results into storage, either from JSON
// dump files or from a live websocket feed.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"league-table-lab/internal/config"
	"league-table-lab/internal/ingestion"
	"league-table-lab/internal/observability"
	"league-table-lab/internal/storage"
	"league-table-lab/internal/storage/memory"
	"league-table-lab/internal/storage/migrations"
	pgstore "league-table-lab/internal/storage/postgres"
)

func main() {
	mode := flag.String("mode", "file", "Ingestion mode: file or stream")
	wsEndpoint := flag.String("ws-endpoint", "", "Websocket result feed endpoint (stream mode)")
	flag.Parse()

	logger := log.New(os.Stdout, "[ingest] ", log.LstdFlags|log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	metrics := observability.NewMetrics("")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)
		cancel()

		select {
		case sig := <-sigCh:
			logger.Printf("Received second signal %v, forcing immediate shutdown", sig)
			os.Exit(1)
		case <-time.After(30 * time.Second):
			logger.Println("Graceful shutdown timed out after 30s, forcing exit")
			os.Exit(1)
		}
	}()

	matches, rosters, cleanup, err := createStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to create stores: %v", err)
	}
	defer cleanup()

	ingester := ingestion.NewIngester(ingestion.IngesterOptions{
		Matches:          matches,
		Rosters:          rosters,
		SeasonStartMonth: time.Month(cfg.SeasonStartMonth),
		Metrics:          metrics,
		Logger:           logger,
	})

	switch *mode {
	case "file":
		err = runFiles(ctx, ingester, flag.Args())
	case "stream":
		err = runStream(ctx, ingester, *wsEndpoint, logger)
	default:
		logger.Fatalf("Unknown mode: %s", *mode)
	}

	if err != nil && err != context.Canceled {
		logger.Fatalf("Error: %v", err)
	}
	logger.Println("Done")
}

// runFiles ingests each JSON dump file given as a positional argument.
func runFiles(ctx context.Context, ingester *ingestion.Ingester, paths []string) error {
	if len(paths) == 0 {
		return fmt.Errorf("file mode needs at least one results file argument")
	}

	for _, path := range paths {
		records, err := ingestion.NewFileSource(path).Fetch(ctx)
		if err != nil {
			return err
		}
		if _, err := ingester.IngestRecords(ctx, records); err != nil {
			return fmt.Errorf("ingest %s: %w", path, err)
		}
	}
	return nil
}

// runStream consumes the live websocket feed until cancelled.
func runStream(ctx context.Context, ingester *ingestion.Ingester, endpoint string, logger *log.Logger) error {
	if endpoint == "" {
		return fmt.Errorf("--ws-endpoint is required for stream mode")
	}

	source := ingestion.NewWSResultSource(endpoint, logger)
	results, err := source.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribe to feed: %w", err)
	}

	_, err = ingester.RunStream(ctx, results)
	return err
}

// createStores builds match and roster storage per config.
func createStores(ctx context.Context, cfg *config.Config, logger *log.Logger) (storage.MatchStore, storage.RosterStore, func(), error) {
	if cfg.UseMemory {
		logger.Println("Using in-memory storage")
		return memory.NewMatchStore(), memory.NewRosterStore(), func() {}, nil
	}

	pool, err := pgstore.NewPool(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, nil, err
	}

	return pgstore.NewMatchStore(pool), pgstore.NewRosterStore(pool), func() { pool.Close() }, nil
}
