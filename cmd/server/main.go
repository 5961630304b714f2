// Package main runs the league table service: HTTP API, table cache, and
// Prometheus metrics in one process.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"league-table-lab/internal/api"
	"league-table-lab/internal/config"
	"league-table-lab/internal/form"
	"league-table-lab/internal/ingestion"
	"league-table-lab/internal/observability"
	"league-table-lab/internal/series"
	"league-table-lab/internal/standings"
	"league-table-lab/internal/storage"
	chstore "league-table-lab/internal/storage/clickhouse"
	"league-table-lab/internal/storage/memory"
	"league-table-lab/internal/storage/migrations"
	pgstore "league-table-lab/internal/storage/postgres"
)

// stores holds the storage implementations behind the services.
type stores struct {
	matches storage.MatchStore
	tables  storage.TableStore
	rosters storage.RosterStore
	series  storage.SeriesStore // nil when no series sink is configured
}

func main() {
	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	metrics := observability.NewMetrics("")

	// Metrics server
	if cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", observability.Handler())
			logger.Printf("Starting metrics server on %s", cfg.MetricsAddr)
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Printf("Metrics server error: %v", err)
			}
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, cleanup, err := createStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to create stores: %v", err)
	}
	defer cleanup()

	tableService := standings.NewService(standings.ServiceOptions{
		Matches:          st.matches,
		Tables:           st.tables,
		Rosters:          st.rosters,
		SeasonStartMonth: time.Month(cfg.SeasonStartMonth),
		Metrics:          metrics,
		Logger:           logger,
	})
	formService := form.NewService(st.matches, tableService)
	seriesBuilder := series.NewBuilder(series.BuilderOptions{
		Tables:  tableService,
		Store:   st.series,
		Metrics: metrics,
		Logger:  logger,
		Tick:    time.Duration(cfg.SeriesTickDays) * 24 * time.Hour,
	})
	ingester := ingestion.NewIngester(ingestion.IngesterOptions{
		Matches:          st.matches,
		Rosters:          st.rosters,
		SeasonStartMonth: time.Month(cfg.SeasonStartMonth),
		Metrics:          metrics,
		Logger:           logger,
	})

	server := api.NewServer(api.ServerOptions{
		Config:   cfg,
		Tables:   tableService,
		Form:     formService,
		Series:   seriesBuilder,
		Ingester: ingester,
		Metrics:  metrics,
		Logger:   logger,
	})

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: server.Router(),
	}

	// Handle shutdown signals with graceful timeout
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Printf("HTTP shutdown error: %v", err)
		}
		cancel()

		// Second signal forces immediate exit
		go func() {
			sig := <-sigCh
			logger.Printf("Received second signal %v, forcing immediate shutdown", sig)
			os.Exit(1)
		}()
	}()

	logger.Printf("Starting API server on %s", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("HTTP server error: %v", err)
	}

	logger.Println("Shutdown complete")
}

// createStores builds the storage layer: in-memory when configured, otherwise
// PostgreSQL (with migrations applied) plus an optional ClickHouse series
// sink.
func createStores(ctx context.Context, cfg *config.Config, logger *log.Logger) (*stores, func(), error) {
	if cfg.UseMemory {
		logger.Println("Using in-memory storage")
		return &stores{
			matches: memory.NewMatchStore(),
			tables:  memory.NewTableStore(),
			rosters: memory.NewRosterStore(),
			series:  memory.NewSeriesStore(),
		}, func() {}, nil
	}

	pool, err := pgstore.NewPool(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, nil, err
	}
	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, err
	}

	st := &stores{
		matches: pgstore.NewMatchStore(pool),
		tables:  pgstore.NewTableStore(pool),
		rosters: pgstore.NewRosterStore(pool),
	}

	var chConn *chstore.Conn
	if cfg.ClickhouseDSN != "" {
		chConn, err = migrations.RunClickhouseMigrations(ctx, cfg.ClickhouseDSN)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		st.series = chstore.NewSeriesStore(chConn)
	}

	cleanup := func() {
		if chConn != nil {
			chConn.Close()
		}
		pool.Close()
	}
	return st, cleanup, nil
}
