// Package api exposes the HTTP surface: tables, fixtures, form, graph
// series, and result ingestion.
package api

import (
	"log"

	"github.com/gin-gonic/gin"

	"league-table-lab/internal/config"
	"league-table-lab/internal/form"
	"league-table-lab/internal/ingestion"
	"league-table-lab/internal/observability"
	"league-table-lab/internal/series"
	"league-table-lab/internal/standings"
)

// Server wires the domain services to HTTP handlers.
type Server struct {
	cfg      *config.Config
	tables   *standings.Service
	form     *form.Service
	series   *series.Builder
	ingester *ingestion.Ingester
	metrics  *observability.Metrics
	logger   *log.Logger
}

// ServerOptions contains configuration for creating a Server.
type ServerOptions struct {
	Config   *config.Config
	Tables   *standings.Service
	Form     *form.Service
	Series   *series.Builder
	Ingester *ingestion.Ingester
	Metrics  *observability.Metrics // optional
	Logger   *log.Logger            // optional
}

// NewServer creates a new API server.
func NewServer(opts ServerOptions) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		cfg:      opts.Config,
		tables:   opts.Tables,
		form:     opts.Form,
		series:   opts.Series,
		ingester: opts.Ingester,
		metrics:  opts.Metrics,
		logger:   logger,
	}
}

// Router builds the gin engine with all routes and middleware attached.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), s.measure())

	api := r.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.GET("/leagues", s.handleLeagues)
		api.POST("/results", s.handleIngest)

		api.GET("/:league/:season/table", s.handleTable)
		api.GET("/:league/:season/fixtures", s.handleFixtures)
		api.GET("/:league/:season/form/:team", s.handleForm)
		api.GET("/:league/:season/graph/positions", s.handlePositionGraph)
		api.GET("/:league/:season/graph/points", s.handlePointsGraph)
		api.GET("/:league/:season/series/:kind/:team", s.handleTeamSeries)
	}

	return r
}
