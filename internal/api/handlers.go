package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"league-table-lab/internal/domain"
	"league-table-lab/internal/ingestion"
	"league-table-lab/internal/series"
	"league-table-lab/internal/standings"
)

const dateLayout = "2006-01-02"

// ----- Response shapes -----

type tableResponse struct {
	TableID   string         `json:"tableId"`
	League    string         `json:"league"`
	Season    int            `json:"season"`
	Scope     string         `json:"scope"`
	Filter    []string       `json:"filter,omitempty"`
	FromDate  string         `json:"fromDate"`
	UntilDate string         `json:"untilDate"`
	Standings []standingsRow `json:"standings"`
}

type standingsRow struct {
	Position int              `json:"position"`
	TeamName string           `json:"teamName"`
	TeamSlug string           `json:"teamSlug"`
	Stats    domain.StatBlock `json:"stats"`
}

type fixtureRow struct {
	MatchID   string `json:"matchId"`
	Date      string `json:"date"`
	HomeTeam  string `json:"homeTeam"`
	HomeScore int    `json:"homeScore"`
	AwayTeam  string `json:"awayTeam"`
	AwayScore int    `json:"awayScore"`
}

// ----- Parameter helpers -----

func (s *Server) parseSeason(c *gin.Context) (int, bool) {
	season, err := strconv.Atoi(c.Param("season"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "season must be a year"})
		return 0, false
	}
	return season, true
}

// parseFilter builds the team filter from ?teams=a,b,c or a named preset
// (?preset=top). An absent filter admits every team.
func (s *Server) parseFilter(c *gin.Context, league string) domain.TeamFilter {
	if preset := c.Query("preset"); preset == "top" {
		return domain.NewTeamFilter(s.cfg.TopTeams[league]...)
	}
	if teams := c.Query("teams"); teams != "" {
		return domain.NewTeamFilter(strings.Split(teams, ",")...)
	}
	return nil
}

// parseDateQuery parses an optional YYYY-MM-DD query parameter. The second
// return is false on a malformed value.
func parseDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be YYYY-MM-DD"})
		return nil, false
	}
	t = domain.DayOf(t)
	return &t, true
}

// ----- Handlers -----

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleLeagues(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"leagues":          s.cfg.Leagues,
		"seasonStartMonth": s.cfg.SeasonStartMonth,
	})
}

// handleTable serves the ranked standings for a league season. Optional
// query parameters: scope (home|away|totals), teams, preset, from, until.
func (s *Server) handleTable(c *gin.Context) {
	league := c.Param("league")
	season, ok := s.parseSeason(c)
	if !ok {
		return
	}
	from, ok := parseDateQuery(c, "from")
	if !ok {
		return
	}
	until, ok := parseDateQuery(c, "until")
	if !ok {
		return
	}

	scope := domain.NormalizeScope(c.Query("scope"))
	filter := s.parseFilter(c, league)

	ranked, err := s.tables.GetTable(c.Request.Context(), league, season, scope, filter, from, until)
	if err != nil {
		if errors.Is(err, standings.ErrNoTable) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no matches in window"})
			return
		}
		s.logger.Printf("table request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "table lookup failed"})
		return
	}

	rows := make([]standingsRow, 0, len(ranked.Entries))
	for _, e := range ranked.Entries {
		rows = append(rows, standingsRow{
			Position: e.Position,
			TeamName: e.TeamName,
			TeamSlug: e.TeamSlug,
			Stats:    *e.Block(scope),
		})
	}

	c.JSON(http.StatusOK, tableResponse{
		TableID:   ranked.Table.TableID,
		League:    ranked.Table.League,
		Season:    ranked.Table.Season,
		Scope:     string(scope),
		Filter:    ranked.Table.Filter,
		FromDate:  ranked.Table.FromDate.Format(dateLayout),
		UntilDate: ranked.Table.UntilDate.Format(dateLayout),
		Standings: rows,
	})
}

// handleFixtures lists played fixtures for a season, optionally one calendar
// month (?month=1..12).
func (s *Server) handleFixtures(c *gin.Context) {
	league := c.Param("league")
	season, ok := s.parseSeason(c)
	if !ok {
		return
	}

	var month time.Month
	if raw := c.Query("month"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "month must be 1-12"})
			return
		}
		month = time.Month(n)
	}

	matches, err := s.tables.Fixtures(c.Request.Context(), league, season, s.parseFilter(c, league), month)
	if err != nil {
		s.logger.Printf("fixtures request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fixtures lookup failed"})
		return
	}

	rows := make([]fixtureRow, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, fixtureRow{
			MatchID:   m.MatchID,
			Date:      m.Date.Format(dateLayout),
			HomeTeam:  m.HomeTeam,
			HomeScore: m.HomeScore,
			AwayTeam:  m.AwayTeam,
			AwayScore: m.AwayScore,
		})
	}
	c.JSON(http.StatusOK, gin.H{"fixtures": rows})
}

// handleForm serves a team's recent outcome sequence. ?consistent=true
// derives it from the cached table as of the date instead of match records.
func (s *Server) handleForm(c *gin.Context) {
	league := c.Param("league")
	teamSlug := c.Param("team")
	season, ok := s.parseSeason(c)
	if !ok {
		return
	}
	asOfPtr, ok := parseDateQuery(c, "asof")
	if !ok {
		return
	}
	asOf := domain.DayOf(time.Now())
	if asOfPtr != nil {
		asOf = *asOfPtr
	}

	var (
		outcomes []string
		err      error
	)
	if c.Query("consistent") == "true" {
		outcomes, err = s.form.FormAsOf(c.Request.Context(), league, season, teamSlug, asOf)
	} else {
		window := s.cfg.FormWindow
		if raw := c.Query("window"); raw != "" {
			if window, err = strconv.Atoi(raw); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "window must be an integer"})
				return
			}
		}
		scope := domain.NormalizeScope(c.Query("scope"))
		outcomes, err = s.form.RecentForm(c.Request.Context(), league, teamSlug, scope, asOf, window)
	}
	if err != nil {
		s.logger.Printf("form request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "form lookup failed"})
		return
	}
	if outcomes == nil {
		outcomes = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"team": teamSlug,
		"asOf": asOf.Format(dateLayout),
		"form": outcomes,
	})
}

func (s *Server) handlePositionGraph(c *gin.Context) {
	s.handleGraph(c, s.series.PositionSeries)
}

func (s *Server) handlePointsGraph(c *gin.Context) {
	s.handleGraph(c, s.series.PointsSeries)
}

func (s *Server) handleGraph(c *gin.Context, build func(ctx context.Context, league string, season int, filter domain.TeamFilter) (*series.Matrix, error)) {
	league := c.Param("league")
	season, ok := s.parseSeason(c)
	if !ok {
		return
	}

	m, err := build(c.Request.Context(), league, season, s.parseFilter(c, league))
	if err != nil {
		s.logger.Printf("graph request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "series build failed"})
		return
	}
	c.JSON(http.StatusOK, m)
}

// handleTeamSeries reads persisted samples for one team from the series sink.
func (s *Server) handleTeamSeries(c *gin.Context) {
	league := c.Param("league")
	kind := c.Param("kind")
	teamSlug := c.Param("team")
	season, ok := s.parseSeason(c)
	if !ok {
		return
	}
	if kind != domain.SeriesKindPosition && kind != domain.SeriesKindPoints {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be position or points"})
		return
	}

	points, err := s.series.TeamSeries(c.Request.Context(), league, season, s.parseFilter(c, league), kind, teamSlug)
	if err != nil {
		s.logger.Printf("series request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "series lookup failed"})
		return
	}

	type sample struct {
		Date  string `json:"date"`
		Value int    `json:"value"`
	}
	samples := make([]sample, 0, len(points))
	for _, p := range points {
		samples = append(samples, sample{Date: p.SampleDate.Format(dateLayout), Value: p.Value})
	}
	c.JSON(http.StatusOK, gin.H{"team": teamSlug, "kind": kind, "samples": samples})
}

// handleIngest accepts a JSON array of raw results and stores them best
// effort, returning the batch report.
func (s *Server) handleIngest(c *gin.Context) {
	var records []ingestion.RawResult
	if err := c.BindJSON(&records); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be a JSON array of results"})
		return
	}

	report, err := s.ingester.IngestRecords(c.Request.Context(), records)
	body := gin.H{
		"received":   report.Received,
		"stored":     report.Stored,
		"duplicates": report.Duplicates,
		"invalid":    report.Invalid,
	}
	if err != nil {
		s.logger.Printf("ingest request failed: %v", err)
		body["error"] = "storage unavailable"
		c.JSON(http.StatusInternalServerError, body)
		return
	}
	c.JSON(http.StatusOK, body)
}
