package domain

import "time"

// Series kinds for charting samples.
const (
	SeriesKindPosition = "position"
	SeriesKindPoints   = "points"
)

// SeriesPoint is one charting sample: a team's position or points total as of
// a sample date, under a league and team filter.
// Corresponds to series_points table in ClickHouse.
type SeriesPoint struct {
	League     string    // league slug
	Season     int       // season year
	FilterKey  string    // canonical TeamFilter key ("" = whole league)
	Kind       string    // SeriesKindPosition or SeriesKindPoints
	TeamSlug   string    // team the sample belongs to
	SampleDate time.Time // sample date, UTC midnight
	Value      int       // position (1-based) or points total
}
