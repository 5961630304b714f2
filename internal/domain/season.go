package domain

import "time"

// DefaultSeasonStartMonth is when a league year begins. A season identified
// by its starting calendar year runs from this month through the following
// year.
const DefaultSeasonStartMonth = time.August

// SeasonOf maps a calendar date to a season year: for months at or after the
// start month the season is the date's year, otherwise the previous year.
func SeasonOf(date time.Time, startMonth time.Month) int {
	if startMonth == 0 {
		startMonth = DefaultSeasonStartMonth
	}
	if date.Month() >= startMonth {
		return date.Year()
	}
	return date.Year() - 1
}

// SeasonStart returns the first day of the given season.
func SeasonStart(season int, startMonth time.Month) time.Time {
	if startMonth == 0 {
		startMonth = DefaultSeasonStartMonth
	}
	return time.Date(season, startMonth, 1, 0, 0, 0, 0, time.UTC)
}
