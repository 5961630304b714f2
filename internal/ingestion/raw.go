// Package ingestion consumes raw match records from the scraping
// collaborator and writes them into match storage, deduplicating on the
// content-derived match identity.
package ingestion

import (
	"fmt"
	"strings"
	"time"

	"league-table-lab/internal/domain"
	"league-table-lab/internal/idhash"
)

// RawResult is one scraped match record, as delivered by the scraping
// collaborator. Dates arrive loosely formatted; Season may be omitted and is
// then derived from the date.
type RawResult struct {
	League    string `json:"league"`
	Season    int    `json:"season,omitempty"`
	Date      string `json:"date"`
	HomeTeam  string `json:"homeTeam"`
	HomeScore int    `json:"homeScore"`
	AwayTeam  string `json:"awayTeam"`
	AwayScore int    `json:"awayScore"`
}

// rawDateLayouts are tried in order when parsing scraped dates.
var rawDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2 January 2006",
	"Monday 2 January 2006",
}

// parseRawDate parses a loosely formatted scraped date into UTC midnight.
func parseRawDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	cleaned := stripOrdinals(s)
	for _, layout := range rawDateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return domain.DayOf(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// stripOrdinals removes English day-ordinal suffixes: "11th August" becomes
// "11 August".
func stripOrdinals(s string) string {
	for _, suf := range []string{"st ", "nd ", "rd ", "th "} {
		for {
			i := indexOfDigitSuffix(s, suf)
			if i < 0 {
				break
			}
			s = s[:i] + " " + s[i+len(suf):]
		}
	}
	return s
}

// indexOfDigitSuffix finds an ordinal suffix directly following a digit.
func indexOfDigitSuffix(s, suf string) int {
	from := 0
	for {
		i := strings.Index(s[from:], suf)
		if i < 0 {
			return -1
		}
		i += from
		if i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
			return i
		}
		from = i + len(suf)
	}
}

// ToMatch validates a raw record and converts it to an immutable Match with
// its identity hash. startMonth feeds season derivation when the record
// carries no season.
func (r RawResult) ToMatch(startMonth time.Month) (*domain.Match, error) {
	if strings.TrimSpace(r.League) == "" {
		return nil, fmt.Errorf("missing league")
	}
	if strings.TrimSpace(r.HomeTeam) == "" || strings.TrimSpace(r.AwayTeam) == "" {
		return nil, fmt.Errorf("missing team name")
	}
	if r.HomeScore < 0 || r.AwayScore < 0 {
		return nil, fmt.Errorf("negative score")
	}

	date, err := parseRawDate(r.Date)
	if err != nil {
		return nil, err
	}

	season := r.Season
	if season == 0 {
		season = domain.SeasonOf(date, startMonth)
	}

	homeSlug := domain.Slugify(r.HomeTeam)
	awaySlug := domain.Slugify(r.AwayTeam)

	return &domain.Match{
		MatchID:   idhash.ComputeMatchID(homeSlug, awaySlug, season, r.League, date),
		League:    r.League,
		Season:    season,
		Date:      date,
		HomeTeam:  strings.TrimSpace(r.HomeTeam),
		HomeSlug:  homeSlug,
		AwayTeam:  strings.TrimSpace(r.AwayTeam),
		AwaySlug:  awaySlug,
		HomeScore: r.HomeScore,
		AwayScore: r.AwayScore,
		CreatedAt: time.Now().UTC(),
	}, nil
}
