package idhash

import (
	"crypto/sha256"
	"time"

	"github.com/mr-tron/base58"

	"league-table-lab/internal/domain"
)

// ComputeTableID computes the cache identity of a standings table using
// SHA-256 over (league, sorted team filter, resolved until date, resolved
// from date). The hash is base58-encoded so table IDs stay compact in URLs
// and log lines.
//
// The dates must be the resolved canonical window, never the caller's raw
// request: window snapping is what keeps this identity stable across callers
// asking for the "same" range with different literal dates.
func ComputeTableID(league string, filter domain.TeamFilter, fromDate, untilDate time.Time) string {
	data := league + "|" + filter.Key() +
		"|" + untilDate.UTC().Format(dateLayout) +
		"|" + fromDate.UTC().Format(dateLayout)

	hash := sha256.Sum256([]byte(data))
	return base58.Encode(hash[:])
}
