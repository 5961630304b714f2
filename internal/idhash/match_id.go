// Package idhash computes deterministic content-derived identities.
//
// Identities are hashed over an explicitly ordered tuple of typed fields with
// fixed formatting (dates always "2006-01-02"), so the same fixture always
// yields the same identity regardless of how the caller formatted its input.
package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// dateLayout is the only date representation that participates in hashing.
const dateLayout = "2006-01-02"

// ComputeMatchID computes a deterministic match identity using SHA-256.
// Formula: SHA256(home_slug|away_slug|season|league|date)
// Returns hex-encoded hash (64 characters).
func ComputeMatchID(homeSlug, awaySlug string, season int, league string, date time.Time) string {
	data := fmt.Sprintf("%s|%s|%d|%s|%s",
		homeSlug,
		awaySlug,
		season,
		league,
		date.UTC().Format(dateLayout),
	)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
