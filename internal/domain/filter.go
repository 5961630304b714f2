package domain

import (
	"sort"
	"strings"
)

// TeamFilter restricts aggregation and ranking to a set of team slugs.
// The zero value (empty filter) means "all teams in the league/season".
// Slugs are kept sorted so the filter has a stable identity.
type TeamFilter []string

// NewTeamFilter builds a filter from slugs, sorted and deduplicated.
func NewTeamFilter(slugs ...string) TeamFilter {
	seen := make(map[string]struct{}, len(slugs))
	out := make(TeamFilter, 0, len(slugs))
	for _, s := range slugs {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Empty reports whether the filter admits all teams.
func (f TeamFilter) Empty() bool { return len(f) == 0 }

// Contains reports whether slug passes the filter. An empty filter passes
// everything.
func (f TeamFilter) Contains(slug string) bool {
	if f.Empty() {
		return true
	}
	i := sort.SearchStrings(f, slug)
	return i < len(f) && f[i] == slug
}

// Admits reports whether a match counts under the filter: both sides must
// pass so that every counted match contributes symmetric home/away stats.
func (f TeamFilter) Admits(m *Match) bool {
	return f.Contains(m.HomeSlug) && f.Contains(m.AwaySlug)
}

// Key returns the canonical comma-joined form used in table identities.
func (f TeamFilter) Key() string { return strings.Join(f, ",") }
