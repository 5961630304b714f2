package domain

import "strings"

// Team is one entry of a season roster.
type Team struct {
	Name string
	Slug string
}

// Slugify normalizes a team name to its slug form: lowercase, with runs of
// non-alphanumeric characters collapsed to single hyphens.
// "West Ham United" becomes "west-ham-united".
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	pendingHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if isAlnum {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		} else {
			pendingHyphen = true
		}
	}
	return b.String()
}
