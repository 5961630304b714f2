package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTeamFilter_SortsAndDedupes(t *testing.T) {
	f := NewTeamFilter("liverpool", "arsenal", "liverpool", " chelsea ", "")
	assert.Equal(t, TeamFilter{"arsenal", "chelsea", "liverpool"}, f)
}

func TestTeamFilter_EmptyPassesEverything(t *testing.T) {
	var f TeamFilter
	assert.True(t, f.Empty())
	assert.True(t, f.Contains("anything"))
	assert.True(t, f.Admits(&Match{HomeSlug: "a", AwaySlug: "b"}))
	assert.Equal(t, "", f.Key())
}

func TestTeamFilter_Contains(t *testing.T) {
	f := NewTeamFilter("arsenal", "liverpool")
	assert.True(t, f.Contains("arsenal"))
	assert.False(t, f.Contains("chelsea"))
}

func TestTeamFilter_AdmitsRequiresBothSides(t *testing.T) {
	f := NewTeamFilter("arsenal", "liverpool")

	assert.True(t, f.Admits(&Match{HomeSlug: "arsenal", AwaySlug: "liverpool"}))
	// One side outside the filter does not count.
	assert.False(t, f.Admits(&Match{HomeSlug: "arsenal", AwaySlug: "chelsea"}))
	assert.False(t, f.Admits(&Match{HomeSlug: "chelsea", AwaySlug: "liverpool"}))
}

func TestTeamFilter_KeyIsOrderIndependent(t *testing.T) {
	a := NewTeamFilter("liverpool", "arsenal")
	b := NewTeamFilter("arsenal", "liverpool")
	assert.Equal(t, a.Key(), b.Key())
	assert.Equal(t, "arsenal,liverpool", a.Key())
}
