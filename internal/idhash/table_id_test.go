package idhash

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"league-table-lab/internal/domain"
)

func TestComputeTableID_Deterministic(t *testing.T) {
	from := time.Date(2018, time.August, 11, 0, 0, 0, 0, time.UTC)
	until := time.Date(2018, time.December, 26, 0, 0, 0, 0, time.UTC)

	id1 := ComputeTableID("premier-league", nil, from, until)
	id2 := ComputeTableID("premier-league", nil, from, until)
	assert.Equal(t, id1, id2)
	assert.NotEmpty(t, id1)
}

func TestComputeTableID_FilterOrderIrrelevant(t *testing.T) {
	from := time.Date(2018, time.August, 11, 0, 0, 0, 0, time.UTC)
	until := time.Date(2018, time.December, 26, 0, 0, 0, 0, time.UTC)

	a := ComputeTableID("premier-league", domain.NewTeamFilter("liverpool", "arsenal"), from, until)
	b := ComputeTableID("premier-league", domain.NewTeamFilter("arsenal", "liverpool"), from, until)
	assert.Equal(t, a, b)
}

func TestComputeTableID_WindowMatters(t *testing.T) {
	from := time.Date(2018, time.August, 11, 0, 0, 0, 0, time.UTC)
	until := time.Date(2018, time.December, 26, 0, 0, 0, 0, time.UTC)

	base := ComputeTableID("premier-league", nil, from, until)
	assert.NotEqual(t, base, ComputeTableID("premier-league", nil, from.AddDate(0, 0, 7), until))
	assert.NotEqual(t, base, ComputeTableID("premier-league", nil, from, until.AddDate(0, 0, 7)))
	assert.NotEqual(t, base, ComputeTableID("championship", nil, from, until))
	assert.NotEqual(t, base, ComputeTableID("premier-league", domain.NewTeamFilter("arsenal"), from, until))
}

func TestComputeTableID_SwappedBoundsDiffer(t *testing.T) {
	// The tuple is ordered (until, from); swapping the dates must not
	// collide with the original identity.
	from := time.Date(2018, time.August, 11, 0, 0, 0, 0, time.UTC)
	until := time.Date(2018, time.December, 26, 0, 0, 0, 0, time.UTC)

	assert.NotEqual(t,
		ComputeTableID("premier-league", nil, from, until),
		ComputeTableID("premier-league", nil, until, from))
}
