package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutcomeFor(t *testing.T) {
	assert.Equal(t, OutcomeWin, OutcomeFor(2, 1))
	assert.Equal(t, OutcomeLoss, OutcomeFor(0, 3))
	assert.Equal(t, OutcomeDraw, OutcomeFor(1, 1))
}

func TestNormalizeScope(t *testing.T) {
	assert.Equal(t, ScopeHome, NormalizeScope("home"))
	assert.Equal(t, ScopeAway, NormalizeScope("away"))
	assert.Equal(t, ScopeTotals, NormalizeScope("totals"))
	// Unknown scopes degrade to totals rather than erroring.
	assert.Equal(t, ScopeTotals, NormalizeScope("bogus"))
	assert.Equal(t, ScopeTotals, NormalizeScope(""))
}

func TestStatBlock_RecordResult(t *testing.T) {
	var b StatBlock

	b.RecordResult(2, 0) // win
	b.RecordResult(1, 1) // draw
	b.RecordResult(0, 3) // loss

	assert.Equal(t, 3, b.Played)
	assert.Equal(t, 1, b.Won)
	assert.Equal(t, 1, b.Drawn)
	assert.Equal(t, 1, b.Lost)
	assert.Equal(t, 3, b.GoalsFor)
	assert.Equal(t, 4, b.GoalsAgainst)
	assert.Equal(t, -1, b.GoalDifference)
	assert.Equal(t, 4, b.Points)
	assert.Equal(t, []string{"W", "D", "L"}, b.RecentForm)
}

func TestStatBlock_FormWindowCapped(t *testing.T) {
	var b StatBlock
	for i := 0; i < 7; i++ {
		b.RecordResult(1, 0)
	}
	b.RecordResult(0, 1)

	assert.Len(t, b.RecentForm, FormWindow)
	assert.Equal(t, []string{"W", "W", "W", "W", "L"}, b.RecentForm)
}

func TestStatBlock_FormNotPadded(t *testing.T) {
	// Three matches yield a three-symbol sequence, not one padded to five.
	var b StatBlock
	b.RecordResult(1, 0)
	b.RecordResult(0, 0)
	b.RecordResult(0, 2)

	assert.Equal(t, []string{"W", "D", "L"}, b.RecentForm)
}

func TestStandingsEntry_RecomputeTotals(t *testing.T) {
	e := NewStandingsEntry("Arsenal", "arsenal")
	e.Home.RecordResult(3, 1)
	e.Away.RecordResult(0, 0)
	e.Totals.AppendForm(OutcomeWin)
	e.Totals.AppendForm(OutcomeDraw)

	e.RecomputeTotals()

	assert.Equal(t, 2, e.Totals.Played)
	assert.Equal(t, 1, e.Totals.Won)
	assert.Equal(t, 1, e.Totals.Drawn)
	assert.Equal(t, 0, e.Totals.Lost)
	assert.Equal(t, 3, e.Totals.GoalsFor)
	assert.Equal(t, 1, e.Totals.GoalsAgainst)
	assert.Equal(t, 2, e.Totals.GoalDifference)
	assert.Equal(t, 4, e.Totals.Points)
	// The totals form queue survives the recompute.
	assert.Equal(t, []string{"W", "D"}, e.Totals.RecentForm)
}

func TestStandingsEntry_Block(t *testing.T) {
	e := NewStandingsEntry("Arsenal", "arsenal")
	e.Home.Played = 1
	e.Away.Played = 2
	e.Totals.Played = 3

	assert.Equal(t, 1, e.Block(ScopeHome).Played)
	assert.Equal(t, 2, e.Block(ScopeAway).Played)
	assert.Equal(t, 3, e.Block(ScopeTotals).Played)
}
