package standings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"league-table-lab/internal/domain"
)

func entry(name string, points, gd, gf int) *domain.StandingsEntry {
	e := domain.NewStandingsEntry(name, domain.Slugify(name))
	e.Totals.Points = points
	e.Totals.GoalDifference = gd
	e.Totals.GoalsFor = gf
	return e
}

func TestRank_PointsDominate(t *testing.T) {
	standings := map[string]*domain.StandingsEntry{
		"arsenal":   entry("Arsenal", 4, 0, 4),
		"liverpool": entry("Liverpool", 3, 3, 5),
	}

	ranked := Rank(standings, domain.ScopeTotals)

	require.Len(t, ranked, 2)
	// More points beats better goal difference.
	assert.Equal(t, "arsenal", ranked[0].TeamSlug)
	assert.Equal(t, 1, ranked[0].Position)
	assert.Equal(t, "liverpool", ranked[1].TeamSlug)
	assert.Equal(t, 2, ranked[1].Position)
}

func TestRank_TieBreakOrder(t *testing.T) {
	standings := map[string]*domain.StandingsEntry{
		"a": entry("Alpha", 10, 5, 12),
		"b": entry("Bravo", 10, 5, 15),
		"c": entry("Charlie", 10, 8, 9),
		"d": entry("Delta", 10, 5, 12),
	}

	ranked := Rank(standings, domain.ScopeTotals)

	// Equal points: GD decides first, then GF, then name ascending.
	assert.Equal(t, "Charlie", ranked[0].TeamName)
	assert.Equal(t, "Bravo", ranked[1].TeamName)
	assert.Equal(t, "Alpha", ranked[2].TeamName)
	assert.Equal(t, "Delta", ranked[3].TeamName)

	for i, e := range ranked {
		assert.Equal(t, i+1, e.Position)
	}
}

func TestRank_ScopeSelectsBlock(t *testing.T) {
	a := domain.NewStandingsEntry("Arsenal", "arsenal")
	a.Home.Points = 6
	a.Away.Points = 0
	b := domain.NewStandingsEntry("Chelsea", "chelsea")
	b.Home.Points = 0
	b.Away.Points = 6

	standings := map[string]*domain.StandingsEntry{"arsenal": a, "chelsea": b}

	home := Rank(standings, domain.ScopeHome)
	assert.Equal(t, "arsenal", home[0].TeamSlug)

	away := Rank(standings, domain.ScopeAway)
	assert.Equal(t, "chelsea", away[0].TeamSlug)
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	standings := map[string]*domain.StandingsEntry{
		"arsenal":   entry("Arsenal", 4, 0, 4),
		"liverpool": entry("Liverpool", 3, 3, 5),
	}

	_ = Rank(standings, domain.ScopeTotals)

	// Positions on the cached entries stay untouched.
	assert.Equal(t, 0, standings["arsenal"].Position)
	assert.Equal(t, 0, standings["liverpool"].Position)
}
