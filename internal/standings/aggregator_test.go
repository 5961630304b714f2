package standings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"league-table-lab/internal/domain"
)

func match(date time.Time, home string, hs int, away string, as int) *domain.Match {
	return &domain.Match{
		League:    "premier-league",
		Season:    2018,
		Date:      date,
		HomeTeam:  home,
		HomeSlug:  domain.Slugify(home),
		AwayTeam:  away,
		AwaySlug:  domain.Slugify(away),
		HomeScore: hs,
		AwayScore: as,
	}
}

func TestAggregate_NoMatches(t *testing.T) {
	_, err := Aggregate(nil, nil, nil)
	assert.ErrorIs(t, err, ErrNoTable)
}

func TestAggregate_SplitsHomeAwayTotals(t *testing.T) {
	matches := []*domain.Match{
		match(day(2018, time.August, 11), "Arsenal", 3, "Liverpool", 2),
		match(day(2018, time.August, 18), "Liverpool", 1, "Arsenal", 1),
	}

	standings, err := Aggregate(matches, nil, nil)
	require.NoError(t, err)

	arsenal := standings["arsenal"]
	require.NotNil(t, arsenal)
	assert.Equal(t, 1, arsenal.Home.Played)
	assert.Equal(t, 1, arsenal.Home.Won)
	assert.Equal(t, 1, arsenal.Away.Played)
	assert.Equal(t, 1, arsenal.Away.Drawn)
	assert.Equal(t, 2, arsenal.Totals.Played)
	assert.Equal(t, 4, arsenal.Totals.Points)
	assert.Equal(t, 4, arsenal.Totals.GoalsFor)
	assert.Equal(t, 3, arsenal.Totals.GoalsAgainst)
	assert.Equal(t, 1, arsenal.Totals.GoalDifference)
	assert.Equal(t, []string{"W", "D"}, arsenal.Totals.RecentForm)

	liverpool := standings["liverpool"]
	require.NotNil(t, liverpool)
	assert.Equal(t, 1, liverpool.Totals.Points)
	assert.Equal(t, []string{"L", "D"}, liverpool.Totals.RecentForm)
}

func TestAggregate_RosterSeedsUnplayedTeams(t *testing.T) {
	matches := []*domain.Match{
		match(day(2018, time.August, 11), "Arsenal", 2, "Chelsea", 0),
	}
	roster := []domain.Team{
		{Name: "Arsenal", Slug: "arsenal"},
		{Name: "Chelsea", Slug: "chelsea"},
		{Name: "West Ham United", Slug: "west-ham-united"},
	}

	standings, err := Aggregate(matches, roster, nil)
	require.NoError(t, err)

	require.Len(t, standings, 3)
	westHam := standings["west-ham-united"]
	require.NotNil(t, westHam)
	assert.Equal(t, 0, westHam.Totals.Played)
	assert.Equal(t, 0, westHam.Totals.Points)
	assert.Empty(t, westHam.Totals.RecentForm)
}

func TestAggregate_FilterLimitsRosterSeeding(t *testing.T) {
	matches := []*domain.Match{
		match(day(2018, time.August, 11), "Arsenal", 2, "Liverpool", 0),
	}
	roster := []domain.Team{
		{Name: "Arsenal", Slug: "arsenal"},
		{Name: "Liverpool", Slug: "liverpool"},
		{Name: "Chelsea", Slug: "chelsea"},
	}
	filter := domain.NewTeamFilter("arsenal", "liverpool")

	standings, err := Aggregate(matches, roster, filter)
	require.NoError(t, err)

	assert.Len(t, standings, 2)
	assert.Nil(t, standings["chelsea"])
}

func TestAggregate_TotalsFormInMatchOrder(t *testing.T) {
	// Arsenal: home win, away loss, home draw. The totals queue follows
	// match order across both scopes.
	matches := []*domain.Match{
		match(day(2018, time.August, 11), "Arsenal", 1, "Chelsea", 0),
		match(day(2018, time.August, 18), "Liverpool", 2, "Arsenal", 0),
		match(day(2018, time.August, 25), "Arsenal", 1, "West Ham", 1),
	}

	standings, err := Aggregate(matches, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"W", "L", "D"}, standings["arsenal"].Totals.RecentForm)
}
