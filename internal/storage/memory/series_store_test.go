package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"league-table-lab/internal/domain"
)

func TestSeriesStore_InsertBulkAndGetByTeam(t *testing.T) {
	store := NewSeriesStore()
	ctx := context.Background()

	points := []*domain.SeriesPoint{
		{League: "premier-league", Season: 2018, Kind: domain.SeriesKindPosition, TeamSlug: "arsenal", SampleDate: day(2018, time.August, 18), Value: 3},
		{League: "premier-league", Season: 2018, Kind: domain.SeriesKindPosition, TeamSlug: "arsenal", SampleDate: day(2018, time.August, 11), Value: 5},
		{League: "premier-league", Season: 2018, Kind: domain.SeriesKindPoints, TeamSlug: "arsenal", SampleDate: day(2018, time.August, 11), Value: 0},
		{League: "premier-league", Season: 2018, Kind: domain.SeriesKindPosition, TeamSlug: "chelsea", SampleDate: day(2018, time.August, 11), Value: 1},
	}
	require.NoError(t, store.InsertBulk(ctx, points))

	got, err := store.GetByTeam(ctx, "premier-league", 2018, "", domain.SeriesKindPosition, "arsenal")
	require.NoError(t, err)

	require.Len(t, got, 2)
	// Sample date ascending.
	assert.Equal(t, 5, got[0].Value)
	assert.Equal(t, 3, got[1].Value)
}

func TestSeriesStore_FilterKeySeparatesSeries(t *testing.T) {
	store := NewSeriesStore()
	ctx := context.Background()

	require.NoError(t, store.InsertBulk(ctx, []*domain.SeriesPoint{
		{League: "premier-league", Season: 2018, FilterKey: "arsenal,liverpool", Kind: domain.SeriesKindPosition, TeamSlug: "arsenal", SampleDate: day(2018, time.August, 11), Value: 2},
	}))

	wholeLeague, err := store.GetByTeam(ctx, "premier-league", 2018, "", domain.SeriesKindPosition, "arsenal")
	require.NoError(t, err)
	assert.Empty(t, wholeLeague)

	filtered, err := store.GetByTeam(ctx, "premier-league", 2018, "arsenal,liverpool", domain.SeriesKindPosition, "arsenal")
	require.NoError(t, err)
	assert.Len(t, filtered, 1)
}

func TestSeriesStore_InsertBulkEmpty(t *testing.T) {
	store := NewSeriesStore()
	require.NoError(t, store.InsertBulk(context.Background(), nil))
}
