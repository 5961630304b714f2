package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"league-table-lab/internal/domain"
	"league-table-lab/internal/storage"
)

func testTable(id string) *domain.Table {
	e := domain.NewStandingsEntry("Arsenal", "arsenal")
	e.Home.RecordResult(2, 0)
	e.RecomputeTotals()
	return &domain.Table{
		TableID:   id,
		League:    "premier-league",
		Season:    2018,
		FromDate:  day(2018, time.August, 11),
		UntilDate: day(2018, time.December, 26),
		CreatedAt: time.Now().UTC(),
		Standings: map[string]*domain.StandingsEntry{"arsenal": e},
	}
}

func TestTableStore_InsertAndGetByID(t *testing.T) {
	store := NewTableStore()
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, testTable("t1")))

	got, err := store.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "premier-league", got.League)
	assert.Equal(t, 3, got.Standings["arsenal"].Totals.Points)
	assert.Equal(t, 1, store.Len())
}

func TestTableStore_InsertDuplicate(t *testing.T) {
	store := NewTableStore()
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, testTable("t1")))
	assert.ErrorIs(t, store.Insert(ctx, testTable("t1")), storage.ErrDuplicateKey)
	assert.Equal(t, 1, store.Len())
}

func TestTableStore_GetByIDNotFound(t *testing.T) {
	store := NewTableStore()

	_, err := store.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestTableStore_SnapshotIsImmutable(t *testing.T) {
	store := NewTableStore()
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, testTable("t1")))

	// Mutating a read-back table must not leak into the cached snapshot.
	got, err := store.GetByID(ctx, "t1")
	require.NoError(t, err)
	got.Standings["arsenal"].Totals.Points = 99
	got.Standings["arsenal"].Totals.RecentForm[0] = "L"

	again, err := store.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, 3, again.Standings["arsenal"].Totals.Points)
	assert.Equal(t, "W", again.Standings["arsenal"].Totals.RecentForm[0])
}
