package repositories

import (
	"context"
	"testing"

	"github.com/cbodonnell/worldlens/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteRepository(t *testing.T) Repository {
	t.Helper()
	r, err := NewSQLiteRepository(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { r.Close(context.Background()) })
	return r
}

func TestSQLiteRepository_Origins(t *testing.T) {
	ctx := context.Background()
	r := newTestSQLiteRepository(t)

	_, err := r.LoadOrigin(ctx, "town1")
	assert.True(t, IsNotFound(err), "got %v", err)

	require.NoError(t, r.SaveOrigin(ctx, "town1", types.Origin{X: 1000, Y: 2000}))
	require.NoError(t, r.SaveOrigin(ctx, "town1", types.Origin{X: 1500, Y: 2500}))
	require.NoError(t, r.SaveOrigin(ctx, "arena", types.Origin{X: -10, Y: 10}))

	origin, err := r.LoadOrigin(ctx, "town1")
	require.NoError(t, err)
	assert.Equal(t, types.Origin{X: 1500, Y: 2500}, origin)

	all, err := r.ListOrigins(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, types.Origin{X: -10, Y: 10}, all["arena"])
}

func TestSQLiteRepository_SaveSnapshot(t *testing.T) {
	ctx := context.Background()
	r := newTestSQLiteRepository(t)

	entities := types.NewEntities()
	entities.Add(types.NewMob(0x8000_0000_0000_1000, 1500, types.Point{X: 1, Y: 2}, types.NewHealth(100, 50)))
	entities.Add(types.NewPlayer(0x2000, 5000, types.Point{X: -3, Y: 4}))

	snapshot := &types.Snapshot{
		Session:   "session-1",
		Tick:      1,
		Timestamp: 1700000000000,
		Map:       types.NewMap("arena", types.Origin{X: 1000, Y: 1000}),
		Character: types.NewCharacter(types.Point{X: 1, Y: 1}),
		Entities:  entities,
	}
	require.NoError(t, r.SaveSnapshot(ctx, snapshot))

	db := r.(*SQLiteRepository).db
	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sightings WHERE session = ?", "session-1").Scan(&count))
	assert.Equal(t, 2, count)

	var healthCurrent *int64
	require.NoError(t, db.QueryRowContext(ctx, "SELECT health_current FROM sightings WHERE kind = 'player'").Scan(&healthCurrent))
	assert.Nil(t, healthCurrent)

	assert.Error(t, r.SaveSnapshot(ctx, &types.Snapshot{Session: "incomplete"}))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(&ErrNotFound{}))
	assert.False(t, IsNotFound(assert.AnError))
	assert.Equal(t, "map x not found", (&ErrNotFound{What: "map x"}).Error())
}
