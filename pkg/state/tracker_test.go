package state

import (
	"context"
	"testing"
	"time"

	"github.com/cbodonnell/worldlens/pkg/game"
	"github.com/cbodonnell/worldlens/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_AssemblesSnapshots(t *testing.T) {
	ctx := context.Background()
	store := NewInMemorySnapshotStore()
	var sunk []*types.Snapshot
	tracker := NewTracker(NewTrackerOptions{
		Store: store,
		Sinks: []func(*types.Snapshot){func(s *types.Snapshot) { sunk = append(sunk, s) }},
	})
	tracker.now = func() time.Time { return time.UnixMilli(1700000000000) }

	arena := types.NewMap("arena", types.Origin{X: 1000, Y: 1000})
	char := types.NewCharacter(types.Point{X: 1, Y: 1})
	entities := types.NewEntities()
	entities.Add(types.NewPlayer(0x10, 5000, types.Point{}))

	got, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	tracker.HandleEvent(game.Event{Type: game.EventMapChanged, Map: arena})
	tracker.HandleEvent(game.Event{Type: game.EventCharacterUpdated, Character: char})
	assert.Empty(t, sunk)
	tracker.HandleEvent(game.Event{Type: game.EventEntitiesUpdated, Entities: entities})

	require.Len(t, sunk, 1)
	assert.Equal(t, uint64(1), sunk[0].Tick)
	assert.Equal(t, tracker.Session(), sunk[0].Session)
	assert.Equal(t, int64(1700000000000), sunk[0].Timestamp)

	got, err = store.Get(ctx)
	require.NoError(t, err)
	assert.Same(t, arena, got.Map)
	assert.Equal(t, char, got.Character)
	assert.Equal(t, entities, got.Entities)
	// the store hands out copies
	got.Entities.Players[0].ID = 1
	assert.Equal(t, uint16(5000), entities.Players[0].ID)
}

func TestTracker_MapChangeDropsStaleCharacter(t *testing.T) {
	store := NewInMemorySnapshotStore()
	var sunk []*types.Snapshot
	tracker := NewTracker(NewTrackerOptions{
		Store: store,
		Sinks: []func(*types.Snapshot){func(s *types.Snapshot) { sunk = append(sunk, s) }},
	})

	tracker.HandleEvent(game.Event{Type: game.EventMapChanged, Map: types.NewMap("town1", types.Origin{})})
	tracker.HandleEvent(game.Event{Type: game.EventCharacterUpdated, Character: types.NewCharacter(types.Point{X: 1})})
	tracker.HandleEvent(game.Event{Type: game.EventMapChanged, Map: types.NewMap("town2", types.Origin{})})
	tracker.HandleEvent(game.Event{Type: game.EventEntitiesUpdated, Entities: types.NewEntities()})
	assert.Empty(t, sunk)
}

func TestInMemorySnapshotStore_SetNil(t *testing.T) {
	assert.Error(t, NewInMemorySnapshotStore().Set(context.Background(), nil))
}
