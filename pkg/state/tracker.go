package state

import (
	"context"
	"time"

	"github.com/cbodonnell/worldlens/pkg/game"
	"github.com/cbodonnell/worldlens/pkg/game/types"
	"github.com/cbodonnell/worldlens/pkg/log"
	"github.com/google/uuid"
)

// Tracker assembles game events into snapshots. A snapshot is complete when
// the entity lists of a cycle arrive; it is then stored and handed to the
// registered sinks.
type Tracker struct {
	session string
	store   SnapshotStore
	sinks   []func(*types.Snapshot)
	now     func() time.Time

	tick      uint64
	current   *types.Map
	character *types.Entity
}

type NewTrackerOptions struct {
	Store SnapshotStore
	// Sinks receive every complete snapshot, synchronously.
	Sinks []func(*types.Snapshot)
}

func NewTracker(opts NewTrackerOptions) *Tracker {
	return &Tracker{
		session: uuid.NewString(),
		store:   opts.Store,
		sinks:   opts.Sinks,
		now:     time.Now,
	}
}

// Session returns the id of the session snapshots are tagged with.
func (t *Tracker) Session() string {
	return t.session
}

func (t *Tracker) EventTypes() []game.EventType {
	return []game.EventType{game.EventMapChanged, game.EventCharacterUpdated, game.EventEntitiesUpdated}
}

func (t *Tracker) HandleEvent(event game.Event) {
	switch event.Type {
	case game.EventMapChanged:
		t.current = event.Map
		// a character read against the previous map must not leak into the new one
		t.character = nil
	case game.EventCharacterUpdated:
		t.character = event.Character
	case game.EventEntitiesUpdated:
		if t.current == nil || t.character == nil {
			return
		}
		t.tick++
		snapshot := &types.Snapshot{
			Session:   t.session,
			Tick:      t.tick,
			Timestamp: t.now().UnixMilli(),
			Map:       t.current,
			Character: t.character,
			Entities:  event.Entities,
		}
		if err := t.store.Set(context.Background(), snapshot); err != nil {
			log.Error("Failed to store snapshot: %v", err)
			return
		}
		for _, sink := range t.sinks {
			sink(snapshot)
		}
	}
}
