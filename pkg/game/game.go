package game

import (
	"context"
	"fmt"
	"sync"

	"github.com/cbodonnell/worldlens/pkg/config"
	"github.com/cbodonnell/worldlens/pkg/game/types"
	"github.com/cbodonnell/worldlens/pkg/log"
	"github.com/cbodonnell/worldlens/pkg/memory"
	"github.com/cbodonnell/worldlens/pkg/origins"
)

// Game reconstructs the world state of the target process one read cycle at a time.
type Game struct {
	// readLock serializes read cycles
	readLock sync.Mutex
	// lock guards the published state below
	lock      sync.RWMutex
	character *types.Entity
	entities  *types.Entities

	reader     *memory.Reader
	offsets    config.Offsets
	bus        *Bus
	maps       *MapContext
	walker     *EntityListWalker
	classifier *EntityClassifier
}

// NewGameOptions contains options for creating a new Game.
type NewGameOptions struct {
	Reader        *memory.Reader
	Offsets       config.Offsets
	Origins       origins.Resolver
	DefaultOrigin types.Origin
}

func NewGame(opts NewGameOptions) *Game {
	g := &Game{
		reader:  opts.Reader,
		offsets: opts.Offsets,
		bus:     NewBus(),
	}
	g.maps = NewMapContext(NewMapContextOptions{
		Reader:        g.reader,
		Offsets:       &g.offsets,
		Origins:       opts.Origins,
		DefaultOrigin: opts.DefaultOrigin,
		Bus:           g.bus,
	})
	g.walker = NewEntityListWalker(g.reader, &g.offsets)
	g.classifier = NewEntityClassifier(g.reader, &g.offsets)
	return g
}

// Subscribe registers handler for the lifetime of the Game.
func (g *Game) Subscribe(handler Handler) Subscription {
	return g.bus.Register(ScopePublisher, handler)
}

// Read performs one read cycle: map, then character, then entities. Each
// step that succeeds emits one event. The first failing step emits nothing,
// keeps the previously published value and ends the cycle. Values read
// against a previous map are cleared as soon as a new map is current.
func (g *Game) Read(ctx context.Context) error {
	g.readLock.Lock()
	defer g.readLock.Unlock()

	previous := g.maps.Current()
	m, err := g.maps.OnTick(ctx)
	if err != nil {
		return err
	}
	if m != previous {
		g.lock.Lock()
		g.character = nil
		g.entities = nil
		g.lock.Unlock()
	}
	if err := g.readCharacter(m); err != nil {
		return err
	}
	if err := g.readEntities(m); err != nil {
		return err
	}
	return nil
}

func (g *Game) readCharacter(m *types.Map) error {
	address, err := g.reader.ResolvePointerChain(g.offsets.Base, g.offsets.CharacterChain...)
	if err != nil {
		return fmt.Errorf("failed to resolve character: %w", err)
	}
	position, err := g.classifier.Position(address, m.Origin)
	if err != nil {
		return fmt.Errorf("failed to read character position: %w", err)
	}

	character := types.NewCharacter(position)
	g.lock.Lock()
	g.character = character
	g.lock.Unlock()

	log.Trace("%s", character)
	g.bus.Emit(Event{Type: EventCharacterUpdated, Character: character})
	return nil
}

func (g *Game) readEntities(m *types.Map) error {
	list, err := g.reader.ResolvePointerChain(g.offsets.Base, g.offsets.EntityChain...)
	if err != nil {
		return fmt.Errorf("failed to resolve entity list: %w", err)
	}
	records, err := g.walker.Walk(list)
	if err != nil {
		return err
	}

	entities := types.NewEntities()
	for _, record := range records {
		e, err := g.classifier.Decode(record, m.Origin)
		if err != nil {
			return err
		}
		entities.Add(e)
	}

	g.lock.Lock()
	g.entities = entities
	g.lock.Unlock()

	log.Trace("%d npcs, %d mobs, %d players", len(entities.NPCs), len(entities.Mobs), len(entities.Players))
	g.bus.Emit(Event{Type: EventEntitiesUpdated, Entities: entities})
	return nil
}

// Map returns the current map, or nil before the first successful cycle.
func (g *Game) Map() *types.Map {
	return g.maps.Current()
}

// Character returns the last published character.
func (g *Game) Character() *types.Entity {
	g.lock.RLock()
	defer g.lock.RUnlock()
	return g.character
}

// Entities returns the last published entity lists.
func (g *Game) Entities() *types.Entities {
	g.lock.RLock()
	defer g.lock.RUnlock()
	return g.entities
}
