package game

import (
	"sync"

	"github.com/cbodonnell/worldlens/pkg/game/types"
)

type EventType uint8

const (
	EventMapChanged EventType = iota + 1
	EventCharacterUpdated
	EventEntitiesUpdated
)

func (t EventType) String() string {
	switch t {
	case EventMapChanged:
		return "MapChanged"
	case EventCharacterUpdated:
		return "CharacterUpdated"
	case EventEntitiesUpdated:
		return "EntitiesUpdated"
	default:
		return "Unknown"
	}
}

// Event carries the new value of exactly one facet of the snapshot.
type Event struct {
	Type      EventType
	Map       *types.Map
	Character *types.Entity
	Entities  *types.Entities
}

// Handler receives events synchronously in the context of Game.Read.
type Handler interface {
	HandleEvent(event Event)
	// EventTypes returns the event types this handler is registered for.
	EventTypes() []EventType
}

type handlerFunc struct {
	fn         func(Event)
	eventTypes []EventType
}

func (h *handlerFunc) HandleEvent(event Event) {
	h.fn(event)
}

func (h *handlerFunc) EventTypes() []EventType {
	return h.eventTypes
}

// HandlerFunc adapts fn into a Handler for the given event types.
func HandlerFunc(fn func(Event), eventTypes ...EventType) Handler {
	return &handlerFunc{fn: fn, eventTypes: eventTypes}
}

// Scope controls the lifetime of a registration.
type Scope uint8

const (
	// ScopePublisher registrations live until they are unsubscribed.
	ScopePublisher Scope = iota
	// ScopeMap registrations are dropped when the current map is replaced.
	ScopeMap
)

type registration struct {
	id      uint64
	scope   Scope
	handler Handler
}

// Bus is a registry of event type to ordered subscriber lists.
// Handlers are invoked in registration order.
type Bus struct {
	lock     sync.RWMutex
	handlers map[EventType][]registration
	nextID   uint64
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]registration),
		nextID:   1,
	}
}

// Subscription identifies one registration on a Bus.
type Subscription struct {
	bus *Bus
	id  uint64
}

// Unsubscribe removes the registration. It is safe to call more than once.
func (s Subscription) Unsubscribe() {
	if s.bus == nil {
		return
	}
	s.bus.remove(func(r registration) bool { return r.id == s.id })
}

// Register adds handler for its declared event types under scope.
func (b *Bus) Register(scope Scope, handler Handler) Subscription {
	b.lock.Lock()
	defer b.lock.Unlock()

	id := b.nextID
	b.nextID++
	for _, t := range handler.EventTypes() {
		b.handlers[t] = append(b.handlers[t], registration{id: id, scope: scope, handler: handler})
	}
	return Subscription{bus: b, id: id}
}

// DropScope removes every registration made under scope.
func (b *Bus) DropScope(scope Scope) {
	b.remove(func(r registration) bool { return r.scope == scope })
}

func (b *Bus) remove(match func(registration) bool) {
	b.lock.Lock()
	defer b.lock.Unlock()

	for t, regs := range b.handlers {
		kept := regs[:0:0]
		for _, r := range regs {
			if !match(r) {
				kept = append(kept, r)
			}
		}
		if len(kept) == 0 {
			delete(b.handlers, t)
			continue
		}
		b.handlers[t] = kept
	}
}

// Emit delivers event to the handlers registered for its type at the time of the call.
func (b *Bus) Emit(event Event) {
	b.lock.RLock()
	regs := b.handlers[event.Type]
	handlers := make([]Handler, len(regs))
	for i, r := range regs {
		handlers[i] = r.handler
	}
	b.lock.RUnlock()

	for _, h := range handlers {
		h.HandleEvent(event)
	}
}

// HandlerCount returns the number of handlers registered for t under scope.
func (b *Bus) HandlerCount(t EventType, scope Scope) int {
	b.lock.RLock()
	defer b.lock.RUnlock()

	n := 0
	for _, r := range b.handlers[t] {
		if r.scope == scope {
			n++
		}
	}
	return n
}

// mapHandler feeds character and entity updates into the current map.
type mapHandler struct {
	m *types.Map
}

func (h *mapHandler) HandleEvent(event Event) {
	switch event.Type {
	case EventCharacterUpdated:
		h.m.SetCharacter(event.Character)
	case EventEntitiesUpdated:
		h.m.SetEntities(event.Entities)
	}
}

func (h *mapHandler) EventTypes() []EventType {
	return []EventType{EventCharacterUpdated, EventEntitiesUpdated}
}
