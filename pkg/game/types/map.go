package types

import "sync"

// Map is the map the character is currently on. A Map is never renamed:
// a name change produces a new Map.
//
// While a Map is current it receives character and entity updates, so it
// always holds the latest values observed on it.
type Map struct {
	Name   string `json:"name"`
	Origin Origin `json:"origin"`

	lock      sync.RWMutex
	character *Entity
	entities  *Entities
}

func NewMap(name string, origin Origin) *Map {
	return &Map{
		Name:   name,
		Origin: origin,
	}
}

func (m *Map) SetCharacter(c *Entity) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.character = c
}

func (m *Map) SetEntities(es *Entities) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.entities = es
}

func (m *Map) Character() *Entity {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.character
}

func (m *Map) Entities() *Entities {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.entities
}

func (m *Map) String() string {
	return m.Name
}
