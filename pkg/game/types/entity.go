package types

import (
	"fmt"
	"strings"
)

// Identity is an opaque token naming an entity record for equality and indexing.
// It is never dereferenced.
type Identity uint64

type Kind uint8

const (
	KindCharacter Kind = iota
	KindNPC
	KindMob
	KindPlayer
)

func (k Kind) String() string {
	switch k {
	case KindCharacter:
		return "character"
	case KindNPC:
		return "npc"
	case KindMob:
		return "mob"
	case KindPlayer:
		return "player"
	default:
		return "unknown"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "character":
		*k = KindCharacter
	case "npc":
		*k = KindNPC
	case "mob":
		*k = KindMob
	case "player":
		*k = KindPlayer
	default:
		return fmt.Errorf("unknown entity kind: %s", b)
	}
	return nil
}

// Living reports whether entities of this kind may carry health.
func (k Kind) Living() bool {
	return k == KindCharacter || k == KindMob
}

// Entity is a classified world object. Health is only ever set on living kinds.
type Entity struct {
	Kind     Kind     `json:"kind"`
	Identity Identity `json:"identity,omitempty"`
	ID       uint16   `json:"id"`
	Position Point    `json:"position"`
	Health   *Health  `json:"health,omitempty"`
}

// NewCharacter creates the player's own character. It has no stable identity
// and is rebuilt every tick.
func NewCharacter(position Point) *Entity {
	return &Entity{Kind: KindCharacter, Position: position}
}

func NewNPC(identity Identity, id uint16, position Point) *Entity {
	return &Entity{Kind: KindNPC, Identity: identity, ID: id, Position: position}
}

func NewPlayer(identity Identity, id uint16, position Point) *Entity {
	return &Entity{Kind: KindPlayer, Identity: identity, ID: id, Position: position}
}

func NewMob(identity Identity, id uint16, position Point, health *Health) *Entity {
	return &Entity{Kind: KindMob, Identity: identity, ID: id, Position: position, Health: health}
}

// SetHealth attaches health to a living entity. It is a no-op for other kinds.
func (e *Entity) SetHealth(h *Health) {
	if !e.Kind.Living() {
		return
	}
	e.Health = h
}

// Equal reports whether both entities name the same record: same kind,
// identity and id. Position and health are not compared.
func (e *Entity) Equal(other *Entity) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.Kind == other.Kind && e.Identity == other.Identity && e.ID == other.ID
}

func (e *Entity) Copy() *Entity {
	if e == nil {
		return nil
	}
	c := *e
	if e.Health != nil {
		h := *e.Health
		c.Health = &h
	}
	return &c
}

func (e *Entity) String() string {
	var s string
	if e.Kind == KindCharacter {
		s = fmt.Sprintf("Character (%d, %d)", e.Position.X, e.Position.Y)
	} else {
		s = fmt.Sprintf("%s %d (%d, %d)", e.Kind, e.ID, e.Position.X, e.Position.Y)
	}
	if e.Health != nil {
		s = fmt.Sprintf("%s, %s", s, e.Health)
	}
	return s
}

// Entities holds the three disjoint entity lists of one tick.
type Entities struct {
	NPCs    []*Entity `json:"npcs"`
	Mobs    []*Entity `json:"mobs"`
	Players []*Entity `json:"players"`
}

func NewEntities() *Entities {
	return &Entities{
		NPCs:    []*Entity{},
		Mobs:    []*Entity{},
		Players: []*Entity{},
	}
}

// Add appends e to the list matching its kind.
func (es *Entities) Add(e *Entity) {
	switch e.Kind {
	case KindNPC:
		es.NPCs = append(es.NPCs, e)
	case KindMob:
		es.Mobs = append(es.Mobs, e)
	case KindPlayer:
		es.Players = append(es.Players, e)
	}
}

func (es *Entities) Len() int {
	if es == nil {
		return 0
	}
	return len(es.NPCs) + len(es.Mobs) + len(es.Players)
}

func (es *Entities) Copy() *Entities {
	if es == nil {
		return nil
	}
	c := &Entities{
		NPCs:    make([]*Entity, len(es.NPCs)),
		Mobs:    make([]*Entity, len(es.Mobs)),
		Players: make([]*Entity, len(es.Players)),
	}
	for i, e := range es.NPCs {
		c.NPCs[i] = e.Copy()
	}
	for i, e := range es.Mobs {
		c.Mobs[i] = e.Copy()
	}
	for i, e := range es.Players {
		c.Players[i] = e.Copy()
	}
	return c
}
