package game

import (
	"fmt"
	"math"

	"github.com/cbodonnell/worldlens/pkg/config"
	"github.com/cbodonnell/worldlens/pkg/game/types"
	"github.com/cbodonnell/worldlens/pkg/log"
	"github.com/cbodonnell/worldlens/pkg/memory"
)

// Normalize converts a raw float coordinate into world units relative to
// origin. The quotient is truncated toward zero, so deltas in (-scale, scale)
// all map to 0.
func Normalize(raw float32, origin float64, scale float64) (int32, error) {
	v := (float64(raw) - origin) / scale
	if math.IsNaN(v) || math.IsInf(v, 0) || v >= math.MaxInt32+1 || v <= math.MinInt32-1 {
		return 0, fmt.Errorf("%w: coordinate %v out of range", memory.ErrCorruptData, raw)
	}
	return int32(v), nil
}

// EntityClassifier decodes raw entity records into classified entities.
type EntityClassifier struct {
	reader  *memory.Reader
	offsets *config.Offsets
}

func NewEntityClassifier(reader *memory.Reader, offsets *config.Offsets) *EntityClassifier {
	return &EntityClassifier{
		reader:  reader,
		offsets: offsets,
	}
}

// Classify maps an id to its kind. The first matching rule wins:
// 0 or above the mob threshold is a player, below the NPC threshold is an
// NPC, everything else is a mob.
func (c *EntityClassifier) Classify(id uint16) types.Kind {
	switch {
	case id == 0 || id > c.offsets.MobThreshold:
		return types.KindPlayer
	case id < c.offsets.NPCThreshold:
		return types.KindNPC
	default:
		return types.KindMob
	}
}

// Position reads the raw coordinates at address and normalizes them.
func (c *EntityClassifier) Position(address uint64, origin types.Origin) (types.Point, error) {
	xf, err := c.reader.ReadFloat32(address + c.offsets.EntityX)
	if err != nil {
		return types.Point{}, err
	}
	yf, err := c.reader.ReadFloat32(address + c.offsets.EntityY)
	if err != nil {
		return types.Point{}, err
	}
	x, err := Normalize(xf, origin.X, c.offsets.Scale)
	if err != nil {
		return types.Point{}, err
	}
	y, err := Normalize(yf, origin.Y, c.offsets.Scale)
	if err != nil {
		return types.Point{}, err
	}
	return types.Point{X: x, Y: y}, nil
}

// Decode reads and classifies one record. Mobs are additionally probed for health.
func (c *EntityClassifier) Decode(record RawRecord, origin types.Origin) (*types.Entity, error) {
	id, err := c.reader.ReadUint16(record.Address + c.offsets.EntityID)
	if err != nil {
		return nil, fmt.Errorf("failed to read entity id at %#x: %w", record.Address, err)
	}
	position, err := c.Position(record.Address, origin)
	if err != nil {
		return nil, fmt.Errorf("failed to read entity position at %#x: %w", record.Address, err)
	}

	identity := types.Identity(record.Address)
	switch c.Classify(id) {
	case types.KindPlayer:
		return types.NewPlayer(identity, id, position), nil
	case types.KindNPC:
		return types.NewNPC(identity, id, position), nil
	default:
		return types.NewMob(identity, id, position, c.readHealth(record.Address)), nil
	}
}

// readHealth returns nil when the health block is absent, unreadable or implausible.
func (c *EntityClassifier) readHealth(address uint64) *types.Health {
	health, err := c.reader.ReadPointer(address + c.offsets.HealthPointer)
	if err != nil || health == 0 {
		return nil
	}
	current, err := c.reader.ReadUint32(health + c.offsets.HealthCurrent)
	if err != nil {
		log.Trace("Unreadable health block of %#x: %v", address, err)
		return nil
	}
	max, err := c.reader.ReadUint32(health + c.offsets.HealthMax)
	if err != nil {
		log.Trace("Unreadable health block of %#x: %v", address, err)
		return nil
	}
	return types.NewHealth(max, current)
}
