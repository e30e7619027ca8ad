package messages

import (
	"fmt"

	snapshotfb "github.com/cbodonnell/worldlens/flatbuffers/snapshot"
	"github.com/cbodonnell/worldlens/pkg/game/types"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/klauspost/compress/zstd"
)

var (
	encoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	decoder, _ = zstd.NewReader(nil)
)

// SerializeSnapshot encodes a snapshot as a zstd compressed flatbuffer.
func SerializeSnapshot(s *types.Snapshot) ([]byte, error) {
	b, err := SerializeSnapshotFlatbuffer(s)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize snapshot: %w", err)
	}
	return encoder.EncodeAll(b, make([]byte, 0, len(b)/2)), nil
}

func DeserializeSnapshot(data []byte) (*types.Snapshot, error) {
	b, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress snapshot: %w", err)
	}

	s, err := DeserializeSnapshotFlatbuffer(b)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize snapshot: %w", err)
	}
	return s, nil
}

func SerializeSnapshotFlatbuffer(s *types.Snapshot) ([]byte, error) {
	if s == nil || s.Map == nil {
		return nil, fmt.Errorf("snapshot has no map")
	}

	builder := flatbuffers.NewBuilder(1024)

	session := builder.CreateString(s.Session)
	m := serializeMapFlatbuffer(builder, s.Map)
	var character flatbuffers.UOffsetT
	if s.Character != nil {
		character = serializeEntityFlatbuffer(builder, s.Character)
	}

	var npcs, mobs, players []*types.Entity
	if s.Entities != nil {
		npcs, mobs, players = s.Entities.NPCs, s.Entities.Mobs, s.Entities.Players
	}
	npcVector := serializeEntityVector(builder, npcs, snapshotfb.SnapshotStartNpcsVector)
	mobVector := serializeEntityVector(builder, mobs, snapshotfb.SnapshotStartMobsVector)
	playerVector := serializeEntityVector(builder, players, snapshotfb.SnapshotStartPlayersVector)

	snapshotfb.SnapshotStart(builder)
	snapshotfb.SnapshotAddSession(builder, session)
	snapshotfb.SnapshotAddTick(builder, s.Tick)
	snapshotfb.SnapshotAddTimestamp(builder, s.Timestamp)
	snapshotfb.SnapshotAddMap(builder, m)
	if s.Character != nil {
		snapshotfb.SnapshotAddCharacter(builder, character)
	}
	snapshotfb.SnapshotAddNpcs(builder, npcVector)
	snapshotfb.SnapshotAddMobs(builder, mobVector)
	snapshotfb.SnapshotAddPlayers(builder, playerVector)
	builder.Finish(snapshotfb.SnapshotEnd(builder))

	return builder.FinishedBytes(), nil
}

func serializeMapFlatbuffer(builder *flatbuffers.Builder, m *types.Map) flatbuffers.UOffsetT {
	name := builder.CreateString(m.Name)

	snapshotfb.MapStart(builder)
	snapshotfb.MapAddName(builder, name)
	snapshotfb.MapAddOrigin(builder, snapshotfb.CreateOrigin(builder, m.Origin.X, m.Origin.Y))
	return snapshotfb.MapEnd(builder)
}

func serializeEntityFlatbuffer(builder *flatbuffers.Builder, e *types.Entity) flatbuffers.UOffsetT {
	snapshotfb.EntityStart(builder)
	snapshotfb.EntityAddKind(builder, byte(e.Kind))
	snapshotfb.EntityAddIdentity(builder, uint64(e.Identity))
	snapshotfb.EntityAddId(builder, e.ID)
	snapshotfb.EntityAddPosition(builder, snapshotfb.CreatePoint(builder, e.Position.X, e.Position.Y))
	if e.Health != nil {
		snapshotfb.EntityAddHealth(builder, snapshotfb.CreateHealth(builder, e.Health.Max, e.Health.Current))
	}
	return snapshotfb.EntityEnd(builder)
}

func serializeEntityVector(builder *flatbuffers.Builder, entities []*types.Entity, start func(*flatbuffers.Builder, int) flatbuffers.UOffsetT) flatbuffers.UOffsetT {
	offsets := make([]flatbuffers.UOffsetT, len(entities))
	for i, e := range entities {
		offsets[i] = serializeEntityFlatbuffer(builder, e)
	}
	start(builder, len(entities))
	for i := len(offsets) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(offsets[i])
	}
	return builder.EndVector(len(entities))
}

func DeserializeSnapshotFlatbuffer(b []byte) (s *types.Snapshot, err error) {
	// the generated accessors panic on truncated buffers
	defer func() {
		if r := recover(); r != nil {
			s, err = nil, fmt.Errorf("malformed snapshot flatbuffer: %v", r)
		}
	}()

	fb := snapshotfb.GetRootAsSnapshot(b, 0)
	mfb := fb.Map(nil)
	if mfb == nil {
		return nil, fmt.Errorf("snapshot has no map")
	}
	var origin types.Origin
	if o := mfb.Origin(nil); o != nil {
		origin = types.Origin{X: o.X(), Y: o.Y()}
	}

	s = &types.Snapshot{
		Session:   string(fb.Session()),
		Tick:      fb.Tick(),
		Timestamp: fb.Timestamp(),
		Map:       types.NewMap(string(mfb.Name()), origin),
		Entities:  types.NewEntities(),
	}
	if c := fb.Character(nil); c != nil {
		s.Character = entityFromFlatbuffer(c)
	}

	efb := &snapshotfb.Entity{}
	for i := 0; i < fb.NpcsLength(); i++ {
		if !fb.Npcs(efb, i) {
			return nil, fmt.Errorf("failed to get npc at index %d", i)
		}
		s.Entities.NPCs = append(s.Entities.NPCs, entityFromFlatbuffer(efb))
	}
	for i := 0; i < fb.MobsLength(); i++ {
		if !fb.Mobs(efb, i) {
			return nil, fmt.Errorf("failed to get mob at index %d", i)
		}
		s.Entities.Mobs = append(s.Entities.Mobs, entityFromFlatbuffer(efb))
	}
	for i := 0; i < fb.PlayersLength(); i++ {
		if !fb.Players(efb, i) {
			return nil, fmt.Errorf("failed to get player at index %d", i)
		}
		s.Entities.Players = append(s.Entities.Players, entityFromFlatbuffer(efb))
	}

	return s, nil
}

func entityFromFlatbuffer(fb *snapshotfb.Entity) *types.Entity {
	e := &types.Entity{
		Kind:     types.Kind(fb.Kind()),
		Identity: types.Identity(fb.Identity()),
		ID:       fb.Id(),
	}
	if p := fb.Position(nil); p != nil {
		e.Position = types.Point{X: p.X(), Y: p.Y()}
	}
	if h := fb.Health(nil); h != nil {
		e.Health = &types.Health{Max: h.Max(), Current: h.Current()}
	}
	return e
}
