package recorder

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cbodonnell/worldlens/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot(tick uint64) *types.Snapshot {
	entities := types.NewEntities()
	entities.Add(types.NewMob(0x4000000, 1500, types.Point{X: int32(tick), Y: 2}, &types.Health{Max: 100, Current: 50}))
	return &types.Snapshot{
		Session:   "session",
		Tick:      tick,
		Timestamp: 1700000000000 + int64(tick),
		Map:       types.NewMap("arena", types.Origin{X: 1000, Y: 1000}),
		Character: types.NewCharacter(types.Point{X: 1, Y: 1}),
		Entities:  entities,
	}
}

func TestFileRecorder_RecordAndReplay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.wlr")

	fr, err := NewFileRecorder(path)
	require.NoError(t, err)
	for tick := uint64(1); tick <= 3; tick++ {
		require.NoError(t, fr.Record(testSnapshot(tick)))
	}
	assert.Equal(t, 3, fr.Frames())
	require.NoError(t, fr.Close())

	var got []*types.Snapshot
	err = ReplayFile(path, func(s *types.Snapshot) error {
		got = append(got, s)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, s := range got {
		assert.Equal(t, uint64(i+1), s.Tick)
		assert.Equal(t, "arena", s.Map.Name)
		assert.Equal(t, testSnapshot(uint64(i+1)).Entities, s.Entities)
	}
}

func TestReplay_TruncatedTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.wlr")

	fr, err := NewFileRecorder(path)
	require.NoError(t, err)
	require.NoError(t, fr.Record(testSnapshot(1)))
	require.NoError(t, fr.Record(testSnapshot(2)))
	require.NoError(t, fr.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	var ticks []uint64
	err = Replay(bytes.NewReader(b[:len(b)-3]), func(s *types.Snapshot) error {
		ticks = append(ticks, s.Tick)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1}, ticks)
}

func TestReplay_CorruptFrame(t *testing.T) {
	// length 4 followed by four bytes that are not a zstd frame
	err := Replay(bytes.NewReader([]byte{4, 'a', 'b', 'c', 'd'}), func(s *types.Snapshot) error {
		return nil
	})
	assert.Error(t, err)
}
