package game

import (
	"testing"

	"github.com/cbodonnell/worldlens/pkg/config"
	"github.com/cbodonnell/worldlens/pkg/memory"
	"github.com/stretchr/testify/require"
)

// Address layout of the test process, following config.DefaultOffsets.
const (
	globalsAddr   = 0xA2AA00 // base + 0x62AA14 / 0x62AA18 live here
	gameAddr      = 0x1000000
	worldAddr     = 0x2000000
	characterAddr = 0x3000000
	recordsAddr   = 0x4000000
	nodesAddr     = 0x5000000
	sentinelAddr  = 0x6000000

	garbagePointer = 0xDEADBEEF
)

type testRecord struct {
	id     uint16
	x, y   float32
	health *[2]uint32 // current, max
	// noHealthBlock leaves the health pointer null
	noHealthBlock bool
}

type fixture struct {
	img     *memory.Image
	offsets config.Offsets
	reader  *memory.Reader
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		img:     memory.NewImage(4),
		offsets: config.DefaultOffsets(),
	}
	reader, err := memory.NewReader(f.img, 4)
	require.NoError(t, err)
	f.reader = reader

	f.img.Alloc(globalsAddr, 0x300)
	f.img.Alloc(gameAddr, 0x100)
	f.img.Alloc(worldAddr, 0x100)
	f.img.Alloc(characterAddr, 0x20)
	f.img.Alloc(sentinelAddr, 0x10)

	f.img.PutPointer(f.offsets.Base+0x62AA14, gameAddr)
	f.img.PutPointer(gameAddr+0xD0, worldAddr)
	f.img.PutPointer(worldAddr+0x3C, characterAddr)
	f.img.PutPointer(worldAddr+0x14, sentinelAddr)
	return f
}

func (f *fixture) mapNameAddr() uint64 {
	return f.offsets.Base + 0x62AA18
}

// setMapName writes the raw bytes of a map name, sentinel included if wanted.
func (f *fixture) setMapName(raw string) {
	f.img.PutBytes(f.mapNameAddr(), []byte(raw))
}

func (f *fixture) setCharacter(x, y float32) {
	f.img.PutFloat32(characterAddr+f.offsets.EntityX, x)
	f.img.PutFloat32(characterAddr+f.offsets.EntityY, y)
}

func recordAddr(i int) uint64 {
	return recordsAddr + uint64(i)*0x1000
}

func nodeAddr(i int) uint64 {
	return nodesAddr + uint64(i)*0x10
}

// setEntities lays out a list of records and links the nodes. The tail node's
// next pointer is garbage.
func (f *fixture) setEntities(records ...testRecord) {
	f.setListSize(uint32(len(records)))
	if len(records) == 0 {
		return
	}
	f.img.PutPointer(sentinelAddr+f.offsets.NodeNext, nodeAddr(0))

	for i, r := range records {
		rec := recordAddr(i)
		f.img.Alloc(rec, 0x400)
		f.img.PutUint16(rec+f.offsets.EntityID, r.id)
		f.img.PutFloat32(rec+f.offsets.EntityX, r.x)
		f.img.PutFloat32(rec+f.offsets.EntityY, r.y)
		if r.health != nil {
			h := rec + 0x300
			f.img.PutPointer(rec+f.offsets.HealthPointer, h)
			f.img.PutUint32(h+f.offsets.HealthCurrent, r.health[0])
			f.img.PutUint32(h+f.offsets.HealthMax, r.health[1])
		} else if !r.noHealthBlock {
			f.img.PutPointer(rec+f.offsets.HealthPointer, garbagePointer)
		}

		node := nodeAddr(i)
		f.img.Alloc(node, 0x10)
		f.img.PutPointer(node+f.offsets.NodeData, rec)
		if i+1 < len(records) {
			f.img.PutPointer(node+f.offsets.NodeNext, nodeAddr(i+1))
		} else {
			f.img.PutPointer(node+f.offsets.NodeNext, garbagePointer)
		}
	}
}

func (f *fixture) setListSize(n uint32) {
	f.img.PutUint32(worldAddr+f.offsets.ListSize, n)
}

func health(current, max uint32) *[2]uint32 {
	return &[2]uint32{current, max}
}
