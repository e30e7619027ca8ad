package memory

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"
)

var errImageClosed = errors.New("image closed")

type region struct {
	start uint64
	data  []byte
}

func (rg *region) contains(address uint64, length int) bool {
	return address >= rg.start && address-rg.start+uint64(length) <= uint64(len(rg.data))
}

// Image is a sparse in-memory address space implementing Handle.
// It backs unit tests and replays of captured memory regions.
// Reads that are not fully covered by a single mapped region fail.
type Image struct {
	lock        sync.RWMutex
	regions     []*region
	pointerSize int
	closed      bool
	reads       []uint64
}

// NewImage creates an empty Image whose Put helpers encode pointers with the given width.
func NewImage(pointerSize int) *Image {
	return &Image{pointerSize: pointerSize}
}

// Map adds a region of memory at address. Later regions shadow earlier ones.
func (m *Image) Map(address uint64, data []byte) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.regions = append(m.regions, &region{start: address, data: data})
}

// Alloc maps size zeroed bytes at address.
func (m *Image) Alloc(address uint64, size int) {
	m.Map(address, make([]byte, size))
}

func (m *Image) ReadBytes(address uint64, length int) ([]byte, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.closed {
		return nil, errImageClosed
	}
	m.reads = append(m.reads, address)
	for i := len(m.regions) - 1; i >= 0; i-- {
		rg := m.regions[i]
		if rg.contains(address, length) {
			off := address - rg.start
			out := make([]byte, length)
			copy(out, rg.data[off:off+uint64(length)])
			return out, nil
		}
	}
	return nil, fmt.Errorf("address %#x not mapped", address)
}

func (m *Image) Close() error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.closed = true
	return nil
}

// Touched reports whether any read started inside [address, address+length).
func (m *Image) Touched(address uint64, length int) bool {
	m.lock.RLock()
	defer m.lock.RUnlock()
	for _, a := range m.reads {
		if a >= address && a < address+uint64(length) {
			return true
		}
	}
	return false
}

func (m *Image) write(address uint64, b []byte) {
	m.lock.Lock()
	defer m.lock.Unlock()
	for i := len(m.regions) - 1; i >= 0; i-- {
		rg := m.regions[i]
		if rg.contains(address, len(b)) {
			copy(rg.data[address-rg.start:], b)
			return
		}
	}
	panic(fmt.Sprintf("memory image: write to unmapped address %#x", address))
}

// PutBytes copies b into already mapped memory at address.
func (m *Image) PutBytes(address uint64, b []byte) {
	m.write(address, b)
}

func (m *Image) PutUint16(address uint64, v uint16) {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	m.write(address, b)
}

func (m *Image) PutUint32(address uint64, v uint32) {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	m.write(address, b)
}

func (m *Image) PutFloat32(address uint64, v float32) {
	m.PutUint32(address, math.Float32bits(v))
}

// PutPointer writes a pointer using the image's pointer width.
func (m *Image) PutPointer(address uint64, v uint64) {
	if m.pointerSize == 4 {
		m.PutUint32(address, uint32(v))
		return
	}
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	m.write(address, b)
}
