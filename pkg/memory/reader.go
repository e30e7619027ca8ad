package memory

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Handle is the capability to read the memory of another process.
// Addresses are absolute addresses in the target's address space.
type Handle interface {
	// ReadBytes reads exactly length bytes starting at address.
	ReadBytes(address uint64, length int) ([]byte, error)
	// Close releases the handle.
	Close() error
}

// Reader performs typed little-endian reads through a Handle.
// Every read is independently fault-checked.
type Reader struct {
	handle      Handle
	pointerSize int
}

// NewReader creates a Reader. pointerSize is the width of a pointer in the
// target process and must be 4 or 8.
func NewReader(handle Handle, pointerSize int) (*Reader, error) {
	if pointerSize != 4 && pointerSize != 8 {
		return nil, fmt.Errorf("unsupported pointer size %d", pointerSize)
	}
	return &Reader{
		handle:      handle,
		pointerSize: pointerSize,
	}, nil
}

// PointerSize returns the pointer width of the target process.
func (r *Reader) PointerSize() int {
	return r.pointerSize
}

func (r *Reader) read(address uint64, length int) ([]byte, error) {
	b, err := r.handle.ReadBytes(address, length)
	if err != nil {
		return nil, fmt.Errorf("%w: %d bytes at %#x: %v", ErrReadFault, length, address, err)
	}
	if len(b) != length {
		return nil, fmt.Errorf("%w: short read at %#x: got %d of %d bytes", ErrReadFault, address, len(b), length)
	}
	return b, nil
}

func (r *Reader) ReadUint8(address uint64) (uint8, error) {
	b, err := r.read(address, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) ReadUint16(address uint64) (uint16, error) {
	b, err := r.read(address, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *Reader) ReadUint32(address uint64) (uint32, error) {
	b, err := r.read(address, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) ReadUint64(address uint64) (uint64, error) {
	b, err := r.read(address, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *Reader) ReadFloat32(address uint64) (float32, error) {
	bits, err := r.ReadUint32(address)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

// ReadPointer reads a pointer-width value at address.
func (r *Reader) ReadPointer(address uint64) (uint64, error) {
	if r.pointerSize == 4 {
		v, err := r.ReadUint32(address)
		return uint64(v), err
	}
	return r.ReadUint64(address)
}

// ResolvePointerChain walks a pointer chain starting at base. For every offset
// but the last, the pointer stored at current+offset becomes the new current
// address. The last offset is added without being dereferenced, so the result
// addresses the fields of the target structure directly.
//
// An empty chain returns base. A failing read aborts the whole chain.
func (r *Reader) ResolvePointerChain(base uint64, offsets ...uint64) (uint64, error) {
	if len(offsets) == 0 {
		return base, nil
	}

	current := base
	for i, offset := range offsets[:len(offsets)-1] {
		next, err := r.ReadPointer(current + offset)
		if err != nil {
			return 0, fmt.Errorf("failed to resolve pointer chain at step %d: %w", i, err)
		}
		current = next
	}
	return current + offsets[len(offsets)-1], nil
}
