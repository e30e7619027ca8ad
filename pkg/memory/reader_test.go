package memory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_TypedReads(t *testing.T) {
	img := NewImage(4)
	img.Alloc(0x1000, 0x40)
	img.PutBytes(0x1000, []byte{0x7f})
	img.PutUint16(0x1002, 1500)
	img.PutUint32(0x1004, 0xdeadbeef)
	img.PutFloat32(0x1008, 1015.5)
	img.PutPointer(0x100c, 0x2000)

	r, err := NewReader(img, 4)
	require.NoError(t, err)

	b, err := r.ReadUint8(0x1000)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x7f), b)

	id, err := r.ReadUint16(0x1002)
	require.NoError(t, err)
	assert.Equal(t, uint16(1500), id)

	v, err := r.ReadUint32(0x1004)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xdeadbeef), v)

	f, err := r.ReadFloat32(0x1008)
	require.NoError(t, err)
	assert.Equal(t, float32(1015.5), f)

	p, err := r.ReadPointer(0x100c)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x2000), p)
}

func TestReader_ReadFault(t *testing.T) {
	img := NewImage(8)
	img.Alloc(0x1000, 4)

	r, err := NewReader(img, 8)
	require.NoError(t, err)

	tests := []struct {
		name    string
		address uint64
		read    func(uint64) error
	}{
		{
			name:    "unmapped address",
			address: 0x5000,
			read: func(a uint64) error {
				_, err := r.ReadUint32(a)
				return err
			},
		},
		{
			name:    "read straddles region end",
			address: 0x1002,
			read: func(a uint64) error {
				_, err := r.ReadUint32(a)
				return err
			},
		},
		{
			name:    "pointer wider than region",
			address: 0x1000,
			read: func(a uint64) error {
				_, err := r.ReadPointer(a)
				return err
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.read(tt.address)
			assert.True(t, errors.Is(err, ErrReadFault), "got %v", err)
		})
	}
}

func TestReader_ProcessExited(t *testing.T) {
	img := NewImage(4)
	img.Alloc(0x1000, 4)
	r, err := NewReader(img, 4)
	require.NoError(t, err)

	require.NoError(t, img.Close())
	_, err = r.ReadUint32(0x1000)
	assert.ErrorIs(t, err, ErrReadFault)
}

func TestNewReader_PointerSize(t *testing.T) {
	_, err := NewReader(NewImage(4), 2)
	assert.Error(t, err)
}

func TestReader_ResolvePointerChain(t *testing.T) {
	img := NewImage(4)
	img.Alloc(0x400000, 0x100)
	img.Alloc(0x500000, 0x100)
	img.Alloc(0x600000, 0x100)
	// base+0x10 -> 0x500000, 0x500000+0x20 -> 0x600000
	img.PutPointer(0x400010, 0x500000)
	img.PutPointer(0x500020, 0x600000)
	// dangling pointer into unmapped memory
	img.PutPointer(0x400040, 0x900000)

	r, err := NewReader(img, 4)
	require.NoError(t, err)

	tests := []struct {
		name    string
		base    uint64
		offsets []uint64
		want    uint64
		wantErr error
	}{
		{
			name: "empty chain returns base",
			base: 0x400000,
			want: 0x400000,
		},
		{
			name:    "single offset is added, not dereferenced",
			base:    0x400000,
			offsets: []uint64{0x10},
			want:    0x400010,
		},
		{
			name:    "two levels",
			base:    0x400000,
			offsets: []uint64{0x10, 0x20},
			want:    0x500020,
		},
		{
			name:    "three levels",
			base:    0x400000,
			offsets: []uint64{0x10, 0x20, 0x3C},
			want:    0x60003C,
		},
		{
			name:    "intermediate fault aborts",
			base:    0x400000,
			offsets: []uint64{0x40, 0x0, 0x4},
			wantErr: ErrReadFault,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.ResolvePointerChain(tt.base, tt.offsets...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
