package memory

import (
	"context"
	"errors"
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (r *Router, ram *Ram, rom *Buffer) {
	r = NewRouter(nil)
	ram = NewRam(0x10000)
	rom = &Buffer{Data: []byte{0x80, 0x37, 0x12, 0x40, 1, 2, 3, 4}, Window: 0x0FC0_0000, ReadOnly: true}

	require.NoError(t, r.Map("rdram", 0, ram))
	require.NoError(t, r.Map("cart", 0x1000_0000, rom))
	require.NoError(t, r.Map("pif", 0x1FC0_0000, NewBuffer(0x800)))
	return
}

func TestRouter_Map(t *testing.T) {
	assert := assert.New(t)

	r, _, _ := newTestRouter(t)

	err := r.Map("overlap", 0x03E0_0000, NewBuffer(0x200000))
	assert.ErrorIs(err, ErrWindowOverlap)

	err = r.Map("empty", 0x0500_0000, &Buffer{})
	assert.ErrorIs(err, ErrWindowEmpty)

	assert.NoError(r.Map("dd", 0x0500_0000, &Dummy{Window: 0x0100_0000}))

	windows := maps.Collect(r.Windows())
	assert.Equal(map[string]uint32{
		"rdram": 0,
		"dd":    0x0500_0000,
		"cart":  0x1000_0000,
		"pif":   0x1FC0_0000,
	}, windows)

	var order []uint32
	for _, base := range r.Windows() {
		order = append(order, base)
	}
	assert.IsIncreasing(order)
}

func TestRouter_Resolve(t *testing.T) {
	assert := assert.New(t)

	r, ram, rom := newTestRouter(t)

	table := [...]struct {
		address uint32
		device  BlockDevice
		offset  uint32
		err     error
	}{
		{0x0000_0000, ram, 0, nil},
		{0x03EF_FFFF, ram, 0x03EF_FFFF, nil},
		{0x03F0_0000, nil, 0, ErrDeviceNotFound},
		{0x1000_0004, rom, 4, nil},
		{0x8000_0400, ram, 0x400, nil},
		{0xA000_0400, ram, 0x400, nil},
		{0xB000_0000, rom, 0, nil},
		{0xBFC0_07C0, nil, 0x7C0, nil},
		{0xC000_0000, nil, 0, ErrDeviceNotFound},
		{0xFFFF_FFFF, nil, 0, ErrDeviceNotFound},
	}

	for _, entry := range table {
		device, err := r.GetDevice(entry.address)
		if entry.err != nil {
			assert.ErrorIs(err, entry.err, "0x%08x", entry.address)
			var ea *ErrAddress
			assert.True(errors.As(err, &ea))
			assert.Equal(entry.address, ea.Address)
			continue
		}
		assert.NoError(err)
		if entry.device != nil {
			assert.Same(entry.device, device, "0x%08x", entry.address)
		}
		offset, err := r.GetDeviceOffset(entry.address)
		assert.NoError(err)
		assert.Equal(entry.offset, offset, "0x%08x", entry.address)
	}
}

func TestRouter_ReadWrite(t *testing.T) {
	assert := assert.New(t)

	r, ram, _ := newTestRouter(t)

	assert.NoError(r.Write(0xA000_0010, []byte{1, 2, 3, 4}))
	assert.Equal([]byte{1, 2, 3, 4}, ram.Bytes()[0x10:0x14])

	p := make([]byte, 4)
	assert.NoError(r.Read(0x1000_0000, p))
	assert.Equal([]byte{0x80, 0x37, 0x12, 0x40}, p)

	// ROM ignores writes.
	assert.NoError(r.Write(0x1000_0000, []byte{0, 0, 0, 0}))
	assert.NoError(r.Read(0x1000_0000, p))
	assert.Equal([]byte{0x80, 0x37, 0x12, 0x40}, p)

	assert.ErrorIs(r.Read(0x0480_0000, p), ErrDeviceNotFound)
}

func TestRouter_Replace(t *testing.T) {
	assert := assert.New(t)

	r, _, rom := newTestRouter(t)

	cart := &Buffer{Data: []byte{0xaa, 0xbb}, Window: 0x0FC0_0000}
	old, err := r.Replace("cart", cart)
	assert.NoError(err)
	assert.Same(rom, old)

	p := make([]byte, 2)
	assert.NoError(r.Read(0x1000_0000, p))
	assert.Equal([]byte{0xaa, 0xbb}, p)

	_, err = r.Replace("missing", cart)
	assert.ErrorIs(err, ErrWindowUnknown)

	_, err = r.Replace("rdram", NewBuffer(0x1100_0000))
	assert.ErrorIs(err, ErrWindowOverlap)
}

func TestRouter_Copy(t *testing.T) {
	assert := assert.New(t)

	r, ram, _ := newTestRouter(t)

	count, err := r.Copy(context.Background(), CopyRequest{Source: 0x1000_0000, Destination: 0x400, Length: 8})
	assert.NoError(err)
	assert.Equal(8, count)
	assert.Equal([]byte{0x80, 0x37, 0x12, 0x40, 1, 2, 3, 4}, ram.Bytes()[0x400:0x408])

	// Trailing partial granule is not copied.
	count, err = r.Copy(context.Background(), CopyRequest{Source: 0x1000_0000, Destination: 0x800, Length: 7})
	assert.NoError(err)
	assert.Equal(4, count)
	assert.Equal([]byte{0x80, 0x37, 0x12, 0x40, 0, 0, 0, 0}, ram.Bytes()[0x800:0x808])

	// Overlapping forward copy replicates the first granule.
	copy(ram.Bytes()[0x100:], []byte{1, 2, 3, 4})
	_, err = r.Copy(context.Background(), CopyRequest{Source: 0x100, Destination: 0x104, Length: 8})
	assert.NoError(err)
	assert.Equal([]byte{1, 2, 3, 4, 1, 2, 3, 4, 1, 2, 3, 4}, ram.Bytes()[0x100:0x10c])

	// Past the backing store, the source reads as zero.
	copy(ram.Bytes()[0xfffc:], []byte{5, 6, 7, 8})
	count, err = r.Copy(context.Background(), CopyRequest{Source: 0xfffc, Destination: 0x1FC0_0000, Length: 8})
	assert.NoError(err)
	assert.Equal(8, count)
	pif := make([]byte, 8)
	assert.NoError(r.Read(0x1FC0_0000, pif))
	assert.Equal([]byte{5, 6, 7, 8, 0, 0, 0, 0}, pif)

	count, err = r.Copy(context.Background(), CopyRequest{Source: 0x0480_0000, Destination: 0, Length: 4})
	assert.ErrorIs(err, ErrDeviceNotFound)
	assert.Equal(0, count)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	count, err = r.Copy(ctx, CopyRequest{Source: 0, Destination: 0x1000, Length: 16})
	assert.ErrorIs(err, context.Canceled)
	assert.Equal(0, count)
}
