package memory

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataMemory_Views(t *testing.T) {
	assert := assert.New(t)

	r, ram, _ := newTestRouter(t)
	dm := NewDataMemory(r, nil)

	copy(ram.Bytes()[0x20:], []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef})

	assert.NoError(dm.ReadData(0x8000_0020, 8))
	assert.Equal(uint64(0x0123456789abcdef), dm.Data64())
	assert.Equal(uint32(0x01234567), dm.Data32())
	assert.Equal(uint16(0x0123), dm.Data16())
	assert.Equal(uint8(0x01), dm.Data8())
	assert.Equal(uint32(0x8000_0020), dm.LastAddress())

	// Reads clear the scratch buffer first.
	assert.NoError(dm.ReadData(0x22, 2))
	assert.Equal(uint64(0x4567_0000_0000_0000), dm.Data64())

	dm.SetData16(0xbeef)
	assert.NoError(dm.WriteData(0xFFFF_FFFF_A000_0030, 2))
	assert.Equal([]byte{0xbe, 0xef}, ram.Bytes()[0x30:0x32])
	assert.Equal(uint32(0xA000_0030), dm.LastAddress())

	assert.ErrorIs(dm.ReadData(0, 9), ErrTransferSize)
	assert.ErrorIs(dm.WriteData(0, 16), ErrTransferSize)
}

func TestDataMemory_LoadStore(t *testing.T) {
	assert := assert.New(t)

	r, _, _ := newTestRouter(t)
	dm := NewDataMemory(r, binary.BigEndian)

	table := [...]struct {
		size  int
		value uint64
	}{
		{1, 0xfe},
		{2, 0xfeed},
		{4, 0xfeedface},
		{8, 0xfeedface_cafebabe},
	}

	for _, entry := range table {
		assert.NoError(dm.Store(0x100, entry.size, entry.value))
		value, err := dm.Load(0x100, entry.size)
		assert.NoError(err)
		assert.Equal(entry.value, value, "size %d", entry.size)
	}

	word, err := dm.ReadWord(0x100)
	assert.NoError(err)
	assert.Equal(uint32(0xfeedface), word)

	_, err = dm.Load(0x100, 3)
	assert.ErrorIs(err, ErrTransferSize)
}

func TestDataMemory_Fault(t *testing.T) {
	assert := assert.New(t)

	r, _, _ := newTestRouter(t)
	dm := NewDataMemory(r, nil)

	err := dm.ReadData(0xA480_0000, 4)
	assert.ErrorIs(err, ErrDeviceNotFound)

	var fault *Fault
	assert.True(errors.As(err, &fault))
	assert.Equal(uint32(0xA480_0000), fault.Address)
	assert.False(fault.Write)

	err = dm.Store(0xA480_0000, 4, 0)
	assert.True(errors.As(err, &fault))
	assert.True(fault.Write)

	// Oversize transfers are host errors, not guest faults.
	err = dm.ReadData(0, 9)
	assert.False(errors.As(err, &fault))
}

func TestDataMemory_128(t *testing.T) {
	assert := assert.New(t)

	r, ram, _ := newTestRouter(t)

	big := NewDataMemory(r, binary.BigEndian)
	assert.NoError(big.WriteData128(0x200, 0x1111111111111111, 0x2222222222222222))
	assert.Equal(byte(0x11), ram.Bytes()[0x200])
	assert.Equal(byte(0x22), ram.Bytes()[0x208])

	hi, lo, err := big.ReadData128(0x200)
	assert.NoError(err)
	assert.Equal(uint64(0x1111111111111111), hi)
	assert.Equal(uint64(0x2222222222222222), lo)

	little := NewDataMemory(r, binary.LittleEndian)
	hi, lo, err = little.ReadData128(0x200)
	assert.NoError(err)
	assert.Equal(uint64(0x2222222222222222), hi)
	assert.Equal(uint64(0x1111111111111111), lo)

	little.SetData32(0x11223344)
	assert.NoError(little.WriteData(0x300, 4))
	assert.Equal([]byte{0x44, 0x33, 0x22, 0x11}, ram.Bytes()[0x300:0x304])
}
