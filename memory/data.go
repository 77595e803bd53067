package memory

import (
	"encoding/binary"
	"errors"
)

const SCRATCH_SIZE = 8 // Largest scalar transfer, in bytes.

// Bus is the address space seen by the DataMemory accessor.
type Bus interface {
	Read(address uint32, p []byte) error
	Write(address uint32, p []byte) error
}

// DataMemory moves scalars of 1 to 8 bytes between the CPU and the bus
// through a scratch buffer. Addresses are truncated to 32 bits. Values are
// assembled in the configured byte order, which must match the guest's
// convention (big-endian on this console).
//
// A DataMemory belongs to one execution context; it is not safe for
// concurrent use.
type DataMemory struct {
	Bus   Bus
	Order binary.ByteOrder

	last    uint32
	scratch [SCRATCH_SIZE]byte
}

// NewDataMemory creates an accessor; a nil order selects big-endian.
func NewDataMemory(bus Bus, order binary.ByteOrder) *DataMemory {
	if order == nil {
		order = binary.BigEndian
	}
	return &DataMemory{Bus: bus, Order: order}
}

// LastAddress returns the truncated address of the most recent transfer.
func (dm *DataMemory) LastAddress() uint32 {
	return dm.last
}

func (dm *DataMemory) fault(address uint32, write bool, err error) error {
	if errors.Is(err, ErrDeviceNotFound) {
		return &Fault{Address: address, Write: write, Err: err}
	}
	return err
}

// ReadData loads size bytes at address into the scratch buffer.
func (dm *DataMemory) ReadData(address uint64, size int) (err error) {
	if size > SCRATCH_SIZE || size < 0 {
		return ErrTransferSize
	}

	dm.last = uint32(address)
	clear(dm.scratch[:])

	err = dm.Bus.Read(dm.last, dm.scratch[:size])
	return dm.fault(dm.last, false, err)
}

// WriteData stores the first size bytes of the scratch buffer at address.
func (dm *DataMemory) WriteData(address uint64, size int) (err error) {
	if size > SCRATCH_SIZE || size < 0 {
		return ErrTransferSize
	}

	dm.last = uint32(address)

	err = dm.Bus.Write(dm.last, dm.scratch[:size])
	return dm.fault(dm.last, true, err)
}

// Data8 returns the scratch buffer as a byte.
func (dm *DataMemory) Data8() uint8 { return dm.scratch[0] }

// Data16 returns the scratch buffer as a 16-bit value.
func (dm *DataMemory) Data16() uint16 { return dm.Order.Uint16(dm.scratch[:]) }

// Data32 returns the scratch buffer as a 32-bit value.
func (dm *DataMemory) Data32() uint32 { return dm.Order.Uint32(dm.scratch[:]) }

// Data64 returns the scratch buffer as a 64-bit value.
func (dm *DataMemory) Data64() uint64 { return dm.Order.Uint64(dm.scratch[:]) }

func (dm *DataMemory) SetData8(value uint8)   { dm.scratch[0] = value }
func (dm *DataMemory) SetData16(value uint16) { dm.Order.PutUint16(dm.scratch[:], value) }
func (dm *DataMemory) SetData32(value uint32) { dm.Order.PutUint32(dm.scratch[:], value) }
func (dm *DataMemory) SetData64(value uint64) { dm.Order.PutUint64(dm.scratch[:], value) }

// Load reads a size byte value at address, zero-extended.
func (dm *DataMemory) Load(address uint64, size int) (value uint64, err error) {
	err = dm.ReadData(address, size)
	if err != nil {
		return
	}

	switch size {
	case 1:
		value = uint64(dm.Data8())
	case 2:
		value = uint64(dm.Data16())
	case 4:
		value = uint64(dm.Data32())
	case 8:
		value = dm.Data64()
	default:
		err = ErrTransferSize
	}
	return
}

// Store writes the low size bytes of value at address.
func (dm *DataMemory) Store(address uint64, size int, value uint64) (err error) {
	switch size {
	case 1:
		dm.SetData8(uint8(value))
	case 2:
		dm.SetData16(uint16(value))
	case 4:
		dm.SetData32(uint32(value))
	case 8:
		dm.SetData64(value)
	default:
		return ErrTransferSize
	}

	return dm.WriteData(address, size)
}

// ReadWord fetches an aligned instruction word.
func (dm *DataMemory) ReadWord(address uint64) (word uint32, err error) {
	value, err := dm.Load(address, 4)
	word = uint32(value)
	return
}

func (dm *DataMemory) bigEndian() bool {
	return dm.Order == binary.BigEndian
}

// ReadData128 loads 16 bytes as two 8-byte transfers. In big-endian order
// the first 8 bytes are the high half.
func (dm *DataMemory) ReadData128(address uint64) (hi, lo uint64, err error) {
	first, err := dm.Load(address, 8)
	if err != nil {
		return
	}
	second, err := dm.Load(address+8, 8)
	if err != nil {
		return
	}

	if dm.bigEndian() {
		hi, lo = first, second
	} else {
		hi, lo = second, first
	}
	return
}

// WriteData128 stores 16 bytes as two 8-byte transfers.
func (dm *DataMemory) WriteData128(address uint64, hi, lo uint64) (err error) {
	first, second := lo, hi
	if dm.bigEndian() {
		first, second = hi, lo
	}

	err = dm.Store(address, 8, first)
	if err != nil {
		return
	}
	return dm.Store(address+8, 8, second)
}
