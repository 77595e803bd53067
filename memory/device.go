package memory

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// BlockDevice is a fixed-size, byte-addressable region of the address space.
// Offsets are relative to the start of the device's window.
type BlockDevice interface {
	Size() uint32
	Read(offset uint32, p []byte) error
	Write(offset uint32, p []byte) error
}

// BaseAddresser is implemented by devices that want to know the absolute
// base address of the window an access arrived through.
type BaseAddresser interface {
	SetBaseAddress(address uint32)
}

// clip returns the part of [offset, offset+n) that lies below capacity.
func clip(offset uint32, n int, capacity int) (start, end int, ok bool) {
	if int64(offset) >= int64(capacity) {
		return
	}
	start = int(offset)
	end = start + n
	if end > capacity {
		end = capacity
	}
	ok = true
	return
}

// Buffer is a plain byte block. Reads past the data return zero, and writes
// past it (or to a read-only buffer) are dropped.
type Buffer struct {
	Data     []byte // Backing store.
	Window   uint32 // Window size; defaults to len(Data).
	ReadOnly bool   // If set, writes are ignored.
}

var _ BlockDevice = (*Buffer)(nil)

// NewBuffer allocates a zeroed buffer of the given size.
func NewBuffer(size int) *Buffer {
	return &Buffer{Data: make([]byte, size)}
}

func (b *Buffer) Size() uint32 {
	if b.Window != 0 {
		return b.Window
	}
	return uint32(len(b.Data))
}

func (b *Buffer) Read(offset uint32, p []byte) error {
	clear(p)
	if start, end, ok := clip(offset, len(p), len(b.Data)); ok {
		copy(p, b.Data[start:end])
	}
	return nil
}

func (b *Buffer) Write(offset uint32, p []byte) error {
	if b.ReadOnly {
		return nil
	}
	if start, end, ok := clip(offset, len(p), len(b.Data)); ok {
		copy(b.Data[start:end], p)
	}
	return nil
}

// Dummy stands in for hardware that is not emulated. Reads return zero and
// writes are discarded.
type Dummy struct {
	Verbose bool
	Log     logrus.FieldLogger
	Name    string
	Window  uint32
	base    uint32
}

var _ BlockDevice = (*Dummy)(nil)
var _ BaseAddresser = (*Dummy)(nil)

func (d *Dummy) Size() uint32 {
	return d.Window
}

func (d *Dummy) SetBaseAddress(address uint32) {
	d.base = address
}

func (d *Dummy) Read(offset uint32, p []byte) error {
	clear(p)
	if d.Verbose && d.Log != nil {
		d.Log.WithField("address", fmt.Sprintf("0x%08x", d.base+offset)).Warnf("%v: read %d bytes", d.Name, len(p))
	}
	return nil
}

func (d *Dummy) Write(offset uint32, p []byte) error {
	if d.Verbose && d.Log != nil {
		d.Log.WithField("address", fmt.Sprintf("0x%08x", d.base+offset)).Warnf("%v: write %d bytes", d.Name, len(p))
	}
	return nil
}
