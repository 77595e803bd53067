package memory

import (
	"errors"
	"io"
	"sync/atomic"
	"time"
)

const (
	VIEW_SIZE    = int64(1) << ADDR_WIDTH // Span of the physical address space.
	VIEW_BACKOFF = 200 * time.Microsecond // Writer wait between reader checks.
)

var ErrSeekRange = errors.New(f("seek outside address space"))

// View is a position-addressable byte stream over the whole physical
// address space, for loaders, save states and debuggers.
//
// Writes are fenced against reads: a writer waits until no read is in
// progress. The fence does not exclude the CPU, which accesses the router
// directly; callers that need a consistent image pause the run loop.
type View struct {
	Router  *Router
	Ram     *Ram // Source of the hidden bit plane; may be nil.
	Backoff time.Duration

	position int64
	readers  atomic.Int32
}

var (
	_ io.ReadWriteSeeker = (*View)(nil)
	_ io.ReaderAt        = (*View)(nil)
	_ io.WriterAt        = (*View)(nil)
	_ io.ByteReader      = (*View)(nil)
	_ io.ByteWriter      = (*View)(nil)
)

// NewView creates a view over the router.
func NewView(router *Router, ram *Ram) *View {
	return &View{Router: router, Ram: ram, Backoff: VIEW_BACKOFF}
}

// Position returns the current stream position.
func (v *View) Position() int64 {
	return v.position
}

// Readers returns the number of reads in progress.
func (v *View) Readers() int {
	return int(v.readers.Load())
}

// span applies op to each device window covered by [off, off+len(p)).
func (v *View) span(p []byte, off int64, op func(m *Mapping, offset uint32, p []byte) error) (n int, err error) {
	for n < len(p) {
		at := off + int64(n)
		if at >= VIEW_SIZE {
			err = io.EOF
			return
		}

		address := uint32(at)
		m, offset, err := v.Router.Resolve(address)
		if err != nil {
			return n, err
		}

		chunk := p[n:]
		if room := m.End() - uint64(m.Base) - uint64(offset); uint64(len(chunk)) > room {
			chunk = chunk[:room]
		}
		if remain := VIEW_SIZE - at; int64(len(chunk)) > remain {
			chunk = chunk[:remain]
		}

		if ba, ok := m.Device.(BaseAddresser); ok {
			ba.SetBaseAddress(m.Base)
		}
		err = op(m, offset, chunk)
		if err != nil {
			return n, err
		}
		n += len(chunk)
	}

	return
}

func (v *View) ReadAt(p []byte, off int64) (n int, err error) {
	if off < 0 {
		return 0, ErrSeekRange
	}

	v.readers.Add(1)
	defer v.readers.Add(-1)

	return v.span(p, off, func(m *Mapping, offset uint32, p []byte) error {
		return m.Device.Read(offset, p)
	})
}

// waitReaders spins until no reader is active.
func (v *View) waitReaders() {
	backoff := v.Backoff
	if backoff <= 0 {
		backoff = VIEW_BACKOFF
	}
	for v.readers.Load() > 0 {
		time.Sleep(backoff)
	}
}

func (v *View) WriteAt(p []byte, off int64) (n int, err error) {
	if off < 0 {
		return 0, ErrSeekRange
	}

	v.waitReaders()

	return v.span(p, off, func(m *Mapping, offset uint32, p []byte) error {
		return m.Device.Write(offset, p)
	})
}

func (v *View) Read(p []byte) (n int, err error) {
	n, err = v.ReadAt(p, v.position)
	v.position += int64(n)
	return
}

func (v *View) Write(p []byte) (n int, err error) {
	n, err = v.WriteAt(p, v.position)
	v.position += int64(n)
	return
}

func (v *View) Seek(offset int64, whence int) (pos int64, err error) {
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = v.position + offset
	case io.SeekEnd:
		pos = VIEW_SIZE + offset
	}

	if pos < 0 || pos > VIEW_SIZE {
		return v.position, ErrSeekRange
	}

	v.position = pos
	return
}

func (v *View) ReadByte() (value byte, err error) {
	var one [1]byte
	_, err = v.Read(one[:])
	value = one[0]
	return
}

func (v *View) WriteByte(value byte) (err error) {
	one := [1]byte{value}
	_, err = v.Write(one[:])
	return
}

// HiddenLength is the size of the RDRAM hidden bit plane.
func (v *View) HiddenLength() int {
	if v.Ram == nil {
		return 0
	}
	return v.Ram.HiddenLength()
}

// HiddenRead returns an RDRAM hidden plane entry.
func (v *View) HiddenRead(index int) byte {
	if v.Ram == nil {
		return 0
	}
	return v.Ram.HiddenRead(index)
}

// HiddenWrite sets an RDRAM hidden plane entry.
func (v *View) HiddenWrite(index int, value byte) {
	if v.Ram != nil {
		v.Ram.HiddenWrite(index, value)
	}
}
