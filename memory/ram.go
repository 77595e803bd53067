package memory

const (
	RDRAM_WINDOW   = 0x03F0_0000 // Address window reserved for RDRAM.
	RDRAM_CAPACITY = 8 << 20     // Default installed RDRAM (expansion pak).
)

// Ram is the RDRAM backing store. The window spans RDRAM_WINDOW bytes, but
// only the installed capacity is backed; accesses beyond it are no-ops.
//
// RDRAM stores nine bits per byte. The ninth bits are kept in a separate
// hidden plane with one entry per 16-bit word, visible only through
// HiddenRead and HiddenWrite.
type Ram struct {
	data   []byte
	hidden []byte
}

var _ BlockDevice = (*Ram)(nil)

// NewRam allocates RDRAM with the given capacity (RDRAM_CAPACITY if zero).
func NewRam(capacity int) *Ram {
	if capacity <= 0 {
		capacity = RDRAM_CAPACITY
	}
	return &Ram{
		data:   make([]byte, capacity),
		hidden: make([]byte, capacity/2),
	}
}

func (r *Ram) Size() uint32 {
	return RDRAM_WINDOW
}

// Capacity returns the number of backed bytes.
func (r *Ram) Capacity() int {
	return len(r.data)
}

// Bytes exposes the backing store.
func (r *Ram) Bytes() []byte {
	return r.data
}

func (r *Ram) Read(offset uint32, p []byte) error {
	clear(p)
	start, end, ok := clip(offset, len(p), len(r.data))
	if ok {
		copy(p, r.data[start:end])
	}
	return nil
}

func (r *Ram) Write(offset uint32, p []byte) error {
	start, end, ok := clip(offset, len(p), len(r.data))
	if ok {
		copy(r.data[start:end], p)
	}
	return nil
}

// HiddenLength is the number of hidden plane entries.
func (r *Ram) HiddenLength() int {
	return len(r.hidden)
}

// HiddenRead returns a hidden plane entry; out of range reads are zero.
func (r *Ram) HiddenRead(index int) byte {
	if index < 0 || index >= len(r.hidden) {
		return 0
	}
	return r.hidden[index]
}

// HiddenWrite sets a hidden plane entry; out of range writes are dropped.
func (r *Ram) HiddenWrite(index int, value byte) {
	if index < 0 || index >= len(r.hidden) {
		return
	}
	r.hidden[index] = value
}

// Reset zeroes the backing store and the hidden plane.
func (r *Ram) Reset() {
	clear(r.data)
	clear(r.hidden)
}
