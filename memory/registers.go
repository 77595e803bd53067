package memory

import (
	"iter"

	"github.com/sirupsen/logrus"
)

// Register is one 32-bit memory-mapped register.
//
// A single register reads back what was written. A Dual register keeps the
// written value apart from the value the CPU reads, as status registers do
// where writes are commands.
type Register struct {
	Name     string
	Value    uint32             // Value returned on reads.
	Written  uint32             // Last value written, for Dual registers.
	Dual     bool               // Writes go to Written only.
	ReadOnly bool               // Writes are dropped and OnWrite is not called.
	OnWrite  func(value uint32) // Called after a completed write.
}

// Registers is a window of consecutive 32-bit registers, stored big-endian.
// Offsets beyond the last register read as zero.
type Registers struct {
	Verbose bool
	Log     logrus.FieldLogger
	Name    string
	Window  uint32
	Regs    []*Register

	base uint32
}

var _ BlockDevice = (*Registers)(nil)
var _ BaseAddresser = (*Registers)(nil)

func (rs *Registers) Size() uint32 {
	if rs.Window == 0 {
		return uint32(len(rs.Regs) * 4)
	}
	return rs.Window
}

func (rs *Registers) SetBaseAddress(address uint32) {
	rs.base = address
}

// BaseAddress returns the window base of the most recent access.
func (rs *Registers) BaseAddress() uint32 {
	return rs.base
}

// Register returns the register at a byte offset, or nil.
func (rs *Registers) Register(offset uint32) *Register {
	index := int(offset / 4)
	if index >= len(rs.Regs) {
		return nil
	}
	return rs.Regs[index]
}

// All iterates over register names and their offsets.
func (rs *Registers) All() iter.Seq2[string, uint32] {
	return func(yield func(string, uint32) bool) {
		for n, reg := range rs.Regs {
			if reg == nil || reg.Name == "" {
				continue
			}
			if !yield(reg.Name, uint32(n*4)) {
				return
			}
		}
	}
}

func (rs *Registers) Read(offset uint32, p []byte) error {
	for n := range p {
		at := offset + uint32(n)
		reg := rs.Register(at)
		if reg == nil {
			p[n] = 0
			continue
		}
		p[n] = byte(reg.Value >> (24 - 8*(at&3)))
	}

	if rs.Verbose && rs.Log != nil {
		rs.Log.Debugf("%v: read 0x%08x % x", rs.Name, rs.base+offset, p)
	}

	return nil
}

func (rs *Registers) Write(offset uint32, p []byte) error {
	if rs.Verbose && rs.Log != nil {
		rs.Log.Debugf("%v: write 0x%08x % x", rs.Name, rs.base+offset, p)
	}

	for n := 0; n < len(p); {
		at := offset + uint32(n)
		reg := rs.Register(at)
		if reg == nil {
			n++
			continue
		}

		value := reg.Value
		if reg.Dual {
			value = reg.Written
		}

		// Merge every byte of p that lands in this register.
		for ; n < len(p) && rs.Register(offset+uint32(n)) == reg; n++ {
			shift := 24 - 8*((offset+uint32(n))&3)
			value &^= 0xff << shift
			value |= uint32(p[n]) << shift
		}

		if reg.ReadOnly {
			continue
		}

		if reg.Dual {
			reg.Written = value
		} else {
			reg.Value = value
		}

		if reg.OnWrite != nil {
			reg.OnWrite(value)
		}
	}

	return nil
}
