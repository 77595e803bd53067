package rcp

import (
	"github.com/sirupsen/logrus"

	"github.com/ezrec/vr4300/memory"
)

// MI register offsets.
const (
	MI_MODE      = 0x00
	MI_VERSION   = 0x04
	MI_INTR      = 0x08
	MI_INTR_MASK = 0x0c

	MI_VERSION_VALUE = 0x0202_0102
)

// MI_MODE bits.
const (
	MI_MODE_INIT_LENGTH = 0x7f
	MI_MODE_INIT        = 1 << 7 // Read: init mode.
	MI_MODE_EBUS        = 1 << 8 // Read: ebus test mode.
	MI_MODE_RDRAM       = 1 << 9 // Read: RDRAM register mode.

	MI_SET_CLEAR_INIT  = 1 << 7
	MI_SET_SET_INIT    = 1 << 8
	MI_SET_CLEAR_EBUS  = 1 << 9
	MI_SET_SET_EBUS    = 1 << 10
	MI_SET_CLEAR_DP    = 1 << 11
	MI_SET_CLEAR_RDRAM = 1 << 12
	MI_SET_SET_RDRAM   = 1 << 13
)

// MI is the MIPS interface. It owns the interrupt pending and mask bits of
// the other blocks, and drives the CPU's external interrupt line.
type MI struct {
	memory.Registers

	mode    *memory.Register
	version *memory.Register
	intr    *memory.Register
	mask    *memory.Register
}

// NewMI creates an MI in its power-on state.
func NewMI(log logrus.FieldLogger) (mi *MI) {
	mi = &MI{}
	mi.mode = &memory.Register{Name: "MI_MODE", Dual: true, OnWrite: mi.writeMode}
	mi.version = &memory.Register{Name: "MI_VERSION", Value: MI_VERSION_VALUE, ReadOnly: true}
	mi.intr = &memory.Register{Name: "MI_INTR", ReadOnly: true}
	mi.mask = &memory.Register{Name: "MI_INTR_MASK", Dual: true, OnWrite: mi.writeMask}

	mi.Registers = memory.Registers{
		Log:    defaultLog(log, "mi"),
		Name:   "mi",
		Window: RCP_WINDOW,
		Regs:   []*memory.Register{mi.mode, mi.version, mi.intr, mi.mask},
	}
	return
}

// pairs applies set/clear bit pairs starting at bit first to value.
// Bit 2n of a command clears bit n, bit 2n+1 sets it. A command with both
// bits set leaves the bit unchanged.
func pairs(value uint32, command uint32, first uint, count int) uint32 {
	for n := range count {
		clr := command&(1<<(first+uint(2*n))) != 0
		set := command&(1<<(first+uint(2*n)+1)) != 0
		switch {
		case clr && !set:
			value &^= 1 << n
		case set && !clr:
			value |= 1 << n
		}
	}
	return value
}

func (mi *MI) writeMode(command uint32) {
	flags := mi.mode.Value >> 7 & 0x7
	flags = pairs(flags&0x3, command, 7, 2) | pairs(flags>>2, command, 12, 1)<<2
	mi.mode.Value = command&MI_MODE_INIT_LENGTH | flags<<7

	if command&MI_SET_CLEAR_DP != 0 {
		mi.Clear(INTR_DP)
	}
}

func (mi *MI) writeMask(command uint32) {
	mi.mask.Value = pairs(mi.mask.Value, command, 0, int(INTR_COUNT))
}

// Raise sets an interrupt pending.
func (mi *MI) Raise(line Interrupt) {
	mi.intr.Value |= 1 << line
	if mi.Verbose {
		mi.Log.Debugf("raise %v", line)
	}
}

// Clear acknowledges an interrupt.
func (mi *MI) Clear(line Interrupt) {
	mi.intr.Value &^= 1 << line
}

// Pending reports whether any unmasked interrupt is pending.
func (mi *MI) Pending() bool {
	return mi.intr.Value&mi.mask.Value != 0
}

// Interrupts returns the pending interrupt bits.
func (mi *MI) Interrupts() uint32 {
	return mi.intr.Value
}

// Mask returns the interrupt mask bits.
func (mi *MI) Mask() uint32 {
	return mi.mask.Value
}

// Mode returns the MI_MODE read value.
func (mi *MI) Mode() uint32 {
	return mi.mode.Value
}

// SetVersion overrides the version register, as the boot code leaves it.
func (mi *MI) SetVersion(version uint32) {
	mi.version.Value = version
}

// Reset returns the MI to its power-on state.
func (mi *MI) Reset() {
	mi.mode.Value, mi.mode.Written = 0, 0
	mi.intr.Value = 0
	mi.mask.Value, mi.mask.Written = 0, 0
	mi.version.Value = MI_VERSION_VALUE
}
