package cpu

import (
	"math"
)

// FCR31 fields.
const (
	FCR31_RM_MASK   = 0x3 // Rounding mode.
	FCR31_FLAGS     = 2   // Sticky flag bits start.
	FCR31_ENABLES   = 7   // Enable bits start.
	FCR31_CAUSE     = 12  // Cause bits start.
	FCR31_CAUSE_ALL = 0x3f << FCR31_CAUSE
	FCR31_CONDITION = 1 << 23 // Compare result.
	FCR31_FS        = 1 << 24 // Flush denormals.
	FCR31_WRITABLE  = 0x0183_ffff

	FCR0_REVISION = 0x0000_0a00 // Implementation/revision of the FPU.
)

// Rounding modes in FCR31.
const (
	ROUND_NEAREST = 0
	ROUND_ZERO    = 1
	ROUND_PLUS    = 2
	ROUND_MINUS   = 3
)

// Registers is the user-visible register file.
type Registers struct {
	PC    uint64     // Always a zero-extended 32-bit address.
	GPR   [32]uint64 // GPR[0] reads as zero.
	Hi    uint64
	Lo    uint64
	FPR   [32]uint64 // Raw floating point register storage.
	FCR0  uint32
	FCR31 uint32
	LLBit bool
}

// ReadFPR32 reads the low 32-bit view of an FPR. With fr clear, odd
// registers are the upper half of the even register below them.
func (r *Registers) ReadFPR32(index int, fr bool) uint32 {
	index &= 0x1f
	if fr || index&1 == 0 {
		return uint32(r.FPR[index])
	}
	return uint32(r.FPR[index&^1] >> 32)
}

// WriteFPR32 writes the 32-bit view of an FPR.
func (r *Registers) WriteFPR32(index int, fr bool, value uint32) {
	index &= 0x1f
	if fr || index&1 == 0 {
		r.FPR[index] = r.FPR[index]&^0xffff_ffff | uint64(value)
		return
	}
	even := index &^ 1
	r.FPR[even] = r.FPR[even]&0xffff_ffff | uint64(value)<<32
}

// ReadFPR64 reads the 64-bit view of an FPR. With fr clear, only even
// registers hold 64-bit values.
func (r *Registers) ReadFPR64(index int, fr bool) uint64 {
	index &= 0x1f
	if !fr {
		index &^= 1
	}
	return r.FPR[index]
}

// WriteFPR64 writes the 64-bit view of an FPR.
func (r *Registers) WriteFPR64(index int, fr bool, value uint64) {
	index &= 0x1f
	if !fr {
		index &^= 1
	}
	r.FPR[index] = value
}

func (r *Registers) ReadSingle(index int, fr bool) float32 {
	return math.Float32frombits(r.ReadFPR32(index, fr))
}

func (r *Registers) WriteSingle(index int, fr bool, value float32) {
	r.WriteFPR32(index, fr, math.Float32bits(value))
}

func (r *Registers) ReadDouble(index int, fr bool) float64 {
	return math.Float64frombits(r.ReadFPR64(index, fr))
}

func (r *Registers) WriteDouble(index int, fr bool, value float64) {
	r.WriteFPR64(index, fr, math.Float64bits(value))
}

// Condition returns the FPU compare flag.
func (r *Registers) Condition() bool {
	return r.FCR31&FCR31_CONDITION != 0
}

func (r *Registers) setCondition(value bool) {
	if value {
		r.FCR31 |= FCR31_CONDITION
	} else {
		r.FCR31 &^= FCR31_CONDITION
	}
}

func signExtend32(value uint32) uint64 {
	return uint64(int64(int32(value)))
}
