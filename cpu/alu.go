package cpu

import (
	"math/bits"

	"github.com/ezrec/vr4300/mips"
)

// operands returns rs and either rt or the sign-extended immediate, and
// the destination register.
func (e *Engine) operands(inst mips.Instruction) (a, b uint64, dest int) {
	a = e.gpr(inst.Rs())
	if inst.Opcode.Has(mips.FlagImmediate) {
		return a, uint64(inst.Offset()), inst.Rt()
	}
	return a, e.gpr(inst.Rt()), inst.Rd()
}

func (e *Engine) add32(inst mips.Instruction) error {
	a, b, dest := e.operands(inst)
	x, y := uint32(a), uint32(b)
	sum := x + y
	if !inst.Opcode.Has(mips.FlagUnsigned) && (x^sum)&(y^sum)&0x8000_0000 != 0 {
		e.raise(ExcOverflow)
		return nil
	}
	e.setGPR32(dest, sum)
	return nil
}

func (e *Engine) add64(inst mips.Instruction) error {
	a, b, dest := e.operands(inst)
	sum := a + b
	if !inst.Opcode.Has(mips.FlagUnsigned) && (a^sum)&(b^sum)&(1<<63) != 0 {
		e.raise(ExcOverflow)
		return nil
	}
	e.setGPR(dest, sum)
	return nil
}

func (e *Engine) sub32(inst mips.Instruction) error {
	a, b, dest := e.operands(inst)
	x, y := uint32(a), uint32(b)
	diff := x - y
	if !inst.Opcode.Has(mips.FlagUnsigned) && (x^y)&(x^diff)&0x8000_0000 != 0 {
		e.raise(ExcOverflow)
		return nil
	}
	e.setGPR32(dest, diff)
	return nil
}

func (e *Engine) sub64(inst mips.Instruction) error {
	a, b, dest := e.operands(inst)
	diff := a - b
	if !inst.Opcode.Has(mips.FlagUnsigned) && (a^b)&(a^diff)&(1<<63) != 0 {
		e.raise(ExcOverflow)
		return nil
	}
	e.setGPR(dest, diff)
	return nil
}

// logic operations use the zero-extended immediate.
func (e *Engine) logic(inst mips.Instruction) error {
	a := e.gpr(inst.Rs())
	b, dest := e.gpr(inst.Rt()), inst.Rd()
	if inst.Opcode.Has(mips.FlagImmediate) {
		b, dest = uint64(inst.Immediate()), inst.Rt()
	}

	var result uint64
	switch inst.Opcode.Arith {
	case mips.ArithAnd:
		result = a & b
	case mips.ArithOr:
		result = a | b
	case mips.ArithXor:
		result = a ^ b
	case mips.ArithNor:
		result = ^(a | b)
	default:
		return ErrOpcode(inst)
	}

	e.setGPR(dest, result)
	return nil
}

func (e *Engine) loadUpper(inst mips.Instruction) error {
	e.setGPR32(inst.Rt(), uint32(inst.Immediate())<<16)
	return nil
}

// shiftAmount is the immediate sa field or the low 6 bits of rs.
func (e *Engine) shiftAmount(inst mips.Instruction) uint {
	if inst.Opcode.Has(mips.FlagVariableShift) {
		return uint(e.gpr(inst.Rs()) & 0x3f)
	}
	sa := uint(inst.Sa())
	if inst.Opcode.Has(mips.FlagShift32) {
		sa += 32
	}
	return sa
}

func (e *Engine) shift32(inst mips.Instruction) error {
	value := uint32(e.gpr(inst.Rt()))
	sa := e.shiftAmount(inst) & 0x1f

	var result uint32
	switch inst.Opcode.Arith {
	case mips.ArithShiftLeft:
		result = value << sa
	case mips.ArithShiftRight:
		result = value >> sa
	case mips.ArithShiftRightArith:
		result = uint32(int32(value) >> sa)
	default:
		return ErrOpcode(inst)
	}

	e.setGPR32(inst.Rd(), result)
	return nil
}

func (e *Engine) shift64(inst mips.Instruction) error {
	value := e.gpr(inst.Rt())
	sa := e.shiftAmount(inst)

	var result uint64
	switch inst.Opcode.Arith {
	case mips.ArithShiftLeft:
		result = value << sa
	case mips.ArithShiftRight:
		result = value >> sa
	case mips.ArithShiftRightArith:
		result = uint64(int64(value) >> sa)
	default:
		return ErrOpcode(inst)
	}

	e.setGPR(inst.Rd(), result)
	return nil
}

func (e *Engine) multiply32(inst mips.Instruction) error {
	a, b := uint32(e.gpr(inst.Rs())), uint32(e.gpr(inst.Rt()))

	var product uint64
	if inst.Opcode.Has(mips.FlagUnsigned) {
		product = uint64(a) * uint64(b)
	} else {
		product = uint64(int64(int32(a)) * int64(int32(b)))
	}

	e.Lo = signExtend32(uint32(product))
	e.Hi = signExtend32(uint32(product >> 32))
	return nil
}

func (e *Engine) multiply64(inst mips.Instruction) error {
	a, b := e.gpr(inst.Rs()), e.gpr(inst.Rt())

	hi, lo := bits.Mul64(a, b)
	if !inst.Opcode.Has(mips.FlagUnsigned) {
		if int64(a) < 0 {
			hi -= b
		}
		if int64(b) < 0 {
			hi -= a
		}
	}

	e.Hi, e.Lo = hi, lo
	return nil
}

// divide32 never traps. Division by zero leaves the dividend in Hi and an
// all-ones quotient in Lo, or 1 for a negative signed dividend.
func (e *Engine) divide32(inst mips.Instruction) error {
	a, b := uint32(e.gpr(inst.Rs())), uint32(e.gpr(inst.Rt()))
	unsigned := inst.Opcode.Has(mips.FlagUnsigned)

	var quot, rem uint32
	switch {
	case b == 0:
		quot, rem = 0xffff_ffff, a
		if !unsigned && int32(a) < 0 {
			quot = 1
		}
	case unsigned:
		quot, rem = a/b, a%b
	default:
		quot, rem = uint32(int32(a)/int32(b)), uint32(int32(a)%int32(b))
	}

	e.Lo = signExtend32(quot)
	e.Hi = signExtend32(rem)
	return nil
}

func (e *Engine) divide64(inst mips.Instruction) error {
	a, b := e.gpr(inst.Rs()), e.gpr(inst.Rt())
	unsigned := inst.Opcode.Has(mips.FlagUnsigned)

	var quot, rem uint64
	switch {
	case b == 0:
		quot, rem = ^uint64(0), a
		if !unsigned && int64(a) < 0 {
			quot = 1
		}
	case unsigned:
		quot, rem = a/b, a%b
	default:
		quot, rem = uint64(int64(a)/int64(b)), uint64(int64(a)%int64(b))
	}

	e.Lo, e.Hi = quot, rem
	return nil
}

// setLess compares at the current operating width.
func (e *Engine) setLess(inst mips.Instruction) error {
	a, b, dest := e.operands(inst)
	if inst.Opcode.Has(mips.FlagImmediate) && e.Options.ImmediateCompare == ZeroExtend {
		b = uint64(inst.Immediate())
	}

	var less bool
	unsigned := inst.Opcode.Has(mips.FlagUnsigned)
	switch {
	case e.Mode64() && unsigned:
		less = a < b
	case e.Mode64():
		less = int64(a) < int64(b)
	case unsigned:
		less = uint32(a) < uint32(b)
	default:
		less = int32(a) < int32(b)
	}

	var result uint64
	if less {
		result = 1
	}
	e.setGPR(dest, result)
	return nil
}
