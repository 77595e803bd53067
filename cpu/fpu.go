package cpu

import (
	"math"
	"math/big"

	"github.com/ezrec/vr4300/mips"
)

// Default NaNs, which are quiet under the legacy MIPS encoding where a set
// top fraction bit marks a signaling NaN.
const (
	NAN_SINGLE = 0x7fbf_ffff
	NAN_DOUBLE = 0x7ff7_ffff_ffff_ffff
)

const (
	smallestNormalSingle = 0x1p-126
	smallestNormalDouble = 0x1p-1022
)

func isSignalingSingle(bits uint32) bool {
	return bits&0x7f80_0000 == 0x7f80_0000 && bits&0x007f_ffff != 0 && bits&0x0040_0000 != 0
}

func isSignalingDouble(bits uint64) bool {
	const exp = 0x7ff0_0000_0000_0000
	const frac = 0x000f_ffff_ffff_ffff
	return bits&exp == exp && bits&frac != 0 && bits&(1<<51) != 0
}

func floatFormat(fm mips.Format) bool {
	return fm == mips.FormatS || fm == mips.FormatD
}

// readRaw reads an FPR at the width of fm.
func (e *Engine) readRaw(fm mips.Format, index int) uint64 {
	fr := e.Cp0.FR()
	switch fm {
	case mips.FormatD, mips.FormatL:
		return e.ReadFPR64(index, fr)
	}
	return uint64(e.ReadFPR32(index, fr))
}

func (e *Engine) writeRaw(fm mips.Format, index int, bits uint64) {
	fr := e.Cp0.FR()
	switch fm {
	case mips.FormatD, mips.FormatL:
		e.WriteFPR64(index, fr, bits)
	default:
		e.WriteFPR32(index, fr, uint32(bits))
	}
}

// readFloat reads a single or double operand, widened.
func (e *Engine) readFloat(fm mips.Format, index int) (value float64, signaling bool) {
	bits := e.readRaw(fm, index)
	if fm == mips.FormatS {
		return float64(math.Float32frombits(uint32(bits))), isSignalingSingle(uint32(bits))
	}
	return math.Float64frombits(bits), isSignalingDouble(bits)
}

// fromFloat encodes a value, which must be exact or infinite, in fm.
func fromFloat(fm mips.Format, value float64) uint64 {
	if fm == mips.FormatS {
		return uint64(math.Float32bits(float32(value)))
	}
	return math.Float64bits(value)
}

func defaultNaN(fm mips.Format) uint64 {
	if fm == mips.FormatS {
		return NAN_SINGLE
	}
	return NAN_DOUBLE
}

func roundingMode(rm uint32) big.RoundingMode {
	switch rm & FCR31_RM_MASK {
	case ROUND_ZERO:
		return big.ToZero
	case ROUND_PLUS:
		return big.ToPositiveInf
	case ROUND_MINUS:
		return big.ToNegativeInf
	}
	return big.ToNearestEven
}

func precision(fm mips.Format) uint {
	if fm == mips.FormatS {
		return 24
	}
	return 53
}

// fpuRound rounds z, already at the precision of fm, into fm's encoding.
func fpuRound(fm mips.Format, z *big.Float, rm uint32) (bits uint64, exc FpuException) {
	inexact := z.Acc() != big.Exact

	var value float64
	var acc big.Accuracy
	smallest := smallestNormalDouble
	if fm == mips.FormatS {
		var single float32
		single, acc = z.Float32()
		value = float64(single)
		smallest = smallestNormalSingle
	} else {
		value, acc = z.Float64()
	}
	inexact = inexact || acc != big.Exact

	switch {
	case math.IsInf(value, 0):
		exc |= FpeOverflow | FpeInexact
		value = overflowResult(fm, value < 0, rm)
	case inexact && math.Abs(value) < smallest:
		exc |= FpeUnderflow | FpeInexact
	case inexact:
		exc |= FpeInexact
	}

	return fromFloat(fm, value), exc
}

// overflowResult is infinity or the largest finite value, by rounding mode.
func overflowResult(fm mips.Format, negative bool, rm uint32) float64 {
	largest := math.MaxFloat64
	if fm == mips.FormatS {
		largest = math.MaxFloat32
	}

	toInf := true
	switch rm & FCR31_RM_MASK {
	case ROUND_ZERO:
		toInf = false
	case ROUND_PLUS:
		toInf = !negative
	case ROUND_MINUS:
		toInf = negative
	}

	value := largest
	if toInf {
		value = math.Inf(1)
	}
	if negative {
		value = -value
	}
	return value
}

// fpuException records exc in the FCR31 cause and flag fields, and raises
// a floating point exception if an enabled condition occurred.
func (e *Engine) fpuException(exc FpuException) (trapped bool) {
	cause := uint32(exc) & 0x3f
	e.FCR31 = e.FCR31&^FCR31_CAUSE_ALL | cause<<FCR31_CAUSE
	e.FCR31 |= (cause & 0x1f) << FCR31_FLAGS
	return e.fpuTrap()
}

// fpuTrap raises a floating point exception if FCR31 has a cause bit set
// with its enable.
func (e *Engine) fpuTrap() bool {
	cause := (e.FCR31 >> FCR31_CAUSE) & 0x1f
	enables := (e.FCR31 >> FCR31_ENABLES) & 0x1f
	if cause&enables == 0 {
		return false
	}

	e.raise(ExcFloatingPoint)
	return true
}

func (e *Engine) fpuArith(inst mips.Instruction) error {
	if !e.cp1() {
		return nil
	}

	fm := inst.Format()
	if !floatFormat(fm) {
		e.fpuException(FpeUnimplemented)
		return nil
	}

	var bits uint64
	var exc FpuException
	switch arith := inst.Opcode.Arith; arith {
	case mips.ArithMov:
		bits = e.readRaw(fm, inst.Fs())
	case mips.ArithAbs, mips.ArithNeg:
		bits = e.readRaw(fm, inst.Fs())
		sign := uint64(1) << 63
		if fm == mips.FormatS {
			sign = 1 << 31
		}
		if value, signaling := e.readFloat(fm, inst.Fs()); math.IsNaN(value) {
			if signaling {
				exc = FpeInvalid
			}
			bits = defaultNaN(fm)
		} else if arith == mips.ArithAbs {
			bits &^= sign
		} else {
			bits ^= sign
		}
	case mips.ArithAdd, mips.ArithSub, mips.ArithMul, mips.ArithDiv, mips.ArithSqrt:
		bits, exc = e.fpuCompute(fm, arith, inst.Fs(), inst.Ft())
	default:
		return ErrOpcode(inst)
	}

	if e.fpuException(exc) {
		return nil
	}

	e.writeRaw(fm, inst.Fd(), bits)
	return nil
}

// fpuCompute performs a rounded arithmetic operation. Special operands are
// resolved with host arithmetic; finite ones are rounded per FCR31.
func (e *Engine) fpuCompute(fm mips.Format, arith mips.Arith, fs, ft int) (bits uint64, exc FpuException) {
	a, sa := e.readFloat(fm, fs)
	b, sb := e.readFloat(fm, ft)
	if arith == mips.ArithSqrt {
		b, sb = 0, false
	}

	if math.IsNaN(a) || math.IsNaN(b) {
		if sa || sb {
			exc = FpeInvalid
		}
		return defaultNaN(fm), exc
	}

	var host float64
	switch arith {
	case mips.ArithAdd:
		host = a + b
	case mips.ArithSub:
		host = a - b
	case mips.ArithMul:
		host = a * b
	case mips.ArithDiv:
		host = a / b
	case mips.ArithSqrt:
		host = math.Sqrt(a)
	}

	switch {
	case math.IsNaN(host):
		return defaultNaN(fm), FpeInvalid
	case arith == mips.ArithDiv && b == 0:
		return fromFloat(fm, host), FpeDivideByZero
	case math.IsInf(a, 0) || math.IsInf(b, 0):
		return fromFloat(fm, host), 0
	case arith == mips.ArithSqrt && a == 0:
		return fromFloat(fm, a), 0
	}

	rm := e.FCR31 & FCR31_RM_MASK
	z := new(big.Float).SetPrec(precision(fm)).SetMode(roundingMode(rm))
	x, y := big.NewFloat(a), big.NewFloat(b)

	switch arith {
	case mips.ArithAdd:
		z.Add(x, y)
	case mips.ArithSub:
		z.Sub(x, y)
	case mips.ArithMul:
		z.Mul(x, y)
	case mips.ArithDiv:
		z.Quo(x, y)
	case mips.ArithSqrt:
		// Sqrt leaves the accuracy unset.
		root := new(big.Float).SetPrec(precision(fm)).SetMode(z.Mode())
		root.Set(z.Sqrt(x))
		bits, exc = fpuRound(fm, root, rm)
		square := new(big.Float).SetPrec(2*precision(fm)).Mul(root, root)
		if square.Cmp(x) != 0 {
			exc |= FpeInexact
		}
		return
	}

	return fpuRound(fm, z, rm)
}

// destination returns the result format of a conversion.
func destination(op *mips.Opcode) mips.Format {
	switch {
	case op.Any(mips.FlagDataS):
		return mips.FormatS
	case op.Any(mips.FlagDataD):
		return mips.FormatD
	case op.Any(mips.FlagData64):
		return mips.FormatL
	}
	return mips.FormatW
}

func (e *Engine) fpuConvert(inst mips.Instruction) error {
	if !e.cp1() {
		return nil
	}

	op := inst.Opcode
	src, dst := inst.Format(), destination(op)
	fixed := dst == mips.FormatW || dst == mips.FormatL

	switch {
	case src == dst:
		e.fpuException(FpeInvalid)
		return nil
	case src != mips.FormatS && src != mips.FormatD && src != mips.FormatW && src != mips.FormatL:
		e.fpuException(FpeUnimplemented)
		return nil
	case !floatFormat(src) && (fixed || op.Arith != mips.ArithConvert):
		e.fpuException(FpeUnimplemented)
		return nil
	}

	rm := e.FCR31 & FCR31_RM_MASK
	switch op.Arith {
	case mips.ArithRound:
		rm = ROUND_NEAREST
	case mips.ArithTrunc:
		rm = ROUND_ZERO
	case mips.ArithCeil:
		rm = ROUND_PLUS
	case mips.ArithFloor:
		rm = ROUND_MINUS
	case mips.ArithConvert:
	default:
		return ErrOpcode(inst)
	}

	var bits uint64
	var exc FpuException
	if fixed {
		bits, exc = e.toFixed(src, dst, inst.Fs(), rm)
	} else {
		bits, exc = e.toFloat(src, dst, inst.Fs(), rm)
	}

	if e.fpuException(exc) {
		return nil
	}

	e.writeRaw(dst, inst.Fd(), bits)
	return nil
}

func (e *Engine) toFloat(src, dst mips.Format, fs int, rm uint32) (bits uint64, exc FpuException) {
	z := new(big.Float).SetPrec(precision(dst)).SetMode(roundingMode(rm))

	switch src {
	case mips.FormatW:
		z.SetInt64(int64(int32(e.readRaw(src, fs))))
	case mips.FormatL:
		z.SetInt64(int64(e.readRaw(src, fs)))
	default:
		value, signaling := e.readFloat(src, fs)
		switch {
		case math.IsNaN(value):
			if signaling {
				exc = FpeInvalid
			}
			return defaultNaN(dst), exc
		case math.IsInf(value, 0):
			return fromFloat(dst, value), 0
		}
		z.SetFloat64(value)
	}

	return fpuRound(dst, z, rm)
}

// toFixed converts to a 32 or 64-bit integer. Invalid operands produce the
// largest positive integer.
func (e *Engine) toFixed(src, dst mips.Format, fs int, rm uint32) (bits uint64, exc FpuException) {
	value, _ := e.readFloat(src, fs)

	var rounded float64
	switch rm {
	case ROUND_ZERO:
		rounded = math.Trunc(value)
	case ROUND_PLUS:
		rounded = math.Ceil(value)
	case ROUND_MINUS:
		rounded = math.Floor(value)
	default:
		rounded = math.RoundToEven(value)
	}

	if dst == mips.FormatW {
		if math.IsNaN(value) || rounded < math.MinInt32 || rounded > math.MaxInt32 {
			return 0x7fff_ffff, FpeInvalid
		}
		bits = uint64(uint32(int32(rounded)))
	} else {
		if math.IsNaN(value) || rounded < math.MinInt64 || rounded >= 0x1p63 {
			return 0x7fff_ffff_ffff_ffff, FpeInvalid
		}
		bits = uint64(int64(rounded))
	}

	if rounded != value {
		exc = FpeInexact
	}
	return
}

// fpuCompare sets the condition flag from the predicates selected by the
// opcode. Ordered compares of NaN operands are Invalid and leave the
// predicates unevaluated.
func (e *Engine) fpuCompare(inst mips.Instruction) error {
	if !e.cp1() {
		return nil
	}

	fm := inst.Format()
	if !floatFormat(fm) {
		e.fpuException(FpeUnimplemented)
		return nil
	}

	op := inst.Opcode
	a, sa := e.readFloat(fm, inst.Fs())
	b, sb := e.readFloat(fm, inst.Ft())
	nan := math.IsNaN(a) || math.IsNaN(b)

	var exc FpuException
	if nan && (sa || sb) {
		exc = FpeInvalid
	}

	unordered := op.Has(mips.FlagSignaling | mips.FlagCondNot)
	if unordered && e.Options.SignalingCompare == SignalingReject {
		return ErrSignalingCompare
	}

	var result bool
	if nan && op.Has(mips.FlagCondOrd) {
		exc = FpeInvalid
	} else {
		result = op.Has(mips.FlagCondUn) && nan
		result = result || (op.Has(mips.FlagCondEq) && a == b)
		result = result || (op.Has(mips.FlagCondLT) && a < b)
		result = result || (op.Has(mips.FlagCondGT) && a > b)
	}

	if op.Has(mips.FlagCondNot) {
		result = !result
	}

	if unordered && e.Options.SignalingCompare == SignalingNaNTable {
		result = result || sa == sb
	}

	if e.fpuException(exc) {
		return nil
	}

	e.setCondition(result)
	return nil
}
