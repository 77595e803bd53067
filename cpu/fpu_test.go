package cpu

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/vr4300/mips"
)

const (
	quietNaN     = 0x7fbf_ffff
	signalingNaN = 0x7fc0_0000
)

func single(value float32) uint64 { return uint64(math.Float32bits(value)) }
func double(value float64) uint64 { return math.Float64bits(value) }

func fpuCause(e *Engine) FpuException {
	return FpuException((e.FCR31 >> FCR31_CAUSE) & 0x3f)
}

func fpuFlags(e *Engine) FpuException {
	return FpuException((e.FCR31 >> FCR31_FLAGS) & 0x1f)
}

func enable(exc FpuException) uint32 {
	return uint32(exc) << FCR31_ENABLES
}

func TestFpu_Arith(t *testing.T) {
	assert := assert.New(t)

	table := [...]struct {
		name   string
		format mips.Format
		rm     uint32
		a, b   uint64
		result uint64
		cause  FpuException
	}{
		{"add.fmt", mips.FormatS, ROUND_NEAREST, single(1.5), single(2.25), single(3.75), 0},
		{"sub.fmt", mips.FormatD, ROUND_NEAREST, double(1), double(0.25), double(0.75), 0},
		{"mul.fmt", mips.FormatS, ROUND_NEAREST, single(3), single(-2), single(-6), 0},
		{"div.fmt", mips.FormatD, ROUND_NEAREST, double(1), double(3), double(1.0 / 3.0), FpeInexact},
		{"div.fmt", mips.FormatS, ROUND_NEAREST, single(1), single(0), single(float32(math.Inf(1))), FpeDivideByZero},
		{"div.fmt", mips.FormatS, ROUND_NEAREST, single(0), single(0), quietNaN, FpeInvalid},
		{"sqrt.fmt", mips.FormatD, ROUND_NEAREST, double(2), 0, double(math.Sqrt(2)), FpeInexact},
		{"sqrt.fmt", mips.FormatS, ROUND_NEAREST, single(4), 0, single(2), 0},
		{"sqrt.fmt", mips.FormatS, ROUND_NEAREST, single(-1), 0, quietNaN, FpeInvalid},
		{"abs.fmt", mips.FormatD, ROUND_NEAREST, double(-2.5), 0, double(2.5), 0},
		{"neg.fmt", mips.FormatS, ROUND_NEAREST, single(2.5), 0, single(-2.5), 0},
		{"mov.fmt", mips.FormatD, ROUND_NEAREST, double(7), 0, double(7), 0},
		{"add.fmt", mips.FormatS, ROUND_NEAREST, single(1), single(0x1p-30), single(1), FpeInexact},
		{"add.fmt", mips.FormatS, ROUND_PLUS, single(1), single(0x1p-30), 0x3f80_0001, FpeInexact},
		{"sub.fmt", mips.FormatS, ROUND_MINUS, single(1), single(0x1p-30), 0x3f7f_ffff, FpeInexact},
		{"add.fmt", mips.FormatS, ROUND_NEAREST, single(math.MaxFloat32), single(math.MaxFloat32), single(float32(math.Inf(1))), FpeOverflow | FpeInexact},
		{"add.fmt", mips.FormatS, ROUND_ZERO, single(math.MaxFloat32), single(math.MaxFloat32), single(math.MaxFloat32), FpeOverflow | FpeInexact},
		{"mul.fmt", mips.FormatD, ROUND_NEAREST, double(0x1p-1000), double(0x1p-100), double(0), FpeUnderflow | FpeInexact},
		{"sub.fmt", mips.FormatD, ROUND_NEAREST, double(math.Inf(1)), double(math.Inf(1)), NAN_DOUBLE, FpeInvalid},
		{"add.fmt", mips.FormatD, ROUND_NEAREST, double(math.Inf(-1)), double(1), double(math.Inf(-1)), 0},
		{"add.fmt", mips.FormatS, ROUND_NEAREST, quietNaN, single(1), quietNaN, 0},
		{"add.fmt", mips.FormatS, ROUND_NEAREST, signalingNaN, single(1), quietNaN, FpeInvalid},
	}

	for _, entry := range table {
		name := entry.format.String() + " " + entry.name
		e, _ := newTestEngine(t, enc(entry.name, mips.Fields{Format: entry.format, Fd: 6, Fs: 2, Ft: 4}))
		e.FCR31 = entry.rm
		e.writeRaw(entry.format, 2, entry.a)
		e.writeRaw(entry.format, 4, entry.b)

		steps(t, e, 1)

		assert.Equal(entry.result, e.readRaw(entry.format, 6), name)
		assert.Equal(entry.cause, fpuCause(e), name)
		assert.Equal(entry.cause&0x1f, fpuFlags(e), name)
		_, pending := e.Cp0.ExceptionPending()
		assert.False(pending, name)
	}
}

func TestFpu_Trap(t *testing.T) {
	assert := assert.New(t)

	e, _ := newTestEngine(t, enc("div.fmt", mips.Fields{Format: mips.FormatD, Fd: 6, Fs: 2, Ft: 4}))
	e.FCR31 = enable(FpeDivideByZero)
	e.WriteDouble(2, true, 1)
	e.WriteDouble(4, true, 0)
	e.WriteDouble(6, true, 42)

	steps(t, e, 1)

	assert.Equal(42.0, e.ReadDouble(6, true))
	assert.Equal(FpeDivideByZero, fpuCause(e))
	code, pending := e.Cp0.ExceptionPending()
	assert.True(pending)
	assert.Equal(ExcFloatingPoint, code)

	steps(t, e, 1)
	assert.Equal(ExcFloatingPoint, ExceptionCode((e.Cp0.Cause()&CAUSE_EXC_MASK)>>CAUSE_EXC_SHIFT))
	assert.Equal(signExtend32(testBase), e.Cp0.Regs[CP0_EPC])

	// Flags accumulate; the cause is per instruction.
	e, _ = newTestEngine(t,
		enc("div.fmt", mips.Fields{Format: mips.FormatS, Fd: 6, Fs: 2, Ft: 4}),
		enc("add.fmt", mips.Fields{Format: mips.FormatS, Fd: 6, Fs: 2, Ft: 2}),
	)
	e.WriteSingle(2, true, 1)
	e.WriteSingle(4, true, 0)

	steps(t, e, 2)
	assert.Equal(FpuException(0), fpuCause(e))
	assert.Equal(FpeDivideByZero, fpuFlags(e))

	// Writing an enabled cause through the control register traps.
	e, _ = newTestEngine(t, enc("ctc1", mips.Fields{Rt: rT1, Fs: 31}))
	e.GPR[rT1] = uint64(uint32(FpeOverflow)<<FCR31_CAUSE | enable(FpeOverflow))

	steps(t, e, 1)
	code, pending = e.Cp0.ExceptionPending()
	assert.True(pending)
	assert.Equal(ExcFloatingPoint, code)
}

func TestFpu_Unimplemented(t *testing.T) {
	assert := assert.New(t)

	e, _ := newTestEngine(t, enc("add.fmt", mips.Fields{Format: mips.FormatW, Fd: 6, Fs: 2, Ft: 4}))
	e.FCR31 = enable(FpeInvalid)
	e.WriteFPR32(6, true, 0x1234)

	steps(t, e, 1)

	assert.Equal(FpeUnimplemented, fpuCause(e))
	assert.Equal(FpuException(0), fpuFlags(e))
	assert.Equal(uint32(0x1234), e.ReadFPR32(6, true))
	_, pending := e.Cp0.ExceptionPending()
	assert.False(pending)
}

func TestFpu_Convert(t *testing.T) {
	assert := assert.New(t)

	table := [...]struct {
		name   string
		src    mips.Format
		dst    mips.Format
		rm     uint32
		value  uint64
		result uint64
		cause  FpuException
	}{
		{"cvt.w.fmt", mips.FormatS, mips.FormatW, ROUND_NEAREST, single(2.5), 2, FpeInexact},
		{"cvt.w.fmt", mips.FormatS, mips.FormatW, ROUND_PLUS, single(2.5), 3, FpeInexact},
		{"round.w.fmt", mips.FormatS, mips.FormatW, ROUND_PLUS, single(2.5), 2, FpeInexact},
		{"round.w.fmt", mips.FormatD, mips.FormatW, ROUND_NEAREST, double(3.5), 4, FpeInexact},
		{"trunc.w.fmt", mips.FormatS, mips.FormatW, ROUND_NEAREST, single(-2.5), 0xffff_fffe, FpeInexact},
		{"ceil.w.fmt", mips.FormatD, mips.FormatW, ROUND_NEAREST, double(2.5), 3, FpeInexact},
		{"floor.w.fmt", mips.FormatD, mips.FormatW, ROUND_NEAREST, double(-2.5), 0xffff_fffd, FpeInexact},
		{"cvt.w.fmt", mips.FormatD, mips.FormatW, ROUND_NEAREST, double(3e9), 0x7fff_ffff, FpeInvalid},
		{"cvt.w.fmt", mips.FormatD, mips.FormatW, ROUND_NEAREST, double(-7), 0xffff_fff9, 0},
		{"cvt.l.fmt", mips.FormatD, mips.FormatL, ROUND_NEAREST, double(-3e9), 0xffff_ffff_4d2f_a200, 0},
		{"trunc.l.fmt", mips.FormatD, mips.FormatL, ROUND_NEAREST, NAN_DOUBLE, 0x7fff_ffff_ffff_ffff, FpeInvalid},
		{"floor.l.fmt", mips.FormatS, mips.FormatL, ROUND_NEAREST, single(-0.5), 0xffff_ffff_ffff_ffff, FpeInexact},
		{"cvt.d.fmt", mips.FormatS, mips.FormatD, ROUND_NEAREST, single(1.5), double(1.5), 0},
		{"cvt.s.fmt", mips.FormatD, mips.FormatS, ROUND_NEAREST, double(0.1), single(0.1), FpeInexact},
		{"cvt.s.fmt", mips.FormatD, mips.FormatS, ROUND_NEAREST, double(1e300), single(float32(math.Inf(1))), FpeOverflow | FpeInexact},
		{"cvt.s.fmt", mips.FormatW, mips.FormatS, ROUND_NEAREST, 16777217, single(16777216), FpeInexact},
		{"cvt.s.fmt", mips.FormatW, mips.FormatS, ROUND_PLUS, 16777217, single(16777218), FpeInexact},
		{"cvt.d.fmt", mips.FormatL, mips.FormatD, ROUND_NEAREST, 0xffff_ffff_ffff_fffb, double(-5), 0},
		{"cvt.d.fmt", mips.FormatS, mips.FormatD, ROUND_NEAREST, signalingNaN, NAN_DOUBLE, FpeInvalid},
	}

	for _, entry := range table {
		name := entry.name + " " + entry.src.String()
		e, _ := newTestEngine(t, enc(entry.name, mips.Fields{Format: entry.src, Fd: 6, Fs: 2}))
		e.FCR31 = entry.rm
		e.writeRaw(entry.src, 2, entry.value)

		steps(t, e, 1)

		assert.Equal(entry.result, e.readRaw(entry.dst, 6), name)
		assert.Equal(entry.cause, fpuCause(e), name)
	}
}

func TestFpu_ConvertInvalid(t *testing.T) {
	assert := assert.New(t)

	table := [...]struct {
		name   string
		format mips.Format
		cause  FpuException
	}{
		{"cvt.s.fmt", mips.FormatS, FpeInvalid},
		{"cvt.d.fmt", mips.FormatD, FpeInvalid},
		{"cvt.w.fmt", mips.FormatW, FpeInvalid},
		{"cvt.l.fmt", mips.FormatW, FpeUnimplemented},
		{"round.w.fmt", mips.FormatL, FpeUnimplemented},
	}

	for _, entry := range table {
		e, _ := newTestEngine(t, enc(entry.name, mips.Fields{Format: entry.format, Fd: 6, Fs: 2}))
		e.FPR[2] = 0x1111
		e.FPR[6] = 0x2222

		steps(t, e, 1)

		assert.Equal(entry.cause, fpuCause(e), entry.name)
		assert.Equal(uint64(0x2222), e.FPR[6], entry.name)
	}
}

func TestFpu_Compare(t *testing.T) {
	assert := assert.New(t)

	table := [...]struct {
		name   string
		format mips.Format
		a, b   uint64
		result bool
		cause  FpuException
	}{
		{"c.eq.fmt", mips.FormatS, single(1), single(1), true, 0},
		{"c.eq.fmt", mips.FormatS, single(1), single(2), false, 0},
		{"c.f.fmt", mips.FormatS, single(1), single(1), false, 0},
		{"c.olt.fmt", mips.FormatD, double(1), double(2), true, 0},
		{"c.ole.fmt", mips.FormatD, double(2), double(2), true, 0},
		{"c.ole.fmt", mips.FormatD, double(3), double(2), false, 0},
		{"c.ule.fmt", mips.FormatS, quietNaN, single(1), true, 0},
		{"c.olt.fmt", mips.FormatS, quietNaN, single(1), false, 0},
		{"c.un.fmt", mips.FormatS, single(1), quietNaN, true, 0},
		{"c.un.fmt", mips.FormatS, signalingNaN, single(1), true, FpeInvalid},
		{"c.lt.fmt", mips.FormatS, quietNaN, single(1), false, FpeInvalid},
		{"c.seq.fmt", mips.FormatD, double(1), double(1), true, 0},
		{"c.ngt.fmt", mips.FormatD, double(2), double(1), false, 0},
		{"c.ngt.fmt", mips.FormatD, double(1), double(2), true, 0},
		{"c.ngt.fmt", mips.FormatD, NAN_DOUBLE, double(2), true, FpeInvalid},
		{"c.ngt.fmt", mips.FormatD, double(2), double(2), true, 0},
		{"c.ngle.fmt", mips.FormatS, quietNaN, single(2), true, FpeInvalid},
		{"c.ngle.fmt", mips.FormatS, single(1), single(2), false, 0},
		{"c.ngl.fmt", mips.FormatS, single(2), quietNaN, true, FpeInvalid},
		{"c.ngl.fmt", mips.FormatS, single(2), single(2), true, 0},
		{"c.ngl.fmt", mips.FormatS, single(1), single(2), false, 0},
		{"c.nge.fmt", mips.FormatD, NAN_DOUBLE, double(2), true, FpeInvalid},
		{"c.nge.fmt", mips.FormatD, double(1), double(2), true, 0},
		{"c.nge.fmt", mips.FormatD, double(2), double(2), false, 0},
		{"c.sf.fmt", mips.FormatS, quietNaN, single(2), false, FpeInvalid},
		{"c.le.fmt", mips.FormatS, single(2), single(2), true, 0},
	}

	for _, entry := range table {
		name := entry.name + " " + entry.format.String()
		e, _ := newTestEngine(t, enc(entry.name, mips.Fields{Format: entry.format, Fs: 2, Ft: 4}))
		e.setCondition(!entry.result)
		e.writeRaw(entry.format, 2, entry.a)
		e.writeRaw(entry.format, 4, entry.b)

		steps(t, e, 1)

		assert.Equal(entry.result, e.Condition(), name)
		assert.Equal(entry.cause, fpuCause(e), name)
	}

	// An enabled Invalid traps and leaves the condition alone.
	e, _ := newTestEngine(t, enc("c.lt.fmt", mips.Fields{Format: mips.FormatS, Fs: 2, Ft: 4}))
	e.FCR31 = enable(FpeInvalid) | FCR31_CONDITION
	e.WriteFPR32(2, true, quietNaN)

	steps(t, e, 1)
	assert.True(e.Condition())
	code, pending := e.Cp0.ExceptionPending()
	assert.True(pending)
	assert.Equal(ExcFloatingPoint, code)
}

func TestFpu_SignalingCompare(t *testing.T) {
	assert := assert.New(t)

	table := [...]struct {
		mode   SignalingCompare
		a      uint64
		result bool
		err    error
	}{
		{SignalingIEEE, single(1), false, nil},
		{SignalingIEEE, quietNaN, true, nil},
		{SignalingReject, single(1), true, ErrSignalingCompare},
		{SignalingReject, quietNaN, true, ErrSignalingCompare},
		{SignalingNaNTable, single(1), true, nil},
		{SignalingNaNTable, quietNaN, true, nil},
	}

	for _, entry := range table {
		name := fmt.Sprintf("%v 0x%08x", entry.mode, entry.a)
		e, _ := newTestEngine(t, enc("c.ngle.fmt", mips.Fields{Format: mips.FormatS, Fs: 2, Ft: 4}))
		e.Options.SignalingCompare = entry.mode
		e.setCondition(!entry.result)
		e.writeRaw(mips.FormatS, 2, entry.a)
		e.WriteSingle(4, true, 2)

		err := e.Step()
		if entry.err != nil {
			assert.ErrorIs(err, entry.err, name)
			continue
		}

		assert.NoError(err, name)
		assert.Equal(entry.result, e.Condition(), name)
	}

	// Only the negated signaling conditions are subject to the variant.
	e, _ := newTestEngine(t, enc("c.lt.fmt", mips.Fields{Format: mips.FormatS, Fs: 2, Ft: 4}))
	e.Options.SignalingCompare = SignalingReject
	e.WriteSingle(2, true, 1)
	e.WriteSingle(4, true, 2)
	assert.NoError(e.Step())
	assert.True(e.Condition())
}

func TestFpu_Branch(t *testing.T) {
	assert := assert.New(t)

	e, _ := newTestEngine(t,
		enc("c.eq.fmt", mips.Fields{Format: mips.FormatS, Fs: 2, Ft: 4}),
		enc("bc1t", mips.Fields{Immediate: 2}),
		mips.NOP,
		enc("addiu", mips.Fields{Rt: rT0, Immediate: 1}),
		enc("bc1fl", mips.Fields{Immediate: 2}),
		enc("addiu", mips.Fields{Rt: rT1, Immediate: 1}),
		enc("addiu", mips.Fields{Rt: rT3, Immediate: 2}),
	)
	e.WriteSingle(2, true, 1)
	e.WriteSingle(4, true, 1)
	e.GPR[rT1] = 0

	steps(t, e, 6)

	assert.Equal(uint64(0), e.GPR[rT0])
	assert.Equal(uint64(0), e.GPR[rT1])
	assert.Equal(uint64(2), e.GPR[rT3])
	assert.Equal(uint64(testBase+28), e.PC)
}

func TestFpu_LoadStore(t *testing.T) {
	assert := assert.New(t)

	e, ram := newTestEngine(t,
		enc("lwc1", mips.Fields{Ft: 1, Rs: rT2}),
		enc("ldc1", mips.Fields{Ft: 2, Rs: rT2, Immediate: 8}),
		enc("swc1", mips.Fields{Ft: 2, Rs: rT2, Immediate: 16}),
		enc("sdc1", mips.Fields{Ft: 2, Rs: rT2, Immediate: 24}),
	)
	storeWords(ram, testData, 0x3fc0_0000, 0, 0x4004_0000, 0)

	steps(t, e, 4)

	assert.Equal(float32(1.5), e.ReadSingle(1, true))
	assert.Equal(2.5, e.ReadDouble(2, true))
	assert.Equal(uint32(0), loadWord(ram, testData+16))
	assert.Equal(uint32(0x4004_0000), loadWord(ram, testData+24))

	// With FR clear, odd singles are the high half of the even pair.
	e, ram = newTestEngine(t, enc("lwc1", mips.Fields{Ft: 3, Rs: rT2}))
	e.Cp0.SetStatus(STATUS_FR, false)
	storeWords(ram, testData, 0x3fc0_0000)

	steps(t, e, 1)
	assert.Equal(uint64(0x3fc0_0000_0000_0000), e.FPR[2])
}
