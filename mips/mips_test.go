package mips

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	table := [...]struct {
		word uint32
		name string
		op   Op
		text string
	}{
		{0x00000000, "sll", OpShift32, "sll zero, zero, 0"},
		{0x3c08a430, "lui", OpLoadUpper, "lui t0, 0xa430"},
		{0x25290001, "addiu", OpAdd32, "addiu t1, t1, 1"},
		{0x01095021, "addu", OpAdd32, "addu t2, t0, t1"},
		{0x8d0a0004, "lw", OpLoad, "lw t2, 4(t0)"},
		{0xad0afffc, "sw", OpStore, "sw t2, -4(t0)"},
		{0x03e00008, "jr", OpJump, "jr ra"},
		{0x0000000c, "syscall", OpSyscall, "syscall"},
		{0x42000018, "eret", OpReturn, "eret"},
		{0x40086000, "mfc0", OpTransfer, "mfc0 t0, Status"},
		{0x46041000, "add.fmt", OpFpuArith, "add.s f0, f2, f4"},
		{0x46241032, "c.eq.fmt", OpFpuCompare, "c.eq.d f2, f4"},
		{0x4620a0a1, "cvt.d.fmt", OpFpuConvert, "cvt.d.d f2, f20"},
		{0x45010000, "bc1t", OpBranch, "bc1t 0x00000004"},
		{0x0000003c, "dsll32", OpShift64, "dsll32 zero, zero, 0"},
		{0x04110002, "bgezal", OpBranch, "bgezal zero, 0x0000000c"},
		{0xfc000000, "sd", OpStore, "sd zero, 0(zero)"},
		{0xec000000, "reserved", OpReserved, ".word 0xec000000"},
		{0x00000001, "reserved", OpReserved, ".word 0x00000001"},
		{0x46c00000, "reserved", OpReserved, ".word 0x46c00000"},
	}

	for _, entry := range table {
		inst := Decode(0, entry.word)
		assert.Equal(entry.name, inst.Opcode.Name, "0x%08x", entry.word)
		assert.Equal(entry.op, inst.Opcode.Op, "0x%08x", entry.word)
		assert.Equal(entry.text, inst.String(), "0x%08x", entry.word)
		assert.Equal(entry.op != OpReserved, inst.Valid())
	}
}

func TestDecode_Fields(t *testing.T) {
	assert := assert.New(t)

	inst := Decode(0x8000_0400, 0x8d0afffc)
	assert.Equal(8, inst.Rs())
	assert.Equal(10, inst.Rt())
	assert.Equal(uint16(0xfffc), inst.Immediate())
	assert.Equal(int64(-4), inst.Offset())
	assert.Equal(4, inst.Opcode.DataSize())

	br := Decode(0x8000_0400, MustEncode("beq", Fields{Immediate: 0xffff}))
	assert.Equal(uint64(0x8000_0400), br.BranchTarget())

	j := Decode(0x8000_0400, MustEncode("j", Fields{Target: 0x100}))
	assert.Equal(uint64(0x8000_0400), j.JumpTarget())

	fp := Decode(0, MustEncode("mul.fmt", Fields{Format: FormatD, Fd: 6, Fs: 8, Ft: 10}))
	assert.Equal(6, fp.Fd())
	assert.Equal(8, fp.Fs())
	assert.Equal(10, fp.Ft())
	assert.Equal(FormatD, fp.Format())
	assert.Equal("mul.d", fp.Mnemonic())

	for _, name := range []string{"lwc1", "ldc1", "swc1", "sdc1"} {
		for _, ft := range []int{1, 17, 31} {
			inst := Decode(0, MustEncode(name, Fields{Ft: ft, Rs: 9, Immediate: 8}))
			assert.Equal(name, inst.Opcode.Name)
			assert.Equal(ft, inst.Ft(), name)
			assert.Equal(9, inst.Rs(), name)
			assert.Equal(int64(8), inst.Offset(), name)
		}
	}
}

func TestEncode(t *testing.T) {
	assert := assert.New(t)

	for _, op := range Opcodes() {
		fields := Fields{Rs: 1, Rt: 2, Rd: 3, Sa: 4, Fs: 5, Ft: 6, Fd: 7, Immediate: 0x1234, Target: 0x123456, Format: FormatD}
		word := op.Encode(fields)
		inst := Decode(0, word)
		assert.Same(op, inst.Opcode, op.Name)
	}

	_, err := Encode("frob", Fields{})
	assert.ErrorIs(err, ErrMnemonicUnknown)

	assert.Panics(func() { MustEncode("frob", Fields{}) })
}

func TestCompareFlags(t *testing.T) {
	assert := assert.New(t)

	table := [...]struct {
		name  string
		flags Flags
	}{
		{"c.f.fmt", 0},
		{"c.un.fmt", FlagCondUn},
		{"c.ueq.fmt", FlagCondUn | FlagCondEq},
		{"c.ole.fmt", FlagCondEq | FlagCondLT},
		{"c.sf.fmt", FlagCondOrd | FlagSignaling},
		{"c.seq.fmt", FlagCondEq | FlagCondOrd | FlagSignaling},
		{"c.le.fmt", FlagCondEq | FlagCondLT | FlagCondOrd | FlagSignaling},
		{"c.ngle.fmt", FlagCondNot | FlagCondEq | FlagCondLT | FlagCondGT | FlagCondOrd | FlagSignaling},
		{"c.ngl.fmt", FlagCondNot | FlagCondLT | FlagCondGT | FlagCondOrd | FlagSignaling},
		{"c.nge.fmt", FlagCondNot | FlagCondEq | FlagCondGT | FlagCondOrd | FlagSignaling},
		{"c.ngt.fmt", FlagCondNot | FlagCondGT | FlagCondOrd | FlagSignaling},
	}

	for _, entry := range table {
		op, ok := Lookup(entry.name)
		assert.True(ok, entry.name)
		assert.Equal(OpFpuCompare, op.Op, entry.name)
		assert.Equal(entry.flags, op.Flags, entry.name)
	}
}

func TestOpcode_Flags(t *testing.T) {
	assert := assert.New(t)

	ld, _ := Lookup("ld")
	assert.True(ld.Has(FlagReserved32 | FlagData64))
	assert.False(ld.Has(FlagReserved32 | FlagUnsigned))
	assert.True(ld.Any(FlagUnsigned | FlagData64))
	assert.Equal(8, ld.DataSize())

	sb, _ := Lookup("sb")
	assert.Equal(1, sb.DataSize())

	cvt, _ := Lookup("cvt.s.fmt")
	assert.Equal(4, cvt.DataSize())

	nop, _ := Lookup("syscall")
	assert.Equal(0, nop.DataSize())

	assert.Equal("add64", OpAdd64.String())
	assert.Equal("Op(99)", Op(99).String())
	assert.Equal("fpu", FamilyFpu.String())
	assert.Equal("sra", ArithShiftRightArith.String())
	assert.Equal("fcr", BoundCp1Ctl.String())
	assert.Equal("l", FormatL.String())
	assert.Equal("?", Format(3).String())
}

func TestProgram(t *testing.T) {
	assert := assert.New(t)

	prog := NewProgram(0xA400_0040,
		MustEncode("addiu", Fields{Rt: 8, Immediate: 1}),
		NOP,
	)

	inst, err := prog.Decode(0xFFFF_FFFF_A400_0040)
	assert.NoError(err)
	assert.Equal("addiu", inst.Opcode.Name)
	assert.False(inst.Last)

	inst, err = prog.Decode(0xA400_0044)
	assert.NoError(err)
	assert.True(inst.Last)

	for _, pc := range []uint64{0xA400_0048, 0xA400_003C, 0xA400_0042} {
		_, err = prog.Decode(pc)
		assert.ErrorIs(err, ErrEndOfStream, "0x%x", pc)
	}

	var addrs []uint64
	for pc, inst := range prog.Instructions() {
		addrs = append(addrs, pc)
		assert.Equal(pc, inst.Address)
	}
	assert.Equal([]uint64{0xA400_0040, 0xA400_0044}, addrs)

	assert.Equal([]byte{0x24, 0x08, 0x00, 0x01, 0, 0, 0, 0}, prog.Binary())
}

type wordMap map[uint64]uint32

func (wm wordMap) ReadWord(address uint64) (uint32, error) {
	word, ok := wm[address]
	if !ok {
		return 0, ErrEndOfStream
	}
	return word, nil
}

func TestMemoryDecoder(t *testing.T) {
	assert := assert.New(t)

	md := &MemoryDecoder{Memory: wordMap{0x100: 0x03e00008}}

	inst, err := md.Decode(0x100)
	assert.NoError(err)
	assert.Equal("jr ra", inst.String())

	_, err = md.Decode(0x104)
	assert.ErrorIs(err, ErrEndOfStream)
}

func TestRegisterNames(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("ra", GprName(31))
	assert.Equal("Compare", Cp0Name(11))

	index, ok := GprIndex("sp")
	assert.True(ok)
	assert.Equal(29, index)

	_, ok = GprIndex("pc")
	assert.False(ok)
}
