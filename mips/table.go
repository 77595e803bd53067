package mips

func primary(code uint8) Encoding { return Encoding{SpacePrimary, code} }
func special(code uint8) Encoding { return Encoding{SpaceSpecial, code} }
func regimm(code uint8) Encoding  { return Encoding{SpaceRegImm, code} }
func cop0rs(code uint8) Encoding  { return Encoding{SpaceCop0Rs, code} }
func cop0fn(code uint8) Encoding  { return Encoding{SpaceCop0Fn, code} }
func cop1rs(code uint8) Encoding  { return Encoding{SpaceCop1Rs, code} }
func cop1bc(code uint8) Encoding  { return Encoding{SpaceCop1Bc, code} }
func cop1fn(code uint8) Encoding  { return Encoding{SpaceCop1Fn, code} }

const (
	fImm  = FlagImmediate
	fU    = FlagUnsigned
	fR32  = FlagReserved32
	fVar  = FlagVariableShift
	fS32  = FlagShift32
	fLike = FlagLikely
	fLink = FlagLink
	fReg  = FlagRegister
)

// reservedOpcode decodes every unassigned encoding.
var reservedOpcode = Opcode{Name: "reserved", Op: OpReserved}

var opcodes = [...]Opcode{
	// Integer arithmetic.
	{Name: "add", Op: OpAdd32, Family: FamilyAlu, Arith: ArithAdd, Operands: "rd,rs,rt", Encoding: special(0x20)},
	{Name: "addu", Op: OpAdd32, Family: FamilyAlu, Arith: ArithAdd, Flags: fU, Operands: "rd,rs,rt", Encoding: special(0x21)},
	{Name: "addi", Op: OpAdd32, Family: FamilyAlu, Arith: ArithAdd, Flags: fImm, Operands: "rt,rs,imm", Encoding: primary(0x08)},
	{Name: "addiu", Op: OpAdd32, Family: FamilyAlu, Arith: ArithAdd, Flags: fImm | fU, Operands: "rt,rs,imm", Encoding: primary(0x09)},
	{Name: "dadd", Op: OpAdd64, Family: FamilyAlu, Arith: ArithAdd, Flags: fR32, Operands: "rd,rs,rt", Encoding: special(0x2c)},
	{Name: "daddu", Op: OpAdd64, Family: FamilyAlu, Arith: ArithAdd, Flags: fR32 | fU, Operands: "rd,rs,rt", Encoding: special(0x2d)},
	{Name: "daddi", Op: OpAdd64, Family: FamilyAlu, Arith: ArithAdd, Flags: fR32 | fImm, Operands: "rt,rs,imm", Encoding: primary(0x18)},
	{Name: "daddiu", Op: OpAdd64, Family: FamilyAlu, Arith: ArithAdd, Flags: fR32 | fImm | fU, Operands: "rt,rs,imm", Encoding: primary(0x19)},
	{Name: "sub", Op: OpSub32, Family: FamilyAlu, Arith: ArithSub, Operands: "rd,rs,rt", Encoding: special(0x22)},
	{Name: "subu", Op: OpSub32, Family: FamilyAlu, Arith: ArithSub, Flags: fU, Operands: "rd,rs,rt", Encoding: special(0x23)},
	{Name: "dsub", Op: OpSub64, Family: FamilyAlu, Arith: ArithSub, Flags: fR32, Operands: "rd,rs,rt", Encoding: special(0x2e)},
	{Name: "dsubu", Op: OpSub64, Family: FamilyAlu, Arith: ArithSub, Flags: fR32 | fU, Operands: "rd,rs,rt", Encoding: special(0x2f)},

	// Logic.
	{Name: "and", Op: OpLogic, Family: FamilyAlu, Arith: ArithAnd, Operands: "rd,rs,rt", Encoding: special(0x24)},
	{Name: "or", Op: OpLogic, Family: FamilyAlu, Arith: ArithOr, Operands: "rd,rs,rt", Encoding: special(0x25)},
	{Name: "xor", Op: OpLogic, Family: FamilyAlu, Arith: ArithXor, Operands: "rd,rs,rt", Encoding: special(0x26)},
	{Name: "nor", Op: OpLogic, Family: FamilyAlu, Arith: ArithNor, Operands: "rd,rs,rt", Encoding: special(0x27)},
	{Name: "andi", Op: OpLogic, Family: FamilyAlu, Arith: ArithAnd, Flags: fImm, Operands: "rt,rs,uimm", Encoding: primary(0x0c)},
	{Name: "ori", Op: OpLogic, Family: FamilyAlu, Arith: ArithOr, Flags: fImm, Operands: "rt,rs,uimm", Encoding: primary(0x0d)},
	{Name: "xori", Op: OpLogic, Family: FamilyAlu, Arith: ArithXor, Flags: fImm, Operands: "rt,rs,uimm", Encoding: primary(0x0e)},
	{Name: "lui", Op: OpLoadUpper, Family: FamilyAlu, Flags: fImm, Operands: "rt,uimm", Encoding: primary(0x0f)},

	// Set on less than.
	{Name: "slt", Op: OpSetLess, Family: FamilyAlu, Arith: ArithLt, Operands: "rd,rs,rt", Encoding: special(0x2a)},
	{Name: "sltu", Op: OpSetLess, Family: FamilyAlu, Arith: ArithLt, Flags: fU, Operands: "rd,rs,rt", Encoding: special(0x2b)},
	{Name: "slti", Op: OpSetLess, Family: FamilyAlu, Arith: ArithLt, Flags: fImm, Operands: "rt,rs,imm", Encoding: primary(0x0a)},
	{Name: "sltiu", Op: OpSetLess, Family: FamilyAlu, Arith: ArithLt, Flags: fImm | fU, Operands: "rt,rs,imm", Encoding: primary(0x0b)},

	// Shifts.
	{Name: "sll", Op: OpShift32, Family: FamilyShift, Arith: ArithShiftLeft, Operands: "rd,rt,sa", Encoding: special(0x00)},
	{Name: "srl", Op: OpShift32, Family: FamilyShift, Arith: ArithShiftRight, Operands: "rd,rt,sa", Encoding: special(0x02)},
	{Name: "sra", Op: OpShift32, Family: FamilyShift, Arith: ArithShiftRightArith, Operands: "rd,rt,sa", Encoding: special(0x03)},
	{Name: "sllv", Op: OpShift32, Family: FamilyShift, Arith: ArithShiftLeft, Flags: fVar, Operands: "rd,rt,rs", Encoding: special(0x04)},
	{Name: "srlv", Op: OpShift32, Family: FamilyShift, Arith: ArithShiftRight, Flags: fVar, Operands: "rd,rt,rs", Encoding: special(0x06)},
	{Name: "srav", Op: OpShift32, Family: FamilyShift, Arith: ArithShiftRightArith, Flags: fVar, Operands: "rd,rt,rs", Encoding: special(0x07)},
	{Name: "dsll", Op: OpShift64, Family: FamilyShift, Arith: ArithShiftLeft, Flags: fR32, Operands: "rd,rt,sa", Encoding: special(0x38)},
	{Name: "dsrl", Op: OpShift64, Family: FamilyShift, Arith: ArithShiftRight, Flags: fR32, Operands: "rd,rt,sa", Encoding: special(0x3a)},
	{Name: "dsra", Op: OpShift64, Family: FamilyShift, Arith: ArithShiftRightArith, Flags: fR32, Operands: "rd,rt,sa", Encoding: special(0x3b)},
	{Name: "dsll32", Op: OpShift64, Family: FamilyShift, Arith: ArithShiftLeft, Flags: fR32 | fS32, Operands: "rd,rt,sa", Encoding: special(0x3c)},
	{Name: "dsrl32", Op: OpShift64, Family: FamilyShift, Arith: ArithShiftRight, Flags: fR32 | fS32, Operands: "rd,rt,sa", Encoding: special(0x3e)},
	{Name: "dsra32", Op: OpShift64, Family: FamilyShift, Arith: ArithShiftRightArith, Flags: fR32 | fS32, Operands: "rd,rt,sa", Encoding: special(0x3f)},
	{Name: "dsllv", Op: OpShift64, Family: FamilyShift, Arith: ArithShiftLeft, Flags: fR32 | fVar, Operands: "rd,rt,rs", Encoding: special(0x14)},
	{Name: "dsrlv", Op: OpShift64, Family: FamilyShift, Arith: ArithShiftRight, Flags: fR32 | fVar, Operands: "rd,rt,rs", Encoding: special(0x16)},
	{Name: "dsrav", Op: OpShift64, Family: FamilyShift, Arith: ArithShiftRightArith, Flags: fR32 | fVar, Operands: "rd,rt,rs", Encoding: special(0x17)},

	// Multiply and divide.
	{Name: "mult", Op: OpMultiply32, Family: FamilyMulDiv, Arith: ArithMul, Operands: "rs,rt", Encoding: special(0x18)},
	{Name: "multu", Op: OpMultiply32, Family: FamilyMulDiv, Arith: ArithMul, Flags: fU, Operands: "rs,rt", Encoding: special(0x19)},
	{Name: "div", Op: OpDivide32, Family: FamilyMulDiv, Arith: ArithDiv, Operands: "rs,rt", Encoding: special(0x1a)},
	{Name: "divu", Op: OpDivide32, Family: FamilyMulDiv, Arith: ArithDiv, Flags: fU, Operands: "rs,rt", Encoding: special(0x1b)},
	{Name: "dmult", Op: OpMultiply64, Family: FamilyMulDiv, Arith: ArithMul, Flags: fR32, Operands: "rs,rt", Encoding: special(0x1c)},
	{Name: "dmultu", Op: OpMultiply64, Family: FamilyMulDiv, Arith: ArithMul, Flags: fR32 | fU, Operands: "rs,rt", Encoding: special(0x1d)},
	{Name: "ddiv", Op: OpDivide64, Family: FamilyMulDiv, Arith: ArithDiv, Flags: fR32, Operands: "rs,rt", Encoding: special(0x1e)},
	{Name: "ddivu", Op: OpDivide64, Family: FamilyMulDiv, Arith: ArithDiv, Flags: fR32 | fU, Operands: "rs,rt", Encoding: special(0x1f)},

	// Register transfers.
	{Name: "mfhi", Op: OpTransfer, Family: FamilyTransfer, Source: BoundHi, Target: BoundGpr, Flags: FlagData64, Operands: "rd", Encoding: special(0x10)},
	{Name: "mthi", Op: OpTransfer, Family: FamilyTransfer, Source: BoundGpr, Target: BoundHi, Flags: FlagData64, Operands: "rs", Encoding: special(0x11)},
	{Name: "mflo", Op: OpTransfer, Family: FamilyTransfer, Source: BoundLo, Target: BoundGpr, Flags: FlagData64, Operands: "rd", Encoding: special(0x12)},
	{Name: "mtlo", Op: OpTransfer, Family: FamilyTransfer, Source: BoundGpr, Target: BoundLo, Flags: FlagData64, Operands: "rs", Encoding: special(0x13)},
	{Name: "mfc0", Op: OpTransfer, Family: FamilyCop0, Source: BoundCp0, Target: BoundGpr, Flags: FlagData32, Operands: "rt,c0", Encoding: cop0rs(0x00)},
	{Name: "dmfc0", Op: OpTransfer, Family: FamilyCop0, Source: BoundCp0, Target: BoundGpr, Flags: FlagData64 | fR32, Operands: "rt,c0", Encoding: cop0rs(0x01)},
	{Name: "mtc0", Op: OpTransfer, Family: FamilyCop0, Source: BoundGpr, Target: BoundCp0, Flags: FlagData32, Operands: "rt,c0", Encoding: cop0rs(0x04)},
	{Name: "dmtc0", Op: OpTransfer, Family: FamilyCop0, Source: BoundGpr, Target: BoundCp0, Flags: FlagData64 | fR32, Operands: "rt,c0", Encoding: cop0rs(0x05)},
	{Name: "mfc1", Op: OpTransfer, Family: FamilyFpu, Source: BoundCp1, Target: BoundGpr, Flags: FlagData32, Operands: "rt,fs", Encoding: cop1rs(0x00)},
	{Name: "dmfc1", Op: OpTransfer, Family: FamilyFpu, Source: BoundCp1, Target: BoundGpr, Flags: FlagData64 | fR32, Operands: "rt,fs", Encoding: cop1rs(0x01)},
	{Name: "cfc1", Op: OpTransfer, Family: FamilyFpu, Source: BoundCp1Ctl, Target: BoundGpr, Flags: FlagData32, Operands: "rt,fcr", Encoding: cop1rs(0x02)},
	{Name: "mtc1", Op: OpTransfer, Family: FamilyFpu, Source: BoundGpr, Target: BoundCp1, Flags: FlagData32, Operands: "rt,fs", Encoding: cop1rs(0x04)},
	{Name: "dmtc1", Op: OpTransfer, Family: FamilyFpu, Source: BoundGpr, Target: BoundCp1, Flags: FlagData64 | fR32, Operands: "rt,fs", Encoding: cop1rs(0x05)},
	{Name: "ctc1", Op: OpTransfer, Family: FamilyFpu, Source: BoundGpr, Target: BoundCp1Ctl, Flags: FlagData32, Operands: "rt,fcr", Encoding: cop1rs(0x06)},

	// Branches.
	{Name: "beq", Op: OpBranch, Family: FamilyBranch, Arith: ArithEq, Operands: "rs,rt,off", Encoding: primary(0x04)},
	{Name: "bne", Op: OpBranch, Family: FamilyBranch, Arith: ArithNe, Operands: "rs,rt,off", Encoding: primary(0x05)},
	{Name: "blez", Op: OpBranch, Family: FamilyBranch, Arith: ArithLez, Operands: "rs,off", Encoding: primary(0x06)},
	{Name: "bgtz", Op: OpBranch, Family: FamilyBranch, Arith: ArithGtz, Operands: "rs,off", Encoding: primary(0x07)},
	{Name: "beql", Op: OpBranch, Family: FamilyBranch, Arith: ArithEq, Flags: fLike, Operands: "rs,rt,off", Encoding: primary(0x14)},
	{Name: "bnel", Op: OpBranch, Family: FamilyBranch, Arith: ArithNe, Flags: fLike, Operands: "rs,rt,off", Encoding: primary(0x15)},
	{Name: "blezl", Op: OpBranch, Family: FamilyBranch, Arith: ArithLez, Flags: fLike, Operands: "rs,off", Encoding: primary(0x16)},
	{Name: "bgtzl", Op: OpBranch, Family: FamilyBranch, Arith: ArithGtz, Flags: fLike, Operands: "rs,off", Encoding: primary(0x17)},
	{Name: "bltz", Op: OpBranch, Family: FamilyBranch, Arith: ArithLtz, Operands: "rs,off", Encoding: regimm(0x00)},
	{Name: "bgez", Op: OpBranch, Family: FamilyBranch, Arith: ArithGez, Operands: "rs,off", Encoding: regimm(0x01)},
	{Name: "bltzl", Op: OpBranch, Family: FamilyBranch, Arith: ArithLtz, Flags: fLike, Operands: "rs,off", Encoding: regimm(0x02)},
	{Name: "bgezl", Op: OpBranch, Family: FamilyBranch, Arith: ArithGez, Flags: fLike, Operands: "rs,off", Encoding: regimm(0x03)},
	{Name: "bltzal", Op: OpBranch, Family: FamilyBranch, Arith: ArithLtz, Flags: fLink, Operands: "rs,off", Encoding: regimm(0x10)},
	{Name: "bgezal", Op: OpBranch, Family: FamilyBranch, Arith: ArithGez, Flags: fLink, Operands: "rs,off", Encoding: regimm(0x11)},
	{Name: "bltzall", Op: OpBranch, Family: FamilyBranch, Arith: ArithLtz, Flags: fLink | fLike, Operands: "rs,off", Encoding: regimm(0x12)},
	{Name: "bgezall", Op: OpBranch, Family: FamilyBranch, Arith: ArithGez, Flags: fLink | fLike, Operands: "rs,off", Encoding: regimm(0x13)},
	{Name: "bc1f", Op: OpBranch, Family: FamilyFpu, Arith: ArithFpFalse, Operands: "off", Encoding: cop1bc(0x00)},
	{Name: "bc1t", Op: OpBranch, Family: FamilyFpu, Arith: ArithFpTrue, Operands: "off", Encoding: cop1bc(0x01)},
	{Name: "bc1fl", Op: OpBranch, Family: FamilyFpu, Arith: ArithFpFalse, Flags: fLike, Operands: "off", Encoding: cop1bc(0x02)},
	{Name: "bc1tl", Op: OpBranch, Family: FamilyFpu, Arith: ArithFpTrue, Flags: fLike, Operands: "off", Encoding: cop1bc(0x03)},

	// Jumps.
	{Name: "j", Op: OpJump, Family: FamilyJump, Operands: "target", Encoding: primary(0x02)},
	{Name: "jal", Op: OpJump, Family: FamilyJump, Flags: fLink, Operands: "target", Encoding: primary(0x03)},
	{Name: "jr", Op: OpJump, Family: FamilyJump, Flags: fReg, Operands: "rs", Encoding: special(0x08)},
	{Name: "jalr", Op: OpJump, Family: FamilyJump, Flags: fReg | fLink, Operands: "rd,rs", Encoding: special(0x09)},

	// Loads.
	{Name: "lb", Op: OpLoad, Family: FamilyLoad, Flags: FlagData8, Operands: "rt,off(rs)", Encoding: primary(0x20)},
	{Name: "lbu", Op: OpLoad, Family: FamilyLoad, Flags: FlagData8 | fU, Operands: "rt,off(rs)", Encoding: primary(0x24)},
	{Name: "lh", Op: OpLoad, Family: FamilyLoad, Flags: FlagData16, Operands: "rt,off(rs)", Encoding: primary(0x21)},
	{Name: "lhu", Op: OpLoad, Family: FamilyLoad, Flags: FlagData16 | fU, Operands: "rt,off(rs)", Encoding: primary(0x25)},
	{Name: "lw", Op: OpLoad, Family: FamilyLoad, Flags: FlagData32, Operands: "rt,off(rs)", Encoding: primary(0x23)},
	{Name: "lwu", Op: OpLoad, Family: FamilyLoad, Flags: FlagData32 | fU | fR32, Operands: "rt,off(rs)", Encoding: primary(0x27)},
	{Name: "ld", Op: OpLoad, Family: FamilyLoad, Flags: FlagData64 | fR32, Operands: "rt,off(rs)", Encoding: primary(0x37)},
	{Name: "lwl", Op: OpLoad, Family: FamilyLoad, Flags: FlagData32 | FlagLeft, Operands: "rt,off(rs)", Encoding: primary(0x22)},
	{Name: "lwr", Op: OpLoad, Family: FamilyLoad, Flags: FlagData32 | FlagRight, Operands: "rt,off(rs)", Encoding: primary(0x26)},
	{Name: "ldl", Op: OpLoad, Family: FamilyLoad, Flags: FlagData64 | FlagLeft | fR32, Operands: "rt,off(rs)", Encoding: primary(0x1a)},
	{Name: "ldr", Op: OpLoad, Family: FamilyLoad, Flags: FlagData64 | FlagRight | fR32, Operands: "rt,off(rs)", Encoding: primary(0x1b)},
	{Name: "ll", Op: OpLoad, Family: FamilyLoad, Flags: FlagData32 | FlagLinked, Operands: "rt,off(rs)", Encoding: primary(0x30)},
	{Name: "lld", Op: OpLoad, Family: FamilyLoad, Flags: FlagData64 | FlagLinked | fR32, Operands: "rt,off(rs)", Encoding: primary(0x34)},
	{Name: "lwc1", Op: OpLoadFpu, Family: FamilyFpu, Flags: FlagData32, Operands: "ft,off(rs)", Encoding: primary(0x31)},
	{Name: "ldc1", Op: OpLoadFpu, Family: FamilyFpu, Flags: FlagData64, Operands: "ft,off(rs)", Encoding: primary(0x35)},

	// Stores.
	{Name: "sb", Op: OpStore, Family: FamilyStore, Flags: FlagData8, Operands: "rt,off(rs)", Encoding: primary(0x28)},
	{Name: "sh", Op: OpStore, Family: FamilyStore, Flags: FlagData16, Operands: "rt,off(rs)", Encoding: primary(0x29)},
	{Name: "sw", Op: OpStore, Family: FamilyStore, Flags: FlagData32, Operands: "rt,off(rs)", Encoding: primary(0x2b)},
	{Name: "sd", Op: OpStore, Family: FamilyStore, Flags: FlagData64 | fR32, Operands: "rt,off(rs)", Encoding: primary(0x3f)},
	{Name: "swl", Op: OpStore, Family: FamilyStore, Flags: FlagData32 | FlagLeft, Operands: "rt,off(rs)", Encoding: primary(0x2a)},
	{Name: "swr", Op: OpStore, Family: FamilyStore, Flags: FlagData32 | FlagRight, Operands: "rt,off(rs)", Encoding: primary(0x2e)},
	{Name: "sdl", Op: OpStore, Family: FamilyStore, Flags: FlagData64 | FlagLeft | fR32, Operands: "rt,off(rs)", Encoding: primary(0x2c)},
	{Name: "sdr", Op: OpStore, Family: FamilyStore, Flags: FlagData64 | FlagRight | fR32, Operands: "rt,off(rs)", Encoding: primary(0x2d)},
	{Name: "sc", Op: OpStore, Family: FamilyStore, Flags: FlagData32 | FlagLinked, Operands: "rt,off(rs)", Encoding: primary(0x38)},
	{Name: "scd", Op: OpStore, Family: FamilyStore, Flags: FlagData64 | FlagLinked | fR32, Operands: "rt,off(rs)", Encoding: primary(0x3c)},
	{Name: "swc1", Op: OpStoreFpu, Family: FamilyFpu, Flags: FlagData32, Operands: "ft,off(rs)", Encoding: primary(0x39)},
	{Name: "sdc1", Op: OpStoreFpu, Family: FamilyFpu, Flags: FlagData64, Operands: "ft,off(rs)", Encoding: primary(0x3d)},

	// Floating point arithmetic.
	{Name: "add.fmt", Op: OpFpuArith, Family: FamilyFpu, Arith: ArithAdd, Operands: "fd,fs,ft", Encoding: cop1fn(0x00)},
	{Name: "sub.fmt", Op: OpFpuArith, Family: FamilyFpu, Arith: ArithSub, Operands: "fd,fs,ft", Encoding: cop1fn(0x01)},
	{Name: "mul.fmt", Op: OpFpuArith, Family: FamilyFpu, Arith: ArithMul, Operands: "fd,fs,ft", Encoding: cop1fn(0x02)},
	{Name: "div.fmt", Op: OpFpuArith, Family: FamilyFpu, Arith: ArithDiv, Operands: "fd,fs,ft", Encoding: cop1fn(0x03)},
	{Name: "sqrt.fmt", Op: OpFpuArith, Family: FamilyFpu, Arith: ArithSqrt, Operands: "fd,fs", Encoding: cop1fn(0x04)},
	{Name: "abs.fmt", Op: OpFpuArith, Family: FamilyFpu, Arith: ArithAbs, Operands: "fd,fs", Encoding: cop1fn(0x05)},
	{Name: "mov.fmt", Op: OpFpuArith, Family: FamilyFpu, Arith: ArithMov, Operands: "fd,fs", Encoding: cop1fn(0x06)},
	{Name: "neg.fmt", Op: OpFpuArith, Family: FamilyFpu, Arith: ArithNeg, Operands: "fd,fs", Encoding: cop1fn(0x07)},

	// Floating point conversions.
	{Name: "round.l.fmt", Op: OpFpuConvert, Family: FamilyFpu, Arith: ArithRound, Flags: FlagData64, Operands: "fd,fs", Encoding: cop1fn(0x08)},
	{Name: "trunc.l.fmt", Op: OpFpuConvert, Family: FamilyFpu, Arith: ArithTrunc, Flags: FlagData64, Operands: "fd,fs", Encoding: cop1fn(0x09)},
	{Name: "ceil.l.fmt", Op: OpFpuConvert, Family: FamilyFpu, Arith: ArithCeil, Flags: FlagData64, Operands: "fd,fs", Encoding: cop1fn(0x0a)},
	{Name: "floor.l.fmt", Op: OpFpuConvert, Family: FamilyFpu, Arith: ArithFloor, Flags: FlagData64, Operands: "fd,fs", Encoding: cop1fn(0x0b)},
	{Name: "round.w.fmt", Op: OpFpuConvert, Family: FamilyFpu, Arith: ArithRound, Flags: FlagData32, Operands: "fd,fs", Encoding: cop1fn(0x0c)},
	{Name: "trunc.w.fmt", Op: OpFpuConvert, Family: FamilyFpu, Arith: ArithTrunc, Flags: FlagData32, Operands: "fd,fs", Encoding: cop1fn(0x0d)},
	{Name: "ceil.w.fmt", Op: OpFpuConvert, Family: FamilyFpu, Arith: ArithCeil, Flags: FlagData32, Operands: "fd,fs", Encoding: cop1fn(0x0e)},
	{Name: "floor.w.fmt", Op: OpFpuConvert, Family: FamilyFpu, Arith: ArithFloor, Flags: FlagData32, Operands: "fd,fs", Encoding: cop1fn(0x0f)},
	{Name: "cvt.s.fmt", Op: OpFpuConvert, Family: FamilyFpu, Arith: ArithConvert, Flags: FlagDataS, Operands: "fd,fs", Encoding: cop1fn(0x20)},
	{Name: "cvt.d.fmt", Op: OpFpuConvert, Family: FamilyFpu, Arith: ArithConvert, Flags: FlagDataD, Operands: "fd,fs", Encoding: cop1fn(0x21)},
	{Name: "cvt.w.fmt", Op: OpFpuConvert, Family: FamilyFpu, Arith: ArithConvert, Flags: FlagData32, Operands: "fd,fs", Encoding: cop1fn(0x24)},
	{Name: "cvt.l.fmt", Op: OpFpuConvert, Family: FamilyFpu, Arith: ArithConvert, Flags: FlagData64, Operands: "fd,fs", Encoding: cop1fn(0x25)},

	// Floating point compares. The low condition bits select unordered,
	// equal and less than; bit 3 demands ordered operands.
	{Name: "c.f.fmt", Encoding: cop1fn(0x30)},
	{Name: "c.un.fmt", Encoding: cop1fn(0x31)},
	{Name: "c.eq.fmt", Encoding: cop1fn(0x32)},
	{Name: "c.ueq.fmt", Encoding: cop1fn(0x33)},
	{Name: "c.olt.fmt", Encoding: cop1fn(0x34)},
	{Name: "c.ult.fmt", Encoding: cop1fn(0x35)},
	{Name: "c.ole.fmt", Encoding: cop1fn(0x36)},
	{Name: "c.ule.fmt", Encoding: cop1fn(0x37)},
	{Name: "c.sf.fmt", Encoding: cop1fn(0x38)},
	{Name: "c.ngle.fmt", Encoding: cop1fn(0x39)},
	{Name: "c.seq.fmt", Encoding: cop1fn(0x3a)},
	{Name: "c.ngl.fmt", Encoding: cop1fn(0x3b)},
	{Name: "c.lt.fmt", Encoding: cop1fn(0x3c)},
	{Name: "c.nge.fmt", Encoding: cop1fn(0x3d)},
	{Name: "c.le.fmt", Encoding: cop1fn(0x3e)},
	{Name: "c.ngt.fmt", Encoding: cop1fn(0x3f)},

	// Traps.
	{Name: "tge", Op: OpTrap, Family: FamilyTrap, Arith: ArithGe, Operands: "rs,rt", Encoding: special(0x30)},
	{Name: "tgeu", Op: OpTrap, Family: FamilyTrap, Arith: ArithGe, Flags: fU, Operands: "rs,rt", Encoding: special(0x31)},
	{Name: "tlt", Op: OpTrap, Family: FamilyTrap, Arith: ArithLt, Operands: "rs,rt", Encoding: special(0x32)},
	{Name: "tltu", Op: OpTrap, Family: FamilyTrap, Arith: ArithLt, Flags: fU, Operands: "rs,rt", Encoding: special(0x33)},
	{Name: "teq", Op: OpTrap, Family: FamilyTrap, Arith: ArithEq, Operands: "rs,rt", Encoding: special(0x34)},
	{Name: "tne", Op: OpTrap, Family: FamilyTrap, Arith: ArithNe, Operands: "rs,rt", Encoding: special(0x36)},
	{Name: "tgei", Op: OpTrap, Family: FamilyTrap, Arith: ArithGe, Flags: fImm, Operands: "rs,imm", Encoding: regimm(0x08)},
	{Name: "tgeiu", Op: OpTrap, Family: FamilyTrap, Arith: ArithGe, Flags: fImm | fU, Operands: "rs,imm", Encoding: regimm(0x09)},
	{Name: "tlti", Op: OpTrap, Family: FamilyTrap, Arith: ArithLt, Flags: fImm, Operands: "rs,imm", Encoding: regimm(0x0a)},
	{Name: "tltiu", Op: OpTrap, Family: FamilyTrap, Arith: ArithLt, Flags: fImm | fU, Operands: "rs,imm", Encoding: regimm(0x0b)},
	{Name: "teqi", Op: OpTrap, Family: FamilyTrap, Arith: ArithEq, Flags: fImm, Operands: "rs,imm", Encoding: regimm(0x0c)},
	{Name: "tnei", Op: OpTrap, Family: FamilyTrap, Arith: ArithNe, Flags: fImm, Operands: "rs,imm", Encoding: regimm(0x0e)},

	// System.
	{Name: "syscall", Op: OpSyscall, Family: FamilySystem, Encoding: special(0x0c)},
	{Name: "break", Op: OpBreak, Family: FamilySystem, Encoding: special(0x0d)},
	{Name: "sync", Op: OpNoop, Family: FamilySystem, Encoding: special(0x0f)},
	{Name: "cache", Op: OpNoop, Family: FamilySystem, Operands: "cop,off(rs)", Encoding: primary(0x2f)},
	{Name: "eret", Op: OpReturn, Family: FamilyCop0, Encoding: cop0fn(0x18)},
	{Name: "tlbr", Op: OpTlb, Family: FamilyCop0, Arith: ArithTlbRead, Encoding: cop0fn(0x01)},
	{Name: "tlbwi", Op: OpTlb, Family: FamilyCop0, Arith: ArithTlbWriteIndex, Encoding: cop0fn(0x02)},
	{Name: "tlbwr", Op: OpTlb, Family: FamilyCop0, Arith: ArithTlbWriteRandom, Encoding: cop0fn(0x06)},
	{Name: "tlbp", Op: OpTlb, Family: FamilyCop0, Arith: ArithTlbProbe, Encoding: cop0fn(0x08)},
}

// compareFlags expands the condition field of a c.cond.fmt opcode. The
// signaling half orders its operands, so its unordered conditions are the
// negation of the ordered complement.
func compareFlags(cond uint8) (flags Flags) {
	if cond&2 != 0 {
		flags |= FlagCondEq
	}
	if cond&4 != 0 {
		flags |= FlagCondLT
	}

	if cond&8 == 0 {
		if cond&1 != 0 {
			flags |= FlagCondUn
		}
		return
	}

	flags |= FlagCondOrd | FlagSignaling
	if cond&1 != 0 {
		flags ^= FlagCondEq | FlagCondLT | FlagCondGT
		flags |= FlagCondNot
	}
	return
}

var (
	tablePrimary [64]*Opcode
	tableSpecial [64]*Opcode
	tableRegImm  [32]*Opcode
	tableCop0Rs  [32]*Opcode
	tableCop0Fn  [64]*Opcode
	tableCop1Rs  [32]*Opcode
	tableCop1Bc  [4]*Opcode
	tableCop1Fn  [64]*Opcode

	byName = map[string]*Opcode{}
)

func init() {
	for n := range opcodes {
		op := &opcodes[n]
		enc := op.Encoding

		if op.Encoding.Space == SpaceCop1Fn && enc.Code >= 0x30 {
			op.Op = OpFpuCompare
			op.Family = FamilyFpu
			op.Operands = "fs,ft"
			op.Flags = compareFlags(enc.Code & 0xf)
		}

		switch enc.Space {
		case SpacePrimary:
			tablePrimary[enc.Code] = op
		case SpaceSpecial:
			tableSpecial[enc.Code] = op
		case SpaceRegImm:
			tableRegImm[enc.Code] = op
		case SpaceCop0Rs:
			tableCop0Rs[enc.Code] = op
		case SpaceCop0Fn:
			tableCop0Fn[enc.Code] = op
		case SpaceCop1Rs:
			tableCop1Rs[enc.Code] = op
		case SpaceCop1Bc:
			tableCop1Bc[enc.Code] = op
		case SpaceCop1Fn:
			tableCop1Fn[enc.Code] = op
		}

		byName[op.Name] = op
	}
}

// Lookup finds an opcode descriptor by mnemonic, as listed in the decode
// tables (for example "addiu", "add.fmt" or "c.eq.fmt").
func Lookup(name string) (op *Opcode, ok bool) {
	op, ok = byName[name]
	return
}

// Opcodes returns every known opcode descriptor.
func Opcodes() []*Opcode {
	list := make([]*Opcode, 0, len(opcodes))
	for n := range opcodes {
		list = append(list, &opcodes[n])
	}
	return list
}
