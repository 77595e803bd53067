package mips

import (
	"strings"
)

// Op selects the interpreter handler for an instruction.
type Op int

//go:generate go tool stringer -linecomment -type=Op

const (
	OpReserved   Op = iota // reserved
	OpAdd32                // add32
	OpAdd64                // add64
	OpSub32                // sub32
	OpSub64                // sub64
	OpLogic                // logic
	OpLoadUpper            // lui
	OpShift32              // shift32
	OpShift64              // shift64
	OpMultiply32           // mul32
	OpMultiply64           // mul64
	OpDivide32             // div32
	OpDivide64             // div64
	OpSetLess              // setless
	OpTransfer             // transfer
	OpBranch               // branch
	OpJump                 // jump
	OpLoad                 // load
	OpStore                // store
	OpLoadFpu              // loadfpu
	OpStoreFpu             // storefpu
	OpFpuArith             // fpuarith
	OpFpuConvert           // fpuconvert
	OpFpuCompare           // fpucompare
	OpReturn               // eret
	OpSyscall              // syscall
	OpBreak                // break
	OpTrap                 // trap
	OpNoop                 // noop
	OpTlb                  // tlb
	OpCount                // count
)

// Family groups instructions for tracing and debugging.
type Family int

//go:generate go tool stringer -linecomment -type=Family

const (
	FamilyNone     Family = iota // none
	FamilyAlu                    // alu
	FamilyShift                  // shift
	FamilyMulDiv                 // muldiv
	FamilyTransfer               // transfer
	FamilyBranch                 // branch
	FamilyJump                   // jump
	FamilyLoad                   // load
	FamilyStore                  // store
	FamilyCop0                   // cop0
	FamilyFpu                    // fpu
	FamilyTrap                   // trap
	FamilySystem                 // system
)

// Arith is the arithmetic subtype or comparison of an instruction.
type Arith int

//go:generate go tool stringer -linecomment -type=Arith

const (
	ArithNone            Arith = iota // none
	ArithAdd                          // add
	ArithSub                          // sub
	ArithMul                          // mul
	ArithDiv                          // div
	ArithAnd                          // and
	ArithOr                           // or
	ArithXor                          // xor
	ArithNor                          // nor
	ArithShiftLeft                    // sll
	ArithShiftRight                   // srl
	ArithShiftRightArith              // sra
	ArithSqrt                         // sqrt
	ArithAbs                          // abs
	ArithMov                          // mov
	ArithNeg                          // neg
	ArithConvert                      // cvt
	ArithRound                        // round
	ArithTrunc                        // trunc
	ArithCeil                         // ceil
	ArithFloor                        // floor
	ArithEq                           // eq
	ArithNe                           // ne
	ArithLez                          // lez
	ArithGtz                          // gtz
	ArithLtz                          // ltz
	ArithGez                          // gez
	ArithGe                           // ge
	ArithLt                           // lt
	ArithFpFalse                      // fpfalse
	ArithFpTrue                       // fptrue
	ArithTlbRead                      // tlbr
	ArithTlbWriteIndex                // tlbwi
	ArithTlbWriteRandom               // tlbwr
	ArithTlbProbe                     // tlbp
)

// RegBound names the register bank on one side of a register transfer.
type RegBound int

//go:generate go tool stringer -linecomment -type=RegBound

const (
	BoundNone   RegBound = iota // none
	BoundGpr                    // gpr
	BoundHi                     // hi
	BoundLo                     // lo
	BoundCp0                    // cp0
	BoundCp1                    // cp1
	BoundCp1Ctl                 // fcr
)

// Flags qualify an opcode.
type Flags uint32

const (
	FlagUnsigned Flags = 1 << iota
	FlagImmediate
	FlagReserved32 // Reserved unless in 64-bit mode.
	FlagReserved64 // Reserved in 64-bit mode.
	FlagLikely
	FlagLink
	FlagRegister
	FlagLeft
	FlagRight
	FlagVariableShift
	FlagShift32
	FlagData8
	FlagData16
	FlagData32
	FlagData64
	FlagDataS
	FlagDataD
	FlagCondEq
	FlagCondLT
	FlagCondGT
	FlagCondNot
	FlagCondUn
	FlagCondOrd
	FlagLinked
	FlagSignaling
)

// FLAG_DATA_MASK covers every data width flag.
const FLAG_DATA_MASK = FlagData8 | FlagData16 | FlagData32 | FlagData64 | FlagDataS | FlagDataD

// Format is the fmt field of a coprocessor 1 instruction.
type Format uint8

const (
	FormatS Format = 16 // Single precision.
	FormatD Format = 17 // Double precision.
	FormatW Format = 20 // 32-bit fixed point.
	FormatL Format = 21 // 64-bit fixed point.
)

func (fm Format) String() string {
	switch fm {
	case FormatS:
		return "s"
	case FormatD:
		return "d"
	case FormatW:
		return "w"
	case FormatL:
		return "l"
	}
	return "?"
}

// Space is the decode table an opcode lives in.
type Space int

const (
	SpacePrimary Space = iota
	SpaceSpecial
	SpaceRegImm
	SpaceCop0Rs
	SpaceCop0Fn
	SpaceCop1Rs
	SpaceCop1Bc
	SpaceCop1Fn
)

// Encoding locates an opcode in the instruction word.
type Encoding struct {
	Space Space
	Code  uint8
}

// Opcode describes one instruction.
type Opcode struct {
	Name     string   // Mnemonic; ".fmt" is replaced by the format.
	Op       Op       // Handler selector.
	Family   Family   // Instruction family.
	Arith    Arith    // Arithmetic subtype or comparison.
	Flags    Flags    // Qualifiers.
	Source   RegBound // Transfer source bank.
	Target   RegBound // Transfer target bank.
	Operands string   // Operand layout, comma separated.
	Encoding Encoding // Location in the decode tables.
}

// Has returns true if every flag in flags is set.
func (op *Opcode) Has(flags Flags) bool {
	return op.Flags&flags == flags
}

// Any returns true if any flag in flags is set.
func (op *Opcode) Any(flags Flags) bool {
	return op.Flags&flags != 0
}

// DataSize returns the memory or register width in bytes.
func (op *Opcode) DataSize() int {
	switch {
	case op.Any(FlagData8):
		return 1
	case op.Any(FlagData16):
		return 2
	case op.Any(FlagData32 | FlagDataS):
		return 4
	case op.Any(FlagData64 | FlagDataD):
		return 8
	}
	return 0
}

// Mnemonic returns the name with the instruction format substituted.
func (op *Opcode) Mnemonic(fm Format) string {
	if strings.HasSuffix(op.Name, ".fmt") {
		return strings.TrimSuffix(op.Name, "fmt") + fm.String()
	}
	return op.Name
}
