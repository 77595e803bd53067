package mips

import (
	"fmt"
	"strings"
)

// Instruction is a decoded instruction word at an address.
type Instruction struct {
	Address uint64  // Address the word was fetched from.
	Word    uint32  // Raw instruction word.
	Opcode  *Opcode // Descriptor; never nil after Decode.
	Last    bool    // Final instruction of its stream.
}

// Decode an instruction word.
func Decode(address uint64, word uint32) (inst Instruction) {
	inst = Instruction{Address: address, Word: word}

	var op *Opcode
	switch code := word >> 26; code {
	case 0x00:
		op = tableSpecial[word&0x3f]
	case 0x01:
		op = tableRegImm[(word>>16)&0x1f]
	case 0x10:
		if word&(1<<25) != 0 {
			op = tableCop0Fn[word&0x3f]
		} else {
			op = tableCop0Rs[(word>>21)&0x1f]
		}
	case 0x11:
		switch rs := (word >> 21) & 0x1f; {
		case rs == 0x08:
			op = tableCop1Bc[(word>>16)&0x3]
		case rs >= 0x10:
			switch Format(rs) {
			case FormatS, FormatD, FormatW, FormatL:
				op = tableCop1Fn[word&0x3f]
			}
		default:
			op = tableCop1Rs[rs]
		}
	default:
		op = tablePrimary[code]
	}

	if op == nil {
		op = &reservedOpcode
	}
	inst.Opcode = op

	return
}

func (inst Instruction) Rs() int           { return int(inst.Word>>21) & 0x1f }
func (inst Instruction) Rt() int           { return int(inst.Word>>16) & 0x1f }
func (inst Instruction) Rd() int           { return int(inst.Word>>11) & 0x1f }
func (inst Instruction) Sa() int           { return int(inst.Word>>6) & 0x1f }
func (inst Instruction) Fs() int           { return inst.Rd() }
func (inst Instruction) Ft() int           { return inst.Rt() }
func (inst Instruction) Fd() int           { return inst.Sa() }
func (inst Instruction) Immediate() uint16 { return uint16(inst.Word) }
func (inst Instruction) Target() uint32    { return inst.Word & 0x03ff_ffff }
func (inst Instruction) Format() Format    { return Format((inst.Word >> 21) & 0x1f) }

// Offset returns the sign-extended 16-bit immediate.
func (inst Instruction) Offset() int64 {
	return int64(int16(inst.Word))
}

// Valid returns false for reserved encodings.
func (inst Instruction) Valid() bool {
	return inst.Opcode != nil && inst.Opcode.Op != OpReserved
}

// BranchTarget returns the destination of a PC-relative branch.
func (inst Instruction) BranchTarget() uint64 {
	return uint64(uint32(inst.Address + 4 + uint64(inst.Offset()<<2)))
}

// JumpTarget returns the destination of an immediate jump.
func (inst Instruction) JumpTarget() uint64 {
	return uint64((uint32(inst.Address+4) & 0xf000_0000) | inst.Target()<<2)
}

// Mnemonic returns the instruction name.
func (inst Instruction) Mnemonic() string {
	if inst.Opcode == nil {
		return reservedOpcode.Name
	}
	return inst.Opcode.Mnemonic(inst.Format())
}

// String renders the instruction as "mnemonic operands".
func (inst Instruction) String() string {
	op := inst.Opcode
	if op == nil {
		op = &reservedOpcode
	}
	if op.Op == OpReserved {
		return fmt.Sprintf(".word 0x%08x", inst.Word)
	}

	if op.Operands == "" {
		return inst.Mnemonic()
	}

	args := strings.Split(op.Operands, ",")
	for n, arg := range args {
		args[n] = inst.operand(arg)
	}

	return inst.Mnemonic() + " " + strings.Join(args, ", ")
}

func (inst Instruction) operand(arg string) string {
	switch arg {
	case "rs":
		return GprName(inst.Rs())
	case "rt":
		return GprName(inst.Rt())
	case "rd":
		return GprName(inst.Rd())
	case "sa":
		return fmt.Sprintf("%d", inst.Sa())
	case "imm":
		return fmt.Sprintf("%d", inst.Offset())
	case "uimm":
		return fmt.Sprintf("0x%x", inst.Immediate())
	case "off":
		return fmt.Sprintf("0x%08x", inst.BranchTarget())
	case "target":
		return fmt.Sprintf("0x%08x", inst.JumpTarget())
	case "off(rs)":
		return fmt.Sprintf("%d(%v)", inst.Offset(), GprName(inst.Rs()))
	case "c0":
		return Cp0Name(inst.Rd())
	case "fs":
		return fmt.Sprintf("f%d", inst.Fs())
	case "ft":
		return fmt.Sprintf("f%d", inst.Ft())
	case "fd":
		return fmt.Sprintf("f%d", inst.Fd())
	case "fcr":
		return fmt.Sprintf("fcr%d", inst.Rd())
	case "cop":
		return fmt.Sprintf("0x%x", inst.Rt())
	}
	return arg
}

var gprNames = [32]string{
	"zero", "at", "v0", "v1", "a0", "a1", "a2", "a3",
	"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7",
	"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7",
	"t8", "t9", "k0", "k1", "gp", "sp", "fp", "ra",
}

var cp0Names = [32]string{
	"Index", "Random", "EntryLo0", "EntryLo1", "Context", "PageMask", "Wired", "$7",
	"BadVAddr", "Count", "EntryHi", "Compare", "Status", "Cause", "EPC", "PRId",
	"Config", "LLAddr", "WatchLo", "WatchHi", "XContext", "$21", "$22", "$23",
	"$24", "$25", "PErr", "CacheErr", "TagLo", "TagHi", "ErrorEPC", "$31",
}

// GprName returns the ABI name of a general purpose register.
func GprName(index int) string {
	return gprNames[index&0x1f]
}

// Cp0Name returns the name of a system control register.
func Cp0Name(index int) string {
	return cp0Names[index&0x1f]
}

// GprIndex returns the register number of an ABI name.
func GprIndex(name string) (index int, ok bool) {
	for n, gpr := range gprNames {
		if gpr == name {
			return n, true
		}
	}
	return 0, false
}
