package mips

import (
	"encoding/binary"
	"iter"
)

// Program is a run of instruction words starting at Base. It decodes
// addresses inside the run and reports ErrEndOfStream past its end.
type Program struct {
	Base  uint64
	Words []uint32
}

// NewProgram encodes a listing of words at base.
func NewProgram(base uint64, words ...uint32) *Program {
	return &Program{Base: base, Words: words}
}

// Decode the instruction at pc. Only the low 32 bits of pc are significant.
func (prog *Program) Decode(pc uint64) (inst Instruction, err error) {
	pc = uint64(uint32(pc))
	base := uint64(uint32(prog.Base))
	if pc < base || (pc-base)/4 >= uint64(len(prog.Words)) || pc&3 != 0 {
		err = ErrEndOfStream
		return
	}

	index := int((pc - base) / 4)
	inst = Decode(pc, prog.Words[index])
	inst.Last = index == len(prog.Words)-1
	return
}

// Instructions iterates over the decoded program by address.
func (prog *Program) Instructions() iter.Seq2[uint64, Instruction] {
	return func(yield func(uint64, Instruction) bool) {
		for n := range prog.Words {
			pc := prog.Base + uint64(n*4)
			inst, _ := prog.Decode(pc)
			if !yield(pc, inst) {
				return
			}
		}
	}
}

// Binary renders the program as big-endian bytes.
func (prog *Program) Binary() (bin []byte) {
	bin = make([]byte, 0, len(prog.Words)*4)
	for _, word := range prog.Words {
		bin = binary.BigEndian.AppendUint32(bin, word)
	}
	return
}

// WordReader fetches instruction words from an address space.
type WordReader interface {
	ReadWord(address uint64) (word uint32, err error)
}

// MemoryDecoder decodes instructions fetched from memory.
type MemoryDecoder struct {
	Memory WordReader
}

// Decode fetches and decodes the instruction at pc.
func (md *MemoryDecoder) Decode(pc uint64) (inst Instruction, err error) {
	word, err := md.Memory.ReadWord(pc)
	if err != nil {
		return
	}
	inst = Decode(pc, word)
	return
}
