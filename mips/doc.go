// Package mips describes R4300I instructions.
//
// Decode turns an instruction word into an Instruction whose Opcode
// descriptor carries everything an interpreter needs to pick a handler:
// the handler selector (Op), the arithmetic subtype, flag bits and the
// register banks of a transfer. Descriptors are shared, immutable values.
//
// Program is a slice-backed instruction source for tests and raw binaries,
// and Encode builds words from a mnemonic and operand fields.
package mips
