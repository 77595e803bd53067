package cpu

import (
	"errors"

	"github.com/ezrec/vr4300/mips"
	"github.com/ezrec/vr4300/translate"
)

var f = translate.From

var (
	ErrUnsupportedOpcode = errors.New(f("no handler for opcode"))
	ErrDelaySlot         = errors.New(f("delay slot execution failed"))
	ErrSignalingCompare  = errors.New(f("signaling unordered compare"))
	ErrNoDecoder         = errors.New(f("no instruction decoder"))
)

// ErrOpcode reports an instruction the engine cannot execute.
type ErrOpcode mips.Instruction

func (eo ErrOpcode) Error() string {
	inst := mips.Instruction(eo)
	return f("bad opcode 0x%08x at 0x%08x (%v)", inst.Word, uint32(inst.Address), inst.Mnemonic())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	if err == ErrUnsupportedOpcode {
		return true
	}
	_, ok = err.(ErrOpcode)
	return
}

// ErrExecute annotates a host error with the instruction that caused it.
type ErrExecute struct {
	Address uint64
	Err     error
}

func (err *ErrExecute) Error() string {
	return f("0x%08x: %v", uint32(err.Address), err.Err)
}

func (err *ErrExecute) Unwrap() error {
	return err.Err
}
