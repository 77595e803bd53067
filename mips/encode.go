package mips

import (
	"errors"

	"github.com/ezrec/vr4300/translate"
)

var f = translate.From

var (
	ErrEndOfStream     = errors.New(f("end of instruction stream"))
	ErrMnemonicUnknown = errors.New(f("mnemonic unknown"))
)

// Fields are the operands of an instruction to encode. Register fields are
// placed where the opcode's encoding expects them.
type Fields struct {
	Rs, Rt, Rd, Sa int
	Fs, Ft, Fd     int
	Immediate      uint16
	Target         uint32
	Format         Format
}

// Encode builds the instruction word for the opcode.
func (op *Opcode) Encode(fl Fields) (word uint32) {
	r := func(v int, shift uint) uint32 { return uint32(v&0x1f) << shift }
	code := uint32(op.Encoding.Code)

	switch op.Encoding.Space {
	case SpacePrimary:
		rt := fl.Rt
		if op.Family == FamilyFpu {
			rt = fl.Ft
		}
		word = code<<26 | r(fl.Rs, 21) | r(rt, 16) | uint32(fl.Immediate)
		if op.Op == OpJump {
			word = code<<26 | fl.Target&0x03ff_ffff
		}
	case SpaceSpecial:
		word = r(fl.Rs, 21) | r(fl.Rt, 16) | r(fl.Rd, 11) | r(fl.Sa, 6) | code
	case SpaceRegImm:
		word = 0x01<<26 | r(fl.Rs, 21) | code<<16 | uint32(fl.Immediate)
	case SpaceCop0Rs:
		word = 0x10<<26 | code<<21 | r(fl.Rt, 16) | r(fl.Rd, 11)
	case SpaceCop0Fn:
		word = 0x10<<26 | 1<<25 | code
	case SpaceCop1Rs:
		word = 0x11<<26 | code<<21 | r(fl.Rt, 16) | r(fl.Fs, 11)
	case SpaceCop1Bc:
		word = 0x11<<26 | 0x08<<21 | code<<16 | uint32(fl.Immediate)
	case SpaceCop1Fn:
		fm := fl.Format
		if fm == 0 {
			fm = FormatS
		}
		word = 0x11<<26 | uint32(fm)<<21 | r(fl.Ft, 16) | r(fl.Fs, 11) | r(fl.Fd, 6) | code
	}

	return
}

// Encode builds an instruction word from a mnemonic.
func Encode(name string, fl Fields) (word uint32, err error) {
	op, ok := Lookup(name)
	if !ok {
		err = &ErrMnemonic{Name: name, Err: ErrMnemonicUnknown}
		return
	}
	word = op.Encode(fl)
	return
}

// MustEncode is Encode for fixed programs; it panics on an unknown mnemonic.
func MustEncode(name string, fl Fields) uint32 {
	word, err := Encode(name, fl)
	if err != nil {
		panic(err)
	}
	return word
}

// ErrMnemonic annotates an encoding error with the mnemonic.
type ErrMnemonic struct {
	Name string
	Err  error
}

func (err *ErrMnemonic) Error() string {
	return f("%v: %v", err.Name, err.Err)
}

func (err *ErrMnemonic) Unwrap() error {
	return err.Err
}

// NOP is the canonical no-operation (sll zero, zero, 0).
const NOP = uint32(0)
