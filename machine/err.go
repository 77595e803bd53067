package machine

import (
	"errors"

	"github.com/ezrec/vr4300/translate"
)

var f = translate.From

var (
	ErrNoCartridge = errors.New(f("no cartridge mounted"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	PC  uint64
	Err error
}

func (err *ErrRuntime) Error() string {
	return f("pc 0x%08x %v", uint32(err.PC), err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
