package memory

import (
	"errors"

	"github.com/ezrec/vr4300/translate"
)

var f = translate.From

var (
	ErrDeviceNotFound = errors.New(f("no device mapped"))
	ErrTransferSize   = errors.New(f("transfer exceeds scratch capacity"))
	ErrWindowOverlap  = errors.New(f("window overlaps existing mapping"))
	ErrWindowEmpty    = errors.New(f("window has no size"))
	ErrWindowUnknown  = errors.New(f("window name unknown"))
)

// ErrAddress annotates a router error with the address that caused it.
type ErrAddress struct {
	Address uint32
	Err     error
}

func (err *ErrAddress) Error() string {
	return f("address 0x%08x: %v", err.Address, err.Err)
}

func (err *ErrAddress) Unwrap() error {
	return err.Err
}

// Fault is a guest-visible memory fault: the CPU touched an address with no
// device behind it. The execution engine converts it into a bus error
// exception, so it is distinct from host-internal errors.
type Fault struct {
	Address uint32
	Write   bool
	Err     error
}

func (err *Fault) Error() string {
	op := "read"
	if err.Write {
		op = "write"
	}
	return f("memory fault: %v 0x%08x: %v", op, err.Address, err.Err)
}

func (err *Fault) Unwrap() error {
	return err.Err
}

// ErrWindow annotates a router error with the window name.
type ErrWindow struct {
	Name string
	Err  error
}

func (err *ErrWindow) Error() string {
	return f("window %v: %v", err.Name, err.Err)
}

func (err *ErrWindow) Unwrap() error {
	return err.Err
}
