package rcp

import (
	"errors"

	"github.com/ezrec/vr4300/memory"
	"github.com/ezrec/vr4300/translate"
)

var f = translate.From

var (
	ErrRomSize = errors.New(f("boot ROM image too large"))
)

// ErrDMA annotates a failed transfer with the interface that ran it.
type ErrDMA struct {
	Interface string
	Request   memory.CopyRequest
	Err       error
}

func (err *ErrDMA) Error() string {
	return f("%v dma 0x%08x -> 0x%08x (%d bytes): %v", err.Interface,
		err.Request.Source, err.Request.Destination, err.Request.Length, err.Err)
}

func (err *ErrDMA) Unwrap() error {
	return err.Err
}
