package debug

import (
	"errors"

	"github.com/ezrec/vr4300/translate"
)

var f = translate.From

var ErrBreakpoint = errors.New(f("breakpoint needs an address or an instruction"))

type ErrCondition struct {
	Expr string
	Err  error
}

func (err *ErrCondition) Error() string {
	if err.Err == nil {
		return f("condition '%v' is not a boolean expression", err.Expr)
	}
	return f("condition '%v': %v", err.Expr, err.Err)
}

func (err *ErrCondition) Unwrap() error {
	return err.Err
}
