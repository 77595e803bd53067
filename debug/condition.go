package debug

import (
	"iter"
	"strconv"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/vr4300/cpu"
	"github.com/ezrec/vr4300/mips"
)

// Condition is a breakpoint predicate written as a starlark expression.
//
// The expression sees 'pc', 'hi', 'lo', the 'gpr' list, every general
// purpose register by its ABI name, and any integer symbols supplied at
// evaluation time.
type Condition struct {
	Expr string
}

// NewCondition parses expr, returning an error if it is not an expression.
func NewCondition(expr string) (cond *Condition, err error) {
	opts := syntax.FileOptions{}
	_, err = opts.ParseExpr("expr", expr, 0)
	if err != nil {
		err = &ErrCondition{Expr: expr, Err: err}
		return
	}

	cond = &Condition{Expr: expr}
	return
}

// Predeclared returns the names visible to a condition.
func Predeclared(regs *cpu.Registers, symbols iter.Seq2[string, string]) (pred starlark.StringDict) {
	pred = starlark.StringDict{}

	if symbols != nil {
		for key, str := range symbols {
			value, err := strconv.ParseUint(str, 0, 64)
			if err != nil {
				// Not every symbol is a number.
				continue
			}
			pred[key] = starlark.MakeUint64(value)
		}
	}

	gpr := make([]starlark.Value, len(regs.GPR))
	for n, value := range regs.GPR {
		gpr[n] = starlark.MakeUint64(value)
		pred[mips.GprName(n)] = gpr[n]
	}
	pred["gpr"] = starlark.NewList(gpr)
	pred["pc"] = starlark.MakeUint64(regs.PC)
	pred["hi"] = starlark.MakeUint64(regs.Hi)
	pred["lo"] = starlark.MakeUint64(regs.Lo)

	return
}

// Eval evaluates the condition against a register file.
func (cond *Condition) Eval(regs *cpu.Registers, symbols iter.Seq2[string, string]) (hit bool, err error) {
	thread := starlark.Thread{Name: "condition"}
	opts := syntax.FileOptions{}
	pred := Predeclared(regs, symbols)

	prog := "rc=" + cond.Expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = &ErrCondition{Expr: cond.Expr, Err: err}
		return
	}

	rc, ok := dict["rc"]
	if !ok {
		err = &ErrCondition{Expr: cond.Expr}
		return
	}

	hit = bool(rc.Truth())
	return
}
