package cpu

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/vr4300/mips"
)

// condition evaluates a branch or trap predicate.
func condition(arith mips.Arith, a, b uint64, unsigned bool) (ok bool, valid bool) {
	valid = true
	switch arith {
	case mips.ArithEq:
		ok = a == b
	case mips.ArithNe:
		ok = a != b
	case mips.ArithLez:
		ok = int64(a) <= 0
	case mips.ArithGtz:
		ok = int64(a) > 0
	case mips.ArithLtz:
		ok = int64(a) < 0
	case mips.ArithGez:
		ok = int64(a) >= 0
	case mips.ArithGe:
		if unsigned {
			ok = a >= b
		} else {
			ok = int64(a) >= int64(b)
		}
	case mips.ArithLt:
		if unsigned {
			ok = a < b
		} else {
			ok = int64(a) < int64(b)
		}
	default:
		valid = false
	}
	return
}

func (e *Engine) branch(inst mips.Instruction) error {
	op := inst.Opcode

	var taken bool
	switch op.Arith {
	case mips.ArithFpFalse, mips.ArithFpTrue:
		if !e.cp1() {
			return nil
		}
		taken = e.Condition() == (op.Arith == mips.ArithFpTrue)
	default:
		a, b := e.gpr(inst.Rs()), e.gpr(inst.Rt())
		if !e.Mode64() {
			a, b = signExtend32(uint32(a)), signExtend32(uint32(b))
		}
		var valid bool
		taken, valid = condition(op.Arith, a, b, false)
		if !valid {
			return ErrOpcode(inst)
		}
	}

	if op.Has(mips.FlagLink) {
		e.setGPR32(31, uint32(inst.Address+8))
	}

	target := inst.BranchTarget()
	if e.Monitor != nil {
		e.Monitor.TestBranch(inst, target, taken)
	}

	switch {
	case taken:
		e.Branch = BranchUnit{Take: true, DelaySlot: true, Target: target}
	case op.Has(mips.FlagLikely):
		e.Branch = BranchUnit{Nullify: true}
	}

	return nil
}

func (e *Engine) jump(inst mips.Instruction) error {
	op := inst.Opcode

	target := inst.JumpTarget()
	if op.Has(mips.FlagRegister) {
		target = uint64(uint32(e.gpr(inst.Rs())))
	}

	if op.Has(mips.FlagLink) {
		link := 31
		if op.Has(mips.FlagRegister) {
			link = inst.Rd()
		}
		e.setGPR32(link, uint32(inst.Address+8))
	}

	if target == uint64(uint32(inst.Address)) && !e.warned {
		e.warned = true
		e.Log.WithFields(logrus.Fields{
			"component": "cpu",
			"pc":        fmt.Sprintf("0x%08x", uint32(inst.Address)),
		}).Warn("jump to self")
	}

	if e.Monitor != nil {
		e.Monitor.TestBranch(inst, target, true)
	}

	e.Branch = BranchUnit{Unconditional: true, DelaySlot: true, Target: target}
	return nil
}

// exceptionReturn resumes at EPC, or ErrorEPC at error level. PC is left
// one instruction short, as the step advances it.
func (e *Engine) exceptionReturn(inst mips.Instruction) error {
	if !e.cp0() {
		return nil
	}

	var epc uint64
	if e.Cp0.Status()&STATUS_ERL != 0 {
		epc = e.Cp0.Regs[CP0_ERROREPC]
		e.Cp0.SetStatus(STATUS_ERL, false)
	} else {
		epc = e.Cp0.Regs[CP0_EPC]
		e.Cp0.SetStatus(STATUS_EXL, false)
	}

	e.LLBit = false
	e.PC = uint64(uint32(epc) - 4)
	e.Branch, _ = e.snapshots.Pop()

	return nil
}

func (e *Engine) trap(inst mips.Instruction) error {
	op := inst.Opcode

	a, b := e.gpr(inst.Rs()), e.gpr(inst.Rt())
	if op.Has(mips.FlagImmediate) {
		b = uint64(inst.Offset())
	}

	ok, valid := condition(op.Arith, a, b, op.Has(mips.FlagUnsigned))
	if !valid {
		return ErrOpcode(inst)
	}
	if ok {
		e.raise(ExcTrap)
	}

	return nil
}

func (e *Engine) syscall(inst mips.Instruction) error {
	e.raise(ExcSyscall)
	return nil
}

func (e *Engine) breakpoint(inst mips.Instruction) error {
	e.raise(ExcBreakpoint)
	return nil
}

func (e *Engine) noop(inst mips.Instruction) error {
	return nil
}

// tlb forwards TLB maintenance to the optional TLB hook.
func (e *Engine) tlb(inst mips.Instruction) error {
	if !e.cp0() {
		return nil
	}

	if e.TLB != nil {
		e.TLB.Execute(inst.Opcode.Arith, e.Cp0)
	} else if e.Verbose {
		e.Log.WithField("component", "cpu").Debugf("0x%08x: %v ignored", uint32(inst.Address), inst.Mnemonic())
	}

	return nil
}
