package cpu

import (
	"github.com/ezrec/vr4300/mips"
)

// transfer moves a value between register banks.
func (e *Engine) transfer(inst mips.Instruction) error {
	op := inst.Opcode

	for _, bound := range []mips.RegBound{op.Source, op.Target} {
		switch bound {
		case mips.BoundCp0:
			if !e.cp0() {
				return nil
			}
		case mips.BoundCp1, mips.BoundCp1Ctl:
			if !e.cp1() {
				return nil
			}
		}
	}

	wide := op.Has(mips.FlagData64)
	fr := e.Cp0.FR()

	// Hi and Lo pair with rs and rd; the coprocessors with rt.
	hilo := op.Source == mips.BoundHi || op.Source == mips.BoundLo ||
		op.Target == mips.BoundHi || op.Target == mips.BoundLo

	var value uint64
	switch op.Source {
	case mips.BoundGpr:
		if hilo {
			value = e.gpr(inst.Rs())
		} else {
			value = e.gpr(inst.Rt())
		}
	case mips.BoundHi:
		value = e.Hi
	case mips.BoundLo:
		value = e.Lo
	case mips.BoundCp0:
		value = e.Cp0.Read(inst.Rd())
	case mips.BoundCp1:
		if wide {
			value = e.ReadFPR64(inst.Fs(), fr)
		} else {
			value = uint64(e.ReadFPR32(inst.Fs(), fr))
		}
	case mips.BoundCp1Ctl:
		switch inst.Rd() {
		case 0:
			value = uint64(e.FCR0)
		case 31:
			value = uint64(e.FCR31)
		}
	default:
		return ErrOpcode(inst)
	}

	if !wide {
		if e.Mode64() {
			value = signExtend32(uint32(value))
		} else {
			value = uint64(uint32(value))
		}
	}

	switch op.Target {
	case mips.BoundGpr:
		if hilo {
			e.setGPR(inst.Rd(), value)
		} else {
			e.setGPR(inst.Rt(), value)
		}
	case mips.BoundHi:
		e.Hi = value
	case mips.BoundLo:
		e.Lo = value
	case mips.BoundCp0:
		e.Cp0.Write(inst.Rd(), value)
	case mips.BoundCp1:
		if wide {
			e.WriteFPR64(inst.Fs(), fr, value)
		} else {
			e.WriteFPR32(inst.Fs(), fr, uint32(value))
		}
	case mips.BoundCp1Ctl:
		if inst.Rd() == 31 {
			e.FCR31 = uint32(value) & FCR31_WRITABLE
			e.fpuTrap()
		}
	default:
		return ErrOpcode(inst)
	}

	return nil
}
