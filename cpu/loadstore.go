package cpu

import (
	"github.com/ezrec/vr4300/memory"
	"github.com/ezrec/vr4300/mips"
)

// address computes base plus offset at the operating width.
func (e *Engine) address(inst mips.Instruction) uint64 {
	addr := e.gpr(inst.Rs()) + uint64(inst.Offset())
	if !e.Mode64() {
		addr = signExtend32(uint32(addr))
	}
	return addr
}

// aligned raises an address error if addr is not a multiple of size.
func (e *Engine) aligned(addr uint64, size int, store bool) bool {
	if addr&uint64(size-1) == 0 {
		return true
	}

	e.Cp0.Regs[CP0_BADVADDR] = addr
	if store {
		e.raise(ExcAddressStore)
	} else {
		e.raise(ExcAddressLoad)
	}
	return false
}

func signExtendSize(value uint64, size int) uint64 {
	switch size {
	case 1:
		return uint64(int64(int8(value)))
	case 2:
		return uint64(int64(int16(value)))
	case 4:
		return uint64(int64(int32(value)))
	}
	return value
}

func (e *Engine) load(inst mips.Instruction) error {
	op := inst.Opcode
	size := op.DataSize()
	addr := e.address(inst)

	if op.Any(mips.FlagLeft | mips.FlagRight) {
		return e.loadPartial(inst, addr, size)
	}

	if !e.aligned(addr, size, false) {
		return nil
	}

	value, err := e.Memory.Load(addr, size)
	if err != nil {
		return err
	}

	if !op.Has(mips.FlagUnsigned) {
		value = signExtendSize(value, size)
	}
	e.setGPR(inst.Rt(), value)

	if op.Has(mips.FlagLinked) {
		e.LLBit = true
		e.Cp0.Regs[CP0_LLADDR] = uint64(memory.Physical(uint32(addr)) >> 4)
	}

	return nil
}

// loadPartial reads the enclosing aligned unit and merges it into rt.
func (e *Engine) loadPartial(inst mips.Instruction, addr uint64, size int) error {
	left := inst.Opcode.Has(mips.FlagLeft)
	n := addr & uint64(size-1)

	mem, err := e.Memory.Load(addr&^uint64(size-1), size)
	if err != nil {
		return err
	}

	rt := e.gpr(inst.Rt())
	if size == 4 {
		if left {
			e.setGPR32(inst.Rt(), loadLeft32(uint32(rt), uint32(mem), n))
		} else {
			e.setGPR32(inst.Rt(), loadRight32(uint32(rt), uint32(mem), n))
		}
		return nil
	}

	if left {
		e.setGPR(inst.Rt(), loadLeft64(rt, mem, n))
	} else {
		e.setGPR(inst.Rt(), loadRight64(rt, mem, n))
	}
	return nil
}

func (e *Engine) store(inst mips.Instruction) error {
	op := inst.Opcode
	size := op.DataSize()
	addr := e.address(inst)
	value := e.gpr(inst.Rt())

	if op.Any(mips.FlagLeft | mips.FlagRight) {
		return e.storePartial(inst, addr, size, value)
	}

	if !e.aligned(addr, size, true) {
		return nil
	}

	linked := op.Has(mips.FlagLinked)
	if linked && !e.LLBit {
		e.setGPR(inst.Rt(), 0)
		return nil
	}

	err := e.Memory.Store(addr, size, value)
	if err != nil {
		return err
	}

	if linked {
		e.setGPR(inst.Rt(), 1)
	}
	return nil
}

// storePartial merges rt into the enclosing aligned unit.
func (e *Engine) storePartial(inst mips.Instruction, addr uint64, size int, value uint64) error {
	left := inst.Opcode.Has(mips.FlagLeft)
	n := addr & uint64(size-1)
	base := addr &^ uint64(size-1)

	mem, err := e.Memory.Load(base, size)
	if err != nil {
		return err
	}

	switch {
	case size == 4 && left:
		mem = uint64(storeLeft32(uint32(mem), uint32(value), n))
	case size == 4:
		mem = uint64(storeRight32(uint32(mem), uint32(value), n))
	case left:
		mem = storeLeft64(mem, value, n)
	default:
		mem = storeRight64(mem, value, n)
	}

	return e.Memory.Store(base, size, mem)
}

func (e *Engine) loadFpu(inst mips.Instruction) error {
	if !e.cp1() {
		return nil
	}

	size := inst.Opcode.DataSize()
	addr := e.address(inst)
	if !e.aligned(addr, size, false) {
		return nil
	}

	value, err := e.Memory.Load(addr, size)
	if err != nil {
		return err
	}

	if size == 8 {
		e.WriteFPR64(inst.Ft(), e.Cp0.FR(), value)
	} else {
		e.WriteFPR32(inst.Ft(), e.Cp0.FR(), uint32(value))
	}
	return nil
}

func (e *Engine) storeFpu(inst mips.Instruction) error {
	if !e.cp1() {
		return nil
	}

	size := inst.Opcode.DataSize()
	addr := e.address(inst)
	if !e.aligned(addr, size, true) {
		return nil
	}

	var value uint64
	if size == 8 {
		value = e.ReadFPR64(inst.Ft(), e.Cp0.FR())
	} else {
		value = uint64(e.ReadFPR32(inst.Ft(), e.Cp0.FR()))
	}
	return e.Memory.Store(addr, size, value)
}
