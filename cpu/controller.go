package cpu

import (
	"github.com/sirupsen/logrus"
)

// InterruptLine is a level-triggered interrupt source.
type InterruptLine interface {
	Pending() bool
}

// Dispatch is the outcome of an arbiter tick that redirects execution.
type Dispatch struct {
	Kind      Kind
	Code      ExceptionCode
	Vector    uint64 // New program counter.
	EPC       uint64 // Resume address recorded in EPC or ErrorEPC.
	DelaySlot bool   // Taken while a delay slot was pending.
}

// Controller is the system control coprocessor: its registers, the
// Count/Compare timer, and the exception and interrupt arbiter.
//
// Pending conditions are latched by the Set* methods and by the Engine,
// and resolved on the next Tick. At most one is dispatched per Tick, in
// the order NMI, TLB refill, XTLB refill, cache error, synchronous
// exception, maskable interrupt. While EXL or ERL is set only an NMI can be
// dispatched.
type Controller struct {
	Verbose bool
	Log     logrus.FieldLogger

	Regs   [CP0_REGISTERS]uint64
	Line   InterruptLine // External RCP interrupt line, sampled every tick.
	Direct bool          // Use vector base 0, for diagnostics.

	nmi         bool
	tlbRefill   bool
	xtlbRefill  bool
	cacheError  bool
	exception   bool
	code        ExceptionCode
	coprocessor int
}

// NewController creates a controller in its reset state.
func NewController(log logrus.FieldLogger) (c *Controller) {
	if log == nil {
		log = logrus.New()
	}
	c = &Controller{Log: log}
	c.Reset()
	return
}

// Reset clears all registers and pending conditions.
func (c *Controller) Reset() {
	clear(c.Regs[:])
	c.Regs[CP0_RANDOM] = RANDOM_RESET
	c.Regs[CP0_PRID] = PRID_VR4300
	c.Regs[CP0_STATUS] = STATUS_ERL | STATUS_BEV

	c.nmi = false
	c.tlbRefill = false
	c.xtlbRefill = false
	c.cacheError = false
	c.exception = false
	c.code = 0
	c.coprocessor = 0
}

func (c *Controller) Status() uint32 {
	return uint32(c.Regs[CP0_STATUS])
}

func (c *Controller) Cause() uint32 {
	return uint32(c.Regs[CP0_CAUSE])
}

// SetStatus sets or clears status bits.
func (c *Controller) SetStatus(bits uint32, on bool) {
	if on {
		c.Regs[CP0_STATUS] |= uint64(bits)
	} else {
		c.Regs[CP0_STATUS] &^= uint64(bits)
	}
}

// KernelMode returns true when the processor runs with kernel privilege.
func (c *Controller) KernelMode() bool {
	status := c.Status()
	return status&(STATUS_EXL|STATUS_ERL) != 0 || status&STATUS_KSU_MASK == KSU_KERNEL
}

// Mode64 returns true when the current privilege level uses 64-bit
// operation.
func (c *Controller) Mode64() bool {
	status := c.Status()
	switch {
	case c.KernelMode():
		return status&STATUS_KX != 0
	case status&STATUS_KSU_MASK == KSU_SUPERVISOR:
		return status&STATUS_SX != 0
	default:
		return status&STATUS_UX != 0
	}
}

// Cp0Usable reports whether coprocessor 0 instructions are allowed.
func (c *Controller) Cp0Usable() bool {
	return c.KernelMode() || c.Status()&STATUS_CU0 != 0
}

// Cp1Usable reports whether the FPU is enabled.
func (c *Controller) Cp1Usable() bool {
	return c.Status()&STATUS_CU1 != 0
}

// FR reports the FPU register mode.
func (c *Controller) FR() bool {
	return c.Status()&STATUS_FR != 0
}

// Read a register as the guest sees it.
func (c *Controller) Read(index int) uint64 {
	return c.Regs[index&0x1f]
}

// Write a register as the guest does, honouring read-only fields and side
// effects.
func (c *Controller) Write(index int, value uint64) {
	index &= 0x1f
	switch index {
	case CP0_RANDOM, CP0_PRID, CP0_BADVADDR:
		return
	case CP0_COUNT:
		value = uint64(uint32(value))
	case CP0_COMPARE:
		value = uint64(uint32(value))
		c.Regs[CP0_CAUSE] &^= CAUSE_IP_TIMER
	case CP0_CAUSE:
		value = c.Regs[CP0_CAUSE]&^CAUSE_WRITABLE | value&CAUSE_WRITABLE
	}
	c.Regs[index] = value
}

// SetException latches a synchronous exception for the next tick.
func (c *Controller) SetException(code ExceptionCode) {
	c.exception = true
	c.code = code
}

// SetUnusable latches a coprocessor unusable exception.
func (c *Controller) SetUnusable(coprocessor int) {
	c.SetException(ExcUnusable)
	c.coprocessor = coprocessor
}

// ExceptionPending returns the latched synchronous exception, if any.
func (c *Controller) ExceptionPending() (code ExceptionCode, ok bool) {
	return c.code, c.exception
}

// Accept reports whether the synchronous exception latched by the last
// instruction will be dispatched on the next tick. One raised at exception
// or error level is dropped.
func (c *Controller) Accept() bool {
	if !c.exception {
		return false
	}
	if c.Status()&(STATUS_EXL|STATUS_ERL) != 0 {
		c.exception = false
		if c.Verbose {
			c.Log.WithField("component", "arbiter").Debugf("%v dropped at exception level", c.code)
		}
		return false
	}
	return true
}

func (c *Controller) SetNonMaskableInterrupt() { c.nmi = true }
func (c *Controller) SetTLBRefill()            { c.tlbRefill = true }
func (c *Controller) SetXTLBRefill()           { c.xtlbRefill = true }
func (c *Controller) SetCacheError()           { c.cacheError = true }

// UseDirectVectors selects vector base 0 for every dispatch.
func (c *Controller) UseDirectVectors(on bool) { c.Direct = on }

// SetSoftReset presses the reset button.
func (c *Controller) SetSoftReset() {
	c.RaiseInterrupt(CAUSE_IP_RESET)
}

// RaiseInterrupt sets pending interrupt bits in Cause.
func (c *Controller) RaiseInterrupt(bits uint32) {
	c.Regs[CP0_CAUSE] |= uint64(bits & CAUSE_IP_MASK)
}

// ClearInterrupt clears pending interrupt bits in Cause.
func (c *Controller) ClearInterrupt(bits uint32) {
	c.Regs[CP0_CAUSE] &^= uint64(bits & CAUSE_IP_MASK)
}

func (c *Controller) base() uint64 {
	switch {
	case c.Direct:
		return 0
	case c.Status()&STATUS_BEV != 0:
		return VECTOR_BASE_BEV
	}
	return VECTOR_BASE
}

func (c *Controller) cacheBase() uint64 {
	switch {
	case c.Direct:
		return 0
	case c.Status()&STATUS_BEV != 0:
		return VECTOR_BASE_BEV
	}
	return VECTOR_BASE_CACHE
}

func (c *Controller) timer() {
	count := uint32(c.Regs[CP0_COUNT]) + 1
	compare := uint32(c.Regs[CP0_COMPARE])
	if compare != 0 && count >= compare {
		count = 0
		c.Regs[CP0_CAUSE] |= CAUSE_IP_TIMER
	}
	c.Regs[CP0_COUNT] = uint64(count)

	wired := uint32(c.Regs[CP0_WIRED]) & 0x1f
	random := uint32(c.Regs[CP0_RANDOM]) & 0x1f
	if random <= wired {
		random = RANDOM_RESET
	} else {
		random--
	}
	c.Regs[CP0_RANDOM] = uint64(random)
}

func (c *Controller) line() {
	if c.Line == nil {
		return
	}
	if c.Line.Pending() {
		c.Regs[CP0_CAUSE] |= CAUSE_IP_RCP
	} else {
		c.Regs[CP0_CAUSE] &^= CAUSE_IP_RCP
	}
}

// Tick advances the timer, samples the interrupt line and arbitrates.
// pc is the address of the next instruction to execute; delaySlot is set
// when that instruction is a branch delay slot.
func (c *Controller) Tick(pc uint64, delaySlot bool) (d Dispatch, ok bool) {
	c.timer()
	c.line()

	status := c.Status()

	if c.nmi {
		c.nmi = false
		d = Dispatch{Kind: KindNMI, Vector: VECTOR_RESET}
		if c.Direct {
			d.Vector = 0
		}
		c.enter(&d, pc, delaySlot, true)
		return d, true
	}

	if status&(STATUS_EXL|STATUS_ERL) != 0 {
		return
	}

	switch {
	case c.tlbRefill:
		c.tlbRefill = false
		d = Dispatch{Kind: KindTLBRefill, Code: ExcTLBLoad, Vector: c.base() + VECTOR_TLB_REFILL}
	case c.xtlbRefill:
		c.xtlbRefill = false
		d = Dispatch{Kind: KindXTLBRefill, Code: ExcTLBLoad, Vector: c.base() + VECTOR_XTLB_REFILL}
	case c.cacheError:
		c.cacheError = false
		d = Dispatch{Kind: KindCacheError, Vector: c.cacheBase() + VECTOR_CACHE_ERROR}
		c.enter(&d, pc, delaySlot, true)
		return d, true
	case c.exception:
		c.exception = false
		d = Dispatch{Kind: KindException, Code: c.code, Vector: c.base() + VECTOR_GENERAL}
	case status&STATUS_IE != 0 && c.Cause()&status&CAUSE_IP_MASK != 0:
		d = Dispatch{Kind: KindInterrupt, Code: ExcInterrupt, Vector: c.base() + VECTOR_GENERAL}
	default:
		return
	}

	c.enter(&d, pc, delaySlot, false)
	return d, true
}

// enter records the exception state for a dispatch.
func (c *Controller) enter(d *Dispatch, pc uint64, delaySlot bool, errorLevel bool) {
	epc := uint32(pc)
	if delaySlot {
		epc -= 4
		c.Regs[CP0_CAUSE] |= CAUSE_BD
	} else {
		c.Regs[CP0_CAUSE] &^= CAUSE_BD
	}
	d.EPC = uint64(epc)
	d.DelaySlot = delaySlot

	if errorLevel {
		c.Regs[CP0_ERROREPC] = signExtend32(epc)
		c.SetStatus(STATUS_ERL, true)
	} else {
		c.Regs[CP0_EPC] = signExtend32(epc)
		c.SetStatus(STATUS_EXL, true)

		cause := c.Regs[CP0_CAUSE] &^ (CAUSE_EXC_MASK | CAUSE_CE_MASK)
		cause |= uint64(d.Code&EXCEPTION_CODE_MASK) << CAUSE_EXC_SHIFT
		if d.Code == ExcUnusable {
			cause |= uint64(c.coprocessor&3) << CAUSE_CE_SHIFT
		}
		c.Regs[CP0_CAUSE] = cause
	}

	if c.Verbose {
		c.Log.WithField("component", "arbiter").Debugf("%v %v: epc 0x%08x -> 0x%08x", d.Kind, d.Code, epc, uint32(d.Vector))
	}
}
