package cpu

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/vr4300/internal"
	"github.com/ezrec/vr4300/memory"
	"github.com/ezrec/vr4300/mips"
)

// Decoder supplies decoded instructions by address.
type Decoder interface {
	Decode(pc uint64) (inst mips.Instruction, err error)
}

// Memory is the data side of the address space. Values are zero-extended
// and size is 1, 2, 4 or 8 bytes.
type Memory interface {
	Load(address uint64, size int) (value uint64, err error)
	Store(address uint64, size int, value uint64) (err error)
}

// Monitor observes execution for breakpoints and tracing.
type Monitor interface {
	TestInstruction(regs *Registers, inst mips.Instruction)
	TestBranch(inst mips.Instruction, target uint64, taken bool)
	TraceInstruction(inst mips.Instruction, nullified bool)
}

// TLB receives the TLB maintenance instructions. Address translation is not
// emulated.
type TLB interface {
	Execute(op mips.Arith, cp0 *Controller)
}

// BranchUnit is the branch-delay state between two instructions.
type BranchUnit struct {
	Take          bool   // A conditional branch was taken.
	Unconditional bool   // A jump was executed.
	DelaySlot     bool   // The next instruction is a delay slot.
	Nullify       bool   // The next instruction is skipped.
	Target        uint64 // Destination once the delay slot retires.
}

// jumping returns true if control transfers after the delay slot.
func (b *BranchUnit) jumping() bool {
	return b.Take || b.Unconditional
}

// Engine executes instructions.
type Engine struct {
	Verbose bool
	Log     logrus.FieldLogger

	Registers
	Cp0     *Controller
	Memory  Memory
	Decoder Decoder
	Monitor Monitor // Optional.
	TLB     TLB     // Optional.
	Options Options

	Branch BranchUnit
	Ticks  uint64 // Steps since reset.

	snapshots Stack[BranchUnit]
	inject    internal.Option[mips.Instruction]
	warned    bool
}

// NewEngine creates an engine with a fresh system control coprocessor.
func NewEngine(mem Memory, decoder Decoder, log logrus.FieldLogger) (e *Engine) {
	if log == nil {
		log = logrus.New()
	}

	e = &Engine{
		Log:     log,
		Cp0:     NewController(log),
		Memory:  mem,
		Decoder: decoder,
	}
	e.Reset()

	return
}

// Reset the register file and branch state. The controller is reset too.
func (e *Engine) Reset() {
	e.Registers = Registers{FCR0: FCR0_REVISION, PC: VECTOR_RESET}
	e.Branch = BranchUnit{}
	e.Ticks = 0
	e.snapshots.Reset()
	e.inject.Take()
	e.warned = false
	e.Cp0.Reset()
}

// Inject makes the next Step execute inst instead of fetching.
func (e *Engine) Inject(inst mips.Instruction) {
	e.inject.Set(inst)
}

// SetPC moves the program counter, abandoning any branch in flight.
func (e *Engine) SetPC(pc uint64) {
	e.PC = uint64(uint32(pc))
	e.Branch = BranchUnit{}
}

// Mode64 returns true when 64-bit operations are permitted.
func (e *Engine) Mode64() bool {
	return e.Cp0.Mode64()
}

// Step runs one arbiter tick and executes one instruction.
func (e *Engine) Step() (err error) {
	if e.Decoder == nil {
		return ErrNoDecoder
	}

	e.Ticks++

	if d, ok := e.Cp0.Tick(e.PC, e.Branch.DelaySlot); ok {
		e.enter(d)
	}

	return e.next()
}

// enter redirects to an exception vector. The branch state is saved for
// the exception return; when the exception lands on a delay slot, EPC
// points at the branch, which re-executes, so nothing is saved.
func (e *Engine) enter(d Dispatch) {
	snapshot := e.Branch
	if d.DelaySlot {
		snapshot = BranchUnit{}
	}
	if !e.snapshots.Push(snapshot) && e.Verbose {
		e.Log.WithField("component", "cpu").Debugf("branch snapshot stack full at 0x%08x", uint32(e.PC))
	}

	e.Branch = BranchUnit{}
	e.PC = uint64(uint32(d.Vector))
}

// next runs the branch-delay state machine around one instruction.
func (e *Engine) next() (err error) {
	b := &e.Branch

	if b.jumping() {
		target, slot := b.Target, b.DelaySlot
		*b = BranchUnit{}
		if slot {
			err = e.execute()
			if err != nil {
				return errors.Join(ErrDelaySlot, err)
			}
			if e.Cp0.Accept() {
				// Hold on the slot; the exception replays the branch.
				b.DelaySlot = true
				return
			}
		}
		e.PC = uint64(uint32(target))
		return
	}

	b.DelaySlot = false
	err = e.execute()
	if err != nil {
		return
	}
	if e.Cp0.Accept() {
		return
	}

	e.PC = uint64(uint32(e.PC + 4))
	return
}

func (e *Engine) fetch() (inst mips.Instruction, err error) {
	inst, ok := e.inject.Take()
	if ok {
		inst = mips.Decode(e.PC, inst.Word)
		return
	}

	return e.Decoder.Decode(e.PC)
}

// execute one instruction at PC.
func (e *Engine) execute() (err error) {
	e.GPR[0] = 0

	inst, err := e.fetch()
	if err != nil {
		var fault *memory.Fault
		if errors.As(err, &fault) {
			e.Cp0.Regs[CP0_BADVADDR] = signExtend32(fault.Address)
			e.raise(ExcInstructionBus)
			return nil
		}
		return
	}

	if e.Branch.Nullify {
		e.Branch.Nullify = false
		if e.Monitor != nil {
			e.Monitor.TraceInstruction(inst, true)
		}
		return
	}

	op := inst.Opcode
	handler := callTable[op.Op]
	if handler == nil {
		return &ErrExecute{Address: inst.Address, Err: ErrOpcode(inst)}
	}

	if e.Monitor != nil {
		e.Monitor.TestInstruction(&e.Registers, inst)
		e.Monitor.TraceInstruction(inst, false)
	}

	if e.Verbose {
		e.Log.WithField("component", "cpu").Debugf("%08x: %v", uint32(inst.Address), inst)
	}

	mode64 := e.Mode64()
	if (op.Has(mips.FlagReserved32) && !mode64) || (op.Has(mips.FlagReserved64) && mode64) {
		e.raise(ExcReserved)
		return
	}

	err = handler(e, inst)
	e.GPR[0] = 0

	var fault *memory.Fault
	if errors.As(err, &fault) {
		e.Cp0.Regs[CP0_BADVADDR] = signExtend32(fault.Address)
		e.raise(ExcDataBus)
		return nil
	}
	if err != nil {
		err = &ErrExecute{Address: inst.Address, Err: err}
	}

	return
}

// raise latches a guest exception for dispatch on the next Step.
func (e *Engine) raise(code ExceptionCode) {
	e.Cp0.SetException(code)
}

func (e *Engine) gpr(index int) uint64 {
	if index&0x1f == 0 {
		return 0
	}
	return e.GPR[index&0x1f]
}

func (e *Engine) setGPR(index int, value uint64) {
	if index&0x1f != 0 {
		e.GPR[index&0x1f] = value
	}
}

// setGPR32 writes a 32-bit result, sign-extended.
func (e *Engine) setGPR32(index int, value uint32) {
	e.setGPR(index, signExtend32(value))
}

// cp1 checks that the FPU is usable, raising Unusable if not.
func (e *Engine) cp1() bool {
	if !e.Cp0.Cp1Usable() {
		e.Cp0.SetUnusable(1)
		return false
	}
	return true
}

// cp0 checks that system control instructions are usable.
func (e *Engine) cp0() bool {
	if !e.Cp0.Cp0Usable() {
		e.Cp0.SetUnusable(0)
		return false
	}
	return true
}

type handler func(e *Engine, inst mips.Instruction) error

var callTable [mips.OpCount]handler

func init() {
	callTable = [mips.OpCount]handler{
		mips.OpAdd32:      (*Engine).add32,
		mips.OpAdd64:      (*Engine).add64,
		mips.OpSub32:      (*Engine).sub32,
		mips.OpSub64:      (*Engine).sub64,
		mips.OpLogic:      (*Engine).logic,
		mips.OpLoadUpper:  (*Engine).loadUpper,
		mips.OpShift32:    (*Engine).shift32,
		mips.OpShift64:    (*Engine).shift64,
		mips.OpMultiply32: (*Engine).multiply32,
		mips.OpMultiply64: (*Engine).multiply64,
		mips.OpDivide32:   (*Engine).divide32,
		mips.OpDivide64:   (*Engine).divide64,
		mips.OpSetLess:    (*Engine).setLess,
		mips.OpTransfer:   (*Engine).transfer,
		mips.OpBranch:     (*Engine).branch,
		mips.OpJump:       (*Engine).jump,
		mips.OpLoad:       (*Engine).load,
		mips.OpStore:      (*Engine).store,
		mips.OpLoadFpu:    (*Engine).loadFpu,
		mips.OpStoreFpu:   (*Engine).storeFpu,
		mips.OpFpuArith:   (*Engine).fpuArith,
		mips.OpFpuConvert: (*Engine).fpuConvert,
		mips.OpFpuCompare: (*Engine).fpuCompare,
		mips.OpReturn:     (*Engine).exceptionReturn,
		mips.OpSyscall:    (*Engine).syscall,
		mips.OpBreak:      (*Engine).breakpoint,
		mips.OpTrap:       (*Engine).trap,
		mips.OpNoop:       (*Engine).noop,
		mips.OpTlb:        (*Engine).tlb,
	}
}
