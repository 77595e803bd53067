// Package debug watches the execution engine for breakpoints and writes an
// instruction trace.
package debug

import (
	"fmt"
	"io"
	"iter"
	"maps"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/vr4300/cpu"
	"github.com/ezrec/vr4300/internal"
	"github.com/ezrec/vr4300/mips"
	"github.com/ezrec/vr4300/rcp"
)

// Breakpoint marks an instruction to stop at.
//
// An Instruction breakpoint matches by mnemonic, anywhere unless Address is
// also set. Otherwise it matches Address alone.
type Breakpoint struct {
	Address     uint64
	Instruction string
	Condition   *Condition // Optional.
}

func (bp *Breakpoint) match(inst mips.Instruction) bool {
	if bp.Instruction != "" {
		if inst.Mnemonic() != bp.Instruction {
			return false
		}
		return bp.Address == 0 || uint32(bp.Address) == uint32(inst.Address)
	}
	return uint32(bp.Address) == uint32(inst.Address)
}

func (bp *Breakpoint) String() string {
	var where string
	switch {
	case bp.Instruction == "":
		where = fmt.Sprintf("0x%08x", uint32(bp.Address))
	case bp.Address == 0:
		where = bp.Instruction
	default:
		where = fmt.Sprintf("%v@0x%08x", bp.Instruction, uint32(bp.Address))
	}
	if bp.Condition != nil {
		where += " if " + bp.Condition.Expr
	}
	return where
}

// Debugger implements cpu.Monitor.
//
// TestInstruction and TestBranch run on the execution goroutine; Break,
// StepNext and Resume may be called from any goroutine. A hit is observed
// by the run loop once the instruction under test has retired.
type Debugger struct {
	Verbose bool
	Log     logrus.FieldLogger
	Trace   io.Writer                        // Optional instruction trace.
	Symbols func() iter.Seq2[string, string] // Optional condition symbols.
	Mode    func(pc uint64) string           // Trace mode column.

	mutex       sync.Mutex
	breakpoints []*Breakpoint
	branches    map[uint32]bool
	reason      string
	failed      internal.Option[error]

	active   atomic.Bool
	stepping atomic.Bool
	wake     chan struct{}
}

// NewDebugger creates a debugger with no breakpoints.
func NewDebugger(log logrus.FieldLogger) (d *Debugger) {
	if log == nil {
		log = logrus.New()
	}

	d = &Debugger{
		Log:      log.WithField("component", "debug"),
		Mode:     BootMode,
		branches: map[uint32]bool{},
		wake:     make(chan struct{}, 1),
	}
	return
}

// BootMode names code running from the signal processor memory or the PIF
// as "BOOT", and everything else as "PROG".
func BootMode(pc uint64) string {
	physical := uint32(pc) & 0x1fff_ffff
	switch {
	case physical >= rcp.SP_MEM_BASE && physical < rcp.SP_MEM_BASE+rcp.SP_MEM_SIZE:
		return "BOOT"
	case physical >= rcp.PIF_BASE && physical < rcp.PIF_BASE+rcp.PIF_WINDOW:
		return "BOOT"
	}
	return "PROG"
}

// AddBreakpoint installs a breakpoint.
func (d *Debugger) AddBreakpoint(bp Breakpoint) (err error) {
	if bp.Address == 0 && bp.Instruction == "" {
		err = ErrBreakpoint
		return
	}

	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.breakpoints = append(d.breakpoints, &bp)
	return
}

// RemoveBreakpoint removes the breakpoints at address, returning true if any
// were found.
func (d *Debugger) RemoveBreakpoint(address uint64) (found bool) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	count := len(d.breakpoints)
	d.breakpoints = slices.DeleteFunc(d.breakpoints, func(bp *Breakpoint) bool {
		return bp.Address != 0 && uint32(bp.Address) == uint32(address)
	})
	return len(d.breakpoints) != count
}

// Breakpoints returns the installed breakpoints.
func (d *Debugger) Breakpoints() []Breakpoint {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	list := make([]Breakpoint, len(d.breakpoints))
	for n, bp := range d.breakpoints {
		list[n] = *bp
	}
	return list
}

// AddBranchBreakpoint breaks when a taken branch or jump targets address.
func (d *Debugger) AddBranchBreakpoint(address uint64) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.branches[uint32(address)] = true
}

// BranchBreakpoints returns the branch targets being watched.
func (d *Debugger) BranchBreakpoints() []uint64 {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	list := []uint64{}
	for _, target := range slices.Sorted(maps.Keys(d.branches)) {
		list = append(list, uint64(target))
	}
	return list
}

// Break requests a stop before the next instruction.
func (d *Debugger) Break() {
	d.hit("break")
}

// StepNext releases a stopped machine for exactly one instruction.
func (d *Debugger) StepNext() {
	d.stepping.Store(true)
	d.active.Store(false)
	d.signal()
}

// TakeStep returns true, once, after StepNext.
func (d *Debugger) TakeStep() bool {
	return d.stepping.Swap(false)
}

// BreakActive returns true while the machine should stay stopped.
func (d *Debugger) BreakActive() bool {
	return d.active.Load()
}

// Resume clears an active break.
func (d *Debugger) Resume() {
	d.active.Store(false)
	d.signal()
}

// Wake is signaled on every Break, StepNext and Resume.
func (d *Debugger) Wake() <-chan struct{} {
	return d.wake
}

// Reason describes the most recent break.
func (d *Debugger) Reason() string {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	return d.reason
}

// Err returns, and clears, the last condition or trace error.
func (d *Debugger) Err() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	err, _ := d.failed.Take()
	return err
}

func (d *Debugger) signal() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *Debugger) hit(reason string) {
	d.mutex.Lock()
	d.reason = reason
	d.mutex.Unlock()

	if d.Verbose {
		d.Log.Infof("break: %v", reason)
	}

	d.active.Store(true)
	d.signal()
}

func (d *Debugger) fail(err error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.failed.Set(err)
}

func (d *Debugger) symbols() iter.Seq2[string, string] {
	if d.Symbols == nil {
		return nil
	}
	return d.Symbols()
}

// TestInstruction checks inst against the breakpoints.
func (d *Debugger) TestInstruction(regs *cpu.Registers, inst mips.Instruction) {
	d.mutex.Lock()
	matched := []*Breakpoint{}
	for _, bp := range d.breakpoints {
		if bp.match(inst) {
			matched = append(matched, bp)
		}
	}
	d.mutex.Unlock()

	for _, bp := range matched {
		if bp.Condition != nil {
			ok, err := bp.Condition.Eval(regs, d.symbols())
			if err != nil {
				d.fail(err)
				// A broken condition stops like a hit.
				ok = true
			}
			if !ok {
				continue
			}
		}
		d.hit(fmt.Sprintf("0x%08x %v (%v)", uint32(inst.Address), inst, bp))
		return
	}
}

// TestBranch checks a branch against the branch breakpoints.
func (d *Debugger) TestBranch(inst mips.Instruction, target uint64, taken bool) {
	if !taken {
		return
	}

	d.mutex.Lock()
	found := d.branches[uint32(target)]
	d.mutex.Unlock()

	if found {
		d.hit(fmt.Sprintf("0x%08x %v -> 0x%08x", uint32(inst.Address), inst, uint32(target)))
	}
}

// TraceInstruction writes one trace line when a trace writer is set.
func (d *Debugger) TraceInstruction(inst mips.Instruction, nullified bool) {
	if d.Trace == nil {
		return
	}

	mode := "PROG"
	if d.Mode != nil {
		mode = d.Mode(inst.Address)
	}

	line := fmt.Sprintf("%08X |%v| %v", uint32(inst.Address), mode, inst)
	if nullified {
		line += " (nullified)"
	}

	_, err := fmt.Fprintln(d.Trace, line)
	if err != nil {
		d.fail(err)
		d.Trace = nil
	}
}
