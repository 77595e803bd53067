// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package machine composes the processor, the memory router and the
// peripheral windows into one console.
package machine

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/vr4300/cart"
	"github.com/ezrec/vr4300/config"
	"github.com/ezrec/vr4300/cpu"
	"github.com/ezrec/vr4300/debug"
	"github.com/ezrec/vr4300/internal"
	"github.com/ezrec/vr4300/memory"
	"github.com/ezrec/vr4300/mips"
	"github.com/ezrec/vr4300/rcp"
)

const (
	KSEG0 = 0x8000_0000
	KSEG1 = 0xA000_0000
)

var _machine_defines = map[string]string{
	"KSEG0":        fmt.Sprintf("0x%08x", KSEG0),
	"KSEG1":        fmt.Sprintf("0x%08x", KSEG1),
	"RDRAM_WINDOW": fmt.Sprintf("0x%08x", memory.RDRAM_WINDOW),
	"PC_COLD_BOOT": fmt.Sprintf("0x%08x", PC_COLD_BOOT),
	"PC_HLE_BOOT":  fmt.Sprintf("0x%08x", PC_HLE_BOOT),
}

// Machine state. CPU + memory router + RCP windows.
type Machine struct {
	Verbose bool               // If set, enables verbose logging.
	Log     logrus.FieldLogger // Logger shared by every component.

	Router   *memory.Router
	Ram      *memory.Ram
	Data     *memory.DataMemory
	View     *memory.View
	Engine   *cpu.Engine
	Debugger *debug.Debugger

	MI  *rcp.MI
	PI  *rcp.PI
	SP  *rcp.SP
	DPC *rcp.DPC
	PIF *rcp.PIF

	Cartridge *cart.Cartridge // Mounted cartridge, if any.

	registers []*memory.Registers
}

// window is one entry of the physical address map.
type window struct {
	name   string
	base   uint32
	device memory.BlockDevice
}

// New creates a machine from a configuration. A nil configuration uses the
// defaults.
func New(cfg *config.Config, log logrus.FieldLogger) (m *Machine, err error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logrus.New()
	}

	err = cfg.Validate()
	if err != nil {
		return
	}

	order, _ := cfg.Order()
	opts, _ := cfg.Options()

	m = &Machine{
		Verbose: cfg.Verbose,
		Log:     log,
		Router:  memory.NewRouter(log),
		Ram:     memory.NewRam(cfg.RdramSize),
		PIF:     &rcp.PIF{},
	}

	m.Data = memory.NewDataMemory(m.Router, order)
	m.View = memory.NewView(m.Router, m.Ram)

	m.MI = rcp.NewMI(log)
	m.PI = rcp.NewPI(m.Router, m.MI, log)
	m.SP = rcp.NewSP(m.Router, m.MI, log)
	m.DPC = rcp.NewDPC(log)
	m.DPC.OnDisplayList = m.displayList

	vi := rcp.NewVI(m.MI, log)
	ai := rcp.NewAI(m.MI, log)
	si := rcp.NewSI(m.MI, log)
	ri := rcp.NewRI(log)
	rdramRegs := rcp.NewRdramRegisters(log)

	m.registers = []*memory.Registers{
		rdramRegs, m.SP.Control, m.SP.PC, &m.DPC.Registers,
		&m.MI.Registers, vi, ai, &m.PI.Registers, ri, si,
	}
	for _, regs := range m.registers {
		regs.Verbose = cfg.Verbose
	}

	windows := []window{
		{"rdram", rcp.RDRAM_BASE, m.Ram},
		{"rdram_regs", rcp.RDRAM_REGS_BASE, rdramRegs},
		{"sp_mem", rcp.SP_MEM_BASE, m.SP.Mem},
		{"sp_regs", rcp.SP_REGS_BASE, m.SP.Control},
		{"sp_pc", rcp.SP_PC_BASE, m.SP.PC},
		{"dpc", rcp.DPC_BASE, m.DPC},
		{"dps", rcp.DPS_BASE, m.dummy("dps", rcp.RCP_WINDOW)},
		{"mi", rcp.MI_BASE, m.MI},
		{"vi", rcp.VI_BASE, vi},
		{"ai", rcp.AI_BASE, ai},
		{"pi", rcp.PI_BASE, m.PI},
		{"ri", rcp.RI_BASE, ri},
		{"si", rcp.SI_BASE, si},
		{"dd", rcp.DD_BASE, m.dummy("dd", rcp.DD_WINDOW)},
		{"dd_ipl", rcp.DD_IPL_BASE, m.dummy("dd_ipl", rcp.DD_IPL_WINDOW)},
		{"sram", rcp.SRAM_BASE, m.dummy("sram", rcp.SRAM_WINDOW)},
		{"cart", rcp.CART_BASE, m.dummy("cart", rcp.CART_WINDOW)},
		{"pif", rcp.PIF_BASE, m.PIF},
	}
	for _, w := range windows {
		err = m.Router.Map(w.name, w.base, w.device)
		if err != nil {
			return nil, err
		}
	}

	m.Engine = cpu.NewEngine(m.Data, &mips.MemoryDecoder{Memory: m.Data}, log)
	m.Engine.Verbose = cfg.Verbose
	m.Engine.Options = opts
	m.Engine.Cp0.Line = m.MI
	m.Engine.Cp0.UseDirectVectors(cfg.DirectVectors)

	m.Debugger = debug.NewDebugger(log)
	m.Debugger.Verbose = cfg.Verbose
	m.Debugger.Symbols = m.Defines
	m.Engine.Monitor = m.Debugger

	for _, bp := range cfg.Breakpoints {
		err = m.AddBreakpoint(bp)
		if err != nil {
			return nil, err
		}
	}

	return
}

func (m *Machine) dummy(name string, size uint32) *memory.Dummy {
	return &memory.Dummy{Verbose: m.Verbose, Log: m.Log, Name: name, Window: size}
}

func (m *Machine) displayList(dl rcp.DisplayList) {
	if m.Verbose {
		m.Log.WithField("component", "dpc").Debugf("display list 0x%06x-0x%06x", dl.Start, dl.End)
	}
	m.MI.Raise(rcp.INTR_DP)
}

// AddBreakpoint installs a configured breakpoint in the debugger.
func (m *Machine) AddBreakpoint(bp config.Breakpoint) (err error) {
	dbp := debug.Breakpoint{
		Address:     bp.Address,
		Instruction: bp.Instruction,
	}

	if bp.Condition != "" {
		dbp.Condition, err = debug.NewCondition(bp.Condition)
		if err != nil {
			return
		}
	}

	return m.Debugger.AddBreakpoint(dbp)
}

// Defines returns an iterator over all of the defines.
func (m *Machine) Defines() iter.Seq2[string, string] {
	seqs := []iter.Seq2[string, string]{
		maps.All(_machine_defines),
		internal.IterSeq2Prefix("WINDOW_", m.windowDefines()),
	}
	for _, regs := range m.registers {
		seqs = append(seqs, registerDefines(regs))
	}
	if m.Cartridge != nil {
		seqs = append(seqs, maps.All(map[string]string{
			"CART_ENTRY": fmt.Sprintf("0x%08x", m.Cartridge.Entry),
		}))
	}

	return internal.IterSeq2Concat(seqs...)
}

// windowDefines names the base of every mapped window.
func (m *Machine) windowDefines() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for name, base := range m.Router.Windows() {
			if !yield(strings.ToUpper(name), fmt.Sprintf("0x%08x", base)) {
				return
			}
		}
	}
}

// registerDefines names the uncached address of every register in a window.
func registerDefines(regs *memory.Registers) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		base := KSEG1 | regs.BaseAddress()
		for name, offset := range regs.All() {
			if !yield(name, fmt.Sprintf("0x%08x", base+offset)) {
				return
			}
		}
	}
}

// Mount swaps in a cartridge. The machine must not be running.
func (m *Machine) Mount(c *cart.Cartridge) (err error) {
	_, err = m.Router.Replace("cart", c.BlockDevice())
	if err != nil {
		return
	}

	m.Cartridge = c
	if m.Verbose {
		m.Log.WithField("component", "machine").Infof("mounted '%v' %v %v %v", c.Name, c.Serial, c.Region, c.Lockout)
	}
	return
}

// LoadBinary copies data into the address space at address.
func (m *Machine) LoadBinary(address uint64, data []byte) (err error) {
	return m.Router.Write(uint32(address), data)
}

// Reset the processor and the interrupt state. Memory is untouched.
func (m *Machine) Reset() {
	m.Engine.Reset()
	m.MI.Reset()
}

// PC returns the current program counter.
func (m *Machine) PC() uint64 {
	return m.Engine.PC
}

// Ticks returns the total ticks since a reset.
func (m *Machine) Ticks() uint64 {
	return m.Engine.Ticks
}

// Instruction returns the instruction at the program counter.
func (m *Machine) Instruction() (inst mips.Instruction, err error) {
	return m.Engine.Decoder.Decode(m.Engine.PC)
}

// parked returns true when the processor is spinning on a jump to itself
// and no interrupt can release it.
func (m *Machine) parked() bool {
	b := &m.Engine.Branch
	if !(b.Take || b.Unconditional) || uint32(b.Target) != uint32(m.Engine.PC-4) {
		return false
	}

	status := m.Engine.Cp0.Status()
	if status&(cpu.STATUS_EXL|cpu.STATUS_ERL) != 0 {
		return true
	}
	return status&cpu.STATUS_IE == 0 || status&cpu.STATUS_IM_MASK == 0
}

// Tick performs a single instruction step of the machine.
//
// done is set once the processor parks on a jump to itself with interrupts
// unable to release it.
func (m *Machine) Tick() (done bool, err error) {
	m.Engine.Verbose = m.Verbose

	pc := m.Engine.PC
	defer func() {
		if err != nil {
			err = &ErrRuntime{PC: pc, Err: err}
		}
	}()

	err = m.Engine.Step()
	if err != nil {
		return
	}

	for _, dmaErr := range []error{m.PI.Err(), m.SP.Err()} {
		if dmaErr != nil {
			m.Log.WithFields(logrus.Fields{
				"component": "machine",
				"pc":        fmt.Sprintf("0x%08x", uint32(pc)),
			}).Warn(dmaErr)
		}
	}

	err = m.Debugger.Err()
	if err != nil {
		return
	}

	done = m.parked()
	return
}

// Finally is called once the run loop exits.
func (m *Machine) Finally() (err error) {
	if flusher, ok := m.Debugger.Trace.(interface{ Flush() error }); ok {
		err = flusher.Flush()
	}

	if m.Verbose {
		m.Log.WithField("component", "machine").Infof("stopped at 0x%08x after %d ticks", uint32(m.Engine.PC), m.Engine.Ticks)
	}

	return errors.Join(err, m.Debugger.Err())
}
