package rcp

import (
	"github.com/sirupsen/logrus"

	"github.com/ezrec/vr4300/internal"
	"github.com/ezrec/vr4300/memory"
)

const (
	SP_DMEM_SIZE = 0x1000
	SP_IMEM_SIZE = 0x1000
	SP_MEM_SIZE  = SP_DMEM_SIZE + SP_IMEM_SIZE
	SP_WINDOW    = SP_REGS_BASE - SP_MEM_BASE
)

// SP register offsets, relative to SP_REGS_BASE.
const (
	SP_MEM_ADDR  = 0x00
	SP_DRAM_ADDR = 0x04
	SP_RD_LEN    = 0x08
	SP_WR_LEN    = 0x0c
	SP_STATUS    = 0x10
	SP_DMA_FULL  = 0x14
	SP_DMA_BUSY  = 0x18
	SP_SEMAPHORE = 0x1c
)

// SP_STATUS read bits.
const (
	SP_STATUS_HALT       = 1 << 0
	SP_STATUS_BROKE      = 1 << 1
	SP_STATUS_DMA_BUSY   = 1 << 2
	SP_STATUS_DMA_FULL   = 1 << 3
	SP_STATUS_IO_FULL    = 1 << 4
	SP_STATUS_SSTEP      = 1 << 5
	SP_STATUS_INTR_BREAK = 1 << 6
	SP_STATUS_SIGNAL0    = 1 << 7
)

// SP_STATUS write commands.
const (
	SP_CLEAR_HALT       = 1 << 0
	SP_SET_HALT         = 1 << 1
	SP_CLEAR_BROKE      = 1 << 2
	SP_CLEAR_INTR       = 1 << 3
	SP_SET_INTR         = 1 << 4
	SP_CLEAR_SSTEP      = 1 << 5
	SP_SET_SSTEP        = 1 << 6
	SP_CLEAR_INTR_BREAK = 1 << 7
	SP_SET_INTR_BREAK   = 1 << 8
	SP_CLEAR_SIGNAL0    = 1 << 9 // Signals 0 to 7 follow as pairs.
)

// SP is the signal processor's host-visible side: its data and instruction
// memories, DMA and status registers, and program counter. The processor
// itself is not emulated and stays halted unless the guest releases it.
type SP struct {
	Mem     *memory.Buffer
	Control *memory.Registers
	PC      *memory.Registers
	Copier  Copier
	MI      *MI

	failed internal.Option[error]

	memAddr  *memory.Register
	dramAddr *memory.Register
	status   *memory.Register
}

// NewSP creates a halted SP.
func NewSP(copier Copier, mi *MI, log logrus.FieldLogger) (sp *SP) {
	log = defaultLog(log, "sp")

	sp = &SP{Copier: copier, MI: mi}
	sp.Mem = &memory.Buffer{Data: make([]byte, SP_MEM_SIZE), Window: SP_WINDOW}

	sp.memAddr = &memory.Register{Name: "SP_MEM_ADDR"}
	sp.dramAddr = &memory.Register{Name: "SP_DRAM_ADDR"}
	sp.status = &memory.Register{Name: "SP_STATUS", Dual: true, Value: SP_STATUS_HALT, OnWrite: sp.writeStatus}

	sp.Control = &memory.Registers{
		Log:    log,
		Name:   "sp",
		Window: SP_PC_BASE - SP_REGS_BASE,
		Regs: []*memory.Register{
			sp.memAddr,
			sp.dramAddr,
			{Name: "SP_RD_LEN", OnWrite: sp.writeReadLength},
			{Name: "SP_WR_LEN", OnWrite: sp.writeWriteLength},
			sp.status,
			{Name: "SP_DMA_FULL", ReadOnly: true},
			{Name: "SP_DMA_BUSY", ReadOnly: true},
			{Name: "SP_SEMAPHORE"},
		},
	}

	sp.PC = &memory.Registers{
		Log:    log,
		Name:   "sp_pc",
		Window: DPC_BASE - SP_PC_BASE,
		Regs: []*memory.Register{
			{Name: "SP_PC"},
			{Name: "SP_IBIST"},
		},
	}
	return
}

func (sp *SP) writeStatus(command uint32) {
	status := sp.status.Value

	status = pairs(status, command, 0, 1)
	if command&SP_CLEAR_BROKE != 0 {
		status &^= SP_STATUS_BROKE
	}
	status = status&^SP_STATUS_SSTEP | pairs(status>>5&1, command, 5, 1)<<5
	status = status&^SP_STATUS_INTR_BREAK | pairs(status>>6&1, command, 7, 1)<<6
	status = status&^(0xff<<7) | pairs(status>>7&0xff, command, 9, 8)<<7

	sp.status.Value = status

	switch command & (SP_CLEAR_INTR | SP_SET_INTR) {
	case SP_CLEAR_INTR:
		sp.MI.Clear(INTR_SP)
	case SP_SET_INTR:
		sp.MI.Raise(INTR_SP)
	}
}

func (sp *SP) memAddress() uint32 {
	return SP_MEM_BASE + sp.memAddr.Value&(SP_MEM_SIZE-1)
}

// spLength decodes a byte count less one from the low 12 bits.
func spLength(length uint32) int {
	return int(length&0xfff) + 1
}

func (sp *SP) writeReadLength(length uint32) {
	sp.transfer(memory.CopyRequest{
		Source:      sp.dramAddr.Value & PI_DRAM_MASK,
		Destination: sp.memAddress(),
		Length:      spLength(length),
	})
}

func (sp *SP) writeWriteLength(length uint32) {
	sp.transfer(memory.CopyRequest{
		Source:      sp.memAddress(),
		Destination: sp.dramAddr.Value & PI_DRAM_MASK,
		Length:      spLength(length),
	})
}

func (sp *SP) transfer(req memory.CopyRequest) {
	req.Length = (req.Length + 7) &^ 7
	_, err := dma(sp.Copier, "sp", req)
	if err != nil {
		sp.failed.Set(err)
	}
}

// Err returns, and clears, the error of the last failed transfer.
func (sp *SP) Err() error {
	err, _ := sp.failed.Take()
	return err
}

// Status returns the SP_STATUS read value.
func (sp *SP) Status() uint32 {
	return sp.status.Value
}

// SetStatus overrides the SP_STATUS read value, as the boot code leaves it.
func (sp *SP) SetStatus(status uint32) {
	sp.status.Value = status
}

// Halted reports whether the signal processor is halted.
func (sp *SP) Halted() bool {
	return sp.status.Value&SP_STATUS_HALT != 0
}
