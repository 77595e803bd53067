package rcp

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/vr4300/memory"
)

// Physical address map.
const (
	RDRAM_BASE      = 0x0000_0000
	RDRAM_REGS_BASE = 0x03F0_0000
	SP_MEM_BASE     = 0x0400_0000
	SP_REGS_BASE    = 0x0404_0000
	SP_PC_BASE      = 0x0408_0000
	DPC_BASE        = 0x0410_0000
	DPS_BASE        = 0x0420_0000
	MI_BASE         = 0x0430_0000
	VI_BASE         = 0x0440_0000
	AI_BASE         = 0x0450_0000
	PI_BASE         = 0x0460_0000
	RI_BASE         = 0x0470_0000
	SI_BASE         = 0x0480_0000
	DD_BASE         = 0x0500_0000 // Cartridge domain 2, address 1.
	DD_IPL_BASE     = 0x0600_0000 // Cartridge domain 1, address 1.
	SRAM_BASE       = 0x0800_0000 // Cartridge domain 2, address 2.
	CART_BASE       = 0x1000_0000 // Cartridge domain 1, address 2.
	PIF_BASE        = 0x1FC0_0000

	RCP_WINDOW        = 0x0010_0000 // Span of one register block.
	RDRAM_REGS_WINDOW = SP_MEM_BASE - RDRAM_REGS_BASE
	DD_WINDOW         = DD_IPL_BASE - DD_BASE
	DD_IPL_WINDOW     = SRAM_BASE - DD_IPL_BASE
	SRAM_WINDOW       = CART_BASE - SRAM_BASE
	CART_WINDOW       = 0x0FC0_0000
)

// Interrupt is an MI interrupt line.
type Interrupt int

//go:generate go tool stringer -linecomment -type=Interrupt

const (
	INTR_SP    Interrupt = iota // sp
	INTR_SI                     // si
	INTR_AI                     // ai
	INTR_VI                     // vi
	INTR_PI                     // pi
	INTR_DP                     // dp
	INTR_COUNT                  // count
)

// Copier moves bytes between physical addresses. *memory.Router is one.
type Copier interface {
	Copy(ctx context.Context, req memory.CopyRequest) (count int, err error)
}

func defaultLog(log logrus.FieldLogger, component string) logrus.FieldLogger {
	if log == nil {
		log = logrus.New()
	}
	return log.WithField("component", component)
}

// granules rounds a transfer length up to whole copy granules.
func granules(length int) int {
	return (length + memory.COPY_GRANULE - 1) &^ (memory.COPY_GRANULE - 1)
}

// dma runs one transfer inline and annotates any failure.
func dma(copier Copier, name string, req memory.CopyRequest) (count int, err error) {
	count, err = copier.Copy(context.Background(), req)
	if err != nil {
		err = &ErrDMA{Interface: name, Request: req, Err: err}
	}
	return
}

// registers builds a window of plain read/write registers.
func registers(name string, log logrus.FieldLogger, names ...string) *memory.Registers {
	regs := make([]*memory.Register, len(names))
	for n, reg := range names {
		regs[n] = &memory.Register{Name: reg}
	}
	return &memory.Registers{
		Log:    log,
		Name:   name,
		Window: RCP_WINDOW,
		Regs:   regs,
	}
}
