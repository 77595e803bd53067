package rcp

import (
	"github.com/sirupsen/logrus"

	"github.com/ezrec/vr4300/internal"
	"github.com/ezrec/vr4300/memory"
)

// PI register offsets.
const (
	PI_DRAM_ADDR    = 0x00
	PI_CART_ADDR    = 0x04
	PI_RD_LEN       = 0x08
	PI_WR_LEN       = 0x0c
	PI_STATUS       = 0x10
	PI_BSD_DOM1_LAT = 0x14
	PI_BSD_DOM1_PWD = 0x18
	PI_BSD_DOM1_PGS = 0x1c
	PI_BSD_DOM1_RLS = 0x20
	PI_BSD_DOM2_LAT = 0x24
	PI_BSD_DOM2_PWD = 0x28
	PI_BSD_DOM2_PGS = 0x2c
	PI_BSD_DOM2_RLS = 0x30
)

// PI_STATUS bits.
const (
	PI_STATUS_DMA_BUSY = 1 << 0 // Read.
	PI_STATUS_IO_BUSY  = 1 << 1 // Read.
	PI_STATUS_ERROR    = 1 << 2 // Read.

	PI_STATUS_RESET     = 1 << 0 // Write: reset the controller.
	PI_STATUS_CLEAR_INT = 1 << 1 // Write: acknowledge the interrupt.

	PI_DRAM_MASK   = 0x00ff_ffff
	PI_LENGTH_MASK = 0x00ff_ffff
)

// PI is the peripheral interface, which moves data between RDRAM and the
// cartridge domains.
//
// Writing PI_WR_LEN copies PI_WR_LEN+1 bytes from the cartridge address to
// RDRAM; writing PI_RD_LEN copies the other way. The transfer completes
// before the register write returns, after which the PI interrupt is
// raised. Lengths are rounded up to whole copy granules.
type PI struct {
	memory.Registers
	Copier Copier
	MI     *MI

	failed internal.Option[error]

	dramAddr *memory.Register
	cartAddr *memory.Register
	status   *memory.Register
}

// NewPI creates a PI that copies through copier and interrupts through mi.
func NewPI(copier Copier, mi *MI, log logrus.FieldLogger) (pi *PI) {
	pi = &PI{Copier: copier, MI: mi}

	pi.dramAddr = &memory.Register{Name: "PI_DRAM_ADDR"}
	pi.cartAddr = &memory.Register{Name: "PI_CART_ADDR"}
	pi.status = &memory.Register{Name: "PI_STATUS", Dual: true, OnWrite: pi.writeStatus}

	pi.Registers = memory.Registers{
		Log:    defaultLog(log, "pi"),
		Name:   "pi",
		Window: RCP_WINDOW,
		Regs: []*memory.Register{
			pi.dramAddr,
			pi.cartAddr,
			{Name: "PI_RD_LEN", OnWrite: pi.writeReadLength},
			{Name: "PI_WR_LEN", OnWrite: pi.writeWriteLength},
			pi.status,
			{Name: "PI_BSD_DOM1_LAT"},
			{Name: "PI_BSD_DOM1_PWD"},
			{Name: "PI_BSD_DOM1_PGS"},
			{Name: "PI_BSD_DOM1_RLS"},
			{Name: "PI_BSD_DOM2_LAT"},
			{Name: "PI_BSD_DOM2_PWD"},
			{Name: "PI_BSD_DOM2_PGS"},
			{Name: "PI_BSD_DOM2_RLS"},
		},
	}
	return
}

func (pi *PI) writeStatus(command uint32) {
	if command&PI_STATUS_RESET != 0 {
		pi.status.Value = 0
	}
	if command&PI_STATUS_CLEAR_INT != 0 {
		pi.MI.Clear(INTR_PI)
	}
}

func (pi *PI) writeReadLength(length uint32) {
	pi.transfer(memory.CopyRequest{
		Source:      pi.dramAddr.Value & PI_DRAM_MASK,
		Destination: pi.cartAddr.Value,
		Length:      int(length&PI_LENGTH_MASK) + 1,
	})
}

func (pi *PI) writeWriteLength(length uint32) {
	pi.transfer(memory.CopyRequest{
		Source:      pi.cartAddr.Value,
		Destination: pi.dramAddr.Value & PI_DRAM_MASK,
		Length:      int(length&PI_LENGTH_MASK) + 1,
	})
}

func (pi *PI) transfer(req memory.CopyRequest) {
	req.Length = granules(req.Length)

	if pi.Verbose {
		pi.Log.Debugf("dma 0x%08x -> 0x%08x (%d bytes)", req.Source, req.Destination, req.Length)
	}

	count, err := dma(pi.Copier, "pi", req)
	if err != nil {
		pi.status.Value |= PI_STATUS_ERROR
		pi.failed.Set(err)
	}

	pi.dramAddr.Value += uint32(count)
	pi.cartAddr.Value += uint32(count)

	pi.MI.Raise(INTR_PI)
}

// Err returns, and clears, the error of the last failed transfer.
func (pi *PI) Err() error {
	err, _ := pi.failed.Take()
	return err
}

// Status returns the PI_STATUS read value.
func (pi *PI) Status() uint32 {
	return pi.status.Value
}
