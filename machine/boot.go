package machine

import (
	"github.com/ezrec/vr4300/cpu"
	"github.com/ezrec/vr4300/rcp"
)

const (
	PC_COLD_BOOT = cpu.VECTOR_RESET
	PC_HLE_BOOT  = (KSEG1 | rcp.SP_MEM_BASE) + 0x40

	BOOT_STATUS    = cpu.STATUS_CU1 | cpu.STATUS_CU0 | cpu.STATUS_FR
	BOOT_CONFIG    = 0x0006_e463
	BOOT_COUNT     = 0x5000
	BOOT_CAUSE     = 0x5c
	BOOT_CONTEXT   = 0x5c
	BOOT_UNDEFINED = 0xffff_ffff_ffff_ffff // EPC, ErrorEPC and BadVAddr.
	BOOT_SP_STATUS = rcp.SP_STATUS_HALT
)

// Block is a run of bytes to place in the address space.
type Block struct {
	Address uint64
	Data    []byte
}

// BootState is the processor and machine state left behind by boot code.
type BootState struct {
	PC        uint64
	GPR       map[int]uint64 // Unlisted registers are zero.
	Cp0       map[int]uint64 // Unlisted registers keep their reset value.
	Memory    []Block
	MIVersion uint32 // Zero keeps the current value.
	SPStatus  uint32
}

// DefaultBoot returns the control register state that the boot ROM leaves.
func DefaultBoot() BootState {
	return BootState{
		PC: PC_COLD_BOOT,
		Cp0: map[int]uint64{
			cpu.CP0_RANDOM:   cpu.RANDOM_RESET,
			cpu.CP0_COUNT:    BOOT_COUNT,
			cpu.CP0_STATUS:   BOOT_STATUS,
			cpu.CP0_CAUSE:    BOOT_CAUSE,
			cpu.CP0_CONTEXT:  BOOT_CONTEXT,
			cpu.CP0_CONFIG:   BOOT_CONFIG,
			cpu.CP0_EPC:      BOOT_UNDEFINED,
			cpu.CP0_ERROREPC: BOOT_UNDEFINED,
			cpu.CP0_BADVADDR: BOOT_UNDEFINED,
		},
		MIVersion: rcp.MI_VERSION_VALUE,
		SPStatus:  BOOT_SP_STATUS,
	}
}

// ApplyBoot resets the processor and installs a boot state.
func (m *Machine) ApplyBoot(state BootState) (err error) {
	m.Reset()

	for _, block := range state.Memory {
		err = m.LoadBinary(block.Address, block.Data)
		if err != nil {
			return
		}
	}

	for index, value := range state.Cp0 {
		m.Engine.Cp0.Regs[index&0x1f] = value
	}
	for index, value := range state.GPR {
		m.Engine.GPR[index&0x1f] = value
	}
	m.Engine.GPR[0] = 0

	if state.MIVersion != 0 {
		m.MI.SetVersion(state.MIVersion)
	}
	m.SP.SetStatus(state.SPStatus)

	m.Engine.SetPC(state.PC)

	if m.Verbose {
		m.Log.WithField("component", "machine").Infof("boot at 0x%08x", uint32(state.PC))
	}
	return
}

// ColdBoot starts from the reset vector, running the PIF boot ROM.
func (m *Machine) ColdBoot() error {
	return m.ApplyBoot(DefaultBoot())
}

// HLEBoot skips the PIF boot ROM: the cartridge boot code is copied to the
// signal processor memory and run from there.
func (m *Machine) HLEBoot() (err error) {
	if m.Cartridge == nil {
		err = ErrNoCartridge
		return
	}

	state := DefaultBoot()
	state.PC = PC_HLE_BOOT
	state.Memory = []Block{{Address: PC_HLE_BOOT, Data: m.Cartridge.BootSection()}}

	return m.ApplyBoot(state)
}
