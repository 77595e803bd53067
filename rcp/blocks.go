package rcp

import (
	"github.com/sirupsen/logrus"

	"github.com/ezrec/vr4300/memory"
)

// NewRI creates the RDRAM interface register block.
func NewRI(log logrus.FieldLogger) *memory.Registers {
	return registers("ri", defaultLog(log, "ri"),
		"RI_MODE", "RI_CONFIG", "RI_CURRENT_LOAD", "RI_SELECT",
		"RI_REFRESH", "RI_LATENCY", "RI_RERROR", "RI_WERROR")
}

// NewRdramRegisters creates the RDRAM module configuration registers.
func NewRdramRegisters(log logrus.FieldLogger) *memory.Registers {
	rs := registers("rdram_regs", defaultLog(log, "rdram"),
		"RDRAM_CONFIG", "RDRAM_DEVICE_ID", "RDRAM_DELAY", "RDRAM_MODE",
		"RDRAM_REF_INTERVAL", "RDRAM_REF_ROW", "RDRAM_RAS_INTERVAL",
		"RDRAM_MIN_INTERVAL", "RDRAM_ADDR_SELECT", "RDRAM_DEVICE_MANUF")
	rs.Window = RDRAM_REGS_WINDOW
	return rs
}

// VI_CURRENT is the video interface register whose write acknowledges the
// vertical interrupt.
const VI_CURRENT = 0x10

// NewVI creates the video interface register block.
func NewVI(mi *MI, log logrus.FieldLogger) *memory.Registers {
	rs := registers("vi", defaultLog(log, "vi"),
		"VI_STATUS", "VI_ORIGIN", "VI_WIDTH", "VI_V_INTR", "VI_CURRENT",
		"VI_BURST", "VI_V_SYNC", "VI_H_SYNC", "VI_LEAP", "VI_H_START",
		"VI_V_START", "VI_V_BURST", "VI_X_SCALE", "VI_Y_SCALE")
	rs.Register(VI_CURRENT).OnWrite = func(uint32) { mi.Clear(INTR_VI) }
	return rs
}

// AI_STATUS is the audio interface register whose write acknowledges the
// audio interrupt.
const AI_STATUS = 0x0c

// NewAI creates the audio interface register block.
func NewAI(mi *MI, log logrus.FieldLogger) *memory.Registers {
	rs := registers("ai", defaultLog(log, "ai"),
		"AI_DRAM_ADDR", "AI_LEN", "AI_CONTROL", "AI_STATUS",
		"AI_DACRATE", "AI_BITRATE")
	rs.Register(AI_STATUS).Dual = true
	rs.Register(AI_STATUS).OnWrite = func(uint32) { mi.Clear(INTR_AI) }
	return rs
}

// SI_STATUS is the serial interface register whose write acknowledges the
// serial interrupt.
const SI_STATUS = 0x18

// NewSI creates the serial interface register block.
func NewSI(mi *MI, log logrus.FieldLogger) *memory.Registers {
	rs := registers("si", defaultLog(log, "si"),
		"SI_DRAM_ADDR", "SI_PIF_ADDR_RD64B", "", "",
		"SI_PIF_ADDR_WR64B", "", "SI_STATUS")
	rs.Register(SI_STATUS).Dual = true
	rs.Register(SI_STATUS).OnWrite = func(uint32) { mi.Clear(INTR_SI) }
	return rs
}
