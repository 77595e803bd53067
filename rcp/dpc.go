package rcp

import (
	"github.com/sirupsen/logrus"

	"github.com/ezrec/vr4300/memory"
)

// DPC register offsets.
const (
	DPC_START    = 0x00
	DPC_END      = 0x04
	DPC_CURRENT  = 0x08
	DPC_STATUS   = 0x0c
	DPC_CLOCK    = 0x10
	DPC_BUFBUSY  = 0x14
	DPC_PIPEBUSY = 0x18
	DPC_TMEM     = 0x1c

	DPC_ADDRESS_MASK = 0x00ff_ffff
)

// DPC_STATUS read bits.
const (
	DPC_STATUS_XBUS_DMEM_DMA = 1 << 0
	DPC_STATUS_FREEZE        = 1 << 1
	DPC_STATUS_FLUSH         = 1 << 2
	DPC_STATUS_CBUF_READY    = 1 << 7
	DPC_STATUS_END_VALID     = 1 << 9
	DPC_STATUS_START_VALID   = 1 << 10
)

// DPC_STATUS write commands.
const (
	DPC_CLEAR_XBUS_DMEM_DMA = 1 << 0 // Followed by set, then the freeze and flush pairs.
	DPC_CLEAR_TMEM_CTR      = 1 << 6
	DPC_CLEAR_PIPE_CTR      = 1 << 7
	DPC_CLEAR_CMD_CTR       = 1 << 8
	DPC_CLEAR_CLOCK_CTR     = 1 << 9
)

// DisplayList is a span of display processor commands, in RDRAM or in the
// signal processor's data memory.
type DisplayList struct {
	Start uint32
	End   uint32
	XBus  bool // Commands are in SP DMEM.
}

// DPC is the display processor command interface. Writing DPC_END
// publishes the list between DPC_START and DPC_END to OnDisplayList and
// completes it at once.
type DPC struct {
	memory.Registers
	OnDisplayList func(dl DisplayList)

	start   *memory.Register
	end     *memory.Register
	current *memory.Register
	status  *memory.Register
	clock   *memory.Register
	bufBusy *memory.Register
	pipe    *memory.Register
	tmem    *memory.Register
}

// NewDPC creates an idle DPC.
func NewDPC(log logrus.FieldLogger) (dpc *DPC) {
	dpc = &DPC{}
	dpc.start = &memory.Register{Name: "DPC_START"}
	dpc.end = &memory.Register{Name: "DPC_END", OnWrite: dpc.writeEnd}
	dpc.current = &memory.Register{Name: "DPC_CURRENT", ReadOnly: true}
	dpc.status = &memory.Register{Name: "DPC_STATUS", Dual: true, Value: DPC_STATUS_CBUF_READY, OnWrite: dpc.writeStatus}
	dpc.clock = &memory.Register{Name: "DPC_CLOCK", ReadOnly: true}
	dpc.bufBusy = &memory.Register{Name: "DPC_BUFBUSY", ReadOnly: true}
	dpc.pipe = &memory.Register{Name: "DPC_PIPEBUSY", ReadOnly: true}
	dpc.tmem = &memory.Register{Name: "DPC_TMEM", ReadOnly: true}

	dpc.Registers = memory.Registers{
		Log:    defaultLog(log, "dpc"),
		Name:   "dpc",
		Window: RCP_WINDOW,
		Regs: []*memory.Register{
			dpc.start, dpc.end, dpc.current, dpc.status,
			dpc.clock, dpc.bufBusy, dpc.pipe, dpc.tmem,
		},
	}
	return
}

func (dpc *DPC) writeEnd(uint32) {
	dpc.start.Value &= DPC_ADDRESS_MASK
	dpc.end.Value &= DPC_ADDRESS_MASK

	dl := DisplayList{
		Start: dpc.start.Value,
		End:   dpc.end.Value,
		XBus:  dpc.status.Value&DPC_STATUS_XBUS_DMEM_DMA != 0,
	}

	if dpc.Verbose {
		dpc.Log.Debugf("display list 0x%06x..0x%06x", dl.Start, dl.End)
	}

	if dpc.OnDisplayList != nil {
		dpc.OnDisplayList(dl)
	}

	dpc.current.Value = dpc.end.Value
}

func (dpc *DPC) writeStatus(command uint32) {
	dpc.status.Value = pairs(dpc.status.Value, command, 0, 3)

	if command&DPC_CLEAR_TMEM_CTR != 0 {
		dpc.tmem.Value = 0
	}
	if command&DPC_CLEAR_PIPE_CTR != 0 {
		dpc.pipe.Value = 0
	}
	if command&DPC_CLEAR_CMD_CTR != 0 {
		dpc.bufBusy.Value = 0
	}
	if command&DPC_CLEAR_CLOCK_CTR != 0 {
		dpc.clock.Value = 0
	}
}

// Current returns the address of the last completed command.
func (dpc *DPC) Current() uint32 {
	return dpc.current.Value
}

// Status returns the DPC_STATUS read value.
func (dpc *DPC) Status() uint32 {
	return dpc.status.Value
}
