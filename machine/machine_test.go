package machine

import (
	"bytes"
	"encoding/binary"
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/vr4300/cart"
	"github.com/ezrec/vr4300/config"
	"github.com/ezrec/vr4300/cpu"
	"github.com/ezrec/vr4300/debug"
	"github.com/ezrec/vr4300/memory"
	"github.com/ezrec/vr4300/mips"
	"github.com/ezrec/vr4300/rcp"
)

const (
	testBase = 0x8000_1000

	rT0 = 8
	rT1 = 9
)

func enc(name string, fl mips.Fields) uint32 {
	return mips.MustEncode(name, fl)
}

func words(list ...uint32) []byte {
	data := make([]byte, 4*len(list))
	for n, word := range list {
		binary.BigEndian.PutUint32(data[n*4:], word)
	}
	return data
}

// park spins in place at address.
func park(address uint32) []uint32 {
	return []uint32{
		enc("j", mips.Fields{Target: address >> 2 & 0x03ff_ffff}),
		mips.NOP,
	}
}

func newTestMachine(t *testing.T, cfg *config.Config, program ...uint32) (m *Machine) {
	m, err := New(cfg, nil)
	require.NoError(t, err)

	require.NoError(t, m.LoadBinary(testBase, words(program...)))
	require.NoError(t, m.ApplyBoot(BootState{PC: testBase}))
	return
}

func testCartridge(t *testing.T) *cart.Cartridge {
	image := make([]byte, 0x2000)
	binary.BigEndian.PutUint32(image, cart.MAGIC)
	binary.BigEndian.PutUint32(image[cart.OFFSET_ENTRY:], testBase)
	copy(image[cart.OFFSET_NAME:], "MACHINE TEST")
	copy(image[cart.OFFSET_SERIAL:], "NMTE")
	for n := cart.HEADER_SIZE; n < len(image); n++ {
		image[n] = byte(n * 3)
	}

	c, err := cart.New(image)
	require.NoError(t, err)
	return c
}

// run ticks until the machine parks or the limit is reached.
func run(t *testing.T, m *Machine, limit int) (ticks int) {
	for ticks < limit {
		done, err := m.Tick()
		require.NoError(t, err)
		ticks++
		if done {
			break
		}
	}
	return
}

func TestMachine_New(t *testing.T) {
	assert := assert.New(t)

	m, err := New(nil, nil)
	require.NoError(t, err)

	assert.False(m.Verbose)
	assert.NotNil(m.Engine.Monitor)
	assert.Equal(m.MI, m.Engine.Cp0.Line)

	windows := maps.Collect(m.Router.Windows())
	assert.Len(windows, 18)
	assert.Equal(uint32(rcp.PI_BASE), windows["pi"])
	assert.Equal(uint32(rcp.PIF_BASE), windows["pif"])

	defines := maps.Collect(m.Defines())
	assert.Equal("0xa0000000", defines["KSEG1"])
	assert.Equal("0x04600000", defines["WINDOW_PI"])
	assert.Equal("0xa4300008", defines["MI_INTR"])
	assert.Equal("0xa4600010", defines["PI_STATUS"])
	assert.NotContains(defines, "CART_ENTRY")

	_, err = New(&config.Config{ByteOrder: "sideways"}, nil)
	assert.ErrorIs(err, config.ErrInvalid)
}

func TestMachine_Options(t *testing.T) {
	assert := assert.New(t)

	cfg := config.Default()
	cfg.DirectVectors = true
	cfg.Interpreter.ImmediateCompare = cpu.ZeroExtend.String()
	cfg.ByteOrder = config.BYTE_ORDER_LITTLE

	m, err := New(cfg, nil)
	require.NoError(t, err)

	assert.True(m.Engine.Cp0.Direct)
	assert.Equal(cpu.ZeroExtend, m.Engine.Options.ImmediateCompare)
	assert.Equal(binary.LittleEndian, m.Data.Order)
}

func TestMachine_ColdBoot(t *testing.T) {
	assert := assert.New(t)

	m, err := New(nil, nil)
	require.NoError(t, err)

	m.MI.SetVersion(0)
	m.SP.SetStatus(0)
	require.NoError(t, m.ColdBoot())

	cp0 := &m.Engine.Cp0.Regs
	assert.Equal(uint64(PC_COLD_BOOT), m.PC())
	assert.Equal(uint64(0x3400_0000), cp0[cpu.CP0_STATUS])
	assert.Equal(uint64(0x1f), cp0[cpu.CP0_RANDOM])
	assert.Equal(uint64(0x5000), cp0[cpu.CP0_COUNT])
	assert.Equal(uint64(0x5c), cp0[cpu.CP0_CAUSE])
	assert.Equal(uint64(0x5c), cp0[cpu.CP0_CONTEXT])
	assert.Equal(uint64(0x0006_e463), cp0[cpu.CP0_CONFIG])
	assert.Equal(uint64(BOOT_UNDEFINED), cp0[cpu.CP0_EPC])
	assert.Equal(uint64(BOOT_UNDEFINED), cp0[cpu.CP0_ERROREPC])
	assert.Equal(uint64(BOOT_UNDEFINED), cp0[cpu.CP0_BADVADDR])
	assert.Equal(uint64(cpu.PRID_VR4300), cp0[cpu.CP0_PRID])

	assert.Equal(uint32(rcp.MI_VERSION_VALUE), m.MI.Registers.Register(rcp.MI_VERSION).Value)
	assert.True(m.SP.Halted())

	// The boot ROM is fetched through the PIF window.
	require.NoError(t, m.PIF.LoadRom(words(enc("ori", mips.Fields{Rt: rT0, Immediate: 0x42}))))
	inst, err := m.Instruction()
	require.NoError(t, err)
	assert.Equal("ori", inst.Mnemonic())

	_, err = m.Tick()
	require.NoError(t, err)
	assert.Equal(uint64(0x42), m.Engine.GPR[rT0])
}

func TestMachine_HLEBoot(t *testing.T) {
	assert := assert.New(t)

	m, err := New(nil, nil)
	require.NoError(t, err)

	assert.ErrorIs(m.HLEBoot(), ErrNoCartridge)

	c := testCartridge(t)
	require.NoError(t, m.Mount(c))
	assert.Equal(c, m.Cartridge)

	require.NoError(t, m.HLEBoot())
	assert.Equal(uint64(PC_HLE_BOOT), m.PC())
	assert.Equal(c.BootSection(), m.SP.Mem.Data[0x40:0x1000])

	defines := maps.Collect(m.Defines())
	assert.Equal("0x80001000", defines["CART_ENTRY"])

	// The cartridge is visible through the uncached window.
	p := make([]byte, 4)
	require.NoError(t, m.Router.Read(KSEG1|rcp.CART_BASE, p))
	assert.Equal([]byte{0x80, 0x37, 0x12, 0x40}, p)
}

func TestMachine_ApplyBoot(t *testing.T) {
	assert := assert.New(t)

	m, err := New(nil, nil)
	require.NoError(t, err)

	m.Engine.GPR[rT1] = 99
	require.NoError(t, m.ApplyBoot(BootState{
		PC:        0xffff_ffff_8000_0400,
		GPR:       map[int]uint64{0: 5, 29: 0xffff_ffff_a400_1ff0},
		Cp0:       map[int]uint64{cpu.CP0_COMPARE: 0x100},
		Memory:    []Block{{Address: 0xa000_0400, Data: []byte{1, 2, 3, 4}}},
		MIVersion: 0x0101_0101,
		SPStatus:  0,
	}))

	assert.Equal(uint64(0x8000_0400), m.PC())
	assert.Equal(uint64(0), m.Engine.GPR[0])
	assert.Equal(uint64(0), m.Engine.GPR[rT1])
	assert.Equal(uint64(0xffff_ffff_a400_1ff0), m.Engine.GPR[29])
	assert.Equal(uint64(0x100), m.Engine.Cp0.Regs[cpu.CP0_COMPARE])
	assert.Equal([]byte{1, 2, 3, 4}, m.Ram.Bytes()[0x400:0x404])
	assert.Equal(uint32(0x0101_0101), m.MI.Registers.Register(rcp.MI_VERSION).Value)
	assert.False(m.SP.Halted())
}

func TestMachine_PIDMA(t *testing.T) {
	assert := assert.New(t)

	program := []uint32{
		enc("lui", mips.Fields{Rt: rT1, Immediate: 0xa460}),
		enc("ori", mips.Fields{Rt: rT0, Immediate: 0x2000}),
		enc("sw", mips.Fields{Rt: rT0, Rs: rT1, Immediate: rcp.PI_DRAM_ADDR}),
		enc("lui", mips.Fields{Rt: rT0, Immediate: 0x1000}),
		enc("sw", mips.Fields{Rt: rT0, Rs: rT1, Immediate: rcp.PI_CART_ADDR}),
		enc("ori", mips.Fields{Rt: rT0, Immediate: 15}),
		enc("sw", mips.Fields{Rt: rT0, Rs: rT1, Immediate: rcp.PI_WR_LEN}),
	}
	program = append(program, park(testBase+uint32(4*len(program)))...)

	m := newTestMachine(t, nil, program...)
	c := testCartridge(t)
	require.NoError(t, m.Mount(c))

	ticks := run(t, m, 100)
	assert.Equal(len(program)-1, ticks)

	assert.Equal(c.Bytes()[:16], m.Ram.Bytes()[0x2000:0x2010])
	assert.NotZero(m.MI.Interrupts() & (1 << rcp.INTR_PI))
	assert.Equal(uint32(0x2010), m.PI.Registers.Register(rcp.PI_DRAM_ADDR).Value)

	// Masked, the PI interrupt does not reach the processor.
	assert.False(m.MI.Pending())
}

func TestMachine_Breakpoint(t *testing.T) {
	assert := assert.New(t)

	cfg := config.Default()
	cfg.Breakpoints = []config.Breakpoint{
		{Address: testBase + 4, Condition: "t0 == 1"},
	}

	program := []uint32{
		enc("addiu", mips.Fields{Rt: rT0, Rs: rT0, Immediate: 1}),
		enc("addiu", mips.Fields{Rt: rT0, Rs: rT0, Immediate: 1}),
	}
	program = append(program, park(testBase+8)...)

	m := newTestMachine(t, cfg, program...)
	assert.Len(m.Debugger.Breakpoints(), 1)

	for !m.Debugger.BreakActive() {
		_, err := m.Tick()
		require.NoError(t, err)
	}
	assert.Equal(uint64(testBase+8), m.PC())
	assert.Equal(uint64(2), m.Engine.GPR[rT0])

	cfg.Breakpoints = []config.Breakpoint{{Address: testBase, Condition: "t0 =="}}
	_, err := New(cfg, nil)
	var ec *debug.ErrCondition
	assert.ErrorAs(err, &ec)
}

func TestMachine_TickError(t *testing.T) {
	assert := assert.New(t)

	m := newTestMachine(t, nil, park(testBase)...)
	require.NoError(t, m.AddBreakpoint(config.Breakpoint{Address: testBase, Condition: "UNDEFINED > 0"}))

	_, err := m.Tick()
	var er *ErrRuntime
	require.ErrorAs(t, err, &er)
	assert.Equal(uint64(testBase), er.PC)
	assert.Contains(err.Error(), "pc 0x80001000")

	var ec *debug.ErrCondition
	assert.ErrorAs(err, &ec)
}

func TestMachine_Symbols(t *testing.T) {
	assert := assert.New(t)

	m := newTestMachine(t, nil,
		enc("lui", mips.Fields{Rt: rT1, Immediate: 0xa430}),
		enc("ori", mips.Fields{Rt: rT1, Rs: rT1, Immediate: 0x0008}),
		mips.NOP,
		mips.NOP,
	)
	require.NoError(t, m.AddBreakpoint(config.Breakpoint{Address: testBase + 8, Condition: "t1 & 0xffffffff == MI_INTR"}))

	ticks := 0
	for !m.Debugger.BreakActive() && ticks < 4 {
		_, err := m.Tick()
		require.NoError(t, err)
		ticks++
	}
	assert.Equal(3, ticks)
}

func TestMachine_DisplayList(t *testing.T) {
	assert := assert.New(t)

	m, err := New(nil, nil)
	require.NoError(t, err)

	require.NoError(t, m.LoadBinary(KSEG1|rcp.DPC_BASE+rcp.DPC_START, words(0x0010_0000)))
	require.NoError(t, m.LoadBinary(KSEG1|rcp.DPC_BASE+rcp.DPC_END, words(0x0010_0100)))

	assert.Equal(uint32(0x0010_0100), m.DPC.Current())
	assert.NotZero(m.MI.Interrupts() & (1 << rcp.INTR_DP))
}

func TestMachine_Finally(t *testing.T) {
	assert := assert.New(t)

	var out bytes.Buffer

	m := newTestMachine(t, nil, park(testBase)...)
	m.Debugger.Trace = &out

	ticks := run(t, m, 10)
	assert.Equal(1, ticks)
	assert.NoError(m.Finally())
	assert.Equal("80001000 |PROG| j 0x80001000\n", out.String())
}

func TestMachine_View(t *testing.T) {
	assert := assert.New(t)

	m, err := New(nil, nil)
	require.NoError(t, err)

	_, err = m.View.WriteAt([]byte{0xde, 0xad}, 0x100)
	require.NoError(t, err)

	p := make([]byte, 2)
	require.NoError(t, m.Router.Read(0x100, p))
	assert.Equal([]byte{0xde, 0xad}, p)
	assert.Equal(memory.RDRAM_WINDOW, int(m.Ram.Size()))
}
