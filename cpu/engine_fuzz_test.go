package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/vr4300/mips"
)

func FuzzEngine(f *testing.F) {
	for _, name := range []string{"addu", "lw", "beq", "div.fmt", "c.ult.fmt", "eret", "ldl", "sc", "teq", "mtc0"} {
		word := enc(name, mips.Fields{Rs: rT1, Rt: rT2, Rd: rT0, Fs: 2, Ft: 4, Fd: 6, Immediate: 8})
		f.Add(word, uint64(0x1234), uint64(testData), false)
		f.Add(word, uint64(0xffff_ffff_8000_0000), uint64(0x7fff_ffff), true)
	}
	f.Add(uint32(0x4c00_0000), uint64(0), uint64(0), false)

	f.Fuzz(func(t *testing.T, word uint32, a, b uint64, mode64 bool) {
		assert := assert.New(t)

		e, _ := newTestEngine(t, word, mips.NOP, mips.NOP)
		e.Cp0.SetStatus(STATUS_KX, mode64)
		for n := range e.GPR {
			e.GPR[n] = a ^ uint64(n)*b
		}
		e.FPR[2] = a
		e.FPR[4] = b

		for range 3 {
			err := e.Step()
			if err != nil {
				assert.ErrorIs(err, ErrUnsupportedOpcode, "0x%08x", word)
				break
			}
			assert.Equal(uint64(0), e.GPR[0])
			assert.Equal(uint64(uint32(e.PC)), e.PC)
		}
	})
}
