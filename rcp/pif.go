package rcp

import (
	"github.com/ezrec/vr4300/memory"
)

const (
	PIF_ROM_SIZE = 0x7c0
	PIF_RAM_SIZE = 0x40
	PIF_WINDOW   = PIF_ROM_SIZE + PIF_RAM_SIZE
)

// PIF is the peripheral interface boot memory: a read-only boot ROM
// followed by the RAM shared with the controller microcontroller.
type PIF struct {
	Rom [PIF_ROM_SIZE]byte
	Ram [PIF_RAM_SIZE]byte
}

var _ memory.BlockDevice = (*PIF)(nil)

// LoadRom replaces the boot ROM contents. Shorter images are zero padded.
func (pif *PIF) LoadRom(image []byte) (err error) {
	if len(image) > PIF_ROM_SIZE {
		return ErrRomSize
	}
	clear(pif.Rom[:])
	copy(pif.Rom[:], image)
	return
}

func (pif *PIF) Size() uint32 {
	return PIF_WINDOW
}

// span splits an access between the ROM and the RAM.
func (pif *PIF) span(offset uint32, p []byte, rom func(at int, p []byte), ram func(at int, p []byte)) {
	for len(p) > 0 && offset < PIF_WINDOW {
		if offset < PIF_ROM_SIZE {
			n := min(len(p), PIF_ROM_SIZE-int(offset))
			rom(int(offset), p[:n])
			p, offset = p[n:], offset+uint32(n)
			continue
		}
		at := int(offset) - PIF_ROM_SIZE
		n := min(len(p), PIF_RAM_SIZE-at)
		ram(at, p[:n])
		p, offset = p[n:], offset+uint32(n)
	}
}

func (pif *PIF) Read(offset uint32, p []byte) error {
	clear(p)
	pif.span(offset, p,
		func(at int, p []byte) { copy(p, pif.Rom[at:]) },
		func(at int, p []byte) { copy(p, pif.Ram[at:]) })
	return nil
}

func (pif *PIF) Write(offset uint32, p []byte) error {
	pif.span(offset, p,
		func(int, []byte) {},
		func(at int, p []byte) { copy(pif.Ram[at:], p) })
	return nil
}
