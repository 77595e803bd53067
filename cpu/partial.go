package cpu

// Merge tables for the unaligned load and store instructions, indexed by
// the address within the word or doubleword. Memory is big-endian.
var (
	LWL_MASK  = [4]uint32{0, 0x0000_00ff, 0x0000_ffff, 0x00ff_ffff}
	LWL_SHIFT = [4]uint{0, 8, 16, 24}
	LWR_MASK  = [4]uint32{0xffff_ff00, 0xffff_0000, 0xff00_0000, 0}
	LWR_SHIFT = [4]uint{24, 16, 8, 0}

	SWL_MASK  = [4]uint32{0, 0xff00_0000, 0xffff_0000, 0xffff_ff00}
	SWL_SHIFT = [4]uint{0, 8, 16, 24}
	SWR_MASK  = [4]uint32{0x00ff_ffff, 0x0000_ffff, 0x0000_00ff, 0}
	SWR_SHIFT = [4]uint{24, 16, 8, 0}

	LDL_MASK = [8]uint64{
		0, 0x0000_0000_0000_00ff, 0x0000_0000_0000_ffff, 0x0000_0000_00ff_ffff,
		0x0000_0000_ffff_ffff, 0x0000_00ff_ffff_ffff, 0x0000_ffff_ffff_ffff, 0x00ff_ffff_ffff_ffff,
	}
	LDL_SHIFT = [8]uint{0, 8, 16, 24, 32, 40, 48, 56}
	LDR_MASK  = [8]uint64{
		0xffff_ffff_ffff_ff00, 0xffff_ffff_ffff_0000, 0xffff_ffff_ff00_0000, 0xffff_ffff_0000_0000,
		0xffff_ff00_0000_0000, 0xffff_0000_0000_0000, 0xff00_0000_0000_0000, 0,
	}
	LDR_SHIFT = [8]uint{56, 48, 40, 32, 24, 16, 8, 0}

	SDL_MASK = [8]uint64{
		0, 0xff00_0000_0000_0000, 0xffff_0000_0000_0000, 0xffff_ff00_0000_0000,
		0xffff_ffff_0000_0000, 0xffff_ffff_ff00_0000, 0xffff_ffff_ffff_0000, 0xffff_ffff_ffff_ff00,
	}
	SDL_SHIFT = [8]uint{0, 8, 16, 24, 32, 40, 48, 56}
	SDR_MASK  = [8]uint64{
		0x00ff_ffff_ffff_ffff, 0x0000_ffff_ffff_ffff, 0x0000_00ff_ffff_ffff, 0x0000_0000_ffff_ffff,
		0x0000_0000_00ff_ffff, 0x0000_0000_0000_ffff, 0x0000_0000_0000_00ff, 0,
	}
	SDR_SHIFT = [8]uint{56, 48, 40, 32, 24, 16, 8, 0}
)

// loadLeft32 merges the high end of an unaligned word into rt.
func loadLeft32(rt uint32, mem uint32, n uint64) uint32 {
	return rt&LWL_MASK[n&3] | mem<<LWL_SHIFT[n&3]
}

func loadRight32(rt uint32, mem uint32, n uint64) uint32 {
	return rt&LWR_MASK[n&3] | mem>>LWR_SHIFT[n&3]
}

func storeLeft32(mem uint32, rt uint32, n uint64) uint32 {
	return mem&SWL_MASK[n&3] | rt>>SWL_SHIFT[n&3]
}

func storeRight32(mem uint32, rt uint32, n uint64) uint32 {
	return mem&SWR_MASK[n&3] | rt<<SWR_SHIFT[n&3]
}

func loadLeft64(rt uint64, mem uint64, n uint64) uint64 {
	return rt&LDL_MASK[n&7] | mem<<LDL_SHIFT[n&7]
}

func loadRight64(rt uint64, mem uint64, n uint64) uint64 {
	return rt&LDR_MASK[n&7] | mem>>LDR_SHIFT[n&7]
}

func storeLeft64(mem uint64, rt uint64, n uint64) uint64 {
	return mem&SDL_MASK[n&7] | rt>>SDL_SHIFT[n&7]
}

func storeRight64(mem uint64, rt uint64, n uint64) uint64 {
	return mem&SDR_MASK[n&7] | rt<<SDR_SHIFT[n&7]
}
