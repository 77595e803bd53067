package cpu

import (
	"strconv"
)

// System control register indexes.
const (
	CP0_INDEX     = 0
	CP0_RANDOM    = 1
	CP0_ENTRYLO0  = 2
	CP0_ENTRYLO1  = 3
	CP0_CONTEXT   = 4
	CP0_PAGEMASK  = 5
	CP0_WIRED     = 6
	CP0_BADVADDR  = 8
	CP0_COUNT     = 9
	CP0_ENTRYHI   = 10
	CP0_COMPARE   = 11
	CP0_STATUS    = 12
	CP0_CAUSE     = 13
	CP0_EPC       = 14
	CP0_PRID      = 15
	CP0_CONFIG    = 16
	CP0_LLADDR    = 17
	CP0_WATCHLO   = 18
	CP0_WATCHHI   = 19
	CP0_XCONTEXT  = 20
	CP0_PERR      = 26
	CP0_CACHEERR  = 27
	CP0_TAGLO     = 28
	CP0_TAGHI     = 29
	CP0_ERROREPC  = 30
	CP0_REGISTERS = 32
)

// Status register bits.
const (
	STATUS_IE       = 1 << 0
	STATUS_EXL      = 1 << 1
	STATUS_ERL      = 1 << 2
	STATUS_KSU_MASK = 3 << 3
	STATUS_UX       = 1 << 5
	STATUS_SX       = 1 << 6
	STATUS_KX       = 1 << 7
	STATUS_IM_MASK  = 0xff << 8
	STATUS_SR       = 1 << 20
	STATUS_BEV      = 1 << 22
	STATUS_FR       = 1 << 26
	STATUS_CU0      = 1 << 28
	STATUS_CU1      = 1 << 29

	KSU_KERNEL     = 0 << 3
	KSU_SUPERVISOR = 1 << 3
	KSU_USER       = 2 << 3
)

// Cause register bits.
const (
	CAUSE_EXC_SHIFT = 2
	CAUSE_EXC_MASK  = 0x1f << CAUSE_EXC_SHIFT
	CAUSE_IP_MASK   = 0xff << 8
	CAUSE_IP_SW0    = 1 << 8  // Software interrupt 0.
	CAUSE_IP_SW1    = 1 << 9  // Software interrupt 1.
	CAUSE_IP_RCP    = 1 << 10 // External line from the RCP.
	CAUSE_IP_CART   = 1 << 11 // Cartridge interrupt.
	CAUSE_IP_RESET  = 1 << 12 // Reset button.
	CAUSE_IP_TIMER  = 1 << 15 // Count reached Compare.
	CAUSE_CE_SHIFT  = 28
	CAUSE_CE_MASK   = 3 << CAUSE_CE_SHIFT
	CAUSE_BD        = 1 << 31

	CAUSE_WRITABLE = CAUSE_IP_SW0 | CAUSE_IP_SW1
)

// Exception vectors.
const (
	VECTOR_RESET       = 0xBFC0_0000 // NMI, soft and cold reset.
	VECTOR_BASE_BEV    = 0xBFC0_0200 // Base while Status.BEV is set.
	VECTOR_BASE        = 0x8000_0000 // Normal base.
	VECTOR_BASE_CACHE  = 0xA000_0000 // Uncached base for cache errors.
	VECTOR_TLB_REFILL  = 0x000
	VECTOR_XTLB_REFILL = 0x080
	VECTOR_CACHE_ERROR = 0x100
	VECTOR_GENERAL     = 0x180
)

// Reset values.
const (
	PRID_VR4300  = 0x0000_0b22
	RANDOM_RESET = 0x1f
)

// ExceptionCode is the Cause.ExcCode value of an exception.
type ExceptionCode uint8

const (
	ExcInterrupt        ExceptionCode = 0
	ExcTLBModified      ExceptionCode = 1
	ExcTLBLoad          ExceptionCode = 2
	ExcTLBStore         ExceptionCode = 3
	ExcAddressLoad      ExceptionCode = 4
	ExcAddressStore     ExceptionCode = 5
	ExcInstructionBus   ExceptionCode = 6
	ExcDataBus          ExceptionCode = 7
	ExcSyscall          ExceptionCode = 8
	ExcBreakpoint       ExceptionCode = 9
	ExcReserved         ExceptionCode = 10
	ExcUnusable         ExceptionCode = 11
	ExcOverflow         ExceptionCode = 12
	ExcTrap             ExceptionCode = 13
	ExcFloatingPoint    ExceptionCode = 15
	ExcWatch            ExceptionCode = 23
	EXCEPTION_CODE_MASK               = 0x1f
)

var exceptionNames = map[ExceptionCode]string{
	ExcInterrupt:      "Int",
	ExcTLBModified:    "Mod",
	ExcTLBLoad:        "TLBL",
	ExcTLBStore:       "TLBS",
	ExcAddressLoad:    "AdEL",
	ExcAddressStore:   "AdES",
	ExcInstructionBus: "IBE",
	ExcDataBus:        "DBE",
	ExcSyscall:        "Sys",
	ExcBreakpoint:     "Bp",
	ExcReserved:       "RI",
	ExcUnusable:       "CpU",
	ExcOverflow:       "Ov",
	ExcTrap:           "Tr",
	ExcFloatingPoint:  "FPE",
	ExcWatch:          "WATCH",
}

func (ec ExceptionCode) String() string {
	name, ok := exceptionNames[ec]
	if !ok {
		return "ExceptionCode(" + strconv.Itoa(int(ec)) + ")"
	}
	return name
}

// Kind is the class of a dispatched exception, in priority order.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind

const (
	KindNone       Kind = iota // none
	KindNMI                    // nmi
	KindTLBRefill              // tlb
	KindXTLBRefill             // xtlb
	KindCacheError             // cache
	KindException              // exception
	KindInterrupt              // interrupt
)

// FpuException is a set of floating point exception conditions, laid out
// as the FCR31 cause field.
type FpuException uint32

const (
	FpeInexact FpuException = 1 << iota
	FpeUnderflow
	FpeOverflow
	FpeDivideByZero
	FpeInvalid
	FpeUnimplemented
)
