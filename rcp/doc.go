// Package rcp implements the register windows of the console's reality
// co-processor and its neighbours on the physical bus.
//
// Each peripheral is a memory.BlockDevice built from memory.Registers. The
// MIPS Interface (MI) collects the interrupt lines of the other blocks and
// presents them to the CPU as a single level-triggered line. The Peripheral
// Interface (PI) and the Signal Processor (SP) move data with the router's
// bulk copy. The display processor command block (DPC) hands display lists
// to a callback and does no rendering.
package rcp
