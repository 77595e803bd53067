// Package memory implements the unified physical address space of the
// console.
//
// A Router resolves 32-bit physical addresses to BlockDevice windows (RDRAM,
// peripheral register blocks, boot memory, the cartridge ROM). The
// DataMemory accessor moves 1 to 8 byte scalars through the router for the
// CPU, and View exposes the same space as a seekable byte stream for loaders
// and debuggers.
package memory
