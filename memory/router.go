package memory

import (
	"cmp"
	"iter"
	"slices"

	"github.com/sirupsen/logrus"
)

const (
	KSEG0      = 0x8000_0000 // Cached, unmapped kernel segment.
	KSEG1      = 0xA000_0000 // Uncached, unmapped kernel segment.
	KSEG2      = 0xC000_0000 // Mapped kernel segment.
	KSEG_PHYS  = 0x1FFF_FFFF // Physical bits of an unmapped segment address.
	ADDR_WIDTH = 32
)

// Physical folds the unmapped kernel segments onto the physical range.
// Other addresses would go through the TLB, which is not emulated, so they
// pass through unchanged.
func Physical(address uint32) uint32 {
	if address >= KSEG0 && address < KSEG2 {
		return address & KSEG_PHYS
	}
	return address
}

// Mapping binds a named window of the address space to a device.
type Mapping struct {
	Name   string
	Base   uint32
	Device BlockDevice
}

// End returns the first address past the window.
func (m *Mapping) End() uint64 {
	return uint64(m.Base) + uint64(m.Device.Size())
}

func (m *Mapping) contains(address uint32) bool {
	return address >= m.Base && uint64(address) < m.End()
}

// Router resolves physical addresses to devices. Windows never overlap.
//
// Map and Replace must not run concurrently with accesses; the host pauses
// the run loop before mounting a cartridge.
type Router struct {
	Verbose bool
	Log     logrus.FieldLogger

	mappings []*Mapping
}

// NewRouter creates an empty router.
func NewRouter(log logrus.FieldLogger) *Router {
	if log == nil {
		log = logrus.New()
	}
	return &Router{Log: log}
}

func (r *Router) overlaps(base uint32, size uint32, skip *Mapping) bool {
	end := uint64(base) + uint64(size)
	for _, m := range r.mappings {
		if m == skip {
			continue
		}
		if uint64(base) < m.End() && end > uint64(m.Base) {
			return true
		}
	}
	return false
}

// Map installs a device at base.
func (r *Router) Map(name string, base uint32, device BlockDevice) (err error) {
	size := device.Size()
	if size == 0 {
		err = &ErrAddress{Address: base, Err: ErrWindowEmpty}
		return
	}
	if r.overlaps(base, size, nil) {
		err = &ErrAddress{Address: base, Err: ErrWindowOverlap}
		return
	}

	m := &Mapping{Name: name, Base: base, Device: device}
	index, _ := slices.BinarySearchFunc(r.mappings, base, func(m *Mapping, base uint32) int {
		return cmp.Compare(m.Base, base)
	})
	r.mappings = slices.Insert(r.mappings, index, m)

	if ba, ok := device.(BaseAddresser); ok {
		ba.SetBaseAddress(base)
	}

	if r.Verbose {
		r.Log.Debugf("router: map %v 0x%08x..0x%08x", name, base, m.End()-1)
	}

	return
}

// Replace swaps the device behind a named window, returning the old one.
func (r *Router) Replace(name string, device BlockDevice) (old BlockDevice, err error) {
	m, ok := r.Lookup(name)
	if !ok {
		err = &ErrWindow{Name: name, Err: ErrWindowUnknown}
		return
	}
	if r.overlaps(m.Base, device.Size(), m) {
		err = &ErrAddress{Address: m.Base, Err: ErrWindowOverlap}
		return
	}

	old = m.Device
	m.Device = device

	if ba, ok := device.(BaseAddresser); ok {
		ba.SetBaseAddress(m.Base)
	}

	if r.Verbose {
		r.Log.Debugf("router: replace %v", name)
	}

	return
}

// Lookup finds a window by name.
func (r *Router) Lookup(name string) (m *Mapping, ok bool) {
	for _, m = range r.mappings {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// Resolve returns the mapping holding address and the offset within it.
func (r *Router) Resolve(address uint32) (m *Mapping, offset uint32, err error) {
	phys := Physical(address)
	index, found := slices.BinarySearchFunc(r.mappings, phys, func(m *Mapping, phys uint32) int {
		return cmp.Compare(m.Base, phys)
	})
	if !found {
		index--
	}
	if index < 0 || !r.mappings[index].contains(phys) {
		err = &ErrAddress{Address: address, Err: ErrDeviceNotFound}
		return
	}

	m = r.mappings[index]
	offset = phys - m.Base
	return
}

// GetDevice returns the device mapped at address.
func (r *Router) GetDevice(address uint32) (device BlockDevice, err error) {
	m, _, err := r.Resolve(address)
	if err != nil {
		return
	}
	device = m.Device
	return
}

// GetDeviceOffset returns the offset of address within its device.
func (r *Router) GetDeviceOffset(address uint32) (offset uint32, err error) {
	_, offset, err = r.Resolve(address)
	return
}

// Read fills p from the device at address.
func (r *Router) Read(address uint32, p []byte) (err error) {
	m, offset, err := r.Resolve(address)
	if err != nil {
		return
	}
	if ba, ok := m.Device.(BaseAddresser); ok {
		ba.SetBaseAddress(m.Base)
	}
	return m.Device.Read(offset, p)
}

// Write stores p to the device at address.
func (r *Router) Write(address uint32, p []byte) (err error) {
	m, offset, err := r.Resolve(address)
	if err != nil {
		return
	}
	if ba, ok := m.Device.(BaseAddresser); ok {
		ba.SetBaseAddress(m.Base)
	}
	return m.Device.Write(offset, p)
}

// Windows iterates over the mapped window names and base addresses, in
// address order.
func (r *Router) Windows() iter.Seq2[string, uint32] {
	return func(yield func(string, uint32) bool) {
		for _, m := range r.mappings {
			if !yield(m.Name, m.Base) {
				return
			}
		}
	}
}
