// Package cart loads cartridge ROM images.
package cart

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"io"
	"strings"

	"github.com/ezrec/vr4300/memory"
	"github.com/ezrec/vr4300/rcp"
	"github.com/ezrec/vr4300/translate"
)

var f = translate.From

var (
	ErrImageFormat = errors.New(f("unrecognized cartridge image"))
	ErrImageSize   = errors.New(f("cartridge image too small"))
)

const (
	HEADER_SIZE   = 0x40
	BOOT_END      = 0x1000 // End of the IPL3 boot section.
	MAGIC         = 0x8037_1240
	OFFSET_ENTRY  = 0x08
	OFFSET_NAME   = 0x20
	NAME_LENGTH   = 20
	OFFSET_SERIAL = 0x3b
)

// ByteOrder is the layout of an image file.
type ByteOrder int

//go:generate go tool stringer -linecomment -type=ByteOrder

const (
	BigEndian    ByteOrder = iota // z64
	ByteSwapped                   // v64
	LittleEndian                  // n64
)

// Region is the video standard a cartridge was released for.
type Region int

//go:generate go tool stringer -linecomment -type=Region

const (
	RegionUnknown Region = iota // unknown
	RegionNTSC                  // NTSC
	RegionPAL                   // PAL
	RegionMPAL                  // MPAL
)

// Lockout is the security chip paired with a cartridge's boot code.
type Lockout int

//go:generate go tool stringer -linecomment -type=Lockout

const (
	LockoutUnknown Lockout = iota // unknown
	Lockout6101                   // 6101
	Lockout6102                   // 6102
	Lockout6103                   // 6103
	Lockout6105                   // 6105
	Lockout6106                   // 6106
	Lockout7102                   // 7102
)

// Boot code checksums, CRC-32 of the boot section.
var lockoutCRC = map[uint32]Lockout{
	0x6170_a4a1: Lockout6101,
	0x90bb_6cb5: Lockout6102,
	0x0b05_0ee0: Lockout6103,
	0x98bc_2c86: Lockout6105,
	0xacc8_580a: Lockout6106,
	0x009e_9ea3: Lockout7102,
}

var lockoutSeed = map[Lockout]uint8{
	Lockout6101: 0x3f,
	Lockout6102: 0x3f,
	Lockout6103: 0x78,
	Lockout6105: 0x91,
	Lockout6106: 0x85,
	Lockout7102: 0x3f,
}

// Seed returns the checksum seed the security chip hands the boot code.
func (lo Lockout) Seed() (seed uint8, ok bool) {
	seed, ok = lockoutSeed[lo]
	return
}

// Serial is the product code in the header.
type Serial struct {
	Category byte    // Media type, 'N' for cartridges.
	ID       [2]byte // Game identifier.
	Country  byte    // Destination code.
}

func (s Serial) String() string {
	return string([]byte{s.Category, s.ID[0], s.ID[1], s.Country})
}

// Region returns the video standard for the destination code.
func (s Serial) Region() Region {
	switch s.Country {
	case 'A', 'E', 'G', 'J', 'K', 'N':
		return RegionNTSC
	case 'B':
		return RegionMPAL
	case 'C', 'D', 'F', 'H', 'I', 'L', 'P', 'S', 'U', 'W', 'X', 'Y', 'Z':
		return RegionPAL
	}
	return RegionUnknown
}

// Cartridge is a ROM image normalized to big-endian.
type Cartridge struct {
	Name    string
	Serial  Serial
	Region  Region
	Lockout Lockout
	Entry   uint32    // Boot entry point from the header.
	Order   ByteOrder // Layout of the original image.

	rom []byte
}

// Detect returns the layout of an image from its first word.
func Detect(header []byte) (order ByteOrder, err error) {
	if len(header) < 4 {
		err = ErrImageSize
		return
	}
	switch {
	case binary.BigEndian.Uint32(header) == MAGIC:
		order = BigEndian
	case binary.BigEndian.Uint32(header) == swap16(MAGIC):
		order = ByteSwapped
	case binary.LittleEndian.Uint32(header) == MAGIC:
		order = LittleEndian
	default:
		err = ErrImageFormat
	}
	return
}

func swap16(word uint32) uint32 {
	return (word&0xff00_ff00)>>8 | (word&0x00ff_00ff)<<8
}

// Normalize rewrites image in place to big-endian.
func Normalize(image []byte, order ByteOrder) {
	switch order {
	case ByteSwapped:
		for n := 0; n+1 < len(image); n += 2 {
			image[n], image[n+1] = image[n+1], image[n]
		}
	case LittleEndian:
		for n := 0; n+3 < len(image); n += 4 {
			image[n], image[n+1], image[n+2], image[n+3] = image[n+3], image[n+2], image[n+1], image[n]
		}
	}
}

// Load reads a complete image in any supported layout.
func Load(r io.Reader) (c *Cartridge, err error) {
	image, err := io.ReadAll(r)
	if err != nil {
		return
	}
	return New(image)
}

// New parses an image, which it takes ownership of.
func New(image []byte) (c *Cartridge, err error) {
	order, err := Detect(image)
	if err != nil {
		return
	}
	if len(image) < BOOT_END {
		err = ErrImageSize
		return
	}

	Normalize(image, order)

	c = &Cartridge{
		Order: order,
		Entry: binary.BigEndian.Uint32(image[OFFSET_ENTRY:]),
		rom:   image,
	}

	name := image[OFFSET_NAME : OFFSET_NAME+NAME_LENGTH]
	name, _, _ = bytes.Cut(name, []byte{0})
	c.Name = strings.TrimSpace(string(name))

	c.Serial = Serial{
		Category: image[OFFSET_SERIAL],
		ID:       [2]byte{image[OFFSET_SERIAL+1], image[OFFSET_SERIAL+2]},
		Country:  image[OFFSET_SERIAL+3],
	}
	c.Region = c.Serial.Region()
	c.Lockout = lockoutCRC[crc32.ChecksumIEEE(c.BootSection())]

	return
}

// BootSection returns the boot code that follows the header.
func (c *Cartridge) BootSection() []byte {
	return c.rom[HEADER_SIZE:BOOT_END]
}

// Bytes returns the normalized image.
func (c *Cartridge) Bytes() []byte {
	return c.rom
}

// BlockDevice returns the image as read-only memory spanning the cartridge
// domain.
func (c *Cartridge) BlockDevice() memory.BlockDevice {
	return &memory.Buffer{Data: c.rom, Window: rcp.CART_WINDOW, ReadOnly: true}
}
