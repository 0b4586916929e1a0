package cartridge

import "fmt"

// CompatibilityFlag reports the Game Boy Color compatibility byte at
// $0143. The core is DMG-only and never changes behavior based on it;
// it is exposed purely for introspection.
type CompatibilityFlag uint8

const (
	DMGOnly CompatibilityFlag = iota
	CGBSupported
	CGBOnly
)

// Type is the raw cartridge-type byte at $0147. Bank-switching logic for
// any of these beyond bank-0 read-through is out of scope; the value is
// retained only as metadata.
type Type uint8

const (
	ROM               Type = 0x00
	MBC1              Type = 0x01
	MBC1RAM           Type = 0x02
	MBC1RAMBATT       Type = 0x03
	MBC2              Type = 0x05
	MBC2BATT          Type = 0x06
	ROMRAM            Type = 0x08
	ROMRAMBATT        Type = 0x09
	MBC3TIMERBATT     Type = 0x0F
	MBC3TIMERRAMBATT  Type = 0x10
	MBC3              Type = 0x11
	MBC3RAM           Type = 0x12
	MBC3RAMBATT       Type = 0x13
	MBC5              Type = 0x19
	MBC5RAM           Type = 0x1A
	MBC5RAMBATT       Type = 0x1B
	MBC5RUMBLE        Type = 0x1C
	MBC5RUMBLERAM     Type = 0x1D
	MBC5RUMBLERAMBATT Type = 0x1E
)

var ramSizeCode = map[uint8]uint{
	0x00: 0,
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

// headerStart and headerEnd bound the header region within the ROM image,
// as specified in spec.md §3.
const (
	headerStart = 0x0100
	headerEnd   = 0x0150
)

// Header is the parsed cartridge header, $0100-$014F of the ROM image.
type Header struct {
	EntryPoint [4]byte
	Logo       [48]byte

	Title            string
	ManufacturerCode string
	Compatibility    CompatibilityFlag

	NewLicenseeCode string
	SGBFlag         bool
	CartridgeType   Type
	ROMSize         uint
	RAMSize         uint
	DestinationCode uint8
	OldLicenseeCode uint8
	ROMVersion      uint8
	HeaderChecksum  uint8
	GlobalChecksum  uint16
}

// parseHeader parses the 0x50-byte header window ($0100-$014F) of a ROM
// image. It does not validate the checksum; callers validate separately
// so that the parse/validate steps can be tested independently.
func parseHeader(h []byte) (Header, error) {
	if len(h) != 0x50 {
		return Header{}, fmt.Errorf("cartridge: invalid header window length: %d", len(h))
	}

	var hdr Header
	copy(hdr.EntryPoint[:], h[0x00:0x04])
	copy(hdr.Logo[:], h[0x04:0x34])

	switch h[0x43] {
	case 0x80:
		hdr.Compatibility = CGBSupported
		hdr.Title = string(trimNul(h[0x34:0x43]))
	case 0xC0:
		hdr.Compatibility = CGBOnly
		hdr.Title = string(trimNul(h[0x34:0x43]))
	default:
		hdr.Compatibility = DMGOnly
		hdr.Title = string(trimNul(h[0x34:0x44]))
	}
	hdr.ManufacturerCode = string(trimNul(h[0x3F:0x43]))
	hdr.NewLicenseeCode = string(h[0x44:0x46])
	hdr.SGBFlag = h[0x46] == 0x03
	hdr.CartridgeType = Type(h[0x47])
	hdr.ROMSize = (32 * 1024) << h[0x48]
	hdr.RAMSize = ramSizeCode[h[0x49]]
	hdr.DestinationCode = h[0x4A]
	hdr.OldLicenseeCode = h[0x4B]
	hdr.ROMVersion = h[0x4C]
	hdr.HeaderChecksum = h[0x4D]
	hdr.GlobalChecksum = uint16(h[0x4E])<<8 | uint16(h[0x4F])

	return hdr, nil
}

// validateChecksum implements the header-checksum algorithm from
// spec.md §3: sum_{a=$0134..=$014C} (-rom[a] - 1) mod 256.
func validateChecksum(rom []byte) error {
	if len(rom) < 0x14D {
		return fmt.Errorf("cartridge: ROM too short to contain a header checksum")
	}
	var sum uint8
	for a := 0x0134; a <= 0x014C; a++ {
		sum = sum - rom[a] - 1
	}
	want := rom[0x14D]
	if sum != want {
		return fmt.Errorf("cartridge: header checksum mismatch: computed 0x%02X, header says 0x%02X", sum, want)
	}
	return nil
}

func trimNul(b []byte) []byte {
	for i, c := range b {
		if c == 0 {
			return b[:i]
		}
	}
	return b
}

func (t Type) String() string {
	switch t {
	case ROM:
		return "ROM"
	case MBC1, MBC1RAM, MBC1RAMBATT:
		return "MBC1"
	case MBC2, MBC2BATT:
		return "MBC2"
	case ROMRAM, ROMRAMBATT:
		return "ROM+RAM"
	case MBC3, MBC3RAM, MBC3RAMBATT, MBC3TIMERBATT, MBC3TIMERRAMBATT:
		return "MBC3"
	case MBC5, MBC5RAM, MBC5RAMBATT, MBC5RUMBLE, MBC5RUMBLERAM, MBC5RUMBLERAMBATT:
		return "MBC5"
	default:
		return fmt.Sprintf("Unknown(0x%02X)", uint8(t))
	}
}

func (c CompatibilityFlag) String() string {
	switch c {
	case CGBSupported:
		return "CGB-supported"
	case CGBOnly:
		return "CGB-only"
	default:
		return "DMG-only"
	}
}
