package ppu

import "github.com/thelolagemann/dmgcore/internal/bits"

// Mode is the 2-bit STAT mode field.
type Mode uint8

const (
	HBlank Mode = iota
	VBlank
	OAMSearch
	Transfer
)

// STAT is the LCD Status register ($FF41). Bit layout:
//
//	Bit 7 - unused, always reads 1
//	Bit 6 - LYC=LY interrupt enable
//	Bit 5 - OAM interrupt enable
//	Bit 4 - VBlank interrupt enable
//	Bit 3 - HBlank interrupt enable
//	Bit 2 - LYC=LY coincidence flag (read-only on hardware)
//	Bit 1-0 - Mode
type STAT struct {
	LYCInterrupt    bool
	OAMInterrupt    bool
	VBlankInterrupt bool
	HBlankInterrupt bool
	Coincidence     bool
	Mode            Mode
}

// Pack marshals the STAT struct into its register byte. Bit 7 is
// hardwired high per spec.md §3.
func (s STAT) Pack() uint8 {
	v := bits.Set(0, 7)
	if s.LYCInterrupt {
		v = bits.Set(v, 6)
	}
	if s.OAMInterrupt {
		v = bits.Set(v, 5)
	}
	if s.VBlankInterrupt {
		v = bits.Set(v, 4)
	}
	if s.HBlankInterrupt {
		v = bits.Set(v, 3)
	}
	if s.Coincidence {
		v = bits.Set(v, 2)
	}
	v |= uint8(s.Mode) & 0x03
	return v
}

// Unpack populates the STAT struct from its register byte. Bit 7 is
// ignored on unpack since it is a fixed, unwritable bit.
func (s *STAT) Unpack(v uint8) {
	s.LYCInterrupt = bits.Test(v, 6)
	s.OAMInterrupt = bits.Test(v, 5)
	s.VBlankInterrupt = bits.Test(v, 4)
	s.HBlankInterrupt = bits.Test(v, 3)
	s.Coincidence = bits.Test(v, 2)
	s.Mode = Mode(v & 0x03)
}
