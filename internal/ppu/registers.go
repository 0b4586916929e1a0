// Package ppu implements the register-file slice of the Picture
// Processing Unit: byte-granular read/write over $FF40-$FF4B. The pixel
// pipeline that would otherwise drive LY and the STAT mode is out of
// scope (spec.md §1); this file only stores whatever is written to it.
package ppu

import "fmt"

// Register addresses.
const (
	AddrLCDC = 0xFF40
	AddrSTAT = 0xFF41
	AddrSCY  = 0xFF42
	AddrSCX  = 0xFF43
	AddrLY   = 0xFF44
	AddrLYC  = 0xFF45
	AddrDMA  = 0xFF46
	AddrBGP  = 0xFF47
	AddrOBP0 = 0xFF48
	AddrOBP1 = 0xFF49
	AddrWY   = 0xFF4A
	AddrWX   = 0xFF4B
)

// Registers holds the PPU's memory-mapped register file.
type Registers struct {
	LCDC LCDC
	STAT STAT

	SCY, SCX uint8
	LY, LYC  uint8
	DMA      uint8
	BGP      uint8
	OBP0     uint8
	OBP1     uint8
	WY, WX   uint8
}

// NewRegisters returns a zero-initialized register file, matching the
// cold-start state described in spec.md §3 (lifecycles).
func NewRegisters() *Registers {
	return &Registers{}
}

// Read returns the byte at addr. addr must be in [$FF40, $FF4B].
func (r *Registers) Read(addr uint16) (uint8, error) {
	switch addr {
	case AddrLCDC:
		return r.LCDC.Pack(), nil
	case AddrSTAT:
		return r.STAT.Pack(), nil
	case AddrSCY:
		return r.SCY, nil
	case AddrSCX:
		return r.SCX, nil
	case AddrLY:
		return r.LY, nil
	case AddrLYC:
		return r.LYC, nil
	case AddrDMA:
		return r.DMA, nil
	case AddrBGP:
		return r.BGP, nil
	case AddrOBP0:
		return r.OBP0, nil
	case AddrOBP1:
		return r.OBP1, nil
	case AddrWY:
		return r.WY, nil
	case AddrWX:
		return r.WX, nil
	default:
		return 0, fmt.Errorf("ppu: unimplemented register read at $%04X", addr)
	}
}

// Write stores value at addr. addr must be in [$FF40, $FF4B]. LY is
// writable here even though real hardware treats it as read-only,
// because the pixel pipeline that would otherwise drive it is out of
// scope (spec.md §4.5).
func (r *Registers) Write(addr uint16, value uint8) error {
	switch addr {
	case AddrLCDC:
		r.LCDC.Unpack(value)
	case AddrSTAT:
		r.STAT.Unpack(value)
	case AddrSCY:
		r.SCY = value
	case AddrSCX:
		r.SCX = value
	case AddrLY:
		r.LY = value
	case AddrLYC:
		r.LYC = value
	case AddrDMA:
		r.DMA = value
	case AddrBGP:
		r.BGP = value
	case AddrOBP0:
		r.OBP0 = value
	case AddrOBP1:
		r.OBP1 = value
	case AddrWY:
		r.WY = value
	case AddrWX:
		r.WX = value
	default:
		return fmt.Errorf("ppu: unimplemented register write at $%04X", addr)
	}
	return nil
}
