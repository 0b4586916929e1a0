// Package io sub-dispatches the $FF00-$FF7F I/O window to the device
// modules this core actually implements: the PPU register file, the
// stubbed audio register file, and the one-shot boot-ROM disable latch.
// Every other sub-range (joypad, serial, timer, wave pattern) is out of
// scope and fails with Unimplemented, per spec.md §4.4.
package io

import (
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/apu"
	"github.com/thelolagemann/dmgcore/internal/boot"
	"github.com/thelolagemann/dmgcore/internal/ppu"
)

// AddrBootDisable is the $FF50 boot-ROM disable latch.
const AddrBootDisable = 0xFF50

// Router dispatches reads and writes within $FF00-$FF7F.
type Router struct {
	PPU  *ppu.Registers
	APU  *apu.Registers
	boot *boot.ROM
}

// NewRouter returns a Router wired to the given PPU register file, APU
// register file, and boot ROM (for the $FF50 disable latch).
func NewRouter(p *ppu.Registers, a *apu.Registers, b *boot.ROM) *Router {
	return &Router{PPU: p, APU: a, boot: b}
}

// Read dispatches a read within $FF00-$FF7F.
func (r *Router) Read(addr uint16) (uint8, error) {
	switch {
	case addr == AddrBootDisable:
		if r.boot.Disabled() {
			return 1, nil
		}
		return 0, nil
	case apu.InRange(addr):
		return r.APU.Read(addr), nil
	case addr >= ppu.AddrLCDC && addr <= ppu.AddrWX:
		return r.PPU.Read(addr)
	default:
		return 0, fmt.Errorf("io: unimplemented register read at $%04X", addr)
	}
}

// Write dispatches a write within $FF00-$FF7F.
func (r *Router) Write(addr uint16, value uint8) error {
	switch {
	case addr == AddrBootDisable:
		if value != 0 {
			r.boot.Disable()
		}
		return nil
	case apu.InRange(addr):
		r.APU.Write(addr, value)
		return nil
	case addr >= ppu.AddrLCDC && addr <= ppu.AddrWX:
		return r.PPU.Write(addr, value)
	default:
		return fmt.Errorf("io: unimplemented register write at $%04X", addr)
	}
}
