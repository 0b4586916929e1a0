// Package bus implements the Game Boy system bus: the 16-bit address
// decoder that routes every CPU memory access to boot ROM, cartridge,
// VRAM, WRAM, HRAM, or the I/O router, including the boot-ROM overlay
// rule described in spec.md §3.
package bus

import (
	"github.com/thelolagemann/dmgcore/internal/boot"
	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/pkg/log"
	"github.com/thelolagemann/dmgcore/internal/ram"
)

const (
	vramSize = 0x2000 // $8000-$9FFF
	wramSize = 0x2000 // $C000-$DFFF
	hramSize = 0x7F   // $FF80-$FFFE
)

// Bus is the 16-bit address-space decoder the CPU reads and writes
// through. It owns VRAM, WRAM and HRAM directly, and delegates boot ROM,
// cartridge and I/O register accesses to their respective components.
type Bus struct {
	boot *boot.ROM
	cart *cartridge.Cartridge
	io   *io.Router

	vram *ram.Block
	wram *ram.Block
	hram *ram.Block

	log log.Logger
}

// New constructs a Bus over the given boot ROM, cartridge and I/O
// router. VRAM, WRAM and HRAM are allocated zeroed, per spec.md §3's
// cold-start lifecycle.
func New(b *boot.ROM, c *cartridge.Cartridge, router *io.Router, logger log.Logger) *Bus {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	return &Bus{
		boot: b,
		cart: c,
		io:   router,
		vram: ram.New(vramSize),
		wram: ram.New(wramSize),
		hram: ram.New(hramSize),
		log:  logger,
	}
}

// readByte resolves a single address to its owning region and returns
// its current value. Because region ownership is decided independently
// for every address, reading a multi-byte window that straddles a
// region boundary (e.g. the $00FF/$0100 overlay seam) falls out
// correctly without any special-case splitting logic: each byte simply
// asks the region that owns its own address.
func (b *Bus) readByte(addr uint16) (uint8, error) {
	switch {
	case addr <= 0x00FF:
		if !b.boot.Disabled() {
			return b.boot.Read(addr), nil
		}
		return b.cart.Read(addr), nil
	case addr <= 0x7FFF:
		return b.cart.Read(addr), nil
	case addr <= 0x9FFF:
		return b.vram.Read(addr - 0x8000), nil
	case addr <= 0xBFFF:
		return b.cart.Read(addr), nil
	case addr <= 0xDFFF:
		return b.wram.Read(addr - 0xC000), nil
	case addr <= 0xFDFF: // echo RAM
		b.log.Errorf("bus: unimplemented read from echo RAM at $%04X", addr)
		return 0, unimplemented(addr)
	case addr <= 0xFE9F: // OAM
		b.log.Errorf("bus: unimplemented read from OAM at $%04X", addr)
		return 0, unimplemented(addr)
	case addr <= 0xFEFF: // unusable
		b.log.Errorf("bus: unimplemented read from unusable region at $%04X", addr)
		return 0, unimplemented(addr)
	case addr <= 0xFF7F:
		v, err := b.io.Read(addr)
		if err != nil {
			b.log.Errorf("bus: %v", err)
			return 0, unimplemented(addr)
		}
		return v, nil
	case addr <= 0xFFFE:
		return b.hram.Read(addr - 0xFF80), nil
	default: // 0xFFFF, IE register
		b.log.Errorf("bus: unimplemented read from IE register")
		return 0, unimplemented(addr)
	}
}

// writeByte resolves a single address to its owning region and stores
// value there.
func (b *Bus) writeByte(addr uint16, value uint8) error {
	switch {
	case addr <= 0x00FF:
		if !b.boot.Disabled() {
			b.log.Errorf("bus: illegal write to boot overlay at $%04X", addr)
			return illegalWrite(addr)
		}
		b.cart.Write(addr, value)
		return nil
	case addr <= 0x7FFF:
		b.cart.Write(addr, value)
		return nil
	case addr <= 0x9FFF:
		b.vram.Write(addr-0x8000, value)
		return nil
	case addr <= 0xBFFF:
		b.cart.Write(addr, value)
		return nil
	case addr <= 0xDFFF:
		b.wram.Write(addr-0xC000, value)
		return nil
	case addr <= 0xFDFF:
		b.log.Errorf("bus: unimplemented write to echo RAM at $%04X", addr)
		return unimplemented(addr)
	case addr <= 0xFE9F:
		b.log.Errorf("bus: unimplemented write to OAM at $%04X", addr)
		return unimplemented(addr)
	case addr <= 0xFEFF:
		b.log.Errorf("bus: unimplemented write to unusable region at $%04X", addr)
		return unimplemented(addr)
	case addr <= 0xFF7F:
		if err := b.io.Write(addr, value); err != nil {
			b.log.Errorf("bus: %v", err)
			return unimplemented(addr)
		}
		return nil
	case addr <= 0xFFFE:
		b.hram.Write(addr-0xFF80, value)
		return nil
	default:
		b.log.Errorf("bus: unimplemented write to IE register")
		return unimplemented(addr)
	}
}

// ReadByte is the single-byte read path the CPU uses for instruction
// fetch and operand/memory access.
func (b *Bus) ReadByte(addr uint16) (uint8, error) {
	return b.readByte(addr)
}

// WriteByte is the single-byte write path the CPU uses for memory
// stores.
func (b *Bus) WriteByte(addr uint16, value uint8) error {
	return b.writeByte(addr, value)
}

// Read returns exactly len bytes starting at addr, without wraparound.
// A window that straddles a region boundary is served by concatenating
// each region's bytes in address order (spec.md §4.1); see readByte for
// why no explicit segmentation step is needed.
func (b *Bus) Read(addr uint16, length int) ([]byte, error) {
	out := make([]byte, length)
	for i := 0; i < length; i++ {
		v, err := b.readByte(addr + uint16(i))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Write stores each byte of data starting at addr, without wraparound,
// and returns the count of bytes successfully written. On error, the
// bytes written before the failing address remain written (matching the
// per-byte resolution model) and the count/error reflect how far the
// write got.
func (b *Bus) Write(addr uint16, data []byte) (int, error) {
	for i, v := range data {
		if err := b.writeByte(addr+uint16(i), v); err != nil {
			return i, err
		}
	}
	return len(data), nil
}
