package ppu

import "github.com/thelolagemann/dmgcore/internal/bits"

// LCDC is the LCD Control register ($FF40). Bit layout:
//
//	Bit 7 - LCD Enable
//	Bit 6 - Window Tile Map Select (0=$9800, 1=$9C00)
//	Bit 5 - Window Enable
//	Bit 4 - BG & Window Tile Data Select (0=$8800, 1=$8000)
//	Bit 3 - BG Tile Map Select (0=$9800, 1=$9C00)
//	Bit 2 - OBJ Size (0=8x8, 1=8x16)
//	Bit 1 - OBJ Enable
//	Bit 0 - BG/Window Enable/Priority
type LCDC struct {
	Enabled              bool
	WindowTileMapHigh    bool
	WindowEnabled        bool
	TileDataHigh         bool
	BackgroundTileMapHigh bool
	TallSprites          bool
	SpritesEnabled       bool
	BackgroundEnabled    bool
}

// Pack marshals the LCDC struct into its register byte.
func (l LCDC) Pack() uint8 {
	var v uint8
	if l.Enabled {
		v = bits.Set(v, 7)
	}
	if l.WindowTileMapHigh {
		v = bits.Set(v, 6)
	}
	if l.WindowEnabled {
		v = bits.Set(v, 5)
	}
	if l.TileDataHigh {
		v = bits.Set(v, 4)
	}
	if l.BackgroundTileMapHigh {
		v = bits.Set(v, 3)
	}
	if l.TallSprites {
		v = bits.Set(v, 2)
	}
	if l.SpritesEnabled {
		v = bits.Set(v, 1)
	}
	if l.BackgroundEnabled {
		v = bits.Set(v, 0)
	}
	return v
}

// Unpack populates the LCDC struct from its register byte.
func (l *LCDC) Unpack(v uint8) {
	l.Enabled = bits.Test(v, 7)
	l.WindowTileMapHigh = bits.Test(v, 6)
	l.WindowEnabled = bits.Test(v, 5)
	l.TileDataHigh = bits.Test(v, 4)
	l.BackgroundTileMapHigh = bits.Test(v, 3)
	l.TallSprites = bits.Test(v, 2)
	l.SpritesEnabled = bits.Test(v, 1)
	l.BackgroundEnabled = bits.Test(v, 0)
}
