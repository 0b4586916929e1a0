// Package register implements the Sharp LR35902 register file: eight
// 8-bit slots and the virtual 16-bit pair views over them.
package register

// Flag bit positions within F.
const (
	FlagZero      uint8 = 1 << 7
	FlagSubtract  uint8 = 1 << 6
	FlagHalfCarry uint8 = 1 << 5
	FlagCarry     uint8 = 1 << 4
)

// File holds the eight 8-bit registers and the stack/program counters.
// AF, BC, DE and HL are not stored separately; they are composed on
// demand from the 8-bit slots so that writing through a pair and reading
// a half always observes the same bytes.
type File struct {
	A, F uint8
	B, C uint8
	D, E uint8
	H, L uint8

	SP uint16
	PC uint16
}

// BC returns the big-endian composition of B and C.
func (f *File) BC() uint16 { return uint16(f.B)<<8 | uint16(f.C) }

// DE returns the big-endian composition of D and E.
func (f *File) DE() uint16 { return uint16(f.D)<<8 | uint16(f.E) }

// HL returns the big-endian composition of H and L.
func (f *File) HL() uint16 { return uint16(f.H)<<8 | uint16(f.L) }

// AF returns the big-endian composition of A and F. The low nibble of F
// always reads as zero.
func (f *File) AF() uint16 { return uint16(f.A)<<8 | uint16(f.F&0xF0) }

// SetBC writes v into the B/C pair, high byte first.
func (f *File) SetBC(v uint16) { f.B = uint8(v >> 8); f.C = uint8(v) }

// SetDE writes v into the D/E pair, high byte first.
func (f *File) SetDE(v uint16) { f.D = uint8(v >> 8); f.E = uint8(v) }

// SetHL writes v into the H/L pair, high byte first.
func (f *File) SetHL(v uint16) { f.H = uint8(v >> 8); f.L = uint8(v) }

// SetAF writes v into the A/F pair, high byte first. Per the hardware
// invariant, the low nibble of F is always forced to zero regardless of
// what was supplied.
func (f *File) SetAF(v uint16) { f.A = uint8(v >> 8); f.F = uint8(v) & 0xF0 }

// SetFlag sets the given flag bit without disturbing any other flag.
// This is a read-modify-write, unlike a naive `F = mask` assignment,
// which would clobber the other three flags.
func (f *File) SetFlag(flag uint8) { f.F = (f.F | flag) & 0xF0 }

// ClearFlag clears the given flag bit without disturbing any other flag.
func (f *File) ClearFlag(flag uint8) { f.F = (f.F &^ flag) & 0xF0 }

// SetFlagTo sets or clears the given flag bit based on cond.
func (f *File) SetFlagTo(flag uint8, cond bool) {
	if cond {
		f.SetFlag(flag)
	} else {
		f.ClearFlag(flag)
	}
}

// HasFlag reports whether the given flag bit is set.
func (f *File) HasFlag(flag uint8) bool { return f.F&flag != 0 }
