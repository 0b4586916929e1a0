// Package boot models the 256-byte DMG boot ROM and its one-shot overlay
// latch. The boot ROM is mapped over cartridge bank 0 at $0000-$00FF until
// the game writes a nonzero value to $FF50, at which point it is
// permanently unmapped.
package boot

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// Size is the exact length a boot ROM image must have.
const Size = 256

// ROM holds the boot ROM image and its disable latch.
type ROM struct {
	raw      [Size]byte
	checksum string
	disabled bool
}

// New constructs a ROM from exactly Size bytes. It is an error to
// construct a ROM from an image of any other length.
func New(image []byte) (*ROM, error) {
	if len(image) != Size {
		return nil, fmt.Errorf("boot: invalid boot ROM length: %d (want %d)", len(image), Size)
	}
	r := &ROM{}
	copy(r.raw[:], image)
	sum := md5.Sum(r.raw[:])
	r.checksum = hex.EncodeToString(sum[:])
	return r, nil
}

// Read returns the byte at the given offset within the boot ROM image.
// addr must be in [0, Size).
func (r *ROM) Read(addr uint16) uint8 {
	return r.raw[addr]
}

// Checksum returns the MD5 checksum of the boot ROM image, used only for
// diagnostics/identification.
func (r *ROM) Checksum() string { return r.checksum }

// Disabled reports whether the overlay has been permanently disabled.
func (r *ROM) Disabled() bool { return r.disabled }

// Disable latches the overlay off. Once disabled it can never be
// re-enabled, matching the one-shot $FF50 write semantics.
func (r *ROM) Disable() { r.disabled = true }
