// Package cartridge implements header parsing and validation for a DMG
// cartridge image, and the bank-0 read-through contract the bus uses to
// serve $0100-$7FFF and $A000-$BFFF. Bank switching is out of scope: any
// byte outside the header window reads back as zero, and writes are
// accepted and discarded (mapper control writes ignored), matching
// spec.md §4.2.
package cartridge

import (
	"fmt"

	"github.com/cespare/xxhash"
)

// Cartridge is a parsed, validated cartridge image.
type Cartridge struct {
	header      Header
	headerBytes [0x50]byte
	fingerprint uint64
}

// New parses and validates the header of rom, failing construction if the
// header checksum does not match (spec.md §3, §8). rom must be at least
// $0150 bytes.
func New(rom []byte) (*Cartridge, error) {
	if len(rom) < headerEnd {
		return nil, fmt.Errorf("cartridge: ROM image too short to contain a header (need at least 0x150 bytes, got %d)", len(rom))
	}

	if err := validateChecksum(rom); err != nil {
		return nil, err
	}

	hdr, err := parseHeader(rom[headerStart:headerEnd])
	if err != nil {
		return nil, err
	}

	c := &Cartridge{header: hdr, fingerprint: xxhash.Sum64(rom)}
	copy(c.headerBytes[:], rom[headerStart:headerEnd])
	return c, nil
}

// Header returns the parsed cartridge header.
func (c *Cartridge) Header() Header { return c.header }

// Fingerprint returns a content hash of the ROM image, for identifying a
// loaded cartridge without re-reading the whole image. It carries no
// gameplay semantics.
func (c *Cartridge) Fingerprint() uint64 { return c.fingerprint }

// Read returns the byte at addr within the cartridge's address space
// ($0000-$7FFF ROM, $A000-$BFFF external RAM). Header bytes are served
// from the validated header window; anything else reads back as zero,
// per the bank-0-only stub contract.
func (c *Cartridge) Read(addr uint16) uint8 {
	if addr >= headerStart && addr < headerEnd {
		return c.headerBytes[addr-headerStart]
	}
	return 0
}

// Write accepts and discards a write. Mapper control registers are out
// of scope for this core.
func (c *Cartridge) Write(addr uint16, value uint8) {}
