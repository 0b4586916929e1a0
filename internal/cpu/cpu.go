// Package cpu implements the Sharp LR35902 fetch/decode/dispatch loop:
// a primary 256-entry opcode table, a CB-prefixed 256-entry table, and
// the register-code tagged addressing shared by both.
package cpu

import (
	"github.com/thelolagemann/dmgcore/internal/register"
)

// Memory is the subset of the system bus the CPU depends on. Keeping it
// as a narrow interface lets the dispatch and ALU tests drive the CPU
// against a small in-memory fake instead of a full bus.
type Memory interface {
	ReadByte(addr uint16) (uint8, error)
	WriteByte(addr uint16, value uint8) error
}

// CPU is the Sharp LR35902 interpreter: a register file, a bus handle,
// and a running T-cycle counter.
type CPU struct {
	Reg register.File
	Mem Memory

	// Cycles is the running total of T-cycles consumed since reset,
	// matching the CPU snapshot contract the run loop publishes.
	Cycles uint64

	// IME is the interrupt master enable flag, toggled by DI/EI. Nothing
	// in this core reads it back to gate interrupt delivery (out of
	// scope); it exists so DI/EI are real instructions rather than
	// Unimplemented.
	IME bool
}

// New returns a CPU wired to the given memory, with all registers at
// their zero values. Cold-start register contents are the boot ROM's
// responsibility, not this core's.
func New(mem Memory) *CPU {
	return &CPU{Mem: mem}
}

// Snapshot is the value-type CPU state published on every run-loop step.
type Snapshot struct {
	A, F uint8
	B, C uint8
	D, E uint8
	H, L uint8
	SP   uint16
	PC   uint16

	Cycles uint64
}

// Snapshot returns a copy of the CPU's externally visible state.
func (c *CPU) Snapshot() Snapshot {
	return Snapshot{
		A: c.Reg.A, F: c.Reg.F,
		B: c.Reg.B, C: c.Reg.C,
		D: c.Reg.D, E: c.Reg.E,
		H: c.Reg.H, L: c.Reg.L,
		SP: c.Reg.SP, PC: c.Reg.PC,
		Cycles: c.Cycles,
	}
}

// Step fetches, decodes and executes exactly one instruction, returning
// the number of T-cycles it consumed. Any bus error, or landing on an
// opcode this core doesn't implement, aborts the step and returns the
// error; the caller (the run loop) is responsible for halting.
func (c *CPU) Step() (uint8, error) {
	opcode, err := c.fetch8()
	if err != nil {
		return 0, err
	}

	if opcode == 0xCB {
		cbOpcode, err := c.fetch8()
		if err != nil {
			return 0, err
		}
		h := cbTable[cbOpcode]
		if h == nil {
			return 0, &UnimplementedOpcodeError{Opcode: cbOpcode, CB: true}
		}
		cycles, err := h(c)
		if err != nil {
			return 0, err
		}
		c.Cycles += uint64(cycles)
		return cycles, nil
	}

	h := primaryTable[opcode]
	if h == nil {
		return 0, &UnimplementedOpcodeError{Opcode: opcode}
	}
	cycles, err := h(c)
	if err != nil {
		return 0, err
	}
	c.Cycles += uint64(cycles)
	return cycles, nil
}

// fetch8 reads the byte at PC and advances PC by 1.
func (c *CPU) fetch8() (uint8, error) {
	v, err := c.Mem.ReadByte(c.Reg.PC)
	if err != nil {
		return 0, err
	}
	c.Reg.PC++
	return v, nil
}

// fetch16 reads a little-endian 16-bit immediate at PC and advances PC
// by 2.
func (c *CPU) fetch16() (uint16, error) {
	lo, err := c.fetch8()
	if err != nil {
		return 0, err
	}
	hi, err := c.fetch8()
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// fetchSigned8 reads a signed 8-bit immediate at PC and advances PC by
// 1, used for JR's relative offset.
func (c *CPU) fetchSigned8() (int8, error) {
	v, err := c.fetch8()
	return int8(v), err
}

// push writes hi then lo onto the stack, decrementing SP before each
// write, matching the hardware's "push high byte first, onto a
// predecremented pointer" order.
func (c *CPU) push(hi, lo uint8) error {
	c.Reg.SP--
	if err := c.Mem.WriteByte(c.Reg.SP, hi); err != nil {
		return err
	}
	c.Reg.SP--
	return c.Mem.WriteByte(c.Reg.SP, lo)
}

// pop reads lo then hi off the stack, incrementing SP after each read.
func (c *CPU) pop() (hi, lo uint8, err error) {
	lo, err = c.Mem.ReadByte(c.Reg.SP)
	if err != nil {
		return 0, 0, err
	}
	c.Reg.SP++
	hi, err = c.Mem.ReadByte(c.Reg.SP)
	if err != nil {
		return 0, 0, err
	}
	c.Reg.SP++
	return hi, lo, nil
}
