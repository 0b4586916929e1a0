package cpu

import "github.com/thelolagemann/dmgcore/internal/register"

// rlca rotates A left, carry <- bit 7 <- bit 0. Unlike the CB-prefixed
// RLC, the accumulator form always clears Z (spec §4.3).
func (c *CPU) rlca() {
	carry := c.Reg.A >> 7
	c.Reg.A = c.Reg.A<<1 | carry
	c.Reg.F = 0
	c.Reg.SetFlagTo(register.FlagCarry, carry == 1)
}

// rrca rotates A right, carry <- bit 0 <- bit 7. Supplements the spec's
// explicit RLCA/RLA pair with its natural sibling, following the
// source's accumulator-rotate family.
func (c *CPU) rrca() {
	carry := c.Reg.A & 1
	c.Reg.A = c.Reg.A>>1 | carry<<7
	c.Reg.F = 0
	c.Reg.SetFlagTo(register.FlagCarry, carry == 1)
}

// rla rotates A left through the carry flag.
func (c *CPU) rla() {
	oldCarry := carryBit(&c.Reg)
	newCarry := c.Reg.A >> 7
	c.Reg.A = c.Reg.A<<1 | oldCarry
	c.Reg.F = 0
	c.Reg.SetFlagTo(register.FlagCarry, newCarry == 1)
}

// rra rotates A right through the carry flag.
func (c *CPU) rra() {
	oldCarry := carryBit(&c.Reg)
	newCarry := c.Reg.A & 1
	c.Reg.A = c.Reg.A>>1 | oldCarry<<7
	c.Reg.F = 0
	c.Reg.SetFlagTo(register.FlagCarry, newCarry == 1)
}

// cbRotateShift applies one of the CB-prefixed rotate/shift operations
// (op = bits 5:3 of the CB opcode) to v, setting Z from the result and
// C from the shifted-out bit. Unlike the accumulator rotate family, Z
// reflects the result here.
func (c *CPU) cbRotateShift(op uint8, v uint8) uint8 {
	var result uint8
	var carryOut bool

	switch op {
	case 0: // RLC
		carryOut = v&0x80 != 0
		result = v<<1 | v>>7
	case 1: // RRC
		carryOut = v&0x01 != 0
		result = v>>1 | v<<7
	case 2: // RL
		carryOut = v&0x80 != 0
		result = v<<1 | carryBit(&c.Reg)
	case 3: // RR
		carryOut = v&0x01 != 0
		result = v>>1 | carryBit(&c.Reg)<<7
	case 4: // SLA
		carryOut = v&0x80 != 0
		result = v << 1
	case 5: // SRA
		carryOut = v&0x01 != 0
		result = v&0x80 | v>>1
	case 6: // SWAP
		result = v<<4 | v>>4
		c.Reg.F = 0
		c.Reg.SetFlagTo(register.FlagZero, result == 0)
		return result
	case 7: // SRL
		carryOut = v&0x01 != 0
		result = v >> 1
	}

	c.Reg.F = 0
	c.Reg.SetFlagTo(register.FlagZero, result == 0)
	c.Reg.SetFlagTo(register.FlagCarry, carryOut)
	return result
}
