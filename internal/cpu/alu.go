package cpu

import "github.com/thelolagemann/dmgcore/internal/register"

// alu8 performs an 8-bit ALU op against A and sets flags per spec,
// storing the result in A (CP leaves A unchanged). It is shared by the register/HL-indirect
// and immediate addressing forms, since both compute the same thing
// once the right-hand operand has been fetched.
func (c *CPU) alu8(op uint8, n uint8) {
	switch op {
	case 0: // ADD
		c.add(n, 0)
	case 1: // ADC
		c.add(n, carryBit(&c.Reg))
	case 2: // SUB
		c.sub(n, 0)
	case 3: // SBC
		c.sub(n, carryBit(&c.Reg))
	case 4: // AND
		c.Reg.A &= n
		c.Reg.F = 0
		c.Reg.SetFlagTo(register.FlagZero, c.Reg.A == 0)
		c.Reg.SetFlag(register.FlagHalfCarry)
	case 5: // XOR
		c.Reg.A ^= n
		c.Reg.F = 0
		c.Reg.SetFlagTo(register.FlagZero, c.Reg.A == 0)
	case 6: // OR
		c.Reg.A |= n
		c.Reg.F = 0
		c.Reg.SetFlagTo(register.FlagZero, c.Reg.A == 0)
	case 7: // CP
		c.cp(n)
	}
}

func carryBit(r *register.File) uint8 {
	if r.HasFlag(register.FlagCarry) {
		return 1
	}
	return 0
}

// add computes A := A + n + carryIn, setting Z/N/H/C per spec's ADD/ADC
// rules.
func (c *CPU) add(n, carryIn uint8) {
	a := c.Reg.A
	sum := uint16(a) + uint16(n) + uint16(carryIn)
	half := (a&0xF)+(n&0xF)+carryIn > 0xF

	c.Reg.A = uint8(sum)
	c.Reg.F = 0
	c.Reg.SetFlagTo(register.FlagZero, c.Reg.A == 0)
	c.Reg.SetFlagTo(register.FlagHalfCarry, half)
	c.Reg.SetFlagTo(register.FlagCarry, sum > 0xFF)
}

// sub computes A := A - n - carryIn, setting Z/N/H/C per spec's
// SUB/SBC/CP rules. N is always set.
func (c *CPU) sub(n, carryIn uint8) {
	a := c.Reg.A
	diff := int16(a) - int16(n) - int16(carryIn)
	half := int16(a&0xF)-int16(n&0xF)-int16(carryIn) < 0

	c.Reg.A = uint8(diff)
	c.Reg.F = 0
	c.Reg.SetFlag(register.FlagSubtract)
	c.Reg.SetFlagTo(register.FlagZero, c.Reg.A == 0)
	c.Reg.SetFlagTo(register.FlagHalfCarry, half)
	c.Reg.SetFlagTo(register.FlagCarry, diff < 0)
}

// cp computes A - n for flags only; A is left unchanged.
func (c *CPU) cp(n uint8) {
	a := c.Reg.A
	diff := int16(a) - int16(n)
	half := int16(a&0xF)-int16(n&0xF) < 0

	c.Reg.F = 0
	c.Reg.SetFlag(register.FlagSubtract)
	c.Reg.SetFlagTo(register.FlagZero, uint8(diff) == 0)
	c.Reg.SetFlagTo(register.FlagHalfCarry, half)
	c.Reg.SetFlagTo(register.FlagCarry, diff < 0)
}

// inc8 increments v and sets Z/N/H; C is left untouched by the caller
// (the caller must not call SetFlagTo(FlagCarry, ...) here).
func (c *CPU) inc8(v uint8) uint8 {
	result := v + 1
	c.Reg.ClearFlag(register.FlagSubtract)
	c.Reg.SetFlagTo(register.FlagZero, result == 0)
	c.Reg.SetFlagTo(register.FlagHalfCarry, v&0xF == 0xF)
	return result
}

// dec8 decrements v and sets Z/N/H; C is left untouched.
func (c *CPU) dec8(v uint8) uint8 {
	result := v - 1
	c.Reg.SetFlag(register.FlagSubtract)
	c.Reg.SetFlagTo(register.FlagZero, result == 0)
	c.Reg.SetFlagTo(register.FlagHalfCarry, v&0xF == 0)
	return result
}

// addHL computes HL := HL + nn, setting N=0, H on carry from bit 11,
// C on carry from bit 15. Z is left untouched (16-bit ADD HL,rr never
// touches Z).
func (c *CPU) addHL(nn uint16) {
	hl := c.Reg.HL()
	sum := uint32(hl) + uint32(nn)
	half := (hl&0xFFF)+(nn&0xFFF) > 0xFFF

	c.Reg.SetHL(uint16(sum))
	c.Reg.ClearFlag(register.FlagSubtract)
	c.Reg.SetFlagTo(register.FlagHalfCarry, half)
	c.Reg.SetFlagTo(register.FlagCarry, sum > 0xFFFF)
}
