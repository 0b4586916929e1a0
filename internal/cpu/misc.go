package cpu

import "github.com/thelolagemann/dmgcore/internal/register"

// daa adjusts A into packed BCD after an ADD/ADC/SUB/SBC, following the
// N/H/C flags those ops left behind. Not named by the spec's
// instruction-class list but required for any complete accumulator
// family; supplemented from the source's DAA table.
func (c *CPU) daa() {
	a := c.Reg.A
	var adjust uint8
	carry := c.Reg.HasFlag(register.FlagCarry)

	if c.Reg.HasFlag(register.FlagSubtract) {
		if c.Reg.HasFlag(register.FlagHalfCarry) {
			adjust += 0x06
		}
		if carry {
			adjust += 0x60
		}
		a -= adjust
	} else {
		if c.Reg.HasFlag(register.FlagHalfCarry) || a&0xF > 0x9 {
			adjust += 0x06
		}
		if carry || a > 0x99 {
			adjust += 0x60
			carry = true
		}
		a += adjust
	}

	c.Reg.A = a
	c.Reg.ClearFlag(register.FlagHalfCarry)
	c.Reg.SetFlagTo(register.FlagZero, a == 0)
	c.Reg.SetFlagTo(register.FlagCarry, carry)
}

// cpl computes A := ~A. Z and C are untouched; N and H are always set.
func (c *CPU) cpl() {
	c.Reg.A = ^c.Reg.A
	c.Reg.SetFlag(register.FlagSubtract)
	c.Reg.SetFlag(register.FlagHalfCarry)
}

// scf sets the carry flag. N and H are always cleared; Z is untouched.
func (c *CPU) scf() {
	c.Reg.ClearFlag(register.FlagSubtract)
	c.Reg.ClearFlag(register.FlagHalfCarry)
	c.Reg.SetFlag(register.FlagCarry)
}

// ccf complements the carry flag. N and H are always cleared; Z is
// untouched.
func (c *CPU) ccf() {
	c.Reg.ClearFlag(register.FlagSubtract)
	c.Reg.ClearFlag(register.FlagHalfCarry)
	c.Reg.SetFlagTo(register.FlagCarry, !c.Reg.HasFlag(register.FlagCarry))
}

// addSPSigned computes SP + off, the shared arithmetic behind ADD SP,r8
// and LD HL,SP+r8. Z and N are always cleared; H/C are computed as an
// unsigned byte add against SP's low byte, matching the hardware
// quirk that these flags ignore the operand's sign.
func (c *CPU) addSPSigned(off int8) uint16 {
	sp := c.Reg.SP
	uoff := uint16(uint8(off))
	result := uint16(int32(sp) + int32(off))

	c.Reg.F = 0
	c.Reg.SetFlagTo(register.FlagHalfCarry, (sp&0xF)+(uoff&0xF) > 0xF)
	c.Reg.SetFlagTo(register.FlagCarry, (sp&0xFF)+(uoff&0xFF) > 0xFF)
	return result
}
