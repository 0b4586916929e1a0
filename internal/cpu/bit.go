package cpu

import "github.com/thelolagemann/dmgcore/internal/register"

// cbBit tests bit n of v: Z = NOT(bit), N=0, H=1, C is left untouched
// (spec §4.3, §8's "BIT result polarity" note — the correct formulation
// is Z = (operand & (1<<n)) == 0, not a post-shift equality-to-1 check).
func (c *CPU) cbBit(n, v uint8) {
	mask := uint8(1) << n
	c.Reg.SetFlagTo(register.FlagZero, v&mask == 0)
	c.Reg.ClearFlag(register.FlagSubtract)
	c.Reg.SetFlag(register.FlagHalfCarry)
}

// cbRes clears bit n of v. Flags are untouched.
func cbRes(n, v uint8) uint8 {
	return v &^ (1 << n)
}

// cbSet sets bit n of v. Flags are untouched.
func cbSet(n, v uint8) uint8 {
	return v | 1<<n
}
