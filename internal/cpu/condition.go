package cpu

import "github.com/thelolagemann/dmgcore/internal/register"

// condition evaluates the 2-bit branch condition field shared by JR,
// JP, CALL and RET: 0=NZ, 1=Z, 2=NC, 3=C.
func (c *CPU) condition(cc uint8) bool {
	switch cc & 3 {
	case 0:
		return !c.Reg.HasFlag(register.FlagZero)
	case 1:
		return c.Reg.HasFlag(register.FlagZero)
	case 2:
		return !c.Reg.HasFlag(register.FlagCarry)
	default:
		return c.Reg.HasFlag(register.FlagCarry)
	}
}
