package cpu

// handler executes one decoded instruction and returns the T-cycles it
// consumed. Conditional branches add their taken-cost delta inline, so
// the return value is the actual cost, not always the table's nominal
// cost.
type handler func(c *CPU) (uint8, error)

// primaryTable and cbTable are the two 256-entry dispatch tables
// spec.md §4.3 requires. cyclesTable and cbCyclesTable hold the nominal
// (not-taken, for branches) T-cycle cost of each opcode, kept separate
// from dispatch so cycle accounting can be tested without executing any
// instruction.
var (
	primaryTable  [256]handler
	cbTable       [256]handler
	cyclesTable   [256]uint8
	cbCyclesTable [256]uint8
)

func reg(opcode uint8, cycles uint8, h handler) {
	primaryTable[opcode] = h
	cyclesTable[opcode] = cycles
}

func regCB(opcode uint8, cycles uint8, h handler) {
	cbTable[opcode] = h
	cbCyclesTable[opcode] = cycles
}

func init() {
	registerMiscPrimary()
	registerLoadGroups()
	registerIncDecGroups()
	registerMoveGroup()
	registerALUGroups()
	registerStackGroups()
	registerControlTransfer()
	registerCBTable()
}

// registerMiscPrimary covers the opcodes that don't fit a regular
// bitfield family: NOP, the accumulator rotate/DAA/CPL/SCF/CCF quartet,
// DI/EI, and the two stack-pointer loads.
func registerMiscPrimary() {
	reg(0x00, 4, func(c *CPU) (uint8, error) { return 4, nil })

	reg(0x07, 4, func(c *CPU) (uint8, error) { c.rlca(); return 4, nil })
	reg(0x0F, 4, func(c *CPU) (uint8, error) { c.rrca(); return 4, nil })
	reg(0x17, 4, func(c *CPU) (uint8, error) { c.rla(); return 4, nil })
	reg(0x1F, 4, func(c *CPU) (uint8, error) { c.rra(); return 4, nil })

	reg(0x27, 4, func(c *CPU) (uint8, error) { c.daa(); return 4, nil })
	reg(0x2F, 4, func(c *CPU) (uint8, error) { c.cpl(); return 4, nil })
	reg(0x37, 4, func(c *CPU) (uint8, error) { c.scf(); return 4, nil })
	reg(0x3F, 4, func(c *CPU) (uint8, error) { c.ccf(); return 4, nil })

	reg(0xF3, 4, func(c *CPU) (uint8, error) { c.IME = false; return 4, nil })
	reg(0xFB, 4, func(c *CPU) (uint8, error) { c.IME = true; return 4, nil })

	reg(0x08, 20, func(c *CPU) (uint8, error) {
		addr, err := c.fetch16()
		if err != nil {
			return 0, err
		}
		if err := c.Mem.WriteByte(addr, uint8(c.Reg.SP)); err != nil {
			return 0, err
		}
		if err := c.Mem.WriteByte(addr+1, uint8(c.Reg.SP>>8)); err != nil {
			return 0, err
		}
		return 20, nil
	})

	reg(0xE8, 16, func(c *CPU) (uint8, error) {
		off, err := c.fetchSigned8()
		if err != nil {
			return 0, err
		}
		c.Reg.SP = c.addSPSigned(off)
		return 16, nil
	})
	reg(0xF8, 12, func(c *CPU) (uint8, error) {
		off, err := c.fetchSigned8()
		if err != nil {
			return 0, err
		}
		c.Reg.SetHL(c.addSPSigned(off))
		return 12, nil
	})
	reg(0xF9, 8, func(c *CPU) (uint8, error) { c.Reg.SP = c.Reg.HL(); return 8, nil })
}

// registerLoadGroups covers 16-bit immediate loads, the general 8-bit
// immediate load family (including LD (HL),d8 at its natural slot
// 0x36), and the accumulator-indirect load/store family.
func registerLoadGroups() {
	for i := uint8(0); i < 4; i++ {
		pair := regPair(i)
		opcode := 0x01 | i<<4
		reg(opcode, 12, func(c *CPU) (uint8, error) {
			nn, err := c.fetch16()
			if err != nil {
				return 0, err
			}
			c.writePair(pair, nn)
			return 12, nil
		})
	}

	for r := uint8(0); r < 8; r++ {
		code := regCode(r)
		opcode := 0x06 + 8*r
		cycles := uint8(8)
		if code == indirectHL {
			cycles = 12
		}
		reg(opcode, cycles, func(c *CPU) (uint8, error) {
			n, err := c.fetch8()
			if err != nil {
				return 0, err
			}
			if err := c.writeOperand(code, n); err != nil {
				return 0, err
			}
			return cycles, nil
		})
	}

	reg(0x0A, 8, func(c *CPU) (uint8, error) {
		v, err := c.Mem.ReadByte(c.Reg.BC())
		if err != nil {
			return 0, err
		}
		c.Reg.A = v
		return 8, nil
	})
	reg(0x1A, 8, func(c *CPU) (uint8, error) {
		v, err := c.Mem.ReadByte(c.Reg.DE())
		if err != nil {
			return 0, err
		}
		c.Reg.A = v
		return 8, nil
	})
	reg(0x22, 8, func(c *CPU) (uint8, error) {
		if err := c.Mem.WriteByte(c.Reg.HL(), c.Reg.A); err != nil {
			return 0, err
		}
		c.Reg.SetHL(c.Reg.HL() + 1)
		return 8, nil
	})
	reg(0x32, 8, func(c *CPU) (uint8, error) {
		if err := c.Mem.WriteByte(c.Reg.HL(), c.Reg.A); err != nil {
			return 0, err
		}
		c.Reg.SetHL(c.Reg.HL() - 1)
		return 8, nil
	})
	reg(0x2A, 8, func(c *CPU) (uint8, error) {
		v, err := c.Mem.ReadByte(c.Reg.HL())
		if err != nil {
			return 0, err
		}
		c.Reg.A = v
		c.Reg.SetHL(c.Reg.HL() + 1)
		return 8, nil
	})
	reg(0x3A, 8, func(c *CPU) (uint8, error) {
		v, err := c.Mem.ReadByte(c.Reg.HL())
		if err != nil {
			return 0, err
		}
		c.Reg.A = v
		c.Reg.SetHL(c.Reg.HL() - 1)
		return 8, nil
	})
	reg(0xFA, 16, func(c *CPU) (uint8, error) {
		nn, err := c.fetch16()
		if err != nil {
			return 0, err
		}
		v, err := c.Mem.ReadByte(nn)
		if err != nil {
			return 0, err
		}
		c.Reg.A = v
		return 16, nil
	})
	reg(0xEA, 16, func(c *CPU) (uint8, error) {
		nn, err := c.fetch16()
		if err != nil {
			return 0, err
		}
		return 16, c.Mem.WriteByte(nn, c.Reg.A)
	})

	reg(0xE0, 12, func(c *CPU) (uint8, error) {
		n, err := c.fetch8()
		if err != nil {
			return 0, err
		}
		return 12, c.Mem.WriteByte(0xFF00+uint16(n), c.Reg.A)
	})
	reg(0xF0, 12, func(c *CPU) (uint8, error) {
		n, err := c.fetch8()
		if err != nil {
			return 0, err
		}
		v, err := c.Mem.ReadByte(0xFF00 + uint16(n))
		if err != nil {
			return 0, err
		}
		c.Reg.A = v
		return 12, nil
	})
	reg(0xE2, 8, func(c *CPU) (uint8, error) {
		return 8, c.Mem.WriteByte(0xFF00+uint16(c.Reg.C), c.Reg.A)
	})
	reg(0xF2, 8, func(c *CPU) (uint8, error) {
		v, err := c.Mem.ReadByte(0xFF00 + uint16(c.Reg.C))
		if err != nil {
			return 0, err
		}
		c.Reg.A = v
		return 8, nil
	})
}

// registerIncDecGroups covers 8-bit and 16-bit INC/DEC.
func registerIncDecGroups() {
	for r := uint8(0); r < 8; r++ {
		code := regCode(r)
		cycles := uint8(4)
		if code == indirectHL {
			cycles = 12
		}
		incOp := 0x04 + 8*r
		decOp := 0x05 + 8*r
		reg(incOp, cycles, func(c *CPU) (uint8, error) {
			v, err := c.readOperand(code)
			if err != nil {
				return 0, err
			}
			return cycles, c.writeOperand(code, c.inc8(v))
		})
		reg(decOp, cycles, func(c *CPU) (uint8, error) {
			v, err := c.readOperand(code)
			if err != nil {
				return 0, err
			}
			return cycles, c.writeOperand(code, c.dec8(v))
		})
	}

	for i := uint8(0); i < 4; i++ {
		pair := regPair(i)
		incOp := 0x03 | i<<4
		decOp := 0x0B | i<<4
		reg(incOp, 8, func(c *CPU) (uint8, error) {
			c.writePair(pair, c.readPair(pair)+1)
			return 8, nil
		})
		reg(decOp, 8, func(c *CPU) (uint8, error) {
			c.writePair(pair, c.readPair(pair)-1)
			return 8, nil
		})

		addOp := 0x09 | i<<4
		reg(addOp, 8, func(c *CPU) (uint8, error) {
			c.addHL(c.readPair(pair))
			return 8, nil
		})
	}
}

// registerMoveGroup covers the $40-$7F register-to-register move block,
// excluding $76 (HALT), which is left unimplemented per spec.md §4.3.
func registerMoveGroup() {
	for opcode := 0x40; opcode <= 0x7F; opcode++ {
		if opcode == 0x76 {
			continue
		}
		op := uint8(opcode)
		dst := regCode(op >> 3 & 7)
		src := regCode(op & 7)
		cycles := uint8(4)
		if dst == indirectHL || src == indirectHL {
			cycles = 8
		}
		reg(op, cycles, func(c *CPU) (uint8, error) {
			v, err := c.readOperand(src)
			if err != nil {
				return 0, err
			}
			return cycles, c.writeOperand(dst, v)
		})
	}
}

// registerALUGroups covers the register/HL-indirect and immediate forms
// of ADD/ADC/SUB/SBC/AND/XOR/OR/CP.
func registerALUGroups() {
	for opcode := 0x80; opcode <= 0xBF; opcode++ {
		op := uint8(opcode)
		aluOp := op >> 3 & 7
		src := regCode(op & 7)
		cycles := uint8(4)
		if src == indirectHL {
			cycles = 8
		}
		reg(op, cycles, func(c *CPU) (uint8, error) {
			v, err := c.readOperand(src)
			if err != nil {
				return 0, err
			}
			c.alu8(aluOp, v)
			return cycles, nil
		})
	}

	for k := uint8(0); k < 8; k++ {
		aluOp := k
		opcode := 0xC6 + 8*k
		reg(opcode, 8, func(c *CPU) (uint8, error) {
			n, err := c.fetch8()
			if err != nil {
				return 0, err
			}
			c.alu8(aluOp, n)
			return 8, nil
		})
	}
}

// registerStackGroups covers PUSH/POP and RST.
func registerStackGroups() {
	for i := uint8(0); i < 4; i++ {
		pair := regPair(i)
		pushOp := 0xC5 | i<<4
		popOp := 0xC1 | i<<4
		reg(pushOp, 16, func(c *CPU) (uint8, error) {
			hi, lo := c.readStackPair(pair)
			return 16, c.push(hi, lo)
		})
		reg(popOp, 12, func(c *CPU) (uint8, error) {
			hi, lo, err := c.pop()
			if err != nil {
				return 0, err
			}
			c.writeStackPair(pair, hi, lo)
			return 12, nil
		})
	}

	for i := uint8(0); i < 8; i++ {
		target := uint16(i) * 8
		opcode := 0xC7 | i<<3
		reg(opcode, 16, func(c *CPU) (uint8, error) {
			if err := c.push(uint8(c.Reg.PC>>8), uint8(c.Reg.PC)); err != nil {
				return 0, err
			}
			c.Reg.PC = target
			return 16, nil
		})
	}
}

// registerControlTransfer covers JR, JP, CALL and RET in both their
// conditional and unconditional forms.
func registerControlTransfer() {
	reg(0x18, 12, func(c *CPU) (uint8, error) {
		off, err := c.fetchSigned8()
		if err != nil {
			return 0, err
		}
		c.Reg.PC = uint16(int32(c.Reg.PC) + int32(off))
		return 12, nil
	})
	for cc := uint8(0); cc < 4; cc++ {
		opcode := 0x20 | cc<<3
		reg(opcode, 8, func(c *CPU) (uint8, error) {
			off, err := c.fetchSigned8()
			if err != nil {
				return 0, err
			}
			if c.condition(cc) {
				c.Reg.PC = uint16(int32(c.Reg.PC) + int32(off))
				return 12, nil
			}
			return 8, nil
		})
	}

	reg(0xC3, 16, func(c *CPU) (uint8, error) {
		nn, err := c.fetch16()
		if err != nil {
			return 0, err
		}
		c.Reg.PC = nn
		return 16, nil
	})
	reg(0xE9, 4, func(c *CPU) (uint8, error) { c.Reg.PC = c.Reg.HL(); return 4, nil })
	for cc := uint8(0); cc < 4; cc++ {
		opcode := 0xC2 | cc<<3
		reg(opcode, 12, func(c *CPU) (uint8, error) {
			nn, err := c.fetch16()
			if err != nil {
				return 0, err
			}
			if c.condition(cc) {
				c.Reg.PC = nn
				return 16, nil
			}
			return 12, nil
		})
	}

	reg(0xCD, 24, func(c *CPU) (uint8, error) {
		nn, err := c.fetch16()
		if err != nil {
			return 0, err
		}
		if err := c.push(uint8(c.Reg.PC>>8), uint8(c.Reg.PC)); err != nil {
			return 0, err
		}
		c.Reg.PC = nn
		return 24, nil
	})
	for cc := uint8(0); cc < 4; cc++ {
		opcode := 0xC4 | cc<<3
		reg(opcode, 12, func(c *CPU) (uint8, error) {
			nn, err := c.fetch16()
			if err != nil {
				return 0, err
			}
			if c.condition(cc) {
				if err := c.push(uint8(c.Reg.PC>>8), uint8(c.Reg.PC)); err != nil {
					return 0, err
				}
				c.Reg.PC = nn
				return 24, nil
			}
			return 12, nil
		})
	}

	reg(0xC9, 16, func(c *CPU) (uint8, error) {
		hi, lo, err := c.pop()
		if err != nil {
			return 0, err
		}
		c.Reg.PC = uint16(hi)<<8 | uint16(lo)
		return 16, nil
	})
	reg(0xD9, 16, func(c *CPU) (uint8, error) {
		hi, lo, err := c.pop()
		if err != nil {
			return 0, err
		}
		c.Reg.PC = uint16(hi)<<8 | uint16(lo)
		c.IME = true
		return 16, nil
	})
	for cc := uint8(0); cc < 4; cc++ {
		opcode := 0xC0 | cc<<3
		reg(opcode, 8, func(c *CPU) (uint8, error) {
			if c.condition(cc) {
				hi, lo, err := c.pop()
				if err != nil {
					return 0, err
				}
				c.Reg.PC = uint16(hi)<<8 | uint16(lo)
				return 20, nil
			}
			return 8, nil
		})
	}
}

// registerCBTable builds the fully dense CB-prefixed table: rotate/shift
// ($00-$3F), BIT ($40-$7F), RES ($80-$BF), SET ($C0-$FF), each keyed by
// the canonical 3-bit register code in bits 2:0.
func registerCBTable() {
	for opcode := 0; opcode < 256; opcode++ {
		op := uint8(opcode)
		src := regCode(op & 7)
		n := op >> 3 & 7

		switch op >> 6 & 3 {
		case 0:
			rsOp := n
			cycles := uint8(8)
			if src == indirectHL {
				cycles = 16
			}
			regCB(op, cycles, func(c *CPU) (uint8, error) {
				v, err := c.readOperand(src)
				if err != nil {
					return 0, err
				}
				return cycles, c.writeOperand(src, c.cbRotateShift(rsOp, v))
			})
		case 1:
			cycles := uint8(8)
			if src == indirectHL {
				cycles = 12
			}
			regCB(op, cycles, func(c *CPU) (uint8, error) {
				v, err := c.readOperand(src)
				if err != nil {
					return 0, err
				}
				c.cbBit(n, v)
				return cycles, nil
			})
		case 2:
			cycles := uint8(8)
			if src == indirectHL {
				cycles = 16
			}
			regCB(op, cycles, func(c *CPU) (uint8, error) {
				v, err := c.readOperand(src)
				if err != nil {
					return 0, err
				}
				return cycles, c.writeOperand(src, cbRes(n, v))
			})
		default:
			cycles := uint8(8)
			if src == indirectHL {
				cycles = 16
			}
			regCB(op, cycles, func(c *CPU) (uint8, error) {
				v, err := c.readOperand(src)
				if err != nil {
					return 0, err
				}
				return cycles, c.writeOperand(src, cbSet(n, v))
			})
		}
	}
}
