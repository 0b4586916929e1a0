package cpu

import (
	"errors"
	"testing"
)

// fakeMemory is a flat 64KiB byte slice implementing Memory, used to
// drive the CPU in isolation from the real bus.
type fakeMemory struct {
	data [0x10000]byte
}

func (m *fakeMemory) ReadByte(addr uint16) (uint8, error) { return m.data[addr], nil }
func (m *fakeMemory) WriteByte(addr uint16, v uint8) error {
	m.data[addr] = v
	return nil
}

func (m *fakeMemory) loadAt(addr uint16, bytes ...byte) {
	copy(m.data[addr:], bytes)
}

func newTestCPU() (*CPU, *fakeMemory) {
	mem := &fakeMemory{}
	return New(mem), mem
}

func TestFlagLowNibbleAlwaysZero(t *testing.T) {
	c, _ := newTestCPU()
	for v := 0; v < 256; v++ {
		c.Reg.F = uint8(v)
		c.Reg.SetAF(c.Reg.AF())
		if c.Reg.F&0x0F != 0 {
			t.Fatalf("F&0x0F = 0x%02X after round trip of 0x%02X", c.Reg.F&0x0F, v)
		}
	}
}

func TestRegisterPairRoundTrip(t *testing.T) {
	c, _ := newTestCPU()
	for _, v := range []uint16{0x0000, 0x1234, 0xFFFF, 0xABCD} {
		c.Reg.SetBC(v)
		if c.Reg.BC() != v {
			t.Errorf("BC round trip: got 0x%04X, want 0x%04X", c.Reg.BC(), v)
		}
		c.Reg.SetDE(v)
		if c.Reg.DE() != v {
			t.Errorf("DE round trip: got 0x%04X, want 0x%04X", c.Reg.DE(), v)
		}
		c.Reg.SetHL(v)
		if c.Reg.HL() != v {
			t.Errorf("HL round trip: got 0x%04X, want 0x%04X", c.Reg.HL(), v)
		}
		c.Reg.SetAF(v)
		if want := v & 0xFFF0; c.Reg.AF() != want {
			t.Errorf("AF round trip: got 0x%04X, want 0x%04X", c.Reg.AF(), want)
		}
	}
}

func TestLDSPImmediate(t *testing.T) {
	c, mem := newTestCPU()
	mem.loadAt(0x0000, 0x31, 0xFE, 0xFF)
	cycles, err := c.Step()
	if err != nil {
		t.Fatal(err)
	}
	if c.Reg.SP != 0xFFFE {
		t.Errorf("SP = 0x%04X, want 0xFFFE", c.Reg.SP)
	}
	if c.Reg.PC != 3 {
		t.Errorf("PC = %d, want 3", c.Reg.PC)
	}
	if cycles != 12 {
		t.Errorf("cycles = %d, want 12", cycles)
	}
}

func TestXorA(t *testing.T) {
	c, mem := newTestCPU()
	c.Reg.A = 0x42
	mem.loadAt(0x0000, 0xAF)
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Reg.A != 0 {
		t.Errorf("A = 0x%02X, want 0", c.Reg.A)
	}
	if c.Reg.F != 0b1000_0000 {
		t.Errorf("F = 0b%08b, want 0b10000000", c.Reg.F)
	}
}

func TestSubAA(t *testing.T) {
	c, mem := newTestCPU()
	c.Reg.A = 0x37
	mem.loadAt(0x0000, 0x97) // SUB A,A
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Reg.A != 0 {
		t.Errorf("A = 0x%02X, want 0", c.Reg.A)
	}
	wantZ, wantN, wantH, wantC := true, true, false, false
	if c.Reg.HasFlag(0x80) != wantZ || c.Reg.HasFlag(0x40) != wantN ||
		c.Reg.HasFlag(0x20) != wantH || c.Reg.HasFlag(0x10) != wantC {
		t.Errorf("flags = 0b%08b, want Z=1 N=1 H=0 C=0", c.Reg.F)
	}
}

func TestIncDecRestoresRegisterAndPreservesCarry(t *testing.T) {
	c, mem := newTestCPU()
	c.Reg.B = 0x0F
	c.Reg.F = 0x10 // carry set beforehand
	mem.loadAt(0x0000, 0x04, 0x05) // INC B; DEC B
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Reg.B != 0x10 {
		t.Fatalf("after INC, B = 0x%02X, want 0x10", c.Reg.B)
	}
	if !c.Reg.HasFlag(0x20) {
		t.Fatalf("H not set after INC 0x0F")
	}
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Reg.B != 0x0F {
		t.Fatalf("after DEC, B = 0x%02X, want 0x0F", c.Reg.B)
	}
	if !c.Reg.HasFlag(0x10) {
		t.Fatalf("carry flag was disturbed by INC/DEC")
	}
}

func TestPushPopRoundTrip(t *testing.T) {
	c, mem := newTestCPU()
	c.Reg.SP = 0xFFFE
	c.Reg.SetBC(0x1234)
	mem.loadAt(0x0000, 0xC5, 0xC1) // PUSH BC; POP BC
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Reg.SP != 0xFFFC {
		t.Fatalf("SP after PUSH = 0x%04X, want 0xFFFC", c.Reg.SP)
	}
	if got, err := mem.ReadByte(0xFFFD); err != nil || got != 0x12 {
		t.Fatalf("stack[SP+1] = 0x%02X, want 0x12 (high byte)", got)
	}
	if got, err := mem.ReadByte(0xFFFC); err != nil || got != 0x34 {
		t.Fatalf("stack[SP] = 0x%02X, want 0x34 (low byte)", got)
	}
	c.Reg.SetBC(0x0000)
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Reg.BC() != 0x1234 {
		t.Fatalf("BC after POP = 0x%04X, want 0x1234", c.Reg.BC())
	}
	if c.Reg.SP != 0xFFFE {
		t.Fatalf("SP after POP = 0x%04X, want 0xFFFE", c.Reg.SP)
	}
}

func TestCallRetRoundTrip(t *testing.T) {
	c, mem := newTestCPU()
	c.Reg.SP = 0xFFFE
	c.Reg.PC = 0x0150
	mem.loadAt(0x0150, 0xCD, 0x00, 0x02) // CALL $0200
	mem.loadAt(0x0200, 0xC9)             // RET

	cycles, err := c.Step()
	if err != nil {
		t.Fatal(err)
	}
	if cycles != 24 {
		t.Errorf("CALL cycles = %d, want 24", cycles)
	}
	if c.Reg.PC != 0x0200 {
		t.Fatalf("PC after CALL = 0x%04X, want 0x0200", c.Reg.PC)
	}
	if c.Reg.SP != 0xFFFC {
		t.Fatalf("SP after CALL = 0x%04X, want 0xFFFC", c.Reg.SP)
	}
	hi, _ := mem.ReadByte(0xFFFD)
	lo, _ := mem.ReadByte(0xFFFC)
	if hi != 0x01 || lo != 0x53 {
		t.Fatalf("return address on stack = %02X%02X, want 0153", hi, lo)
	}

	cycles, err = c.Step()
	if err != nil {
		t.Fatal(err)
	}
	if cycles != 16 {
		t.Errorf("RET cycles = %d, want 16", cycles)
	}
	if c.Reg.PC != 0x0153 {
		t.Fatalf("PC after RET = 0x%04X, want 0x0153", c.Reg.PC)
	}
	if c.Reg.SP != 0xFFFE {
		t.Fatalf("SP after RET = 0x%04X, want 0xFFFE", c.Reg.SP)
	}
}

func TestJRNotTakenAndTaken(t *testing.T) {
	c, mem := newTestCPU()
	c.Reg.F = 0x80 // Z=1
	mem.loadAt(0x0000, 0x20, 0x05) // JR NZ,+5
	cycles, err := c.Step()
	if err != nil {
		t.Fatal(err)
	}
	if cycles != 8 || c.Reg.PC != 2 {
		t.Fatalf("not-taken JR: cycles=%d PC=0x%04X, want 8, 0x0002", cycles, c.Reg.PC)
	}

	c.Reg.PC = 0
	c.Reg.F = 0 // Z=0
	cycles, err = c.Step()
	if err != nil {
		t.Fatal(err)
	}
	if cycles != 12 || c.Reg.PC != 7 {
		t.Fatalf("taken JR: cycles=%d PC=0x%04X, want 12, 0x0007", cycles, c.Reg.PC)
	}
}

func TestRLCAThenRRCARestoresA(t *testing.T) {
	c, mem := newTestCPU()
	c.Reg.A = 0b1001_0110
	mem.loadAt(0x0000, 0x07, 0x0F) // RLCA; RRCA
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if !c.Reg.HasFlag(0x10) {
		t.Fatalf("carry not set after RLCA on a value with bit 7 set")
	}
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Reg.A != 0b1001_0110 {
		t.Fatalf("A = 0b%08b after RLCA;RRCA, want original value restored", c.Reg.A)
	}
}

func TestCBBitPolarity(t *testing.T) {
	c, mem := newTestCPU()
	c.Reg.H = 0b1000_0000
	c.Reg.F = 0x10 // carry set, must survive BIT
	mem.loadAt(0x0000, 0xCB, 0x7C) // BIT 7,H
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Reg.HasFlag(0x80) {
		t.Fatalf("Z set, want clear: bit 7 of H is 1")
	}
	if c.Reg.HasFlag(0x40) {
		t.Fatalf("N set, want clear")
	}
	if !c.Reg.HasFlag(0x20) {
		t.Fatalf("H not set, want set")
	}
	if !c.Reg.HasFlag(0x10) {
		t.Fatalf("C disturbed by BIT, want unchanged (still set)")
	}
}

func TestCBBitZeroWhenBitClear(t *testing.T) {
	c, mem := newTestCPU()
	c.Reg.H = 0b0000_0000
	mem.loadAt(0x0000, 0xCB, 0x7C) // BIT 7,H
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if !c.Reg.HasFlag(0x80) {
		t.Fatalf("Z clear, want set: bit 7 of H is 0")
	}
}

func TestHALTIsUnimplemented(t *testing.T) {
	c, mem := newTestCPU()
	mem.loadAt(0x0000, 0x76)
	_, err := c.Step()
	var uErr *UnimplementedOpcodeError
	if !errors.As(err, &uErr) {
		t.Fatalf("err = %v, want *UnimplementedOpcodeError", err)
	}
	if uErr.Opcode != 0x76 || uErr.CB {
		t.Fatalf("err = %+v, want Opcode=0x76 CB=false", uErr)
	}
}

func TestSTOPIsUnimplemented(t *testing.T) {
	c, mem := newTestCPU()
	mem.loadAt(0x0000, 0x10)
	if _, err := c.Step(); err == nil {
		t.Fatal("expected UnimplementedOpcodeError for STOP")
	}
}

func TestSWAPClearsCarry(t *testing.T) {
	c, mem := newTestCPU()
	c.Reg.A = 0xF0
	c.Reg.F = 0x10 // carry set beforehand, SWAP must clear it
	mem.loadAt(0x0000, 0xCB, 0x37) // SWAP A
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Reg.A != 0x0F {
		t.Fatalf("A = 0x%02X after SWAP, want 0x0F", c.Reg.A)
	}
	if c.Reg.HasFlag(0x10) {
		t.Fatalf("carry not cleared by SWAP")
	}
}

func TestJPAbsolute(t *testing.T) {
	c, mem := newTestCPU()
	mem.loadAt(0x0000, 0xC3, 0x50, 0x01) // JP $0150
	cycles, err := c.Step()
	if err != nil {
		t.Fatal(err)
	}
	if cycles != 16 || c.Reg.PC != 0x0150 {
		t.Fatalf("cycles=%d PC=0x%04X, want 16, 0x0150", cycles, c.Reg.PC)
	}
}

func TestBootEntryPointJumpsIntoCartridge(t *testing.T) {
	// The conventional DMG boot ROM's final instruction is JP $0150,
	// encoded as the cartridge's own entry point bytes {0x00, 0xC3,
	// 0x50, 0x01}: a leading NOP followed by an absolute jump.
	c, mem := newTestCPU()
	mem.loadAt(0x0100, 0x00, 0xC3, 0x50, 0x01)
	c.Reg.PC = 0x0100
	if _, err := c.Step(); err != nil { // NOP
		t.Fatal(err)
	}
	if _, err := c.Step(); err != nil { // JP $0150
		t.Fatal(err)
	}
	if c.Reg.PC != 0x0150 {
		t.Fatalf("PC = 0x%04X, want 0x0150", c.Reg.PC)
	}
}

func TestANDSetsHalfCarry(t *testing.T) {
	c, mem := newTestCPU()
	c.Reg.A = 0xFF
	mem.loadAt(0x0000, 0xE6, 0x0F) // AND $0F
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Reg.A != 0x0F {
		t.Fatalf("A = 0x%02X, want 0x0F", c.Reg.A)
	}
	if !c.Reg.HasFlag(0x20) {
		t.Fatalf("H not set after AND, want set")
	}
	if c.Reg.HasFlag(0x10) {
		t.Fatalf("C set after AND, want clear")
	}
}

func TestADCIncludesCarryIn(t *testing.T) {
	c, mem := newTestCPU()
	c.Reg.A = 0x0F
	c.Reg.F = 0x10 // carry set
	mem.loadAt(0x0000, 0xCE, 0x01) // ADC $01
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Reg.A != 0x11 {
		t.Fatalf("A = 0x%02X, want 0x11 (0x0F+0x01+carry)", c.Reg.A)
	}
	if !c.Reg.HasFlag(0x20) {
		t.Fatalf("H not set, want set (nibble carry from 0xF+0x1+1)")
	}
}

func TestLoadRegisterToRegister(t *testing.T) {
	c, mem := newTestCPU()
	c.Reg.B = 0x99
	mem.loadAt(0x0000, 0x78) // LD A,B
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Reg.A != 0x99 {
		t.Fatalf("A = 0x%02X, want 0x99", c.Reg.A)
	}
}

func TestIndirectHLLoadAndStore(t *testing.T) {
	c, mem := newTestCPU()
	c.Reg.SetHL(0xC000)
	mem.loadAt(0xC000, 0x77)
	mem.loadAt(0x0000, 0x70) // LD (HL),B at PC=0, reading B into (HL)
	c.Reg.B = 0x55
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	got, err := mem.ReadByte(0xC000)
	if err != nil || got != 0x55 {
		t.Fatalf("(HL) = 0x%02X, want 0x55", got)
	}
}

func TestUnimplementedCBOpcodeNeverHappens(t *testing.T) {
	// The CB table is fully dense (every opcode is a rotate/shift, BIT,
	// RES or SET), so no CB opcode should ever dispatch to a nil handler.
	for i := 0; i < 256; i++ {
		if cbTable[i] == nil {
			t.Fatalf("cbTable[0x%02X] is nil; CB table must be fully dense", i)
		}
	}
}

func TestCyclesTableIndependentOfDispatch(t *testing.T) {
	if cyclesTable[0x00] != 4 {
		t.Errorf("cyclesTable[NOP] = %d, want 4", cyclesTable[0x00])
	}
	if cyclesTable[0x31] != 12 {
		t.Errorf("cyclesTable[LD SP,d16] = %d, want 12", cyclesTable[0x31])
	}
	if cbCyclesTable[0x7C] != 8 {
		t.Errorf("cbCyclesTable[BIT 7,H] = %d, want 8", cbCyclesTable[0x7C])
	}
}
