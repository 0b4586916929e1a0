package cpu

import "fmt"

// UnimplementedOpcodeError is returned when the fetch/decode loop lands on
// an opcode this core does not implement (HALT, STOP, and anything the
// dispatch tables leave as a nil entry).
type UnimplementedOpcodeError struct {
	Opcode uint8
	CB     bool
}

func (e *UnimplementedOpcodeError) Error() string {
	if e.CB {
		return fmt.Sprintf("UnimplementedOpcode(0xCB%02X)", e.Opcode)
	}
	return fmt.Sprintf("UnimplementedOpcode(0x%02X)", e.Opcode)
}
