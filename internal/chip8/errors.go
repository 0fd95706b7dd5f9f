package chip8

import (
	"errors"
	"fmt"
)

// Sentinel errors for the fixed-capacity machine resources.
var (
	// ErrProgramTooLarge is returned when a program does not fit into memory.
	ErrProgramTooLarge = errors.New("program does not fit into memory")

	// ErrStackOverflow is returned by a CALL beyond the maximum nesting depth.
	ErrStackOverflow = errors.New("call stack overflow")

	// ErrStackUnderflow is returned by a RET with an empty call stack.
	ErrStackUnderflow = errors.New("call stack underflow")
)

// MemoryFaultError is returned when an address outside the 4KB address
// space is reached by a fetch, read or write. Valid programs never trigger
// it, so it usually indicates a broken program or an engine bug.
type MemoryFaultError struct {
	Address uint16
}

func (e *MemoryFaultError) Error() string {
	return fmt.Sprintf("memory access out of range: $%04X", e.Address)
}

// UnknownOpcodeError is returned when a fetched word matches no known
// instruction encoding. The driver decides whether to treat it as fatal,
// see Options.Strict.
type UnknownOpcodeError struct {
	Opcode uint16
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode: $%04X", e.Opcode)
}
