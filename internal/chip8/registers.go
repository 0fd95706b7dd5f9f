package chip8

const (
	// NumRegisters is the number of general purpose registers.
	NumRegisters = 16

	// FlagRegister is the index of VF, the implicit flag register
	// overwritten by arithmetic, shift and draw instructions.
	FlagRegister = 0xF

	// StackDepth is the maximum call nesting depth.
	StackDepth = 16
)

// Registers holds the general purpose registers V0-VF, the index
// register I and the program counter PC. I is effectively 12 bit wide,
// PC always points at the next instruction word to fetch.
type Registers struct {
	V  [NumRegisters]byte
	I  uint16
	PC uint16
}

func newRegisters() Registers {
	return Registers{PC: ProgramStart}
}

// Stack holds up to 16 return addresses for nested subroutine calls.
type Stack struct {
	frames [StackDepth]uint16
	sp     int
}

// Push stores a return address on the stack.
func (s *Stack) Push(address uint16) error {
	if s.sp == StackDepth {
		return ErrStackOverflow
	}
	s.frames[s.sp] = address
	s.sp++
	return nil
}

// Pop removes and returns the most recently pushed return address.
func (s *Stack) Pop() (uint16, error) {
	if s.sp == 0 {
		return 0, ErrStackUnderflow
	}
	s.sp--
	return s.frames[s.sp], nil
}

// Depth returns the current call nesting depth.
func (s *Stack) Depth() int {
	return s.sp
}
