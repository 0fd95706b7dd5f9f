// Package chip8 implements the CHIP-8 virtual machine core. It interprets
// the fixed 36 variant instruction set of the 8-bit CHIP-8 architecture:
// 16-bit big-endian instruction words are fetched from a 4KB memory,
// decoded into a closed instruction variant and applied to the machine
// state consisting of registers, call stack, timers, a monochrome
// framebuffer and a 16-key input latch.
//
// The core is single-threaded and step-driven: an external driver calls
// Cycle to execute exactly one instruction and, on an independent 60 Hz
// cadence, TickTimers. The core never sleeps, spins or performs I/O.
package chip8

import (
	"math/rand"
	"time"
)

// Options configures a System. The zero value is a usable default:
// lenient unknown-opcode handling, modern shift behavior, no tracing
// and a time-seeded random source.
type Options struct {
	// Strict leaves PC on a word that matches no known encoding.
	// In lenient mode the engine skips the word by advancing PC by 2
	// before surfacing the error, so the driver can log and continue.
	Strict bool

	// ShiftSourceY enables the historical shift behavior that reads VY
	// instead of VX for SHR and SHL.
	ShiftSourceY bool

	// Tracer receives a structured record per executed instruction.
	Tracer Tracer

	// Rand is the random source for the RND instruction.
	Rand *rand.Rand
}

// System is one CHIP-8 machine instance. Memory and registers are
// zero-initialized, the font table is loaded at construction and a
// program is copied in once, there is no re-initialization. The machine
// has no halt instruction, it runs until the driver stops calling Cycle
// or a fatal error is returned.
type System struct {
	Memory    Memory
	Registers Registers
	Stack     Stack
	Timers    Timers
	Keypad    Keypad
	Display   Display

	strict       bool
	shiftSourceY bool
	tracer       Tracer
	rng          *rand.Rand

	// wait-for-key suspension state, entered by LD Vx, K
	waiting    bool
	waitTarget uint8
	waitEvents uint64
}

// New returns a new machine with the font table loaded.
func New(opts Options) *System {
	sys := &System{
		Registers:    newRegisters(),
		strict:       opts.Strict,
		shiftSourceY: opts.ShiftSourceY,
		tracer:       opts.Tracer,
		rng:          opts.Rand,
	}
	if sys.tracer == nil {
		sys.tracer = nopTracer{}
	}
	if sys.rng == nil {
		sys.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	sys.Memory.LoadFontSet()
	return sys
}

// LoadProgram copies the program bytes into memory at ProgramStart.
func (s *System) LoadProgram(program []byte) error {
	return s.Memory.LoadProgram(program, ProgramStart)
}

// TickTimers decrements the delay and sound timers, clamped at zero.
// It is driven at a fixed 60 Hz cadence, independent of Cycle.
func (s *System) TickTimers() {
	s.Timers.Tick()
}

// Waiting reports whether the machine is suspended in the wait-for-key
// state entered by LD Vx, K.
func (s *System) Waiting() bool {
	return s.waiting
}

// Cycle fetches, decodes and executes exactly one instruction and
// returns. While the machine waits for a key it fetches nothing and
// changes no state, it only checks whether a key-down event has been
// delivered since the wait began and resolves the wait on the first one.
func (s *System) Cycle() error {
	if s.waiting {
		s.resolveWait()
		return nil
	}

	pc := s.Registers.PC
	word, err := s.fetch()
	if err != nil {
		return err
	}

	in := Decode(word)
	if err := s.execute(in); err != nil {
		return err
	}

	s.tracer.Trace(Step{
		PC:       pc,
		Opcode:   word,
		Mnemonic: in.Mnemonic(),
		NextPC:   s.Registers.PC,
	})
	return nil
}

// fetch reads the big-endian instruction word at PC.
func (s *System) fetch() (uint16, error) {
	hi, err := s.Memory.ReadByte(s.Registers.PC)
	if err != nil {
		return 0, err
	}
	lo, err := s.Memory.ReadByte(s.Registers.PC + 1)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// resolveWait finishes the wait-for-key state once a key-down event has
// been delivered since the wait began.
func (s *System) resolveWait() {
	if s.Keypad.eventCount() == s.waitEvents {
		return
	}
	s.Registers.V[s.waitTarget] = s.Keypad.lastPressed()
	s.Registers.PC += opcodeSize
	s.waiting = false
}

// execute applies one decoded instruction to the machine state.
// Every instruction advances PC by 2 unless noted otherwise.
func (s *System) execute(in Instruction) error {
	r := &s.Registers

	switch in.Op {
	case OpCls:
		s.Display.Clear()
		r.PC += opcodeSize

	case OpRet:
		address, err := s.Stack.Pop()
		if err != nil {
			return err
		}
		r.PC = address

	case OpJp:
		r.PC = in.NNN

	case OpCall:
		// the pushed return address points behind the CALL instruction
		if err := s.Stack.Push(r.PC + opcodeSize); err != nil {
			return err
		}
		r.PC = in.NNN

	case OpSeByte:
		s.skipIf(r.V[in.X] == in.NN)

	case OpSneByte:
		s.skipIf(r.V[in.X] != in.NN)

	case OpSeReg:
		s.skipIf(r.V[in.X] == r.V[in.Y])

	case OpSneReg:
		s.skipIf(r.V[in.X] != r.V[in.Y])

	case OpLdByte:
		r.V[in.X] = in.NN
		r.PC += opcodeSize

	case OpAddByte:
		r.V[in.X] += in.NN // wraps mod 256, no carry flag
		r.PC += opcodeSize

	case OpLdReg:
		r.V[in.X] = r.V[in.Y]
		r.PC += opcodeSize

	case OpOr:
		r.V[in.X] |= r.V[in.Y]
		r.PC += opcodeSize

	case OpAnd:
		r.V[in.X] &= r.V[in.Y]
		r.PC += opcodeSize

	case OpXor:
		r.V[in.X] ^= r.V[in.Y]
		r.PC += opcodeSize

	case OpAddReg, OpSub, OpSubn, OpShr, OpShl:
		s.executeArithmetic(in)
		r.PC += opcodeSize

	case OpLdI:
		r.I = in.NNN
		r.PC += opcodeSize

	case OpJpV0:
		r.PC = in.NNN + uint16(r.V[0])

	case OpRnd:
		r.V[in.X] = uint8(s.rng.Intn(256)) & in.NN
		r.PC += opcodeSize

	case OpDrw:
		if err := s.draw(in); err != nil {
			return err
		}
		r.PC += opcodeSize

	case OpSkp:
		s.skipIf(s.Keypad.Pressed(r.V[in.X] & 0x0F))

	case OpSknp:
		s.skipIf(!s.Keypad.Pressed(r.V[in.X] & 0x0F))

	case OpLdDelay:
		r.V[in.X] = s.Timers.Delay
		r.PC += opcodeSize

	case OpLdKey:
		// suspend, PC stays on this instruction until a key arrives
		s.waiting = true
		s.waitTarget = in.X
		s.waitEvents = s.Keypad.eventCount()

	case OpStDelay:
		s.Timers.Delay = r.V[in.X]
		r.PC += opcodeSize

	case OpStSound:
		s.Timers.Sound = r.V[in.X]
		r.PC += opcodeSize

	case OpAddI:
		// I wraps at 12 bits, keeping derived addresses in range
		r.I = (r.I + uint16(r.V[in.X])) & 0x0FFF
		r.PC += opcodeSize

	case OpLdFont:
		r.I = FontBase + uint16(r.V[in.X]&0x0F)*glyphSize
		r.PC += opcodeSize

	case OpLdBcd:
		if err := s.storeBCD(r.V[in.X]); err != nil {
			return err
		}
		r.PC += opcodeSize

	case OpStRegs:
		for i := uint16(0); i <= uint16(in.X); i++ {
			if err := s.Memory.WriteByte(r.I+i, r.V[i]); err != nil {
				return err
			}
		}
		r.PC += opcodeSize // I unchanged

	case OpLdRegs:
		for i := uint16(0); i <= uint16(in.X); i++ {
			value, err := s.Memory.ReadByte(r.I + i)
			if err != nil {
				return err
			}
			r.V[i] = value
		}
		r.PC += opcodeSize // I unchanged

	default:
		if !s.strict {
			r.PC += opcodeSize
		}
		return &UnknownOpcodeError{Opcode: in.Opcode}
	}

	return nil
}

// skipIf advances PC by 4 when the condition holds, by 2 otherwise.
func (s *System) skipIf(condition bool) {
	if condition {
		s.Registers.PC += 2 * opcodeSize
	} else {
		s.Registers.PC += opcodeSize
	}
}

// executeArithmetic handles the 0x8 family operations that overwrite VF.
// The flag is written before the result, both computed from the operand
// values captured before any register is modified.
func (s *System) executeArithmetic(in Instruction) {
	r := &s.Registers
	x := r.V[in.X]
	y := r.V[in.Y]

	switch in.Op {
	case OpAddReg:
		sum := uint16(x) + uint16(y)
		if sum > 0xFF {
			r.V[FlagRegister] = 1
		} else {
			r.V[FlagRegister] = 0
		}
		r.V[in.X] = uint8(sum)

	case OpSub:
		if x >= y {
			r.V[FlagRegister] = 1 // no borrow
		} else {
			r.V[FlagRegister] = 0
		}
		r.V[in.X] = x - y

	case OpSubn:
		if y >= x {
			r.V[FlagRegister] = 1
		} else {
			r.V[FlagRegister] = 0
		}
		r.V[in.X] = y - x

	case OpShr:
		source := x
		if s.shiftSourceY {
			source = y
		}
		r.V[FlagRegister] = source & 0x1
		r.V[in.X] = source >> 1

	case OpShl:
		source := x
		if s.shiftSourceY {
			source = y
		}
		r.V[FlagRegister] = (source >> 7) & 0x1
		r.V[in.X] = source << 1
	}
}

// draw XORs an N byte sprite read from memory at I onto the framebuffer
// at the coordinates held in VX, VY. Both axes wrap. VF is set to 1 when
// any pixel transitions from set to unset, else 0. The dirty flag is set
// even when no pixel changed.
func (s *System) draw(in Instruction) error {
	r := &s.Registers
	collision := false

	for row := 0; row < int(in.N); row++ {
		sprite, err := s.Memory.ReadByte(r.I + uint16(row))
		if err != nil {
			return err
		}
		y := (int(r.V[in.Y]) + row) % DisplayHeight

		for col := 0; col < 8; col++ {
			if sprite&(0x80>>col) == 0 {
				continue
			}
			x := (int(r.V[in.X]) + col) % DisplayWidth
			if s.Display.flip(x, y) {
				collision = true
			}
		}
	}

	if collision {
		r.V[FlagRegister] = 1
	} else {
		r.V[FlagRegister] = 0
	}
	s.Display.markDirty()
	return nil
}

// storeBCD writes the decimal digits of value to memory at I, I+1, I+2.
func (s *System) storeBCD(value uint8) error {
	if err := s.Memory.WriteByte(s.Registers.I, value/100); err != nil {
		return err
	}
	if err := s.Memory.WriteByte(s.Registers.I+1, value/10%10); err != nil {
		return err
	}
	return s.Memory.WriteByte(s.Registers.I+2, value%10)
}
