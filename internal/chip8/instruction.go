package chip8

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// opcodeSize is the size of CHIP-8 instructions in bytes.
const opcodeSize = 2

// Op identifies one variant of the closed CHIP-8 instruction set.
type Op uint8

// The instruction variants. Any word that matches no known encoding
// decodes to OpUnknown.
const (
	OpUnknown Op = iota

	OpCls     // 00E0 - clear the display
	OpRet     // 00EE - return from subroutine
	OpJp      // 1NNN - jump to address
	OpCall    // 2NNN - call subroutine
	OpSeByte  // 3XNN - skip if VX == NN
	OpSneByte // 4XNN - skip if VX != NN
	OpSeReg   // 5XY0 - skip if VX == VY
	OpLdByte  // 6XNN - VX = NN
	OpAddByte // 7XNN - VX += NN
	OpLdReg   // 8XY0 - VX = VY
	OpOr      // 8XY1 - VX |= VY
	OpAnd     // 8XY2 - VX &= VY
	OpXor     // 8XY3 - VX ^= VY
	OpAddReg  // 8XY4 - VX += VY, VF = carry
	OpSub     // 8XY5 - VX -= VY, VF = no borrow
	OpShr     // 8XY6 - VX >>= 1, VF = shifted out bit
	OpSubn    // 8XY7 - VX = VY - VX, VF = no borrow
	OpShl     // 8XYE - VX <<= 1, VF = shifted out bit
	OpSneReg  // 9XY0 - skip if VX != VY
	OpLdI     // ANNN - I = NNN
	OpJpV0    // BNNN - jump to NNN + V0
	OpRnd     // CXNN - VX = random byte & NN
	OpDrw     // DXYN - draw N byte sprite at VX, VY
	OpSkp     // EX9E - skip if key VX pressed
	OpSknp    // EXA1 - skip if key VX not pressed
	OpLdDelay // FX07 - VX = delay timer
	OpLdKey   // FX0A - wait for key press, VX = key
	OpStDelay // FX15 - delay timer = VX
	OpStSound // FX18 - sound timer = VX
	OpAddI    // FX1E - I += VX
	OpLdFont  // FX29 - I = font glyph address of digit VX
	OpLdBcd   // FX33 - memory[I..I+2] = BCD of VX
	OpStRegs  // FX55 - memory[I..I+X] = V0..VX
	OpLdRegs  // FX65 - V0..VX = memory[I..I+X]
)

// Instruction is one decoded instruction word with its extracted
// operands. Which operands are meaningful depends on the variant.
type Instruction struct {
	Op     Op
	Opcode uint16 // the raw instruction word

	X   uint8  // register selector, bits 8-11
	Y   uint8  // register selector, bits 4-7
	N   uint8  // low nibble
	NN  uint8  // low byte
	NNN uint16 // low 12 bits
}

// Decode maps a raw big-endian instruction word to exactly one variant
// of the closed instruction set. The word is first validated against the
// CHIP-8 opcode table, unmatched bit patterns decode to OpUnknown.
func Decode(word uint16) Instruction {
	in := Instruction{
		Opcode: word,
		X:      uint8(word>>8) & 0x0F,
		Y:      uint8(word>>4) & 0x0F,
		N:      uint8(word) & 0x0F,
		NN:     uint8(word),
		NNN:    word & 0x0FFF,
	}

	if _, ok := lookupOpcode(word); !ok {
		return in
	}

	switch word >> 12 {
	case 0x0:
		switch word {
		case 0x00E0:
			in.Op = OpCls
		case 0x00EE:
			in.Op = OpRet
		}

	case 0x1:
		in.Op = OpJp
	case 0x2:
		in.Op = OpCall
	case 0x3:
		in.Op = OpSeByte
	case 0x4:
		in.Op = OpSneByte

	case 0x5:
		if in.N == 0x0 {
			in.Op = OpSeReg
		}

	case 0x6:
		in.Op = OpLdByte
	case 0x7:
		in.Op = OpAddByte

	case 0x8:
		in.Op = decodeArithmetic(in.N)

	case 0x9:
		if in.N == 0x0 {
			in.Op = OpSneReg
		}

	case 0xA:
		in.Op = OpLdI
	case 0xB:
		in.Op = OpJpV0
	case 0xC:
		in.Op = OpRnd
	case 0xD:
		in.Op = OpDrw

	case 0xE:
		switch in.NN {
		case 0x9E:
			in.Op = OpSkp
		case 0xA1:
			in.Op = OpSknp
		}

	case 0xF:
		in.Op = decodeMisc(in.NN)
	}

	return in
}

// decodeArithmetic selects the 0x8 family operation by its low nibble.
func decodeArithmetic(n uint8) Op {
	switch n {
	case 0x0:
		return OpLdReg
	case 0x1:
		return OpOr
	case 0x2:
		return OpAnd
	case 0x3:
		return OpXor
	case 0x4:
		return OpAddReg
	case 0x5:
		return OpSub
	case 0x6:
		return OpShr
	case 0x7:
		return OpSubn
	case 0xE:
		return OpShl
	}
	return OpUnknown
}

// decodeMisc selects the 0xF family operation by its low byte.
func decodeMisc(nn uint8) Op {
	switch nn {
	case 0x07:
		return OpLdDelay
	case 0x0A:
		return OpLdKey
	case 0x15:
		return OpStDelay
	case 0x18:
		return OpStSound
	case 0x1E:
		return OpAddI
	case 0x29:
		return OpLdFont
	case 0x33:
		return OpLdBcd
	case 0x55:
		return OpStRegs
	case 0x65:
		return OpLdRegs
	}
	return OpUnknown
}

// lookupOpcode matches the word against the CHIP-8 opcode table and
// returns the matching table entry.
func lookupOpcode(word uint16) (chip8.Opcode, bool) {
	firstNibble := (word & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&word == op.Info.Value {
			return op, true
		}
	}
	return chip8.Opcode{}, false
}

// Mnemonic returns the canonical assembly form of the instruction,
// for example "LD V1, $0A". Unknown words render as data.
func (in Instruction) Mnemonic() string {
	switch in.Op {
	case OpCls:
		return chip8.ClsInst.Name
	case OpRet:
		return chip8.RetInst.Name
	case OpJp:
		return fmt.Sprintf("%s $%03X", chip8.JpInst.Name, in.NNN)
	case OpCall:
		return fmt.Sprintf("%s $%03X", chip8.CallInst.Name, in.NNN)
	case OpSeByte:
		return fmt.Sprintf("%s V%X, $%02X", chip8.SeInst.Name, in.X, in.NN)
	case OpSneByte:
		return fmt.Sprintf("%s V%X, $%02X", chip8.SneInst.Name, in.X, in.NN)
	case OpSeReg:
		return fmt.Sprintf("%s V%X, V%X", chip8.SeInst.Name, in.X, in.Y)
	case OpSneReg:
		return fmt.Sprintf("%s V%X, V%X", chip8.SneInst.Name, in.X, in.Y)
	case OpLdByte:
		return fmt.Sprintf("%s V%X, $%02X", chip8.LdInst.Name, in.X, in.NN)
	case OpAddByte:
		return fmt.Sprintf("%s V%X, $%02X", chip8.AddInst.Name, in.X, in.NN)
	case OpLdReg:
		return fmt.Sprintf("%s V%X, V%X", chip8.LdInst.Name, in.X, in.Y)
	case OpOr:
		return fmt.Sprintf("%s V%X, V%X", chip8.OrInst.Name, in.X, in.Y)
	case OpAnd:
		return fmt.Sprintf("%s V%X, V%X", chip8.AndInst.Name, in.X, in.Y)
	case OpXor:
		return fmt.Sprintf("%s V%X, V%X", chip8.XorInst.Name, in.X, in.Y)
	case OpAddReg:
		return fmt.Sprintf("%s V%X, V%X", chip8.AddInst.Name, in.X, in.Y)
	case OpSub:
		return fmt.Sprintf("%s V%X, V%X", chip8.SubInst.Name, in.X, in.Y)
	case OpSubn:
		return fmt.Sprintf("%s V%X, V%X", chip8.SubnInst.Name, in.X, in.Y)
	case OpShr:
		return fmt.Sprintf("%s V%X", chip8.ShrInst.Name, in.X)
	case OpShl:
		return fmt.Sprintf("%s V%X", chip8.ShlInst.Name, in.X)
	case OpLdI:
		return fmt.Sprintf("%s I, $%03X", chip8.LdInst.Name, in.NNN)
	case OpJpV0:
		return fmt.Sprintf("%s V0, $%03X", chip8.JpInst.Name, in.NNN)
	case OpRnd:
		return fmt.Sprintf("%s V%X, $%02X", chip8.RndInst.Name, in.X, in.NN)
	case OpDrw:
		return fmt.Sprintf("%s V%X, V%X, $%X", chip8.DrwInst.Name, in.X, in.Y, in.N)
	case OpSkp:
		return fmt.Sprintf("%s V%X", chip8.SkpInst.Name, in.X)
	case OpSknp:
		return fmt.Sprintf("%s V%X", chip8.SknpInst.Name, in.X)
	case OpLdDelay:
		return fmt.Sprintf("%s V%X, DT", chip8.LdInst.Name, in.X)
	case OpLdKey:
		return fmt.Sprintf("%s V%X, K", chip8.LdInst.Name, in.X)
	case OpStDelay:
		return fmt.Sprintf("%s DT, V%X", chip8.LdInst.Name, in.X)
	case OpStSound:
		return fmt.Sprintf("%s ST, V%X", chip8.LdInst.Name, in.X)
	case OpAddI:
		return fmt.Sprintf("%s I, V%X", chip8.AddInst.Name, in.X)
	case OpLdFont:
		return fmt.Sprintf("%s F, V%X", chip8.LdInst.Name, in.X)
	case OpLdBcd:
		return fmt.Sprintf("%s B, V%X", chip8.LdInst.Name, in.X)
	case OpStRegs:
		return fmt.Sprintf("%s [I], V%X", chip8.LdInst.Name, in.X)
	case OpLdRegs:
		return fmt.Sprintf("%s V%X, [I]", chip8.LdInst.Name, in.X)
	}
	return fmt.Sprintf(".word $%04X", in.Opcode)
}
