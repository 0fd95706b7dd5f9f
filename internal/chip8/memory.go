package chip8

import "fmt"

// CHIP-8 memory layout constants.
//
// CHIP-8 memory map (4KB total):
//
//	0x000-0x1FF: interpreter and font data
//	0x200-0xFFF: user program space
const (
	// MemorySize is the size of the flat byte-addressable memory.
	MemorySize = 4096

	// ProgramStart is the address where loaded programs begin execution.
	ProgramStart = 0x200

	// FontBase is the address of the built-in font table.
	FontBase = 0x000

	// glyphSize is the size of one font glyph in bytes.
	glyphSize = 5
)

// fontSet contains the 16 built-in 5-byte glyphs for the digits 0-F.
// Each byte is one row of 8 pixels, only the high nibble is used.
var fontSet = [80]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the flat bounds-checked 4KB store of the machine.
type Memory struct {
	data [MemorySize]byte
}

// LoadFontSet writes the built-in font table at FontBase.
// It is idempotent and called once before any program is loaded.
func (m *Memory) LoadFontSet() {
	copy(m.data[FontBase:], fontSet[:])
}

// LoadProgram copies the given bytes into memory starting at base.
func (m *Memory) LoadProgram(program []byte, base uint16) error {
	if int(base)+len(program) > MemorySize {
		return fmt.Errorf("loading %d bytes at $%03X: %w", len(program), base, ErrProgramTooLarge)
	}
	copy(m.data[base:], program)
	return nil
}

// ReadByte returns the byte at the given address.
func (m *Memory) ReadByte(address uint16) (byte, error) {
	if address >= MemorySize {
		return 0, &MemoryFaultError{Address: address}
	}
	return m.data[address], nil
}

// WriteByte stores a byte at the given address.
func (m *Memory) WriteByte(address uint16, value byte) error {
	if address >= MemorySize {
		return &MemoryFaultError{Address: address}
	}
	m.data[address] = value
	return nil
}
