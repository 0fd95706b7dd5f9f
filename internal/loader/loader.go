// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/retrochip8/internal/chip8"
)

// maxProgramSize is the largest program that fits into the user program
// space between chip8.ProgramStart and the end of memory.
const maxProgramSize = chip8.MemorySize - chip8.ProgramStart

// Load reads a CHIP-8 ROM file and returns the raw program bytes.
// CHIP-8 ROMs have no header or magic, the file content is the
// big-endian instruction stream loaded verbatim at 0x200.
func Load(path string) ([]byte, error) {
	program, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	if len(program) == 0 {
		return nil, errors.New("ROM file is empty")
	}
	if len(program) > maxProgramSize {
		return nil, fmt.Errorf("ROM size %d exceeds the %d byte program space: %w",
			len(program), maxProgramSize, chip8.ErrProgramTooLarge)
	}
	return program, nil
}
