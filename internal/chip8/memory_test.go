package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestLoadFontSet(t *testing.T) {
	var mem Memory
	mem.LoadFontSet()
	mem.LoadFontSet() // idempotent

	for i, expected := range fontSet {
		value, err := mem.ReadByte(FontBase + uint16(i))
		assert.NoError(t, err)
		assert.Equal(t, expected, value)
	}
}

func TestLoadProgram(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		base    uint16
		wantErr bool
	}{
		{"small program", 2, ProgramStart, false},
		{"exact fit", MemorySize - ProgramStart, ProgramStart, false},
		{"one byte too large", MemorySize - ProgramStart + 1, ProgramStart, true},
		{"load at zero", MemorySize, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var mem Memory
			program := make([]byte, tt.size)
			program[0] = 0xAA

			err := mem.LoadProgram(program, tt.base)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, ErrProgramTooLarge))
				return
			}

			assert.NoError(t, err)
			value, err := mem.ReadByte(tt.base)
			assert.NoError(t, err)
			assert.Equal(t, 0xAA, value)
		})
	}
}

func TestMemoryBounds(t *testing.T) {
	var mem Memory

	assert.NoError(t, mem.WriteByte(MemorySize-1, 0x12))
	value, err := mem.ReadByte(MemorySize - 1)
	assert.NoError(t, err)
	assert.Equal(t, 0x12, value)

	_, err = mem.ReadByte(MemorySize)
	var faultErr *MemoryFaultError
	assert.True(t, errors.As(err, &faultErr))
	assert.Equal(t, MemorySize, faultErr.Address)

	err = mem.WriteByte(0xFFFF, 0)
	assert.True(t, errors.As(err, &faultErr))
	assert.Equal(t, 0xFFFF, faultErr.Address)
}
