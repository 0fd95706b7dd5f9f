package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestLoad(t *testing.T) {
	t.Run("load ROM file", func(t *testing.T) {
		data := []byte{0x12, 0x34, 0x56, 0x78}
		tmpFile := createTempFile(t, data)

		program, err := Load(tmpFile)
		assert.NoError(t, err)
		assert.Equal(t, data, program)
	})

	t.Run("load maximum size ROM", func(t *testing.T) {
		data := make([]byte, maxProgramSize)
		data[0] = 0x12
		tmpFile := createTempFile(t, data)

		program, err := Load(tmpFile)
		assert.NoError(t, err)
		assert.Len(t, program, maxProgramSize)
	})

	t.Run("error on oversized ROM", func(t *testing.T) {
		data := make([]byte, maxProgramSize+1)
		tmpFile := createTempFile(t, data)

		_, err := Load(tmpFile)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, chip8.ErrProgramTooLarge))
	})

	t.Run("error on empty ROM", func(t *testing.T) {
		tmpFile := createTempFile(t, nil)

		_, err := Load(tmpFile)
		assert.Error(t, err)
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		_, err := Load("/nonexistent/game.ch8")
		assert.Error(t, err)
	})
}

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), "test.ch8")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
