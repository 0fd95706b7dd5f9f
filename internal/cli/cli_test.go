package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Program
	}{
		{
			name: "default flags",
			args: []string{"prog", "game.ch8"},
			want: options.Program{Input: "game.ch8", Scale: 10, CyclesPerSecond: 720},
		},
		{
			name: "custom scale and cycle rate",
			args: []string{"prog", "-scale", "4", "-cps", "1000", "game.ch8"},
			want: options.Program{Input: "game.ch8", Scale: 4, CyclesPerSecond: 1000},
		},
		{
			name: "strict and quirk flags",
			args: []string{"prog", "-strict", "-shift-vy", "game.ch8"},
			want: options.Program{Input: "game.ch8", Scale: 10, CyclesPerSecond: 720, Strict: true, ShiftQuirk: true},
		},
		{
			name: "logging flags",
			args: []string{"prog", "-debug", "-q", "game.ch8"},
			want: options.Program{Input: "game.ch8", Scale: 10, CyclesPerSecond: 720, Debug: true, Quiet: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			got, err := ParseFlags()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlagsUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no arguments", []string{"prog"}},
		{"two ROM files", []string{"prog", "a.ch8", "b.ch8"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			_, err := ParseFlags()
			assert.Error(t, err)

			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr))
		})
	}
}

func TestValidateArgs(t *testing.T) {
	assert.NoError(t, validateArgs([]string{"game.ch8"}))

	err := validateArgs([]string{"game.ch8", "-strict"})
	assert.Error(t, err)
}

func TestValidateOptions(t *testing.T) {
	tests := []struct {
		name        string
		opts        options.Program
		expectError bool
	}{
		{"valid", options.Program{Scale: 10, CyclesPerSecond: 720}, false},
		{"zero scale", options.Program{Scale: 0, CyclesPerSecond: 720}, true},
		{"zero cycle rate", options.Program{Scale: 10, CyclesPerSecond: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateOptions(tt.opts)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
