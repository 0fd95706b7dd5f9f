// Package options contains the program options.
package options

// Program contains the command line options of the emulator.
type Program struct {
	Input string // ROM file to run

	Scale           int // window scale factor for the 64x32 display
	CyclesPerSecond int // instruction cycles per second

	Strict     bool // stop on unknown opcodes instead of skipping them
	ShiftQuirk bool // historical shift behavior that reads VY

	Debug bool
	Quiet bool
}
