// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/retrochip8/internal/options"
)

// ParseFlags parses command line flags and returns the program options.
// The emulator accepts exactly one positional argument, the ROM file.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) != 1 {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}
	if err := validateOptions(opts); err != nil {
		return opts, err
	}

	opts.Input = args[0]
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <ROM file to run>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file to run as last argument", arg),
			}
		}
	}
	return nil
}

// validateOptions checks that numeric option values are usable
func validateOptions(opts options.Program) error {
	if opts.Scale < 1 {
		return &UsageError{msg: fmt.Sprintf("invalid scale factor %d, must be at least 1", opts.Scale)}
	}
	if opts.CyclesPerSecond < 1 {
		return &UsageError{msg: fmt.Sprintf("invalid cycle rate %d, must be at least 1", opts.CyclesPerSecond)}
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.IntVar(&opts.Scale, "scale", 10, "window scale factor for the 64x32 display")
	flags.IntVar(&opts.CyclesPerSecond, "cps", 720, "instruction cycles to execute per second")
	flags.BoolVar(&opts.Strict, "strict", false, "stop on unknown opcodes instead of skipping them")
	flags.BoolVar(&opts.ShiftQuirk, "shift-vy", false, "use the historical shift behavior that reads VY instead of VX")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
