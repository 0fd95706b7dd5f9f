// Package main implements a CHIP-8 virtual machine with a windowed frontend
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/faiface/pixel/pixelgl"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/cli"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	// the graphics backend requires running on the main thread
	pixelgl.Run(run)
}

func run() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	if err != nil {
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			printBanner(logger, opts.Quiet)
			usageErr.ShowUsage()
		} else {
			logger.Error(err.Error())
		}
		os.Exit(1)
	}

	printBanner(logger, opts.Quiet)

	if err := emulate(ctx, logger, opts); err != nil {
		// handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Emulation cancelled")
			return
		}
		logger.Fatal("Emulation failed", log.Err(err))
	}
}

// printBanner prints application version information
func printBanner(logger *log.Logger, quiet bool) {
	if quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("retrochip8", log.String("version", versionString))
}

// emulate loads the ROM, creates the machine and hands it to the
// windowed frontend.
func emulate(ctx context.Context, logger *log.Logger, opts options.Program) error {
	program, err := loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	sysOpts := chip8.Options{
		Strict:       opts.Strict,
		ShiftSourceY: opts.ShiftQuirk,
	}
	if opts.Debug {
		sysOpts.Tracer = chip8.NewLogTracer(logger)
	}

	sys := chip8.New(sysOpts)
	if err := sys.LoadProgram(program); err != nil {
		return fmt.Errorf("loading program into memory: %w", err)
	}

	logger.Info("Starting emulation",
		log.String("file", opts.Input),
		log.Int("bytes", len(program)),
	)

	return frontend.New(logger, sys, opts).Run(ctx)
}
