// Package frontend implements the windowed driver of the machine:
// it renders the framebuffer scaled to a window, maps the host keyboard
// to the 16-key code space and drives the instruction and timer clocks
// on independent cadences.
package frontend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/image/colornames"
)

// timerRate is the fixed cadence of the delay and sound timers.
const timerRate = 60

// keyMap maps host keys to the 16-key keypad code space using the
// conventional layout: the 4x4 block 1234/QWER/ASDF/ZXCV mirrors the
// original COSMAC keypad 123C/456D/789E/A0BF.
var keyMap = map[pixelgl.Button]uint8{
	pixelgl.Key1: 0x1, pixelgl.Key2: 0x2, pixelgl.Key3: 0x3, pixelgl.Key4: 0xC,
	pixelgl.KeyQ: 0x4, pixelgl.KeyW: 0x5, pixelgl.KeyE: 0x6, pixelgl.KeyR: 0xD,
	pixelgl.KeyA: 0x7, pixelgl.KeyS: 0x8, pixelgl.KeyD: 0x9, pixelgl.KeyF: 0xE,
	pixelgl.KeyZ: 0xA, pixelgl.KeyX: 0x0, pixelgl.KeyC: 0xB, pixelgl.KeyV: 0xF,
}

// Frontend drives one machine instance in a window until the window is
// closed or the context is cancelled.
type Frontend struct {
	logger *log.Logger
	sys    *chip8.System
	opts   options.Program

	frame []bool // last consumed framebuffer snapshot
}

// New returns a new frontend for the given machine.
func New(logger *log.Logger, sys *chip8.System, opts options.Program) *Frontend {
	return &Frontend{
		logger: logger,
		sys:    sys,
		opts:   opts,
		frame:  make([]bool, chip8.DisplayWidth*chip8.DisplayHeight),
	}
}

// Run opens the window and runs the machine. It must be called from the
// main thread, see pixelgl.Run.
func (f *Frontend) Run(ctx context.Context) error {
	scale := float64(f.opts.Scale)
	cfg := pixelgl.WindowConfig{
		Title:  "retrochip8",
		Bounds: pixel.R(0, 0, chip8.DisplayWidth*scale, chip8.DisplayHeight*scale),
		VSync:  true,
	}
	win, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}

	imd := imdraw.New(nil)
	timerTicker := time.NewTicker(time.Second / timerRate)
	defer timerTicker.Stop()

	cyclesPerFrame := f.opts.CyclesPerSecond / timerRate
	if cyclesPerFrame < 1 {
		cyclesPerFrame = 1
	}

	for !win.Closed() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		f.pollKeys(win)

		for i := 0; i < cyclesPerFrame; i++ {
			if err := f.cycle(); err != nil {
				return err
			}
		}

		select {
		case <-timerTicker.C:
			f.tickTimers()
		default:
		}

		f.render(win, imd, scale)
		win.Update()
	}
	return nil
}

// cycle executes one instruction and applies the unknown-opcode policy:
// in lenient mode the engine already skipped the word, the frontend
// logs it and continues; in strict mode the error is fatal.
func (f *Frontend) cycle() error {
	err := f.sys.Cycle()
	if err == nil {
		return nil
	}

	var unknownErr *chip8.UnknownOpcodeError
	if errors.As(err, &unknownErr) && !f.opts.Strict {
		f.logger.Warn("Skipping unknown opcode", log.Hex("opcode", unknownErr.Opcode))
		return nil
	}
	return fmt.Errorf("executing cycle: %w", err)
}

func (f *Frontend) tickTimers() {
	wasActive := f.sys.Timers.SoundActive()
	f.sys.TickTimers()
	// no sound synthesis, only the timer level is observable
	if wasActive && !f.sys.Timers.SoundActive() {
		f.logger.Debug("Sound timer expired")
	}
}

// pollKeys forwards host key transitions as key-down and key-up events.
func (f *Frontend) pollKeys(win *pixelgl.Window) {
	for key, code := range keyMap {
		switch {
		case win.JustPressed(key):
			f.sys.Keypad.SetKeyDown(code)
		case win.JustReleased(key):
			f.sys.Keypad.SetKeyUp(code)
		}
	}
}

// render draws the framebuffer scaled to the window. A new snapshot is
// consumed only when the machine marked the framebuffer dirty, otherwise
// the previous frame is drawn again.
func (f *Frontend) render(win *pixelgl.Window, imd *imdraw.IMDraw, scale float64) {
	if f.sys.Display.Dirty() {
		f.frame = f.sys.Display.Snapshot()
		f.sys.Display.ClearDirty()
	}

	win.Clear(colornames.Black)
	imd.Clear()

	for y := 0; y < chip8.DisplayHeight; y++ {
		for x := 0; x < chip8.DisplayWidth; x++ {
			if !f.frame[y*chip8.DisplayWidth+x] {
				continue
			}
			// framebuffer row 0 is the top row, window y grows upwards
			top := float64(chip8.DisplayHeight - 1 - y)
			imd.Color = colornames.White
			imd.Push(
				pixel.V(float64(x)*scale, top*scale),
				pixel.V(float64(x+1)*scale, (top+1)*scale),
			)
			imd.Rectangle(0)
		}
	}

	imd.Draw(win)
}
