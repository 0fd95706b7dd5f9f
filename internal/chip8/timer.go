package chip8

// Timers holds the delay and sound timers. Both are 8-bit down-counters
// decremented by an external fixed-rate 60 Hz tick, independent of the
// instruction execution rate.
type Timers struct {
	Delay uint8
	Sound uint8
}

// Tick decrements both timers, each clamped at zero.
func (t *Timers) Tick() {
	if t.Delay > 0 {
		t.Delay--
	}
	if t.Sound > 0 {
		t.Sound--
	}
}

// SoundActive reports whether the sound timer is running. The core does
// not synthesize audio, an external collaborator consumes this signal.
func (t *Timers) SoundActive() bool {
	return t.Sound > 0
}
