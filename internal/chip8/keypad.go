package chip8

// NumKeys is the number of keys on the hexadecimal keypad.
const NumKeys = 16

// Keypad latches the state of the 16-key hexadecimal keypad. Key events
// are delivered by an external input collaborator, the engine only reads
// the latch. Besides the per-key state it records a sequence number for
// key-down events so the LD Vx, K wait state can detect events that were
// delivered after the wait began.
type Keypad struct {
	pressed [NumKeys]bool
	events  uint64
	lastKey uint8
}

// SetKeyDown marks a key as pressed and records the key-down event.
// Key codes outside 0x0-0xF are ignored.
func (k *Keypad) SetKeyDown(code uint8) {
	if code >= NumKeys {
		return
	}
	k.pressed[code] = true
	k.events++
	k.lastKey = code
}

// SetKeyUp marks a key as released.
func (k *Keypad) SetKeyUp(code uint8) {
	if code >= NumKeys {
		return
	}
	k.pressed[code] = false
}

// Pressed reports whether the given key is currently held down.
func (k *Keypad) Pressed(code uint8) bool {
	if code >= NumKeys {
		return false
	}
	return k.pressed[code]
}

// eventCount returns the number of key-down events delivered so far.
func (k *Keypad) eventCount() uint64 {
	return k.events
}

// lastPressed returns the key code of the most recent key-down event.
func (k *Keypad) lastPressed() uint8 {
	return k.lastKey
}
