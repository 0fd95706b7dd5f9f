package chip8

// Display dimension constants.
const (
	// DisplayWidth is the framebuffer width in pixels.
	DisplayWidth = 64

	// DisplayHeight is the framebuffer height in pixels.
	DisplayHeight = 32
)

// Display is the monochrome 64x32 framebuffer. Pixels are stored
// row-major, one bool per pixel. The dirty flag is set whenever the
// grid changes and cleared by the external renderer after it consumed
// a snapshot.
type Display struct {
	pixels [DisplayWidth * DisplayHeight]bool
	dirty  bool
}

// Clear zeroes the framebuffer and sets the dirty flag.
func (d *Display) Clear() {
	d.pixels = [DisplayWidth * DisplayHeight]bool{}
	d.dirty = true
}

// flip XORs a set sprite bit into the pixel at x, y and reports whether
// the pixel was set before, which counts as a sprite collision.
// Coordinates must already be wrapped to the display dimensions.
func (d *Display) flip(x, y int) bool {
	index := y*DisplayWidth + x
	collision := d.pixels[index]
	d.pixels[index] = !d.pixels[index]
	return collision
}

func (d *Display) markDirty() {
	d.dirty = true
}

// Pixel reports whether the pixel at x, y is set.
func (d *Display) Pixel(x, y int) bool {
	return d.pixels[y*DisplayWidth+x]
}

// Snapshot returns a copy of the framebuffer in row-major order.
func (d *Display) Snapshot() []bool {
	snapshot := make([]bool, len(d.pixels))
	copy(snapshot, d.pixels[:])
	return snapshot
}

// Dirty reports whether the framebuffer changed since the last call
// to ClearDirty.
func (d *Display) Dirty() bool {
	return d.dirty
}

// ClearDirty resets the dirty flag, called by the renderer after it
// consumed a snapshot.
func (d *Display) ClearDirty() {
	d.dirty = false
}
