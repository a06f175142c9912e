package input

import "time"

// Debouncer filters a bouncing button level into a stable state
// A change of the raw level restarts the timer; the stable state follows the
// raw level once it held longer than the window
type Debouncer struct {
	Window time.Duration

	raw        bool
	stable     bool
	lastChange time.Time
}

// NewDebouncer creates a debouncer with the button released
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{Window: window}
}

// Update samples the raw level and returns true on a rising edge of the
// stable state, exactly once per press
func (d *Debouncer) Update(now time.Time, level bool) bool {
	if level != d.raw {
		d.raw = level
		d.lastChange = now
		return false
	}
	if now.Sub(d.lastChange) <= d.Window || d.stable == d.raw {
		return false
	}
	d.stable = d.raw
	return d.stable
}

// Pressed reports the current stable state
func (d *Debouncer) Pressed() bool {
	return d.stable
}
