// Package blink provides the timestamp-driven on/off toggle used by every
// blinking glyph: entities on the matrix and cursors on the LCD.
package blink

import "time"

// Blinker toggles On once the current phase has lasted longer than its interval
// The zero value never toggles; use New or Symmetric
type Blinker struct {
	On          bool
	Last        time.Time
	OnInterval  time.Duration
	OffInterval time.Duration
}

// New returns a visible blinker with distinct on and off durations
func New(on, off time.Duration, now time.Time) Blinker {
	return Blinker{On: true, Last: now, OnInterval: on, OffInterval: off}
}

// Symmetric returns a visible blinker spending interval in each phase
func Symmetric(interval time.Duration, now time.Time) Blinker {
	return New(interval, interval, now)
}

// Tick toggles the blinker when the current phase expired and reports whether it did
func (b *Blinker) Tick(now time.Time) bool {
	interval := b.OffInterval
	if b.On {
		interval = b.OnInterval
	}
	if interval <= 0 || now.Sub(b.Last) <= interval {
		return false
	}
	b.On = !b.On
	b.Last = now
	return true
}

// Reset restarts the blinker in the visible phase
func (b *Blinker) Reset(now time.Time) {
	b.On = true
	b.Last = now
}
