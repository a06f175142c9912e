package device

import (
	"time"

	"github.com/VladWero08/SinisterEscape/input"
	"github.com/VladWero08/SinisterEscape/room"
)

// Axis extremes of the 10-bit stick
const (
	axisMin    = 0
	axisMax    = 1023
	axisCenter = 512
)

// Hold windows of a simulated key press
// Terminals only report key downs, so a key holds the stick for a while;
// auto-repeat keeps it deflected. The button window outlasts the debounce.
const (
	DefaultDeflectHold = 150 * time.Millisecond
	DefaultButtonHold  = 200 * time.Millisecond
)

// Stick turns key events into analog readings
// Not safe for concurrent use; feed it from the loop goroutine
type Stick struct {
	DeflectHold time.Duration
	ButtonHold  time.Duration

	dir       room.Direction
	deflectAt time.Time
	pressAt   time.Time
	pressed   bool
}

// NewStick creates a centred stick
func NewStick() *Stick {
	return &Stick{
		DeflectHold: DefaultDeflectHold,
		ButtonHold:  DefaultButtonHold,
		dir:         room.None,
	}
}

// Deflect pushes the stick towards d
func (s *Stick) Deflect(d room.Direction, now time.Time) {
	s.dir = d
	s.deflectAt = now
}

// Press pushes the button
func (s *Stick) Press(now time.Time) {
	s.pressed = true
	s.pressAt = now
}

// Read implements input.Source
func (s *Stick) Read(now time.Time) input.Reading {
	r := input.Reading{X: axisCenter, Y: axisCenter}

	if s.dir != room.None && now.Sub(s.deflectAt) < s.DeflectHold {
		switch s.dir {
		case room.Up:
			r.X = axisMax
		case room.Down:
			r.X = axisMin
		case room.Right:
			r.Y = axisMax
		case room.Left:
			r.Y = axisMin
		}
	}
	if s.pressed && now.Sub(s.pressAt) < s.ButtonHold {
		r.Button = true
	} else {
		s.pressed = false
	}
	return r
}
