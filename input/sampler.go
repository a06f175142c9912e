package input

import (
	"time"

	"github.com/VladWero08/SinisterEscape/room"
)

// Reading is one raw sample of the stick: two 10-bit axes and the button level
type Reading struct {
	X      int
	Y      int
	Button bool
}

// Neutral returns a centred stick with the button released
func Neutral() Reading {
	return Reading{X: 512, Y: 512}
}

// Source abstracts the stick hardware
type Source interface {
	Read(now time.Time) Reading
}

// Event is what the game sees each tick
type Event struct {
	Direction room.Direction
	Pressed   bool
}

// Idle is the event of a tick without input
var Idle = Event{Direction: room.None}

// Sampler converts readings into events
type Sampler struct {
	cfg       Config
	button    *Debouncer
	lastMove  time.Time
	movedOnce bool
}

// NewSampler creates a sampler for cfg
func NewSampler(cfg Config) *Sampler {
	return &Sampler{
		cfg:    cfg,
		button: NewDebouncer(cfg.Debounce),
	}
}

// Config returns the active calibration
func (s *Sampler) Config() Config {
	return s.cfg
}

// Poll reads src and samples the reading
func (s *Sampler) Poll(now time.Time, src Source) Event {
	return s.Sample(now, src.Read(now))
}

// Sample produces the event for one tick
// The button is debounced on every call, including during direction cooldown
func (s *Sampler) Sample(now time.Time, r Reading) Event {
	ev := Event{
		Direction: room.None,
		Pressed:   s.button.Update(now, r.Button),
	}

	if s.movedOnce && now.Sub(s.lastMove) < s.cfg.Cooldown {
		return ev
	}

	ev.Direction = s.Direction(r)
	if ev.Direction != room.None {
		s.lastMove = now
		s.movedOnce = true
	}
	return ev
}

// Direction classifies a reading without touching cooldown state
// Precedence is up, right, down, left
func (s *Sampler) Direction(r Reading) room.Direction {
	c := s.cfg
	switch {
	case r.X > c.Upper && c.inDeadZone(r.Y):
		return room.Up
	case r.Y > c.Upper && c.inDeadZone(r.X):
		return room.Right
	case r.X < c.Lower && c.inDeadZone(r.Y):
		return room.Down
	case r.Y < c.Lower && c.inDeadZone(r.X):
		return room.Left
	}
	return room.None
}
