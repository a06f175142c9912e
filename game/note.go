package game

import (
	"fmt"
	"time"

	"github.com/VladWero08/SinisterEscape/blink"
	"github.com/VladWero08/SinisterEscape/room"
)

// Blink timing shared by the note and Dr. Nocturne
const (
	SlowBlinkOn  = 500 * time.Millisecond
	SlowBlinkOff = 100 * time.Millisecond
)

// Note is the collectible; one is active at a time
type Note struct {
	Pos   room.Position
	Blink blink.Blinker
}

// NewNote creates a note at an unset position; call Spawn before use
func NewNote(now time.Time) *Note {
	return &Note{Blink: blink.New(SlowBlinkOn, SlowBlinkOff, now)}
}

// Spawn moves the note to a random floor cell of a random room other than
// exclude; pass a negative exclude to allow every room
// On failure the previous position is kept
func (n *Note) Spawn(rng room.Rand, exclude int) error {
	r := room.RandomRoom(rng, exclude)
	pos, err := room.RandomFreeCell(rng, r)
	if err != nil {
		return fmt.Errorf("spawn note: %w", err)
	}
	n.Pos = pos
	return nil
}

// Render blinks the note when it shares the player's room
func (n *Note) Render(m Matrix, player room.Position, now time.Time) {
	if !n.Pos.SameRoom(player) {
		return
	}
	if n.Blink.Tick(now) {
		m.SetCell(n.Pos.Row, n.Pos.Col, n.Blink.On)
	}
}
