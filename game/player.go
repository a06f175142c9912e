package game

import (
	"time"

	"github.com/VladWero08/SinisterEscape/blink"
	"github.com/VladWero08/SinisterEscape/room"
)

const (
	// StartLives is the number of lives at round start
	StartLives = 3
	// StartRow and StartCol place the player inside the entered room
	StartRow = 1
	StartCol = 1

	// PlayerBlinkInterval is the heartbeat of the player glyph
	PlayerBlinkInterval = 50 * time.Millisecond
)

// Player is the entity steered by the joystick
type Player struct {
	Pos   room.Position
	Notes int
	Lives int

	IsWinning    bool
	HasHighscore bool
	HasUserName  bool

	Blink blink.Blinker
}

// Move describes what a call to Player.Move did
type Move struct {
	From    room.Position
	To      room.Position
	Outcome room.Outcome
}

// Moved reports whether the position changed
func (m Move) Moved() bool {
	return m.Outcome != room.Blocked
}

// ChangedRoom reports a door crossing: the whole matrix must be redrawn
func (m Move) ChangedRoom() bool {
	return m.Outcome == room.Crossed
}

// NewPlayer creates a player ready for a round
func NewPlayer(rng room.Rand, now time.Time, hasUserName bool) *Player {
	p := &Player{HasUserName: hasUserName}
	p.Reset(rng, now)
	return p
}

// Reset starts a fresh round in a random room; the user name flag survives
func (p *Player) Reset(rng room.Rand, now time.Time) {
	p.Pos = room.Position{Room: room.RandomRoom(rng, -1), Row: StartRow, Col: StartCol}
	p.Notes = 0
	p.Lives = StartLives
	p.IsWinning = false
	p.HasHighscore = false
	p.Blink = blink.Symmetric(PlayerBlinkInterval, now)
}

// Move applies one joystick direction
func (p *Player) Move(d room.Direction) Move {
	next, outcome := room.Step(p.Pos, d)
	m := Move{From: p.Pos, To: next, Outcome: outcome}
	p.Pos = next
	return m
}

// Render advances the heartbeat and writes the glyph when it toggled
func (p *Player) Render(m Matrix, now time.Time) {
	if p.Blink.Tick(now) {
		m.SetCell(p.Pos.Row, p.Pos.Col, p.Blink.On)
	}
}
