package game

import (
	"fmt"
	"time"

	"github.com/VladWero08/SinisterEscape/blink"
	"github.com/VladWero08/SinisterEscape/room"
)

// Unreachable is the distance assigned to wall or out-of-bounds candidates
// It exceeds the diagonal of a room
const Unreachable = 100.0

// LevelParams are the two knobs driven by the pursuer level
type LevelParams struct {
	// Trigger is the largest distance that starts a chase
	Trigger float64
	// Cooldown is the minimum time between two chase steps
	Cooldown time.Duration
}

// levels is indexed by level-1; higher levels reuse the last row
var levels = []LevelParams{
	{Trigger: 5, Cooldown: 1000 * time.Millisecond},
	{Trigger: 3, Cooldown: 750 * time.Millisecond},
	{Trigger: 2, Cooldown: 500 * time.Millisecond},
}

// ParamsFor returns the parameters of level, clamped to the table
func ParamsFor(level int) LevelParams {
	switch {
	case level < 1:
		return levels[0]
	case level > len(levels):
		return levels[len(levels)-1]
	}
	return levels[level-1]
}

// PursuerState is the state derived from the Waiting and Chasing flags
type PursuerState uint8

const (
	Dormant PursuerState = iota
	Waiting
	Chasing
)

func (s PursuerState) String() string {
	switch s {
	case Waiting:
		return "waiting"
	case Chasing:
		return "chasing"
	}
	return "dormant"
}

// Nocturne is the pursuer, Dr. Nocturne
type Nocturne struct {
	Pos   room.Position
	Level int

	Waiting bool
	Chasing bool

	LastMovement time.Time
	Blink        blink.Blinker
}

// NewNocturne creates a dormant level 1 pursuer
func NewNocturne(now time.Time) *Nocturne {
	return &Nocturne{
		Level: 1,
		Blink: blink.New(SlowBlinkOn, SlowBlinkOff, now),
	}
}

// State reports Chasing over Waiting over Dormant
func (n *Nocturne) State() PursuerState {
	switch {
	case n.Chasing:
		return Chasing
	case n.Waiting:
		return Waiting
	}
	return Dormant
}

// Active reports whether the pursuer is Waiting or Chasing
func (n *Nocturne) Active() bool {
	return n.Waiting || n.Chasing
}

// Triggers reports whether a player at distance d starts a chase at the current level
func (n *Nocturne) Triggers(d float64) bool {
	return d <= ParamsFor(n.Level).Trigger
}

// CheckTrigger evaluates the Waiting to Chasing transition and reports whether it fired
// In another room any chase is aborted and Waiting is kept
func (n *Nocturne) CheckTrigger(player room.Position, now time.Time) bool {
	if !n.Waiting {
		return false
	}
	if !n.Pos.SameRoom(player) {
		n.Chasing = false
		return false
	}
	if !n.Triggers(n.Pos.Distance(player)) {
		return false
	}
	n.Waiting = false
	n.Chasing = true
	n.LastMovement = now
	return true
}

// NextStep picks the greedy single step from pos towards target
// Candidates are evaluated up, down, left, right; walls and cells outside the
// room count as Unreachable; ties keep the earlier candidate. None means no
// legal move exists.
func NextStep(pos, target room.Position) room.Direction {
	best, bestDist := room.None, Unreachable
	for _, d := range room.Directions {
		dist := Unreachable
		if next, ok := room.Neighbor(pos, d); ok && !room.IsWall(next.Room, next.Row, next.Col) {
			dist = next.Distance(target)
		}
		if dist < bestDist {
			best, bestDist = d, dist
		}
	}
	return best
}

// Chase takes at most one greedy step towards the player
// It returns the previous position and whether a step was taken. The pursuer
// holds on cooldown, in another room, on the player's cell, or without a legal move.
func (n *Nocturne) Chase(player room.Position, now time.Time) (room.Position, bool) {
	from := n.Pos
	if !n.Chasing || !n.Pos.SameRoom(player) || n.Pos.SameCell(player) {
		return from, false
	}
	if now.Sub(n.LastMovement) < ParamsFor(n.Level).Cooldown {
		return from, false
	}

	d := NextStep(n.Pos, player)
	if d == room.None {
		return from, false
	}
	n.Pos, _ = room.Neighbor(n.Pos, d)
	n.LastMovement = now
	return from, true
}

// LevelUp raises the level by one
func (n *Nocturne) LevelUp() {
	n.Level++
}

// Arm puts the pursuer in Waiting
func (n *Nocturne) Arm() {
	n.Waiting = true
	n.Chasing = false
}

// Catch deactivates the pursuer in place; it stays dormant until re-armed
func (n *Nocturne) Catch() {
	n.Waiting = false
	n.Chasing = false
}

// SpawnRandom moves the pursuer to a random floor cell of a random room
func (n *Nocturne) SpawnRandom(rng room.Rand) error {
	return n.SpawnIn(rng, room.RandomRoom(rng, -1))
}

// SpawnIn moves the pursuer to a random floor cell of room r
// On failure the previous position is kept
func (n *Nocturne) SpawnIn(rng room.Rand, r int) error {
	pos, err := room.RandomFreeCell(rng, r)
	if err != nil {
		return fmt.Errorf("spawn pursuer: %w", err)
	}
	n.Pos = pos
	return nil
}

// Reset returns to a dormant level 1 pursuer at a random position
func (n *Nocturne) Reset(rng room.Rand, now time.Time) error {
	n.Level = 1
	n.Catch()
	n.LastMovement = now
	n.Blink.Reset(now)
	return n.SpawnRandom(rng)
}

// Render blinks the pursuer while active and in the player's room
func (n *Nocturne) Render(m Matrix, player room.Position, now time.Time) {
	if !n.Active() || !n.Pos.SameRoom(player) {
		return
	}
	if n.Blink.Tick(now) {
		m.SetCell(n.Pos.Row, n.Pos.Col, n.Blink.On)
	}
}
