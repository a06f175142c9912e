package room

import (
	"fmt"
	"math"
)

// Position locates an entity: a cell inside a room
type Position struct {
	Room int
	Row  int
	Col  int
}

// Valid reports whether every index is within range
func (p Position) Valid() bool {
	return p.Room >= 0 && p.Room < Count &&
		p.Row >= 0 && p.Row < Size &&
		p.Col >= 0 && p.Col < Size
}

// SameRoom reports whether both positions are in the same room
func (p Position) SameRoom(o Position) bool {
	return p.Room == o.Room
}

// SameCell reports whether both positions are the same cell of the same room
func (p Position) SameCell(o Position) bool {
	return p.Room == o.Room && p.Row == o.Row && p.Col == o.Col
}

// Distance is the Euclidean distance between the two cells
// Only meaningful when SameRoom holds; callers check that first
func (p Position) Distance(o Position) float64 {
	return math.Hypot(float64(p.Row-o.Row), float64(p.Col-o.Col))
}

func (p Position) String() string {
	return fmt.Sprintf("room %d (%d,%d)", p.Room, p.Row, p.Col)
}
