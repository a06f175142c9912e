package room

import "fmt"

// MaxSpawnAttempts caps the rejection sampling in RandomFreeCell
const MaxSpawnAttempts = 1024

// Outcome classifies the result of Step
type Outcome uint8

const (
	// Blocked: the target cell is a wall, nothing changed
	Blocked Outcome = iota
	// Stepped: moved one cell inside the same room
	Stepped
	// Crossed: left through a door into the adjacent room
	Crossed
)

func (o Outcome) String() string {
	switch o {
	case Stepped:
		return "stepped"
	case Crossed:
		return "crossed"
	}
	return "blocked"
}

// Rand is the subset of *math/rand.Rand used for spawning
type Rand interface {
	Intn(n int) int
}

// Step moves p one cell in direction d
// Inside the room a wall blocks the move. Moving outward from a boundary cell
// always crosses into the room given by the door table and enters it on the
// opposite edge, keeping the other coordinate.
func Step(p Position, d Direction) (Position, Outcome) {
	if !p.Valid() {
		panic(fmt.Errorf("%w: %v", ErrOutOfRange, p))
	}
	if d == None {
		return p, Blocked
	}

	next, inside := Neighbor(p, d)
	if inside {
		if IsWall(next.Room, next.Row, next.Col) {
			return p, Blocked
		}
		return next, Stepped
	}

	next = p
	next.Room = DoorTarget(p.Room, d)
	switch d {
	case Up:
		next.Row = Size - 1
	case Down:
		next.Row = 0
	case Left:
		next.Col = Size - 1
	case Right:
		next.Col = 0
	}
	return next, Crossed
}

// Neighbor returns the adjacent cell of p in direction d within the same room
// The second result is false when that cell would fall outside the room
func Neighbor(p Position, d Direction) (Position, bool) {
	switch d {
	case Up:
		p.Row--
	case Down:
		p.Row++
	case Left:
		p.Col--
	case Right:
		p.Col++
	default:
		panic(fmt.Errorf("%w: direction %d", ErrOutOfRange, d))
	}
	if p.Row < 0 || p.Row >= Size || p.Col < 0 || p.Col >= Size {
		return p, false
	}
	return p, true
}

// RandomRoom picks a room uniformly, skipping exclude when it names a room
// Pass a negative exclude to allow every room
func RandomRoom(rng Rand, exclude int) int {
	if exclude < 0 || exclude >= Count {
		return rng.Intn(Count)
	}
	r := rng.Intn(Count - 1)
	if r >= exclude {
		r++
	}
	return r
}

// RandomFreeCell samples cells of room r until it finds one that is not a wall
func RandomFreeCell(rng Rand, r int) (Position, error) {
	mustRoom(r)
	for i := 0; i < MaxSpawnAttempts; i++ {
		row, col := rng.Intn(Size), rng.Intn(Size)
		if !IsWall(r, row, col) {
			return Position{Room: r, Row: row, Col: col}, nil
		}
	}
	return Position{}, fmt.Errorf("%w: room %d after %d attempts", ErrNoFreeCell, r, MaxSpawnAttempts)
}
