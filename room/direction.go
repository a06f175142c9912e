package room

// Direction is one of the four joystick directions, or None
// Values of the four directions index the door table
type Direction int8

const (
	None Direction = iota - 1
	Up
	Down
	Left
	Right
)

// Directions lists the four directions in evaluation order
var Directions = [4]Direction{Up, Down, Left, Right}

// Valid reports whether d is one of the four directions
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// Opposite returns the reverse direction; None stays None
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	return None
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "none"
}
