// Package room holds the static maze: the wall layout of every room and the
// door graph that links them. All data is compile-time constant.
package room

import (
	"errors"
	"fmt"
)

const (
	// Size is the side of a room in cells, equal to the LED matrix side
	Size = 8
	// Count is the number of rooms in the maze
	Count = 4

	// DoorFirst and DoorSecond are the row/column indices of the door openings
	// Up/down doors sit on rows 0 and Size-1 at these columns,
	// left/right doors on columns 0 and Size-1 at these rows
	DoorFirst  = 3
	DoorSecond = 4
)

var (
	// ErrOutOfRange marks a corrupted index into the room tables
	// It is raised through panic: it never results from gameplay
	ErrOutOfRange = errors.New("room: index out of range")

	// ErrNoFreeCell is returned when spawning gave up before landing on a floor cell
	ErrNoFreeCell = errors.New("room: no free cell")
)

// walls stores one bitmap per row, most significant bit is column 0
var walls = [Count][Size]uint8{
	{
		0b11100111,
		0b10000001,
		0b10101001,
		0b00001100,
		0b00000000,
		0b10111001,
		0b10000001,
		0b11100111,
	},
	{
		0b11100111,
		0b10000001,
		0b10100101,
		0b00110000,
		0b00010000,
		0b10110101,
		0b10000001,
		0b11100111,
	},
	{
		0b11100111,
		0b10000001,
		0b10110001,
		0b00011000,
		0b00001000,
		0b10110101,
		0b10000001,
		0b11100111,
	},
	{
		0b11100111,
		0b10000001,
		0b10111101,
		0b00010000,
		0b00010000,
		0b10110101,
		0b10000001,
		0b11100111,
	},
}

// doors maps room and exit direction to the room entered
// Columns follow Direction order: up, down, left, right
var doors = [Count][4]int{
	{2, 2, 1, 1},
	{3, 3, 0, 0},
	{0, 0, 3, 3},
	{1, 1, 2, 2},
}

// IsWall reports whether the cell at (row, col) of room r is a wall
func IsWall(r, row, col int) bool {
	mustRoom(r)
	mustCell(row, col)
	return walls[r][row]>>(Size-1-col)&1 == 1
}

// DoorTarget returns the room reached by leaving room r in direction d
func DoorTarget(r int, d Direction) int {
	mustRoom(r)
	if !d.Valid() {
		panic(fmt.Errorf("%w: direction %d", ErrOutOfRange, d))
	}
	return doors[r][d]
}

// FreeCells counts the floor cells of room r
func FreeCells(r int) int {
	n := 0
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if !IsWall(r, row, col) {
				n++
			}
		}
	}
	return n
}

func mustRoom(r int) {
	if r < 0 || r >= Count {
		panic(fmt.Errorf("%w: room %d", ErrOutOfRange, r))
	}
}

func mustCell(row, col int) {
	if row < 0 || row >= Size || col < 0 || col >= Size {
		panic(fmt.Errorf("%w: cell (%d,%d)", ErrOutOfRange, row, col))
	}
}
