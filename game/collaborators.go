// Package game is the real-time core of the handheld: the player, the note,
// Dr. Nocturne and the orchestrator that advances them once per loop tick.
// It draws through small collaborator interfaces and never blocks.
package game

// Matrix is the 8x8 LED surface
type Matrix interface {
	SetCell(row, col int, on bool)
	ClearAll()
}

// Display is the character LCD
type Display interface {
	PrintAt(col, line int, text string)
	Clear()
}

// Highscores decides and stores qualifying escape times
type Highscores interface {
	IsNewHighscore(seconds int) bool
	Record(seconds int, name string)
}

// Sounds plays short buzzer cues; implementations must not block
type Sounds interface {
	Cue(c Cue)
}

// Cue names a gameplay moment worth a sound
type Cue uint8

const (
	CueNotePickup Cue = iota
	CueCaught
	CueLevelUp
	CueWin
	CueLose
)

func (c Cue) String() string {
	switch c {
	case CueNotePickup:
		return "pickup"
	case CueCaught:
		return "caught"
	case CueLevelUp:
		return "levelup"
	case CueWin:
		return "win"
	case CueLose:
		return "lose"
	}
	return "unknown"
}

type silent struct{}

func (silent) Cue(Cue) {}
