// Package spectate streams the device's state to remote viewers over
// websocket: the LED matrix, the LCD lines, the round summary and the counters.
package spectate

import (
	"strings"
	"time"

	"github.com/VladWero08/SinisterEscape/game"
	"github.com/VladWero08/SinisterEscape/room"
	"github.com/VladWero08/SinisterEscape/status"
)

// Frame is one snapshot sent to every viewer
type Frame struct {
	Time   time.Time      `json:"time"`
	Screen string         `json:"screen"`
	Matrix []string       `json:"matrix"`
	LCD    []string       `json:"lcd"`
	Game   *game.Summary  `json:"game,omitempty"`
	Status map[string]any `json:"status,omitempty"`
}

// MatrixSource exposes the matrix as one bitmap per row
type MatrixSource interface {
	Rows() [room.Size]uint8
}

// LCDSource exposes the LCD text
type LCDSource interface {
	Lines() [2]string
}

// Capture builds a frame; g and reg may be nil
func Capture(now time.Time, screen string, m MatrixSource, l LCDSource, g *game.Game, reg *status.Registry) Frame {
	f := Frame{
		Time:   now,
		Screen: screen,
		Matrix: MatrixRows(m.Rows()),
	}
	lines := l.Lines()
	f.LCD = lines[:]
	if g != nil {
		s := g.Summary(now)
		f.Game = &s
	}
	if reg != nil {
		f.Status = reg.Snapshot()
	}
	return f
}

// MatrixRows renders bitmaps as strings of '#' (lit) and '.' (dark)
func MatrixRows(rows [room.Size]uint8) []string {
	out := make([]string, len(rows))
	var b strings.Builder
	for i, bits := range rows {
		b.Reset()
		for col := 0; col < room.Size; col++ {
			if bits>>(room.Size-1-col)&1 == 1 {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		out[i] = b.String()
	}
	return out
}
