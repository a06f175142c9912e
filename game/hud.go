package game

import (
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"
)

// LCD geometry
const (
	LCDWidth = 16
	LCDLines = 2
)

// HUD layout on the first LCD line
const (
	hudLevelCol = 3
	hudTimeCol  = 6
	hudLivesCol = 13
	hudNotesCol = 7
)

// Glyphs standing in for the LCD's custom characters
const (
	GlyphSkull = "☠"
	GlyphArrow = ">"
)

// LCD texts
const (
	MsgNocturne   = "Dr. Nocturne"
	MsgSpawned    = "was spawned..."
	MsgFaster     = "is faster..."
	MsgWon        = "You escaped!"
	MsgLost       = "You died!"
	MsgHighscore  = "New highscore!"
	MsgPlayAgain  = "Play again"
	MsgBack       = "Back"
	MsgPaused     = "Paused"
	MsgResumeHint = "Press to resume"
)

// FormatTime renders seconds as mm:ss
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// CenterCol returns the column that centres text on an LCD line
func CenterCol(text string) int {
	n := utf8.RuneCountInString(text)
	if n >= LCDWidth {
		return 0
	}
	return (LCDWidth - n) / 2
}

func (g *Game) printCentered(text string, line int) {
	g.display.PrintAt(CenterCol(text), line, text)
}

// renderHUD draws the running status, or the milestone message while it lasts
func (g *Game) renderHUD(now time.Time) {
	p := g.Player
	if g.milestoneNotes != 0 {
		since := now.Sub(g.milestoneAt)
		if since < MessageDuration && p.Notes == g.milestoneNotes {
			second := MsgSpawned
			if g.milestoneNotes == MilestoneFaster {
				second = MsgFaster
			}
			g.printCentered(MsgNocturne, 0)
			g.printCentered(second, 1)
			return
		}
		if since >= MessageDuration && since <= MessageDuration+TransitionDuration {
			g.display.Clear()
		}
	}

	g.display.PrintAt(0, 0, "LVL")
	g.display.PrintAt(hudLevelCol, 0, strconv.Itoa(g.Doctor.Level))
	g.display.PrintAt(hudTimeCol, 0, FormatTime(g.Elapsed))
	for i := 0; i < StartLives; i++ {
		glyph := " "
		if i < p.Lives {
			glyph = GlyphSkull
		}
		g.display.PrintAt(hudLivesCol+i, 0, glyph)
	}
	g.display.PrintAt(0, 1, "Notes: ")
	g.display.PrintAt(hudNotesCol, 1, strconv.Itoa(p.Notes))
}

func (g *Game) renderPause() {
	g.printCentered(MsgPaused, 0)
	g.printCentered(MsgResumeHint, 1)
}
