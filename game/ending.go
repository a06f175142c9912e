package game

import (
	"time"

	"github.com/VladWero08/SinisterEscape/input"
	"github.com/VladWero08/SinisterEscape/room"
)

// Durations of the LCD messages
const (
	MessageDuration    = 2 * time.Second
	TransitionDuration = 100 * time.Millisecond
	ResultDuration     = 3 * time.Second
	HighscoreDuration  = 2 * time.Second
)

// Phase is the sub-state of a round, derived from the time since it ended
type Phase uint8

const (
	PhasePlaying Phase = iota
	PhaseResult
	PhaseResultBlank
	PhaseHighscore
	PhaseHighscoreBlank
	PhaseNameEntry
	PhaseChoice
)

func (p Phase) String() string {
	switch p {
	case PhaseResult:
		return "result"
	case PhaseResultBlank, PhaseHighscoreBlank:
		return "transition"
	case PhaseHighscore:
		return "highscore"
	case PhaseNameEntry:
		return "name-entry"
	case PhaseChoice:
		return "choice"
	}
	return "playing"
}

// Choice rows of the end menu
const (
	ChoicePlayAgain = 0
	ChoiceBack      = 1
)

// PhaseAt computes the phase at now from cumulative thresholds on now-EndedAt
func (g *Game) PhaseAt(now time.Time) Phase {
	if g.Result == Undecided {
		return PhasePlaying
	}

	since := now.Sub(g.EndedAt)
	resultEnd := ResultDuration
	resultBlankEnd := resultEnd + TransitionDuration
	switch {
	case since < resultEnd:
		return PhaseResult
	case since <= resultBlankEnd:
		return PhaseResultBlank
	}

	if !g.Player.HasHighscore {
		return PhaseChoice
	}

	highscoreEnd := resultBlankEnd + HighscoreDuration
	highscoreBlankEnd := highscoreEnd + TransitionDuration
	switch {
	case since < highscoreEnd:
		return PhaseHighscore
	case since <= highscoreBlankEnd:
		return PhaseHighscoreBlank
	}

	if !g.recorded {
		return PhaseNameEntry
	}
	return PhaseChoice
}

// Choice returns the highlighted row of the end menu
func (g *Game) Choice() int {
	return g.choice
}

func (g *Game) tickEnded(now time.Time, ev input.Event) Outcome {
	phase := g.PhaseAt(now)
	if phase != g.shown {
		g.shown = phase
		g.display.Clear()
		g.metrics.phase.Store(phase.String())
		g.renderPhase(phase)
	}

	switch phase {
	case PhaseNameEntry:
		return NeedName
	case PhaseChoice:
		return g.handleChoice(now, ev)
	}
	return Continue
}

// renderPhase draws the static content of a phase once on entry
func (g *Game) renderPhase(phase Phase) {
	switch phase {
	case PhaseResult:
		msg := MsgLost
		if g.Result == Won {
			msg = MsgWon
		}
		g.printCentered(msg, 0)
		g.display.PrintAt(5, 1, FormatTime(g.Elapsed))
	case PhaseHighscore:
		g.printCentered(MsgHighscore, 0)
		g.display.PrintAt(5, 1, FormatTime(g.Elapsed))
	case PhaseChoice:
		g.display.PrintAt(0, g.choice, GlyphArrow)
		g.display.PrintAt(2, 0, MsgPlayAgain)
		g.display.PrintAt(2, 1, MsgBack)
	}
}

func (g *Game) handleChoice(now time.Time, ev input.Event) Outcome {
	switch {
	case ev.Direction == room.Up && g.choice == ChoiceBack:
		g.moveArrow(ChoicePlayAgain)
	case ev.Direction == room.Down && g.choice == ChoicePlayAgain:
		g.moveArrow(ChoiceBack)
	}

	if !ev.Pressed {
		return Continue
	}
	if g.choice == ChoicePlayAgain {
		g.Start(now)
		return PlayAgain
	}
	g.display.Clear()
	g.matrix.ClearAll()
	return Back
}

func (g *Game) moveArrow(to int) {
	g.display.PrintAt(0, g.choice, " ")
	g.choice = to
	g.display.PrintAt(0, g.choice, GlyphArrow)
}
