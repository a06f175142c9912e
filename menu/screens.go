package menu

import (
	"fmt"
	"time"

	"github.com/VladWero08/SinisterEscape/blink"
	"github.com/VladWero08/SinisterEscape/game"
	"github.com/VladWero08/SinisterEscape/input"
	"github.com/VladWero08/SinisterEscape/room"
	"github.com/VladWero08/SinisterEscape/storage"
)

// BlinkInterval paces every blinking glyph on the LCD
const BlinkInterval = 500 * time.Millisecond

// GlyphExit stands in for the LCD's exit character
const GlyphExit = "×"

// LCD texts
const (
	MsgTitle       = "SinisterEscape"
	MsgRun         = "RUN"
	MsgPressToggle = "Press to toggle!"
	MsgSoundOn     = "Sound ON! "
	MsgSoundOff    = "Sound OFF!"
	MsgEnterName   = "Enter name"
	MsgBack        = "Back"
)

var (
	mainItems     = []string{"Start game", "Highscore", "Settings", "About"}
	settingsItems = []string{"Enter name", "LCD bright", "Matrix bright", "Sound", "Reset scores", MsgBack}
	aboutItems    = []string{MsgTitle, "Get 6 notes", "Flee Nocturne", MsgBack}
)

// Main menu rows
const (
	mainStart = iota
	mainHighscore
	mainSettings
	mainAbout
)

// Settings rows
const (
	settingsName = iota
	settingsLCD
	settingsMatrix
	settingsSound
	settingsReset
	settingsBack
)

// Screen is one state of the device UI
// The set of screens is closed: every implementation lives in this package
type Screen interface {
	// Name identifies the screen in logs and counters
	Name() string
	// Parent is the screen a "back" action returns to; the root has none
	Parent() Screen

	enter(r *Router, now time.Time)
	// handle consumes one tick's event and returns the next screen, or nil to stay
	handle(r *Router, now time.Time, ev input.Event) Screen
}

func printCentered(d game.Display, text string, line int) {
	d.PrintAt(game.CenterCol(text), line, text)
}

// Welcome shows the title with a blinking pair of skulls and plays the theme
type Welcome struct {
	skulls blink.Blinker
}

func (*Welcome) Name() string   { return "welcome" }
func (*Welcome) Parent() Screen { return nil }

func (w *Welcome) enter(r *Router, now time.Time) {
	r.matrix.ClearAll()
	printCentered(r.display, MsgTitle, 0)
	printCentered(r.display, MsgRun, 1)
	w.skulls = blink.Symmetric(BlinkInterval, now)
	w.drawSkulls(r.display)
	r.audio.PlayTheme()
}

func (w *Welcome) handle(r *Router, now time.Time, ev input.Event) Screen {
	if ev.Pressed {
		r.audio.Stop()
		return &Main{}
	}
	if w.skulls.Tick(now) {
		w.drawSkulls(r.display)
	}
	return nil
}

func (w *Welcome) drawSkulls(d game.Display) {
	glyph := " "
	if w.skulls.On {
		glyph = game.GlyphSkull
	}
	col := game.CenterCol(MsgRun)
	d.PrintAt(col-2, 1, glyph)
	d.PrintAt(col+len(MsgRun)+1, 1, glyph)
}

// Main is the top-level menu
type Main struct {
	list list
}

func (*Main) Name() string   { return "main" }
func (*Main) Parent() Screen { return &Welcome{} }

func (m *Main) enter(r *Router, _ time.Time) {
	m.list = newList(mainItems)
	m.list.render(r.display)
}

func (m *Main) handle(r *Router, _ time.Time, ev input.Event) Screen {
	if m.list.move(ev.Direction) {
		m.list.render(r.display)
	}
	if !ev.Pressed {
		return nil
	}
	switch m.list.selected() {
	case mainStart:
		return &Play{}
	case mainHighscore:
		return &Highscores{}
	case mainSettings:
		return &Settings{}
	case mainAbout:
		return &About{}
	}
	return nil
}

// Highscores lists the stored times, fastest first
type Highscores struct {
	list list
}

func (*Highscores) Name() string   { return "highscores" }
func (*Highscores) Parent() Screen { return &Main{} }

func (h *Highscores) enter(r *Router, _ time.Time) {
	rows := r.board.Rows()
	items := make([]string, 0, len(rows)+1)
	for i, e := range rows {
		items = append(items, fmt.Sprintf("%d %s %s", i+1, e.Name, game.FormatTime(e.Seconds)))
	}
	items = append(items, MsgBack)
	h.list = newList(items)
	h.list.render(r.display)
}

func (h *Highscores) handle(r *Router, _ time.Time, ev input.Event) Screen {
	return backList(r, &h.list, h, ev)
}

// About shows a few lines on the game
type About struct {
	list list
}

func (*About) Name() string   { return "about" }
func (*About) Parent() Screen { return &Main{} }

func (a *About) enter(r *Router, _ time.Time) {
	a.list = newList(aboutItems)
	a.list.render(r.display)
}

func (a *About) handle(r *Router, _ time.Time, ev input.Event) Screen {
	return backList(r, &a.list, a, ev)
}

// backList scrolls a read-only list whose last row leads back to the parent
func backList(r *Router, l *list, s Screen, ev input.Event) Screen {
	if l.move(ev.Direction) {
		l.render(r.display)
	}
	if ev.Pressed && l.selected() == len(l.items)-1 {
		return s.Parent()
	}
	return nil
}

// Settings lists the user preferences
type Settings struct {
	list list
}

func (*Settings) Name() string   { return "settings" }
func (*Settings) Parent() Screen { return &Main{} }

func (s *Settings) enter(r *Router, _ time.Time) {
	s.list = newList(settingsItems)
	s.list.render(r.display)
}

func (s *Settings) handle(r *Router, _ time.Time, ev input.Event) Screen {
	if s.list.move(ev.Direction) {
		s.list.render(r.display)
	}
	if !ev.Pressed {
		return nil
	}
	switch s.list.selected() {
	case settingsName:
		return &NameEntry{}
	case settingsLCD:
		return &Brightness{Target: TargetLCD}
	case settingsMatrix:
		return &Brightness{Target: TargetMatrix}
	case settingsSound:
		return &Sound{}
	case settingsReset:
		r.board.Reset()
		r.log.Info("highscores reset")
	case settingsBack:
		return s.Parent()
	}
	return nil
}

// Play runs a round; the game decides when to ask for a name or leave
type Play struct{}

func (*Play) Name() string   { return "game" }
func (*Play) Parent() Screen { return &Main{} }

// enter starts a round unless one is already waiting for this screen
func (p *Play) enter(r *Router, now time.Time) {
	if r.game == nil {
		r.game = r.newGame(now, r.settings().Name)
	}
}

func (p *Play) handle(r *Router, now time.Time, ev input.Event) Screen {
	switch r.game.Tick(now, ev) {
	case game.NeedName:
		return &NameEntry{parent: p, submit: r.game.SubmitName}
	case game.Back:
		r.game = nil
		return p.Parent()
	}
	return nil
}

// Sound toggles the buzzer; moving right selects the exit glyph
type Sound struct {
	exit  bool
	blink blink.Blinker
}

func (*Sound) Name() string   { return "sound" }
func (*Sound) Parent() Screen { return &Settings{} }

func (s *Sound) enter(r *Router, now time.Time) {
	s.exit = false
	s.blink = blink.Symmetric(BlinkInterval, now)
	s.render(r)
}

func (s *Sound) handle(r *Router, now time.Time, ev input.Event) Screen {
	switch {
	case ev.Direction == room.Right && !s.exit:
		s.exit = true
		s.blink.Reset(now)
	case ev.Direction == room.Left && s.exit:
		s.exit = false
		s.render(r)
	}

	if ev.Pressed {
		if s.exit {
			return s.Parent()
		}
		on := !r.settings().Sound
		r.saveSettings(func(st *storage.Settings) { st.Sound = on })
		r.audio.SetEnabled(on)
		s.render(r)
		return nil
	}

	if s.exit && s.blink.Tick(now) {
		glyph := " "
		if s.blink.On {
			glyph = GlyphExit
		}
		r.display.PrintAt(game.LCDWidth-1, 0, glyph)
	}
	return nil
}

func (s *Sound) render(r *Router) {
	msg := MsgSoundOff
	if r.settings().Sound {
		msg = MsgSoundOn
	}
	r.display.PrintAt(0, 0, game.GlyphArrow)
	r.display.PrintAt(2, 0, msg)
	r.display.PrintAt(game.LCDWidth-1, 0, GlyphExit)
	printCentered(r.display, MsgPressToggle, 1)
}
