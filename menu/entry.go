package menu

import (
	"fmt"
	"time"

	"github.com/VladWero08/SinisterEscape/blink"
	"github.com/VladWero08/SinisterEscape/game"
	"github.com/VladWero08/SinisterEscape/highscore"
	"github.com/VladWero08/SinisterEscape/input"
	"github.com/VladWero08/SinisterEscape/room"
	"github.com/VladWero08/SinisterEscape/storage"
)

// NameEntry edits the 3-letter player name
// Up/down cycle the letter under the cursor, left/right move the cursor and
// a press confirms. The name is saved to the settings and, when the entry was
// opened by a finished round, submitted to that round.
type NameEntry struct {
	parent Screen
	submit func(name string)

	letters [highscore.NameLen]byte
	cursor  int
	blink   blink.Blinker
}

func (*NameEntry) Name() string { return "name-entry" }

func (n *NameEntry) Parent() Screen {
	if n.parent != nil {
		return n.parent
	}
	return &Settings{}
}

// Value returns the name as currently edited
func (n *NameEntry) Value() string {
	return string(n.letters[:])
}

// Cursor returns the index of the letter being edited
func (n *NameEntry) Cursor() int {
	return n.cursor
}

func (n *NameEntry) enter(r *Router, now time.Time) {
	name := r.settings().Name
	if name == "" {
		name = highscore.NormalizeName("")
	}
	copy(n.letters[:], name)
	n.cursor = 0
	n.blink = blink.Symmetric(BlinkInterval, now)

	printCentered(r.display, MsgEnterName, 0)
	n.render(r.display)
}

func (n *NameEntry) handle(r *Router, now time.Time, ev input.Event) Screen {
	if ev.Pressed {
		name := n.Value()
		r.saveSettings(func(s *storage.Settings) { s.Name = name })
		if n.submit != nil {
			n.submit(name)
		}
		r.log.WithField("name", name).Info("name entered")
		return n.Parent()
	}

	changed := true
	switch ev.Direction {
	case room.Up:
		n.letters[n.cursor] = 'A' + (n.letters[n.cursor]-'A'+1)%26
	case room.Down:
		n.letters[n.cursor] = 'A' + (n.letters[n.cursor]-'A'+25)%26
	case room.Left:
		changed = n.cursor > 0
		if changed {
			n.cursor--
		}
	case room.Right:
		changed = n.cursor < highscore.NameLen-1
		if changed {
			n.cursor++
		}
	default:
		changed = false
	}

	if changed {
		n.blink.Reset(now)
		n.render(r.display)
	} else if n.blink.Tick(now) {
		n.render(r.display)
	}
	return nil
}

func (n *NameEntry) render(d game.Display) {
	col := game.CenterCol(n.Value())
	for i, c := range n.letters {
		glyph := string(rune(c))
		if i == n.cursor && !n.blink.On {
			glyph = " "
		}
		d.PrintAt(col+i, 1, glyph)
	}
}

// Target selects which display a Brightness screen adjusts
type Target uint8

const (
	TargetLCD Target = iota
	TargetMatrix
)

// Brightness steps per stick deflection
const (
	lcdStep    = 15
	matrixStep = 1
)

// Brightness adjusts one display's level with live preview; a press saves it
type Brightness struct {
	Target Target

	value int
	blink blink.Blinker
}

func (b *Brightness) Name() string {
	if b.Target == TargetMatrix {
		return "matrix-bright"
	}
	return "lcd-bright"
}

func (*Brightness) Parent() Screen { return &Settings{} }

// Value returns the level being edited
func (b *Brightness) Value() int {
	return b.value
}

func (b *Brightness) limits() (step, maxLevel int) {
	if b.Target == TargetMatrix {
		return matrixStep, storage.MaxMatrixBrightness
	}
	return lcdStep, storage.MaxLCDBrightness
}

func (b *Brightness) enter(r *Router, now time.Time) {
	s := r.settings()
	label := settingsItems[settingsLCD]
	b.value = s.LCDBrightness
	if b.Target == TargetMatrix {
		label = settingsItems[settingsMatrix]
		b.value = s.MatrixBrightness
	}
	b.blink = blink.Symmetric(BlinkInterval, now)

	printCentered(r.display, label, 0)
	b.render(r.display)
}

func (b *Brightness) handle(r *Router, now time.Time, ev input.Event) Screen {
	if ev.Pressed {
		level := b.value
		r.saveSettings(func(s *storage.Settings) {
			if b.Target == TargetMatrix {
				s.MatrixBrightness = level
			} else {
				s.LCDBrightness = level
			}
		})
		return b.Parent()
	}

	step, maxLevel := b.limits()
	next := b.value
	switch ev.Direction {
	case room.Up, room.Right:
		next = min(b.value+step, maxLevel)
	case room.Down, room.Left:
		next = max(b.value-step, 0)
	}

	if next != b.value {
		b.value = next
		b.preview(r)
		b.blink.Reset(now)
		b.render(r.display)
	} else if b.blink.Tick(now) {
		b.render(r.display)
	}
	return nil
}

func (b *Brightness) preview(r *Router) {
	if b.Target == TargetMatrix {
		dim(r.matrix, b.value)
		return
	}
	dim(r.display, b.value)
}

func (b *Brightness) render(d game.Display) {
	text := fmt.Sprintf("%3d", b.value)
	if !b.blink.On {
		text = "   "
	}
	d.PrintAt(game.CenterCol("- 255 +"), 1, "- "+text+" +")
}
