package menu

import (
	"github.com/VladWero08/SinisterEscape/game"
	"github.com/VladWero08/SinisterEscape/room"
)

// list is a menu scrolled through a two-line window
// The arrow moves between the lines first; the window scrolls once the
// arrow sits on the edge line
type list struct {
	items []string
	top   int
	line  int
}

func newList(items []string) list {
	return list{items: items}
}

func (l *list) selected() int {
	return l.top + l.line
}

// move applies a direction and reports whether the view changed
func (l *list) move(d room.Direction) bool {
	switch d {
	case room.Up:
		if l.line == 1 {
			l.line = 0
			return true
		}
		if l.top > 0 {
			l.top--
			return true
		}
	case room.Down:
		if l.line == 0 && len(l.items) > 1 {
			l.line = 1
			return true
		}
		if l.line == 1 && l.top < len(l.items)-2 {
			l.top++
			return true
		}
	}
	return false
}

func (l *list) render(d game.Display) {
	d.Clear()
	d.PrintAt(0, l.line, game.GlyphArrow)
	d.PrintAt(2, 0, l.items[l.top])
	if l.top+1 < len(l.items) {
		d.PrintAt(2, 1, l.items[l.top+1])
	}
}
