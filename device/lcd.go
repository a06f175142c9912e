package device

import "sync"

// LCD geometry
const (
	LCDWidth = 16
	LCDLines = 2
)

// LCD is a 16x2 character display
type LCD struct {
	mu         sync.RWMutex
	cells      [LCDLines][LCDWidth]rune
	brightness int
}

// NewLCD creates a blank display
func NewLCD(brightness int) *LCD {
	l := &LCD{brightness: brightness}
	l.Clear()
	return l
}

// PrintAt writes text from (col, line); characters past the edge are dropped
func (l *LCD) PrintAt(col, line int, text string) {
	if line < 0 || line >= LCDLines {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range text {
		if col >= LCDWidth {
			break
		}
		if col >= 0 {
			l.cells[line][col] = r
		}
		col++
	}
}

// Clear blanks both lines
func (l *LCD) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for line := range l.cells {
		for col := range l.cells[line] {
			l.cells[line][col] = ' '
		}
	}
}

// Line returns the text of one line
func (l *LCD) Line(line int) string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return string(l.cells[line][:])
}

// Lines returns both lines
func (l *LCD) Lines() [LCDLines]string {
	return [LCDLines]string{l.Line(0), l.Line(1)}
}

// SetBrightness sets the backlight, 0-255
func (l *LCD) SetBrightness(b int) {
	l.mu.Lock()
	l.brightness = b
	l.mu.Unlock()
}

// Brightness returns the backlight level
func (l *LCD) Brightness() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.brightness
}
