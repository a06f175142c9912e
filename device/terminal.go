package device

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/VladWero08/SinisterEscape/room"
)

// Screen layout
const (
	originX      = 2
	originY      = 1
	matrixCellW  = 2
	lcdOriginY   = originY + room.Size + 3
	statusOrigin = lcdOriginY + LCDLines + 2
)

// KeyAction is what a key means to the simulator
type KeyAction uint8

const (
	KeyIgnored KeyAction = iota
	KeyStick
	KeyButton
	KeyQuit
)

// Terminal draws the device on a tcell screen and feeds key presses to the stick
type Terminal struct {
	screen tcell.Screen
	Matrix *LEDMatrix
	LCD    *LCD
	Stick  *Stick

	closeOnce sync.Once
}

// NewTerminal wires a screen to fresh hardware
func NewTerminal(screen tcell.Screen, matrixBrightness, lcdBrightness int) *Terminal {
	return &Terminal{
		screen: screen,
		Matrix: NewLEDMatrix(matrixBrightness),
		LCD:    NewLCD(lcdBrightness),
		Stick:  NewStick(),
	}
}

// Close releases the screen; safe to call more than once
func (t *Terminal) Close() {
	t.closeOnce.Do(t.screen.Fini)
}

// Screen returns the underlying tcell screen
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

// HandleEvent applies a tcell event and reports what it meant
func (t *Terminal) HandleEvent(ev tcell.Event, now time.Time) KeyAction {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.handleKey(ev, now)
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return KeyIgnored
}

func (t *Terminal) handleKey(ev *tcell.EventKey, now time.Time) KeyAction {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return KeyQuit
	case tcell.KeyUp:
		t.Stick.Deflect(room.Up, now)
		return KeyStick
	case tcell.KeyDown:
		t.Stick.Deflect(room.Down, now)
		return KeyStick
	case tcell.KeyLeft:
		t.Stick.Deflect(room.Left, now)
		return KeyStick
	case tcell.KeyRight:
		t.Stick.Deflect(room.Right, now)
		return KeyStick
	case tcell.KeyEnter:
		t.Stick.Press(now)
		return KeyButton
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'k', 'w':
			t.Stick.Deflect(room.Up, now)
		case 'j', 's':
			t.Stick.Deflect(room.Down, now)
		case 'h', 'a':
			t.Stick.Deflect(room.Left, now)
		case 'l', 'd':
			t.Stick.Deflect(room.Right, now)
		case ' ':
			t.Stick.Press(now)
			return KeyButton
		case 'q':
			return KeyQuit
		default:
			return KeyIgnored
		}
		return KeyStick
	}
	return KeyIgnored
}

// Draw renders the matrix, the LCD and a status line, then shows the screen
func (t *Terminal) Draw(status string) {
	s := t.screen
	s.Clear()

	frame := tcell.StyleDefault.Foreground(tcell.ColorGray)
	drawBox(s, originX-1, originY-1, room.Size*matrixCellW+2, room.Size+2, frame)
	drawBox(s, originX-1, lcdOriginY-1, LCDWidth+2, LCDLines+2, frame)

	on := tcell.StyleDefault.Foreground(matrixColor(t.Matrix.Brightness()))
	off := tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	for row := 0; row < room.Size; row++ {
		for col := 0; col < room.Size; col++ {
			glyph, style := '·', off
			if t.Matrix.Cell(row, col) {
				glyph, style = '█', on
			}
			x := originX + col*matrixCellW
			s.SetContent(x, originY+row, glyph, nil, style)
			s.SetContent(x+1, originY+row, glyph, nil, style)
		}
	}

	lcdStyle := tcell.StyleDefault.
		Foreground(tcell.ColorBlack).
		Background(lcdColor(t.LCD.Brightness()))
	for line, text := range t.LCD.Lines() {
		col := 0
		for _, r := range text {
			s.SetContent(originX+col, lcdOriginY+line, r, nil, lcdStyle)
			col++
		}
	}

	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for i, r := range status {
		s.SetContent(originX+i, statusOrigin, r, nil, dim)
	}

	s.Show()
}

func drawBox(s tcell.Screen, x, y, w, h int, style tcell.Style) {
	for i := 1; i < w-1; i++ {
		s.SetContent(x+i, y, '─', nil, style)
		s.SetContent(x+i, y+h-1, '─', nil, style)
	}
	for j := 1; j < h-1; j++ {
		s.SetContent(x, y+j, '│', nil, style)
		s.SetContent(x+w-1, y+j, '│', nil, style)
	}
	s.SetContent(x, y, '┌', nil, style)
	s.SetContent(x+w-1, y, '┐', nil, style)
	s.SetContent(x, y+h-1, '└', nil, style)
	s.SetContent(x+w-1, y+h-1, '┘', nil, style)
}

// matrixColor maps brightness 0-15 to a red intensity
func matrixColor(b int) tcell.Color {
	b = max(0, min(b, 15))
	return tcell.NewRGBColor(int32(75+b*12), 0, 0)
}

// lcdColor maps backlight 0-255 to a green-yellow background
func lcdColor(b int) tcell.Color {
	b = max(0, min(b, 255))
	level := int32(40 + b*200/255)
	return tcell.NewRGBColor(level*3/4, level, 0)
}
