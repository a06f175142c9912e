package game

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/VladWero08/SinisterEscape/engine"
	"github.com/VladWero08/SinisterEscape/input"
	"github.com/VladWero08/SinisterEscape/room"
	"github.com/VladWero08/SinisterEscape/status"
)

const tick = 5 * time.Millisecond

type fakeMatrix struct {
	cells  [room.Size][room.Size]bool
	clears int
}

func (m *fakeMatrix) SetCell(row, col int, on bool) { m.cells[row][col] = on }

func (m *fakeMatrix) ClearAll() {
	m.cells = [room.Size][room.Size]bool{}
	m.clears++
}

func (m *fakeMatrix) lit() int {
	n := 0
	for _, row := range m.cells {
		for _, on := range row {
			if on {
				n++
			}
		}
	}
	return n
}

type fakeDisplay struct {
	lines [LCDLines][LCDWidth]rune
}

func newFakeDisplay() *fakeDisplay {
	d := &fakeDisplay{}
	d.Clear()
	return d
}

func (d *fakeDisplay) PrintAt(col, line int, text string) {
	for _, r := range text {
		if col >= 0 && col < LCDWidth && line >= 0 && line < LCDLines {
			d.lines[line][col] = r
		}
		col++
	}
}

func (d *fakeDisplay) Clear() {
	for l := range d.lines {
		for c := range d.lines[l] {
			d.lines[l][c] = ' '
		}
	}
}

func (d *fakeDisplay) line(l int) string {
	return string(d.lines[l][:])
}

type recordedScore struct {
	seconds int
	name    string
}

type fakeScores struct {
	qualify  bool
	asked    []int
	recorded []recordedScore
}

func (s *fakeScores) IsNewHighscore(seconds int) bool {
	s.asked = append(s.asked, seconds)
	return s.qualify
}

func (s *fakeScores) Record(seconds int, name string) {
	s.recorded = append(s.recorded, recordedScore{seconds, name})
}

type fakeSounds struct{ cues []Cue }

func (s *fakeSounds) Cue(c Cue) { s.cues = append(s.cues, c) }

type harness struct {
	t       *testing.T
	clock   *engine.MockTimeProvider
	matrix  *fakeMatrix
	display *fakeDisplay
	scores  *fakeScores
	sounds  *fakeSounds
	status  *status.Registry
	game    *Game
}

func newHarness(t *testing.T, userName string) *harness {
	t.Helper()
	h := &harness{
		t:       t,
		clock:   engine.NewMockTimeProvider(time.Unix(1_000, 0)),
		matrix:  &fakeMatrix{},
		display: newFakeDisplay(),
		scores:  &fakeScores{},
		sounds:  &fakeSounds{},
		status:  status.NewRegistry(),
	}
	h.game = New(Options{
		Rand:       rand.New(rand.NewSource(42)),
		Matrix:     h.matrix,
		Display:    h.display,
		Highscores: h.scores,
		Sounds:     h.sounds,
		Status:     h.status,
		UserName:   userName,
		Debug:      true,
	}, h.clock.Now())
	h.parkNote()
	return h
}

// parkNote moves the note to a floor cell outside the player's room
func (h *harness) parkNote() {
	r := (h.game.Player.Pos.Room + 1) % room.Count
	h.game.Note.Pos = room.Position{Room: r, Row: 1, Col: 1}
}

func (h *harness) tick(ev input.Event) Outcome {
	return h.game.Tick(h.clock.Advance(tick), ev)
}

func (h *harness) idle(d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += tick {
		h.tick(input.Idle)
	}
}

func (h *harness) press() Outcome {
	return h.tick(input.Event{Direction: room.None, Pressed: true})
}

func (h *harness) hasCue(c Cue) bool {
	for _, got := range h.sounds.cues {
		if got == c {
			return true
		}
	}
	return false
}

func (h *harness) lcdContains(text string) bool {
	return strings.Contains(h.display.line(0), text) || strings.Contains(h.display.line(1), text)
}
