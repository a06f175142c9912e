package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/VladWero08/SinisterEscape/game"
)

// GapFactor stretches every tone slot: a tone sounds for its duration and the
// next one starts after duration*GapFactor
const GapFactor = 1.30

// Envelope ramps applied to each buzzer tone
const (
	toneAttack  = 3 * time.Millisecond
	toneRelease = 8 * time.Millisecond
)

// Tone is one note of a melody; Division follows musical notation
// (4 = quarter note = 250ms)
type Tone struct {
	Midi     int
	Division int
}

// Duration is the sounding time of the tone
func (t Tone) Duration() time.Duration {
	if t.Division <= 0 {
		return 0
	}
	return time.Second / time.Duration(t.Division)
}

// Slot is the time from this tone's start to the next one's
func (t Tone) Slot() time.Duration {
	return time.Duration(float64(t.Duration()) * GapFactor)
}

// Melody is a sequence of tones
type Melody []Tone

// Length is the total playing time including gaps
func (m Melody) Length() time.Duration {
	var total time.Duration
	for _, t := range m {
		total += t.Slot()
	}
	return total
}

// Streamer renders m as a square-wave buzzer track
func (m Melody) Streamer(rate beep.SampleRate) beep.Streamer {
	parts := make([]beep.Streamer, 0, 2*len(m))
	for _, t := range m {
		d := t.Duration()
		tone := NewOscillator(NoteFreq(t.Midi), d, WaveSquare, rate)
		parts = append(parts, NewEnvelope(tone, d, toneAttack, toneRelease, rate))
		if gap := t.Slot() - d; gap > 0 {
			parts = append(parts, beep.Silence(rate.N(gap)))
		}
	}
	return beep.Seq(parts...)
}

// melody builds a Melody from parallel pitch and division lists
func melody(pitches []string, divisions []int) Melody {
	if len(pitches) != len(divisions) {
		panic("audio: melody tables differ in length")
	}
	m := make(Melody, len(pitches))
	for i, p := range pitches {
		m[i] = Tone{Midi: MustPitch(p), Division: divisions[i]}
	}
	return m
}

// Theme is the opening of the welcome tune
var Theme = melody(
	[]string{
		"C4", "C4", "G4", "G4", "D4", "C4", "B4", "C4", "D4",
		"G4", "G4", "G4", "G4", "G4", "GS4", "F4", "F4",
		"F4", "F4", "F4", "F4", "F4", "F4", "F4", "G4", "GS4", "G4",
		"REST", "REST",
	},
	[]int{
		2, 2, 2, 2, 2, 2, 1, 2, 2,
		8, 8, 8, 8, 16, 16, 8, 4,
		16, 16, 8, 16, 16, 8, 16, 16, 8, 4,
		4, 2,
	},
)

// Cues are the short gameplay sounds
var Cues = map[game.Cue]Melody{
	game.CueNotePickup: melody([]string{"E5", "A5"}, []int{16, 8}),
	game.CueCaught:     melody([]string{"C4", "GS3", "F3"}, []int{8, 8, 4}),
	game.CueLevelUp:    melody([]string{"A3", "F4", "F4", "A3"}, []int{8, 16, 16, 8}),
	game.CueWin:        melody([]string{"C5", "E5", "G5", "C6"}, []int{8, 8, 8, 4}),
	game.CueLose:       melody([]string{"DS4", "D4", "C4", "REST", "C3"}, []int{8, 8, 8, 16, 2}),
}
