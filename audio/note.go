package audio

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Rest is the MIDI value of a silent tone
const Rest = -1

// NoteFrequencies holds equal-temperament frequencies for MIDI notes 0-127, A4 (69) = 440Hz
var NoteFrequencies [128]float64

func init() {
	for i := range NoteFrequencies {
		NoteFrequencies[i] = 440.0 * math.Exp2((float64(i)-69.0)/12.0)
	}
}

// NoteFreq returns the frequency of a MIDI note, 0 for rests and out-of-range values
func NoteFreq(midi int) float64 {
	if midi < 0 || midi >= len(NoteFrequencies) {
		return 0
	}
	return NoteFrequencies[midi]
}

var semitones = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

// ParsePitch converts a buzzer pitch name such as "C4", "GS3" or "REST" to MIDI
// The optional S after the letter raises it a semitone
func ParsePitch(name string) (int, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "REST" {
		return Rest, nil
	}
	if len(name) < 2 {
		return 0, fmt.Errorf("pitch %q: too short", name)
	}

	base, ok := semitones[name[0]]
	if !ok {
		return 0, fmt.Errorf("pitch %q: unknown letter", name)
	}
	rest := name[1:]
	if rest[0] == 'S' {
		base++
		rest = rest[1:]
	}
	octave, err := strconv.Atoi(rest)
	if err != nil || octave < -1 || octave > 9 {
		return 0, fmt.Errorf("pitch %q: bad octave", name)
	}

	midi := 12*(octave+1) + base
	if midi >= len(NoteFrequencies) {
		return 0, fmt.Errorf("pitch %q: out of range", name)
	}
	return midi, nil
}

// MustPitch is ParsePitch for compile-time melody tables
func MustPitch(name string) int {
	midi, err := ParsePitch(name)
	if err != nil {
		panic(err)
	}
	return midi
}
