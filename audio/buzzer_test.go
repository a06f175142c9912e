package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/VladWero08/SinisterEscape/game"
)

func TestNoteFreq(t *testing.T) {
	if got := NoteFreq(69); math.Abs(got-440) > 1e-9 {
		t.Errorf("A4 = %v", got)
	}
	if got := NoteFreq(81); math.Abs(got-880) > 1e-9 {
		t.Errorf("A5 = %v", got)
	}
	if NoteFreq(Rest) != 0 || NoteFreq(128) != 0 {
		t.Error("out of range notes should be silent")
	}
}

func TestParsePitch(t *testing.T) {
	tests := []struct {
		name    string
		want    int
		wantErr bool
	}{
		{"C4", 60, false},
		{"A4", 69, false},
		{"GS3", 56, false},
		{"as4", 70, false},
		{"REST", Rest, false},
		{"H4", 0, true},
		{"C", 0, true},
		{"CX", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePitch(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v", err)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParsePitch(%q) = %d, want %d", tt.name, got, tt.want)
			}
		})
	}
}

func TestToneTiming(t *testing.T) {
	quarter := Tone{Midi: 60, Division: 4}
	if quarter.Duration() != 250*time.Millisecond {
		t.Errorf("quarter = %v", quarter.Duration())
	}
	if quarter.Slot() != 325*time.Millisecond {
		t.Errorf("quarter slot = %v", quarter.Slot())
	}
	if (Tone{Division: 0}).Duration() != 0 {
		t.Error("zero division should not sound")
	}

	m := Melody{quarter, {Midi: 62, Division: 2}}
	if m.Length() != 325*time.Millisecond+650*time.Millisecond {
		t.Errorf("Length = %v", m.Length())
	}
}

func TestMelodyStreamerLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	m := Cues[game.CueNotePickup]

	want := 0
	for _, tone := range m {
		want += rate.N(tone.Duration()) + rate.N(tone.Slot()-tone.Duration())
	}

	s := m.Streamer(rate)
	buf := make([][2]float64, 512)
	got := 0
	for {
		n, ok := s.Stream(buf)
		got += n
		if !ok {
			break
		}
	}
	if got != want {
		t.Errorf("streamed %d samples, want %d", got, want)
	}
}

func TestSquareWaveAmplitude(t *testing.T) {
	rate := beep.SampleRate(8000)
	s := NewOscillator(440, 10*time.Millisecond, WaveSquare, rate)
	buf := make([][2]float64, rate.N(10*time.Millisecond))
	n, _ := s.Stream(buf)
	for i := 0; i < n; i++ {
		if v := buf[i][0]; v != 1 && v != -1 {
			t.Fatalf("sample %d = %v", i, v)
		}
	}

	rest := NewOscillator(0, 10*time.Millisecond, WaveSquare, rate)
	n, _ = rest.Stream(buf)
	for i := 0; i < n; i++ {
		if buf[i][0] != 0 {
			t.Fatal("rest produced sound")
		}
	}
}

func TestEveryCueHasMelody(t *testing.T) {
	for _, c := range []game.Cue{game.CueNotePickup, game.CueCaught, game.CueLevelUp, game.CueWin, game.CueLose} {
		if len(Cues[c]) == 0 {
			t.Errorf("no melody for %v", c)
		}
	}
	if Theme.Length() <= 0 {
		t.Error("empty theme")
	}
}

// TestBuzzerGracefulDegradation verifies every call is safe without an audio device
func TestBuzzerGracefulDegradation(t *testing.T) {
	b := NewBuzzer(true, 80, nil)
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("buzzer panicked without initialization: %v", r)
		}
	}()

	b.PlayTheme()
	b.Cue(game.CueWin)
	b.Stop()
	b.SetEnabled(false)
	if b.Enabled() {
		t.Error("SetEnabled(false) ignored")
	}
	b.Close()
}

func TestBuzzerInitialization(t *testing.T) {
	b := NewBuzzer(true, 50, nil)
	if err := b.Initialize(); err != nil {
		t.Logf("audio device unavailable (expected in CI): %v", err)
		return
	}
	defer b.Close()

	if err := b.Initialize(); err != nil {
		t.Errorf("second Initialize should be a no-op, got %v", err)
	}
	b.Cue(game.CueNotePickup)
}
