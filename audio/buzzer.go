// Package audio plays the piezo buzzer's melodies and gameplay cues on the
// system speaker through beep.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/sirupsen/logrus"

	"github.com/VladWero08/SinisterEscape/game"
)

const sampleRate = beep.SampleRate(44100)

// Buzzer is the piezo: one melody at a time, played on the speaker goroutine
// Every method is safe to call when the audio device failed to initialize
type Buzzer struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	current     *beep.Ctrl
	initialized bool
	enabled     bool
	volume      float64
	log         *logrus.Logger
}

// NewBuzzer creates a buzzer; volume is 0-100
func NewBuzzer(enabled bool, volume int, log *logrus.Logger) *Buzzer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Buzzer{
		mixer:   &beep.Mixer{},
		enabled: enabled,
		volume:  float64(volume) / 100.0,
		log:     log,
	}
}

// Initialize opens the audio device
func (b *Buzzer) Initialize() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(b.mixer)
	b.initialized = true
	return nil
}

// Close silences the buzzer
func (b *Buzzer) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}
	b.stopLocked()
	b.mixer.Clear()
	b.initialized = false
}

// SetEnabled mutes or unmutes; muting stops the current melody
func (b *Buzzer) SetEnabled(on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.enabled = on
	if !on {
		b.stopLocked()
	}
}

// Enabled reports whether sound is on
func (b *Buzzer) Enabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.enabled
}

// Play replaces the current melody with m
func (b *Buzzer) Play(m Melody) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized || !b.enabled || len(m) == 0 {
		return
	}
	b.stopLocked()

	ctrl := &beep.Ctrl{Streamer: newVolume(m.Streamer(sampleRate), b.volume)}
	b.current = ctrl
	speaker.Lock()
	b.mixer.Add(ctrl)
	speaker.Unlock()
}

// PlayTheme starts the welcome tune
func (b *Buzzer) PlayTheme() {
	b.Play(Theme)
}

// Cue plays the sound of a gameplay moment
func (b *Buzzer) Cue(c game.Cue) {
	m, ok := Cues[c]
	if !ok {
		b.log.WithField("cue", c.String()).Debug("no melody for cue")
		return
	}
	b.Play(m)
}

// Stop silences the current melody
func (b *Buzzer) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopLocked()
}

func (b *Buzzer) stopLocked() {
	if b.current == nil {
		return
	}
	if b.initialized {
		speaker.Lock()
		b.current.Streamer = nil
		speaker.Unlock()
	} else {
		b.current.Streamer = nil
	}
	b.current = nil
}
