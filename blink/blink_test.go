package blink

import (
	"testing"
	"time"
)

func TestSymmetricToggle(t *testing.T) {
	start := time.Unix(0, 0)
	b := Symmetric(50*time.Millisecond, start)

	if b.Tick(start.Add(50 * time.Millisecond)) {
		t.Error("toggled at exactly the interval, want strictly after")
	}
	if !b.Tick(start.Add(51 * time.Millisecond)) {
		t.Fatal("expected toggle after interval")
	}
	if b.On {
		t.Error("expected blinker off after first toggle")
	}
	if !b.Tick(start.Add(102 * time.Millisecond)) {
		t.Fatal("expected second toggle")
	}
	if !b.On {
		t.Error("expected blinker on after second toggle")
	}
}

// TestAsymmetricPhases verifies the on phase lasts longer than the off phase
func TestAsymmetricPhases(t *testing.T) {
	start := time.Unix(100, 0)
	b := New(500*time.Millisecond, 100*time.Millisecond, start)

	now := start.Add(200 * time.Millisecond)
	if b.Tick(now) {
		t.Fatal("on phase ended too early")
	}

	now = start.Add(501 * time.Millisecond)
	if !b.Tick(now) || b.On {
		t.Fatal("expected switch to off after the on interval")
	}

	if !b.Tick(now.Add(101 * time.Millisecond)) || !b.On {
		t.Fatal("expected switch back to on after the off interval")
	}
}

func TestZeroValueNeverToggles(t *testing.T) {
	var b Blinker
	if b.Tick(time.Now()) {
		t.Error("zero blinker toggled")
	}
}

func TestReset(t *testing.T) {
	start := time.Unix(0, 0)
	b := Symmetric(10*time.Millisecond, start)
	b.Tick(start.Add(20 * time.Millisecond))

	later := start.Add(time.Second)
	b.Reset(later)
	if !b.On || !b.Last.Equal(later) {
		t.Errorf("Reset left %+v", b)
	}
}
