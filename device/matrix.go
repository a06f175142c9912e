// Package device simulates the handheld's hardware on a terminal: the 8x8 LED
// matrix, the 16x2 character LCD and the analog stick with its button.
package device

import (
	"sync"

	"github.com/VladWero08/SinisterEscape/room"
)

// LEDMatrix is the in-memory state of the LED matrix
// Written by the loop goroutine; the spectator feed reads snapshots concurrently
type LEDMatrix struct {
	mu         sync.RWMutex
	cells      [room.Size][room.Size]bool
	brightness int
}

// NewLEDMatrix creates a dark matrix
func NewLEDMatrix(brightness int) *LEDMatrix {
	return &LEDMatrix{brightness: brightness}
}

// SetCell switches one LED; out-of-range cells are ignored
func (m *LEDMatrix) SetCell(row, col int, on bool) {
	if row < 0 || row >= room.Size || col < 0 || col >= room.Size {
		return
	}
	m.mu.Lock()
	m.cells[row][col] = on
	m.mu.Unlock()
}

// ClearAll switches every LED off
func (m *LEDMatrix) ClearAll() {
	m.mu.Lock()
	m.cells = [room.Size][room.Size]bool{}
	m.mu.Unlock()
}

// Cell reports whether the LED at (row, col) is on
func (m *LEDMatrix) Cell(row, col int) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cells[row][col]
}

// Rows returns the matrix as one bitmap per row, most significant bit is column 0
func (m *LEDMatrix) Rows() [room.Size]uint8 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var rows [room.Size]uint8
	for r := range m.cells {
		for c, on := range m.cells[r] {
			if on {
				rows[r] |= 1 << (room.Size - 1 - c)
			}
		}
	}
	return rows
}

// SetBrightness sets the intensity, 0-15
func (m *LEDMatrix) SetBrightness(b int) {
	m.mu.Lock()
	m.brightness = b
	m.mu.Unlock()
}

// Brightness returns the intensity
func (m *LEDMatrix) Brightness() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.brightness
}
