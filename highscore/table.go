// Package highscore keeps the fastest escape times with their 3-letter names
package highscore

import (
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	// MaxEntries is the size of the table
	MaxEntries = 3
	// NameLen is the length of a player name
	NameLen = 3
	// DefaultSeconds is shown for empty rows (15:00)
	DefaultSeconds = 900
	// Placeholder names an empty row
	Placeholder = "---"
)

// Entry is one stored time
type Entry struct {
	Seconds int    `yaml:"seconds" json:"seconds"`
	Name    string `yaml:"name" json:"name"`
}

// Table is the sorted list of best times, fastest first
type Table struct {
	Entries []Entry `yaml:"entries"`
}

// Qualifies reports whether seconds would enter the table
// A table with free rows accepts any time; a full one needs a strictly faster time
func (t *Table) Qualifies(seconds int) bool {
	if len(t.Entries) < MaxEntries {
		return true
	}
	return seconds < t.Entries[len(t.Entries)-1].Seconds
}

// Insert places the entry after any equal times and drops what falls off
// It reports whether the entry was stored
func (t *Table) Insert(seconds int, name string) bool {
	if !t.Qualifies(seconds) {
		return false
	}
	at := len(t.Entries)
	for i, e := range t.Entries {
		if seconds < e.Seconds {
			at = i
			break
		}
	}

	t.Entries = append(t.Entries, Entry{})
	copy(t.Entries[at+1:], t.Entries[at:])
	t.Entries[at] = Entry{Seconds: seconds, Name: NormalizeName(name)}
	if len(t.Entries) > MaxEntries {
		t.Entries = t.Entries[:MaxEntries]
	}
	return true
}

// Reset empties the table
func (t *Table) Reset() {
	t.Entries = nil
}

// Rows returns exactly MaxEntries rows, padding with placeholders
func (t *Table) Rows() []Entry {
	rows := make([]Entry, MaxEntries)
	for i := range rows {
		if i < len(t.Entries) {
			rows[i] = t.Entries[i]
		} else {
			rows[i] = Entry{Seconds: DefaultSeconds, Name: Placeholder}
		}
	}
	return rows
}

// Sanitize drops malformed entries and restores ordering of a loaded table
func (t *Table) Sanitize() {
	clean := Table{}
	for _, e := range t.Entries {
		if e.Seconds < 0 {
			continue
		}
		clean.Insert(e.Seconds, e.Name)
	}
	t.Entries = clean.Entries
}

// NormalizeName upper-cases name and fits it to NameLen letters
// Anything outside A-Z becomes 'A'; short names are padded the same way
func NormalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if b.Len() == NameLen {
			break
		}
		if r < 'A' || r > 'Z' {
			r = 'A'
		}
		b.WriteRune(r)
	}
	for b.Len() < NameLen {
		b.WriteByte('A')
	}
	return b.String()
}

// SaveFunc persists a table snapshot
type SaveFunc func(Table) error

// Board serves the game: qualification checks and recording with persistence
type Board struct {
	mu    sync.Mutex
	table Table
	save  SaveFunc
	log   *logrus.Logger
}

// NewBoard wraps table; save may be nil for an in-memory board
func NewBoard(table Table, save SaveFunc, log *logrus.Logger) *Board {
	table.Sanitize()
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Board{table: table, save: save, log: log}
}

// IsNewHighscore reports whether seconds qualifies
func (b *Board) IsNewHighscore(seconds int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.table.Qualifies(seconds)
}

// Record inserts the time and persists the table
// A failed save is logged; the in-memory table keeps the entry
func (b *Board) Record(seconds int, name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.table.Insert(seconds, name) {
		return
	}
	b.persist()
}

// Reset empties and persists the table
func (b *Board) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.table.Reset()
	b.persist()
}

// Rows returns the padded rows for display
func (b *Board) Rows() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.table.Rows()
}

func (b *Board) persist() {
	if b.save == nil {
		return
	}
	snapshot := Table{Entries: append([]Entry(nil), b.table.Entries...)}
	if err := b.save(snapshot); err != nil {
		b.log.WithError(err).Error("save highscores")
	}
}
