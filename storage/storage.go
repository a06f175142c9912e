// Package storage persists the device's EEPROM image as a YAML file:
// the settings and the highscore table.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/VladWero08/SinisterEscape/highscore"
)

// Version of the image layout
const Version = 1

// Brightness ranges of the two displays
const (
	MaxLCDBrightness    = 255
	MaxMatrixBrightness = 15
)

// ErrCorrupt marks an image file that exists but cannot be decoded
var ErrCorrupt = errors.New("storage: corrupt image")

// Settings are the user preferences edited from the settings menu
type Settings struct {
	Name             string `yaml:"name"`
	LCDBrightness    int    `yaml:"lcd_brightness"`
	MatrixBrightness int    `yaml:"matrix_brightness"`
	Sound            bool   `yaml:"sound"`
}

// Image is the whole persisted state
type Image struct {
	Version    int             `yaml:"version"`
	Settings   Settings        `yaml:"settings"`
	Highscores highscore.Table `yaml:"highscores"`
}

// Default returns a factory-fresh image
func Default() Image {
	return Image{
		Version: Version,
		Settings: Settings{
			LCDBrightness:    200,
			MatrixBrightness: 8,
			Sound:            true,
		},
	}
}

// Clamp forces every value into its valid range
func (img *Image) Clamp() {
	img.Version = Version
	img.Settings.LCDBrightness = clamp(img.Settings.LCDBrightness, 0, MaxLCDBrightness)
	img.Settings.MatrixBrightness = clamp(img.Settings.MatrixBrightness, 0, MaxMatrixBrightness)
	if img.Settings.Name != "" {
		img.Settings.Name = highscore.NormalizeName(img.Settings.Name)
	}
	img.Highscores.Sanitize()
}

func clamp(v, lo, hi int) int {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}

// Store is a file-backed image with an in-memory copy
type Store struct {
	path string

	mu  sync.Mutex
	img Image
}

// Open loads the image at path; a missing file yields the defaults
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	img, err := read(path)
	if err != nil {
		return nil, err
	}
	s.img = img
	return s, nil
}

// Path returns the backing file
func (s *Store) Path() string {
	return s.path
}

// Image returns a copy of the current image
func (s *Store) Image() Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	img := s.img
	img.Highscores.Entries = append([]highscore.Entry(nil), s.img.Highscores.Entries...)
	return img
}

// Update applies fn to the image and writes it out
func (s *Store) Update(fn func(*Image)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.img)
	s.img.Clamp()
	return write(s.path, s.img)
}

// SaveHighscores is a highscore.SaveFunc writing through the store
func (s *Store) SaveHighscores(t highscore.Table) error {
	return s.Update(func(img *Image) { img.Highscores = t })
}

func read(path string) (Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Image{}, fmt.Errorf("read %s: %w", path, err)
	}

	img := Default()
	if err := yaml.Unmarshal(data, &img); err != nil {
		return Image{}, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}
	img.Clamp()
	return img, nil
}

// write replaces the file atomically through a temp file in the same directory
func write(path string, img Image) error {
	data, err := yaml.Marshal(img)
	if err != nil {
		return fmt.Errorf("encode image: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".sinister-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp image: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp image: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod image: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
