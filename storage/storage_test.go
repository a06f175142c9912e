package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/VladWero08/SinisterEscape/highscore"
)

func TestOpenMissingFileGivesDefaults(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "eeprom.yaml"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	img := s.Image()
	if img.Settings != Default().Settings || len(img.Highscores.Entries) != 0 {
		t.Errorf("image = %+v", img)
	}
}

func TestUpdateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "eeprom.yaml")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}

	err = s.Update(func(img *Image) {
		img.Settings.Name = "vld"
		img.Settings.LCDBrightness = 400
		img.Settings.MatrixBrightness = -2
		img.Settings.Sound = false
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := s.SaveHighscores(highscore.Table{Entries: []highscore.Entry{{Seconds: 95, Name: "VLD"}}}); err != nil {
		t.Fatalf("SaveHighscores: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	img := reopened.Image()
	want := Settings{Name: "VLD", LCDBrightness: MaxLCDBrightness, MatrixBrightness: 0, Sound: false}
	if img.Settings != want {
		t.Errorf("settings = %+v, want %+v", img.Settings, want)
	}
	if len(img.Highscores.Entries) != 1 || img.Highscores.Entries[0].Seconds != 95 {
		t.Errorf("highscores = %v", img.Highscores.Entries)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}

func TestCorruptImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eeprom.yaml")
	if err := os.WriteFile(path, []byte("settings: [not, a, map\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path); !errors.Is(err, ErrCorrupt) {
		t.Errorf("Open = %v, want ErrCorrupt", err)
	}
}

func TestImageReturnsCopy(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "eeprom.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SaveHighscores(highscore.Table{Entries: []highscore.Entry{{Seconds: 10, Name: "AAA"}}}); err != nil {
		t.Fatal(err)
	}
	img := s.Image()
	img.Highscores.Entries[0].Seconds = 999
	if s.Image().Highscores.Entries[0].Seconds != 10 {
		t.Error("Image exposed internal slice")
	}
}
