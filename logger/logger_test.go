package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/VladWero08/SinisterEscape/config"
)

func TestInitWritesJSONToFile(t *testing.T) {
	cfg := config.Default()
	cfg.LogFile = filepath.Join(t.TempDir(), "logs", "game.log")
	cfg.LogFormat = "json"
	cfg.LogLevel = "debug"

	closer, err := Init(cfg)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { Log = Discard() })

	Log.WithField("room", 2).Debug("round started")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(cfg.LogFile)
	if err != nil {
		t.Fatal(err)
	}
	line := string(data)
	if !strings.Contains(line, `"room":2`) || !strings.Contains(line, `"msg":"round started"`) {
		t.Errorf("unexpected log line %q", line)
	}
	if Log.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v", Log.GetLevel())
	}
}

func TestInitWithoutFileDiscards(t *testing.T) {
	cfg := config.Default()
	cfg.LogFile = ""
	cfg.LogLevel = "nonsense"

	if _, err := Init(cfg); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { Log = Discard() })

	if Log.GetLevel() != logrus.InfoLevel {
		t.Errorf("bad level should fall back to info, got %v", Log.GetLevel())
	}
}
