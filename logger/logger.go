// Package logger owns the process-wide logrus instance
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/VladWero08/SinisterEscape/config"
)

// Log is the application logger
// It discards everything until Init runs, so packages may log unconditionally
var Log = Discard()

// Discard returns a logger that writes nowhere
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Init configures Log from cfg
// The terminal belongs to the screen, so output goes to cfg.LogFile; an empty
// LogFile keeps the discard logger. The returned closer releases the file.
func Init(cfg config.Config) (io.Closer, error) {
	l := logrus.New()

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if strings.ToLower(cfg.LogFormat) == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			DisableColors: true,
		})
	}

	if cfg.LogFile == "" {
		l.SetOutput(io.Discard)
		Log = l
		return io.NopCloser(nil), nil
	}

	if dir := filepath.Dir(cfg.LogFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l.SetOutput(f)
	Log = l
	return f, nil
}
