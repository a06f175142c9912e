package device

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"golang.org/x/term"

	"github.com/VladWero08/SinisterEscape/logger"
)

// ErrNoTTY is returned when the simulator is started without a terminal
var ErrNoTTY = errors.New("device: standard input is not a terminal")

// Escape sequences restoring a sane terminal
const (
	csiCursorShow    = "\x1b[?25h"
	csiAltScreenExit = "\x1b[?1049l"
	csiSGR0          = "\x1b[0m"
)

var crash struct {
	sync.Mutex
	cleanup func()
	state   *term.State
	fd      int
}

// CheckTTY fails with ErrNoTTY unless f is a terminal
func CheckTTY(f *os.File) error {
	if !term.IsTerminal(int(f.Fd())) {
		return ErrNoTTY
	}
	return nil
}

// ProtectTerminal records the tty state of f and a cleanup (usually the
// screen's Close) for HandleCrash to run before printing the report
func ProtectTerminal(f *os.File, cleanup func()) {
	crash.Lock()
	defer crash.Unlock()

	crash.cleanup = cleanup
	crash.fd = int(f.Fd())
	if state, err := term.GetState(crash.fd); err == nil {
		crash.state = state
	}
}

// EmergencyReset writes the sequences that undo the screen's terminal modes
func EmergencyReset(w io.Writer) {
	io.WriteString(w, csiCursorShow+csiAltScreenExit+csiSGR0)
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}
}

// HandleCrash restores the terminal, prints the panic with its stack and exits
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crash.Lock()
	cleanup, state, fd := crash.cleanup, crash.state, crash.fd
	crash.Unlock()

	if cleanup != nil {
		cleanup()
	}
	EmergencyReset(os.Stdout)
	if state != nil {
		term.Restore(fd, state)
	}

	logger.Log.WithField("panic", fmt.Sprint(r)).Error("crashed")
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mSINISTER ESCAPE CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	os.Exit(1)
}

// Go runs fn in a new goroutine whose panics go through HandleCrash
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
