// Package menu drives the handheld outside a round: the welcome screen, the
// menus and the entry widgets. It hands the loop over to a game.Game while a
// round is played and takes it back when the player leaves.
package menu

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/VladWero08/SinisterEscape/game"
	"github.com/VladWero08/SinisterEscape/highscore"
	"github.com/VladWero08/SinisterEscape/input"
	"github.com/VladWero08/SinisterEscape/logger"
	"github.com/VladWero08/SinisterEscape/status"
	"github.com/VladWero08/SinisterEscape/storage"
)

// Dimmable is a display with adjustable brightness
type Dimmable interface {
	SetBrightness(level int)
}

// Audio is the part of the buzzer the menu controls
type Audio interface {
	SetEnabled(on bool)
	PlayTheme()
	Stop()
}

// GameFactory starts a round for the named player
type GameFactory func(now time.Time, userName string) *game.Game

// Options wires a Router; Audio, Status and Log may be nil
type Options struct {
	Display game.Display
	Matrix  game.Matrix
	Store   *storage.Store
	Board   *highscore.Board
	Audio   Audio
	NewGame GameFactory
	Status  *status.Registry
	Log     *logrus.Logger
}

// Router owns the active screen and routes every tick's event to it
// All methods must be called from the loop goroutine
type Router struct {
	display game.Display
	matrix  game.Matrix
	store   *storage.Store
	board   *highscore.Board
	audio   Audio
	newGame GameFactory
	log     *logrus.Logger
	screen  *status.AtomicString

	current Screen
	game    *game.Game
}

// NewRouter applies the stored settings and opens the welcome screen
func NewRouter(opts Options, now time.Time) *Router {
	r := &Router{
		display: opts.Display,
		matrix:  opts.Matrix,
		store:   opts.Store,
		board:   opts.Board,
		audio:   opts.Audio,
		newGame: opts.NewGame,
		log:     opts.Log,
	}
	if r.audio == nil {
		r.audio = mute{}
	}
	if r.log == nil {
		r.log = logger.Log
	}
	reg := opts.Status
	if reg == nil {
		reg = status.NewRegistry()
	}
	r.screen = reg.Strings.Get(status.KeyScreen)

	s := r.settings()
	dim(r.display, s.LCDBrightness)
	dim(r.matrix, s.MatrixBrightness)
	r.audio.SetEnabled(s.Sound)

	r.switchTo(&Welcome{}, now)
	return r
}

// Current returns the active screen
func (r *Router) Current() Screen {
	return r.current
}

// Game returns the round in progress, nil outside the game screen
func (r *Router) Game() *game.Game {
	return r.game
}

// Handle feeds one tick's event to the active screen
func (r *Router) Handle(now time.Time, ev input.Event) {
	if next := r.current.handle(r, now, ev); next != nil {
		r.switchTo(next, now)
	}
}

func (r *Router) switchTo(next Screen, now time.Time) {
	from := "none"
	if r.current != nil {
		from = r.current.Name()
	}
	r.current = next
	r.screen.Store(next.Name())
	r.display.Clear()
	next.enter(r, now)
	r.log.WithFields(logrus.Fields{
		"from": from,
		"to":   next.Name(),
	}).Debug("screen changed")
}

func (r *Router) settings() storage.Settings {
	return r.store.Image().Settings
}

// saveSettings persists a settings change; failures are logged and the device keeps running
func (r *Router) saveSettings(fn func(*storage.Settings)) {
	err := r.store.Update(func(img *storage.Image) { fn(&img.Settings) })
	if err != nil {
		r.log.WithError(err).Error("save settings")
	}
}

func dim(target any, level int) {
	if d, ok := target.(Dimmable); ok {
		d.SetBrightness(level)
	}
}

type mute struct{}

func (mute) SetEnabled(bool) {}
func (mute) PlayTheme()      {}
func (mute) Stop()           {}
