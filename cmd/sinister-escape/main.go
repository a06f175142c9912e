package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/VladWero08/SinisterEscape/audio"
	"github.com/VladWero08/SinisterEscape/config"
	"github.com/VladWero08/SinisterEscape/device"
	"github.com/VladWero08/SinisterEscape/engine"
	"github.com/VladWero08/SinisterEscape/game"
	"github.com/VladWero08/SinisterEscape/highscore"
	"github.com/VladWero08/SinisterEscape/input"
	"github.com/VladWero08/SinisterEscape/logger"
	"github.com/VladWero08/SinisterEscape/menu"
	"github.com/VladWero08/SinisterEscape/spectate"
	"github.com/VladWero08/SinisterEscape/status"
	"github.com/VladWero08/SinisterEscape/storage"
)

// frameInterval paces screen redraws; the loop itself ticks faster
const frameInterval = 16 * time.Millisecond

var (
	configFlag   = flag.String("config", "", "YAML configuration file")
	seedFlag     = flag.Int64("seed", 0, "random seed, 0 seeds from the clock")
	dataFlag     = flag.String("data", "", "EEPROM image file")
	spectateFlag = flag.String("spectate", "", "serve the spectator feed on this address, e.g. :8080")
	muteFlag     = flag.Bool("mute", false, "do not open the audio device")
	legacyFlag   = flag.Bool("legacy-deadzone", false, "ignore the other axis when reading a direction")
	debugFlag    = flag.Bool("debug", false, "fail loudly on spawn errors")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "sinister-escape: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves the configuration; explicitly set flags win
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return cfg, err
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Seed = *seedFlag
		case "data":
			cfg.DataFile = *dataFlag
		case "spectate":
			cfg.Spectate = *spectateFlag
		case "mute":
			cfg.Sound = !*muteFlag
		case "legacy-deadzone":
			cfg.LegacyDeadZone = *legacyFlag
		case "debug":
			cfg.Debug = *debugFlag
		}
	})
	return cfg, cfg.Validate()
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := device.CheckTTY(os.Stdin); err != nil {
		return err
	}

	logCloser, err := logger.Init(cfg)
	if err != nil {
		return err
	}
	defer logCloser.Close()
	log := logger.Log

	store, err := storage.Open(cfg.DataFile)
	if err != nil {
		return err
	}
	img := store.Image()
	board := highscore.NewBoard(img.Highscores, store.SaveHighscores, log)

	buzzer := audio.NewBuzzer(img.Settings.Sound, cfg.Volume, log)
	if cfg.Sound {
		if err := buzzer.Initialize(); err != nil {
			log.WithError(err).Warn("audio unavailable, continuing without sound")
		}
	}
	defer buzzer.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	term := device.NewTerminal(screen, img.Settings.MatrixBrightness, img.Settings.LCDBrightness)
	device.ProtectTerminal(os.Stdin, term.Close)
	defer func() {
		if r := recover(); r != nil {
			device.HandleCrash(r)
		}
	}()
	defer term.Close()
	screen.HideCursor()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	reg := status.NewRegistry()
	clock := engine.NewMonotonicTimeProvider()

	router := menu.NewRouter(menu.Options{
		Display: term.LCD,
		Matrix:  term.Matrix,
		Store:   store,
		Board:   board,
		Audio:   buzzer,
		Status:  reg,
		Log:     log,
		NewGame: func(now time.Time, name string) *game.Game {
			return game.New(game.Options{
				Rand:       rng,
				Matrix:     term.Matrix,
				Display:    term.LCD,
				Highscores: board,
				Sounds:     buzzer,
				Status:     reg,
				Log:        log,
				UserName:   name,
				Debug:      cfg.Debug,
			}, now)
		},
	}, clock.Now())

	icfg := input.DefaultConfig()
	icfg.LegacyDeadZone = cfg.LegacyDeadZone
	sampler := input.NewSampler(icfg)

	var hub *spectate.Hub
	if cfg.Spectate != "" {
		hub = spectate.NewHub(reg)
		srv := spectate.NewServer(cfg.Spectate, hub, log)
		if err := srv.Start(); err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				log.WithError(err).Warn("spectate shutdown")
			}
		}()
	}

	// Terminal events arrive on their own goroutine; the loop drains them
	eventChan := make(chan tcell.Event, 100)
	device.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	})

	log.WithFields(logrus.Fields{
		"seed":     seed,
		"tick":     cfg.TickInterval.String(),
		"data":     cfg.DataFile,
		"spectate": cfg.Spectate,
	}).Info("device started")

	ticks := reg.Ints.Get(status.KeyTicks)
	var lastDraw time.Time

	step := func(now time.Time) bool {
		ticks.Add(1)
	drain:
		for {
			select {
			case ev := <-eventChan:
				if term.HandleEvent(ev, now) == device.KeyQuit {
					return false
				}
			default:
				break drain
			}
		}

		router.Handle(now, sampler.Poll(now, term.Stick))

		if now.Sub(lastDraw) >= frameInterval {
			lastDraw = now
			term.Draw(statusLine(seed, reg, router))
		}
		if hub != nil {
			hub.Offer(now, func() spectate.Frame {
				return spectate.Capture(now, router.Current().Name(), term.Matrix, term.LCD, router.Game(), reg)
			})
		}
		return true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop := engine.NewLoop(cfg.TickInterval, clock)
	err = loop.Run(ctx, step)
	log.WithField("ticks", loop.Ticks()).Info("device stopped")
	if errors.Is(err, engine.ErrStopped) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// statusLine is the debug line under the LCD
func statusLine(seed int64, reg *status.Registry, router *menu.Router) string {
	line := fmt.Sprintf("seed %d  ticks %d  %s",
		seed,
		reg.Ints.Get(status.KeyTicks).Load(),
		router.Current().Name(),
	)
	if g := router.Game(); g != nil {
		line += fmt.Sprintf("  pursuer %s  moves %d  steps %d",
			g.Doctor.State(),
			reg.Ints.Get(status.KeyMoves).Load(),
			reg.Ints.Get(status.KeySteps).Load(),
		)
	}
	return line + "  [arrows/wasd, space, esc]"
}
