package game

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/VladWero08/SinisterEscape/input"
	"github.com/VladWero08/SinisterEscape/logger"
	"github.com/VladWero08/SinisterEscape/room"
	"github.com/VladWero08/SinisterEscape/status"
)

const (
	// NotesToWin ends the round as a win
	NotesToWin = 6

	// Note milestones that level up and arm the pursuer
	MilestoneSpawn  = 2
	MilestoneFaster = 4
	// From ExcludeRoomFrom notes the note respawns outside the player's room
	ExcludeRoomFrom = 3
	// From SameRoomFrom notes the pursuer spawns in the player's room
	SameRoomFrom = 4
)

// Outcome tells the caller what to do after a tick
type Outcome uint8

const (
	// Continue: keep ticking the game
	Continue Outcome = iota
	// NeedName: run name entry, then call SubmitName
	NeedName
	// PlayAgain: a fresh round already started
	PlayAgain
	// Back: return to the parent screen
	Back
)

func (o Outcome) String() string {
	switch o {
	case NeedName:
		return "need-name"
	case PlayAgain:
		return "play-again"
	case Back:
		return "back"
	}
	return "continue"
}

// Result of a round
type Result uint8

const (
	Undecided Result = iota
	Won
	Lost
)

func (r Result) String() string {
	switch r {
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return "running"
}

// Options wires a Game to its collaborators
// Matrix, Display and Rand are required; the rest may be nil
type Options struct {
	Rand       room.Rand
	Matrix     Matrix
	Display    Display
	Highscores Highscores
	Sounds     Sounds
	Status     *status.Registry
	Log        *logrus.Logger

	// UserName is the stored player name; empty means none entered yet
	UserName string
	// Debug panics on spawn failures instead of logging them
	Debug bool
}

// Game is the round orchestrator
// All methods must be called from the loop goroutine
type Game struct {
	rng     room.Rand
	matrix  Matrix
	display Display
	scores  Highscores
	sounds  Sounds
	logBase *logrus.Logger
	log     *logrus.Entry
	debug   bool
	metrics metrics

	userName string

	Player *Player
	Note   *Note
	Doctor *Nocturne

	RunID   string
	Elapsed int
	Paused  bool
	Result  Result
	EndedAt time.Time
	DiedAt  time.Time

	lastIncrement  time.Time
	milestoneAt    time.Time
	milestoneNotes int

	recorded bool
	choice   int
	shown    Phase
}

// New creates a game and starts its first round
func New(opts Options, now time.Time) *Game {
	g := &Game{
		rng:      opts.Rand,
		matrix:   opts.Matrix,
		display:  opts.Display,
		scores:   opts.Highscores,
		sounds:   opts.Sounds,
		logBase:  opts.Log,
		debug:    opts.Debug,
		userName: opts.UserName,
		metrics:  newMetrics(opts.Status),
	}
	if g.sounds == nil {
		g.sounds = silent{}
	}
	if g.logBase == nil {
		g.logBase = logger.Log
	}

	g.Player = NewPlayer(g.rng, now, g.userName != "")
	g.Note = NewNote(now)
	g.Doctor = NewNocturne(now)
	g.Start(now)
	return g
}

// Start resets every entity and begins a new round
func (g *Game) Start(now time.Time) {
	g.RunID = uuid.NewString()
	g.log = g.logBase.WithField("run_id", g.RunID)

	g.Player.Reset(g.rng, now)
	g.Player.HasUserName = g.userName != ""
	g.spawned(g.Note.Spawn(g.rng, -1))
	g.spawned(g.Doctor.Reset(g.rng, now))
	g.Note.Blink.Reset(now)

	g.Elapsed = 0
	g.Paused = false
	g.Result = Undecided
	g.EndedAt = time.Time{}
	g.DiedAt = time.Time{}
	g.lastIncrement = now
	g.milestoneAt = time.Time{}
	g.milestoneNotes = 0
	g.recorded = false
	g.choice = 0
	g.shown = PhasePlaying

	g.display.Clear()
	g.drawRoom()

	g.metrics.rounds.Add(1)
	g.metrics.elapsed.Store(0)
	g.metrics.paused.Store(false)
	g.metrics.phase.Store(PhasePlaying.String())
	g.metrics.state.Store(Dormant.String())

	g.log.WithFields(logrus.Fields{
		"room": g.Player.Pos.Room,
		"note": g.Note.Pos.String(),
	}).Info("round started")
}

// Running reports whether the round is still being played
func (g *Game) Running() bool {
	return g.Result == Undecided
}

// UserName returns the name highscores are recorded under
func (g *Game) UserName() string {
	return g.userName
}

// Tick advances the game by one loop iteration
func (g *Game) Tick(now time.Time, ev input.Event) Outcome {
	if g.Result != Undecided {
		return g.tickEnded(now, ev)
	}

	if ev.Pressed {
		g.togglePause(now)
	}
	if g.Paused {
		g.renderPause()
		return Continue
	}

	g.advanceClock(now)
	g.movePlayer(ev.Direction, now)

	d := g.Doctor
	if d.Waiting {
		if d.CheckTrigger(g.Player.Pos, now) {
			g.log.WithField("level", d.Level).Debug("pursuer started chasing")
		}
		d.Render(g.matrix, g.Player.Pos, now)
	}

	if d.Chasing {
		if !d.Pos.SameRoom(g.Player.Pos) {
			d.Chasing = false
		} else {
			g.stepPursuer(now)
			g.checkCaught(now)
		}
		d.Render(g.matrix, g.Player.Pos, now)
	}

	if !d.Active() {
		g.Note.Render(g.matrix, g.Player.Pos, now)
		g.checkPickup(now)
	}
	g.metrics.state.Store(d.State().String())
	if d.Pos.SameRoom(g.Player.Pos) {
		g.metrics.distance.Set(d.Pos.Distance(g.Player.Pos))
	}

	if g.checkEnd(now) {
		return Continue
	}

	g.renderHUD(now)
	g.Player.Render(g.matrix, now)
	return Continue
}

// advanceClock counts whole seconds against the last increment
func (g *Game) advanceClock(now time.Time) {
	if now.Sub(g.lastIncrement) >= time.Second {
		g.lastIncrement = now
		g.Elapsed++
		g.metrics.elapsed.Store(int64(g.Elapsed))
	}
}

func (g *Game) togglePause(now time.Time) {
	g.Paused = !g.Paused
	g.lastIncrement = now
	g.display.Clear()
	g.metrics.paused.Store(g.Paused)
	g.log.WithField("paused", g.Paused).Debug("pause toggled")
}

func (g *Game) movePlayer(d room.Direction, now time.Time) {
	if d == room.None {
		return
	}
	m := g.Player.Move(d)
	if !m.Moved() {
		return
	}
	g.metrics.moves.Add(1)

	if m.ChangedRoom() {
		g.metrics.crossings.Add(1)
		g.drawRoom()
		g.log.WithFields(logrus.Fields{
			"from": m.From.Room,
			"room": m.To.Room,
		}).Debug("player crossed a door")
	} else {
		g.matrix.SetCell(m.From.Row, m.From.Col, false)
	}
	g.Player.Blink.Reset(now)
	g.matrix.SetCell(m.To.Row, m.To.Col, true)
}

// drawRoom clears the matrix and lights the walls of the player's room
func (g *Game) drawRoom() {
	DrawRoom(g.matrix, g.Player.Pos.Room)
}

// DrawRoom clears m and draws the walls of room r
func DrawRoom(m Matrix, r int) {
	m.ClearAll()
	for row := 0; row < room.Size; row++ {
		for col := 0; col < room.Size; col++ {
			if room.IsWall(r, row, col) {
				m.SetCell(row, col, true)
			}
		}
	}
}

func (g *Game) stepPursuer(now time.Time) {
	d := g.Doctor
	from, moved := d.Chase(g.Player.Pos, now)
	if !moved {
		return
	}
	g.metrics.steps.Add(1)
	g.matrix.SetCell(from.Row, from.Col, false)
	d.Blink.Reset(now)
	g.matrix.SetCell(d.Pos.Row, d.Pos.Col, true)
}

// checkCaught applies a collision with the pursuer
func (g *Game) checkCaught(now time.Time) {
	d, p := g.Doctor, g.Player
	if !d.Pos.SameCell(p.Pos) {
		return
	}
	if p.Lives > 0 {
		p.Lives--
	}
	d.Catch()
	g.DiedAt = now
	g.display.Clear()
	g.sounds.Cue(CueCaught)
	g.metrics.catches.Add(1)
	g.log.WithFields(logrus.Fields{
		"lives":   p.Lives,
		"elapsed": g.Elapsed,
		"level":   d.Level,
	}).Info("player caught")
}

// checkPickup collects the note and applies the milestone progression
func (g *Game) checkPickup(now time.Time) {
	p, d := g.Player, g.Doctor
	if !g.Note.Pos.SameCell(p.Pos) {
		return
	}

	p.Notes++
	exclude := -1
	if p.Notes >= ExcludeRoomFrom {
		exclude = p.Pos.Room
	}
	g.spawned(g.Note.Spawn(g.rng, exclude))
	g.metrics.pickups.Add(1)
	g.sounds.Cue(CueNotePickup)

	if p.Notes == MilestoneSpawn || p.Notes == MilestoneFaster {
		g.display.Clear()
		d.LevelUp()
		g.milestoneAt = now
		g.milestoneNotes = p.Notes
		g.sounds.Cue(CueLevelUp)
	}

	switch {
	case p.Notes >= MilestoneSpawn && p.Notes < SameRoomFrom:
		g.spawned(d.SpawnRandom(g.rng))
		g.armPursuer(now)
	case p.Notes >= SameRoomFrom && p.Notes < NotesToWin:
		g.spawned(d.SpawnIn(g.rng, p.Pos.Room))
		g.armPursuer(now)
	}

	g.log.WithFields(logrus.Fields{
		"notes": p.Notes,
		"room":  p.Pos.Room,
		"next":  g.Note.Pos.String(),
	}).Debug("note collected")
}

func (g *Game) armPursuer(now time.Time) {
	// The note stops rendering while the pursuer is active
	if g.Note.Pos.SameRoom(g.Player.Pos) && !g.Note.Pos.SameCell(g.Player.Pos) {
		g.matrix.SetCell(g.Note.Pos.Row, g.Note.Pos.Col, false)
	}
	g.Doctor.Arm()
	g.Doctor.Blink.Reset(now)
	g.log.WithFields(logrus.Fields{
		"level": g.Doctor.Level,
		"at":    g.Doctor.Pos.String(),
	}).Debug("pursuer armed")
}

// spawned handles a spawn error: logged, fatal in debug mode
func (g *Game) spawned(err error) {
	if err == nil {
		return
	}
	g.log.WithError(err).Error("spawn failed")
	if g.debug {
		panic(err)
	}
}

// checkEnd evaluates win and lose and reports whether the round ended
func (g *Game) checkEnd(now time.Time) bool {
	p := g.Player
	switch {
	case p.Notes >= NotesToWin:
		p.IsWinning = true
		g.end(now, Won)
	case p.Lives <= 0:
		g.end(now, Lost)
	default:
		return false
	}
	return true
}

func (g *Game) end(now time.Time, r Result) {
	p := g.Player
	g.Result = r
	g.EndedAt = now
	g.matrix.ClearAll()
	g.display.Clear()

	if r == Won {
		p.HasHighscore = g.scores != nil && g.scores.IsNewHighscore(g.Elapsed)
		if p.HasHighscore && p.HasUserName {
			g.scores.Record(g.Elapsed, g.userName)
			g.recorded = true
		}
		g.sounds.Cue(CueWin)
	} else {
		g.sounds.Cue(CueLose)
	}

	g.log.WithFields(logrus.Fields{
		"result":    r.String(),
		"elapsed":   g.Elapsed,
		"notes":     p.Notes,
		"lives":     p.Lives,
		"highscore": p.HasHighscore,
	}).Info("round ended")
}

// SubmitName stores the entered name and records the pending highscore
func (g *Game) SubmitName(name string) {
	if name == "" {
		return
	}
	g.userName = name
	g.Player.HasUserName = true
	if g.Result == Won && g.Player.HasHighscore && !g.recorded {
		g.scores.Record(g.Elapsed, name)
		g.recorded = true
		g.log.WithFields(logrus.Fields{
			"name":    name,
			"elapsed": g.Elapsed,
		}).Info("highscore recorded")
	}
}

// Summary is a read-only view of the round for observers
type Summary struct {
	RunID   string `json:"run_id"`
	Phase   string `json:"phase"`
	Room    int    `json:"room"`
	Notes   int    `json:"notes"`
	Lives   int    `json:"lives"`
	Level   int    `json:"level"`
	Elapsed int    `json:"elapsed"`
	Pursuer string `json:"pursuer"`
	Paused  bool   `json:"paused"`
}

// Summary describes the round at now
func (g *Game) Summary(now time.Time) Summary {
	return Summary{
		RunID:   g.RunID,
		Phase:   g.PhaseAt(now).String(),
		Room:    g.Player.Pos.Room,
		Notes:   g.Player.Notes,
		Lives:   g.Player.Lives,
		Level:   g.Doctor.Level,
		Elapsed: g.Elapsed,
		Pursuer: g.Doctor.State().String(),
		Paused:  g.Paused,
	}
}

// metrics caches the counters written every tick
type metrics struct {
	moves     *atomic.Int64
	crossings *atomic.Int64
	pickups   *atomic.Int64
	catches   *atomic.Int64
	steps     *atomic.Int64
	rounds    *atomic.Int64
	elapsed   *atomic.Int64
	paused    *atomic.Bool
	distance  *status.AtomicFloat
	state     *status.AtomicString
	phase     *status.AtomicString
}

func newMetrics(reg *status.Registry) metrics {
	if reg == nil {
		reg = status.NewRegistry()
	}
	return metrics{
		moves:     reg.Ints.Get(status.KeyMoves),
		crossings: reg.Ints.Get(status.KeyCrossings),
		pickups:   reg.Ints.Get(status.KeyPickups),
		catches:   reg.Ints.Get(status.KeyCatches),
		steps:     reg.Ints.Get(status.KeySteps),
		rounds:    reg.Ints.Get(status.KeyRounds),
		elapsed:   reg.Ints.Get(status.KeyElapsed),
		paused:    reg.Bools.Get(status.KeyPaused),
		distance:  reg.Floats.Get(status.KeyDistance),
		state:     reg.Strings.Get(status.KeyPursuerState),
		phase:     reg.Strings.Get(status.KeyPhase),
	}
}
