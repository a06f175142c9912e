package game

import (
	"testing"
	"time"

	"github.com/VladWero08/SinisterEscape/input"
	"github.com/VladWero08/SinisterEscape/room"
	"github.com/VladWero08/SinisterEscape/status"
)

func TestNewRoundState(t *testing.T) {
	h := newHarness(t, "")
	g := h.game

	if g.Player.Pos.Row != StartRow || g.Player.Pos.Col != StartCol {
		t.Errorf("player starts at %v", g.Player.Pos)
	}
	if g.Player.Lives != StartLives || g.Player.Notes != 0 {
		t.Errorf("lives %d notes %d", g.Player.Lives, g.Player.Notes)
	}
	if g.Doctor.State() != Dormant || g.Doctor.Level != 1 {
		t.Errorf("pursuer %v level %d", g.Doctor.State(), g.Doctor.Level)
	}
	if !g.Running() || g.RunID == "" {
		t.Error("round not running or without run id")
	}
	if !h.matrix.cells[0][0] {
		t.Error("walls of the player's room not drawn")
	}
}

// TestCaughtOnLastLifeEndsRound covers the lose scenario on a single tick
func TestCaughtOnLastLifeEndsRound(t *testing.T) {
	h := newHarness(t, "")
	g := h.game
	g.Player.Lives = 1
	g.Doctor.Pos = g.Player.Pos
	g.Doctor.Chasing = true

	now := h.clock.Advance(tick)
	if out := g.Tick(now, input.Idle); out != Continue {
		t.Fatalf("Tick = %v", out)
	}

	if g.Player.Lives != 0 {
		t.Errorf("lives = %d, want 0", g.Player.Lives)
	}
	if g.Result != Lost {
		t.Fatalf("result = %v, want lost", g.Result)
	}
	if !g.EndedAt.Equal(now) || !g.DiedAt.Equal(now) {
		t.Errorf("EndedAt %v DiedAt %v, want %v", g.EndedAt, g.DiedAt, now)
	}
	if h.matrix.lit() != 0 {
		t.Errorf("%d cells still lit after the round ended", h.matrix.lit())
	}
	if g.Doctor.Active() {
		t.Error("pursuer still active after the catch")
	}
	if !h.hasCue(CueCaught) || !h.hasCue(CueLose) {
		t.Errorf("cues = %v", h.sounds.cues)
	}
	if len(h.scores.asked) != 0 {
		t.Error("a loss must not be checked for a highscore")
	}
}

func TestCaughtWithLivesLeftContinues(t *testing.T) {
	h := newHarness(t, "")
	g := h.game
	g.Doctor.Pos = g.Player.Pos
	g.Doctor.Chasing = true

	h.tick(input.Idle)

	if g.Player.Lives != StartLives-1 || !g.Running() {
		t.Fatalf("lives %d running %v", g.Player.Lives, g.Running())
	}
	if g.Doctor.Pos != g.Player.Pos {
		t.Error("catch must not move the pursuer")
	}
	if got := h.status.Ints.Get(status.KeyCatches).Load(); got != 1 {
		t.Errorf("catches counter = %d", got)
	}
}

// TestLastNoteWins covers the win scenario and the highscore check
func TestLastNoteWins(t *testing.T) {
	h := newHarness(t, "VLD")
	h.scores.qualify = true
	g := h.game

	h.idle(2500 * time.Millisecond)
	if g.Elapsed != 2 {
		t.Fatalf("elapsed = %d, want 2", g.Elapsed)
	}

	g.Player.Notes = NotesToWin - 1
	g.Note.Pos = g.Player.Pos
	h.tick(input.Idle)

	if g.Result != Won || !g.Player.IsWinning {
		t.Fatalf("result %v winning %v", g.Result, g.Player.IsWinning)
	}
	if len(h.scores.asked) != 1 || h.scores.asked[0] != 2 {
		t.Errorf("highscore check with %v, want [2]", h.scores.asked)
	}
	if !g.Player.HasHighscore {
		t.Error("HasHighscore not set")
	}
	if len(h.scores.recorded) != 1 || h.scores.recorded[0] != (recordedScore{2, "VLD"}) {
		t.Errorf("recorded %v", h.scores.recorded)
	}
	if h.matrix.lit() != 0 {
		t.Error("matrix not cleared on win")
	}
}

// TestNoteRespawnProgression collects notes 0..5 and checks every respawn
func TestNoteRespawnProgression(t *testing.T) {
	h := newHarness(t, "")
	g := h.game

	for n := 0; n < NotesToWin; n++ {
		g.Doctor.Catch()
		g.Player.Notes = n
		g.Note.Pos = g.Player.Pos
		h.tick(input.Idle)

		got := n + 1
		if g.Player.Notes != got {
			t.Fatalf("notes = %d, want %d", g.Player.Notes, got)
		}
		np := g.Note.Pos
		if !np.Valid() || room.IsWall(np.Room, np.Row, np.Col) {
			t.Fatalf("notes %d: note respawned on %v", got, np)
		}
		if got >= ExcludeRoomFrom && np.Room == g.Player.Pos.Room {
			t.Errorf("notes %d: note respawned in the player's room %d", got, np.Room)
		}

		switch got {
		case MilestoneSpawn:
			if g.Doctor.Level != 2 || !g.Doctor.Waiting {
				t.Errorf("notes 2: level %d waiting %v", g.Doctor.Level, g.Doctor.Waiting)
			}
			if !h.lcdContains(MsgSpawned) {
				t.Errorf("notes 2: LCD %q / %q", h.display.line(0), h.display.line(1))
			}
		case 3:
			if !g.Doctor.Waiting {
				t.Error("notes 3: pursuer not armed")
			}
		case MilestoneFaster, 5:
			if !g.Doctor.Waiting || g.Doctor.Pos.Room != g.Player.Pos.Room {
				t.Errorf("notes %d: pursuer %v waiting %v, player room %d",
					got, g.Doctor.Pos, g.Doctor.Waiting, g.Player.Pos.Room)
			}
			if got == MilestoneFaster && (g.Doctor.Level != 3 || !h.lcdContains(MsgFaster)) {
				t.Errorf("notes 4: level %d", g.Doctor.Level)
			}
		}
	}

	if g.Result != Won {
		t.Errorf("result after six notes = %v", g.Result)
	}
}

func TestMilestoneMessageExpires(t *testing.T) {
	h := newHarness(t, "")
	g := h.game
	g.Player.Notes = 1
	g.Note.Pos = g.Player.Pos
	h.tick(input.Idle)

	// Keep the pursuer away so nothing else happens
	g.Doctor.Catch()
	h.parkNote()
	h.idle(MessageDuration + TransitionDuration + 50*time.Millisecond)

	if h.lcdContains(MsgSpawned) {
		t.Error("milestone message still shown")
	}
	if !h.lcdContains("Notes: 2") || !h.lcdContains("LVL2") {
		t.Errorf("HUD not restored: %q / %q", h.display.line(0), h.display.line(1))
	}
}

func TestPauseExcludesPlaytime(t *testing.T) {
	h := newHarness(t, "")
	g := h.game

	h.idle(1500 * time.Millisecond)
	if g.Elapsed != 1 {
		t.Fatalf("elapsed = %d before pause", g.Elapsed)
	}

	h.press()
	if !g.Paused {
		t.Fatal("press did not pause")
	}
	h.idle(10 * time.Second)
	if g.Elapsed != 1 {
		t.Errorf("elapsed advanced to %d while paused", g.Elapsed)
	}
	if !h.lcdContains(MsgPaused) {
		t.Error("pause overlay missing")
	}

	h.press()
	if g.Paused {
		t.Fatal("second press did not resume")
	}
	h.idle(900 * time.Millisecond)
	if g.Elapsed != 1 {
		t.Errorf("elapsed = %d right after resume", g.Elapsed)
	}
	h.idle(200 * time.Millisecond)
	if g.Elapsed != 2 {
		t.Errorf("elapsed = %d one second after resume, want 2", g.Elapsed)
	}
}

func TestPausedGameIgnoresMovement(t *testing.T) {
	h := newHarness(t, "")
	g := h.game
	h.press()

	before := g.Player.Pos
	h.tick(input.Event{Direction: room.Right})
	if g.Player.Pos != before {
		t.Errorf("player moved while paused: %v", g.Player.Pos)
	}
}

func TestDoorCrossingRedrawsRoom(t *testing.T) {
	h := newHarness(t, "")
	g := h.game
	from := g.Player.Pos.Room
	g.Player.Pos = room.Position{Room: from, Row: 0, Col: room.DoorFirst}
	clears := h.matrix.clears

	h.tick(input.Event{Direction: room.Up})

	want := room.DoorTarget(from, room.Up)
	if g.Player.Pos != (room.Position{Room: want, Row: room.Size - 1, Col: room.DoorFirst}) {
		t.Fatalf("player at %v after crossing", g.Player.Pos)
	}
	if h.matrix.clears <= clears {
		t.Error("matrix not cleared on room change")
	}
	if !h.matrix.cells[0][0] {
		t.Error("walls of the new room not drawn")
	}
	if got := h.status.Ints.Get(status.KeyCrossings).Load(); got != 1 {
		t.Errorf("crossings = %d", got)
	}
}

func TestStepClearsOldCell(t *testing.T) {
	h := newHarness(t, "")
	g := h.game
	start := g.Player.Pos

	h.tick(input.Event{Direction: room.Right})
	if g.Player.Pos.Col != start.Col+1 {
		t.Fatalf("player at %v", g.Player.Pos)
	}
	if h.matrix.cells[start.Row][start.Col] {
		t.Error("old player cell still lit")
	}
	if !h.matrix.cells[g.Player.Pos.Row][g.Player.Pos.Col] {
		t.Error("new player cell not lit")
	}
}

func TestChaseAbortedWhenRoomsDiverge(t *testing.T) {
	h := newHarness(t, "")
	g := h.game
	other := (g.Player.Pos.Room + 2) % room.Count
	g.Doctor.Pos = room.Position{Room: other, Row: 1, Col: 1}
	g.Doctor.Chasing = true
	g.Doctor.LastMovement = time.Time{}

	h.tick(input.Idle)

	if g.Doctor.Chasing || g.Doctor.Waiting {
		t.Errorf("pursuer state %v after rooms diverged", g.Doctor.State())
	}
	if g.Doctor.Pos != (room.Position{Room: other, Row: 1, Col: 1}) {
		t.Errorf("pursuer moved to %v", g.Doctor.Pos)
	}
}

func TestWaitingTriggersInPlayersRoom(t *testing.T) {
	h := newHarness(t, "")
	g := h.game
	g.Player.Pos = room.Position{Room: 0, Row: 1, Col: 1}
	g.Doctor.Pos = room.Position{Room: 0, Row: 1, Col: 4}
	g.Doctor.Arm()
	h.parkNote()

	h.tick(input.Idle)
	if g.Doctor.State() != Chasing {
		t.Fatalf("state = %v, want chasing at distance 3 on level 1", g.Doctor.State())
	}

	before := g.Doctor.Pos
	h.idle(ParamsFor(1).Cooldown + tick)
	if g.Doctor.Pos == before {
		t.Error("pursuer did not step after the cooldown")
	}
	if d := g.Doctor.Pos.Distance(g.Player.Pos); d >= before.Distance(g.Player.Pos) {
		t.Errorf("step did not approach: %v -> %v", before, g.Doctor.Pos)
	}
}

func TestEndSequenceWithHighscoreAndNameEntry(t *testing.T) {
	h := newHarness(t, "")
	h.scores.qualify = true
	g := h.game
	g.Player.Notes = NotesToWin - 1
	g.Note.Pos = g.Player.Pos
	h.tick(input.Idle)
	if g.Result != Won {
		t.Fatal("round did not end")
	}

	phases := []struct {
		after time.Duration
		want  Phase
	}{
		{0, PhaseResult},
		{ResultDuration - time.Nanosecond, PhaseResult},
		{ResultDuration, PhaseResultBlank},
		{ResultDuration + TransitionDuration, PhaseResultBlank},
		{ResultDuration + TransitionDuration + time.Nanosecond, PhaseHighscore},
		{5100 * time.Millisecond, PhaseHighscoreBlank},
		{5200 * time.Millisecond, PhaseHighscoreBlank},
		{5200*time.Millisecond + time.Nanosecond, PhaseNameEntry},
		{time.Minute, PhaseNameEntry},
	}
	for _, p := range phases {
		if got := g.PhaseAt(g.EndedAt.Add(p.after)); got != p.want {
			t.Errorf("phase after %v = %v, want %v", p.after, got, p.want)
		}
	}

	h.clock.SetTime(g.EndedAt.Add(time.Second))
	h.tick(input.Idle)
	if !h.lcdContains(MsgWon) {
		t.Errorf("result message missing: %q", h.display.line(0))
	}

	h.clock.SetTime(g.EndedAt.Add(6 * time.Second))
	if out := h.tick(input.Idle); out != NeedName {
		t.Fatalf("Tick = %v, want need-name", out)
	}

	g.SubmitName("ABC")
	if len(h.scores.recorded) != 1 || h.scores.recorded[0].name != "ABC" {
		t.Fatalf("recorded %v", h.scores.recorded)
	}
	if g.UserName() != "ABC" || !g.Player.HasUserName {
		t.Error("name not kept")
	}
	if out := h.tick(input.Idle); out != Continue || g.PhaseAt(h.clock.Now()) != PhaseChoice {
		t.Fatalf("after name: %v in %v", out, g.PhaseAt(h.clock.Now()))
	}
	if !h.lcdContains(MsgPlayAgain) {
		t.Error("choice menu not drawn")
	}

	h.tick(input.Event{Direction: room.Down})
	if g.Choice() != ChoiceBack {
		t.Fatalf("choice = %d after down", g.Choice())
	}
	if out := h.press(); out != Back {
		t.Errorf("press on back = %v", out)
	}
}

func TestLossSkipsHighscorePhases(t *testing.T) {
	h := newHarness(t, "")
	g := h.game
	g.Player.Lives = 1
	g.Doctor.Pos = g.Player.Pos
	g.Doctor.Chasing = true
	h.tick(input.Idle)

	if got := g.PhaseAt(g.EndedAt.Add(ResultDuration + TransitionDuration + time.Nanosecond)); got != PhaseChoice {
		t.Errorf("phase = %v, want choice", got)
	}
}

func TestPlayAgainStartsFreshRound(t *testing.T) {
	h := newHarness(t, "")
	g := h.game
	firstRun := g.RunID
	g.Player.Lives = 1
	g.Doctor.Pos = g.Player.Pos
	g.Doctor.Chasing = true
	h.tick(input.Idle)

	h.clock.SetTime(g.EndedAt.Add(4 * time.Second))
	h.tick(input.Idle)
	h.tick(input.Event{Direction: room.Up})
	if out := h.press(); out != PlayAgain {
		t.Fatalf("press = %v, want play-again", out)
	}

	if !g.Running() || g.Player.Lives != StartLives || g.Player.Notes != 0 || g.Elapsed != 0 {
		t.Errorf("round not reset: running %v lives %d notes %d", g.Running(), g.Player.Lives, g.Player.Notes)
	}
	if g.Doctor.Level != 1 || g.Doctor.Active() {
		t.Errorf("pursuer not reset: level %d state %v", g.Doctor.Level, g.Doctor.State())
	}
	if g.RunID == firstRun {
		t.Error("run id not renewed")
	}
	if got := h.status.Ints.Get(status.KeyRounds).Load(); got != 2 {
		t.Errorf("rounds = %d", got)
	}
}

func TestSummary(t *testing.T) {
	h := newHarness(t, "")
	s := h.game.Summary(h.clock.Now())
	if s.Phase != "playing" || s.Lives != StartLives || s.Level != 1 || s.Pursuer != "dormant" {
		t.Errorf("summary %+v", s)
	}
}

func TestFormatAndCenter(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{59, "00:59"},
		{61, "01:01"},
		{900, "15:00"},
		{-3, "00:00"},
	}
	for _, tt := range tests {
		if got := FormatTime(tt.seconds); got != tt.want {
			t.Errorf("FormatTime(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
	if got := CenterCol(MsgNocturne); got != 2 {
		t.Errorf("CenterCol(%q) = %d", MsgNocturne, got)
	}
	if got := CenterCol("this line is far too long"); got != 0 {
		t.Errorf("CenterCol(long) = %d", got)
	}
}
