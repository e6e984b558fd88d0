package chase

import (
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/asciiman/internal/config"
	"github.com/vovakirdan/asciiman/internal/games/chase/maze"
	"github.com/vovakirdan/asciiman/internal/sched"
)

func testProfile(start config.Point, ghosts ...config.GhostProfile) config.Profile {
	return config.Profile{
		Name:         "test",
		RegularScore: 10,
		SpecialScore: 50,
		PlayerStart:  start,
		Ghosts:       ghosts,
		FastTick:     100 * time.Millisecond,
		Invincible:   5 * time.Second,
		Blink:        300 * time.Millisecond,
	}
}

// idleGhost never becomes due during a test.
func idleGhost(x, y int) config.GhostProfile {
	return config.GhostProfile{Name: "idle", Spawn: config.Point{X: x, Y: y}, Speed: time.Hour, LockOnDuration: 6}
}

func newTestSession(t *testing.T, rows []string, tunnel int, p config.Profile) (*Session, *sched.Scheduler) {
	t.Helper()
	m, err := maze.Parse(rows, tunnel)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	clock := sched.New()
	s := NewSession(m, p, clock, rand.New(rand.NewSource(1)))
	clock.Every(p.FastTick, s.OnFastTick)
	clock.Every(time.Second, s.OnSecondTick)
	return s, clock
}

func TestWinOnLastPickup(t *testing.T) {
	s, _ := newTestSession(t, []string{
		"#########",
		"#  .    #",
		"#########",
	}, -1, testProfile(config.Point{X: 2, Y: 1}, idleGhost(7, 1)))

	before := s.Score()
	s.OnInput(maze.DirRight)

	if s.Status() != StatusWon {
		t.Fatalf("Status() = %v, want won", s.Status())
	}
	if s.Score() != before+10 {
		t.Fatalf("Score() = %d, want %d", s.Score(), before+10)
	}
	if !s.Result().Won {
		t.Fatal("Result().Won = false")
	}
}

func TestMoveIntoWallIsIgnored(t *testing.T) {
	s, _ := newTestSession(t, []string{
		"#####",
		"# . #",
		"#####",
	}, -1, testProfile(config.Point{X: 1, Y: 1}))

	before := s.Snapshot()
	s.OnInput(maze.DirUp)
	s.OnInput(maze.DirLeft)
	after := s.Snapshot()

	if after.Player != before.Player || after.Score != before.Score || after.Status != before.Status {
		t.Fatalf("wall move changed state: %+v -> %+v", before, after)
	}
}

func TestTunnelMove(t *testing.T) {
	rows := []string{
		"  .  ",
		" ### ",
	}
	s, _ := newTestSession(t, rows, 0, testProfile(config.Point{X: 0, Y: 0}))

	s.OnInput(maze.DirLeft)
	if got := s.Snapshot().Player; got != (maze.Position{X: 4, Y: 0}) {
		t.Fatalf("tunnel row: player at %v, want (4,0)", got)
	}

	s.player = maze.Position{X: 0, Y: 1}
	s.OnInput(maze.DirLeft)
	if got := s.Snapshot().Player; got != (maze.Position{X: 0, Y: 1}) {
		t.Fatalf("non-tunnel row: player at %v, want (0,1)", got)
	}
}

func TestClassicTunnelMove(t *testing.T) {
	clock := sched.New()
	p := config.DefaultChaseConfig().ProfileOrDefault("medium")
	p.PlayerStart = config.Point{X: 0, Y: maze.ClassicTunnelRow}
	s := NewSession(maze.Classic(), p, clock, rand.New(rand.NewSource(1)))

	s.OnInput(maze.DirLeft)
	want := maze.Position{X: maze.ClassicWidth - 1, Y: maze.ClassicTunnelRow}
	if got := s.Snapshot().Player; got != want {
		t.Fatalf("player at %v, want %v", got, want)
	}
}

func TestContactWhileVulnerableLoses(t *testing.T) {
	s, _ := newTestSession(t, []string{
		"########",
		"# o   .#",
		"########",
	}, -1, testProfile(config.Point{X: 4, Y: 1}, idleGhost(5, 1)))
	s.ghosts[0].Pos = maze.Position{X: 3, Y: 1}

	s.OnInput(maze.DirLeft)
	if s.Status() != StatusLost {
		t.Fatalf("Status() = %v, want lost", s.Status())
	}
	if s.Score() != 0 {
		t.Fatalf("Score() = %d, want 0", s.Score())
	}
}

func TestContactWhileInvincibleEatsGhost(t *testing.T) {
	s, _ := newTestSession(t, []string{
		"########",
		"# o   .#",
		"########",
	}, -1, testProfile(config.Point{X: 1, Y: 1}, idleGhost(5, 1)))
	s.ghosts[0].Pos = maze.Position{X: 3, Y: 1}
	s.ghosts[0].LockOn = true
	s.ghosts[0].LockOnTimer = 4

	s.OnInput(maze.DirRight) // special
	if !s.IsInvincible() {
		t.Fatal("expected invincibility after special pickup")
	}
	before := s.Score()
	s.OnInput(maze.DirRight) // onto the ghost

	if s.Status() != StatusPlaying {
		t.Fatalf("Status() = %v, want playing", s.Status())
	}
	if s.Score() != before+50 {
		t.Fatalf("Score() = %d, want bounty %d", s.Score(), before+50)
	}
	g := s.Snapshot().Ghosts[0]
	if g.Pos != (maze.Position{X: 5, Y: 1}) || g.LockOn || g.LockOnTimer != 0 {
		t.Fatalf("eaten ghost = %+v, want reset at spawn", g)
	}
}

func TestGhostTickCatchesPlayer(t *testing.T) {
	chaser := config.GhostProfile{Name: "blinky", Spawn: config.Point{X: 3, Y: 1}, Speed: 100 * time.Millisecond, LockOnDuration: 6}
	s, clock := newTestSession(t, []string{
		"########",
		"#     .#",
		"########",
	}, -1, testProfile(config.Point{X: 2, Y: 1}, chaser))

	clock.Advance(100 * time.Millisecond)
	if s.Status() != StatusLost {
		t.Fatalf("Status() = %v, want lost", s.Status())
	}
}

func TestLostTakesPrecedenceOverWon(t *testing.T) {
	s, _ := newTestSession(t, []string{
		"#####",
		"# . #",
		"#####",
	}, -1, testProfile(config.Point{X: 1, Y: 1}, idleGhost(3, 1)))
	s.ghosts[0].Pos = maze.Position{X: 2, Y: 1}

	s.OnInput(maze.DirRight)
	if s.Status() != StatusLost {
		t.Fatalf("Status() = %v, want lost", s.Status())
	}
	if s.Score() != 10 {
		t.Fatalf("Score() = %d, want 10", s.Score())
	}
}

func TestInvincibilityWindow(t *testing.T) {
	s, clock := newTestSession(t, []string{
		"#######",
		"# o  .#",
		"#######",
	}, -1, testProfile(config.Point{X: 1, Y: 1}, idleGhost(4, 1)))

	clock.Advance(3 * time.Second)
	if s.Elapsed() != 3 {
		t.Fatalf("Elapsed() = %d, want 3", s.Elapsed())
	}
	s.OnInput(maze.DirRight)

	clock.Advance(4900 * time.Millisecond)
	if !s.IsInvincible() {
		t.Fatalf("not invincible at T+%d", s.Elapsed()-3)
	}
	clock.Advance(100 * time.Millisecond)
	if s.Elapsed() != 8 {
		t.Fatalf("Elapsed() = %d, want 8", s.Elapsed())
	}
	if s.IsInvincible() || s.Snapshot().Invincible {
		t.Fatal("still invincible at T+5")
	}
}

func TestSecondSpecialExtendsWindow(t *testing.T) {
	s, clock := newTestSession(t, []string{
		"########",
		"#  oo .#",
		"########",
	}, -1, testProfile(config.Point{X: 2, Y: 1}, idleGhost(6, 1)))

	s.OnInput(maze.DirRight) // special at t=0
	clock.Advance(3 * time.Second)
	s.OnInput(maze.DirRight) // special at t=3s

	clock.Advance(4 * time.Second) // t=7s, first window would have closed at 5s
	if !s.IsInvincible() {
		t.Fatal("second special did not extend the window")
	}
	clock.Advance(time.Second) // t=8s
	if s.IsInvincible() {
		t.Fatal("still invincible at t=8s")
	}
}

func TestStaleExpiryIgnored(t *testing.T) {
	s, _ := newTestSession(t, []string{
		"########",
		"#  oo .#",
		"########",
	}, -1, testProfile(config.Point{X: 2, Y: 1}, idleGhost(6, 1)))

	s.OnInput(maze.DirRight)
	stale := s.Snapshot().ExpiryToken
	s.OnInput(maze.DirRight)

	s.OnInvincibilityExpiry(stale)
	if !s.IsInvincible() {
		t.Fatal("stale expiry closed the current window")
	}
	s.Apply(ExpiryEvent{Token: s.Snapshot().ExpiryToken})
	if s.IsInvincible() {
		t.Fatal("current expiry did not close the window")
	}
}

func TestTerminalStateIgnoresHandlers(t *testing.T) {
	s, clock := newTestSession(t, []string{
		"#######",
		"#  . .#",
		"#######",
	}, -1, testProfile(config.Point{X: 2, Y: 1}, idleGhost(5, 1)))
	s.ghosts[0].Pos = maze.Position{X: 3, Y: 1}
	s.OnInput(maze.DirRight)
	if s.Status() != StatusLost {
		t.Fatalf("Status() = %v, want lost", s.Status())
	}

	before := s.Snapshot()
	s.OnInput(maze.DirRight)
	s.OnSecondTick()
	clock.Advance(10 * time.Second)
	after := s.Snapshot()

	if after.Player != before.Player || after.Score != before.Score || after.Elapsed != before.Elapsed {
		t.Fatalf("terminal session changed: %+v -> %+v", before, after)
	}
}

func TestSecondTickDecaysLockOn(t *testing.T) {
	s, _ := newTestSession(t, []string{
		"#######",
		"#    .#",
		"#######",
	}, -1, testProfile(config.Point{X: 1, Y: 1}, idleGhost(4, 1)))
	s.ghosts[0].LockOn = true
	s.ghosts[0].LockOnTimer = 1

	s.Apply(SecondTickEvent{})
	snap := s.Snapshot()
	if snap.Elapsed != 1 || snap.Ghosts[0].LockOn {
		t.Fatalf("after second tick: elapsed=%d lock=%v", snap.Elapsed, snap.Ghosts[0].LockOn)
	}
}

func TestSubscribe(t *testing.T) {
	s, _ := newTestSession(t, []string{
		"#######",
		"# .. .#",
		"#######",
	}, -1, testProfile(config.Point{X: 1, Y: 1}))

	var got []int
	unsub := s.Subscribe(func(snap Snapshot) {
		got = append(got, snap.Score)
	})
	s.OnInput(maze.DirRight)
	s.OnInput(maze.DirRight)
	unsub()
	s.OnInput(maze.DirRight)

	if len(got) != 2 || got[0] != 10 || got[1] != 20 {
		t.Fatalf("subscriber saw %v, want [10 20]", got)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s, _ := newTestSession(t, []string{
		"######",
		"# . .#",
		"######",
	}, -1, testProfile(config.Point{X: 1, Y: 1}, idleGhost(4, 1)))

	snap := s.Snapshot()
	snap.Ghosts[0].Pos = maze.Position{}
	snap.Regular[0] = maze.Position{}

	fresh := s.Snapshot()
	if fresh.Ghosts[0].Pos != (maze.Position{X: 4, Y: 1}) || fresh.Regular[0] != (maze.Position{X: 2, Y: 1}) {
		t.Fatal("mutating a snapshot leaked into the session")
	}
}

func TestNewSessionPanicsOnWallSpawn(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for a ghost spawned in a wall")
		}
	}()
	newTestSession(t, []string{
		"####",
		"# .#",
		"####",
	}, -1, testProfile(config.Point{X: 1, Y: 1}, idleGhost(0, 0)))
}
