package chase

import (
	"math/rand"
	"sync"
	"time"

	"github.com/vovakirdan/asciiman/internal/config"
	"github.com/vovakirdan/asciiman/internal/core"
	"github.com/vovakirdan/asciiman/internal/games/chase/maze"
	"github.com/vovakirdan/asciiman/internal/registry"
	"github.com/vovakirdan/asciiman/internal/sched"
)

// GameID is the registry identifier.
const GameID = "chase"

// Package-level profile source, set by the CLI before games are created.
var (
	configMu     sync.RWMutex
	activeConfig = config.DefaultChaseConfig()
)

// SetConfig replaces the difficulty profiles used by new games.
func SetConfig(cfg config.ChaseConfig) {
	configMu.Lock()
	defer configMu.Unlock()
	activeConfig = cfg
}

func currentConfig() config.ChaseConfig {
	configMu.RLock()
	defer configMu.RUnlock()
	return activeConfig
}

// Game adapts a Session to the arcade platform. Each Step advances the
// session's virtual clock by one platform tick.
type Game struct {
	cfg      config.ChaseConfig
	maze     *maze.Maze
	clock    *sched.Scheduler
	session  *Session
	unsub    func()
	view     Snapshot
	rng      *rand.Rand
	profile  config.Profile
	tickStep time.Duration
	best     int
	paused   bool
}

// New creates a chase game on the classic board.
func New() *Game {
	return &Game{
		maze:  maze.Classic(),
		clock: sched.New(),
	}
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return GameID }

// Title returns the display name.
func (g *Game) Title() string { return "Asciiman" }

// Reset starts a new session with the difficulty named in cfg.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = currentConfig()
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.profile = g.cfg.ProfileOrDefault(cfg.Difficulty)
	g.best = cfg.BestScore

	rate := cfg.TickRate
	if rate <= 0 {
		rate = core.DefaultConfig().TickRate
	}
	g.tickStep = time.Second / time.Duration(rate)

	g.start()
}

// start replaces the session. Timers from the previous session are dropped
// before the new one can schedule anything.
func (g *Game) start() {
	if g.unsub != nil {
		g.unsub()
	}
	g.clock.Reset()
	g.paused = false

	s := NewSession(g.maze, g.profile, g.clock, g.rng)
	g.clock.Every(g.profile.FastTick, s.OnFastTick)
	g.clock.Every(time.Second, s.OnSecondTick)
	g.unsub = s.Subscribe(func(snap Snapshot) {
		g.view = snap
	})
	g.session = s
	g.view = s.Snapshot()
}

// Restart begins a new session under the current profile.
func (g *Game) Restart() {
	g.start()
}

// SelectDifficulty switches profile and starts over. Unknown names fall back
// to the configured default.
func (g *Game) SelectDifficulty(name string) {
	g.profile = g.cfg.ProfileOrDefault(name)
	g.Restart()
}

// Step handles any actions in the frame, then advances the clock by one tick
// unless paused or finished.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	for _, a := range frameOrder {
		if in.Has(a) {
			g.HandleAction(a)
		}
	}
	if !g.paused && g.session.Status() == StatusPlaying {
		g.clock.Advance(g.tickStep)
	}
	if g.session.Score() > g.best {
		g.best = g.session.Score()
	}
	return core.StepResult{State: g.State()}
}

var frameOrder = []core.Action{
	core.ActionRestart,
	core.ActionMode1, core.ActionMode2, core.ActionMode3, core.ActionMode4,
	core.ActionPause,
	core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight,
}

// HandleAction applies one discrete action immediately.
func (g *Game) HandleAction(a core.Action) core.StepResult {
	if idx, ok := a.ModeIndex(); ok {
		names := g.cfg.Names()
		if idx < len(names) {
			g.SelectDifficulty(names[idx])
		}
		return core.StepResult{State: g.State()}
	}

	switch a {
	case core.ActionRestart:
		g.Restart()
	case core.ActionPause:
		if g.session.Status() == StatusPlaying {
			g.paused = !g.paused
		}
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		if !g.paused {
			g.session.OnInput(actionDir(a))
		}
	}
	return core.StepResult{State: g.State()}
}

func actionDir(a core.Action) maze.Direction {
	switch a {
	case core.ActionUp:
		return maze.DirUp
	case core.ActionDown:
		return maze.DirDown
	case core.ActionLeft:
		return maze.DirLeft
	case core.ActionRight:
		return maze.DirRight
	default:
		return maze.DirNone
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := g.session.Status()
	return core.GameState{
		Score:    g.session.Score(),
		Elapsed:  g.session.Elapsed(),
		Mode:     g.profile.Name,
		GameOver: st != StatusPlaying,
		Won:      st == StatusWon,
		Paused:   g.paused,
	}
}

// Snapshot returns the latest settled session state.
func (g *Game) Snapshot() Snapshot { return g.view }

// Session exposes the running session.
func (g *Game) Session() *Session { return g.session }

// Result summarizes the running session.
func (g *Game) Result() Result { return g.session.Result() }
