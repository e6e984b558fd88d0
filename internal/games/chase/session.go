// Package chase is the maze chase game: a player collects pickups while ghosts
// hunt by line of sight.
//
// Session owns all mutable game state and changes only through its handlers,
// which the caller dispatches one at a time from a single clock. Game binds a
// Session to that clock and to the arcade platform.
package chase

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/asciiman/internal/config"
	"github.com/vovakirdan/asciiman/internal/games/chase/ghost"
	"github.com/vovakirdan/asciiman/internal/games/chase/maze"
	"github.com/vovakirdan/asciiman/internal/games/chase/pickup"
	"github.com/vovakirdan/asciiman/internal/sched"
)

// Status is the session state.
type Status int

const (
	StatusPlaying Status = iota
	StatusWon
	StatusLost
)

func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Timers is the clock a Session reads and schedules its one-shot expiry on.
// *sched.Scheduler satisfies it.
type Timers interface {
	Now() time.Duration
	After(delay time.Duration, fn func()) sched.TimerID
	Cancel(id sched.TimerID) bool
}

// Result is what a finished session hands to record keeping and the leaderboard.
type Result struct {
	Score int
	Time  int // seconds
	Mode  string
	Won   bool
}

// Session is one playthrough of a maze under a fixed difficulty profile.
// It is replaced, never reset, on restart or difficulty change.
type Session struct {
	maze    *maze.Maze
	profile config.Profile
	timers  Timers
	brain   *ghost.Brain

	player    maze.Position
	playerDir maze.Direction
	ghosts    []ghost.Ghost
	pickups   *pickup.Tracker
	score     int
	elapsed   int
	status    Status

	invincible      bool
	invincibleUntil time.Duration
	expiryToken     uint64
	expiryTimer     sched.TimerID

	subs    []subscriber
	nextSub int
}

type subscriber struct {
	id int
	fn func(Snapshot)
}

// NewSession builds a fresh session. Spawn points on walls are a programming
// error and panic.
func NewSession(m *maze.Maze, profile config.Profile, timers Timers, rng *rand.Rand) *Session {
	s := &Session{
		maze:    m,
		profile: profile,
		timers:  timers,
		brain:   ghost.NewBrain(m, rng),
		player:  maze.Position{X: profile.PlayerStart.X, Y: profile.PlayerStart.Y},
		pickups: pickup.FromMaze(m),
		ghosts:  make([]ghost.Ghost, len(profile.Ghosts)),
	}
	if !m.IsValidPosition(s.player) {
		panic(fmt.Sprintf("chase: player start %v is not walkable", s.player))
	}

	now := timers.Now()
	for i, gp := range profile.Ghosts {
		g := ghost.New(ghost.Spec{
			Name:           gp.Name,
			Spawn:          maze.Position{X: gp.Spawn.X, Y: gp.Spawn.Y},
			Speed:          gp.Speed,
			LockOnDuration: gp.LockOnDuration,
		})
		if !m.IsValidPosition(g.Spawn) {
			panic(fmt.Sprintf("chase: ghost %q spawn %v is not walkable", g.Name, g.Spawn))
		}
		g.Dir = s.brain.InitialHeading(g.Spawn)
		g.LastMoved = now
		s.ghosts[i] = g
	}
	return s
}

// Status returns the current state.
func (s *Session) Status() Status { return s.status }

// Score returns the cumulative score.
func (s *Session) Score() int { return s.score }

// Elapsed returns whole seconds of play.
func (s *Session) Elapsed() int { return s.elapsed }

// Profile returns the difficulty the session was built with.
func (s *Session) Profile() config.Profile { return s.profile }

// IsInvincible reports whether the special-pickup window is still open.
func (s *Session) IsInvincible() bool {
	return s.invincible && s.timers.Now() < s.invincibleUntil
}

// Result summarizes the session for persistence.
func (s *Session) Result() Result {
	return Result{
		Score: s.score,
		Time:  s.elapsed,
		Mode:  s.profile.Name,
		Won:   s.status == StatusWon,
	}
}

// OnInput moves the player one cell. Moves into walls are ignored.
func (s *Session) OnInput(dir maze.Direction) {
	if s.status != StatusPlaying || dir == maze.DirNone {
		return
	}
	next := s.maze.Move(s.player, dir)
	if !s.maze.IsValidPosition(next) {
		return
	}

	delta := 0
	switch s.pickups.CollectAt(next) {
	case pickup.Regular:
		delta += s.profile.RegularScore
	case pickup.Special:
		delta += s.profile.SpecialScore
		s.startInvincibility()
	}

	s.player = next
	s.playerDir = dir
	delta += s.resolveCollisions()
	if s.status == StatusPlaying && s.pickups.IsAllCollected() {
		s.end(StatusWon)
	}
	s.score += delta
	s.publish()
}

// OnFastTick moves every ghost whose speed has elapsed, then checks contact.
func (s *Session) OnFastTick() {
	if s.status != StatusPlaying {
		return
	}
	s.brain.MoveAll(s.ghosts, s.player, s.timers.Now())
	s.score += s.resolveCollisions()
	s.publish()
}

// OnSecondTick advances the play timer and counts down lock-on.
func (s *Session) OnSecondTick() {
	if s.status != StatusPlaying {
		return
	}
	s.elapsed++
	for i := range s.ghosts {
		s.ghosts[i].Decay()
	}
	s.publish()
}

// OnInvincibilityExpiry closes the invincibility window opened with token.
// Expiries from superseded windows are ignored.
func (s *Session) OnInvincibilityExpiry(token uint64) {
	if token != s.expiryToken || !s.invincible {
		return
	}
	s.invincible = false
	s.expiryTimer = 0
	s.publish()
}

func (s *Session) startInvincibility() {
	if s.expiryTimer != 0 {
		s.timers.Cancel(s.expiryTimer)
	}
	s.expiryToken++
	token := s.expiryToken
	s.invincible = true
	s.invincibleUntil = s.timers.Now() + s.profile.Invincible
	s.expiryTimer = s.timers.After(s.profile.Invincible, func() {
		s.OnInvincibilityExpiry(token)
	})
}

// resolveCollisions eats or is caught by every ghost on the player's cell.
// It returns the bounty earned.
func (s *Session) resolveCollisions() int {
	now := s.timers.Now()
	bounty := 0
	for i := range s.ghosts {
		g := &s.ghosts[i]
		if g.Pos != s.player {
			continue
		}
		if !s.IsInvincible() {
			s.end(StatusLost)
			return bounty
		}
		g.Respawn(now)
		bounty += s.profile.SpecialScore
	}
	return bounty
}

func (s *Session) end(status Status) {
	s.status = status
	if s.expiryTimer != 0 {
		s.timers.Cancel(s.expiryTimer)
		s.expiryTimer = 0
	}
	s.expiryToken++
}
