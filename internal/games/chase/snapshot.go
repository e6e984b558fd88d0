package chase

import (
	"time"

	"github.com/vovakirdan/asciiman/internal/games/chase/maze"
)

// GhostView is a read-only copy of one ghost.
type GhostView struct {
	Name        string
	Pos         maze.Position
	Dir         maze.Direction
	LockOn      bool
	LockOnTimer int
}

// Snapshot is an immutable copy of session state taken after a handler settles.
type Snapshot struct {
	Status         Status
	Mode           string
	Player         maze.Position
	PlayerDir      maze.Direction
	Ghosts         []GhostView
	Regular        []maze.Position
	Special        []maze.Position
	Score          int
	Elapsed        int
	Invincible     bool
	InvincibleLeft time.Duration
	ExpiryToken    uint64
	Now            time.Duration
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	now := s.timers.Now()
	snap := Snapshot{
		Status:      s.status,
		Mode:        s.profile.Name,
		Player:      s.player,
		PlayerDir:   s.playerDir,
		Ghosts:      make([]GhostView, len(s.ghosts)),
		Regular:     s.pickups.Regular(),
		Special:     s.pickups.Special(),
		Score:       s.score,
		Elapsed:     s.elapsed,
		Invincible:  s.IsInvincible(),
		ExpiryToken: s.expiryToken,
		Now:         now,
	}
	if snap.Invincible {
		snap.InvincibleLeft = s.invincibleUntil - now
	}
	for i, g := range s.ghosts {
		snap.Ghosts[i] = GhostView{
			Name:        g.Name,
			Pos:         g.Pos,
			Dir:         g.Dir,
			LockOn:      g.LockOn,
			LockOnTimer: g.LockOnTimer,
		}
	}
	return snap
}

// Subscribe registers fn to receive a snapshot after every state change.
// The returned func removes the subscription.
func (s *Session) Subscribe(fn func(Snapshot)) func() {
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Session) publish() {
	if len(s.subs) == 0 {
		return
	}
	snap := s.Snapshot()
	for _, sub := range s.subs {
		sub.fn(snap)
	}
}
