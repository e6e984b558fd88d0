package chase

import "github.com/vovakirdan/asciiman/internal/games/chase/maze"

// Event is anything that can drive a session forward.
type Event interface {
	event()
}

// InputEvent is a directional key press.
type InputEvent struct {
	Dir maze.Direction
}

// FastTickEvent is the ghost movement clock.
type FastTickEvent struct{}

// SecondTickEvent is the once-per-second clock.
type SecondTickEvent struct{}

// ExpiryEvent closes the invincibility window identified by Token.
type ExpiryEvent struct {
	Token uint64
}

func (InputEvent) event()      {}
func (FastTickEvent) event()   {}
func (SecondTickEvent) event() {}
func (ExpiryEvent) event()     {}

// Apply dispatches e to the matching handler and returns the settled state.
func (s *Session) Apply(e Event) Snapshot {
	switch e := e.(type) {
	case InputEvent:
		s.OnInput(e.Dir)
	case FastTickEvent:
		s.OnFastTick()
	case SecondTickEvent:
		s.OnSecondTick()
	case ExpiryEvent:
		s.OnInvincibilityExpiry(e.Token)
	}
	return s.Snapshot()
}
