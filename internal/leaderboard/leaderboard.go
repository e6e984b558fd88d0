// Package leaderboard is the network high-score table: the submission rules
// shared by client and service, an HTTP client, and the HTTP service itself.
package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/asciiman/internal/config"
)

// Submission and listing limits.
const (
	MaxNameLen   = 20
	MaxScore     = 999999
	MaxTime      = 3600 // seconds
	TopLimit     = 10
	RateLimit    = 5
	RateWindow   = time.Minute
	MaxBodyBytes = 10 << 10
)

var (
	// ErrInvalidSubmission is returned for a submission outside the accepted shape.
	ErrInvalidSubmission = errors.New("leaderboard: invalid submission")
	// ErrRateLimited is returned when a name has submitted too often.
	ErrRateLimited = errors.New("leaderboard: too many submissions")
	// ErrUnavailable is returned when the service cannot be reached or fails.
	ErrUnavailable = errors.New("leaderboard: service unavailable")
)

// Submission is one score offered to the leaderboard.
type Submission struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Time  int    `json:"time"`
	Mode  string `json:"mode"`
}

// Entry is a stored leaderboard row.
type Entry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Score     int       `json:"score"`
	Time      int       `json:"time"`
	Mode      string    `json:"mode"`
	CreatedAt time.Time `json:"createdAt"`
}

// Repository persists leaderboard entries.
type Repository interface {
	InsertEntry(ctx context.Context, e Entry) error
	TopEntries(ctx context.Context, mode string, limit int) ([]Entry, error)
	CountRecentByName(ctx context.Context, name string, since time.Time) (int, error)
}

// SanitizeName keeps ASCII letters and digits and truncates to MaxNameLen.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			if b.Len() == MaxNameLen {
				break
			}
		}
	}
	return b.String()
}

// ClampScore bounds a score to [0, MaxScore].
func ClampScore(score int) int {
	return clamp(score, 0, MaxScore)
}

// ClampTime bounds a play time to [0, MaxTime] seconds.
func ClampTime(secs int) int {
	return clamp(secs, 0, MaxTime)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Prepare builds a submission that will pass validation when name has at
// least one alphanumeric character and mode is a known difficulty.
func Prepare(name string, score, secs int, mode string) Submission {
	return Submission{
		Name:  SanitizeName(name),
		Score: ClampScore(score),
		Time:  ClampTime(secs),
		Mode:  strings.ToLower(strings.TrimSpace(mode)),
	}
}

// Validate checks s against the accepted bounds.
func Validate(s Submission) error {
	n := len([]rune(strings.TrimSpace(s.Name)))
	switch {
	case n < 1 || n > MaxNameLen:
		return fmt.Errorf("%w: name must be 1-%d characters", ErrInvalidSubmission, MaxNameLen)
	case SanitizeName(s.Name) == "":
		return fmt.Errorf("%w: name must contain letters or digits", ErrInvalidSubmission)
	case s.Score < 0 || s.Score > MaxScore:
		return fmt.Errorf("%w: score must be 0-%d", ErrInvalidSubmission, MaxScore)
	case s.Time < 0 || s.Time > MaxTime:
		return fmt.Errorf("%w: time must be 0-%d", ErrInvalidSubmission, MaxTime)
	case !config.IsPreset(s.Mode):
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidSubmission, s.Mode)
	}
	return nil
}

// Normalize converts a validated submission to its stored form.
func Normalize(s Submission) Submission {
	return Prepare(s.Name, s.Score, s.Time, s.Mode)
}
