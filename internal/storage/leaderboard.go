package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/vovakirdan/asciiman/internal/leaderboard"
)

var _ leaderboard.Repository = (*Store)(nil)

// InsertEntry stores a leaderboard entry.
func (s *Store) InsertEntry(ctx context.Context, e leaderboard.Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO leaderboard (id, name, score, time_secs, mode, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Name, e.Score, e.Time, e.Mode, e.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot insert leaderboard entry: %w", err)
	}
	return nil
}

// TopEntries returns up to limit entries by score descending, for one mode or
// all modes when mode is empty. Equal scores keep submission order.
func (s *Store) TopEntries(ctx context.Context, mode string, limit int) ([]leaderboard.Entry, error) {
	if limit <= 0 {
		limit = leaderboard.TopLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, score, time_secs, mode, created_at
		 FROM leaderboard
		 WHERE ? = '' OR mode = ?
		 ORDER BY score DESC, created_at ASC
		 LIMIT ?`,
		mode, mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var out []leaderboard.Entry
	for rows.Next() {
		var e leaderboard.Entry
		var created int64
		if err := rows.Scan(&e.ID, &e.Name, &e.Score, &e.Time, &e.Mode, &created); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = time.UnixMilli(created).UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// CountRecentByName counts entries under name created at or after since.
func (s *Store) CountRecentByName(ctx context.Context, name string, since time.Time) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM leaderboard WHERE name = ? AND created_at >= ?",
		name, since.UnixMilli(),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count submissions: %w", err)
	}
	return n, nil
}
