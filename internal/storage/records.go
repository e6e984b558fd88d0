package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// Record holds the last and best result for one difficulty mode.
type Record struct {
	Mode      string
	LastScore int
	LastTime  int
	BestScore int
	BestTime  int
}

// RecordResult stores a finished game's result for mode. The last values are
// always replaced; the best values only when score beats the stored best.
// It reports whether a new best was set.
func (s *Store) RecordResult(mode string, score, timeSecs int) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("storage: cannot begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var best sql.NullInt64
	err = tx.QueryRow("SELECT best_score FROM records WHERE mode = ?", mode).Scan(&best)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("storage: cannot read record: %w", err)
	}
	newBest := !best.Valid || score > int(best.Int64)

	if newBest {
		_, err = tx.Exec(
			`INSERT INTO records (mode, last_score, last_time, best_score, best_time)
			 VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(mode) DO UPDATE SET
			   last_score = excluded.last_score,
			   last_time = excluded.last_time,
			   best_score = excluded.best_score,
			   best_time = excluded.best_time,
			   updated_at = CURRENT_TIMESTAMP`,
			mode, score, timeSecs, score, timeSecs,
		)
	} else {
		_, err = tx.Exec(
			`UPDATE records
			 SET last_score = ?, last_time = ?, updated_at = CURRENT_TIMESTAMP
			 WHERE mode = ?`,
			score, timeSecs, mode,
		)
	}
	if err != nil {
		return false, fmt.Errorf("storage: cannot write record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("storage: cannot commit record: %w", err)
	}
	return newBest, nil
}

// Records returns the stored record for mode. A mode with no games yet
// returns a zero Record.
func (s *Store) Records(mode string) (Record, error) {
	r := Record{Mode: mode}
	err := s.db.QueryRow(
		"SELECT last_score, last_time, best_score, best_time FROM records WHERE mode = ?",
		mode,
	).Scan(&r.LastScore, &r.LastTime, &r.BestScore, &r.BestTime)
	if errors.Is(err, sql.ErrNoRows) {
		return r, nil
	}
	if err != nil {
		return r, fmt.Errorf("storage: cannot query record: %w", err)
	}
	return r, nil
}

// AllRecords returns every stored record ordered by mode.
func (s *Store) AllRecords() ([]Record, error) {
	rows, err := s.db.Query(
		"SELECT mode, last_score, last_time, best_score, best_time FROM records ORDER BY mode",
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Mode, &r.LastScore, &r.LastTime, &r.BestScore, &r.BestTime); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}
