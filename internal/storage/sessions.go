package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/meltforce/liftmarks/internal/models"
)

// InsertSession inserts a workout session row with its full JSON payload.
// Returns true if inserted, false if the (user, session id) pair already
// exists. Re-syncing the same export is a no-op.
func (db *DB) InsertSession(ctx context.Context, userID int, sess models.WorkoutSession) (bool, error) {
	payload, err := json.Marshal(sess)
	if err != nil {
		return false, fmt.Errorf("encoding session %s: %w", sess.ID, err)
	}

	var end *time.Time
	if sess.EndTime != nil {
		end = &sess.EndTime.Time
	}

	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO sessions (id, user_id, start_time, end_time, duration_sec, payload)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 ON CONFLICT (id, user_id) DO NOTHING`,
		sess.ID, userID, sess.StartTime.Time, end, sess.DurationSec, payload)
	if err != nil {
		return false, fmt.Errorf("inserting session %s: %w", sess.ID, err)
	}
	return tag.RowsAffected() > 0, nil
}

// LoadHistory retrieves a user's full session history ordered by start time.
// The badge engine re-sorts defensively, but handing it ordered history keeps
// the chronological pass honest.
func (db *DB) LoadHistory(ctx context.Context, userID int) ([]models.WorkoutSession, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT payload FROM sessions WHERE user_id = $1 ORDER BY start_time ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	return scanSessionPayloads(rows)
}

// QuerySessions retrieves sessions in a time range, newest first.
func (db *DB) QuerySessions(ctx context.Context, start, end time.Time, userID int) ([]models.WorkoutSession, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT payload FROM sessions
		 WHERE start_time >= $1 AND start_time < $2 AND user_id = $3
		 ORDER BY start_time DESC`,
		start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	return scanSessionPayloads(rows)
}

// SessionCount returns the number of stored sessions for a user.
func (db *DB) SessionCount(ctx context.Context, userID int) (int, error) {
	var n int
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM sessions WHERE user_id = $1`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting sessions: %w", err)
	}
	return n, nil
}

func scanSessionPayloads(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]models.WorkoutSession, error) {
	var result []models.WorkoutSession
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		var sess models.WorkoutSession
		if err := json.Unmarshal(payload, &sess); err != nil {
			return nil, fmt.Errorf("decoding session payload: %w", err)
		}
		result = append(result, sess)
	}
	return result, rows.Err()
}
