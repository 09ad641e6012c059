package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/meltforce/liftmarks/internal/badges"
)

// UnlockedBadge is one persisted unlock record.
type UnlockedBadge struct {
	BadgeID    string    `json:"badge_id"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

// GetUnlockedBadges returns a user's unlock records keyed by badge id, in the
// shape the badge engine consumes.
func (db *DB) GetUnlockedBadges(ctx context.Context, userID int) (map[string]badges.UnlockRecord, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT badge_id, unlocked_at FROM unlocked_badges WHERE user_id = $1`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying unlocked badges: %w", err)
	}
	defer rows.Close()

	result := make(map[string]badges.UnlockRecord)
	for rows.Next() {
		var id string
		var at time.Time
		if err := rows.Scan(&id, &at); err != nil {
			return nil, fmt.Errorf("scanning unlocked badge: %w", err)
		}
		result[id] = badges.UnlockRecord{UnlockedAt: at}
	}
	return result, rows.Err()
}

// ListUnlockedBadges returns a user's unlock records newest first.
func (db *DB) ListUnlockedBadges(ctx context.Context, userID int) ([]UnlockedBadge, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT badge_id, unlocked_at FROM unlocked_badges
		 WHERE user_id = $1 ORDER BY unlocked_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying unlocked badges: %w", err)
	}
	defer rows.Close()

	var result []UnlockedBadge
	for rows.Next() {
		var u UnlockedBadge
		if err := rows.Scan(&u.BadgeID, &u.UnlockedAt); err != nil {
			return nil, fmt.Errorf("scanning unlocked badge: %w", err)
		}
		result = append(result, u)
	}
	return result, rows.Err()
}

// InsertUnlockedBadges batch-inserts unlock records. Existing records are
// never overwritten, so a badge keeps its original unlock timestamp no matter
// how often delta detection re-reports it. Returns count inserted.
func (db *DB) InsertUnlockedBadges(ctx context.Context, userID int, badgeIDs []string, at time.Time) (int64, error) {
	if len(badgeIDs) == 0 {
		return 0, nil
	}

	query := `INSERT INTO unlocked_badges (user_id, badge_id, unlocked_at) VALUES `
	args := make([]any, 0, len(badgeIDs)*3)
	valueStrings := make([]string, 0, len(badgeIDs))

	for i, id := range badgeIDs {
		base := i * 3
		valueStrings = append(valueStrings, fmt.Sprintf("($%d,$%d,$%d)", base+1, base+2, base+3))
		args = append(args, userID, id, at)
	}

	query += strings.Join(valueStrings, ",") + " ON CONFLICT DO NOTHING"

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting unlocked badges: %w", err)
	}
	return tag.RowsAffected(), nil
}
