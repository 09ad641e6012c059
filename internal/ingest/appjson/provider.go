// Package appjson ingests the mobile app's native JSON session export, either
// a single session object or a batch.
package appjson

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/meltforce/liftmarks/internal/ingest"
	"github.com/meltforce/liftmarks/internal/models"
	"github.com/meltforce/liftmarks/internal/storage"
)

// Provider processes app JSON session payloads.
type Provider struct {
	db  *storage.DB
	log *slog.Logger
}

// NewProvider creates a new app JSON ingest provider.
func NewProvider(db *storage.DB, log *slog.Logger) *Provider {
	return &Provider{db: db, log: log}
}

// Ingest decodes a payload and stores its sessions. Duplicate session ids are
// skipped, so the app can re-sync its full export safely.
func (p *Provider) Ingest(ctx context.Context, r io.Reader, userID int) (*ingest.Result, error) {
	sessions, err := Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding payload: %w", err)
	}

	result := &ingest.Result{SessionsReceived: len(sessions)}
	for _, sess := range sessions {
		if sess.ID == "" {
			p.log.Warn("skipping session without id", "start", sess.StartTime.Time)
			result.SessionsSkipped++
			continue
		}
		for _, ex := range sess.Exercises {
			result.SetsReceived += len(ex.Sets)
		}
		inserted, err := p.db.InsertSession(ctx, userID, sess)
		if err != nil {
			return result, fmt.Errorf("storing session %s: %w", sess.ID, err)
		}
		if inserted {
			result.SessionsInserted++
		} else {
			result.SessionsSkipped++
		}
	}
	return result, nil
}

// Decode parses a payload that is either a single session object or an array
// of sessions. The probe is on the first non-whitespace byte.
func Decode(r io.Reader) ([]models.WorkoutSession, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading payload: %w", err)
	}

	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			var sessions []models.WorkoutSession
			if err := json.Unmarshal(data, &sessions); err != nil {
				return nil, fmt.Errorf("parsing session batch: %w", err)
			}
			return sessions, nil
		default:
			var sess models.WorkoutSession
			if err := json.Unmarshal(data, &sess); err != nil {
				return nil, fmt.Errorf("parsing session: %w", err)
			}
			return []models.WorkoutSession{sess}, nil
		}
	}
	return nil, fmt.Errorf("empty payload")
}
