package alpha

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/meltforce/liftmarks/internal/ingest"
	"github.com/meltforce/liftmarks/internal/storage"
)

// Provider processes Alpha Progression CSV exports.
type Provider struct {
	db       *storage.DB
	resolver NameResolver
	log      *slog.Logger
}

// NewProvider creates a new Alpha Progression ingest provider.
func NewProvider(db *storage.DB, resolver NameResolver, log *slog.Logger) *Provider {
	return &Provider{db: db, resolver: resolver, log: log}
}

// Ingest parses a CSV export, converts it to app sessions and stores them.
// Deterministic session ids make re-imports no-ops at the storage layer.
func (p *Provider) Ingest(ctx context.Context, r io.Reader, userID int) (*ingest.Result, error) {
	parsed, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}

	conv := Convert(parsed, p.resolver)
	result := &ingest.Result{
		SessionsReceived: len(conv.Sessions),
		SetsReceived:     conv.SetsReceived,
		SkippedExercises: conv.SkippedExercises,
	}
	if len(conv.SkippedExercises) > 0 {
		p.log.Warn("exercises not in catalog, dropped", "names", conv.SkippedExercises)
		result.Message = fmt.Sprintf(
			"Some exercises are not in the catalog and were dropped: %v.",
			conv.SkippedExercises)
	}

	for _, sess := range conv.Sessions {
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
