package mcp

import (
	"context"

	"github.com/meltforce/liftmarks/internal/badges"
	"github.com/meltforce/liftmarks/internal/storage"
)

// DataSource abstracts the data layer for MCP tools. Both Local (storage plus
// engine, in-process) and HTTPClient (remote via REST API) satisfy this
// interface.
type DataSource interface {
	BadgeProgress(ctx context.Context, userID int) ([]badges.BadgeProgress, error)
	NewlyUnlockable(ctx context.Context, userID int) ([]string, error)
	TrainingStats(ctx context.Context, userID int) (*badges.Stats, error)
	RecentUnlocks(ctx context.Context, userID int) ([]storage.UnlockedBadge, error)
	BadgeCatalog(ctx context.Context) ([]badges.Badge, error)
}

// Local serves MCP tools straight from the database and the badge engine.
type Local struct {
	db     *storage.DB
	engine *badges.Engine
}

// Compile-time checks: both sources satisfy DataSource.
var (
	_ DataSource = (*Local)(nil)
	_ DataSource = (*HTTPClient)(nil)
)

// NewLocal creates a Local data source.
func NewLocal(db *storage.DB, engine *badges.Engine) *Local {
	return &Local{db: db, engine: engine}
}

func (l *Local) BadgeProgress(ctx context.Context, userID int) ([]badges.BadgeProgress, error) {
	history, err := l.db.LoadHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	unlocked, err := l.db.GetUnlockedBadges(ctx, userID)
	if err != nil {
		return nil, err
	}
	return l.engine.EvaluateAll(history, unlocked), nil
}

// NewlyUnlockable evaluates without persisting anything. The REST check
// endpoint is the only writer of unlock records.
func (l *Local) NewlyUnlockable(ctx context.Context, userID int) ([]string, error) {
	history, err := l.db.LoadHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	unlocked, err := l.db.GetUnlockedBadges(ctx, userID)
	if err != nil {
		return nil, err
	}
	unlockedIDs := make(map[string]bool, len(unlocked))
	for id := range unlocked {
		unlockedIDs[id] = true
	}
	return l.engine.NewlyUnlocked(history, unlockedIDs), nil
}

func (l *Local) TrainingStats(ctx context.Context, userID int) (*badges.Stats, error) {
	history, err := l.db.LoadHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	return l.engine.Stats(history), nil
}

func (l *Local) RecentUnlocks(ctx context.Context, userID int) ([]storage.UnlockedBadge, error) {
	return l.db.ListUnlockedBadges(ctx, userID)
}

func (l *Local) BadgeCatalog(_ context.Context) ([]badges.Badge, error) {
	return l.engine.Catalog(), nil
}
