package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) int {
	if id, ok := ctx.Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("Liftmarks", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Liftmarks badge and training data server. Query badge progress, unlock history, training stats, streaks, and weekly muscle volume. All data is scoped to the authenticated user."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetBadgeProgress, Handler: h.getBadgeProgress},
		server.ServerTool{Tool: toolGetNewlyUnlockable, Handler: h.getNewlyUnlockable},
		server.ServerTool{Tool: toolGetTrainingStats, Handler: h.getTrainingStats},
		server.ServerTool{Tool: toolGetStreaks, Handler: h.getStreaks},
		server.ServerTool{Tool: toolGetMuscleVolume, Handler: h.getMuscleVolume},
		server.ServerTool{Tool: toolListBadges, Handler: h.listBadges},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resBadgeCatalog, Handler: h.badgeCatalog},
		server.ServerResource{Resource: resRecentUnlocks, Handler: h.recentUnlocks},
		server.ServerResource{Resource: resTrainingSnapshot, Handler: h.trainingSnapshot},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resBadgeCatalog = mcp.NewResource(
	"liftmarks://badge_catalog",
	"Badge Catalog",
	mcp.WithResourceDescription("All badge definitions with tier, condition type, and target value"),
	mcp.WithMIMEType("application/json"),
)

var resRecentUnlocks = mcp.NewResource(
	"liftmarks://recent_unlocks",
	"Recent Unlocks",
	mcp.WithResourceDescription("Unlocked badges in reverse chronological order"),
	mcp.WithMIMEType("application/json"),
)

var resTrainingSnapshot = mcp.NewResource(
	"liftmarks://training_snapshot",
	"Training Snapshot",
	mcp.WithResourceDescription("Current training stats bundle plus unlock totals"),
	mcp.WithMIMEType("application/json"),
)
