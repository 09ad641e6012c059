package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) badgeCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	catalog, err := h.ds.BadgeCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, catalog)
}

func (h *handlers) recentUnlocks(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)

	unlocks, err := h.ds.RecentUnlocks(ctx, uid)
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, unlocks)
}

func (h *handlers) trainingSnapshot(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)

	stats, err := h.ds.TrainingStats(ctx, uid)
	if err != nil {
		return nil, err
	}

	unlocks, err := h.ds.RecentUnlocks(ctx, uid)
	if err != nil {
		h.log.Warn("training_snapshot: unlock query failed", "error", err)
	}

	snapshot := map[string]any{
		"date":            time.Now().Format("2006-01-02"),
		"stats":           stats,
		"unlocked_badges": len(unlocks),
		"recent_unlocks":  unlocks,
	}
	return jsonResource(req.Params.URI, snapshot)
}
