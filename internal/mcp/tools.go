package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/liftmarks/internal/badges"
)

// --- Tool definitions ---

var toolGetBadgeProgress = mcp.NewTool("get_badge_progress",
	mcp.WithDescription("Progress toward every badge: current value, target, percent, and unlock status. Optionally filtered by tier."),
	mcp.WithString("tier", mcp.Description("Filter by badge tier."), mcp.Enum("bronze", "silver", "gold", "platinum")),
)

var toolGetNewlyUnlockable = mcp.NewTool("get_newly_unlockable",
	mcp.WithDescription("Badge ids that are earned but not yet recorded as unlocked. Read-only: nothing is persisted."),
)

var toolGetTrainingStats = mcp.NewTool("get_training_stats",
	mcp.WithDescription("Full training stats bundle: workout counts, tonnage, PRs, per-muscle and per-equipment sets, streaks, deload weeks, and weekly volume."),
)

var toolGetStreaks = mcp.NewTool("get_streaks",
	mcp.WithDescription("Current training streaks: consecutive days, weeks with 3+ sessions, weekend weeks, and weeks hitting 2x frequency on the major muscle groups."),
)

var toolGetMuscleVolume = mcp.NewTool("get_muscle_volume",
	mcp.WithDescription("Weekly set counts per muscle with volume landmark zones (below_mv, maintenance, optimal, high, excess). Most recent weeks last."),
	mcp.WithNumber("weeks", mcp.Description("Number of trailing weeks to return (1-24). Defaults to 8.")),
)

var toolListBadges = mcp.NewTool("list_badges",
	mcp.WithDescription("List all badge definitions: id, name, tier, condition type, and target value."),
)

// --- Tool handlers ---

func filterByTier(progress []badges.BadgeProgress, tier string) []badges.BadgeProgress {
	if tier == "" {
		return progress
	}
	out := make([]badges.BadgeProgress, 0, len(progress))
	for _, p := range progress {
		if string(p.Badge.Tier) == tier {
			out = append(out, p)
		}
	}
	return out
}

func (h *handlers) getBadgeProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	progress, err := h.ds.BadgeProgress(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_badge_progress", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	progress = filterByTier(progress, req.GetString("tier", ""))

	result, err := mcp.NewToolResultJSON(progress)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getNewlyUnlockable(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	ids, err := h.ds.NewlyUnlockable(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_newly_unlockable", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{"newly_unlockable": ids})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getTrainingStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	stats, err := h.ds.TrainingStats(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_training_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(stats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getStreaks(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	stats, err := h.ds.TrainingStats(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_streaks", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"day_streak":       stats.DayStreak,
		"week_goal_streak": stats.WeekGoalStreak,
		"weekend_streak":   stats.WeekendStreak,
		"frequency_streak": stats.FrequencyStreak,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// weekVolumeView is the JSON shape of one week in get_muscle_volume, with
// zones rendered as their string names.
type weekVolumeView struct {
	WeekStart string                  `json:"week_start"`
	Muscles   map[string]muscleVolume `json:"muscles"`
}

type muscleVolume struct {
	Sets int    `json:"sets"`
	Zone string `json:"zone"`
}

// WeeklyMuscleSets is newest week first; the view keeps the n most recent
// weeks and reverses them so readers see oldest to newest.
func muscleVolumeView(weeks []badges.WeekVolume, n int) []weekVolumeView {
	if n < 1 {
		n = 1
	}
	if n > len(weeks) {
		n = len(weeks)
	}

	out := make([]weekVolumeView, 0, n)
	for i := n - 1; i >= 0; i-- {
		w := weeks[i]
		muscles := make(map[string]muscleVolume, len(w.Sets))
		for muscle, sets := range w.Sets {
			muscles[muscle] = muscleVolume{Sets: sets, Zone: w.Zones[muscle].String()}
		}
		out = append(out, weekVolumeView{
			WeekStart: w.WeekStart.Format("2006-01-02"),
			Muscles:   muscles,
		})
	}
	return out
}

func (h *handlers) getMuscleVolume(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	stats, err := h.ds.TrainingStats(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_muscle_volume", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	weeks := req.GetInt("weeks", 8)
	result, err := mcp.NewToolResultJSON(muscleVolumeView(stats.WeeklyMuscleSets, weeks))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listBadges(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	catalog, err := h.ds.BadgeCatalog(ctx)
	if err != nil {
		h.log.Error("mcp list_badges", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(catalog)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
