package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/meltforce/liftmarks/internal/badges"
	"github.com/meltforce/liftmarks/internal/models"
)

// TestBadgeProgressDecodes verifies that the client decodes the progress
// endpoint and forwards the user ID header.
func TestBadgeProgressDecodes(t *testing.T) {
	var gotUserID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/badges" {
			t.Errorf("path = %q, want /api/v1/badges", r.URL.Path)
		}
		gotUserID = r.Header.Get("X-User-ID")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"badge": {"id": "first-session", "name": "First Session", "tier": "bronze", "condition": "total_workouts", "value": 1}, "unlocked": true, "current": 5, "target": 1, "percent": 100},
			{"badge": {"id": "ten-sessions", "name": "Ten Sessions", "tier": "silver", "condition": "total_workouts", "value": 10}, "unlocked": false, "current": 5, "target": 10, "percent": 50}
		]`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	progress, err := c.BadgeProgress(context.Background(), 7)
	if err != nil {
		t.Fatalf("BadgeProgress: %v", err)
	}

	if gotUserID != "7" {
		t.Errorf("X-User-ID = %q, want 7", gotUserID)
	}
	if len(progress) != 2 {
		t.Fatalf("len = %d, want 2", len(progress))
	}
	if progress[0].Badge.ID != "first-session" || !progress[0].Unlocked {
		t.Errorf("progress[0] = %+v", progress[0])
	}
	if progress[1].Percent != 50 {
		t.Errorf("progress[1].Percent = %v, want 50", progress[1].Percent)
	}
}

type fixedLookup struct{}

func (fixedLookup) Exercise(string) (badges.ExerciseInfo, bool) {
	return badges.ExerciseInfo{Target: "Chest", Equipment: "barbell"}, true
}

// TestNewlyUnlockableDerivation serves genuine EvaluateAll output and
// verifies that a badge which newly qualifies (unlocked, no persisted
// timestamp) is reported while persisted unlocks and partial progress are
// not.
func TestNewlyUnlockableDerivation(t *testing.T) {
	catalog := []badges.Badge{
		{ID: "first-workout", Name: "First Workout", Tier: badges.TierBronze, ConditionType: badges.CondTotalWorkouts, ConditionValue: 1},
		{ID: "ten-workouts", Name: "Ten Workouts", Tier: badges.TierSilver, ConditionType: badges.CondTotalWorkouts, ConditionValue: 10},
		{ID: "already", Name: "Already", Tier: badges.TierBronze, ConditionType: badges.CondTotalSets, ConditionValue: 1},
	}
	engine := badges.New(catalog, fixedLookup{})

	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	end := models.AppTime{Time: start.Add(time.Hour)}
	history := []models.WorkoutSession{{
		ID:          "s1",
		StartTime:   models.AppTime{Time: start},
		EndTime:     &end,
		DurationSec: 3600,
		Exercises: []models.CompletedExercise{{
			ExerciseID: "bench",
			Sets:       []models.CompletedSet{{Reps: 8, WeightKg: 60, Completed: true}},
		}},
	}}
	persisted := map[string]badges.UnlockRecord{
		"already": {UnlockedAt: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},
	}

	payload, err := json.Marshal(engine.EvaluateAll(history, persisted))
	if err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	ids, err := NewHTTPClient(srv.URL).NewlyUnlockable(context.Background(), 1)
	if err != nil {
		t.Fatalf("NewlyUnlockable: %v", err)
	}
	if len(ids) != 1 || ids[0] != "first-workout" {
		t.Errorf("ids = %v, want [first-workout]", ids)
	}
}

// TestTrainingStatsDecodes verifies the stats endpoint decode.
func TestTrainingStatsDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/stats" {
			t.Errorf("path = %q, want /api/v1/stats", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total_workouts": 12, "total_volume_kg": 15000.5, "day_streak": 3, "muscle_sets": {"chest": 40}}`))
	}))
	defer srv.Close()

	stats, err := NewHTTPClient(srv.URL).TrainingStats(context.Background(), 1)
	if err != nil {
		t.Fatalf("TrainingStats: %v", err)
	}
	if stats.TotalWorkouts != 12 || stats.TotalVolume != 15000.5 {
		t.Errorf("totals = %d / %v", stats.TotalWorkouts, stats.TotalVolume)
	}
	if stats.DayStreak != 3 || stats.MuscleSets["chest"] != 40 {
		t.Errorf("day_streak = %d, chest sets = %d", stats.DayStreak, stats.MuscleSets["chest"])
	}
}

// TestRecentUnlocksDecodes verifies the unlocked badges endpoint decode.
func TestRecentUnlocksDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/badges/unlocked" {
			t.Errorf("path = %q, want /api/v1/badges/unlocked", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"badge_id": "first-pr", "unlocked_at": "2025-06-01T10:00:00Z"}]`))
	}))
	defer srv.Close()

	unlocks, err := NewHTTPClient(srv.URL).RecentUnlocks(context.Background(), 1)
	if err != nil {
		t.Fatalf("RecentUnlocks: %v", err)
	}
	if len(unlocks) != 1 || unlocks[0].BadgeID != "first-pr" {
		t.Errorf("unlocks = %v", unlocks)
	}
	if unlocks[0].UnlockedAt.Year() != 2025 {
		t.Errorf("unlocked_at = %v", unlocks[0].UnlockedAt)
	}
}

// TestBadgeCatalogFromProgress verifies that definitions are extracted from
// the progress payload.
func TestBadgeCatalogFromProgress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"badge": {"id": "a", "name": "A", "tier": "bronze", "condition": "total_sets", "value": 100}, "percent": 10},
			{"badge": {"id": "b", "name": "B", "tier": "gold", "condition": "pr_count", "value": 25}, "percent": 0}
		]`))
	}))
	defer srv.Close()

	catalog, err := NewHTTPClient(srv.URL).BadgeCatalog(context.Background())
	if err != nil {
		t.Fatalf("BadgeCatalog: %v", err)
	}
	if len(catalog) != 2 || catalog[0].ID != "a" || catalog[1].ConditionValue != 25 {
		t.Errorf("catalog = %v", catalog)
	}
}

// TestErrorStatusSurfaced verifies that non-200 responses become errors
// carrying the status code and body.
func TestErrorStatusSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": "boom"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL).BadgeProgress(context.Background(), 1)
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("error = %v, want status code included", err)
	}
}

// TestBaseURLTrailingSlash verifies the base URL is normalized.
func TestBaseURLTrailingSlash(t *testing.T) {
	c := NewHTTPClient("http://example.com/")
	if c.baseURL != "http://example.com" {
		t.Errorf("baseURL = %q", c.baseURL)
	}
}
