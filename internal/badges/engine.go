package badges

import (
	"time"

	"github.com/meltforce/liftmarks/internal/models"
)

// Engine evaluates a static badge catalog against a session history. Both
// public operations are pure functions of their inputs: no I/O, no mutation,
// the stats bundle is recomputed from scratch exactly once per call. The
// recompute lives behind ComputeStats so an incremental variant could be
// substituted without touching the evaluation contracts.
type Engine struct {
	catalog []Badge
	lookup  ExerciseLookup
}

// New creates an Engine over a badge catalog and an exercise lookup.
func New(catalog []Badge, lookup ExerciseLookup) *Engine {
	return &Engine{catalog: catalog, lookup: lookup}
}

// Catalog returns the badge definitions the engine evaluates.
func (e *Engine) Catalog() []Badge { return e.catalog }

// Stats computes the current stats bundle for a history, anchored to the
// current wall clock.
func (e *Engine) Stats(history []models.WorkoutSession) *Stats {
	return ComputeStats(time.Now(), history, e.lookup)
}

// maxMetaPasses caps the meta-badge fixed-point loop. Each pass can only
// unlock badges whose dependencies resolved in an earlier pass, so the loop
// terminates well before the cap on any sane catalog.
const maxMetaPasses = 4

// EvaluateAll returns progress for every badge in the catalog, anchored to
// the current wall clock.
func (e *Engine) EvaluateAll(history []models.WorkoutSession, unlocked map[string]UnlockRecord) []BadgeProgress {
	return e.EvaluateAllAt(time.Now(), history, unlocked)
}

// EvaluateAllAt is EvaluateAll with an explicit evaluation time. Previously
// unlocked badges report 100% with their persisted timestamp and are never
// re-evaluated; deferred badges report 0% without evaluation.
func (e *Engine) EvaluateAllAt(now time.Time, history []models.WorkoutSession, unlocked map[string]UnlockRecord) []BadgeProgress {
	stats := ComputeStats(now, history, e.lookup)

	unlockedIDs := make(map[string]bool, len(unlocked))
	for id := range unlocked {
		unlockedIDs[id] = true
	}

	out := make([]BadgeProgress, 0, len(e.catalog))
	for _, b := range e.catalog {
		if rec, ok := unlocked[b.ID]; ok {
			at := rec.UnlockedAt
			_, target := Evaluate(b, stats, unlockedIDs)
			out = append(out, BadgeProgress{
				Badge:      b,
				Unlocked:   true,
				UnlockedAt: &at,
				Current:    target,
				Target:     target,
				Percent:    100,
			})
			continue
		}
		if IsDeferred(b.ConditionType) {
			out = append(out, BadgeProgress{Badge: b, Target: b.ConditionValue})
			continue
		}

		current, target := Evaluate(b, stats, unlockedIDs)
		percent := 0.0
		if target > 0 {
			percent = current / target * 100
		}
		if percent > 100 {
			percent = 100
		}
		if percent < 0 {
			percent = 0
		}
		out = append(out, BadgeProgress{
			Badge:    b,
			Unlocked: current >= target,
			Current:  current,
			Target:   target,
			Percent:  percent,
		})
	}
	return out
}

// NewlyUnlocked returns the ids of badges that newly qualify given the
// already-known-unlocked set, anchored to the current wall clock. The caller
// persists the returned ids and drives any celebration UI.
func (e *Engine) NewlyUnlocked(history []models.WorkoutSession, unlockedIDs map[string]bool) []string {
	return e.NewlyUnlockedAt(time.Now(), history, unlockedIDs)
}

// NewlyUnlockedAt runs delta detection with an explicit evaluation time.
// Pass one covers ordinary conditions, growing a working unlocked set as it
// goes. Meta badges are then resolved against that set to a fixed point
// (bounded by maxMetaPasses), so badge-on-badge dependency chains of any
// practical depth settle within a single call.
func (e *Engine) NewlyUnlockedAt(now time.Time, history []models.WorkoutSession, unlockedIDs map[string]bool) []string {
	stats := ComputeStats(now, history, e.lookup)

	working := make(map[string]bool, len(unlockedIDs))
	for id, ok := range unlockedIDs {
		if ok {
			working[id] = true
		}
	}

	var newly []string

	// Pass one: ordinary conditions. Later badges in the same pass see
	// earlier unlocks, but meta badges wait for pass two.
	for _, b := range e.catalog {
		if working[b.ID] || IsMeta(b.ConditionType) || IsDeferred(b.ConditionType) {
			continue
		}
		if current, target := Evaluate(b, stats, working); current >= target {
			working[b.ID] = true
			newly = append(newly, b.ID)
		}
	}

	// Meta passes: repeat until no new badge unlocks in a full pass.
	for pass := 0; pass < maxMetaPasses; pass++ {
		changed := false
		for _, b := range e.catalog {
			if working[b.ID] || !IsMeta(b.ConditionType) {
				continue
			}
			if current, target := Evaluate(b, stats, working); current >= target {
				working[b.ID] = true
				newly = append(newly, b.ID)
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	return newly
}
