package badges

import (
	"testing"
	"time"

	"github.com/meltforce/liftmarks/internal/models"
)

// TestPRChronology verifies running-best semantics: 50 kg, then 45 kg,
// then 55 kg on the same exercise yields two PRs: the first session against
// the zero baseline and the third against the running best of 50.
func TestPRChronology(t *testing.T) {
	sessions := []models.WorkoutSession{
		endedSession(day(2024, 3, 1), exercise("bench", 50, 5, 1)),
		endedSession(day(2024, 3, 3), exercise("bench", 45, 5, 1)),
		endedSession(day(2024, 3, 5), exercise("bench", 55, 5, 1)),
	}
	s := scanSessions(sessions, testLookup)
	if s.PRCount != 2 {
		t.Errorf("PRCount = %d, want 2", s.PRCount)
	}
}

// TestPRChronologyUnsortedInput verifies that PR detection survives a caller
// handing history out of order: the scanner's callers sort first, and the
// same sessions shuffled through ComputeStats give the same count.
func TestPRChronologyUnsortedInput(t *testing.T) {
	sessions := []models.WorkoutSession{
		endedSession(day(2024, 3, 5), exercise("bench", 55, 5, 1)),
		endedSession(day(2024, 3, 1), exercise("bench", 50, 5, 1)),
		endedSession(day(2024, 3, 3), exercise("bench", 45, 5, 1)),
	}
	now := time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)
	s := ComputeStats(now, sessions, testLookup)
	if s.PRCount != 2 {
		t.Errorf("PRCount = %d, want 2", s.PRCount)
	}
}

// TestMaxPRIncreasePercent verifies the best-over-first improvement: first
// recorded 50 kg, eventual best 60 kg is a 20% increase.
func TestMaxPRIncreasePercent(t *testing.T) {
	sessions := []models.WorkoutSession{
		endedSession(day(2024, 3, 1), exercise("bench", 50, 5, 1)),
		endedSession(day(2024, 3, 8), exercise("bench", 60, 5, 1)),
	}
	s := scanSessions(sessions, testLookup)
	if s.MaxPRIncreasePct != 20 {
		t.Errorf("MaxPRIncreasePct = %v, want 20", s.MaxPRIncreasePct)
	}
}

// TestIncompleteSetsExcluded verifies the exclusivity property: a set with
// completed=false contributes nothing to tonnage, set counts, or PRs, no
// matter what reps/weight it carries.
func TestIncompleteSetsExcluded(t *testing.T) {
	sessions := []models.WorkoutSession{
		endedSession(day(2024, 3, 1), models.CompletedExercise{
			ExerciseID: "bench",
			Sets: []models.CompletedSet{
				{Reps: 10, WeightKg: 500, Completed: false},
			},
		}),
	}
	s := scanSessions(sessions, testLookup)
	if s.TotalVolume != 0 {
		t.Errorf("TotalVolume = %v, want 0", s.TotalVolume)
	}
	if s.TotalSets != 0 {
		t.Errorf("TotalSets = %d, want 0", s.TotalSets)
	}
	if s.PRCount != 0 {
		t.Errorf("PRCount = %d, want 0", s.PRCount)
	}
	if s.MuscleSets[MuscleChest] != 0 {
		t.Errorf("chest sets = %d, want 0", s.MuscleSets[MuscleChest])
	}
}

// TestTonnageAndMuscleAggregates verifies basic accumulation: 3x8 at 60 kg on
// bench is 1440 kg of chest volume on barbell equipment.
func TestTonnageAndMuscleAggregates(t *testing.T) {
	sessions := []models.WorkoutSession{
		endedSession(day(2024, 3, 1), exercise("bench", 60, 8, 3)),
	}
	s := scanSessions(sessions, testLookup)
	if s.TotalVolume != 1440 {
		t.Errorf("TotalVolume = %v, want 1440", s.TotalVolume)
	}
	if s.MuscleVolume[MuscleChest] != 1440 {
		t.Errorf("chest volume = %v, want 1440", s.MuscleVolume[MuscleChest])
	}
	if s.MuscleSets[MuscleChest] != 3 {
		t.Errorf("chest sets = %d, want 3", s.MuscleSets[MuscleChest])
	}
	if s.EquipmentSets["barbell"] != 3 {
		t.Errorf("barbell sets = %d, want 3", s.EquipmentSets["barbell"])
	}
	if s.TotalReps != 24 {
		t.Errorf("TotalReps = %d, want 24", s.TotalReps)
	}
}

// TestUnknownExerciseSkipped verifies that an exercise missing from the
// catalog is skipped while the rest of the session still counts.
func TestUnknownExerciseSkipped(t *testing.T) {
	sessions := []models.WorkoutSession{
		endedSession(day(2024, 3, 1),
			exercise("mystery-machine", 100, 10, 2),
			exercise("bench", 60, 8, 3),
		),
	}
	s := scanSessions(sessions, testLookup)
	if s.TotalSets != 3 {
		t.Errorf("TotalSets = %d, want 3 (unknown exercise skipped)", s.TotalSets)
	}
	if s.UniqueExercises != 1 {
		t.Errorf("UniqueExercises = %d, want 1", s.UniqueExercises)
	}
}

// TestBodyweightSessions verifies that a session counts as bodyweight-only
// when every resolvable exercise uses bodyweight equipment.
func TestBodyweightSessions(t *testing.T) {
	sessions := []models.WorkoutSession{
		endedSession(day(2024, 3, 1), exercise("pushup", 0, 15, 3), exercise("pullup", 0, 8, 3)),
		endedSession(day(2024, 3, 2), exercise("pushup", 0, 15, 3), exercise("bench", 60, 8, 3)),
	}
	s := scanSessions(sessions, testLookup)
	if s.BodyweightSessions != 1 {
		t.Errorf("BodyweightSessions = %d, want 1", s.BodyweightSessions)
	}
}

// TestEquipmentVarietyWeek verifies the max-distinct-equipment-per-week stat
// across sessions landing in the same calendar week.
func TestEquipmentVarietyWeek(t *testing.T) {
	sessions := []models.WorkoutSession{
		// Week of 2024-03-18: barbell + dumbbell + machine.
		endedSession(day(2024, 3, 18), exercise("bench", 60, 8, 3), exercise("curl", 14, 10, 3)),
		endedSession(day(2024, 3, 20), exercise("legpress", 120, 10, 3)),
		// Week of 2024-03-11: barbell only.
		endedSession(day(2024, 3, 11), exercise("squat", 80, 5, 3)),
	}
	s := scanSessions(sessions, testLookup)
	if s.MaxEquipmentWeek != 3 {
		t.Errorf("MaxEquipmentWeek = %d, want 3", s.MaxEquipmentWeek)
	}
}

// TestSessionDurations verifies the longest-session and biggest-day stats,
// with two sessions on one day summing into the day total.
func TestSessionDurations(t *testing.T) {
	morning := endedSession(day(2024, 3, 1))
	morning.DurationSec = 90 * 60
	evening := endedSession(day(2024, 3, 1).Add(9 * time.Hour))
	evening.DurationSec = 60 * 60

	s := scanSessions([]models.WorkoutSession{morning, evening}, testLookup)
	if s.LongestSessionMin != 90 {
		t.Errorf("LongestSessionMin = %d, want 90", s.LongestSessionMin)
	}
	if s.BiggestDayMin != 150 {
		t.Errorf("BiggestDayMin = %d, want 150", s.BiggestDayMin)
	}
}

// TestRIRCounting verifies that RIR-carrying completed sets feed the science
// counters, with RIR 0-1 also counted as near-failure work.
func TestRIRCounting(t *testing.T) {
	rir := func(v int) *int { return &v }
	sessions := []models.WorkoutSession{
		endedSession(day(2024, 3, 1), models.CompletedExercise{
			ExerciseID: "bench",
			Sets: []models.CompletedSet{
				{Reps: 8, WeightKg: 60, Completed: true, RIR: rir(3)},
				{Reps: 8, WeightKg: 60, Completed: true, RIR: rir(1)},
				{Reps: 8, WeightKg: 60, Completed: true, RIR: rir(0)},
				{Reps: 8, WeightKg: 60, Completed: false, RIR: rir(0)}, // not completed
			},
		}),
	}
	s := scanSessions(sessions, testLookup)
	if s.RIRLoggedSets != 3 {
		t.Errorf("RIRLoggedSets = %d, want 3", s.RIRLoggedSets)
	}
	if s.LowRIRSets != 2 {
		t.Errorf("LowRIRSets = %d, want 2", s.LowRIRSets)
	}
}

// TestInProgressSessionsExcluded verifies that a session without an end
// timestamp contributes nothing at all.
func TestInProgressSessionsExcluded(t *testing.T) {
	inProgress := models.WorkoutSession{
		ID:        "open",
		StartTime: models.AppTime{Time: day(2024, 3, 1)},
		Exercises: []models.CompletedExercise{exercise("bench", 60, 8, 3)},
	}
	now := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)
	s := ComputeStats(now, []models.WorkoutSession{inProgress}, testLookup)
	if s.TotalWorkouts != 0 || s.TotalSets != 0 {
		t.Errorf("in-progress session counted: workouts=%d sets=%d", s.TotalWorkouts, s.TotalSets)
	}
	if s.DayStreak != 0 {
		t.Errorf("DayStreak = %d, want 0", s.DayStreak)
	}
}
