package badges

import (
	"sort"
	"time"

	"github.com/meltforce/liftmarks/internal/models"
)

// ExerciseInfo is what the engine needs to know about a catalog exercise.
type ExerciseInfo struct {
	Target    string
	Equipment string
}

// ExerciseLookup resolves an exercise id to its catalog entry. Missing ids
// degrade gracefully: the exercise is skipped, never an error.
type ExerciseLookup interface {
	Exercise(id string) (ExerciseInfo, bool)
}

// Stats is the immutable bundle every badge condition is evaluated against.
// It is recomputed from scratch on each engine call and lives only for the
// duration of that call.
type Stats struct {
	TotalWorkouts int     `json:"total_workouts"`
	TotalVolume   float64 `json:"total_volume_kg"`
	TotalSets     int     `json:"total_sets"`
	TotalReps     int     `json:"total_reps"`

	PRCount          int     `json:"pr_count"`
	MaxPRIncreasePct float64 `json:"max_pr_increase_pct"`

	MuscleSets   map[string]int     `json:"muscle_sets"`
	MuscleVolume map[string]float64 `json:"muscle_volume_kg"`

	EquipmentSets      map[string]int `json:"equipment_sets"`
	UniqueExercises    int            `json:"unique_exercises"`
	UniqueEquipment    int            `json:"unique_equipment"`
	MaxEquipmentWeek   int            `json:"max_equipment_week"`
	BodyweightSessions int            `json:"bodyweight_sessions"`

	LongestSessionMin int       `json:"longest_session_min"`
	BiggestDayMin     int       `json:"biggest_day_min"`
	StartHours        []int     `json:"start_hours"`
	EarliestSession   time.Time `json:"earliest_session"`

	// TrainedDates holds month-day keys ("01-02") of every ended session.
	TrainedDates map[string]bool `json:"-"`

	DayStreak       int `json:"day_streak"`
	WeekGoalStreak  int `json:"week_goal_streak"`
	WeekendStreak   int `json:"weekend_streak"`
	FrequencyStreak int `json:"frequency_streak"`

	BalancedDays int `json:"balanced_days"`
	DeloadWeeks  int `json:"deload_weeks"`

	// WeeklyMuscleSets is the rolling per-week per-muscle history, index 0 =
	// current week, each week's counts classified against the landmark table.
	WeeklyMuscleSets []WeekVolume `json:"weekly_muscle_sets"`

	RIRLoggedSets   int `json:"rir_logged_sets"`
	LowRIRSets      int `json:"low_rir_sets"`
	ReadinessChecks int `json:"readiness_checks"`
	FeedbackCount   int `json:"feedback_count"`
}

// WeekVolume is one calendar week of per-muscle completed-set counts.
type WeekVolume struct {
	WeekStart time.Time       `json:"week_start"`
	Sets      map[string]int  `json:"sets"`
	Zones     map[string]Zone `json:"zones"`
}

// volumeHistoryWeeks is the rolling-window lookback used for the weekly
// muscle history and deload detection.
const volumeHistoryWeeks = 24

// ComputeStats builds the stats bundle from a session history, anchored to
// now. Only ended sessions participate; the caller's ordering is not trusted
// and the history is sorted by start time before any chronological pass.
func ComputeStats(now time.Time, history []models.WorkoutSession, lookup ExerciseLookup) *Stats {
	sessions := endedSortedCopy(history)

	s := scanSessions(sessions, lookup)

	s.DayStreak = dayStreak(now, sessions)
	s.WeekGoalStreak = weekStreak(now, sessions, qualifiesWeekGoal)
	s.WeekendStreak = weekStreak(now, sessions, qualifiesWeekend)
	s.FrequencyStreak = frequencyStreak(now, sessions, lookup)
	s.WeeklyMuscleSets = weeklyMuscleSets(now, sessions, lookup, volumeHistoryWeeks)
	s.DeloadWeeks = deloadWeeks(s.WeeklyMuscleSets)
	s.BalancedDays = balancedDays(now, sessions, lookup)

	return s
}

// endedSortedCopy filters the history down to ended sessions and returns a
// fresh slice sorted oldest to newest. The input is never mutated.
func endedSortedCopy(history []models.WorkoutSession) []models.WorkoutSession {
	sessions := make([]models.WorkoutSession, 0, len(history))
	for _, sess := range history {
		if sess.Ended() {
			sessions = append(sessions, sess)
		}
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].StartTime.Before(sessions[j].StartTime.Time)
	})
	return sessions
}
