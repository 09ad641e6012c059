package badges

import "time"

// Tier is a badge's display tier.
type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

// ConditionType tags a badge's unlock condition. The set is closed: every
// value maps to exactly one extractor in the evaluator dispatch table, and
// the catalog loader rejects unknown tags.
type ConditionType string

const (
	// Volume and count conditions.
	CondTotalWorkouts        ConditionType = "total_workouts"
	CondTotalVolume          ConditionType = "total_volume"
	CondTotalSets            ConditionType = "total_sets"
	CondTotalReps            ConditionType = "total_reps"
	CondPRCount              ConditionType = "pr_count"
	CondPRIncreasePercent    ConditionType = "pr_increase_percent"
	CondMuscleSets           ConditionType = "muscle_sets"
	CondMuscleVolume         ConditionType = "muscle_volume"
	CondEquipmentSets        ConditionType = "equipment_sets"
	CondUniqueExercises      ConditionType = "unique_exercises"
	CondUniqueEquipment      ConditionType = "unique_equipment"
	CondEquipmentVarietyWeek ConditionType = "equipment_variety_week"
	CondBodyweightSessions   ConditionType = "bodyweight_sessions"
	CondLongestSessionMin    ConditionType = "longest_session_minutes"
	CondSingleDayMin         ConditionType = "single_day_minutes"

	// Streak conditions.
	CondDayStreak       ConditionType = "day_streak"
	CondWeekGoalStreak  ConditionType = "week_goal_streak"
	CondWeekendStreak   ConditionType = "weekend_streak"
	CondFrequencyStreak ConditionType = "frequency_streak"

	// Training-science conditions.
	CondBalancedDays       ConditionType = "balanced_days"
	CondDeloadWeeks        ConditionType = "deload_weeks"
	CondOptimalVolumeWeeks ConditionType = "optimal_volume_weeks"
	CondRIRLoggedSets      ConditionType = "rir_logged_sets"
	CondLowRIRSets         ConditionType = "low_rir_sets"
	CondReadinessChecks    ConditionType = "readiness_checks"
	CondFeedbackCount      ConditionType = "feedback_count"

	// Timing predicates. Boolean-style: evaluate to 0 or 1 with an implicit
	// target of 1 regardless of the badge's declared value.
	CondEarlyBird     ConditionType = "early_bird"
	CondNightOwl      ConditionType = "night_owl"
	CondTrainedOnDate ConditionType = "trained_on_date"
	CondAccountBefore ConditionType = "account_before"

	// Meta condition over other badges.
	CondBadgesUnlocked ConditionType = "badges_unlocked"

	// Deferred conditions: resolved by other subsystems, always 0 here.
	CondSocialShares    ConditionType = "social_shares"
	CondAIConversations ConditionType = "ai_conversations"
	CondProfileComplete ConditionType = "profile_complete"
)

// ConditionExtra carries the per-badge parameters some condition types need.
type ConditionExtra struct {
	Muscle    string   `yaml:"muscle,omitempty" json:"muscle,omitempty"`
	Equipment string   `yaml:"equipment,omitempty" json:"equipment,omitempty"`
	Hour      int      `yaml:"hour,omitempty" json:"hour,omitempty"`
	Date      string   `yaml:"date,omitempty" json:"date,omitempty"`     // "01-02" month-day
	Before    string   `yaml:"before,omitempty" json:"before,omitempty"` // "2006-01-02" cutoff
	Badges    []string `yaml:"badges,omitempty" json:"badges,omitempty"`
}

// Badge is a static badge definition from the catalog.
type Badge struct {
	ID             string          `yaml:"id" json:"id"`
	Name           string          `yaml:"name" json:"name"`
	Tier           Tier            `yaml:"tier" json:"tier"`
	ConditionType  ConditionType   `yaml:"condition" json:"condition"`
	ConditionValue float64         `yaml:"value" json:"value"`
	Extra          *ConditionExtra `yaml:"extra,omitempty" json:"extra,omitempty"`
}

// BadgeProgress is the per-badge output of EvaluateAll.
type BadgeProgress struct {
	Badge      Badge      `json:"badge"`
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlockedAt,omitempty"`
	Current    float64    `json:"current"`
	Target     float64    `json:"target"`
	Percent    float64    `json:"percent"`
}

// UnlockRecord is a persisted unlock as supplied by the caller. Timestamps
// are preserved verbatim, never recomputed.
type UnlockRecord struct {
	UnlockedAt time.Time `json:"unlockedAt"`
}
