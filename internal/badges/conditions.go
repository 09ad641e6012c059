package badges

import "time"

// evalFunc extracts a badge's current progress value from the stats bundle.
// Meta conditions additionally consult the caller-supplied unlocked set,
// which grows during resolution.
type evalFunc func(s *Stats, b Badge, unlocked map[string]bool) float64

// evaluators is the closed dispatch table: one entry per condition type.
// TestEvaluatorsCoverVocabulary keeps it exhaustive.
var evaluators = map[ConditionType]evalFunc{
	CondTotalWorkouts:     func(s *Stats, _ Badge, _ map[string]bool) float64 { return float64(s.TotalWorkouts) },
	CondTotalVolume:       func(s *Stats, _ Badge, _ map[string]bool) float64 { return s.TotalVolume },
	CondTotalSets:         func(s *Stats, _ Badge, _ map[string]bool) float64 { return float64(s.TotalSets) },
	CondTotalReps:         func(s *Stats, _ Badge, _ map[string]bool) float64 { return float64(s.TotalReps) },
	CondPRCount:           func(s *Stats, _ Badge, _ map[string]bool) float64 { return float64(s.PRCount) },
	CondPRIncreasePercent: func(s *Stats, _ Badge, _ map[string]bool) float64 { return s.MaxPRIncreasePct },

	CondMuscleSets: func(s *Stats, b Badge, _ map[string]bool) float64 {
		total := 0
		for _, m := range expandExtra(b) {
			total += s.MuscleSets[m]
		}
		return float64(total)
	},
	CondMuscleVolume: func(s *Stats, b Badge, _ map[string]bool) float64 {
		total := 0.0
		for _, m := range expandExtra(b) {
			total += s.MuscleVolume[m]
		}
		return total
	},
	CondEquipmentSets: func(s *Stats, b Badge, _ map[string]bool) float64 {
		if b.Extra == nil {
			return 0
		}
		return float64(s.EquipmentSets[b.Extra.Equipment])
	},

	CondUniqueExercises:      func(s *Stats, _ Badge, _ map[string]bool) float64 { return float64(s.UniqueExercises) },
	CondUniqueEquipment:      func(s *Stats, _ Badge, _ map[string]bool) float64 { return float64(s.UniqueEquipment) },
	CondEquipmentVarietyWeek: func(s *Stats, _ Badge, _ map[string]bool) float64 { return float64(s.MaxEquipmentWeek) },
	CondBodyweightSessions:   func(s *Stats, _ Badge, _ map[string]bool) float64 { return float64(s.BodyweightSessions) },
	CondLongestSessionMin:    func(s *Stats, _ Badge, _ map[string]bool) float64 { return float64(s.LongestSessionMin) },
	CondSingleDayMin:         func(s *Stats, _ Badge, _ map[string]bool) float64 { return float64(s.BiggestDayMin) },

	CondDayStreak:       func(s *Stats, _ Badge, _ map[string]bool) float64 { return float64(s.DayStreak) },
	CondWeekGoalStreak:  func(s *Stats, _ Badge, _ map[string]bool) float64 { return float64(s.WeekGoalStreak) },
	CondWeekendStreak:   func(s *Stats, _ Badge, _ map[string]bool) float64 { return float64(s.WeekendStreak) },
	CondFrequencyStreak: func(s *Stats, _ Badge, _ map[string]bool) float64 { return float64(s.FrequencyStreak) },

	CondBalancedDays: func(s *Stats, _ Badge, _ map[string]bool) float64 { return float64(s.BalancedDays) },
	CondDeloadWeeks:  func(s *Stats, _ Badge, _ map[string]bool) float64 { return float64(s.DeloadWeeks) },
	CondOptimalVolumeWeeks: func(s *Stats, b Badge, _ map[string]bool) float64 {
		if b.Extra == nil {
			return 0
		}
		key := b.Extra.Muscle
		subs := ExpandMuscle(key)
		if len(subs) == 0 {
			return 0
		}
		lm, ok := LookupLandmark(key)
		if !ok {
			return 0
		}
		count := 0
		for _, wv := range s.WeeklyMuscleSets {
			sets := 0
			for _, m := range subs {
				sets += wv.Sets[m]
			}
			if ClassifyZone(sets, lm) == ZoneOptimal {
				count++
			}
		}
		return float64(count)
	},
	CondRIRLoggedSets:   func(s *Stats, _ Badge, _ map[string]bool) float64 { return float64(s.RIRLoggedSets) },
	CondLowRIRSets:      func(s *Stats, _ Badge, _ map[string]bool) float64 { return float64(s.LowRIRSets) },
	CondReadinessChecks: func(s *Stats, _ Badge, _ map[string]bool) float64 { return float64(s.ReadinessChecks) },
	CondFeedbackCount:   func(s *Stats, _ Badge, _ map[string]bool) float64 { return float64(s.FeedbackCount) },

	CondEarlyBird: func(s *Stats, b Badge, _ map[string]bool) float64 {
		hour := 6
		if b.Extra != nil && b.Extra.Hour > 0 {
			hour = b.Extra.Hour
		}
		for _, h := range s.StartHours {
			if h < hour {
				return 1
			}
		}
		return 0
	},
	CondNightOwl: func(s *Stats, b Badge, _ map[string]bool) float64 {
		hour := 22
		if b.Extra != nil && b.Extra.Hour > 0 {
			hour = b.Extra.Hour
		}
		for _, h := range s.StartHours {
			if h >= hour {
				return 1
			}
		}
		return 0
	},
	CondTrainedOnDate: func(s *Stats, b Badge, _ map[string]bool) float64 {
		if b.Extra == nil || !s.TrainedDates[b.Extra.Date] {
			return 0
		}
		return 1
	},
	CondAccountBefore: func(s *Stats, b Badge, _ map[string]bool) float64 {
		if b.Extra == nil || s.EarliestSession.IsZero() {
			return 0
		}
		cutoff, err := time.Parse("2006-01-02", b.Extra.Before)
		if err != nil {
			return 0
		}
		if s.EarliestSession.Before(cutoff) {
			return 1
		}
		return 0
	},

	CondBadgesUnlocked: func(_ *Stats, b Badge, unlocked map[string]bool) float64 {
		if b.Extra == nil {
			return 0
		}
		count := 0
		for _, id := range b.Extra.Badges {
			if unlocked[id] {
				count++
			}
		}
		return float64(count)
	},

	CondSocialShares:    evalDeferred,
	CondAIConversations: evalDeferred,
	CondProfileComplete: evalDeferred,
}

// evalDeferred: identity/social/AI predicates are not derivable from local
// session history. They stay at 0 and never unlock through this engine.
func evalDeferred(_ *Stats, _ Badge, _ map[string]bool) float64 { return 0 }

func expandExtra(b Badge) []string {
	if b.Extra == nil {
		return nil
	}
	return ExpandMuscle(b.Extra.Muscle)
}

// IsKnownCondition reports whether t has an evaluator.
func IsKnownCondition(t ConditionType) bool {
	_, ok := evaluators[t]
	return ok
}

// IsMeta reports whether t depends on other badges being unlocked.
func IsMeta(t ConditionType) bool { return t == CondBadgesUnlocked }

// IsDeferred reports whether t is resolved outside this engine.
func IsDeferred(t ConditionType) bool {
	switch t {
	case CondSocialShares, CondAIConversations, CondProfileComplete:
		return true
	}
	return false
}

// IsBoolean reports whether t is a boolean-style predicate whose implicit
// target is 1 regardless of the badge's declared condition value.
func IsBoolean(t ConditionType) bool {
	switch t {
	case CondEarlyBird, CondNightOwl, CondTrainedOnDate, CondAccountBefore:
		return true
	}
	return false
}

// Evaluate returns a badge's current progress value and its target. Unknown
// condition types evaluate to zero progress against the declared value.
func Evaluate(b Badge, s *Stats, unlocked map[string]bool) (current, target float64) {
	target = b.ConditionValue
	if IsBoolean(b.ConditionType) {
		target = 1
	}
	fn, ok := evaluators[b.ConditionType]
	if !ok {
		return 0, target
	}
	return fn(s, b, unlocked), target
}
