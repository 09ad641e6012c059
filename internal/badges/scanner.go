package badges

import (
	"github.com/meltforce/liftmarks/internal/models"
)

// scanSessions is the single chronological pass over the (already sorted,
// ended-only) history. Everything that does not need a calendar window is
// accumulated here, including PR detection, which is order-dependent: a PR is
// a strict improvement over the running best at that point in time, not over
// the full-history maximum.
func scanSessions(sessions []models.WorkoutSession, lookup ExerciseLookup) *Stats {
	s := &Stats{
		MuscleSets:    make(map[string]int),
		MuscleVolume:  make(map[string]float64),
		EquipmentSets: make(map[string]int),
		TrainedDates:  make(map[string]bool),
	}

	seenExercises := make(map[string]bool)
	seenEquipment := make(map[string]bool)
	weekEquipment := make(map[string]map[string]bool)
	dayMinutes := make(map[string]int)

	// Running bests per exercise id for PR detection.
	bestWeight := make(map[string]float64)
	bestVolume := make(map[string]float64)
	firstWeight := make(map[string]float64)

	s.TotalWorkouts = len(sessions)

	for _, sess := range sessions {
		start := sess.StartTime.Time
		if s.EarliestSession.IsZero() || start.Before(s.EarliestSession) {
			s.EarliestSession = start
		}
		s.StartHours = append(s.StartHours, start.Hour())
		s.TrainedDates[start.Format("01-02")] = true

		minutes := sess.DurationSec / 60
		if minutes > s.LongestSessionMin {
			s.LongestSessionMin = minutes
		}
		dayKey := start.Format("2006-01-02")
		dayMinutes[dayKey] += minutes
		if dayMinutes[dayKey] > s.BiggestDayMin {
			s.BiggestDayMin = dayMinutes[dayKey]
		}

		if sess.Readiness != nil {
			s.ReadinessChecks++
		}
		if sess.Feedback != nil {
			s.FeedbackCount++
		}

		weekKey := weekStartOf(start).Format("2006-01-02")
		if weekEquipment[weekKey] == nil {
			weekEquipment[weekKey] = make(map[string]bool)
		}

		allBodyweight := true
		resolvedExercises := 0

		for _, ex := range sess.Exercises {
			info, ok := lookup.Exercise(ex.ExerciseID)
			if !ok {
				// Unknown exercise: skip its contribution, keep the rest of
				// the session.
				continue
			}
			resolvedExercises++
			if info.Equipment != "bodyweight" {
				allBodyweight = false
			}

			muscle, hasMuscle := ResolveTarget(info.Target)

			sessionBest := 0.0
			sessionVolume := 0.0

			for _, set := range ex.Sets {
				if !set.Completed {
					continue
				}
				vol := set.WeightKg * float64(set.Reps)

				s.TotalSets++
				s.TotalReps += set.Reps
				s.TotalVolume += vol
				s.EquipmentSets[info.Equipment]++
				if hasMuscle {
					s.MuscleSets[muscle]++
					s.MuscleVolume[muscle] += vol
				}
				if set.RIR != nil {
					s.RIRLoggedSets++
					if *set.RIR <= 1 {
						s.LowRIRSets++
					}
				}

				if set.WeightKg > sessionBest {
					sessionBest = set.WeightKg
				}
				sessionVolume += vol

				seenExercises[ex.ExerciseID] = true
				seenEquipment[info.Equipment] = true
				weekEquipment[weekKey][info.Equipment] = true
			}

			// PR detection against the running bests so far. A session scores
			// at most one PR per exercise, whether weight or volume moved.
			improved := false
			if sessionBest > bestWeight[ex.ExerciseID] {
				if _, seen := firstWeight[ex.ExerciseID]; !seen && sessionBest > 0 {
					firstWeight[ex.ExerciseID] = sessionBest
				}
				bestWeight[ex.ExerciseID] = sessionBest
				improved = true
			}
			if sessionVolume > bestVolume[ex.ExerciseID] {
				bestVolume[ex.ExerciseID] = sessionVolume
				improved = true
			}
			if improved {
				s.PRCount++
			}
		}

		if resolvedExercises > 0 && allBodyweight {
			s.BodyweightSessions++
		}
		if n := len(weekEquipment[weekKey]); n > s.MaxEquipmentWeek {
			s.MaxEquipmentWeek = n
		}
	}

	// Max PR improvement: for every exercise whose best weight moved past its
	// first recorded weight, (best-first)/first as a percentage.
	for id, first := range firstWeight {
		if first <= 0 {
			continue
		}
		if best := bestWeight[id]; best > first {
			pct := (best - first) / first * 100
			if pct > s.MaxPRIncreasePct {
				s.MaxPRIncreasePct = pct
			}
		}
	}

	s.UniqueExercises = len(seenExercises)
	s.UniqueEquipment = len(seenEquipment)
	return s
}
