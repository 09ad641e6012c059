package badges

import (
	"time"

	"github.com/meltforce/liftmarks/internal/models"
)

// Calendar-windowed statistics. Everything here is anchored to an explicit
// "now" and works on calendar-local dates, not rolling 24h windows. Weeks run
// Monday 00:00:00 through Sunday 23:59:59.999.

// weekStartOf returns the Monday midnight that starts t's calendar week.
func weekStartOf(t time.Time) time.Time {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return midnight.AddDate(0, 0, -daysSinceMonday)
}

// weekBounds returns the inclusive bounds of the week at the given offset
// from now's week (0 = current, -1 = prior, ...).
func weekBounds(now time.Time, offset int) (start, end time.Time) {
	start = weekStartOf(now).AddDate(0, 0, offset*7)
	end = start.AddDate(0, 0, 7).Add(-time.Millisecond)
	return start, end
}

// sessionsInWeek filters sessions whose start falls inside the week at the
// given offset.
func sessionsInWeek(now time.Time, offset int, sessions []models.WorkoutSession) []models.WorkoutSession {
	start, end := weekBounds(now, offset)
	var out []models.WorkoutSession
	for _, s := range sessions {
		t := s.StartTime.Time
		if !t.Before(start) && !t.After(end) {
			out = append(out, s)
		}
	}
	return out
}

// dayStreak counts consecutive calendar days with at least one ended session,
// ending today or yesterday: a missing "today" does not break an in-progress
// streak as long as yesterday trained. Breaks on the first gap scanning back.
func dayStreak(now time.Time, sessions []models.WorkoutSession) int {
	trained := make(map[string]bool, len(sessions))
	for _, s := range sessions {
		trained[s.StartTime.Format("2006-01-02")] = true
	}

	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if !trained[day.Format("2006-01-02")] {
		day = day.AddDate(0, 0, -1)
		if !trained[day.Format("2006-01-02")] {
			return 0
		}
	}

	streak := 0
	for trained[day.Format("2006-01-02")] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// weekQualifier reports whether one week's sessions satisfy a streak's
// qualification rule.
type weekQualifier func(weekSessions []models.WorkoutSession) bool

// qualifiesWeekGoal: the week-goal streak counts weeks with at least three
// ended sessions.
func qualifiesWeekGoal(weekSessions []models.WorkoutSession) bool {
	return len(weekSessions) >= 3
}

// qualifiesWeekend: the weekend streak counts weeks with at least one session
// on a Saturday or Sunday.
func qualifiesWeekend(weekSessions []models.WorkoutSession) bool {
	for _, s := range weekSessions {
		switch s.StartTime.Weekday() {
		case time.Saturday, time.Sunday:
			return true
		}
	}
	return false
}

// weekStreak counts consecutive qualifying weeks ending at the current or
// prior week, scanning backward by whole weeks. An unfinished current week
// does not break a streak carried by the prior week.
func weekStreak(now time.Time, sessions []models.WorkoutSession, qualifies weekQualifier) int {
	offset := 0
	if !qualifies(sessionsInWeek(now, 0, sessions)) {
		offset = -1
		if !qualifies(sessionsInWeek(now, -1, sessions)) {
			return 0
		}
	}

	streak := 0
	for qualifies(sessionsInWeek(now, offset, sessions)) {
		streak++
		offset--
	}
	return streak
}

// majorMuscles is the fixed list the frequency streak checks: every one of
// these must be trained in at least two distinct sessions per week.
var majorMuscles = []string{MuscleChest, MuscleLats, MuscleQuads, MuscleHamstrings}

// frequencyStreak counts consecutive weeks, scanning backward from the
// current week, in which every major muscle was hit in two or more distinct
// sessions. Stops at the first failing week.
func frequencyStreak(now time.Time, sessions []models.WorkoutSession, lookup ExerciseLookup) int {
	streak := 0
	for offset := 0; ; offset-- {
		week := sessionsInWeek(now, offset, sessions)
		if !allMajorsTwice(week, lookup) {
			return streak
		}
		streak++
	}
}

// allMajorsTwice reports whether every major muscle appears in at least two
// distinct sessions of the given week.
func allMajorsTwice(weekSessions []models.WorkoutSession, lookup ExerciseLookup) bool {
	if len(weekSessions) == 0 {
		return false
	}
	sessionCount := make(map[string]int)
	for _, sess := range weekSessions {
		hit := make(map[string]bool)
		for _, ex := range sess.Exercises {
			info, ok := lookup.Exercise(ex.ExerciseID)
			if !ok {
				continue
			}
			muscle, ok := ResolveTarget(info.Target)
			if !ok || hit[muscle] {
				continue
			}
			if hasCompletedSet(ex.Sets) {
				hit[muscle] = true
				sessionCount[muscle]++
			}
		}
	}
	for _, m := range majorMuscles {
		if sessionCount[m] < 2 {
			return false
		}
	}
	return true
}

func hasCompletedSet(sets []models.CompletedSet) bool {
	for _, s := range sets {
		if s.Completed {
			return true
		}
	}
	return false
}

// weeklyMuscleSets builds the rolling per-week per-muscle completed-set
// history for the given lookback, newest week first, each count classified
// into its landmark zone.
func weeklyMuscleSets(now time.Time, sessions []models.WorkoutSession, lookup ExerciseLookup, weeks int) []WeekVolume {
	out := make([]WeekVolume, 0, weeks)
	for offset := 0; offset > -weeks; offset-- {
		start, _ := weekBounds(now, offset)
		wv := WeekVolume{
			WeekStart: start,
			Sets:      make(map[string]int),
			Zones:     make(map[string]Zone),
		}
		for _, sess := range sessionsInWeek(now, offset, sessions) {
			for _, ex := range sess.Exercises {
				info, ok := lookup.Exercise(ex.ExerciseID)
				if !ok {
					continue
				}
				muscle, ok := ResolveTarget(info.Target)
				if !ok {
					continue
				}
				for _, set := range ex.Sets {
					if set.Completed {
						wv.Sets[muscle]++
					}
				}
			}
		}
		for muscle, sets := range wv.Sets {
			if lm, ok := LookupLandmark(muscle); ok {
				wv.Zones[muscle] = ClassifyZone(sets, lm)
			}
		}
		out = append(out, wv)
	}
	return out
}

// deloadWeeks scans the weekly history (newest first) and counts weeks whose
// total sets are above zero yet under 60% of the mean of the two preceding
// weeks' totals.
func deloadWeeks(weekly []WeekVolume) int {
	totals := make([]int, len(weekly))
	for i, wv := range weekly {
		for _, n := range wv.Sets {
			totals[i] += n
		}
	}

	count := 0
	// weekly[i+1] and weekly[i+2] are the two weeks preceding weekly[i].
	for i := 0; i+2 < len(totals); i++ {
		avg := float64(totals[i+1]+totals[i+2]) / 2
		if totals[i] > 0 && float64(totals[i]) < 0.6*avg {
			count++
		}
	}
	return count
}

// Push/pull/legs bucketing for the balanced-training window.
var balanceBuckets = map[string]string{
	MuscleChest:      "push",
	MuscleFrontDelts: "push",
	MuscleSideDelts:  "push",
	MuscleTriceps:    "push",
	MuscleLats:       "pull",
	MuscleTraps:      "pull",
	MuscleLowerBack:  "pull",
	MuscleRearDelts:  "pull",
	MuscleBiceps:     "pull",
	MuscleForearms:   "pull",
	MuscleQuads:      "legs",
	MuscleHamstrings: "legs",
	MuscleGlutes:     "legs",
	MuscleCalves:     "legs",
}

const (
	balanceWindowDays = 90
	balanceMinSets    = 30
	balanceMinShare   = 0.22
	balanceMaxShare   = 0.45
)

// balancedDays examines the trailing 90-day window. If enough sets were
// logged and the push, pull and leg shares each sit within 22%-45% of the
// total, it returns the span in days between the window's oldest and newest
// session; otherwise 0.
func balancedDays(now time.Time, sessions []models.WorkoutSession, lookup ExerciseLookup) int {
	cutoff := now.AddDate(0, 0, -balanceWindowDays)

	buckets := make(map[string]int)
	total := 0
	var oldest, newest time.Time

	for _, sess := range sessions {
		t := sess.StartTime.Time
		if t.Before(cutoff) || t.After(now) {
			continue
		}
		if oldest.IsZero() || t.Before(oldest) {
			oldest = t
		}
		if t.After(newest) {
			newest = t
		}
		for _, ex := range sess.Exercises {
			info, ok := lookup.Exercise(ex.ExerciseID)
			if !ok {
				continue
			}
			muscle, ok := ResolveTarget(info.Target)
			if !ok {
				continue
			}
			bucket, ok := balanceBuckets[muscle]
			if !ok {
				continue
			}
			for _, set := range ex.Sets {
				if set.Completed {
					buckets[bucket]++
					total++
				}
			}
		}
	}

	if total <= balanceMinSets {
		return 0
	}
	for _, b := range []string{"push", "pull", "legs"} {
		share := float64(buckets[b]) / float64(total)
		if share < balanceMinShare || share > balanceMaxShare {
			return 0
		}
	}
	return int(newest.Sub(oldest).Hours() / 24)
}
