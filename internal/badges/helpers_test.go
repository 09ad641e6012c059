package badges

import (
	"time"

	"github.com/meltforce/liftmarks/internal/models"
)

// stubLookup is a minimal exercise catalog for engine tests.
type stubLookup map[string]ExerciseInfo

func (l stubLookup) Exercise(id string) (ExerciseInfo, bool) {
	info, ok := l[id]
	return info, ok
}

var testLookup = stubLookup{
	"bench":    {Target: "Chest", Equipment: "barbell"},
	"row":      {Target: "Lats", Equipment: "barbell"},
	"squat":    {Target: "Quads", Equipment: "barbell"},
	"rdl":      {Target: "Hamstrings", Equipment: "barbell"},
	"curl":     {Target: "Biceps", Equipment: "dumbbell"},
	"pushup":   {Target: "Chest", Equipment: "bodyweight"},
	"pullup":   {Target: "Lats", Equipment: "bodyweight"},
	"legpress": {Target: "Quads", Equipment: "machine"},
}

// endedSession builds an ended one-hour session starting at start.
func endedSession(start time.Time, exercises ...models.CompletedExercise) models.WorkoutSession {
	end := models.AppTime{Time: start.Add(time.Hour)}
	return models.WorkoutSession{
		ID:          start.Format("20060102T1504"),
		StartTime:   models.AppTime{Time: start},
		EndTime:     &end,
		DurationSec: 3600,
		Exercises:   exercises,
	}
}

// exercise builds a CompletedExercise with n completed sets of weight x reps.
func exercise(id string, weightKg float64, reps, n int) models.CompletedExercise {
	sets := make([]models.CompletedSet, n)
	for i := range sets {
		sets[i] = models.CompletedSet{Reps: reps, WeightKg: weightKg, Completed: true}
	}
	return models.CompletedExercise{ExerciseID: id, Sets: sets}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}
