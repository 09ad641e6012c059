package alpha

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/liftmarks/internal/models"
)

// NameResolver maps an exercise display name (as Alpha exports print it) to a
// catalog exercise id. Satisfied by the embedded exercise catalog.
type NameResolver interface {
	ExerciseByName(name string) (string, bool)
}

// ConvertResult is the outcome of mapping parsed sessions onto the app model.
type ConvertResult struct {
	Sessions         []models.WorkoutSession
	SetsReceived     int
	SkippedExercises []string
}

// Convert maps parsed Alpha sessions onto the app's session model. Exercise
// names that do not resolve against the catalog are dropped and reported;
// warmup sets carry Completed=false so they never count toward volume or PRs.
// Session ids are derived deterministically from name and date, so importing
// the same export twice stays idempotent at the storage layer.
func Convert(sessions []Session, resolver NameResolver) ConvertResult {
	var res ConvertResult
	skipped := make(map[string]bool)

	for _, s := range sessions {
		durationSec := parseDurationSec(s.Duration)
		end := models.AppTime{Time: s.Date.Add(time.Duration(durationSec) * time.Second)}

		out := models.WorkoutSession{
			ID:          sessionID(s),
			StartTime:   models.AppTime{Time: s.Date},
			EndTime:     &end,
			DurationSec: durationSec,
		}

		for _, ex := range s.Exercises {
			id, ok := resolver.ExerciseByName(ex.Name)
			if !ok {
				if !skipped[ex.Name] {
					skipped[ex.Name] = true
					res.SkippedExercises = append(res.SkippedExercises, ex.Name)
				}
				continue
			}
			converted := models.CompletedExercise{ExerciseID: id}
			for _, set := range ex.Sets {
				res.SetsReceived++
				cs := models.CompletedSet{
					Reps:      set.Reps,
					WeightKg:  set.WeightKg,
					Completed: !set.IsWarmup,
				}
				if !set.IsWarmup {
					rir := int(math.Round(set.RIR))
					cs.RIR = &rir
				}
				converted.Sets = append(converted.Sets, cs)
			}
			out.Exercises = append(out.Exercises, converted)
		}

		res.Sessions = append(res.Sessions, out)
	}
	return res
}

// sessionID derives a stable id from the session's name and start time.
func sessionID(s Session) string {
	seed := fmt.Sprintf("alpha:%s:%s", s.Name, s.Date.Format("2006-01-02T15:04"))
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(seed)).String()
}

// parseDurationSec parses Alpha's duration strings: "1:02 hr" or "47 min".
func parseDurationSec(s string) int {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasSuffix(s, "hr"):
		parts := strings.SplitN(strings.TrimSpace(strings.TrimSuffix(s, "hr")), ":", 2)
		if len(parts) == 2 {
			h, _ := strconv.Atoi(parts[0])
			m, _ := strconv.Atoi(parts[1])
			return (h*60 + m) * 60
		}
	case strings.HasSuffix(s, "min"):
		m, _ := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(s, "min")))
		return m * 60
	}
	return 0
}
