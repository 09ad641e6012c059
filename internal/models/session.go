package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// AppTime handles the mobile app's session export timestamps. The app emits
// RFC 3339 strings, but older exports carry epoch milliseconds as a bare
// number, so both forms are accepted.
type AppTime struct {
	time.Time
}

func (t *AppTime) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] != '"' {
		ms, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			return fmt.Errorf("cannot parse app time %s: %w", data, err)
		}
		t.Time = time.UnixMilli(ms)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("cannot parse app time %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

func (t AppTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(time.RFC3339))
}

// WorkoutSession is one logged training session. A session without an end
// timestamp is still in progress and is excluded from all analytics.
type WorkoutSession struct {
	ID          string              `json:"id"`
	StartTime   AppTime             `json:"startTime"`
	EndTime     *AppTime            `json:"endTime,omitempty"`
	DurationSec int                 `json:"durationSec"`
	Exercises   []CompletedExercise `json:"exercises"`
	Readiness   *ReadinessCheck     `json:"readiness,omitempty"`
	Feedback    *SessionFeedback    `json:"feedback,omitempty"`
}

// Ended reports whether the session has an end timestamp and therefore
// participates in stat computation.
func (s *WorkoutSession) Ended() bool {
	return s.EndTime != nil && !s.EndTime.IsZero()
}

// CompletedExercise is one exercise performed within a session, referencing
// the exercise catalog by id.
type CompletedExercise struct {
	ExerciseID string         `json:"exerciseId"`
	Sets       []CompletedSet `json:"sets"`
}

// CompletedSet is a single set. WeightKg of zero means bodyweight. A set only
// counts toward volume, streaks and PRs when Completed is true. RIR is the
// self-reported reps-in-reserve (0-5), nil when not recorded.
type CompletedSet struct {
	Reps      int     `json:"reps"`
	WeightKg  float64 `json:"weightKg,omitempty"`
	Completed bool    `json:"completed"`
	RIR       *int    `json:"rir,omitempty"`
}

// ReadinessCheck is the optional pre-session questionnaire (1-5 scales).
type ReadinessCheck struct {
	Sleep      int `json:"sleep"`
	Soreness   int `json:"soreness"`
	Motivation int `json:"motivation"`
}

// SessionFeedback is the optional post-session feedback payload.
type SessionFeedback struct {
	Difficulty int    `json:"difficulty"`
	Notes      string `json:"notes,omitempty"`
}
