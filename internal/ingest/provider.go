package ingest

// Result holds the outcome of an ingest operation.
type Result struct {
	SessionsReceived int `json:"sessions_received"`
	SessionsInserted int `json:"sessions_inserted"`
	SessionsSkipped  int `json:"sessions_skipped"`

	SetsReceived int `json:"sets_received"`

	// SkippedExercises lists exercise names that did not resolve against the
	// catalog and were dropped (CSV imports only).
	SkippedExercises []string `json:"skipped_exercises,omitempty"`

	Message string `json:"message,omitempty"`
}
