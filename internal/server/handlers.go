package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/meltforce/liftmarks/internal/ingest"
	"github.com/meltforce/liftmarks/internal/storage"
)

func (s *Server) handleAppIngest(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	started := time.Now()
	logID := s.startImport(r, "app_json")

	result, err := s.appjson.Ingest(r.Context(), r.Body, userID)
	s.finishImport(r, logID, "app_json", result, time.Since(started), err)
	if err != nil {
		s.log.Error("app ingest error", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAlphaIngest(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	started := time.Now()
	logID := s.startImport(r, "alpha_csv")

	result, err := s.alpha.Ingest(r.Context(), r.Body, userID)
	s.finishImport(r, logID, "alpha_csv", result, time.Since(started), err)
	if err != nil {
		s.log.Error("alpha ingest error", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleBadgeCheck runs delta detection: evaluate the stored history against
// the catalog, persist anything newly unlocked, and return the ordered id
// list. The app calls this after completing a session and drives its own
// celebration UI from the response.
func (s *Server) handleBadgeCheck(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)

	history, err := s.db.LoadHistory(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	unlocked, err := s.db.GetUnlockedBadges(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	unlockedIDs := make(map[string]bool, len(unlocked))
	for id := range unlocked {
		unlockedIDs[id] = true
	}

	newly := s.engine.NewlyUnlocked(history, unlockedIDs)
	if len(newly) > 0 {
		if _, err := s.db.InsertUnlockedBadges(r.Context(), userID, newly, time.Now()); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		s.log.Info("badges unlocked", "user", userID, "badges", newly)
	}

	writeJSON(w, http.StatusOK, map[string]any{"newly_unlocked": newly})
}

// handleBadgeProgress returns full progress for every catalog badge.
func (s *Server) handleBadgeProgress(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)

	history, err := s.db.LoadHistory(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	unlocked, err := s.db.GetUnlockedBadges(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, s.engine.EvaluateAll(history, unlocked))
}

func (s *Server) handleUnlockedBadges(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	records, err := s.db.ListUnlockedBadges(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// handleStats returns the current stats bundle for dashboard display.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	history, err := s.db.LoadHistory(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.engine.Stats(history))
}

func (s *Server) handleQuerySessions(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	start, end, err := parseTimeRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	sessions, err := s.db.QuerySessions(r.Context(), start, end, userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	total, err := s.db.SessionCount(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total_stored": total,
		"sessions":     sessions,
	})
}

// handleExercises serves the embedded exercise catalog so clients can map
// ids to names and targets without shipping their own copy.
func (s *Server) handleExercises(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Exercises())
}

func (s *Server) handleImportLogs(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}
	logs, err := s.db.QueryImportLogs(r.Context(), userID, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

// startImport opens an audit row in "running" state before the payload is
// parsed, so an ingest that dies mid-flight still leaves a trace. Audit
// failures are logged and swallowed; they never block ingest.
func (s *Server) startImport(r *http.Request, source string) int64 {
	id, err := s.db.InsertImportLog(r.Context(), storage.ImportLog{
		UserID: requestUserID(r),
		Source: source,
		Status: "running",
	})
	if err != nil {
		s.log.Warn("recording import log", "source", source, "error", err)
	}
	return id
}

// finishImport resolves a running audit row to its outcome.
func (s *Server) finishImport(r *http.Request, logID int64, source string, result *ingest.Result, elapsed time.Duration, ingestErr error) {
	if logID == 0 {
		return
	}
	entry := importOutcome(requestUserID(r), source, result, elapsed, ingestErr)
	if err := s.db.UpdateImportLog(r.Context(), logID, entry); err != nil {
		s.log.Warn("updating import log", "source", source, "error", err)
	}
}

// importOutcome builds the final audit row for an ingest call.
func importOutcome(userID int, source string, result *ingest.Result, elapsed time.Duration, ingestErr error) storage.ImportLog {
	ms := int(elapsed.Milliseconds())
	entry := storage.ImportLog{
		UserID:     userID,
		Source:     source,
		Status:     "success",
		DurationMs: &ms,
	}
	if result != nil {
		entry.SessionsReceived = result.SessionsReceived
		entry.SessionsInserted = result.SessionsInserted
		entry.SetsReceived = result.SetsReceived
		entry.SkippedExercises = len(result.SkippedExercises)
	}
	if ingestErr != nil {
		entry.Status = "error"
		msg := ingestErr.Error()
		entry.ErrorMessage = &msg
	}
	return entry
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func parseTimeRange(r *http.Request) (start, end time.Time, err error) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if startStr == "" {
		// Default: last 30 days
		end = time.Now()
		start = end.AddDate(0, 0, -30)
		return
	}

	start, err = time.Parse(time.RFC3339, startStr)
	if err != nil {
		start, err = time.Parse("2006-01-02", startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	if endStr == "" {
		end = time.Now()
	} else {
		end, err = time.Parse(time.RFC3339, endStr)
		if err != nil {
			end, err = time.Parse("2006-01-02", endStr)
			if err != nil {
				return time.Time{}, time.Time{}, err
			}
			// End of day for date-only
			end = end.Add(24 * time.Hour)
		}
	}
	return
}
