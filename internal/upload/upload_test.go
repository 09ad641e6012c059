package upload

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

// TestStateDBRoundTrip verifies files are remembered by path, size and hash,
// with the format recorded alongside.
func TestStateDBRoundTrip(t *testing.T) {
	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatalf("opening state db: %v", err)
	}
	defer state.Close()

	uploaded, err := state.IsUploaded("a.json", 10, "hash1")
	if err != nil {
		t.Fatalf("IsUploaded: %v", err)
	}
	if uploaded {
		t.Error("fresh db reports file uploaded")
	}

	if err := state.MarkUploaded("a.json", 10, "hash1", FormatAppJSON); err != nil {
		t.Fatalf("MarkUploaded: %v", err)
	}
	uploaded, err = state.IsUploaded("a.json", 10, "hash1")
	if err != nil {
		t.Fatalf("IsUploaded: %v", err)
	}
	if !uploaded {
		t.Error("marked file not reported uploaded")
	}

	format, err := state.UploadedFormat("a.json")
	if err != nil {
		t.Fatalf("UploadedFormat: %v", err)
	}
	if format != "app_json" {
		t.Errorf("format = %q, want app_json", format)
	}
	format, err = state.UploadedFormat("missing.json")
	if err != nil {
		t.Fatalf("UploadedFormat: %v", err)
	}
	if format != "" {
		t.Errorf("unknown file format = %q, want empty", format)
	}

	// Changed content means changed hash means re-send.
	uploaded, err = state.IsUploaded("a.json", 10, "hash2")
	if err != nil {
		t.Fatalf("IsUploaded: %v", err)
	}
	if uploaded {
		t.Error("file with different hash reported uploaded")
	}
}

// TestDetectFormat verifies extension mapping.
func TestDetectFormat(t *testing.T) {
	if DetectFormat("export/sessions.json") != FormatAppJSON {
		t.Error("json not detected")
	}
	if DetectFormat("export/ALPHA.CSV") != FormatAlphaCSV {
		t.Error("csv not detected case-insensitively")
	}
	if DetectFormat("export/readme.txt") != FormatUnknown {
		t.Error("txt should be unknown")
	}
	if got := FormatAlphaCSV.String(); got != "alpha_csv" {
		t.Errorf("FormatAlphaCSV.String() = %q, want alpha_csv", got)
	}
}

// TestSendFileRoutesByFormat verifies CSV files go to the alpha endpoint with
// the API key attached.
func TestSendFileRoutesByFormat(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-API-Key")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k123")
	if err := c.SendFile([]byte("a;b;c"), FormatAlphaCSV); err != nil {
		t.Fatalf("SendFile: %v", err)
	}
	if gotPath != "/api/v1/ingest/alpha" {
		t.Errorf("path = %q, want /api/v1/ingest/alpha", gotPath)
	}
	if gotKey != "k123" {
		t.Errorf("api key = %q, want k123", gotKey)
	}
}

// TestSendNewFilesSweep verifies the walker sends new files once and skips
// them on the next sweep.
func TestSendNewFilesSweep(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.json"), []byte(`{"id":"x"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0o644); err != nil {
		t.Fatal(err)
	}

	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatalf("opening state db: %v", err)
	}
	defer state.Close()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := NewClient(srv.URL, "k")

	res, err := SendNewFiles(dir, state, client, log)
	if err != nil {
		t.Fatalf("SendNewFiles: %v", err)
	}
	if res.Sent != 1 || res.Skipped != 0 || res.Failed != 0 {
		t.Errorf("first sweep = %+v, want 1 sent", res)
	}
	if requests != 1 {
		t.Errorf("requests = %d, want 1 (txt file ignored)", requests)
	}

	res, err = SendNewFiles(dir, state, client, log)
	if err != nil {
		t.Fatalf("SendNewFiles: %v", err)
	}
	if res.Sent != 0 || res.Skipped != 1 {
		t.Errorf("second sweep = %+v, want 1 skipped", res)
	}
}
