package upload

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies an export file's type by extension.
type Format int

const (
	FormatUnknown Format = iota
	FormatAppJSON
	FormatAlphaCSV
)

// String matches the server's import-log source naming.
func (f Format) String() string {
	switch f {
	case FormatAppJSON:
		return "app_json"
	case FormatAlphaCSV:
		return "alpha_csv"
	default:
		return "unknown"
	}
}

// DetectFormat maps a filename to its export format.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatAppJSON
	case ".csv":
		return FormatAlphaCSV
	}
	return FormatUnknown
}

// WalkResult summarizes one directory sweep.
type WalkResult struct {
	Sent    int
	Skipped int
	Failed  int
}

// SendNewFiles walks an export directory and sends every file the state
// database has not seen with its current size and hash. Files that fail to
// send are left unmarked, so the next sweep retries them.
func SendNewFiles(dir string, state *StateDB, client *Client, log *slog.Logger) (WalkResult, error) {
	var res WalkResult

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		format := DetectFormat(path)
		if format == FormatUnknown {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("stat %s: %w", rel, err)
		}
		hash, err := HashFile(path)
		if err != nil {
			return fmt.Errorf("hashing %s: %w", rel, err)
		}

		uploaded, err := state.IsUploaded(rel, info.Size(), hash)
		if err != nil {
			return fmt.Errorf("checking state for %s: %w", rel, err)
		}
		if uploaded {
			res.Skipped++
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", rel, err)
		}
		if err := client.SendFile(data, format); err != nil {
			log.Error("sending file", "file", rel, "error", err)
			res.Failed++
			return nil
		}
		if err := state.MarkUploaded(rel, info.Size(), hash, format); err != nil {
			return fmt.Errorf("marking %s uploaded: %w", rel, err)
		}
		log.Info("sent", "file", rel, "format", format, "bytes", info.Size())
		res.Sent++
		return nil
	})
	return res, err
}
