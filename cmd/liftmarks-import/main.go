package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/meltforce/liftmarks/internal/upload"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "Liftmarks server URL (e.g. https://liftmarks.tail1234.ts.net)")
	apiKey := flag.String("api-key", os.Getenv("LIFTMARKS_AUTH_API_KEY"), "ingest API key (defaults to LIFTMARKS_AUTH_API_KEY)")
	exportPath := flag.String("path", "", "directory containing exported workout files")
	stateDir := flag.String("state-dir", "", "state database directory (defaults to ~/.liftmarks-import)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("liftmarks-import", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *exportPath == "" || *serverURL == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftmarks-import -server <URL> -path <export dir> [-api-key KEY] [-state-dir DIR]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if *apiKey == "" {
		fmt.Fprintf(os.Stderr, "Error: -api-key or LIFTMARKS_AUTH_API_KEY is required\n")
		os.Exit(1)
	}

	*serverURL = strings.TrimRight(*serverURL, "/")

	info, err := os.Stat(*exportPath)
	if err != nil || !info.IsDir() {
		log.Error("export directory not found", "path", *exportPath)
		os.Exit(1)
	}

	// Open state database
	dir := *stateDir
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Error("failed to get home directory", "error", err)
			os.Exit(1)
		}
		dir = filepath.Join(homeDir, ".liftmarks-import")
	}

	state, err := upload.OpenStateDB(dir)
	if err != nil {
		log.Error("failed to open state database", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	client := upload.NewClient(*serverURL, *apiKey)

	result, err := upload.SendNewFiles(*exportPath, state, client, log)
	if err != nil {
		log.Error("import sweep failed", "error", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("=== Import Summary ===")
	fmt.Printf("  Files sent:     %d\n", result.Sent)
	fmt.Printf("  Files skipped:  %d (already uploaded)\n", result.Skipped)
	fmt.Printf("  Files failed:   %d\n", result.Failed)
	fmt.Println()

	if result.Failed > 0 {
		os.Exit(1)
	}
	log.Info("import complete")
}
