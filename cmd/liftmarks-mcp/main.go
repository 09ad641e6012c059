package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/meltforce/liftmarks/internal/badges"
	"github.com/meltforce/liftmarks/internal/catalog"
	"github.com/meltforce/liftmarks/internal/config"
	"github.com/meltforce/liftmarks/internal/mcp"
	"github.com/meltforce/liftmarks/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Serves MCP over stdio. Two modes:
//
//	-server <URL>     remote: tools call the Liftmarks REST API
//	-config <path>    local: tools query the database directly
func main() {
	serverURL := flag.String("server", "", "Liftmarks server URL (remote mode, e.g. https://liftmarks.tail1234.ts.net)")
	configPath := flag.String("config", "", "path to config file (local mode)")
	userID := flag.Int("user", 1, "user ID to scope queries to")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("liftmarks-mcp", Version)
		return
	}

	// MCP uses stdout for the protocol, so logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds mcp.DataSource

	switch {
	case *serverURL != "":
		ds = mcp.NewHTTPClient(*serverURL)
		log.Info("remote mode", "server", *serverURL)

	case *configPath != "":
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}

		db, err := storage.New(context.Background(), cfg.Database.DSN())
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		cat, err := catalog.Load()
		if err != nil {
			log.Error("failed to load catalogs", "error", err)
			os.Exit(1)
		}

		ds = mcp.NewLocal(db, badges.New(cat.Badges(), cat))
		log.Info("local mode", "database", cfg.Database.Name)

	default:
		fmt.Fprintf(os.Stderr, "Usage: liftmarks-mcp -server <URL> | -config <path> [-user N]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	s := mcp.New(ds, Version, log)

	err := mcpserver.ServeStdio(s,
		mcpserver.WithStdioContextFunc(func(ctx context.Context) context.Context {
			return mcp.WithUserID(ctx, *userID)
		}),
	)
	if err != nil {
		log.Error("mcp server exited", "error", err)
		os.Exit(1)
	}
}
