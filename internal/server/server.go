package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/liftmarks/internal/badges"
	"github.com/meltforce/liftmarks/internal/catalog"
	"github.com/meltforce/liftmarks/internal/ingest/alpha"
	"github.com/meltforce/liftmarks/internal/ingest/appjson"
	"github.com/meltforce/liftmarks/internal/storage"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db      *storage.DB
	engine  *badges.Engine
	catalog *catalog.Catalog
	appjson *appjson.Provider
	alpha   *alpha.Provider
	log     *slog.Logger
	apiKey  string
	router  chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, engine *badges.Engine, cat *catalog.Catalog, appjsonProvider *appjson.Provider, alphaProvider *alpha.Provider, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:      db,
		engine:  engine,
		catalog: cat,
		appjson: appjsonProvider,
		alpha:   alphaProvider,
		log:     log,
		apiKey:  apiKey,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(Identity)

	// Ingest endpoints (API key required)
	s.router.Route("/api/v1/ingest", func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/", s.handleAppIngest)
		r.Post("/alpha", s.handleAlphaIngest)
	})

	// App and dashboard endpoints (no auth beyond the listener's own access
	// control when serving over tsnet)
	s.router.Post("/api/v1/badges/check", s.handleBadgeCheck)
	s.router.Get("/api/v1/badges", s.handleBadgeProgress)
	s.router.Get("/api/v1/badges/unlocked", s.handleUnlockedBadges)
	s.router.Get("/api/v1/stats", s.handleStats)
	s.router.Get("/api/v1/sessions", s.handleQuerySessions)
	s.router.Get("/api/v1/exercises", s.handleExercises)
	s.router.Get("/api/v1/imports", s.handleImportLogs)
}
