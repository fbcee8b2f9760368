// Package server is the composition root: it opens storage, builds the
// services and handlers, mounts the routes, and runs the HTTP server with
// graceful shutdown.
//
// DEPENDENCY FLOW:
//
//	config.Config
//	  → sqlite.DB (stores)          → services → handlers → chi routes
//	  → auth.CredentialVerifier     ↗
//	  → upload.Manager              → UploadHandler
//
// Each layer receives only what it needs through its constructor, so the
// whole chain can be built in a test against a temp directory.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jonboulle/clockwork"
	"github.com/rs/cors"

	"github.com/mozafut/revista/internal/auth"
	"github.com/mozafut/revista/internal/config"
	"github.com/mozafut/revista/internal/handler"
	"github.com/mozafut/revista/internal/middleware"
	sqliteRepo "github.com/mozafut/revista/internal/repository/sqlite"
	"github.com/mozafut/revista/internal/seed"
	"github.com/mozafut/revista/internal/service"
	"github.com/mozafut/revista/internal/upload"
)

// shutdownTimeout is how long in-flight requests get after a signal.
const shutdownTimeout = 30 * time.Second

// Server owns the database handle and the routed handler.
type Server struct {
	handler http.Handler
	config  config.Config
	logger  *slog.Logger
	db      *sqliteRepo.DB
}

// Option tweaks New for tests.
type Option func(*options)

type options struct {
	clock clockwork.Clock
}

// WithClock sets the clock that stamps created_at.
func WithClock(c clockwork.Clock) Option {
	return func(o *options) { o.clock = c }
}

// New wires every component from cfg. cfg is expected to have passed
// Validate already; config.Load does that.
func New(cfg config.Config, logger *slog.Logger, opts ...Option) (*Server, error) {
	o := options{clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(&o)
	}

	mode, err := service.ParseUpdateMode(cfg.UpdateMode)
	if err != nil {
		return nil, err
	}
	verifier, err := auth.NewVerifier(cfg.CredentialScheme)
	if err != nil {
		return nil, err
	}

	// === STORAGE ===
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}
	db, err := sqliteRepo.New(sqliteRepo.Options{Path: cfg.DBPath, Clock: o.clock})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if cfg.SeedData {
		if err := seedDatabase(context.Background(), db, verifier, logger); err != nil {
			db.Close()
			return nil, err
		}
	}

	uploads, err := upload.New(upload.Config{
		Dir:      cfg.UploadDir,
		BaseURL:  cfg.BaseURL,
		MaxBytes: cfg.MaxUploadBytes,
	}, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	s := &Server{
		config: cfg,
		logger: logger,
		db:     db,
	}
	s.handler = s.routes(deps{
		articles: service.NewArticleService(db.Articles(), logger),
		teams:    service.NewTeamService(db.Teams(), logger),
		results: service.NewResultService(db.Results(), db.Teams(), service.ResultOptions{
			Mode:       mode,
			CheckTeams: cfg.ResultTeamCheck,
		}, logger),
		auth:    service.NewAuthService(db.Users(), verifier, mode, logger),
		uploads: uploads,
	})

	return s, nil
}

// seedDatabase loads the embedded reference data into empty tables.
// Passwords go through the configured verifier first so that seeded
// accounts can log in under either scheme.
func seedDatabase(ctx context.Context, db *sqliteRepo.DB, verifier auth.CredentialVerifier, logger *slog.Logger) error {
	data, err := seed.Default()
	if err != nil {
		return fmt.Errorf("loading seed data: %w", err)
	}
	for i := range data.Users {
		hashed, err := verifier.Hash(data.Users[i].Password)
		if err != nil {
			return fmt.Errorf("hashing seed password for %s: %w", data.Users[i].Email, err)
		}
		data.Users[i].Password = hashed
	}

	report, err := db.Seed(ctx, data)
	if err != nil {
		return err
	}
	logger.Info("seed data applied",
		slog.Int("teams", report.Teams),
		slog.Int("results", report.Results),
		slog.Int("users", report.Users),
	)
	return nil
}

type deps struct {
	articles *service.ArticleService
	teams    *service.TeamService
	results  *service.ResultService
	auth     *service.AuthService
	uploads  *upload.Manager
}

// routes builds the router.
//
// ROUTES:
//
//	GET    /                      banner
//	GET    /articles              POST /articles
//	GET    /articles/{id}         PUT /articles/{id}    DELETE /articles/{id}
//	GET    /teams                 POST /teams
//	GET    /teams/{id}            PUT /teams/{id}       DELETE /teams/{id}
//	GET    /results               POST /results
//	GET    /results/{id}          PUT /results/{id}     DELETE /results/{id}
//	POST   /upload                GET /uploads/{filename}
//	POST   /auth/login            POST /auth/register   PUT /auth/profile
//
// MIDDLEWARE ORDER:
// RequestID first so every later log line carries the id, Recoverer last
// so a panic is still logged by Logger as a 500. CORS wraps the whole
// router so preflight requests never reach a route.
func (s *Server) routes(d deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)

	r.NotFound(handler.HandleNotFound)
	r.MethodNotAllowed(handler.HandleMethodNotAllowed)

	r.Get("/", handler.HandleRoot)

	articles := handler.NewArticleHandler(d.articles, s.logger)
	r.Route("/articles", func(r chi.Router) {
		r.Get("/", articles.HandleList)
		r.Post("/", articles.HandleCreate)
		r.Get("/{id}", articles.HandleGet)
		r.Put("/{id}", articles.HandleUpdate)
		r.Delete("/{id}", articles.HandleDelete)
	})

	teams := handler.NewTeamHandler(d.teams, s.logger)
	r.Route("/teams", func(r chi.Router) {
		r.Get("/", teams.HandleList)
		r.Post("/", teams.HandleCreate)
		r.Get("/{id}", teams.HandleGet)
		r.Put("/{id}", teams.HandleUpdate)
		r.Delete("/{id}", teams.HandleDelete)
	})

	results := handler.NewResultHandler(d.results, s.logger)
	r.Route("/results", func(r chi.Router) {
		r.Get("/", results.HandleList)
		r.Post("/", results.HandleCreate)
		r.Get("/{id}", results.HandleGet)
		r.Put("/{id}", results.HandleUpdate)
		r.Delete("/{id}", results.HandleDelete)
	})

	uploads := handler.NewUploadHandler(d.uploads, s.logger)
	r.Post("/upload", uploads.HandleUpload)
	r.Get(upload.PathPrefix+"{filename}", uploads.HandleServe)

	accounts := handler.NewAuthHandler(d.auth, s.logger)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", accounts.HandleLogin)
		r.Post("/register", accounts.HandleRegister)
		r.Put("/profile", accounts.HandleProfile)
	})

	c := cors.New(cors.Options{
		AllowedOrigins: s.config.CORSAllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(r)
}

// Handler returns the routed handler, for httptest.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Close releases the database.
func (s *Server) Close() error {
	return s.db.Close()
}

// Start serves until SIGINT or SIGTERM, then drains in-flight requests for
// up to shutdownTimeout and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:              s.config.Addr(),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		// uploads of up to MaxUploadBytes need room on slow links
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.String("addr", srv.Addr),
			slog.String("env", s.config.Env),
			slog.String("database", s.config.DBPath),
			slog.String("uploads", s.config.UploadDir),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
