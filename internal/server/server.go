// Package server exposes quizzes and play sessions over an HTTP JSON API.
package server

import (
	"context"
	"errors"
	"log"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abhisek/quizdeck/internal/auth"
	"github.com/abhisek/quizdeck/internal/config"
	"github.com/abhisek/quizdeck/internal/quizgen"
	"github.com/abhisek/quizdeck/internal/store"
)

// Deps are the collaborators the API is built on.
type Deps struct {
	Config   config.Config
	Auth     *auth.Service
	Quizzes  store.QuizRepo
	Attempts store.AttemptRepo
	Pipeline *quizgen.Pipeline

	// NewRand returns the RNG used to shuffle a new session. Nil uses the
	// process-wide source.
	NewRand func() *rand.Rand
}

// Server is the HTTP API.
type Server struct {
	cfg      config.Config
	auth     *auth.Service
	quizzes  store.QuizRepo
	attempts store.AttemptRepo
	pipeline *quizgen.Pipeline
	sessions *SessionRegistry
	newRand  func() *rand.Rand
	now      func() time.Time
}

// New builds a Server from deps.
func New(deps Deps) *Server {
	return &Server{
		cfg:      deps.Config,
		auth:     deps.Auth,
		quizzes:  deps.Quizzes,
		attempts: deps.Attempts,
		pipeline: deps.Pipeline,
		sessions: NewSessionRegistry(deps.Config.SessionTTL),
		newRand:  deps.NewRand,
		now:      time.Now,
	}
}

// Sessions returns the session registry.
func (s *Server) Sessions() *SessionRegistry {
	return s.sessions
}

// Router builds the chi router with all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	if s.cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(s.cfg.RequestTimeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Group(func(pr chi.Router) {
		pr.Use(auth.Middleware(s.auth))

		pr.Route("/api/quizzes", func(qr chi.Router) {
			qr.Post("/", s.handleCreateQuiz)
			qr.Get("/", s.handleListQuizzes)
			qr.Get("/{quizID}", s.handleGetQuiz)
			qr.Patch("/{quizID}", s.handleRenameQuiz)
			qr.Delete("/{quizID}", s.handleDeleteQuiz)
			qr.Get("/{quizID}/attempts", s.handleListAttempts)
			qr.Post("/{quizID}/sessions", s.handleStartSession)
		})

		pr.Route("/api/sessions/{sessionID}", func(sr chi.Router) {
			sr.Get("/", s.handleGetSession)
			sr.Delete("/", s.handleDeleteSession)
			sr.Post("/toggle", s.handleToggle)
			sr.Post("/submit", s.handleSubmit)
			sr.Post("/next", s.handleNext)
			sr.Post("/jump", s.handleJump)
			sr.Post("/restart", s.handleRestart)
			sr.Get("/summary", s.handleSummary)
			sr.Get("/copy", s.handleCopy)
		})
	})

	return r
}

// Run serves on cfg.HTTPAddr until ctx is cancelled, then shuts down
// gracefully. The session sweeper stops with ctx.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.sessions.Run(ctx, time.Minute)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", s.cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		log.Printf("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
