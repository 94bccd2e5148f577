// Package httpapi is the hosting interaction loop of the portal. Each
// request carries the previous session state in a signed cookie; a handler
// applies exactly one state-machine transition and re-issues the cookie.
// Rendering stays with the caller, which re-derives the view from /api/view.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/getcareer/portal/internal/logging"
	"github.com/getcareer/portal/internal/server/auth"
	"github.com/getcareer/portal/internal/server/cvstore"
	"github.com/getcareer/portal/internal/server/jobs"
	"github.com/getcareer/portal/internal/server/session"
	"github.com/getcareer/portal/internal/server/users"
)

const sessionCookieName = "portal_session"

type Server struct {
	address  string
	logger   logging.Logger
	flow     *session.AuthFlow
	users    *users.Service
	jobs     *jobs.Source
	cvs      cvstore.Store
	secret   []byte
	tokenTTL time.Duration
}

func NewServer(address string, l logging.Logger, us *users.Service, js *jobs.Source, cvs cvstore.Store, secretKey string, tokenTTL time.Duration) *Server {
	return &Server{
		address:  address,
		logger:   l.With("module", "http_server"),
		flow:     session.NewAuthFlow(us),
		users:    us,
		jobs:     js,
		cvs:      cvs,
		secret:   []byte(secretKey),
		tokenTTL: tokenTTL,
	}
}

// Handler builds the chi router. Exposed separately so tests can drive the
// API through httptest without binding a port.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/login", s.login)
		api.Post("/auth/register", s.register)
		api.Post("/auth/toggle", s.toggleMode)
		api.Post("/nav", s.selectPage)
		api.Post("/logout", s.logout)
		api.Get("/view", s.currentView)
		api.Get("/jobs", s.searchJobs)
		api.Post("/cv", s.uploadCV)
		api.Get("/admin/users", s.adminUsers)
	})

	return r
}

// Run serves the API until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.address, Handler: s.Handler()}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// sessionState recovers the previous state from the request cookie. A
// missing, expired, or tampered cookie simply starts a fresh session.
func (s *Server) sessionState(r *http.Request) session.State {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return session.NewState()
	}

	st, err := auth.GetSessionFromToken(cookie.Value, s.secret)
	if err != nil {
		return session.NewState()
	}

	return st
}

// writeSession signs the new state into the response cookie. Failing to
// sign is an internal error; the caller has already mutated nothing else.
func (s *Server) writeSession(w http.ResponseWriter, r *http.Request, st session.State) bool {
	token, err := auth.GenerateSessionToken(st, s.secret, s.tokenTTL)
	if err != nil {
		s.logger.Error(r.Context(), "signing session token", "error", err.Error())
		respondWithError(w, http.StatusInternalServerError, "internal error")
		return false
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return true
}
