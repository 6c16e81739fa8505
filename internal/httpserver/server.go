// internal/httpserver/server.go
//
// HTTP server wiring for the rock-paper-scissors game.
// Responsibilities:
//   - Router + middleware (request IDs, panic recovery, timeouts, access log, tracing).
//   - Public endpoints: "/health", "/static/*".
//   - Page endpoints (session cookie): GET /, POST /round, POST /reset.
//   - JSON endpoints (session cookie): mounted under /api.
//
// Notes:
//   - Every game route runs behind withSession, which resolves or issues the
//     signed session cookie.
//   - All mutations of one session go through store.Update, so concurrent
//     requests from the same browser are applied one at a time.

package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/rps/assets"
	"github.com/robalobadob/rps/internal/store"
)

// Options configures a Server.
type Options struct {
	CookieName string        // session cookie name
	Secret     []byte        // HS256 key for the session cookie
	Secure     bool          // set the Secure cookie attribute
	Timeout    time.Duration // per-request handler bound
}

// Server bundles the router and the session store.
type Server struct {
	r     *chi.Mux
	store store.Store
	opts  Options
	http  *http.Server
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, opts Options) *Server {
	if opts.CookieName == "" {
		opts.CookieName = "rps_session"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	s := &Server{r: chi.NewRouter(), store: st, opts: opts}
	s.http = &http.Server{Handler: s.r, ReadHeaderTimeout: 5 * time.Second}

	// --- middleware ---
	s.r.Use(chimw.RequestID)             // add X-Request-ID
	s.r.Use(chimw.RealIP)                // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger)) // request-scoped logger
	s.r.Use(accessLog)                   // one line per request
	s.r.Use(chimw.Recoverer)             // recover from panics
	s.r.Use(tracing)                     // server span (no-op unless tracing is set up)
	s.r.Use(chimw.Timeout(opts.Timeout)) // bound handler time

	// --- diagnostics + assets ---
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Handle("/static/*", http.StripPrefix("/static/", assets.Handler()))

	// --- game ---
	s.r.Group(func(r chi.Router) {
		r.Use(s.withSession)
		s.mountPages(r)
		r.Route("/api", s.mountAPI)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Start serves HTTP on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops a server started with Start.
func (s *Server) Shutdown(ctx context.Context) error { return s.http.Shutdown(ctx) }
