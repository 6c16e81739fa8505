// internal/httpserver/routes_game.go
//
// Page routes for the game:
//   - GET  /       → full page for the caller's session
//   - POST /round  → play a round with form field "choice"
//   - POST /reset  → clear picks, outcome and history
//
// POST responses follow renderGame: #game fragment + HX-Trigger toast for
// htmx, full page with the notification inline otherwise. Errors are JSON
// {"error": code} like the API routes: invalid_choice, session_unavailable.

package httpserver

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/robalobadob/rps/internal/game"
	"github.com/robalobadob/rps/internal/telemetry"
)

// mountPages registers the HTML routes.
func (s *Server) mountPages(r chi.Router) {
	r.Get("/", s.handleIndex)
	r.Post("/round", s.handleRound)
	r.Post("/reset", s.handleReset)
}

// handleIndex renders the current state without consuming notifications.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var snap game.Snapshot
	if err := s.store.Update(r.Context(), sessionID(r), func(g *game.Session) {
		snap = g.Snapshot()
	}); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("load session")
		writeError(w, http.StatusServiceUnavailable, "session_unavailable")
		return
	}
	renderHTML(w, r, http.StatusOK, pageComponent(snap, nil))
}

// handleRound plays one round for the form's choice.
func (s *Server) handleRound(w http.ResponseWriter, r *http.Request) {
	choice, err := game.ParseChoice(r.FormValue("choice"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_choice")
		return
	}
	_, snap, note, err := s.playRound(r.Context(), sessionID(r), choice)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("play round")
		writeError(w, http.StatusServiceUnavailable, "session_unavailable")
		return
	}
	renderGame(w, r, snap, note)
}

// handleReset clears the session.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	snap, note, err := s.reset(r.Context(), sessionID(r))
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("reset")
		writeError(w, http.StatusServiceUnavailable, "session_unavailable")
		return
	}
	renderGame(w, r, snap, note)
}

// playRound runs PlayRound under the session lock and collects what the
// response needs: the result, the new state and the queued notification.
func (s *Server) playRound(ctx context.Context, sid string, choice game.Choice) (game.RoundResult, game.Snapshot, *game.Notification, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "game.PlayRound")
	defer span.End()

	var (
		res  game.RoundResult
		snap game.Snapshot
		note *game.Notification
	)
	err := s.store.Update(ctx, sid, func(g *game.Session) {
		res = g.PlayRound(choice)
		snap = g.Snapshot()
		if n, ok := g.TakeNotification(); ok {
			note = &n
		}
	})
	if err != nil {
		span.RecordError(err)
		return res, snap, nil, err
	}
	span.SetAttributes(
		attribute.String("rps.user", string(res.User)),
		attribute.String("rps.computer", string(res.Computer)),
		attribute.String("rps.outcome", string(res.Outcome)),
	)
	return res, snap, note, nil
}

// reset runs Reset under the session lock.
func (s *Server) reset(ctx context.Context, sid string) (game.Snapshot, *game.Notification, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "game.Reset")
	defer span.End()

	var (
		snap game.Snapshot
		note *game.Notification
	)
	err := s.store.Update(ctx, sid, func(g *game.Session) {
		g.Reset()
		snap = g.Snapshot()
		if n, ok := g.TakeNotification(); ok {
			note = &n
		}
	})
	if err != nil {
		span.RecordError(err)
	}
	return snap, note, err
}
