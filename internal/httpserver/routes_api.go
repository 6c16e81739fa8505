// internal/httpserver/routes_api.go
//
// JSON routes, mounted under /api:
//   - GET  /api/state  → current picks, outcome and history
//   - POST /api/round  → {"choice":"rock"} plays a round
//   - POST /api/reset  → clears the session
//   - DELETE /api/session → drops the session and its cookie
//
// Errors are {"error": code}: bad_json, invalid_choice, session_unavailable.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/rps/internal/game"
	"github.com/robalobadob/rps/internal/labels"
	"github.com/robalobadob/rps/internal/store"
)

// mountAPI registers the JSON routes.
func (s *Server) mountAPI(r chi.Router) {
	r.Get("/state", s.handleAPIState)
	r.Post("/round", s.handleAPIRound)
	r.Post("/reset", s.handleAPIReset)
	r.Delete("/session", s.handleAPIEndSession)
}

// stateRes is returned by GET /api/state.
type stateRes struct {
	game.Snapshot
	OutcomeText string `json:"outcomeText"`
}

// roundReq/Res payloads for POST /api/round.
type roundReq struct {
	Choice string `json:"choice"`
}
type roundRes struct {
	game.RoundResult
	OutcomeText  string             `json:"outcomeText"`
	Notification *game.Notification `json:"notification,omitempty"`
}

// resetRes is returned by POST /api/reset.
type resetRes struct {
	OK           bool               `json:"ok"`
	Notification *game.Notification `json:"notification,omitempty"`
}

func (s *Server) handleAPIState(w http.ResponseWriter, r *http.Request) {
	var snap game.Snapshot
	if err := s.store.Update(r.Context(), sessionID(r), func(g *game.Session) {
		snap = g.Snapshot()
	}); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("load session")
		writeError(w, http.StatusServiceUnavailable, "session_unavailable")
		return
	}
	writeJSON(w, http.StatusOK, stateRes{Snapshot: snap, OutcomeText: labels.Outcome(snap.Outcome)})
}

func (s *Server) handleAPIRound(w http.ResponseWriter, r *http.Request) {
	var req roundReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	choice, err := game.ParseChoice(req.Choice)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_choice")
		return
	}
	res, _, note, err := s.playRound(r.Context(), sessionID(r), choice)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("play round")
		writeError(w, http.StatusServiceUnavailable, "session_unavailable")
		return
	}
	writeJSON(w, http.StatusOK, roundRes{
		RoundResult:  res,
		OutcomeText:  labels.Outcome(res.Outcome),
		Notification: note,
	})
}

func (s *Server) handleAPIReset(w http.ResponseWriter, r *http.Request) {
	_, note, err := s.reset(r.Context(), sessionID(r))
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("reset")
		writeError(w, http.StatusServiceUnavailable, "session_unavailable")
		return
	}
	writeJSON(w, http.StatusOK, resetRes{OK: true, Notification: note})
}

// handleAPIEndSession forgets the server-side session and expires the cookie.
// Ending a session that never played is not an error.
func (s *Server) handleAPIEndSession(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(r)
	if err := s.store.Delete(r.Context(), sid); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			hlog.FromRequest(r).Error().Err(err).Msg("end session")
			writeError(w, http.StatusServiceUnavailable, "session_unavailable")
			return
		}
		hlog.FromRequest(r).Debug().Str("sid", sid).Msg("end session: nothing stored")
	}
	s.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
