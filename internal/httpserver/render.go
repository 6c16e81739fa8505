// internal/httpserver/render.go
//
// Response helpers shared by the page and API routes.
//   - htmx detection and the HX-Trigger toast header.
//   - Component rendering with a buffered body so a failed render
//     becomes a clean 500 instead of a half-written page.
//   - JSON bodies and {"error": code} errors.

package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/rps/internal/game"
)

// toastEvent is the client-side event name app.js listens for.
const toastEvent = "toast"

// isHTMX reports whether the request was initiated by htmx.
func isHTMX(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("HX-Request"), "true")
}

// setToastTrigger asks htmx to dispatch a toast event carrying n.
func setToastTrigger(w http.ResponseWriter, n game.Notification) error {
	b, err := json.Marshal(map[string]game.Notification{toastEvent: n})
	if err != nil {
		return err
	}
	w.Header().Set("HX-Trigger", string(b))
	return nil
}

// renderHTML renders c into a buffer, then writes it with the given status.
func renderHTML(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("render")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderGame answers a page action: htmx gets the #game fragment plus an
// HX-Trigger toast; plain form posts get the full page with the toast inline.
func renderGame(w http.ResponseWriter, r *http.Request, snap game.Snapshot, note *game.Notification) {
	if isHTMX(r) {
		if note != nil {
			if err := setToastTrigger(w, *note); err != nil {
				hlog.FromRequest(r).Warn().Err(err).Msg("toast trigger")
			}
		}
		renderHTML(w, r, http.StatusOK, gameComponent(snap))
		return
	}
	renderHTML(w, r, http.StatusOK, pageComponent(snap, note))
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes {"error": code} with status.
func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
