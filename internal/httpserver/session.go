// internal/httpserver/session.go
//
// Browser session identity.
// Each browser gets a random session ID (uuid) carried in an HttpOnly cookie
// as an HS256 JWT, so clients cannot pick or forge another player's ID.
// The cookie has no expiry: it lives as long as the browser session.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"
)

// ctxSessionKey is the context key type for the session ID.
type ctxSessionKey struct{}

// sessionID returns the session ID placed in the request context by withSession.
func sessionID(r *http.Request) string {
	id, _ := r.Context().Value(ctxSessionKey{}).(string)
	return id
}

// signSession creates the cookie token for id.
func (s *Server) signSession(id string) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": id,
		"iat": time.Now().Unix(),
	})
	return t.SignedString(s.opts.Secret)
}

// parseSession verifies a cookie token and returns its session ID.
func (s *Server) parseSession(token string) (string, error) {
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.opts.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !t.Valid {
		return "", errors.New("invalid token")
	}
	sid, _ := claims["sid"].(string)
	if _, err := uuid.Parse(sid); err != nil {
		return "", errors.New("invalid sid claim")
	}
	return sid, nil
}

// setSessionCookie writes the session cookie with the configured attributes.
func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the session cookie in the browser.
func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// withSession resolves the caller's session ID from the cookie, issuing a
// fresh ID and cookie when the cookie is missing or does not verify.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sid string
		if c, err := r.Cookie(s.opts.CookieName); err == nil && c.Value != "" {
			if id, err := s.parseSession(c.Value); err == nil {
				sid = id
			} else {
				hlog.FromRequest(r).Debug().Err(err).Msg("discarding session cookie")
			}
		}
		if sid == "" {
			sid = uuid.NewString()
			tok, err := s.signSession(sid)
			if err != nil {
				hlog.FromRequest(r).Error().Err(err).Msg("sign session")
				writeError(w, http.StatusInternalServerError, "session_failed")
				return
			}
			s.setSessionCookie(w, tok)
		}
		ctx := context.WithValue(r.Context(), ctxSessionKey{}, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
