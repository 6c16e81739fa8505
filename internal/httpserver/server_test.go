package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/rps/internal/game"
	"github.com/robalobadob/rps/internal/labels"
	"github.com/robalobadob/rps/internal/store"
)

const testCookie = "rps_session"

// newTestServer builds a server whose computer always plays the given hands in order.
func newTestServer(t *testing.T, computer ...game.Choice) *Server {
	t.Helper()
	if len(computer) == 0 {
		computer = []game.Choice{game.Paper}
	}
	st := store.NewMemoryStore(func() *game.Session {
		return game.NewSession(game.NewSequence(computer...), labels.Messages{})
	})
	return New(st, Options{CookieName: testCookie, Secret: []byte("test-secret")})
}

// client carries the session cookie between requests like a browser would.
type client struct {
	t      *testing.T
	srv    *Server
	cookie *http.Cookie
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	c.t.Helper()
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	w := httptest.NewRecorder()
	c.srv.Router().ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.Name == testCookie {
			c.cookie = ck
		}
	}
	return w
}

func (c *client) postForm(path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return c.do(req)
}

func (c *client) postJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *client) state() stateRes {
	c.t.Helper()
	w := c.do(httptest.NewRequest(http.MethodGet, "/api/state", nil))
	require.Equal(c.t, http.StatusOK, w.Code)
	var out stateRes
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	c := &client{t: t, srv: newTestServer(t)}
	w := c.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestIndexEmptyState(t *testing.T) {
	c := &client{t: t, srv: newTestServer(t)}
	w := c.do(httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	body := w.Body.String()
	assert.Contains(t, body, `<section id="game"`)
	assert.Contains(t, body, labels.NoHistory)
	assert.Equal(t, 2, strings.Count(body, labels.NotPlayed), "both picks show the placeholder")
	require.NotNil(t, c.cookie, "session cookie issued")
	assert.True(t, c.cookie.HttpOnly)
}

func TestRoundHTMXReturnsFragmentAndToast(t *testing.T) {
	c := &client{t: t, srv: newTestServer(t, game.Paper)}

	w := c.postForm("/round", url.Values{"choice": {"scissors"}}, true)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, `<section id="game"`), "fragment only")
	assert.NotContains(t, body, "<html")
	assert.Contains(t, body, `data-outcome="win"`)
	assert.Contains(t, body, "You win!")

	var trig map[string]game.Notification
	require.NoError(t, json.Unmarshal([]byte(w.Header().Get("HX-Trigger")), &trig))
	assert.Equal(t, game.Notification{Level: game.LevelInfo, Message: "You win!"}, trig["toast"])

	st := c.state()
	require.Len(t, st.History, 1)
	assert.Equal(t, game.HistoryEntry{User: game.Scissors, Computer: game.Paper, Outcome: game.OutcomeWin}, st.History[0])
}

func TestRoundPlainFormRendersFullPageWithToast(t *testing.T) {
	c := &client{t: t, srv: newTestServer(t, game.Rock)}

	w := c.postForm("/round", url.Values{"choice": {"rock"}}, false)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<!DOCTYPE html>")
	assert.Contains(t, body, `<div class="toast" data-level="info">Tie</div>`)
	assert.Empty(t, w.Header().Get("HX-Trigger"))
}

func TestRoundInvalidChoice(t *testing.T) {
	c := &client{t: t, srv: newTestServer(t)}

	for _, htmx := range []bool{true, false} {
		w := c.postForm("/round", url.Values{"choice": {"lizard"}}, htmx)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
		assert.JSONEq(t, `{"error":"invalid_choice"}`, w.Body.String())
		assert.Empty(t, w.Header().Get("HX-Trigger"))
	}
	assert.Empty(t, c.state().History)
}

func TestPageRoutesReportUnavailableSession(t *testing.T) {
	c := &client{t: t, srv: newTestServer(t)}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, path := range []string{"/", "/round", "/reset"} {
		method := http.MethodPost
		if path == "/" {
			method = http.MethodGet
		}
		req := httptest.NewRequest(method, path, strings.NewReader("choice=rock")).WithContext(ctx)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := c.do(req)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, path)
		assert.JSONEq(t, `{"error":"session_unavailable"}`, w.Body.String(), path)
	}
}

func TestResetHTMX(t *testing.T) {
	c := &client{t: t, srv: newTestServer(t)}
	c.postForm("/round", url.Values{"choice": {"rock"}}, true)

	w := c.postForm("/reset", nil, true)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), labels.NoHistory)
	assert.Contains(t, w.Header().Get("HX-Trigger"), labels.ResetDone)
	assert.Contains(t, w.Header().Get("HX-Trigger"), `"level":"success"`)

	st := c.state()
	assert.Empty(t, st.History)
	assert.Empty(t, st.User)
	assert.Empty(t, st.Computer)
	assert.Equal(t, game.OutcomeNone, st.Outcome)
	assert.Empty(t, st.OutcomeText)
}

func TestAPIRoundAndHistoryBound(t *testing.T) {
	c := &client{t: t, srv: newTestServer(t, game.Scissors, game.Rock, game.Paper)}

	var results []roundRes
	for i := 0; i < 11; i++ {
		w := c.postJSON("/api/round", `{"choice":"rock"}`)
		require.Equal(t, http.StatusOK, w.Code)
		var res roundRes
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		require.NotNil(t, res.Notification)
		assert.Equal(t, res.OutcomeText, res.Notification.Message)
		results = append(results, res)
	}
	assert.Equal(t, game.OutcomeWin, results[0].Outcome)
	assert.Equal(t, "You win!", results[0].OutcomeText)

	st := c.state()
	require.Len(t, st.History, game.HistoryLimit)
	for i, h := range st.History {
		assert.Equal(t, results[10-i].RoundResult, h, "history[%d]", i)
	}
	assert.Equal(t, results[10].Outcome, st.Outcome)
}

func TestAPIRoundErrors(t *testing.T) {
	c := &client{t: t, srv: newTestServer(t)}

	w := c.postJSON("/api/round", `{`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"bad_json"}`, w.Body.String())

	w = c.postJSON("/api/round", `{"choice":"spock"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid_choice"}`, w.Body.String())
}

func TestAPIResetIdempotent(t *testing.T) {
	c := &client{t: t, srv: newTestServer(t)}
	for i := 0; i < 2; i++ {
		w := c.postJSON("/api/reset", ``)
		require.Equal(t, http.StatusOK, w.Code)
		var res resetRes
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.True(t, res.OK)
		require.NotNil(t, res.Notification)
		assert.Equal(t, labels.ResetDone, res.Notification.Message)
	}
	assert.Empty(t, c.state().History)
}

func TestSessionsAreIsolated(t *testing.T) {
	srv := newTestServer(t)
	alice := &client{t: t, srv: srv}
	bob := &client{t: t, srv: srv}

	alice.postJSON("/api/round", `{"choice":"rock"}`)
	alice.postJSON("/api/round", `{"choice":"paper"}`)

	assert.Len(t, alice.state().History, 2)
	assert.Empty(t, bob.state().History)
}

func TestTamperedCookieGetsFreshSession(t *testing.T) {
	srv := newTestServer(t)
	c := &client{t: t, srv: srv}
	c.postJSON("/api/round", `{"choice":"rock"}`)
	require.Len(t, c.state().History, 1)
	original := c.cookie.Value

	c.cookie = &http.Cookie{Name: testCookie, Value: original + "x"}
	st := c.state()
	assert.Empty(t, st.History)
	assert.NotEqual(t, original, c.cookie.Value, "new cookie issued")
}

func TestCookieFromOtherSecretRejected(t *testing.T) {
	other := New(store.NewMemoryStore(func() *game.Session { return game.NewSession(nil, nil) }),
		Options{CookieName: testCookie, Secret: []byte("other")})
	tok, err := other.signSession("8a0f3b1e-7f0c-4a8e-9a55-2e7b9f5d1c11")
	require.NoError(t, err)

	srv := newTestServer(t)
	_, err = srv.parseSession(tok)
	assert.Error(t, err)
}

func TestStaticAssets(t *testing.T) {
	c := &client{t: t, srv: newTestServer(t)}
	w := c.do(httptest.NewRequest(http.MethodGet, "/static/app.js", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "toast")
}

func TestNotFound(t *testing.T) {
	c := &client{t: t, srv: newTestServer(t)}
	w := c.do(httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"not_found"}`, w.Body.String())
}

func TestEndSessionDropsStateAndCookie(t *testing.T) {
	srv := newTestServer(t, game.Rock)
	c := &client{t: t, srv: srv}
	c.postJSON("/api/round", `{"choice":"paper"}`)
	require.Equal(t, 1, srv.store.Len())
	oldCookie := c.cookie.Value

	req := httptest.NewRequest(http.MethodDelete, "/api/session", nil)
	w := c.do(req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	assert.Equal(t, 0, srv.store.Len())
	require.NotNil(t, c.cookie)
	assert.Negative(t, c.cookie.MaxAge, "cookie expired")
	assert.Empty(t, c.cookie.Value)

	assert.Empty(t, c.state().History)
	assert.NotEqual(t, oldCookie, c.cookie.Value, "fresh session issued")
}

func TestEndSessionWithNothingStored(t *testing.T) {
	srv := newTestServer(t)
	c := &client{t: t, srv: srv}

	w := c.do(httptest.NewRequest(http.MethodDelete, "/api/session", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	assert.Equal(t, 0, srv.store.Len())
}

func TestEndSessionUnavailable(t *testing.T) {
	c := &client{t: t, srv: newTestServer(t)}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := c.do(httptest.NewRequest(http.MethodDelete, "/api/session", nil).WithContext(ctx))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"error":"session_unavailable"}`, w.Body.String())
}
