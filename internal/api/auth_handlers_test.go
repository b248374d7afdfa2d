package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func sessionCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie && c.Value != "" {
			return c
		}
	}
	return nil
}

func TestGoogleSignInRedirects(t *testing.T) {
	server, _, _ := setupTestServer(t, nil)

	rec := doRequest(server, httptest.NewRequest(http.MethodGet, "/auth/google", nil))
	require.Equal(t, http.StatusFound, rec.Code)

	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	state := loc.Query().Get("state")
	assert.NotEmpty(t, state)

	// The state round-trips through a cookie for the callback check.
	var stateFromCookie string
	for _, c := range rec.Result().Cookies() {
		if c.Name == stateCookie {
			stateFromCookie = c.Value
		}
	}
	assert.Equal(t, state, stateFromCookie)
}

// fakeGoogle stands in for Google's token and userinfo endpoints.
func fakeGoogle(t *testing.T, server *Server, profileJSON string) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"test-token","token_type":"Bearer","expires_in":3600}`))
		case "/userinfo":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(profileJSON))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	server.oauth.Endpoint = oauth2.Endpoint{
		AuthURL:  srv.URL + "/auth",
		TokenURL: srv.URL + "/token",
	}
	server.userinfoURL = srv.URL + "/userinfo"
}

func callbackRequest(state string) *http.Request {
	req := httptest.NewRequest(http.MethodGet,
		"/auth/google/callback?state="+state+"&code=test-code", nil)
	req.AddCookie(&http.Cookie{Name: stateCookie, Value: state})
	return req
}

func TestGoogleCallbackSignsIn(t *testing.T) {
	server, s, _ := setupTestServer(t, nil)
	fakeGoogle(t, server, `{"sub":"google-sub-1","name":"Reader","email":"reader@example.com"}`)

	rec := doRequest(server, callbackRequest("state-1"))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
	require.NotNil(t, sessionCookieFrom(t, rec))

	exists, err := s.UserExists(context.Background(), "google-sub-1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGoogleCallbackStateMismatch(t *testing.T) {
	server, _, _ := setupTestServer(t, nil)
	fakeGoogle(t, server, `{"sub":"google-sub-1"}`)

	req := httptest.NewRequest(http.MethodGet,
		"/auth/google/callback?state=forged&code=test-code", nil)
	req.AddCookie(&http.Cookie{Name: stateCookie, Value: "state-1"})
	rec := doRequest(server, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?error=auth_failed", rec.Header().Get("Location"))
	assert.Nil(t, sessionCookieFrom(t, rec))
}

func TestGoogleCallbackRegistrationClosed(t *testing.T) {
	server, s, cfg := setupTestServer(t, nil)
	cfg.Admin.AllowRegistration = false
	fakeGoogle(t, server, `{"sub":"google-sub-1","email":"stranger@example.com"}`)

	rec := doRequest(server, callbackRequest("state-1"))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?error=registration_closed", rec.Header().Get("Location"))
	assert.Nil(t, sessionCookieFrom(t, rec))

	exists, err := s.UserExists(context.Background(), "google-sub-1")
	require.NoError(t, err)
	assert.False(t, exists, "refused sign-in must not create an account")
}

func TestDevSignIn(t *testing.T) {
	server, _, cfg := setupTestServer(t, nil)
	cfg.Admin.DevAccessDate = time.Now().Format("2006-01-02")
	// The dev identity is admitted even while registration is closed.
	cfg.Admin.AllowRegistration = false

	rec := doRequest(server, httptest.NewRequest(http.MethodGet, "/auth/dev", nil))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
	assert.NotNil(t, sessionCookieFrom(t, rec))
}

func TestDevSignInRefused(t *testing.T) {
	server, _, cfg := setupTestServer(t, nil)
	cfg.Admin.DevAccessDate = "2000-01-01"

	rec := doRequest(server, httptest.NewRequest(http.MethodGet, "/auth/dev", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Nil(t, sessionCookieFrom(t, rec))
}

func TestLogout(t *testing.T) {
	server, _, _ := setupTestServer(t, nil)
	_, sess := signIn(t, server, "sub-1", "reader@example.com")

	req := withSessionCookie(httptest.NewRequest(http.MethodGet, "/logout", nil), sess)
	rec := doRequest(server, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	// The session no longer resolves.
	req = withSessionCookie(httptest.NewRequest(http.MethodGet, "/dashboard", nil), sess)
	rec = doRequest(server, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}
