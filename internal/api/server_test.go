package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookscoutapp/bookscout-server/internal/catalog/googlebooks"
	"github.com/bookscoutapp/bookscout-server/internal/config"
	"github.com/bookscoutapp/bookscout-server/internal/domain"
	"github.com/bookscoutapp/bookscout-server/internal/service"
	"github.com/bookscoutapp/bookscout-server/internal/store"
	"github.com/bookscoutapp/bookscout-server/internal/store/sqlite"
)

// setupTestServer creates a test server with all dependencies. The
// catalog client points at the given handler; pass nil when the test
// never reaches the catalog.
func setupTestServer(t *testing.T, catalogHandler http.HandlerFunc) (*Server, store.Store, *config.Config) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := sqlite.Open(dbPath, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	catalogURL := ""
	if catalogHandler != nil {
		catalogSrv := httptest.NewServer(catalogHandler)
		t.Cleanup(catalogSrv.Close)
		catalogURL = catalogSrv.URL
	}
	catalog := googlebooks.NewClient("", catalogURL, logger)

	cfg := &config.Config{
		App: config.AppConfig{Environment: "development"},
		Server: config.ServerConfig{
			Port:    "8080",
			BaseURL: "http://localhost:8080",
		},
		Auth: config.AuthConfig{
			SessionDuration: time.Hour,
		},
		Admin: config.AdminConfig{
			AdminEmail:        "admin@example.com",
			AllowRegistration: true,
			DevUserEmail:      "dev@example.com",
		},
	}

	authService := service.NewAuthService(s, cfg, logger)
	bookService := service.NewBookService(s, catalog, logger)
	tagService := service.NewTagService(s, logger)
	searchService := service.NewSearchService(catalog, logger)
	adminService := service.NewAdminService(s, logger)

	server := NewServer(cfg, authService, bookService, tagService, searchService, adminService, logger)
	return server, s, cfg
}

// signIn creates a user plus session and returns the session ready to
// attach as a cookie.
func signIn(t *testing.T, server *Server, sub, email string) (*domain.User, *domain.Session) {
	t.Helper()
	user, sess, err := server.authService.SignIn(context.Background(), service.GoogleProfile{
		Sub: sub, Name: "Test Reader", Email: email,
	})
	require.NoError(t, err)
	return user, sess
}

// doRequest runs a request through the full middleware stack.
func doRequest(server *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func withSessionCookie(req *http.Request, sess *domain.Session) *http.Request {
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: sess.ID})
	return req
}

func TestHealthCheck(t *testing.T) {
	server, _, _ := setupTestServer(t, nil)

	rec := doRequest(server, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestLandingPage(t *testing.T) {
	server, _, _ := setupTestServer(t, nil)

	rec := doRequest(server, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sign in with Google")
}

func TestLandingPageRegistrationClosedFlag(t *testing.T) {
	server, _, _ := setupTestServer(t, nil)

	rec := doRequest(server, httptest.NewRequest(http.MethodGet, "/?error=registration_closed", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Registration is currently closed")
}

func TestDashboardRequiresUser(t *testing.T) {
	server, _, _ := setupTestServer(t, nil)

	rec := doRequest(server, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestDashboardWithSession(t *testing.T) {
	server, _, _ := setupTestServer(t, nil)
	_, sess := signIn(t, server, "sub-1", "reader@example.com")

	req := withSessionCookie(httptest.NewRequest(http.MethodGet, "/dashboard", nil), sess)
	rec := doRequest(server, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Welcome back, Test Reader!")
}

func TestStaleSessionCookieIsCleared(t *testing.T) {
	server, _, _ := setupTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "sess-gone"})
	rec := doRequest(server, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "stale cookie should be expired")
}

func TestSessionLookupFaultIsNotSignOut(t *testing.T) {
	server, s, _ := setupTestServer(t, nil)
	_, sess := signIn(t, server, "sub-1", "reader@example.com")

	// A store fault mid-request must surface as a failure, not read as
	// a stale cookie.
	require.NoError(t, s.Close())

	req := withSessionCookie(httptest.NewRequest(http.MethodGet, "/dashboard", nil), sess)
	rec := doRequest(server, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie && c.MaxAge < 0 {
			t.Error("session cookie must survive an infrastructure fault")
		}
	}
}

func TestSearchEndpoint(t *testing.T) {
	server, _, _ := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"totalItems":1,"items":[{"id":"v1","volumeInfo":{"title":"Hatchet","authors":["Gary Paulsen"]}}]}`))
	})

	rec := doRequest(server, httptest.NewRequest(http.MethodGet, "/search?q=hatchet", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Hatchet")
	assert.Contains(t, rec.Body.String(), "/books/review/v1")
}

func TestSearchShortQueryRendersNothing(t *testing.T) {
	server, _, _ := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("catalog must not be called for short queries")
	})

	rec := doRequest(server, httptest.NewRequest(http.MethodGet, "/search?q=ab", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestSuggestedTagsAnonymousAndSignedIn(t *testing.T) {
	server, _, _ := setupTestServer(t, nil)

	// Anonymous call serves the stock catalog.
	rec := doRequest(server, httptest.NewRequest(http.MethodGet, "/books/tags", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Adventure")

	// Signed-in call still works and includes the catalog.
	_, sess := signIn(t, server, "sub-1", "reader@example.com")
	req := withSessionCookie(httptest.NewRequest(http.MethodGet, "/books/tags", nil), sess)
	rec = doRequest(server, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Robots")
}
