package api

import (
	"encoding/json/v2"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	domainerrors "github.com/bookscoutapp/bookscout-server/internal/errors"
	"github.com/bookscoutapp/bookscout-server/internal/id"
	"github.com/bookscoutapp/bookscout-server/internal/service"
)

// stateCookie carries the OAuth state token across the redirect.
const stateCookie = "bookscout_oauth_state"

// handleGoogleSignIn starts the Google OAuth flow.
// GET /auth/google
func (s *Server) handleGoogleSignIn(w http.ResponseWriter, r *http.Request) {
	state, err := id.NewOAuthState()
	if err != nil {
		s.logger.Error("Failed to generate OAuth state", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/auth",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   s.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, s.oauth.AuthCodeURL(state), http.StatusFound)
}

// handleGoogleCallback finishes the OAuth flow: it verifies state,
// exchanges the code, fetches the Google identity and runs sign-in.
// A refusal at the registration gate lands back on the landing page
// with an explanatory flag rather than an error page.
// GET /auth/google/callback
func (s *Server) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cookie, err := r.Cookie(stateCookie)
	if err != nil || cookie.Value == "" || r.URL.Query().Get("state") != cookie.Value {
		s.logger.Warn("OAuth state mismatch")
		http.Redirect(w, r, "/?error=auth_failed", http.StatusSeeOther)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		s.logger.Error("OAuth code exchange failed", "error", err)
		http.Redirect(w, r, "/?error=auth_failed", http.StatusSeeOther)
		return
	}

	profile, err := s.fetchGoogleProfile(r, token)
	if err != nil {
		s.logger.Error("Failed to fetch Google profile", "error", err)
		http.Redirect(w, r, "/?error=auth_failed", http.StatusSeeOther)
		return
	}

	_, sess, err := s.authService.SignIn(ctx, *profile)
	if err != nil {
		if domainerrors.Is(err, domainerrors.ErrRegistrationClosed) {
			http.Redirect(w, r, "/?error=registration_closed", http.StatusSeeOther)
			return
		}
		s.logger.Error("Sign-in failed", "error", err)
		http.Redirect(w, r, "/?error=auth_failed", http.StatusSeeOther)
		return
	}

	s.setSessionCookie(w, sess)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// fetchGoogleProfile resolves the access token to an identity.
func (s *Server) fetchGoogleProfile(r *http.Request, token *oauth2.Token) (*service.GoogleProfile, error) {
	client := s.oauth.Client(r.Context(), token)
	resp, err := client.Get(s.userinfoURL)
	if err != nil {
		return nil, fmt.Errorf("userinfo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo failed: status %d", resp.StatusCode)
	}

	var profile service.GoogleProfile
	if err := json.UnmarshalRead(resp.Body, &profile); err != nil {
		return nil, fmt.Errorf("parse userinfo: %w", err)
	}
	return &profile, nil
}

// handleDevSignIn signs in the reserved development identity.
// GET /auth/dev
func (s *Server) handleDevSignIn(w http.ResponseWriter, r *http.Request) {
	_, sess, err := s.authService.DevSignIn(r.Context())
	if err != nil {
		if domainerrors.Is(err, domainerrors.ErrForbidden) {
			http.Error(w, "Dev access expired or invalid. Check DEV_USER_ACCESS.", http.StatusForbidden)
			return
		}
		s.logger.Error("Dev sign-in failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	s.setSessionCookie(w, sess)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// handleLogout ends the browser session.
// GET /logout
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if err := s.authService.SignOut(r.Context(), cookie.Value); err != nil {
			s.logger.Warn("Sign-out failed", "error", err)
		}
	}
	s.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
