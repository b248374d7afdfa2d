package api

import (
	"context"
	"net/http"

	"github.com/bookscoutapp/bookscout-server/internal/domain"
	domainerrors "github.com/bookscoutapp/bookscout-server/internal/errors"
	"github.com/bookscoutapp/bookscout-server/internal/http/response"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	contextKeyUser    contextKey = "user"
	contextKeySession contextKey = "session"
)

// sessionCookie is the browser session cookie name.
const sessionCookie = "bookscout_session"

// withSession resolves the session cookie and attaches the user to the
// request context. Requests without a valid session continue anonymous;
// handlers that need a user sit behind requireUser.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookie)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, sess, err := s.authService.SessionUser(r.Context(), cookie.Value)
		if domainerrors.Is(err, domainerrors.ErrUnauthorized) {
			// Stale cookie; clear it and continue anonymous.
			s.clearSessionCookie(w)
			next.ServeHTTP(w, r)
			return
		}
		if err != nil {
			// A store fault is not a sign-out.
			s.logger.Error("session lookup failed", "error", err)
			response.InternalError(w, "internal server error", s.logger)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyUser, user)
		ctx = context.WithValue(ctx, contextKeySession, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireUser redirects anonymous requests to the landing page.
func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if currentUser(r.Context()) == nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAdmin gates the admin surface. Must be used after requireUser.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := s.authService.AuthorizeAdmin(currentUser(r.Context())); err != nil {
			if domainerrors.Is(err, domainerrors.ErrUnauthorized) {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
			response.Forbidden(w, "Admin access required", s.logger)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireCSRF checks the form token on state-changing requests against
// the session's token.
func (s *Server) requireCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := currentSession(r.Context())
		if sess == nil || r.FormValue("csrf_token") != sess.CSRFToken {
			response.Forbidden(w, "Invalid CSRF token", s.logger)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// currentUser extracts the signed-in user from request context.
// Returns nil if the request is anonymous.
func currentUser(ctx context.Context) *domain.User {
	if user, ok := ctx.Value(contextKeyUser).(*domain.User); ok {
		return user
	}
	return nil
}

// currentSession extracts the session from request context.
func currentSession(ctx context.Context) *domain.Session {
	if sess, ok := ctx.Value(contextKeySession).(*domain.Session); ok {
		return sess
	}
	return nil
}

// setSessionCookie installs the session cookie.
func (s *Server) setSessionCookie(w http.ResponseWriter, sess *domain.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.ID,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   s.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the session cookie.
func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
