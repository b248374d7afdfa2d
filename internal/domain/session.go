package domain

import "time"

// Session represents an authenticated browser session, referenced by the
// session cookie. The CSRF token is bound to the session and checked on
// every state-changing form post.
type Session struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	CSRFToken  string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
