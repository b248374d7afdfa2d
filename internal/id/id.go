// Package id generates unique identifiers for sessions and tokens.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Generate creates a prefixed unique ID using NanoID
// Format: prefix-nanoid (e.g., "sess-V1StGXR8_Z5jdHi6B-myT")
//
// NanoIDs are URL-friendly, compact (21 characters vs UUID's 36),
// and use a larger alphabet for better entropy per character.
//
// Returns an error if the system has insufficient entropy for secure random generation.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// NewSession generates a session identifier. Session IDs double as the
// bearer credential in the session cookie, so they must be unguessable.
func NewSession() (string, error) {
	return Generate("sess")
}

// NewCSRFToken generates a CSRF token bound to one session.
func NewCSRFToken() (string, error) {
	id, err := gonanoid.New(32)
	if err != nil {
		return "", fmt.Errorf("generate csrf token: %w", err)
	}
	return id, nil
}

// NewOAuthState generates the state parameter for an OAuth round trip.
func NewOAuthState() (string, error) {
	id, err := gonanoid.New(24)
	if err != nil {
		return "", fmt.Errorf("generate oauth state: %w", err)
	}
	return id, nil
}
