// Package domain defines the core data types for the BookScout server.
package domain

import "time"

// User represents a local account created from an external identity.
// The ID is the identity provider's stable subject identifier (the
// Google "sub" claim), so there is at most one account per identity.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"` // nullable; not every profile exposes one
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
