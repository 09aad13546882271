package session

import (
	"context"
	"fmt"
	"time"
)

// Role is the closed set of roles a session may carry. It is validated
// once, at session creation; everything downstream trusts the stored value.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// ParseRole rejects anything outside the known set. Roles arrive from the
// users table, never from client input, but the store still refuses to
// persist an unknown value.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("session: unknown role %q", s)
}

// TTL is the fixed session lifetime.
const TTL = 7 * 24 * time.Hour

var errMissingFields = fmt.Errorf("session: missing session_id or user_id")

// Session represents an authenticated user session.
// It intentionally stores only identity pointers, not auth state.
type Session struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"` // absolute expiry time
}

// Store defines how sessions are stored and retrieved.
// Get returns (nil, nil) for unknown or expired identifiers; an error means
// the store itself failed and must not be read as "not logged in".
// Delete is idempotent.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// New builds a session for a freshly authenticated user.
func New(userID string, role Role, now time.Time) (Session, error) {
	if userID == "" {
		return Session{}, fmt.Errorf("session: missing user id")
	}
	if _, err := ParseRole(string(role)); err != nil {
		return Session{}, err
	}

	id, err := GenerateID()
	if err != nil {
		return Session{}, err
	}

	return Session{
		SessionID: id,
		UserID:    userID,
		Role:      role,
		CreatedAt: now,
		ExpiresAt: now.Add(TTL),
	}, nil
}
