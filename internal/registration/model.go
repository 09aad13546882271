package registration

import (
	"errors"
	"time"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrEventFull         = errors.New("event is full")
	ErrAlreadyRegistered = errors.New("already registered")
	ErrNotRegistered     = errors.New("not registered")
)

type Registration struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Attendee is one row of an event's registration list, as shown to admins.
type Attendee struct {
	RegistrationID string    `json:"registration_id"`
	UserID         string    `json:"user_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	RegisteredAt   time.Time `json:"registered_at"`
}
