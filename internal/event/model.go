package event

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("event not found")
	ErrInvalidEvent = errors.New("invalid event")
)

type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Venue       string    `json:"venue"`
	StartsAt    time.Time `json:"starts_at"`
	Capacity    int       `json:"capacity"`
	PosterURL   string    `json:"poster_url"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Registered is the current registration count, filled on reads.
	Registered int `json:"registered"`
}

// Draft carries the caller-supplied fields for create and update.
type Draft struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Venue       string    `json:"venue"`
	StartsAt    time.Time `json:"starts_at"`
	Capacity    int       `json:"capacity"`
	PosterURL   string    `json:"poster_url"`
}

func (d Draft) validate() error {
	if d.Title == "" {
		return ErrInvalidEvent
	}
	if d.Capacity < 0 {
		return ErrInvalidEvent
	}
	if d.StartsAt.IsZero() {
		return ErrInvalidEvent
	}
	return nil
}
