package auth

import (
	"errors"
	"time"

	"github.com/Devansh2835/EventSpark/internal/session"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyRegistered  = errors.New("account already exists")
	ErrNotVerified        = errors.New("email not verified")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidOTP         = errors.New("invalid otp code")
	ErrOTPExpired         = errors.New("otp code expired")
	ErrTooManyOTPAttempts = errors.New("too many invalid otp attempts")
)

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         session.Role
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
