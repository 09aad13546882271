package auth

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/Devansh2835/EventSpark/internal/email"
	"github.com/Devansh2835/EventSpark/internal/session"

	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	users      UserRepo
	challenges ChallengeStore
	sessions   session.Store
	mailer     email.Sender
}

func NewService(
	users UserRepo,
	challenges ChallengeStore,
	sessions session.Store,
	mailer email.Sender,
) *Service {
	return &Service{
		users:      users,
		challenges: challenges,
		sessions:   sessions,
		mailer:     mailer,
	}
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

func validateEmail(e string) error {
	if e == "" {
		return ErrInvalidCredentials
	}
	if _, err := mail.ParseAddress(e); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// HashPassword hashes a plaintext password using bcrypt.
func HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", ErrInvalidCredentials
	}
	bytes, err := bcrypt.GenerateFromPassword(
		[]byte(password),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyPassword compares plaintext password with stored hash.
func VerifyPassword(hash string, password string) error {
	return bcrypt.CompareHashAndPassword(
		[]byte(hash),
		[]byte(password),
	)
}

// Register creates an unverified student account and emails a verification
// code. Registering an email that already belongs to a verified account is
// an error; an unverified account just gets a fresh code.
func (s *Service) Register(ctx context.Context, name, emailAddr, password string) error {
	emailAddr = normalizeEmail(emailAddr)
	if err := validateEmail(emailAddr); err != nil {
		return err
	}

	existing, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}

	if existing != nil {
		if existing.Verified {
			return ErrAlreadyRegistered
		}
		return s.issueOTP(ctx, *existing, time.Now())
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	u, err := s.users.Create(ctx, name, emailAddr, hash, session.RoleStudent)
	if err != nil {
		return err
	}

	return s.issueOTP(ctx, u, time.Now())
}

func (s *Service) issueOTP(ctx context.Context, u User, now time.Time) error {
	code, err := generateOTPCode()
	if err != nil {
		return err
	}

	ch := Challenge{
		Email:     u.Email,
		CodeHash:  hashOTP(u.Email, code),
		ExpiresAt: now.Add(otpTTL),
		Attempts:  0,
	}
	if err := s.challenges.Put(ctx, ch); err != nil {
		return err
	}

	return s.mailer.SendOTP(u.Email, u.Name, code)
}

// ResendOTP issues a fresh code for an unverified account.
func (s *Service) ResendOTP(ctx context.Context, emailAddr string) error {
	emailAddr = normalizeEmail(emailAddr)

	u, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}
	if u.Verified {
		return ErrAlreadyRegistered
	}

	return s.issueOTP(ctx, *u, time.Now())
}

// VerifyOTP checks the code, marks the account verified and logs the user
// in by creating a session.
func (s *Service) VerifyOTP(ctx context.Context, emailAddr, code string, now time.Time) (User, session.Session, error) {
	emailAddr = normalizeEmail(emailAddr)

	ch, err := s.challenges.Get(ctx, emailAddr)
	if err != nil {
		return User{}, session.Session{}, err
	}
	if ch == nil {
		return User{}, session.Session{}, ErrInvalidOTP
	}

	if now.After(ch.ExpiresAt) {
		_ = s.challenges.Delete(ctx, emailAddr)
		return User{}, session.Session{}, ErrOTPExpired
	}

	if ch.Attempts >= maxOTPAttempts {
		_ = s.challenges.Delete(ctx, emailAddr)
		return User{}, session.Session{}, ErrTooManyOTPAttempts
	}

	if hashOTP(emailAddr, code) != ch.CodeHash {
		ch.Attempts++
		if ch.Attempts >= maxOTPAttempts {
			_ = s.challenges.Delete(ctx, emailAddr)
			return User{}, session.Session{}, ErrTooManyOTPAttempts
		}
		_ = s.challenges.Put(ctx, *ch)
		return User{}, session.Session{}, ErrInvalidOTP
	}

	if err := s.challenges.Delete(ctx, emailAddr); err != nil {
		return User{}, session.Session{}, err
	}

	u, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		return User{}, session.Session{}, err
	}
	if u == nil {
		return User{}, session.Session{}, ErrUserNotFound
	}

	if err := s.users.MarkVerified(ctx, u.ID); err != nil {
		return User{}, session.Session{}, err
	}
	u.Verified = true

	sess, err := s.createSession(ctx, *u, now)
	if err != nil {
		return User{}, session.Session{}, err
	}

	return *u, sess, nil
}

// Login authenticates a verified account and creates a session. The error
// shape does not reveal whether the email exists.
func (s *Service) Login(ctx context.Context, emailAddr, password string, now time.Time) (User, session.Session, error) {
	emailAddr = normalizeEmail(emailAddr)

	u, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		return User{}, session.Session{}, err
	}
	if u == nil {
		return User{}, session.Session{}, ErrInvalidCredentials
	}

	if err := VerifyPassword(u.PasswordHash, password); err != nil {
		return User{}, session.Session{}, ErrInvalidCredentials
	}

	if !u.Verified {
		return User{}, session.Session{}, ErrNotVerified
	}

	sess, err := s.createSession(ctx, *u, now)
	if err != nil {
		return User{}, session.Session{}, err
	}

	return *u, sess, nil
}

func (s *Service) createSession(ctx context.Context, u User, now time.Time) (session.Session, error) {
	sess, err := session.New(u.ID, u.Role, now)
	if err != nil {
		return session.Session{}, err
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return session.Session{}, err
	}
	return sess, nil
}

// Logout destroys the session. Destroying an already-absent session is
// fine.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sessionID)
}

// Me returns the account behind an authenticated session.
func (s *Service) Me(ctx context.Context, userID string) (*User, error) {
	return s.users.GetByID(ctx, userID)
}
