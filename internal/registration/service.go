package registration

import (
	"context"

	"github.com/Devansh2835/EventSpark/internal/auth"
	"github.com/Devansh2835/EventSpark/internal/email"
	"github.com/Devansh2835/EventSpark/internal/event"
	"github.com/Devansh2835/EventSpark/internal/logger"
)

type Service struct {
	regs   Repo
	events event.Repo
	users  auth.UserRepo
	mailer email.Sender
}

func NewService(regs Repo, events event.Repo, users auth.UserRepo, mailer email.Sender) *Service {
	return &Service{
		regs:   regs,
		events: events,
		users:  users,
		mailer: mailer,
	}
}

// Register books a spot on the event for the user and emails a QR-coded
// confirmation. The email is sent in the background; a delivery failure
// does not undo the registration.
func (s *Service) Register(ctx context.Context, eventID, userID string) (Registration, error) {
	ev, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return Registration{}, err
	}
	if ev == nil {
		return Registration{}, ErrEventNotFound
	}

	// Capacity 0 means unlimited. The unique constraint, not this check,
	// is what prevents double registration under concurrency.
	if ev.Capacity > 0 && ev.Registered >= ev.Capacity {
		return Registration{}, ErrEventFull
	}

	reg, err := s.regs.Create(ctx, eventID, userID)
	if err != nil {
		return Registration{}, err
	}

	go s.sendConfirmation(reg, *ev)

	return reg, nil
}

func (s *Service) sendConfirmation(reg Registration, ev event.Event) {
	u, err := s.users.GetByID(context.Background(), reg.UserID)
	if err != nil || u == nil {
		logger.Error("confirmation mail: user lookup failed", map[string]any{
			"registration_id": reg.ID,
		})
		return
	}

	png, err := TicketQR(reg)
	if err != nil {
		logger.Error("confirmation mail: qr encoding failed", map[string]any{
			"registration_id": reg.ID,
			"error":           err.Error(),
		})
		return
	}

	details := email.EventDetails{
		Title:    ev.Title,
		Venue:    ev.Venue,
		StartsAt: ev.StartsAt,
	}
	if err := s.mailer.SendRegistrationConfirmation(u.Email, u.Name, details, png); err != nil {
		logger.Error("confirmation mail: send failed", map[string]any{
			"registration_id": reg.ID,
			"error":           err.Error(),
		})
	}
}

func (s *Service) Cancel(ctx context.Context, eventID, userID string) error {
	deleted, err := s.regs.Delete(ctx, eventID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotRegistered
	}
	return nil
}

func (s *Service) IsRegistered(ctx context.Context, eventID, userID string) (bool, error) {
	return s.regs.Exists(ctx, eventID, userID)
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]Registration, error) {
	return s.regs.ListForUser(ctx, userID)
}

func (s *Service) ListForEvent(ctx context.Context, eventID string) ([]Attendee, error) {
	ev, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, ErrEventNotFound
	}
	return s.regs.ListForEvent(ctx, eventID)
}
