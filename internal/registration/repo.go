package registration

import (
	"context"
	"errors"

	"github.com/Devansh2835/EventSpark/internal/db"

	"github.com/lib/pq"
)

type Repo interface {
	Create(ctx context.Context, eventID, userID string) (Registration, error)
	Delete(ctx context.Context, eventID, userID string) (bool, error)
	Exists(ctx context.Context, eventID, userID string) (bool, error)
	ListForEvent(ctx context.Context, eventID string) ([]Attendee, error)
	ListForUser(ctx context.Context, userID string) ([]Registration, error)
}

type PostgresRepo struct {
	db *db.DB
}

func NewPostgresRepo(db *db.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Create(ctx context.Context, eventID, userID string) (Registration, error) {
	var reg Registration
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO registrations (event_id, user_id)
		VALUES ($1, $2)
		RETURNING id, event_id, user_id, created_at
	`, eventID, userID).Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return Registration{}, ErrAlreadyRegistered
		}
		return Registration{}, err
	}
	return reg, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, eventID, userID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM registrations
		WHERE event_id = $1 AND user_id = $2
	`, eventID, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PostgresRepo) Exists(ctx context.Context, eventID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM registrations
			WHERE event_id = $1 AND user_id = $2
		)
	`, eventID, userID).Scan(&exists)
	return exists, err
}

func (r *PostgresRepo) ListForEvent(ctx context.Context, eventID string) ([]Attendee, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT r.id, u.id, u.name, u.email, r.created_at
		FROM registrations r
		JOIN users u ON u.id = r.user_id
		WHERE r.event_id = $1
		ORDER BY r.created_at ASC
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attendees []Attendee
	for rows.Next() {
		var a Attendee
		if err := rows.Scan(&a.RegistrationID, &a.UserID, &a.Name, &a.Email, &a.RegisteredAt); err != nil {
			return nil, err
		}
		attendees = append(attendees, a)
	}
	return attendees, rows.Err()
}

func (r *PostgresRepo) ListForUser(ctx context.Context, userID string) ([]Registration, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, event_id, user_id, created_at
		FROM registrations
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []Registration
	for rows.Next() {
		var reg Registration
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.CreatedAt); err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}
