package event

import (
	"context"
	"database/sql"

	"github.com/Devansh2835/EventSpark/internal/db"
)

type Repo interface {
	Create(ctx context.Context, d Draft, createdBy string) (Event, error)
	Update(ctx context.Context, id string, d Draft) (*Event, error)
	Delete(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]Event, error)
}

type PostgresRepo struct {
	db *db.DB
}

func NewPostgresRepo(db *db.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

const eventColumns = `
	e.id, e.title, e.description, e.venue, e.starts_at, e.capacity,
	e.poster_url, e.created_by, e.created_at, e.updated_at,
	(SELECT COUNT(*) FROM registrations r WHERE r.event_id = e.id) AS registered
`

func scanEvent(s interface{ Scan(...any) error }) (Event, error) {
	var e Event
	err := s.Scan(
		&e.ID, &e.Title, &e.Description, &e.Venue, &e.StartsAt, &e.Capacity,
		&e.PosterURL, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
		&e.Registered,
	)
	return e, err
}

func (r *PostgresRepo) Create(ctx context.Context, d Draft, createdBy string) (Event, error) {
	row := r.db.QueryRowContext(ctx, `
		WITH inserted AS (
			INSERT INTO events (title, description, venue, starts_at, capacity, poster_url, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING *
		)
		SELECT `+eventColumns+`
		FROM inserted e
	`, d.Title, d.Description, d.Venue, d.StartsAt, d.Capacity, d.PosterURL, createdBy)

	return scanEvent(row)
}

func (r *PostgresRepo) Update(ctx context.Context, id string, d Draft) (*Event, error) {
	row := r.db.QueryRowContext(ctx, `
		WITH updated AS (
			UPDATE events
			SET title = $2, description = $3, venue = $4, starts_at = $5,
			    capacity = $6, poster_url = $7, updated_at = NOW()
			WHERE id = $1
			RETURNING *
		)
		SELECT `+eventColumns+`
		FROM updated e
	`, id, d.Title, d.Description, d.Venue, d.StartsAt, d.Capacity, d.PosterURL)

	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM events WHERE id = $1
	`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (*Event, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+eventColumns+`
		FROM events e
		WHERE e.id = $1
	`, id)

	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *PostgresRepo) List(ctx context.Context) ([]Event, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+eventColumns+`
		FROM events e
		ORDER BY e.starts_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
