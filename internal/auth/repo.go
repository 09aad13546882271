package auth

import (
	"context"
	"database/sql"

	"github.com/Devansh2835/EventSpark/internal/db"
	"github.com/Devansh2835/EventSpark/internal/session"
)

// UserRepo is the persistence boundary for user records. The postgres
// implementation is below; tests use an in-memory fake.
type UserRepo interface {
	Create(ctx context.Context, name, email, passwordHash string, role session.Role) (User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	MarkVerified(ctx context.Context, id string) error
}

type PostgresUserRepo struct {
	db *db.DB
}

func NewPostgresUserRepo(db *db.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

const userColumns = `
	id, name, email, password_hash, role, verified, created_at, updated_at
`

func scanUser(row *sql.Row) (*User, error) {
	var u User
	var role string
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash,
		&role, &u.Verified, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	r, err := session.ParseRole(role)
	if err != nil {
		return nil, err
	}
	u.Role = r
	return &u, nil
}

func (r *PostgresUserRepo) Create(
	ctx context.Context,
	name, email, passwordHash string,
	role session.Role,
) (User, error) {

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		name, email, passwordHash, string(role),
	)

	u, err := scanUser(row)
	if err != nil {
		return User{}, err
	}
	return *u, nil
}

func (r *PostgresUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`, email)

	return scanUser(row)
}

func (r *PostgresUserRepo) GetByID(ctx context.Context, id string) (*User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)

	return scanUser(row)
}

func (r *PostgresUserRepo) MarkVerified(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET verified = true, updated_at = NOW()
		WHERE id = $1
	`, id)
	return err
}
