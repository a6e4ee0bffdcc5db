// Package authinfra holds the PostgreSQL implementation of the user
// repository.
package authinfra

import (
	"context"
	"database/sql"

	"github.com/Abraxas-365/relaycrm/pkg/auth"
	"github.com/Abraxas-365/relaycrm/pkg/errx"
	"github.com/Abraxas-365/relaycrm/pkg/kernel"
	"github.com/jmoiron/sqlx"
)

// PostgresUserRepository is the PostgreSQL implementation of
// auth.UserRepository.
type PostgresUserRepository struct {
	db *sqlx.DB
}

// NewPostgresUserRepository creates a new user repository.
func NewPostgresUserRepository(db *sqlx.DB) auth.UserRepository {
	return &PostgresUserRepository{db: db}
}

// Save inserts or updates a user.
func (r *PostgresUserRepository) Save(ctx context.Context, u auth.User) error {
	query := `
		INSERT INTO users (
			id, email, name, password_hash, is_active, created_at, updated_at
		) VALUES (
			:id, :email, :name, :password_hash, :is_active, :created_at, :updated_at
		)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			name = EXCLUDED.name,
			password_hash = EXCLUDED.password_hash,
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at`

	if _, err := r.db.NamedExecContext(ctx, query, u); err != nil {
		return errx.Wrap(err, "failed to save user", errx.TypeInternal).
			WithDetail("user_id", u.ID.String())
	}
	return nil
}

// FindByID returns one user by ID.
func (r *PostgresUserRepository) FindByID(ctx context.Context, id kernel.UserID) (*auth.User, error) {
	var u auth.User
	query := `SELECT * FROM users WHERE id = $1`
	if err := r.db.GetContext(ctx, &u, query, id.String()); err != nil {
		if err == sql.ErrNoRows {
			return nil, auth.ErrUserNotFound()
		}
		return nil, errx.Wrap(err, "failed to find user by ID", errx.TypeInternal)
	}
	return &u, nil
}

// FindByEmail returns one user by email.
func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	var u auth.User
	query := `SELECT * FROM users WHERE email = $1`
	if err := r.db.GetContext(ctx, &u, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, auth.ErrUserNotFound()
		}
		return nil, errx.Wrap(err, "failed to find user by email", errx.TypeInternal)
	}
	return &u, nil
}
