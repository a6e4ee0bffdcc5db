// Package settingsinfra holds the PostgreSQL repository and the Redis
// read-through cache for settings.
package settingsinfra

import (
	"context"
	"database/sql"

	"github.com/Abraxas-365/relaycrm/pkg/errx"
	"github.com/Abraxas-365/relaycrm/pkg/settings"
	"github.com/jmoiron/sqlx"
)

// PostgresRepository is the PostgreSQL implementation of
// settings.Repository.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new settings repository.
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Get returns one setting by key.
func (r *PostgresRepository) Get(ctx context.Context, key string) (*settings.Setting, error) {
	var s settings.Setting
	query := `SELECT * FROM settings WHERE key = $1`
	if err := r.db.GetContext(ctx, &s, query, key); err != nil {
		if err == sql.ErrNoRows {
			return nil, settings.ErrNotFound()
		}
		return nil, errx.Wrap(err, "failed to get setting", errx.TypeInternal).WithDetail("key", key)
	}
	return &s, nil
}

// Put inserts or replaces a setting.
func (r *PostgresRepository) Put(ctx context.Context, s settings.Setting) error {
	query := `
		INSERT INTO settings (key, value, updated_by, updated_at)
		VALUES (:key, :value, :updated_by, :updated_at)
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_by = EXCLUDED.updated_by,
			updated_at = EXCLUDED.updated_at`

	if _, err := r.db.NamedExecContext(ctx, query, s); err != nil {
		return errx.Wrap(err, "failed to put setting", errx.TypeInternal).WithDetail("key", s.Key)
	}
	return nil
}

// Delete removes a setting.
func (r *PostgresRepository) Delete(ctx context.Context, key string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM settings WHERE key = $1`, key)
	if err != nil {
		return errx.Wrap(err, "failed to delete setting", errx.TypeInternal).WithDetail("key", key)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected on delete", errx.TypeInternal)
	}
	if rows == 0 {
		return settings.ErrNotFound()
	}
	return nil
}
