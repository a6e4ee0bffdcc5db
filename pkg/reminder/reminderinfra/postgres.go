// Package reminderinfra holds the PostgreSQL repository and the RabbitMQ
// event publisher for reminders.
package reminderinfra

import (
	"context"
	"database/sql"
	"time"

	"github.com/Abraxas-365/relaycrm/pkg/errx"
	"github.com/Abraxas-365/relaycrm/pkg/kernel"
	"github.com/Abraxas-365/relaycrm/pkg/reminder"
	"github.com/jmoiron/sqlx"
)

// PostgresRepository is the PostgreSQL implementation of reminder.Repository.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new reminder repository.
func NewPostgresRepository(db *sqlx.DB) reminder.Repository {
	return &PostgresRepository{db: db}
}

// Save inserts or updates a reminder.
func (r *PostgresRepository) Save(ctx context.Context, rem reminder.Reminder) error {
	query := `
		INSERT INTO reminders (
			id, engagement_id, owner_id, note, due_at, status, created_at, updated_at
		) VALUES (
			:id, :engagement_id, :owner_id, :note, :due_at, :status, :created_at, :updated_at
		)
		ON CONFLICT (id) DO UPDATE SET
			note = EXCLUDED.note,
			due_at = EXCLUDED.due_at,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at`

	if _, err := r.db.NamedExecContext(ctx, query, rem); err != nil {
		return errx.Wrap(err, "failed to save reminder", errx.TypeInternal).
			WithDetail("reminder_id", rem.ID.String())
	}
	return nil
}

// FindByID returns one reminder by ID.
func (r *PostgresRepository) FindByID(ctx context.Context, id kernel.ReminderID) (*reminder.Reminder, error) {
	var rem reminder.Reminder
	query := `SELECT * FROM reminders WHERE id = $1`
	if err := r.db.GetContext(ctx, &rem, query, id.String()); err != nil {
		if err == sql.ErrNoRows {
			return nil, reminder.ErrNotFound()
		}
		return nil, errx.Wrap(err, "failed to find reminder by ID", errx.TypeInternal)
	}
	return &rem, nil
}

// ListByEngagement returns all reminders of one engagement, soonest first.
func (r *PostgresRepository) ListByEngagement(ctx context.Context, id kernel.EngagementID) ([]reminder.Reminder, error) {
	var items []reminder.Reminder
	query := `SELECT * FROM reminders WHERE engagement_id = $1 ORDER BY due_at ASC`
	if err := r.db.SelectContext(ctx, &items, query, id.String()); err != nil {
		return nil, errx.Wrap(err, "failed to list reminders", errx.TypeInternal)
	}
	return items, nil
}

// ListDue returns pending reminders that are due at the given instant. The
// rows are locked so concurrent sweepers do not fire the same reminder twice.
func (r *PostgresRepository) ListDue(ctx context.Context, now time.Time, limit int) ([]reminder.Reminder, error) {
	var items []reminder.Reminder
	query := `
		SELECT * FROM reminders
		WHERE status = $1 AND due_at <= $2
		ORDER BY due_at ASC
		LIMIT $3
		FOR UPDATE SKIP LOCKED`
	if err := r.db.SelectContext(ctx, &items, query, reminder.StatusPending, now, limit); err != nil {
		return nil, errx.Wrap(err, "failed to list due reminders", errx.TypeInternal)
	}
	return items, nil
}

// MarkFired flips a pending reminder to fired.
func (r *PostgresRepository) MarkFired(ctx context.Context, id kernel.ReminderID, at time.Time) error {
	query := `UPDATE reminders SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`
	result, err := r.db.ExecContext(ctx, query, reminder.StatusFired, at, id.String(), reminder.StatusPending)
	if err != nil {
		return errx.Wrap(err, "failed to mark reminder fired", errx.TypeInternal)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected on mark fired", errx.TypeInternal)
	}
	if rows == 0 {
		return reminder.ErrNotFound()
	}
	return nil
}

// Delete removes a reminder.
func (r *PostgresRepository) Delete(ctx context.Context, id kernel.ReminderID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = $1`, id.String())
	if err != nil {
		return errx.Wrap(err, "failed to delete reminder", errx.TypeInternal)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected on delete", errx.TypeInternal)
	}
	if rows == 0 {
		return reminder.ErrNotFound()
	}
	return nil
}
