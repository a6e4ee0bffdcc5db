// Package engagementinfra holds the PostgreSQL implementation of the
// engagement repository.
package engagementinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Abraxas-365/relaycrm/pkg/engagement"
	"github.com/Abraxas-365/relaycrm/pkg/errx"
	"github.com/Abraxas-365/relaycrm/pkg/kernel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresRepository is the PostgreSQL implementation of
// engagement.Repository.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new engagement repository.
func NewPostgresRepository(db *sqlx.DB) engagement.Repository {
	return &PostgresRepository{db: db}
}

type engagementPersistence struct {
	ID            string       `db:"id"`
	LeadID        string       `db:"lead_id"`
	Topic         string       `db:"topic"`
	Status        string       `db:"status"`
	ContactPhone  string       `db:"contact_phone"`
	ContactEmail  string       `db:"contact_email"`
	LastContactAt sql.NullTime `db:"last_contact_at"`
	CreatedAt     time.Time    `db:"created_at"`
	UpdatedAt     time.Time    `db:"updated_at"`
}

func toPersistence(e engagement.Engagement) engagementPersistence {
	p := engagementPersistence{
		ID:           e.ID.String(),
		LeadID:       e.LeadID.String(),
		Topic:        e.Topic,
		Status:       e.Status,
		ContactPhone: e.ContactPhone,
		ContactEmail: e.ContactEmail,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
	if e.LastContactAt != nil {
		p.LastContactAt = sql.NullTime{Time: *e.LastContactAt, Valid: true}
	}
	return p
}

func toDomain(p engagementPersistence) engagement.Engagement {
	e := engagement.Engagement{
		ID:           kernel.NewEngagementID(p.ID),
		LeadID:       kernel.NewLeadID(p.LeadID),
		Topic:        p.Topic,
		Status:       p.Status,
		ContactPhone: p.ContactPhone,
		ContactEmail: p.ContactEmail,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.LastContactAt.Valid {
		t := p.LastContactAt.Time
		e.LastContactAt = &t
	}
	return e
}

// Save inserts or updates an engagement.
func (r *PostgresRepository) Save(ctx context.Context, e engagement.Engagement) error {
	query := `
		INSERT INTO engagements (
			id, lead_id, topic, status, contact_phone, contact_email,
			last_contact_at, created_at, updated_at
		) VALUES (
			:id, :lead_id, :topic, :status, :contact_phone, :contact_email,
			:last_contact_at, :created_at, :updated_at
		)
		ON CONFLICT (id) DO UPDATE SET
			topic = EXCLUDED.topic,
			status = EXCLUDED.status,
			contact_phone = EXCLUDED.contact_phone,
			contact_email = EXCLUDED.contact_email,
			last_contact_at = EXCLUDED.last_contact_at,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.NamedExecContext(ctx, query, toPersistence(e))
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
			return engagement.ErrInvalidRequest("lead does not exist").
				WithDetail("lead_id", e.LeadID.String())
		}
		return errx.Wrap(err, "failed to save engagement", errx.TypeInternal).
			WithDetail("engagement_id", e.ID.String())
	}
	return nil
}

// FindByID returns one engagement by ID.
func (r *PostgresRepository) FindByID(ctx context.Context, id kernel.EngagementID) (*engagement.Engagement, error) {
	var p engagementPersistence
	query := `SELECT * FROM engagements WHERE id = $1`
	if err := r.db.GetContext(ctx, &p, query, id.String()); err != nil {
		if err == sql.ErrNoRows {
			return nil, engagement.ErrNotFound()
		}
		return nil, errx.Wrap(err, "failed to find engagement by ID", errx.TypeInternal)
	}
	e := toDomain(p)
	return &e, nil
}

// List returns one page of engagements matching the filter, newest first.
func (r *PostgresRepository) List(ctx context.Context, filter engagement.ListFilter, opts kernel.PaginationOptions) (kernel.Paginated[engagement.Engagement], error) {
	var empty kernel.Paginated[engagement.Engagement]

	where := "WHERE 1=1"
	args := []any{}
	if filter.LeadID != "" {
		args = append(args, filter.LeadID)
		where += fmt.Sprintf(" AND lead_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM engagements " + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return empty, errx.Wrap(err, "failed to count engagements", errx.TypeInternal)
	}

	listQuery := fmt.Sprintf(
		"SELECT * FROM engagements %s ORDER BY updated_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2,
	)
	args = append(args, opts.PageSize, opts.Offset())

	var rows []engagementPersistence
	if err := r.db.SelectContext(ctx, &rows, listQuery, args...); err != nil {
		return empty, errx.Wrap(err, "failed to list engagements", errx.TypeInternal)
	}

	items := make([]engagement.Engagement, 0, len(rows))
	for _, p := range rows {
		items = append(items, toDomain(p))
	}
	return kernel.NewPaginated(items, opts.Page, opts.PageSize, total), nil
}

// Delete removes an engagement.
func (r *PostgresRepository) Delete(ctx context.Context, id kernel.EngagementID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM engagements WHERE id = $1`, id.String())
	if err != nil {
		return errx.Wrap(err, "failed to delete engagement", errx.TypeInternal)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected on delete", errx.TypeInternal)
	}
	if rows == 0 {
		return engagement.ErrNotFound()
	}
	return nil
}

// TouchLastContact stamps the last outbound contact time.
func (r *PostgresRepository) TouchLastContact(ctx context.Context, id kernel.EngagementID, at time.Time) error {
	query := `UPDATE engagements SET last_contact_at = $1, updated_at = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, at, id.String())
	if err != nil {
		return errx.Wrap(err, "failed to update last contact", errx.TypeInternal)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected on touch", errx.TypeInternal)
	}
	if rows == 0 {
		return engagement.ErrNotFound()
	}
	return nil
}
