// Package leadinfra holds the PostgreSQL implementation of the lead
// repository.
package leadinfra

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Abraxas-365/relaycrm/pkg/errx"
	"github.com/Abraxas-365/relaycrm/pkg/kernel"
	"github.com/Abraxas-365/relaycrm/pkg/lead"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresRepository is the PostgreSQL implementation of lead.Repository.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new lead repository.
func NewPostgresRepository(db *sqlx.DB) lead.Repository {
	return &PostgresRepository{db: db}
}

// Save inserts or updates a lead.
func (r *PostgresRepository) Save(ctx context.Context, l lead.Lead) error {
	query := `
		INSERT INTO leads (
			id, name, company, phone, email, stage, source, owner_id, notes,
			created_at, updated_at
		) VALUES (
			:id, :name, :company, :phone, :email, :stage, :source, :owner_id, :notes,
			:created_at, :updated_at
		)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			company = EXCLUDED.company,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			stage = EXCLUDED.stage,
			source = EXCLUDED.source,
			owner_id = EXCLUDED.owner_id,
			notes = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.NamedExecContext(ctx, query, l)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation on email
			return lead.ErrDuplicate().WithDetail("email", l.Email)
		}
		return errx.Wrap(err, "failed to save lead", errx.TypeInternal).
			WithDetail("lead_id", l.ID.String())
	}
	return nil
}

// FindByID returns one lead by ID.
func (r *PostgresRepository) FindByID(ctx context.Context, id kernel.LeadID) (*lead.Lead, error) {
	var l lead.Lead
	query := `SELECT * FROM leads WHERE id = $1`
	if err := r.db.GetContext(ctx, &l, query, id.String()); err != nil {
		if err == sql.ErrNoRows {
			return nil, lead.ErrNotFound()
		}
		return nil, errx.Wrap(err, "failed to find lead by ID", errx.TypeInternal)
	}
	return &l, nil
}

// FindByEmail returns one lead by email.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*lead.Lead, error) {
	var l lead.Lead
	query := `SELECT * FROM leads WHERE email = $1`
	if err := r.db.GetContext(ctx, &l, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, lead.ErrNotFound()
		}
		return nil, errx.Wrap(err, "failed to find lead by email", errx.TypeInternal)
	}
	return &l, nil
}

// List returns one page of leads matching the filter, newest first.
func (r *PostgresRepository) List(ctx context.Context, filter lead.ListFilter, opts kernel.PaginationOptions) (kernel.Paginated[lead.Lead], error) {
	var empty kernel.Paginated[lead.Lead]

	where := "WHERE 1=1"
	args := []any{}
	if filter.Stage != "" {
		args = append(args, filter.Stage)
		where += fmt.Sprintf(" AND stage = $%d", len(args))
	}
	if filter.OwnerID != "" {
		args = append(args, filter.OwnerID)
		where += fmt.Sprintf(" AND owner_id = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND (name ILIKE $%d OR company ILIKE $%d OR email ILIKE $%d)",
			len(args), len(args), len(args))
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM leads " + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return empty, errx.Wrap(err, "failed to count leads", errx.TypeInternal)
	}

	listQuery := fmt.Sprintf(
		"SELECT * FROM leads %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2,
	)
	args = append(args, opts.PageSize, opts.Offset())

	var items []lead.Lead
	if err := r.db.SelectContext(ctx, &items, listQuery, args...); err != nil {
		return empty, errx.Wrap(err, "failed to list leads", errx.TypeInternal)
	}
	return kernel.NewPaginated(items, opts.Page, opts.PageSize, total), nil
}

// Delete removes a lead.
func (r *PostgresRepository) Delete(ctx context.Context, id kernel.LeadID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id.String())
	if err != nil {
		return errx.Wrap(err, "failed to delete lead", errx.TypeInternal)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected on delete", errx.TypeInternal)
	}
	if rows == 0 {
		return lead.ErrNotFound()
	}
	return nil
}
