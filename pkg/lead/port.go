package lead

import (
	"context"

	"github.com/Abraxas-365/relaycrm/pkg/kernel"
)

// Repository persists leads.
type Repository interface {
	Save(ctx context.Context, l Lead) error
	FindByID(ctx context.Context, id kernel.LeadID) (*Lead, error)
	FindByEmail(ctx context.Context, email string) (*Lead, error)
	List(ctx context.Context, filter ListFilter, opts kernel.PaginationOptions) (kernel.Paginated[Lead], error)
	Delete(ctx context.Context, id kernel.LeadID) error
}
