package engagement

import (
	"context"
	"time"

	"github.com/Abraxas-365/relaycrm/pkg/kernel"
)

// Repository persists engagements.
type Repository interface {
	Save(ctx context.Context, e Engagement) error
	FindByID(ctx context.Context, id kernel.EngagementID) (*Engagement, error)
	List(ctx context.Context, filter ListFilter, opts kernel.PaginationOptions) (kernel.Paginated[Engagement], error)
	Delete(ctx context.Context, id kernel.EngagementID) error
	TouchLastContact(ctx context.Context, id kernel.EngagementID, at time.Time) error
}
