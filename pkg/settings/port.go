package settings

import "context"

// Repository persists settings. The cached implementation wraps the
// PostgreSQL one with the same interface.
type Repository interface {
	Get(ctx context.Context, key string) (*Setting, error)
	Put(ctx context.Context, s Setting) error
	Delete(ctx context.Context, key string) error
}
