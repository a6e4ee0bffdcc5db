// Package settingssrv holds the settings business logic.
package settingssrv

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Abraxas-365/relaycrm/pkg/settings"
)

// Service implements settings operations.
type Service struct {
	repo settings.Repository
}

// NewService wires the settings service.
func NewService(repo settings.Repository) *Service {
	return &Service{repo: repo}
}

// Get returns one setting by key.
func (s *Service) Get(ctx context.Context, key string) (*settings.Setting, error) {
	if key == "" {
		return nil, settings.ErrInvalidRequest("key is required")
	}
	return s.repo.Get(ctx, key)
}

// Upsert writes a setting.
func (s *Service) Upsert(ctx context.Context, key string, req settings.UpsertRequest) (*settings.Setting, error) {
	if key == "" {
		return nil, settings.ErrInvalidRequest("key is required")
	}
	if len(req.Value) == 0 {
		return nil, settings.ErrInvalidRequest("value is required")
	}

	value, err := json.Marshal(req.Value)
	if err != nil {
		return nil, settings.ErrInvalidRequest("value is not serializable")
	}

	setting := settings.Setting{
		Key:       key,
		Value:     value,
		UpdatedBy: req.UpdatedBy,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.repo.Put(ctx, setting); err != nil {
		return nil, err
	}
	return &setting, nil
}

// Delete removes a setting.
func (s *Service) Delete(ctx context.Context, key string) error {
	if key == "" {
		return settings.ErrInvalidRequest("key is required")
	}
	return s.repo.Delete(ctx, key)
}
