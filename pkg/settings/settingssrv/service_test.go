package settingssrv_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Abraxas-365/relaycrm/pkg/settings"
	"github.com/Abraxas-365/relaycrm/pkg/settings/settingssrv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	items map[string]settings.Setting
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: make(map[string]settings.Setting)}
}

func (r *memoryRepo) Get(_ context.Context, key string) (*settings.Setting, error) {
	s, ok := r.items[key]
	if !ok {
		return nil, settings.ErrNotFound()
	}
	return &s, nil
}

func (r *memoryRepo) Put(_ context.Context, s settings.Setting) error {
	r.items[s.Key] = s
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, key string) error {
	if _, ok := r.items[key]; !ok {
		return settings.ErrNotFound()
	}
	delete(r.items, key)
	return nil
}

func TestService_UpsertAndGet(t *testing.T) {
	s := settingssrv.NewService(newMemoryRepo())

	_, err := s.Upsert(context.Background(), settings.KeyLeadSources, settings.UpsertRequest{
		Value:     map[string]any{"sources": []string{"referral", "web", "event"}},
		UpdatedBy: "user-1",
	})
	require.NoError(t, err)

	got, err := s.Get(context.Background(), settings.KeyLeadSources)
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UpdatedBy)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(got.Value, &decoded))
	assert.Len(t, decoded["sources"], 3)
}

func TestService_Upsert_RequiresValue(t *testing.T) {
	s := settingssrv.NewService(newMemoryRepo())

	_, err := s.Upsert(context.Background(), settings.KeyMessageDefaults, settings.UpsertRequest{})
	require.Error(t, err)
}

func TestService_Delete(t *testing.T) {
	s := settingssrv.NewService(newMemoryRepo())

	_, err := s.Upsert(context.Background(), "custom", settings.UpsertRequest{
		Value: map[string]any{"a": 1},
	})
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), "custom"))
	require.Error(t, s.Delete(context.Background(), "custom"))
	_, err = s.Get(context.Background(), "custom")
	require.Error(t, err)
}
