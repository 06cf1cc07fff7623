package testutil

import (
	"context"

	"github.com/billfold/billfold/internal/domain/settings"
)

// InMemorySettingsStore implements settings.Repository
type InMemorySettingsStore struct {
	*InMemoryStore[*settings.UserSettings]
}

// NewInMemorySettingsStore creates a new in-memory settings store
func NewInMemorySettingsStore() *InMemorySettingsStore {
	return &InMemorySettingsStore{
		InMemoryStore: NewInMemoryStore[*settings.UserSettings](),
	}
}

func (s *InMemorySettingsStore) Upsert(ctx context.Context, us *settings.UserSettings) error {
	out := *us
	s.InMemoryStore.Set(ctx, us.ID, &out)
	return nil
}

func (s *InMemorySettingsStore) Get(ctx context.Context, userID string) (*settings.UserSettings, error) {
	us, err := s.InMemoryStore.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := *us
	return &out, nil
}
