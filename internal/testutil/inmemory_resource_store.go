package testutil

import (
	"context"

	"github.com/billfold/billfold/internal/domain/resource"
)

// InMemoryResourceStore implements resource.Repository
type InMemoryResourceStore struct {
	*InMemoryStore[*resource.Resource]
}

// NewInMemoryResourceStore creates a new in-memory resource store
func NewInMemoryResourceStore() *InMemoryResourceStore {
	return &InMemoryResourceStore{
		InMemoryStore: NewInMemoryStore[*resource.Resource](),
	}
}

func (s *InMemoryResourceStore) Upsert(ctx context.Context, r *resource.Resource) error {
	out := *r
	s.InMemoryStore.Set(ctx, r.ID, &out)
	return nil
}

func (s *InMemoryResourceStore) List(ctx context.Context) ([]*resource.Resource, error) {
	resources, err := s.InMemoryStore.List(ctx, nil, func(i, j *resource.Resource) bool {
		return i.ID < j.ID
	})
	if err != nil {
		return nil, err
	}

	out := make([]*resource.Resource, len(resources))
	for i, r := range resources {
		c := *r
		out[i] = &c
	}
	return out, nil
}
