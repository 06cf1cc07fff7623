package testutil

import (
	"context"

	"github.com/billfold/billfold/internal/domain/customer"
)

// InMemoryCustomerStore implements customer.Repository
type InMemoryCustomerStore struct {
	*InMemoryStore[*customer.Customer]
}

// NewInMemoryCustomerStore creates a new in-memory customer store
func NewInMemoryCustomerStore() *InMemoryCustomerStore {
	return &InMemoryCustomerStore{
		InMemoryStore: NewInMemoryStore[*customer.Customer](),
	}
}

func (s *InMemoryCustomerStore) Upsert(ctx context.Context, c *customer.Customer) error {
	out := *c
	s.InMemoryStore.Set(ctx, c.ID, &out)
	return nil
}

func (s *InMemoryCustomerStore) List(ctx context.Context) ([]*customer.Customer, error) {
	customers, err := s.InMemoryStore.List(ctx, nil, func(i, j *customer.Customer) bool {
		return i.ID < j.ID
	})
	if err != nil {
		return nil, err
	}

	out := make([]*customer.Customer, len(customers))
	for i, c := range customers {
		cp := *c
		out[i] = &cp
	}
	return out, nil
}
