package repository

import (
	"context"

	"github.com/billfold/billfold/internal/domain/customer"
	"github.com/billfold/billfold/internal/kvstore"
	"github.com/billfold/billfold/internal/logger"
)

type customerRepository struct {
	store  kvstore.Store
	logger *logger.Logger
}

// NewCustomerRepository creates a record store backed customer directory
func NewCustomerRepository(store kvstore.Store, log *logger.Logger) customer.Repository {
	return &customerRepository{store: store, logger: log}
}

func (r *customerRepository) Upsert(ctx context.Context, cust *customer.Customer) error {
	return r.store.Put(ctx, kvstore.CollectionCustomers, kvstore.Record{
		kvstore.KeyField: cust.ID,
		"uuid":           cust.ID,
		"name":           cust.Name,
		"email":          cust.Email,
	})
}

func (r *customerRepository) List(ctx context.Context) ([]*customer.Customer, error) {
	records, err := r.store.LoadAll(ctx, kvstore.CollectionCustomers)
	if err != nil {
		return nil, err
	}

	customers := make([]*customer.Customer, 0, len(records))
	for _, record := range records {
		customers = append(customers, &customer.Customer{
			ID:    record.String("uuid"),
			Name:  record.String("name"),
			Email: record.String("email"),
		})
	}
	return customers, nil
}
