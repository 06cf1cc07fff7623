package repository

import (
	"context"

	"github.com/billfold/billfold/internal/domain/resource"
	"github.com/billfold/billfold/internal/kvstore"
	"github.com/billfold/billfold/internal/logger"
)

type resourceRepository struct {
	store  kvstore.Store
	logger *logger.Logger
}

// NewResourceRepository creates a record store backed catalog repository
func NewResourceRepository(store kvstore.Store, log *logger.Logger) resource.Repository {
	return &resourceRepository{store: store, logger: log}
}

func (r *resourceRepository) Upsert(ctx context.Context, res *resource.Resource) error {
	return r.store.Put(ctx, kvstore.CollectionResources, kvstore.Record{
		kvstore.KeyField: res.ID,
		"uuid":           res.ID,
		"name":           res.Name,
		"unit_price":     res.UnitPrice.String(),
	})
}

func (r *resourceRepository) List(ctx context.Context) ([]*resource.Resource, error) {
	records, err := r.store.LoadAll(ctx, kvstore.CollectionResources)
	if err != nil {
		return nil, err
	}

	resources := make([]*resource.Resource, 0, len(records))
	for _, record := range records {
		resources = append(resources, &resource.Resource{
			ID:        record.String("uuid"),
			Name:      record.String("name"),
			UnitPrice: record.Decimal("unit_price"),
		})
	}
	return resources, nil
}
