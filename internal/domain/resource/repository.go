package resource

import "context"

// Repository defines the interface for catalog persistence operations
type Repository interface {
	// Upsert inserts or fully replaces a catalog entry by ID
	Upsert(ctx context.Context, resource *Resource) error

	// List retrieves every catalog entry
	List(ctx context.Context) ([]*Resource, error)
}
