package customer

import "context"

// Repository defines the interface for customer directory persistence
type Repository interface {
	// Upsert inserts or fully replaces a directory entry by ID
	Upsert(ctx context.Context, customer *Customer) error

	// List retrieves every directory entry
	List(ctx context.Context) ([]*Customer, error)
}
