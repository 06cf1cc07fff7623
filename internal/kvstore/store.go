package kvstore

import "context"

// Collection names owned by the remote record store.
const (
	CollectionInvoices     = "invoices"
	CollectionInvoiceItems = "invoice_items"
	CollectionResources    = "resources"
	CollectionCustomers    = "customers"
	CollectionUserSettings = "user_settings"
)

// Record is one raw document as stored in a collection. Every record
// carries its identity under the "key" field.
type Record map[string]any

// KeyField is the identity field present on every record.
const KeyField = "key"

// Key returns the record's identity, or an empty string.
func (r Record) Key() string {
	if k, ok := r[KeyField].(string); ok {
		return k
	}
	return ""
}

// Store is the adapter contract for the remote record store. The core
// engines never talk to the store directly; repositories do, and they
// operate on full-collection snapshots returned by LoadAll.
type Store interface {
	// LoadAll returns every record in a collection, following the
	// pagination cursor until the collection is exhausted. Callers may
	// rely on the result being the complete collection.
	LoadAll(ctx context.Context, collection string) ([]Record, error)

	// Put inserts or fully replaces a record, keyed by its "key" field.
	Put(ctx context.Context, collection string, record Record) error

	// Update merges fields into an existing record.
	Update(ctx context.Context, collection, key string, fields Record) error

	// Delete removes a record.
	Delete(ctx context.Context, collection, key string) error
}
