package settings

import "context"

// Repository defines the interface for user settings persistence
type Repository interface {
	// Upsert inserts or fully replaces a settings record by user ID
	Upsert(ctx context.Context, settings *UserSettings) error

	// Get retrieves the settings for one user, or a not found error
	Get(ctx context.Context, userID string) (*UserSettings, error)
}
