package repository

import (
	"context"

	"github.com/billfold/billfold/internal/domain/settings"
	ierr "github.com/billfold/billfold/internal/errors"
	"github.com/billfold/billfold/internal/kvstore"
	"github.com/billfold/billfold/internal/logger"
)

type settingsRepository struct {
	store  kvstore.Store
	logger *logger.Logger
}

// NewSettingsRepository creates a record store backed settings repository
func NewSettingsRepository(store kvstore.Store, log *logger.Logger) settings.Repository {
	return &settingsRepository{store: store, logger: log}
}

func (r *settingsRepository) Upsert(ctx context.Context, s *settings.UserSettings) error {
	return r.store.Put(ctx, kvstore.CollectionUserSettings, kvstore.Record{
		kvstore.KeyField: s.ID,
		"uuid":           s.ID,
		"name":           s.Name,
		"currency":       s.Currency,
		"created_date":   kvstore.FormatTime(s.CreatedAt),
	})
}

func (r *settingsRepository) Get(ctx context.Context, userID string) (*settings.UserSettings, error) {
	records, err := r.store.LoadAll(ctx, kvstore.CollectionUserSettings)
	if err != nil {
		return nil, err
	}

	for _, record := range records {
		if record.String("uuid") == userID {
			return &settings.UserSettings{
				ID:        record.String("uuid"),
				Name:      record.String("name"),
				Currency:  record.String("currency"),
				CreatedAt: record.Time("created_date"),
			}, nil
		}
	}

	return nil, ierr.NewError("user settings not found").
		WithHintf("No settings saved for user %s yet", userID).
		Mark(ierr.ErrNotFound)
}
