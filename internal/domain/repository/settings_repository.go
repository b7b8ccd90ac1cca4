package repository

import (
	"context"

	"github.com/sangkips/pizzeria-pos/internal/domain/entity"
)

// SettingsRepository defines the interface for the single settings row
type SettingsRepository interface {
	// Get returns nil, nil when the row has not been written yet
	Get(ctx context.Context) (*entity.AppSettings, error)
	Save(ctx context.Context, settings *entity.AppSettings) error
}
