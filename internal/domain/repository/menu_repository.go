package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/pizzeria-pos/internal/domain/entity"
)

// CategoryRepository defines the interface for menu category data access
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns every category with its items, in menu order
	List(ctx context.Context) ([]entity.Category, error)
}

// MenuItemRepository defines the interface for menu item data access
type MenuItemRepository interface {
	Create(ctx context.Context, item *entity.MenuItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error)
	GetByName(ctx context.Context, categoryID uuid.UUID, name string) (*entity.MenuItem, error)
	Update(ctx context.Context, item *entity.MenuItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]entity.MenuItem, error)
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
}

// ModifierGroupRepository defines the interface for modifier group data access
type ModifierGroupRepository interface {
	Create(ctx context.Context, group *entity.ModifierGroup) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ModifierGroup, error)
	GetByTitle(ctx context.Context, title string) (*entity.ModifierGroup, error)
	// GetByTitles resolves several groups in one query, keyed by title
	GetByTitles(ctx context.Context, titles []string) (map[string]entity.ModifierGroup, error)
	Update(ctx context.Context, group *entity.ModifierGroup) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.ModifierGroup, error)
}
