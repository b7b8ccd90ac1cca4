package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/pizzeria-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/pizzeria-pos/internal/domain/repository"
	"gorm.io/gorm"
)

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) domainRepo.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var category entity.Category
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	var category entity.Category
	err := r.db.WithContext(ctx).First(&category, "LOWER(name) = LOWER(?)", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	return r.db.WithContext(ctx).Omit("Items").Save(category).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Category{}, "id = ?", id).Error
}

func (r *categoryRepository) List(ctx context.Context) ([]entity.Category, error) {
	var categories []entity.Category
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		Order("sort_order ASC").Order("name ASC").
		Find(&categories).Error
	return categories, err
}

type menuItemRepository struct {
	db *gorm.DB
}

// NewMenuItemRepository creates a new menu item repository
func NewMenuItemRepository(db *gorm.DB) domainRepo.MenuItemRepository {
	return &menuItemRepository{db: db}
}

func (r *menuItemRepository) Create(ctx context.Context, item *entity.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *menuItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	var item entity.MenuItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *menuItemRepository) GetByName(ctx context.Context, categoryID uuid.UUID, name string) (*entity.MenuItem, error) {
	var item entity.MenuItem
	err := r.db.WithContext(ctx).
		Where("category_id = ? AND LOWER(name) = LOWER(?)", categoryID, name).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *menuItemRepository) Update(ctx context.Context, item *entity.MenuItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *menuItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.MenuItem{}, "id = ?", id).Error
}

func (r *menuItemRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("name ASC").
		Find(&items).Error
	return items, err
}

func (r *menuItemRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.MenuItem{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}

type modifierGroupRepository struct {
	db *gorm.DB
}

// NewModifierGroupRepository creates a new modifier group repository
func NewModifierGroupRepository(db *gorm.DB) domainRepo.ModifierGroupRepository {
	return &modifierGroupRepository{db: db}
}

func (r *modifierGroupRepository) Create(ctx context.Context, group *entity.ModifierGroup) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *modifierGroupRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ModifierGroup, error) {
	var group entity.ModifierGroup
	err := r.db.WithContext(ctx).First(&group, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &group, err
}

func (r *modifierGroupRepository) GetByTitle(ctx context.Context, title string) (*entity.ModifierGroup, error) {
	var group entity.ModifierGroup
	err := r.db.WithContext(ctx).First(&group, "title = ?", title).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &group, err
}

func (r *modifierGroupRepository) GetByTitles(ctx context.Context, titles []string) (map[string]entity.ModifierGroup, error) {
	out := make(map[string]entity.ModifierGroup, len(titles))
	if len(titles) == 0 {
		return out, nil
	}
	var groups []entity.ModifierGroup
	if err := r.db.WithContext(ctx).Where("title IN ?", titles).Find(&groups).Error; err != nil {
		return nil, err
	}
	for _, g := range groups {
		out[g.Title] = g
	}
	return out, nil
}

func (r *modifierGroupRepository) Update(ctx context.Context, group *entity.ModifierGroup) error {
	return r.db.WithContext(ctx).Save(group).Error
}

func (r *modifierGroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.ModifierGroup{}, "id = ?", id).Error
}

func (r *modifierGroupRepository) List(ctx context.Context) ([]entity.ModifierGroup, error) {
	var groups []entity.ModifierGroup
	err := r.db.WithContext(ctx).Order("title ASC").Find(&groups).Error
	return groups, err
}
