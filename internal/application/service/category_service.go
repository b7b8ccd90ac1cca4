package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/pizzeria-pos/internal/domain/entity"
	"github.com/sangkips/pizzeria-pos/internal/domain/repository"
	"github.com/sangkips/pizzeria-pos/pkg/apperror"
	"github.com/shopspring/decimal"
)

// CategoryService handles menu categories and their items
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	itemRepo     repository.MenuItemRepository
	groupRepo    repository.ModifierGroupRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(
	categoryRepo repository.CategoryRepository,
	itemRepo repository.MenuItemRepository,
	groupRepo repository.ModifierGroupRepository,
) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		itemRepo:     itemRepo,
		groupRepo:    groupRepo,
	}
}

// CategoryInput represents the create/update category input
type CategoryInput struct {
	Name      string
	SortOrder int
}

// ListMenu returns every category with its items
func (s *CategoryService) ListMenu(ctx context.Context) ([]entity.Category, error) {
	return s.categoryRepo.List(ctx)
}

// CreateCategory creates a new category
func (s *CategoryService) CreateCategory(ctx context.Context, input *CategoryInput) (*entity.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewFieldError("name", "Name is required")
	}

	existing, err := s.categoryRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Category with this name already exists")
	}

	category := &entity.Category{
		Name:      name,
		SortOrder: input.SortOrder,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// GetCategory retrieves a category by ID
func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}
	return category, nil
}

// UpdateCategory renames or reorders a category
func (s *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, input *CategoryInput) (*entity.Category, error) {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewFieldError("name", "Name is required")
	}
	if name != category.Name {
		existing, err := s.categoryRepo.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != category.ID {
			return nil, apperror.NewConflictError("Category with this name already exists")
		}
	}

	category.Name = name
	category.SortOrder = input.SortOrder
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory deletes an empty category
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}

	count, err := s.itemRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.NewPreconditionError("Category still has menu items; remove them first")
	}

	return s.categoryRepo.Delete(ctx, id)
}

// MenuItemInput represents the create/update menu item input
type MenuItemInput struct {
	CategoryID         uuid.UUID
	Name               string
	Description        string
	Price              decimal.Decimal
	Available          bool
	ModifierGroups     []entity.ModifierAssignment
	IsPizza            bool
	IsSpecialPizza     bool
	DefaultIngredients []string
}

// GetMenuItem retrieves a menu item by ID
func (s *CategoryService) GetMenuItem(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Menu item")
	}
	return item, nil
}

// CreateMenuItem adds an item to a category
func (s *CategoryService) CreateMenuItem(ctx context.Context, input *MenuItemInput) (*entity.MenuItem, error) {
	item := &entity.MenuItem{}
	if err := s.applyMenuItemInput(ctx, item, input); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateMenuItem replaces the fields of a menu item
func (s *CategoryService) UpdateMenuItem(ctx context.Context, id uuid.UUID, input *MenuItemInput) (*entity.MenuItem, error) {
	item, err := s.GetMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyMenuItemInput(ctx, item, input); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteMenuItem deletes a menu item
func (s *CategoryService) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetMenuItem(ctx, id); err != nil {
		return err
	}
	return s.itemRepo.Delete(ctx, id)
}

func (s *CategoryService) applyMenuItemInput(ctx context.Context, item *entity.MenuItem, input *MenuItemInput) error {
	name := strings.TrimSpace(input.Name)
	var fieldErrors []apperror.FieldError
	if name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	if input.Price.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "price", Message: "Price cannot be negative"})
	}
	if input.IsSpecialPizza && !input.IsPizza {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "is_special_pizza", Message: "A special pizza must also be a pizza"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}

	if _, err := s.GetCategory(ctx, input.CategoryID); err != nil {
		return err
	}

	existing, err := s.itemRepo.GetByName(ctx, input.CategoryID, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != item.ID {
		return apperror.NewConflictError("An item with this name already exists in the category")
	}

	if len(input.ModifierGroups) > 0 {
		titles := make([]string, len(input.ModifierGroups))
		for i, a := range input.ModifierGroups {
			titles[i] = a.Group
		}
		groups, err := s.groupRepo.GetByTitles(ctx, titles)
		if err != nil {
			return err
		}
		for _, title := range titles {
			if _, ok := groups[title]; !ok {
				return apperror.NewFieldError("modifier_groups", "Unknown modifier group "+title)
			}
		}
	}

	item.CategoryID = input.CategoryID
	item.Name = name
	item.Description = strings.TrimSpace(input.Description)
	item.Price = input.Price
	item.Available = input.Available
	item.ModifierGroups = input.ModifierGroups
	item.IsPizza = input.IsPizza
	item.IsSpecialPizza = input.IsSpecialPizza
	item.DefaultIngredients = nil
	if input.IsSpecialPizza {
		item.DefaultIngredients = input.DefaultIngredients
	}
	return nil
}
