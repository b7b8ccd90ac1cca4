package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/pizzeria-pos/internal/domain/entity"
	"github.com/sangkips/pizzeria-pos/internal/domain/enum"
	"github.com/sangkips/pizzeria-pos/internal/domain/pizza"
	"github.com/sangkips/pizzeria-pos/internal/domain/repository"
	"github.com/sangkips/pizzeria-pos/pkg/apperror"
	"github.com/shopspring/decimal"
)

// ingredientCategories are the pricing bands of the ingredient catalog.
var ingredientCategories = map[string]bool{"A": true, "B": true, "C": true}

// PizzaService handles the ingredient catalog, base prices and pizza lines
type PizzaService struct {
	ingredientRepo repository.PizzaIngredientRepository
	basePriceRepo  repository.PizzaBasePriceRepository
}

// NewPizzaService creates a new pizza service
func NewPizzaService(ingredientRepo repository.PizzaIngredientRepository, basePriceRepo repository.PizzaBasePriceRepository) *PizzaService {
	return &PizzaService{
		ingredientRepo: ingredientRepo,
		basePriceRepo:  basePriceRepo,
	}
}

// IngredientInput represents the create/update ingredient input
type IngredientInput struct {
	Name     string
	Category string
	Prices   entity.SizePrices
}

// ListIngredients returns the ingredient catalog
func (s *PizzaService) ListIngredients(ctx context.Context) ([]entity.PizzaIngredient, error) {
	return s.ingredientRepo.List(ctx)
}

// CreateIngredient adds an ingredient. Names are unique ignoring case.
func (s *PizzaService) CreateIngredient(ctx context.Context, input *IngredientInput) (*entity.PizzaIngredient, error) {
	ingredient := &entity.PizzaIngredient{}
	if err := s.applyIngredientInput(ctx, ingredient, input); err != nil {
		return nil, err
	}
	if err := s.ingredientRepo.Create(ctx, ingredient); err != nil {
		return nil, err
	}
	return ingredient, nil
}

// UpdateIngredient changes an ingredient's name, band or prices
func (s *PizzaService) UpdateIngredient(ctx context.Context, id uuid.UUID, input *IngredientInput) (*entity.PizzaIngredient, error) {
	ingredient, err := s.ingredientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ingredient == nil {
		return nil, apperror.NewNotFoundError("Ingredient")
	}
	if err := s.applyIngredientInput(ctx, ingredient, input); err != nil {
		return nil, err
	}
	if err := s.ingredientRepo.Update(ctx, ingredient); err != nil {
		return nil, err
	}
	return ingredient, nil
}

// DeleteIngredient removes an ingredient from the catalog
func (s *PizzaService) DeleteIngredient(ctx context.Context, id uuid.UUID) error {
	ingredient, err := s.ingredientRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if ingredient == nil {
		return apperror.NewNotFoundError("Ingredient")
	}
	return s.ingredientRepo.Delete(ctx, id)
}

func (s *PizzaService) applyIngredientInput(ctx context.Context, ingredient *entity.PizzaIngredient, input *IngredientInput) error {
	name := strings.TrimSpace(input.Name)
	category := strings.ToUpper(strings.TrimSpace(input.Category))
	if category == "" {
		category = "A"
	}

	var fieldErrors []apperror.FieldError
	if name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	if !ingredientCategories[category] {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "category", Message: "Category must be A, B or C"})
	}
	for _, size := range enum.PizzaSizes {
		if input.Prices.For(size).IsNegative() {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "prices", Message: "Prices cannot be negative"})
			break
		}
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}

	existing, err := s.ingredientRepo.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != ingredient.ID {
		return apperror.NewFieldError("name", "An ingredient with this name already exists")
	}

	ingredient.Name = name
	ingredient.Category = category
	ingredient.Prices = input.Prices
	return nil
}

// ListBasePrices returns the price of a plain pizza per tier
func (s *PizzaService) ListBasePrices(ctx context.Context) ([]entity.PizzaBasePrice, error) {
	return s.basePriceRepo.List(ctx)
}

// UpdateBasePrices stores the given tier prices
func (s *PizzaService) UpdateBasePrices(ctx context.Context, prices map[enum.PizzaSize]decimal.Decimal) ([]entity.PizzaBasePrice, error) {
	for size, price := range prices {
		if !size.IsValid() {
			return nil, apperror.NewFieldError("size", "Unknown pizza size")
		}
		if !price.IsPositive() {
			return nil, apperror.NewFieldError("price", "Base price must be positive")
		}
	}
	for _, size := range enum.PizzaSizes {
		price, ok := prices[size]
		if !ok {
			continue
		}
		if err := s.basePriceRepo.Upsert(ctx, &entity.PizzaBasePrice{Size: size, Price: price}); err != nil {
			return nil, err
		}
	}
	return s.basePriceRepo.List(ctx)
}

// Catalog loads what the pizza builder prices from
func (s *PizzaService) Catalog(ctx context.Context) (pizza.Catalog, error) {
	ingredients, err := s.ingredientRepo.List(ctx)
	if err != nil {
		return pizza.Catalog{}, err
	}
	prices, err := s.basePriceRepo.List(ctx)
	if err != nil {
		return pizza.Catalog{}, err
	}

	catalog := pizza.Catalog{
		BasePrices:  make(map[enum.PizzaSize]decimal.Decimal, len(prices)),
		Ingredients: ingredients,
	}
	for _, p := range prices {
		catalog.BasePrices[p.Size] = p.Price
	}
	return catalog, nil
}

// PizzaInput is a finished builder session as sent by the till
type PizzaInput struct {
	Size        *enum.PizzaSize
	Ingredients []entity.IngredientSelection
	Extras      []entity.SelectedModifier
	Quantity    int
}

// BuildPizza replays the final selections through a builder and returns the
// priced cart line. Defaults of a special pizza missing from the input are
// taken off.
func (s *PizzaService) BuildPizza(ctx context.Context, item *entity.MenuItem, input *PizzaInput) (entity.CartItem, error) {
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return entity.CartItem{}, err
	}

	b, err := pizza.NewBuilder(*item, catalog)
	if err != nil {
		return entity.CartItem{}, pizzaError(err)
	}
	if input.Size != nil {
		if err := b.SetSize(*input.Size); err != nil {
			return entity.CartItem{}, pizzaError(err)
		}
	}
	for _, current := range b.Selections() {
		if !containsIngredient(input.Ingredients, current.Name) {
			if err := b.Toggle(current.Name, current.Half); err != nil {
				return entity.CartItem{}, pizzaError(err)
			}
		}
	}
	for _, sel := range input.Ingredients {
		if err := applySelection(b, sel); err != nil {
			return entity.CartItem{}, pizzaError(err)
		}
	}

	line, err := b.Build(input.Quantity, input.Extras)
	if err != nil {
		return entity.CartItem{}, pizzaError(err)
	}
	return line, nil
}

func containsIngredient(selections []entity.IngredientSelection, name string) bool {
	for _, sel := range selections {
		if strings.EqualFold(sel.Name, name) {
			return true
		}
	}
	return false
}

// applySelection brings one ingredient to the requested half. Defaults of a
// special pizza are already on the whole pizza, so re-sending them as full is
// a no-op rather than a toggle-off.
func applySelection(b *pizza.Builder, sel entity.IngredientSelection) error {
	for _, current := range b.Selections() {
		if strings.EqualFold(current.Name, sel.Name) && current.Half == sel.Half {
			return nil
		}
	}
	return b.Toggle(sel.Name, sel.Half)
}

func pizzaError(err error) error {
	switch {
	case errors.Is(err, pizza.ErrNotAPizza):
		return apperror.NewBadRequestError(err.Error())
	case errors.Is(err, pizza.ErrUnknownIngredient),
		errors.Is(err, pizza.ErrInvalidHalf),
		errors.Is(err, pizza.ErrInvalidSize):
		return apperror.NewFieldError("ingredients", err.Error())
	case errors.Is(err, pizza.ErrInvalidQuantity):
		return apperror.NewFieldError("quantity", err.Error())
	case errors.Is(err, pizza.ErrMissingBasePrice):
		return apperror.NewPreconditionError(err.Error())
	}
	return err
}
