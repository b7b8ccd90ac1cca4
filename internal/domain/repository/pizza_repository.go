package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/pizzeria-pos/internal/domain/entity"
)

// PizzaIngredientRepository defines the interface for ingredient catalog access
type PizzaIngredientRepository interface {
	Create(ctx context.Context, ingredient *entity.PizzaIngredient) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PizzaIngredient, error)
	// GetByName matches case-insensitively
	GetByName(ctx context.Context, name string) (*entity.PizzaIngredient, error)
	Update(ctx context.Context, ingredient *entity.PizzaIngredient) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.PizzaIngredient, error)
}

// PizzaBasePriceRepository defines the interface for the size price table
type PizzaBasePriceRepository interface {
	List(ctx context.Context) ([]entity.PizzaBasePrice, error)
	Upsert(ctx context.Context, price *entity.PizzaBasePrice) error
}
