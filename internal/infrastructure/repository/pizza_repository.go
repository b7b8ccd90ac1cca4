package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/pizzeria-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/pizzeria-pos/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type pizzaIngredientRepository struct {
	db *gorm.DB
}

// NewPizzaIngredientRepository creates a new pizza ingredient repository
func NewPizzaIngredientRepository(db *gorm.DB) domainRepo.PizzaIngredientRepository {
	return &pizzaIngredientRepository{db: db}
}

func (r *pizzaIngredientRepository) Create(ctx context.Context, ingredient *entity.PizzaIngredient) error {
	return r.db.WithContext(ctx).Create(ingredient).Error
}

func (r *pizzaIngredientRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PizzaIngredient, error) {
	var ingredient entity.PizzaIngredient
	err := r.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ingredient, err
}

func (r *pizzaIngredientRepository) GetByName(ctx context.Context, name string) (*entity.PizzaIngredient, error) {
	var ingredient entity.PizzaIngredient
	err := r.db.WithContext(ctx).First(&ingredient, "LOWER(name) = LOWER(?)", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ingredient, err
}

func (r *pizzaIngredientRepository) Update(ctx context.Context, ingredient *entity.PizzaIngredient) error {
	return r.db.WithContext(ctx).Save(ingredient).Error
}

func (r *pizzaIngredientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.PizzaIngredient{}, "id = ?", id).Error
}

func (r *pizzaIngredientRepository) List(ctx context.Context) ([]entity.PizzaIngredient, error) {
	var ingredients []entity.PizzaIngredient
	err := r.db.WithContext(ctx).Order("category ASC").Order("name ASC").Find(&ingredients).Error
	return ingredients, err
}

type pizzaBasePriceRepository struct {
	db *gorm.DB
}

// NewPizzaBasePriceRepository creates a new base price repository
func NewPizzaBasePriceRepository(db *gorm.DB) domainRepo.PizzaBasePriceRepository {
	return &pizzaBasePriceRepository{db: db}
}

func (r *pizzaBasePriceRepository) List(ctx context.Context) ([]entity.PizzaBasePrice, error) {
	var prices []entity.PizzaBasePrice
	err := r.db.WithContext(ctx).Order("size ASC").Find(&prices).Error
	return prices, err
}

func (r *pizzaBasePriceRepository) Upsert(ctx context.Context, price *entity.PizzaBasePrice) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "size"}},
		DoUpdates: clause.AssignmentColumns([]string{"price", "updated_at"}),
	}).Create(price).Error
}
