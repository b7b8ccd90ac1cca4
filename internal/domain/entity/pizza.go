package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pizzeria-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SizePrices is a price per pizza tier.
type SizePrices struct {
	Small  decimal.Decimal `json:"small"`
	Medium decimal.Decimal `json:"medium"`
	Large  decimal.Decimal `json:"large"`
}

// For returns the price of the given tier.
func (p SizePrices) For(size enum.PizzaSize) decimal.Decimal {
	switch size {
	case enum.PizzaSizeMedium:
		return p.Medium
	case enum.PizzaSizeLarge:
		return p.Large
	default:
		return p.Small
	}
}

// PizzaIngredient is a topping with a full-pizza price per tier.
type PizzaIngredient struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:120;not null;uniqueIndex" json:"name"`
	Category  string         `gorm:"size:1;not null;default:'A'" json:"category"`
	Prices    SizePrices     `gorm:"type:jsonb;serializer:json" json:"prices"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new ingredient
func (i *PizzaIngredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PizzaIngredient model
func (PizzaIngredient) TableName() string {
	return "pizza_ingredients"
}

// PizzaBasePrice is the price of a plain custom pizza of one tier.
type PizzaBasePrice struct {
	Size      enum.PizzaSize  `gorm:"primaryKey;autoIncrement:false" json:"size"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName returns the table name for the PizzaBasePrice model
func (PizzaBasePrice) TableName() string {
	return "pizza_base_prices"
}

// IngredientSelection is one (ingredient, half) pair of a pizza.
type IngredientSelection struct {
	Name   string         `json:"name"`
	Prices SizePrices     `json:"prices"`
	Half   enum.PizzaHalf `json:"half"`
}

// PizzaConfiguration records how a pizza line was built and priced.
type PizzaConfiguration struct {
	Size        enum.PizzaSize        `json:"size"`
	BasePrice   decimal.Decimal       `json:"base_price"`
	Ingredients []IngredientSelection `json:"ingredients"`
	IsSpecial   bool                  `json:"is_special"`
	SpecialName string                `json:"special_name,omitempty"`
}
