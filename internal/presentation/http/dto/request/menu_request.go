package request

import (
	"github.com/sangkips/pizzeria-pos/internal/domain/entity"
	"github.com/sangkips/pizzeria-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// CategoryRequest creates or updates a menu category
type CategoryRequest struct {
	Name      string `json:"name" binding:"required,max=120"`
	SortOrder int    `json:"sort_order"`
}

// MenuItemRequest creates or updates a menu item. Modifier groups accept a
// bare group title or a {group, label} object.
type MenuItemRequest struct {
	CategoryID         string                      `json:"category_id" binding:"required,uuid"`
	Name               string                      `json:"name" binding:"required,max=160"`
	Description        string                      `json:"description"`
	Price              decimal.Decimal             `json:"price"`
	Available          *bool                       `json:"available"`
	ModifierGroups     []entity.ModifierAssignment `json:"modifier_groups"`
	IsPizza            bool                        `json:"is_pizza"`
	IsSpecialPizza     bool                        `json:"is_special_pizza"`
	DefaultIngredients []string                    `json:"default_ingredients"`
}

// ModifierGroupRequest creates or updates a modifier group
type ModifierGroupRequest struct {
	Title         string                  `json:"title" binding:"required,max=160"`
	SelectionType enum.SelectionType      `json:"selection_type" binding:"required,oneof=single multiple"`
	MinSelection  int                     `json:"min_selection" binding:"min=0"`
	MaxSelection  int                     `json:"max_selection" binding:"min=0"`
	Options       []entity.ModifierOption `json:"options"`
}

// IngredientRequestBody creates or updates a pizza ingredient
type IngredientRequestBody struct {
	Name     string            `json:"name" binding:"required,max=120"`
	Category string            `json:"category" binding:"omitempty,oneof=A B C a b c"`
	Prices   entity.SizePrices `json:"prices"`
}

// BasePriceRequest sets the plain pizza price of one or more tiers
type BasePriceRequest struct {
	Prices []BasePriceEntry `json:"prices" binding:"required,min=1,dive"`
}

// BasePriceEntry is the price of one tier
type BasePriceEntry struct {
	Size  enum.PizzaSize  `json:"size"`
	Price decimal.Decimal `json:"price"`
}
