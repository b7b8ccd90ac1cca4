package request

import (
	"github.com/sangkips/pizzeria-pos/internal/domain/enum"
)

// ModifierChoiceRequest is one picked option
type ModifierChoiceRequest struct {
	Group  string `json:"group" binding:"required"`
	Option string `json:"option" binding:"required"`
}

// AddItemRequest adds a plain menu item to the cart
type AddItemRequest struct {
	MenuItemID string                  `json:"menu_item_id" binding:"required,uuid"`
	Modifiers  []ModifierChoiceRequest `json:"modifiers" binding:"omitempty,dive"`
	Quantity   int                     `json:"quantity" binding:"required,min=1"`
	Notes      string                  `json:"notes" binding:"max=255"`
}

// IngredientRequest places an ingredient on a half of the pizza
type IngredientRequest struct {
	Name string         `json:"name" binding:"required"`
	Half enum.PizzaHalf `json:"half" binding:"required,oneof=left right full"`
}

// AddPizzaRequest adds a configured pizza to the cart
type AddPizzaRequest struct {
	MenuItemID  string                  `json:"menu_item_id" binding:"required,uuid"`
	Size        *enum.PizzaSize         `json:"size"`
	Ingredients []IngredientRequest     `json:"ingredients" binding:"omitempty,dive"`
	Extras      []ModifierChoiceRequest `json:"extras" binding:"omitempty,dive"`
	Quantity    int                     `json:"quantity" binding:"required,min=1"`
}

// ReplaceItemRequest edits an unserved cart line
type ReplaceItemRequest struct {
	Modifiers []ModifierChoiceRequest `json:"modifiers" binding:"omitempty,dive"`
	Quantity  int                     `json:"quantity" binding:"required,min=1"`
	Notes     string                  `json:"notes" binding:"max=255"`
}

// UpdateQuantityRequest sets a line's quantity; zero asks for removal
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CustomerRequest is the customer draft of the open order
type CustomerRequest struct {
	Name          string `json:"name" binding:"max=160"`
	Phone         string `json:"phone" binding:"max=40"`
	PaymentMethod string `json:"payment_method" binding:"max=60"`
	Instructions  string `json:"instructions" binding:"max=500"`
	Takeaway      bool   `json:"takeaway"`
}

// FinalizeRequest closes the open order, paid or pending
type FinalizeRequest struct {
	Paid          bool   `json:"paid"`
	PaymentMethod string `json:"payment_method" binding:"max=60"`
}
