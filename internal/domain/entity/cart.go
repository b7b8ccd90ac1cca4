package entity

import (
	"strconv"
	"strings"

	"github.com/sangkips/pizzeria-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// SelectedModifier is a flattened modifier attached to a cart line.
type SelectedModifier struct {
	GroupTitle string         `json:"group_title"`
	Option     ModifierOption `json:"option"`
}

// CartItem is one line of an order. Totals are always derived from Price and
// SelectedModifiers; Pizza only documents how Price was built.
type CartItem struct {
	ID                string              `json:"id"`
	MenuItemID        string              `json:"menu_item_id,omitempty"`
	Name              string              `json:"name"`
	Price             decimal.Decimal     `json:"price"`
	Quantity          int                 `json:"quantity"`
	SelectedModifiers []SelectedModifier  `json:"selected_modifiers"`
	IsServed          bool                `json:"is_served"`
	Notes             string              `json:"notes,omitempty"`
	Pizza             *PizzaConfiguration `json:"pizza,omitempty"`
}

// HasModifiers reports whether the line carries any modifier.
func (c *CartItem) HasModifiers() bool {
	return len(c.SelectedModifiers) > 0
}

// CustomerDetails is the draft reference data of the active order.
type CustomerDetails struct {
	Name          string `json:"name"`
	Phone         string `json:"phone,omitempty"`
	PaymentMethod string `json:"payment_method"`
	Instructions  string `json:"instructions,omitempty"`
	Takeaway      bool   `json:"takeaway,omitempty"`
}

// NewCustomerDetails returns the blank draft used after a clear.
func NewCustomerDetails() CustomerDetails {
	return CustomerDetails{PaymentMethod: enum.DefaultPaymentMethod}
}

// TableNumber parses the reference as a table number, 0 when it is not numeric.
func (c CustomerDetails) TableNumber() int {
	n, err := strconv.Atoi(strings.TrimSpace(c.Name))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
