// Package cart is the in-progress order of the till session.
package cart

import (
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/pizzeria-pos/internal/domain/entity"
	"github.com/sangkips/pizzeria-pos/internal/domain/pricing"
	"github.com/shopspring/decimal"
)

var (
	ErrItemNotFound     = errors.New("cart item not found")
	ErrServedItemLocked = errors.New("served items cannot change quantity")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrEmptyCart        = errors.New("cart is empty")
)

// QuantityOutcome says what an UpdateQuantity call did.
type QuantityOutcome int

const (
	QuantityUpdated QuantityOutcome = iota
	// QuantityRemovalRequested means the caller asked for zero or less and
	// must run the removal flow instead.
	QuantityRemovalRequested
)

// Cart holds ordered lines, the customer draft and the id of the pending
// sale being edited, if any.
type Cart struct {
	Items           []entity.CartItem      `json:"items"`
	Customer        entity.CustomerDetails `json:"customer"`
	EditingReportID *uuid.UUID             `json:"editing_report_id,omitempty"`
}

// New returns an empty cart with a blank customer draft.
func New() *Cart {
	return &Cart{Items: []entity.CartItem{}, Customer: entity.NewCustomerDetails()}
}

// IsEditing reports whether the cart was loaded from a pending sale.
func (c *Cart) IsEditing() bool {
	return c.EditingReportID != nil
}

// Add appends item. A plain line merges into an unserved plain line of the
// same name; lines with modifiers or a pizza configuration never merge.
func (c *Cart) Add(item entity.CartItem) (entity.CartItem, error) {
	if item.Quantity < 1 {
		return entity.CartItem{}, ErrInvalidQuantity
	}

	if mergeable(item) {
		for i := range c.Items {
			existing := &c.Items[i]
			if mergeable(*existing) && !existing.IsServed && existing.Name == item.Name {
				existing.Quantity += item.Quantity
				return *existing, nil
			}
		}
	}

	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.IsServed = false
	c.Items = append(c.Items, item)
	return item, nil
}

func mergeable(item entity.CartItem) bool {
	return !item.HasModifiers() && item.Pizza == nil
}

// Find returns the line with the given id.
func (c *Cart) Find(id string) (entity.CartItem, bool) {
	i := c.index(id)
	if i < 0 {
		return entity.CartItem{}, false
	}
	return c.Items[i], true
}

func (c *Cart) index(id string) int {
	for i := range c.Items {
		if c.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// UpdateQuantity sets the quantity of an unserved line. Served lines are
// left untouched and ErrServedItemLocked is returned.
func (c *Cart) UpdateQuantity(id string, quantity int) (QuantityOutcome, error) {
	i := c.index(id)
	if i < 0 {
		return QuantityUpdated, ErrItemNotFound
	}
	if c.Items[i].IsServed {
		return QuantityUpdated, ErrServedItemLocked
	}
	if quantity <= 0 {
		return QuantityRemovalRequested, nil
	}
	c.Items[i].Quantity = quantity
	return QuantityUpdated, nil
}

// RemovalNeedsAuth reports whether removing the line must be approved with
// an admin PIN first.
func (c *Cart) RemovalNeedsAuth(id string) (bool, error) {
	i := c.index(id)
	if i < 0 {
		return false, ErrItemNotFound
	}
	return c.Items[i].IsServed || c.IsEditing(), nil
}

// Remove deletes the line unconditionally. Callers gate it first.
func (c *Cart) Remove(id string) (entity.CartItem, error) {
	i := c.index(id)
	if i < 0 {
		return entity.CartItem{}, ErrItemNotFound
	}
	removed := c.Items[i]
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	return removed, nil
}

// Replace swaps an unserved line for an edited version, keeping its id and
// position.
func (c *Cart) Replace(id string, item entity.CartItem) (entity.CartItem, error) {
	i := c.index(id)
	if i < 0 {
		return entity.CartItem{}, ErrItemNotFound
	}
	if c.Items[i].IsServed {
		return entity.CartItem{}, ErrServedItemLocked
	}
	if item.Quantity < 1 {
		return entity.CartItem{}, ErrInvalidQuantity
	}
	item.ID = id
	item.IsServed = false
	c.Items[i] = item
	return item, nil
}

// Clear wipes lines, the editing link and the customer draft.
func (c *Cart) Clear() {
	c.Items = []entity.CartItem{}
	c.Customer = entity.NewCustomerDetails()
	c.EditingReportID = nil
}

// LoadForEdit replaces the cart with the lines of a pending sale, all served.
func (c *Cart) LoadForEdit(record *entity.SaleRecord, customer entity.CustomerDetails) {
	items := make([]entity.CartItem, len(record.Order))
	copy(items, record.Order)
	for i := range items {
		items[i].IsServed = true
	}
	id := record.ID
	c.Items = items
	c.Customer = customer
	c.EditingReportID = &id
}

// Snapshot copies the lines with every one marked served.
func (c *Cart) Snapshot() []entity.CartItem {
	out := make([]entity.CartItem, len(c.Items))
	copy(out, c.Items)
	for i := range out {
		out[i].IsServed = true
	}
	return out
}

// Served returns the lines already sent with a previous finalize.
func (c *Cart) Served() []entity.CartItem {
	return c.filter(true)
}

// Unserved returns the lines added since the last finalize.
func (c *Cart) Unserved() []entity.CartItem {
	return c.filter(false)
}

func (c *Cart) filter(served bool) []entity.CartItem {
	var out []entity.CartItem
	for _, it := range c.Items {
		if it.IsServed == served {
			out = append(out, it)
		}
	}
	return out
}

// Total is the sum of every line total.
func (c *Cart) Total() decimal.Decimal {
	return pricing.CartTotal(c.Items)
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
