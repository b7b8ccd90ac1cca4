// Package pizza builds priced half-and-half pizza lines.
package pizza

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/pizzeria-pos/internal/domain/entity"
	"github.com/sangkips/pizzeria-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Synthetic modifier group titles. Tickets abbreviate them by keyword.
const (
	GroupSize      = "Tamaño"
	GroupWhole     = "🍕 TODA LA PIZZA"
	GroupLeftHalf  = "◐ MITAD IZQUIERDA"
	GroupRightHalf = "◑ MITAD DERECHA"
	GroupBase      = "✓ INGREDIENTES BASE"
)

var (
	ErrNotAPizza         = errors.New("menu item is not a pizza")
	ErrUnknownIngredient = errors.New("unknown pizza ingredient")
	ErrInvalidHalf       = errors.New("invalid pizza half")
	ErrInvalidSize       = errors.New("invalid pizza size")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrMissingBasePrice  = errors.New("no base price for pizza size")
)

var two = decimal.NewFromInt(2)

// Catalog is the ingredient list and base-price table a builder prices from.
type Catalog struct {
	BasePrices  map[enum.PizzaSize]decimal.Decimal
	Ingredients []entity.PizzaIngredient
}

func (c Catalog) ingredient(name string) (entity.PizzaIngredient, bool) {
	for _, ing := range c.Ingredients {
		if strings.EqualFold(ing.Name, name) {
			return ing, true
		}
	}
	return entity.PizzaIngredient{}, false
}

// Builder holds the in-progress configuration of one pizza line. It keeps
// exactly one selection per ingredient name.
type Builder struct {
	item       entity.MenuItem
	catalog    Catalog
	size       enum.PizzaSize
	selections []entity.IngredientSelection
}

// NewBuilder starts a configuration for item. Special pizzas start at the
// large tier with their default ingredients on the whole pizza; custom pizzas
// start at medium with nothing on them.
func NewBuilder(item entity.MenuItem, catalog Catalog) (*Builder, error) {
	if !item.IsPizza && !item.IsSpecialPizza {
		return nil, ErrNotAPizza
	}

	b := &Builder{item: item, catalog: catalog, size: enum.PizzaSizeMedium}
	if item.IsSpecialPizza {
		b.size = enum.PizzaSizeLarge
		for _, name := range item.DefaultIngredients {
			sel := entity.IngredientSelection{Name: name, Half: enum.PizzaHalfFull}
			if ing, ok := catalog.ingredient(name); ok {
				sel.Name = ing.Name
				sel.Prices = ing.Prices
			}
			b.selections = append(b.selections, sel)
		}
	}
	return b, nil
}

// Size returns the active tier.
func (b *Builder) Size() enum.PizzaSize {
	return b.size
}

// SetSize changes the tier of a custom pizza. Special pizzas stay large.
func (b *Builder) SetSize(size enum.PizzaSize) error {
	if !size.IsValid() {
		return ErrInvalidSize
	}
	if b.item.IsSpecialPizza {
		return nil
	}
	b.size = size
	return nil
}

// Toggle applies one ingredient tap at the given half: a new ingredient is
// added, the same half again removes it, a different half moves it.
func (b *Builder) Toggle(name string, half enum.PizzaHalf) error {
	if !half.IsValid() {
		return ErrInvalidHalf
	}

	for i, sel := range b.selections {
		if !strings.EqualFold(sel.Name, name) {
			continue
		}
		if sel.Half == half {
			b.selections = append(b.selections[:i], b.selections[i+1:]...)
		} else {
			b.selections[i].Half = half
		}
		return nil
	}

	ing, ok := b.catalog.ingredient(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownIngredient, name)
	}
	b.selections = append(b.selections, entity.IngredientSelection{
		Name:   ing.Name,
		Prices: ing.Prices,
		Half:   half,
	})
	return nil
}

// Selections returns a copy of the current (ingredient, half) pairs.
func (b *Builder) Selections() []entity.IngredientSelection {
	return append([]entity.IngredientSelection(nil), b.selections...)
}

// BasePrice is the fixed price of a special pizza or the tier price of a
// custom one.
func (b *Builder) BasePrice() (decimal.Decimal, error) {
	if b.item.IsSpecialPizza {
		return b.item.Price, nil
	}
	price, ok := b.catalog.BasePrices[b.size]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrMissingBasePrice, b.size)
	}
	return price, nil
}

// Configuration snapshots the builder state.
func (b *Builder) Configuration() (entity.PizzaConfiguration, error) {
	base, err := b.BasePrice()
	if err != nil {
		return entity.PizzaConfiguration{}, err
	}
	cfg := entity.PizzaConfiguration{
		Size:        b.size,
		BasePrice:   base,
		Ingredients: b.Selections(),
		IsSpecial:   b.item.IsSpecialPizza,
	}
	if b.item.IsSpecialPizza {
		cfg.SpecialName = b.item.Name
	}
	return cfg, nil
}

// UnitPrice is the base price plus ingredient surcharges, without extras.
func (b *Builder) UnitPrice() (decimal.Decimal, error) {
	cfg, err := b.Configuration()
	if err != nil {
		return decimal.Zero, err
	}
	return UnitPrice(cfg, b.item), nil
}

// Build produces the cart line. Extras keep their own prices as modifiers;
// the descriptive size and ingredient groups are priced at zero since their
// cost is already folded into the line price.
func (b *Builder) Build(quantity int, extras []entity.SelectedModifier) (entity.CartItem, error) {
	if quantity < 1 {
		return entity.CartItem{}, ErrInvalidQuantity
	}
	cfg, err := b.Configuration()
	if err != nil {
		return entity.CartItem{}, err
	}

	item := entity.CartItem{
		ID:                uuid.NewString(),
		MenuItemID:        b.item.ID.String(),
		Name:              DisplayName(cfg),
		Price:             UnitPrice(cfg, b.item),
		Quantity:          quantity,
		SelectedModifiers: Modifiers(cfg, b.item, extras),
		Pizza:             &cfg,
	}
	if b.item.IsSpecialPizza {
		item.Notes = b.item.Description
	}
	return item, nil
}

// IngredientCost sums the surcharges of cfg: half price for a single half,
// full price for the whole pizza, nothing for a special pizza's defaults.
func IngredientCost(cfg entity.PizzaConfiguration, item entity.MenuItem) decimal.Decimal {
	total := decimal.Zero
	for _, sel := range cfg.Ingredients {
		if cfg.IsSpecial && item.HasDefaultIngredient(sel.Name) {
			continue
		}
		price := sel.Prices.For(cfg.Size)
		if sel.Half.IsSplit() {
			price = price.Div(two)
		}
		total = total.Add(price)
	}
	return total
}

// UnitPrice is cfg.BasePrice plus IngredientCost.
func UnitPrice(cfg entity.PizzaConfiguration, item entity.MenuItem) decimal.Decimal {
	return cfg.BasePrice.Add(IngredientCost(cfg, item))
}

// DisplayName is "<Special> (<Size>)" or "Pizza <Size>".
func DisplayName(cfg entity.PizzaConfiguration) string {
	if cfg.IsSpecial && cfg.SpecialName != "" {
		return fmt.Sprintf("%s (%s)", cfg.SpecialName, cfg.Size)
	}
	return "Pizza " + cfg.Size.String()
}

// Modifiers flattens cfg into display modifiers in ticket order: size, whole,
// left half, right half, base ingredients, then extras. Empty groups are
// skipped.
func Modifiers(cfg entity.PizzaConfiguration, item entity.MenuItem, extras []entity.SelectedModifier) []entity.SelectedModifier {
	var whole, left, right []string
	for _, sel := range cfg.Ingredients {
		switch sel.Half {
		case enum.PizzaHalfFull:
			whole = append(whole, sel.Name)
		case enum.PizzaHalfLeft:
			left = append(left, sel.Name)
		case enum.PizzaHalfRight:
			right = append(right, sel.Name)
		}
	}

	mods := []entity.SelectedModifier{descriptive(GroupSize, cfg.Size.String())}
	if len(whole) > 0 {
		mods = append(mods, descriptive(GroupWhole, strings.Join(whole, ", ")))
	}
	if len(left) > 0 {
		mods = append(mods, descriptive(GroupLeftHalf, strings.Join(left, ", ")))
	}
	if len(right) > 0 {
		mods = append(mods, descriptive(GroupRightHalf, strings.Join(right, ", ")))
	}
	if cfg.IsSpecial && len(item.DefaultIngredients) > 0 {
		mods = append(mods, descriptive(GroupBase, strings.Join(item.DefaultIngredients, ", ")))
	}
	return append(mods, extras...)
}

func descriptive(group, text string) entity.SelectedModifier {
	return entity.SelectedModifier{
		GroupTitle: group,
		Option:     entity.ModifierOption{Name: text, Price: decimal.Zero},
	}
}
