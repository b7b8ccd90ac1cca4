package entity

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pizzeria-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Category groups menu items on the menu screen.
type Category struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:120;not null;uniqueIndex" json:"name"`
	SortOrder int            `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Items []MenuItem `gorm:"foreignKey:CategoryID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// MenuItem is a sellable product. Pizza items are configured through the
// pizza builder; special pizzas carry baked-in default ingredients.
type MenuItem struct {
	ID                 uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	CategoryID         uuid.UUID            `gorm:"type:uuid;not null;index;uniqueIndex:idx_menu_item_category_name" json:"category_id"`
	Name               string               `gorm:"size:160;not null;uniqueIndex:idx_menu_item_category_name" json:"name"`
	Description        string               `gorm:"type:text" json:"description,omitempty"`
	Price              decimal.Decimal      `gorm:"type:numeric(12,2);not null;default:0" json:"price"`
	Available          bool                 `gorm:"default:true" json:"available"`
	ModifierGroups     []ModifierAssignment `gorm:"type:jsonb;serializer:json" json:"modifier_groups,omitempty"`
	IsPizza            bool                 `gorm:"default:false" json:"is_pizza"`
	IsSpecialPizza     bool                 `gorm:"default:false" json:"is_special_pizza"`
	DefaultIngredients []string             `gorm:"type:jsonb;serializer:json" json:"default_ingredients,omitempty"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
	DeletedAt          gorm.DeletedAt       `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new menu item
func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the MenuItem model
func (MenuItem) TableName() string {
	return "menu_items"
}

// HasDefaultIngredient reports whether name is already included in a special
// pizza's base price. Comparison ignores case.
func (m *MenuItem) HasDefaultIngredient(name string) bool {
	if !m.IsSpecialPizza {
		return false
	}
	for _, d := range m.DefaultIngredients {
		if strings.EqualFold(d, name) {
			return true
		}
	}
	return false
}

// ModifierOption is one selectable option of a modifier group.
type ModifierOption struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ModifierGroup is a named rule set of options. Title is the join key used by
// menu items.
type ModifierGroup struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	Title         string             `gorm:"size:160;not null;uniqueIndex" json:"title"`
	SelectionType enum.SelectionType `gorm:"size:20;not null;default:'single'" json:"selection_type"`
	MinSelection  int                `gorm:"default:0" json:"min_selection"`
	MaxSelection  int                `gorm:"default:0" json:"max_selection"`
	Options       []ModifierOption   `gorm:"type:jsonb;serializer:json" json:"options"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new modifier group
func (g *ModifierGroup) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ModifierGroup model
func (ModifierGroup) TableName() string {
	return "modifier_groups"
}

// Option looks up an option by name.
func (g *ModifierGroup) Option(name string) (ModifierOption, bool) {
	for _, o := range g.Options {
		if o.Name == name {
			return o, true
		}
	}
	return ModifierOption{}, false
}

// ModifierAssignment links a menu item to a modifier group. Label is what
// tickets print; Group is the rule set that applies.
type ModifierAssignment struct {
	Group string `json:"group"`
	Label string `json:"label"`
}

// DisplayLabel returns the label, falling back to the group title.
func (a ModifierAssignment) DisplayLabel() string {
	if a.Label != "" {
		return a.Label
	}
	return a.Group
}

// UnmarshalJSON accepts either a bare group title or a {group, label} object
// and always yields both fields populated.
func (a *ModifierAssignment) UnmarshalJSON(data []byte) error {
	var title string
	if err := json.Unmarshal(data, &title); err == nil {
		a.Group = title
		a.Label = title
		return nil
	}

	var raw struct {
		Group string `json:"group"`
		Label string `json:"label"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Group == "" {
		return errors.New("modifier assignment requires a group")
	}
	a.Group = raw.Group
	a.Label = raw.Label
	if a.Label == "" {
		a.Label = raw.Group
	}
	return nil
}
