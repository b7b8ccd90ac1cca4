package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PizzaSize is one of the three fixed pizza tiers.
type PizzaSize int

const (
	PizzaSizeSmall  PizzaSize = 0
	PizzaSizeMedium PizzaSize = 1
	PizzaSizeLarge  PizzaSize = 2
)

// PizzaSizes lists every tier in menu order.
var PizzaSizes = []PizzaSize{PizzaSizeSmall, PizzaSizeMedium, PizzaSizeLarge}

var pizzaSizeNames = [...]string{"Pequeña", "Mediana", "Familiar"}

// String returns the label printed on tickets and shown to staff.
func (s PizzaSize) String() string {
	if !s.IsValid() {
		return fmt.Sprintf("PizzaSize(%d)", int(s))
	}
	return pizzaSizeNames[s]
}

func (s PizzaSize) IsValid() bool {
	return s >= PizzaSizeSmall && s <= PizzaSizeLarge
}

// ParsePizzaSize accepts the display label or the english tier name.
func ParsePizzaSize(str string) (PizzaSize, error) {
	switch str {
	case "Pequeña", "Pequena", "small", "Small":
		return PizzaSizeSmall, nil
	case "Mediana", "medium", "Medium":
		return PizzaSizeMedium, nil
	case "Familiar", "large", "Large":
		return PizzaSizeLarge, nil
	}
	return PizzaSizeSmall, fmt.Errorf("unknown pizza size %q", str)
}

func (s PizzaSize) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PizzaSize) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		if !PizzaSize(i).IsValid() {
			return fmt.Errorf("unknown pizza size %d", i)
		}
		*s = PizzaSize(i)
		return nil
	}
	parsed, err := ParsePizzaSize(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s PizzaSize) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PizzaSize) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*s = PizzaSizeSmall
	case int64:
		*s = PizzaSize(v)
	case int:
		*s = PizzaSize(v)
	default:
		return fmt.Errorf("cannot scan %T into PizzaSize", value)
	}
	return nil
}
