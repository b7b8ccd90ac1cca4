package enum

import "fmt"

// PizzaHalf says which portion of a pizza an ingredient covers.
type PizzaHalf string

const (
	PizzaHalfLeft  PizzaHalf = "left"
	PizzaHalfRight PizzaHalf = "right"
	PizzaHalfFull  PizzaHalf = "full"
)

func (h PizzaHalf) IsValid() bool {
	switch h {
	case PizzaHalfLeft, PizzaHalfRight, PizzaHalfFull:
		return true
	}
	return false
}

// IsSplit reports whether the ingredient covers only one half.
func (h PizzaHalf) IsSplit() bool {
	return h == PizzaHalfLeft || h == PizzaHalfRight
}

func ParsePizzaHalf(s string) (PizzaHalf, error) {
	h := PizzaHalf(s)
	if !h.IsValid() {
		return "", fmt.Errorf("unknown pizza half %q", s)
	}
	return h, nil
}
