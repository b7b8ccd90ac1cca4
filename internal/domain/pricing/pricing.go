// Package pricing computes line and cart totals. All arithmetic is exact
// decimal; rounding to cents only happens on display.
package pricing

import (
	"github.com/sangkips/pizzeria-pos/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// UnitTotal is the price of one unit including every selected modifier.
func UnitTotal(item entity.CartItem) decimal.Decimal {
	total := item.Price
	for _, m := range item.SelectedModifiers {
		total = total.Add(m.Option.Price)
	}
	return total
}

// LineTotal is (price + Σ modifier prices) × quantity.
func LineTotal(item entity.CartItem) decimal.Decimal {
	return UnitTotal(item).Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// CartTotal sums the line totals of items.
func CartTotal(items []entity.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(LineTotal(it))
	}
	return total
}

// Round2 rounds half away from zero to cents.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Cents returns d rounded to whole cents.
func Cents(d decimal.Decimal) int64 {
	return d.Mul(hundred).Round(0).IntPart()
}

// Format renders d with two decimals, without currency sign.
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatUSD renders d as "$12.34".
func FormatUSD(d decimal.Decimal) string {
	return "$" + Format(d)
}

// Convert applies an exchange rate to a primary-currency total. The result is
// for display only.
func Convert(total, rate decimal.Decimal) decimal.Decimal {
	return Round2(total.Mul(rate))
}
