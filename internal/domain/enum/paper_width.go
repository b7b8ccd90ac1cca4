package enum

// PaperWidth is the configured thermal roll width.
type PaperWidth string

const (
	PaperWidth58mm PaperWidth = "58mm"
	PaperWidth80mm PaperWidth = "80mm"
)

// Columns returns the printable characters per line. Anything that is not
// 80mm prints at the narrow width.
func (w PaperWidth) Columns() int {
	if w == PaperWidth80mm {
		return 42
	}
	return 30
}

// ExchangeRateSource selects which configured rate converts totals.
type ExchangeRateSource string

const (
	ExchangeRateBCV      ExchangeRateSource = "bcv"
	ExchangeRateParallel ExchangeRateSource = "parallel"
)
