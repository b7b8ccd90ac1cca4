package enum

// SaleType distinguishes sales from refunds in the ledger.
type SaleType string

const (
	SaleTypeSale   SaleType = "sale"
	SaleTypeRefund SaleType = "refund"
)

// Status notes stored on a sale record. Any other value is the payment
// method of a paid sale.
const (
	SaleNotePending = "PENDIENTE"
	SaleNoteVoided  = "ANULADO"
)

// DefaultPaymentMethod is preselected on a fresh customer draft.
const DefaultPaymentMethod = "Efectivo"

// DefaultPaymentMethods is the seeded list of accepted payment methods.
var DefaultPaymentMethods = []string{"Efectivo", "Pago Móvil", "Zelle", "Divisas"}
