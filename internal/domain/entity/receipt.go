package entity

import (
	"time"

	"github.com/sangkips/pizzeria-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Receipt is a printable customer receipt. It is composed from the cart or a
// sale record at print time and never stored.
type Receipt struct {
	BusinessName    string          `json:"business_name"`
	Title           string          `json:"title"`
	Reference       string          `json:"reference"`
	Waiter          string          `json:"waiter"`
	Items           []CartItem      `json:"items"`
	PreviousBalance decimal.Decimal `json:"previous_balance"`
	PaymentMethod   string          `json:"payment_method"`
	Instructions    string          `json:"instructions,omitempty"`
	PrintedAt       time.Time       `json:"printed_at"`
}

// Receipt titles.
const (
	ReceiptTitleOrder    = "RECIBO DE PEDIDO"
	ReceiptTitleAddition = "ADICIONAL - POR PAGAR"
	ReceiptTitleCopy     = "RECIBO DE PEDIDO (COPIA)"
)

// KitchenTicket is the unpriced ticket sent to the kitchen printer.
type KitchenTicket struct {
	Action       enum.KitchenAction `json:"action"`
	BusinessName string             `json:"business_name"`
	Reference    string             `json:"reference"`
	Takeaway     bool               `json:"takeaway"`
	Waiter       string             `json:"waiter"`
	Items        []CartItem         `json:"items"`
	Observations string             `json:"observations,omitempty"`
	PrintedAt    time.Time          `json:"printed_at"`
}
