package request

import (
	"github.com/sangkips/pizzeria-pos/internal/domain/entity"
	"github.com/sangkips/pizzeria-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// SettingsRequest updates the till settings. Omitted fields keep their
// value on PATCH and reset to the default on PUT.
type SettingsRequest struct {
	BusinessName         *string                           `json:"business_name"`
	TotalTables          *int                              `json:"total_tables"`
	PrinterPaperWidth    *enum.PaperWidth                  `json:"printer_paper_width"`
	ExchangeRateBCV      *decimal.Decimal                  `json:"exchange_rate_bcv"`
	ExchangeRateParallel *decimal.Decimal                  `json:"exchange_rate_parallel"`
	ActiveExchangeRate   *enum.ExchangeRateSource          `json:"active_exchange_rate"`
	TargetNumber         *string                           `json:"target_number"`
	WaitersCanCharge     *bool                             `json:"waiters_can_charge"`
	RolePermissions      map[string]entity.RolePermissions `json:"role_permissions"`
	PaymentMethods       []string                          `json:"payment_methods"`
}
