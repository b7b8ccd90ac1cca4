package entity

import (
	"time"

	"github.com/sangkips/pizzeria-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// SettingsID is the primary key of the single settings row.
const SettingsID = 1

// Capability names a screen a role may open.
type Capability string

const (
	CapabilityMenu     Capability = "menu"
	CapabilityReports  Capability = "reports"
	CapabilitySettings Capability = "settings"
	CapabilityKanban   Capability = "kanban"
)

// RolePermissions is the capability matrix row of one role.
type RolePermissions struct {
	Menu     bool `json:"menu"`
	Reports  bool `json:"reports"`
	Settings bool `json:"settings"`
	Kanban   bool `json:"kanban"`
}

// Allows reports whether the capability is granted.
func (p RolePermissions) Allows(c Capability) bool {
	switch c {
	case CapabilityMenu:
		return p.Menu
	case CapabilityReports:
		return p.Reports
	case CapabilitySettings:
		return p.Settings
	case CapabilityKanban:
		return p.Kanban
	}
	return false
}

// AppSettings holds till-wide configuration edited from the settings screen.
type AppSettings struct {
	ID                   uint                       `gorm:"primaryKey" json:"-"`
	BusinessName         string                     `gorm:"size:160;not null" json:"business_name"`
	TotalTables          int                        `gorm:"default:20" json:"total_tables"`
	PrinterPaperWidth    enum.PaperWidth            `gorm:"size:10;default:'58mm'" json:"printer_paper_width"`
	ExchangeRateBCV      decimal.Decimal            `gorm:"type:numeric(14,4);not null" json:"exchange_rate_bcv"`
	ExchangeRateParallel decimal.Decimal            `gorm:"type:numeric(14,4);not null" json:"exchange_rate_parallel"`
	ActiveExchangeRate   enum.ExchangeRateSource    `gorm:"size:10;default:'parallel'" json:"active_exchange_rate"`
	TargetNumber         string                     `gorm:"size:40" json:"target_number"`
	WaitersCanCharge     bool                       `gorm:"default:true" json:"waiters_can_charge"`
	RolePermissions      map[string]RolePermissions `gorm:"type:jsonb;serializer:json" json:"role_permissions"`
	PaymentMethods       []string                   `gorm:"type:jsonb;serializer:json" json:"payment_methods"`
	UpdatedAt            time.Time                  `json:"updated_at"`
}

// TableName returns the table name for the AppSettings model
func (AppSettings) TableName() string {
	return "app_settings"
}

// DefaultAppSettings returns the settings a fresh till starts with.
func DefaultAppSettings() *AppSettings {
	return &AppSettings{
		ID:                   SettingsID,
		BusinessName:         "Margarita Pizzería",
		TotalTables:          20,
		PrinterPaperWidth:    enum.PaperWidth58mm,
		ExchangeRateBCV:      decimal.RequireFromString("36.5"),
		ExchangeRateParallel: decimal.RequireFromString("40"),
		ActiveExchangeRate:   enum.ExchangeRateParallel,
		TargetNumber:         "584120000000",
		WaitersCanCharge:     true,
		RolePermissions: map[string]RolePermissions{
			enum.UserRoleWaiter.String():  {Reports: true, Kanban: true},
			enum.UserRoleCashier.String(): {Reports: true, Kanban: true},
		},
		PaymentMethods: append([]string(nil), enum.DefaultPaymentMethods...),
	}
}

// ActiveRate returns the exchange rate selected by ActiveExchangeRate.
func (s *AppSettings) ActiveRate() decimal.Decimal {
	if s.ActiveExchangeRate == enum.ExchangeRateBCV {
		return s.ExchangeRateBCV
	}
	return s.ExchangeRateParallel
}

// PermissionsFor returns the capability row of a role. Admin holds every capability.
func (s *AppSettings) PermissionsFor(role enum.UserRole) RolePermissions {
	if role == enum.UserRoleAdmin {
		return RolePermissions{Menu: true, Reports: true, Settings: true, Kanban: true}
	}
	return s.RolePermissions[role.String()]
}

// CanCharge reports whether a role may finalize an order as paid.
func (s *AppSettings) CanCharge(role enum.UserRole) bool {
	if role == enum.UserRoleWaiter {
		return s.WaitersCanCharge
	}
	return true
}
