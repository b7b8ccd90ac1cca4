package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DayClosure seals a set of sale records. It is never edited after creation.
type DayClosure struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Date           string          `gorm:"size:10;not null;index" json:"date"`
	ClosedAt       time.Time       `gorm:"not null" json:"closed_at"`
	ClosedBy       string          `gorm:"size:120;not null" json:"closed_by"`
	IsAdminClosure bool            `gorm:"default:false" json:"is_admin_closure"`
	TotalPaid      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_paid"`
	TotalPending   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_pending"`
	TotalVoided    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_voided"`
	SalesCount     int             `gorm:"not null" json:"sales_count"`
	SaleIDs        []uuid.UUID     `gorm:"type:jsonb;serializer:json" json:"sale_ids"`
	CreatedAt      time.Time       `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new closure
func (d *DayClosure) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DayClosure model
func (DayClosure) TableName() string {
	return "day_closures"
}
