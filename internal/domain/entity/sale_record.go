package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pizzeria-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleRecord is a finalized order in the ledger. Notes holds the payment
// method of a paid sale, or one of the PENDIENTE/ANULADO status notes.
type SaleRecord struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Date         string          `gorm:"size:10;not null;index" json:"date"`
	Time         string          `gorm:"size:5;not null" json:"time"`
	TableNumber  int             `gorm:"default:0" json:"table_number"`
	Waiter       string          `gorm:"size:120;not null;index" json:"waiter"`
	CustomerName string          `gorm:"size:160" json:"customer_name,omitempty"`
	Total        decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"total"`
	VoidedAmount decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"voided_amount"`
	Order        []CartItem      `gorm:"type:jsonb;serializer:json" json:"order"`
	Type         enum.SaleType   `gorm:"size:10;not null;default:'sale'" json:"type"`
	Notes        string          `gorm:"size:60;index" json:"notes"`
	Closed       bool            `gorm:"default:false;index" json:"closed"`
	ClosureID    *uuid.UUID      `gorm:"type:uuid;index" json:"closure_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new sale record
func (s *SaleRecord) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleRecord model
func (SaleRecord) TableName() string {
	return "sale_records"
}

func (s *SaleRecord) IsPending() bool {
	return s.Notes == enum.SaleNotePending
}

func (s *SaleRecord) IsVoided() bool {
	return s.Notes == enum.SaleNoteVoided
}

// IsPaid reports whether the record counts towards collected money.
func (s *SaleRecord) IsPaid() bool {
	return !s.IsPending() && !s.IsVoided()
}

// SignedTotal is the total with refunds negated.
func (s *SaleRecord) SignedTotal() decimal.Decimal {
	if s.Type == enum.SaleTypeRefund {
		return s.Total.Neg()
	}
	return s.Total
}

// Void zeroes the record and keeps the pre-void amount in VoidedAmount.
func (s *SaleRecord) Void() {
	if s.IsVoided() {
		return
	}
	s.VoidedAmount = s.Total
	s.Total = decimal.Zero
	s.Notes = enum.SaleNoteVoided
}
