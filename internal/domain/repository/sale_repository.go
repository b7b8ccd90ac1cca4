package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/pizzeria-pos/internal/domain/entity"
	"github.com/sangkips/pizzeria-pos/pkg/pagination"
)

// SaleRepository defines the interface for the sales ledger
type SaleRepository interface {
	Create(ctx context.Context, record *entity.SaleRecord) error
	// Replace removes the superseded record and stores its successor in one
	// transaction
	Replace(ctx context.Context, supersededID uuid.UUID, record *entity.SaleRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SaleRecord, error)
	Update(ctx context.Context, record *entity.SaleRecord) error
	// ListByDate returns a date's records, newest first
	ListByDate(ctx context.Context, date string) ([]entity.SaleRecord, error)
	List(ctx context.Context, params *SaleFilterParams) ([]entity.SaleRecord, int64, error)
}

// SaleFilterParams contains filtering parameters for sales history queries
type SaleFilterParams struct {
	Pagination *pagination.Params
	Date       string
	Waiter     string
	Notes      string
	Search     string
}

// ClosureRepository defines the interface for the day closure ledger
type ClosureRepository interface {
	// Seal stores the closure and marks every swept sale closed in one
	// transaction
	Seal(ctx context.Context, closure *entity.DayClosure) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.DayClosure, error)
	ListByDate(ctx context.Context, date string) ([]entity.DayClosure, error)
}
