package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/pizzeria-pos/internal/domain/entity"
	"github.com/sangkips/pizzeria-pos/internal/domain/enum"
)

// StaffRepository defines the interface for the staff roster
type StaffRepository interface {
	Create(ctx context.Context, staff *entity.Staff) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Staff, error)
	GetByName(ctx context.Context, name string) (*entity.Staff, error)
	Update(ctx context.Context, staff *entity.Staff) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.Staff, error)
	ListByRole(ctx context.Context, role enum.UserRole) ([]entity.Staff, error)
	CountByRole(ctx context.Context, role enum.UserRole) (int64, error)
}
