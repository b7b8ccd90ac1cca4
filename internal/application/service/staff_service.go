package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/pizzeria-pos/internal/domain/entity"
	"github.com/sangkips/pizzeria-pos/internal/domain/enum"
	"github.com/sangkips/pizzeria-pos/internal/domain/repository"
	"github.com/sangkips/pizzeria-pos/pkg/apperror"
	"github.com/sangkips/pizzeria-pos/pkg/utils"
)

// StaffService manages the staff roster
type StaffService struct {
	staffRepo repository.StaffRepository
}

// NewStaffService creates a new staff service
func NewStaffService(staffRepo repository.StaffRepository) *StaffService {
	return &StaffService{staffRepo: staffRepo}
}

// ListStaff returns every staff member
func (s *StaffService) ListStaff(ctx context.Context) ([]entity.Staff, error) {
	return s.staffRepo.List(ctx)
}

// GetStaff retrieves a staff member by ID
func (s *StaffService) GetStaff(ctx context.Context, id uuid.UUID) (*entity.Staff, error) {
	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, apperror.NewNotFoundError("Staff member")
	}
	return staff, nil
}

// CreateStaffInput represents the input for creating a staff member
type CreateStaffInput struct {
	Name string
	PIN  string
	Role enum.UserRole
}

// CreateStaff adds a staff member with a unique 4-digit PIN
func (s *StaffService) CreateStaff(ctx context.Context, input *CreateStaffInput) (*entity.Staff, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewFieldError("name", "Name is required")
	}
	if !input.Role.IsValid() {
		return nil, apperror.NewFieldError("role", "Unknown role")
	}
	if err := utils.ValidatePIN(input.PIN); err != nil {
		return nil, apperror.NewFieldError("pin", err.Error())
	}

	existing, err := s.staffRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A staff member with this name already exists")
	}
	if err := s.ensurePINAvailable(ctx, input.PIN, uuid.Nil); err != nil {
		return nil, err
	}

	hash, err := utils.HashPIN(input.PIN)
	if err != nil {
		return nil, err
	}

	staff := &entity.Staff{
		Name:    name,
		PinHash: hash,
		Role:    input.Role,
	}
	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// UpdateStaffInput represents the input for updating a staff member. Nil
// fields are left unchanged.
type UpdateStaffInput struct {
	ID   uuid.UUID
	Name *string
	PIN  *string
	Role *enum.UserRole
}

// UpdateStaff updates a staff member
func (s *StaffService) UpdateStaff(ctx context.Context, input *UpdateStaffInput) (*entity.Staff, error) {
	staff, err := s.GetStaff(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.NewFieldError("name", "Name is required")
		}
		if !strings.EqualFold(name, staff.Name) {
			other, err := s.staffRepo.GetByName(ctx, name)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != staff.ID {
				return nil, apperror.NewConflictError("A staff member with this name already exists")
			}
		}
		staff.Name = name
	}

	if input.PIN != nil {
		if err := utils.ValidatePIN(*input.PIN); err != nil {
			return nil, apperror.NewFieldError("pin", err.Error())
		}
		if err := s.ensurePINAvailable(ctx, *input.PIN, staff.ID); err != nil {
			return nil, err
		}
		hash, err := utils.HashPIN(*input.PIN)
		if err != nil {
			return nil, err
		}
		staff.PinHash = hash
	}

	if input.Role != nil && *input.Role != staff.Role {
		if !input.Role.IsValid() {
			return nil, apperror.NewFieldError("role", "Unknown role")
		}
		if staff.IsAdmin() {
			if err := s.ensureAnotherAdmin(ctx); err != nil {
				return nil, err
			}
		}
		staff.Role = *input.Role
	}

	if err := s.staffRepo.Update(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// DeleteStaff removes a staff member. The last member and the last admin
// cannot be removed.
func (s *StaffService) DeleteStaff(ctx context.Context, id uuid.UUID) error {
	staff, err := s.GetStaff(ctx, id)
	if err != nil {
		return err
	}

	all, err := s.staffRepo.List(ctx)
	if err != nil {
		return err
	}
	if len(all) <= 1 {
		return apperror.NewPreconditionError("The last staff member cannot be deleted")
	}
	if staff.IsAdmin() {
		if err := s.ensureAnotherAdmin(ctx); err != nil {
			return err
		}
	}

	return s.staffRepo.Delete(ctx, id)
}

// ensurePINAvailable rejects a PIN already used by someone other than self.
// Hashes are salted, so every hash has to be checked.
func (s *StaffService) ensurePINAvailable(ctx context.Context, pin string, self uuid.UUID) error {
	all, err := s.staffRepo.List(ctx)
	if err != nil {
		return err
	}
	for _, member := range all {
		if member.ID != self && utils.CheckPIN(pin, member.PinHash) {
			return apperror.NewConflictError("PIN already in use")
		}
	}
	return nil
}

func (s *StaffService) ensureAnotherAdmin(ctx context.Context) error {
	admins, err := s.staffRepo.CountByRole(ctx, enum.UserRoleAdmin)
	if err != nil {
		return err
	}
	if admins <= 1 {
		return apperror.NewPreconditionError("The last admin cannot be removed")
	}
	return nil
}
