package request

import "github.com/sangkips/pizzeria-pos/internal/domain/enum"

// CreateStaffRequest adds a staff member
type CreateStaffRequest struct {
	Name string         `json:"name" binding:"required,max=120"`
	PIN  string         `json:"pin" binding:"required,len=4,numeric"`
	Role *enum.UserRole `json:"role" binding:"required"`
}

// UpdateStaffRequest changes a staff member; omitted fields are kept
type UpdateStaffRequest struct {
	Name *string        `json:"name" binding:"omitempty,max=120"`
	PIN  *string        `json:"pin" binding:"omitempty,len=4,numeric"`
	Role *enum.UserRole `json:"role"`
}
