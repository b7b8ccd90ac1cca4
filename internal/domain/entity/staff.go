package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pizzeria-pos/internal/domain/enum"
	"gorm.io/gorm"
)

// Staff is a person who logs into the till with a PIN.
type Staff struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:120;not null;uniqueIndex" json:"name"`
	PinHash   string         `gorm:"size:255;not null" json:"-"`
	Role      enum.UserRole  `gorm:"not null;default:1" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new staff member
func (s *Staff) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Staff model
func (Staff) TableName() string {
	return "staff"
}

func (s *Staff) IsAdmin() bool {
	return s.Role == enum.UserRoleAdmin
}
