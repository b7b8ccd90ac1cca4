package service

import (
	"context"
	"strings"

	"github.com/sangkips/pizzeria-pos/internal/domain/entity"
	"github.com/sangkips/pizzeria-pos/internal/domain/enum"
	"github.com/sangkips/pizzeria-pos/internal/domain/repository"
	"github.com/sangkips/pizzeria-pos/pkg/apperror"
	"github.com/shopspring/decimal"
)

// SettingsService handles till settings
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
	}
}

// GetSettings retrieves the settings row, creating defaults if it does not exist
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.AppSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if settings == nil {
		settings = entity.DefaultAppSettings()
		if err := s.settingsRepo.Save(ctx, settings); err != nil {
			return nil, err
		}
	}

	return settings, nil
}

// UpdateSettingsInput represents the input for updating settings. With
// Partial set only non-nil fields change; otherwise the row is rebuilt from
// defaults plus the given fields.
type UpdateSettingsInput struct {
	Partial              bool
	BusinessName         *string
	TotalTables          *int
	PrinterPaperWidth    *enum.PaperWidth
	ExchangeRateBCV      *decimal.Decimal
	ExchangeRateParallel *decimal.Decimal
	ActiveExchangeRate   *enum.ExchangeRateSource
	TargetNumber         *string
	WaitersCanCharge     *bool
	RolePermissions      map[string]entity.RolePermissions
	PaymentMethods       []string
}

// UpdateSettings validates and stores the settings
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.AppSettings, error) {
	if fieldErrors := validateSettingsInput(input); len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	settings := entity.DefaultAppSettings()
	if input.Partial {
		current, err := s.GetSettings(ctx)
		if err != nil {
			return nil, err
		}
		settings = current
	}

	if input.BusinessName != nil {
		settings.BusinessName = strings.TrimSpace(*input.BusinessName)
	}
	if input.TotalTables != nil {
		settings.TotalTables = *input.TotalTables
	}
	if input.PrinterPaperWidth != nil {
		settings.PrinterPaperWidth = *input.PrinterPaperWidth
	}
	if input.ExchangeRateBCV != nil {
		settings.ExchangeRateBCV = *input.ExchangeRateBCV
	}
	if input.ExchangeRateParallel != nil {
		settings.ExchangeRateParallel = *input.ExchangeRateParallel
	}
	if input.ActiveExchangeRate != nil {
		settings.ActiveExchangeRate = *input.ActiveExchangeRate
	}
	if input.TargetNumber != nil {
		settings.TargetNumber = digitsOnly(*input.TargetNumber)
	}
	if input.WaitersCanCharge != nil {
		settings.WaitersCanCharge = *input.WaitersCanCharge
	}
	if input.RolePermissions != nil {
		settings.RolePermissions = input.RolePermissions
	}
	if input.PaymentMethods != nil {
		settings.PaymentMethods = input.PaymentMethods
	}

	settings.ID = entity.SettingsID
	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

func validateSettingsInput(input *UpdateSettingsInput) []apperror.FieldError {
	var errs []apperror.FieldError
	if input.BusinessName != nil && strings.TrimSpace(*input.BusinessName) == "" {
		errs = append(errs, apperror.FieldError{Field: "business_name", Message: "Business name is required"})
	}
	if input.TotalTables != nil && *input.TotalTables < 0 {
		errs = append(errs, apperror.FieldError{Field: "total_tables", Message: "Total tables cannot be negative"})
	}
	if input.PrinterPaperWidth != nil && *input.PrinterPaperWidth != enum.PaperWidth58mm && *input.PrinterPaperWidth != enum.PaperWidth80mm {
		errs = append(errs, apperror.FieldError{Field: "printer_paper_width", Message: "Paper width must be 58mm or 80mm"})
	}
	if input.ExchangeRateBCV != nil && !input.ExchangeRateBCV.IsPositive() {
		errs = append(errs, apperror.FieldError{Field: "exchange_rate_bcv", Message: "Exchange rate must be positive"})
	}
	if input.ExchangeRateParallel != nil && !input.ExchangeRateParallel.IsPositive() {
		errs = append(errs, apperror.FieldError{Field: "exchange_rate_parallel", Message: "Exchange rate must be positive"})
	}
	if input.ActiveExchangeRate != nil && *input.ActiveExchangeRate != enum.ExchangeRateBCV && *input.ActiveExchangeRate != enum.ExchangeRateParallel {
		errs = append(errs, apperror.FieldError{Field: "active_exchange_rate", Message: "Active rate must be bcv or parallel"})
	}
	if input.TargetNumber != nil && digitsOnly(*input.TargetNumber) == "" {
		errs = append(errs, apperror.FieldError{Field: "target_number", Message: "Target number must contain digits"})
	}
	for role := range input.RolePermissions {
		if _, err := enum.ParseUserRole(role); err != nil {
			errs = append(errs, apperror.FieldError{Field: "role_permissions", Message: "Unknown role " + role})
		}
	}
	if input.PaymentMethods != nil {
		for _, m := range input.PaymentMethods {
			if strings.TrimSpace(m) == "" || m == enum.SaleNotePending || m == enum.SaleNoteVoided {
				errs = append(errs, apperror.FieldError{Field: "payment_methods", Message: "Invalid payment method " + m})
			}
		}
	}
	return errs
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
