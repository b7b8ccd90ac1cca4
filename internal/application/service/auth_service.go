package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sangkips/pizzeria-pos/internal/domain/entity"
	"github.com/sangkips/pizzeria-pos/internal/domain/enum"
	"github.com/sangkips/pizzeria-pos/internal/domain/repository"
	"github.com/sangkips/pizzeria-pos/internal/metrics"
	"github.com/sangkips/pizzeria-pos/pkg/apperror"
	"github.com/sangkips/pizzeria-pos/pkg/utils"
	"golang.org/x/time/rate"
)

// PIN attempt purposes, used as metric labels.
const (
	pinPurposeLogin = "login"
	pinPurposeAdmin = "admin"
)

// Actor is the logged-in staff member performing an operation.
type Actor struct {
	StaffID uuid.UUID
	Name    string
	Role    enum.UserRole
}

// IsAdmin reports whether the actor sees every waiter's sales.
func (a Actor) IsAdmin() bool {
	return a.Role == enum.UserRoleAdmin
}

// AuthService handles PIN login and admin PIN checks
type AuthService struct {
	staffRepo    repository.StaffRepository
	jwtManager   *utils.JWTManager
	loginLimiter *rate.Limiter
	adminLimiter *rate.Limiter
}

// NewAuthService creates a new auth service. attemptsPerMinute and burst
// size the token bucket shared by every PIN attempt of one kind.
func NewAuthService(staffRepo repository.StaffRepository, jwtManager *utils.JWTManager, attemptsPerMinute, burst int) *AuthService {
	limit := rate.Every(time.Minute / time.Duration(max(attemptsPerMinute, 1)))
	return &AuthService{
		staffRepo:    staffRepo,
		jwtManager:   jwtManager,
		loginLimiter: rate.NewLimiter(limit, max(burst, 1)),
		adminLimiter: rate.NewLimiter(limit, max(burst, 1)),
	}
}

// LoginOutput represents the login output
type LoginOutput struct {
	Staff       *entity.Staff
	AccessToken string
	ExpiresAt   time.Time
}

// Login finds the staff member owning pin and issues a session token
func (s *AuthService) Login(ctx context.Context, pin string) (*LoginOutput, error) {
	staff, err := s.matchPIN(ctx, pin, pinPurposeLogin, s.loginLimiter, nil)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.jwtManager.GenerateToken(staff.ID, staff.Name, staff.Role.String())
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		Staff:       staff,
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

// VerifyAdminPIN returns the admin owning pin. Wrong PINs return
// ErrInvalidPIN and leave any pending action untouched.
func (s *AuthService) VerifyAdminPIN(ctx context.Context, pin string) (*entity.Staff, error) {
	role := enum.UserRoleAdmin
	return s.matchPIN(ctx, pin, pinPurposeAdmin, s.adminLimiter, &role)
}

func (s *AuthService) matchPIN(ctx context.Context, pin, purpose string, limiter *rate.Limiter, role *enum.UserRole) (*entity.Staff, error) {
	if err := utils.ValidatePIN(pin); err != nil {
		metrics.PINAttempts.WithLabelValues(purpose, "malformed").Inc()
		return nil, apperror.NewFieldError("pin", err.Error())
	}
	if !limiter.Allow() {
		metrics.PINAttempts.WithLabelValues(purpose, "throttled").Inc()
		return nil, apperror.ErrTooManyAttempts
	}

	var (
		candidates []entity.Staff
		err        error
	)
	if role != nil {
		candidates, err = s.staffRepo.ListByRole(ctx, *role)
	} else {
		candidates, err = s.staffRepo.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	for i := range candidates {
		if utils.CheckPIN(pin, candidates[i].PinHash) {
			metrics.PINAttempts.WithLabelValues(purpose, "accepted").Inc()
			return &candidates[i], nil
		}
	}

	metrics.PINAttempts.WithLabelValues(purpose, "rejected").Inc()
	return nil, apperror.ErrInvalidPIN
}

// ValidateToken resolves a session token into the acting staff member
func (s *AuthService) ValidateToken(token string) (*Actor, error) {
	claims, err := s.jwtManager.ValidateToken(token)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, apperror.ErrTokenExpired
	}
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}
	role, err := enum.ParseUserRole(claims.Role)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}
	return &Actor{StaffID: claims.StaffID, Name: claims.Name, Role: role}, nil
}
