package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pizzeria-pos/internal/domain/closure"
	"github.com/sangkips/pizzeria-pos/internal/domain/entity"
	"github.com/sangkips/pizzeria-pos/internal/domain/repository"
	"github.com/sangkips/pizzeria-pos/internal/metrics"
	"github.com/sangkips/pizzeria-pos/pkg/apperror"
)

// ReportService computes day totals and seals day closures
type ReportService struct {
	saleRepo    repository.SaleRepository
	closureRepo repository.ClosureRepository
	loc         *time.Location
	now         func() time.Time
}

// NewReportService creates a new report service
func NewReportService(saleRepo repository.SaleRepository, closureRepo repository.ClosureRepository, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.Local
	}
	return &ReportService{
		saleRepo:    saleRepo,
		closureRepo: closureRepo,
		loc:         loc,
		now:         time.Now,
	}
}

// DayReport is a date's sales and totals for one scope
type DayReport struct {
	Date     string              `json:"date"`
	Scope    closure.Scope       `json:"scope"`
	Totals   closure.Totals      `json:"totals"`
	Records  []entity.SaleRecord `json:"records"`
	Closures []entity.DayClosure `json:"closures"`
}

// CloseDayResult carries the new closure, or only a notice when there was
// nothing to close
type CloseDayResult struct {
	Closure *entity.DayClosure `json:"closure,omitempty"`
	Notice  string             `json:"notice,omitempty"`
}

// ScopeFor returns the sales an actor may see: an admin sees every waiter.
func ScopeFor(actor Actor) closure.Scope {
	if actor.IsAdmin() {
		return closure.Scope{All: true}
	}
	return closure.Scope{Waiter: actor.Name}
}

// resolveDate defaults to today in the till's zone and rejects malformed dates
func (s *ReportService) resolveDate(date string) (string, error) {
	if date == "" {
		return s.now().In(s.loc).Format(ledgerDateLayout), nil
	}
	if _, err := time.Parse(ledgerDateLayout, date); err != nil {
		return "", apperror.NewFieldError("date", "Date must be YYYY-MM-DD")
	}
	return date, nil
}

// GetDayReport aggregates the actor's scope for date
func (s *ReportService) GetDayReport(ctx context.Context, actor Actor, date string) (*DayReport, error) {
	date, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	scope := ScopeFor(actor)

	records, err := s.saleRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	scoped := closure.InScope(records, date, scope)
	closures, err := s.listClosures(ctx, date, scope)
	if err != nil {
		return nil, err
	}

	if scoped == nil {
		scoped = []entity.SaleRecord{}
	}
	return &DayReport{
		Date:     date,
		Scope:    scope,
		Totals:   closure.ComputeTotals(scoped),
		Records:  scoped,
		Closures: closures,
	}, nil
}

// CloseDay seals the actor's open paid sales of date. An empty selection
// writes nothing and returns a notice.
func (s *ReportService) CloseDay(ctx context.Context, actor Actor, date string) (*CloseDayResult, error) {
	date, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	scope := ScopeFor(actor)

	records, err := s.saleRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	selected := closure.SelectForClosure(records, date, scope)
	scoped := closure.InScope(records, date, scope)

	dc, err := closure.Build(selected, scoped, date, scope, actor.Name, s.now().In(s.loc))
	if errors.Is(err, closure.ErrNothingToClose) {
		slog.Info("day closure skipped", "date", date, "staff", actor.Name)
		return &CloseDayResult{Notice: "No open paid sales to close for " + date}, nil
	}
	if err != nil {
		return nil, err
	}

	if err := s.closureRepo.Seal(ctx, dc); err != nil {
		return nil, err
	}

	scopeLabel := "waiter"
	if scope.All {
		scopeLabel = "admin"
	}
	metrics.DayClosures.WithLabelValues(scopeLabel).Inc()
	slog.Info("day closed",
		"closure_id", dc.ID,
		"date", date,
		"staff", actor.Name,
		"sales", dc.SalesCount,
		"total_paid", dc.TotalPaid.String(),
	)
	return &CloseDayResult{Closure: dc}, nil
}

// ListClosures returns the closures of date visible to the actor
func (s *ReportService) ListClosures(ctx context.Context, actor Actor, date string) ([]entity.DayClosure, error) {
	date, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	return s.listClosures(ctx, date, ScopeFor(actor))
}

func (s *ReportService) listClosures(ctx context.Context, date string, scope closure.Scope) ([]entity.DayClosure, error) {
	all, err := s.closureRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	out := []entity.DayClosure{}
	for _, dc := range all {
		if scope.All || (!dc.IsAdminClosure && dc.ClosedBy == scope.Waiter) {
			out = append(out, dc)
		}
	}
	return out, nil
}

// GetClosure retrieves a closure by ID
func (s *ReportService) GetClosure(ctx context.Context, id uuid.UUID) (*entity.DayClosure, error) {
	dc, err := s.closureRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if dc == nil {
		return nil, apperror.NewNotFoundError("Day closure")
	}
	return dc, nil
}
