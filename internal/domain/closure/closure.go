// Package closure aggregates a day's sales and picks the records a day
// closure seals.
package closure

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pizzeria-pos/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var ErrNothingToClose = errors.New("no open paid sales to close")

// Scope is one waiter's sales, or every waiter's when All is set.
type Scope struct {
	Waiter string `json:"waiter,omitempty"`
	All    bool   `json:"all"`
}

// Includes reports whether the record belongs to the scope.
func (s Scope) Includes(r *entity.SaleRecord) bool {
	return s.All || strings.EqualFold(r.Waiter, s.Waiter)
}

// Totals are the money aggregates of a set of records.
type Totals struct {
	Paid         decimal.Decimal `json:"total_paid"`
	Pending      decimal.Decimal `json:"total_pending"`
	Voided       decimal.Decimal `json:"total_voided"`
	SalesCount   int             `json:"sales_count"`
	PendingCount int             `json:"pending_count"`
	VoidedCount  int             `json:"voided_count"`
}

// ComputeTotals sums paid (refunds negative), pending, and voided amounts.
// The voided sum uses the amount kept before the record was zeroed.
func ComputeTotals(records []entity.SaleRecord) Totals {
	t := Totals{Paid: decimal.Zero, Pending: decimal.Zero, Voided: decimal.Zero}
	for i := range records {
		r := &records[i]
		switch {
		case r.IsVoided():
			t.Voided = t.Voided.Add(r.VoidedAmount)
			t.VoidedCount++
		case r.IsPending():
			t.Pending = t.Pending.Add(r.Total)
			t.PendingCount++
		default:
			t.Paid = t.Paid.Add(r.SignedTotal())
			t.SalesCount++
		}
	}
	return t
}

// InScope keeps the records of date that belong to scope.
func InScope(records []entity.SaleRecord, date string, scope Scope) []entity.SaleRecord {
	var out []entity.SaleRecord
	for _, r := range records {
		if r.Date == date && scope.Includes(&r) {
			out = append(out, r)
		}
	}
	return out
}

// SelectForClosure keeps the in-scope records of date that are paid and not
// yet sealed by an earlier closure.
func SelectForClosure(records []entity.SaleRecord, date string, scope Scope) []entity.SaleRecord {
	var out []entity.SaleRecord
	for _, r := range InScope(records, date, scope) {
		if r.Closed || !r.IsPaid() {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Build creates the closure snapshot. Paid money comes from the selected
// records; pending and voided amounts are read from the whole scoped day so
// the closure shows what was still outstanding when it was taken. It returns
// ErrNothingToClose for an empty selection.
func Build(selected, scoped []entity.SaleRecord, date string, scope Scope, closedBy string, now time.Time) (*entity.DayClosure, error) {
	if len(selected) == 0 {
		return nil, ErrNothingToClose
	}

	paid := ComputeTotals(selected)
	outstanding := ComputeTotals(scoped)
	ids := make([]uuid.UUID, len(selected))
	for i, r := range selected {
		ids[i] = r.ID
	}

	return &entity.DayClosure{
		ID:             uuid.New(),
		Date:           date,
		ClosedAt:       now,
		ClosedBy:       closedBy,
		IsAdminClosure: scope.All,
		TotalPaid:      paid.Paid,
		TotalPending:   outstanding.Pending,
		TotalVoided:    outstanding.Voided,
		SalesCount:     len(selected),
		SaleIDs:        ids,
	}, nil
}
