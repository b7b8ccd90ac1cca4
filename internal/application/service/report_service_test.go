package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/sangkips/pizzeria-pos/internal/domain/entity"
	"github.com/sangkips/pizzeria-pos/internal/domain/pricing"
)

func seedDay(tl *till) {
	line := func(price string) entity.CartItem {
		return entity.CartItem{Name: "Combo", Price: dec(price), Quantity: 1}
	}
	pendingRecord(tl, "a", line("10.00"))
	pendingRecord(tl, "b", line("4.00"))
	pendingRecord(tl, "c", line("7.00"))
	voided := pendingRecord(tl, "d", line("6.00"))
	pendingRecord(tl, "e", line("20.00"))

	for i := range tl.sales.records {
		r := &tl.sales.records[i]
		switch r.CustomerName {
		case "a", "b":
			r.Notes = "Efectivo"
		case "e":
			r.Notes = "Zelle"
			r.Waiter = tl.admin.Name
		}
		if r.ID == voided.ID {
			r.Void()
		}
	}
}

func TestGetDayReportScopes(t *testing.T) {
	ctx := context.Background()
	tl := newTill(t)
	seedDay(tl)

	report, err := tl.reports.GetDayReport(ctx, tl.waiter, "")
	if err != nil {
		t.Fatalf("GetDayReport: %v", err)
	}
	if report.Date != "2024-05-10" || report.Scope.Waiter != tl.waiter.Name {
		t.Errorf("date=%s scope=%+v", report.Date, report.Scope)
	}
	totals := report.Totals
	if pricing.Format(totals.Paid) != "14.00" || pricing.Format(totals.Pending) != "7.00" || pricing.Format(totals.Voided) != "6.00" {
		t.Errorf("waiter totals = %+v", totals)
	}
	if len(report.Records) != 4 {
		t.Errorf("waiter records = %d, want 4", len(report.Records))
	}

	report, _ = tl.reports.GetDayReport(ctx, tl.admin, "2024-05-10")
	if pricing.Format(report.Totals.Paid) != "34.00" || len(report.Records) != 5 {
		t.Errorf("admin totals = %+v records=%d", report.Totals, len(report.Records))
	}

	if _, err := tl.reports.GetDayReport(ctx, tl.admin, "10/05/2024"); errCode(err) != http.StatusUnprocessableEntity {
		t.Errorf("bad date err = %v", err)
	}
}

func TestCloseDaySealsEachSaleOnce(t *testing.T) {
	ctx := context.Background()
	tl := newTill(t)
	seedDay(tl)

	waiterClose, err := tl.reports.CloseDay(ctx, tl.waiter, "")
	if err != nil {
		t.Fatalf("CloseDay waiter: %v", err)
	}
	dc := waiterClose.Closure
	if dc == nil || dc.IsAdminClosure || dc.SalesCount != 2 || pricing.Format(dc.TotalPaid) != "14.00" {
		t.Fatalf("waiter closure = %+v", dc)
	}
	if pricing.Format(dc.TotalPending) != "7.00" || pricing.Format(dc.TotalVoided) != "6.00" {
		t.Errorf("waiter outstanding pending=%s voided=%s", dc.TotalPending, dc.TotalVoided)
	}

	again, err := tl.reports.CloseDay(ctx, tl.waiter, "")
	if err != nil {
		t.Fatalf("second CloseDay: %v", err)
	}
	if again.Closure != nil || again.Notice == "" {
		t.Errorf("second waiter closure = %+v, want notice only", again)
	}

	adminClose, err := tl.reports.CloseDay(ctx, tl.admin, "")
	if err != nil {
		t.Fatalf("CloseDay admin: %v", err)
	}
	if adminClose.Closure.SalesCount != 1 || pricing.Format(adminClose.Closure.TotalPaid) != "20.00" || !adminClose.Closure.IsAdminClosure {
		t.Errorf("admin closure = %+v", adminClose.Closure)
	}

	sealed := map[string]int{}
	for _, c := range tl.closures.closures {
		for _, id := range c.SaleIDs {
			sealed[id.String()]++
		}
	}
	for id, n := range sealed {
		if n != 1 {
			t.Errorf("sale %s sealed %d times", id, n)
		}
	}

	waiterView, _ := tl.reports.ListClosures(ctx, tl.waiter, "")
	adminView, _ := tl.reports.ListClosures(ctx, tl.admin, "")
	if len(waiterView) != 1 || len(adminView) != 2 {
		t.Errorf("closures visible waiter=%d admin=%d", len(waiterView), len(adminView))
	}

	got, err := tl.reports.GetClosure(ctx, dc.ID)
	if err != nil || got.ID != dc.ID {
		t.Errorf("GetClosure = %v, %v", got, err)
	}
}

func TestCloseDayPendingIsNotSealed(t *testing.T) {
	ctx := context.Background()
	tl := newTill(t)
	pendingRecord(tl, "solo", entity.CartItem{Name: "Refresco", Price: dec("1.50"), Quantity: 1})

	result, err := tl.reports.CloseDay(ctx, tl.waiter, "")
	if err != nil {
		t.Fatalf("CloseDay: %v", err)
	}
	if result.Closure != nil || len(tl.closures.closures) != 0 {
		t.Errorf("closure written for pending-only day: %+v", result)
	}
	if tl.sales.records[0].Closed {
		t.Error("pending sale was sealed")
	}
}
