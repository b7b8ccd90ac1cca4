package authgate

import (
	"context"
	"errors"
	"testing"
)

func TestApproveRunsContinuation(t *testing.T) {
	g := New()
	ran := 0
	g.Require(PendingAction{Kind: ActionVoidSale, Target: "s1"}, func(ctx context.Context) error {
		ran++
		return nil
	})

	pending, ok := g.Pending()
	if !ok || pending.Kind != ActionVoidSale || pending.Target != "s1" {
		t.Fatalf("Pending = %+v, %v", pending, ok)
	}

	action, err := g.Approve(context.Background())
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if action.Kind != ActionVoidSale || ran != 1 {
		t.Errorf("action = %+v, ran = %d", action, ran)
	}
	if _, ok := g.Pending(); ok {
		t.Error("gate still pending after approve")
	}
	if _, err := g.Approve(context.Background()); !errors.Is(err, ErrNothingPending) {
		t.Errorf("second approve err = %v", err)
	}
	if ran != 1 {
		t.Errorf("continuation ran %d times", ran)
	}
}

func TestDismissDiscards(t *testing.T) {
	g := New()
	ran := false
	g.Require(PendingAction{Kind: ActionClearCart}, func(ctx context.Context) error {
		ran = true
		return nil
	})

	action, ok := g.Dismiss()
	if !ok || action.Kind != ActionClearCart {
		t.Errorf("Dismiss = %+v, %v", action, ok)
	}
	if _, err := g.Approve(context.Background()); !errors.Is(err, ErrNothingPending) {
		t.Errorf("approve after dismiss err = %v", err)
	}
	if ran {
		t.Error("dismissed continuation ran")
	}
	if _, ok := g.Dismiss(); ok {
		t.Error("dismiss on idle gate reported a pending action")
	}
}

func TestRequireReplacesPrevious(t *testing.T) {
	g := New()
	var ran []ActionKind
	g.Require(PendingAction{Kind: ActionRemoveItem, Target: "a"}, func(ctx context.Context) error {
		ran = append(ran, ActionRemoveItem)
		return nil
	})
	g.Require(PendingAction{Kind: ActionClearCart}, func(ctx context.Context) error {
		ran = append(ran, ActionClearCart)
		return nil
	})

	if _, err := g.Approve(context.Background()); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if len(ran) != 1 || ran[0] != ActionClearCart {
		t.Errorf("ran = %v", ran)
	}
}

func TestApproveClearsOnError(t *testing.T) {
	g := New()
	boom := errors.New("boom")
	g.Require(PendingAction{Kind: ActionVoidSale}, func(ctx context.Context) error { return boom })

	if _, err := g.Approve(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Approve err = %v", err)
	}
	if _, ok := g.Pending(); ok {
		t.Error("failed continuation left the gate pending")
	}
}
