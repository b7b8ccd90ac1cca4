package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/sangkips/pizzeria-pos/internal/domain/authgate"
	"github.com/sangkips/pizzeria-pos/internal/domain/entity"
	"github.com/sangkips/pizzeria-pos/internal/domain/enum"
	"github.com/sangkips/pizzeria-pos/internal/domain/pricing"
	"github.com/sangkips/pizzeria-pos/pkg/apperror"
)

func errCode(err error) int {
	if err == nil {
		return 0
	}
	return apperror.GetAppError(err).Code
}

func TestAddMenuItemMergesPlainLines(t *testing.T) {
	ctx := context.Background()
	tl := newTill(t)

	for i := 0; i < 2; i++ {
		if _, err := tl.session.AddMenuItem(ctx, &AddMenuItemInput{MenuItemID: tl.soda.ID, Quantity: 1}); err != nil {
			t.Fatalf("AddMenuItem: %v", err)
		}
	}
	burger := &AddMenuItemInput{
		MenuItemID: tl.burger.ID,
		Choices:    []ModifierChoice{{Group: "Término", Option: "Medio"}},
		Quantity:   1,
	}
	for i := 0; i < 2; i++ {
		if _, err := tl.session.AddMenuItem(ctx, burger); err != nil {
			t.Fatalf("AddMenuItem burger: %v", err)
		}
	}

	view, err := tl.session.View(ctx)
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if len(view.Items) != 3 {
		t.Fatalf("lines = %d, want 3 (merged soda, two burgers)", len(view.Items))
	}
	if view.Items[0].Quantity != 2 {
		t.Errorf("soda quantity = %d, want 2", view.Items[0].Quantity)
	}
	if got := pricing.Format(view.Total); got != "13.00" {
		t.Errorf("total = %s, want 13.00", got)
	}
	// 13.00 at the default parallel rate of 40
	if got := pricing.Format(view.ConvertedTotal); got != "520.00" {
		t.Errorf("converted total = %s, want 520.00", got)
	}
}

func TestAddMenuItemRejections(t *testing.T) {
	ctx := context.Background()
	tl := newTill(t)

	tests := []struct {
		name  string
		input *AddMenuItemInput
		code  int
	}{
		{"zero quantity", &AddMenuItemInput{MenuItemID: tl.soda.ID}, http.StatusUnprocessableEntity},
		{"pizza needs builder", &AddMenuItemInput{MenuItemID: tl.custom.ID, Quantity: 1}, http.StatusBadRequest},
		{"required modifier missing", &AddMenuItemInput{MenuItemID: tl.burger.ID, Quantity: 1}, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tl.session.AddMenuItem(ctx, tt.input)
			if got := errCode(err); got != tt.code {
				t.Errorf("code = %d, want %d (err %v)", got, tt.code, err)
			}
		})
	}
}

func TestAddPizza(t *testing.T) {
	ctx := context.Background()
	tl := newTill(t)

	size := enum.PizzaSizeMedium
	line, err := tl.session.AddPizza(ctx, &AddPizzaInput{
		MenuItemID:  tl.custom.ID,
		Size:        &size,
		Ingredients: []entity.IngredientSelection{{Name: "Pepperoni", Half: enum.PizzaHalfFull}},
		Quantity:    1,
	})
	if err != nil {
		t.Fatalf("AddPizza: %v", err)
	}
	if got := pricing.Format(line.Price); got != "10.00" {
		t.Errorf("price = %s, want 10.00", got)
	}
	if line.Pizza == nil || line.Pizza.Size != enum.PizzaSizeMedium {
		t.Errorf("configuration = %+v", line.Pizza)
	}

	// identical pizzas stay on separate lines
	if _, err := tl.session.AddPizza(ctx, &AddPizzaInput{
		MenuItemID:  tl.custom.ID,
		Size:        &size,
		Ingredients: []entity.IngredientSelection{{Name: "Pepperoni", Half: enum.PizzaHalfFull}},
		Quantity:    1,
	}); err != nil {
		t.Fatalf("AddPizza: %v", err)
	}
	view, _ := tl.session.View(ctx)
	if len(view.Items) != 2 {
		t.Errorf("lines = %d, want 2", len(view.Items))
	}
}

func TestServedLinesNeedAuthorization(t *testing.T) {
	ctx := context.Background()
	tl := newTill(t)

	record := pendingRecord(tl, "Mesa 4", entity.CartItem{ID: "served-1", Name: "Pizza", Price: dec("15.00"), Quantity: 1})
	if _, err := tl.orders.EditPending(ctx, record.ID); err != nil {
		t.Fatalf("EditPending: %v", err)
	}

	if _, err := tl.session.UpdateQuantity(ctx, "served-1", 3); errCode(err) != http.StatusConflict {
		t.Errorf("UpdateQuantity on served line err = %v, want conflict", err)
	}

	change, err := tl.session.RemoveItem(ctx, "served-1")
	if err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if change.Pending == nil || change.Pending.Kind != authgate.ActionRemoveItem || change.Removed {
		t.Fatalf("change = %+v, want pending removal", change)
	}

	if _, err := tl.session.Authorize(ctx, waiterPIN); errCode(err) != http.StatusUnauthorized {
		t.Errorf("Authorize with waiter PIN err = %v, want 401", err)
	}
	view, _ := tl.session.View(ctx)
	if view.PendingAuthorization == nil || len(view.Items) != 1 {
		t.Fatalf("wrong PIN changed state: %+v", view)
	}

	action, err := tl.session.Authorize(ctx, adminPIN)
	if err != nil {
		t.Fatalf("Authorize: %v", err)
	}
	if action.Target != "served-1" {
		t.Errorf("authorized target = %q", action.Target)
	}
	view, _ = tl.session.View(ctx)
	if len(view.Items) != 0 || view.PendingAuthorization != nil {
		t.Errorf("after authorize view = %+v", view)
	}
}

func TestRemoveUnservedLineIsImmediate(t *testing.T) {
	ctx := context.Background()
	tl := newTill(t)

	line, err := tl.session.AddMenuItem(ctx, &AddMenuItemInput{MenuItemID: tl.soda.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("AddMenuItem: %v", err)
	}
	change, err := tl.session.UpdateQuantity(ctx, line.ID, 0)
	if err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	if !change.Removed || change.Pending != nil {
		t.Errorf("change = %+v, want immediate removal", change)
	}
}

func TestClearCartThroughGate(t *testing.T) {
	ctx := context.Background()
	tl := newTill(t)

	if _, err := tl.session.Authorize(ctx, adminPIN); errCode(err) != http.StatusPreconditionFailed {
		t.Errorf("Authorize with nothing pending err = %v, want 412", err)
	}

	if _, err := tl.session.AddMenuItem(ctx, &AddMenuItemInput{MenuItemID: tl.soda.ID, Quantity: 1}); err != nil {
		t.Fatalf("AddMenuItem: %v", err)
	}
	pending, err := tl.session.ClearCart(ctx)
	if err != nil || pending.Kind != authgate.ActionClearCart {
		t.Fatalf("ClearCart = %+v, %v", pending, err)
	}

	if _, ok := tl.session.DismissAuthorization(); !ok {
		t.Fatal("DismissAuthorization found nothing pending")
	}
	view, _ := tl.session.View(ctx)
	if len(view.Items) != 1 {
		t.Fatalf("dismissed clear emptied the cart")
	}

	if _, err := tl.session.ClearCart(ctx); err != nil {
		t.Fatalf("ClearCart: %v", err)
	}
	if _, err := tl.session.Authorize(ctx, adminPIN); err != nil {
		t.Fatalf("Authorize: %v", err)
	}
	view, _ = tl.session.View(ctx)
	if len(view.Items) != 0 || view.Customer.PaymentMethod != enum.DefaultPaymentMethod {
		t.Errorf("after clear view = %+v", view)
	}
}

func TestSessionSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	tl := newTill(t)

	if _, err := tl.session.AddMenuItem(ctx, &AddMenuItemInput{MenuItemID: tl.soda.ID, Quantity: 3}); err != nil {
		t.Fatalf("AddMenuItem: %v", err)
	}
	if _, err := tl.session.SetCustomer(ctx, entity.CustomerDetails{Name: " 7 ", PaymentMethod: "Zelle"}); err != nil {
		t.Fatalf("SetCustomer: %v", err)
	}

	restarted := NewSessionService(tl.store, tl.menu, tl.modifiers, tl.pizzas, tl.auth, NewSettingsService(tl.settings))
	view, err := restarted.View(ctx)
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if len(view.Items) != 1 || view.Items[0].Quantity != 3 {
		t.Errorf("restored items = %+v", view.Items)
	}
	if view.Customer.Name != "7" || view.Customer.PaymentMethod != "Zelle" {
		t.Errorf("restored customer = %+v", view.Customer)
	}
}

func TestReplaceItem(t *testing.T) {
	ctx := context.Background()
	tl := newTill(t)

	line, err := tl.session.AddMenuItem(ctx, &AddMenuItemInput{
		MenuItemID: tl.burger.ID,
		Choices:    []ModifierChoice{{Group: "Término", Option: "Medio"}},
		Quantity:   1,
	})
	if err != nil {
		t.Fatalf("AddMenuItem: %v", err)
	}

	replaced, err := tl.session.ReplaceItem(ctx, line.ID, &ReplaceItemInput{
		Choices: []ModifierChoice{
			{Group: "Término", Option: "Bien cocido"},
			{Group: "Extras", Option: "Queso"},
		},
		Quantity: 2,
	})
	if err != nil {
		t.Fatalf("ReplaceItem: %v", err)
	}
	if replaced.ID != line.ID || replaced.Quantity != 2 || len(replaced.SelectedModifiers) != 2 {
		t.Errorf("replaced = %+v", replaced)
	}
	if got := pricing.Format(pricing.LineTotal(*replaced)); got != "12.00" {
		t.Errorf("line total = %s, want 12.00", got)
	}

	if _, err := tl.session.ReplaceItem(ctx, "missing", &ReplaceItemInput{Quantity: 1}); errCode(err) != http.StatusNotFound {
		t.Errorf("missing line err = %v", err)
	}
}
