package cart

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/pizzeria-pos/internal/domain/entity"
	"github.com/sangkips/pizzeria-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func plain(name, price string, qty int) entity.CartItem {
	return entity.CartItem{Name: name, Price: dec(price), Quantity: qty}
}

func withModifier(name, price string) entity.CartItem {
	item := plain(name, price, 1)
	item.SelectedModifiers = []entity.SelectedModifier{
		{GroupTitle: "Borde", Option: entity.ModifierOption{Name: "Queso", Price: dec("1.00")}},
	}
	return item
}

func TestAddMerge(t *testing.T) {
	tests := []struct {
		name      string
		first     entity.CartItem
		second    entity.CartItem
		served    bool
		wantLines int
		wantQty   int
	}{
		{name: "plain lines merge", first: plain("Refresco", "1.50", 1), second: plain("Refresco", "1.50", 2), wantLines: 1, wantQty: 3},
		{name: "different names stay apart", first: plain("Refresco", "1.50", 1), second: plain("Agua", "1.00", 1), wantLines: 2, wantQty: 1},
		{name: "modifier lines never merge", first: withModifier("Tequeños", "4.00"), second: withModifier("Tequeños", "4.00"), wantLines: 2, wantQty: 1},
		{name: "plain does not merge into modifier line", first: withModifier("Tequeños", "4.00"), second: plain("Tequeños", "4.00", 1), wantLines: 2, wantQty: 1},
		{name: "served line is not a merge target", first: plain("Refresco", "1.50", 1), second: plain("Refresco", "1.50", 1), served: true, wantLines: 2, wantQty: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			if _, err := c.Add(tt.first); err != nil {
				t.Fatalf("Add: %v", err)
			}
			if tt.served {
				c.Items[0].IsServed = true
			}
			if _, err := c.Add(tt.second); err != nil {
				t.Fatalf("Add: %v", err)
			}
			if len(c.Items) != tt.wantLines {
				t.Fatalf("lines = %d, want %d", len(c.Items), tt.wantLines)
			}
			if c.Items[0].Quantity != tt.wantQty {
				t.Errorf("first line quantity = %d, want %d", c.Items[0].Quantity, tt.wantQty)
			}
		})
	}
}

func TestAddPizzaNeverMerges(t *testing.T) {
	c := New()
	pizza := entity.CartItem{Name: "Pizza Mediana", Price: dec("8.00"), Quantity: 1, Pizza: &entity.PizzaConfiguration{Size: enum.PizzaSizeMedium}}
	_, _ = c.Add(pizza)
	_, _ = c.Add(pizza)
	if len(c.Items) != 2 {
		t.Fatalf("lines = %d, want 2", len(c.Items))
	}
	if c.Items[0].ID == c.Items[1].ID {
		t.Error("pizza lines share an id")
	}
}

func TestUpdateQuantity(t *testing.T) {
	c := New()
	a, _ := c.Add(plain("Refresco", "1.50", 1))
	b, _ := c.Add(plain("Agua", "1.00", 1))
	c.Items[1].IsServed = true

	if out, err := c.UpdateQuantity(a.ID, 4); err != nil || out != QuantityUpdated {
		t.Fatalf("UpdateQuantity = %v, %v", out, err)
	}
	if c.Items[0].Quantity != 4 {
		t.Errorf("quantity = %d, want 4", c.Items[0].Quantity)
	}

	for _, q := range []int{0, 2, 5} {
		if _, err := c.UpdateQuantity(b.ID, q); !errors.Is(err, ErrServedItemLocked) {
			t.Errorf("served update to %d err = %v", q, err)
		}
	}
	if c.Items[1].Quantity != 1 || len(c.Items) != 2 {
		t.Errorf("served line changed: %+v", c.Items[1])
	}

	if out, err := c.UpdateQuantity(a.ID, 0); err != nil || out != QuantityRemovalRequested {
		t.Errorf("zero quantity = %v, %v", out, err)
	}
	if c.Items[0].Quantity != 4 {
		t.Errorf("removal request mutated quantity to %d", c.Items[0].Quantity)
	}

	if _, err := c.UpdateQuantity("missing", 2); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("missing err = %v", err)
	}
}

func TestRemovalNeedsAuth(t *testing.T) {
	c := New()
	a, _ := c.Add(plain("Refresco", "1.50", 1))
	b, _ := c.Add(plain("Agua", "1.00", 1))
	c.Items[1].IsServed = true

	if need, _ := c.RemovalNeedsAuth(a.ID); need {
		t.Error("unserved line outside edit should not need auth")
	}
	if need, _ := c.RemovalNeedsAuth(b.ID); !need {
		t.Error("served line should need auth")
	}

	id := uuid.New()
	c.EditingReportID = &id
	if need, _ := c.RemovalNeedsAuth(a.ID); !need {
		t.Error("any line of an edit should need auth")
	}

	if _, err := c.RemovalNeedsAuth("missing"); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("missing err = %v", err)
	}
}

func TestRemoveAndReplace(t *testing.T) {
	c := New()
	a, _ := c.Add(plain("Refresco", "1.50", 1))
	b, _ := c.Add(plain("Agua", "1.00", 1))

	edited := plain("Refresco grande", "2.50", 2)
	got, err := c.Replace(a.ID, edited)
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if got.ID != a.ID || c.Items[0].Name != "Refresco grande" {
		t.Errorf("replace lost identity: %+v", c.Items[0])
	}

	if _, err := c.Remove(b.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(c.Items) != 1 {
		t.Errorf("lines = %d, want 1", len(c.Items))
	}

	c.Items[0].IsServed = true
	if _, err := c.Replace(a.ID, edited); !errors.Is(err, ErrServedItemLocked) {
		t.Errorf("replace served err = %v", err)
	}
}

func TestClear(t *testing.T) {
	c := New()
	_, _ = c.Add(plain("Refresco", "1.50", 1))
	c.Customer = entity.CustomerDetails{Name: "7", PaymentMethod: "Zelle", Instructions: "sin hielo"}
	id := uuid.New()
	c.EditingReportID = &id

	c.Clear()
	if !c.IsEmpty() || c.IsEditing() {
		t.Errorf("cart not cleared: %+v", c)
	}
	if c.Customer != entity.NewCustomerDetails() {
		t.Errorf("customer = %+v", c.Customer)
	}
}

func TestLoadForEditAndSplit(t *testing.T) {
	record := &entity.SaleRecord{
		ID: uuid.New(),
		Order: []entity.CartItem{
			{ID: "a", Name: "Pizza Mediana", Price: dec("10.00"), Quantity: 1},
			{ID: "b", Name: "Refresco", Price: dec("2.50"), Quantity: 2},
		},
	}

	c := New()
	c.LoadForEdit(record, entity.CustomerDetails{Name: "4", PaymentMethod: "Efectivo"})
	if !c.IsEditing() || *c.EditingReportID != record.ID {
		t.Fatal("editing id not set")
	}
	if record.Order[0].IsServed {
		t.Error("record snapshot was mutated")
	}

	_, _ = c.Add(plain("Refresco", "2.50", 2))
	if len(c.Items) != 3 {
		t.Fatalf("lines = %d, want 3 (served lines are not merge targets)", len(c.Items))
	}
	if len(c.Served()) != 2 || len(c.Unserved()) != 1 {
		t.Errorf("served/unserved = %d/%d", len(c.Served()), len(c.Unserved()))
	}
	if got := c.Total().StringFixed(2); got != "20.00" {
		t.Errorf("total = %s, want 20.00", got)
	}

	for _, it := range c.Snapshot() {
		if !it.IsServed {
			t.Errorf("snapshot line %s not served", it.Name)
		}
	}
	if c.Items[2].IsServed {
		t.Error("Snapshot mutated the live cart")
	}
}
