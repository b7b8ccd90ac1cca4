package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pizzeria-pos/internal/domain/entity"
	"github.com/sangkips/pizzeria-pos/internal/domain/enum"
	"github.com/sangkips/pizzeria-pos/internal/domain/repository"
	"github.com/sangkips/pizzeria-pos/pkg/utils"
)

// --- sales ledger ---

type fakeSaleRepo struct {
	records []entity.SaleRecord
}

func (r *fakeSaleRepo) Create(ctx context.Context, record *entity.SaleRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	r.records = append([]entity.SaleRecord{*record}, r.records...)
	return nil
}

func (r *fakeSaleRepo) Replace(ctx context.Context, supersededID uuid.UUID, record *entity.SaleRecord) error {
	kept := r.records[:0]
	for _, rec := range r.records {
		if rec.ID != supersededID {
			kept = append(kept, rec)
		}
	}
	r.records = kept
	return r.Create(ctx, record)
}

func (r *fakeSaleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.SaleRecord, error) {
	for _, rec := range r.records {
		if rec.ID == id {
			out := rec
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeSaleRepo) Update(ctx context.Context, record *entity.SaleRecord) error {
	for i := range r.records {
		if r.records[i].ID == record.ID {
			r.records[i] = *record
		}
	}
	return nil
}

func (r *fakeSaleRepo) ListByDate(ctx context.Context, date string) ([]entity.SaleRecord, error) {
	var out []entity.SaleRecord
	for _, rec := range r.records {
		if rec.Date == date {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) List(ctx context.Context, params *repository.SaleFilterParams) ([]entity.SaleRecord, int64, error) {
	var out []entity.SaleRecord
	for _, rec := range r.records {
		if params.Date != "" && rec.Date != params.Date {
			continue
		}
		if params.Waiter != "" && !strings.EqualFold(rec.Waiter, params.Waiter) {
			continue
		}
		if params.Notes != "" && rec.Notes != params.Notes {
			continue
		}
		out = append(out, rec)
	}
	return out, int64(len(out)), nil
}

type fakeClosureRepo struct {
	sales    *fakeSaleRepo
	closures []entity.DayClosure
}

func (r *fakeClosureRepo) Seal(ctx context.Context, closure *entity.DayClosure) error {
	r.closures = append(r.closures, *closure)
	id := closure.ID
	for i := range r.sales.records {
		for _, saleID := range closure.SaleIDs {
			if r.sales.records[i].ID == saleID && !r.sales.records[i].Closed {
				r.sales.records[i].Closed = true
				r.sales.records[i].ClosureID = &id
			}
		}
	}
	return nil
}

func (r *fakeClosureRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.DayClosure, error) {
	for _, c := range r.closures {
		if c.ID == id {
			out := c
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeClosureRepo) ListByDate(ctx context.Context, date string) ([]entity.DayClosure, error) {
	var out []entity.DayClosure
	for _, c := range r.closures {
		if c.Date == date {
			out = append(out, c)
		}
	}
	return out, nil
}

// --- settings and staff ---

type fakeSettingsRepo struct {
	settings *entity.AppSettings
}

func (r *fakeSettingsRepo) Get(ctx context.Context) (*entity.AppSettings, error) {
	if r.settings == nil {
		return nil, nil
	}
	out := *r.settings
	return &out, nil
}

func (r *fakeSettingsRepo) Save(ctx context.Context, settings *entity.AppSettings) error {
	saved := *settings
	r.settings = &saved
	return nil
}

type fakeStaffRepo struct {
	staff []entity.Staff
}

func (r *fakeStaffRepo) Create(ctx context.Context, staff *entity.Staff) error {
	if staff.ID == uuid.Nil {
		staff.ID = uuid.New()
	}
	r.staff = append(r.staff, *staff)
	return nil
}

func (r *fakeStaffRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Staff, error) {
	for _, s := range r.staff {
		if s.ID == id {
			out := s
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeStaffRepo) GetByName(ctx context.Context, name string) (*entity.Staff, error) {
	for _, s := range r.staff {
		if strings.EqualFold(s.Name, name) {
			out := s
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeStaffRepo) Update(ctx context.Context, staff *entity.Staff) error {
	for i := range r.staff {
		if r.staff[i].ID == staff.ID {
			r.staff[i] = *staff
		}
	}
	return nil
}

func (r *fakeStaffRepo) Delete(ctx context.Context, id uuid.UUID) error {
	kept := r.staff[:0]
	for _, s := range r.staff {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	r.staff = kept
	return nil
}

func (r *fakeStaffRepo) List(ctx context.Context) ([]entity.Staff, error) {
	return append([]entity.Staff(nil), r.staff...), nil
}

func (r *fakeStaffRepo) ListByRole(ctx context.Context, role enum.UserRole) ([]entity.Staff, error) {
	var out []entity.Staff
	for _, s := range r.staff {
		if s.Role == role {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeStaffRepo) CountByRole(ctx context.Context, role enum.UserRole) (int64, error) {
	list, _ := r.ListByRole(ctx, role)
	return int64(len(list)), nil
}

func mustStaff(t *testing.T, name, pin string, role enum.UserRole) entity.Staff {
	t.Helper()
	hash, err := utils.HashPIN(pin)
	if err != nil {
		t.Fatalf("HashPIN: %v", err)
	}
	return entity.Staff{ID: uuid.New(), Name: name, PinHash: hash, Role: role}
}

// --- catalog ---

type fakeCategoryRepo struct {
	categories []entity.Category
	items      *fakeItemRepo
}

func (r *fakeCategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categories = append(r.categories, *c)
	return nil
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	for _, c := range r.categories {
		if c.ID == id {
			out := c
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	for _, c := range r.categories {
		if strings.EqualFold(c.Name, name) {
			out := c
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	for i := range r.categories {
		if r.categories[i].ID == c.ID {
			r.categories[i] = *c
		}
	}
	return nil
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	kept := r.categories[:0]
	for _, c := range r.categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	r.categories = kept
	return nil
}

func (r *fakeCategoryRepo) List(ctx context.Context) ([]entity.Category, error) {
	out := make([]entity.Category, len(r.categories))
	for i, c := range r.categories {
		c.Items, _ = r.items.ListByCategory(ctx, c.ID)
		out[i] = c
	}
	return out, nil
}

type fakeItemRepo struct {
	items []entity.MenuItem
}

func (r *fakeItemRepo) Create(ctx context.Context, item *entity.MenuItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.items = append(r.items, *item)
	return nil
}

func (r *fakeItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	for _, it := range r.items {
		if it.ID == id {
			out := it
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) GetByName(ctx context.Context, categoryID uuid.UUID, name string) (*entity.MenuItem, error) {
	for _, it := range r.items {
		if it.CategoryID == categoryID && strings.EqualFold(it.Name, name) {
			out := it
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) Update(ctx context.Context, item *entity.MenuItem) error {
	for i := range r.items {
		if r.items[i].ID == item.ID {
			r.items[i] = *item
		}
	}
	return nil
}

func (r *fakeItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	kept := r.items[:0]
	for _, it := range r.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	r.items = kept
	return nil
}

func (r *fakeItemRepo) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]entity.MenuItem, error) {
	var out []entity.MenuItem
	for _, it := range r.items {
		if it.CategoryID == categoryID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	list, _ := r.ListByCategory(ctx, categoryID)
	return int64(len(list)), nil
}

type fakeGroupRepo struct {
	groups []entity.ModifierGroup
}

func (r *fakeGroupRepo) Create(ctx context.Context, g *entity.ModifierGroup) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	r.groups = append(r.groups, *g)
	return nil
}

func (r *fakeGroupRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.ModifierGroup, error) {
	for _, g := range r.groups {
		if g.ID == id {
			out := g
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeGroupRepo) GetByTitle(ctx context.Context, title string) (*entity.ModifierGroup, error) {
	for _, g := range r.groups {
		if g.Title == title {
			out := g
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeGroupRepo) GetByTitles(ctx context.Context, titles []string) (map[string]entity.ModifierGroup, error) {
	out := make(map[string]entity.ModifierGroup)
	for _, title := range titles {
		if g, _ := r.GetByTitle(ctx, title); g != nil {
			out[title] = *g
		}
	}
	return out, nil
}

func (r *fakeGroupRepo) Update(ctx context.Context, g *entity.ModifierGroup) error {
	for i := range r.groups {
		if r.groups[i].ID == g.ID {
			r.groups[i] = *g
		}
	}
	return nil
}

func (r *fakeGroupRepo) Delete(ctx context.Context, id uuid.UUID) error {
	kept := r.groups[:0]
	for _, g := range r.groups {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	r.groups = kept
	return nil
}

func (r *fakeGroupRepo) List(ctx context.Context) ([]entity.ModifierGroup, error) {
	return append([]entity.ModifierGroup(nil), r.groups...), nil
}

type fakeIngredientRepo struct {
	ingredients []entity.PizzaIngredient
}

func (r *fakeIngredientRepo) Create(ctx context.Context, i *entity.PizzaIngredient) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	r.ingredients = append(r.ingredients, *i)
	return nil
}

func (r *fakeIngredientRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.PizzaIngredient, error) {
	for _, i := range r.ingredients {
		if i.ID == id {
			out := i
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeIngredientRepo) GetByName(ctx context.Context, name string) (*entity.PizzaIngredient, error) {
	for _, i := range r.ingredients {
		if strings.EqualFold(i.Name, name) {
			out := i
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeIngredientRepo) Update(ctx context.Context, i *entity.PizzaIngredient) error {
	for k := range r.ingredients {
		if r.ingredients[k].ID == i.ID {
			r.ingredients[k] = *i
		}
	}
	return nil
}

func (r *fakeIngredientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	kept := r.ingredients[:0]
	for _, i := range r.ingredients {
		if i.ID != id {
			kept = append(kept, i)
		}
	}
	r.ingredients = kept
	return nil
}

func (r *fakeIngredientRepo) List(ctx context.Context) ([]entity.PizzaIngredient, error) {
	return append([]entity.PizzaIngredient(nil), r.ingredients...), nil
}

type fakeBasePriceRepo struct {
	prices map[enum.PizzaSize]entity.PizzaBasePrice
}

func (r *fakeBasePriceRepo) List(ctx context.Context) ([]entity.PizzaBasePrice, error) {
	var out []entity.PizzaBasePrice
	for _, p := range r.prices {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Size < out[j].Size })
	return out, nil
}

func (r *fakeBasePriceRepo) Upsert(ctx context.Context, price *entity.PizzaBasePrice) error {
	if r.prices == nil {
		r.prices = make(map[enum.PizzaSize]entity.PizzaBasePrice)
	}
	r.prices[price.Size] = *price
	return nil
}

// --- session store ---

type memoryStore struct {
	mu       sync.Mutex
	values   map[string][]byte
	failSave bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: make(map[string][]byte)}
}

func (m *memoryStore) Load(ctx context.Context, key string, dst any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (m *memoryStore) Save(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSave {
		return errors.New("disk full")
	}
	m.values[key] = raw
	return nil
}

func (m *memoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// --- printing ---

type recordingPrinter struct {
	receipts []entity.Receipt
	tickets  []entity.KitchenTicket
}

func (p *recordingPrinter) PrintReceipt(ctx context.Context, r *entity.Receipt) {
	p.receipts = append(p.receipts, *r)
}

func (p *recordingPrinter) PrintKitchenTicket(ctx context.Context, t *entity.KitchenTicket) {
	p.tickets = append(p.tickets, *t)
}

// --- wiring ---

const (
	adminPIN  = "0000"
	waiterPIN = "1234"
)

var fixedNow = time.Date(2024, 5, 10, 20, 30, 0, 0, time.UTC)

// till wires every service over in-memory fakes, seeded with an admin, a
// waiter, a drinks category and a pizza catalog.
type till struct {
	sales     *fakeSaleRepo
	closures  *fakeClosureRepo
	settings  *fakeSettingsRepo
	staff     *fakeStaffRepo
	items     *fakeItemRepo
	groups    *fakeGroupRepo
	store     *memoryStore
	printer   *recordingPrinter
	session   *SessionService
	orders    *OrderService
	reports   *ReportService
	menu      *CategoryService
	modifiers *ModifierService
	pizzas    *PizzaService
	auth      *AuthService

	admin  Actor
	waiter Actor

	soda     entity.MenuItem
	burger   entity.MenuItem
	custom   entity.MenuItem
	hawaiian entity.MenuItem
}

func newTill(t *testing.T) *till {
	t.Helper()
	tl := &till{
		sales:    &fakeSaleRepo{},
		settings: &fakeSettingsRepo{},
		staff:    &fakeStaffRepo{},
		items:    &fakeItemRepo{},
		groups:   &fakeGroupRepo{},
		store:    newMemoryStore(),
		printer:  &recordingPrinter{},
	}
	tl.closures = &fakeClosureRepo{sales: tl.sales}

	admin := mustStaff(t, "Admin", adminPIN, enum.UserRoleAdmin)
	waiter := mustStaff(t, "Ana", waiterPIN, enum.UserRoleWaiter)
	tl.staff.staff = []entity.Staff{admin, waiter}
	tl.admin = Actor{StaffID: admin.ID, Name: admin.Name, Role: admin.Role}
	tl.waiter = Actor{StaffID: waiter.ID, Name: waiter.Name, Role: waiter.Role}

	categories := &fakeCategoryRepo{items: tl.items}
	drinks := entity.Category{ID: uuid.New(), Name: "Bebidas"}
	pizzas := entity.Category{ID: uuid.New(), Name: "Pizzas"}
	categories.categories = []entity.Category{drinks, pizzas}

	tl.groups.groups = []entity.ModifierGroup{
		{ID: uuid.New(), Title: "Término", SelectionType: enum.SelectionSingle, MinSelection: 1, MaxSelection: 1,
			Options: []entity.ModifierOption{{Name: "Medio", Price: dec("0")}, {Name: "Bien cocido", Price: dec("0")}}},
		{ID: uuid.New(), Title: "Extras", SelectionType: enum.SelectionMultiple, MaxSelection: 2,
			Options: []entity.ModifierOption{{Name: "Queso", Price: dec("1.00")}, {Name: "Tocineta", Price: dec("1.50")}, {Name: "Huevo", Price: dec("0.75")}}},
	}

	tl.soda = entity.MenuItem{ID: uuid.New(), CategoryID: drinks.ID, Name: "Refresco", Price: dec("1.50"), Available: true}
	tl.burger = entity.MenuItem{ID: uuid.New(), CategoryID: drinks.ID, Name: "Hamburguesa", Price: dec("5.00"), Available: true,
		ModifierGroups: []entity.ModifierAssignment{{Group: "Término", Label: "Término"}, {Group: "Extras", Label: "Adicionales"}}}
	tl.custom = entity.MenuItem{ID: uuid.New(), CategoryID: pizzas.ID, Name: "Pizza Personalizada", Available: true, IsPizza: true,
		ModifierGroups: []entity.ModifierAssignment{{Group: "Extras", Label: "EXTRA"}}}
	tl.hawaiian = entity.MenuItem{ID: uuid.New(), CategoryID: pizzas.ID, Name: "Hawaiana", Description: "Jamón y piña", Price: dec("14.00"),
		Available: true, IsPizza: true, IsSpecialPizza: true, DefaultIngredients: []string{"Jamón", "Piña"}}
	tl.items.items = []entity.MenuItem{tl.soda, tl.burger, tl.custom, tl.hawaiian}

	ingredients := &fakeIngredientRepo{ingredients: []entity.PizzaIngredient{
		{ID: uuid.New(), Name: "Pepperoni", Category: "A", Prices: entity.SizePrices{Small: dec("1.50"), Medium: dec("2.00"), Large: dec("3.00")}},
		{ID: uuid.New(), Name: "Mushroom", Category: "B", Prices: entity.SizePrices{Small: dec("1.00"), Medium: dec("1.50"), Large: dec("2.00")}},
		{ID: uuid.New(), Name: "Jamón", Category: "A", Prices: entity.SizePrices{Small: dec("1.50"), Medium: dec("2.00"), Large: dec("2.50")}},
		{ID: uuid.New(), Name: "Piña", Category: "B", Prices: entity.SizePrices{Small: dec("1.00"), Medium: dec("1.25"), Large: dec("1.75")}},
	}}
	basePrices := &fakeBasePriceRepo{}
	for size, price := range map[enum.PizzaSize]string{enum.PizzaSizeSmall: "6", enum.PizzaSizeMedium: "8", enum.PizzaSizeLarge: "12"} {
		_ = basePrices.Upsert(context.Background(), &entity.PizzaBasePrice{Size: size, Price: dec(price)})
	}

	settingsSvc := NewSettingsService(tl.settings)
	tl.auth = NewAuthService(tl.staff, utils.NewJWTManager("test-secret", time.Hour), 600, 50)
	tl.menu = NewCategoryService(categories, tl.items, tl.groups)
	tl.modifiers = NewModifierService(tl.groups)
	tl.pizzas = NewPizzaService(ingredients, basePrices)
	tl.session = NewSessionService(tl.store, tl.menu, tl.modifiers, tl.pizzas, tl.auth, settingsSvc)
	tl.orders = NewOrderService(tl.sales, tl.session, settingsSvc, tl.printer, NewMessageService("https://wa.me/"), time.UTC)
	tl.orders.now = func() time.Time { return fixedNow }
	tl.reports = NewReportService(tl.sales, tl.closures, time.UTC)
	tl.reports.now = func() time.Time { return fixedNow }
	return tl
}
