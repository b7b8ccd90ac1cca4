package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sangkips/pizzeria-pos/internal/domain/authgate"
	"github.com/sangkips/pizzeria-pos/internal/domain/cart"
	"github.com/sangkips/pizzeria-pos/internal/domain/entity"
	"github.com/sangkips/pizzeria-pos/internal/domain/enum"
	"github.com/sangkips/pizzeria-pos/internal/domain/pricing"
	"github.com/sangkips/pizzeria-pos/internal/domain/repository"
	"github.com/sangkips/pizzeria-pos/pkg/apperror"
	"github.com/shopspring/decimal"
)

// SessionService owns the till's open order: the cart, the customer draft,
// the link to a pending sale being edited and the authorization gate. Every
// mutation goes through its methods and is snapshotted to the session store.
type SessionService struct {
	mu     sync.Mutex
	cart   *cart.Cart
	loaded bool
	gate   *authgate.Gate

	store     repository.SessionStore
	menu      *CategoryService
	modifiers *ModifierService
	pizzas    *PizzaService
	auth      *AuthService
	settings  *SettingsService
}

// NewSessionService creates the session coordinator
func NewSessionService(
	store repository.SessionStore,
	menu *CategoryService,
	modifiers *ModifierService,
	pizzas *PizzaService,
	auth *AuthService,
	settings *SettingsService,
) *SessionService {
	return &SessionService{
		cart:      cart.New(),
		gate:      authgate.New(),
		store:     store,
		menu:      menu,
		modifiers: modifiers,
		pizzas:    pizzas,
		auth:      auth,
		settings:  settings,
	}
}

// SessionView is the open order as shown on the till
type SessionView struct {
	Items                []entity.CartItem       `json:"items"`
	Customer             entity.CustomerDetails  `json:"customer"`
	EditingReportID      *uuid.UUID              `json:"editing_report_id,omitempty"`
	PendingAuthorization *authgate.PendingAction `json:"pending_authorization,omitempty"`
	Total                decimal.Decimal         `json:"total"`
	ServedTotal          decimal.Decimal         `json:"served_total"`
	ConvertedTotal       decimal.Decimal         `json:"converted_total"`
	ExchangeRate         decimal.Decimal         `json:"exchange_rate"`
	ExchangeRateSource   enum.ExchangeRateSource `json:"exchange_rate_source"`
}

// ItemChange reports what a cart line operation did. Pending is set when
// the operation waits for an admin PIN.
type ItemChange struct {
	Item    *entity.CartItem        `json:"item,omitempty"`
	Removed bool                    `json:"removed"`
	Pending *authgate.PendingAction `json:"pending_authorization,omitempty"`
}

// Draft is the cart content handed to a commit
type Draft struct {
	Items           []entity.CartItem
	Served          []entity.CartItem
	Unserved        []entity.CartItem
	Customer        entity.CustomerDetails
	EditingReportID *uuid.UUID
}

// ensureLoaded restores the snapshot once per process. Callers hold s.mu.
func (s *SessionService) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	restored := cart.New()
	if _, err := s.store.Load(ctx, repository.SessionKeyCart, &restored.Items); err != nil {
		return err
	}
	if restored.Items == nil {
		restored.Items = []entity.CartItem{}
	}
	if _, err := s.store.Load(ctx, repository.SessionKeyCustomer, &restored.Customer); err != nil {
		return err
	}
	var editing uuid.UUID
	found, err := s.store.Load(ctx, repository.SessionKeyEditingID, &editing)
	if err != nil {
		return err
	}
	if found && editing != uuid.Nil {
		restored.EditingReportID = &editing
	}

	s.cart = restored
	s.loaded = true
	if len(restored.Items) > 0 {
		slog.Info("session restored", "items", len(restored.Items), "editing", restored.IsEditing())
	}
	return nil
}

// persist writes every session key. Callers hold s.mu.
func (s *SessionService) persist(ctx context.Context) error {
	if err := s.store.Save(ctx, repository.SessionKeyCart, s.cart.Items); err != nil {
		return err
	}
	if err := s.store.Save(ctx, repository.SessionKeyCustomer, s.cart.Customer); err != nil {
		return err
	}
	if s.cart.EditingReportID == nil {
		return s.store.Delete(ctx, repository.SessionKeyEditingID)
	}
	return s.store.Save(ctx, repository.SessionKeyEditingID, *s.cart.EditingReportID)
}

func (s *SessionService) lock(ctx context.Context) error {
	s.mu.Lock()
	if err := s.ensureLoaded(ctx); err != nil {
		s.mu.Unlock()
		return err
	}
	return nil
}

// View returns the open order with totals in both currencies
func (s *SessionService) View(ctx context.Context) (*SessionView, error) {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()
	return s.viewLocked(settings), nil
}

func (s *SessionService) viewLocked(settings *entity.AppSettings) *SessionView {
	items := make([]entity.CartItem, len(s.cart.Items))
	copy(items, s.cart.Items)
	total := s.cart.Total()
	rate := settings.ActiveRate()

	view := &SessionView{
		Items:              items,
		Customer:           s.cart.Customer,
		EditingReportID:    s.cart.EditingReportID,
		Total:              total,
		ServedTotal:        pricing.CartTotal(s.cart.Served()),
		ConvertedTotal:     pricing.Convert(total, rate),
		ExchangeRate:       rate,
		ExchangeRateSource: settings.ActiveExchangeRate,
	}
	if pending, ok := s.gate.Pending(); ok {
		view.PendingAuthorization = &pending
	}
	return view
}

// AddMenuItemInput represents a plain menu item added to the cart
type AddMenuItemInput struct {
	MenuItemID uuid.UUID
	Choices    []ModifierChoice
	Quantity   int
	Notes      string
}

// AddMenuItem prices a menu item with its chosen modifiers and adds it
func (s *SessionService) AddMenuItem(ctx context.Context, input *AddMenuItemInput) (*entity.CartItem, error) {
	if input.Quantity < 1 {
		return nil, apperror.NewFieldError("quantity", cart.ErrInvalidQuantity.Error())
	}
	item, err := s.availableItem(ctx, input.MenuItemID)
	if err != nil {
		return nil, err
	}
	if item.IsPizza || item.IsSpecialPizza {
		return nil, apperror.NewBadRequestError(item.Name + " must be configured with the pizza builder")
	}
	modifiers, err := s.modifiers.ResolveChoices(ctx, item, input.Choices)
	if err != nil {
		return nil, err
	}

	line := entity.CartItem{
		MenuItemID:        item.ID.String(),
		Name:              item.Name,
		Price:             item.Price,
		Quantity:          input.Quantity,
		SelectedModifiers: modifiers,
		Notes:             strings.TrimSpace(input.Notes),
	}
	return s.add(ctx, line)
}

// AddPizzaInput represents a configured pizza added to the cart
type AddPizzaInput struct {
	MenuItemID  uuid.UUID
	Size        *enum.PizzaSize
	Ingredients []entity.IngredientSelection
	Extras      []ModifierChoice
	Quantity    int
}

// AddPizza builds a pizza line and adds it as a distinct line
func (s *SessionService) AddPizza(ctx context.Context, input *AddPizzaInput) (*entity.CartItem, error) {
	item, err := s.availableItem(ctx, input.MenuItemID)
	if err != nil {
		return nil, err
	}
	extras, err := s.modifiers.ResolveChoices(ctx, item, input.Extras)
	if err != nil {
		return nil, err
	}
	line, err := s.pizzas.BuildPizza(ctx, item, &PizzaInput{
		Size:        input.Size,
		Ingredients: input.Ingredients,
		Extras:      extras,
		Quantity:    input.Quantity,
	})
	if err != nil {
		return nil, err
	}
	return s.add(ctx, line)
}

func (s *SessionService) availableItem(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	item, err := s.menu.GetMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if !item.Available {
		return nil, apperror.NewPreconditionError(item.Name + " is not available")
	}
	return item, nil
}

func (s *SessionService) add(ctx context.Context, line entity.CartItem) (*entity.CartItem, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	added, err := s.cart.Add(line)
	if err != nil {
		return nil, cartError(err)
	}
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	return &added, nil
}

// ReplaceItemInput carries the new modifiers and quantity of a line
type ReplaceItemInput struct {
	Choices  []ModifierChoice
	Quantity int
	Notes    string
}

// ReplaceItem edits an unserved line in place. Pizza lines keep their
// configuration; only quantity and notes change.
func (s *SessionService) ReplaceItem(ctx context.Context, id string, input *ReplaceItemInput) (*entity.CartItem, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	current, ok := s.cart.Find(id)
	s.mu.Unlock()
	if !ok {
		return nil, cartError(cart.ErrItemNotFound)
	}
	if current.IsServed {
		return nil, cartError(cart.ErrServedItemLocked)
	}

	line := current
	line.Quantity = input.Quantity
	line.Notes = strings.TrimSpace(input.Notes)
	if current.Pizza == nil && current.MenuItemID != "" {
		menuID, err := uuid.Parse(current.MenuItemID)
		if err != nil {
			return nil, apperror.NewBadRequestError("Cart line does not reference a menu item")
		}
		item, err := s.menu.GetMenuItem(ctx, menuID)
		if err != nil {
			return nil, err
		}
		modifiers, err := s.modifiers.ResolveChoices(ctx, item, input.Choices)
		if err != nil {
			return nil, err
		}
		line.SelectedModifiers = modifiers
	}

	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	replaced, err := s.cart.Replace(id, line)
	if err != nil {
		return nil, cartError(err)
	}
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	return &replaced, nil
}

// UpdateQuantity sets a line's quantity. Zero or less turns into a removal
// request, which may wait for authorization.
func (s *SessionService) UpdateQuantity(ctx context.Context, id string, quantity int) (*ItemChange, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	outcome, err := s.cart.UpdateQuantity(id, quantity)
	if err != nil {
		return nil, cartError(err)
	}
	if outcome == cart.QuantityRemovalRequested {
		return s.removeLocked(ctx, id)
	}
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	item, _ := s.cart.Find(id)
	return &ItemChange{Item: &item}, nil
}

// RemoveItem removes a line, or parks the removal behind the gate when the
// line was served or the cart is editing a pending sale.
func (s *SessionService) RemoveItem(ctx context.Context, id string) (*ItemChange, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()
	return s.removeLocked(ctx, id)
}

func (s *SessionService) removeLocked(ctx context.Context, id string) (*ItemChange, error) {
	needsAuth, err := s.cart.RemovalNeedsAuth(id)
	if err != nil {
		return nil, cartError(err)
	}

	if needsAuth {
		pending := s.gate.Require(authgate.PendingAction{Kind: authgate.ActionRemoveItem, Target: id}, func(ctx context.Context) error {
			if _, err := s.cart.Remove(id); err != nil {
				return cartError(err)
			}
			return s.persist(ctx)
		})
		return &ItemChange{Pending: &pending}, nil
	}

	removed, err := s.cart.Remove(id)
	if err != nil {
		return nil, cartError(err)
	}
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	return &ItemChange{Item: &removed, Removed: true}, nil
}

// ClearCart always waits for an admin PIN
func (s *SessionService) ClearCart(ctx context.Context) (authgate.PendingAction, error) {
	if err := s.lock(ctx); err != nil {
		return authgate.PendingAction{}, err
	}
	defer s.mu.Unlock()

	return s.gate.Require(authgate.PendingAction{Kind: authgate.ActionClearCart}, func(ctx context.Context) error {
		s.cart.Clear()
		return s.persist(ctx)
	}), nil
}

// SetCustomer replaces the customer draft
func (s *SessionService) SetCustomer(ctx context.Context, details entity.CustomerDetails) (*entity.CustomerDetails, error) {
	details.Name = strings.TrimSpace(details.Name)
	details.Instructions = strings.TrimSpace(details.Instructions)
	if details.PaymentMethod == "" {
		details.PaymentMethod = enum.DefaultPaymentMethod
	}

	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	s.cart.Customer = details
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	return &details, nil
}

// RequireAuthorization parks an action that is not a cart operation, such
// as voiding a sale. run executes while the session is locked and must not
// call back into the session.
func (s *SessionService) RequireAuthorization(action authgate.PendingAction, run authgate.Continuation) authgate.PendingAction {
	return s.gate.Require(action, run)
}

// Authorize checks an admin PIN and runs the waiting action. A wrong PIN
// keeps the action waiting.
func (s *SessionService) Authorize(ctx context.Context, pin string) (authgate.PendingAction, error) {
	if _, ok := s.gate.Pending(); !ok {
		return authgate.PendingAction{}, apperror.NewPreconditionError(authgate.ErrNothingPending.Error())
	}
	admin, err := s.auth.VerifyAdminPIN(ctx, pin)
	if err != nil {
		return authgate.PendingAction{}, err
	}

	if err := s.lock(ctx); err != nil {
		return authgate.PendingAction{}, err
	}
	defer s.mu.Unlock()

	action, err := s.gate.Approve(ctx)
	if errors.Is(err, authgate.ErrNothingPending) {
		return action, apperror.NewPreconditionError(err.Error())
	}
	if err != nil {
		return action, err
	}
	slog.Info("action authorized", "action", action.Kind, "target", action.Target, "staff", admin.Name)
	return action, nil
}

// DismissAuthorization drops the waiting action without running it
func (s *SessionService) DismissAuthorization() (authgate.PendingAction, bool) {
	return s.gate.Dismiss()
}

// LoadForEdit replaces the cart with a pending sale's lines, all served
func (s *SessionService) LoadForEdit(ctx context.Context, record *entity.SaleRecord) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()

	s.gate.Dismiss()
	customer := entity.NewCustomerDetails()
	customer.Name = record.CustomerName
	s.cart.LoadForEdit(record, customer)
	return s.persist(ctx)
}

// Commit hands the cart to fn and, when fn succeeds, starts a fresh order.
// A waiting authorization belongs to the old cart and is dropped.
func (s *SessionService) Commit(ctx context.Context, fn func(d *Draft) error) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()

	if s.cart.IsEmpty() {
		return cartError(cart.ErrEmptyCart)
	}

	items := make([]entity.CartItem, len(s.cart.Items))
	copy(items, s.cart.Items)
	draft := &Draft{
		Items:           items,
		Served:          s.cart.Served(),
		Unserved:        s.cart.Unserved(),
		Customer:        s.cart.Customer,
		EditingReportID: s.cart.EditingReportID,
	}
	if err := fn(draft); err != nil {
		return err
	}

	s.cart.Clear()
	s.gate.Dismiss()
	// The sale is already recorded; a failed snapshot only logs.
	if err := s.persist(ctx); err != nil {
		slog.Warn("saving session snapshot after commit failed", "error", err)
	}
	return nil
}

func cartError(err error) error {
	switch {
	case errors.Is(err, cart.ErrItemNotFound):
		return apperror.NewNotFoundError("Cart item")
	case errors.Is(err, cart.ErrServedItemLocked):
		return apperror.NewConflictError("Item was already served; its quantity cannot change")
	case errors.Is(err, cart.ErrInvalidQuantity):
		return apperror.NewFieldError("quantity", err.Error())
	case errors.Is(err, cart.ErrEmptyCart):
		return apperror.NewBadRequestError("Cart is empty")
	}
	return err
}
