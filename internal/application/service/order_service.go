package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pizzeria-pos/internal/domain/authgate"
	"github.com/sangkips/pizzeria-pos/internal/domain/entity"
	"github.com/sangkips/pizzeria-pos/internal/domain/enum"
	"github.com/sangkips/pizzeria-pos/internal/domain/pricing"
	"github.com/sangkips/pizzeria-pos/internal/domain/repository"
	"github.com/sangkips/pizzeria-pos/internal/metrics"
	"github.com/sangkips/pizzeria-pos/pkg/apperror"
	"github.com/sangkips/pizzeria-pos/pkg/pagination"
	"github.com/shopspring/decimal"
)

const (
	ledgerDateLayout = "2006-01-02"
	ledgerTimeLayout = "15:04"

	// unpaidPaymentLabel is printed as the payment method of an order sent
	// without charging.
	unpaidPaymentLabel = "POR COBRAR"
)

// OrderService finalizes the open order into the sales ledger and manages
// ledger records afterwards
type OrderService struct {
	saleRepo repository.SaleRepository
	session  *SessionService
	settings *SettingsService
	printer  TicketPrinter
	messages *MessageService
	loc      *time.Location
	now      func() time.Time
}

// NewOrderService creates a new order service. loc is the till's time zone
// used for ledger dates.
func NewOrderService(
	saleRepo repository.SaleRepository,
	session *SessionService,
	settings *SettingsService,
	printer TicketPrinter,
	messages *MessageService,
	loc *time.Location,
) *OrderService {
	if loc == nil {
		loc = time.Local
	}
	return &OrderService{
		saleRepo: saleRepo,
		session:  session,
		settings: settings,
		printer:  printer,
		messages: messages,
		loc:      loc,
		now:      time.Now,
	}
}

// FinalizeInput represents the finalize input
type FinalizeInput struct {
	Paid          bool
	PaymentMethod string
}

// Breakdown splits an edited order into what was already owed and what was
// added
type Breakdown struct {
	PreviousBalance decimal.Decimal `json:"previous_balance"`
	Addition        decimal.Decimal `json:"addition"`
	Total           decimal.Decimal `json:"total"`
}

// FinalizeResult represents the finalize output
type FinalizeResult struct {
	Record       *entity.SaleRecord `json:"record"`
	Replaced     *uuid.UUID         `json:"replaced,omitempty"`
	Partial      bool               `json:"partial"`
	Breakdown    Breakdown          `json:"breakdown"`
	KitchenItems []entity.CartItem  `json:"kitchen_items"`
	Message      *ComposedMessage   `json:"message"`
}

// Finalize writes the open order to the ledger, paid or pending, and starts
// a fresh cart. Editing a pending sale replaces that record. When an unpaid
// edit adds lines, only the new lines go to the kitchen and the message.
func (s *OrderService) Finalize(ctx context.Context, actor Actor, input *FinalizeInput) (*FinalizeResult, error) {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if input.Paid && !settings.CanCharge(actor.Role) {
		return nil, apperror.NewForbiddenError("Waiters are not allowed to charge orders")
	}

	var (
		result   *FinalizeResult
		customer entity.CustomerDetails
		method   string
		now      = s.now().In(s.loc)
	)

	err = s.session.Commit(ctx, func(d *Draft) error {
		customer = d.Customer
		method = input.PaymentMethod
		if method == "" {
			method = d.Customer.PaymentMethod
		}
		if method == "" {
			method = enum.DefaultPaymentMethod
		}
		if input.Paid {
			if err := validatePaymentMethod(settings, method); err != nil {
				return err
			}
		}

		notes := method
		if !input.Paid {
			notes = enum.SaleNotePending
		}

		record := &entity.SaleRecord{
			ID:           uuid.New(),
			Date:         now.Format(ledgerDateLayout),
			Time:         now.Format(ledgerTimeLayout),
			TableNumber:  d.Customer.TableNumber(),
			Waiter:       actor.Name,
			CustomerName: d.Customer.Name,
			Total:        pricing.CartTotal(d.Items),
			VoidedAmount: decimal.Zero,
			Order:        servedCopy(d.Items),
			Type:         enum.SaleTypeSale,
			Notes:        notes,
		}

		if d.EditingReportID != nil {
			previous, err := s.saleRepo.GetByID(ctx, *d.EditingReportID)
			if err != nil {
				return err
			}
			if previous == nil {
				return apperror.NewNotFoundError("Sale record being edited")
			}
			if !previous.IsPending() || previous.Closed {
				return apperror.NewPreconditionError("Only open pending sales can be replaced")
			}
			if err := s.saleRepo.Replace(ctx, previous.ID, record); err != nil {
				return err
			}
		} else if err := s.saleRepo.Create(ctx, record); err != nil {
			return err
		}

		partial := d.EditingReportID != nil && !input.Paid && len(d.Unserved) > 0
		kitchenItems := d.Items
		if partial {
			kitchenItems = d.Unserved
		}

		result = &FinalizeResult{
			Record:       record,
			Replaced:     d.EditingReportID,
			Partial:      partial,
			KitchenItems: kitchenItems,
			Breakdown: Breakdown{
				PreviousBalance: pricing.CartTotal(d.Served),
				Addition:        pricing.CartTotal(d.Unserved),
				Total:           record.Total,
			},
			Message: s.messages.Compose(settings.TargetNumber, &OrderMessage{
				Waiter:        actor.Name,
				Reference:     d.Customer.Name,
				Instructions:  d.Customer.Instructions,
				Items:         d.Items,
				Editing:       d.EditingReportID != nil,
				Unpaid:        !input.Paid,
				PaymentMethod: method,
			}),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	status := "paid"
	if !input.Paid {
		status = "pending"
	}
	metrics.SalesFinalized.WithLabelValues(status, strconv.FormatBool(result.Replaced != nil)).Inc()
	slog.Info("sale finalized",
		"sale_id", result.Record.ID,
		"staff", actor.Name,
		"status", status,
		"total", result.Record.Total.String(),
		"partial", result.Partial,
	)

	s.printFinalized(ctx, actor, settings, result, customer, method, input.Paid, now)
	return result, nil
}

func (s *OrderService) printFinalized(ctx context.Context, actor Actor, settings *entity.AppSettings, result *FinalizeResult, customer entity.CustomerDetails, method string, paid bool, now time.Time) {
	action := enum.KitchenActionNew
	if result.Partial {
		action = enum.KitchenActionAddition
	}
	s.printer.PrintKitchenTicket(ctx, &entity.KitchenTicket{
		Action:       action,
		BusinessName: settings.BusinessName,
		Reference:    customer.Name,
		Takeaway:     customer.Takeaway,
		Waiter:       actor.Name,
		Items:        result.KitchenItems,
		Observations: customer.Instructions,
		PrintedAt:    now,
	})

	receipt := &entity.Receipt{
		BusinessName:    settings.BusinessName,
		Title:           entity.ReceiptTitleOrder,
		Reference:       customer.Name,
		Waiter:          actor.Name,
		Items:           result.KitchenItems,
		PreviousBalance: decimal.Zero,
		PaymentMethod:   method,
		Instructions:    customer.Instructions,
		PrintedAt:       now,
	}
	if !paid {
		receipt.PaymentMethod = unpaidPaymentLabel
	}
	if result.Partial {
		receipt.Title = entity.ReceiptTitleAddition
		receipt.PreviousBalance = result.Breakdown.PreviousBalance
	}
	s.printer.PrintReceipt(ctx, receipt)
}

func validatePaymentMethod(settings *entity.AppSettings, method string) error {
	if method == enum.SaleNotePending || method == enum.SaleNoteVoided {
		return apperror.NewFieldError("payment_method", "Invalid payment method")
	}
	if len(settings.PaymentMethods) > 0 && !slices.Contains(settings.PaymentMethods, method) {
		return apperror.NewFieldError("payment_method", fmt.Sprintf("Payment method %q is not accepted", method))
	}
	return nil
}

func servedCopy(items []entity.CartItem) []entity.CartItem {
	out := make([]entity.CartItem, len(items))
	copy(out, items)
	for i := range out {
		out[i].IsServed = true
	}
	return out
}

// GetSale retrieves a sale record by ID
func (s *OrderService) GetSale(ctx context.Context, id uuid.UUID) (*entity.SaleRecord, error) {
	record, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperror.NewNotFoundError("Sale record")
	}
	return record, nil
}

// ListSales returns a page of the ledger, newest first
func (s *OrderService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.Page[entity.SaleRecord], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.Default()
	}
	params.Pagination.Normalize()

	records, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPage(records, params.Pagination, total), nil
}

// EditPending loads a pending sale into the cart so lines can be added
func (s *OrderService) EditPending(ctx context.Context, id uuid.UUID) (*SessionView, error) {
	record, err := s.GetSale(ctx, id)
	if err != nil {
		return nil, err
	}
	if !record.IsPending() || record.Closed {
		return nil, apperror.NewPreconditionError("Only open pending sales can be edited")
	}
	if err := s.session.LoadForEdit(ctx, record); err != nil {
		return nil, err
	}
	return s.session.View(ctx)
}

// RequestVoid parks the void of a sale behind the admin PIN gate
func (s *OrderService) RequestVoid(ctx context.Context, actor Actor, id uuid.UUID) (authgate.PendingAction, error) {
	record, err := s.GetSale(ctx, id)
	if err != nil {
		return authgate.PendingAction{}, err
	}
	if record.IsVoided() {
		return authgate.PendingAction{}, apperror.NewConflictError("Sale is already voided")
	}
	if record.Closed {
		return authgate.PendingAction{}, apperror.NewPreconditionError("Sale was sealed by a day closure")
	}

	action := authgate.PendingAction{Kind: authgate.ActionVoidSale, Target: id.String()}
	return s.session.RequireAuthorization(action, func(ctx context.Context) error {
		return s.voidSale(ctx, actor, id)
	}), nil
}

// voidSale zeroes the record in place. Voiding an order still waiting to be
// charged tells the kitchen to stop it.
func (s *OrderService) voidSale(ctx context.Context, actor Actor, id uuid.UUID) error {
	record, err := s.GetSale(ctx, id)
	if err != nil {
		return err
	}
	if record.IsVoided() {
		return nil
	}
	wasPending := record.IsPending()

	record.Void()
	if err := s.saleRepo.Update(ctx, record); err != nil {
		return err
	}
	metrics.SalesVoided.Inc()
	slog.Info("sale voided", "sale_id", record.ID, "staff", actor.Name, "voided_amount", record.VoidedAmount.String())

	if wasPending {
		settings, err := s.settings.GetSettings(ctx)
		if err != nil {
			slog.Warn("skipping cancellation ticket", "sale_id", record.ID, "error", err)
			return nil
		}
		s.printer.PrintKitchenTicket(ctx, &entity.KitchenTicket{
			Action:       enum.KitchenActionCancellation,
			BusinessName: settings.BusinessName,
			Reference:    saleReference(record),
			Waiter:       record.Waiter,
			Items:        record.Order,
			PrintedAt:    s.now().In(s.loc),
		})
	}
	return nil
}

// Reprint prints a copy of a ledger record's receipt
func (s *OrderService) Reprint(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	record, err := s.GetSale(ctx, id)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	method := record.Notes
	if method == "" {
		method = "No especificado"
	}
	receipt := &entity.Receipt{
		BusinessName:    settings.BusinessName,
		Title:           entity.ReceiptTitleCopy,
		Reference:       saleReference(record),
		Waiter:          record.Waiter,
		Items:           record.Order,
		PreviousBalance: decimal.Zero,
		PaymentMethod:   method,
		PrintedAt:       s.now().In(s.loc),
	}
	s.printer.PrintReceipt(ctx, receipt)
	return receipt, nil
}

func saleReference(record *entity.SaleRecord) string {
	switch {
	case record.CustomerName != "":
		return record.CustomerName
	case record.TableNumber > 0:
		return "Ref: " + strconv.Itoa(record.TableNumber)
	}
	return "Pedido Directo"
}
