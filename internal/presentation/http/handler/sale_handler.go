package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/pizzeria-pos/internal/application/service"
	"github.com/sangkips/pizzeria-pos/internal/domain/repository"
	"github.com/sangkips/pizzeria-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/pizzeria-pos/internal/presentation/http/dto/response"
	"github.com/sangkips/pizzeria-pos/pkg/pagination"
)

// SaleHandler handles ledger records
type SaleHandler struct {
	orderService *service.OrderService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(orderService *service.OrderService) *SaleHandler {
	return &SaleHandler{orderService: orderService}
}

// ListSales returns the sales history. Staff without the admin role only see
// their own sales.
func (h *SaleHandler) ListSales(c *gin.Context) {
	actor, ok := GetActor(c)
	if !ok {
		return
	}
	var query request.SaleListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.SaleFilterParams{
		Pagination: &pagination.Params{Page: query.Page, PerPage: query.PerPage},
		Date:       query.Date,
		Waiter:     query.Waiter,
		Notes:      query.Notes,
		Search:     query.Search,
	}
	if !actor.IsAdmin() {
		params.Waiter = actor.Name
	}

	page, err := h.orderService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, "Sales retrieved successfully", page)
}

// GetSale returns one ledger record
func (h *SaleHandler) GetSale(c *gin.Context) {
	actor, ok := GetActor(c)
	if !ok {
		return
	}
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}

	record, err := h.orderService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !actor.IsAdmin() && record.Waiter != actor.Name {
		response.NotFound(c, "Sale record not found")
		return
	}
	response.OK(c, "Sale retrieved successfully", record)
}

// EditSale loads a pending sale into the cart
func (h *SaleHandler) EditSale(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}

	view, err := h.orderService.EditPending(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sale loaded for editing", view)
}

// VoidSale parks the void behind the admin PIN
func (h *SaleHandler) VoidSale(c *gin.Context) {
	actor, ok := GetActor(c)
	if !ok {
		return
	}
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}

	pending, err := h.orderService.RequestVoid(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, "Admin PIN required", gin.H{"pending_authorization": pending})
}

// Reprint prints a copy of the receipt
func (h *SaleHandler) Reprint(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}

	receipt, err := h.orderService.Reprint(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt sent to printer", receipt)
}
