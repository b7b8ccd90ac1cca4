package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/pizzeria-pos/internal/application/service"
	"github.com/sangkips/pizzeria-pos/internal/domain/entity"
	"github.com/sangkips/pizzeria-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/pizzeria-pos/internal/presentation/http/dto/response"
)

// SessionHandler handles the open order on the till
type SessionHandler struct {
	sessionService *service.SessionService
	orderService   *service.OrderService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *service.SessionService, orderService *service.OrderService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		orderService:   orderService,
	}
}

// GetSession returns the cart with its totals
// @Summary Get open order
// @Tags session
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /session [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	view, err := h.sessionService.View(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Session retrieved successfully", view)
}

// AddItem adds a menu item with its modifiers
// @Summary Add item
// @Tags session
// @Accept json
// @Produce json
// @Param request body request.AddItemRequest true "Menu item"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /session/items [post]
func (h *SessionHandler) AddItem(c *gin.Context) {
	var req request.AddItemRequest
	if !BindJSON(c, &req) {
		return
	}

	line, err := h.sessionService.AddMenuItem(c.Request.Context(), &service.AddMenuItemInput{
		MenuItemID: uuid.MustParse(req.MenuItemID),
		Choices:    modifierChoices(req.Modifiers),
		Quantity:   req.Quantity,
		Notes:      req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Item added to order", line)
}

// AddPizza adds a configured pizza
// @Summary Add pizza
// @Tags session
// @Accept json
// @Produce json
// @Param request body request.AddPizzaRequest true "Pizza"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /session/pizzas [post]
func (h *SessionHandler) AddPizza(c *gin.Context) {
	var req request.AddPizzaRequest
	if !BindJSON(c, &req) {
		return
	}

	ingredients := make([]entity.IngredientSelection, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		ingredients = append(ingredients, entity.IngredientSelection{Name: ing.Name, Half: ing.Half})
	}

	line, err := h.sessionService.AddPizza(c.Request.Context(), &service.AddPizzaInput{
		MenuItemID:  uuid.MustParse(req.MenuItemID),
		Size:        req.Size,
		Ingredients: ingredients,
		Extras:      modifierChoices(req.Extras),
		Quantity:    req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Pizza added to order", line)
}

// ReplaceItem edits an unserved line
func (h *SessionHandler) ReplaceItem(c *gin.Context) {
	var req request.ReplaceItemRequest
	if !BindJSON(c, &req) {
		return
	}

	line, err := h.sessionService.ReplaceItem(c.Request.Context(), c.Param("id"), &service.ReplaceItemInput{
		Choices:  modifierChoices(req.Modifiers),
		Quantity: req.Quantity,
		Notes:    req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item updated successfully", line)
}

// UpdateQuantity sets a line's quantity. Zero removes the line, which may
// need an admin PIN.
func (h *SessionHandler) UpdateQuantity(c *gin.Context) {
	var req request.UpdateQuantityRequest
	if !BindJSON(c, &req) {
		return
	}

	change, err := h.sessionService.UpdateQuantity(c.Request.Context(), c.Param("id"), *req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondChange(c, change, "Quantity updated successfully")
}

// RemoveItem removes a line, or parks the removal when it was served
func (h *SessionHandler) RemoveItem(c *gin.Context) {
	change, err := h.sessionService.RemoveItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	respondChange(c, change, "Item removed from order")
}

func respondChange(c *gin.Context, change *service.ItemChange, message string) {
	if change.Pending != nil {
		response.Accepted(c, "Admin PIN required", change)
		return
	}
	response.OK(c, message, change)
}

// ClearCart asks for an admin PIN to empty the order
func (h *SessionHandler) ClearCart(c *gin.Context) {
	pending, err := h.sessionService.ClearCart(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, "Admin PIN required", gin.H{"pending_authorization": pending})
}

// SetCustomer replaces the customer draft
func (h *SessionHandler) SetCustomer(c *gin.Context) {
	var req request.CustomerRequest
	if !BindJSON(c, &req) {
		return
	}

	customer, err := h.sessionService.SetCustomer(c.Request.Context(), entity.CustomerDetails{
		Name:          req.Name,
		Phone:         req.Phone,
		PaymentMethod: req.PaymentMethod,
		Instructions:  req.Instructions,
		Takeaway:      req.Takeaway,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer updated successfully", customer)
}

// Authorize runs the waiting action once the admin PIN matches
// @Summary Authorize pending action
// @Tags session
// @Accept json
// @Produce json
// @Param request body request.AuthorizeRequest true "Admin PIN"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Failure 412 {object} response.APIResponse
// @Router /session/authorization [post]
func (h *SessionHandler) Authorize(c *gin.Context) {
	var req request.AuthorizeRequest
	if !BindJSON(c, &req) {
		return
	}

	action, err := h.sessionService.Authorize(c.Request.Context(), req.PIN)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Action authorized", gin.H{"action": action})
}

// DismissAuthorization drops the waiting action
func (h *SessionHandler) DismissAuthorization(c *gin.Context) {
	action, dismissed := h.sessionService.DismissAuthorization()
	response.OK(c, "Authorization dismissed", gin.H{
		"action":    action,
		"dismissed": dismissed,
	})
}

// Finalize writes the open order to the ledger
// @Summary Finalize order
// @Description Charge the order or leave it pending. Requires an Idempotency-Key header.
// @Tags session
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Idempotency key"
// @Param request body request.FinalizeRequest true "Payment"
// @Success 201 {object} response.APIResponse
// @Failure 403 {object} response.APIResponse
// @Failure 412 {object} response.APIResponse
// @Router /session/finalize [post]
func (h *SessionHandler) Finalize(c *gin.Context) {
	actor, ok := GetActor(c)
	if !ok {
		return
	}
	var req request.FinalizeRequest
	if !BindJSON(c, &req) {
		return
	}

	result, err := h.orderService.Finalize(c.Request.Context(), actor, &service.FinalizeInput{
		Paid:          req.Paid,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Order finalized successfully", result)
}
