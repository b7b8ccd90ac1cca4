package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/pizzeria-pos/internal/application/service"
	"github.com/sangkips/pizzeria-pos/internal/domain/enum"
	"github.com/sangkips/pizzeria-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/pizzeria-pos/internal/presentation/http/dto/response"
	"github.com/shopspring/decimal"
)

// PizzaHandler handles the ingredient catalog and base prices
type PizzaHandler struct {
	pizzaService *service.PizzaService
}

// NewPizzaHandler creates a new pizza handler
func NewPizzaHandler(pizzaService *service.PizzaService) *PizzaHandler {
	return &PizzaHandler{pizzaService: pizzaService}
}

// ListIngredients returns the ingredient catalog
func (h *PizzaHandler) ListIngredients(c *gin.Context) {
	ingredients, err := h.pizzaService.ListIngredients(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Ingredients retrieved successfully", ingredients)
}

// CreateIngredient adds an ingredient
func (h *PizzaHandler) CreateIngredient(c *gin.Context) {
	var req request.IngredientRequestBody
	if !BindJSON(c, &req) {
		return
	}

	ingredient, err := h.pizzaService.CreateIngredient(c.Request.Context(), &service.IngredientInput{
		Name:     req.Name,
		Category: req.Category,
		Prices:   req.Prices,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Ingredient created successfully", ingredient)
}

// UpdateIngredient changes an ingredient
func (h *PizzaHandler) UpdateIngredient(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}
	var req request.IngredientRequestBody
	if !BindJSON(c, &req) {
		return
	}

	ingredient, err := h.pizzaService.UpdateIngredient(c.Request.Context(), id, &service.IngredientInput{
		Name:     req.Name,
		Category: req.Category,
		Prices:   req.Prices,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Ingredient updated successfully", ingredient)
}

// DeleteIngredient removes an ingredient
func (h *PizzaHandler) DeleteIngredient(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.pizzaService.DeleteIngredient(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Ingredient deleted successfully", nil)
}

// ListBasePrices returns the plain pizza price per size
func (h *PizzaHandler) ListBasePrices(c *gin.Context) {
	prices, err := h.pizzaService.ListBasePrices(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Base prices retrieved successfully", prices)
}

// UpdateBasePrices sets the plain pizza price of the given sizes
func (h *PizzaHandler) UpdateBasePrices(c *gin.Context) {
	var req request.BasePriceRequest
	if !BindJSON(c, &req) {
		return
	}

	prices := make(map[enum.PizzaSize]decimal.Decimal, len(req.Prices))
	for _, p := range req.Prices {
		prices[p.Size] = p.Price
	}

	updated, err := h.pizzaService.UpdateBasePrices(c.Request.Context(), prices)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Base prices updated successfully", updated)
}
