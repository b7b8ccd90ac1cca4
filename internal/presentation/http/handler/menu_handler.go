package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/pizzeria-pos/internal/application/service"
	"github.com/sangkips/pizzeria-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/pizzeria-pos/internal/presentation/http/dto/response"
)

// MenuHandler handles categories and menu items
type MenuHandler struct {
	categoryService *service.CategoryService
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(categoryService *service.CategoryService) *MenuHandler {
	return &MenuHandler{categoryService: categoryService}
}

// ListMenu returns every category with its items
// @Summary List menu
// @Tags menu
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /menu/categories [get]
func (h *MenuHandler) ListMenu(c *gin.Context) {
	categories, err := h.categoryService.ListMenu(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Menu retrieved successfully", categories)
}

// GetCategory retrieves a category by ID
func (h *MenuHandler) GetCategory(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}

	category, err := h.categoryService.GetCategory(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Category retrieved successfully", category)
}

// CreateCategory creates a new category
func (h *MenuHandler) CreateCategory(c *gin.Context) {
	var req request.CategoryRequest
	if !BindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), &service.CategoryInput{
		Name:      req.Name,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Category created successfully", category)
}

// UpdateCategory updates a category
func (h *MenuHandler) UpdateCategory(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}
	var req request.CategoryRequest
	if !BindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), id, &service.CategoryInput{
		Name:      req.Name,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Category updated successfully", category)
}

// DeleteCategory deletes an empty category
func (h *MenuHandler) DeleteCategory(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.categoryService.DeleteCategory(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Category deleted successfully", nil)
}

// GetMenuItem retrieves a menu item by ID
func (h *MenuHandler) GetMenuItem(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}

	item, err := h.categoryService.GetMenuItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Menu item retrieved successfully", item)
}

func menuItemInput(req *request.MenuItemRequest) *service.MenuItemInput {
	available := true
	if req.Available != nil {
		available = *req.Available
	}
	return &service.MenuItemInput{
		CategoryID:         uuid.MustParse(req.CategoryID),
		Name:               req.Name,
		Description:        req.Description,
		Price:              req.Price,
		Available:          available,
		ModifierGroups:     req.ModifierGroups,
		IsPizza:            req.IsPizza,
		IsSpecialPizza:     req.IsSpecialPizza,
		DefaultIngredients: req.DefaultIngredients,
	}
}

// CreateMenuItem creates a new menu item
// @Summary Create menu item
// @Tags menu
// @Accept json
// @Produce json
// @Param request body request.MenuItemRequest true "Menu item"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /menu/items [post]
func (h *MenuHandler) CreateMenuItem(c *gin.Context) {
	var req request.MenuItemRequest
	if !BindJSON(c, &req) {
		return
	}

	item, err := h.categoryService.CreateMenuItem(c.Request.Context(), menuItemInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Menu item created successfully", item)
}

// UpdateMenuItem updates a menu item
func (h *MenuHandler) UpdateMenuItem(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}
	var req request.MenuItemRequest
	if !BindJSON(c, &req) {
		return
	}

	item, err := h.categoryService.UpdateMenuItem(c.Request.Context(), id, menuItemInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Menu item updated successfully", item)
}

// DeleteMenuItem deletes a menu item
func (h *MenuHandler) DeleteMenuItem(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.categoryService.DeleteMenuItem(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Menu item deleted successfully", nil)
}
