package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/pizzeria-pos/internal/application/service"
	"github.com/sangkips/pizzeria-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/pizzeria-pos/internal/presentation/http/dto/response"
)

// ModifierHandler handles modifier groups
type ModifierHandler struct {
	modifierService *service.ModifierService
}

// NewModifierHandler creates a new modifier handler
func NewModifierHandler(modifierService *service.ModifierService) *ModifierHandler {
	return &ModifierHandler{modifierService: modifierService}
}

func groupInput(req *request.ModifierGroupRequest) *service.ModifierGroupInput {
	return &service.ModifierGroupInput{
		Title:         req.Title,
		SelectionType: req.SelectionType,
		MinSelection:  req.MinSelection,
		MaxSelection:  req.MaxSelection,
		Options:       req.Options,
	}
}

// ListGroups returns every modifier group
func (h *ModifierHandler) ListGroups(c *gin.Context) {
	groups, err := h.modifierService.ListGroups(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Modifier groups retrieved successfully", groups)
}

func (h *ModifierHandler) GetGroup(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}

	group, err := h.modifierService.GetGroup(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Modifier group retrieved successfully", group)
}

func (h *ModifierHandler) CreateGroup(c *gin.Context) {
	var req request.ModifierGroupRequest
	if !BindJSON(c, &req) {
		return
	}

	group, err := h.modifierService.CreateGroup(c.Request.Context(), groupInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Modifier group created successfully", group)
}

func (h *ModifierHandler) UpdateGroup(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}
	var req request.ModifierGroupRequest
	if !BindJSON(c, &req) {
		return
	}

	group, err := h.modifierService.UpdateGroup(c.Request.Context(), id, groupInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Modifier group updated successfully", group)
}

func (h *ModifierHandler) DeleteGroup(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.modifierService.DeleteGroup(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Modifier group deleted successfully", nil)
}
