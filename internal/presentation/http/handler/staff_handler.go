package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/pizzeria-pos/internal/application/service"
	"github.com/sangkips/pizzeria-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/pizzeria-pos/internal/presentation/http/dto/response"
)

// StaffHandler handles staff management
type StaffHandler struct {
	staffService *service.StaffService
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(staffService *service.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

// ListStaff returns every staff member
func (h *StaffHandler) ListStaff(c *gin.Context) {
	staff, err := h.staffService.ListStaff(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Staff retrieved successfully", staff)
}

// GetStaff retrieves a staff member by ID
func (h *StaffHandler) GetStaff(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}

	staff, err := h.staffService.GetStaff(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Staff member retrieved successfully", staff)
}

// CreateStaff adds a staff member
// @Summary Create staff
// @Tags staff
// @Accept json
// @Produce json
// @Param request body request.CreateStaffRequest true "Staff member"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /staff [post]
func (h *StaffHandler) CreateStaff(c *gin.Context) {
	var req request.CreateStaffRequest
	if !BindJSON(c, &req) {
		return
	}

	staff, err := h.staffService.CreateStaff(c.Request.Context(), &service.CreateStaffInput{
		Name: req.Name,
		PIN:  req.PIN,
		Role: *req.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Staff member created successfully", staff)
}

// UpdateStaff changes a staff member
func (h *StaffHandler) UpdateStaff(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}
	var req request.UpdateStaffRequest
	if !BindJSON(c, &req) {
		return
	}

	staff, err := h.staffService.UpdateStaff(c.Request.Context(), &service.UpdateStaffInput{
		ID:   id,
		Name: req.Name,
		PIN:  req.PIN,
		Role: req.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Staff member updated successfully", staff)
}

// DeleteStaff removes a staff member
func (h *StaffHandler) DeleteStaff(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.staffService.DeleteStaff(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Staff member deleted successfully", nil)
}
