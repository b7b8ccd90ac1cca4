package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/pizzeria-pos/internal/application/service"
	"github.com/sangkips/pizzeria-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/pizzeria-pos/internal/presentation/http/dto/response"
)

// SettingsHandler handles till settings
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings retrieves the till settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Settings retrieved successfully", settings)
}

// UpdateSettings replaces the settings on PUT and merges them on PATCH
// @Summary Update settings
// @Tags settings
// @Accept json
// @Produce json
// @Param request body request.SettingsRequest true "Settings"
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /settings [put]
// @Router /settings [patch]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req request.SettingsRequest
	if !BindJSON(c, &req) {
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), &service.UpdateSettingsInput{
		Partial:              c.Request.Method == http.MethodPatch,
		BusinessName:         req.BusinessName,
		TotalTables:          req.TotalTables,
		PrinterPaperWidth:    req.PrinterPaperWidth,
		ExchangeRateBCV:      req.ExchangeRateBCV,
		ExchangeRateParallel: req.ExchangeRateParallel,
		ActiveExchangeRate:   req.ActiveExchangeRate,
		TargetNumber:         req.TargetNumber,
		WaitersCanCharge:     req.WaitersCanCharge,
		RolePermissions:      req.RolePermissions,
		PaymentMethods:       req.PaymentMethods,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Settings updated successfully", settings)
}
