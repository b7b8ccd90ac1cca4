package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/pizzeria-pos/internal/application/service"
	"github.com/sangkips/pizzeria-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/pizzeria-pos/internal/presentation/http/dto/response"
)

// ReportHandler handles day reports and closures
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetDayReport returns a date's totals for the caller's scope
// @Summary Day report
// @Tags reports
// @Produce json
// @Param date query string false "Ledger date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.APIResponse
// @Router /reports/day [get]
func (h *ReportHandler) GetDayReport(c *gin.Context) {
	actor, ok := GetActor(c)
	if !ok {
		return
	}

	report, err := h.reportService.GetDayReport(c.Request.Context(), actor, c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Report retrieved successfully", report)
}

// CloseDay seals the caller's paid sales of a date
// @Summary Close day
// @Tags reports
// @Accept json
// @Produce json
// @Param request body request.CloseDayRequest false "Date"
// @Success 201 {object} response.APIResponse
// @Success 200 {object} response.APIResponse "Nothing to close"
// @Router /reports/closures [post]
func (h *ReportHandler) CloseDay(c *gin.Context) {
	actor, ok := GetActor(c)
	if !ok {
		return
	}
	var req request.CloseDayRequest
	if c.Request.ContentLength > 0 && !BindJSON(c, &req) {
		return
	}

	result, err := h.reportService.CloseDay(c.Request.Context(), actor, req.Date)
	if err != nil {
		response.Error(c, err)
		return
	}
	if result.Closure == nil {
		response.OK(c, result.Notice, result)
		return
	}
	response.Created(c, "Day closed successfully", result)
}

// ListClosures returns the closures the caller may see
func (h *ReportHandler) ListClosures(c *gin.Context) {
	actor, ok := GetActor(c)
	if !ok {
		return
	}

	closures, err := h.reportService.ListClosures(c.Request.Context(), actor, c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Closures retrieved successfully", closures)
}

// GetClosure returns one closure
func (h *ReportHandler) GetClosure(c *gin.Context) {
	actor, ok := GetActor(c)
	if !ok {
		return
	}
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}

	closure, err := h.reportService.GetClosure(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !actor.IsAdmin() && (closure.IsAdminClosure || closure.ClosedBy != actor.Name) {
		response.NotFound(c, "Day closure not found")
		return
	}
	response.OK(c, "Closure retrieved successfully", closure)
}
