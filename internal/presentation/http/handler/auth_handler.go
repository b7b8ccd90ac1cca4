package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/pizzeria-pos/internal/application/service"
	"github.com/sangkips/pizzeria-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/pizzeria-pos/internal/presentation/http/dto/response"
)

// AuthHandler handles PIN login
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles PIN login
// @Summary Login
// @Description Authenticate a staff member by PIN and return a token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Staff PIN"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Failure 429 {object} response.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if !BindJSON(c, &req) {
		return
	}

	output, err := h.authService.Login(c.Request.Context(), req.PIN)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", gin.H{
		"staff": gin.H{
			"id":   output.Staff.ID,
			"name": output.Staff.Name,
			"role": output.Staff.Role,
		},
		"access_token": output.AccessToken,
		"token_type":   "Bearer",
		"expires_at":   output.ExpiresAt,
	})
}

// Me returns the staff member behind the token
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := GetActor(c)
	if !ok {
		return
	}
	response.OK(c, "Staff retrieved successfully", gin.H{
		"id":   actor.StaffID,
		"name": actor.Name,
		"role": actor.Role,
	})
}
