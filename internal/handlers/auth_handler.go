package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/school-portal/portal-service/internal/services"
	"github.com/school-portal/portal-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
	}
}

// Signup completes a pending invitation
// @Summary Complete signup
// @Description Sets a password for an invited email and returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body services.SignupRequest true "Signup data"
// @Success 200 {object} services.AuthResponse
// @Failure 400 {object} ErrorResponse "Missing fields or account already active"
// @Failure 403 {object} ErrorResponse "Email not invited for this role"
// @Failure 500 {object} ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req services.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.authService.Signup(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Login authenticates an active account
// @Summary Log in
// @Description Verifies credentials and returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body services.LoginRequest true "Login data"
// @Success 200 {object} services.AuthResponse
// @Failure 400 {object} ErrorResponse "Missing fields"
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Failure 403 {object} ErrorResponse "Password never set up"
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
