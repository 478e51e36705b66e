package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/school-portal/portal-service/internal/models"
	"github.com/school-portal/portal-service/internal/repositories"
	"github.com/school-portal/portal-service/internal/services"
	"github.com/school-portal/portal-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type UserHandler struct {
	BaseHandler
	userService   services.UserService
	exportService services.ExportService
}

func NewUserHandler(userService services.UserService, exportService services.ExportService, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler:   NewBaseHandler(logger),
		userService:   userService,
		exportService: exportService,
	}
}

// ListUsers lists all accounts, invited and active
// @Summary List users
// @Description Lists every account with its activation state; password hashes are never included
// @Tags users
// @Produce json
// @Param role query string false "Filter by role (admin, teacher, student)"
// @Success 200 {object} services.UserListResponse
// @Failure 500 {object} ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	h.LogRequest(c, "Listing users")

	filters := repositories.UserFilters{}
	if raw := c.Query("role"); raw != "" {
		role := models.UserRole(raw)
		if !role.Valid() {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid role filter",
				Details: raw,
			})
			return
		}
		filters.Role = &role
	}

	resp, err := h.userService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// InviteUser creates a pending invitation
// @Summary Invite user
// @Description Registers an email for later signup under the given role
// @Tags users
// @Accept json
// @Produce json
// @Param invitation body services.InviteUserRequest true "Invitation data"
// @Success 201 {object} models.PublicUser
// @Failure 400 {object} ErrorResponse "Bad role or duplicate email"
// @Failure 500 {object} ErrorResponse
// @Router /users [post]
func (h *UserHandler) InviteUser(c *gin.Context) {
	var req services.InviteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	user, err := h.userService.Invite(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// DeleteUser removes an account
// @Summary Delete user
// @Tags users
// @Produce json
// @Param id path uint true "User ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Deleting user", "target_user_id", id)

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "User deleted"})
}

// ExportUsers streams the account roster as a spreadsheet
// @Summary Export users
// @Description Downloads every account as an xlsx workbook
// @Tags users
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Failure 500 {object} ErrorResponse
// @Router /users/export [get]
func (h *UserHandler) ExportUsers(c *gin.Context) {
	h.LogRequest(c, "Exporting users")

	workbook, err := h.exportService.UsersWorkbook(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	defer workbook.Close()

	filename := fmt.Sprintf("users-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", xlsxContentType)
	if err := workbook.Write(c.Writer); err != nil {
		h.LogError(c, err, "Failed to stream user export")
	}
}
