package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/school-portal/portal-service/internal/models"
	"github.com/school-portal/portal-service/internal/services"
	"github.com/school-portal/portal-service/internal/utils"
	"github.com/school-portal/portal-service/internal/validator"
)

type ErrorResponse = models.ErrorResponse
type SuccessResponse = models.SuccessResponse

// BaseHandler carries the pieces every handler shares: request-scoped logging
// and the mapping from service errors to HTTP status codes.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c.Request.Context(), h.logger).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	args = append(args, "error", err)
	utils.FromContext(c.Request.Context(), h.logger).Error(msg, args...)
}

// parseIDParam reads a positive integer path parameter. On failure it writes
// the 400 response itself and returns 0; callers just return.
func (h *BaseHandler) parseIDParam(c *gin.Context, name string) uint {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + name + " parameter",
			Details: raw,
		})
		return 0
	}
	return uint(id)
}

// handleServiceError translates the service error taxonomy into HTTP status
// codes. Conflicts map to 400 rather than 409 to keep the error surface the
// portal frontend already expects.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var (
		validationErrs validator.ValidationErrors
		conflictErr    *services.ConflictError
		authnErr       *services.AuthenticationError
		authzErr       *services.AuthorizationError
		notFoundErr    *services.NotFoundError
	)

	switch {
	case errors.As(err, &validationErrs):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrs,
		})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: conflictErr.Message,
		})
	case errors.As(err, &authnErr):
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: authnErr.Message,
		})
	case errors.As(err, &authzErr):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: authzErr.Message,
		})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: notFoundErr.Error(),
		})
	default:
		h.LogError(c, err, "Unhandled service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
