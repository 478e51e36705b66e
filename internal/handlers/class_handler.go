package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/school-portal/portal-service/internal/services"
	"github.com/school-portal/portal-service/internal/utils"
)

type ClassHandler struct {
	BaseHandler
	classService services.ClassService
}

func NewClassHandler(classService services.ClassService, logger utils.Logger) *ClassHandler {
	return &ClassHandler{
		BaseHandler:  NewBaseHandler(logger),
		classService: classService,
	}
}

// ListClasses lists all classes with their teacher's email
// @Summary List classes
// @Tags classes
// @Produce json
// @Success 200 {array} models.ClassView
// @Failure 500 {object} ErrorResponse
// @Router /classes [get]
func (h *ClassHandler) ListClasses(c *gin.Context) {
	classes, err := h.classService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, classes)
}

// CreateClass creates a class
// @Summary Create class
// @Tags classes
// @Accept json
// @Produce json
// @Param class body services.CreateClassRequest true "Class data"
// @Success 201 {object} models.Class
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /classes [post]
func (h *ClassHandler) CreateClass(c *gin.Context) {
	var req services.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	class, err := h.classService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, class)
}

// UpdateClass renames a class or reassigns its teacher
// @Summary Update class
// @Tags classes
// @Accept json
// @Produce json
// @Param id path uint true "Class ID"
// @Param class body services.UpdateClassRequest true "Class data"
// @Success 200 {object} models.Class
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /classes/{id} [put]
func (h *ClassHandler) UpdateClass(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	class, err := h.classService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, class)
}

// DeleteClass removes a class
// @Summary Delete class
// @Tags classes
// @Produce json
// @Param id path uint true "Class ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /classes/{id} [delete]
func (h *ClassHandler) DeleteClass(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Deleting class", "class_id", id)

	if err := h.classService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Class deleted"})
}
