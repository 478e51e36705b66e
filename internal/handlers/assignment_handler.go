package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/school-portal/portal-service/internal/services"
	"github.com/school-portal/portal-service/internal/utils"
)

type AssignmentHandler struct {
	BaseHandler
	assignmentService services.AssignmentService
}

func NewAssignmentHandler(assignmentService services.AssignmentService, logger utils.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		BaseHandler:       NewBaseHandler(logger),
		assignmentService: assignmentService,
	}
}

// ListByClass lists a class's assignments ordered by due date
// @Summary List assignments for a class
// @Tags assignments
// @Produce json
// @Param classId path uint true "Class ID"
// @Success 200 {array} models.Assignment
// @Failure 500 {object} ErrorResponse
// @Router /assignments/class/{classId} [get]
func (h *AssignmentHandler) ListByClass(c *gin.Context) {
	classID := h.parseIDParam(c, "classId")
	if classID == 0 {
		return
	}

	assignments, err := h.assignmentService.ListByClass(c.Request.Context(), classID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignments)
}

// CreateAssignment creates an assignment in a class
// @Summary Create assignment
// @Tags assignments
// @Accept json
// @Produce json
// @Param assignment body services.CreateAssignmentRequest true "Assignment data"
// @Success 201 {object} models.Assignment
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Class not found"
// @Failure 500 {object} ErrorResponse
// @Router /assignments [post]
func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	var req services.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	assignment, err := h.assignmentService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, assignment)
}

// UpdateAssignment edits an assignment's title, description or due date
// @Summary Update assignment
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path uint true "Assignment ID"
// @Param assignment body services.UpdateAssignmentRequest true "Assignment data"
// @Success 200 {object} models.Assignment
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /assignments/{id} [put]
func (h *AssignmentHandler) UpdateAssignment(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	assignment, err := h.assignmentService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignment)
}

// DeleteAssignment removes an assignment
// @Summary Delete assignment
// @Tags assignments
// @Produce json
// @Param id path uint true "Assignment ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /assignments/{id} [delete]
func (h *AssignmentHandler) DeleteAssignment(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Deleting assignment", "assignment_id", id)

	if err := h.assignmentService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Assignment deleted"})
}
