package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/school-portal/portal-service/internal/services"
	"github.com/school-portal/portal-service/internal/utils"
)

type GradeHandler struct {
	BaseHandler
	gradeService  services.GradeService
	exportService services.ExportService
}

func NewGradeHandler(gradeService services.GradeService, exportService services.ExportService, logger utils.Logger) *GradeHandler {
	return &GradeHandler{
		BaseHandler:   NewBaseHandler(logger),
		gradeService:  gradeService,
		exportService: exportService,
	}
}

// GetStudentGrades returns a student's own grades
// @Summary Get student grades
// @Description Students may only read their own grades; the path id must match the token's id
// @Tags grades
// @Produce json
// @Param studentId path uint true "Student ID"
// @Success 200 {array} models.GradeView
// @Failure 403 {object} ErrorResponse "Path id does not match the authenticated user"
// @Failure 500 {object} ErrorResponse
// @Router /grades/student/{studentId} [get]
func (h *GradeHandler) GetStudentGrades(c *gin.Context) {
	studentID := h.parseIDParam(c, "studentId")
	if studentID == 0 {
		return
	}

	callerID, exists := CurrentUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	grades, err := h.gradeService.GetStudentGrades(c.Request.Context(), studentID, callerID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, grades)
}

// SubmitGrade records or replaces a grade
// @Summary Submit grade
// @Description Upserts on the (assignment, student) pair; re-grading refreshes the graded timestamp
// @Tags grades
// @Accept json
// @Produce json
// @Param grade body services.SubmitGradeRequest true "Grade data"
// @Success 200 {object} models.Submission "Existing grade updated"
// @Success 201 {object} models.Submission "New grade recorded"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Assignment not found"
// @Failure 500 {object} ErrorResponse
// @Router /grades [post]
func (h *GradeHandler) SubmitGrade(c *gin.Context) {
	var req services.SubmitGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Submitting grade",
		"assignment_id", req.AssignmentID,
		"student_id", req.StudentID)

	submission, created, err := h.gradeService.SubmitGrade(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, submission)
}

// ExportClassGrades streams a class's grade sheet as a spreadsheet
// @Summary Export class grades
// @Tags grades
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param classId path uint true "Class ID"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse "Class not found"
// @Failure 500 {object} ErrorResponse
// @Router /grades/class/{classId}/export [get]
func (h *GradeHandler) ExportClassGrades(c *gin.Context) {
	classID := h.parseIDParam(c, "classId")
	if classID == 0 {
		return
	}

	h.LogRequest(c, "Exporting class grades", "class_id", classID)

	workbook, err := h.exportService.ClassGradesWorkbook(c.Request.Context(), classID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	defer workbook.Close()

	filename := fmt.Sprintf("grades-class-%d-%s.xlsx", classID, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", xlsxContentType)
	if err := workbook.Write(c.Writer); err != nil {
		h.LogError(c, err, "Failed to stream grade export")
	}
}
