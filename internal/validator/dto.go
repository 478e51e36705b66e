package validator

import (
	"time"

	"github.com/school-portal/portal-service/internal/models"
)

// ===== AUTH =====

// SignupRequest completes an invitation. Validation checks presence only:
// the role is matched against the invited record, so an unknown role value
// simply finds no invitation and is rejected as unauthorized, not malformed.
type SignupRequest struct {
	Email    string          `json:"email" validate:"required"`
	Password string          `json:"password" validate:"required"`
	Role     models.UserRole `json:"role" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ===== USERS =====

// InviteUserRequest reserves an email+role pair with no credential. Admins
// are seeded, never invited.
type InviteUserRequest struct {
	Email string          `json:"email" validate:"required,email"`
	Role  models.UserRole `json:"role" validate:"required,oneof=student teacher"`
}

// ===== CLASSES =====

type CreateClassRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	TeacherID *uint  `json:"teacher_id"`
}

type UpdateClassRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	TeacherID *uint  `json:"teacher_id"`
}

// ===== ASSIGNMENTS =====

type CreateAssignmentRequest struct {
	ClassID     uint       `json:"class_id" validate:"required"`
	Title       string     `json:"title" validate:"required,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	DueDate     *time.Time `json:"due_date"`
}

type UpdateAssignmentRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	DueDate     *time.Time `json:"due_date"`
}

// ===== GRADES =====

type SubmitGradeRequest struct {
	AssignmentID uint    `json:"assignment_id" validate:"required"`
	StudentID    uint    `json:"student_id" validate:"required"`
	Grade        string  `json:"grade" validate:"required,max=20"`
	Feedback     *string `json:"feedback" validate:"omitempty,max=2000"`
}
