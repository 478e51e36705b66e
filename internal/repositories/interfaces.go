package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/school-portal/portal-service/internal/models"
)

// Sentinel errors shared by all repository implementations.
var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already exists")
	ErrAlreadyActive  = errors.New("credential already set")
)

// ClassRepository persists course sections.
type ClassRepository interface {
	Create(ctx context.Context, tx *gorm.DB, class *models.Class) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Class, error)
	Update(ctx context.Context, tx *gorm.DB, class *models.Class) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error

	// List returns classes with the teacher email joined, ordered by id.
	List(ctx context.Context, tx *gorm.DB) ([]*models.ClassView, error)
}

// AssignmentRepository persists coursework.
type AssignmentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, assignment *models.Assignment) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Assignment, error)
	Update(ctx context.Context, tx *gorm.DB, assignment *models.Assignment) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error

	// ListByClass returns a class's assignments ordered by due date.
	ListByClass(ctx context.Context, tx *gorm.DB, classID uint) ([]*models.Assignment, error)
}

// SubmissionRepository persists graded submissions.
type SubmissionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, submission *models.Submission) error
	Update(ctx context.Context, tx *gorm.DB, submission *models.Submission) error

	// GetByAssignmentAndStudent returns the unique row for the pair, or
	// ErrRecordNotFound.
	GetByAssignmentAndStudent(ctx context.Context, tx *gorm.DB, assignmentID, studentID uint) (*models.Submission, error)

	// ListGradesByStudent returns the student's grade rows joined with
	// assignment titles.
	ListGradesByStudent(ctx context.Context, tx *gorm.DB, studentID uint) ([]*models.GradeView, error)

	// ListByClass returns all submissions for assignments of a class, with
	// Assignment and Student preloaded. Used for grade sheet exports.
	ListByClass(ctx context.Context, tx *gorm.DB, classID uint) ([]*models.Submission, error)
}
