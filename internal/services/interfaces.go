package services

import (
	"context"

	"github.com/xuri/excelize/v2"

	"github.com/school-portal/portal-service/internal/models"
	"github.com/school-portal/portal-service/internal/repositories"
	"github.com/school-portal/portal-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Request shapes live with their validation tags.
type SignupRequest = validator.SignupRequest
type LoginRequest = validator.LoginRequest
type InviteUserRequest = validator.InviteUserRequest
type CreateClassRequest = validator.CreateClassRequest
type UpdateClassRequest = validator.UpdateClassRequest
type CreateAssignmentRequest = validator.CreateAssignmentRequest
type UpdateAssignmentRequest = validator.UpdateAssignmentRequest
type SubmitGradeRequest = validator.SubmitGradeRequest

// AuthResponse is the successful signup/login payload: a bearer token plus
// the public user view. The credential never appears here.
type AuthResponse struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

type UserListResponse struct {
	Users []models.UserListItem `json:"users"`
	Total int64                 `json:"total"`
}

// ===== SERVICE INTERFACES =====

// AuthService orchestrates invitation validation, signup completion and login
// verification.
type AuthService interface {
	// Signup attaches a credential to an invited record and returns a token.
	// Fails with ConflictError when the email already signed up, and with
	// AuthorizationError when no invitation matches the email+role pair.
	Signup(ctx context.Context, req *SignupRequest) (*AuthResponse, error)

	// Login verifies a credential and returns a token. Unknown email and
	// wrong password both fail with the same AuthenticationError; an invited
	// account with no credential fails with AuthorizationError.
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
}

type UserService interface {
	List(ctx context.Context, filters repositories.UserFilters) (*UserListResponse, error)
	Invite(ctx context.Context, req *InviteUserRequest) (*models.PublicUser, error)
	Delete(ctx context.Context, id uint) error

	// EnsureSeedAdmin inserts an active admin account if the email is not
	// yet registered. Idempotent.
	EnsureSeedAdmin(ctx context.Context, email, password string) error
}

type ClassService interface {
	List(ctx context.Context) ([]*models.ClassView, error)
	Create(ctx context.Context, req *CreateClassRequest) (*models.Class, error)
	Update(ctx context.Context, id uint, req *UpdateClassRequest) (*models.Class, error)
	Delete(ctx context.Context, id uint) error
}

type AssignmentService interface {
	ListByClass(ctx context.Context, classID uint) ([]*models.Assignment, error)
	Create(ctx context.Context, req *CreateAssignmentRequest) (*models.Assignment, error)
	Update(ctx context.Context, id uint, req *UpdateAssignmentRequest) (*models.Assignment, error)
	Delete(ctx context.Context, id uint) error
}

type GradeService interface {
	// GetStudentGrades returns the student's grade rows. callerID is the
	// authenticated identity; requesting another student's grades fails with
	// AuthorizationError.
	GetStudentGrades(ctx context.Context, studentID, callerID uint) ([]*models.GradeView, error)

	// SubmitGrade records or updates the grade for an (assignment, student)
	// pair. The bool reports whether a new submission row was inserted, so
	// the handler can answer 201 on insert and 200 on update.
	SubmitGrade(ctx context.Context, req *SubmitGradeRequest) (*models.Submission, bool, error)
}

// ExportService builds xlsx workbooks for administrative download.
type ExportService interface {
	UsersWorkbook(ctx context.Context) (*excelize.File, error)
	ClassGradesWorkbook(ctx context.Context, classID uint) (*excelize.File, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	Auth() AuthService
	User() UserService
	Class() ClassService
	Assignment() AssignmentService
	Grade() GradeService
	Export() ExportService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
