package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/school-portal/portal-service/internal/events"
	"github.com/school-portal/portal-service/internal/models"
	"github.com/school-portal/portal-service/internal/repositories"
	"github.com/school-portal/portal-service/internal/validator"
)

type gradeService struct {
	repo      repositories.Repository
	publisher events.Publisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewGradeService(
	repo repositories.Repository,
	publisher events.Publisher,
	logger *slog.Logger,
	validator *validator.Validator,
) GradeService {
	return &gradeService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// GetStudentGrades returns the caller's own grade rows. The guard has already
// matched the role; the ownership rule is re-checked here so it cannot be
// bypassed by a handler wiring mistake.
func (s *gradeService) GetStudentGrades(ctx context.Context, studentID, callerID uint) ([]*models.GradeView, error) {
	if studentID != callerID {
		return nil, NewPermissionError(callerID, "grades", "view", "can only view own grades")
	}

	views, err := s.repo.Submission().ListGradesByStudent(ctx, nil, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list grades: %w", err)
	}
	return views, nil
}

// SubmitGrade upserts on the (assignment, student) pair: re-grading updates
// the existing row and refreshes graded_at. The check-then-write runs inside
// one transaction; the unique index on the pair backs it up. The returned
// bool is true when a new row was inserted.
func (s *gradeService) SubmitGrade(ctx context.Context, req *SubmitGradeRequest) (*models.Submission, bool, error) {
	if errs := s.validator.ValidateStruct(req); errs != nil {
		return nil, false, errs
	}

	if _, err := s.repo.Assignment().GetByID(ctx, nil, req.AssignmentID); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, false, NewNotFoundError("assignment", req.AssignmentID)
		}
		return nil, false, fmt.Errorf("failed to load assignment: %w", err)
	}

	now := time.Now()
	grade := req.Grade

	var submission *models.Submission
	var created bool
	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		existing, err := txRepo.Submission().GetByAssignmentAndStudent(ctx, nil, req.AssignmentID, req.StudentID)
		switch {
		case err == nil:
			existing.Grade = &grade
			existing.Feedback = req.Feedback
			existing.GradedAt = &now
			if err := txRepo.Submission().Update(ctx, nil, existing); err != nil {
				return fmt.Errorf("failed to update grade: %w", err)
			}
			submission = existing
		case errors.Is(err, repositories.ErrRecordNotFound):
			submission = &models.Submission{
				AssignmentID: req.AssignmentID,
				StudentID:    req.StudentID,
				Grade:        &grade,
				Feedback:     req.Feedback,
				GradedAt:     &now,
			}
			if err := txRepo.Submission().Create(ctx, nil, submission); err != nil {
				return fmt.Errorf("failed to record grade: %w", err)
			}
			created = true
		default:
			return fmt.Errorf("failed to look up submission: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if err := s.publisher.Publish(ctx, events.NewEvent(events.EventGradeRecorded, submission)); err != nil {
		s.logger.Error("Failed to publish grade event", "error", err, "submission_id", submission.ID)
	}

	s.logger.Info("Grade recorded",
		"assignment_id", req.AssignmentID,
		"student_id", req.StudentID,
		"created", created)
	return submission, created, nil
}

var _ GradeService = (*gradeService)(nil)
