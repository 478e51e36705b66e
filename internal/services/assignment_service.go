package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/datatypes"

	"github.com/school-portal/portal-service/internal/models"
	"github.com/school-portal/portal-service/internal/repositories"
	"github.com/school-portal/portal-service/internal/validator"
)

type assignmentService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAssignmentService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) AssignmentService {
	return &assignmentService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *assignmentService) ListByClass(ctx context.Context, classID uint) ([]*models.Assignment, error) {
	assignments, err := s.repo.Assignment().ListByClass(ctx, nil, classID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}

func (s *assignmentService) Create(ctx context.Context, req *CreateAssignmentRequest) (*models.Assignment, error) {
	if errs := s.validator.ValidateStruct(req); errs != nil {
		return nil, errs
	}

	if _, err := s.repo.Class().GetByID(ctx, nil, req.ClassID); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, NewNotFoundError("class", req.ClassID)
		}
		return nil, fmt.Errorf("failed to load class: %w", err)
	}

	assignment := &models.Assignment{
		ClassID:     req.ClassID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     toDate(req.DueDate),
	}
	if err := s.repo.Assignment().Create(ctx, nil, assignment); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	s.logger.Info("Assignment created", "assignment_id", assignment.ID, "class_id", assignment.ClassID)
	return assignment, nil
}

func (s *assignmentService) Update(ctx context.Context, id uint, req *UpdateAssignmentRequest) (*models.Assignment, error) {
	if errs := s.validator.ValidateStruct(req); errs != nil {
		return nil, errs
	}

	assignment, err := s.repo.Assignment().GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, NewNotFoundError("assignment", id)
		}
		return nil, fmt.Errorf("failed to load assignment: %w", err)
	}

	assignment.Title = req.Title
	assignment.Description = req.Description
	assignment.DueDate = toDate(req.DueDate)
	if err := s.repo.Assignment().Update(ctx, nil, assignment); err != nil {
		return nil, fmt.Errorf("failed to update assignment: %w", err)
	}

	s.logger.Info("Assignment updated", "assignment_id", id)
	return assignment, nil
}

func (s *assignmentService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.Assignment().GetByID(ctx, nil, id); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return NewNotFoundError("assignment", id)
		}
		return fmt.Errorf("failed to load assignment: %w", err)
	}

	if err := s.repo.Assignment().Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}

	s.logger.Info("Assignment deleted", "assignment_id", id)
	return nil
}

func toDate(t *time.Time) *datatypes.Date {
	if t == nil {
		return nil
	}
	d := datatypes.Date(*t)
	return &d
}

var _ AssignmentService = (*assignmentService)(nil)
