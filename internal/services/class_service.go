package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/school-portal/portal-service/internal/models"
	"github.com/school-portal/portal-service/internal/repositories"
	"github.com/school-portal/portal-service/internal/validator"
)

type classService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewClassService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) ClassService {
	return &classService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *classService) List(ctx context.Context) ([]*models.ClassView, error) {
	views, err := s.repo.Class().List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}
	return views, nil
}

func (s *classService) Create(ctx context.Context, req *CreateClassRequest) (*models.Class, error) {
	if errs := s.validator.ValidateStruct(req); errs != nil {
		return nil, errs
	}

	class := &models.Class{
		Name:      req.Name,
		TeacherID: req.TeacherID,
	}
	if err := s.repo.Class().Create(ctx, nil, class); err != nil {
		return nil, fmt.Errorf("failed to create class: %w", err)
	}

	s.logger.Info("Class created", "class_id", class.ID, "name", class.Name)
	return class, nil
}

func (s *classService) Update(ctx context.Context, id uint, req *UpdateClassRequest) (*models.Class, error) {
	if errs := s.validator.ValidateStruct(req); errs != nil {
		return nil, errs
	}

	class, err := s.repo.Class().GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, NewNotFoundError("class", id)
		}
		return nil, fmt.Errorf("failed to load class: %w", err)
	}

	class.Name = req.Name
	class.TeacherID = req.TeacherID
	if err := s.repo.Class().Update(ctx, nil, class); err != nil {
		return nil, fmt.Errorf("failed to update class: %w", err)
	}

	s.logger.Info("Class updated", "class_id", id)
	return class, nil
}

func (s *classService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.Class().GetByID(ctx, nil, id); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return NewNotFoundError("class", id)
		}
		return fmt.Errorf("failed to load class: %w", err)
	}

	if err := s.repo.Class().Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("failed to delete class: %w", err)
	}

	s.logger.Info("Class deleted", "class_id", id)
	return nil
}

var _ ClassService = (*classService)(nil)
