package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/school-portal/portal-service/internal/repositories"
)

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

// UsersWorkbook renders the full roster, one row per user. Status mirrors the
// invited/active lifecycle rather than exposing any credential detail.
func (s *exportService) UsersWorkbook(ctx context.Context) (*excelize.File, error) {
	users, _, err := s.repo.User().List(ctx, repositories.UserFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Users"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Email", "Role", "Status", "Created At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, u := range users {
		status := "invited"
		if u.IsActive() {
			status = "active"
		}
		values := []interface{}{u.ID, u.Email, string(u.Role), status, u.CreatedAt.Format("2006-01-02")}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	s.logger.Info("Users workbook built", "rows", len(users))
	return f, nil
}

// ClassGradesWorkbook renders a class's grade sheet, one row per graded
// submission.
func (s *exportService) ClassGradesWorkbook(ctx context.Context, classID uint) (*excelize.File, error) {
	class, err := s.repo.Class().GetByID(ctx, nil, classID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, NewNotFoundError("class", classID)
		}
		return nil, fmt.Errorf("failed to load class: %w", err)
	}

	submissions, err := s.repo.Submission().ListByClass(ctx, nil, classID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Grades"
	f.SetSheetName("Sheet1", sheet)

	if err := f.SetCellValue(sheet, "A1", class.Name); err != nil {
		return nil, fmt.Errorf("failed to write title: %w", err)
	}

	headers := []string{"Student", "Assignment", "Grade", "Feedback", "Graded At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, sub := range submissions {
		student := fmt.Sprintf("%d", sub.StudentID)
		if sub.Student != nil {
			student = sub.Student.Email
		}
		title := ""
		if sub.Assignment != nil {
			title = sub.Assignment.Title
		}
		grade := ""
		if sub.Grade != nil {
			grade = *sub.Grade
		}
		feedback := ""
		if sub.Feedback != nil {
			feedback = *sub.Feedback
		}
		gradedAt := ""
		if sub.GradedAt != nil {
			gradedAt = sub.GradedAt.Format("2006-01-02 15:04")
		}

		values := []interface{}{student, title, grade, feedback, gradedAt}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+3)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	s.logger.Info("Grade workbook built", "class_id", classID, "rows", len(submissions))
	return f, nil
}

var _ ExportService = (*exportService)(nil)
