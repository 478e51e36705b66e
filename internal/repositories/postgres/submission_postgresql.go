package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/school-portal/portal-service/internal/models"
	"github.com/school-portal/portal-service/internal/repositories"
)

type SubmissionPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewSubmissionPostgreSQL(db *gorm.DB) repositories.SubmissionRepository {
	return &SubmissionPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

func (s *SubmissionPostgreSQL) Create(ctx context.Context, tx *gorm.DB, submission *models.Submission) error {
	db := s.helpers.GetDB(tx)
	return db.WithContext(ctx).Create(submission).Error
}

func (s *SubmissionPostgreSQL) Update(ctx context.Context, tx *gorm.DB, submission *models.Submission) error {
	db := s.helpers.GetDB(tx)
	return db.WithContext(ctx).Save(submission).Error
}

func (s *SubmissionPostgreSQL) GetByAssignmentAndStudent(ctx context.Context, tx *gorm.DB, assignmentID, studentID uint) (*models.Submission, error) {
	db := s.helpers.GetDB(tx)
	var submission models.Submission
	err := db.WithContext(ctx).
		Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).
		First(&submission).Error
	if err != nil {
		return nil, TranslateError(err)
	}
	return &submission, nil
}

func (s *SubmissionPostgreSQL) ListGradesByStudent(ctx context.Context, tx *gorm.DB, studentID uint) ([]*models.GradeView, error) {
	db := s.helpers.GetDB(tx)
	var views []*models.GradeView
	err := db.WithContext(ctx).
		Table("submissions").
		Select("submissions.assignment_id, assignments.title, submissions.grade, submissions.feedback").
		Joins("JOIN assignments ON submissions.assignment_id = assignments.id").
		Where("submissions.student_id = ?", studentID).
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (s *SubmissionPostgreSQL) ListByClass(ctx context.Context, tx *gorm.DB, classID uint) ([]*models.Submission, error) {
	db := s.helpers.GetDB(tx)
	var submissions []*models.Submission
	err := db.WithContext(ctx).
		Preload("Assignment").
		Preload("Student").
		Joins("JOIN assignments ON submissions.assignment_id = assignments.id").
		Where("assignments.class_id = ?", classID).
		Order("submissions.student_id, submissions.assignment_id").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}
