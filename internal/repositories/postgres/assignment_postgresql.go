package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/school-portal/portal-service/internal/models"
	"github.com/school-portal/portal-service/internal/repositories"
)

type AssignmentPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewAssignmentPostgreSQL(db *gorm.DB) repositories.AssignmentRepository {
	return &AssignmentPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

func (a *AssignmentPostgreSQL) Create(ctx context.Context, tx *gorm.DB, assignment *models.Assignment) error {
	db := a.helpers.GetDB(tx)
	return db.WithContext(ctx).Create(assignment).Error
}

func (a *AssignmentPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Assignment, error) {
	db := a.helpers.GetDB(tx)
	var assignment models.Assignment
	if err := db.WithContext(ctx).First(&assignment, id).Error; err != nil {
		return nil, TranslateError(err)
	}
	return &assignment, nil
}

func (a *AssignmentPostgreSQL) Update(ctx context.Context, tx *gorm.DB, assignment *models.Assignment) error {
	db := a.helpers.GetDB(tx)
	return db.WithContext(ctx).
		Model(&models.Assignment{ID: assignment.ID}).
		Select("title", "description", "due_date").
		Updates(map[string]interface{}{
			"title":       assignment.Title,
			"description": assignment.Description,
			"due_date":    assignment.DueDate,
		}).Error
}

func (a *AssignmentPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := a.helpers.GetDB(tx)
	return db.WithContext(ctx).Delete(&models.Assignment{}, id).Error
}

func (a *AssignmentPostgreSQL) ListByClass(ctx context.Context, tx *gorm.DB, classID uint) ([]*models.Assignment, error) {
	db := a.helpers.GetDB(tx)
	var assignments []*models.Assignment
	err := db.WithContext(ctx).
		Where("class_id = ?", classID).
		Order("due_date").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}
