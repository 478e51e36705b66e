package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/school-portal/portal-service/internal/models"
	"github.com/school-portal/portal-service/internal/repositories"
)

type ClassPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewClassPostgreSQL(db *gorm.DB) repositories.ClassRepository {
	return &ClassPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

func (c *ClassPostgreSQL) Create(ctx context.Context, tx *gorm.DB, class *models.Class) error {
	db := c.helpers.GetDB(tx)
	return db.WithContext(ctx).Create(class).Error
}

func (c *ClassPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Class, error) {
	db := c.helpers.GetDB(tx)
	var class models.Class
	if err := db.WithContext(ctx).First(&class, id).Error; err != nil {
		return nil, TranslateError(err)
	}
	return &class, nil
}

func (c *ClassPostgreSQL) Update(ctx context.Context, tx *gorm.DB, class *models.Class) error {
	db := c.helpers.GetDB(tx)
	// Save with a nil TeacherID must clear the column, so update explicitly.
	return db.WithContext(ctx).
		Model(&models.Class{ID: class.ID}).
		Select("name", "teacher_id").
		Updates(map[string]interface{}{
			"name":       class.Name,
			"teacher_id": class.TeacherID,
		}).Error
}

func (c *ClassPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := c.helpers.GetDB(tx)
	return db.WithContext(ctx).Delete(&models.Class{}, id).Error
}

func (c *ClassPostgreSQL) List(ctx context.Context, tx *gorm.DB) ([]*models.ClassView, error) {
	db := c.helpers.GetDB(tx)
	var views []*models.ClassView
	err := db.WithContext(ctx).
		Table("classes").
		Select("classes.id, classes.name, classes.teacher_id, users.email AS teacher_email").
		Joins("LEFT JOIN users ON classes.teacher_id = users.id").
		Order("classes.id").
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}
