package models

import (
	"time"

	"gorm.io/datatypes"
)

// Assignment is coursework posted to a class by a teacher.
type Assignment struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	ClassID     uint            `json:"class_id" gorm:"not null;index"`
	Class       *Class          `json:"-" gorm:"foreignKey:ClassID"`
	Title       string          `json:"title" gorm:"not null;size:200"`
	Description *string         `json:"description" gorm:"size:2000"`
	DueDate     *datatypes.Date `json:"due_date"`

	CreatedAt time.Time `json:"created_at"`
}

func (Assignment) TableName() string {
	return "assignments"
}
