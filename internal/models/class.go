package models

import (
	"time"
)

// Class is a taught course section, optionally assigned to a teacher.
type Class struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"not null;size:200"`
	TeacherID *uint  `json:"teacher_id"`
	Teacher   *User  `json:"-" gorm:"foreignKey:TeacherID"`

	CreatedAt time.Time `json:"created_at"`
}

func (Class) TableName() string {
	return "classes"
}

// ClassView is the list representation with the teacher email joined in,
// matching what the dashboard tables render.
type ClassView struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	TeacherID    *uint   `json:"teacher_id"`
	TeacherEmail *string `json:"teacher_email"`
}
