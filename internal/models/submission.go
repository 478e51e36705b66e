package models

import (
	"time"
)

// Submission is a student's graded entry for an assignment. Grading upserts on
// (assignment_id, student_id): a teacher re-grading the same pair updates the
// existing row rather than creating a second one.
type Submission struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	AssignmentID uint        `json:"assignment_id" gorm:"not null;uniqueIndex:idx_submissions_assignment_student"`
	Assignment   *Assignment `json:"-" gorm:"foreignKey:AssignmentID"`
	StudentID    uint        `json:"student_id" gorm:"not null;uniqueIndex:idx_submissions_assignment_student"`
	Student      *User       `json:"-" gorm:"foreignKey:StudentID"`

	Grade    *string `json:"grade" gorm:"size:20"`
	Feedback *string `json:"feedback" gorm:"size:2000"`

	GradedAt  *time.Time `json:"graded_at"`
	CreatedAt time.Time  `json:"created_at"`
}

func (Submission) TableName() string {
	return "submissions"
}

// GradeView is the student-facing grade row: submission joined with the
// assignment it belongs to.
type GradeView struct {
	AssignmentID uint    `json:"assignment_id"`
	Title        string  `json:"title"`
	Grade        *string `json:"grade"`
	Feedback     *string `json:"feedback"`
}
