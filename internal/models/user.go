package models

import (
	"time"
)

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleTeacher UserRole = "teacher"
	RoleStudent UserRole = "student"
)

// Valid reports whether the role is one of the three portal roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// User is an identity record. A record with no PasswordHash is an invitation:
// the email and role are reserved by an administrator, but the account cannot
// authenticate until signup attaches a credential.
type User struct {
	ID    uint     `json:"id" gorm:"primaryKey"`
	Email string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Role  UserRole `json:"role" gorm:"not null;size:20"`

	// Never serialized; nil means "invited but not signed up".
	PasswordHash *string `json:"-" gorm:"size:100"`

	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// IsActive reports whether the user has completed signup.
func (u *User) IsActive() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// PublicUser is the client-facing view of a user. The credential hash is never
// part of any response payload.
type PublicUser struct {
	ID    uint     `json:"id"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Email: u.Email,
		Role:  u.Role,
	}
}
