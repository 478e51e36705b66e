package models

import (
	"time"
)

// ===== ERROR RESPONSES =====

type ErrorResponse struct {
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ===== LIST VIEWS =====

// UserListItem is what the admin user table renders; the credential hash is
// deliberately not part of this shape.
type UserListItem struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
