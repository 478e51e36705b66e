package services

import (
	"fmt"
)

// The service layer classifies every failure into one of these categories;
// the handler base maps each onto exactly one HTTP status.

// AuthenticationError: the caller could not be identified (missing or invalid
// token, failed credential match). Maps to 401.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

func NewAuthenticationError(message string) *AuthenticationError {
	return &AuthenticationError{Message: message}
}

// AuthorizationError: the caller is known but not permitted (role, ownership,
// or invitation mismatch). Maps to 403, distinct from authentication.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

func NewAuthorizationError(message string) *AuthorizationError {
	return &AuthorizationError{Message: message}
}

// NewPermissionError builds an AuthorizationError describing a denied action
// on a resource.
func NewPermissionError(userID uint, resource, action, reason string) *AuthorizationError {
	return &AuthorizationError{
		Message: fmt.Sprintf("user %d cannot %s %s: %s", userID, action, resource, reason),
	}
}

// ConflictError: the request collides with existing state (duplicate signup,
// duplicate invite). Maps to 400, not 409: the portal has always reported
// "already exists" as a plain client error.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

// NotFoundError: the referenced resource does not exist. Maps to 404.
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

func NewNotFoundError(resource string, id uint) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}
