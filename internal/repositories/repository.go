package repositories

import "context"

// Repository aggregates all persistence interfaces behind one handle.
type Repository interface {
	// Identity domain
	User() UserRepository

	// Teaching domain
	Class() ClassRepository
	Assignment() AssignmentRepository
	Submission() SubmissionRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager manages repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
