package repositories

import (
	"context"

	"github.com/school-portal/portal-service/internal/models"
)

// UserFilters defines filters for user listings.
type UserFilters struct {
	Role   *models.UserRole // Restrict to one role
	Limit  int              // Page size; 0 means no paging
	Offset int
}

// UserRepository is the credential store: identity records, some invited
// (role reserved, no credential), some active (credential set).
type UserRepository interface {
	// Reads
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Invitation checks. FindInvitation matches email AND role exactly, with
	// no credential set; HasActiveAccount matches email with a credential.
	FindInvitation(ctx context.Context, email string, role models.UserRole) (*models.User, error)
	HasActiveAccount(ctx context.Context, email string) (bool, error)

	// Mutations. Create inserts either an invited record (nil hash) or an
	// active one (bootstrap). AttachCredential is the single invited→active
	// transition: it only touches rows whose hash is still NULL, so the
	// loser of a concurrent signup race sees ErrAlreadyActive.
	Create(ctx context.Context, user *models.User) error
	AttachCredential(ctx context.Context, email string, hash string) error
	Delete(ctx context.Context, id uint) error
}
