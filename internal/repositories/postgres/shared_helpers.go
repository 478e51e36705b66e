package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/school-portal/portal-service/internal/repositories"
)

// SharedHelpers contains common database plumbing shared by the postgres
// repositories.
type SharedHelpers struct {
	db *gorm.DB
}

func NewSharedHelpers(db *gorm.DB) *SharedHelpers {
	return &SharedHelpers{db: db}
}

// GetDB returns the transaction handle when one is in flight, otherwise the
// base connection.
func (h *SharedHelpers) GetDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return h.db
}

// TranslateError maps gorm errors onto the repository sentinels.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repositories.ErrRecordNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repositories.ErrDuplicateEmail
	}
	return err
}
