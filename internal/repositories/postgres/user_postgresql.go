package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/school-portal/portal-service/internal/cache"
	"github.com/school-portal/portal-service/internal/models"
	"github.com/school-portal/portal-service/internal/repositories"
)

type UserPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewUserPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.UserRepository {
	return &UserPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (u *UserPostgreSQL) GetByID(ctx context.Context, id uint) (*models.User, error) {
	cacheKey := fmt.Sprintf("id:%d", id)
	var user models.User

	err := u.cacheManager.User.CacheOrExecute(ctx, cacheKey, &user, cache.UserCacheConfig.TTL, func() (interface{}, error) {
		var dbUser models.User
		if err := u.db.WithContext(ctx).First(&dbUser, id).Error; err != nil {
			return nil, TranslateError(err)
		}
		return &dbUser, nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserPostgreSQL) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	// Email lookups back the signup/login path and must see invitation state
	// immediately; they bypass the cache.
	var user models.User
	if err := u.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, TranslateError(err)
	}
	return &user, nil
}

func (u *UserPostgreSQL) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	query := u.db.WithContext(ctx).Model(&models.User{})
	if filters.Role != nil {
		query = query.Where("role = ?", *filters.Role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit).Offset(filters.Offset)
	}

	var users []*models.User
	if err := query.Order("id").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (u *UserPostgreSQL) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	cacheKey := fmt.Sprintf("email:%s", email)
	if cached, err := u.cacheManager.Exists.Exists(ctx, cacheKey); err == nil && cached {
		return true, nil
	}

	var count int64
	if err := u.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		// Only positive existence is cached; absence must stay fresh for the
		// invite flow.
		_ = u.cacheManager.Exists.Set(ctx, cacheKey, true, cache.ExistsCacheConfig.TTL)
	}
	return count > 0, nil
}

func (u *UserPostgreSQL) FindInvitation(ctx context.Context, email string, role models.UserRole) (*models.User, error) {
	var user models.User
	err := u.db.WithContext(ctx).
		Where("email = ? AND role = ? AND password_hash IS NULL", email, role).
		First(&user).Error
	if err != nil {
		return nil, TranslateError(err)
	}
	return &user, nil
}

func (u *UserPostgreSQL) HasActiveAccount(ctx context.Context, email string) (bool, error) {
	var count int64
	err := u.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ? AND password_hash IS NOT NULL", email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (u *UserPostgreSQL) Create(ctx context.Context, user *models.User) error {
	if err := u.db.WithContext(ctx).Create(user).Error; err != nil {
		return TranslateError(err)
	}
	cache.InvalidateUserCache(ctx, u.cacheManager, user.ID, user.Email)
	return nil
}

func (u *UserPostgreSQL) AttachCredential(ctx context.Context, email string, hash string) error {
	// The NULL guard makes this the single invited→active transition: under
	// concurrent signups for the same email only one UPDATE matches.
	result := u.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ? AND password_hash IS NULL", email).
		Update("password_hash", hash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repositories.ErrAlreadyActive
	}
	cache.SafeInvalidatePattern(ctx, u.cacheManager.User, "id:*")
	cache.SafeDelete(ctx, u.cacheManager.Exists, fmt.Sprintf("email:%s", email))
	return nil
}

func (u *UserPostgreSQL) Delete(ctx context.Context, id uint) error {
	var user models.User
	if err := u.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repositories.ErrRecordNotFound
		}
		return err
	}
	if err := u.db.WithContext(ctx).Delete(&models.User{}, id).Error; err != nil {
		return err
	}
	cache.InvalidateUserCache(ctx, u.cacheManager, id, user.Email)
	return nil
}
