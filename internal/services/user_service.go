package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/school-portal/portal-service/internal/auth"
	"github.com/school-portal/portal-service/internal/events"
	"github.com/school-portal/portal-service/internal/models"
	"github.com/school-portal/portal-service/internal/repositories"
	"github.com/school-portal/portal-service/internal/validator"
)

type userService struct {
	repo      repositories.Repository
	passwords *auth.PasswordHasher
	publisher events.Publisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewUserService(
	repo repositories.Repository,
	passwords *auth.PasswordHasher,
	publisher events.Publisher,
	logger *slog.Logger,
	validator *validator.Validator,
) UserService {
	return &userService{
		repo:      repo,
		passwords: passwords,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

func (s *userService) List(ctx context.Context, filters repositories.UserFilters) (*UserListResponse, error) {
	users, total, err := s.repo.User().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	items := make([]models.UserListItem, 0, len(users))
	for _, u := range users {
		items = append(items, models.UserListItem{
			ID:        u.ID,
			Email:     u.Email,
			Role:      u.Role,
			Active:    u.IsActive(),
			CreatedAt: u.CreatedAt,
		})
	}

	return &UserListResponse{Users: items, Total: total}, nil
}

// Invite reserves an email+role pair with no credential. Only students and
// teachers are invitable; the request DTO enforces that.
func (s *userService) Invite(ctx context.Context, req *InviteUserRequest) (*models.PublicUser, error) {
	if errs := s.validator.ValidateStruct(req); errs != nil {
		return nil, errs
	}

	exists, err := s.repo.User().ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, NewConflictError("user already exists")
	}

	user := &models.User{
		Email: req.Email,
		Role:  req.Role,
	}
	if err := s.repo.User().Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, NewConflictError("user already exists")
		}
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	if err := s.publisher.Publish(ctx, events.NewEvent(events.EventUserInvited, user.Public())); err != nil {
		s.logger.Error("Failed to publish invite event", "error", err, "email", req.Email)
	}

	s.logger.Info("User invited", "user_id", user.ID, "role", user.Role)

	view := user.Public()
	return &view, nil
}

func (s *userService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.User().Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return NewNotFoundError("user", id)
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if err := s.publisher.Publish(ctx, events.NewEvent(events.EventUserDeleted, map[string]uint{"id": id})); err != nil {
		s.logger.Error("Failed to publish delete event", "error", err, "user_id", id)
	}

	s.logger.Info("User deleted", "user_id", id)
	return nil
}

// EnsureSeedAdmin bootstraps the first administrator as an already-active
// account. Running it again with the same email is a no-op.
func (s *userService) EnsureSeedAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	exists, err := s.repo.User().ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check seed admin: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to derive seed credential: %w", err)
	}

	admin := &models.User{
		Email:        email,
		Role:         models.RoleAdmin,
		PasswordHash: &hash,
	}
	if err := s.repo.User().Create(ctx, admin); err != nil {
		// Another instance may have seeded concurrently.
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil
		}
		return fmt.Errorf("failed to create seed admin: %w", err)
	}

	s.logger.Info("Seed admin created", "email", email)
	return nil
}

var _ UserService = (*userService)(nil)
