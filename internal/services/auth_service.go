package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/school-portal/portal-service/internal/auth"
	"github.com/school-portal/portal-service/internal/events"
	"github.com/school-portal/portal-service/internal/repositories"
	"github.com/school-portal/portal-service/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	tokens    *auth.TokenIssuer
	passwords *auth.PasswordHasher
	publisher events.Publisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAuthService(
	repo repositories.Repository,
	tokens *auth.TokenIssuer,
	passwords *auth.PasswordHasher,
	publisher events.Publisher,
	logger *slog.Logger,
	validator *validator.Validator,
) AuthService {
	return &authService{
		repo:      repo,
		tokens:    tokens,
		passwords: passwords,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// Signup completes an invitation. The checks run in a fixed order so each
// failure mode is distinct: missing fields, already signed up, not invited.
func (s *authService) Signup(ctx context.Context, req *SignupRequest) (*AuthResponse, error) {
	if errs := s.validator.ValidateStruct(req); errs != nil {
		return nil, errs
	}

	s.logger.Info("Signup attempt", "email", req.Email, "role", req.Role)

	active, err := s.repo.User().HasActiveAccount(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}
	if active {
		return nil, NewConflictError("User already exists")
	}

	// The invitation must match both email and role; an email invited under a
	// different role is not authorized for this one.
	invited, err := s.repo.User().FindInvitation(ctx, req.Email, req.Role)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, NewAuthorizationError("Email not authorized for signup")
		}
		return nil, fmt.Errorf("failed to look up invitation: %w", err)
	}

	hash, err := s.passwords.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to derive credential: %w", err)
	}

	if err := s.repo.User().AttachCredential(ctx, req.Email, hash); err != nil {
		if errors.Is(err, repositories.ErrAlreadyActive) {
			// Lost a concurrent signup race for the same invitation.
			return nil, NewConflictError("User already exists")
		}
		return nil, fmt.Errorf("failed to store credential: %w", err)
	}

	token, err := s.tokens.Issue(invited)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	if err := s.publisher.Publish(ctx, events.NewEvent(events.EventUserSignedUp, invited.Public())); err != nil {
		s.logger.Error("Failed to publish signup event", "error", err, "email", req.Email)
	}

	s.logger.Info("Signup completed", "user_id", invited.ID, "role", invited.Role)

	return &AuthResponse{
		Token: token,
		User:  invited.Public(),
	}, nil
}

// Login verifies a credential. Unknown email and wrong password produce the
// same response; an invited account with no credential is reported
// separately, which matches the portal's long-standing behavior.
func (s *authService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if errs := s.validator.ValidateStruct(req); errs != nil {
		return nil, errs
	}

	user, err := s.repo.User().GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, NewAuthenticationError("Invalid credentials")
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.IsActive() {
		return nil, NewAuthorizationError("User has not set up a password yet")
	}

	if err := s.passwords.Verify(req.Password, *user.PasswordHash); err != nil {
		s.logger.Info("Login rejected", "email", req.Email)
		return nil, NewAuthenticationError("Invalid credentials")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("Login succeeded", "user_id", user.ID, "role", user.Role)

	return &AuthResponse{
		Token: token,
		User:  user.Public(),
	}, nil
}

var _ AuthService = (*authService)(nil)
