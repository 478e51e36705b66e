package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/school-portal/portal-service/internal/auth"
	"github.com/school-portal/portal-service/internal/events"
	"github.com/school-portal/portal-service/internal/models"
	"github.com/school-portal/portal-service/internal/validator"
)

func newAuthServiceForTest(repo *fakeRepository) (AuthService, *events.MockPublisher, *auth.TokenIssuer) {
	tokens := auth.NewTokenIssuer("test-secret", 0)
	passwords := auth.NewPasswordHasher(bcrypt.MinCost)
	publisher := events.NewMockPublisher()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewAuthService(repo, tokens, passwords, publisher, logger, validator.New())
	return svc, publisher, tokens
}

func TestSignupCompletesInvitation(t *testing.T) {
	repo := newFakeRepository()
	repo.user.invite("t1@x.com", models.RoleTeacher)
	svc, publisher, tokens := newAuthServiceForTest(repo)

	resp, err := svc.Signup(context.Background(), &SignupRequest{
		Email:    "t1@x.com",
		Password: "hunter22",
		Role:     "teacher",
	})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if resp.User.Email != "t1@x.com" || resp.User.Role != models.RoleTeacher {
		t.Errorf("unexpected user in response: %+v", resp.User)
	}

	claims, err := tokens.Verify(resp.Token)
	if err != nil {
		t.Fatalf("issued token did not verify: %v", err)
	}
	if claims.Email != "t1@x.com" || claims.Role != models.RoleTeacher {
		t.Errorf("unexpected claims: %+v", claims)
	}

	stored, err := repo.user.GetByEmail(context.Background(), "t1@x.com")
	if err != nil {
		t.Fatalf("user disappeared: %v", err)
	}
	if !stored.IsActive() {
		t.Error("account should be active after signup")
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.EventUserSignedUp {
		t.Errorf("expected one %s event, got %+v", events.EventUserSignedUp, published)
	}
}

func TestSignupRejections(t *testing.T) {
	repo := newFakeRepository()
	repo.user.invite("student@x.com", models.RoleStudent)
	repo.user.activate("done@x.com", models.RoleTeacher, "alreadyset")
	svc, _, _ := newAuthServiceForTest(repo)

	var (
		conflictErr   *ConflictError
		authzErr      *AuthorizationError
		validationErr validator.ValidationErrors
	)

	tests := []struct {
		name   string
		req    *SignupRequest
		target interface{}
	}{
		{
			name:   "already signed up",
			req:    &SignupRequest{Email: "done@x.com", Password: "hunter22", Role: "teacher"},
			target: &conflictErr,
		},
		{
			name:   "never invited",
			req:    &SignupRequest{Email: "nobody@x.com", Password: "hunter22", Role: "student"},
			target: &authzErr,
		},
		{
			name:   "invited under a different role",
			req:    &SignupRequest{Email: "student@x.com", Password: "hunter22", Role: "teacher"},
			target: &authzErr,
		},
		{
			name:   "role that exists for no invitation",
			req:    &SignupRequest{Email: "student@x.com", Password: "hunter22", Role: "superuser"},
			target: &authzErr,
		},
		{
			name:   "never-invited email with a junk role",
			req:    &SignupRequest{Email: "nobody@x.com", Password: "hunter22", Role: "superuser"},
			target: &authzErr,
		},
		{
			name:   "missing password",
			req:    &SignupRequest{Email: "student@x.com", Role: "student"},
			target: &validationErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Signup(context.Background(), tt.req)
			if err == nil {
				t.Fatal("expected signup to fail")
			}
			if !errors.As(err, tt.target) {
				t.Errorf("unexpected error type: %T (%v)", err, err)
			}
		})
	}
}

func TestSignupCannotRepeat(t *testing.T) {
	repo := newFakeRepository()
	repo.user.invite("t1@x.com", models.RoleTeacher)
	svc, _, _ := newAuthServiceForTest(repo)

	req := &SignupRequest{Email: "t1@x.com", Password: "hunter22", Role: "teacher"}
	if _, err := svc.Signup(context.Background(), req); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}

	_, err := svc.Signup(context.Background(), req)
	var conflictErr *ConflictError
	if !errors.As(err, &conflictErr) {
		t.Errorf("second signup should conflict, got %T (%v)", err, err)
	}
}

func TestLogin(t *testing.T) {
	repo := newFakeRepository()
	repo.user.activate("t1@x.com", models.RoleTeacher, "hunter22")
	repo.user.invite("pending@x.com", models.RoleStudent)
	svc, _, tokens := newAuthServiceForTest(repo)

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := svc.Login(context.Background(), &LoginRequest{Email: "t1@x.com", Password: "hunter22"})
		if err != nil {
			t.Fatalf("login failed: %v", err)
		}
		claims, err := tokens.Verify(resp.Token)
		if err != nil {
			t.Fatalf("issued token did not verify: %v", err)
		}
		if claims.Role != models.RoleTeacher {
			t.Errorf("unexpected role in claims: %s", claims.Role)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &LoginRequest{Email: "t1@x.com", Password: "wrong"})
		var authErr *AuthenticationError
		if !errors.As(err, &authErr) {
			t.Errorf("unexpected error type: %T (%v)", err, err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &LoginRequest{Email: "ghost@x.com", Password: "hunter22"})
		var authErr *AuthenticationError
		if !errors.As(err, &authErr) {
			t.Errorf("unexpected error type: %T (%v)", err, err)
		}
	})

	t.Run("invited but never signed up", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &LoginRequest{Email: "pending@x.com", Password: "hunter22"})
		var authzErr *AuthorizationError
		if !errors.As(err, &authzErr) {
			t.Fatalf("unexpected error type: %T (%v)", err, err)
		}
		if authzErr.Message != "User has not set up a password yet" {
			t.Errorf("unexpected message: %q", authzErr.Message)
		}
	})
}
