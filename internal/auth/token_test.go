package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/school-portal/portal-service/internal/models"
)

func testUser() *models.User {
	return &models.User{
		ID:    42,
		Email: "t1@x.com",
		Role:  models.RoleTeacher,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", DefaultTokenTTL)

	token, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Email != "t1@x.com" {
		t.Errorf("expected email t1@x.com, got %s", claims.Email)
	}
	if claims.Role != models.RoleTeacher {
		t.Errorf("expected role teacher, got %s", claims.Role)
	}
}

func TestTokenExpiryBoundaries(t *testing.T) {
	issuedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := issuedAt
	issuer := NewTokenIssuer("test-secret", DefaultTokenTTL).WithClock(func() time.Time { return clock })

	token, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	tests := []struct {
		name    string
		at      time.Time
		wantErr error
	}{
		{name: "one second after issuance", at: issuedAt.Add(time.Second), wantErr: nil},
		{name: "just before expiry", at: issuedAt.Add(24*time.Hour - time.Second), wantErr: nil},
		{name: "one second after expiry", at: issuedAt.Add(24*time.Hour + time.Second), wantErr: ErrExpiredToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock = tt.at
			_, err := issuer.Verify(token)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Verify at %v: got %v, want %v", tt.at, err, tt.wantErr)
			}
		})
	}
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("secret-a", DefaultTokenTTL)
	other := NewTokenIssuer("secret-b", DefaultTokenTTL)

	token, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := other.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken with wrong secret, got %v", err)
	}
}

func TestTokenRejectsTampering(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", DefaultTokenTTL)

	token, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := issuer.Verify(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for tampered token, got %v", err)
	}

	if _, err := issuer.Verify("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for garbage, got %v", err)
	}
}
