package auth

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordRoundTrip(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("Pw123!")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if hash == "Pw123!" {
		t.Fatal("hash must not equal the plaintext")
	}

	if err := hasher.Verify("Pw123!", hash); err != nil {
		t.Errorf("identical plaintext should verify: %v", err)
	}
	if err := hasher.Verify("pw123!", hash); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("different plaintext should fail with ErrPasswordMismatch, got %v", err)
	}
}

func TestPasswordHasherCostBounds(t *testing.T) {
	hasher := NewPasswordHasher(999)
	if hasher.cost != DefaultBcryptCost {
		t.Errorf("out-of-range cost should fall back to default, got %d", hasher.cost)
	}
}
