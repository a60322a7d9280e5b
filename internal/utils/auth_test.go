package utils

import (
	"testing"
	"time"
)

func TestPasswordHashing(t *testing.T) {
	password := "secret123"

	// Test Hashing
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	if hash == password {
		t.Error("Hash should not match plaintext password")
	}
	if len(hash) == 0 {
		t.Error("Hash should not be empty")
	}

	// Test Comparison (Success)
	if !CheckPasswordHash(password, hash) {
		t.Error("Password should match hash")
	}

	// Test Comparison (Failure)
	if CheckPasswordHash("wrongpassword", hash) {
		t.Error("Wrong password should not match hash")
	}
}

func TestResetToken(t *testing.T) {
	secret := "test-secret-key-12345"
	adminCode := "RECOVER1"

	token, err := GenerateResetToken(adminCode, secret, time.Minute)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	if token == "" {
		t.Error("Token should not be empty")
	}

	// Validation (Success)
	code, err := ValidateResetToken(token, secret)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}
	if code != adminCode {
		t.Errorf("Expected admin code %s, got %s", adminCode, code)
	}

	// Validation (Failure - Wrong Key)
	if _, err := ValidateResetToken(token, "wrong-key"); err == nil {
		t.Error("Validation should fail with wrong key")
	}
}

func TestResetTokenExpiry(t *testing.T) {
	secret := "test-secret-key-12345"

	token, err := GenerateResetToken("RECOVER1", secret, -time.Minute)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	if _, err := ValidateResetToken(token, secret); err == nil {
		t.Error("Validation should fail for an expired token")
	}
}
