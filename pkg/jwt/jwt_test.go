package jwt

import (
	"testing"
	"time"
)

func TestGenerateAndVerify(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)

	token, err := manager.Generate("u1", "alex_creator")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "u1" {
		t.Errorf("expected user id u1, got %s", claims.UserID)
	}
	if claims.Username != "alex_creator" {
		t.Errorf("expected username alex_creator, got %s", claims.Username)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", time.Hour).Generate("u1", "alex_creator")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := NewManager("secret-b", time.Hour).Verify(token); err == nil {
		t.Error("expected verification to fail with a different secret")
	}
}

func TestVerifyExpired(t *testing.T) {
	manager := NewManager("test-secret", -time.Minute)

	token, err := manager.Generate("u1", "alex_creator")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := manager.Verify(token); err == nil {
		t.Error("expected expired token to fail verification")
	}
}

func TestVerifyGarbage(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)

	if _, err := manager.Verify("not-a-token"); err == nil {
		t.Error("expected malformed token to fail verification")
	}
}
