package utils

import (
	"testing"
	"time"
)

func TestGenerateAndParseSessionToken(t *testing.T) {
	t.Parallel()

	secret := "super-secret"
	userID := "user-123"

	tok, err := GenerateSessionToken(userID, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateSessionToken error: %v", err)
	}

	gotUserID, err := ParseSessionToken(tok, secret)
	if err != nil {
		t.Fatalf("ParseSessionToken error: %v", err)
	}
	if gotUserID != userID {
		t.Fatalf("userID mismatch: got %q want %q", gotUserID, userID)
	}
}

func TestParseSessionToken_Expired(t *testing.T) {
	t.Parallel()

	tok, err := GenerateSessionToken("u1", "secret", -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateSessionToken error: %v", err)
	}

	if _, err := ParseSessionToken(tok, "secret"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestParseSessionToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateSessionToken("u2", "right-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateSessionToken error: %v", err)
	}

	if _, err := ParseSessionToken(tok, "wrong-secret"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestParseSessionToken_Malformed(t *testing.T) {
	t.Parallel()

	if _, err := ParseSessionToken("not.a.jwt", "k"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}

func TestParseSessionToken_MissingIDClaim(t *testing.T) {
	t.Parallel()

	tok, err := GenerateSessionToken("", "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateSessionToken error: %v", err)
	}

	if _, err := ParseSessionToken(tok, "secret"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for empty id claim, got %v", err)
	}
}
