package jwt

import (
	"errors"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestHMACService_RoundTrip(t *testing.T) {
	svc := NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour)
	id := uuid.New()

	access, err := svc.GenerateAccessToken(id, "admin@example.com")
	if err != nil {
		t.Fatalf("generate access: %v", err)
	}
	c, err := svc.ValidateAccessToken(access)
	if err != nil {
		t.Fatalf("validate access: %v", err)
	}
	got, _ := c.UserID()
	if got != id || c.Email != "admin@example.com" || c.TokenType != TokenTypeAccess || c.Issuer != Issuer {
		t.Fatalf("unexpected claims: %+v", c)
	}

	refresh, err := svc.GenerateRefreshToken(id, "admin@example.com")
	if err != nil {
		t.Fatalf("generate refresh: %v", err)
	}
	if _, err := svc.ValidateAccessToken(refresh); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("refresh token must not pass as access token, got %v", err)
	}
	if _, err := svc.ValidateRefreshToken(access); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("access token must not pass as refresh token, got %v", err)
	}
	if _, err := svc.ValidateRefreshToken(refresh); err != nil {
		t.Fatalf("validate refresh: %v", err)
	}
}

func TestHMACService_Expired(t *testing.T) {
	svc := NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour)
	issued := time.Now().Add(-2 * time.Minute)
	svc.now = func() time.Time { return issued }

	tok, err := svc.GenerateAccessToken(uuid.New(), "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	svc.now = time.Now
	if _, err := svc.ValidateAccessToken(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifier_AcceptsSupabaseStyleToken(t *testing.T) {
	id := uuid.New()
	claims := jwtlib.MapClaims{
		"sub":   id.String(),
		"email": "ops@example.com",
		"role":  "authenticated",
		"aud":   "authenticated",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	tok, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("project-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	v := NewVerifier("project-secret")
	c, err := v.ValidateAccessToken(tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if c.Email != "ops@example.com" || c.Role != "authenticated" {
		t.Fatalf("unexpected claims: %+v", c)
	}

	if _, err := NewVerifier("other-secret").ValidateAccessToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for wrong secret, got %v", err)
	}
}

func TestVerifier_CannotSign(t *testing.T) {
	v := NewVerifier("project-secret")
	if _, err := v.GenerateAccessToken(uuid.New(), "ops@example.com"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected verifier to refuse signing, got %v", err)
	}
	if _, err := v.ValidateRefreshToken("anything"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected verifier to reject refresh tokens, got %v", err)
	}
}
