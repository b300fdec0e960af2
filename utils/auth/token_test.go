package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/creoleap/api/model"
)

func newTestTokenService(expiry time.Duration) *TokenService {
	return NewTokenService(TokenConfig{
		SuperAdminSecret: "super-admin-secret-for-tests",
		AdminSecret:      "admin-secret-for-tests",
		DefaultSecret:    "default-secret-for-tests",
		Expiry:           expiry,
	})
}

func TestTokenRoundTripPerRole(t *testing.T) {
	tokens := newTestTokenService(time.Hour)

	for _, role := range []string{model.RoleSuperAdmin, model.RoleAdmin} {
		payload := TokenPayload{
			ID:    "0198c1a2-7f3e-7000-8000-000000000001",
			Email: "admin@example.com",
			Role:  role,
		}

		encoded, err := tokens.Encode(payload)
		if err != nil {
			t.Fatalf("Encode for role %s failed: %v", role, err)
		}
		if !strings.HasPrefix(encoded, TokenPrefix) {
			t.Fatalf("token missing %q prefix: %s", TokenPrefix, encoded)
		}

		decoded, err := tokens.Decode(encoded, role)
		if err != nil {
			t.Fatalf("Decode for role %s failed: %v", role, err)
		}
		if decoded.ID != payload.ID || decoded.Email != payload.Email || decoded.Role != role {
			t.Errorf("decoded payload mismatch for role %s: %+v", role, decoded)
		}
		if decoded.ExpiresAt <= decoded.IssuedAt {
			t.Errorf("expiry %d not after issuance %d", decoded.ExpiresAt, decoded.IssuedAt)
		}
	}
}

func TestTokenRejectedUnderOtherRoleKey(t *testing.T) {
	tokens := newTestTokenService(time.Hour)

	encoded, err := tokens.Encode(TokenPayload{
		ID:    "0198c1a2-7f3e-7000-8000-000000000002",
		Email: "admin@example.com",
		Role:  model.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	if _, err := tokens.Decode(encoded, model.RoleSuperAdmin); err == nil {
		t.Error("admin token decoded under the super admin key")
	}
}

func TestTokenRejectsMissingPrefix(t *testing.T) {
	tokens := newTestTokenService(time.Hour)

	encoded, err := tokens.Encode(TokenPayload{ID: "x", Role: model.RoleAdmin})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	stripped := strings.TrimPrefix(encoded, TokenPrefix)
	if _, err := tokens.Decode(stripped, model.RoleAdmin); err != ErrInvalidToken {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}

	if _, err := tokens.Decode("", model.RoleAdmin); err != ErrInvalidToken {
		t.Errorf("empty token: got %v, want ErrInvalidToken", err)
	}
}

func TestTokenRejectsCorruption(t *testing.T) {
	tokens := newTestTokenService(time.Hour)

	encoded, err := tokens.Encode(TokenPayload{ID: "x", Role: model.RoleAdmin})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	// Flip the final character of the base64 body.
	corrupted := encoded[:len(encoded)-1]
	if encoded[len(encoded)-1] == 'A' {
		corrupted += "B"
	} else {
		corrupted += "A"
	}

	if _, err := tokens.Decode(corrupted, model.RoleAdmin); err != ErrInvalidToken {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}

	if _, err := tokens.Decode(TokenPrefix+"!!!not-base64!!!", model.RoleAdmin); err != ErrInvalidToken {
		t.Errorf("bad base64: got %v, want ErrInvalidToken", err)
	}
}

func TestTokenExpiry(t *testing.T) {
	tokens := newTestTokenService(-time.Minute)

	encoded, err := tokens.Encode(TokenPayload{ID: "x", Role: model.RoleAdmin})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	if _, err := tokens.Decode(encoded, model.RoleAdmin); err != ErrExpiredToken {
		t.Errorf("got %v, want ErrExpiredToken", err)
	}
}
