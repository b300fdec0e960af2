package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	"github.com/creoleap/api/model"
	"github.com/creoleap/api/utils/crypto"
)

// TokenPrefix identifies an authenticated-encryption token. Anything that
// does not start with it is rejected before any decryption is attempted.
const TokenPrefix = "v4.local."

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// TokenPayload is the decrypted content of a token
type TokenPayload struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	InstitutionID string `json:"institutionId,omitempty"`
	IssuedAt      int64  `json:"iat"`
	ExpiresAt     int64  `json:"exp"`
}

// TokenConfig holds the per-role secrets and the token lifetime
type TokenConfig struct {
	SuperAdminSecret string
	AdminSecret      string
	DefaultSecret    string
	Expiry           time.Duration
}

// TokenService issues and verifies authenticated-encryption tokens. Each
// role has its own symmetric key, so a token sealed for one role cannot be
// opened under another role's key.
type TokenService struct {
	superAdminKey []byte
	adminKey      []byte
	defaultKey    []byte
	expiry        time.Duration
}

// NewTokenService derives the three role keys from the configured secrets
func NewTokenService(cfg TokenConfig) *TokenService {
	expiry := cfg.Expiry
	if expiry == 0 {
		expiry = 24 * time.Hour
	}

	return &TokenService{
		superAdminKey: deriveKey(cfg.SuperAdminSecret),
		adminKey:      deriveKey(cfg.AdminSecret),
		defaultKey:    deriveKey(cfg.DefaultSecret),
		expiry:        expiry,
	}
}

// deriveKey stretches a configured secret to the cipher's key length
func deriveKey(secret string) []byte {
	sum := sha256.Sum256([]byte(secret))
	return sum[:]
}

// keyFor resolves the symmetric key for a role. Unrecognized roles fall
// back to the default key, matching the closed role-to-key mapping.
func (t *TokenService) keyFor(role string) []byte {
	switch role {
	case model.RoleSuperAdmin:
		return t.superAdminKey
	case model.RoleAdmin:
		return t.adminKey
	default:
		return t.defaultKey
	}
}

// Encode seals the payload under the key of payload.Role
func (t *TokenService) Encode(payload TokenPayload) (string, error) {
	now := time.Now()
	payload.IssuedAt = now.Unix()
	payload.ExpiresAt = now.Add(t.expiry).Unix()

	plaintext, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	sealed, err := crypto.Seal(t.keyFor(payload.Role), plaintext, []byte(TokenPrefix))
	if err != nil {
		return "", err
	}

	return TokenPrefix + base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decode opens a token under the key of the given role. A missing or wrong
// prefix fails before any decryption; a token sealed under a different
// role's key fails authentication.
func (t *TokenService) Decode(token, role string) (*TokenPayload, error) {
	if len(token) <= len(TokenPrefix) || token[:len(TokenPrefix)] != TokenPrefix {
		return nil, ErrInvalidToken
	}

	sealed, err := base64.RawURLEncoding.DecodeString(token[len(TokenPrefix):])
	if err != nil {
		return nil, ErrInvalidToken
	}

	plaintext, err := crypto.Open(t.keyFor(role), sealed, []byte(TokenPrefix))
	if err != nil {
		return nil, ErrInvalidToken
	}

	var payload TokenPayload
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return nil, ErrInvalidToken
	}

	if payload.ExpiresAt > 0 && time.Now().Unix() > payload.ExpiresAt {
		return nil, ErrExpiredToken
	}

	return &payload, nil
}
