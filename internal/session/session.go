// Package session tracks live admin sessions behind opaque bearer tokens.
package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"islandproperties-backend/internal/models"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrExpired  = errors.New("session expired")
)

// Store issues, validates and revokes session tokens.
//
// Validate returns ErrNotFound for an unknown token. A token whose expiry has
// passed is evicted and reported as ErrExpired. Revoke is idempotent.
type Store interface {
	Issue(ctx context.Context, adminUserID string, ttl time.Duration) (string, *models.Session, error)
	Validate(ctx context.Context, token string) (*models.Session, error)
	Revoke(ctx context.Context, token string) error
}

// NewToken generates a random token and the hash it is stored under.
func NewToken() (token, hash string, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}
	token = hex.EncodeToString(b)
	return token, HashToken(token), nil
}

// HashToken creates a SHA-256 hash of the token
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// NewSession builds the record for a freshly issued token.
func NewSession(adminUserID string, ttl time.Duration, now time.Time) (string, *models.Session, error) {
	token, hash, err := NewToken()
	if err != nil {
		return "", nil, err
	}
	return token, &models.Session{
		TokenHash:   hash,
		AdminUserID: adminUserID,
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}, nil
}
