package auth

import (
	"context"
	"time"
)

// TokenRevoker records revoked token ids until the token would have expired.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// NoopRevoker is used when no revocation backend is configured. Nothing is
// ever revoked.
type NoopRevoker struct{}

// Revoke implements TokenRevoker.
func (NoopRevoker) Revoke(context.Context, string, time.Time) error { return nil }

// IsRevoked implements TokenRevoker.
func (NoopRevoker) IsRevoked(context.Context, string) (bool, error) { return false, nil }

var _ TokenRevoker = NoopRevoker{}
