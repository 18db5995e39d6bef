package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AmarWhoo/cookboxd/internal/service/auth"
	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "cookboxd:revoked:"

// TokenDenylist stores revoked token ids until the token would have expired
// anyway.
type TokenDenylist struct {
	client *redis.Client
	now    func() time.Time
}

var _ auth.TokenRevoker = (*TokenDenylist)(nil)

// NewTokenDenylist creates a TokenDenylist.
func NewTokenDenylist(client *redis.Client) (*TokenDenylist, error) {
	if client == nil {
		return nil, errors.New("redis client cannot be nil")
	}
	return &TokenDenylist{client: client, now: time.Now}, nil
}

// Revoke implements auth.TokenRevoker. Tokens that have already expired are
// not stored.
func (d *TokenDenylist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return errors.New("token id is required")
	}
	ttl := expiresAt.Sub(d.now())
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked implements auth.TokenRevoker.
func (d *TokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return n > 0, nil
}
