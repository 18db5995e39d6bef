package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/AmarWhoo/cookboxd/internal/service/auth"
)

// MockTokenRevoker implements auth.TokenRevoker with an in-memory set.
type MockTokenRevoker struct {
	RevokeErr    error
	IsRevokedErr error

	mu      sync.Mutex
	revoked map[string]time.Time
}

var _ auth.TokenRevoker = (*MockTokenRevoker)(nil)

// Revoke implements auth.TokenRevoker.
func (m *MockTokenRevoker) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	if m.RevokeErr != nil {
		return m.RevokeErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.revoked == nil {
		m.revoked = make(map[string]time.Time)
	}
	m.revoked[tokenID] = expiresAt
	return nil
}

// IsRevoked implements auth.TokenRevoker.
func (m *MockTokenRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if m.IsRevokedErr != nil {
		return false, m.IsRevokedErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[tokenID]
	return ok, nil
}
