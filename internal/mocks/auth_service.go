package mocks

import (
	"context"

	"github.com/AmarWhoo/cookboxd/internal/domain"
	"github.com/AmarWhoo/cookboxd/internal/service"
	"github.com/AmarWhoo/cookboxd/internal/service/auth"
)

// MockAuthService implements service.AuthService for testing
type MockAuthService struct {
	RegisterFn func(ctx context.Context, in domain.NewUserInput) (*service.AuthResult, error)
	LoginFn    func(ctx context.Context, identifier, password string) (*service.AuthResult, error)
	LogoutFn   func(ctx context.Context, claims *auth.Claims) error
}

var _ service.AuthService = (*MockAuthService)(nil)

// Register implements service.AuthService
func (m *MockAuthService) Register(ctx context.Context, in domain.NewUserInput) (*service.AuthResult, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, in)
	}
	return &service.AuthResult{}, nil
}

// Login implements service.AuthService
func (m *MockAuthService) Login(ctx context.Context, identifier, password string) (*service.AuthResult, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, identifier, password)
	}
	return &service.AuthResult{}, nil
}

// Logout implements service.AuthService
func (m *MockAuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if m.LogoutFn != nil {
		return m.LogoutFn(ctx, claims)
	}
	return nil
}
