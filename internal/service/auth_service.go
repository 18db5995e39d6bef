package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/AmarWhoo/cookboxd/internal/domain"
	"github.com/AmarWhoo/cookboxd/internal/platform/logger"
	"github.com/AmarWhoo/cookboxd/internal/platform/metrics"
	"github.com/AmarWhoo/cookboxd/internal/service/auth"
	"github.com/AmarWhoo/cookboxd/internal/store"
)

// AuthResult is a user together with a freshly issued token.
type AuthResult struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// AuthService registers users and exchanges credentials for tokens.
type AuthService interface {
	// Register creates a user with role "user" and returns it with a token.
	Register(ctx context.Context, in domain.NewUserInput) (*AuthResult, error)

	// Login accepts an email or a username as identifier. Every failure to
	// match returns ErrInvalidCredentials.
	Login(ctx context.Context, identifier, password string) (*AuthResult, error)

	// Logout revokes the token described by claims until it expires.
	Logout(ctx context.Context, claims *auth.Claims) error
}

type authServiceImpl struct {
	users    store.UserStore
	hasher   auth.PasswordHasher
	verifier auth.PasswordVerifier
	tokens   auth.JWTService
	revoker  auth.TokenRevoker
	logger   *slog.Logger
}

// NewAuthService creates an AuthService. revoker may be nil, in which case
// logout revokes nothing.
func NewAuthService(
	users store.UserStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	tokens auth.JWTService,
	revoker auth.TokenRevoker,
	logger *slog.Logger,
) (AuthService, error) {
	switch {
	case users == nil:
		return nil, errors.New("users store cannot be nil")
	case hasher == nil:
		return nil, errors.New("password hasher cannot be nil")
	case verifier == nil:
		return nil, errors.New("password verifier cannot be nil")
	case tokens == nil:
		return nil, errors.New("jwt service cannot be nil")
	}
	if revoker == nil {
		revoker = auth.NoopRevoker{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &authServiceImpl{
		users:    users,
		hasher:   hasher,
		verifier: verifier,
		tokens:   tokens,
		revoker:  revoker,
		logger:   logger.With(slog.String("component", "auth_service")),
	}, nil
}

// Register implements AuthService.Register
func (s *authServiceImpl) Register(ctx context.Context, in domain.NewUserInput) (*AuthResult, error) {
	const op = "register"
	log := logger.FromContextOrDefault(ctx, s.logger)

	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	taken, err := s.users.EmailExists(ctx, in.Email, 0)
	if err != nil {
		return nil, storeFailure(op, "Failed to register user", err)
	}
	if taken {
		return nil, duplicate(op, "Email address is already registered")
	}

	taken, err = s.users.UsernameExists(ctx, in.Username, 0)
	if err != nil {
		return nil, storeFailure(op, "Failed to register user", err)
	}
	if taken {
		return nil, duplicate(op, "Username is already taken")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, NewError(op, "Failed to register user", err)
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, store.ErrEmailExists):
			return nil, duplicate(op, "Email address is already registered")
		case errors.Is(err, store.ErrUsernameExists):
			return nil, duplicate(op, "Username is already taken")
		}
		return nil, storeFailure(op, "Failed to register user", err)
	}
	metrics.RecordCreated("user", 1)

	token, err := s.tokens.GenerateToken(ctx, user)
	if err != nil {
		return nil, NewError(op, "Failed to register user", err)
	}

	log.Info("user registered", slog.Int64("user_id", user.ID))
	return &AuthResult{User: user, Token: token}, nil
}

// Login implements AuthService.Login
func (s *authServiceImpl) Login(ctx context.Context, identifier, password string) (*AuthResult, error) {
	const op = "login"
	log := logger.FromContextOrDefault(ctx, s.logger)

	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, domain.NewValidationError("credentials", "Email/username and password are required")
	}

	var (
		user *domain.User
		err  error
	)
	if domain.IsEmail(identifier) {
		user, err = s.users.GetByEmail(ctx, identifier)
	} else {
		user, err = s.users.GetByUsername(ctx, identifier)
	}
	if err != nil {
		if store.IsNotFoundError(err) {
			metrics.RecordLogin(metrics.LoginInvalidCredentials)
			log.Debug("login failed: unknown identifier")
			return nil, NewError(op, "Invalid credentials", ErrInvalidCredentials)
		}
		return nil, NewError(op, "Login failed", err)
	}

	if err := s.verifier.Compare(user.PasswordHash, password); err != nil {
		metrics.RecordLogin(metrics.LoginInvalidCredentials)
		log.Debug("login failed: password mismatch", slog.Int64("user_id", user.ID))
		return nil, NewError(op, "Invalid credentials", ErrInvalidCredentials)
	}

	token, err := s.tokens.GenerateToken(ctx, user)
	if err != nil {
		return nil, NewError(op, "Login failed", err)
	}

	metrics.RecordLogin(metrics.LoginSuccess)
	log.Info("user logged in", slog.Int64("user_id", user.ID))
	return &AuthResult{User: user, Token: token}, nil
}

// Logout implements AuthService.Logout
func (s *authServiceImpl) Logout(ctx context.Context, claims *auth.Claims) error {
	const op = "logout"
	if claims == nil || claims.ID == "" {
		return unauthenticated(op)
	}
	if err := s.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt); err != nil {
		return NewError(op, "Failed to log out", fmt.Errorf("revoking token: %w", err))
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("token revoked",
		slog.Int64("user_id", claims.UserID),
		slog.String("token_id", claims.ID))
	return nil
}
