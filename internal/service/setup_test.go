package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/AmarWhoo/cookboxd/internal/config"
	"github.com/AmarWhoo/cookboxd/internal/domain"
	"github.com/AmarWhoo/cookboxd/internal/service/auth"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret-that-is-at-least-32-characters"

// recordingRevoker remembers revoked token ids.
type recordingRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func (r *recordingRevoker) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.revoked == nil {
		r.revoked = map[string]time.Time{}
	}
	r.revoked[tokenID] = expiresAt
	return nil
}

func (r *recordingRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.revoked[tokenID]
	return ok, nil
}

// testEnv wires every service against one in-memory database.
type testEnv struct {
	db          *memDB
	ingStore    *memIngredientStore
	tokens      auth.JWTService
	hasher      auth.PasswordHasher
	revoker     *recordingRevoker
	auth        AuthService
	users       UserService
	categories  CategoryService
	recipes     RecipeService
	ingredients IngredientService
	comments    CommentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newMemDB()
	users := &memUserStore{db: db}
	categories := &memCategoryStore{db: db}
	recipes := &memRecipeStore{db: db}
	ingredients := &memIngredientStore{db: db}
	comments := &memCommentStore{db: db}

	tokens, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            testJWTSecret,
		TokenLifetimeMinutes: 60,
		BcryptCost:           bcrypt.MinCost,
	})
	require.NoError(t, err)

	env := &testEnv{
		db:       db,
		ingStore: ingredients,
		tokens:   tokens,
		hasher:   auth.NewBcryptHasher(bcrypt.MinCost),
		revoker:  &recordingRevoker{},
	}
	verifier := auth.NewBcryptVerifier()

	env.auth, err = NewAuthService(users, env.hasher, verifier, tokens, env.revoker, nil)
	require.NoError(t, err)
	env.users, err = NewUserService(users, env.hasher, verifier, nil)
	require.NoError(t, err)
	env.categories, err = NewCategoryService(categories, nil)
	require.NoError(t, err)
	env.recipes, err = NewRecipeService(recipes, categories, nil)
	require.NoError(t, err)
	env.ingredients, err = NewIngredientService(ingredients, recipes, &memTransactor{db: db}, nil)
	require.NoError(t, err)
	env.comments, err = NewCommentService(comments, recipes, nil)
	require.NoError(t, err)

	return env
}

// seedUser inserts a user with password "password1" and returns its actor.
func (e *testEnv) seedUser(t *testing.T, username string, role domain.Role) domain.Actor {
	t.Helper()
	hash, err := e.hasher.Hash("password1")
	require.NoError(t, err)
	user := &domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Role:         role,
	}
	require.NoError(t, (&memUserStore{db: e.db}).Create(context.Background(), user))
	return user.Actor()
}

func (e *testEnv) seedCategory(t *testing.T, admin domain.Actor, name string) *domain.Category {
	t.Helper()
	category, err := e.categories.Create(context.Background(), admin, name)
	require.NoError(t, err)
	return category
}

func (e *testEnv) seedRecipe(t *testing.T, owner domain.Actor, title string, categoryID *int64) *domain.Recipe {
	t.Helper()
	recipe, err := e.recipes.Create(context.Background(), owner, domain.NewRecipeInput{
		Title:      title,
		CategoryID: categoryID,
	})
	require.NoError(t, err)
	return recipe
}

// requireServiceError asserts err wraps sentinel and carries message.
func requireServiceError(t *testing.T, err error, sentinel error, message string) {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, sentinel)
	var svcErr *Error
	require.True(t, errors.As(err, &svcErr), "expected *service.Error, got %T", err)
	require.Equal(t, message, svcErr.Message)
}

// requireValidation asserts err is a validation error with message.
func requireValidation(t *testing.T, err error, message string) {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrValidation)
	require.Equal(t, message, err.Error())
}

func int64Ptr(v int64) *int64 { return &v }
func strPtr(s string) *string { return &s }
