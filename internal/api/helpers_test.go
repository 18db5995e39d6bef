package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/AmarWhoo/cookboxd/internal/api/middleware"
	"github.com/AmarWhoo/cookboxd/internal/domain"
	"github.com/AmarWhoo/cookboxd/internal/mocks"
	"github.com/AmarWhoo/cookboxd/internal/service/auth"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// testServices holds the mocks behind a test router. Zero-value mocks return
// empty results.
type testServices struct {
	auth        *mocks.MockAuthService
	users       *mocks.MockUserService
	categories  *mocks.MockCategoryService
	recipes     *mocks.MockRecipeService
	ingredients *mocks.MockIngredientService
	comments    *mocks.MockCommentService
	revoker     *mocks.MockTokenRevoker
	limiter     *mocks.MockLoginLimiter
}

func newTestServices() *testServices {
	return &testServices{
		auth:        &mocks.MockAuthService{},
		users:       &mocks.MockUserService{},
		categories:  &mocks.MockCategoryService{},
		recipes:     &mocks.MockRecipeService{},
		ingredients: &mocks.MockIngredientService{},
		comments:    &mocks.MockCommentService{},
		revoker:     &mocks.MockTokenRevoker{},
	}
}

// testTokenValidator accepts tokens of the form "<role>:<user id>", e.g.
// "admin:1" or "user:7".
func testTokenValidator(_ context.Context, token string) (*auth.Claims, error) {
	role, rawID, ok := strings.Cut(token, ":")
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Claims{UserID: id, Role: domain.Role(role), ID: "jti-" + token}, nil
}

func (s *testServices) router(t *testing.T) http.Handler {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	handlers := Handlers{
		System:      NewSystemHandler(nil, "test", log),
		Auth:        NewAuthHandler(s.auth, s.users, log),
		Users:       NewUserHandler(s.users, log),
		Categories:  NewCategoryHandler(s.categories, log),
		Recipes:     NewRecipeHandler(s.recipes, log),
		Ingredients: NewIngredientHandler(s.ingredients, log),
		Comments:    NewCommentHandler(s.comments, log),
	}
	if s.limiter != nil {
		handlers.LoginLimiter = s.limiter
	}

	authMW := middleware.NewAuthMiddleware(&mocks.MockJWTService{ValidateTokenFn: testTokenValidator}, s.revoker)
	r := chi.NewRouter()
	Mount(r, Routes(handlers), authMW)
	return r
}

type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Pagination map[string]any  `json:"pagination"`
}

// do sends a request with an optional JSON body and bearer token.
func do(t *testing.T, h http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func int64Ptr(v int64) *int64 { return &v }
