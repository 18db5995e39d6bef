package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouteAccess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"info is public", http.MethodGet, "/", "", http.StatusOK},
		{"health is public", http.MethodGet, "/health", "", http.StatusOK},
		{"recipes need a token", http.MethodGet, "/api/recipes", "", http.StatusUnauthorized},
		{"recipes with token", http.MethodGet, "/api/recipes", "user:2", http.StatusOK},
		{"malformed token", http.MethodGet, "/api/recipes", "garbage", http.StatusUnauthorized},
		{"user list is admin only", http.MethodGet, "/api/users", "user:2", http.StatusForbidden},
		{"admin lists users", http.MethodGet, "/api/users", "admin:1", http.StatusOK},
		{"category create is admin only", http.MethodPost, "/api/categories", "user:2", http.StatusForbidden},
		{"category list for users", http.MethodGet, "/api/categories", "user:2", http.StatusOK},
		{"unknown role cannot post recipes", http.MethodPost, "/api/recipes", "guest:3", http.StatusUnauthorized},
		{"comments list", http.MethodGet, "/api/comments", "user:2", http.StatusOK},
	}

	router := newTestServices().router(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := do(t, router, tt.method, tt.path, tt.token, nil)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRoutes_PatternsAreUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for _, rt := range Routes(Handlers{
		System:      &SystemHandler{},
		Auth:        &AuthHandler{},
		Users:       &UserHandler{},
		Categories:  &CategoryHandler{},
		Recipes:     &RecipeHandler{},
		Ingredients: &IngredientHandler{},
		Comments:    &CommentHandler{},
	}) {
		key := rt.Method + " " + rt.Pattern
		assert.False(t, seen[key], "duplicate route %s", key)
		seen[key] = true
		assert.NotNil(t, rt.Handler, key)
	}
	assert.True(t, seen["POST /api/ingredients/batch"])
	assert.True(t, seen["PUT /api/ingredients/recipe/{id}/replace"])
}

func TestAccessString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "public", Public.String())
	assert.Equal(t, "admin", AdminRole.String())
	assert.Equal(t, "Access(9)", Access(9).String())
}
