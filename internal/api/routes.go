package api

import (
	"fmt"
	"net/http"

	"github.com/AmarWhoo/cookboxd/internal/api/middleware"
	"github.com/AmarWhoo/cookboxd/internal/domain"
	"github.com/go-chi/chi/v5"
)

// Access is the authentication requirement of a route. Ownership checks
// happen in the services, not here.
type Access int

const (
	// Public routes need no token.
	Public Access = iota
	// Authenticated routes need a valid, unrevoked token.
	Authenticated
	// UserRole routes need role "user" or "admin".
	UserRole
	// AdminRole routes need role "admin".
	AdminRole
)

// String implements fmt.Stringer.
func (a Access) String() string {
	switch a {
	case Public:
		return "public"
	case Authenticated:
		return "authenticated"
	case UserRole:
		return "user"
	case AdminRole:
		return "admin"
	default:
		return fmt.Sprintf("Access(%d)", int(a))
	}
}

// Route is one entry of the route table.
type Route struct {
	Method      string
	Pattern     string
	Handler     http.HandlerFunc
	Access      Access
	Middlewares []func(http.Handler) http.Handler
}

// Handlers groups every handler the route table refers to.
type Handlers struct {
	System      *SystemHandler
	Auth        *AuthHandler
	Users       *UserHandler
	Categories  *CategoryHandler
	Recipes     *RecipeHandler
	Ingredients *IngredientHandler
	Comments    *CommentHandler

	// LoginLimiter throttles the login routes when set.
	LoginLimiter middleware.LoginLimiter
}

// Routes returns the route table.
func Routes(h Handlers) []Route {
	var loginMW []func(http.Handler) http.Handler
	if h.LoginLimiter != nil {
		loginMW = append(loginMW, middleware.LoginRateLimit(h.LoginLimiter))
	}

	return []Route{
		{Method: http.MethodGet, Pattern: "/", Handler: h.System.Info, Access: Public},
		{Method: http.MethodGet, Pattern: "/health", Handler: h.System.Health, Access: Public},

		// Authentication
		{Method: http.MethodPost, Pattern: "/api/auth/register", Handler: h.Auth.Register, Access: Public},
		{Method: http.MethodPost, Pattern: "/api/auth/login", Handler: h.Auth.Login, Access: Public, Middlewares: loginMW},
		{Method: http.MethodPost, Pattern: "/api/auth/logout", Handler: h.Auth.Logout, Access: Authenticated},
		{Method: http.MethodGet, Pattern: "/api/auth/me", Handler: h.Auth.Me, Access: Authenticated},

		// Users
		{Method: http.MethodPost, Pattern: "/api/users/register", Handler: h.Auth.Register, Access: Public},
		{Method: http.MethodPost, Pattern: "/api/users/login", Handler: h.Auth.Login, Access: Public, Middlewares: loginMW},
		{Method: http.MethodGet, Pattern: "/api/users", Handler: h.Users.List, Access: AdminRole},
		{Method: http.MethodGet, Pattern: "/api/users/{id}", Handler: h.Users.Get, Access: Authenticated},
		{Method: http.MethodPut, Pattern: "/api/users/{id}", Handler: h.Users.Update, Access: Authenticated},
		{Method: http.MethodDelete, Pattern: "/api/users/{id}", Handler: h.Users.Delete, Access: Authenticated},
		{Method: http.MethodPost, Pattern: "/api/users/{id}/password", Handler: h.Users.ChangePassword, Access: Authenticated},

		// Categories
		{Method: http.MethodGet, Pattern: "/api/categories", Handler: h.Categories.List, Access: Authenticated},
		{Method: http.MethodGet, Pattern: "/api/categories/{id}", Handler: h.Categories.Get, Access: Authenticated},
		{Method: http.MethodGet, Pattern: "/api/categories/{id}/count", Handler: h.Categories.RecipeCount, Access: Authenticated},
		{Method: http.MethodPost, Pattern: "/api/categories", Handler: h.Categories.Create, Access: AdminRole},
		{Method: http.MethodPut, Pattern: "/api/categories/{id}", Handler: h.Categories.Update, Access: AdminRole},
		{Method: http.MethodDelete, Pattern: "/api/categories/{id}", Handler: h.Categories.Delete, Access: AdminRole},

		// Recipes
		{Method: http.MethodGet, Pattern: "/api/recipes", Handler: h.Recipes.List, Access: Authenticated},
		{Method: http.MethodGet, Pattern: "/api/recipes/search", Handler: h.Recipes.Search, Access: Authenticated},
		{Method: http.MethodGet, Pattern: "/api/recipes/user/{id}", Handler: h.Recipes.ListByUser, Access: Authenticated},
		{Method: http.MethodGet, Pattern: "/api/recipes/category/{id}", Handler: h.Recipes.ListByCategory, Access: Authenticated},
		{Method: http.MethodGet, Pattern: "/api/recipes/{id}", Handler: h.Recipes.Get, Access: Authenticated},
		{Method: http.MethodPost, Pattern: "/api/recipes", Handler: h.Recipes.Create, Access: UserRole},
		{Method: http.MethodPut, Pattern: "/api/recipes/{id}", Handler: h.Recipes.Update, Access: UserRole},
		{Method: http.MethodDelete, Pattern: "/api/recipes/{id}", Handler: h.Recipes.Delete, Access: UserRole},

		// Ingredients
		{Method: http.MethodGet, Pattern: "/api/ingredients", Handler: h.Ingredients.List, Access: Authenticated},
		{Method: http.MethodGet, Pattern: "/api/ingredients/{id}", Handler: h.Ingredients.Get, Access: Authenticated},
		{Method: http.MethodGet, Pattern: "/api/ingredients/recipe/{id}", Handler: h.Ingredients.ListByRecipe, Access: Authenticated},
		{Method: http.MethodGet, Pattern: "/api/ingredients/recipe/{id}/count", Handler: h.Ingredients.CountByRecipe, Access: Authenticated},
		{Method: http.MethodPost, Pattern: "/api/ingredients", Handler: h.Ingredients.Create, Access: UserRole},
		{Method: http.MethodPost, Pattern: "/api/ingredients/batch", Handler: h.Ingredients.CreateBatch, Access: UserRole},
		{Method: http.MethodPut, Pattern: "/api/ingredients/{id}", Handler: h.Ingredients.Update, Access: UserRole},
		{Method: http.MethodPut, Pattern: "/api/ingredients/recipe/{id}/replace", Handler: h.Ingredients.Replace, Access: UserRole},
		{Method: http.MethodDelete, Pattern: "/api/ingredients/{id}", Handler: h.Ingredients.Delete, Access: UserRole},
		{Method: http.MethodDelete, Pattern: "/api/ingredients/recipe/{id}", Handler: h.Ingredients.DeleteByRecipe, Access: UserRole},

		// Comments
		{Method: http.MethodGet, Pattern: "/api/comments", Handler: h.Comments.ListRecent, Access: Authenticated},
		{Method: http.MethodGet, Pattern: "/api/comments/{id}", Handler: h.Comments.Get, Access: Authenticated},
		{Method: http.MethodGet, Pattern: "/api/comments/recipe/{id}", Handler: h.Comments.ListByRecipe, Access: Authenticated},
		{Method: http.MethodGet, Pattern: "/api/comments/recipe/{id}/count", Handler: h.Comments.CountByRecipe, Access: Authenticated},
		{Method: http.MethodGet, Pattern: "/api/comments/user/{id}", Handler: h.Comments.ListByUser, Access: Authenticated},
		{Method: http.MethodPost, Pattern: "/api/comments", Handler: h.Comments.Create, Access: UserRole},
		{Method: http.MethodPut, Pattern: "/api/comments/{id}", Handler: h.Comments.Update, Access: UserRole},
		{Method: http.MethodDelete, Pattern: "/api/comments/{id}", Handler: h.Comments.Delete, Access: UserRole},
		{Method: http.MethodDelete, Pattern: "/api/comments/recipe/{id}", Handler: h.Comments.DeleteByRecipe, Access: UserRole},
		{Method: http.MethodDelete, Pattern: "/api/comments/user/{id}", Handler: h.Comments.DeleteByUser, Access: UserRole},
	}
}

// Mount registers routes on r, wrapping each handler with the middleware its
// access level requires followed by the route's own middlewares.
func Mount(r chi.Router, routes []Route, authMW *middleware.AuthMiddleware) {
	for _, rt := range routes {
		var chain []func(http.Handler) http.Handler
		switch rt.Access {
		case Authenticated:
			chain = append(chain, authMW.Authenticate)
		case UserRole:
			chain = append(chain, authMW.Authenticate, middleware.RequireAnyRole(domain.RoleUser, domain.RoleAdmin))
		case AdminRole:
			chain = append(chain, authMW.Authenticate, middleware.RequireRole(domain.RoleAdmin))
		}
		chain = append(chain, rt.Middlewares...)

		r.With(chain...).Method(rt.Method, rt.Pattern, rt.Handler)
	}
}
