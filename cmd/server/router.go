package main

import (
	"net/http"

	"github.com/AmarWhoo/cookboxd/internal/api"
	apiMiddleware "github.com/AmarWhoo/cookboxd/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.config.Server.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Requested-With"},
		MaxAge:         300,
	}))
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(apiMiddleware.Metrics)

	handlers := api.Handlers{
		System:      api.NewSystemHandler(app.db, version, app.logger),
		Auth:        api.NewAuthHandler(app.authService, app.userService, app.logger),
		Users:       api.NewUserHandler(app.userService, app.logger),
		Categories:  api.NewCategoryHandler(app.categoryService, app.logger),
		Recipes:     api.NewRecipeHandler(app.recipeService, app.logger),
		Ingredients: api.NewIngredientHandler(app.ingredientService, app.logger),
		Comments:    api.NewCommentHandler(app.commentService, app.logger),
	}
	if app.loginLimiter != nil {
		handlers.LoginLimiter = app.loginLimiter
	}

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.tokenRevoker)
	api.Mount(r, api.Routes(handlers), authMiddleware)

	r.Handle("/metrics", promhttp.Handler())

	return r
}
