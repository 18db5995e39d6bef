package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/AmarWhoo/cookboxd/internal/config"
	"github.com/AmarWhoo/cookboxd/internal/platform/postgres"
	redisplatform "github.com/AmarWhoo/cookboxd/internal/platform/redis"
	"github.com/AmarWhoo/cookboxd/internal/service"
	"github.com/AmarWhoo/cookboxd/internal/service/auth"
	"github.com/AmarWhoo/cookboxd/internal/store"
	"github.com/redis/go-redis/v9"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB
	redis  *redis.Client

	// Stores
	userStore       store.UserStore
	categoryStore   store.CategoryStore
	recipeStore     store.RecipeStore
	ingredientStore store.IngredientStore
	commentStore    store.CommentStore

	// Auth
	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
	tokenRevoker     auth.TokenRevoker
	loginLimiter     *redisplatform.LoginLimiter

	// Services
	authService       service.AuthService
	userService       service.UserService
	categoryService   service.CategoryService
	recipeService     service.RecipeService
	ingredientService service.IngredientService
	commentService    service.CommentService
}

// newApplication creates a new application instance with all dependencies initialized.
// It accepts core dependencies like configuration, logger, and database connection that
// must be established before application initialization.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordHasher = auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	app.passwordVerifier = auth.NewBcryptVerifier()
	app.tokenRevoker = auth.NoopRevoker{}

	if err := app.setupRedis(ctx); err != nil {
		if app.redis != nil {
			_ = app.redis.Close()
		}
		return nil, err
	}

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.categoryStore = postgres.NewPostgresCategoryStore(db, logger)
	app.recipeStore = postgres.NewPostgresRecipeStore(db, logger)
	app.ingredientStore = postgres.NewPostgresIngredientStore(db, logger)
	app.commentStore = postgres.NewPostgresCommentStore(db, logger)

	if err := app.setupServices(store.NewSQLTransactor(db)); err != nil {
		return nil, err
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// setupRedis connects to Redis when configured and enables login rate
// limiting and token revocation on top of it.
func (app *application) setupRedis(ctx context.Context) error {
	if !app.config.Redis.Enabled() {
		app.logger.Info("redis not configured; login rate limiting and token revocation disabled")
		return nil
	}

	client, err := redisplatform.Connect(ctx, app.config.Redis.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	app.redis = client

	app.loginLimiter, err = redisplatform.NewLoginLimiter(client,
		app.config.Redis.LoginMaxAttempts,
		time.Duration(app.config.Redis.LoginWindowSeconds)*time.Second)
	if err != nil {
		return fmt.Errorf("failed to create login limiter: %w", err)
	}

	denylist, err := redisplatform.NewTokenDenylist(client)
	if err != nil {
		return fmt.Errorf("failed to create token denylist: %w", err)
	}
	app.tokenRevoker = denylist

	app.logger.Info("redis connected",
		"login_max_attempts", app.config.Redis.LoginMaxAttempts,
		"login_window_seconds", app.config.Redis.LoginWindowSeconds)
	return nil
}

func (app *application) setupServices(tx store.Transactor) error {
	var err error

	app.authService, err = service.NewAuthService(app.userStore, app.passwordHasher,
		app.passwordVerifier, app.jwtService, app.tokenRevoker, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create auth service: %w", err)
	}

	app.userService, err = service.NewUserService(app.userStore, app.passwordHasher,
		app.passwordVerifier, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create user service: %w", err)
	}

	app.categoryService, err = service.NewCategoryService(app.categoryStore, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create category service: %w", err)
	}

	app.recipeService, err = service.NewRecipeService(app.recipeStore, app.categoryStore, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create recipe service: %w", err)
	}

	app.ingredientService, err = service.NewIngredientService(app.ingredientStore, app.recipeStore, tx, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create ingredient service: %w", err)
	}

	app.commentService, err = service.NewCommentService(app.commentStore, app.recipeStore, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create comment service: %w", err)
	}

	return nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis connection", "error", err)
		}
	}
	if app.db != nil {
		closeDB(app.db, app.logger)
	}
	app.logger.Info("application shutdown completed")
}
