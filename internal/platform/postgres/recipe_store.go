package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/AmarWhoo/cookboxd/internal/domain"
	"github.com/AmarWhoo/cookboxd/internal/platform/logger"
	"github.com/AmarWhoo/cookboxd/internal/store"
)

const recipeSelect = `
	SELECT r.id, r.user_id, r.category_id, r.title, r.description, r.image_url,
	       u.username, c.name, r.created_at, r.updated_at
	FROM recipes r
	JOIN users u ON u.id = r.user_id
	LEFT JOIN categories c ON c.id = r.category_id
`

const recipeOrder = ` ORDER BY r.created_at DESC, r.id DESC`

// PostgresRecipeStore implements the store.RecipeStore interface
// using a PostgreSQL database as the storage backend.
type PostgresRecipeStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresRecipeStore creates a new PostgreSQL implementation of the RecipeStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresRecipeStore(db store.DBTX, logger *slog.Logger) *PostgresRecipeStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresRecipeStore{
		db:     db,
		logger: logger.With(slog.String("component", "recipe_store")),
	}
}

// Ensure PostgresRecipeStore implements store.RecipeStore interface
var _ store.RecipeStore = (*PostgresRecipeStore)(nil)

// WithTx implements store.RecipeStore.WithTx
func (s *PostgresRecipeStore) WithTx(tx *sql.Tx) store.RecipeStore {
	return &PostgresRecipeStore{db: tx, logger: s.logger}
}

// Create implements store.RecipeStore.Create
// Returns store.ErrInvalidEntity if the user or category does not exist.
func (s *PostgresRecipeStore) Create(ctx context.Context, recipe *domain.Recipe) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO recipes (user_id, category_id, title, description, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := s.db.QueryRowContext(ctx, query,
		recipe.UserID,
		recipe.CategoryID,
		recipe.Title,
		recipe.Description,
		recipe.ImageURL,
	).Scan(&recipe.ID, &recipe.CreatedAt, &recipe.UpdatedAt)
	if err != nil {
		log.Error("failed to create recipe",
			slog.String("error", err.Error()),
			slog.Int64("user_id", recipe.UserID))
		return MapError(err)
	}

	log.Info("recipe created",
		slog.Int64("recipe_id", recipe.ID),
		slog.Int64("user_id", recipe.UserID))
	return nil
}

// GetByID implements store.RecipeStore.GetByID
func (s *PostgresRecipeStore) GetByID(ctx context.Context, id int64) (*domain.Recipe, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	recipe, err := scanRecipe(s.db.QueryRowContext(ctx, recipeSelect+` WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrRecipeNotFound
		}
		log.Error("failed to get recipe",
			slog.String("error", err.Error()),
			slog.Int64("recipe_id", id))
		return nil, MapError(err)
	}
	return recipe, nil
}

// List implements store.RecipeStore.List
func (s *PostgresRecipeStore) List(ctx context.Context) ([]*domain.Recipe, error) {
	return s.query(ctx, recipeSelect+recipeOrder)
}

// ListPage implements store.RecipeStore.ListPage
func (s *PostgresRecipeStore) ListPage(ctx context.Context, limit, offset int) ([]*domain.Recipe, error) {
	return s.query(ctx, recipeSelect+recipeOrder+` LIMIT $1 OFFSET $2`, limit, offset)
}

// Count implements store.RecipeStore.Count
func (s *PostgresRecipeStore) Count(ctx context.Context) (int, error) {
	return count(ctx, s.db, `SELECT COUNT(*) FROM recipes`)
}

// ListByUser implements store.RecipeStore.ListByUser
func (s *PostgresRecipeStore) ListByUser(ctx context.Context, userID int64) ([]*domain.Recipe, error) {
	return s.query(ctx, recipeSelect+` WHERE r.user_id = $1`+recipeOrder, userID)
}

// ListByCategory implements store.RecipeStore.ListByCategory
func (s *PostgresRecipeStore) ListByCategory(ctx context.Context, categoryID int64) ([]*domain.Recipe, error) {
	return s.query(ctx, recipeSelect+` WHERE r.category_id = $1`+recipeOrder, categoryID)
}

// SearchByTitle implements store.RecipeStore.SearchByTitle
func (s *PostgresRecipeStore) SearchByTitle(ctx context.Context, query string) ([]*domain.Recipe, error) {
	return s.query(ctx, recipeSelect+` WHERE r.title ILIKE $1`+recipeOrder, "%"+escapeLike(query)+"%")
}

// Update implements store.RecipeStore.Update
func (s *PostgresRecipeStore) Update(ctx context.Context, recipe *domain.Recipe) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE recipes
		SET category_id = $1, title = $2, description = $3, image_url = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`
	err := s.db.QueryRowContext(ctx, query,
		recipe.CategoryID,
		recipe.Title,
		recipe.Description,
		recipe.ImageURL,
		recipe.ID,
	).Scan(&recipe.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrRecipeNotFound
		}
		log.Error("failed to update recipe",
			slog.String("error", err.Error()),
			slog.Int64("recipe_id", recipe.ID))
		return MapError(err)
	}

	log.Info("recipe updated", slog.Int64("recipe_id", recipe.ID))
	return nil
}

// Delete implements store.RecipeStore.Delete
func (s *PostgresRecipeStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete recipe",
			slog.String("error", err.Error()),
			slog.Int64("recipe_id", id))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrRecipeNotFound); err != nil {
		return err
	}

	log.Info("recipe deleted", slog.Int64("recipe_id", id))
	return nil
}

func (s *PostgresRecipeStore) query(ctx context.Context, query string, args ...interface{}) ([]*domain.Recipe, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query recipes", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer closeRows(rows, log)

	recipes := make([]*domain.Recipe, 0)
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			log.Error("failed to scan recipe row", slog.String("error", err.Error()))
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return recipes, nil
}

func scanRecipe(row rowScanner) (*domain.Recipe, error) {
	var r domain.Recipe
	var categoryID sql.NullInt64
	var description, imageURL, categoryName sql.NullString
	err := row.Scan(
		&r.ID,
		&r.UserID,
		&categoryID,
		&r.Title,
		&description,
		&imageURL,
		&r.Username,
		&categoryName,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if categoryID.Valid {
		r.CategoryID = &categoryID.Int64
	}
	r.Description = nullString(description)
	r.ImageURL = nullString(imageURL)
	r.CategoryName = nullString(categoryName)
	return &r, nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE wildcards in user input match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
