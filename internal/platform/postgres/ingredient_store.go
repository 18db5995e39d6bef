package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/AmarWhoo/cookboxd/internal/domain"
	"github.com/AmarWhoo/cookboxd/internal/platform/logger"
	"github.com/AmarWhoo/cookboxd/internal/store"
)

const ingredientSelect = `
	SELECT i.id, i.recipe_id, i.name, i.quantity, r.title, i.created_at
	FROM ingredients i
	JOIN recipes r ON r.id = i.recipe_id
`

const ingredientInsert = `
	INSERT INTO ingredients (recipe_id, name, quantity)
	VALUES ($1, $2, $3)
	RETURNING id, created_at
`

// PostgresIngredientStore implements the store.IngredientStore interface
// using a PostgreSQL database as the storage backend.
type PostgresIngredientStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresIngredientStore creates a new PostgreSQL implementation of the IngredientStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresIngredientStore(db store.DBTX, logger *slog.Logger) *PostgresIngredientStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresIngredientStore{
		db:     db,
		logger: logger.With(slog.String("component", "ingredient_store")),
	}
}

// Ensure PostgresIngredientStore implements store.IngredientStore interface
var _ store.IngredientStore = (*PostgresIngredientStore)(nil)

// WithTx implements store.IngredientStore.WithTx
func (s *PostgresIngredientStore) WithTx(tx *sql.Tx) store.IngredientStore {
	return &PostgresIngredientStore{db: tx, logger: s.logger}
}

// Create implements store.IngredientStore.Create
func (s *PostgresIngredientStore) Create(ctx context.Context, ingredient *domain.Ingredient) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.db.QueryRowContext(ctx, ingredientInsert,
		ingredient.RecipeID, ingredient.Name, ingredient.Quantity,
	).Scan(&ingredient.ID, &ingredient.CreatedAt)
	if err != nil {
		log.Error("failed to create ingredient",
			slog.String("error", err.Error()),
			slog.Int64("recipe_id", ingredient.RecipeID))
		return MapError(err)
	}

	log.Debug("ingredient created",
		slog.Int64("ingredient_id", ingredient.ID),
		slog.Int64("recipe_id", ingredient.RecipeID))
	return nil
}

// CreateMany implements store.IngredientStore.CreateMany
// The insert is prepared once and executed per ingredient. It stops at the
// first failure; run it on a transaction-bound store to discard earlier rows.
func (s *PostgresIngredientStore) CreateMany(ctx context.Context, ingredients []*domain.Ingredient) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(ingredients) == 0 {
		return nil
	}

	stmt, err := s.db.PrepareContext(ctx, ingredientInsert)
	if err != nil {
		log.Error("failed to prepare ingredient insert", slog.String("error", err.Error()))
		return MapError(err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			log.Error("failed to close statement", slog.String("error", err.Error()))
		}
	}()

	for i, ingredient := range ingredients {
		err := stmt.QueryRowContext(ctx, ingredient.RecipeID, ingredient.Name, ingredient.Quantity).
			Scan(&ingredient.ID, &ingredient.CreatedAt)
		if err != nil {
			log.Error("failed to insert ingredient in batch",
				slog.String("error", err.Error()),
				slog.Int("position", i+1),
				slog.Int64("recipe_id", ingredient.RecipeID))
			return MapError(err)
		}
	}

	log.Info("ingredients created", slog.Int("count", len(ingredients)))
	return nil
}

// GetByID implements store.IngredientStore.GetByID
func (s *PostgresIngredientStore) GetByID(ctx context.Context, id int64) (*domain.Ingredient, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ingredient, err := scanIngredient(s.db.QueryRowContext(ctx, ingredientSelect+` WHERE i.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrIngredientNotFound
		}
		log.Error("failed to get ingredient",
			slog.String("error", err.Error()),
			slog.Int64("ingredient_id", id))
		return nil, MapError(err)
	}
	return ingredient, nil
}

// List implements store.IngredientStore.List
func (s *PostgresIngredientStore) List(ctx context.Context) ([]*domain.Ingredient, error) {
	return s.query(ctx, ingredientSelect+` ORDER BY i.recipe_id, i.id`)
}

// ListByRecipe implements store.IngredientStore.ListByRecipe
func (s *PostgresIngredientStore) ListByRecipe(ctx context.Context, recipeID int64) ([]*domain.Ingredient, error) {
	return s.query(ctx, ingredientSelect+` WHERE i.recipe_id = $1 ORDER BY i.id`, recipeID)
}

// CountByRecipe implements store.IngredientStore.CountByRecipe
func (s *PostgresIngredientStore) CountByRecipe(ctx context.Context, recipeID int64) (int, error) {
	return count(ctx, s.db, `SELECT COUNT(*) FROM ingredients WHERE recipe_id = $1`, recipeID)
}

// Update implements store.IngredientStore.Update
func (s *PostgresIngredientStore) Update(ctx context.Context, ingredient *domain.Ingredient) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`UPDATE ingredients SET name = $1, quantity = $2 WHERE id = $3`,
		ingredient.Name, ingredient.Quantity, ingredient.ID)
	if err != nil {
		log.Error("failed to update ingredient",
			slog.String("error", err.Error()),
			slog.Int64("ingredient_id", ingredient.ID))
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrIngredientNotFound)
}

// Delete implements store.IngredientStore.Delete
func (s *PostgresIngredientStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM ingredients WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete ingredient",
			slog.String("error", err.Error()),
			slog.Int64("ingredient_id", id))
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrIngredientNotFound)
}

// DeleteByRecipe implements store.IngredientStore.DeleteByRecipe
func (s *PostgresIngredientStore) DeleteByRecipe(ctx context.Context, recipeID int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM ingredients WHERE recipe_id = $1`, recipeID)
	if err != nil {
		log.Error("failed to delete recipe ingredients",
			slog.String("error", err.Error()),
			slog.Int64("recipe_id", recipeID))
		return 0, MapError(err)
	}
	return rowsAffected(result)
}

func (s *PostgresIngredientStore) query(ctx context.Context, query string, args ...interface{}) ([]*domain.Ingredient, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query ingredients", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer closeRows(rows, log)

	ingredients := make([]*domain.Ingredient, 0)
	for rows.Next() {
		ingredient, err := scanIngredient(rows)
		if err != nil {
			log.Error("failed to scan ingredient row", slog.String("error", err.Error()))
			return nil, err
		}
		ingredients = append(ingredients, ingredient)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return ingredients, nil
}

func scanIngredient(row rowScanner) (*domain.Ingredient, error) {
	var i domain.Ingredient
	if err := row.Scan(&i.ID, &i.RecipeID, &i.Name, &i.Quantity, &i.RecipeTitle, &i.CreatedAt); err != nil {
		return nil, err
	}
	return &i, nil
}
