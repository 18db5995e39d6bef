package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/AmarWhoo/cookboxd/internal/domain"
	"github.com/AmarWhoo/cookboxd/internal/platform/logger"
	"github.com/AmarWhoo/cookboxd/internal/store"
)

const categorySelect = `
	SELECT c.id, c.name, COUNT(r.id) AS recipe_count, c.created_at, c.updated_at
	FROM categories c
	LEFT JOIN recipes r ON r.category_id = c.id
`

var categoryUniqueErrors = map[string]error{
	categoriesNameConstraint: store.ErrCategoryNameExists,
}

// PostgresCategoryStore implements the store.CategoryStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCategoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCategoryStore creates a new PostgreSQL implementation of the CategoryStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresCategoryStore(db store.DBTX, logger *slog.Logger) *PostgresCategoryStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCategoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "category_store")),
	}
}

// Ensure PostgresCategoryStore implements store.CategoryStore interface
var _ store.CategoryStore = (*PostgresCategoryStore)(nil)

// WithTx implements store.CategoryStore.WithTx
func (s *PostgresCategoryStore) WithTx(tx *sql.Tx) store.CategoryStore {
	return &PostgresCategoryStore{db: tx, logger: s.logger}
}

// Create implements store.CategoryStore.Create
func (s *PostgresCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO categories (name) VALUES ($1) RETURNING id, created_at, updated_at`,
		category.Name,
	).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		log.Warn("failed to create category", slog.String("error", err.Error()))
		return MapUniqueViolation(err, categoryUniqueErrors)
	}

	log.Info("category created",
		slog.Int64("category_id", category.ID),
		slog.String("name", category.Name))
	return nil
}

// GetByID implements store.CategoryStore.GetByID
func (s *PostgresCategoryStore) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	return s.getOne(ctx, categorySelect+` WHERE c.id = $1 GROUP BY c.id`, id)
}

// GetByName implements store.CategoryStore.GetByName
func (s *PostgresCategoryStore) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	return s.getOne(ctx, categorySelect+` WHERE c.name = $1 GROUP BY c.id`, name)
}

func (s *PostgresCategoryStore) getOne(ctx context.Context, query string, arg interface{}) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	category, err := scanCategory(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCategoryNotFound
		}
		log.Error("failed to get category", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return category, nil
}

// List implements store.CategoryStore.List
func (s *PostgresCategoryStore) List(ctx context.Context) ([]*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, categorySelect+` GROUP BY c.id ORDER BY c.name ASC`)
	if err != nil {
		log.Error("failed to list categories", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer closeRows(rows, log)

	categories := make([]*domain.Category, 0)
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			log.Error("failed to scan category row", slog.String("error", err.Error()))
			return nil, err
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return categories, nil
}

// Update implements store.CategoryStore.Update
func (s *PostgresCategoryStore) Update(ctx context.Context, category *domain.Category) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.db.QueryRowContext(ctx,
		`UPDATE categories SET name = $1, updated_at = NOW() WHERE id = $2 RETURNING updated_at`,
		category.Name, category.ID,
	).Scan(&category.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrCategoryNotFound
		}
		log.Warn("failed to update category",
			slog.String("error", err.Error()),
			slog.Int64("category_id", category.ID))
		return MapUniqueViolation(err, categoryUniqueErrors)
	}

	log.Info("category updated", slog.Int64("category_id", category.ID))
	return nil
}

// Delete implements store.CategoryStore.Delete
func (s *PostgresCategoryStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("category still referenced by recipes", slog.Int64("category_id", id))
			return fmt.Errorf("%w: category %d", store.ErrInUse, id)
		}
		log.Error("failed to delete category",
			slog.String("error", err.Error()),
			slog.Int64("category_id", id))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrCategoryNotFound); err != nil {
		return err
	}

	log.Info("category deleted", slog.Int64("category_id", id))
	return nil
}

// NameExists implements store.CategoryStore.NameExists
func (s *PostgresCategoryStore) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	return exists(ctx, s.db,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE name = $1 AND id <> $2)`, name, excludeID)
}

// RecipeCount implements store.CategoryStore.RecipeCount
func (s *PostgresCategoryStore) RecipeCount(ctx context.Context, id int64) (int, error) {
	return count(ctx, s.db, `SELECT COUNT(*) FROM recipes WHERE category_id = $1`, id)
}

func scanCategory(row rowScanner) (*domain.Category, error) {
	var c domain.Category
	if err := row.Scan(&c.ID, &c.Name, &c.RecipeCount, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
