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

const commentSelect = `
	SELECT cm.id, cm.recipe_id, cm.user_id, cm.content, u.username, r.title,
	       cm.created_at, cm.updated_at
	FROM comments cm
	JOIN users u ON u.id = cm.user_id
	JOIN recipes r ON r.id = cm.recipe_id
`

// PostgresCommentStore implements the store.CommentStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCommentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCommentStore creates a new PostgreSQL implementation of the CommentStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresCommentStore(db store.DBTX, logger *slog.Logger) *PostgresCommentStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCommentStore{
		db:     db,
		logger: logger.With(slog.String("component", "comment_store")),
	}
}

// Ensure PostgresCommentStore implements store.CommentStore interface
var _ store.CommentStore = (*PostgresCommentStore)(nil)

// WithTx implements store.CommentStore.WithTx
func (s *PostgresCommentStore) WithTx(tx *sql.Tx) store.CommentStore {
	return &PostgresCommentStore{db: tx, logger: s.logger}
}

// Create implements store.CommentStore.Create
func (s *PostgresCommentStore) Create(ctx context.Context, comment *domain.Comment) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO comments (recipe_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, comment.RecipeID, comment.UserID, comment.Content,
	).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		log.Error("failed to create comment",
			slog.String("error", err.Error()),
			slog.Int64("recipe_id", comment.RecipeID),
			slog.Int64("user_id", comment.UserID))
		return MapError(err)
	}

	log.Info("comment created",
		slog.Int64("comment_id", comment.ID),
		slog.Int64("recipe_id", comment.RecipeID))
	return nil
}

// GetByID implements store.CommentStore.GetByID
func (s *PostgresCommentStore) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	comment, err := scanComment(s.db.QueryRowContext(ctx, commentSelect+` WHERE cm.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCommentNotFound
		}
		log.Error("failed to get comment",
			slog.String("error", err.Error()),
			slog.Int64("comment_id", id))
		return nil, MapError(err)
	}
	return comment, nil
}

// List implements store.CommentStore.List
func (s *PostgresCommentStore) List(ctx context.Context, limit, offset int) ([]*domain.Comment, error) {
	return s.query(ctx, commentSelect+` ORDER BY cm.created_at DESC, cm.id DESC LIMIT $1 OFFSET $2`, limit, offset)
}

// ListByRecipe implements store.CommentStore.ListByRecipe
func (s *PostgresCommentStore) ListByRecipe(ctx context.Context, recipeID int64) ([]*domain.Comment, error) {
	return s.query(ctx, commentSelect+` WHERE cm.recipe_id = $1 ORDER BY cm.created_at ASC, cm.id ASC`, recipeID)
}

// ListByUser implements store.CommentStore.ListByUser
func (s *PostgresCommentStore) ListByUser(ctx context.Context, userID int64) ([]*domain.Comment, error) {
	return s.query(ctx, commentSelect+` WHERE cm.user_id = $1 ORDER BY cm.created_at DESC, cm.id DESC`, userID)
}

// CountByRecipe implements store.CommentStore.CountByRecipe
func (s *PostgresCommentStore) CountByRecipe(ctx context.Context, recipeID int64) (int, error) {
	return count(ctx, s.db, `SELECT COUNT(*) FROM comments WHERE recipe_id = $1`, recipeID)
}

// Update implements store.CommentStore.Update
func (s *PostgresCommentStore) Update(ctx context.Context, comment *domain.Comment) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.db.QueryRowContext(ctx,
		`UPDATE comments SET content = $1, updated_at = NOW() WHERE id = $2 RETURNING updated_at`,
		comment.Content, comment.ID,
	).Scan(&comment.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrCommentNotFound
		}
		log.Error("failed to update comment",
			slog.String("error", err.Error()),
			slog.Int64("comment_id", comment.ID))
		return MapError(err)
	}
	return nil
}

// Delete implements store.CommentStore.Delete
func (s *PostgresCommentStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete comment",
			slog.String("error", err.Error()),
			slog.Int64("comment_id", id))
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrCommentNotFound)
}

// DeleteByRecipe implements store.CommentStore.DeleteByRecipe
func (s *PostgresCommentStore) DeleteByRecipe(ctx context.Context, recipeID int64) (int64, error) {
	return s.deleteWhere(ctx, `DELETE FROM comments WHERE recipe_id = $1`, recipeID)
}

// DeleteByUser implements store.CommentStore.DeleteByUser
func (s *PostgresCommentStore) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	return s.deleteWhere(ctx, `DELETE FROM comments WHERE user_id = $1`, userID)
}

func (s *PostgresCommentStore) deleteWhere(ctx context.Context, query string, id int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete comments", slog.String("error", err.Error()))
		return 0, MapError(err)
	}
	n, err := rowsAffected(result)
	if err != nil {
		return 0, err
	}
	log.Info("comments deleted", slog.Int64("count", n))
	return n, nil
}

func (s *PostgresCommentStore) query(ctx context.Context, query string, args ...interface{}) ([]*domain.Comment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query comments", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer closeRows(rows, log)

	comments := make([]*domain.Comment, 0)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			log.Error("failed to scan comment row", slog.String("error", err.Error()))
			return nil, err
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return comments, nil
}

func scanComment(row rowScanner) (*domain.Comment, error) {
	var c domain.Comment
	err := row.Scan(
		&c.ID,
		&c.RecipeID,
		&c.UserID,
		&c.Content,
		&c.Username,
		&c.RecipeTitle,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
