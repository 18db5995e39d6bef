package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/AmarWhoo/cookboxd/internal/domain"
	"github.com/AmarWhoo/cookboxd/internal/platform/logger"
	"github.com/AmarWhoo/cookboxd/internal/platform/metrics"
	"github.com/AmarWhoo/cookboxd/internal/store"
)

// CommentService manages comments on recipes.
type CommentService interface {
	// Create posts a comment as the actor. Any user_id supplied by the
	// client is ignored.
	Create(ctx context.Context, actor domain.Actor, in domain.NewCommentInput) (*domain.Comment, error)

	Get(ctx context.Context, id int64) (*domain.Comment, error)

	// ListRecent returns the newest comments first.
	ListRecent(ctx context.Context, page domain.PageRequest) ([]*domain.Comment, domain.Pagination, error)

	ListByRecipe(ctx context.Context, recipeID int64) ([]*domain.Comment, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Comment, error)
	CountByRecipe(ctx context.Context, recipeID int64) (int, error)

	// Update and Delete are limited to the author or an admin.
	Update(ctx context.Context, actor domain.Actor, id int64, content string) (*domain.Comment, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error

	// DeleteByRecipe is limited to the recipe owner or an admin.
	DeleteByRecipe(ctx context.Context, actor domain.Actor, recipeID int64) (int64, error)

	// DeleteByUser is limited to that user or an admin.
	DeleteByUser(ctx context.Context, actor domain.Actor, userID int64) (int64, error)
}

type commentServiceImpl struct {
	comments store.CommentStore
	recipes  store.RecipeStore
	logger   *slog.Logger
}

// NewCommentService creates a CommentService.
func NewCommentService(
	comments store.CommentStore,
	recipes store.RecipeStore,
	logger *slog.Logger,
) (CommentService, error) {
	switch {
	case comments == nil:
		return nil, errors.New("comments store cannot be nil")
	case recipes == nil:
		return nil, errors.New("recipes store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &commentServiceImpl{
		comments: comments,
		recipes:  recipes,
		logger:   logger.With(slog.String("component", "comment_service")),
	}, nil
}

func (s *commentServiceImpl) loadRecipe(ctx context.Context, op string, recipeID int64) (*domain.Recipe, error) {
	recipe, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, notFound(op, "Recipe not found", err)
		}
		return nil, storeFailure(op, "Failed to load recipe", err)
	}
	return recipe, nil
}

// Create implements CommentService.Create
func (s *commentServiceImpl) Create(
	ctx context.Context,
	actor domain.Actor,
	in domain.NewCommentInput,
) (*domain.Comment, error) {
	const op = "comment.create"
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := requireRole(op, actor, domain.RoleUser, domain.RoleAdmin); err != nil {
		return nil, err
	}
	in.UserID = actor.UserID
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.loadRecipe(ctx, op, in.RecipeID); err != nil {
		return nil, err
	}

	comment := in.Comment()
	if err := s.comments.Create(ctx, comment); err != nil {
		if errors.Is(err, store.ErrInvalidEntity) {
			return nil, notFound(op, "Recipe not found", err)
		}
		return nil, storeFailure(op, "Failed to post comment", err)
	}
	metrics.RecordCreated("comment", 1)
	log.Info("comment posted",
		slog.Int64("comment_id", comment.ID),
		slog.Int64("recipe_id", comment.RecipeID))

	return s.Get(ctx, comment.ID)
}

// Get implements CommentService.Get
func (s *commentServiceImpl) Get(ctx context.Context, id int64) (*domain.Comment, error) {
	if err := domain.RequireID(id, "comment"); err != nil {
		return nil, err
	}
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, notFound("comment.get", "Comment not found", err)
		}
		return nil, storeFailure("comment.get", "Failed to load comment", err)
	}
	return comment, nil
}

// ListRecent implements CommentService.ListRecent
func (s *commentServiceImpl) ListRecent(
	ctx context.Context,
	page domain.PageRequest,
) ([]*domain.Comment, domain.Pagination, error) {
	comments, err := s.comments.List(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, domain.Pagination{}, storeFailure("comment.list", "Failed to list comments", err)
	}
	return comments, page.Position(), nil
}

// ListByRecipe implements CommentService.ListByRecipe
func (s *commentServiceImpl) ListByRecipe(ctx context.Context, recipeID int64) ([]*domain.Comment, error) {
	if err := domain.RequireID(recipeID, "recipe"); err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByRecipe(ctx, recipeID)
	if err != nil {
		return nil, storeFailure("comment.list_by_recipe", "Failed to list comments", err)
	}
	return comments, nil
}

// ListByUser implements CommentService.ListByUser
func (s *commentServiceImpl) ListByUser(ctx context.Context, userID int64) ([]*domain.Comment, error) {
	if err := domain.RequireID(userID, "user"); err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeFailure("comment.list_by_user", "Failed to list comments", err)
	}
	return comments, nil
}

// CountByRecipe implements CommentService.CountByRecipe
func (s *commentServiceImpl) CountByRecipe(ctx context.Context, recipeID int64) (int, error) {
	if err := domain.RequireID(recipeID, "recipe"); err != nil {
		return 0, err
	}
	n, err := s.comments.CountByRecipe(ctx, recipeID)
	if err != nil {
		return 0, storeFailure("comment.count_by_recipe", "Failed to count comments", err)
	}
	return n, nil
}

// Update implements CommentService.Update
func (s *commentServiceImpl) Update(
	ctx context.Context,
	actor domain.Actor,
	id int64,
	content string,
) (*domain.Comment, error) {
	const op = "comment.update"

	if err := requireActor(op, actor); err != nil {
		return nil, err
	}
	comment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwnerOrAdmin(op, actor, comment.UserID, "You do not have permission to edit this comment"); err != nil {
		return nil, err
	}
	if err := domain.ValidateCommentContent(content); err != nil {
		return nil, err
	}

	comment.Content = strings.TrimSpace(content)
	if err := s.comments.Update(ctx, comment); err != nil {
		if store.IsNotFoundError(err) {
			return nil, notFound(op, "Comment not found", err)
		}
		return nil, storeFailure(op, "Failed to update comment", err)
	}
	return comment, nil
}

// Delete implements CommentService.Delete
func (s *commentServiceImpl) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	const op = "comment.delete"

	if err := requireActor(op, actor); err != nil {
		return err
	}
	comment, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwnerOrAdmin(op, actor, comment.UserID, "You do not have permission to delete this comment"); err != nil {
		return err
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return notFound(op, "Comment not found", err)
		}
		return storeFailure(op, "Failed to delete comment", err)
	}
	metrics.RecordDeleted("comment", 1)
	return nil
}

// DeleteByRecipe implements CommentService.DeleteByRecipe
func (s *commentServiceImpl) DeleteByRecipe(ctx context.Context, actor domain.Actor, recipeID int64) (int64, error) {
	const op = "comment.delete_by_recipe"

	if err := requireActor(op, actor); err != nil {
		return 0, err
	}
	if err := domain.RequireID(recipeID, "recipe"); err != nil {
		return 0, err
	}
	recipe, err := s.loadRecipe(ctx, op, recipeID)
	if err != nil {
		return 0, err
	}
	if err := requireOwnerOrAdmin(op, actor, recipe.UserID, "You do not have permission to delete comments on this recipe"); err != nil {
		return 0, err
	}

	n, err := s.comments.DeleteByRecipe(ctx, recipeID)
	if err != nil {
		return 0, storeFailure(op, "Failed to delete comments", err)
	}
	metrics.RecordDeleted("comment", n)
	return n, nil
}

// DeleteByUser implements CommentService.DeleteByUser
func (s *commentServiceImpl) DeleteByUser(ctx context.Context, actor domain.Actor, userID int64) (int64, error) {
	const op = "comment.delete_by_user"

	if err := domain.RequireID(userID, "user"); err != nil {
		return 0, err
	}
	if err := requireOwnerOrAdmin(op, actor, userID, "You do not have permission to delete these comments"); err != nil {
		return 0, err
	}

	n, err := s.comments.DeleteByUser(ctx, userID)
	if err != nil {
		return 0, storeFailure(op, "Failed to delete comments", err)
	}
	metrics.RecordDeleted("comment", n)
	return n, nil
}
