package mocks

import (
	"context"

	"github.com/AmarWhoo/cookboxd/internal/domain"
	"github.com/AmarWhoo/cookboxd/internal/service"
)

// MockCommentService implements service.CommentService for testing
type MockCommentService struct {
	CreateFn         func(ctx context.Context, actor domain.Actor, in domain.NewCommentInput) (*domain.Comment, error)
	GetFn            func(ctx context.Context, id int64) (*domain.Comment, error)
	ListRecentFn     func(ctx context.Context, page domain.PageRequest) ([]*domain.Comment, domain.Pagination, error)
	ListByRecipeFn   func(ctx context.Context, recipeID int64) ([]*domain.Comment, error)
	ListByUserFn     func(ctx context.Context, userID int64) ([]*domain.Comment, error)
	CountByRecipeFn  func(ctx context.Context, recipeID int64) (int, error)
	UpdateFn         func(ctx context.Context, actor domain.Actor, id int64, content string) (*domain.Comment, error)
	DeleteFn         func(ctx context.Context, actor domain.Actor, id int64) error
	DeleteByRecipeFn func(ctx context.Context, actor domain.Actor, recipeID int64) (int64, error)
	DeleteByUserFn   func(ctx context.Context, actor domain.Actor, userID int64) (int64, error)
}

var _ service.CommentService = (*MockCommentService)(nil)

// Create implements service.CommentService
func (m *MockCommentService) Create(
	ctx context.Context,
	actor domain.Actor,
	in domain.NewCommentInput,
) (*domain.Comment, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, actor, in)
	}
	return &domain.Comment{ID: 1, RecipeID: in.RecipeID, UserID: actor.UserID, Content: in.Content}, nil
}

// Get implements service.CommentService
func (m *MockCommentService) Get(ctx context.Context, id int64) (*domain.Comment, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return &domain.Comment{ID: id}, nil
}

// ListRecent implements service.CommentService
func (m *MockCommentService) ListRecent(
	ctx context.Context,
	page domain.PageRequest,
) ([]*domain.Comment, domain.Pagination, error) {
	if m.ListRecentFn != nil {
		return m.ListRecentFn(ctx, page)
	}
	return []*domain.Comment{}, page.Position(), nil
}

// ListByRecipe implements service.CommentService
func (m *MockCommentService) ListByRecipe(ctx context.Context, recipeID int64) ([]*domain.Comment, error) {
	if m.ListByRecipeFn != nil {
		return m.ListByRecipeFn(ctx, recipeID)
	}
	return []*domain.Comment{}, nil
}

// ListByUser implements service.CommentService
func (m *MockCommentService) ListByUser(ctx context.Context, userID int64) ([]*domain.Comment, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return []*domain.Comment{}, nil
}

// CountByRecipe implements service.CommentService
func (m *MockCommentService) CountByRecipe(ctx context.Context, recipeID int64) (int, error) {
	if m.CountByRecipeFn != nil {
		return m.CountByRecipeFn(ctx, recipeID)
	}
	return 0, nil
}

// Update implements service.CommentService
func (m *MockCommentService) Update(
	ctx context.Context,
	actor domain.Actor,
	id int64,
	content string,
) (*domain.Comment, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, actor, id, content)
	}
	return &domain.Comment{ID: id, Content: content}, nil
}

// Delete implements service.CommentService
func (m *MockCommentService) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, actor, id)
	}
	return nil
}

// DeleteByRecipe implements service.CommentService
func (m *MockCommentService) DeleteByRecipe(ctx context.Context, actor domain.Actor, recipeID int64) (int64, error) {
	if m.DeleteByRecipeFn != nil {
		return m.DeleteByRecipeFn(ctx, actor, recipeID)
	}
	return 0, nil
}

// DeleteByUser implements service.CommentService
func (m *MockCommentService) DeleteByUser(ctx context.Context, actor domain.Actor, userID int64) (int64, error) {
	if m.DeleteByUserFn != nil {
		return m.DeleteByUserFn(ctx, actor, userID)
	}
	return 0, nil
}
