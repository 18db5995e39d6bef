package postgres_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/AmarWhoo/cookboxd/internal/domain"
	"github.com/AmarWhoo/cookboxd/internal/platform/postgres"
	"github.com/AmarWhoo/cookboxd/internal/store"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func q(fragment string) string {
	return regexp.QuoteMeta(fragment)
}

func TestNewStores_PanicOnNilDB(t *testing.T) {
	assert.Panics(t, func() { postgres.NewPostgresUserStore(nil, nil) })
	assert.Panics(t, func() { postgres.NewPostgresCategoryStore(nil, nil) })
	assert.Panics(t, func() { postgres.NewPostgresRecipeStore(nil, nil) })
	assert.Panics(t, func() { postgres.NewPostgresIngredientStore(nil, nil) })
	assert.Panics(t, func() { postgres.NewPostgresCommentStore(nil, nil) })
}

func TestUserStore_Create(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresUserStore(db, nil)
	now := time.Now().UTC()

	mock.ExpectQuery(q("INSERT INTO users")).
		WithArgs("chef_anna", "anna@example.com", "hash", "user").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), now, now))

	user := &domain.User{Username: "chef_anna", Email: "anna@example.com", PasswordHash: "hash"}
	require.NoError(t, s.Create(context.Background(), user))
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.Equal(t, now, user.CreatedAt)
}

func TestUserStore_Create_DuplicateEmail(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresUserStore(db, nil)

	mock.ExpectQuery(q("INSERT INTO users")).
		WillReturnError(newPgError("23505", "users_email_key"))

	err := s.Create(context.Background(), &domain.User{Username: "a_b", Email: "a@b.co", PasswordHash: "h"})
	assert.ErrorIs(t, err, store.ErrEmailExists)
	assert.True(t, store.IsDuplicateError(err))
}

func TestUserStore_GetByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresUserStore(db, nil)

	mock.ExpectQuery(q("FROM users WHERE id = $1")).
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	user, err := s.GetByID(context.Background(), 42)
	assert.Nil(t, user)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserStore_EmailExists(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresUserStore(db, nil)

	mock.ExpectQuery(q("SELECT EXISTS")).
		WithArgs("anna@example.com", int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	found, err := s.EmailExists(context.Background(), "anna@example.com", 3)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestUserStore_Delete_NotFound(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresUserStore(db, nil)

	mock.ExpectExec(q("DELETE FROM users")).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, s.Delete(context.Background(), 9), store.ErrUserNotFound)
}

func TestCategoryStore_Delete(t *testing.T) {
	t.Run("in use", func(t *testing.T) {
		db, mock := newMock(t)
		s := postgres.NewPostgresCategoryStore(db, nil)

		mock.ExpectExec(q("DELETE FROM categories")).
			WithArgs(int64(1)).
			WillReturnError(newPgError("23503", "recipes_category_id_fkey"))

		assert.ErrorIs(t, s.Delete(context.Background(), 1), store.ErrInUse)
	})

	t.Run("missing", func(t *testing.T) {
		db, mock := newMock(t)
		s := postgres.NewPostgresCategoryStore(db, nil)

		mock.ExpectExec(q("DELETE FROM categories")).
			WithArgs(int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, s.Delete(context.Background(), 2), store.ErrCategoryNotFound)
	})

	t.Run("deleted", func(t *testing.T) {
		db, mock := newMock(t)
		s := postgres.NewPostgresCategoryStore(db, nil)

		mock.ExpectExec(q("DELETE FROM categories")).
			WithArgs(int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, s.Delete(context.Background(), 3))
	})
}

func TestCategoryStore_List(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresCategoryStore(db, nil)
	now := time.Now().UTC()

	mock.ExpectQuery(q("ORDER BY c.name ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "recipe_count", "created_at", "updated_at"}).
			AddRow(int64(2), "Breakfast", int64(3), now, now).
			AddRow(int64(1), "Dessert", int64(0), now, now))

	categories, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Breakfast", categories[0].Name)
	assert.Equal(t, 3, categories[0].RecipeCount)
}

func TestCategoryStore_Create_Duplicate(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresCategoryStore(db, nil)

	mock.ExpectQuery(q("INSERT INTO categories")).
		WithArgs("Dessert").
		WillReturnError(newPgError("23505", "categories_name_key"))

	err := s.Create(context.Background(), &domain.Category{Name: "Dessert"})
	assert.ErrorIs(t, err, store.ErrCategoryNameExists)
}

func TestRecipeStore_GetByID_NullableColumns(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresRecipeStore(db, nil)
	now := time.Now().UTC()

	mock.ExpectQuery(q("WHERE r.id = $1")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "category_id", "title", "description", "image_url",
			"username", "name", "created_at", "updated_at",
		}).AddRow(int64(5), int64(1), nil, "Pancakes", nil, nil, "chef_anna", nil, now, now))

	recipe, err := s.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", recipe.Title)
	assert.Equal(t, "chef_anna", recipe.Username)
	assert.Nil(t, recipe.CategoryID)
	assert.Nil(t, recipe.Description)
	assert.Nil(t, recipe.ImageURL)
	assert.Nil(t, recipe.CategoryName)
}

func TestRecipeStore_SearchByTitle_EscapesWildcards(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresRecipeStore(db, nil)

	mock.ExpectQuery(q("r.title ILIKE $1")).
		WithArgs(`%50\% off%`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "category_id", "title", "description", "image_url",
			"username", "name", "created_at", "updated_at",
		}))

	recipes, err := s.SearchByTitle(context.Background(), "50% off")
	require.NoError(t, err)
	assert.Empty(t, recipes)
	assert.NotNil(t, recipes)
}

func TestRecipeStore_ListPage(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresRecipeStore(db, nil)

	mock.ExpectQuery(q("LIMIT $1 OFFSET $2")).
		WithArgs(10, 20).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "category_id", "title", "description", "image_url",
			"username", "name", "created_at", "updated_at",
		}))

	_, err := s.ListPage(context.Background(), 10, 20)
	require.NoError(t, err)
}

func TestRecipeStore_Create_UnknownCategory(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresRecipeStore(db, nil)

	mock.ExpectQuery(q("INSERT INTO recipes")).
		WillReturnError(newPgError("23503", "recipes_category_id_fkey"))

	cat := int64(99)
	err := s.Create(context.Background(), &domain.Recipe{UserID: 1, CategoryID: &cat, Title: "Soup"})
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestIngredientStore_CreateMany(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresIngredientStore(db, nil)
	now := time.Now().UTC()

	prep := mock.ExpectPrepare(q("INSERT INTO ingredients"))
	prep.ExpectQuery().WithArgs(int64(3), "Flour", "200 g").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(10), now))
	prep.ExpectQuery().WithArgs(int64(3), "Milk", "300 ml").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(11), now))

	items := []*domain.Ingredient{
		{RecipeID: 3, Name: "Flour", Quantity: "200 g"},
		{RecipeID: 3, Name: "Milk", Quantity: "300 ml"},
	}
	require.NoError(t, s.CreateMany(context.Background(), items))
	assert.Equal(t, int64(10), items[0].ID)
	assert.Equal(t, int64(11), items[1].ID)
}

func TestIngredientStore_CreateMany_RollsBackInTransaction(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresIngredientStore(db, nil)
	now := time.Now().UTC()

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(q("INSERT INTO ingredients"))
	prep.ExpectQuery().WithArgs(int64(3), "Flour", "200 g").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(10), now))
	prep.ExpectQuery().WithArgs(int64(999), "Milk", "300 ml").
		WillReturnError(newPgError("23503", "ingredients_recipe_id_fkey"))
	mock.ExpectRollback()

	items := []*domain.Ingredient{
		{RecipeID: 3, Name: "Flour", Quantity: "200 g"},
		{RecipeID: 999, Name: "Milk", Quantity: "300 ml"},
	}
	err := store.RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		return s.WithTx(tx).CreateMany(ctx, items)
	})
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestIngredientStore_DeleteByRecipe(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresIngredientStore(db, nil)

	mock.ExpectExec(q("DELETE FROM ingredients WHERE recipe_id = $1")).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 6))

	n, err := s.DeleteByRecipe(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)
}

func TestCommentStore_ListByRecipe_OldestFirst(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresCommentStore(db, nil)
	earlier := time.Now().UTC().Add(-time.Hour)
	later := earlier.Add(30 * time.Minute)

	mock.ExpectQuery(q("WHERE cm.recipe_id = $1 ORDER BY cm.created_at ASC")).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "recipe_id", "user_id", "content", "username", "title", "created_at", "updated_at",
		}).
			AddRow(int64(1), int64(2), int64(5), "Lovely!", "bob", "Pancakes", earlier, earlier).
			AddRow(int64(2), int64(2), int64(6), "Tried it", "eve", "Pancakes", later, later))

	comments, err := s.ListByRecipe(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "bob", comments[0].Username)
	assert.Equal(t, "Pancakes", comments[1].RecipeTitle)
}

func TestCommentStore_Update_NotFound(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresCommentStore(db, nil)

	mock.ExpectQuery(q("UPDATE comments")).
		WithArgs("new content", int64(8)).
		WillReturnError(sql.ErrNoRows)

	err := s.Update(context.Background(), &domain.Comment{ID: 8, Content: "new content"})
	assert.ErrorIs(t, err, store.ErrCommentNotFound)
}

func TestCommentStore_DeleteByUser(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresCommentStore(db, nil)

	mock.ExpectExec(q("DELETE FROM comments WHERE user_id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := s.DeleteByUser(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
