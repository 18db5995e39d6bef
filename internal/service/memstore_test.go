package service

import (
	"context"
	"database/sql"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/AmarWhoo/cookboxd/internal/domain"
	"github.com/AmarWhoo/cookboxd/internal/store"
)

// memDB is an in-memory stand-in for the relational schema. It enforces the
// same uniqueness, reference and cascade rules as the migrations.
type memDB struct {
	mu          sync.Mutex
	nextID      int64
	now         time.Time
	users       map[int64]domain.User
	categories  map[int64]domain.Category
	recipes     map[int64]domain.Recipe
	ingredients map[int64]domain.Ingredient
	comments    map[int64]domain.Comment
}

func newMemDB() *memDB {
	return &memDB{
		now:         time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		users:       map[int64]domain.User{},
		categories:  map[int64]domain.Category{},
		recipes:     map[int64]domain.Recipe{},
		ingredients: map[int64]domain.Ingredient{},
		comments:    map[int64]domain.Comment{},
	}
}

// tick returns a fresh id and a strictly increasing timestamp.
func (db *memDB) tick() (int64, time.Time) {
	db.nextID++
	db.now = db.now.Add(time.Second)
	return db.nextID, db.now
}

type memSnapshot struct {
	nextID      int64
	users       map[int64]domain.User
	categories  map[int64]domain.Category
	recipes     map[int64]domain.Recipe
	ingredients map[int64]domain.Ingredient
	comments    map[int64]domain.Comment
}

func copyMap[V any](m map[int64]V) map[int64]V {
	out := make(map[int64]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (db *memDB) snapshot() memSnapshot {
	db.mu.Lock()
	defer db.mu.Unlock()
	return memSnapshot{
		nextID:      db.nextID,
		users:       copyMap(db.users),
		categories:  copyMap(db.categories),
		recipes:     copyMap(db.recipes),
		ingredients: copyMap(db.ingredients),
		comments:    copyMap(db.comments),
	}
}

func (db *memDB) restore(s memSnapshot) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.nextID = s.nextID
	db.users = s.users
	db.categories = s.categories
	db.recipes = s.recipes
	db.ingredients = s.ingredients
	db.comments = s.comments
}

// memTransactor restores the snapshot taken before fn when fn fails.
type memTransactor struct {
	db *memDB
}

func (t *memTransactor) WithinTx(ctx context.Context, fn store.TxFn) error {
	snap := t.db.snapshot()
	if err := fn(ctx, nil); err != nil {
		t.db.restore(snap)
		return err
	}
	return nil
}

// deleteRecipeLocked removes a recipe with its ingredients and comments.
func (db *memDB) deleteRecipeLocked(id int64) {
	delete(db.recipes, id)
	for iid, ing := range db.ingredients {
		if ing.RecipeID == id {
			delete(db.ingredients, iid)
		}
	}
	for cid, c := range db.comments {
		if c.RecipeID == id {
			delete(db.comments, cid)
		}
	}
}

// --- users ---

type memUserStore struct{ db *memDB }

func (s *memUserStore) Create(_ context.Context, user *domain.User) error {
	db := s.db
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, u := range db.users {
		if strings.EqualFold(u.Email, user.Email) {
			return store.ErrEmailExists
		}
		if u.Username == user.Username {
			return store.ErrUsernameExists
		}
	}
	user.ID, user.CreatedAt = db.tick()
	user.UpdatedAt = user.CreatedAt
	db.users[user.ID] = *user
	return nil
}

func (s *memUserStore) GetByID(_ context.Context, id int64) (*domain.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return &u, nil
}

func (s *memUserStore) find(match func(domain.User) bool) (*domain.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return s.find(func(u domain.User) bool { return strings.EqualFold(u.Email, email) })
}

func (s *memUserStore) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	return s.find(func(u domain.User) bool { return u.Username == username })
}

func (s *memUserStore) List(_ context.Context) ([]*domain.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := make([]*domain.User, 0, len(s.db.users))
	for _, u := range s.db.users {
		out = append(out, &u)
	}
	slices.SortFunc(out, func(a, b *domain.User) int { return int(a.ID - b.ID) })
	return out, nil
}

func (s *memUserStore) Update(_ context.Context, user *domain.User) error {
	db := s.db
	db.mu.Lock()
	defer db.mu.Unlock()
	existing, ok := db.users[user.ID]
	if !ok {
		return store.ErrUserNotFound
	}
	for id, u := range db.users {
		if id == user.ID {
			continue
		}
		if strings.EqualFold(u.Email, user.Email) {
			return store.ErrEmailExists
		}
		if u.Username == user.Username {
			return store.ErrUsernameExists
		}
	}
	_, user.UpdatedAt = db.tick()
	user.PasswordHash = existing.PasswordHash
	db.users[user.ID] = *user
	return nil
}

func (s *memUserStore) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[id]
	if !ok {
		return store.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	s.db.users[id] = u
	return nil
}

func (s *memUserStore) Delete(_ context.Context, id int64) error {
	db := s.db
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(db.users, id)
	for rid, r := range db.recipes {
		if r.UserID == id {
			db.deleteRecipeLocked(rid)
		}
	}
	for cid, c := range db.comments {
		if c.UserID == id {
			delete(db.comments, cid)
		}
	}
	return nil
}

func (s *memUserStore) EmailExists(_ context.Context, email string, excludeID int64) (bool, error) {
	u, err := s.GetByEmail(context.Background(), email)
	if err != nil {
		return false, nil
	}
	return u.ID != excludeID, nil
}

func (s *memUserStore) UsernameExists(_ context.Context, username string, excludeID int64) (bool, error) {
	u, err := s.GetByUsername(context.Background(), username)
	if err != nil {
		return false, nil
	}
	return u.ID != excludeID, nil
}

func (s *memUserStore) WithTx(*sql.Tx) store.UserStore { return s }

// --- categories ---

type memCategoryStore struct{ db *memDB }

func (s *memCategoryStore) recipeCountLocked(id int64) int {
	n := 0
	for _, r := range s.db.recipes {
		if r.CategoryID != nil && *r.CategoryID == id {
			n++
		}
	}
	return n
}

func (s *memCategoryStore) Create(_ context.Context, category *domain.Category) error {
	db := s.db
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, c := range db.categories {
		if c.Name == category.Name {
			return store.ErrCategoryNameExists
		}
	}
	category.ID, category.CreatedAt = db.tick()
	category.UpdatedAt = category.CreatedAt
	db.categories[category.ID] = *category
	return nil
}

func (s *memCategoryStore) GetByID(_ context.Context, id int64) (*domain.Category, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	c, ok := s.db.categories[id]
	if !ok {
		return nil, store.ErrCategoryNotFound
	}
	c.RecipeCount = s.recipeCountLocked(id)
	return &c, nil
}

func (s *memCategoryStore) GetByName(_ context.Context, name string) (*domain.Category, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for id, c := range s.db.categories {
		if c.Name == name {
			c.RecipeCount = s.recipeCountLocked(id)
			return &c, nil
		}
	}
	return nil, store.ErrCategoryNotFound
}

func (s *memCategoryStore) List(_ context.Context) ([]*domain.Category, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := make([]*domain.Category, 0, len(s.db.categories))
	for id, c := range s.db.categories {
		c.RecipeCount = s.recipeCountLocked(id)
		out = append(out, &c)
	}
	slices.SortFunc(out, func(a, b *domain.Category) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

func (s *memCategoryStore) Update(_ context.Context, category *domain.Category) error {
	db := s.db
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.categories[category.ID]; !ok {
		return store.ErrCategoryNotFound
	}
	for id, c := range db.categories {
		if id != category.ID && c.Name == category.Name {
			return store.ErrCategoryNameExists
		}
	}
	_, category.UpdatedAt = db.tick()
	db.categories[category.ID] = *category
	return nil
}

func (s *memCategoryStore) Delete(_ context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.categories[id]; !ok {
		return store.ErrCategoryNotFound
	}
	if s.recipeCountLocked(id) > 0 {
		return store.ErrInUse
	}
	delete(s.db.categories, id)
	return nil
}

func (s *memCategoryStore) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	c, err := s.GetByName(ctx, name)
	if err != nil {
		return false, nil
	}
	return c.ID != excludeID, nil
}

func (s *memCategoryStore) RecipeCount(_ context.Context, id int64) (int, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return s.recipeCountLocked(id), nil
}

func (s *memCategoryStore) WithTx(*sql.Tx) store.CategoryStore { return s }

// --- recipes ---

type memRecipeStore struct{ db *memDB }

// readLocked fills the joined read-model fields.
func (s *memRecipeStore) readLocked(r domain.Recipe) *domain.Recipe {
	r.Username = s.db.users[r.UserID].Username
	r.CategoryName = nil
	if r.CategoryID != nil {
		if c, ok := s.db.categories[*r.CategoryID]; ok {
			name := c.Name
			r.CategoryName = &name
		}
	}
	return &r
}

func (s *memRecipeStore) checkRefsLocked(recipe *domain.Recipe) error {
	if _, ok := s.db.users[recipe.UserID]; !ok {
		return store.ErrInvalidEntity
	}
	if recipe.CategoryID != nil {
		if _, ok := s.db.categories[*recipe.CategoryID]; !ok {
			return store.ErrInvalidEntity
		}
	}
	return nil
}

func (s *memRecipeStore) Create(_ context.Context, recipe *domain.Recipe) error {
	db := s.db
	db.mu.Lock()
	defer db.mu.Unlock()
	if err := s.checkRefsLocked(recipe); err != nil {
		return err
	}
	recipe.ID, recipe.CreatedAt = db.tick()
	recipe.UpdatedAt = recipe.CreatedAt
	db.recipes[recipe.ID] = *recipe
	return nil
}

func (s *memRecipeStore) GetByID(_ context.Context, id int64) (*domain.Recipe, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	r, ok := s.db.recipes[id]
	if !ok {
		return nil, store.ErrRecipeNotFound
	}
	return s.readLocked(r), nil
}

// filter returns matching recipes newest first.
func (s *memRecipeStore) filter(match func(domain.Recipe) bool) []*domain.Recipe {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []*domain.Recipe{}
	for _, r := range s.db.recipes {
		if match(r) {
			out = append(out, s.readLocked(r))
		}
	}
	slices.SortFunc(out, func(a, b *domain.Recipe) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return int(b.ID - a.ID)
	})
	return out
}

func (s *memRecipeStore) List(_ context.Context) ([]*domain.Recipe, error) {
	return s.filter(func(domain.Recipe) bool { return true }), nil
}

func (s *memRecipeStore) ListPage(ctx context.Context, limit, offset int) ([]*domain.Recipe, error) {
	all, _ := s.List(ctx)
	return slicePage(all, limit, offset), nil
}

func (s *memRecipeStore) Count(_ context.Context) (int, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return len(s.db.recipes), nil
}

func (s *memRecipeStore) ListByUser(_ context.Context, userID int64) ([]*domain.Recipe, error) {
	return s.filter(func(r domain.Recipe) bool { return r.UserID == userID }), nil
}

func (s *memRecipeStore) ListByCategory(_ context.Context, categoryID int64) ([]*domain.Recipe, error) {
	return s.filter(func(r domain.Recipe) bool {
		return r.CategoryID != nil && *r.CategoryID == categoryID
	}), nil
}

func (s *memRecipeStore) SearchByTitle(_ context.Context, query string) ([]*domain.Recipe, error) {
	q := strings.ToLower(query)
	return s.filter(func(r domain.Recipe) bool {
		return strings.Contains(strings.ToLower(r.Title), q)
	}), nil
}

func (s *memRecipeStore) Update(_ context.Context, recipe *domain.Recipe) error {
	db := s.db
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.recipes[recipe.ID]; !ok {
		return store.ErrRecipeNotFound
	}
	if err := s.checkRefsLocked(recipe); err != nil {
		return err
	}
	_, recipe.UpdatedAt = db.tick()
	db.recipes[recipe.ID] = *recipe
	return nil
}

func (s *memRecipeStore) Delete(_ context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.recipes[id]; !ok {
		return store.ErrRecipeNotFound
	}
	s.db.deleteRecipeLocked(id)
	return nil
}

func (s *memRecipeStore) WithTx(*sql.Tx) store.RecipeStore { return s }

// --- ingredients ---

// memIngredientStore fails the failOnCreate-th insert when it is non-zero.
type memIngredientStore struct {
	db           *memDB
	failOnCreate int
	creates      int
}

var errSimulatedInsert = errors.New("simulated insert failure")

func (s *memIngredientStore) Create(_ context.Context, ingredient *domain.Ingredient) error {
	db := s.db
	db.mu.Lock()
	defer db.mu.Unlock()
	s.creates++
	if s.failOnCreate > 0 && s.creates == s.failOnCreate {
		return errSimulatedInsert
	}
	if _, ok := db.recipes[ingredient.RecipeID]; !ok {
		return store.ErrInvalidEntity
	}
	ingredient.ID, ingredient.CreatedAt = db.tick()
	db.ingredients[ingredient.ID] = *ingredient
	return nil
}

func (s *memIngredientStore) CreateMany(ctx context.Context, ingredients []*domain.Ingredient) error {
	for _, ing := range ingredients {
		if err := s.Create(ctx, ing); err != nil {
			return err
		}
	}
	return nil
}

func (s *memIngredientStore) GetByID(_ context.Context, id int64) (*domain.Ingredient, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	ing, ok := s.db.ingredients[id]
	if !ok {
		return nil, store.ErrIngredientNotFound
	}
	ing.RecipeTitle = s.db.recipes[ing.RecipeID].Title
	return &ing, nil
}

func (s *memIngredientStore) filter(match func(domain.Ingredient) bool) []*domain.Ingredient {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []*domain.Ingredient{}
	for _, ing := range s.db.ingredients {
		if match(ing) {
			ing.RecipeTitle = s.db.recipes[ing.RecipeID].Title
			out = append(out, &ing)
		}
	}
	slices.SortFunc(out, func(a, b *domain.Ingredient) int { return int(a.ID - b.ID) })
	return out
}

func (s *memIngredientStore) List(_ context.Context) ([]*domain.Ingredient, error) {
	return s.filter(func(domain.Ingredient) bool { return true }), nil
}

func (s *memIngredientStore) ListByRecipe(_ context.Context, recipeID int64) ([]*domain.Ingredient, error) {
	return s.filter(func(i domain.Ingredient) bool { return i.RecipeID == recipeID }), nil
}

func (s *memIngredientStore) CountByRecipe(ctx context.Context, recipeID int64) (int, error) {
	list, _ := s.ListByRecipe(ctx, recipeID)
	return len(list), nil
}

func (s *memIngredientStore) Update(_ context.Context, ingredient *domain.Ingredient) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.ingredients[ingredient.ID]; !ok {
		return store.ErrIngredientNotFound
	}
	s.db.ingredients[ingredient.ID] = *ingredient
	return nil
}

func (s *memIngredientStore) Delete(_ context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.ingredients[id]; !ok {
		return store.ErrIngredientNotFound
	}
	delete(s.db.ingredients, id)
	return nil
}

func (s *memIngredientStore) DeleteByRecipe(_ context.Context, recipeID int64) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var n int64
	for id, ing := range s.db.ingredients {
		if ing.RecipeID == recipeID {
			delete(s.db.ingredients, id)
			n++
		}
	}
	return n, nil
}

func (s *memIngredientStore) WithTx(*sql.Tx) store.IngredientStore { return s }

// --- comments ---

type memCommentStore struct{ db *memDB }

func (s *memCommentStore) readLocked(c domain.Comment) *domain.Comment {
	c.Username = s.db.users[c.UserID].Username
	c.RecipeTitle = s.db.recipes[c.RecipeID].Title
	return &c
}

func (s *memCommentStore) Create(_ context.Context, comment *domain.Comment) error {
	db := s.db
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.recipes[comment.RecipeID]; !ok {
		return store.ErrInvalidEntity
	}
	if _, ok := db.users[comment.UserID]; !ok {
		return store.ErrInvalidEntity
	}
	comment.ID, comment.CreatedAt = db.tick()
	comment.UpdatedAt = comment.CreatedAt
	db.comments[comment.ID] = *comment
	return nil
}

func (s *memCommentStore) GetByID(_ context.Context, id int64) (*domain.Comment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	c, ok := s.db.comments[id]
	if !ok {
		return nil, store.ErrCommentNotFound
	}
	return s.readLocked(c), nil
}

func (s *memCommentStore) filter(match func(domain.Comment) bool, newestFirst bool) []*domain.Comment {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []*domain.Comment{}
	for _, c := range s.db.comments {
		if match(c) {
			out = append(out, s.readLocked(c))
		}
	}
	slices.SortFunc(out, func(a, b *domain.Comment) int {
		if newestFirst {
			return int(b.ID - a.ID)
		}
		return int(a.ID - b.ID)
	})
	return out
}

func (s *memCommentStore) List(_ context.Context, limit, offset int) ([]*domain.Comment, error) {
	all := s.filter(func(domain.Comment) bool { return true }, true)
	return slicePage(all, limit, offset), nil
}

func (s *memCommentStore) ListByRecipe(_ context.Context, recipeID int64) ([]*domain.Comment, error) {
	return s.filter(func(c domain.Comment) bool { return c.RecipeID == recipeID }, false), nil
}

func (s *memCommentStore) ListByUser(_ context.Context, userID int64) ([]*domain.Comment, error) {
	return s.filter(func(c domain.Comment) bool { return c.UserID == userID }, true), nil
}

func (s *memCommentStore) CountByRecipe(ctx context.Context, recipeID int64) (int, error) {
	list, _ := s.ListByRecipe(ctx, recipeID)
	return len(list), nil
}

func (s *memCommentStore) Update(_ context.Context, comment *domain.Comment) error {
	db := s.db
	db.mu.Lock()
	defer db.mu.Unlock()
	existing, ok := db.comments[comment.ID]
	if !ok {
		return store.ErrCommentNotFound
	}
	existing.Content = comment.Content
	_, existing.UpdatedAt = db.tick()
	comment.UpdatedAt = existing.UpdatedAt
	db.comments[comment.ID] = existing
	return nil
}

func (s *memCommentStore) Delete(_ context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.comments[id]; !ok {
		return store.ErrCommentNotFound
	}
	delete(s.db.comments, id)
	return nil
}

func (s *memCommentStore) deleteWhere(match func(domain.Comment) bool) int64 {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var n int64
	for id, c := range s.db.comments {
		if match(c) {
			delete(s.db.comments, id)
			n++
		}
	}
	return n
}

func (s *memCommentStore) DeleteByRecipe(_ context.Context, recipeID int64) (int64, error) {
	return s.deleteWhere(func(c domain.Comment) bool { return c.RecipeID == recipeID }), nil
}

func (s *memCommentStore) DeleteByUser(_ context.Context, userID int64) (int64, error) {
	return s.deleteWhere(func(c domain.Comment) bool { return c.UserID == userID }), nil
}

func (s *memCommentStore) WithTx(*sql.Tx) store.CommentStore { return s }

func slicePage[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := min(offset+limit, len(all))
	return all[offset:end]
}

var (
	_ store.UserStore       = (*memUserStore)(nil)
	_ store.CategoryStore   = (*memCategoryStore)(nil)
	_ store.RecipeStore     = (*memRecipeStore)(nil)
	_ store.IngredientStore = (*memIngredientStore)(nil)
	_ store.CommentStore    = (*memCommentStore)(nil)
	_ store.Transactor      = (*memTransactor)(nil)
)
