package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/icook-api/internal/domain/entity"
	"github.com/oksasatya/icook-api/internal/domain/repository"
)

func seedUsers(t *testing.T, store *repository.Store, names ...string) []*entity.User {
	t.Helper()
	out := make([]*entity.User, 0, len(names))
	for _, n := range names {
		u := &entity.User{Name: n, Email: n + "@example.com"}
		require.NoError(t, store.Users.Create(context.Background(), u))
		out = append(out, u)
	}
	return out
}

func TestSetHelpers(t *testing.T) {
	set := addToSet([]string{"a"}, "b")
	assert.Equal(t, []string{"a", "b"}, set)
	assert.Equal(t, []string{"a", "b"}, addToSet(set, "a"))

	orig := []string{"a", "b", "a"}
	assert.Equal(t, []string{"b"}, pull(orig, "a"))
	assert.Equal(t, []string{"a", "b", "a"}, orig, "pull must not modify its input")
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	store := NewStore()
	seedUsers(t, store, "alice")
	err := store.Users.Create(context.Background(), &entity.User{Name: "other", Email: "ALICE@example.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)
}

func TestUserRepository_ReadsAreCopies(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	u := seedUsers(t, store, "alice")[0]

	got, err := store.Users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	got.FollowingIDs = append(got.FollowingIDs, "x")
	got.Name = "mallory"

	again, err := store.Users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, again.FollowingIDs)
	assert.Equal(t, "alice", again.Name)
}

func TestUserRepository_Relations(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	us := seedUsers(t, store, "alice", "bob")
	a, b := us[0], us[1]

	require.NoError(t, store.Users.AddRelation(ctx, a.ID, repository.Following, b.ID))
	require.NoError(t, store.Users.AddRelation(ctx, a.ID, repository.Following, b.ID))
	require.NoError(t, store.Users.AddRelation(ctx, b.ID, repository.Followers, a.ID))

	got, err := store.Users.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, got.FollowingIDs)

	require.NoError(t, store.Users.RemoveRelation(ctx, a.ID, repository.Following, b.ID))
	require.NoError(t, store.Users.RemoveRelation(ctx, a.ID, repository.Following, b.ID))
	got, err = store.Users.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, got.FollowingIDs)

	// writes against a missing document match nothing
	assert.NoError(t, store.Users.AddRelation(ctx, "missing", repository.Following, a.ID))
	assert.ErrorIs(t, store.Users.AddRelation(ctx, a.ID, repository.UserRelation("likes"), b.ID), repository.ErrNotFound)
	assert.ErrorIs(t, store.Users.RemoveRelation(ctx, "missing", repository.UserRelation("likes"), b.ID), repository.ErrNotFound)
}

func TestUserRepository_ConcurrentAddToSet(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	us := seedUsers(t, store, "alice", "bob")

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Users.AddRelation(ctx, us[0].ID, repository.Following, us[1].ID)
		}()
	}
	wg.Wait()

	got, err := store.Users.GetByID(ctx, us[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{us[1].ID}, got.FollowingIDs)
}

func TestUserRepository_RemoveFromAllRelations(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	us := seedUsers(t, store, "alice", "bob", "carol")
	a, b, c := us[0], us[1], us[2]
	require.NoError(t, store.Users.AddRelation(ctx, a.ID, repository.Following, c.ID))
	require.NoError(t, store.Users.AddRelation(ctx, b.ID, repository.Followers, c.ID))

	require.NoError(t, store.Users.RemoveFromAllRelations(ctx, c.ID))

	list, err := store.Users.GetMany(ctx, []string{a.ID, b.ID})
	require.NoError(t, err)
	for _, u := range list {
		assert.Empty(t, u.FollowingIDs)
		assert.Empty(t, u.FollowerIDs)
	}
}

func TestUserRepository_PopulateDropsDangling(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	us := seedUsers(t, store, "alice", "bob", "carol")
	a, b, c := us[0], us[1], us[2]
	require.NoError(t, store.Users.AddRelation(ctx, a.ID, repository.Following, b.ID))
	require.NoError(t, store.Users.AddRelation(ctx, a.ID, repository.Following, c.ID))
	require.NoError(t, store.Users.Delete(ctx, c.ID))

	got, err := store.Users.GetByID(ctx, a.ID, repository.Populate{Path: string(repository.Following)})
	require.NoError(t, err)
	require.Len(t, got.Following, 1)
	assert.Equal(t, "bob", got.Following[0].Name)
	assert.Nil(t, got.Followers)
}

func TestRecipeRepository_FilterAndLikes(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	us := seedUsers(t, store, "alice", "bob")
	cat := &entity.Category{Name: "Soups"}
	require.NoError(t, store.Categories.Create(ctx, cat))

	r1 := &entity.Recipe{AuthorID: us[0].ID, CategoryID: cat.ID, Name: "Tomato soup"}
	r2 := &entity.Recipe{AuthorID: us[1].ID, Name: "Toast"}
	require.NoError(t, store.Recipes.Create(ctx, r1))
	require.NoError(t, store.Recipes.Create(ctx, r2))

	byAuthor, err := store.Recipes.List(ctx, repository.RecipeFilter{AuthorID: us[1].ID})
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, r2.ID, byAuthor[0].ID)

	byCat, err := store.Recipes.List(ctx, repository.RecipeFilter{CategoryID: cat.ID}, repository.Populate{Path: "category"}, repository.Populate{Path: "author"})
	require.NoError(t, err)
	require.Len(t, byCat, 1)
	assert.Equal(t, "Soups", byCat[0].Category.Name)
	assert.Equal(t, "alice", byCat[0].Author.Name)

	none, err := store.Recipes.List(ctx, repository.RecipeFilter{IDs: []string{}})
	require.NoError(t, err)
	assert.Empty(t, none)

	require.NoError(t, store.Recipes.AddLike(ctx, r1.ID, us[1].ID))
	require.NoError(t, store.Recipes.AddLike(ctx, r1.ID, us[1].ID))
	require.NoError(t, store.Recipes.RemoveLikesBy(ctx, us[0].ID))
	got, err := store.Recipes.GetByID(ctx, r1.ID, repository.Populate{Path: "likes"})
	require.NoError(t, err)
	assert.Equal(t, []string{us[1].ID}, got.LikeIDs)
	require.Len(t, got.Likes, 1)
	assert.Equal(t, "bob", got.Likes[0].Name)

	assert.ErrorIs(t, store.Recipes.AddLike(ctx, "missing", us[1].ID), repository.ErrNotFound)
	assert.ErrorIs(t, store.Recipes.Delete(ctx, "missing"), repository.ErrNotFound)
}

func TestRecipeRepository_UpdateKeepsUntouchedFields(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	r := &entity.Recipe{AuthorID: "a", Name: "Tomato soup", Description: "warm", Duration: 20}
	require.NoError(t, store.Recipes.Create(ctx, r))

	name := "Cold soup"
	steps := []entity.Step{{Number: 1, Description: "chill"}}
	require.NoError(t, store.Recipes.Update(ctx, r.ID, repository.RecipeUpdate{Name: &name, Steps: &steps}))

	got, err := store.Recipes.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cold soup", got.Name)
	assert.Equal(t, "warm", got.Description)
	assert.Equal(t, 20, got.Duration)
	assert.Equal(t, steps, got.Steps)
	assert.ErrorIs(t, store.Recipes.Update(ctx, "missing", repository.RecipeUpdate{}), repository.ErrNotFound)
}

func TestCommentRepository_ByRecipe(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	u := seedUsers(t, store, "alice")[0]

	for _, recipe := range []string{"r1", "r1", "r2"} {
		require.NoError(t, store.Comments.Create(ctx, &entity.Comment{AuthorID: u.ID, RecipeID: recipe, Content: "nice"}))
	}
	n, err := store.Comments.CountByRecipe(ctx, "r1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	list, err := store.Comments.ListByRecipe(ctx, "r1", repository.Populate{Path: "author"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "alice", list[0].Author.Name)

	require.NoError(t, store.Comments.SetContent(ctx, list[0].ID, "edited"))
	got, err := store.Comments.GetByID(ctx, list[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Content)

	total, err := store.Comments.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
}

func TestCategoryRepository_UniqueName(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, store.Categories.Create(ctx, &entity.Category{Name: "Soups"}))
	assert.ErrorIs(t, store.Categories.Create(ctx, &entity.Category{Name: "soups"}), repository.ErrDuplicateKey)
	require.NoError(t, store.Categories.Create(ctx, &entity.Category{Name: "Breakfast"}))

	list, err := store.Categories.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Breakfast", list[0].Name)
}
