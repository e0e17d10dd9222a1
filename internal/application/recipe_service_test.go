package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/icook-api/internal/domain/entity"
	"github.com/oksasatya/icook-api/pkg/apperr"
)

type fakeIndex struct {
	indexed []string
	deleted []string
	hits    []string
}

func (f *fakeIndex) Index(_ context.Context, r *entity.Recipe) error {
	f.indexed = append(f.indexed, r.ID)
	return nil
}

func (f *fakeIndex) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeIndex) Search(context.Context, string, int) ([]string, error) { return f.hits, nil }

func validRecipe(category string) CreateRecipeInput {
	return CreateRecipeInput{
		Name:        "Tomato soup",
		Description: "A warm tomato soup",
		Duration:    25,
		CategoryID:  category,
		Ingredients: []string{"tomato", "salt"},
		Steps: []StepInput{
			{Number: 3, Description: "c"},
			{Number: 1, Description: "a"},
			{Number: 2, Description: "b"},
		},
	}
}

func stepNumbers(r *entity.Recipe) []int {
	out := make([]int, 0, len(r.Steps))
	for _, s := range r.Steps {
		out = append(out, s.Number)
	}
	return out
}

func TestRecipe_StepsAlwaysSorted(t *testing.T) {
	store := newMemoryStore()
	idx := &fakeIndex{}
	svc := NewRecipeService(store, idx, quietLogger())
	ctx := context.Background()
	u := mustUser(t, store, "1", "alice")
	cat := mustCategory(t, store, "Soups")

	created, err := svc.Create(ctx, entity.IdentityOf(u, ""), validRecipe(cat.ID))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, stepNumbers(created))
	assert.Equal(t, "alice", created.Author.Name)
	assert.Equal(t, []string{created.ID}, idx.indexed)

	// stored order is untouched; every read path sorts
	raw, err := store.Recipes.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 2}, stepNumbers(raw))

	found, err := svc.Find(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, stepNumbers(found))

	all, err := svc.All(ctx)
	require.NoError(t, err)
	byUser, err := svc.ByUser(ctx, u.ID)
	require.NoError(t, err)
	byCategory, err := svc.ByCategory(ctx, cat.ID)
	require.NoError(t, err)
	for _, list := range [][]*entity.Recipe{all, byUser, byCategory} {
		require.Len(t, list, 1)
		assert.Equal(t, []int{1, 2, 3}, stepNumbers(list[0]))
	}
}

func TestRecipe_CreateRejects(t *testing.T) {
	store := newMemoryStore()
	svc := NewRecipeService(store, nil, quietLogger())
	ctx := context.Background()
	u := mustUser(t, store, "1", "alice")

	bad := validRecipe("x")
	bad.Name, bad.Duration = "ab", 0
	bad.Steps = append(bad.Steps, StepInput{Number: 0})
	_, err := svc.Create(ctx, entity.IdentityOf(u, ""), bad)
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.KindInvalidInput, ae.Kind)
	assert.Contains(t, ae.Details, "name")
	assert.Contains(t, ae.Details, "duration")
	assert.Contains(t, ae.Details, "steps[3].step_number")

	_, err = svc.Create(ctx, entity.IdentityOf(u, ""), validRecipe("nope"))
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestRecipe_UpdateAndDeleteAuthorOnly(t *testing.T) {
	store := newMemoryStore()
	idx := &fakeIndex{}
	svc := NewRecipeService(store, idx, quietLogger())
	comments := NewCommentService(store)
	ctx := context.Background()
	a := mustUser(t, store, "1", "alice")
	b := mustUser(t, store, "2", "bob")
	cat := mustCategory(t, store, "Soups")
	r, err := svc.Create(ctx, entity.IdentityOf(a, ""), validRecipe(cat.ID))
	require.NoError(t, err)
	_, err = comments.Post(ctx, entity.IdentityOf(b, ""), r.ID, "looks good")
	require.NoError(t, err)

	name := "Better soup"
	_, err = svc.Update(ctx, entity.IdentityOf(b, ""), r.ID, UpdateRecipeInput{Name: &name})
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	zero := 0
	_, err = svc.Update(ctx, entity.IdentityOf(a, ""), r.ID, UpdateRecipeInput{Duration: &zero})
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))

	steps := []StepInput{{Number: 2, Description: "y"}, {Number: 1, Description: "x"}}
	up, err := svc.Update(ctx, entity.IdentityOf(a, ""), r.ID, UpdateRecipeInput{Name: &name, Steps: &steps})
	require.NoError(t, err)
	assert.Equal(t, "Better soup", up.Name)
	assert.Equal(t, "A warm tomato soup", up.Description)
	assert.Equal(t, []int{1, 2}, stepNumbers(up))

	assert.True(t, apperr.Is(svc.Delete(ctx, entity.IdentityOf(b, ""), r.ID), apperr.KindForbidden))
	require.NoError(t, svc.Delete(ctx, entity.IdentityOf(a, ""), r.ID))
	assert.Equal(t, []string{r.ID}, idx.deleted)

	_, err = svc.Find(ctx, r.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	n, err := comments.CountByRecipe(ctx, r.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRecipe_Search(t *testing.T) {
	store := newMemoryStore()
	ctx := context.Background()
	u := mustUser(t, store, "1", "alice")
	r1 := mustRecipe(t, store, u.ID, "", entity.Step{Number: 2}, entity.Step{Number: 1})
	r2 := mustRecipe(t, store, u.ID, "")

	got, err := NewRecipeService(store, &fakeIndex{hits: []string{r2.ID, "gone", r1.ID}}, quietLogger()).Search(ctx, "soup", 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, r2.ID, got[0].ID)
	assert.Equal(t, r1.ID, got[1].ID)
	assert.Equal(t, []int{1, 2}, stepNumbers(got[1]))

	none, err := NewRecipeService(store, nil, quietLogger()).Search(ctx, "soup", 5)
	require.NoError(t, err)
	assert.Empty(t, none)
}
