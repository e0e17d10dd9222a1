package application

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/icook-api/internal/domain/entity"
	"github.com/oksasatya/icook-api/internal/domain/repository"
	"github.com/oksasatya/icook-api/internal/infrastructure/memory"
)

var errBoom = errors.New("boom")

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type fakePublisher struct {
	mu   sync.Mutex
	jobs []any
	err  error
}

func (p *fakePublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, body)
	return nil
}

func (p *fakePublisher) Jobs() []any {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]any(nil), p.jobs...)
}

// flakyUsers fails every relation write on one side of the graph.
type flakyUsers struct {
	repository.UserRepository
	failOn repository.UserRelation
}

func (f flakyUsers) AddRelation(ctx context.Context, id string, rel repository.UserRelation, other string) error {
	if rel == f.failOn {
		return errBoom
	}
	return f.UserRepository.AddRelation(ctx, id, rel, other)
}

func (f flakyUsers) RemoveRelation(ctx context.Context, id string, rel repository.UserRelation, other string) error {
	if rel == f.failOn {
		return errBoom
	}
	return f.UserRepository.RemoveRelation(ctx, id, rel, other)
}

func mustUser(t *testing.T, store *repository.Store, id, name string) *entity.User {
	t.Helper()
	u := &entity.User{ID: id, Name: name, Email: name + "@example.com"}
	require.NoError(t, store.Users.Create(context.Background(), u))
	return u
}

func mustCategory(t *testing.T, store *repository.Store, name string) *entity.Category {
	t.Helper()
	c := &entity.Category{Name: name}
	require.NoError(t, store.Categories.Create(context.Background(), c))
	return c
}

func mustRecipe(t *testing.T, store *repository.Store, author, category string, steps ...entity.Step) *entity.Recipe {
	t.Helper()
	r := &entity.Recipe{AuthorID: author, CategoryID: category, Name: "Tomato soup", Description: "A warm tomato soup", Duration: 20, Steps: steps}
	require.NoError(t, store.Recipes.Create(context.Background(), r))
	return r
}

func idsOf(users []*entity.User) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.ID)
	}
	return out
}

func newMemoryStore() *repository.Store { return memory.NewStore() }
