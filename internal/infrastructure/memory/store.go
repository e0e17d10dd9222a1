// Package memory is a process-local document store. It backs the test
// suites and STORE_DRIVER=memory for local development. Every read returns
// a copy; every write is atomic per document under a single lock.
package memory

import (
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/icook-api/internal/domain/entity"
	"github.com/oksasatya/icook-api/internal/domain/repository"
)

type db struct {
	mu         sync.RWMutex
	users      map[string]*entity.User
	recipes    map[string]*entity.Recipe
	comments   map[string]*entity.Comment
	categories map[string]*entity.Category
	now        func() time.Time
}

// NewStore returns an empty store wired into repository.Store.
func NewStore() *repository.Store {
	d := &db{
		users:      map[string]*entity.User{},
		recipes:    map[string]*entity.Recipe{},
		comments:   map[string]*entity.Comment{},
		categories: map[string]*entity.Category{},
		now:        func() time.Time { return time.Now().UTC() },
	}
	users := &UserRepository{db: d}
	categories := &CategoryRepository{db: d}
	return &repository.Store{
		Users:      users,
		Recipes:    &RecipeRepository{db: d, users: users, categories: categories},
		Comments:   &CommentRepository{db: d, users: users},
		Categories: categories,
	}
}

func newID() string { return primitive.NewObjectID().Hex() }

func addToSet(set []string, v string) []string {
	for _, x := range set {
		if x == v {
			return set
		}
	}
	return append(set, v)
}

func pull(set []string, v string) []string {
	out := set[:0:0]
	for _, x := range set {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
