package repository

import (
	"context"

	"github.com/oksasatya/icook-api/internal/domain/entity"
)

// RecipeFilter restricts a recipe listing; empty fields match everything.
type RecipeFilter struct {
	AuthorID   string
	CategoryID string
	IDs        []string
}

// RecipeUpdate carries the fields to overwrite; nil fields are left untouched.
type RecipeUpdate struct {
	Name        *string
	Description *string
	Duration    *int
	Images      *[]string
	CategoryID  *string
	Ingredients *[]string
	Steps       *[]entity.Step
}

type RecipeRepository interface {
	Create(ctx context.Context, r *entity.Recipe) error
	GetByID(ctx context.Context, id string, populate ...Populate) (*entity.Recipe, error)
	List(ctx context.Context, filter RecipeFilter, populate ...Populate) ([]*entity.Recipe, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id string, upd RecipeUpdate) error
	Delete(ctx context.Context, id string) error

	AddLike(ctx context.Context, id, userID string) error
	RemoveLike(ctx context.Context, id, userID string) error
	RemoveLikesBy(ctx context.Context, userID string) error
}
