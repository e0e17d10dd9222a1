package repository

import (
	"context"

	"github.com/oksasatya/icook-api/internal/domain/entity"
)

type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	GetByID(ctx context.Context, id string, populate ...Populate) (*entity.Comment, error)
	ListByRecipe(ctx context.Context, recipeID string, populate ...Populate) ([]*entity.Comment, error)
	List(ctx context.Context, populate ...Populate) ([]*entity.Comment, error)
	CountByRecipe(ctx context.Context, recipeID string) (int64, error)
	Count(ctx context.Context) (int64, error)
	SetContent(ctx context.Context, id, content string) error
	Delete(ctx context.Context, id string) error

	AddLike(ctx context.Context, id, userID string) error
	RemoveLike(ctx context.Context, id, userID string) error
	RemoveLikesBy(ctx context.Context, userID string) error
}
