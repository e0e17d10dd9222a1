package application

import (
	"context"
	"strings"

	"github.com/oksasatya/icook-api/internal/domain/entity"
	"github.com/oksasatya/icook-api/internal/domain/repository"
	"github.com/oksasatya/icook-api/pkg/apperr"
	"github.com/oksasatya/icook-api/pkg/validation"
)

type CommentService struct {
	store *repository.Store
}

func NewCommentService(store *repository.Store) *CommentService {
	return &CommentService{store: store}
}

type commentInput struct {
	Content string `json:"content" validate:"min=1"`
}

func (s *CommentService) Post(ctx context.Context, id entity.Identity, recipeID, content string) (*entity.Comment, error) {
	in := commentInput{Content: strings.TrimSpace(content)}
	if details := validation.Struct(in); details != nil {
		return nil, apperr.InvalidInput("invalid comment", details)
	}
	if _, err := s.store.Recipes.GetByID(ctx, recipeID); err != nil {
		return nil, storeErr(err, "recipe not found", "could not load recipe")
	}
	c := &entity.Comment{AuthorID: id.UserID, RecipeID: recipeID, Content: in.Content}
	if err := s.store.Comments.Create(ctx, c); err != nil {
		return nil, apperr.Store("could not post comment", err)
	}
	return s.find(ctx, c.ID)
}

// Edit replaces the content. Only the author may edit a comment.
func (s *CommentService) Edit(ctx context.Context, id entity.Identity, commentID, content string) (*entity.Comment, error) {
	in := commentInput{Content: strings.TrimSpace(content)}
	if details := validation.Struct(in); details != nil {
		return nil, apperr.InvalidInput("invalid comment", details)
	}
	if err := s.owned(ctx, id, commentID); err != nil {
		return nil, err
	}
	if err := s.store.Comments.SetContent(ctx, commentID, in.Content); err != nil {
		return nil, storeErr(err, "comment not found", "could not edit comment")
	}
	return s.find(ctx, commentID)
}

func (s *CommentService) Delete(ctx context.Context, id entity.Identity, commentID string) error {
	if err := s.owned(ctx, id, commentID); err != nil {
		return err
	}
	if err := s.store.Comments.Delete(ctx, commentID); err != nil {
		return storeErr(err, "comment not found", "could not delete comment")
	}
	return nil
}

func (s *CommentService) ByRecipe(ctx context.Context, recipeID string) ([]*entity.Comment, error) {
	list, err := s.store.Comments.ListByRecipe(ctx, recipeID, commentGraph...)
	if err != nil {
		return nil, apperr.Store("could not list comments", err)
	}
	return list, nil
}

func (s *CommentService) CountByRecipe(ctx context.Context, recipeID string) (int64, error) {
	n, err := s.store.Comments.CountByRecipe(ctx, recipeID)
	if err != nil {
		return 0, apperr.Store("could not count comments", err)
	}
	return n, nil
}

func (s *CommentService) All(ctx context.Context) ([]*entity.Comment, error) {
	list, err := s.store.Comments.List(ctx, commentGraph...)
	if err != nil {
		return nil, apperr.Store("could not list comments", err)
	}
	return list, nil
}

func (s *CommentService) Count(ctx context.Context) (int64, error) {
	n, err := s.store.Comments.Count(ctx)
	if err != nil {
		return 0, apperr.Store("could not count comments", err)
	}
	return n, nil
}

func (s *CommentService) find(ctx context.Context, id string) (*entity.Comment, error) {
	c, err := s.store.Comments.GetByID(ctx, id, commentGraph...)
	if err != nil {
		return nil, storeErr(err, "comment not found", "could not load comment")
	}
	return c, nil
}

func (s *CommentService) owned(ctx context.Context, id entity.Identity, commentID string) error {
	c, err := s.store.Comments.GetByID(ctx, commentID)
	if err != nil {
		return storeErr(err, "comment not found", "could not load comment")
	}
	if c.AuthorID != id.UserID {
		return apperr.Forbidden("only the author can change this comment")
	}
	return nil
}
