package application

import (
	"context"
	"errors"
	"strings"

	"github.com/oksasatya/icook-api/internal/domain/entity"
	"github.com/oksasatya/icook-api/internal/domain/repository"
	"github.com/oksasatya/icook-api/pkg/apperr"
	"github.com/oksasatya/icook-api/pkg/validation"
)

type CategoryService struct {
	store *repository.Store
}

func NewCategoryService(store *repository.Store) *CategoryService {
	return &CategoryService{store: store}
}

type categoryInput struct {
	Name string `json:"name" validate:"min=3"`
}

func (s *CategoryService) Create(ctx context.Context, name string) (*entity.Category, error) {
	in := categoryInput{Name: strings.TrimSpace(name)}
	if details := validation.Struct(in); details != nil {
		return nil, apperr.InvalidInput("invalid category", details)
	}
	c := &entity.Category{Name: in.Name}
	if err := s.store.Categories.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperr.Conflict("category already exists")
		}
		return nil, apperr.Store("could not create category", err)
	}
	return c, nil
}

func (s *CategoryService) Find(ctx context.Context, id string) (*entity.Category, error) {
	c, err := s.store.Categories.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "category not found", "could not load category")
	}
	return c, nil
}

func (s *CategoryService) All(ctx context.Context) ([]*entity.Category, error) {
	list, err := s.store.Categories.List(ctx)
	if err != nil {
		return nil, apperr.Store("could not list categories", err)
	}
	return list, nil
}

func (s *CategoryService) Count(ctx context.Context) (int64, error) {
	n, err := s.store.Categories.Count(ctx)
	if err != nil {
		return 0, apperr.Store("could not count categories", err)
	}
	return n, nil
}
