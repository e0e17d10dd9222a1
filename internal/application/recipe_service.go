package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/icook-api/internal/domain/entity"
	"github.com/oksasatya/icook-api/internal/domain/repository"
	"github.com/oksasatya/icook-api/pkg/apperr"
	"github.com/oksasatya/icook-api/pkg/validation"
)

// RecipeIndexer mirrors recipes into a full-text index. search.RecipeIndex implements it.
type RecipeIndexer interface {
	Index(ctx context.Context, r *entity.Recipe) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, q string, size int) ([]string, error)
}

type RecipeService struct {
	store  *repository.Store
	index  RecipeIndexer
	logger *logrus.Logger
}

// NewRecipeService builds the service; index may be nil to disable search.
func NewRecipeService(store *repository.Store, index RecipeIndexer, logger *logrus.Logger) *RecipeService {
	return &RecipeService{store: store, index: index, logger: logger}
}

type StepInput struct {
	Number      int    `json:"step_number" validate:"gte=1"`
	Description string `json:"description" validate:"required"`
}

type CreateRecipeInput struct {
	Name        string      `json:"name" validate:"min=3"`
	Description string      `json:"description" validate:"min=10"`
	Duration    int         `json:"duration" validate:"gte=1"`
	Images      []string    `json:"images" validate:"dive,required"`
	CategoryID  string      `json:"category" validate:"required"`
	Ingredients []string    `json:"ingredients" validate:"dive,required"`
	Steps       []StepInput `json:"steps" validate:"dive"`
}

type UpdateRecipeInput struct {
	Name        *string      `json:"name" validate:"omitnil,min=3"`
	Description *string      `json:"description" validate:"omitnil,min=10"`
	Duration    *int         `json:"duration" validate:"omitnil,gte=1"`
	Images      *[]string    `json:"images" validate:"omitnil,dive,required"`
	CategoryID  *string      `json:"category" validate:"omitnil,required"`
	Ingredients *[]string    `json:"ingredients" validate:"omitnil,dive,required"`
	Steps       *[]StepInput `json:"steps" validate:"omitnil,dive"`
}

func toSteps(in []StepInput) []entity.Step {
	out := make([]entity.Step, 0, len(in))
	for _, s := range in {
		out = append(out, entity.Step{Number: s.Number, Description: s.Description})
	}
	return out
}

func (s *RecipeService) Create(ctx context.Context, id entity.Identity, in CreateRecipeInput) (*entity.Recipe, error) {
	in.Name = strings.TrimSpace(in.Name)
	if details := validation.Struct(in); details != nil {
		return nil, apperr.InvalidInput("invalid recipe", details)
	}
	if err := s.requireCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	r := &entity.Recipe{
		AuthorID:    id.UserID,
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		Description: in.Description,
		Duration:    in.Duration,
		Images:      in.Images,
		Ingredients: in.Ingredients,
		Steps:       toSteps(in.Steps),
	}
	if err := s.store.Recipes.Create(ctx, r); err != nil {
		return nil, apperr.Store("could not create recipe", err)
	}
	out, err := s.Find(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	s.reindex(ctx, out)
	return out, nil
}

// Update overwrites the given fields. Only the author may edit a recipe.
func (s *RecipeService) Update(ctx context.Context, id entity.Identity, recipeID string, in UpdateRecipeInput) (*entity.Recipe, error) {
	if details := validation.Struct(in); details != nil {
		return nil, apperr.InvalidInput("invalid recipe", details)
	}
	if _, err := s.owned(ctx, id, recipeID); err != nil {
		return nil, err
	}
	upd := repository.RecipeUpdate{
		Name:        in.Name,
		Description: in.Description,
		Duration:    in.Duration,
		Images:      in.Images,
		CategoryID:  in.CategoryID,
		Ingredients: in.Ingredients,
	}
	if in.CategoryID != nil {
		if err := s.requireCategory(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
	}
	if in.Steps != nil {
		steps := toSteps(*in.Steps)
		upd.Steps = &steps
	}
	if err := s.store.Recipes.Update(ctx, recipeID, upd); err != nil {
		return nil, storeErr(err, "recipe not found", "could not update recipe")
	}
	out, err := s.Find(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	s.reindex(ctx, out)
	return out, nil
}

// Delete removes the recipe and its comments. Only the author may delete it.
func (s *RecipeService) Delete(ctx context.Context, id entity.Identity, recipeID string) error {
	r, err := s.owned(ctx, id, recipeID)
	if err != nil {
		return err
	}
	if err := s.store.Recipes.Delete(ctx, r.ID); err != nil {
		return storeErr(err, "recipe not found", "could not delete recipe")
	}
	comments, err := s.store.Comments.ListByRecipe(ctx, r.ID)
	if err != nil {
		return apperr.Store("recipe deleted but comments could not be listed", err)
	}
	for _, c := range comments {
		if err := s.store.Comments.Delete(ctx, c.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return apperr.Store("recipe deleted but comment cleanup failed", err)
		}
	}
	if s.index != nil {
		if err := s.index.Delete(ctx, r.ID); err != nil && s.logger != nil {
			s.logger.WithError(err).WithField("recipe_id", r.ID).Warn("es delete failed")
		}
	}
	return nil
}

func (s *RecipeService) Find(ctx context.Context, recipeID string) (*entity.Recipe, error) {
	r, err := s.store.Recipes.GetByID(ctx, recipeID, recipeGraph...)
	if err != nil {
		return nil, storeErr(err, "recipe not found", "could not load recipe")
	}
	r.SortSteps()
	return r, nil
}

func (s *RecipeService) All(ctx context.Context) ([]*entity.Recipe, error) {
	return s.list(ctx, repository.RecipeFilter{})
}

func (s *RecipeService) ByCategory(ctx context.Context, categoryID string) ([]*entity.Recipe, error) {
	return s.list(ctx, repository.RecipeFilter{CategoryID: categoryID})
}

func (s *RecipeService) ByUser(ctx context.Context, userID string) ([]*entity.Recipe, error) {
	return s.list(ctx, repository.RecipeFilter{AuthorID: userID})
}

func (s *RecipeService) Count(ctx context.Context) (int64, error) {
	n, err := s.store.Recipes.Count(ctx)
	if err != nil {
		return 0, apperr.Store("could not count recipes", err)
	}
	return n, nil
}

// Search runs a full-text query and returns recipes in relevance order.
// Without an index it returns nothing.
func (s *RecipeService) Search(ctx context.Context, q string, size int) ([]*entity.Recipe, error) {
	if s.index == nil {
		return []*entity.Recipe{}, nil
	}
	ids, err := s.index.Search(ctx, q, size)
	if err != nil {
		return nil, apperr.Store("search failed", err)
	}
	if len(ids) == 0 {
		return []*entity.Recipe{}, nil
	}
	found, err := s.list(ctx, repository.RecipeFilter{IDs: ids})
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Recipe, len(found))
	for _, r := range found {
		byID[r.ID] = r
	}
	out := make([]*entity.Recipe, 0, len(found))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *RecipeService) list(ctx context.Context, f repository.RecipeFilter) ([]*entity.Recipe, error) {
	list, err := s.store.Recipes.List(ctx, f, recipeGraph...)
	if err != nil {
		return nil, apperr.Store("could not list recipes", err)
	}
	for _, r := range list {
		r.SortSteps()
	}
	return list, nil
}

func (s *RecipeService) owned(ctx context.Context, id entity.Identity, recipeID string) (*entity.Recipe, error) {
	r, err := s.store.Recipes.GetByID(ctx, recipeID)
	if err != nil {
		return nil, storeErr(err, "recipe not found", "could not load recipe")
	}
	if r.AuthorID != id.UserID {
		return nil, apperr.Forbidden("only the author can change this recipe")
	}
	return r, nil
}

func (s *RecipeService) requireCategory(ctx context.Context, categoryID string) error {
	if _, err := s.store.Categories.GetByID(ctx, categoryID); err != nil {
		return storeErr(err, "category not found", "could not load category")
	}
	return nil
}

func (s *RecipeService) reindex(ctx context.Context, r *entity.Recipe) {
	if s.index == nil {
		return
	}
	if err := s.index.Index(ctx, r); err != nil && s.logger != nil {
		s.logger.WithError(err).WithField("recipe_id", r.ID).Warn("es index failed")
	}
}
