package memory

import (
	"context"
	"sort"

	"github.com/oksasatya/icook-api/internal/domain/entity"
	"github.com/oksasatya/icook-api/internal/domain/repository"
	"github.com/oksasatya/icook-api/internal/infrastructure/populate"
)

type RecipeRepository struct {
	db         *db
	users      *UserRepository
	categories *CategoryRepository
}

func (r *RecipeRepository) Create(_ context.Context, rec *entity.Recipe) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if rec.ID == "" {
		rec.ID = newID()
	}
	now := r.db.now()
	rec.CreatedAt, rec.UpdatedAt = now, now
	if rec.LikeIDs == nil {
		rec.LikeIDs = []string{}
	}
	stored := rec.Clone()
	stored.Author, stored.Category, stored.Likes = nil, nil, nil
	r.db.recipes[rec.ID] = stored
	return nil
}

func (r *RecipeRepository) GetByID(ctx context.Context, id string, specs ...repository.Populate) (*entity.Recipe, error) {
	r.db.mu.RLock()
	rec, ok := r.db.recipes[id]
	if ok {
		rec = rec.Clone()
	}
	r.db.mu.RUnlock()
	if !ok {
		return nil, repository.ErrNotFound
	}
	if err := populate.Recipes(ctx, r.users, r.categories, []*entity.Recipe{rec}, specs); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *RecipeRepository) List(ctx context.Context, f repository.RecipeFilter, specs ...repository.Populate) ([]*entity.Recipe, error) {
	var ids map[string]struct{}
	if f.IDs != nil {
		ids = make(map[string]struct{}, len(f.IDs))
		for _, id := range f.IDs {
			ids[id] = struct{}{}
		}
	}
	r.db.mu.RLock()
	out := make([]*entity.Recipe, 0)
	for _, rec := range r.db.recipes {
		if f.AuthorID != "" && rec.AuthorID != f.AuthorID {
			continue
		}
		if f.CategoryID != "" && rec.CategoryID != f.CategoryID {
			continue
		}
		if ids != nil {
			if _, ok := ids[rec.ID]; !ok {
				continue
			}
		}
		out = append(out, rec.Clone())
	}
	r.db.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) || (out[i].CreatedAt.Equal(out[j].CreatedAt) && out[i].ID < out[j].ID) })
	if err := populate.Recipes(ctx, r.users, r.categories, out, specs); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *RecipeRepository) Count(_ context.Context) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return int64(len(r.db.recipes)), nil
}

func (r *RecipeRepository) Update(_ context.Context, id string, upd repository.RecipeUpdate) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	rec, ok := r.db.recipes[id]
	if !ok {
		return repository.ErrNotFound
	}
	if upd.Name != nil {
		rec.Name = *upd.Name
	}
	if upd.Description != nil {
		rec.Description = *upd.Description
	}
	if upd.Duration != nil {
		rec.Duration = *upd.Duration
	}
	if upd.Images != nil {
		rec.Images = append([]string(nil), (*upd.Images)...)
	}
	if upd.CategoryID != nil {
		rec.CategoryID = *upd.CategoryID
	}
	if upd.Ingredients != nil {
		rec.Ingredients = append([]string(nil), (*upd.Ingredients)...)
	}
	if upd.Steps != nil {
		rec.Steps = append([]entity.Step(nil), (*upd.Steps)...)
	}
	rec.UpdatedAt = r.db.now()
	return nil
}

func (r *RecipeRepository) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.recipes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.recipes, id)
	return nil
}

func (r *RecipeRepository) AddLike(_ context.Context, id, userID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	rec, ok := r.db.recipes[id]
	if !ok {
		return repository.ErrNotFound
	}
	rec.LikeIDs = addToSet(rec.LikeIDs, userID)
	return nil
}

func (r *RecipeRepository) RemoveLike(_ context.Context, id, userID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	rec, ok := r.db.recipes[id]
	if !ok {
		return repository.ErrNotFound
	}
	rec.LikeIDs = pull(rec.LikeIDs, userID)
	return nil
}

func (r *RecipeRepository) RemoveLikesBy(_ context.Context, userID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, rec := range r.db.recipes {
		rec.LikeIDs = pull(rec.LikeIDs, userID)
	}
	return nil
}

var _ repository.RecipeRepository = (*RecipeRepository)(nil)
