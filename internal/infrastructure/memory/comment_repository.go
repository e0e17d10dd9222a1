package memory

import (
	"context"
	"sort"

	"github.com/oksasatya/icook-api/internal/domain/entity"
	"github.com/oksasatya/icook-api/internal/domain/repository"
	"github.com/oksasatya/icook-api/internal/infrastructure/populate"
)

type CommentRepository struct {
	db    *db
	users *UserRepository
}

func (r *CommentRepository) Create(_ context.Context, c *entity.Comment) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if c.ID == "" {
		c.ID = newID()
	}
	now := r.db.now()
	c.CreatedAt, c.UpdatedAt = now, now
	if c.LikeIDs == nil {
		c.LikeIDs = []string{}
	}
	stored := c.Clone()
	stored.Author, stored.Likes = nil, nil
	r.db.comments[c.ID] = stored
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id string, specs ...repository.Populate) (*entity.Comment, error) {
	r.db.mu.RLock()
	c, ok := r.db.comments[id]
	if ok {
		c = c.Clone()
	}
	r.db.mu.RUnlock()
	if !ok {
		return nil, repository.ErrNotFound
	}
	if err := populate.Comments(ctx, r.users, []*entity.Comment{c}, specs); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CommentRepository) ListByRecipe(ctx context.Context, recipeID string, specs ...repository.Populate) ([]*entity.Comment, error) {
	return r.list(ctx, func(c *entity.Comment) bool { return c.RecipeID == recipeID }, specs)
}

func (r *CommentRepository) List(ctx context.Context, specs ...repository.Populate) ([]*entity.Comment, error) {
	return r.list(ctx, func(*entity.Comment) bool { return true }, specs)
}

func (r *CommentRepository) list(ctx context.Context, match func(*entity.Comment) bool, specs []repository.Populate) ([]*entity.Comment, error) {
	r.db.mu.RLock()
	out := make([]*entity.Comment, 0)
	for _, c := range r.db.comments {
		if match(c) {
			out = append(out, c.Clone())
		}
	}
	r.db.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) || (out[i].CreatedAt.Equal(out[j].CreatedAt) && out[i].ID < out[j].ID) })
	if err := populate.Comments(ctx, r.users, out, specs); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CommentRepository) CountByRecipe(_ context.Context, recipeID string) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var n int64
	for _, c := range r.db.comments {
		if c.RecipeID == recipeID {
			n++
		}
	}
	return n, nil
}

func (r *CommentRepository) Count(_ context.Context) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return int64(len(r.db.comments)), nil
}

func (r *CommentRepository) SetContent(_ context.Context, id, content string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.comments[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.Content = content
	c.UpdatedAt = r.db.now()
	return nil
}

func (r *CommentRepository) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.comments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.comments, id)
	return nil
}

func (r *CommentRepository) AddLike(_ context.Context, id, userID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.comments[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.LikeIDs = addToSet(c.LikeIDs, userID)
	return nil
}

func (r *CommentRepository) RemoveLike(_ context.Context, id, userID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.comments[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.LikeIDs = pull(c.LikeIDs, userID)
	return nil
}

func (r *CommentRepository) RemoveLikesBy(_ context.Context, userID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, c := range r.db.comments {
		c.LikeIDs = pull(c.LikeIDs, userID)
	}
	return nil
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
