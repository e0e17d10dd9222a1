package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/oksasatya/icook-api/internal/domain/entity"
	"github.com/oksasatya/icook-api/internal/domain/repository"
)

type CategoryRepository struct {
	db *db
}

func (r *CategoryRepository) Create(_ context.Context, c *entity.Category) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.categories {
		if strings.EqualFold(existing.Name, c.Name) {
			return repository.ErrDuplicateKey
		}
	}
	if c.ID == "" {
		c.ID = newID()
	}
	r.db.categories[c.ID] = c.Clone()
	return nil
}

func (r *CategoryRepository) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	c, ok := r.db.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c.Clone(), nil
}

func (r *CategoryRepository) GetMany(_ context.Context, ids []string) ([]*entity.Category, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := make([]*entity.Category, 0, len(ids))
	for _, id := range ids {
		if c, ok := r.db.categories[id]; ok {
			out = append(out, c.Clone())
		}
	}
	return out, nil
}

func (r *CategoryRepository) List(_ context.Context) ([]*entity.Category, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := make([]*entity.Category, 0, len(r.db.categories))
	for _, c := range r.db.categories {
		out = append(out, c.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CategoryRepository) Count(_ context.Context) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return int64(len(r.db.categories)), nil
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)
