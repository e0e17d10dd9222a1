package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/oksasatya/icook-api/internal/domain/entity"
	"github.com/oksasatya/icook-api/internal/domain/repository"
	"github.com/oksasatya/icook-api/internal/infrastructure/populate"
)

type UserRepository struct {
	db *db
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	email := strings.ToLower(u.Email)
	for _, existing := range r.db.users {
		if strings.ToLower(existing.Email) == email {
			return repository.ErrDuplicateKey
		}
	}
	if u.ID == "" {
		u.ID = newID()
	}
	now := r.db.now()
	u.CreatedAt, u.UpdatedAt = now, now
	if u.FollowingIDs == nil {
		u.FollowingIDs = []string{}
	}
	if u.FollowerIDs == nil {
		u.FollowerIDs = []string{}
	}
	stored := u.Clone()
	stored.Following, stored.Followers = nil, nil
	r.db.users[u.ID] = stored
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string, specs ...repository.Populate) (*entity.User, error) {
	r.db.mu.RLock()
	u, ok := r.db.users[id]
	if ok {
		u = u.Clone()
	}
	r.db.mu.RUnlock()
	if !ok {
		return nil, repository.ErrNotFound
	}
	if err := populate.Users(ctx, r, []*entity.User{u}, specs); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	email = strings.ToLower(email)
	for _, u := range r.db.users {
		if strings.ToLower(u.Email) == email {
			return u.Clone(), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) GetMany(_ context.Context, ids []string) ([]*entity.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := make([]*entity.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.db.users[id]; ok {
			out = append(out, u.Clone())
		}
	}
	return out, nil
}

func (r *UserRepository) List(ctx context.Context, specs ...repository.Populate) ([]*entity.User, error) {
	r.db.mu.RLock()
	out := make([]*entity.User, 0, len(r.db.users))
	for _, u := range r.db.users {
		out = append(out, u.Clone())
	}
	r.db.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) || (out[i].CreatedAt.Equal(out[j].CreatedAt) && out[i].ID < out[j].ID) })
	if err := populate.Users(ctx, r, out, specs); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *UserRepository) Count(_ context.Context) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return int64(len(r.db.users)), nil
}

func (r *UserRepository) SetAvatar(_ context.Context, id, avatar string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Avatar = avatar
	u.UpdatedAt = r.db.now()
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.users, id)
	return nil
}

func (r *UserRepository) AddRelation(_ context.Context, id string, rel repository.UserRelation, otherID string) error {
	return r.mutateRelation(id, rel, func(set []string) []string { return addToSet(set, otherID) })
}

func (r *UserRepository) RemoveRelation(_ context.Context, id string, rel repository.UserRelation, otherID string) error {
	return r.mutateRelation(id, rel, func(set []string) []string { return pull(set, otherID) })
}

func (r *UserRepository) RemoveFromAllRelations(_ context.Context, otherID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		u.FollowingIDs = pull(u.FollowingIDs, otherID)
		u.FollowerIDs = pull(u.FollowerIDs, otherID)
	}
	return nil
}

// mutateRelation mirrors an update whose filter matched no document: it is
// not an error, the same as an $addToSet against a missing _id.
func (r *UserRepository) mutateRelation(id string, rel repository.UserRelation, fn func([]string) []string) error {
	if !rel.Valid() {
		return repository.ErrNotFound
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil
	}
	if rel == repository.Following {
		u.FollowingIDs = fn(u.FollowingIDs)
	} else {
		u.FollowerIDs = fn(u.FollowerIDs)
	}
	u.UpdatedAt = r.db.now()
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
