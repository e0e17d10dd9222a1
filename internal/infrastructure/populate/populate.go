// Package populate resolves stored document references into full documents
// after a read. Both store drivers share it so expansion behaves the same
// regardless of backend.
//
// References that no longer resolve (deleted documents) are dropped from
// lists and left nil on single-valued fields.
package populate

import (
	"context"
	"fmt"

	"github.com/oksasatya/icook-api/internal/domain/entity"
	"github.com/oksasatya/icook-api/internal/domain/repository"
)

type UserLoader interface {
	GetMany(ctx context.Context, ids []string) ([]*entity.User, error)
}

type CategoryLoader interface {
	GetMany(ctx context.Context, ids []string) ([]*entity.Category, error)
}

// Users expands following/followers on every user in list.
func Users(ctx context.Context, users UserLoader, list []*entity.User, specs []repository.Populate) error {
	for _, spec := range specs {
		var pick func(u *entity.User) []string
		var assign func(u *entity.User, resolved []*entity.User)
		switch spec.Path {
		case string(repository.Following):
			pick = func(u *entity.User) []string { return u.FollowingIDs }
			assign = func(u *entity.User, r []*entity.User) { u.Following = r }
		case string(repository.Followers):
			pick = func(u *entity.User) []string { return u.FollowerIDs }
			assign = func(u *entity.User, r []*entity.User) { u.Followers = r }
		default:
			return fmt.Errorf("populate: unknown user path %q", spec.Path)
		}

		byID, err := loadUsers(ctx, users, collect(list, pick))
		if err != nil {
			return err
		}
		var resolvedAll []*entity.User
		for _, u := range list {
			resolved := resolveUsers(byID, pick(u))
			assign(u, resolved)
			resolvedAll = append(resolvedAll, resolved...)
		}
		if len(spec.Nested) > 0 && len(resolvedAll) > 0 {
			if err := Users(ctx, users, resolvedAll, spec.Nested); err != nil {
				return err
			}
		}
	}
	return nil
}

// Recipes expands author, category and likes.
func Recipes(ctx context.Context, users UserLoader, categories CategoryLoader, list []*entity.Recipe, specs []repository.Populate) error {
	for _, spec := range specs {
		switch spec.Path {
		case "author":
			ids := make([]string, 0, len(list))
			for _, r := range list {
				ids = append(ids, r.AuthorID)
			}
			byID, err := loadUsers(ctx, users, ids)
			if err != nil {
				return err
			}
			var resolved []*entity.User
			for _, r := range list {
				if u, ok := byID[r.AuthorID]; ok {
					r.Author = u.Clone()
					resolved = append(resolved, r.Author)
				} else {
					r.Author = nil
				}
			}
			if err := nested(ctx, users, resolved, spec); err != nil {
				return err
			}
		case "category":
			if categories == nil {
				return fmt.Errorf("populate: no category loader")
			}
			ids := make([]string, 0, len(list))
			for _, r := range list {
				if r.CategoryID != "" {
					ids = append(ids, r.CategoryID)
				}
			}
			cats, err := categories.GetMany(ctx, dedupe(ids))
			if err != nil {
				return err
			}
			byID := make(map[string]*entity.Category, len(cats))
			for _, c := range cats {
				byID[c.ID] = c
			}
			for _, r := range list {
				r.Category = byID[r.CategoryID].Clone()
			}
		case "likes":
			pick := func(r *entity.Recipe) []string { return r.LikeIDs }
			ids := make([]string, 0)
			for _, r := range list {
				ids = append(ids, pick(r)...)
			}
			byID, err := loadUsers(ctx, users, ids)
			if err != nil {
				return err
			}
			var resolvedAll []*entity.User
			for _, r := range list {
				r.Likes = resolveUsers(byID, r.LikeIDs)
				resolvedAll = append(resolvedAll, r.Likes...)
			}
			if err := nested(ctx, users, resolvedAll, spec); err != nil {
				return err
			}
		default:
			return fmt.Errorf("populate: unknown recipe path %q", spec.Path)
		}
	}
	return nil
}

// Comments expands author and likes.
func Comments(ctx context.Context, users UserLoader, list []*entity.Comment, specs []repository.Populate) error {
	for _, spec := range specs {
		switch spec.Path {
		case "author":
			ids := make([]string, 0, len(list))
			for _, c := range list {
				ids = append(ids, c.AuthorID)
			}
			byID, err := loadUsers(ctx, users, ids)
			if err != nil {
				return err
			}
			var resolved []*entity.User
			for _, c := range list {
				if u, ok := byID[c.AuthorID]; ok {
					c.Author = u.Clone()
					resolved = append(resolved, c.Author)
				} else {
					c.Author = nil
				}
			}
			if err := nested(ctx, users, resolved, spec); err != nil {
				return err
			}
		case "likes":
			ids := make([]string, 0)
			for _, c := range list {
				ids = append(ids, c.LikeIDs...)
			}
			byID, err := loadUsers(ctx, users, ids)
			if err != nil {
				return err
			}
			var resolvedAll []*entity.User
			for _, c := range list {
				c.Likes = resolveUsers(byID, c.LikeIDs)
				resolvedAll = append(resolvedAll, c.Likes...)
			}
			if err := nested(ctx, users, resolvedAll, spec); err != nil {
				return err
			}
		default:
			return fmt.Errorf("populate: unknown comment path %q", spec.Path)
		}
	}
	return nil
}

func nested(ctx context.Context, users UserLoader, resolved []*entity.User, spec repository.Populate) error {
	if len(spec.Nested) == 0 || len(resolved) == 0 {
		return nil
	}
	return Users(ctx, users, resolved, spec.Nested)
}

func loadUsers(ctx context.Context, users UserLoader, ids []string) (map[string]*entity.User, error) {
	ids = dedupe(ids)
	byID := make(map[string]*entity.User, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}
	found, err := users.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, u := range found {
		byID[u.ID] = u
	}
	return byID, nil
}

// resolveUsers keeps the stored reference order and skips dangling ids.
func resolveUsers(byID map[string]*entity.User, ids []string) []*entity.User {
	out := make([]*entity.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			out = append(out, u.Clone())
		}
	}
	return out
}

func collect(list []*entity.User, pick func(u *entity.User) []string) []string {
	var ids []string
	for _, u := range list {
		ids = append(ids, pick(u)...)
	}
	return ids
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
