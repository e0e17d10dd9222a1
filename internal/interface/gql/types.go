package gql

import (
	"context"
	"time"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/oksasatya/icook-api/internal/application"
	"github.com/oksasatya/icook-api/internal/domain/entity"
)

func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

type userResolver struct {
	u    *entity.User
	root *Resolver
}

func (u *userResolver) ID() graphql.ID        { return graphql.ID(u.u.ID) }
func (u *userResolver) Name() string          { return u.u.Name }
func (u *userResolver) Email() string         { return u.u.Email }
func (u *userResolver) CreatedAt() string     { return timestamp(u.u.CreatedAt) }
func (u *userResolver) FollowingCount() int32 { return int32(len(u.u.FollowingIDs)) }
func (u *userResolver) FollowersCount() int32 { return int32(len(u.u.FollowerIDs)) }

func (u *userResolver) Avatar() *string {
	if u.u.Avatar == "" {
		return nil
	}
	return &u.u.Avatar
}

// Following returns the expanded list when the read populated it and loads
// it on demand below that depth.
func (u *userResolver) Following(ctx context.Context) ([]*userResolver, error) {
	return u.root.related(ctx, "user.following", u.u.Following, u.u.FollowingIDs)
}

func (u *userResolver) Followers(ctx context.Context) ([]*userResolver, error) {
	return u.root.related(ctx, "user.followers", u.u.Followers, u.u.FollowerIDs)
}

func (r *Resolver) related(ctx context.Context, op string, populated []*entity.User, ids []string) ([]*userResolver, error) {
	if populated != nil {
		return r.users(populated), nil
	}
	list, err := r.svc.Users.Many(ctx, ids)
	if err != nil {
		return nil, r.fail(ctx, op, err)
	}
	return r.users(list), nil
}

type stepResolver struct {
	s entity.Step
}

func (s *stepResolver) StepNumber() int32   { return int32(s.s.Number) }
func (s *stepResolver) Description() string { return s.s.Description }

type recipeResolver struct {
	r    *entity.Recipe
	root *Resolver
}

func (r *recipeResolver) ID() graphql.ID              { return graphql.ID(r.r.ID) }
func (r *recipeResolver) Name() string                { return r.r.Name }
func (r *recipeResolver) Description() string         { return r.r.Description }
func (r *recipeResolver) Duration() int32             { return int32(r.r.Duration) }
func (r *recipeResolver) Images() []string            { return nonNil(r.r.Images) }
func (r *recipeResolver) Ingredients() []string       { return nonNil(r.r.Ingredients) }
func (r *recipeResolver) Category() *categoryResolver { return category(r.r.Category) }
func (r *recipeResolver) CreatedAt() string           { return timestamp(r.r.CreatedAt) }
func (r *recipeResolver) UpdatedAt() string           { return timestamp(r.r.UpdatedAt) }

// Steps are always returned in ascending step number order. Sibling fields
// resolve concurrently, so the shared recipe is never sorted in place.
func (r *recipeResolver) Steps() []*stepResolver {
	steps := entity.SortedSteps(r.r.Steps)
	out := make([]*stepResolver, 0, len(steps))
	for _, s := range steps {
		out = append(out, &stepResolver{s: s})
	}
	return out
}

// Author is null once the author's account is gone.
func (r *recipeResolver) Author(ctx context.Context) (*userResolver, error) {
	return r.root.author(ctx, "recipe.author", r.r.Author, r.r.AuthorID)
}

func (r *recipeResolver) Likes(ctx context.Context) ([]*userResolver, error) {
	return r.root.related(ctx, "recipe.likes", r.r.Likes, r.r.LikeIDs)
}

func (r *Resolver) author(ctx context.Context, op string, populated *entity.User, id string) (*userResolver, error) {
	if populated != nil || id == "" {
		return r.user(populated), nil
	}
	list, err := r.svc.Users.Many(ctx, []string{id})
	if err != nil {
		return nil, r.fail(ctx, op, err)
	}
	if len(list) == 0 {
		return nil, nil
	}
	return r.user(list[0]), nil
}

type categoryResolver struct {
	c *entity.Category
}

func (c *categoryResolver) ID() graphql.ID { return graphql.ID(c.c.ID) }
func (c *categoryResolver) Name() string   { return c.c.Name }

type commentResolver struct {
	c    *entity.Comment
	root *Resolver
}

func (c *commentResolver) ID() graphql.ID     { return graphql.ID(c.c.ID) }
func (c *commentResolver) Content() string    { return c.c.Content }
func (c *commentResolver) Recipe() graphql.ID { return graphql.ID(c.c.RecipeID) }
func (c *commentResolver) CreatedAt() string  { return timestamp(c.c.CreatedAt) }
func (c *commentResolver) UpdatedAt() string  { return timestamp(c.c.UpdatedAt) }

func (c *commentResolver) Author(ctx context.Context) (*userResolver, error) {
	return c.root.author(ctx, "comment.author", c.c.Author, c.c.AuthorID)
}

func (c *commentResolver) Likes(ctx context.Context) ([]*userResolver, error) {
	return c.root.related(ctx, "comment.likes", c.c.Likes, c.c.LikeIDs)
}

type loginResolver struct {
	res  *application.LoginResult
	root *Resolver
}

func (l *loginResolver) AuthToken() string       { return l.res.Token }
func (l *loginResolver) ExpiresAt() string       { return timestamp(l.res.ExpiresAt) }
func (l *loginResolver) UserInfo() *userResolver { return l.root.user(l.res.User) }

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
