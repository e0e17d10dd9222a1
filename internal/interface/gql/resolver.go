package gql

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/icook-api/internal/application"
	"github.com/oksasatya/icook-api/internal/domain/entity"
)

// Services are the application services the resolvers call into.
type Services struct {
	Users      *application.UserService
	Relations  *application.RelationService
	Recipes    *application.RecipeService
	Comments   *application.CommentService
	Categories *application.CategoryService
	Verifier   application.Verifier
}

// Resolver is the root resolver for both queries and mutations.
type Resolver struct {
	svc    Services
	logger *logrus.Logger
}

func NewResolver(svc Services, logger *logrus.Logger) *Resolver {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Resolver{svc: svc, logger: logger}
}

// authed runs h for the caller behind the request's bearer credential and
// maps any failure for the response.
func authed[A, R any](ctx context.Context, r *Resolver, op string, args A, h func(context.Context, entity.Identity, A) (R, error)) (R, error) {
	res, err := withAuth(r.svc.Verifier, func(ctx context.Context, id entity.Identity, a A) (R, error) {
		res, err := h(ctx, id, a)
		if err != nil {
			return res, r.fail(ctx, op, err)
		}
		return res, nil
	})(ctx, args)
	if err != nil {
		var g *gqlError
		if !errors.As(err, &g) {
			err = r.fail(ctx, op, err)
		}
		return res, err
	}
	return res, nil
}

type deleteResponse struct {
	message string
}

func (d *deleteResponse) Message() string { return d.message }

func (r *Resolver) user(u *entity.User) *userResolver {
	if u == nil {
		return nil
	}
	return &userResolver{u: u, root: r}
}

func (r *Resolver) users(list []*entity.User) []*userResolver {
	out := make([]*userResolver, 0, len(list))
	for _, u := range list {
		out = append(out, r.user(u))
	}
	return out
}

func (r *Resolver) recipe(rec *entity.Recipe) *recipeResolver {
	if rec == nil {
		return nil
	}
	return &recipeResolver{r: rec, root: r}
}

func (r *Resolver) recipes(list []*entity.Recipe) []*recipeResolver {
	out := make([]*recipeResolver, 0, len(list))
	for _, rec := range list {
		out = append(out, r.recipe(rec))
	}
	return out
}

func (r *Resolver) comment(c *entity.Comment) *commentResolver {
	if c == nil {
		return nil
	}
	return &commentResolver{c: c, root: r}
}

func (r *Resolver) comments(list []*entity.Comment) []*commentResolver {
	out := make([]*commentResolver, 0, len(list))
	for _, c := range list {
		out = append(out, r.comment(c))
	}
	return out
}

func category(c *entity.Category) *categoryResolver {
	if c == nil {
		return nil
	}
	return &categoryResolver{c: c}
}
