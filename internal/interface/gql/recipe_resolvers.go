package gql

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/oksasatya/icook-api/internal/application"
	"github.com/oksasatya/icook-api/internal/domain/entity"
)

type recipeIDArgs struct {
	IDRecipe graphql.ID
}

type categoryIDArgs struct {
	IDCategory graphql.ID
}

type searchArgs struct {
	Query string
	Size  int32
}

type stepInput struct {
	StepNumber  int32
	Description string
}

type recipeInput struct {
	Name        *string
	Description *string
	Duration    *int32
	Images      *[]string
	Category    *graphql.ID
	Ingredients *[]string
	Steps       *[]stepInput
}

type updateRecipeArgs struct {
	IDRecipe graphql.ID
	Info     recipeInput
}

func steps(in []stepInput) []application.StepInput {
	out := make([]application.StepInput, 0, len(in))
	for _, s := range in {
		out = append(out, application.StepInput{Number: int(s.StepNumber), Description: s.Description})
	}
	return out
}

// toCreate fills absent fields with zero values and leaves the rest to validation.
func (in recipeInput) toCreate() application.CreateRecipeInput {
	var out application.CreateRecipeInput
	if in.Name != nil {
		out.Name = *in.Name
	}
	if in.Description != nil {
		out.Description = *in.Description
	}
	if in.Duration != nil {
		out.Duration = int(*in.Duration)
	}
	if in.Images != nil {
		out.Images = *in.Images
	}
	if in.Category != nil {
		out.CategoryID = string(*in.Category)
	}
	if in.Ingredients != nil {
		out.Ingredients = *in.Ingredients
	}
	if in.Steps != nil {
		out.Steps = steps(*in.Steps)
	}
	return out
}

func (in recipeInput) toUpdate() application.UpdateRecipeInput {
	out := application.UpdateRecipeInput{
		Name:        in.Name,
		Description: in.Description,
		Images:      in.Images,
		Ingredients: in.Ingredients,
	}
	if in.Duration != nil {
		d := int(*in.Duration)
		out.Duration = &d
	}
	if in.Category != nil {
		c := string(*in.Category)
		out.CategoryID = &c
	}
	if in.Steps != nil {
		s := steps(*in.Steps)
		out.Steps = &s
	}
	return out
}

func (r *Resolver) RecipeCount(ctx context.Context) (int32, error) {
	n, err := r.svc.Recipes.Count(ctx)
	if err != nil {
		return 0, r.fail(ctx, "recipeCount", err)
	}
	return int32(n), nil
}

func (r *Resolver) AllRecipes(ctx context.Context) ([]*recipeResolver, error) {
	list, err := r.svc.Recipes.All(ctx)
	if err != nil {
		return nil, r.fail(ctx, "allRecipes", err)
	}
	return r.recipes(list), nil
}

func (r *Resolver) FindRecipe(ctx context.Context, args recipeIDArgs) (*recipeResolver, error) {
	rec, err := r.svc.Recipes.Find(ctx, string(args.IDRecipe))
	if err != nil {
		return nil, r.fail(ctx, "findRecipe", err)
	}
	return r.recipe(rec), nil
}

func (r *Resolver) RecipesByCategory(ctx context.Context, args categoryIDArgs) ([]*recipeResolver, error) {
	list, err := r.svc.Recipes.ByCategory(ctx, string(args.IDCategory))
	if err != nil {
		return nil, r.fail(ctx, "recipesByCategory", err)
	}
	return r.recipes(list), nil
}

func (r *Resolver) RecipesByUser(ctx context.Context, args userIDArgs) ([]*recipeResolver, error) {
	list, err := r.svc.Recipes.ByUser(ctx, string(args.IDUser))
	if err != nil {
		return nil, r.fail(ctx, "recipesByUser", err)
	}
	return r.recipes(list), nil
}

func (r *Resolver) SearchRecipes(ctx context.Context, args searchArgs) ([]*recipeResolver, error) {
	list, err := r.svc.Recipes.Search(ctx, args.Query, int(args.Size))
	if err != nil {
		return nil, r.fail(ctx, "searchRecipes", err)
	}
	return r.recipes(list), nil
}

func (r *Resolver) CreateRecipe(ctx context.Context, args struct{ Info recipeInput }) (*recipeResolver, error) {
	return authed(ctx, r, "createRecipe", args.Info, func(ctx context.Context, id entity.Identity, in recipeInput) (*recipeResolver, error) {
		rec, err := r.svc.Recipes.Create(ctx, id, in.toCreate())
		if err != nil {
			return nil, err
		}
		return r.recipe(rec), nil
	})
}

func (r *Resolver) UpdateRecipe(ctx context.Context, args updateRecipeArgs) (*recipeResolver, error) {
	return authed(ctx, r, "updateRecipe", args, func(ctx context.Context, id entity.Identity, a updateRecipeArgs) (*recipeResolver, error) {
		rec, err := r.svc.Recipes.Update(ctx, id, string(a.IDRecipe), a.Info.toUpdate())
		if err != nil {
			return nil, err
		}
		return r.recipe(rec), nil
	})
}

func (r *Resolver) DeleteRecipe(ctx context.Context, args recipeIDArgs) (*deleteResponse, error) {
	return authed(ctx, r, "deleteRecipe", args, func(ctx context.Context, id entity.Identity, a recipeIDArgs) (*deleteResponse, error) {
		if err := r.svc.Recipes.Delete(ctx, id, string(a.IDRecipe)); err != nil {
			return nil, err
		}
		return &deleteResponse{message: "recipe deleted"}, nil
	})
}

func (r *Resolver) LikeRecipe(ctx context.Context, args recipeIDArgs) (*recipeResolver, error) {
	return authed(ctx, r, "likeRecipe", args, func(ctx context.Context, id entity.Identity, a recipeIDArgs) (*recipeResolver, error) {
		rec, err := r.svc.Relations.LikeRecipe(ctx, id, string(a.IDRecipe))
		if err != nil {
			return nil, err
		}
		return r.recipe(rec), nil
	})
}

func (r *Resolver) UnlikeRecipe(ctx context.Context, args recipeIDArgs) (*recipeResolver, error) {
	return authed(ctx, r, "unlikeRecipe", args, func(ctx context.Context, id entity.Identity, a recipeIDArgs) (*recipeResolver, error) {
		rec, err := r.svc.Relations.UnlikeRecipe(ctx, id, string(a.IDRecipe))
		if err != nil {
			return nil, err
		}
		return r.recipe(rec), nil
	})
}
