package gql

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/oksasatya/icook-api/internal/domain/entity"
)

type commentIDArgs struct {
	IDComment graphql.ID
}

type postCommentArgs struct {
	IDRecipe graphql.ID
	Info     struct{ Content string }
}

type editCommentInput struct {
	IDComment graphql.ID
	Content   string
}

func (r *Resolver) CommentsByRecipe(ctx context.Context, args recipeIDArgs) ([]*commentResolver, error) {
	list, err := r.svc.Comments.ByRecipe(ctx, string(args.IDRecipe))
	if err != nil {
		return nil, r.fail(ctx, "commentsByRecipe", err)
	}
	return r.comments(list), nil
}

func (r *Resolver) CommentsCountByRecipe(ctx context.Context, args recipeIDArgs) (int32, error) {
	n, err := r.svc.Comments.CountByRecipe(ctx, string(args.IDRecipe))
	if err != nil {
		return 0, r.fail(ctx, "commentsCountByRecipe", err)
	}
	return int32(n), nil
}

func (r *Resolver) AllComments(ctx context.Context) ([]*commentResolver, error) {
	list, err := r.svc.Comments.All(ctx)
	if err != nil {
		return nil, r.fail(ctx, "allComments", err)
	}
	return r.comments(list), nil
}

func (r *Resolver) AllCommentsCount(ctx context.Context) (int32, error) {
	n, err := r.svc.Comments.Count(ctx)
	if err != nil {
		return 0, r.fail(ctx, "allCommentsCount", err)
	}
	return int32(n), nil
}

func (r *Resolver) PostComment(ctx context.Context, args postCommentArgs) (*commentResolver, error) {
	return authed(ctx, r, "postComment", args, func(ctx context.Context, id entity.Identity, a postCommentArgs) (*commentResolver, error) {
		c, err := r.svc.Comments.Post(ctx, id, string(a.IDRecipe), a.Info.Content)
		if err != nil {
			return nil, err
		}
		return r.comment(c), nil
	})
}

func (r *Resolver) EditComment(ctx context.Context, args struct{ Info editCommentInput }) (*commentResolver, error) {
	return authed(ctx, r, "editComment", args.Info, func(ctx context.Context, id entity.Identity, in editCommentInput) (*commentResolver, error) {
		c, err := r.svc.Comments.Edit(ctx, id, string(in.IDComment), in.Content)
		if err != nil {
			return nil, err
		}
		return r.comment(c), nil
	})
}

func (r *Resolver) DeleteComment(ctx context.Context, args commentIDArgs) (*deleteResponse, error) {
	return authed(ctx, r, "deleteComment", args, func(ctx context.Context, id entity.Identity, a commentIDArgs) (*deleteResponse, error) {
		if err := r.svc.Comments.Delete(ctx, id, string(a.IDComment)); err != nil {
			return nil, err
		}
		return &deleteResponse{message: "comment deleted"}, nil
	})
}

func (r *Resolver) LikeComment(ctx context.Context, args commentIDArgs) (*commentResolver, error) {
	return authed(ctx, r, "likeComment", args, func(ctx context.Context, id entity.Identity, a commentIDArgs) (*commentResolver, error) {
		c, err := r.svc.Relations.LikeComment(ctx, id, string(a.IDComment))
		if err != nil {
			return nil, err
		}
		return r.comment(c), nil
	})
}

func (r *Resolver) UnLikeComment(ctx context.Context, args commentIDArgs) (*commentResolver, error) {
	return authed(ctx, r, "unLikeComment", args, func(ctx context.Context, id entity.Identity, a commentIDArgs) (*commentResolver, error) {
		c, err := r.svc.Relations.UnlikeComment(ctx, id, string(a.IDComment))
		if err != nil {
			return nil, err
		}
		return r.comment(c), nil
	})
}
