package gql

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/oksasatya/icook-api/internal/application"
	"github.com/oksasatya/icook-api/internal/domain/entity"
)

type userIDArgs struct {
	IDUser graphql.ID
}

type createUserInput struct {
	Name     string
	Email    string
	Password string
	Avatar   *string
}

type loginUserInput struct {
	Email    string
	Password string
}

func (r *Resolver) UserCount(ctx context.Context) (int32, error) {
	n, err := r.svc.Users.Count(ctx)
	if err != nil {
		return 0, r.fail(ctx, "userCount", err)
	}
	return int32(n), nil
}

func (r *Resolver) AllUsers(ctx context.Context) ([]*userResolver, error) {
	list, err := r.svc.Users.AllUsers(ctx)
	if err != nil {
		return nil, r.fail(ctx, "allUsers", err)
	}
	return r.users(list), nil
}

func (r *Resolver) FindUser(ctx context.Context, args userIDArgs) (*userResolver, error) {
	u, err := r.svc.Users.FindUser(ctx, string(args.IDUser))
	if err != nil {
		return nil, r.fail(ctx, "findUser", err)
	}
	return r.user(u), nil
}

// Me returns the caller.
func (r *Resolver) Me(ctx context.Context) (*userResolver, error) {
	return authed(ctx, r, "me", struct{}{}, func(ctx context.Context, id entity.Identity, _ struct{}) (*userResolver, error) {
		u, err := r.svc.Users.FindUser(ctx, id.UserID)
		if err != nil {
			return nil, err
		}
		return r.user(u), nil
	})
}

func (r *Resolver) CreateUser(ctx context.Context, args struct{ Credentials createUserInput }) (*userResolver, error) {
	in := application.RegisterInput{
		Name:     args.Credentials.Name,
		Email:    args.Credentials.Email,
		Password: args.Credentials.Password,
	}
	if args.Credentials.Avatar != nil {
		in.Avatar = *args.Credentials.Avatar
	}
	u, err := r.svc.Users.Register(ctx, in)
	if err != nil {
		return nil, r.fail(ctx, "createUser", err)
	}
	return r.user(u), nil
}

func (r *Resolver) LoginUser(ctx context.Context, args struct{ Credentials loginUserInput }) (*loginResolver, error) {
	res, err := r.svc.Users.Login(ctx, args.Credentials.Email, args.Credentials.Password)
	if err != nil {
		return nil, r.fail(ctx, "loginUser", err)
	}
	return &loginResolver{res: res, root: r}, nil
}

func (r *Resolver) DeleteUser(ctx context.Context, args userIDArgs) (*deleteResponse, error) {
	return authed(ctx, r, "deleteUser", args, func(ctx context.Context, id entity.Identity, a userIDArgs) (*deleteResponse, error) {
		if err := r.svc.Users.DeleteAccount(ctx, id, string(a.IDUser)); err != nil {
			return nil, err
		}
		return &deleteResponse{message: "user deleted"}, nil
	})
}

type avatarArgs struct {
	AvatarURI string
}

func (r *Resolver) UpdateAvatar(ctx context.Context, args avatarArgs) (*userResolver, error) {
	return authed(ctx, r, "updateAvatar", args, func(ctx context.Context, id entity.Identity, a avatarArgs) (*userResolver, error) {
		u, err := r.svc.Users.UpdateAvatar(ctx, id, a.AvatarURI)
		if err != nil {
			return nil, err
		}
		return r.user(u), nil
	})
}

func (r *Resolver) FollowUser(ctx context.Context, args userIDArgs) (*userResolver, error) {
	return authed(ctx, r, "followUser", args, func(ctx context.Context, id entity.Identity, a userIDArgs) (*userResolver, error) {
		u, err := r.svc.Relations.Follow(ctx, id, string(a.IDUser))
		if err != nil {
			return nil, err
		}
		return r.user(u), nil
	})
}

func (r *Resolver) UnFollowUser(ctx context.Context, args userIDArgs) (*userResolver, error) {
	return authed(ctx, r, "unFollowUser", args, func(ctx context.Context, id entity.Identity, a userIDArgs) (*userResolver, error) {
		u, err := r.svc.Relations.Unfollow(ctx, id, string(a.IDUser))
		if err != nil {
			return nil, err
		}
		return r.user(u), nil
	})
}
