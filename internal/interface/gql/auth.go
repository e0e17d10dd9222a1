package gql

import (
	"context"

	"github.com/oksasatya/icook-api/internal/application"
	"github.com/oksasatya/icook-api/internal/domain/entity"
	"github.com/oksasatya/icook-api/internal/interface/middleware"
	"github.com/oksasatya/icook-api/pkg/apperr"
)

type identityKey struct{}

func WithIdentity(ctx context.Context, id entity.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the caller resolved by withAuth, if any.
func IdentityFrom(ctx context.Context) (entity.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(entity.Identity)
	return id, ok && !id.IsZero()
}

// withAuth turns h into a handler that first resolves the caller from the
// bearer credential on ctx. Without a credential h never runs and neither
// the verifier nor the store is consulted.
func withAuth[A, R any](v application.Verifier, h func(context.Context, entity.Identity, A) (R, error)) func(context.Context, A) (R, error) {
	return func(ctx context.Context, args A) (R, error) {
		var zero R
		bearer := middleware.BearerFromContext(ctx)
		if application.StripBearer(bearer) == "" {
			return zero, apperr.Unauthenticated("user is not authenticated")
		}
		id, err := v.Verify(ctx, bearer)
		if err != nil {
			return zero, apperr.TokenUnresolved(bearer, err)
		}
		ctx = WithIdentity(ctx, id)
		return h(ctx, id, args)
	}
}
