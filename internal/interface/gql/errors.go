package gql

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/icook-api/pkg/apperr"
)

// gqlError is what resolvers hand to the executor. Only the message reaches
// clients; the cause stays in the logs.
type gqlError struct {
	e *apperr.Error
}

func (g *gqlError) Error() string { return g.e.Message }

func (g *gqlError) Unwrap() error { return g.e }

func (g *gqlError) Extensions() map[string]interface{} { return g.e.Extensions() }

// fail classifies err for the response. It returns a nil interface for a nil err.
func (r *Resolver) fail(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	e := apperr.From(err, "unexpected failure")
	if e.Kind == apperr.KindStore || e.Kind == apperr.KindTokenUnresolved {
		fields := logrus.Fields{"op": op, "code": e.Kind.Code()}
		if id, ok := IdentityFrom(ctx); ok {
			fields["user_id"] = id.UserID
		}
		entry := r.logger.WithFields(fields).WithError(e.Err)
		if e.Kind == apperr.KindStore {
			entry.Error(e.Message)
		} else {
			entry.Info(e.Message)
		}
	}
	return &gqlError{e: e}
}

// panicLogger routes resolver panics into logrus.
type panicLogger struct {
	logger *logrus.Logger
}

func (p panicLogger) LogPanic(_ context.Context, value interface{}) {
	p.logger.WithField("panic", value).Error("graphql resolver panicked")
}
