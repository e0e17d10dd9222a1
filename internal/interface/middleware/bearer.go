package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

type bearerKey struct{}

// WithBearer stores the raw Authorization header value on ctx.
func WithBearer(ctx context.Context, header string) context.Context {
	return context.WithValue(ctx, bearerKey{}, strings.TrimSpace(header))
}

// BearerFromContext returns the Authorization header captured by Bearer, or "".
func BearerFromContext(ctx context.Context) string {
	v, _ := ctx.Value(bearerKey{}).(string)
	return v
}

// Bearer copies the Authorization header onto the request context so that
// resolvers further down can authenticate on demand. It never rejects a request;
// public operations must keep working without a token.
func Bearer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h := c.GetHeader("Authorization"); h != "" {
			c.Request = c.Request.WithContext(WithBearer(c.Request.Context(), h))
		}
		c.Next()
	}
}
