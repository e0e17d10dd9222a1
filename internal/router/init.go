package router

import (
	"fmt"
	"time"

	"github.com/oksasatya/icook-api/internal/container"
	"github.com/oksasatya/icook-api/internal/interface/gql"
	"github.com/oksasatya/icook-api/internal/interface/middleware"
	"github.com/oksasatya/icook-api/internal/router/modules"
)

// InitModules builds every feature module from the container and registers
// it. Call once during startup.
func InitModules(r *Registry, c *container.Container) error {
	schema, err := gql.NewSchema(gql.Services{
		Users:      c.Users,
		Relations:  c.Relations,
		Recipes:    c.Recipes,
		Comments:   c.Comments,
		Categories: c.Categories,
		Verifier:   c.Verifier,
	}, c.Logger)
	if err != nil {
		return fmt.Errorf("graphql schema: %w", err)
	}

	r.Add(modules.NewHealthModule(c))
	r.Add(modules.NewGraphQLModule(gql.NewHandler(schema, c.Logger)),
		middleware.RateLimit(c.Redis, middleware.Limit{
			Max:    c.Config.RateLimitPerMin,
			Window: time.Minute,
			Key:    middleware.KeyByIPAndPath(),
		}))
	if c.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(),
			middleware.RateLimit(c.Redis, middleware.Limit{
				Max:    120,
				Window: time.Minute,
				Key:    middleware.KeyByIP(),
				Allow:  middleware.AllowPrivateIP(),
			}))
	}
	return nil
}
