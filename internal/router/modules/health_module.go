package modules

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/oksasatya/icook-api/internal/container"
	"github.com/oksasatya/icook-api/pkg/helpers"
	"github.com/oksasatya/icook-api/pkg/response"
)

type HealthModule struct {
	c *container.Container
}

func NewHealthModule(c *container.Container) *HealthModule { return &HealthModule{c: c} }

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", m.health)
}

// health reports each configured backend. Only the document store failing
// makes the service unhealthy; the rest are optional.
func (m *HealthModule) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{"store": "ok"}
	status := http.StatusOK
	if m.c.Mongo != nil {
		if err := m.c.Mongo.Ping(ctx, readpref.Primary()); err != nil {
			checks["store"] = "down"
			status = http.StatusServiceUnavailable
		}
	} else {
		checks["store"] = "memory"
	}
	checks["redis"] = "disabled"
	if m.c.Redis != nil {
		checks["redis"] = "ok"
		if err := m.c.Redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = "down"
		}
	}
	checks["search"] = "disabled"
	if m.c.ES != nil {
		checks["search"] = "ok"
		if err := helpers.PingES(ctx, m.c.ES, time.Second); err != nil {
			checks["search"] = "down"
		}
	}

	if status != http.StatusOK {
		response.Error[any](c, status, "unhealthy", checks)
		return
	}
	response.Success(c, status, checks, "healthy")
}
