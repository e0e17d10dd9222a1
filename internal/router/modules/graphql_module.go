package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/icook-api/internal/interface/gql"
	"github.com/oksasatya/icook-api/internal/interface/middleware"
)

type GraphQLModule struct {
	handler *gql.Handler
}

func NewGraphQLModule(h *gql.Handler) *GraphQLModule {
	return &GraphQLModule{handler: h}
}

// Register mounts POST /graphql. The bearer header is copied onto the
// request context; resolvers decide whether they need it.
func (m *GraphQLModule) Register(rg *gin.RouterGroup) {
	rg.POST("/graphql", middleware.Bearer(), m.handler.Serve)
}
