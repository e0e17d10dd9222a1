package gql

import (
	"net/http"

	"github.com/gin-gonic/gin"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/icook-api/pkg/response"
	"github.com/oksasatya/icook-api/pkg/validation"
)

type Handler struct {
	schema *graphql.Schema
	logger *logrus.Logger
}

func NewHandler(schema *graphql.Schema, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Handler{schema: schema, logger: logger}
}

type request struct {
	Query         string                 `json:"query" binding:"required"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Serve executes one GraphQL request. Field errors still answer 200 with
// an "errors" list; only an unreadable payload is rejected at the HTTP level.
func (h *Handler) Serve(c *gin.Context) {
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res := h.schema.Exec(c.Request.Context(), req.Query, req.OperationName, req.Variables)
	if len(res.Errors) > 0 && res.Data == nil {
		h.logger.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"operation":  req.OperationName,
			"errors":     len(res.Errors),
		}).Debug("graphql request rejected")
	}
	c.JSON(http.StatusOK, res)
}
