package modules

import (
	"expvar"

	"github.com/gin-gonic/gin"
)

// DebugModule serves expvar, including the relation_ops counters.
type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/debug/vars", gin.WrapH(expvar.Handler()))
}
