package router

import "github.com/gin-gonic/gin"

// Module mounts one feature's routes on the group it is given.
type Module interface {
	Register(rg *gin.RouterGroup)
}

type mounted struct {
	mod Module
	mw  []gin.HandlerFunc
}

// Registry collects modules and mounts them on the engine root. Middleware
// passed to Use applies to every module; middleware passed to Add applies
// only to that module's routes.
type Registry struct {
	Engine *gin.Engine
	Root   *gin.RouterGroup

	middlewares []gin.HandlerFunc
	modules     []mounted
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine, Root: engine.Group("/")}
}

func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module, mw ...gin.HandlerFunc) {
	r.modules = append(r.modules, mounted{mod: mod, mw: mw})
}

func (r *Registry) RegisterAll() {
	if len(r.middlewares) > 0 {
		r.Root.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		rg := r.Root
		if len(m.mw) > 0 {
			rg = r.Root.Group("", m.mw...)
		}
		m.mod.Register(rg)
	}
}
