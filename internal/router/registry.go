package router

import "github.com/gin-gonic/gin"

// Module registers a feature's routes on the /api group.
type Module interface {
	Register(rg *gin.RouterGroup)
}

// Registry collects modules and mounts them under /api. Public modules are
// mounted before the shared middleware so they never depend on it.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	public      []Module
	modules     []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	api := engine.Group("/api")
	return &Registry{Engine: engine, API: api}
}

func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

func (r *Registry) AddPublic(mod Module) {
	r.public = append(r.public, mod)
}

func (r *Registry) RegisterAll() {
	for _, m := range r.public {
		m.Register(r.API)
	}
	guarded := r.API.Group("", r.middlewares...)
	for _, m := range r.modules {
		m.Register(guarded)
	}
}
