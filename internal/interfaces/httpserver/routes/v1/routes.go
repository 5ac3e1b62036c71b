package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/kinai9661/AIPro/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates API route registration.
type Routes struct {
	handlers *handlers.Provider
}

func NewRoutes(provider *handlers.Provider) *Routes {
	return &Routes{handlers: provider}
}

// Register attaches the /api routes and the OpenAI style alias.
func (r *Routes) Register(router gin.IRouter) {
	api := router.Group("/api")
	api.POST("/generate", r.handlers.Generation.Generate)
	api.GET("/health", r.handlers.Health.Health)
	api.GET("/models", r.handlers.Catalog.Models)
	api.GET("/styles", r.handlers.Catalog.Styles)
	api.GET("/schema", r.handlers.Catalog.Schema)
	api.POST("/cache/clear", r.handlers.Cache.Clear)
	api.GET("/usage", r.handlers.Usage.Summary)

	v1 := router.Group("/v1")
	v1.POST("/images/generations", r.handlers.Generation.Generate)
	v1.GET("/models", r.handlers.Catalog.Models)
}
