package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/noteful/internal/handler"
	"github.com/deppfellow/noteful/static"
)

// registerSystemRoutes registers the endpoints outside the resource API:
// health, the docs page and the assets it loads.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
	r.StaticFS("/static", static.Files)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
