// routes.go - Route registration and middleware
package api

import (
	"time"

	"dupe-arranger/internal/config"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/health", h.HandleHealth)

	g := e.Group("/api")
	g.POST("/build", h.HandleBuild)
	g.POST("/names", h.HandleNames)
	g.POST("/preview", h.HandlePreview)
}

// SetupMiddleware configures the error handler, request logging, recovery,
// the body limit and a request deadline that engine.Apply observes.
func SetupMiddleware(e *echo.Echo, cfg config.Config) {
	e.HTTPErrorHandler = ErrorHandler

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			return !cfg.RequestLogging || c.Request().URL.Path == "/health"
		},
	}))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10,
	}))
	e.Use(middleware.BodyLimit("1M"))
	e.Use(middleware.ContextTimeout(30 * time.Second))
}

// NewServer returns an Echo instance with middleware and routes in place.
func NewServer(cfg config.Config, version string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	SetupMiddleware(e, cfg)
	RegisterRoutes(e, NewHandler(cfg, version))
	return e
}
