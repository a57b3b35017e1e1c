// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API routes,
// mapping specific paths to their corresponding handlers
package router

import (
	"net/http"

	"github.com/Abhinav-2002/Salaried/internal/handler"
	"github.com/Abhinav-2002/Salaried/internal/middleware"
	"github.com/Abhinav-2002/Salaried/internal/model"
	"github.com/Abhinav-2002/Salaried/internal/server"
	"github.com/Abhinav-2002/Salaried/internal/service"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the echo instance with global middleware, the global
// error handler, system routes and the API routes.
func NewRouter(s *server.Server, h *handler.Handlers, services *service.Services) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// Order matters: the request ID and the New Relic transaction must exist
	// before the context logger is built, and Recover sits innermost so a
	// panicking handler still gets logged and answered.
	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middlewares.Global.BodyLimit(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)
	registerWaitlistRoutes(router, h, middlewares, services)

	return router
}

// registerWaitlistRoutes mounts the signup endpoint.
//
// It is registered for every method so non-POST requests get the JSON 405
// with an Allow header instead of echo's default. The store guard runs
// before the body is read.
func registerWaitlistRoutes(r *echo.Echo, h *handler.Handlers, m *middleware.Middlewares, services *service.Services) {
	api := r.Group("/api")

	api.Any("/waitlist",
		handler.Handle[model.SignupRequest, *model.SignupRequest, *model.SignupResponse](
			h.Waitlist.Handler,
			h.Waitlist.Join,
			http.StatusOK,
		),
		m.Guards.AllowMethods(http.MethodPost),
		m.Guards.RequireStore(services.Waitlist),
	)
}
