package middleware

import (
	"strings"

	"github.com/Abhinav-2002/Salaried/internal/errs"
	"github.com/Abhinav-2002/Salaried/internal/server"
	"github.com/labstack/echo/v4"
)

// rejectionEvent is the New Relic custom event recorded when a guard
// turns a request away before it reaches the handler.
const rejectionEvent = "RequestRejected"

// StoreChecker reports whether the backing store can be used at all.
// The returned error is sent to the client as-is.
type StoreChecker interface {
	Check() error
}

// RequestGuards are route-level checks that run before the handler.
type RequestGuards struct {
	server *server.Server
}

func NewRequestGuards(s *server.Server) *RequestGuards {
	return &RequestGuards{
		server: s,
	}
}

// AllowMethods answers 405 {"error":"Method not allowed"} with an Allow
// header for any method not listed. Use it on routes registered with Any.
func (g *RequestGuards) AllowMethods(methods ...string) echo.MiddlewareFunc {
	allow := strings.Join(methods, ", ")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			method := c.Request().Method
			for _, m := range methods {
				if method == m {
					return next(c)
				}
			}

			c.Response().Header().Set(echo.HeaderAllow, allow)
			g.recordRejection(c, "method_not_allowed")

			return errs.NewMethodNotAllowedError("Method not allowed")
		}
	}
}

// RequireStore fails every request while the store is misconfigured,
// before the body is even read, so a broken deployment answers the same
// way to every client.
func (g *RequestGuards) RequireStore(store StoreChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := store.Check(); err != nil {
				g.recordRejection(c, "store_unavailable")
				return err
			}
			return next(c)
		}
	}
}

func (g *RequestGuards) recordRejection(c echo.Context, reason string) {
	app := g.server.LoggerService.GetApplication()
	if app == nil {
		return
	}

	app.RecordCustomEvent(rejectionEvent, map[string]interface{}{
		"reason":   reason,
		"method":   c.Request().Method,
		"endpoint": c.Path(),
	})
}
