package middleware

import (
	"github.com/Abhinav-2002/Salaried/internal/server"
)

// Middlewares groups every middleware component so router setup receives
// one object. Each is built once and shared.
type Middlewares struct {
	// Global: CORS, secure headers, body limit, request log, recovery and
	// the global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer attaches the request-scoped logger.
	ContextEnhancer *ContextEnhancer

	// Tracing is the New Relic integration.
	Tracing *TracingMiddleware

	// Guards are per-route checks (allowed methods, store readiness).
	Guards *RequestGuards
}

// NewMiddlewares builds all middleware. Without New Relic the tracing
// middleware is a pass-through.
func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, s.LoggerService.GetApplication()),
		Guards:          NewRequestGuards(s),
	}
}
