package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Abhinav-2002/Salaried/internal/middleware"
	"github.com/Abhinav-2002/Salaried/internal/server"
	"github.com/labstack/echo/v4"
)

// StorePinger is what the health check needs from the waitlist service.
type StorePinger interface {
	Ping(ctx context.Context) error
	Backend() string
}

// HealthHandler exposes GET /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
	store StorePinger
}

func NewHealthHandler(s *server.Server, store StorePinger) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
		store:   store,
	}
}

// CheckHealth reports overall status plus a store check.
//
//	200 {"status":"healthy",...}   store configured and reachable
//	503 {"status":"unhealthy",...} anything else
//
// With observability.health_checks.enabled=false only liveness is reported.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      make(map[string]interface{}),
	}

	checks := response["checks"].(map[string]interface{})
	isHealthy := true

	obs := h.server.Config.Observability
	if obs.HealthChecks.Enabled {
		ctx, cancel := context.WithTimeout(c.Request().Context(), obs.HealthCheckTimeout())
		defer cancel()

		storeStart := time.Now()

		if err := h.store.Ping(ctx); err != nil {
			isHealthy = false

			checks["store"] = map[string]interface{}{
				"status":        "unhealthy",
				"backend":       h.store.Backend(),
				"response_time": time.Since(storeStart).String(),
				"error":         err.Error(),
			}

			logger.Error().
				Err(err).
				Dur("response_time", time.Since(storeStart)).
				Msg("store health check failed")

			h.recordHealthCheckError(map[string]interface{}{
				"check_type":       "store",
				"backend":          h.store.Backend(),
				"operation":        "health_check",
				"error_type":       "store_unhealthy",
				"response_time_ms": time.Since(storeStart).Milliseconds(),
				"error_message":    err.Error(),
			})
		} else {
			checks["store"] = map[string]interface{}{
				"status":        "healthy",
				"backend":       h.store.Backend(),
				"response_time": time.Since(storeStart).String(),
			}

			logger.Debug().
				Dur("response_time", time.Since(storeStart)).
				Msg("store health check passed")
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")

		h.recordHealthCheckError(map[string]interface{}{
			"check_type":    "response",
			"operation":     "health_check",
			"error_type":    "json_response_error",
			"error_message": err.Error(),
		})

		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

func (h *HealthHandler) recordHealthCheckError(attrs map[string]interface{}) {
	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", attrs)
	}
}
