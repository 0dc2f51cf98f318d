package handler

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/noteful/internal/middleware"
	"github.com/deppfellow/noteful/internal/server"
)

// HealthHandler serves GET /status for load balancers and uptime checks.
type HealthHandler struct {
	Handler
}

// NewHealthHandler creates the /status handler.
func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// HealthCheck is the outcome of one dependency check.
type HealthCheck struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time,omitempty"`
	Driver       string `json:"driver,omitempty"`
	Error        string `json:"error,omitempty"`
}

// HealthResponse is the body of GET /status.
type HealthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]HealthCheck `json:"checks"`
}

// CheckHealth answers 200 when every configured check passes and 503
// otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().Str("operation", "health_check").Logger()
	cfg := h.server.Config.Observability.HealthChecks

	response := HealthResponse{
		Status:      "healthy",
		Timestamp:   start.UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]HealthCheck),
	}

	if cfg.Enabled && slices.Contains(cfg.Checks, "database") {
		check := h.checkDatabase(c.Request().Context(), cfg.Timeout)
		response.Checks["database"] = check

		if check.Status != "healthy" {
			response.Status = "unhealthy"
			logger.Error().Str("error", check.Error).Msg("database health check failed")

			if app := h.server.LoggerService.GetApplication(); app != nil {
				app.RecordCustomEvent("HealthCheckError", map[string]any{
					"check_type":    "database",
					"error_message": check.Error,
				})
			}
		}
	}

	if response.Status != "healthy" {
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().Dur("total_duration", time.Since(start)).Msg("health check passed")
	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) checkDatabase(ctx context.Context, timeout time.Duration) HealthCheck {
	driver := h.server.Config.Database.Driver
	if h.server.DB == nil {
		return HealthCheck{Status: "healthy", Driver: driver}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	if err := h.server.DB.Ping(ctx); err != nil {
		return HealthCheck{
			Status:       "unhealthy",
			ResponseTime: time.Since(start).String(),
			Driver:       driver,
			Error:        err.Error(),
		}
	}

	return HealthCheck{
		Status:       "healthy",
		ResponseTime: time.Since(start).String(),
		Driver:       driver,
	}
}
