package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports whether the process and its backing stores respond.
// Redis is optional: a nil client is reported as "disabled".
type HealthHandler struct {
	DB    Pinger
	Redis *redis.Client
}

// Health handles GET /healthz.  MySQL being down yields 503; Redis being down
// only degrades the report because every Redis feature fails open.
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := map[string]string{"mysql": "ok", "redis": "disabled"}
	if h.DB != nil {
		if err := h.DB.PingContext(ctx); err != nil {
			c.Logger().Warnf("healthz: mysql: %v", err)
			checks["mysql"] = "down"
			status = http.StatusServiceUnavailable
		}
	}
	if h.Redis != nil {
		checks["redis"] = "ok"
		if err := h.Redis.Ping(ctx).Err(); err != nil {
			c.Logger().Warnf("healthz: redis: %v", err)
			checks["redis"] = "down"
		}
	}
	return c.JSON(status, echo.Map{"success": status == http.StatusOK, "data": checks})
}
