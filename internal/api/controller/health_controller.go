package controller

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"ctchen222/rehla/internal/api/response"

	"github.com/gin-gonic/gin"
)

const readyTimeout = 2 * time.Second

// Pinger is implemented by *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// OptionalPinger is a dependency that may be switched off.
type OptionalPinger interface {
	Ping(ctx context.Context) error
	Enabled() bool
}

// ReadyResponse reports the state of each dependency.
type ReadyResponse struct {
	OK     bool              `json:"ok"`
	Checks map[string]string `json:"checks"`
}

// HealthController serves liveness and readiness probes.
type HealthController struct {
	db    Pinger
	cache OptionalPinger
}

// NewHealthController creates a new HealthController.
func NewHealthController(db Pinger, cache OptionalPinger) *HealthController {
	return &HealthController{db: db, cache: cache}
}

// Health reports that the process is up.
func (hc *HealthController) Health(c *gin.Context) {
	response.SuccessResponse(c, response.OK{OK: true, Message: "Rehla API is running"})
}

// Ready pings the database and, when enabled, the cache.
func (hc *HealthController) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()

	resp := ReadyResponse{OK: true, Checks: map[string]string{}}

	if err := hc.db.PingContext(ctx); err != nil {
		slog.WarnContext(ctx, "database not ready", "error", err)
		resp.OK = false
		resp.Checks["database"] = "error"
	} else {
		resp.Checks["database"] = "ok"
	}

	switch {
	case hc.cache == nil || !hc.cache.Enabled():
		resp.Checks["cache"] = "disabled"
	case hc.cache.Ping(ctx) != nil:
		resp.OK = false
		resp.Checks["cache"] = "error"
	default:
		resp.Checks["cache"] = "ok"
	}

	status := http.StatusOK
	if !resp.OK {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}
