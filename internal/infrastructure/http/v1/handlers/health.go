package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"procurement/internal/infrastructure/http/v1/dto"
)

// Version is reported by the info endpoint; overridden at link time.
var Version = "dev"

// Pinger is implemented by storage backends that can report readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Counter reports how many acquisitions are held.
type Counter interface {
	Count(ctx context.Context) int
}

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	storage     Pinger
	driver      string
	counter     Counter
	authEnabled bool
}

// HealthConfig configures the health handler.
type HealthConfig struct {
	Storage     Pinger
	Driver      string
	Counter     Counter
	AuthEnabled bool
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(cfg HealthConfig) *HealthHandler {
	return &HealthHandler{
		storage:     cfg.Storage,
		driver:      cfg.Driver,
		counter:     cfg.Counter,
		authEnabled: cfg.AuthEnabled,
	}
}

// Live handles liveness probe (is the process alive?).
// GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// Ready handles readiness probe (can the storage be reached?).
// GET /health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.storage != nil {
		if err := h.storage.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{
				Status: "error",
				Checks: map[string]string{"storage": "unhealthy: " + err.Error()},
			})
			return
		}
	}

	c.JSON(http.StatusOK, dto.HealthResponse{
		Status: "ok",
		Checks: map[string]string{"storage": "healthy"},
	})
}

// Info returns application information.
// GET /health/info
func (h *HealthHandler) Info(c *gin.Context) {
	resp := dto.InfoResponse{
		App:         "procurement",
		Version:     Version,
		Storage:     h.driver,
		AuthEnabled: h.authEnabled,
	}
	if h.counter != nil {
		resp.Acquisitions = h.counter.Count(c.Request.Context())
	}
	c.JSON(http.StatusOK, resp)
}
