package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ReadyCheck probes one downstream dependency.
type ReadyCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// HealthHandler serves liveness and readiness.
type HealthHandler struct {
	version string
	checks  []ReadyCheck
}

// NewHealthHandler builds the handler with the dependency probes to run on
// readiness.
func NewHealthHandler(version string, checks ...ReadyCheck) *HealthHandler {
	return &HealthHandler{version: version, checks: checks}
}

// Register mounts the health routes on the engine root.
func (h *HealthHandler) Register(r *gin.Engine) {
	r.GET("/healthz", h.live)
	r.GET("/readyz", h.ready)
}

func (h *HealthHandler) live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": h.version})
}

const readyCheckTimeout = 2 * time.Second

func (h *HealthHandler) ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyCheckTimeout)
	defer cancel()

	results := gin.H{}
	healthy := true
	for _, check := range h.checks {
		if err := check.Check(ctx); err != nil {
			results[check.Name] = err.Error()
			healthy = false
		} else {
			results[check.Name] = "ok"
		}
	}

	status := http.StatusOK
	state := "ready"
	if !healthy {
		status = http.StatusServiceUnavailable
		state = "not_ready"
	}
	c.JSON(status, gin.H{"status": state, "checks": results})
}
