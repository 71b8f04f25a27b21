package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ignashub/ictperfect-tool2/internal/repository"
)

// HealthHandler reports service and storage health
type HealthHandler struct {
	store       HealthChecker
	monitor     *repository.StorageMonitor
	storageName string
}

// NewHealthHandler creates a health handler; store and monitor may be nil
func NewHealthHandler(store HealthChecker, monitor *repository.StorageMonitor, storageName string) *HealthHandler {
	if storageName == "" {
		storageName = "memory"
	}
	return &HealthHandler{store: store, monitor: monitor, storageName: storageName}
}

// GetHealth returns 200 when the store answers and recent operations look
// healthy, 503 otherwise
func (h *HealthHandler) GetHealth(c *gin.Context) {
	status := http.StatusOK
	body := gin.H{
		"status":    "healthy",
		"storage":   h.storageName,
		"timestamp": time.Now().UTC(),
	}

	if h.store != nil {
		if err := h.store.HealthCheck(); err != nil {
			status = http.StatusServiceUnavailable
			body["status"] = "unhealthy"
			body["error"] = "storage unavailable"
		}
	}

	if h.monitor != nil {
		ops := h.monitor.Status()
		body["operations"] = ops
		if !ops.IsHealthy {
			status = http.StatusServiceUnavailable
			body["status"] = "unhealthy"
		}
	}

	c.JSON(status, body)
}
