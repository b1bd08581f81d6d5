package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// HealthChecker reports failing components keyed by name
type HealthChecker interface {
	HealthCheck(ctx context.Context) map[string]error
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status     string            `json:"status"`
	Database   string            `json:"database"`
	Uptime     string            `json:"uptime"`
	Components map[string]string `json:"components,omitempty"`
	System     SystemStats       `json:"system"`
}

// SystemStats holds process and host figures
type SystemStats struct {
	MemoryUsedPercent float64 `json:"memory_used_percent"`
	CPUPercent        float64 `json:"cpu_percent"`
	Goroutines        int     `json:"goroutines"`
}

// HealthHandler serves GET /health
type HealthHandler struct {
	checker HealthChecker
	started time.Time
}

// NewHealthHandler creates a health handler
func NewHealthHandler(checker HealthChecker, started time.Time) *HealthHandler {
	return &HealthHandler{checker: checker, started: started}
}

// GetHealth answers 200 when every component is healthy and 503 otherwise
func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:   "ok",
		Database: "ok",
		Uptime:   time.Since(h.started).Round(time.Second).String(),
		System:   systemStats(ctx),
	}

	failures := h.checker.HealthCheck(ctx)
	if len(failures) > 0 {
		resp.Status = "degraded"
		resp.Components = make(map[string]string, len(failures))
		for name, err := range failures {
			resp.Components[name] = err.Error()
		}
		if _, bad := failures["system.catalog"]; bad {
			resp.Database = "unavailable"
		}
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}

// systemStats collects host figures; unavailable values are left at zero
func systemStats(ctx context.Context) SystemStats {
	stats := SystemStats{Goroutines: runtime.NumGoroutine()}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		stats.MemoryUsedPercent = vm.UsedPercent
	}
	if pct, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pct) > 0 {
		stats.CPUPercent = pct[0]
	}
	return stats
}
