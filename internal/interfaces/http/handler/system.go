package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/erp/suratjalan/internal/interfaces/http/dto"
)

// SystemInfo identifies the running service
type SystemInfo struct {
	Name      string
	Version   string
	Engine    string
	Telemetry TelemetryStatus
}

// TelemetryStatus reports which observability pipelines are exporting
type TelemetryStatus struct {
	Tracing      bool `json:"tracing"`
	Metrics      bool `json:"metrics"`
	Logs         bool `json:"logs"`
	Profiling    bool `json:"profiling"`
	SpanProfiles bool `json:"span_profiles"`
}

// SystemHandler handles system-related API endpoints
type SystemHandler struct {
	BaseHandler
	info      SystemInfo
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(info SystemInfo) *SystemHandler {
	return &SystemHandler{
		info:      info,
		startTime: time.Now(),
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string          `json:"name"`
	Version   string          `json:"version"`
	Engine    string          `json:"engine"`
	GoVersion string          `json:"go_version"`
	Uptime    string          `json:"uptime"`
	Telemetry TelemetryStatus `json:"telemetry"`
}

// GetSystemInfo returns version, PDF engine, uptime and telemetry status
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	info := SystemInfoResponse{
		Name:      h.info.Name,
		Version:   h.info.Version,
		Engine:    h.info.Engine,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Telemetry: h.info.Telemetry,
	}

	h.Success(c, info)
}

// PingResponse represents the ping response
type PingResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Ping answers with pong and the server time
func (h *SystemHandler) Ping(c *gin.Context) {
	response := PingResponse{
		Message:   "pong",
		Timestamp: time.Now().Format(time.RFC3339),
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// Health reports liveness outside the versioned API
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"engine": h.info.Engine,
	})
}
