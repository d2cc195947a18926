package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/edusite/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// healthTimeout bounds the database checks of a health request
const healthTimeout = 2 * time.Second

// Pinger checks that the database answers
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProductCounter reports how many products are stored
type ProductCounter interface {
	Count(ctx context.Context) (int64, error)
}

// SystemHandler serves health, ping and build information
type SystemHandler struct {
	BaseHandler
	name      string
	version   string
	db        Pinger
	products  ProductCounter
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(name, version string, db Pinger, products ProductCounter, logger *zap.Logger) *SystemHandler {
	return &SystemHandler{
		BaseHandler: BaseHandler{logger: logger},
		name:        name,
		version:     version,
		db:          db,
		products:    products,
		startTime:   time.Now(),
	}
}

// SystemInfoResponse represents the system information response
// @name HandlerSystemInfoResponse
type SystemInfoResponse struct {
	Name      string `json:"name" example:"edusite-backend"`
	Version   string `json:"version" example:"1.0.0"`
	GoVersion string `json:"go_version" example:"go1.25.5"`
	Uptime    string `json:"uptime" example:"1h30m45s"`
}

// Health godoc
// @ID           getHealth
// @Summary      Health check
// @Description  Pings the database and counts products. Answers 503 when the database is unreachable.
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[dto.HealthResponse]
// @Failure      503 {object} APIResponse[dto.HealthResponse]
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	health := dto.HealthResponse{Status: "ok", Database: "ok"}
	if err := h.db.Ping(ctx); err != nil {
		h.log(c).Warn("Health check: database unreachable", zap.Error(err))
		health.Status = "degraded"
		health.Database = "unreachable"
		c.JSON(http.StatusServiceUnavailable, dto.Response{Success: false, Data: health})
		return
	}

	count, err := h.products.Count(ctx)
	if err != nil {
		h.log(c).Warn("Health check: product count failed", zap.Error(err))
		health.Status = "degraded"
		health.Database = "error"
		c.JSON(http.StatusServiceUnavailable, dto.Response{Success: false, Data: health})
		return
	}
	health.Products = count

	h.Success(c, health)
}

// GetSystemInfo godoc
// @ID           getSystemInfo
// @Summary      Get system information
// @Description  Returns basic system information including version and uptime
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[SystemInfoResponse]
// @Router       /system/info [get]
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	h.Success(c, SystemInfoResponse{
		Name:      h.name,
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}

// PingResponse represents the ping response
// @name HandlerPingResponse
type PingResponse struct {
	Message   string `json:"message" example:"pong"`
	Timestamp string `json:"timestamp" example:"2026-01-23T12:00:00Z"`
}

// Ping godoc
// @ID           pingSystem
// @Summary      Ping the API
// @Description  Simple ping endpoint to check if the API is responsive
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[PingResponse]
// @Router       /system/ping [get]
func (h *SystemHandler) Ping(c *gin.Context) {
	h.Success(c, PingResponse{
		Message:   "pong",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
