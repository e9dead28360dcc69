package handler

import (
	"net/http"
	"time"

	"github.com/brokerhub/backend/internal/infrastructure/persistence"
	"github.com/brokerhub/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// SystemHandler handles health and readiness endpoints
type SystemHandler struct {
	BaseHandler
	db        *persistence.Database
	version   string
	startedAt time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *persistence.Database, version string) *SystemHandler {
	return &SystemHandler{
		db:        db,
		version:   version,
		startedAt: time.Now(),
	}
}

// HealthResponse reports process liveness
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// ReadyResponse reports dependency readiness
type ReadyResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Health godoc
// @ID           health
// @Summary      Liveness probe
// @Description  Report that the process is up
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[HealthResponse]
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, HealthResponse{
		Status:  "ok",
		Version: h.version,
		Uptime:  time.Since(h.startedAt).Round(time.Second).String(),
	})
}

// Ready godoc
// @ID           ready
// @Summary      Readiness probe
// @Description  Report whether downstream dependencies are reachable
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[ReadyResponse]
// @Failure      503 {object} APIResponse[ReadyResponse]
// @Router       /ready [get]
func (h *SystemHandler) Ready(c *gin.Context) {
	resp := ReadyResponse{Status: "ready", Database: "up"}

	if err := h.db.Ping(); err != nil {
		resp.Status = "not_ready"
		resp.Database = "down"
		c.JSON(http.StatusServiceUnavailable, dto.NewSuccessResponse(resp))
		return
	}

	h.Success(c, resp)
}
