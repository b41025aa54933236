package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aoadenus/CIS-3343-Group-Project-sub004/internal/service"
)

type DashboardHandler struct {
	dashboard *service.DashboardService
	logger    *zap.Logger
}

func NewDashboardHandler(dashboard *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		logger:    logger,
	}
}

func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	metrics, err := h.dashboard.ComputeDashboard(c.Request.Context(), time.Now().UTC())
	if err != nil {
		h.logger.Error("Dashboard computation failed", zap.Error(err))
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, metrics)
}
