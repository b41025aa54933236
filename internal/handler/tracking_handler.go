package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aoadenus/CIS-3343-Group-Project-sub004/internal/service"
)

// TrackingHandler serves the public, unauthenticated tracking view. The
// token itself is the capability.
type TrackingHandler struct {
	orderService *service.OrderService
	logger       *zap.Logger
}

func NewTrackingHandler(orderService *service.OrderService, logger *zap.Logger) *TrackingHandler {
	return &TrackingHandler{
		orderService: orderService,
		logger:       logger,
	}
}

func (h *TrackingHandler) Track(c *gin.Context) {
	view, err := h.orderService.TrackingView(c.Request.Context(), c.Param("token"))
	if err != nil {
		// Every failure kind collapses to the same shape here so a caller
		// cannot probe for token existence or internal state.
		h.logger.Debug("Tracking lookup failed", zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	c.JSON(http.StatusOK, view)
}
