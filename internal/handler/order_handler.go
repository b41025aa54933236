package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aoadenus/CIS-3343-Group-Project-sub004/internal/domain"
	"github.com/aoadenus/CIS-3343-Group-Project-sub004/internal/service"
	"github.com/aoadenus/CIS-3343-Group-Project-sub004/pkg/middleware"
)

type OrderHandler struct {
	orderService *service.OrderService
	logger       *zap.Logger
}

func NewOrderHandler(orderService *service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req domain.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), req)
	if err != nil {
		h.logger.Warn("Create order failed",
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err))
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

type setStatusRequest struct {
	Status domain.OrderStatus `json:"status" binding:"required"`
}

func (h *OrderHandler) SetStatus(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	actor := middleware.IdentityFrom(c)
	order, err := h.orderService.SetStatus(c.Request.Context(), id, req.Status, actor)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

type recordPaymentRequest struct {
	Amount         float64 `json:"amount" binding:"required"`
	IdempotencyKey string  `json:"idempotency_key"`
}

func (h *OrderHandler) RecordPayment(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req recordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	actor := middleware.IdentityFrom(c)
	order, err := h.orderService.RecordPayment(c.Request.Context(), id, req.Amount, req.IdempotencyKey, actor)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func orderID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "details": "order id must be an integer"})
		return 0, false
	}
	return id, true
}
