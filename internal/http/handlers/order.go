package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Mikayuko/projectbingsu/internal/http/response"
	"github.com/Mikayuko/projectbingsu/internal/repos"
	"github.com/Mikayuko/projectbingsu/internal/services"
	"github.com/Mikayuko/projectbingsu/internal/types"
)

type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (oh *OrderHandler) Create(c *gin.Context) {
	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	order, err := oh.orderService.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondCreated(c, order)
}

func (oh *OrderHandler) Track(c *gin.Context) {
	order, err := oh.orderService.Track(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, order)
}

func (oh *OrderHandler) List(c *gin.Context) {
	filter := repos.OrderFilter{
		Limit:  parseIntQuery(c, "limit", 50),
		Offset: parseIntQuery(c, "offset", 0),
	}
	if raw := c.Query("status"); raw != "" {
		status, ok := types.ParseOrderStatus(raw)
		if !ok {
			response.RespondError(c, http.StatusBadRequest, "invalid_status_filter", fmt.Errorf("unknown order status %q", raw))
			return
		}
		filter.Status = &status
	}
	orders, err := oh.orderService.List(c.Request.Context(), filter)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"orders": orders})
}

func (oh *OrderHandler) Transition(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_order_id", err)
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	next, ok := types.ParseOrderStatus(req.Status)
	if !ok {
		response.RespondError(c, http.StatusBadRequest, "invalid_status", fmt.Errorf("unknown order status %q", req.Status))
		return
	}
	order, err := oh.orderService.Transition(c.Request.Context(), orderID, next)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, order)
}
