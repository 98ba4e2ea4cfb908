package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mikayuko/projectbingsu/internal/platform/logger"
	"github.com/Mikayuko/projectbingsu/internal/realtime"
	"github.com/Mikayuko/projectbingsu/internal/services"
)

type RealtimeHandler struct {
	log *logger.Logger
	hub *realtime.Hub
}

func NewRealtimeHandler(log *logger.Logger, hub *realtime.Hub) *RealtimeHandler {
	return &RealtimeHandler{log: log.With("handler", "RealtimeHandler"), hub: hub}
}

// StreamOrder is the customer-facing stream: one tracking code, one channel.
// No authentication, knowing the tracking code is the capability.
func (h *RealtimeHandler) StreamOrder(c *gin.Context) {
	trackingCode := services.NormalizeCode(c.Param("code"))
	if len(trackingCode) != 5 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"message": "invalid tracking code", "code": "invalid_tracking_code"},
		})
		return
	}

	client := h.hub.NewClient()
	h.hub.AddChannel(client, trackingCode)
	h.log.Info("order stream open", "tracking_code", trackingCode, "client_id", client.ID.String())

	h.hub.ServeHTTP(c.Writer, c.Request, client)

	h.hub.CloseClient(client)
	h.log.Info("order stream closed", "client_id", client.ID.String())
}

// StreamAdminOrders feeds the shop dashboard every order event.
func (h *RealtimeHandler) StreamAdminOrders(c *gin.Context) {
	client := h.hub.NewClient()
	h.hub.AddChannel(client, realtime.AdminOrdersChannel)
	h.log.Info("admin stream open", "client_id", client.ID.String())

	h.hub.ServeHTTP(c.Writer, c.Request, client)

	h.hub.CloseClient(client)
	h.log.Info("admin stream closed", "client_id", client.ID.String())
}
