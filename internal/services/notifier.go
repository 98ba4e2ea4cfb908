package services

import (
	"context"

	"github.com/Mikayuko/projectbingsu/internal/platform/logger"
	"github.com/Mikayuko/projectbingsu/internal/realtime"
	"github.com/Mikayuko/projectbingsu/internal/realtime/bus"
)

// Notifier pushes order events to local SSE clients and, when Redis is
// configured, to the other API instances.
type Notifier interface {
	Publish(ctx context.Context, msg realtime.Message)
}

type notifier struct {
	log *logger.Logger
	hub *realtime.Hub
	bus bus.Bus
}

func NewNotifier(log *logger.Logger, hub *realtime.Hub, eventBus bus.Bus) Notifier {
	return &notifier{
		log: log.With("service", "Notifier"),
		hub: hub,
		bus: eventBus,
	}
}

func (n *notifier) Publish(ctx context.Context, msg realtime.Message) {
	if n.hub != nil {
		n.hub.Broadcast(msg)
	}
	if n.bus != nil {
		if err := n.bus.Publish(ctx, msg); err != nil {
			n.log.Warn("failed to publish order event to bus", "error", err, "channel", msg.Channel)
		}
	}
}
