package realtime

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Mikayuko/projectbingsu/internal/platform/logger"
)

func mustTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(log.Sync)
	return log
}

func recvMessage(t *testing.T, ch <-chan Message, timeout time.Duration) Message {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for message")
	}
	return Message{}
}

func TestHubBroadcastOrdering(t *testing.T) {
	hub := NewHub(mustTestLogger(t))
	channel := uuid.New().String()

	client := hub.NewClient()
	hub.AddChannel(client, channel)

	first := Message{Channel: channel, Event: EventOrderCreated, Data: map[string]any{"seq": 1}}
	second := Message{Channel: channel, Event: EventOrderStatusChanged, Data: map[string]any{"seq": 2}}
	hub.Broadcast(first)
	hub.Broadcast(second)

	if got := recvMessage(t, client.Outbound, time.Second); got.Event != EventOrderCreated {
		t.Fatalf("first event: want=%s got=%s", EventOrderCreated, got.Event)
	}
	if got := recvMessage(t, client.Outbound, time.Second); got.Event != EventOrderStatusChanged {
		t.Fatalf("second event: want=%s got=%s", EventOrderStatusChanged, got.Event)
	}

	hub.CloseClient(client)
	select {
	case _, ok := <-client.Outbound:
		if ok {
			t.Fatalf("outbound should be closed after disconnect")
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("timed out waiting for channel close")
	}
}

func TestHubChannelIsolation(t *testing.T) {
	hub := NewHub(mustTestLogger(t))

	trackingA := "AB12C"
	trackingB := "XY99Z"

	clientA := hub.NewClient()
	hub.AddChannel(clientA, trackingA)
	clientB := hub.NewClient()
	hub.AddChannel(clientB, trackingB)
	admin := hub.NewClient()
	hub.AddChannel(admin, AdminOrdersChannel)

	hub.Broadcast(Message{Channel: trackingA, Event: EventOrderStatusChanged})
	hub.Broadcast(Message{Channel: AdminOrdersChannel, Event: EventOrderCreated})

	if got := recvMessage(t, clientA.Outbound, time.Second); got.Channel != trackingA {
		t.Fatalf("clientA got message for %q", got.Channel)
	}
	if got := recvMessage(t, admin.Outbound, time.Second); got.Channel != AdminOrdersChannel {
		t.Fatalf("admin got message for %q", got.Channel)
	}

	select {
	case msg := <-clientB.Outbound:
		t.Fatalf("clientB should not receive %q events, got %+v", msg.Channel, msg)
	case <-time.After(100 * time.Millisecond):
	}

	hub.CloseClient(clientA)
	hub.CloseClient(clientB)
	hub.CloseClient(admin)
}

func TestHubDoubleCloseIsSafe(t *testing.T) {
	hub := NewHub(mustTestLogger(t))
	client := hub.NewClient()
	hub.AddChannel(client, "AB12C")

	hub.CloseClient(client)
	hub.CloseClient(client)

	// Broadcasting to a closed subscription must not panic.
	hub.Broadcast(Message{Channel: "AB12C", Event: EventOrderCreated})
}
