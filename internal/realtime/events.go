package realtime

// Event names pushed to SSE subscribers.
type Event string

const (
	EventOrderCreated       Event = "OrderCreated"
	EventOrderStatusChanged Event = "OrderStatusChanged"
	EventMenuChanged        Event = "MenuChanged"
)

// AdminOrdersChannel receives every order event; customers subscribe to the
// channel named by their tracking code instead.
const AdminOrdersChannel = "orders"

type Message struct {
	Channel string `json:"channel"`
	Event   Event  `json:"event"`
	Data    any    `json:"data,omitempty"`
}
