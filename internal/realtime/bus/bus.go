package bus

import (
	"context"

	"github.com/Mikayuko/projectbingsu/internal/realtime"
)

// Bus bridges order events between API instances so a status change made on
// one instance reaches SSE clients connected to another.
type Bus interface {
	Publish(ctx context.Context, msg realtime.Message) error
	StartForwarder(ctx context.Context, onMsg func(m realtime.Message)) error
	Close() error
}
