package http

import (
	"github.com/nats-io/nats.go"

	"github.com/samirrijal/bubblepoint/internal/adapters/valkey"
	"github.com/samirrijal/bubblepoint/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	BubblePoints *usecases.BubblePointService
	Components   *usecases.ComponentService
	NATS         *nats.Conn
	Cache        *valkey.Cache
}
