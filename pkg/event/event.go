// Package event is an in-process dispatcher for domain events such as
// order.placed. Listeners run synchronously in registration order; a
// panicking listener is logged and does not stop the others.
package event

import (
	"context"
	"sync"

	"github.com/shashiranjanraj/lodge/pkg/logger"
)

// Handler receives an event payload.
type Handler func(ctx context.Context, payload interface{})

var (
	mu       sync.RWMutex
	handlers = map[string][]Handler{}
)

// Listen registers handler for event.
func Listen(event string, handler Handler) {
	mu.Lock()
	defer mu.Unlock()
	handlers[event] = append(handlers[event], handler)
}

// Fire dispatches payload to every listener of event.
func Fire(ctx context.Context, event string, payload interface{}) {
	mu.RLock()
	hs := append([]Handler(nil), handlers[event]...)
	mu.RUnlock()

	for _, h := range hs {
		call(ctx, event, h, payload)
	}
}

func call(ctx context.Context, event string, h Handler, payload interface{}) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.WithCtx(ctx).Error("event: listener panicked", "event", event, "panic", rec)
		}
	}()
	h(ctx, payload)
}

// Flush removes all listeners.
func Flush() {
	mu.Lock()
	defer mu.Unlock()
	handlers = map[string][]Handler{}
}
