package services

import (
	"context"
	"sync"

	"github.com/shashiranjanraj/lodge/app/models"
	"github.com/shashiranjanraj/lodge/pkg/event"
	"github.com/shashiranjanraj/lodge/pkg/metrics"
)

var listenOnce sync.Once

// RegisterListeners wires domain events to their side effects. Safe to call
// more than once.
func RegisterListeners() {
	listenOnce.Do(func() {
		event.Listen(EventOrderPlaced, countOrder)
	})
}

func countOrder(_ context.Context, payload interface{}) {
	if o, ok := payload.(models.Order); ok {
		metrics.OrdersPlaced.WithLabelValues(o.PaymentMethod).Inc()
	}
}
