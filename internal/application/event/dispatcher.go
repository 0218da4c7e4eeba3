// Package event publishes the domain events that application services
// collect from aggregates after a successful save.
package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/oficina/backend/internal/domain/shared"
)

// Dispatcher publishes and clears an aggregate's pending events.
// Publishing happens after the aggregate is stored, so a failing handler is
// logged and does not fail the operation that produced the event.
type Dispatcher struct {
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewDispatcher creates a dispatcher. A nil publisher drops events.
func NewDispatcher(publisher shared.EventPublisher, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{publisher: publisher, logger: logger}
}

// PublishPending publishes aggregate's pending events and clears them
func (d *Dispatcher) PublishPending(ctx context.Context, aggregate shared.AggregateRoot) {
	events := aggregate.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	aggregate.ClearDomainEvents()

	if d.publisher == nil {
		return
	}
	if err := d.publisher.Publish(ctx, events...); err != nil {
		d.logger.Error("failed to publish domain events",
			zap.String("aggregate_type", aggregate.Kind().String()),
			zap.String("aggregate_id", aggregate.GetID().String()),
			zap.Int("event_count", len(events)),
			zap.Error(err),
		)
	}
}
