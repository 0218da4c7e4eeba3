package estoque

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/oficina/backend/internal/application/event"
	"github.com/oficina/backend/internal/domain/estoque"
	"github.com/oficina/backend/internal/domain/shared"
)

// EventTypeWorkOrderCompleted is the event this context reacts to.
// It is matched by name so estoque never imports the work order model.
const EventTypeWorkOrderCompleted = "WorkOrderCompleted"

// partConsumer is any event that reports consumed parts per inventory item
type partConsumer interface {
	PartQuantities() map[uuid.UUID]int
}

// PartsConsumedHandler deducts the parts used by a completed work order
type PartsConsumedHandler struct {
	itemRepo estoque.InventoryItemRepository
	events   *event.Dispatcher
	logger   *zap.Logger
}

// NewPartsConsumedHandler creates a new PartsConsumedHandler
func NewPartsConsumedHandler(itemRepo estoque.InventoryItemRepository, events *event.Dispatcher, logger *zap.Logger) *PartsConsumedHandler {
	return &PartsConsumedHandler{
		itemRepo: itemRepo,
		events:   events,
		logger:   logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *PartsConsumedHandler) EventTypes() []string {
	return []string{EventTypeWorkOrderCompleted}
}

// Handle removes each consumed quantity from stock. Items are processed in
// ID order; a failing item is reported and the rest are still deducted.
func (h *PartsConsumedHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	consumer, ok := evt.(partConsumer)
	if !ok {
		return fmt.Errorf("event %s (%s) carries no part quantities", evt.EventID(), evt.EventType())
	}
	quantities := consumer.PartQuantities()
	if len(quantities) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(quantities))
	for id := range quantities {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })

	var errs []error
	for _, id := range ids {
		qty := quantities[id]
		item, err := updateWithLock(ctx, h.itemRepo, id, func(item *estoque.InventoryItem) error {
			return item.RemoveStock(qty)
		})
		if err != nil {
			h.logger.Error("failed to deduct consumed parts",
				zap.String("work_order_id", evt.AggregateID().String()),
				zap.String("item_id", id.String()),
				zap.Int("quantity", qty),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("item %s: %w", id, err))
			continue
		}
		h.events.PublishPending(ctx, item)
	}

	h.logger.Info("consumed parts deducted",
		zap.String("work_order_id", evt.AggregateID().String()),
		zap.Int("items", len(ids)-len(errs)),
		zap.Int("failed", len(errs)),
	)
	return errors.Join(errs...)
}
