package estoque

import (
	"github.com/google/uuid"

	"github.com/oficina/backend/internal/domain/shared"
)

// Event type constants
const (
	EventTypeInventoryItemCreated = "InventoryItemCreated"
	EventTypeStockIncreased       = "StockIncreased"
	EventTypeStockDecreased       = "StockDecreased"
	EventTypeStockAdjusted        = "StockAdjusted"
	EventTypeStockBelowMinimum    = "StockBelowMinimum"
)

// InventoryItemCreatedEvent is published when a part is added to inventory
type InventoryItemCreatedEvent struct {
	shared.BaseDomainEvent
	ItemID uuid.UUID `json:"item_id"`
	Code   string    `json:"code"`
	Name   string    `json:"name"`
}

// NewInventoryItemCreatedEvent creates a new InventoryItemCreatedEvent
func NewInventoryItemCreatedEvent(item *InventoryItem) *InventoryItemCreatedEvent {
	return &InventoryItemCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInventoryItemCreated, shared.AggregateInventoryItem, item.GetID()),
		ItemID:          item.GetID(),
		Code:            item.code,
		Name:            item.name.String(),
	}
}

// StockIncreasedEvent is published when units are received
type StockIncreasedEvent struct {
	shared.BaseDomainEvent
	ItemID      uuid.UUID `json:"item_id"`
	Code        string    `json:"code"`
	Quantity    int       `json:"quantity"`
	NewQuantity int       `json:"new_quantity"`
}

// NewStockIncreasedEvent creates a new StockIncreasedEvent
func NewStockIncreasedEvent(item *InventoryItem, qty int) *StockIncreasedEvent {
	return &StockIncreasedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockIncreased, shared.AggregateInventoryItem, item.GetID()),
		ItemID:          item.GetID(),
		Code:            item.code,
		Quantity:        qty,
		NewQuantity:     item.quantity,
	}
}

// StockDecreasedEvent is published when units leave the shelf
type StockDecreasedEvent struct {
	shared.BaseDomainEvent
	ItemID      uuid.UUID `json:"item_id"`
	Code        string    `json:"code"`
	Quantity    int       `json:"quantity"`
	NewQuantity int       `json:"new_quantity"`
}

// NewStockDecreasedEvent creates a new StockDecreasedEvent
func NewStockDecreasedEvent(item *InventoryItem, qty int) *StockDecreasedEvent {
	return &StockDecreasedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockDecreased, shared.AggregateInventoryItem, item.GetID()),
		ItemID:          item.GetID(),
		Code:            item.code,
		Quantity:        qty,
		NewQuantity:     item.quantity,
	}
}

// StockAdjustedEvent is published after a stock count
type StockAdjustedEvent struct {
	shared.BaseDomainEvent
	ItemID           uuid.UUID `json:"item_id"`
	PreviousQuantity int       `json:"previous_quantity"`
	NewQuantity      int       `json:"new_quantity"`
	Reason           string    `json:"reason"`
}

// NewStockAdjustedEvent creates a new StockAdjustedEvent
func NewStockAdjustedEvent(item *InventoryItem, previous int, reason string) *StockAdjustedEvent {
	return &StockAdjustedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeStockAdjusted, shared.AggregateInventoryItem, item.GetID()),
		ItemID:           item.GetID(),
		PreviousQuantity: previous,
		NewQuantity:      item.quantity,
		Reason:           reason,
	}
}

// StockBelowMinimumEvent is published when on-hand quantity drops under the threshold
type StockBelowMinimumEvent struct {
	shared.BaseDomainEvent
	ItemID   uuid.UUID `json:"item_id"`
	Code     string    `json:"code"`
	Quantity int       `json:"quantity"`
	Minimum  int       `json:"minimum"`
}

// NewStockBelowMinimumEvent creates a new StockBelowMinimumEvent
func NewStockBelowMinimumEvent(item *InventoryItem) *StockBelowMinimumEvent {
	return &StockBelowMinimumEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockBelowMinimum, shared.AggregateInventoryItem, item.GetID()),
		ItemID:          item.GetID(),
		Code:            item.code,
		Quantity:        item.quantity,
		Minimum:         item.minimum,
	}
}
