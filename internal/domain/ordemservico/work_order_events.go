package ordemservico

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oficina/backend/internal/domain/shared"
)

// Event type constants
const (
	EventTypeWorkOrderOpened    = "WorkOrderOpened"
	EventTypeWorkOrderStarted   = "WorkOrderStarted"
	EventTypeWorkOrderCompleted = "WorkOrderCompleted"
	EventTypeWorkOrderDelivered = "WorkOrderDelivered"
	EventTypeWorkOrderCancelled = "WorkOrderCancelled"
)

// WorkOrderOpenedEvent is published when a work order is opened
type WorkOrderOpenedEvent struct {
	shared.BaseDomainEvent
	WorkOrderID uuid.UUID `json:"work_order_id"`
	CustomerID  uuid.UUID `json:"customer_id"`
	VehicleID   uuid.UUID `json:"vehicle_id"`
}

// NewWorkOrderOpenedEvent creates a new WorkOrderOpenedEvent
func NewWorkOrderOpenedEvent(order *WorkOrder) *WorkOrderOpenedEvent {
	return &WorkOrderOpenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeWorkOrderOpened, shared.AggregateWorkOrder, order.GetID()),
		WorkOrderID:     order.GetID(),
		CustomerID:      order.customerID,
		VehicleID:       order.vehicleID,
	}
}

// WorkOrderStartedEvent is published when work begins
type WorkOrderStartedEvent struct {
	shared.BaseDomainEvent
	WorkOrderID uuid.UUID `json:"work_order_id"`
}

// NewWorkOrderStartedEvent creates a new WorkOrderStartedEvent
func NewWorkOrderStartedEvent(order *WorkOrder) *WorkOrderStartedEvent {
	return &WorkOrderStartedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeWorkOrderStarted, shared.AggregateWorkOrder, order.GetID()),
		WorkOrderID:     order.GetID(),
	}
}

// WorkOrderCompletedEvent is published when work finishes.
// It carries the consumed part quantities so inventory can deduct them.
type WorkOrderCompletedEvent struct {
	shared.BaseDomainEvent
	WorkOrderID uuid.UUID         `json:"work_order_id"`
	VehicleID   uuid.UUID         `json:"vehicle_id"`
	Total       decimal.Decimal   `json:"total"`
	Quantities  map[uuid.UUID]int `json:"part_quantities"`
}

// PartQuantities returns consumed quantity per inventory item
func (e *WorkOrderCompletedEvent) PartQuantities() map[uuid.UUID]int {
	return e.Quantities
}

// NewWorkOrderCompletedEvent creates a new WorkOrderCompletedEvent
func NewWorkOrderCompletedEvent(order *WorkOrder) *WorkOrderCompletedEvent {
	return &WorkOrderCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeWorkOrderCompleted, shared.AggregateWorkOrder, order.GetID()),
		WorkOrderID:     order.GetID(),
		VehicleID:       order.vehicleID,
		Total:           order.Total().Amount(),
		Quantities:      order.PartQuantities(),
	}
}

// WorkOrderDeliveredEvent is published when the vehicle is handed back
type WorkOrderDeliveredEvent struct {
	shared.BaseDomainEvent
	WorkOrderID uuid.UUID `json:"work_order_id"`
}

// NewWorkOrderDeliveredEvent creates a new WorkOrderDeliveredEvent
func NewWorkOrderDeliveredEvent(order *WorkOrder) *WorkOrderDeliveredEvent {
	return &WorkOrderDeliveredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeWorkOrderDelivered, shared.AggregateWorkOrder, order.GetID()),
		WorkOrderID:     order.GetID(),
	}
}

// WorkOrderCancelledEvent is published when a work order is cancelled
type WorkOrderCancelledEvent struct {
	shared.BaseDomainEvent
	WorkOrderID uuid.UUID `json:"work_order_id"`
	Reason      string    `json:"reason"`
}

// NewWorkOrderCancelledEvent creates a new WorkOrderCancelledEvent
func NewWorkOrderCancelledEvent(order *WorkOrder) *WorkOrderCancelledEvent {
	return &WorkOrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeWorkOrderCancelled, shared.AggregateWorkOrder, order.GetID()),
		WorkOrderID:     order.GetID(),
		Reason:          order.cancelReason,
	}
}
