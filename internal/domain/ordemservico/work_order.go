package ordemservico

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oficina/backend/internal/domain/ordemservico/acl"
	"github.com/oficina/backend/internal/domain/shared"
	"github.com/oficina/backend/internal/domain/shared/valueobject"
)

const (
	maxComplaintLength = 1000
	maxReasonLength    = 500
)

// ErrVehicleHasOpenWorkOrder is returned when a vehicle would get a second
// open or in-progress order
var ErrVehicleHasOpenWorkOrder = shared.NewConflictError("VEHICLE_HAS_OPEN_WORK_ORDER",
	"Vehicle already has an open work order")

// ServiceLine is a catalog service billed on a work order, priced when added
type ServiceLine struct {
	ServiceID uuid.UUID
	Name      string
	Price     valueobject.Money
}

// PartLine is an inventory part consumed by a work order, priced when added
type PartLine struct {
	ItemID    uuid.UUID
	Code      string
	Name      string
	UnitPrice valueobject.Money
	Quantity  int
}

// Subtotal returns unit price times quantity
func (p PartLine) Subtotal() valueobject.Money {
	return p.UnitPrice.MultiplyByInt(int64(p.Quantity))
}

// WorkOrder is a repair job for one vehicle. Customer, service and part data
// arrive as ACL snapshots and are copied onto the order.
type WorkOrder struct {
	shared.BaseAggregateRoot
	customerID   uuid.UUID
	customerName string
	vehicleID    uuid.UUID
	complaint    valueobject.Description
	status       WorkOrderStatus
	services     []ServiceLine
	parts        []PartLine
	cancelReason string
	startedAt    *time.Time
	completedAt  *time.Time
	deliveredAt  *time.Time
	cancelledAt  *time.Time
}

// WorkOrderState carries stored values for RehydrateWorkOrder
type WorkOrderState struct {
	CustomerID   uuid.UUID
	CustomerName string
	VehicleID    uuid.UUID
	Complaint    valueobject.Description
	Status       WorkOrderStatus
	Services     []ServiceLine
	Parts        []PartLine
	CancelReason string
	StartedAt    *time.Time
	CompletedAt  *time.Time
	DeliveredAt  *time.Time
	CancelledAt  *time.Time
}

// OpenWorkOrder opens a work order for a vehicle on behalf of its owner
func OpenWorkOrder(customer acl.CustomerSnapshot, vehicleID uuid.UUID, complaint string) (*WorkOrder, error) {
	if customer.IsZero() {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Work order requires a customer")
	}
	if vehicleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VEHICLE", "Work order requires a vehicle")
	}
	desc, err := valueobject.NewDescription(complaint, maxComplaintLength)
	if err != nil {
		return nil, err
	}

	order := &WorkOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		customerID:        customer.CustomerID,
		customerName:      customer.Name,
		vehicleID:         vehicleID,
		complaint:         desc,
		status:            StatusOpen,
		services:          make([]ServiceLine, 0),
		parts:             make([]PartLine, 0),
	}

	order.AddDomainEvent(NewWorkOrderOpenedEvent(order))

	return order, nil
}

// RehydrateWorkOrder rebuilds a stored work order without raising events
func RehydrateWorkOrder(root shared.BaseAggregateRoot, state WorkOrderState) *WorkOrder {
	return &WorkOrder{
		BaseAggregateRoot: root,
		customerID:        state.CustomerID,
		customerName:      state.CustomerName,
		vehicleID:         state.VehicleID,
		complaint:         state.Complaint,
		status:            state.Status,
		services:          append([]ServiceLine(nil), state.Services...),
		parts:             append([]PartLine(nil), state.Parts...),
		cancelReason:      state.CancelReason,
		startedAt:         state.StartedAt,
		completedAt:       state.CompletedAt,
		deliveredAt:       state.DeliveredAt,
		cancelledAt:       state.CancelledAt,
	}
}

// Kind identifies the aggregate type
func (w *WorkOrder) Kind() shared.AggregateKind {
	return shared.AggregateWorkOrder
}

// CustomerID returns the customer the order was opened for
func (w *WorkOrder) CustomerID() uuid.UUID { return w.customerID }

// CustomerName returns the customer name captured when the order was opened
func (w *WorkOrder) CustomerName() string { return w.customerName }

// VehicleID returns the vehicle under repair
func (w *WorkOrder) VehicleID() uuid.UUID { return w.vehicleID }

// Complaint returns the reported problem
func (w *WorkOrder) Complaint() valueobject.Description { return w.complaint }

// Status returns the lifecycle state
func (w *WorkOrder) Status() WorkOrderStatus { return w.status }

// CancelReason returns why the order was cancelled, if it was
func (w *WorkOrder) CancelReason() string { return w.cancelReason }

// StartedAt returns when work began
func (w *WorkOrder) StartedAt() *time.Time { return w.startedAt }

// CompletedAt returns when work finished
func (w *WorkOrder) CompletedAt() *time.Time { return w.completedAt }

// DeliveredAt returns when the vehicle was handed back
func (w *WorkOrder) DeliveredAt() *time.Time { return w.deliveredAt }

// CancelledAt returns when the order was cancelled
func (w *WorkOrder) CancelledAt() *time.Time { return w.cancelledAt }

// Services returns a copy of the service lines
func (w *WorkOrder) Services() []ServiceLine {
	return append([]ServiceLine(nil), w.services...)
}

// Parts returns a copy of the part lines
func (w *WorkOrder) Parts() []PartLine {
	return append([]PartLine(nil), w.parts...)
}

// PartQuantities sums consumed quantity per inventory item
func (w *WorkOrder) PartQuantities() map[uuid.UUID]int {
	out := make(map[uuid.UUID]int, len(w.parts))
	for _, p := range w.parts {
		out[p.ItemID] += p.Quantity
	}
	return out
}

// Total returns the sum of all service prices and part subtotals
func (w *WorkOrder) Total() valueobject.Money {
	total := decimal.Zero
	for _, s := range w.services {
		total = total.Add(s.Price.Amount())
	}
	for _, p := range w.parts {
		total = total.Add(p.Subtotal().Amount())
	}
	return valueobject.NewBRL(total)
}

// AddService bills a catalog service at its current price
func (w *WorkOrder) AddService(service acl.ServiceSnapshot) error {
	if err := w.ensureEditable(); err != nil {
		return err
	}
	if service.ServiceID == uuid.Nil {
		return shared.NewDomainError("INVALID_SERVICE", "Service is required")
	}
	for _, s := range w.services {
		if s.ServiceID == service.ServiceID {
			return shared.NewDomainError("DUPLICATE_SERVICE", "Service is already on this work order")
		}
	}
	price, err := lineMoney(service.Price, service.Currency)
	if err != nil {
		return err
	}
	if !price.IsPositive() {
		return shared.NewDomainError("INVALID_PRICE", "Service price must be positive")
	}

	w.services = append(w.services, ServiceLine{
		ServiceID: service.ServiceID,
		Name:      strings.TrimSpace(service.Name),
		Price:     price,
	})
	w.touch()
	return nil
}

// RemoveService drops a service line
func (w *WorkOrder) RemoveService(serviceID uuid.UUID) error {
	if err := w.ensureEditable(); err != nil {
		return err
	}
	for i, s := range w.services {
		if s.ServiceID == serviceID {
			w.services = append(w.services[:i:i], w.services[i+1:]...)
			w.touch()
			return nil
		}
	}
	return shared.NewDomainError("LINE_NOT_FOUND", "Service is not on this work order")
}

// AddPart reserves qty units of a part on the order. Adding a part already on
// the order increases its quantity at the original price.
func (w *WorkOrder) AddPart(part acl.PartSnapshot, qty int) error {
	if err := w.ensureEditable(); err != nil {
		return err
	}
	if part.ItemID == uuid.Nil {
		return shared.NewDomainError("INVALID_PART", "Part is required")
	}
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	price, err := lineMoney(part.UnitPrice, part.Currency)
	if err != nil {
		return err
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Part price cannot be negative")
	}

	idx := -1
	requested := qty
	for i, p := range w.parts {
		if p.ItemID == part.ItemID {
			idx = i
			requested += p.Quantity
			break
		}
	}
	if requested > part.Available {
		return shared.NewConflictError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Insufficient stock for %s: requested %d, available %d", part.Code, requested, part.Available))
	}

	if idx >= 0 {
		w.parts[idx].Quantity = requested
	} else {
		w.parts = append(w.parts, PartLine{
			ItemID:    part.ItemID,
			Code:      part.Code,
			Name:      strings.TrimSpace(part.Name),
			UnitPrice: price,
			Quantity:  qty,
		})
	}
	w.touch()
	return nil
}

// RemovePart drops a part line
func (w *WorkOrder) RemovePart(itemID uuid.UUID) error {
	if err := w.ensureEditable(); err != nil {
		return err
	}
	for i, p := range w.parts {
		if p.ItemID == itemID {
			w.parts = append(w.parts[:i:i], w.parts[i+1:]...)
			w.touch()
			return nil
		}
	}
	return shared.NewDomainError("LINE_NOT_FOUND", "Part is not on this work order")
}

// Start moves an open order into progress
func (w *WorkOrder) Start() error {
	if err := w.ensureTransition(StatusInProgress); err != nil {
		return err
	}

	now := time.Now()
	w.status = StatusInProgress
	w.startedAt = &now
	w.touch()

	w.AddDomainEvent(NewWorkOrderStartedEvent(w))
	return nil
}

// Complete finishes the work. At least one service line is required.
func (w *WorkOrder) Complete() error {
	if err := w.ensureTransition(StatusCompleted); err != nil {
		return err
	}
	if len(w.services) == 0 {
		return shared.NewDomainError("NO_SERVICES", "Work order must have at least one service to complete")
	}

	now := time.Now()
	w.status = StatusCompleted
	w.completedAt = &now
	w.touch()

	w.AddDomainEvent(NewWorkOrderCompletedEvent(w))
	return nil
}

// Deliver records that the vehicle was handed back to the customer
func (w *WorkOrder) Deliver() error {
	if err := w.ensureTransition(StatusDelivered); err != nil {
		return err
	}

	now := time.Now()
	w.status = StatusDelivered
	w.deliveredAt = &now
	w.touch()

	w.AddDomainEvent(NewWorkOrderDeliveredEvent(w))
	return nil
}

// Cancel abandons an order that has not been completed
func (w *WorkOrder) Cancel(reason string) error {
	if err := w.ensureTransition(StatusCancelled); err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancellation reason is required")
	}
	if len([]rune(reason)) > maxReasonLength {
		return shared.NewDomainError("INVALID_REASON",
			fmt.Sprintf("Cancellation reason cannot exceed %d characters", maxReasonLength))
	}

	now := time.Now()
	w.status = StatusCancelled
	w.cancelReason = reason
	w.cancelledAt = &now
	w.touch()

	w.AddDomainEvent(NewWorkOrderCancelledEvent(w))
	return nil
}

func (w *WorkOrder) ensureEditable() error {
	if !w.status.AllowsLineChanges() {
		return shared.NewConflictError("INVALID_STATE",
			fmt.Sprintf("Cannot change lines of a %s work order", w.status))
	}
	return nil
}

func (w *WorkOrder) ensureTransition(next WorkOrderStatus) error {
	if !w.status.CanTransitionTo(next) {
		return shared.NewConflictError("INVALID_STATE",
			fmt.Sprintf("Cannot move work order from %s to %s", w.status, next))
	}
	return nil
}

func (w *WorkOrder) touch() {
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
}

func lineMoney(amount decimal.Decimal, currency string) (valueobject.Money, error) {
	if currency == "" {
		currency = string(valueobject.DefaultCurrency)
	}
	m, err := valueobject.NewMoney(amount, valueobject.Currency(currency))
	if err != nil {
		return valueobject.Money{}, err
	}
	if m.Currency() != valueobject.DefaultCurrency {
		return valueobject.Money{}, shared.NewDomainError("INVALID_MONEY",
			fmt.Sprintf("Work orders are billed in %s, got %s", valueobject.DefaultCurrency, m.Currency()))
	}
	return m, nil
}
