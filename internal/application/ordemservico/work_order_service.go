package ordemservico

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/oficina/backend/internal/application/event"
	"github.com/oficina/backend/internal/application/validation"
	"github.com/oficina/backend/internal/domain/ordemservico"
	"github.com/oficina/backend/internal/domain/ordemservico/acl"
	"github.com/oficina/backend/internal/domain/shared"
	"github.com/oficina/backend/internal/infrastructure/telemetry"
)

// Error codes raised when a referenced entity cannot be resolved
const (
	CodeVehicleNotFound    = "VEHICLE_NOT_FOUND"
	CodeServiceNotFound    = "SERVICE_NOT_FOUND"
	CodePartNotFound       = "PART_NOT_FOUND"
	CodeVehicleHasOpenWork = "VEHICLE_HAS_OPEN_WORK_ORDER"
)

// maxSaveAttempts bounds retries of a change that lost an optimistic-lock race
const maxSaveAttempts = 3

// WorkOrderService runs work orders through their lifecycle. Customer,
// service and part data are read through the anti-corruption fetchers.
type WorkOrderService struct {
	orderRepo ordemservico.WorkOrderRepository
	customers acl.CustomerFetcher
	services  acl.ServiceFetcher
	parts     acl.PartFetcher
	events    *event.Dispatcher
	logger    *zap.Logger
}

// NewWorkOrderService creates a new WorkOrderService
func NewWorkOrderService(
	orderRepo ordemservico.WorkOrderRepository,
	customers acl.CustomerFetcher,
	services acl.ServiceFetcher,
	parts acl.PartFetcher,
	events *event.Dispatcher,
	logger *zap.Logger,
) *WorkOrderService {
	return &WorkOrderService{
		orderRepo: orderRepo,
		customers: customers,
		services:  services,
		parts:     parts,
		events:    events,
		logger:    logger,
	}
}

// Open opens a work order for a registered vehicle, billed to its owner.
// A vehicle can have only one open or in-progress order.
func (s *WorkOrderService) Open(ctx context.Context, cmd OpenWorkOrderCommand) (*WorkOrderResponse, error) {
	if err := validation.Validate(cmd); err != nil {
		return nil, err
	}
	ctx, span := telemetry.StartSpan(ctx, "work_order.open", telemetry.SpanAttrVehicleID, cmd.VehicleID.String())
	defer span.End()

	customer, ok, err := s.customers.FetchCustomerByVehicle(ctx, cmd.VehicleID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if !ok {
		return nil, shared.NewDomainError(CodeVehicleNotFound, "Vehicle is not registered to an existing customer")
	}

	existing, err := s.orderRepo.FindByVehicle(ctx, cmd.VehicleID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	for _, o := range existing {
		if o.Status().AllowsLineChanges() {
			return nil, shared.NewConflictError(CodeVehicleHasOpenWork,
				fmt.Sprintf("Vehicle already has work order %s in status %s", o.GetID(), o.Status()))
		}
	}

	order, err := ordemservico.OpenWorkOrder(customer, cmd.VehicleID, cmd.Complaint)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, order); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span,
		telemetry.SpanAttrWorkOrderID, order.GetID().String(),
		telemetry.SpanAttrCustomerID, customer.CustomerID.String(),
	)

	s.logger.Info("work order opened",
		zap.String("work_order_id", order.GetID().String()),
		zap.String("vehicle_id", cmd.VehicleID.String()),
		zap.String("customer_id", customer.CustomerID.String()),
	)

	response := ToWorkOrderResponse(order)
	return &response, nil
}

// GetByID retrieves a work order by ID
func (s *WorkOrderService) GetByID(ctx context.Context, id uuid.UUID) (*WorkOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToWorkOrderResponse(order)
	return &response, nil
}

// ListByVehicle lists a vehicle's work orders, newest first
func (s *WorkOrderService) ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]WorkOrderResponse, error) {
	orders, err := s.orderRepo.FindByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	return ToWorkOrderResponses(orders), nil
}

// List lists work orders; Filters["status"] narrows by status
func (s *WorkOrderService) List(ctx context.Context, filter shared.Filter) ([]WorkOrderResponse, error) {
	orders, err := s.orderRepo.FindAll(ctx, filter.Normalize())
	if err != nil {
		return nil, err
	}
	return ToWorkOrderResponses(orders), nil
}

// AddService bills a catalog service at its current price
func (s *WorkOrderService) AddService(ctx context.Context, id uuid.UUID, cmd AddServiceCommand) (*WorkOrderResponse, error) {
	if err := validation.Validate(cmd); err != nil {
		return nil, err
	}
	return s.change(ctx, id, func(order *ordemservico.WorkOrder) error {
		service, ok, err := s.services.FetchServiceByID(ctx, cmd.ServiceID)
		if err != nil {
			return err
		}
		if !ok {
			return shared.NewDomainError(CodeServiceNotFound, "Service is not in the catalog")
		}
		return order.AddService(service)
	})
}

// RemoveService drops a service line
func (s *WorkOrderService) RemoveService(ctx context.Context, id, serviceID uuid.UUID) (*WorkOrderResponse, error) {
	return s.change(ctx, id, func(order *ordemservico.WorkOrder) error {
		return order.RemoveService(serviceID)
	})
}

// AddPart reserves units of a part at its current price. The order is
// checked against stock on hand now; stock is deducted on completion.
func (s *WorkOrderService) AddPart(ctx context.Context, id uuid.UUID, cmd AddPartCommand) (*WorkOrderResponse, error) {
	if err := validation.Validate(cmd); err != nil {
		return nil, err
	}
	return s.change(ctx, id, func(order *ordemservico.WorkOrder) error {
		part, ok, err := s.parts.FetchPartByID(ctx, cmd.ItemID)
		if err != nil {
			return err
		}
		if !ok {
			return shared.NewDomainError(CodePartNotFound, "Part is not stocked")
		}
		return order.AddPart(part, cmd.Quantity)
	})
}

// RemovePart drops a part line
func (s *WorkOrderService) RemovePart(ctx context.Context, id, itemID uuid.UUID) (*WorkOrderResponse, error) {
	return s.change(ctx, id, func(order *ordemservico.WorkOrder) error {
		return order.RemovePart(itemID)
	})
}

// Start moves an open order into progress
func (s *WorkOrderService) Start(ctx context.Context, id uuid.UUID) (*WorkOrderResponse, error) {
	return s.transition(ctx, id, "started", (*ordemservico.WorkOrder).Start)
}

// Complete finishes the work. Every part line must still be covered by
// stock on hand; the inventory context deducts it when notified.
func (s *WorkOrderService) Complete(ctx context.Context, id uuid.UUID) (*WorkOrderResponse, error) {
	return s.transition(ctx, id, "completed", func(order *ordemservico.WorkOrder) error {
		if err := s.ensurePartsAvailable(ctx, order); err != nil {
			return err
		}
		return order.Complete()
	})
}

// Deliver records that the vehicle was handed back
func (s *WorkOrderService) Deliver(ctx context.Context, id uuid.UUID) (*WorkOrderResponse, error) {
	return s.transition(ctx, id, "delivered", (*ordemservico.WorkOrder).Deliver)
}

// Cancel abandons an order that has not been completed
func (s *WorkOrderService) Cancel(ctx context.Context, id uuid.UUID, cmd CancelWorkOrderCommand) (*WorkOrderResponse, error) {
	if err := validation.Validate(cmd); err != nil {
		return nil, err
	}
	return s.transition(ctx, id, "cancelled", func(order *ordemservico.WorkOrder) error {
		return order.Cancel(cmd.Reason)
	})
}

func (s *WorkOrderService) ensurePartsAvailable(ctx context.Context, order *ordemservico.WorkOrder) error {
	for _, line := range order.Parts() {
		part, ok, err := s.parts.FetchPartByID(ctx, line.ItemID)
		if err != nil {
			return err
		}
		if !ok {
			return shared.NewDomainError(CodePartNotFound,
				fmt.Sprintf("Part %s is no longer stocked", line.Code))
		}
		if part.Available < line.Quantity {
			return shared.NewConflictError(shared.ErrInsufficientStock.Code,
				fmt.Sprintf("Insufficient stock for %s: required %d, on hand %d", line.Code, line.Quantity, part.Available))
		}
	}
	return nil
}

func (s *WorkOrderService) transition(ctx context.Context, id uuid.UUID, verb string, apply func(*ordemservico.WorkOrder) error) (*WorkOrderResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "work_order."+verb, telemetry.SpanAttrWorkOrderID, id.String())
	defer span.End()

	response, err := s.change(ctx, id, apply)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("work order "+verb,
		zap.String("work_order_id", id.String()),
		zap.String("status", response.Status),
	)
	return response, nil
}

// change loads the order, applies the mutation and saves it. When another
// request saved the order in between, the mutation is retried on a fresh copy
// so it is checked against the state that actually won.
func (s *WorkOrderService) change(ctx context.Context, id uuid.UUID, apply func(*ordemservico.WorkOrder) error) (*WorkOrderResponse, error) {
	var err error
	for attempt := 1; attempt <= maxSaveAttempts; attempt++ {
		var order *ordemservico.WorkOrder
		order, err = s.orderRepo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := apply(order); err != nil {
			return nil, err
		}
		err = s.save(ctx, order)
		if err == nil {
			response := ToWorkOrderResponse(order)
			return &response, nil
		}
		if !errors.Is(err, shared.ErrConcurrentModification) {
			return nil, err
		}
		s.logger.Debug("work order changed concurrently, retrying",
			zap.String("work_order_id", id.String()),
			zap.Int("attempt", attempt),
		)
	}
	return nil, err
}

func (s *WorkOrderService) save(ctx context.Context, order *ordemservico.WorkOrder) error {
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return err
	}
	s.events.PublishPending(ctx, order)
	return nil
}
