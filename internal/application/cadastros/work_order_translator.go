package cadastros

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/oficina/backend/internal/domain/cadastros"
	"github.com/oficina/backend/internal/domain/ordemservico/acl"
	"github.com/oficina/backend/internal/domain/shared"
	"github.com/oficina/backend/internal/infrastructure/telemetry"
)

// WorkOrderTranslator answers the work order context's questions about
// customers, vehicles and catalog services. Every call reads the current
// aggregate and copies it field by field into a snapshot.
type WorkOrderTranslator struct {
	customerRepo cadastros.CustomerRepository
	vehicleRepo  cadastros.VehicleRepository
	serviceRepo  cadastros.ServiceRepository
}

// NewWorkOrderTranslator creates a new WorkOrderTranslator
func NewWorkOrderTranslator(
	customerRepo cadastros.CustomerRepository,
	vehicleRepo cadastros.VehicleRepository,
	serviceRepo cadastros.ServiceRepository,
) *WorkOrderTranslator {
	return &WorkOrderTranslator{
		customerRepo: customerRepo,
		vehicleRepo:  vehicleRepo,
		serviceRepo:  serviceRepo,
	}
}

// FetchCustomerByVehicle returns the current owner of vehicleID
func (t *WorkOrderTranslator) FetchCustomerByVehicle(ctx context.Context, vehicleID uuid.UUID) (acl.CustomerSnapshot, bool, error) {
	ctx, span := telemetry.StartSpan(ctx, "cadastros.fetch_customer_by_vehicle",
		telemetry.SpanAttrVehicleID, vehicleID.String(),
	)
	defer span.End()

	vehicle, err := t.vehicleRepo.FindByID(ctx, vehicleID)
	if found, err := lookupOutcome(err); !found {
		telemetry.RecordError(span, err)
		telemetry.SetAttributes(span, telemetry.SpanAttrFound, false)
		return acl.CustomerSnapshot{}, false, err
	}

	customer, err := t.customerRepo.FindByID(ctx, vehicle.OwnerID())
	if found, err := lookupOutcome(err); !found {
		telemetry.RecordError(span, err)
		telemetry.SetAttributes(span, telemetry.SpanAttrFound, false)
		return acl.CustomerSnapshot{}, false, err
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrFound, true,
		telemetry.SpanAttrCustomerID, customer.GetID().String(),
	)
	return toCustomerSnapshot(customer), true, nil
}

// FetchServiceByID returns the current catalog entry for serviceID
func (t *WorkOrderTranslator) FetchServiceByID(ctx context.Context, serviceID uuid.UUID) (acl.ServiceSnapshot, bool, error) {
	ctx, span := telemetry.StartSpan(ctx, "cadastros.fetch_service",
		telemetry.SpanAttrServiceID, serviceID.String(),
	)
	defer span.End()

	service, err := t.serviceRepo.FindByID(ctx, serviceID)
	if found, err := lookupOutcome(err); !found {
		telemetry.RecordError(span, err)
		telemetry.SetAttributes(span, telemetry.SpanAttrFound, false)
		return acl.ServiceSnapshot{}, false, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrFound, true)
	return toServiceSnapshot(service), true, nil
}

// lookupOutcome folds a repository error into the fetch outcome:
// found, NotFound (false, nil), or a failure (false, err).
func lookupOutcome(err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, shared.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

func toCustomerSnapshot(c *cadastros.Customer) acl.CustomerSnapshot {
	return acl.CustomerSnapshot{
		CustomerID: c.GetID(),
		Name:       c.Name().String(),
		Document:   c.Document().String(),
		Phone:      c.Phone(),
		Email:      c.Email(),
	}
}

func toServiceSnapshot(s *cadastros.Service) acl.ServiceSnapshot {
	return acl.ServiceSnapshot{
		ServiceID: s.GetID(),
		Name:      s.Name().String(),
		Price:     s.Price().Amount(),
		Currency:  string(s.Price().Currency()),
	}
}

var (
	_ acl.CustomerFetcher = (*WorkOrderTranslator)(nil)
	_ acl.ServiceFetcher  = (*WorkOrderTranslator)(nil)
)
