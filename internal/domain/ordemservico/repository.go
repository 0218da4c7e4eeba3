package ordemservico

import (
	"context"

	"github.com/google/uuid"

	"github.com/oficina/backend/internal/domain/shared"
)

// WorkOrderRepository defines the interface for work order persistence.
// Service and part lines are saved and loaded with their order.
type WorkOrderRepository interface {
	// Save creates or updates a work order and replaces its lines
	Save(ctx context.Context, order *WorkOrder) error

	// FindByID finds a work order by its ID; shared.ErrNotFound when absent
	FindByID(ctx context.Context, id uuid.UUID) (*WorkOrder, error)

	// FindByVehicle lists a vehicle's work orders, newest first
	FindByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]*WorkOrder, error)

	// FindAll lists work orders; Filter.Filters["status"] narrows by status
	FindAll(ctx context.Context, filter shared.Filter) ([]*WorkOrder, error)

	// Delete removes a work order and its lines
	Delete(ctx context.Context, id uuid.UUID) error
}
