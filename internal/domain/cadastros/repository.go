package cadastros

import (
	"context"

	"github.com/google/uuid"

	"github.com/oficina/backend/internal/domain/shared"
	"github.com/oficina/backend/internal/domain/shared/valueobject"
)

// CustomerRepository defines the interface for customer persistence.
// Finders return shared.ErrNotFound when nothing matches.
type CustomerRepository interface {
	// Save creates or updates a customer, keyed by identity
	Save(ctx context.Context, customer *Customer) error

	// FindByID finds a customer by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByDocument finds a customer by CPF or CNPJ
	FindByDocument(ctx context.Context, document valueobject.NationalID) (*Customer, error)

	// FindAll lists customers; Filter.Search matches name or document
	FindAll(ctx context.Context, filter shared.Filter) ([]*Customer, error)

	// Count counts customers matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Delete removes a customer
	Delete(ctx context.Context, id uuid.UUID) error
}

// VehicleRepository defines the interface for vehicle persistence
type VehicleRepository interface {
	// Save creates or updates a vehicle, keyed by identity
	Save(ctx context.Context, vehicle *Vehicle) error

	// FindByID finds a vehicle by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Vehicle, error)

	// FindByPlate finds a vehicle by license plate
	FindByPlate(ctx context.Context, plate valueobject.LicensePlate) (*Vehicle, error)

	// FindByOwner lists the vehicles of a customer
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Vehicle, error)

	// FindAll lists vehicles; Filter.Search matches plate, brand or model
	FindAll(ctx context.Context, filter shared.Filter) ([]*Vehicle, error)

	// Delete removes a vehicle
	Delete(ctx context.Context, id uuid.UUID) error
}

// ServiceRepository defines the interface for service catalog persistence
type ServiceRepository interface {
	// Save creates or updates a service, keyed by identity
	Save(ctx context.Context, service *Service) error

	// FindByID finds a service by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Service, error)

	// FindAll lists services; Filter.Search matches the name
	FindAll(ctx context.Context, filter shared.Filter) ([]*Service, error)

	// Delete removes a service
	Delete(ctx context.Context, id uuid.UUID) error
}
