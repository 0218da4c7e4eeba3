package cadastros

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/oficina/backend/internal/application/event"
	"github.com/oficina/backend/internal/application/validation"
	"github.com/oficina/backend/internal/domain/cadastros"
	"github.com/oficina/backend/internal/domain/shared"
	"github.com/oficina/backend/internal/domain/shared/valueobject"
)

// VehicleService handles vehicle registration and ownership
type VehicleService struct {
	vehicleRepo  cadastros.VehicleRepository
	customerRepo cadastros.CustomerRepository
	events       *event.Dispatcher
	logger       *zap.Logger
}

// NewVehicleService creates a new VehicleService
func NewVehicleService(
	vehicleRepo cadastros.VehicleRepository,
	customerRepo cadastros.CustomerRepository,
	events *event.Dispatcher,
	logger *zap.Logger,
) *VehicleService {
	return &VehicleService{
		vehicleRepo:  vehicleRepo,
		customerRepo: customerRepo,
		events:       events,
		logger:       logger,
	}
}

// Register registers a vehicle for an existing customer
func (s *VehicleService) Register(ctx context.Context, cmd RegisterVehicleCommand) (*VehicleResponse, error) {
	if err := validation.Validate(cmd); err != nil {
		return nil, err
	}
	if err := s.ensureOwnerExists(ctx, cmd.OwnerID); err != nil {
		return nil, err
	}
	plate, err := valueobject.NewLicensePlate(cmd.Plate)
	if err != nil {
		return nil, err
	}
	if err := s.ensurePlateFree(ctx, plate, uuid.Nil); err != nil {
		return nil, err
	}

	vehicle, err := cadastros.NewVehicle(cmd.OwnerID, cmd.Plate, cmd.Brand, cmd.Model, cmd.Year)
	if err != nil {
		return nil, err
	}
	if err := s.vehicleRepo.Save(ctx, vehicle); err != nil {
		return nil, err
	}
	s.events.PublishPending(ctx, vehicle)

	s.logger.Info("vehicle registered",
		zap.String("vehicle_id", vehicle.GetID().String()),
		zap.String("owner_id", cmd.OwnerID.String()),
		zap.String("plate", vehicle.Plate().String()),
	)

	response := ToVehicleResponse(vehicle)
	return &response, nil
}

// GetByID retrieves a vehicle by ID
func (s *VehicleService) GetByID(ctx context.Context, id uuid.UUID) (*VehicleResponse, error) {
	vehicle, err := s.vehicleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToVehicleResponse(vehicle)
	return &response, nil
}

// GetByPlate retrieves a vehicle by license plate, in any accepted notation
func (s *VehicleService) GetByPlate(ctx context.Context, plate string) (*VehicleResponse, error) {
	licensePlate, err := valueobject.NewLicensePlate(plate)
	if err != nil {
		return nil, err
	}
	vehicle, err := s.vehicleRepo.FindByPlate(ctx, licensePlate)
	if err != nil {
		return nil, err
	}
	response := ToVehicleResponse(vehicle)
	return &response, nil
}

// ListByOwner lists a customer's vehicles
func (s *VehicleService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]VehicleResponse, error) {
	vehicles, err := s.vehicleRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return ToVehicleResponses(vehicles), nil
}

// List lists vehicles matching the filter
func (s *VehicleService) List(ctx context.Context, filter shared.Filter) ([]VehicleResponse, error) {
	vehicles, err := s.vehicleRepo.FindAll(ctx, filter.Normalize())
	if err != nil {
		return nil, err
	}
	return ToVehicleResponses(vehicles), nil
}

// Update changes the plate or the brand/model/year of a vehicle
func (s *VehicleService) Update(ctx context.Context, id uuid.UUID, cmd UpdateVehicleCommand) (*VehicleResponse, error) {
	if err := validation.Validate(cmd); err != nil {
		return nil, err
	}
	vehicle, err := s.vehicleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cmd.Plate != nil {
		plate, err := valueobject.NewLicensePlate(*cmd.Plate)
		if err != nil {
			return nil, err
		}
		if !plate.Equals(vehicle.Plate()) {
			if err := s.ensurePlateFree(ctx, plate, vehicle.GetID()); err != nil {
				return nil, err
			}
			if err := vehicle.UpdatePlate(*cmd.Plate); err != nil {
				return nil, err
			}
		}
	}
	if cmd.Brand != nil || cmd.Model != nil || cmd.Year != nil {
		brand, model, year := vehicle.Brand().String(), vehicle.Model().String(), vehicle.Year()
		if cmd.Brand != nil {
			brand = *cmd.Brand
		}
		if cmd.Model != nil {
			model = *cmd.Model
		}
		if cmd.Year != nil {
			year = *cmd.Year
		}
		if err := vehicle.UpdateDescription(brand, model, year); err != nil {
			return nil, err
		}
	}

	if err := s.vehicleRepo.Save(ctx, vehicle); err != nil {
		return nil, err
	}
	s.events.PublishPending(ctx, vehicle)

	response := ToVehicleResponse(vehicle)
	return &response, nil
}

// TransferOwnership moves a vehicle to another existing customer
func (s *VehicleService) TransferOwnership(ctx context.Context, id uuid.UUID, cmd TransferVehicleCommand) (*VehicleResponse, error) {
	if err := validation.Validate(cmd); err != nil {
		return nil, err
	}
	vehicle, err := s.vehicleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureOwnerExists(ctx, cmd.NewOwnerID); err != nil {
		return nil, err
	}

	previousOwner := vehicle.OwnerID()
	if err := vehicle.TransferOwnership(cmd.NewOwnerID); err != nil {
		return nil, err
	}
	if err := s.vehicleRepo.Save(ctx, vehicle); err != nil {
		return nil, err
	}
	s.events.PublishPending(ctx, vehicle)

	s.logger.Info("vehicle ownership transferred",
		zap.String("vehicle_id", id.String()),
		zap.String("previous_owner_id", previousOwner.String()),
		zap.String("owner_id", cmd.NewOwnerID.String()),
	)

	response := ToVehicleResponse(vehicle)
	return &response, nil
}

// Delete removes a vehicle
func (s *VehicleService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.vehicleRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("vehicle deleted", zap.String("vehicle_id", id.String()))
	return nil
}

func (s *VehicleService) ensureOwnerExists(ctx context.Context, ownerID uuid.UUID) error {
	_, err := s.customerRepo.FindByID(ctx, ownerID)
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewDomainError(CodeOwnerNotFound, "Vehicle owner does not exist")
	}
	return err
}

// ensurePlateFree fails when plate belongs to a vehicle other than self
func (s *VehicleService) ensurePlateFree(ctx context.Context, plate valueobject.LicensePlate, self uuid.UUID) error {
	existing, err := s.vehicleRepo.FindByPlate(ctx, plate)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.GetID() == self:
		return nil
	}
	return shared.NewConflictError(CodePlateInUse, "Vehicle with this plate already exists")
}
