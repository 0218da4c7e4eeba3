package cadastros

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/oficina/backend/internal/domain/shared"
	"github.com/oficina/backend/internal/domain/shared/valueobject"
)

const (
	// MinVehicleYear is the oldest accepted model year
	MinVehicleYear = 1900
	// maxVehicleAttributeLength bounds brand and model names
	maxVehicleAttributeLength = 60
)

// Vehicle is a car registered to a customer
type Vehicle struct {
	shared.BaseAggregateRoot
	ownerID uuid.UUID
	plate   valueobject.LicensePlate
	brand   valueobject.Description
	model   valueobject.Description
	year    int
}

type vehicleDescription struct {
	brand valueobject.Description
	model valueobject.Description
	year  int
}

// NewVehicle registers a vehicle for an existing customer
func NewVehicle(ownerID uuid.UUID, plate, brand, model string, year int) (*Vehicle, error) {
	if err := validateOwner(ownerID); err != nil {
		return nil, err
	}
	licensePlate, err := valueobject.NewLicensePlate(plate)
	if err != nil {
		return nil, err
	}
	desc, err := newVehicleDescription(brand, model, year)
	if err != nil {
		return nil, err
	}

	vehicle := &Vehicle{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ownerID:           ownerID,
		plate:             licensePlate,
		brand:             desc.brand,
		model:             desc.model,
		year:              desc.year,
	}

	vehicle.AddDomainEvent(NewVehicleRegisteredEvent(vehicle))

	return vehicle, nil
}

// RehydrateVehicle rebuilds a stored vehicle without raising events
func RehydrateVehicle(root shared.BaseAggregateRoot, ownerID uuid.UUID, plate valueobject.LicensePlate, brand, model valueobject.Description, year int) *Vehicle {
	return &Vehicle{
		BaseAggregateRoot: root,
		ownerID:           ownerID,
		plate:             plate,
		brand:             brand,
		model:             model,
		year:              year,
	}
}

func validateOwner(ownerID uuid.UUID) error {
	if ownerID == uuid.Nil {
		return shared.NewDomainError("INVALID_OWNER", "Vehicle owner is required")
	}
	return nil
}

func newVehicleDescription(brand, model string, year int) (vehicleDescription, error) {
	b, err := valueobject.NewDescription(brand, maxVehicleAttributeLength)
	if err != nil {
		return vehicleDescription{}, err
	}
	m, err := valueobject.NewDescription(model, maxVehicleAttributeLength)
	if err != nil {
		return vehicleDescription{}, err
	}
	maxYear := time.Now().Year() + 1
	if year < MinVehicleYear || year > maxYear {
		return vehicleDescription{}, shared.NewDomainError("INVALID_YEAR",
			fmt.Sprintf("Vehicle year must be between %d and %d", MinVehicleYear, maxYear))
	}
	return vehicleDescription{brand: b, model: m, year: year}, nil
}

// Kind identifies the aggregate type
func (v *Vehicle) Kind() shared.AggregateKind {
	return shared.AggregateVehicle
}

// OwnerID returns the owning customer's identity
func (v *Vehicle) OwnerID() uuid.UUID {
	return v.ownerID
}

// Plate returns the license plate
func (v *Vehicle) Plate() valueobject.LicensePlate {
	return v.plate
}

// Brand returns the manufacturer name
func (v *Vehicle) Brand() valueobject.Description {
	return v.brand
}

// Model returns the model name
func (v *Vehicle) Model() valueobject.Description {
	return v.model
}

// Year returns the model year
func (v *Vehicle) Year() int {
	return v.year
}

// UpdatePlate replaces the license plate, e.g. after a Mercosul conversion
func (v *Vehicle) UpdatePlate(plate string) error {
	licensePlate, err := valueobject.NewLicensePlate(plate)
	if err != nil {
		return err
	}

	v.plate = licensePlate
	v.touch()
	return nil
}

// UpdateDescription replaces brand, model and year together
func (v *Vehicle) UpdateDescription(brand, model string, year int) error {
	desc, err := newVehicleDescription(brand, model, year)
	if err != nil {
		return err
	}

	v.brand = desc.brand
	v.model = desc.model
	v.year = desc.year
	v.touch()
	return nil
}

// TransferOwnership moves the vehicle to another customer
func (v *Vehicle) TransferOwnership(newOwnerID uuid.UUID) error {
	if err := validateOwner(newOwnerID); err != nil {
		return err
	}
	if newOwnerID == v.ownerID {
		return shared.NewDomainError("SAME_OWNER", "Vehicle already belongs to this customer")
	}

	previous := v.ownerID
	v.ownerID = newOwnerID
	v.touch()

	v.AddDomainEvent(NewVehicleOwnershipTransferredEvent(v, previous))
	return nil
}

func (v *Vehicle) touch() {
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
}
