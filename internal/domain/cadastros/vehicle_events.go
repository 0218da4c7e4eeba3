package cadastros

import (
	"github.com/google/uuid"

	"github.com/oficina/backend/internal/domain/shared"
)

// Event type constants
const (
	EventTypeVehicleRegistered           = "VehicleRegistered"
	EventTypeVehicleOwnershipTransferred = "VehicleOwnershipTransferred"
)

// VehicleRegisteredEvent is published when a vehicle is registered
type VehicleRegisteredEvent struct {
	shared.BaseDomainEvent
	VehicleID uuid.UUID `json:"vehicle_id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Plate     string    `json:"plate"`
}

// NewVehicleRegisteredEvent creates a new VehicleRegisteredEvent
func NewVehicleRegisteredEvent(vehicle *Vehicle) *VehicleRegisteredEvent {
	return &VehicleRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVehicleRegistered, shared.AggregateVehicle, vehicle.GetID()),
		VehicleID:       vehicle.GetID(),
		OwnerID:         vehicle.ownerID,
		Plate:           vehicle.plate.String(),
	}
}

// VehicleOwnershipTransferredEvent is published when a vehicle changes owner
type VehicleOwnershipTransferredEvent struct {
	shared.BaseDomainEvent
	VehicleID       uuid.UUID `json:"vehicle_id"`
	PreviousOwnerID uuid.UUID `json:"previous_owner_id"`
	NewOwnerID      uuid.UUID `json:"new_owner_id"`
}

// NewVehicleOwnershipTransferredEvent creates a new VehicleOwnershipTransferredEvent
func NewVehicleOwnershipTransferredEvent(vehicle *Vehicle, previousOwnerID uuid.UUID) *VehicleOwnershipTransferredEvent {
	return &VehicleOwnershipTransferredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVehicleOwnershipTransferred, shared.AggregateVehicle, vehicle.GetID()),
		VehicleID:       vehicle.GetID(),
		PreviousOwnerID: previousOwnerID,
		NewOwnerID:      vehicle.ownerID,
	}
}
