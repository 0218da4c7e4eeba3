package acl

import (
	"context"

	"github.com/google/uuid"
)

// CustomerSnapshot is the work order context's view of a customer
type CustomerSnapshot struct {
	CustomerID uuid.UUID
	Name       string
	// Document holds CPF/CNPJ digits only.
	Document string
	Phone    string
	Email    string
}

// IsZero reports whether the snapshot is the NotFound zero value
func (s CustomerSnapshot) IsZero() bool {
	return s.CustomerID == uuid.Nil
}

// CustomerFetcher resolves the customer who owns a vehicle
type CustomerFetcher interface {
	// FetchCustomerByVehicle returns the owner of vehicleID. ok is false when
	// the vehicle is unknown or its owner no longer exists.
	FetchCustomerByVehicle(ctx context.Context, vehicleID uuid.UUID) (snapshot CustomerSnapshot, ok bool, err error)
}
