package acl

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ServiceSnapshot is the work order context's view of a catalog service
type ServiceSnapshot struct {
	ServiceID uuid.UUID
	Name      string
	Price     decimal.Decimal
	Currency  string
}

// ServiceFetcher resolves catalog services by identity
type ServiceFetcher interface {
	// FetchServiceByID returns the current catalog entry; ok is false when it does not exist
	FetchServiceByID(ctx context.Context, serviceID uuid.UUID) (snapshot ServiceSnapshot, ok bool, err error)
}
