package cadastros

import (
	"github.com/google/uuid"

	"github.com/oficina/backend/internal/domain/shared"
)

// Event type constants
const (
	EventTypeCustomerCreated = "CustomerCreated"
	EventTypeCustomerUpdated = "CustomerUpdated"
)

// CustomerCreatedEvent is published when a new customer is registered
type CustomerCreatedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Name       string    `json:"name"`
	Document   string    `json:"document"`
}

// NewCustomerCreatedEvent creates a new CustomerCreatedEvent
func NewCustomerCreatedEvent(customer *Customer) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerCreated, shared.AggregateCustomer, customer.GetID()),
		CustomerID:      customer.GetID(),
		Name:            customer.name.String(),
		Document:        customer.document.String(),
	}
}

// CustomerUpdatedEvent is published when a customer's data changes
type CustomerUpdatedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Name       string    `json:"name"`
	Document   string    `json:"document"`
	Phone      string    `json:"phone,omitempty"`
	Email      string    `json:"email,omitempty"`
}

// NewCustomerUpdatedEvent creates a new CustomerUpdatedEvent
func NewCustomerUpdatedEvent(customer *Customer) *CustomerUpdatedEvent {
	return &CustomerUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerUpdated, shared.AggregateCustomer, customer.GetID()),
		CustomerID:      customer.GetID(),
		Name:            customer.name.String(),
		Document:        customer.document.String(),
		Phone:           customer.phone,
		Email:           customer.email,
	}
}
