package cadastros

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oficina/backend/internal/domain/shared"
	"github.com/oficina/backend/internal/domain/shared/valueobject"
)

// Event type constants
const (
	EventTypeServiceCreated      = "ServiceCreated"
	EventTypeServicePriceChanged = "ServicePriceChanged"
)

// ServiceCreatedEvent is published when a service is added to the catalog
type ServiceCreatedEvent struct {
	shared.BaseDomainEvent
	ServiceID uuid.UUID       `json:"service_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
}

// NewServiceCreatedEvent creates a new ServiceCreatedEvent
func NewServiceCreatedEvent(service *Service) *ServiceCreatedEvent {
	return &ServiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeServiceCreated, shared.AggregateService, service.GetID()),
		ServiceID:       service.GetID(),
		Name:            service.name.String(),
		Price:           service.price.Amount(),
	}
}

// ServicePriceChangedEvent is published when a service's price changes
type ServicePriceChangedEvent struct {
	shared.BaseDomainEvent
	ServiceID uuid.UUID       `json:"service_id"`
	OldPrice  decimal.Decimal `json:"old_price"`
	NewPrice  decimal.Decimal `json:"new_price"`
}

// NewServicePriceChangedEvent creates a new ServicePriceChangedEvent
func NewServicePriceChangedEvent(service *Service, oldPrice valueobject.Money) *ServicePriceChangedEvent {
	return &ServicePriceChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeServicePriceChanged, shared.AggregateService, service.GetID()),
		ServiceID:       service.GetID(),
		OldPrice:        oldPrice.Amount(),
		NewPrice:        service.price.Amount(),
	}
}
