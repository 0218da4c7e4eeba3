package cadastros

import (
	"strings"
	"time"

	"github.com/oficina/backend/internal/domain/shared"
	"github.com/oficina/backend/internal/domain/shared/valueobject"
)

const (
	maxServiceNameLength        = 120
	maxServiceDescriptionLength = 500
)

// Service is a catalog entry for labour the shop sells, e.g. "Troca de óleo"
type Service struct {
	shared.BaseAggregateRoot
	name        valueobject.Description
	description valueobject.Description
	price       valueobject.Money
}

// NewService creates a catalog service. The description may be empty.
func NewService(name, description string, price valueobject.Money) (*Service, error) {
	serviceName, err := valueobject.NewDescription(name, maxServiceNameLength)
	if err != nil {
		return nil, err
	}
	desc, err := optionalDescription(description)
	if err != nil {
		return nil, err
	}
	if err := validateServicePrice(price); err != nil {
		return nil, err
	}

	service := &Service{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		name:              serviceName,
		description:       desc,
		price:             price,
	}

	service.AddDomainEvent(NewServiceCreatedEvent(service))

	return service, nil
}

// RehydrateService rebuilds a stored service without raising events
func RehydrateService(root shared.BaseAggregateRoot, name, description valueobject.Description, price valueobject.Money) *Service {
	return &Service{
		BaseAggregateRoot: root,
		name:              name,
		description:       description,
		price:             price,
	}
}

func optionalDescription(raw string) (valueobject.Description, error) {
	if strings.TrimSpace(raw) == "" {
		return valueobject.Description{}, nil
	}
	return valueobject.NewDescription(raw, maxServiceDescriptionLength)
}

func validateServicePrice(price valueobject.Money) error {
	if !price.IsPositive() {
		return shared.NewDomainError("INVALID_PRICE", "Service price must be positive")
	}
	return nil
}

// Kind identifies the aggregate type
func (s *Service) Kind() shared.AggregateKind {
	return shared.AggregateService
}

// Name returns the service name
func (s *Service) Name() valueobject.Description {
	return s.name
}

// Description returns the optional long description
func (s *Service) Description() valueobject.Description {
	return s.description
}

// Price returns the labour price
func (s *Service) Price() valueobject.Money {
	return s.price
}

// Rename replaces the service name
func (s *Service) Rename(name string) error {
	serviceName, err := valueobject.NewDescription(name, maxServiceNameLength)
	if err != nil {
		return err
	}

	s.name = serviceName
	s.touch()
	return nil
}

// UpdateDescription replaces the long description; empty clears it
func (s *Service) UpdateDescription(description string) error {
	desc, err := optionalDescription(description)
	if err != nil {
		return err
	}

	s.description = desc
	s.touch()
	return nil
}

// UpdatePrice changes the labour price
func (s *Service) UpdatePrice(price valueobject.Money) error {
	if err := validateServicePrice(price); err != nil {
		return err
	}

	old := s.price
	s.price = price
	s.touch()

	s.AddDomainEvent(NewServicePriceChangedEvent(s, old))
	return nil
}

func (s *Service) touch() {
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}
