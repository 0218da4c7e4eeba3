package cadastros

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/oficina/backend/internal/application/event"
	"github.com/oficina/backend/internal/application/validation"
	"github.com/oficina/backend/internal/domain/cadastros"
	"github.com/oficina/backend/internal/domain/shared"
	"github.com/oficina/backend/internal/domain/shared/valueobject"
)

// CatalogService manages the catalog of services the shop sells
type CatalogService struct {
	serviceRepo cadastros.ServiceRepository
	events      *event.Dispatcher
	logger      *zap.Logger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(serviceRepo cadastros.ServiceRepository, events *event.Dispatcher, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		serviceRepo: serviceRepo,
		events:      events,
		logger:      logger,
	}
}

// Create adds a service to the catalog. Currency defaults to BRL.
func (s *CatalogService) Create(ctx context.Context, cmd CreateServiceCommand) (*ServiceResponse, error) {
	if err := validation.Validate(cmd); err != nil {
		return nil, err
	}
	currency := valueobject.DefaultCurrency
	if cmd.Currency != "" {
		currency = valueobject.Currency(cmd.Currency)
	}
	price, err := valueobject.NewMoney(cmd.Price, currency)
	if err != nil {
		return nil, err
	}

	service, err := cadastros.NewService(cmd.Name, cmd.Description, price)
	if err != nil {
		return nil, err
	}
	if err := s.serviceRepo.Save(ctx, service); err != nil {
		return nil, err
	}
	s.events.PublishPending(ctx, service)

	s.logger.Info("catalog service created",
		zap.String("service_id", service.GetID().String()),
		zap.String("price", price.String()),
	)

	response := ToServiceResponse(service)
	return &response, nil
}

// GetByID retrieves a catalog service by ID
func (s *CatalogService) GetByID(ctx context.Context, id uuid.UUID) (*ServiceResponse, error) {
	service, err := s.serviceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToServiceResponse(service)
	return &response, nil
}

// List lists catalog services matching the filter
func (s *CatalogService) List(ctx context.Context, filter shared.Filter) ([]ServiceResponse, error) {
	services, err := s.serviceRepo.FindAll(ctx, filter.Normalize())
	if err != nil {
		return nil, err
	}
	responses := make([]ServiceResponse, len(services))
	for i, svc := range services {
		responses[i] = ToServiceResponse(svc)
	}
	return responses, nil
}

// Update changes the fields set in cmd. A new price keeps the current currency.
// Work orders keep the price they were quoted.
func (s *CatalogService) Update(ctx context.Context, id uuid.UUID, cmd UpdateServiceCommand) (*ServiceResponse, error) {
	if err := validation.Validate(cmd); err != nil {
		return nil, err
	}
	service, err := s.serviceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		if err := service.Rename(*cmd.Name); err != nil {
			return nil, err
		}
	}
	if cmd.Description != nil {
		if err := service.UpdateDescription(*cmd.Description); err != nil {
			return nil, err
		}
	}
	if cmd.Price != nil {
		price, err := valueobject.NewMoney(*cmd.Price, service.Price().Currency())
		if err != nil {
			return nil, err
		}
		if !price.Equals(service.Price()) {
			if err := service.UpdatePrice(price); err != nil {
				return nil, err
			}
		}
	}

	if err := s.serviceRepo.Save(ctx, service); err != nil {
		return nil, err
	}
	s.events.PublishPending(ctx, service)

	response := ToServiceResponse(service)
	return &response, nil
}

// Delete removes a catalog service
func (s *CatalogService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("catalog service deleted", zap.String("service_id", id.String()))
	return nil
}
