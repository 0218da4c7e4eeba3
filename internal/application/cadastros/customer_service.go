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

// Error codes raised by the registry services
const (
	CodeDocumentInUse    = "DOCUMENT_IN_USE"
	CodePlateInUse       = "PLATE_IN_USE"
	CodeOwnerNotFound    = "OWNER_NOT_FOUND"
	CodeCustomerHasFleet = "CUSTOMER_HAS_VEHICLES"
)

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo cadastros.CustomerRepository
	vehicleRepo  cadastros.VehicleRepository
	events       *event.Dispatcher
	logger       *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(
	customerRepo cadastros.CustomerRepository,
	vehicleRepo cadastros.VehicleRepository,
	events *event.Dispatcher,
	logger *zap.Logger,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		vehicleRepo:  vehicleRepo,
		events:       events,
		logger:       logger,
	}
}

// Create registers a new customer. The document must not belong to another customer.
func (s *CustomerService) Create(ctx context.Context, cmd CreateCustomerCommand) (*CustomerResponse, error) {
	if err := validation.Validate(cmd); err != nil {
		return nil, err
	}
	document, err := valueobject.NewNationalID(cmd.Document)
	if err != nil {
		return nil, err
	}
	if err := s.ensureDocumentFree(ctx, document, uuid.Nil); err != nil {
		return nil, err
	}

	customer, err := cadastros.NewCustomer(cmd.Name, cmd.Document)
	if err != nil {
		return nil, err
	}
	if cmd.Phone != "" || cmd.Email != "" {
		if err := customer.SetContact(cmd.Phone, cmd.Email); err != nil {
			return nil, err
		}
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	s.events.PublishPending(ctx, customer)

	s.logger.Info("customer created",
		zap.String("customer_id", customer.GetID().String()),
		zap.String("document_kind", customer.Document().Kind().String()),
	)

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByDocument retrieves a customer by CPF or CNPJ, formatted or not
func (s *CustomerService) GetByDocument(ctx context.Context, document string) (*CustomerResponse, error) {
	nationalID, err := valueobject.NewNationalID(document)
	if err != nil {
		return nil, err
	}
	customer, err := s.customerRepo.FindByDocument(ctx, nationalID)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves a page of customers
func (s *CustomerService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[CustomerResponse], error) {
	filter = filter.Normalize()

	customers, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[CustomerResponse]{}, err
	}
	total, err := s.customerRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[CustomerResponse]{}, err
	}

	items := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		items[i] = ToCustomerResponse(c)
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// Update changes the fields set in cmd
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, cmd UpdateCustomerCommand) (*CustomerResponse, error) {
	if err := validation.Validate(cmd); err != nil {
		return nil, err
	}
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		if err := customer.UpdateName(*cmd.Name); err != nil {
			return nil, err
		}
	}
	if cmd.Document != nil {
		document, err := valueobject.NewNationalID(*cmd.Document)
		if err != nil {
			return nil, err
		}
		if !document.Equals(customer.Document()) {
			if err := s.ensureDocumentFree(ctx, document, customer.GetID()); err != nil {
				return nil, err
			}
			if err := customer.UpdateDocument(*cmd.Document); err != nil {
				return nil, err
			}
		}
	}
	if cmd.Phone != nil || cmd.Email != nil {
		phone, email := customer.Phone(), customer.Email()
		if cmd.Phone != nil {
			phone = *cmd.Phone
		}
		if cmd.Email != nil {
			email = *cmd.Email
		}
		if err := customer.SetContact(phone, email); err != nil {
			return nil, err
		}
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	s.events.PublishPending(ctx, customer)

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Delete removes a customer who no longer owns any vehicle
func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.customerRepo.FindByID(ctx, id); err != nil {
		return err
	}
	vehicles, err := s.vehicleRepo.FindByOwner(ctx, id)
	if err != nil {
		return err
	}
	if len(vehicles) > 0 {
		return shared.NewConflictError(CodeCustomerHasFleet, "Customer still owns registered vehicles")
	}

	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("customer deleted", zap.String("customer_id", id.String()))
	return nil
}

// ensureDocumentFree fails when document belongs to a customer other than self
func (s *CustomerService) ensureDocumentFree(ctx context.Context, document valueobject.NationalID, self uuid.UUID) error {
	existing, err := s.customerRepo.FindByDocument(ctx, document)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.GetID() == self:
		return nil
	}
	return shared.NewConflictError(CodeDocumentInUse, "Customer with this document already exists")
}
