package cadastros

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/oficina/backend/internal/application/event"
	"github.com/oficina/backend/internal/domain/cadastros"
	"github.com/oficina/backend/internal/domain/shared"
	"github.com/oficina/backend/internal/domain/shared/valueobject"
)

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *cadastros.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*cadastros.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cadastros.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByDocument(ctx context.Context, document valueobject.NationalID) (*cadastros.Customer, error) {
	args := m.Called(ctx, document)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cadastros.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*cadastros.Customer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cadastros.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockVehicleRepository is a mock implementation of VehicleRepository
type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) Save(ctx context.Context, vehicle *cadastros.Vehicle) error {
	return m.Called(ctx, vehicle).Error(0)
}

func (m *MockVehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*cadastros.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cadastros.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) FindByPlate(ctx context.Context, plate valueobject.LicensePlate) (*cadastros.Vehicle, error) {
	args := m.Called(ctx, plate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cadastros.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*cadastros.Vehicle, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cadastros.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*cadastros.Vehicle, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cadastros.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockServiceRepository is a mock implementation of ServiceRepository
type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) Save(ctx context.Context, service *cadastros.Service) error {
	return m.Called(ctx, service).Error(0)
}

func (m *MockServiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*cadastros.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cadastros.Service), args.Error(1)
}

func (m *MockServiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*cadastros.Service, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cadastros.Service), args.Error(1)
}

func (m *MockServiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// recordingPublisher keeps every published event
type recordingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.EventType()
	}
	return types
}

func newDispatcher() (*event.Dispatcher, *recordingPublisher) {
	publisher := &recordingPublisher{}
	return event.NewDispatcher(publisher, zap.NewNop()), publisher
}

// stored returns an aggregate as a repository would: no pending events
func storedCustomer(name, document string) *cadastros.Customer {
	c, err := cadastros.NewCustomer(name, document)
	if err != nil {
		panic(err)
	}
	c.ClearDomainEvents()
	return c
}

func storedVehicle(ownerID uuid.UUID, plate string) *cadastros.Vehicle {
	v, err := cadastros.NewVehicle(ownerID, plate, "Volkswagen", "Gol", 2019)
	if err != nil {
		panic(err)
	}
	v.ClearDomainEvents()
	return v
}

func storedService(name, price string) *cadastros.Service {
	s, err := cadastros.NewService(name, "", valueobject.MustBRL(price))
	if err != nil {
		panic(err)
	}
	s.ClearDomainEvents()
	return s
}
