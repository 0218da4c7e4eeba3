package ordemservico

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/oficina/backend/internal/application/event"
	"github.com/oficina/backend/internal/domain/ordemservico"
	"github.com/oficina/backend/internal/domain/ordemservico/acl"
	"github.com/oficina/backend/internal/domain/shared"
)

// MockWorkOrderRepository is a mock implementation of WorkOrderRepository
type MockWorkOrderRepository struct {
	mock.Mock
}

func (m *MockWorkOrderRepository) Save(ctx context.Context, order *ordemservico.WorkOrder) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockWorkOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordemservico.WorkOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordemservico.WorkOrder), args.Error(1)
}

func (m *MockWorkOrderRepository) FindByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]*ordemservico.WorkOrder, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ordemservico.WorkOrder), args.Error(1)
}

func (m *MockWorkOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*ordemservico.WorkOrder, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ordemservico.WorkOrder), args.Error(1)
}

func (m *MockWorkOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockFetchers implements every ACL fetcher
type MockFetchers struct {
	mock.Mock
}

func (m *MockFetchers) FetchCustomerByVehicle(ctx context.Context, vehicleID uuid.UUID) (acl.CustomerSnapshot, bool, error) {
	args := m.Called(ctx, vehicleID)
	return args.Get(0).(acl.CustomerSnapshot), args.Bool(1), args.Error(2)
}

func (m *MockFetchers) FetchServiceByID(ctx context.Context, serviceID uuid.UUID) (acl.ServiceSnapshot, bool, error) {
	args := m.Called(ctx, serviceID)
	return args.Get(0).(acl.ServiceSnapshot), args.Bool(1), args.Error(2)
}

func (m *MockFetchers) FetchPartByID(ctx context.Context, itemID uuid.UUID) (acl.PartSnapshot, bool, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).(acl.PartSnapshot), args.Bool(1), args.Error(2)
}

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

func (p *recordingPublisher) published() []shared.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]shared.DomainEvent(nil), p.events...)
}

type fixture struct {
	svc       *WorkOrderService
	repo      *MockWorkOrderRepository
	fetchers  *MockFetchers
	publisher *recordingPublisher
}

func newFixture() *fixture {
	repo := new(MockWorkOrderRepository)
	fetchers := new(MockFetchers)
	publisher := &recordingPublisher{}
	dispatcher := event.NewDispatcher(publisher, zap.NewNop())
	return &fixture{
		svc:       NewWorkOrderService(repo, fetchers, fetchers, fetchers, dispatcher, zap.NewNop()),
		repo:      repo,
		fetchers:  fetchers,
		publisher: publisher,
	}
}

func joaoSilva() acl.CustomerSnapshot {
	return acl.CustomerSnapshot{
		CustomerID: uuid.New(),
		Name:       "João Silva",
		Document:   "52998224725",
	}
}

// storedOrder returns an open order as the repository would load it
func storedOrder() *ordemservico.WorkOrder {
	order, err := ordemservico.OpenWorkOrder(joaoSilva(), uuid.New(), "Barulho na suspensão")
	if err != nil {
		panic(err)
	}
	order.ClearDomainEvents()
	return order
}

// loadedCopy returns a second instance of order, as a concurrent request
// loading the same row would get it
func loadedCopy(order *ordemservico.WorkOrder) *ordemservico.WorkOrder {
	root := shared.RestoreBaseAggregateRoot(order.GetID(), order.GetCreatedAt(), order.GetUpdatedAt(), order.GetVersion())
	return ordemservico.RehydrateWorkOrder(root, ordemservico.WorkOrderState{
		CustomerID:   order.CustomerID(),
		CustomerName: order.CustomerName(),
		VehicleID:    order.VehicleID(),
		Complaint:    order.Complaint(),
		Status:       order.Status(),
		Services:     order.Services(),
		Parts:        order.Parts(),
		CancelReason: order.CancelReason(),
		StartedAt:    order.StartedAt(),
		CompletedAt:  order.CompletedAt(),
		DeliveredAt:  order.DeliveredAt(),
		CancelledAt:  order.CancelledAt(),
	})
}

func sameOrder(order *ordemservico.WorkOrder) any {
	return mock.MatchedBy(func(o *ordemservico.WorkOrder) bool { return o == order })
}
