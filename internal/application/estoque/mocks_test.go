package estoque

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/oficina/backend/internal/application/event"
	"github.com/oficina/backend/internal/domain/estoque"
	"github.com/oficina/backend/internal/domain/shared"
	"github.com/oficina/backend/internal/domain/shared/valueobject"
)

// MockInventoryItemRepository is a mock implementation of InventoryItemRepository
type MockInventoryItemRepository struct {
	mock.Mock
}

func (m *MockInventoryItemRepository) Save(ctx context.Context, item *estoque.InventoryItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockInventoryItemRepository) SaveWithLock(ctx context.Context, item *estoque.InventoryItem, expectedVersion int) error {
	return m.Called(ctx, item, expectedVersion).Error(0)
}

func (m *MockInventoryItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*estoque.InventoryItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*estoque.InventoryItem), args.Error(1)
}

func (m *MockInventoryItemRepository) FindByCode(ctx context.Context, code string) (*estoque.InventoryItem, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*estoque.InventoryItem), args.Error(1)
}

func (m *MockInventoryItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*estoque.InventoryItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*estoque.InventoryItem), args.Error(1)
}

func (m *MockInventoryItemRepository) FindBelowMinimum(ctx context.Context) ([]*estoque.InventoryItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*estoque.InventoryItem), args.Error(1)
}

func (m *MockInventoryItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
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

// storedItem returns an item as the repository would load it
func storedItem(code string, quantity, minimum int) *estoque.InventoryItem {
	item, err := estoque.NewInventoryItem(code, "Filtro de óleo", valueobject.MustBRL("35.90"), minimum)
	if err != nil {
		panic(err)
	}
	if quantity > 0 {
		if err := item.AddStock(quantity); err != nil {
			panic(err)
		}
	}
	item.ClearDomainEvents()
	return item
}
