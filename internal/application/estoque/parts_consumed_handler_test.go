package estoque

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/oficina/backend/internal/domain/estoque"
	"github.com/oficina/backend/internal/domain/shared"
	infraevent "github.com/oficina/backend/internal/infrastructure/event"
)

// completedEvent mimics the work order completion event by shape only
type completedEvent struct {
	shared.BaseDomainEvent
	quantities map[uuid.UUID]int
}

func (e *completedEvent) PartQuantities() map[uuid.UUID]int { return e.quantities }

func newCompletedEvent(quantities map[uuid.UUID]int) *completedEvent {
	return &completedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeWorkOrderCompleted, shared.AggregateWorkOrder, uuid.New()),
		quantities:      quantities,
	}
}

func TestPartsConsumedHandler_DeductsEachItem(t *testing.T) {
	ctx := context.Background()
	repo := new(MockInventoryItemRepository)
	dispatcher, publisher := newDispatcher()
	handler := NewPartsConsumedHandler(repo, dispatcher, zap.NewNop())

	filter := storedItem("FLT-001", 10, 0)
	pads := storedItem("PAD-002", 4, 2)
	repo.On("FindByID", ctx, filter.GetID()).Return(filter, nil)
	repo.On("FindByID", ctx, pads.GetID()).Return(pads, nil)
	repo.On("SaveWithLock", ctx, mock.AnythingOfType("*estoque.InventoryItem"), 2).Return(nil)

	err := handler.Handle(ctx, newCompletedEvent(map[uuid.UUID]int{
		filter.GetID(): 1,
		pads.GetID():   3,
	}))

	require.NoError(t, err)
	assert.Equal(t, 9, filter.Quantity())
	assert.Equal(t, 1, pads.Quantity())
	assert.Contains(t, publisher.types(), estoque.EventTypeStockBelowMinimum)
	repo.AssertNumberOfCalls(t, "SaveWithLock", 2)
}

func TestPartsConsumedHandler_ShortItemDoesNotBlockOthers(t *testing.T) {
	ctx := context.Background()
	repo := new(MockInventoryItemRepository)
	dispatcher, _ := newDispatcher()
	core, logs := observer.New(zapcore.ErrorLevel)
	handler := NewPartsConsumedHandler(repo, dispatcher, zap.New(core))

	short := storedItem("FLT-001", 1, 0)
	plenty := storedItem("PAD-002", 10, 0)
	repo.On("FindByID", ctx, short.GetID()).Return(short, nil)
	repo.On("FindByID", ctx, plenty.GetID()).Return(plenty, nil)
	repo.On("SaveWithLock", ctx, plenty, 2).Return(nil)

	err := handler.Handle(ctx, newCompletedEvent(map[uuid.UUID]int{
		short.GetID():  5,
		plenty.GetID(): 2,
	}))

	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	assert.Equal(t, 1, short.Quantity())
	assert.Equal(t, 8, plenty.Quantity())
	assert.Equal(t, 1, logs.FilterMessage("failed to deduct consumed parts").Len())
}

func TestPartsConsumedHandler_RejectsEventWithoutQuantities(t *testing.T) {
	repo := new(MockInventoryItemRepository)
	dispatcher, _ := newDispatcher()
	handler := NewPartsConsumedHandler(repo, dispatcher, zap.NewNop())

	evt := shared.NewBaseDomainEvent(EventTypeWorkOrderCompleted, shared.AggregateWorkOrder, uuid.New())
	err := handler.Handle(context.Background(), &evt)

	assert.Error(t, err)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestPartsConsumedHandler_RedeliveryIsSkipped(t *testing.T) {
	ctx := context.Background()
	repo := new(MockInventoryItemRepository)
	dispatcher, _ := newDispatcher()

	item := storedItem("FLT-001", 10, 0)
	repo.On("FindByID", ctx, item.GetID()).Return(item, nil)
	repo.On("SaveWithLock", ctx, item, mock.Anything).Return(nil)

	bus := infraevent.NewInMemoryEventBus(zap.NewNop())
	bus.Subscribe(infraevent.NewIdempotentHandler(
		NewPartsConsumedHandler(repo, dispatcher, zap.NewNop()),
		infraevent.NewMemoryProcessedStore(), 0, zap.NewNop(),
	))

	evt := newCompletedEvent(map[uuid.UUID]int{item.GetID(): 3})
	require.NoError(t, bus.Publish(ctx, evt))
	require.NoError(t, bus.Publish(ctx, evt))

	assert.Equal(t, 7, item.Quantity())
	repo.AssertNumberOfCalls(t, "SaveWithLock", 1)
}

func TestStockBelowMinimumHandler_LogsAlert(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	handler := NewStockBelowMinimumHandler(zap.New(core))

	item := storedItem("FLT-001", 3, 2)
	require.NoError(t, item.RemoveStock(3))
	var alert shared.DomainEvent
	for _, e := range item.GetDomainEvents() {
		if e.EventType() == estoque.EventTypeStockBelowMinimum {
			alert = e
		}
	}
	require.NotNil(t, alert)

	require.NoError(t, handler.Handle(context.Background(), alert))

	entries := logs.FilterMessage("stock below minimum").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "out_of_stock", entries[0].ContextMap()["alert_type"])
	assert.Equal(t, []string{estoque.EventTypeStockBelowMinimum}, handler.EventTypes())
}
