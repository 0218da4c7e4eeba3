package estoque

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/oficina/backend/internal/application/event"
	"github.com/oficina/backend/internal/application/validation"
	"github.com/oficina/backend/internal/domain/estoque"
	"github.com/oficina/backend/internal/domain/shared"
	"github.com/oficina/backend/internal/domain/shared/valueobject"
)

// maxLockAttempts bounds retries of a stock change that lost an optimistic-lock race
const maxLockAttempts = 3

// CodeItemCodeInUse is raised when an item code is already stocked
const CodeItemCodeInUse = "ITEM_CODE_IN_USE"

// InventoryService handles stocked parts and their quantities
type InventoryService struct {
	itemRepo estoque.InventoryItemRepository
	events   *event.Dispatcher
	logger   *zap.Logger
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(itemRepo estoque.InventoryItemRepository, events *event.Dispatcher, logger *zap.Logger) *InventoryService {
	return &InventoryService{
		itemRepo: itemRepo,
		events:   events,
		logger:   logger,
	}
}

// Create stocks a new part. Currency defaults to BRL.
func (s *InventoryService) Create(ctx context.Context, cmd CreateItemCommand) (*ItemResponse, error) {
	if err := validation.Validate(cmd); err != nil {
		return nil, err
	}
	code, err := estoque.NormalizeItemCode(cmd.Code)
	if err != nil {
		return nil, err
	}
	_, err = s.itemRepo.FindByCode(ctx, code)
	switch {
	case err == nil:
		return nil, shared.NewConflictError(CodeItemCodeInUse, "Inventory item with this code already exists")
	case !errors.Is(err, shared.ErrNotFound):
		return nil, err
	}

	currency := valueobject.DefaultCurrency
	if cmd.Currency != "" {
		currency = valueobject.Currency(cmd.Currency)
	}
	price, err := valueobject.NewMoney(cmd.UnitPrice, currency)
	if err != nil {
		return nil, err
	}

	item, err := estoque.NewInventoryItem(code, cmd.Name, price, cmd.Minimum)
	if err != nil {
		return nil, err
	}
	if cmd.InitialQuantity > 0 {
		if err := item.AddStock(cmd.InitialQuantity); err != nil {
			return nil, err
		}
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	s.events.PublishPending(ctx, item)

	s.logger.Info("inventory item created",
		zap.String("item_id", item.GetID().String()),
		zap.String("code", item.Code()),
		zap.Int("quantity", item.Quantity()),
	)

	response := ToItemResponse(item)
	return &response, nil
}

// GetByID retrieves an item by ID
func (s *InventoryService) GetByID(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToItemResponse(item)
	return &response, nil
}

// GetByCode retrieves an item by code, case-insensitively
func (s *InventoryService) GetByCode(ctx context.Context, code string) (*ItemResponse, error) {
	normalized, err := estoque.NormalizeItemCode(code)
	if err != nil {
		return nil, err
	}
	item, err := s.itemRepo.FindByCode(ctx, normalized)
	if err != nil {
		return nil, err
	}
	response := ToItemResponse(item)
	return &response, nil
}

// List lists items matching the filter
func (s *InventoryService) List(ctx context.Context, filter shared.Filter) ([]ItemResponse, error) {
	items, err := s.itemRepo.FindAll(ctx, filter.Normalize())
	if err != nil {
		return nil, err
	}
	return ToItemResponses(items), nil
}

// ListBelowMinimum lists items that need restocking
func (s *InventoryService) ListBelowMinimum(ctx context.Context) ([]ItemResponse, error) {
	items, err := s.itemRepo.FindBelowMinimum(ctx)
	if err != nil {
		return nil, err
	}
	return ToItemResponses(items), nil
}

// Update changes an item's name, price or restock threshold
func (s *InventoryService) Update(ctx context.Context, id uuid.UUID, cmd UpdateItemCommand) (*ItemResponse, error) {
	if err := validation.Validate(cmd); err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(item *estoque.InventoryItem) error {
		if cmd.Name != nil {
			if err := item.Rename(*cmd.Name); err != nil {
				return err
			}
		}
		if cmd.UnitPrice != nil {
			price, err := valueobject.NewMoney(*cmd.UnitPrice, item.UnitPrice().Currency())
			if err != nil {
				return err
			}
			if err := item.UpdatePrice(price); err != nil {
				return err
			}
		}
		if cmd.Minimum != nil {
			if err := item.SetMinimum(*cmd.Minimum); err != nil {
				return err
			}
		}
		return nil
	})
}

// AddStock records received units
func (s *InventoryService) AddStock(ctx context.Context, id uuid.UUID, cmd StockMovementCommand) (*ItemResponse, error) {
	if err := validation.Validate(cmd); err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(item *estoque.InventoryItem) error {
		return item.AddStock(cmd.Quantity)
	})
}

// RemoveStock takes units off the shelf; INSUFFICIENT_STOCK when short
func (s *InventoryService) RemoveStock(ctx context.Context, id uuid.UUID, cmd StockMovementCommand) (*ItemResponse, error) {
	if err := validation.Validate(cmd); err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(item *estoque.InventoryItem) error {
		return item.RemoveStock(cmd.Quantity)
	})
}

// AdjustStock sets the on-hand quantity after a physical count
func (s *InventoryService) AdjustStock(ctx context.Context, id uuid.UUID, cmd AdjustStockCommand) (*ItemResponse, error) {
	if err := validation.Validate(cmd); err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(item *estoque.InventoryItem) error {
		return item.AdjustStock(cmd.ActualQuantity, cmd.Reason)
	})
}

// Delete removes an item
func (s *InventoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.itemRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("inventory item deleted", zap.String("item_id", id.String()))
	return nil
}

func (s *InventoryService) mutate(ctx context.Context, id uuid.UUID, change func(*estoque.InventoryItem) error) (*ItemResponse, error) {
	item, err := updateWithLock(ctx, s.itemRepo, id, change)
	if err != nil {
		return nil, err
	}
	s.events.PublishPending(ctx, item)

	response := ToItemResponse(item)
	return &response, nil
}

// updateWithLock loads the item, applies change and saves it guarded by the
// loaded version. A lost race reloads and retries up to maxLockAttempts.
func updateWithLock(
	ctx context.Context,
	repo estoque.InventoryItemRepository,
	id uuid.UUID,
	change func(*estoque.InventoryItem) error,
) (*estoque.InventoryItem, error) {
	var err error
	for attempt := 0; attempt < maxLockAttempts; attempt++ {
		var item *estoque.InventoryItem
		item, err = repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		expected := item.GetVersion()
		if err := change(item); err != nil {
			return nil, err
		}
		err = repo.SaveWithLock(ctx, item, expected)
		if err == nil {
			return item, nil
		}
		if !errors.Is(err, shared.ErrConcurrentModification) {
			return nil, err
		}
	}
	return nil, err
}
