package estoque

import (
	"context"

	"github.com/google/uuid"

	"github.com/oficina/backend/internal/domain/shared"
)

// InventoryItemRepository defines the interface for inventory persistence.
// Finders return shared.ErrNotFound when nothing matches.
type InventoryItemRepository interface {
	// Save creates or updates an item, keyed by identity
	Save(ctx context.Context, item *InventoryItem) error
	// SaveWithLock updates an item only if the stored version still equals
	// expectedVersion; otherwise it fails with a CONCURRENT_MODIFICATION conflict
	SaveWithLock(ctx context.Context, item *InventoryItem, expectedVersion int) error

	// FindByID finds an item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryItem, error)

	// FindByCode finds an item by its normalized code
	FindByCode(ctx context.Context, code string) (*InventoryItem, error)

	// FindAll lists items; Filter.Search matches code or name
	FindAll(ctx context.Context, filter shared.Filter) ([]*InventoryItem, error)

	// FindBelowMinimum lists items whose quantity is under their threshold
	FindBelowMinimum(ctx context.Context) ([]*InventoryItem, error)

	// Delete removes an item
	Delete(ctx context.Context, id uuid.UUID) error
}
