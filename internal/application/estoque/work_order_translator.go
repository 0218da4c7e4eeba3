package estoque

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/oficina/backend/internal/domain/estoque"
	"github.com/oficina/backend/internal/domain/ordemservico/acl"
	"github.com/oficina/backend/internal/domain/shared"
	"github.com/oficina/backend/internal/infrastructure/telemetry"
)

// WorkOrderTranslator answers the work order context's questions about parts
type WorkOrderTranslator struct {
	itemRepo estoque.InventoryItemRepository
}

// NewWorkOrderTranslator creates a new WorkOrderTranslator
func NewWorkOrderTranslator(itemRepo estoque.InventoryItemRepository) *WorkOrderTranslator {
	return &WorkOrderTranslator{itemRepo: itemRepo}
}

// FetchPartByID returns the part's current price and on-hand quantity
func (t *WorkOrderTranslator) FetchPartByID(ctx context.Context, itemID uuid.UUID) (acl.PartSnapshot, bool, error) {
	ctx, span := telemetry.StartSpan(ctx, "estoque.fetch_part",
		telemetry.SpanAttrItemID, itemID.String(),
	)
	defer span.End()

	item, err := t.itemRepo.FindByID(ctx, itemID)
	if errors.Is(err, shared.ErrNotFound) {
		telemetry.SetAttributes(span, telemetry.SpanAttrFound, false)
		return acl.PartSnapshot{}, false, nil
	}
	if err != nil {
		telemetry.RecordError(span, err)
		return acl.PartSnapshot{}, false, err
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrFound, true,
		telemetry.SpanAttrQuantity, item.Quantity(),
	)
	return acl.PartSnapshot{
		ItemID:    item.GetID(),
		Code:      item.Code(),
		Name:      item.Name().String(),
		UnitPrice: item.UnitPrice().Amount(),
		Currency:  string(item.UnitPrice().Currency()),
		Available: item.Quantity(),
	}, true, nil
}

var _ acl.PartFetcher = (*WorkOrderTranslator)(nil)
