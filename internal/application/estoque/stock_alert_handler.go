package estoque

import (
	"context"

	"go.uber.org/zap"

	"github.com/oficina/backend/internal/domain/estoque"
	"github.com/oficina/backend/internal/domain/shared"
)

// StockBelowMinimumHandler raises a restock alert in the log when an item
// drops under its threshold
type StockBelowMinimumHandler struct {
	logger *zap.Logger
}

// NewStockBelowMinimumHandler creates a new StockBelowMinimumHandler
func NewStockBelowMinimumHandler(logger *zap.Logger) *StockBelowMinimumHandler {
	return &StockBelowMinimumHandler{logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *StockBelowMinimumHandler) EventTypes() []string {
	return []string{estoque.EventTypeStockBelowMinimum}
}

// Handle logs the alert. Events of other types are ignored.
func (h *StockBelowMinimumHandler) Handle(_ context.Context, evt shared.DomainEvent) error {
	e, ok := evt.(*estoque.StockBelowMinimumEvent)
	if !ok {
		return nil
	}

	alertType := "low_stock"
	if e.Quantity == 0 {
		alertType = "out_of_stock"
	}
	h.logger.Warn("stock below minimum",
		zap.String("item_id", e.ItemID.String()),
		zap.String("code", e.Code),
		zap.Int("quantity", e.Quantity),
		zap.Int("minimum", e.Minimum),
		zap.String("alert_type", alertType),
	)
	return nil
}
