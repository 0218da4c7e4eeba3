package estoque

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/oficina/backend/internal/domain/estoque"
)

// LowStockReportTaskName identifies the daily restock report
const LowStockReportTaskName = "estoque.low_stock_report"

// LowStockReport summarizes the items that need restocking.
// It runs as a scheduled task.
type LowStockReport struct {
	itemRepo estoque.InventoryItemRepository
	logger   *zap.Logger
}

// NewLowStockReport creates a new LowStockReport
func NewLowStockReport(itemRepo estoque.InventoryItemRepository, logger *zap.Logger) *LowStockReport {
	return &LowStockReport{itemRepo: itemRepo, logger: logger}
}

// Name returns the task name
func (r *LowStockReport) Name() string {
	return LowStockReportTaskName
}

// Run logs one line per item below its minimum and a closing summary
// with the cost of bringing every item back to its minimum.
func (r *LowStockReport) Run(ctx context.Context) error {
	items, err := r.itemRepo.FindBelowMinimum(ctx)
	if err != nil {
		return err
	}

	restockCost := decimal.Zero
	outOfStock := 0
	for _, item := range items {
		missing := item.Minimum() - item.Quantity()
		restockCost = restockCost.Add(item.UnitPrice().Amount().Mul(decimal.NewFromInt(int64(missing))))
		if item.Quantity() == 0 {
			outOfStock++
		}
		r.logger.Warn("item needs restocking",
			zap.String("item_id", item.GetID().String()),
			zap.String("code", item.Code()),
			zap.Int("quantity", item.Quantity()),
			zap.Int("minimum", item.Minimum()),
			zap.Int("missing", missing),
		)
	}

	r.logger.Info("low stock report",
		zap.Int("items_below_minimum", len(items)),
		zap.Int("items_out_of_stock", outOfStock),
		zap.String("restock_cost", restockCost.StringFixed(2)),
	)
	return nil
}
