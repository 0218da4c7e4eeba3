package estoque

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/oficina/backend/internal/domain/estoque"
)

func TestLowStockReport_Run(t *testing.T) {
	ctx := context.Background()
	repo := new(MockInventoryItemRepository)
	core, logs := observer.New(zapcore.InfoLevel)
	report := NewLowStockReport(repo, zap.New(core))

	low := storedItem("FLT-001", 1, 3)
	empty := storedItem("PAD-002", 0, 2)
	repo.On("FindBelowMinimum", ctx).Return([]*estoque.InventoryItem{low, empty}, nil)

	require.NoError(t, report.Run(ctx))

	assert.Equal(t, LowStockReportTaskName, report.Name())
	assert.Equal(t, 2, logs.FilterMessage("item needs restocking").Len())

	summary := logs.FilterMessage("low stock report").All()
	require.Len(t, summary, 1)
	fields := summary[0].ContextMap()
	assert.Equal(t, int64(2), fields["items_below_minimum"])
	assert.Equal(t, int64(1), fields["items_out_of_stock"])
	assert.Equal(t, "143.60", fields["restock_cost"])
}

func TestLowStockReport_RepositoryFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(MockInventoryItemRepository)
	report := NewLowStockReport(repo, zap.NewNop())
	boom := errors.New("connection reset")
	repo.On("FindBelowMinimum", ctx).Return(nil, boom)

	assert.ErrorIs(t, report.Run(ctx), boom)
}
