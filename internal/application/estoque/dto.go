package estoque

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oficina/backend/internal/domain/estoque"
)

// CreateItemCommand represents a request to stock a new part
type CreateItemCommand struct {
	Code            string          `json:"code" validate:"required,max=50"`
	Name            string          `json:"name" validate:"required,max=120"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Currency        string          `json:"currency" validate:"omitempty,len=3"`
	Minimum         int             `json:"minimum" validate:"gte=0"`
	InitialQuantity int             `json:"initial_quantity" validate:"gte=0"`
}

// UpdateItemCommand represents a partial update of an item's catalog data
type UpdateItemCommand struct {
	Name      *string          `json:"name" validate:"omitempty,max=120"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	Minimum   *int             `json:"minimum" validate:"omitempty,gte=0"`
}

// StockMovementCommand adds or removes units
type StockMovementCommand struct {
	Quantity int `json:"quantity" validate:"gt=0"`
}

// AdjustStockCommand sets the on-hand quantity to a counted value
type AdjustStockCommand struct {
	ActualQuantity int    `json:"actual_quantity" validate:"gte=0"`
	Reason         string `json:"reason" validate:"required,max=255"`
}

// ItemResponse represents an inventory item in API responses
type ItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Currency     string          `json:"currency"`
	Quantity     int             `json:"quantity"`
	Minimum      int             `json:"minimum"`
	BelowMinimum bool            `json:"below_minimum"`
	TotalValue   decimal.Decimal `json:"total_value"`
	Version      int             `json:"version"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToItemResponse converts a domain InventoryItem to ItemResponse
func ToItemResponse(item *estoque.InventoryItem) ItemResponse {
	return ItemResponse{
		ID:           item.GetID(),
		Code:         item.Code(),
		Name:         item.Name().String(),
		UnitPrice:    item.UnitPrice().Amount(),
		Currency:     string(item.UnitPrice().Currency()),
		Quantity:     item.Quantity(),
		Minimum:      item.Minimum(),
		BelowMinimum: item.IsBelowMinimum(),
		TotalValue:   item.TotalValue().Amount(),
		Version:      item.Version,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

// ToItemResponses converts a slice of items
func ToItemResponses(items []*estoque.InventoryItem) []ItemResponse {
	responses := make([]ItemResponse, len(items))
	for i, item := range items {
		responses[i] = ToItemResponse(item)
	}
	return responses
}
