package models

import (
	"github.com/shopspring/decimal"

	"github.com/oficina/backend/internal/domain/estoque"
	"github.com/oficina/backend/internal/domain/shared/valueobject"
)

// InventoryItemModel is the persistence model for the InventoryItem aggregate
type InventoryItemModel struct {
	AggregateModel
	Code      string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_inventory_items_code"`
	Name      string          `gorm:"type:varchar(120);not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency  string          `gorm:"type:varchar(3);not null;default:'BRL'"`
	Quantity  int             `gorm:"not null;default:0"`
	Minimum   int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (InventoryItemModel) TableName() string {
	return "inventory_items"
}

// ToDomain converts the persistence model to a domain InventoryItem
func (m *InventoryItemModel) ToDomain() *estoque.InventoryItem {
	return estoque.RehydrateInventoryItem(m.ToAggregateRoot(), m.Code,
		valueobject.RestoreDescription(m.Name),
		valueobject.RestoreMoney(m.UnitPrice, valueobject.Currency(m.Currency)),
		m.Quantity, m.Minimum)
}

// InventoryItemModelFromDomain creates a new persistence model from a domain InventoryItem
func InventoryItemModelFromDomain(i *estoque.InventoryItem) *InventoryItemModel {
	m := &InventoryItemModel{
		Code:      i.Code(),
		Name:      i.Name().String(),
		UnitPrice: i.UnitPrice().Amount(),
		Currency:  string(i.UnitPrice().Currency()),
		Quantity:  i.Quantity(),
		Minimum:   i.Minimum(),
	}
	m.FromDomainAggregateRoot(i)
	return m
}
