package estoque

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/oficina/backend/internal/domain/shared"
	"github.com/oficina/backend/internal/domain/shared/valueobject"
)

const (
	maxItemCodeLength = 50
	maxItemNameLength = 120
)

var itemCodePattern = regexp.MustCompile(`^[A-Z0-9_-]+$`)

// InventoryItem is a stocked part, identified in the shop by its code
type InventoryItem struct {
	shared.BaseAggregateRoot
	code      string
	name      valueobject.Description
	unitPrice valueobject.Money
	quantity  int
	minimum   int
}

// NewInventoryItem creates an item with zero stock on hand
func NewInventoryItem(code, name string, unitPrice valueobject.Money, minimum int) (*InventoryItem, error) {
	normalized, err := NormalizeItemCode(code)
	if err != nil {
		return nil, err
	}
	itemName, err := valueobject.NewDescription(name, maxItemNameLength)
	if err != nil {
		return nil, err
	}
	if err := validateUnitPrice(unitPrice); err != nil {
		return nil, err
	}
	if err := validateMinimum(minimum); err != nil {
		return nil, err
	}

	item := &InventoryItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		code:              normalized,
		name:              itemName,
		unitPrice:         unitPrice,
		minimum:           minimum,
	}

	item.AddDomainEvent(NewInventoryItemCreatedEvent(item))

	return item, nil
}

// RehydrateInventoryItem rebuilds a stored item without raising events
func RehydrateInventoryItem(root shared.BaseAggregateRoot, code string, name valueobject.Description, unitPrice valueobject.Money, quantity, minimum int) *InventoryItem {
	return &InventoryItem{
		BaseAggregateRoot: root,
		code:              code,
		name:              name,
		unitPrice:         unitPrice,
		quantity:          quantity,
		minimum:           minimum,
	}
}

// NormalizeItemCode upper-cases and validates an item code
func NormalizeItemCode(code string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return "", shared.NewDomainError("INVALID_CODE", "Item code cannot be empty")
	}
	if len(normalized) > maxItemCodeLength {
		return "", shared.NewDomainError("INVALID_CODE",
			fmt.Sprintf("Item code cannot exceed %d characters", maxItemCodeLength))
	}
	if !itemCodePattern.MatchString(normalized) {
		return "", shared.NewDomainError("INVALID_CODE",
			"Item code can only contain letters, numbers, underscores, and hyphens")
	}
	return normalized, nil
}

func validateUnitPrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	return nil
}

func validateMinimum(minimum int) error {
	if minimum < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Minimum quantity cannot be negative")
	}
	return nil
}

func validateQuantity(qty int) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	return nil
}

// Kind identifies the aggregate type
func (i *InventoryItem) Kind() shared.AggregateKind {
	return shared.AggregateInventoryItem
}

// Code returns the natural key
func (i *InventoryItem) Code() string {
	return i.code
}

// Name returns the part name
func (i *InventoryItem) Name() valueobject.Description {
	return i.name
}

// UnitPrice returns the sale price per unit
func (i *InventoryItem) UnitPrice() valueobject.Money {
	return i.unitPrice
}

// Quantity returns units on hand
func (i *InventoryItem) Quantity() int {
	return i.quantity
}

// Minimum returns the restock threshold
func (i *InventoryItem) Minimum() int {
	return i.minimum
}

// TotalValue returns quantity times unit price
func (i *InventoryItem) TotalValue() valueobject.Money {
	return i.unitPrice.MultiplyByInt(int64(i.quantity))
}

// CanFulfill reports whether qty units are on hand
func (i *InventoryItem) CanFulfill(qty int) bool {
	return qty > 0 && i.quantity >= qty
}

// IsBelowMinimum returns true if on-hand quantity is under the threshold
func (i *InventoryItem) IsBelowMinimum() bool {
	return i.minimum > 0 && i.quantity < i.minimum
}

// Rename replaces the part name
func (i *InventoryItem) Rename(name string) error {
	itemName, err := valueobject.NewDescription(name, maxItemNameLength)
	if err != nil {
		return err
	}

	i.name = itemName
	i.touch()
	return nil
}

// UpdatePrice changes the unit price
func (i *InventoryItem) UpdatePrice(price valueobject.Money) error {
	if err := validateUnitPrice(price); err != nil {
		return err
	}

	i.unitPrice = price
	i.touch()
	return nil
}

// SetMinimum sets the restock threshold
func (i *InventoryItem) SetMinimum(minimum int) error {
	if err := validateMinimum(minimum); err != nil {
		return err
	}

	i.minimum = minimum
	i.touch()
	i.checkThreshold()
	return nil
}

// AddStock records received units
func (i *InventoryItem) AddStock(qty int) error {
	if err := validateQuantity(qty); err != nil {
		return err
	}

	i.quantity += qty
	i.touch()

	i.AddDomainEvent(NewStockIncreasedEvent(i, qty))
	return nil
}

// RemoveStock takes units off the shelf. It fails with INSUFFICIENT_STOCK
// when fewer than qty units are on hand.
func (i *InventoryItem) RemoveStock(qty int) error {
	if err := validateQuantity(qty); err != nil {
		return err
	}
	if qty > i.quantity {
		return shared.NewConflictError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Insufficient stock for %s: requested %d, on hand %d", i.code, qty, i.quantity))
	}

	i.quantity -= qty
	i.touch()

	i.AddDomainEvent(NewStockDecreasedEvent(i, qty))
	i.checkThreshold()
	return nil
}

// AdjustStock sets on-hand quantity to a counted value
func (i *InventoryItem) AdjustStock(actual int, reason string) error {
	if actual < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Actual quantity cannot be negative")
	}
	if strings.TrimSpace(reason) == "" {
		return shared.NewDomainError("INVALID_REASON", "Adjustment reason is required")
	}

	previous := i.quantity
	i.quantity = actual
	i.touch()

	i.AddDomainEvent(NewStockAdjustedEvent(i, previous, strings.TrimSpace(reason)))
	i.checkThreshold()
	return nil
}

func (i *InventoryItem) checkThreshold() {
	if i.IsBelowMinimum() {
		i.AddDomainEvent(NewStockBelowMinimumEvent(i))
	}
}

func (i *InventoryItem) touch() {
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
}
