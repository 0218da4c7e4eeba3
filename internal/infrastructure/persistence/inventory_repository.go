package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oficina/backend/internal/domain/estoque"
	"github.com/oficina/backend/internal/domain/shared"
	"github.com/oficina/backend/internal/infrastructure/persistence/models"
)

// GormInventoryItemRepository implements InventoryItemRepository using GORM
type GormInventoryItemRepository struct {
	db *gorm.DB
}

// NewGormInventoryItemRepository creates a new GormInventoryItemRepository
func NewGormInventoryItemRepository(db *gorm.DB) *GormInventoryItemRepository {
	return &GormInventoryItemRepository{db: db}
}

// FindByID finds an inventory item by ID
func (r *GormInventoryItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*estoque.InventoryItem, error) {
	var model models.InventoryItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError("find inventory item", err)
	}
	return model.ToDomain(), nil
}

// FindByCode finds an inventory item by its code. The code is normalized first.
func (r *GormInventoryItemRepository) FindByCode(ctx context.Context, code string) (*estoque.InventoryItem, error) {
	normalized, err := estoque.NormalizeItemCode(code)
	if err != nil {
		return nil, err
	}
	var model models.InventoryItemModel
	if err := r.db.WithContext(ctx).Where("code = ?", normalized).First(&model).Error; err != nil {
		return nil, translateError("find inventory item by code", err)
	}
	return model.ToDomain(), nil
}

// FindAll finds all inventory items matching the filter
func (r *GormInventoryItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*estoque.InventoryItem, error) {
	var itemModels []models.InventoryItemModel
	query := r.db.WithContext(ctx).Model(&models.InventoryItemModel{})
	if filter.Search != "" {
		pattern := searchPattern(filter.Search)
		query = query.Where("LOWER(code) LIKE ? OR LOWER(name) LIKE ?", pattern, pattern)
	}

	if err := applyPage(query, filter, InventoryItemSortFields).Find(&itemModels).Error; err != nil {
		return nil, translateError("list inventory items", err)
	}
	return itemsToDomain(itemModels), nil
}

// FindBelowMinimum finds items below their minimum threshold
func (r *GormInventoryItemRepository) FindBelowMinimum(ctx context.Context) ([]*estoque.InventoryItem, error) {
	var itemModels []models.InventoryItemModel
	if err := r.db.WithContext(ctx).
		Where("minimum > 0 AND quantity < minimum").
		Order("code ASC").
		Find(&itemModels).Error; err != nil {
		return nil, translateError("list inventory items below minimum", err)
	}
	return itemsToDomain(itemModels), nil
}

// Save creates or updates an inventory item
func (r *GormInventoryItemRepository) Save(ctx context.Context, item *estoque.InventoryItem) error {
	model := models.InventoryItemModelFromDomain(item)
	if err := saveVersioned(r.db.WithContext(ctx), item, model); err != nil {
		return translateError("save inventory item", err)
	}
	item.MarkPersisted()
	return nil
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormInventoryItemRepository) SaveWithLock(ctx context.Context, item *estoque.InventoryItem, expectedVersion int) error {
	model := models.InventoryItemModelFromDomain(item)
	result := r.db.WithContext(ctx).
		Model(&models.InventoryItemModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"name":       model.Name,
			"unit_price": model.UnitPrice,
			"currency":   model.Currency,
			"quantity":   model.Quantity,
			"minimum":    model.Minimum,
			"version":    model.Version,
			"updated_at": model.UpdatedAt,
		})

	if result.Error != nil {
		return translateError("save inventory item", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrentModification
	}
	item.MarkPersisted()
	return nil
}

// Delete deletes an inventory item
func (r *GormInventoryItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.InventoryItemModel{}, "id = ?", id)
	if result.Error != nil {
		return translateError("delete inventory item", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func itemsToDomain(itemModels []models.InventoryItemModel) []*estoque.InventoryItem {
	items := make([]*estoque.InventoryItem, 0, len(itemModels))
	for i := range itemModels {
		items = append(items, itemModels[i].ToDomain())
	}
	return items
}

// Ensure GormInventoryItemRepository implements InventoryItemRepository
var _ estoque.InventoryItemRepository = (*GormInventoryItemRepository)(nil)
