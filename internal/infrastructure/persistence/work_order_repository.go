package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oficina/backend/internal/domain/ordemservico"
	"github.com/oficina/backend/internal/domain/shared"
	"github.com/oficina/backend/internal/infrastructure/persistence/models"
)

// GormWorkOrderRepository implements WorkOrderRepository using GORM
type GormWorkOrderRepository struct {
	db *gorm.DB
}

// NewGormWorkOrderRepository creates a new GormWorkOrderRepository
func NewGormWorkOrderRepository(db *gorm.DB) *GormWorkOrderRepository {
	return &GormWorkOrderRepository{db: db}
}

func (r *GormWorkOrderRepository) withLines(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Services").Preload("Parts")
}

// FindByID finds a work order, with its lines, by ID
func (r *GormWorkOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordemservico.WorkOrder, error) {
	var model models.WorkOrderModel
	if err := r.withLines(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError("find work order", err)
	}
	return model.ToDomain()
}

// FindByVehicle lists a vehicle's work orders, newest first
func (r *GormWorkOrderRepository) FindByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]*ordemservico.WorkOrder, error) {
	var orderModels []models.WorkOrderModel
	if err := r.withLines(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, translateError("list work orders by vehicle", err)
	}
	return ordersToDomain(orderModels)
}

// FindAll finds all work orders matching the filter.
// Filters["status"] narrows by wire status name; Filters["customer_id"] by customer.
func (r *GormWorkOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*ordemservico.WorkOrder, error) {
	var orderModels []models.WorkOrderModel
	query := r.withLines(ctx).Model(&models.WorkOrderModel{})
	for key, value := range filter.Filters {
		switch key {
		case "status":
			if status, ok := value.(ordemservico.WorkOrderStatus); ok {
				value = status.String()
			}
			query = query.Where("status = ?", value)
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "vehicle_id":
			query = query.Where("vehicle_id = ?", value)
		}
	}
	if filter.Search != "" {
		pattern := searchPattern(filter.Search)
		query = query.Where("LOWER(customer_name) LIKE ? OR LOWER(complaint) LIKE ?", pattern, pattern)
	}

	if err := applyPage(query, filter, WorkOrderSortFields).Find(&orderModels).Error; err != nil {
		return nil, translateError("list work orders", err)
	}
	return ordersToDomain(orderModels)
}

// Save creates or updates a work order and replaces its lines in one transaction.
// A copy loaded before another save committed gets shared.ErrConcurrentModification,
// and a second active order for the vehicle gets ordemservico.ErrVehicleHasOpenWorkOrder.
func (r *GormWorkOrderRepository) Save(ctx context.Context, order *ordemservico.WorkOrder) error {
	model := models.WorkOrderModelFromDomain(order)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveVersioned(tx, order, model); err != nil {
			if isUniqueViolation(err) {
				return ordemservico.ErrVehicleHasOpenWorkOrder
			}
			return err
		}
		if err := deleteLines(tx, model.ID); err != nil {
			return err
		}
		if len(model.Services) > 0 {
			if err := tx.Create(&model.Services).Error; err != nil {
				return err
			}
		}
		if len(model.Parts) > 0 {
			if err := tx.Create(&model.Parts).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return translateError("save work order", err)
	}
	order.MarkPersisted()
	return nil
}

// Delete deletes a work order and its lines
func (r *GormWorkOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteLines(tx, id); err != nil {
			return err
		}
		result := tx.Delete(&models.WorkOrderModel{}, "id = ?", id)
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return translateError("delete work order", err)
	}
	if affected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func deleteLines(tx *gorm.DB, orderID uuid.UUID) error {
	if err := tx.Where("work_order_id = ?", orderID).Delete(&models.WorkOrderServiceModel{}).Error; err != nil {
		return err
	}
	return tx.Where("work_order_id = ?", orderID).Delete(&models.WorkOrderPartModel{}).Error
}

func ordersToDomain(orderModels []models.WorkOrderModel) ([]*ordemservico.WorkOrder, error) {
	orders := make([]*ordemservico.WorkOrder, 0, len(orderModels))
	for i := range orderModels {
		order, err := orderModels[i].ToDomain()
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// Ensure GormWorkOrderRepository implements WorkOrderRepository
var _ ordemservico.WorkOrderRepository = (*GormWorkOrderRepository)(nil)
