package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oficina/backend/internal/domain/cadastros"
	"github.com/oficina/backend/internal/domain/shared"
	"github.com/oficina/backend/internal/domain/shared/valueobject"
	"github.com/oficina/backend/internal/infrastructure/persistence/models"
)

// GormVehicleRepository implements VehicleRepository using GORM
type GormVehicleRepository struct {
	db *gorm.DB
}

// NewGormVehicleRepository creates a new GormVehicleRepository
func NewGormVehicleRepository(db *gorm.DB) *GormVehicleRepository {
	return &GormVehicleRepository{db: db}
}

// FindByID finds a vehicle by its ID
func (r *GormVehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*cadastros.Vehicle, error) {
	var model models.VehicleModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError("find vehicle", err)
	}
	return model.ToDomain(), nil
}

// FindByPlate finds a vehicle by its license plate
func (r *GormVehicleRepository) FindByPlate(ctx context.Context, plate valueobject.LicensePlate) (*cadastros.Vehicle, error) {
	var model models.VehicleModel
	if err := r.db.WithContext(ctx).
		Where("plate = ?", plate.String()).
		First(&model).Error; err != nil {
		return nil, translateError("find vehicle by plate", err)
	}
	return model.ToDomain(), nil
}

// FindByOwner lists the vehicles of a customer, oldest registration first
func (r *GormVehicleRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*cadastros.Vehicle, error) {
	var vehicleModels []models.VehicleModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&vehicleModels).Error; err != nil {
		return nil, translateError("list vehicles by owner", err)
	}
	return vehiclesToDomain(vehicleModels), nil
}

// FindAll finds all vehicles matching the filter
func (r *GormVehicleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*cadastros.Vehicle, error) {
	var vehicleModels []models.VehicleModel
	query := r.db.WithContext(ctx).Model(&models.VehicleModel{})
	if filter.Search != "" {
		pattern := searchPattern(filter.Search)
		query = query.Where("LOWER(plate) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(model) LIKE ?", pattern, pattern, pattern)
	}
	if owner, ok := filter.Filters["owner_id"]; ok {
		query = query.Where("owner_id = ?", owner)
	}

	if err := applyPage(query, filter, VehicleSortFields).Find(&vehicleModels).Error; err != nil {
		return nil, translateError("list vehicles", err)
	}
	return vehiclesToDomain(vehicleModels), nil
}

// Save creates or updates a vehicle
func (r *GormVehicleRepository) Save(ctx context.Context, vehicle *cadastros.Vehicle) error {
	model := models.VehicleModelFromDomain(vehicle)
	if err := saveVersioned(r.db.WithContext(ctx), vehicle, model); err != nil {
		return translateError("save vehicle", err)
	}
	vehicle.MarkPersisted()
	return nil
}

// Delete deletes a vehicle
func (r *GormVehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.VehicleModel{}, "id = ?", id)
	if result.Error != nil {
		return translateError("delete vehicle", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func vehiclesToDomain(vehicleModels []models.VehicleModel) []*cadastros.Vehicle {
	vehicles := make([]*cadastros.Vehicle, 0, len(vehicleModels))
	for i := range vehicleModels {
		vehicles = append(vehicles, vehicleModels[i].ToDomain())
	}
	return vehicles
}

// Ensure GormVehicleRepository implements VehicleRepository
var _ cadastros.VehicleRepository = (*GormVehicleRepository)(nil)
