package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oficina/backend/internal/domain/cadastros"
	"github.com/oficina/backend/internal/domain/shared"
	"github.com/oficina/backend/internal/infrastructure/persistence/models"
)

// GormServiceRepository implements ServiceRepository using GORM
type GormServiceRepository struct {
	db *gorm.DB
}

// NewGormServiceRepository creates a new GormServiceRepository
func NewGormServiceRepository(db *gorm.DB) *GormServiceRepository {
	return &GormServiceRepository{db: db}
}

// FindByID finds a catalog service by its ID
func (r *GormServiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*cadastros.Service, error) {
	var model models.ServiceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError("find service", err)
	}
	return model.ToDomain(), nil
}

// FindAll finds all catalog services matching the filter
func (r *GormServiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*cadastros.Service, error) {
	var serviceModels []models.ServiceModel
	query := r.db.WithContext(ctx).Model(&models.ServiceModel{})
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", searchPattern(filter.Search))
	}

	if err := applyPage(query, filter, ServiceSortFields).Find(&serviceModels).Error; err != nil {
		return nil, translateError("list services", err)
	}

	services := make([]*cadastros.Service, 0, len(serviceModels))
	for i := range serviceModels {
		services = append(services, serviceModels[i].ToDomain())
	}
	return services, nil
}

// Save creates or updates a catalog service
func (r *GormServiceRepository) Save(ctx context.Context, service *cadastros.Service) error {
	model := models.ServiceModelFromDomain(service)
	if err := saveVersioned(r.db.WithContext(ctx), service, model); err != nil {
		return translateError("save service", err)
	}
	service.MarkPersisted()
	return nil
}

// Delete deletes a catalog service
func (r *GormServiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ServiceModel{}, "id = ?", id)
	if result.Error != nil {
		return translateError("delete service", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormServiceRepository implements ServiceRepository
var _ cadastros.ServiceRepository = (*GormServiceRepository)(nil)
