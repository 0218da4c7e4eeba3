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

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*cadastros.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError("find customer", err)
	}
	return model.ToDomain(), nil
}

// FindByDocument finds a customer by CPF or CNPJ
func (r *GormCustomerRepository) FindByDocument(ctx context.Context, document valueobject.NationalID) (*cadastros.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).
		Where("document = ?", document.String()).
		First(&model).Error; err != nil {
		return nil, translateError("find customer by document", err)
	}
	return model.ToDomain(), nil
}

// FindAll finds all customers matching the filter
func (r *GormCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*cadastros.Customer, error) {
	var customerModels []models.CustomerModel
	query := applyPage(r.applySearch(r.db.WithContext(ctx).Model(&models.CustomerModel{}), filter), filter, CustomerSortFields)

	if err := query.Find(&customerModels).Error; err != nil {
		return nil, translateError("list customers", err)
	}

	customers := make([]*cadastros.Customer, 0, len(customerModels))
	for i := range customerModels {
		customers = append(customers, customerModels[i].ToDomain())
	}
	return customers, nil
}

// Count counts customers matching the filter, ignoring paging
func (r *GormCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(r.db.WithContext(ctx).Model(&models.CustomerModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, translateError("count customers", err)
	}
	return count, nil
}

// Save creates or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *cadastros.Customer) error {
	model := models.CustomerModelFromDomain(customer)
	if err := saveVersioned(r.db.WithContext(ctx), customer, model); err != nil {
		return translateError("save customer", err)
	}
	customer.MarkPersisted()
	return nil
}

// Delete deletes a customer
func (r *GormCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CustomerModel{}, "id = ?", id)
	if result.Error != nil {
		return translateError("delete customer", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormCustomerRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := searchPattern(filter.Search)
		query = query.Where("LOWER(name) LIKE ? OR document LIKE ?", pattern, pattern)
	}
	return query
}

// Ensure GormCustomerRepository implements CustomerRepository
var _ cadastros.CustomerRepository = (*GormCustomerRepository)(nil)
