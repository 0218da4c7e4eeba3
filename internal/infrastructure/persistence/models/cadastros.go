package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oficina/backend/internal/domain/cadastros"
	"github.com/oficina/backend/internal/domain/shared/valueobject"
)

// CustomerModel is the persistence model for the Customer aggregate.
// Document holds CPF or CNPJ digits only.
type CustomerModel struct {
	AggregateModel
	Name     string `gorm:"type:varchar(120);not null;index"`
	Document string `gorm:"type:varchar(14);not null;uniqueIndex:idx_customers_document"`
	Phone    string `gorm:"type:varchar(20)"`
	Email    string `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer
func (m *CustomerModel) ToDomain() *cadastros.Customer {
	return cadastros.RehydrateCustomer(m.ToAggregateRoot(),
		valueobject.RestorePersonName(m.Name),
		valueobject.RestoreNationalID(m.Document),
		m.Phone, m.Email)
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer
func CustomerModelFromDomain(c *cadastros.Customer) *CustomerModel {
	m := &CustomerModel{
		Name:     c.Name().String(),
		Document: c.Document().String(),
		Phone:    c.Phone(),
		Email:    c.Email(),
	}
	m.FromDomainAggregateRoot(c)
	return m
}

// VehicleModel is the persistence model for the Vehicle aggregate
type VehicleModel struct {
	AggregateModel
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index"`
	Plate   string    `gorm:"type:varchar(7);not null;uniqueIndex:idx_vehicles_plate"`
	Brand   string    `gorm:"type:varchar(60);not null"`
	Model   string    `gorm:"type:varchar(60);not null"`
	Year    int       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (VehicleModel) TableName() string {
	return "vehicles"
}

// ToDomain converts the persistence model to a domain Vehicle
func (m *VehicleModel) ToDomain() *cadastros.Vehicle {
	return cadastros.RehydrateVehicle(m.ToAggregateRoot(), m.OwnerID,
		valueobject.RestoreLicensePlate(m.Plate),
		valueobject.RestoreDescription(m.Brand),
		valueobject.RestoreDescription(m.Model),
		m.Year)
}

// VehicleModelFromDomain creates a new persistence model from a domain Vehicle
func VehicleModelFromDomain(v *cadastros.Vehicle) *VehicleModel {
	m := &VehicleModel{
		OwnerID: v.OwnerID(),
		Plate:   v.Plate().String(),
		Brand:   v.Brand().String(),
		Model:   v.Model().String(),
		Year:    v.Year(),
	}
	m.FromDomainAggregateRoot(v)
	return m
}

// ServiceModel is the persistence model for the catalog Service aggregate
type ServiceModel struct {
	AggregateModel
	Name        string          `gorm:"type:varchar(120);not null;index"`
	Description string          `gorm:"type:varchar(500)"`
	Price       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency    string          `gorm:"type:varchar(3);not null;default:'BRL'"`
}

// TableName returns the table name for GORM
func (ServiceModel) TableName() string {
	return "services"
}

// ToDomain converts the persistence model to a domain Service.
// An empty stored description restores as the zero Description.
func (m *ServiceModel) ToDomain() *cadastros.Service {
	return cadastros.RehydrateService(m.ToAggregateRoot(),
		valueobject.RestoreDescription(m.Name),
		valueobject.RestoreDescription(m.Description),
		valueobject.RestoreMoney(m.Price, valueobject.Currency(m.Currency)))
}

// ServiceModelFromDomain creates a new persistence model from a domain Service
func ServiceModelFromDomain(s *cadastros.Service) *ServiceModel {
	m := &ServiceModel{
		Name:        s.Name().String(),
		Description: s.Description().String(),
		Price:       s.Price().Amount(),
		Currency:    string(s.Price().Currency()),
	}
	m.FromDomainAggregateRoot(s)
	return m
}
