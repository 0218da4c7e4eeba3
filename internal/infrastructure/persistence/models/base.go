package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/oficina/backend/internal/domain/shared"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// AggregateModel provides common persistence fields for aggregate roots.
// It extends BaseModel with version for optimistic locking.
type AggregateModel struct {
	BaseModel
	Version int `gorm:"not null;default:1"`
}

// FromDomainAggregateRoot populates AggregateModel from any aggregate root
func (m *AggregateModel) FromDomainAggregateRoot(a shared.AggregateRoot) {
	m.ID = a.GetID()
	m.CreatedAt = a.GetCreatedAt()
	m.UpdatedAt = a.GetUpdatedAt()
	m.Version = a.GetVersion()
}

// ToAggregateRoot rebuilds the domain aggregate header
func (m *AggregateModel) ToAggregateRoot() shared.BaseAggregateRoot {
	return shared.RestoreBaseAggregateRoot(m.ID, m.CreatedAt, m.UpdatedAt, m.Version)
}

// All returns every model, in dependency order, for AutoMigrate
func All() []any {
	return []any{
		&CustomerModel{},
		&VehicleModel{},
		&ServiceModel{},
		&InventoryItemModel{},
		&WorkOrderModel{},
		&WorkOrderServiceModel{},
		&WorkOrderPartModel{},
	}
}
