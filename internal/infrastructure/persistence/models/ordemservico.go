package models

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oficina/backend/internal/domain/ordemservico"
	"github.com/oficina/backend/internal/domain/shared/valueobject"
)

// WorkOrderModel is the persistence model for the WorkOrder aggregate.
// Lines live in their own tables and are loaded through the associations.
type WorkOrderModel struct {
	AggregateModel
	CustomerID   uuid.UUID               `gorm:"type:uuid;not null;index"`
	CustomerName string                  `gorm:"type:varchar(120);not null"`
	VehicleID    uuid.UUID               `gorm:"type:uuid;not null;index"`
	Complaint    string                  `gorm:"type:varchar(1000);not null"`
	Status       string                  `gorm:"type:varchar(20);not null;index"`
	CancelReason string                  `gorm:"type:varchar(500)"`
	StartedAt    *time.Time
	CompletedAt  *time.Time
	DeliveredAt  *time.Time
	CancelledAt  *time.Time
	Services     []WorkOrderServiceModel `gorm:"foreignKey:WorkOrderID;constraint:OnDelete:CASCADE"`
	Parts        []WorkOrderPartModel    `gorm:"foreignKey:WorkOrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (WorkOrderModel) TableName() string {
	return "work_orders"
}

// WorkOrderServiceModel is a service line priced when it was added
type WorkOrderServiceModel struct {
	WorkOrderID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ServiceID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position    int             `gorm:"not null"`
	Name        string          `gorm:"type:varchar(120);not null"`
	Price       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency    string          `gorm:"type:varchar(3);not null;default:'BRL'"`
}

// TableName returns the table name for GORM
func (WorkOrderServiceModel) TableName() string {
	return "work_order_services"
}

// WorkOrderPartModel is a part line priced when it was added
type WorkOrderPartModel struct {
	WorkOrderID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ItemID      uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position    int             `gorm:"not null"`
	Code        string          `gorm:"type:varchar(50);not null"`
	Name        string          `gorm:"type:varchar(120);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency    string          `gorm:"type:varchar(3);not null;default:'BRL'"`
	Quantity    int             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (WorkOrderPartModel) TableName() string {
	return "work_order_parts"
}

// ToDomain converts the persistence model, with its preloaded lines, to a domain WorkOrder.
// Stored values are restored as-is; only an unknown status is an error.
func (m *WorkOrderModel) ToDomain() (*ordemservico.WorkOrder, error) {
	status, err := ordemservico.ParseWorkOrderStatus(m.Status)
	if err != nil {
		return nil, fmt.Errorf("work order %s: %w", m.ID, err)
	}

	services := append([]WorkOrderServiceModel(nil), m.Services...)
	sort.Slice(services, func(i, j int) bool { return services[i].Position < services[j].Position })
	serviceLines := make([]ordemservico.ServiceLine, len(services))
	for i, s := range services {
		serviceLines[i] = ordemservico.ServiceLine{
			ServiceID: s.ServiceID,
			Name:      s.Name,
			Price:     valueobject.RestoreMoney(s.Price, valueobject.Currency(s.Currency)),
		}
	}

	parts := append([]WorkOrderPartModel(nil), m.Parts...)
	sort.Slice(parts, func(i, j int) bool { return parts[i].Position < parts[j].Position })
	partLines := make([]ordemservico.PartLine, len(parts))
	for i, p := range parts {
		partLines[i] = ordemservico.PartLine{
			ItemID:    p.ItemID,
			Code:      p.Code,
			Name:      p.Name,
			UnitPrice: valueobject.RestoreMoney(p.UnitPrice, valueobject.Currency(p.Currency)),
			Quantity:  p.Quantity,
		}
	}

	return ordemservico.RehydrateWorkOrder(m.ToAggregateRoot(), ordemservico.WorkOrderState{
		CustomerID:   m.CustomerID,
		CustomerName: m.CustomerName,
		VehicleID:    m.VehicleID,
		Complaint:    valueobject.RestoreDescription(m.Complaint),
		Status:       status,
		Services:     serviceLines,
		Parts:        partLines,
		CancelReason: m.CancelReason,
		StartedAt:    m.StartedAt,
		CompletedAt:  m.CompletedAt,
		DeliveredAt:  m.DeliveredAt,
		CancelledAt:  m.CancelledAt,
	}), nil
}

// WorkOrderModelFromDomain creates a new persistence model, lines included, from a domain WorkOrder
func WorkOrderModelFromDomain(w *ordemservico.WorkOrder) *WorkOrderModel {
	m := &WorkOrderModel{
		CustomerID:   w.CustomerID(),
		CustomerName: w.CustomerName(),
		VehicleID:    w.VehicleID(),
		Complaint:    w.Complaint().String(),
		Status:       w.Status().String(),
		CancelReason: w.CancelReason(),
		StartedAt:    w.StartedAt(),
		CompletedAt:  w.CompletedAt(),
		DeliveredAt:  w.DeliveredAt(),
		CancelledAt:  w.CancelledAt(),
	}
	m.FromDomainAggregateRoot(w)

	for i, s := range w.Services() {
		m.Services = append(m.Services, WorkOrderServiceModel{
			WorkOrderID: m.ID,
			ServiceID:   s.ServiceID,
			Position:    i,
			Name:        s.Name,
			Price:       s.Price.Amount(),
			Currency:    string(s.Price.Currency()),
		})
	}
	for i, p := range w.Parts() {
		m.Parts = append(m.Parts, WorkOrderPartModel{
			WorkOrderID: m.ID,
			ItemID:      p.ItemID,
			Position:    i,
			Code:        p.Code,
			Name:        p.Name,
			UnitPrice:   p.UnitPrice.Amount(),
			Currency:    string(p.UnitPrice.Currency()),
			Quantity:    p.Quantity,
		})
	}
	return m
}
