package ordemservico

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oficina/backend/internal/domain/ordemservico"
)

// OpenWorkOrderCommand represents a request to open a work order
type OpenWorkOrderCommand struct {
	VehicleID uuid.UUID `json:"vehicle_id" validate:"required"`
	Complaint string    `json:"complaint" validate:"required,max=1000"`
}

// AddServiceCommand bills a catalog service on a work order
type AddServiceCommand struct {
	ServiceID uuid.UUID `json:"service_id" validate:"required"`
}

// AddPartCommand reserves units of a stocked part on a work order
type AddPartCommand struct {
	ItemID   uuid.UUID `json:"item_id" validate:"required"`
	Quantity int       `json:"quantity" validate:"gt=0"`
}

// CancelWorkOrderCommand abandons a work order
type CancelWorkOrderCommand struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

// ServiceLineResponse is a billed service
type ServiceLineResponse struct {
	ServiceID uuid.UUID       `json:"service_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
}

// PartLineResponse is a consumed part
type PartLineResponse struct {
	ItemID    uuid.UUID       `json:"item_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// WorkOrderResponse represents a work order in API responses
type WorkOrderResponse struct {
	ID           uuid.UUID             `json:"id"`
	CustomerID   uuid.UUID             `json:"customer_id"`
	CustomerName string                `json:"customer_name"`
	VehicleID    uuid.UUID             `json:"vehicle_id"`
	Complaint    string                `json:"complaint"`
	Status       string                `json:"status"`
	Services     []ServiceLineResponse `json:"services"`
	Parts        []PartLineResponse    `json:"parts"`
	Total        decimal.Decimal       `json:"total"`
	Currency     string                `json:"currency"`
	CancelReason string                `json:"cancel_reason,omitempty"`
	StartedAt    *time.Time            `json:"started_at,omitempty"`
	CompletedAt  *time.Time            `json:"completed_at,omitempty"`
	DeliveredAt  *time.Time            `json:"delivered_at,omitempty"`
	CancelledAt  *time.Time            `json:"cancelled_at,omitempty"`
	Version      int                   `json:"version"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// ToWorkOrderResponse converts a domain WorkOrder to WorkOrderResponse
func ToWorkOrderResponse(w *ordemservico.WorkOrder) WorkOrderResponse {
	services := make([]ServiceLineResponse, 0, len(w.Services()))
	for _, s := range w.Services() {
		services = append(services, ServiceLineResponse{
			ServiceID: s.ServiceID,
			Name:      s.Name,
			Price:     s.Price.Amount(),
		})
	}
	parts := make([]PartLineResponse, 0, len(w.Parts()))
	for _, p := range w.Parts() {
		parts = append(parts, PartLineResponse{
			ItemID:    p.ItemID,
			Code:      p.Code,
			Name:      p.Name,
			UnitPrice: p.UnitPrice.Amount(),
			Quantity:  p.Quantity,
			Subtotal:  p.Subtotal().Amount(),
		})
	}

	total := w.Total()
	return WorkOrderResponse{
		ID:           w.GetID(),
		CustomerID:   w.CustomerID(),
		CustomerName: w.CustomerName(),
		VehicleID:    w.VehicleID(),
		Complaint:    w.Complaint().String(),
		Status:       w.Status().String(),
		Services:     services,
		Parts:        parts,
		Total:        total.Amount(),
		Currency:     string(total.Currency()),
		CancelReason: w.CancelReason(),
		StartedAt:    w.StartedAt(),
		CompletedAt:  w.CompletedAt(),
		DeliveredAt:  w.DeliveredAt(),
		CancelledAt:  w.CancelledAt(),
		Version:      w.Version,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
	}
}

// ToWorkOrderResponses converts a slice of work orders
func ToWorkOrderResponses(orders []*ordemservico.WorkOrder) []WorkOrderResponse {
	responses := make([]WorkOrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = ToWorkOrderResponse(o)
	}
	return responses
}
