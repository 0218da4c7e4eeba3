package cadastros

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oficina/backend/internal/domain/cadastros"
)

// CreateCustomerCommand represents a request to register a customer
type CreateCustomerCommand struct {
	Name     string `json:"name" validate:"required,max=120"`
	Document string `json:"document" validate:"required,max=18"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	Email    string `json:"email" validate:"omitempty,email,max=120"`
}

// UpdateCustomerCommand represents a partial customer update
type UpdateCustomerCommand struct {
	Name     *string `json:"name" validate:"omitempty,max=120"`
	Document *string `json:"document" validate:"omitempty,max=18"`
	Phone    *string `json:"phone" validate:"omitempty,max=20"`
	Email    *string `json:"email" validate:"omitempty,email,max=120"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Document          string    `json:"document"`
	DocumentFormatted string    `json:"document_formatted"`
	DocumentKind      string    `json:"document_kind"`
	Phone             string    `json:"phone,omitempty"`
	Email             string    `json:"email,omitempty"`
	Version           int       `json:"version"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ToCustomerResponse converts a domain Customer to CustomerResponse
func ToCustomerResponse(c *cadastros.Customer) CustomerResponse {
	return CustomerResponse{
		ID:                c.GetID(),
		Name:              c.Name().String(),
		Document:          c.Document().String(),
		DocumentFormatted: c.Document().Formatted(),
		DocumentKind:      c.Document().Kind().String(),
		Phone:             c.Phone(),
		Email:             c.Email(),
		Version:           c.Version,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

// RegisterVehicleCommand represents a request to register a vehicle
type RegisterVehicleCommand struct {
	OwnerID uuid.UUID `json:"owner_id" validate:"required"`
	Plate   string    `json:"plate" validate:"required,max=8"`
	Brand   string    `json:"brand" validate:"required,max=60"`
	Model   string    `json:"model" validate:"required,max=60"`
	Year    int       `json:"year" validate:"gte=1900"`
}

// UpdateVehicleCommand represents a partial vehicle update.
// Brand, model and year change together when any of them is set.
type UpdateVehicleCommand struct {
	Plate *string `json:"plate" validate:"omitempty,max=8"`
	Brand *string `json:"brand" validate:"omitempty,max=60"`
	Model *string `json:"model" validate:"omitempty,max=60"`
	Year  *int    `json:"year" validate:"omitempty,gte=1900"`
}

// TransferVehicleCommand moves a vehicle to another customer
type TransferVehicleCommand struct {
	NewOwnerID uuid.UUID `json:"new_owner_id" validate:"required"`
}

// VehicleResponse represents a vehicle in API responses
type VehicleResponse struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Plate     string    `json:"plate"`
	Mercosul  bool      `json:"mercosul"`
	Brand     string    `json:"brand"`
	Model     string    `json:"model"`
	Year      int       `json:"year"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToVehicleResponse converts a domain Vehicle to VehicleResponse
func ToVehicleResponse(v *cadastros.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:        v.GetID(),
		OwnerID:   v.OwnerID(),
		Plate:     v.Plate().String(),
		Mercosul:  v.Plate().IsMercosul(),
		Brand:     v.Brand().String(),
		Model:     v.Model().String(),
		Year:      v.Year(),
		Version:   v.Version,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

// ToVehicleResponses converts a slice of vehicles
func ToVehicleResponses(vehicles []*cadastros.Vehicle) []VehicleResponse {
	responses := make([]VehicleResponse, len(vehicles))
	for i, v := range vehicles {
		responses[i] = ToVehicleResponse(v)
	}
	return responses
}

// CreateServiceCommand represents a request to add a catalog service
type CreateServiceCommand struct {
	Name        string          `json:"name" validate:"required,max=120"`
	Description string          `json:"description" validate:"max=1000"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency" validate:"omitempty,len=3"`
}

// UpdateServiceCommand represents a partial catalog service update
type UpdateServiceCommand struct {
	Name        *string          `json:"name" validate:"omitempty,max=120"`
	Description *string          `json:"description" validate:"omitempty,max=1000"`
	Price       *decimal.Decimal `json:"price"`
}

// ServiceResponse represents a catalog service in API responses
type ServiceResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Version     int             `json:"version"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToServiceResponse converts a domain Service to ServiceResponse
func ToServiceResponse(s *cadastros.Service) ServiceResponse {
	return ServiceResponse{
		ID:          s.GetID(),
		Name:        s.Name().String(),
		Description: s.Description().String(),
		Price:       s.Price().Amount(),
		Currency:    string(s.Price().Currency()),
		Version:     s.Version,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
