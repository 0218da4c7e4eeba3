package cadastros

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oficina/backend/internal/application/validation"
	"github.com/oficina/backend/internal/domain/cadastros"
	"github.com/oficina/backend/internal/domain/shared"
	"github.com/oficina/backend/internal/domain/shared/valueobject"
)

func newCustomerService() (*CustomerService, *MockCustomerRepository, *MockVehicleRepository, *recordingPublisher) {
	customerRepo := new(MockCustomerRepository)
	vehicleRepo := new(MockVehicleRepository)
	dispatcher, publisher := newDispatcher()
	return NewCustomerService(customerRepo, vehicleRepo, dispatcher, zap.NewNop()), customerRepo, vehicleRepo, publisher
}

func TestCustomerService_Create_Success(t *testing.T) {
	svc, customerRepo, _, publisher := newCustomerService()
	ctx := context.Background()

	customerRepo.On("FindByDocument", ctx, valueobject.MustNationalID("52998224725")).Return(nil, shared.ErrNotFound)
	customerRepo.On("Save", ctx, mock.AnythingOfType("*cadastros.Customer")).Return(nil)

	resp, err := svc.Create(ctx, CreateCustomerCommand{
		Name:     "João Silva",
		Document: "529.982.247-25",
		Phone:    "(11) 98765-4321",
		Email:    "Joao@Example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "João Silva", resp.Name)
	assert.Equal(t, "52998224725", resp.Document)
	assert.Equal(t, "529.982.247-25", resp.DocumentFormatted)
	assert.Equal(t, "11987654321", resp.Phone)
	assert.Equal(t, "joao@example.com", resp.Email)
	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Contains(t, publisher.types(), cadastros.EventTypeCustomerCreated)
	customerRepo.AssertExpectations(t)
}

func TestCustomerService_Create_DuplicateDocument(t *testing.T) {
	svc, customerRepo, _, publisher := newCustomerService()
	ctx := context.Background()

	existing := storedCustomer("Maria Souza", "52998224725")
	customerRepo.On("FindByDocument", ctx, existing.Document()).Return(existing, nil)

	resp, err := svc.Create(ctx, CreateCustomerCommand{Name: "João Silva", Document: "52998224725"})

	assert.Nil(t, resp)
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrConflict)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, CodeDocumentInUse, domainErr.Code)
	assert.Empty(t, publisher.types())
	customerRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCustomerService_Create_InvalidInput(t *testing.T) {
	svc, customerRepo, _, _ := newCustomerService()

	tests := []struct {
		name string
		cmd  CreateCustomerCommand
		code string
	}{
		{"missing name", CreateCustomerCommand{Document: "52998224725"}, validation.CodeInvalidInput},
		{"bad email", CreateCustomerCommand{Name: "João", Document: "52998224725", Email: "nope"}, validation.CodeInvalidInput},
		{"bad check digits", CreateCustomerCommand{Name: "João", Document: "52998224700"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.cmd)
			require.Error(t, err)
			assert.ErrorIs(t, err, shared.ErrValidation)
			if tt.code != "" {
				var domainErr *shared.DomainError
				require.True(t, errors.As(err, &domainErr))
				assert.Equal(t, tt.code, domainErr.Code)
			}
		})
	}
	customerRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCustomerService_Create_SaveFailure(t *testing.T) {
	svc, customerRepo, _, publisher := newCustomerService()
	ctx := context.Background()

	dbErr := shared.NewPersistenceError("save customer", errors.New("connection refused"))
	customerRepo.On("FindByDocument", ctx, mock.Anything).Return(nil, shared.ErrNotFound)
	customerRepo.On("Save", ctx, mock.Anything).Return(dbErr)

	_, err := svc.Create(ctx, CreateCustomerCommand{Name: "João Silva", Document: "52998224725"})

	assert.ErrorIs(t, err, dbErr)
	assert.True(t, shared.IsPersistenceError(err))
	assert.Empty(t, publisher.types())
}

func TestCustomerService_GetByID_NotFound(t *testing.T) {
	svc, customerRepo, _, _ := newCustomerService()
	ctx := context.Background()
	id := uuid.New()

	customerRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

	_, err := svc.GetByID(ctx, id)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCustomerService_GetByDocument(t *testing.T) {
	svc, customerRepo, _, _ := newCustomerService()
	ctx := context.Background()

	customer := storedCustomer("Auto Peças Ltda", "11222333000181")
	customerRepo.On("FindByDocument", ctx, customer.Document()).Return(customer, nil)

	resp, err := svc.GetByDocument(ctx, "11.222.333/0001-81")
	require.NoError(t, err)
	assert.Equal(t, customer.GetID(), resp.ID)
	assert.Equal(t, "CNPJ", resp.DocumentKind)
}

func TestCustomerService_List(t *testing.T) {
	svc, customerRepo, _, _ := newCustomerService()
	ctx := context.Background()

	customers := []*cadastros.Customer{
		storedCustomer("João Silva", "52998224725"),
		storedCustomer("Auto Peças Ltda", "11222333000181"),
	}
	filter := shared.Filter{Page: 1, PageSize: 2}.Normalize()
	customerRepo.On("FindAll", ctx, filter).Return(customers, nil)
	customerRepo.On("Count", ctx, filter).Return(int64(5), nil)

	page, err := svc.List(ctx, shared.Filter{PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, "João Silva", page.Items[0].Name)
}

func TestCustomerService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("changes name and contact", func(t *testing.T) {
		svc, customerRepo, _, publisher := newCustomerService()
		customer := storedCustomer("João Silva", "52998224725")
		customerRepo.On("FindByID", ctx, customer.GetID()).Return(customer, nil)
		customerRepo.On("Save", ctx, customer).Return(nil)

		name, phone := "João da Silva", "11 3333-4444"
		resp, err := svc.Update(ctx, customer.GetID(), UpdateCustomerCommand{Name: &name, Phone: &phone})

		require.NoError(t, err)
		assert.Equal(t, "João da Silva", resp.Name)
		assert.Equal(t, "1133334444", resp.Phone)
		assert.Equal(t, 3, resp.Version)
		assert.Equal(t, []string{cadastros.EventTypeCustomerUpdated, cadastros.EventTypeCustomerUpdated}, publisher.types())
	})

	t.Run("document taken by someone else", func(t *testing.T) {
		svc, customerRepo, _, _ := newCustomerService()
		customer := storedCustomer("João Silva", "52998224725")
		other := storedCustomer("Auto Peças Ltda", "11222333000181")
		customerRepo.On("FindByID", ctx, customer.GetID()).Return(customer, nil)
		customerRepo.On("FindByDocument", ctx, other.Document()).Return(other, nil)

		document := "11222333000181"
		_, err := svc.Update(ctx, customer.GetID(), UpdateCustomerCommand{Document: &document})

		assert.ErrorIs(t, err, shared.ErrConflict)
		assert.Equal(t, "52998224725", customer.Document().String())
		customerRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("same document is not a conflict", func(t *testing.T) {
		svc, customerRepo, _, publisher := newCustomerService()
		customer := storedCustomer("João Silva", "52998224725")
		customerRepo.On("FindByID", ctx, customer.GetID()).Return(customer, nil)
		customerRepo.On("Save", ctx, customer).Return(nil)

		document := "529.982.247-25"
		resp, err := svc.Update(ctx, customer.GetID(), UpdateCustomerCommand{Document: &document})

		require.NoError(t, err)
		assert.Equal(t, 1, resp.Version)
		assert.Empty(t, publisher.types())
		customerRepo.AssertNotCalled(t, "FindByDocument", mock.Anything, mock.Anything)
	})
}

func TestCustomerService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes a customer without vehicles", func(t *testing.T) {
		svc, customerRepo, vehicleRepo, _ := newCustomerService()
		customer := storedCustomer("João Silva", "52998224725")
		customerRepo.On("FindByID", ctx, customer.GetID()).Return(customer, nil)
		vehicleRepo.On("FindByOwner", ctx, customer.GetID()).Return([]*cadastros.Vehicle{}, nil)
		customerRepo.On("Delete", ctx, customer.GetID()).Return(nil)

		require.NoError(t, svc.Delete(ctx, customer.GetID()))
		customerRepo.AssertExpectations(t)
	})

	t.Run("refuses while the customer owns vehicles", func(t *testing.T) {
		svc, customerRepo, vehicleRepo, _ := newCustomerService()
		customer := storedCustomer("João Silva", "52998224725")
		customerRepo.On("FindByID", ctx, customer.GetID()).Return(customer, nil)
		vehicleRepo.On("FindByOwner", ctx, customer.GetID()).
			Return([]*cadastros.Vehicle{storedVehicle(customer.GetID(), "ABC1D23")}, nil)

		err := svc.Delete(ctx, customer.GetID())
		assert.ErrorIs(t, err, shared.ErrConflict)
		customerRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
