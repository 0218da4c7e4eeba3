package validation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oficina/backend/internal/domain/shared"
)

type sampleCommand struct {
	OwnerID uuid.UUID `json:"owner_id" validate:"required"`
	Name    string    `json:"name" validate:"required,max=10"`
	Email   string    `json:"email" validate:"omitempty,email"`
	Year    int       `json:"year" validate:"gte=1900"`
	Status  string    `json:"status" validate:"omitempty,oneof=open closed"`
}

func TestValidate_OK(t *testing.T) {
	err := Validate(sampleCommand{OwnerID: uuid.New(), Name: "João", Year: 2020})
	assert.NoError(t, err)
}

func TestValidate_Violations(t *testing.T) {
	tests := []struct {
		name string
		cmd  sampleCommand
		want string
	}{
		{"missing owner", sampleCommand{Name: "a", Year: 2000}, "owner_id: is required"},
		{"missing name", sampleCommand{OwnerID: uuid.New(), Year: 2000}, "name: is required"},
		{"long name", sampleCommand{OwnerID: uuid.New(), Name: "abcdefghijk", Year: 2000}, "name: must be at most 10 characters"},
		{"bad email", sampleCommand{OwnerID: uuid.New(), Name: "a", Email: "x", Year: 2000}, "email: invalid email format"},
		{"old year", sampleCommand{OwnerID: uuid.New(), Name: "a", Year: 1800}, "year: must be greater than or equal to 1900"},
		{"bad status", sampleCommand{OwnerID: uuid.New(), Name: "a", Year: 2000, Status: "x"}, "status: must be one of: open closed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.cmd)
			require.Error(t, err)
			assert.ErrorIs(t, err, shared.ErrValidation)

			var de *shared.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, CodeInvalidInput, de.Code)
			assert.Contains(t, de.Message, tt.want)
		})
	}
}

func TestValidate_ListsEveryField(t *testing.T) {
	err := Validate(sampleCommand{Year: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "owner_id")
	assert.Contains(t, err.Error(), "name")
	assert.Contains(t, err.Error(), "year")
}
