package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oficina/backend/internal/domain/shared"
)

func TestNewLicensePlate(t *testing.T) {
	accepted := []struct {
		raw      string
		want     string
		mercosul bool
	}{
		{"ABC-1234", "ABC1234", false},
		{"abc 1234", "ABC1234", false},
		{"BRA2E19", "BRA2E19", true},
		{"bra-2e19", "BRA2E19", true},
	}
	for _, tc := range accepted {
		t.Run(tc.raw, func(t *testing.T) {
			p, err := NewLicensePlate(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.want, p.String())
			assert.Equal(t, tc.mercosul, p.IsMercosul())
		})
	}

	for _, raw := range []string{"", "AB1234", "ABCD123", "1BC1234", "ABC12E4", "ABC_1234"} {
		t.Run("rejects "+raw, func(t *testing.T) {
			_, err := NewLicensePlate(raw)
			var de *shared.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, "INVALID_LICENSE_PLATE", de.Code)
		})
	}

	a, _ := NewLicensePlate("abc-1234")
	b, _ := NewLicensePlate("ABC1234")
	assert.True(t, a.Equals(b))
	assert.Equal(t, a, b)
}
