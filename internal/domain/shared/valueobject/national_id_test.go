package valueobject

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oficina/backend/internal/domain/shared"
)

func TestNewNationalID(t *testing.T) {
	valid := []struct {
		name      string
		raw       string
		digits    string
		kind      NationalIDKind
		formatted string
	}{
		{"formatted CPF", "529.982.247-25", "52998224725", CPF, "529.982.247-25"},
		{"bare CPF", "52998224725", "52998224725", CPF, "529.982.247-25"},
		{"formatted CNPJ", "11.222.333/0001-81", "11222333000181", CNPJ, "11.222.333/0001-81"},
		{"CNPJ with spaces", " 11222333000181 ", "11222333000181", CNPJ, "11.222.333/0001-81"},
	}
	for _, tc := range valid {
		t.Run(tc.name, func(t *testing.T) {
			id, err := NewNationalID(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.digits, id.String())
			assert.Equal(t, tc.kind, id.Kind())
			assert.Equal(t, tc.formatted, id.Formatted())
		})
	}

	invalid := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"letters only", "abc"},
		{"five digits", "12345"},
		{"wrong CPF check digit", "529.982.247-26"},
		{"repeated CPF digits", "111.111.111-11"},
		{"repeated CNPJ digits", "00000000000000"},
		{"wrong CNPJ check digit", "11.222.333/0001-82"},
		{"twelve digits", "123456789012"},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewNationalID(tc.raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, shared.ErrValidation))
			var de *shared.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, "INVALID_NATIONAL_ID", de.Code)
		})
	}
}

func TestNationalIDEquality(t *testing.T) {
	a := MustNationalID("529.982.247-25")
	b := MustNationalID("52998224725")
	assert.True(t, a.Equals(b))
	assert.Equal(t, a, b)
	assert.False(t, a.Equals(MustNationalID("11222333000181")))
	assert.True(t, NationalID{}.IsZero())
	assert.Equal(t, "CPF", a.Kind().String())
	assert.Panics(t, func() { MustNationalID("1") })
}

func TestRestoredValuesSkipValidation(t *testing.T) {
	_, err := NewNationalID("52998224726")
	require.Error(t, err)
	id := RestoreNationalID("52998224726")
	assert.Equal(t, "52998224726", id.String())
	assert.Equal(t, CPF, id.Kind())

	_, err = NewPersonName("X")
	require.Error(t, err)
	assert.Equal(t, "X", RestorePersonName("X").String())

	assert.Equal(t, "AB12345", RestoreLicensePlate("AB12345").String())
	assert.Equal(t, "x", RestoreDescription("x").String())
}
