package valueobject

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oficina/backend/internal/domain/shared"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.RequireFromString("100.50"), BRL)
		require.NoError(t, err)
		assert.Equal(t, BRL, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.RequireFromString("100.5")))
	})

	t.Run("normalizes currency case", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromInt(1), "usd")
		require.NoError(t, err)
		assert.Equal(t, USD, m.Currency())
	})

	t.Run("rejects malformed currency", func(t *testing.T) {
		for _, c := range []Currency{"", "R$", "REAL", "B1L"} {
			_, err := NewMoney(decimal.NewFromInt(1), c)
			require.Error(t, err, "currency %q", c)
			assert.True(t, errors.Is(err, shared.ErrValidation))
		}
	})
}

func TestNewMoneyFromString(t *testing.T) {
	t.Run("valid string", func(t *testing.T) {
		m, err := NewMoneyFromString(" 123.45 ", BRL)
		require.NoError(t, err)
		assert.Equal(t, "123.45 BRL", m.String())
	})

	t.Run("invalid string", func(t *testing.T) {
		_, err := NewMoneyFromString("cento e vinte", BRL)
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INVALID_MONEY", de.Code)
	})

	t.Run("must panics on garbage", func(t *testing.T) {
		assert.Panics(t, func() { MustBRL("x") })
		assert.True(t, MustBRL("10").Equals(NewBRL(decimal.NewFromInt(10))))
	})
}

func TestMoneyArithmetic(t *testing.T) {
	a := MustBRL("150.00")
	b := MustBRL("49.90")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "199.90 BRL", sum.String())

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.Equal(t, "100.10 BRL", diff.String())

	assert.Equal(t, "448.50 BRL", MustBRL("89.70").MultiplyByInt(5).String())
	assert.Equal(t, "150.00 BRL", a.String(), "operands are not modified")

	t.Run("currency mismatch", func(t *testing.T) {
		usd, err := NewMoneyFromString("1", USD)
		require.NoError(t, err)
		_, err = a.Add(usd)
		assert.Error(t, err)
		_, err = a.Subtract(usd)
		assert.Error(t, err)
		_, err = a.GreaterThan(usd)
		assert.Error(t, err)
	})

	t.Run("comparisons", func(t *testing.T) {
		gt, err := a.GreaterThan(b)
		require.NoError(t, err)
		assert.True(t, gt)
		assert.True(t, Zero(BRL).IsZero())
		assert.True(t, a.IsPositive())
		assert.True(t, MustBRL("-1").IsNegative())
		assert.True(t, MustBRL("10.005").Round(2).Equals(MustBRL("10.01")))
	})
}

func TestMoneyEquals(t *testing.T) {
	assert.True(t, MustBRL("10").Equals(MustBRL("10.00")))
	assert.False(t, MustBRL("10").Equals(MustBRL("10.01")))
	assert.False(t, Zero(BRL).Equals(Zero(USD)))

	t.Run("== does not compare amounts", func(t *testing.T) {
		a, b := MustBRL("10.00"), MustBRL("10.00")
		assert.True(t, a.Equals(b))
		assert.False(t, a == b)
	})
}

func TestRestoreMoney(t *testing.T) {
	price := RestoreMoney(decimal.RequireFromString("12.50"), "brl")
	assert.Equal(t, Currency("brl"), price.Currency())
	assert.True(t, price.Amount().Equal(decimal.RequireFromString("12.5")))
}

func TestMoneyJSON(t *testing.T) {
	data, err := json.Marshal(MustBRL("99.99"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"99.99","currency":"BRL"}`, string(data))

	var parsed Money
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, parsed.Equals(MustBRL("99.99")))

	require.NoError(t, json.Unmarshal([]byte(`{"amount":"5"}`), &parsed))
	assert.Equal(t, BRL, parsed.Currency())

	var de *shared.DomainError
	require.ErrorAs(t, json.Unmarshal([]byte(`{"amount":"5","currency":"R$"}`), &parsed), &de)
	assert.Equal(t, "INVALID_MONEY", de.Code)
	assert.Error(t, json.Unmarshal([]byte(`{"amount":[]}`), &parsed))
}

func TestMoneyScanAndValue(t *testing.T) {
	t.Run("scans string", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan("123.45"))
		assert.True(t, m.Equals(MustBRL("123.45")))
	})

	t.Run("scans bytes", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan([]byte("7.5")))
		assert.True(t, m.Amount().Equal(decimal.RequireFromString("7.5")))
	})

	t.Run("scans nil as zero", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan(nil))
		assert.True(t, m.IsZero())
		assert.Equal(t, DefaultCurrency, m.Currency())
	})

	t.Run("rejects unparsable input", func(t *testing.T) {
		var m Money
		assert.Error(t, m.Scan("abc"))
	})

	v, err := MustBRL("42.10").Value()
	require.NoError(t, err)
	assert.Equal(t, "42.1", v)
}
