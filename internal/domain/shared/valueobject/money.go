package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/oficina/backend/internal/domain/shared"
)

// Currency is an ISO 4217 code
type Currency string

const (
	BRL Currency = "BRL"
	USD Currency = "USD"
)

// DefaultCurrency prices the service catalog, parts and work orders
const DefaultCurrency = BRL

const codeInvalidMoney = "INVALID_MONEY"

// Money is an immutable decimal amount in one currency. Operations mixing
// currencies fail with INVALID_MONEY.
//
// Compare with Equals. The amount holds a *big.Int, so == compares pointers
// and reports two equal amounts as different.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

type moneyJSON struct {
	Amount   string   `json:"amount"`
	Currency Currency `json:"currency"`
}

func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	code := Currency(strings.ToUpper(strings.TrimSpace(string(currency))))
	if !code.valid() {
		return Money{}, shared.NewDomainError(codeInvalidMoney, fmt.Sprintf("invalid currency code %q", currency))
	}
	return Money{amount: amount, currency: code}, nil
}

// NewMoneyFromString parses amounts such as "150.00"
func NewMoneyFromString(amount string, currency Currency) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return Money{}, shared.NewDomainError(codeInvalidMoney, fmt.Sprintf("invalid amount %q", amount))
	}
	return NewMoney(d, currency)
}

// RestoreMoney rebuilds a stored amount without validating the currency code
func RestoreMoney(amount decimal.Decimal, currency Currency) Money {
	return Money{amount: amount, currency: currency}
}

func NewBRL(amount decimal.Decimal) Money {
	return Money{amount: amount, currency: BRL}
}

// MustBRL is NewMoneyFromString for literals; it panics on malformed input
func MustBRL(amount string) Money {
	m, err := NewMoneyFromString(amount, BRL)
	if err != nil {
		panic(err)
	}
	return m
}

func Zero(currency Currency) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

func (c Currency) valid() bool {
	if len(c) != 3 {
		return false
	}
	return strings.IndexFunc(string(c), func(r rune) bool { return r < 'A' || r > 'Z' }) < 0
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) Currency() Currency      { return m.currency }
func (m Money) IsZero() bool            { return m.amount.IsZero() }
func (m Money) IsPositive() bool        { return m.amount.IsPositive() }
func (m Money) IsNegative() bool        { return m.amount.IsNegative() }

func (m Money) sameCurrency(op string, other Money) error {
	if m.currency == other.currency {
		return nil
	}
	return shared.NewDomainError(codeInvalidMoney,
		fmt.Sprintf("cannot %s %s and %s amounts", op, m.currency, other.currency))
}

func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency("add", other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

func (m Money) Subtract(other Money) (Money, error) {
	if err := m.sameCurrency("subtract", other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Sub(other.amount), currency: m.currency}, nil
}

// MultiplyByInt prices a quantity, e.g. unit price times parts used
func (m Money) MultiplyByInt(factor int64) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(factor)), currency: m.currency}
}

// Round rounds half away from zero
func (m Money) Round(places int32) Money {
	return Money{amount: m.amount.Round(places), currency: m.currency}
}

// Equals compares numerically, so 10 and 10.00 are equal
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

func (m Money) GreaterThan(other Money) (bool, error) {
	if err := m.sameCurrency("compare", other); err != nil {
		return false, err
	}
	return m.amount.GreaterThan(other.amount), nil
}

// String renders "150.00 BRL"
func (m Money) String() string {
	return m.amount.StringFixed(2) + " " + string(m.currency)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Amount: m.amount.String(), Currency: m.currency})
}

// UnmarshalJSON validates like NewMoneyFromString; a missing currency is BRL
func (m *Money) UnmarshalJSON(data []byte) error {
	var v moneyJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode money: %w", err)
	}
	if v.Currency == "" {
		v.Currency = DefaultCurrency
	}
	parsed, err := NewMoneyFromString(v.Amount, v.Currency)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Value stores the amount only; currency lives in its own column
func (m Money) Value() (driver.Value, error) {
	return m.amount.String(), nil
}

// Scan reads a NUMERIC column. NULL scans as zero and an unset currency
// becomes DefaultCurrency.
func (m *Money) Scan(value any) error {
	var d decimal.Decimal
	if value != nil {
		if err := d.Scan(value); err != nil {
			return fmt.Errorf("cannot scan %T into Money: %w", value, err)
		}
	}
	m.amount = d
	if m.currency == "" {
		m.currency = DefaultCurrency
	}
	return nil
}
