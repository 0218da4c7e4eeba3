package valueobject

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/oficina/backend/internal/domain/shared"
)

// NationalIDKind distinguishes individual (CPF) from company (CNPJ) documents
type NationalIDKind int

const (
	CPF NationalIDKind = iota + 1
	CNPJ
)

// String returns the document type name
func (k NationalIDKind) String() string {
	switch k {
	case CPF:
		return "CPF"
	case CNPJ:
		return "CNPJ"
	default:
		return "UNKNOWN"
	}
}

const codeInvalidNationalID = "INVALID_NATIONAL_ID"

var (
	cpfWeights1  = []int{10, 9, 8, 7, 6, 5, 4, 3, 2}
	cpfWeights2  = []int{11, 10, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeights1 = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeights2 = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// NationalID is a Brazilian taxpayer document (CPF or CNPJ), stored as digits only
type NationalID struct {
	digits string
}

// NewNationalID parses a CPF or CNPJ, with or without punctuation, and
// verifies its check digits.
func NewNationalID(raw string) (NationalID, error) {
	digits := onlyDigits(raw)
	switch len(digits) {
	case 11:
		if !validCPF(digits) {
			return NationalID{}, shared.NewDomainError(codeInvalidNationalID, "invalid CPF")
		}
	case 14:
		if !validCNPJ(digits) {
			return NationalID{}, shared.NewDomainError(codeInvalidNationalID, "invalid CNPJ")
		}
	case 0:
		return NationalID{}, shared.NewDomainError(codeInvalidNationalID, "document is required")
	default:
		return NationalID{}, shared.NewDomainError(codeInvalidNationalID,
			fmt.Sprintf("document must have 11 (CPF) or 14 (CNPJ) digits, got %d", len(digits)))
	}
	return NationalID{digits: digits}, nil
}

// MustNationalID is NewNationalID for known-good literals; it panics on error
func MustNationalID(raw string) NationalID {
	id, err := NewNationalID(raw)
	if err != nil {
		panic(err)
	}
	return id
}

// RestoreNationalID wraps digits read back from storage. Check digits are
// not verified again, so documents accepted under older rules still load.
func RestoreNationalID(stored string) NationalID {
	return NationalID{digits: stored}
}

func onlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func allSameDigit(d string) bool {
	for i := 1; i < len(d); i++ {
		if d[i] != d[0] {
			return false
		}
	}
	return true
}

func weightedSum(d string, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += int(d[i]-'0') * w
	}
	return sum
}

func cpfDigit(d string, weights []int) byte {
	r := weightedSum(d, weights) * 10 % 11
	if r == 10 {
		r = 0
	}
	return byte('0' + r)
}

func cnpjDigit(d string, weights []int) byte {
	r := weightedSum(d, weights) % 11
	if r < 2 {
		return '0'
	}
	return byte('0' + 11 - r)
}

func validCPF(d string) bool {
	if allSameDigit(d) {
		return false
	}
	return d[9] == cpfDigit(d, cpfWeights1) && d[10] == cpfDigit(d, cpfWeights2)
}

func validCNPJ(d string) bool {
	if allSameDigit(d) {
		return false
	}
	return d[12] == cnpjDigit(d, cnpjWeights1) && d[13] == cnpjDigit(d, cnpjWeights2)
}

// String returns the normalized digits
func (n NationalID) String() string {
	return n.digits
}

// Kind reports whether the document is a CPF or a CNPJ
func (n NationalID) Kind() NationalIDKind {
	if len(n.digits) == 14 {
		return CNPJ
	}
	return CPF
}

// Formatted renders the document with its conventional punctuation
func (n NationalID) Formatted() string {
	d := n.digits
	switch len(d) {
	case 11:
		return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
	case 14:
		return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
	default:
		return d
	}
}

// IsZero reports whether the value was never constructed
func (n NationalID) IsZero() bool {
	return n.digits == ""
}

// Equals compares two documents by value
func (n NationalID) Equals(other NationalID) bool {
	return n.digits == other.digits
}

// Value implements driver.Valuer
func (n NationalID) Value() (driver.Value, error) {
	return n.digits, nil
}
