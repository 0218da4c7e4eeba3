package valueobject

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/oficina/backend/internal/domain/shared"
)

// MaxPersonNameLength is the longest accepted name, in characters
const MaxPersonNameLength = 120

const codeInvalidName = "INVALID_NAME"

// PersonName is the display name of a person or company.
// Stored NFC-normalized with inner whitespace collapsed.
type PersonName struct {
	value string
}

// NewPersonName validates and normalizes a name
func NewPersonName(raw string) (PersonName, error) {
	value := strings.Join(strings.Fields(norm.NFC.String(raw)), " ")
	if value == "" {
		return PersonName{}, shared.NewDomainError(codeInvalidName, "name is required")
	}
	if n := utf8.RuneCountInString(value); n > MaxPersonNameLength {
		return PersonName{}, shared.NewDomainError(codeInvalidName,
			fmt.Sprintf("name must be at most %d characters, got %d", MaxPersonNameLength, n))
	}
	letters := 0
	for _, r := range value {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	if letters < 2 {
		return PersonName{}, shared.NewDomainError(codeInvalidName, "name must contain at least two letters")
	}
	return PersonName{value: value}, nil
}

// RestorePersonName wraps a name read back from storage without re-checking it
func RestorePersonName(stored string) PersonName {
	return PersonName{value: stored}
}

// String returns the normalized name
func (p PersonName) String() string {
	return p.value
}

// Equals compares two names by value
func (p PersonName) Equals(other PersonName) bool {
	return p.value == other.value
}

// IsZero reports whether the value was never constructed
func (p PersonName) IsZero() bool {
	return p.value == ""
}
