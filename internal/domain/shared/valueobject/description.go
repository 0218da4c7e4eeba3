package valueobject

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/oficina/backend/internal/domain/shared"
)

// DefaultDescriptionLength bounds descriptions when callers have no tighter limit
const DefaultDescriptionLength = 500

const codeInvalidDescription = "INVALID_DESCRIPTION"

// Description is free-form descriptive text with a length ceiling
type Description struct {
	value string
}

// NewDescription trims raw and checks it is non-empty and at most max characters.
// A max of zero or less selects DefaultDescriptionLength.
func NewDescription(raw string, max int) (Description, error) {
	if max <= 0 {
		max = DefaultDescriptionLength
	}
	value := strings.TrimSpace(raw)
	if value == "" {
		return Description{}, shared.NewDomainError(codeInvalidDescription, "description is required")
	}
	if n := utf8.RuneCountInString(value); n > max {
		return Description{}, shared.NewDomainError(codeInvalidDescription,
			fmt.Sprintf("description must be at most %d characters, got %d", max, n))
	}
	return Description{value: value}, nil
}

// RestoreDescription wraps text read back from storage as-is. Stored rows were
// valid under the rules in force when written, so they are not checked again.
func RestoreDescription(stored string) Description {
	return Description{value: stored}
}

// String returns the trimmed text
func (d Description) String() string {
	return d.value
}

// Equals compares two descriptions by value
func (d Description) Equals(other Description) bool {
	return d.value == other.value
}

// IsZero reports whether the value was never constructed
func (d Description) IsZero() bool {
	return d.value == ""
}
