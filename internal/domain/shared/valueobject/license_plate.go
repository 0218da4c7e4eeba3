package valueobject

import (
	"regexp"
	"strings"

	"github.com/oficina/backend/internal/domain/shared"
)

const codeInvalidLicensePlate = "INVALID_LICENSE_PLATE"

var (
	legacyPlatePattern   = regexp.MustCompile(`^[A-Z]{3}[0-9]{4}$`)
	mercosulPlatePattern = regexp.MustCompile(`^[A-Z]{3}[0-9][A-Z][0-9]{2}$`)
)

// LicensePlate is a Brazilian vehicle plate in the legacy (ABC1234) or
// Mercosul (ABC1D23) layout, stored upper-case without separators.
type LicensePlate struct {
	value string
}

// NewLicensePlate normalizes and validates a plate
func NewLicensePlate(raw string) (LicensePlate, error) {
	value := strings.ToUpper(strings.NewReplacer("-", "", " ", "").Replace(raw))
	if value == "" {
		return LicensePlate{}, shared.NewDomainError(codeInvalidLicensePlate, "license plate is required")
	}
	if !legacyPlatePattern.MatchString(value) && !mercosulPlatePattern.MatchString(value) {
		return LicensePlate{}, shared.NewDomainError(codeInvalidLicensePlate,
			"license plate must match ABC1234 or ABC1D23")
	}
	return LicensePlate{value: value}, nil
}

// RestoreLicensePlate wraps a plate read back from storage without re-checking its layout
func RestoreLicensePlate(stored string) LicensePlate {
	return LicensePlate{value: stored}
}

// String returns the normalized plate
func (l LicensePlate) String() string {
	return l.value
}

// IsMercosul reports whether the plate uses the Mercosul layout
func (l LicensePlate) IsMercosul() bool {
	return mercosulPlatePattern.MatchString(l.value)
}

// Equals compares two plates by value
func (l LicensePlate) Equals(other LicensePlate) bool {
	return l.value == other.value
}

// IsZero reports whether the value was never constructed
func (l LicensePlate) IsZero() bool {
	return l.value == ""
}
