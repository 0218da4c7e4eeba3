package cadastros

import (
	"regexp"
	"strings"
	"time"

	"github.com/oficina/backend/internal/domain/shared"
	"github.com/oficina/backend/internal/domain/shared/valueobject"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10,13}$`)
)

// Customer is a person or company that brings vehicles to the shop
type Customer struct {
	shared.BaseAggregateRoot
	name     valueobject.PersonName
	document valueobject.NationalID
	phone    string
	email    string
}

// NewCustomer creates a new customer from a raw name and CPF/CNPJ
func NewCustomer(name, document string) (*Customer, error) {
	personName, err := valueobject.NewPersonName(name)
	if err != nil {
		return nil, err
	}
	nationalID, err := valueobject.NewNationalID(document)
	if err != nil {
		return nil, err
	}

	customer := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		name:              personName,
		document:          nationalID,
	}

	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))

	return customer, nil
}

// RehydrateCustomer rebuilds a stored customer without raising events
func RehydrateCustomer(root shared.BaseAggregateRoot, name valueobject.PersonName, document valueobject.NationalID, phone, email string) *Customer {
	return &Customer{
		BaseAggregateRoot: root,
		name:              name,
		document:          document,
		phone:             phone,
		email:             email,
	}
}

// Kind identifies the aggregate type
func (c *Customer) Kind() shared.AggregateKind {
	return shared.AggregateCustomer
}

// Name returns the customer's name
func (c *Customer) Name() valueobject.PersonName {
	return c.name
}

// Document returns the customer's CPF or CNPJ
func (c *Customer) Document() valueobject.NationalID {
	return c.document
}

// Phone returns the contact phone, digits only
func (c *Customer) Phone() string {
	return c.phone
}

// Email returns the contact e-mail
func (c *Customer) Email() string {
	return c.email
}

// UpdateName replaces the customer's name
func (c *Customer) UpdateName(name string) error {
	personName, err := valueobject.NewPersonName(name)
	if err != nil {
		return err
	}

	c.name = personName
	c.markUpdated()
	return nil
}

// UpdateDocument replaces the customer's CPF or CNPJ
func (c *Customer) UpdateDocument(document string) error {
	nationalID, err := valueobject.NewNationalID(document)
	if err != nil {
		return err
	}

	c.document = nationalID
	c.markUpdated()
	return nil
}

// SetContact sets the optional phone and e-mail. Empty strings clear them.
func (c *Customer) SetContact(phone, email string) error {
	phone = stripPhone(phone)
	if phone != "" && !phonePattern.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Phone must have 10 to 13 digits")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" && (len(email) > 200 || !emailPattern.MatchString(email)) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}

	c.phone = phone
	c.email = email
	c.markUpdated()
	return nil
}

func (c *Customer) markUpdated() {
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	c.AddDomainEvent(NewCustomerUpdatedEvent(c))
}

func stripPhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '(', r == ')', r == '+', r == '.':
		default:
			// keep the offending rune so validation rejects it
			b.WriteRune(r)
		}
	}
	return b.String()
}

