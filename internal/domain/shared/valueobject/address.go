package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// polishPostalCodePattern matches the NN-NNN format used in Poland
var polishPostalCodePattern = regexp.MustCompile(`^\d{2}-\d{3}$`)

// Address is a value object representing a postal address.
// It is immutable - all operations return new Address instances.
// Addresses appear on contractors, loadings/unloadings and invoice
// buyer snapshots.
type Address struct {
	street     string
	city       string
	postalCode string
	country    string
}

// AddressOption is a functional option for configuring Address
type AddressOption func(*Address)

// WithPostalCode sets the postal code for the address
func WithPostalCode(postalCode string) AddressOption {
	return func(a *Address) {
		a.postalCode = strings.TrimSpace(postalCode)
	}
}

// WithCountry sets the country for the address (ISO 3166-1 alpha-2)
func WithCountry(country string) AddressOption {
	return func(a *Address) {
		a.country = strings.ToUpper(strings.TrimSpace(country))
	}
}

// NewAddress creates a new Address. Street and city are required; postal
// code and country are optional and default to empty and "PL".
// Polish postal codes must match the NN-NNN format; other countries are
// accepted as-is.
func NewAddress(street, city string, opts ...AddressOption) (Address, error) {
	street = strings.TrimSpace(street)
	city = strings.TrimSpace(city)

	if street == "" {
		return Address{}, fmt.Errorf("street cannot be empty")
	}
	if len(street) > 200 {
		return Address{}, fmt.Errorf("street cannot exceed 200 characters")
	}
	if city == "" {
		return Address{}, fmt.Errorf("city cannot be empty")
	}
	if len(city) > 100 {
		return Address{}, fmt.Errorf("city cannot exceed 100 characters")
	}

	addr := Address{
		street:  street,
		city:    city,
		country: "PL",
	}

	for _, opt := range opts {
		opt(&addr)
	}

	if addr.country == "PL" && addr.postalCode != "" && !polishPostalCodePattern.MatchString(addr.postalCode) {
		return Address{}, fmt.Errorf("invalid Polish postal code: %s", addr.postalCode)
	}
	if len(addr.country) != 2 {
		return Address{}, fmt.Errorf("country must be a 2-letter ISO code")
	}

	return addr, nil
}

// NewAddressFull creates a new Address with all fields
func NewAddressFull(street, city, postalCode, country string) (Address, error) {
	return NewAddress(street, city, WithPostalCode(postalCode), WithCountry(country))
}

// MustNewAddress creates a new Address, panics on error
func MustNewAddress(street, city string, opts ...AddressOption) Address {
	addr, err := NewAddress(street, city, opts...)
	if err != nil {
		panic(err)
	}
	return addr
}

// EmptyAddress returns an empty address (for optional address fields)
func EmptyAddress() Address {
	return Address{}
}

// Street returns the street with building number
func (a Address) Street() string {
	return a.street
}

// City returns the city
func (a Address) City() string {
	return a.city
}

// PostalCode returns the postal code
func (a Address) PostalCode() string {
	return a.postalCode
}

// Country returns the country code
func (a Address) Country() string {
	return a.country
}

// IsEmpty returns true if the address is empty (all fields are blank)
func (a Address) IsEmpty() bool {
	return a.street == "" && a.city == "" && a.postalCode == ""
}

// IsDomestic returns true if the address is in Poland
func (a Address) IsDomestic() bool {
	return a.country == "" || a.country == "PL"
}

// FullAddress returns the complete formatted address string
// Format: Street, PostalCode City, Country
func (a Address) FullAddress() string {
	if a.IsEmpty() {
		return ""
	}

	parts := make([]string, 0, 3)
	if a.street != "" {
		parts = append(parts, a.street)
	}
	cityLine := strings.TrimSpace(a.postalCode + " " + a.city)
	if cityLine != "" {
		parts = append(parts, cityLine)
	}
	if a.country != "" && a.country != "PL" {
		parts = append(parts, a.country)
	}
	return strings.Join(parts, ", ")
}

// String returns a string representation of the address
func (a Address) String() string {
	return a.FullAddress()
}

// Equals returns true if both addresses are equal
func (a Address) Equals(other Address) bool {
	return a.street == other.street &&
		a.city == other.city &&
		a.postalCode == other.postalCode &&
		a.country == other.country
}

// SameCity returns true if both addresses are in the same city and country
func (a Address) SameCity(other Address) bool {
	return a.country == other.country && strings.EqualFold(a.city, other.city)
}

// addressJSON is the serialized form of Address
type addressJSON struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(addressJSON{
		Street:     a.street,
		City:       a.city,
		PostalCode: a.postalCode,
		Country:    a.country,
	})
}

// UnmarshalJSON implements json.Unmarshaler. Fields are assigned without
// validation so partially filled drafts can round-trip; validation happens
// in NewAddress at the domain boundary.
func (a *Address) UnmarshalJSON(data []byte) error {
	var v addressJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	a.street = v.Street
	a.city = v.City
	a.postalCode = v.PostalCode
	a.country = v.Country
	return nil
}

// Value implements driver.Valuer for database storage (stored as JSON)
func (a Address) Value() (driver.Value, error) {
	if a.IsEmpty() {
		return nil, nil
	}
	return json.Marshal(addressJSON{
		Street:     a.street,
		City:       a.city,
		PostalCode: a.postalCode,
		Country:    a.country,
	})
}

// Scan implements sql.Scanner for database retrieval
func (a *Address) Scan(value any) error {
	if value == nil {
		*a = Address{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Address", value)
	}

	return a.UnmarshalJSON(data)
}
