package invoicing

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/billing/backend/internal/domain/shared"
)

// DefaultCountry is applied when an address is given without a country
const DefaultCountry = "France"

var postalCodePattern = regexp.MustCompile(`^\d{5}(?:[-\s]\d{4})?$`)

// Address is the structured billing address of a client.
// It is immutable once built.
type Address struct {
	street         string
	postalCode     string
	city           string
	country        string
	additionalInfo string
}

// NewAddress builds and validates an Address. All fields are optional but
// bounded; the postal code, when present, must be five digits with an
// optional four digit extension.
func NewAddress(street, postalCode, city, country, additionalInfo string) (Address, error) {
	a := Address{
		street:         strings.TrimSpace(street),
		postalCode:     strings.TrimSpace(postalCode),
		city:           strings.TrimSpace(city),
		country:        strings.TrimSpace(country),
		additionalInfo: strings.TrimSpace(additionalInfo),
	}
	if a.country == "" {
		a.country = DefaultCountry
	}

	switch {
	case len(a.street) > 200:
		return Address{}, shared.NewValidationError("street address cannot exceed 200 characters")
	case a.postalCode != "" && !postalCodePattern.MatchString(a.postalCode):
		return Address{}, shared.NewValidationError("invalid postal code format: %s", a.postalCode)
	case len(a.city) > 100:
		return Address{}, shared.NewValidationError("city name cannot exceed 100 characters")
	case len(a.country) > 100:
		return Address{}, shared.NewValidationError("country name cannot exceed 100 characters")
	case len(a.additionalInfo) > 500:
		return Address{}, shared.NewValidationError("additional information cannot exceed 500 characters")
	}
	return a, nil
}

// Street returns the street line
func (a Address) Street() string { return a.street }

// PostalCode returns the postal code
func (a Address) PostalCode() string { return a.postalCode }

// City returns the city
func (a Address) City() string { return a.city }

// Country returns the country
func (a Address) Country() string { return a.country }

// AdditionalInfo returns free-form complements (building, floor...)
func (a Address) AdditionalInfo() string { return a.additionalInfo }

// IsEmpty reports whether no field carries information
func (a Address) IsEmpty() bool {
	return a.street == "" && a.postalCode == "" && a.city == "" && a.additionalInfo == ""
}

// String formats the address on one line
func (a Address) String() string {
	if a.IsEmpty() {
		return ""
	}
	parts := make([]string, 0, 4)
	if a.street != "" {
		parts = append(parts, a.street)
	}
	if locality := strings.TrimSpace(a.postalCode + " " + a.city); locality != "" {
		parts = append(parts, locality)
	}
	if a.country != "" {
		parts = append(parts, a.country)
	}
	if a.additionalInfo != "" {
		parts = append(parts, a.additionalInfo)
	}
	return strings.Join(parts, ", ")
}

type addressJSON struct {
	Street         string `json:"street,omitempty"`
	PostalCode     string `json:"postal_code,omitempty"`
	City           string `json:"city,omitempty"`
	Country        string `json:"country,omitempty"`
	AdditionalInfo string `json:"additional_info,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(addressJSON{
		Street:         a.street,
		PostalCode:     a.postalCode,
		City:           a.city,
		Country:        a.country,
		AdditionalInfo: a.additionalInfo,
	})
}

// UnmarshalJSON implements json.Unmarshaler, applying NewAddress validation
func (a *Address) UnmarshalJSON(data []byte) error {
	var v addressJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	parsed, err := NewAddress(v.Street, v.PostalCode, v.City, v.Country, v.AdditionalInfo)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Value implements driver.Valuer, storing the address as JSON
func (a Address) Value() (driver.Value, error) {
	if a.IsEmpty() {
		return nil, nil
	}
	data, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (a *Address) Scan(value any) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*a = Address{}
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into Address", value)
	}
	if len(data) == 0 || string(data) == "null" {
		*a = Address{}
		return nil
	}
	return json.Unmarshal(data, a)
}
