package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Address is a value object representing a postal address.
// It is immutable - all operations return new Address instances.
type Address struct {
	line1    string
	line2    string
	city     string
	postcode string
	country  string
}

// AddressOption is a functional option for configuring Address
type AddressOption func(*Address)

// WithLine2 sets the second address line
func WithLine2(line2 string) AddressOption {
	return func(a *Address) {
		a.line2 = strings.TrimSpace(line2)
	}
}

// WithCountry sets the country for the address
func WithCountry(country string) AddressOption {
	return func(a *Address) {
		a.country = strings.TrimSpace(country)
	}
}

// NewAddress creates a new Address. Line1, city and postcode are required;
// line2 is optional and country defaults to "GB".
func NewAddress(line1, city, postcode string, opts ...AddressOption) (Address, error) {
	line1 = strings.TrimSpace(line1)
	city = strings.TrimSpace(city)
	postcode = strings.ToUpper(strings.TrimSpace(postcode))

	if err := validateLine1(line1); err != nil {
		return Address{}, err
	}
	if err := validateCity(city); err != nil {
		return Address{}, err
	}
	if err := validatePostcode(postcode); err != nil {
		return Address{}, err
	}

	addr := Address{
		line1:    line1,
		city:     city,
		postcode: postcode,
		country:  "GB",
	}

	for _, opt := range opts {
		opt(&addr)
	}

	if len(addr.line2) > 200 {
		return Address{}, fmt.Errorf("address line 2 cannot exceed 200 characters")
	}
	if len(addr.country) > 100 {
		return Address{}, fmt.Errorf("country cannot exceed 100 characters")
	}

	return addr, nil
}

// MustNewAddress creates a new Address, panics on error
func MustNewAddress(line1, city, postcode string, opts ...AddressOption) Address {
	addr, err := NewAddress(line1, city, postcode, opts...)
	if err != nil {
		panic(err)
	}
	return addr
}

// EmptyAddress returns an empty address (for optional address fields)
func EmptyAddress() Address {
	return Address{}
}

// Line1 returns the first address line
func (a Address) Line1() string {
	return a.line1
}

// Line2 returns the second address line
func (a Address) Line2() string {
	return a.line2
}

// City returns the city or town
func (a Address) City() string {
	return a.city
}

// Postcode returns the postcode
func (a Address) Postcode() string {
	return a.postcode
}

// Country returns the country code
func (a Address) Country() string {
	return a.country
}

// IsEmpty returns true if the address has no populated fields
func (a Address) IsEmpty() bool {
	return a.line1 == "" && a.line2 == "" && a.city == "" && a.postcode == ""
}

// FullAddress returns the complete formatted address on one line
func (a Address) FullAddress() string {
	if a.IsEmpty() {
		return ""
	}

	parts := make([]string, 0, 5)
	if a.line1 != "" {
		parts = append(parts, a.line1)
	}
	if a.line2 != "" {
		parts = append(parts, a.line2)
	}
	if a.city != "" {
		parts = append(parts, a.city)
	}
	if a.postcode != "" {
		parts = append(parts, a.postcode)
	}
	if a.country != "" {
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
	return a.line1 == other.line1 &&
		a.line2 == other.line2 &&
		a.city == other.city &&
		a.postcode == other.postcode &&
		a.country == other.country
}

// PostcodeArea returns the outward part of the postcode (e.g. "SW1A" for "SW1A 1AA")
func (a Address) PostcodeArea() string {
	if idx := strings.IndexByte(a.postcode, ' '); idx > 0 {
		return a.postcode[:idx]
	}
	return a.postcode
}

// addressJSON is used for JSON marshaling/unmarshaling
type addressJSON struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2,omitempty"`
	City     string `json:"city"`
	Postcode string `json:"postcode"`
	Country  string `json:"country,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(addressJSON{
		Line1:    a.line1,
		Line2:    a.line2,
		City:     a.city,
		Postcode: a.postcode,
		Country:  a.country,
	})
}

// UnmarshalJSON implements json.Unmarshaler. Validation is delegated to the
// NewAddress factory so malformed addresses cannot enter through JSON.
func (a *Address) UnmarshalJSON(data []byte) error {
	var v addressJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	// Allow empty addresses from JSON
	if v.Line1 == "" && v.City == "" && v.Postcode == "" {
		*a = EmptyAddress()
		return nil
	}

	addr, err := NewAddress(v.Line1, v.City, v.Postcode, WithLine2(v.Line2), WithCountry(v.Country))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// Value implements driver.Valuer for database storage as a JSON column
func (a Address) Value() (driver.Value, error) {
	if a.IsEmpty() {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner for database retrieval
func (a *Address) Scan(value any) error {
	if value == nil {
		*a = EmptyAddress()
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into Address", value)
	}

	if len(data) == 0 || string(data) == "null" {
		*a = EmptyAddress()
		return nil
	}

	return json.Unmarshal(data, a)
}

func validateLine1(line1 string) error {
	if line1 == "" {
		return fmt.Errorf("address line 1 cannot be empty")
	}
	if len(line1) > 200 {
		return fmt.Errorf("address line 1 cannot exceed 200 characters")
	}
	return nil
}

func validateCity(city string) error {
	if city == "" {
		return fmt.Errorf("city cannot be empty")
	}
	if len(city) > 100 {
		return fmt.Errorf("city cannot exceed 100 characters")
	}
	return nil
}

func validatePostcode(postcode string) error {
	if postcode == "" {
		return fmt.Errorf("postcode cannot be empty")
	}
	if len(postcode) > 20 {
		return fmt.Errorf("postcode cannot exceed 20 characters")
	}
	return nil
}
