// Package person defines the personal-info record shared by all four
// back-office categories, along with field validation and search filtering.
// The JSON wire names are fixed by the finance backend and must not change,
// including the server's misspelled "bussinessexemption".
package person

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Category partitions records into exactly one back-office tab.
type Category string

const (
	Customer Category = "CUSTOMER"
	Employee Category = "EMPLOYEE"
	Partner  Category = "PARTNER"
	Vendor   Category = "VENDOR"
)

// Categories lists all categories in display order.
func Categories() []Category {
	return []Category{Customer, Employee, Partner, Vendor}
}

// Label returns the display name for a category.
func (c Category) Label() string {
	switch c {
	case Customer:
		return "Customer"
	case Employee:
		return "Employee"
	case Partner:
		return "Partner"
	case Vendor:
		return "Vendor"
	}
	return string(c)
}

// Valid reports whether c is one of the four known categories.
func (c Category) Valid() bool {
	switch c {
	case Customer, Employee, Partner, Vendor:
		return true
	}
	return false
}

// ParseCategory matches a category name case-insensitively.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	return c, c.Valid()
}

// Gender is the self-reported gender field.
type Gender string

const (
	Male   Gender = "Male"
	Female Gender = "Female"
	Other  Gender = "Other"
)

// Genders lists the gender options in form cycle order.
func Genders() []Gender {
	return []Gender{Male, Female, Other}
}

// ID is a server-assigned record identifier. The backend stores integers but
// some responses carry them as strings, and rows without a server id get a
// client-minted "temp-..." stand-in, so the client keeps ids as strings.
type ID string

// IsZero reports whether the id is absent or the server's zero placeholder.
func (id ID) IsZero() bool {
	return id == "" || id == "0"
}

func (id *ID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	// bare number
	*id = ID(strings.TrimSpace(string(b)))
	return nil
}

// MarshalJSON re-encodes all-digit ids as numbers so the backend's integer
// ids round-trip unchanged; synthetic ids stay strings.
func (id ID) MarshalJSON() ([]byte, error) {
	s := string(id)
	if s == "" {
		return []byte("0"), nil
	}
	if isDigits(s) {
		return []byte(s), nil
	}
	return json.Marshal(s)
}

// Count is a non-negative integer field (age). The backend sometimes returns
// these as strings, and the form coerces empty input to zero.
type Count int

func (c *Count) UnmarshalJSON(b []byte) error {
	n, err := flexNumber(b)
	if err != nil {
		return err
	}
	*c = Count(n)
	return nil
}

func (c Count) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(c))), nil
}

// Amount is a non-negative numeric field (shares, loan limit) with the same
// wire tolerance as Count.
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	n, err := flexNumber(b)
	if err != nil {
		return err
	}
	*a = Amount(n)
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(a), 'f', -1, 64)), nil
}

// flexNumber decodes a JSON number, numeric string, empty string, or null.
// Anything unparseable coerces to zero rather than failing the whole record.
func flexNumber(b []byte) (float64, error) {
	s := string(b)
	if s == "null" {
		return 0, nil
	}
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return 0, err
		}
		s = strings.TrimSpace(str)
		if s == "" {
			return 0, nil
		}
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, nil
	}
	return n, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// Record is one personal-info entry. All four categories share this shape;
// the financial fields are only meaningful for customers (and shares for
// partners) but always travel on the wire.
type Record struct {
	ID         ID     `json:"id"`
	FirstName  string `json:"firstname"`
	LastName   string `json:"lastname"`
	FatherName string `json:"fathername"`
	Spouse     string `json:"spouse"`
	Gender     Gender `json:"gender"`
	Age        Count  `json:"age"`

	Address  string `json:"address"`
	Address2 string `json:"address2"`
	Mobile   string `json:"mobile"`
	Mobile2  string `json:"mobile2"`
	Phone    string `json:"phone"`
	Phone2   string `json:"phone2"`

	Category      Category `json:"category"`
	Reference     string   `json:"reference"`
	IDProof       string   `json:"idproof"`
	IDProofNumber string   `json:"idproofnumber"`
	Occupation    string   `json:"occupation"`
	Introducer    string   `json:"introname"`
	OldID         string   `json:"oldid"`

	Shares            Amount `json:"shares"`
	LoanLimit         Amount `json:"loanlimit"`
	Disabled          bool   `json:"disable"`
	BusinessExemption bool   `json:"bussinessexemption"`
}

// New returns a blank record for the given category with form defaults.
func New(cat Category) Record {
	return Record{
		Gender:   Male,
		Category: cat,
	}
}

// DisplayName returns the record's name for list rows and headers.
func (r Record) DisplayName() string {
	name := strings.TrimSpace(r.FirstName + " " + r.LastName)
	if name == "" {
		return "(unnamed)"
	}
	return name
}
