package person

import (
	"regexp"
	"strconv"
	"strings"
)

var tenDigits = regexp.MustCompile(`^\d{10}$`)

// Validatable form fields. These are the record fields with rules attached;
// every other field accepts any value.
const (
	FieldFirstName = "firstname"
	FieldMobile    = "mobile"
	FieldMobile2   = "mobile2"
	FieldPhone     = "phone"
	FieldPhone2    = "phone2"
)

// Validate checks a candidate record for submission and returns an error
// message per failing field. An empty map means the record is submittable.
// Rules are evaluated independently; there is no short-circuit.
func Validate(r Record) map[string]string {
	errs := make(map[string]string)
	for _, f := range []string{FieldFirstName, FieldMobile, FieldMobile2, FieldPhone, FieldPhone2} {
		if msg := ValidateField(r, f); msg != "" {
			errs[f] = msg
		}
	}
	return errs
}

// ValidateField checks a single field, for live validation as the user types.
// It returns "" when the field passes.
func ValidateField(r Record, field string) string {
	switch field {
	case FieldFirstName:
		if strings.TrimSpace(r.FirstName) == "" {
			return "First name is required"
		}
	case FieldMobile:
		if strings.TrimSpace(r.Mobile) == "" {
			return "Mobile is required"
		}
		if !tenDigits.MatchString(r.Mobile) {
			return "Mobile must be exactly 10 digits"
		}
	case FieldMobile2:
		if r.Mobile2 != "" && !tenDigits.MatchString(r.Mobile2) {
			return "Alternate mobile must be 10 digits"
		}
	case FieldPhone:
		if r.Phone != "" && !tenDigits.MatchString(r.Phone) {
			return "Phone must be 10 digits"
		}
	case FieldPhone2:
		if r.Phone2 != "" && !tenDigits.MatchString(r.Phone2) {
			return "Alternate phone must be 10 digits"
		}
	}
	return ""
}

// DigitsOnly strips non-digits from phone-style input and caps it at ten
// digits, matching what the backend will accept.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
		if b.Len() == 10 {
			break
		}
	}
	return b.String()
}

// ParseCount coerces free-form numeric input to a non-negative integer.
// Empty or unparseable input is zero, not an error.
func ParseCount(s string) Count {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return Count(n)
}

// ParseAmount coerces free-form numeric input to a non-negative amount.
// Empty or unparseable input is zero, not an error.
func ParseAmount(s string) Amount {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || n < 0 {
		return 0
	}
	return Amount(n)
}
