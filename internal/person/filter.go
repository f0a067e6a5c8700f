package person

import (
	"strconv"
	"strings"
)

// Filter returns the records whose visible field values contain query,
// case-insensitively. It is a pure projection: the input slice is never
// mutated, and an empty query returns the full set.
func Filter(records []Record, query string) []Record {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return records
	}

	var out []Record
	for _, r := range records {
		if Matches(r, q) {
			out = append(out, r)
		}
	}
	return out
}

// Matches reports whether any visible field of r contains the
// already-lowercased query.
func Matches(r Record, q string) bool {
	for _, v := range searchValues(r) {
		if v != "" && strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}

// searchValues renders every field the list can show, so search covers the
// same surface the operator sees.
func searchValues(r Record) []string {
	return []string{
		string(r.ID),
		r.FirstName,
		r.LastName,
		r.FatherName,
		r.Spouse,
		string(r.Gender),
		strconv.Itoa(int(r.Age)),
		r.Address,
		r.Address2,
		r.Mobile,
		r.Mobile2,
		r.Phone,
		r.Phone2,
		string(r.Category),
		r.Reference,
		r.IDProof,
		r.IDProofNumber,
		r.Occupation,
		r.Introducer,
		r.OldID,
		strconv.FormatFloat(float64(r.Shares), 'f', -1, 64),
		strconv.FormatFloat(float64(r.LoanLimit), 'f', -1, 64),
	}
}
