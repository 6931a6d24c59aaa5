package query

import "strings"

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortSpec orders results by one field.
type SortSpec struct {
	Field     string
	Direction Direction
}

// SQL returns the SQL keyword for the direction.
func (d Direction) SQL() string {
	if d == Desc {
		return "DESC"
	}
	return "ASC"
}

// ParseSort parses "name,-created_at". A leading "-" sorts descending, a
// leading "+" or no sign ascending. Repeated fields keep their first position.
func ParseSort(raw string, allowed []string) ([]SortSpec, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	seen := make(map[string]bool)
	var specs []SortSpec
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		dir := Asc
		switch tok[0] {
		case '-':
			dir = Desc
			tok = tok[1:]
		case '+':
			tok = tok[1:]
		}
		if !contains(allowed, tok) {
			return nil, invalid("sort", "sorting by %q is not allowed", tok)
		}
		if seen[tok] {
			continue
		}
		seen[tok] = true
		specs = append(specs, SortSpec{Field: tok, Direction: dir})
	}
	return specs, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
